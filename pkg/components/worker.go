package components

import "github.com/gonewx/milltwin/pkg/gait"

// MovementComponent 工人的移动状态
//
// 由上层的工人/代理模拟写入，GaitSystem 只读取。
type MovementComponent struct {
	State   gait.MovementState
	Fatigue float64 // 疲劳度 0-1
}

// GaitComponent 步态运行时状态
//
// This is a pure data component following ECS principles - it contains no methods.
type GaitComponent struct {
	// CyclePhase 当前周期相位 [0,1)，状态切换时不重置
	CyclePhase float64

	// BlendFactor 整体幅度淡入淡出（坐下时趋向 0）
	BlendFactor float64

	// Params 当前混合后的参数，逐帧向目标预设靠拢
	Params gait.Params

	// Tier 动画质量档位，决定保留哪些次级动作以及更新频率
	Tier gait.QualityTier

	// Smoothing 姿态阻尼时间常数（秒），0 使用 gait.DefaultSmoothing
	Smoothing float64

	// ParamBlendTime 参数切换的时间常数（秒），0 使用系统默认值
	ParamBlendTime float64

	// PendingDelta 节流跳过的帧累计的时间
	PendingDelta float64

	// LastPose 最近一次计算出的目标姿态（调试/渲染叠加用）
	LastPose gait.GaitPose
}

// SkeletonComponent 外部持有的骨骼变换句柄
type SkeletonComponent struct {
	Refs gait.PoseRefs
}

// NewSkeletonComponent 分配一整套骨骼句柄
//
// 渲染层通常自己持有变换；这里用于没有渲染器的场景（工具、测试、2D 预览）。
func NewSkeletonComponent() *SkeletonComponent {
	return &SkeletonComponent{
		Refs: gait.PoseRefs{
			LeftLeg:      &gait.Transform{},
			RightLeg:     &gait.Transform{},
			LeftArm:      &gait.Transform{},
			RightArm:     &gait.Transform{},
			Torso:        &gait.Transform{},
			Hips:         &gait.Transform{},
			Head:         &gait.Transform{},
			LeftShin:     &gait.Transform{},
			RightShin:    &gait.Transform{},
			LeftForearm:  &gait.Transform{},
			RightForearm: &gait.Transform{},
		},
	}
}

// PositionComponent 实体在场景中的位置（米）
// 行走与跑步时 GaitSystem 沿 +X 按步幅推进
type PositionComponent struct {
	X, Y, Z float64
}
