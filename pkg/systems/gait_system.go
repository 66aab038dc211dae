package systems

import (
	"log"

	"github.com/gonewx/milltwin/pkg/components"
	"github.com/gonewx/milltwin/pkg/ecs"
	"github.com/gonewx/milltwin/pkg/gait"
	"github.com/gonewx/milltwin/pkg/utils"
)

// DefaultParamBlendTime 参数切换默认时间常数（秒）
const DefaultParamBlendTime = 0.35

// blendFactorTime 整体幅度淡入淡出的时间常数（秒）
const blendFactorTime = 0.25

// GaitSystem drives every worker skeleton from its movement state.
//
// 每个实体每帧：
//  1. 按质量档位节流（跳过的帧累计 dt）
//  2. 选出目标预设，当前参数以指数方式向其靠拢
//  3. BlendFactor 坐下时趋向 0，其他状态趋向 1
//  4. 推进周期相位（状态切换不重置）
//  5. 计算姿态、按档位裁剪，再通过阻尼写入骨骼句柄
//  6. 行走/跑步时按步幅推进 PositionComponent（可选组件）
//
// Follows ECS zero-coupling principle: communicates only through EntityManager.
type GaitSystem struct {
	entityManager *ecs.EntityManager
	presets       gait.PresetTable

	// 默认值，组件未设置时使用
	smoothing      float64
	paramBlendTime float64

	frame uint64
}

// NewGaitSystem 创建步态系统
//
// 参数:
//   - em: 实体管理器
//   - presets: 预设表（通常来自配置文件，覆盖后的副本）
//   - smoothing: 姿态阻尼时间常数，<= 0 时使用 gait.DefaultSmoothing
//   - paramBlendTime: 参数切换时间常数，<= 0 时使用 DefaultParamBlendTime
func NewGaitSystem(em *ecs.EntityManager, presets gait.PresetTable, smoothing, paramBlendTime float64) *GaitSystem {
	if smoothing <= 0 {
		smoothing = gait.DefaultSmoothing
	}
	if paramBlendTime <= 0 {
		paramBlendTime = DefaultParamBlendTime
	}
	log.Printf("[GaitSystem] Initialized (smoothing=%.3fs, paramBlendTime=%.3fs)", smoothing, paramBlendTime)
	return &GaitSystem{
		entityManager:  em,
		presets:        presets,
		smoothing:      smoothing,
		paramBlendTime: paramBlendTime,
	}
}

// Update 更新所有工人的步态
// dt is the delta time in seconds since the last frame.
func (s *GaitSystem) Update(dt float64) {
	s.frame++

	entities := ecs.GetEntitiesWith3[
		*components.MovementComponent,
		*components.GaitComponent,
		*components.SkeletonComponent,
	](s.entityManager)

	for _, id := range entities {
		movement, ok := ecs.GetComponent[*components.MovementComponent](s.entityManager, id)
		if !ok {
			continue
		}
		gaitComp, ok := ecs.GetComponent[*components.GaitComponent](s.entityManager, id)
		if !ok {
			continue
		}
		skeleton, ok := ecs.GetComponent[*components.SkeletonComponent](s.entityManager, id)
		if !ok {
			continue
		}

		gaitComp.PendingDelta += dt
		if interval := gaitComp.Tier.ThrottleInterval(); interval > 1 && s.frame%uint64(interval) != 0 {
			continue
		}
		step := gaitComp.PendingDelta
		gaitComp.PendingDelta = 0

		s.step(movement, gaitComp, skeleton, step)

		if pos, ok := ecs.GetComponent[*components.PositionComponent](s.entityManager, id); ok && travels(movement.State) {
			pos.X += gait.RootMotionDelta(gaitComp.Params, gaitComp.BlendFactor, gait.DefaultLegLength, step)
		}
	}
}

// travels 只有行走和跑步会产生位移
func travels(state gait.MovementState) bool {
	return state == gait.StateWalking || state == gait.StateRunning
}

// step 推进单个实体
func (s *GaitSystem) step(movement *components.MovementComponent, g *components.GaitComponent, skeleton *components.SkeletonComponent, dt float64) {
	blendTime := g.ParamBlendTime
	if blendTime <= 0 {
		blendTime = s.paramBlendTime
	}
	smoothing := g.Smoothing
	if smoothing <= 0 {
		smoothing = s.smoothing
	}

	target := s.presets.ForState(movement.State, movement.Fatigue)
	g.Params = gait.BlendGaitParams(g.Params, target, utils.DampFactor(dt, blendTime))

	blendTarget := 1.0
	if movement.State == gait.StateSitting {
		blendTarget = 0
	}
	g.BlendFactor = utils.Damp(g.BlendFactor, blendTarget, blendFactorTime, dt)

	g.CyclePhase = gait.AdvancePhase(g.CyclePhase, dt, g.Params.CycleSpeed)

	g.LastPose = gait.CalculateGaitPose(g.CyclePhase, g.Params, g.BlendFactor).ForTier(g.Tier)
	gait.ApplyGaitPose(g.LastPose, skeleton.Refs, dt, smoothing)
}

// SpawnWorker 创建一个带完整骨骼的工人实体
//
// 初始参数直接取目标预设，避免出生时从零淡入。
func SpawnWorker(em *ecs.EntityManager, presets gait.PresetTable, state gait.MovementState, tier gait.QualityTier, x, z float64) ecs.EntityID {
	id := em.CreateEntity()
	em.AddComponent(id, &components.MovementComponent{State: state})
	em.AddComponent(id, &components.GaitComponent{
		Params:      presets.ForState(state, 0),
		BlendFactor: 1,
		Tier:        tier,
	})
	em.AddComponent(id, components.NewSkeletonComponent())
	em.AddComponent(id, &components.PositionComponent{X: x, Z: z})
	return id
}
