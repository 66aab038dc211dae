package gait

import "github.com/gonewx/milltwin/pkg/utils"

// DefaultSmoothing 默认阻尼时间常数（秒）
const DefaultSmoothing = 0.15

// Transform is a live, externally owned transform handle. The applicator only
// writes numeric fields on it; it never creates or frees one.
type Transform struct {
	Rotation Vec3
	Position Vec3
}

// PoseRefs 姿态目标句柄
//
// 每个字段都可以为 nil，缺失的句柄直接跳过，不视为错误。
// 例如没有头部引用的实体仍然可以驱动腿部动画。
type PoseRefs struct {
	LeftLeg  *Transform
	RightLeg *Transform
	LeftArm  *Transform
	RightArm *Transform
	Torso    *Transform
	Hips     *Transform
	Head     *Transform

	// 可选的次级关节：膝盖与肘部屈曲
	LeftShin     *Transform
	RightShin    *Transform
	LeftForearm  *Transform
	RightForearm *Transform
}

// ApplyGaitPose damps every present handle toward the pose.
//
// 每个轴执行一次帧率无关的指数阻尼：
//
//	value ← value + (target - value) · (1 - exp(-delta/smoothing))
//
// 躯干侧摆（Torso.Rotation.Z）与髋部横移（Hips.Position.X）使用一半的时间常数，
// 响应比旋转轴更快。delta <= 0 时不做任何修改；smoothing <= 0 时直接到达目标。
func ApplyGaitPose(pose GaitPose, refs PoseRefs, delta, smoothing float64) {
	if delta <= 0 {
		return
	}

	k := utils.DampFactor(delta, smoothing)
	fast := utils.DampFactor(delta, smoothing/2)

	if t := refs.LeftLeg; t != nil {
		t.Rotation.X = approach(t.Rotation.X, pose.LeftHip.X, k)
		t.Rotation.Z = approach(t.Rotation.Z, pose.LeftHip.Z, k)
	}
	if t := refs.RightLeg; t != nil {
		t.Rotation.X = approach(t.Rotation.X, pose.RightHip.X, k)
		t.Rotation.Z = approach(t.Rotation.Z, pose.RightHip.Z, k)
	}
	if t := refs.LeftShin; t != nil {
		t.Rotation.X = approach(t.Rotation.X, pose.LeftKnee, k)
	}
	if t := refs.RightShin; t != nil {
		t.Rotation.X = approach(t.Rotation.X, pose.RightKnee, k)
	}

	if t := refs.LeftArm; t != nil {
		t.Rotation.X = approach(t.Rotation.X, pose.LeftShoulder.X, k)
		t.Rotation.Z = approach(t.Rotation.Z, pose.LeftShoulder.Z, k)
	}
	if t := refs.RightArm; t != nil {
		t.Rotation.X = approach(t.Rotation.X, pose.RightShoulder.X, k)
		t.Rotation.Z = approach(t.Rotation.Z, pose.RightShoulder.Z, k)
	}
	// 肘部向内弯曲为负方向
	if t := refs.LeftForearm; t != nil {
		t.Rotation.X = approach(t.Rotation.X, -pose.LeftElbow, k)
	}
	if t := refs.RightForearm; t != nil {
		t.Rotation.X = approach(t.Rotation.X, -pose.RightElbow, k)
	}

	if t := refs.Torso; t != nil {
		t.Rotation.X = approach(t.Rotation.X, pose.Torso.X, k)
		t.Rotation.Y = approach(t.Rotation.Y, pose.Torso.Y, k)
		t.Rotation.Z = approach(t.Rotation.Z, pose.Torso.Z, fast)
	}

	if t := refs.Hips; t != nil {
		t.Rotation.X = approach(t.Rotation.X, pose.Pelvis.X, k)
		t.Rotation.Y = approach(t.Rotation.Y, pose.Pelvis.Y, k)
		t.Rotation.Z = approach(t.Rotation.Z, pose.Pelvis.Z, k)
		t.Position.Y = approach(t.Position.Y, pose.VerticalOffset, k)
		t.Position.X = approach(t.Position.X, pose.LateralOffset, fast)
	}

	if t := refs.Head; t != nil {
		t.Rotation.X = approach(t.Rotation.X, pose.Head.X, k)
		t.Rotation.Y = approach(t.Rotation.Y, pose.Head.Y, k)
	}
}

func approach(value, target, k float64) float64 {
	if k >= 1 {
		return target
	}
	return value + (target-value)*k
}
