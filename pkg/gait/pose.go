package gait

import "math"

// Vec3 三轴数值（旋转用弧度，位置用场景单位）
type Vec3 struct {
	X, Y, Z float64
}

// JointRotation2 双轴关节旋转：X 为前后摆动，Z 为侧向
type JointRotation2 struct {
	X, Z float64
}

// HeadRotation 头部只有俯仰与偏航
type HeadRotation struct {
	X, Y float64
}

// GaitPose is a one-shot pose snapshot. It carries no identity and is
// recomputed from scratch on every CalculateGaitPose call.
type GaitPose struct {
	LeftHip       JointRotation2
	RightHip      JointRotation2
	LeftKnee      float64
	RightKnee     float64
	LeftShoulder  JointRotation2
	RightShoulder JointRotation2
	LeftElbow     float64
	RightElbow    float64
	Pelvis        Vec3
	Torso         Vec3
	Head          HeadRotation

	VerticalOffset float64
	LateralOffset  float64
}

// 次级动作系数
const (
	shoulderAbduction = 0.2 // 肩部外展随起伏的比例
	elbowRestFraction = 0.6 // 肘部静止弯曲比例
	elbowSwingGain    = 0.4 // 手臂前摆时额外弯曲
	headLeanComp      = 0.5 // 头部抵消躯干前倾，保持视线水平
	headYawFraction   = 0.5 // 头部随肩部反向扭转的比例
	lateralSwayGain   = 0.5 // 身体横移相对躯干摆动
)

// CalculateGaitPose 计算单帧姿态
//
// 每条曲线只求值一次，乘以对应系数和 blendFactor。
// blendFactor 通常在 [0,1]，用于状态切换时淡入淡出整体幅度。
//
// 左右对称约定：
//   - 腿：右 +legSwing，左 -legSwing
//   - 手臂：右 -armSwing，左 +armSwing
//   - 髋部侧倾：右 +sin，左 -sin
//
// 对任意有限输入都返回有限值；调用方应传入已折回 [0,1) 的相位，
// 未折回的相位同样周期有效，只是不直观。
func CalculateGaitPose(cyclePhase float64, params Params, blendFactor float64) GaitPose {
	b := blendFactor

	legSwing := LegSwingCurve(cyclePhase)
	armSwing := ArmSwingCurve(cyclePhase)
	rightKnee := RightKneeFlexion(cyclePhase)
	leftKnee := LeftKneeFlexion(cyclePhase)
	bob := VerticalBobCurve(cyclePhase)
	hipRot := HipRotationCurve(cyclePhase)
	sway := math.Sin(twoPi * cyclePhase)
	headNod := math.Cos(2 * twoPi * cyclePhase)

	hipSwing := legSwing * params.HipSwing * b
	hipDrop := sway * params.HipDrop * b
	shoulderSwing := armSwing * params.ShoulderSwing * b
	abduction := bob * params.ShoulderSwing * shoulderAbduction * b
	counter := hipRot * params.ShoulderCounterRotation * b

	return GaitPose{
		RightHip: JointRotation2{X: hipSwing, Z: hipDrop},
		LeftHip:  JointRotation2{X: -hipSwing, Z: -hipDrop},

		RightKnee: rightKnee * params.KneeFlexion * b,
		LeftKnee:  leftKnee * params.KneeFlexion * b,

		RightShoulder: JointRotation2{X: -shoulderSwing, Z: -abduction},
		LeftShoulder:  JointRotation2{X: shoulderSwing, Z: abduction},

		RightElbow: params.ElbowBend * (elbowRestFraction + elbowSwingGain*math.Max(0, armSwing)) * b,
		LeftElbow:  params.ElbowBend * (elbowRestFraction + elbowSwingGain*math.Max(0, -armSwing)) * b,

		Pelvis: Vec3{
			X: bob * params.AnkleRoll * b,
			Y: hipRot * params.HipRotation * b,
			Z: hipDrop,
		},
		Torso: Vec3{
			X: params.TorsoLean * b,
			Y: -counter,
			Z: sway * params.TorsoSway * b,
		},
		Head: HeadRotation{
			X: headNod*params.HeadBob*b - params.TorsoLean*headLeanComp*b,
			Y: counter * headYawFraction,
		},

		VerticalOffset: bob * params.VerticalBob * b,
		LateralOffset:  sway * params.TorsoSway * lateralSwayGain * b,
	}
}
