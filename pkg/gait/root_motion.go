package gait

import "math"

// DefaultLegLength 髋关节到脚底的默认长度（米）
const DefaultLegLength = 0.9

// MaxRootMotionStep 单次根运动允许的最大时间步（秒）
//
// 暂停恢复或长时间卡顿后的第一帧 delta 可能很大，
// 超过此值时按此值计算，避免工人瞬移。
const MaxRootMotionStep = 0.25

// StrideLength returns the distance covered in one full cycle (two steps) for
// the given parameters: each step moves the foot from +HipSwing to -HipSwing.
func StrideLength(params Params, legLength float64) float64 {
	return 4 * legLength * math.Sin(math.Abs(params.HipSwing))
}

// RootMotionDelta 计算与步伐同步的前进距离，消除滑步
//
// 参数:
//   - params: 当前混合后的步态参数
//   - blendFactor: 整体幅度（坐下时为 0，不前进）
//   - legLength: 腿长，<= 0 时使用 DefaultLegLength
//   - delta: 时间步（秒），超过 MaxRootMotionStep 时截断
//
// 返回:
//   - 沿前进方向的位移（米），始终 >= 0
func RootMotionDelta(params Params, blendFactor, legLength, delta float64) float64 {
	if delta <= 0 || blendFactor <= 0 {
		return 0
	}
	if delta > MaxRootMotionStep {
		delta = MaxRootMotionStep
	}
	if legLength <= 0 {
		legLength = DefaultLegLength
	}
	return StrideLength(params, legLength) * math.Abs(params.CycleSpeed) * blendFactor * delta
}
