// Package gait generates procedural walking motion for worker skeletons.
//
// The package is split in three layers:
//   - curve functions mapping a normalized cycle phase to a dimensionless value
//   - parameter presets (idle/walk/run/sneak/tired) and their blending
//   - pose evaluation and the damping applicator that drives live transforms
//
// Everything here is single-threaded and allocation free on the per-frame path.
package gait

import (
	"math"

	"github.com/gonewx/milltwin/pkg/utils"
)

const twoPi = 2 * math.Pi

// 相位偏移常量
const (
	// kneePhaseShift 膝盖屈曲峰值相对腿摆动的提前量（周期比例）
	kneePhaseShift = 0.15
	// companionLegOffset 另一条腿相差半个周期
	companionLegOffset = 0.5
	// armPhaseOffset 手臂相对腿的相位差，约 187°，刻意不取 180° 以免动作过于机械
	armPhaseOffset = 0.52
	// pushOffHarmonic 二次谐波幅度：蹬地比摆腿快
	pushOffHarmonic = 0.1
)

// LegSwingCurve returns the primary leg oscillation for phase.
// 公式：sin(2πp) + 0.1·sin(4πp)
func LegSwingCurve(phase float64) float64 {
	return math.Sin(twoPi*phase) + pushOffHarmonic*math.Sin(2*twoPi*phase)
}

// KneeFlexionCurve returns a single sharp peak during the swing sub-phase and
// exactly zero during stance. The result is never negative.
// 公式：max(0, sin(2π(p+0.15)))²
func KneeFlexionCurve(phase float64) float64 {
	s := math.Sin(twoPi * (phase + kneePhaseShift))
	if s <= 0 {
		return 0
	}
	return s * s
}

// RightKneeFlexion 右腿使用原始相位
func RightKneeFlexion(phase float64) float64 {
	return KneeFlexionCurve(phase)
}

// LeftKneeFlexion 左腿相差半个周期
func LeftKneeFlexion(phase float64) float64 {
	return KneeFlexionCurve(utils.Wrap01(phase + companionLegOffset))
}

// VerticalBobCurve peaks twice per cycle, once per footfall, and is lowest at
// heel strike (phase 0 and 0.5).
func VerticalBobCurve(phase float64) float64 {
	return math.Abs(math.Sin(twoPi * phase))
}

// HipRotationCurve is the pelvis yaw oscillation, in phase with the legs.
func HipRotationCurve(phase float64) float64 {
	return math.Sin(twoPi * phase)
}

// ArmSwingCurve drives the arms from the same oscillator with a small offset.
func ArmSwingCurve(phase float64) float64 {
	return math.Sin(twoPi * utils.Wrap01(phase+armPhaseOffset))
}

// AdvancePhase moves a cycle phase forward by delta*cycleSpeed and wraps the
// result into [0,1). The phase is never reset on state changes.
func AdvancePhase(phase, delta, cycleSpeed float64) float64 {
	return utils.Wrap01(phase + delta*cycleSpeed)
}
