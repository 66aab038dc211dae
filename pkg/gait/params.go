package gait

import (
	"fmt"
	"strings"

	"github.com/gonewx/milltwin/pkg/utils"
)

// Params 步态参数
//
// 13 个标量系数，分别乘到对应的曲线上。Params 是值类型：
// 预设通过值返回，运行时状态永远是混合后的副本，不会修改预设本身。
type Params struct {
	HipSwing                float64 // 髋部前后摆幅（弧度）
	KneeFlexion             float64 // 膝盖最大屈曲
	AnkleRoll               float64 // 蹬地时骨盆前倾脉冲
	ShoulderSwing           float64 // 肩部摆幅
	ElbowBend               float64 // 肘部弯曲
	HipRotation             float64 // 骨盆偏航
	HipDrop                 float64 // 骨盆侧倾
	TorsoLean               float64 // 躯干前倾
	TorsoSway               float64 // 躯干左右摆
	ShoulderCounterRotation float64 // 肩部反向扭转
	VerticalBob             float64 // 身体上下起伏
	HeadBob                 float64 // 头部点动
	CycleSpeed              float64 // 每秒推进的周期数
}

// Canonical presets.
var (
	idlePreset = Params{
		HipSwing: 0.02, KneeFlexion: 0.02, AnkleRoll: 0,
		ShoulderSwing: 0.02, ElbowBend: 0.05,
		HipRotation: 0.01, HipDrop: 0.005,
		TorsoLean: 0, TorsoSway: 0.01, ShoulderCounterRotation: 0.01,
		VerticalBob: 0.005, HeadBob: 0.01,
		CycleSpeed: 0.3,
	}
	walkPreset = Params{
		HipSwing: 0.25, KneeFlexion: 0.45, AnkleRoll: 0.1,
		ShoulderSwing: 0.2, ElbowBend: 0.15,
		HipRotation: 0.06, HipDrop: 0.02,
		TorsoLean: 0.05, TorsoSway: 0.02, ShoulderCounterRotation: 0.04,
		VerticalBob: 0.03, HeadBob: 0.02,
		CycleSpeed: 1.0,
	}
	runPreset = Params{
		HipSwing: 0.5, KneeFlexion: 0.9, AnkleRoll: 0.2,
		ShoulderSwing: 0.45, ElbowBend: 0.9,
		HipRotation: 0.1, HipDrop: 0.03,
		TorsoLean: 0.2, TorsoSway: 0.03, ShoulderCounterRotation: 0.08,
		VerticalBob: 0.08, HeadBob: 0.04,
		CycleSpeed: 2.2,
	}
	sneakPreset = Params{
		HipSwing: 0.15, KneeFlexion: 0.6, AnkleRoll: 0.05,
		ShoulderSwing: 0.08, ElbowBend: 0.3,
		HipRotation: 0.03, HipDrop: 0.01,
		TorsoLean: 0.25, TorsoSway: 0.01, ShoulderCounterRotation: 0.02,
		VerticalBob: 0.01, HeadBob: 0.01,
		CycleSpeed: 0.6,
	}
	tiredPreset = Params{
		HipSwing: 0.18, KneeFlexion: 0.3, AnkleRoll: 0.05,
		ShoulderSwing: 0.1, ElbowBend: 0.1,
		HipRotation: 0.05, HipDrop: 0.04,
		TorsoLean: 0.12, TorsoSway: 0.05, ShoulderCounterRotation: 0.03,
		VerticalBob: 0.04, HeadBob: 0.05,
		CycleSpeed: 0.7,
	}
)

// Idle returns the idle preset.
func Idle() Params { return idlePreset }

// Walk returns the walk preset.
func Walk() Params { return walkPreset }

// Run returns the run preset.
func Run() Params { return runPreset }

// Sneak returns the sneak preset.
func Sneak() Params { return sneakPreset }

// Tired returns the tired preset.
func Tired() Params { return tiredPreset }

// BlendGaitParams 逐字段线性插值
//
// blended = from + (to - from) * t，各字段独立计算。
// t 不做限制：超出 [0,1] 时外推，由调用方保证范围。
func BlendGaitParams(from, to Params, t float64) Params {
	return Params{
		HipSwing:                utils.Lerp(from.HipSwing, to.HipSwing, t),
		KneeFlexion:             utils.Lerp(from.KneeFlexion, to.KneeFlexion, t),
		AnkleRoll:               utils.Lerp(from.AnkleRoll, to.AnkleRoll, t),
		ShoulderSwing:           utils.Lerp(from.ShoulderSwing, to.ShoulderSwing, t),
		ElbowBend:               utils.Lerp(from.ElbowBend, to.ElbowBend, t),
		HipRotation:             utils.Lerp(from.HipRotation, to.HipRotation, t),
		HipDrop:                 utils.Lerp(from.HipDrop, to.HipDrop, t),
		TorsoLean:               utils.Lerp(from.TorsoLean, to.TorsoLean, t),
		TorsoSway:               utils.Lerp(from.TorsoSway, to.TorsoSway, t),
		ShoulderCounterRotation: utils.Lerp(from.ShoulderCounterRotation, to.ShoulderCounterRotation, t),
		VerticalBob:             utils.Lerp(from.VerticalBob, to.VerticalBob, t),
		HeadBob:                 utils.Lerp(from.HeadBob, to.HeadBob, t),
		CycleSpeed:              utils.Lerp(from.CycleSpeed, to.CycleSpeed, t),
	}
}

// MovementState 由上层的工人模拟提供
type MovementState int

const (
	StateIdle MovementState = iota
	StateWalking
	StateRunning
	StateSitting
)

var movementStateNames = map[MovementState]string{
	StateIdle:    "idle",
	StateWalking: "walking",
	StateRunning: "running",
	StateSitting: "sitting",
}

func (s MovementState) String() string {
	if name, ok := movementStateNames[s]; ok {
		return name
	}
	return fmt.Sprintf("MovementState(%d)", int(s))
}

// ParseMovementState converts a state name ("idle", "walking", ...) into a
// MovementState. Matching is case-insensitive.
func ParseMovementState(name string) (MovementState, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	for s, sn := range movementStateNames {
		if sn == n {
			return s, nil
		}
	}
	return StateIdle, fmt.Errorf("unknown movement state %q", name)
}

// 疲劳混合阈值
const (
	// FatigueOnset 疲劳开始影响步态的水平
	FatigueOnset = 0.2
	// FatigueRamp 从开始到完全疲劳的跨度（0.2 → 0.8）
	FatigueRamp = 0.6
)

// FatigueBlend returns how far a walking gait is pulled toward the tired
// preset for a fatigue level: 0 at or below 0.2, 1 at or above 0.8.
func FatigueBlend(fatigue float64) float64 {
	return utils.Clamp01((fatigue - FatigueOnset) / FatigueRamp)
}

// PresetTable 一组可整体替换的预设
//
// 默认值来自 DefaultPresets()，配置文件可以覆盖部分字段。
type PresetTable struct {
	Idle  Params
	Walk  Params
	Run   Params
	Sneak Params
	Tired Params
}

// DefaultPresets returns the canonical preset table.
func DefaultPresets() PresetTable {
	return PresetTable{
		Idle:  idlePreset,
		Walk:  walkPreset,
		Run:   runPreset,
		Sneak: sneakPreset,
		Tired: tiredPreset,
	}
}

// Lookup 按名称查找预设
func (pt PresetTable) Lookup(name string) (Params, bool) {
	switch strings.ToLower(name) {
	case "idle":
		return pt.Idle, true
	case "walk":
		return pt.Walk, true
	case "run":
		return pt.Run, true
	case "sneak":
		return pt.Sneak, true
	case "tired":
		return pt.Tired, true
	}
	return Params{}, false
}

// ForState 根据移动状态与疲劳度选择参数
//
// 映射规则：
//   - running → Run
//   - walking → Walk；疲劳 > 0.2 时向 Tired 混合，0.8 及以上完全疲劳
//   - sitting / idle / 其他 → Idle
//
// 疲劳只影响行走，跑步、站立和坐下时忽略。
func (pt PresetTable) ForState(state MovementState, fatigue float64) Params {
	switch state {
	case StateRunning:
		return pt.Run
	case StateWalking:
		if fatigue > FatigueOnset {
			return BlendGaitParams(pt.Walk, pt.Tired, FatigueBlend(fatigue))
		}
		return pt.Walk
	default:
		return pt.Idle
	}
}

// GetGaitParamsForState selects parameters from the canonical presets.
func GetGaitParamsForState(state MovementState, fatigue float64) Params {
	return DefaultPresets().ForState(state, fatigue)
}
