// Package effects advances the scene's dynamic visual effects (smoke stacks,
// emergency lights, rain) from one shared per-frame tick.
//
// Effect owners register an Entry with a Registry when they mount and
// unregister when they unmount. The registry only schedules: every buffer and
// handle referenced by an entry stays owned by the component that created it.
package effects

import "fmt"

// Kind 特效类型标签
type Kind int

const (
	KindSmokeParticles Kind = iota
	KindEmergencyLighting
	KindRainParticles
)

func (k Kind) String() string {
	switch k {
	case KindSmokeParticles:
		return "smokeParticles"
	case KindEmergencyLighting:
		return "emergencyLighting"
	case KindRainParticles:
		return "rainParticles"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Entry is a registered effect instance. The set of implementations is closed:
// only this package can satisfy the interface, and every kind must be handled
// by a visitor, so adding a kind fails to compile until all dispatchers cover it.
type Entry interface {
	Kind() Kind
	accept(v visitor)
}

// visitor 每种特效对应一个方法
type visitor interface {
	visitSmoke(e *SmokeParticles)
	visitLighting(e *EmergencyLighting)
	visitRain(e *RainParticles)
}

// Point 场景坐标
type Point struct {
	X, Y, Z float64
}

// ParticleBuffer 粒子几何数据
//
// Positions 为扁平的 xyz 数组（长度 3n），与 GPU 顶点属性布局一致。
// 由注册特效的组件分配和释放。
type ParticleBuffer struct {
	Positions []float64
}

// Count returns the number of particles in the buffer.
func (b *ParticleBuffer) Count() int {
	if b == nil {
		return 0
	}
	return len(b.Positions) / 3
}

// SmokeParticles 烟雾粒子特效
type SmokeParticles struct {
	Buffer     *ParticleBuffer // nil 时本帧跳过
	Velocities []float64       // 扁平 xyz，长度与 Buffer.Positions 相同
	Lifetimes  []float64       // 每个粒子的归一化寿命，超过 1 时重生

	Origin      Point   // 发射点
	SpawnRadius float64 // 重生圆盘半径
}

func (e *SmokeParticles) Kind() Kind       { return KindSmokeParticles }
func (e *SmokeParticles) accept(v visitor) { v.visitSmoke(e) }

// Light 外部持有的灯光句柄
type Light struct {
	Intensity float64
}

// EmergencyLighting 应急灯闪烁
type EmergencyLighting struct {
	Light  *Light // nil 时本帧跳过
	Active bool
}

func (e *EmergencyLighting) Kind() Kind       { return KindEmergencyLighting }
func (e *EmergencyLighting) accept(v visitor) { v.visitLighting(e) }

// RainParticles 雨滴粒子
type RainParticles struct {
	Buffer *ParticleBuffer // nil 时本帧跳过

	FallSpeed     float64 // 下落速度（单位/秒），0 使用 DefaultRainFallSpeed
	GroundLevel   float64 // 地面高度，到达后重生
	CeilingHeight float64 // 重生高度
	Area          float64 // 重生区域边长（以 Center 为中心的正方形）
	Center        Point   // 重生区域中心（使用 X/Z）
}

func (e *RainParticles) Kind() Kind       { return KindRainParticles }
func (e *RainParticles) accept(v visitor) { v.visitRain(e) }
