package effects

import (
	"math"
	"math/rand"
)

// 烟雾参数
const (
	// SmokeLifetimeRate 每秒寿命增量
	SmokeLifetimeRate = 0.8
	// SmokeRiseMin/SmokeRiseMax 重生时的上升速度范围（单位/秒）
	SmokeRiseMin = 1.2
	SmokeRiseMax = 2.0
	// SmokeLateralSpeed 重生时水平速度范围 ±0.2
	SmokeLateralSpeed = 0.2
	// SmokeTurbulence 水平随机加速度幅度（单位/秒²）
	SmokeTurbulence = 0.6
	// SmokeVerticalDecayRate 竖直速度衰减率，约为 -60·ln(0.98)，60fps 下等价于每帧 ×0.98
	SmokeVerticalDecayRate = 1.2121623
	// DefaultSmokeSpawnRadius 默认重生圆盘半径
	DefaultSmokeSpawnRadius = 0.3
)

// 应急灯参数
const (
	flickerFrequency = 8.0
	flickerDepth     = 0.2
	flickerBase      = 0.8
	flickerGain      = 2.0
)

// DefaultRainFallSpeed 默认雨滴下落速度：每帧 0.2，按 60fps 换算为每秒 12
const DefaultRainFallSpeed = 12.0

// RandomSource 随机数来源，*rand.Rand 满足该接口
type RandomSource interface {
	Float64() float64
}

type globalSource struct{}

func (globalSource) Float64() float64 { return rand.Float64() }

func sourceOrGlobal(rng RandomSource) RandomSource {
	if rng == nil {
		return globalSource{}
	}
	return rng
}

// AnimateSmokeParticles advances every smoke particle by delta seconds.
//
// 寿命超过 1 的粒子在发射点圆盘内重生，并获得向上的随机速度；
// 其余粒子做欧拉积分，叠加水平湍流，并按指数衰减竖直速度。
// Buffer 为 nil 时直接返回。
func AnimateSmokeParticles(e *SmokeParticles, delta float64, rng RandomSource) {
	if e == nil || e.Buffer == nil {
		return
	}
	rng = sourceOrGlobal(rng)

	pos := e.Buffer.Positions
	vel := e.Velocities
	n := min(len(pos)/3, len(vel)/3, len(e.Lifetimes))
	decay := math.Exp(-SmokeVerticalDecayRate * delta)

	for i := 0; i < n; i++ {
		ix, iy, iz := i*3, i*3+1, i*3+2

		e.Lifetimes[i] += delta * SmokeLifetimeRate
		if e.Lifetimes[i] > 1 {
			respawnSmoke(e, i, rng)
			continue
		}

		pos[ix] += vel[ix] * delta
		pos[iy] += vel[iy] * delta
		pos[iz] += vel[iz] * delta

		vel[ix] += (rng.Float64() - 0.5) * SmokeTurbulence * delta
		vel[iz] += (rng.Float64() - 0.5) * SmokeTurbulence * delta
		vel[iy] *= decay
	}
}

// respawnSmoke 在发射圆盘内均匀重生第 i 个粒子
func respawnSmoke(e *SmokeParticles, i int, rng RandomSource) {
	radius := e.SpawnRadius
	if radius <= 0 {
		radius = DefaultSmokeSpawnRadius
	}
	r := math.Sqrt(rng.Float64()) * radius
	a := rng.Float64() * 2 * math.Pi

	pos := e.Buffer.Positions
	pos[i*3] = e.Origin.X + r*math.Cos(a)
	pos[i*3+1] = e.Origin.Y
	pos[i*3+2] = e.Origin.Z + r*math.Sin(a)

	vel := e.Velocities
	vel[i*3] = (rng.Float64()*2 - 1) * SmokeLateralSpeed
	vel[i*3+1] = SmokeRiseMin + rng.Float64()*(SmokeRiseMax-SmokeRiseMin)
	vel[i*3+2] = (rng.Float64()*2 - 1) * SmokeLateralSpeed

	e.Lifetimes[i] = 0
}

// FlickerIntensity 返回 elapsed 秒时的应急灯强度
// 公式：(sin(8t)·0.2 + 0.8)·2，范围 [1.2, 2.0]
func FlickerIntensity(elapsed float64) float64 {
	return (math.Sin(flickerFrequency*elapsed)*flickerDepth + flickerBase) * flickerGain
}

// AnimateEmergencyLighting sets the light intensity from global elapsed time.
// Inactive entries and entries without a light are left untouched.
func AnimateEmergencyLighting(e *EmergencyLighting, elapsed float64) {
	if e == nil || e.Light == nil || !e.Active {
		return
	}
	e.Light.Intensity = FlickerIntensity(elapsed)
}

// AnimateRainParticles lowers every drop by FallSpeed*delta and respawns drops
// that reach the ground at a random point of the area at ceiling height.
func AnimateRainParticles(e *RainParticles, delta float64, rng RandomSource) {
	if e == nil || e.Buffer == nil {
		return
	}
	rng = sourceOrGlobal(rng)

	speed := e.FallSpeed
	if speed <= 0 {
		speed = DefaultRainFallSpeed
	}

	pos := e.Buffer.Positions
	n := len(pos) / 3
	for i := 0; i < n; i++ {
		iy := i*3 + 1
		pos[iy] -= speed * delta
		if pos[iy] <= e.GroundLevel {
			pos[i*3] = e.Center.X + (rng.Float64()-0.5)*e.Area
			pos[iy] = e.CeilingHeight
			pos[i*3+2] = e.Center.Z + (rng.Float64()-0.5)*e.Area
		}
	}
}
