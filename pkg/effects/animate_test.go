package effects

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixedSource 返回固定值的随机源
type fixedSource float64

func (f fixedSource) Float64() float64 { return float64(f) }

func TestAnimateSmokeParticles_Respawn(t *testing.T) {
	e := newSmoke(1)
	e.Origin = Point{X: 5, Y: 1, Z: -3}
	e.SpawnRadius = 0.3
	e.Lifetimes[0] = 0.99
	e.Buffer.Positions[1] = 42

	AnimateSmokeParticles(e, 0.1, rand.New(rand.NewSource(1)))

	assert.Zero(t, e.Lifetimes[0], "lifetime resets on respawn")
	pos := e.Buffer.Positions
	assert.InDelta(t, 1, pos[1], 1e-12, "respawned at origin height")
	dx, dz := pos[0]-5, pos[2]+3
	assert.LessOrEqual(t, math.Hypot(dx, dz), 0.3+1e-12, "respawn outside spawn disk")

	vel := e.Velocities
	assert.GreaterOrEqual(t, vel[1], SmokeRiseMin)
	assert.LessOrEqual(t, vel[1], SmokeRiseMax)
	assert.LessOrEqual(t, math.Abs(vel[0]), SmokeLateralSpeed)
	assert.LessOrEqual(t, math.Abs(vel[2]), SmokeLateralSpeed)
}

func TestAnimateSmokeParticles_Integrate(t *testing.T) {
	e := newSmoke(1)
	e.Velocities[0], e.Velocities[1], e.Velocities[2] = 0.1, 2, -0.1

	// 0.5 使湍流项为零
	AnimateSmokeParticles(e, 0.5, fixedSource(0.5))

	pos := e.Buffer.Positions
	assert.InDelta(t, 0.05, pos[0], 1e-12)
	assert.InDelta(t, 1.0, pos[1], 1e-12)
	assert.InDelta(t, -0.05, pos[2], 1e-12)
	assert.InDelta(t, 0.4, e.Lifetimes[0], 1e-12)

	assert.InDelta(t, 0.1, e.Velocities[0], 1e-12, "no turbulence at centred random")
	assert.InDelta(t, 2*math.Exp(-SmokeVerticalDecayRate*0.5), e.Velocities[1], 1e-12)
}

// TestAnimateSmokeParticles_DecayMatchesLegacyFrame 60fps 下等价于每帧 ×0.98
func TestAnimateSmokeParticles_DecayMatchesLegacyFrame(t *testing.T) {
	e := newSmoke(1)
	e.Velocities[1] = 1
	AnimateSmokeParticles(e, 1.0/60, fixedSource(0.5))
	assert.InDelta(t, 0.98, e.Velocities[1], 1e-6)
}

// TestAnimateSmokeParticles_DecayFramerateIndependent 衰减与帧率无关
func TestAnimateSmokeParticles_DecayFramerateIndependent(t *testing.T) {
	a := newSmoke(1)
	a.Velocities[1] = 1
	AnimateSmokeParticles(a, 1.0/30, fixedSource(0.5))

	b := newSmoke(1)
	b.Velocities[1] = 1
	AnimateSmokeParticles(b, 1.0/60, fixedSource(0.5))
	AnimateSmokeParticles(b, 1.0/60, fixedSource(0.5))

	assert.InDelta(t, a.Velocities[1], b.Velocities[1], 1e-12)
}

func TestAnimateSmokeParticles_MismatchedBuffers(t *testing.T) {
	e := &SmokeParticles{
		Buffer:     &ParticleBuffer{Positions: make([]float64, 9)},
		Velocities: make([]float64, 3),
		Lifetimes:  make([]float64, 2),
	}
	require.NotPanics(t, func() { AnimateSmokeParticles(e, 0.1, nil) })
	assert.InDelta(t, 0.08, e.Lifetimes[0], 1e-12)
	assert.Zero(t, e.Lifetimes[1], "only particles covered by every buffer advance")
}

func TestAnimateEmergencyLighting(t *testing.T) {
	tests := []struct {
		name    string
		elapsed float64
		want    float64
	}{
		{"start", 0, 1.6},
		{"peak", math.Pi / 16, 2.0},
		{"trough", 3 * math.Pi / 16, 1.2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := &EmergencyLighting{Light: &Light{}, Active: true}
			AnimateEmergencyLighting(e, tt.elapsed)
			assert.InDelta(t, tt.want, e.Light.Intensity, 1e-12)
		})
	}

	t.Run("inactive untouched", func(t *testing.T) {
		e := &EmergencyLighting{Light: &Light{Intensity: 0.3}}
		AnimateEmergencyLighting(e, 1)
		assert.Equal(t, 0.3, e.Light.Intensity)
	})

	t.Run("missing light", func(t *testing.T) {
		assert.NotPanics(t, func() {
			AnimateEmergencyLighting(&EmergencyLighting{Active: true}, 1)
		})
	})
}

func TestAnimateRainParticles(t *testing.T) {
	e := newRain(2)
	e.Center = Point{X: 100, Z: -50}
	e.Buffer.Positions[1] = 0.1 // 第一个雨滴即将落地

	AnimateRainParticles(e, 0.05, fixedSource(0.75))

	pos := e.Buffer.Positions
	assert.Equal(t, 20.0, pos[1], "grounded drop respawns at ceiling")
	assert.InDelta(t, 100+0.25*60, pos[0], 1e-12)
	assert.InDelta(t, -50+0.25*60, pos[2], 1e-12)
	assert.InDelta(t, 10-DefaultRainFallSpeed*0.05, pos[4], 1e-12)
}

func TestAnimateRainParticles_CustomSpeed(t *testing.T) {
	e := newRain(1)
	e.FallSpeed = 2
	AnimateRainParticles(e, 0.5, nil)
	assert.InDelta(t, 9, e.Buffer.Positions[1], 1e-12)
}

func TestAnimate_NilEntries(t *testing.T) {
	assert.NotPanics(t, func() {
		AnimateSmokeParticles(nil, 0.1, nil)
		AnimateRainParticles(nil, 0.1, nil)
		AnimateEmergencyLighting(nil, 0.1)
	})
}
