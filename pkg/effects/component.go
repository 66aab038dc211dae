package effects

import (
	"github.com/google/uuid"
)

// Handle 特效组件与注册表之间的连接
//
// 传入共享注册表时，由场景统一调用 Registry.Update；
// 未传入时组件自带一个只包含自己的注册表，Handle.Update 负责驱动它。
// 两种情况下调用方代码完全相同。
type Handle struct {
	id       string
	entry    Entry
	registry *Registry
	local    bool
	attached bool
}

// Attach registers entry with reg, or with a private single-entry registry when
// reg is nil. An empty id is replaced by a generated "<kind>-<uuid>" key.
// every <= 0 uses the registry's throttle for the entry's kind.
func Attach(reg *Registry, id string, entry Entry, every int) *Handle {
	local := reg == nil
	if local {
		reg = NewRegistry()
	}
	if id == "" {
		id = entry.Kind().String() + "-" + uuid.NewString()
	}
	if every <= 0 {
		every = reg.Throttle(entry.Kind())
	}
	reg.RegisterThrottled(id, entry, every)

	return &Handle{
		id:       id,
		entry:    entry,
		registry: reg,
		local:    local,
		attached: true,
	}
}

// ID 注册键
func (h *Handle) ID() string { return h.id }

// Entry 注册的特效数据
func (h *Handle) Entry() Entry { return h.entry }

// Local 是否使用私有注册表
func (h *Handle) Local() bool { return h.local }

// Registry returns the registry the handle is attached to. For local handles
// this is the private registry, e.g. to install a pause source on it.
func (h *Handle) Registry() *Registry { return h.registry }

// Update drives the private registry. With a shared registry it does nothing:
// the scene's central tick already covers this effect.
func (h *Handle) Update(delta float64) {
	if !h.local || !h.attached {
		return
	}
	h.registry.Update(delta)
}

// Detach unregisters the effect. Calling it more than once is harmless.
func (h *Handle) Detach() {
	if !h.attached {
		return
	}
	h.registry.Unregister(h.id)
	h.attached = false
}

// SmokeStack 烟囱烟雾组件，持有自己的粒子缓冲
type SmokeStack struct {
	*Handle
	Particles *SmokeParticles
}

// NewSmokeStack allocates count smoke particles at origin and attaches them.
// Initial lifetimes are staggered so the stack does not respawn in one burst.
func NewSmokeStack(reg *Registry, id string, origin Point, count int, rng RandomSource) *SmokeStack {
	rng = sourceOrGlobal(rng)
	if count < 0 {
		count = 0
	}

	p := &SmokeParticles{
		Buffer:      &ParticleBuffer{Positions: make([]float64, count*3)},
		Velocities:  make([]float64, count*3),
		Lifetimes:   make([]float64, count),
		Origin:      origin,
		SpawnRadius: DefaultSmokeSpawnRadius,
	}
	for i := 0; i < count; i++ {
		respawnSmoke(p, i, rng)
		p.Lifetimes[i] = rng.Float64()
	}

	return &SmokeStack{
		Handle:    Attach(reg, id, p, 0),
		Particles: p,
	}
}

// EmergencyLight 应急灯组件
type EmergencyLight struct {
	*Handle
	Lighting  *EmergencyLighting
	baseLevel float64
}

// NewEmergencyLight attaches a flicker effect to an externally owned light.
// The light starts inactive.
func NewEmergencyLight(reg *Registry, id string, light *Light) *EmergencyLight {
	l := &EmergencyLighting{Light: light}
	base := 0.0
	if light != nil {
		base = light.Intensity
	}
	return &EmergencyLight{
		Handle:    Attach(reg, id, l, 0),
		Lighting:  l,
		baseLevel: base,
	}
}

// SetActive 开关闪烁；关闭时恢复创建时的亮度
func (l *EmergencyLight) SetActive(active bool) {
	l.Lighting.Active = active
	if !active && l.Lighting.Light != nil {
		l.Lighting.Light.Intensity = l.baseLevel
	}
}

// RainField 降雨组件
type RainField struct {
	*Handle
	Drops *RainParticles
}

// NewRainField allocates count drops spread through the volume between ground
// and ceiling over a square area centred on center.
func NewRainField(reg *Registry, id string, center Point, count int, area, ceiling float64, rng RandomSource) *RainField {
	rng = sourceOrGlobal(rng)
	if count < 0 {
		count = 0
	}

	drops := &RainParticles{
		Buffer:        &ParticleBuffer{Positions: make([]float64, count*3)},
		FallSpeed:     DefaultRainFallSpeed,
		GroundLevel:   center.Y,
		CeilingHeight: center.Y + ceiling,
		Area:          area,
		Center:        center,
	}
	pos := drops.Buffer.Positions
	for i := 0; i < count; i++ {
		pos[i*3] = center.X + (rng.Float64()-0.5)*area
		pos[i*3+1] = center.Y + rng.Float64()*ceiling
		pos[i*3+2] = center.Z + (rng.Float64()-0.5)*area
	}

	return &RainField{
		Handle: Attach(reg, id, drops, 0),
		Drops:  drops,
	}
}
