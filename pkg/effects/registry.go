package effects

import (
	"log"
)

// 特效节流间隔（帧）
const (
	// ThrottleParticles 粒子特效隔帧更新
	ThrottleParticles = 2
	// ThrottleLights 灯光特效每四帧更新
	ThrottleLights = 4
)

// slot 注册项及其节流状态
type slot struct {
	entry   Entry
	every   int     // 每隔多少帧运行一次，1 表示每帧
	pending float64 // 上次运行以来累计的 delta
}

// Registry is the crisis animation manager: one shared per-frame tick that
// advances every registered effect, replacing one frame subscription per
// effect instance.
//
// Registry is not safe for concurrent use. Register, Unregister and Update
// are expected to run on the same frame loop.
type Registry struct {
	entries map[string]*slot

	pauseSource func() bool
	rng         RandomSource
	throttle    map[Kind]int

	elapsed float64
	frame   uint64

	dispatch tickDispatch
}

// NewRegistry 创建空的特效注册表
func NewRegistry() *Registry {
	return &Registry{
		entries: make(map[string]*slot),
		rng:     globalSource{},
		throttle: map[Kind]int{
			KindSmokeParticles:    ThrottleParticles,
			KindRainParticles:     ThrottleParticles,
			KindEmergencyLighting: ThrottleLights,
		},
	}
}

// SetThrottle 设置某类特效的默认更新间隔，供之后 Attach 的组件使用
func (r *Registry) SetThrottle(kind Kind, every int) {
	if every < 1 {
		every = 1
	}
	r.throttle[kind] = every
}

// Throttle 某类特效的默认更新间隔，未设置时为 1
func (r *Registry) Throttle(kind Kind) int {
	if every, ok := r.throttle[kind]; ok {
		return every
	}
	return 1
}

// SetPauseSource sets the function consulted once per tick. While it returns
// true the whole tick is skipped: no entry is touched and no time accrues.
func (r *Registry) SetPauseSource(hidden func() bool) {
	r.pauseSource = hidden
}

// SetRandom 设置粒子重生使用的随机数来源（测试中使用固定种子）
func (r *Registry) SetRandom(rng RandomSource) {
	r.rng = sourceOrGlobal(rng)
}

// Register inserts entry under id, updated every frame. A previous entry with
// the same id is replaced.
func (r *Registry) Register(id string, entry Entry) {
	r.RegisterThrottled(id, entry, 1)
}

// RegisterThrottled inserts entry under id, updated every `every` frames.
// Skipped frames accumulate their delta so the effect keeps its rate.
//
// 同名注册时后者覆盖前者（记录警告）；entry 为 nil 时忽略并记录警告。
func (r *Registry) RegisterThrottled(id string, entry Entry, every int) {
	if entry == nil {
		log.Printf("[CrisisAnimationManager] Warning: ignoring nil effect entry %q", id)
		return
	}
	if every < 1 {
		every = 1
	}
	if old, exists := r.entries[id]; exists {
		log.Printf("[CrisisAnimationManager] Warning: effect %q re-registered, replacing %s with %s",
			id, old.entry.Kind(), entry.Kind())
	}
	r.entries[id] = &slot{entry: entry, every: every}
}

// Unregister removes the entry for id. Missing ids are ignored.
func (r *Registry) Unregister(id string) {
	delete(r.entries, id)
}

// Has 是否已注册
func (r *Registry) Has(id string) bool {
	_, ok := r.entries[id]
	return ok
}

// Len 当前注册数量
func (r *Registry) Len() int {
	return len(r.entries)
}

// Elapsed returns the time accrued by unpaused ticks.
func (r *Registry) Elapsed() float64 {
	return r.elapsed
}

// Frame 已执行（未暂停）的帧数
func (r *Registry) Frame() uint64 {
	return r.frame
}

// Counts 按类型统计注册数量
func (r *Registry) Counts() map[Kind]int {
	counts := make(map[Kind]int, 3)
	for _, s := range r.entries {
		counts[s.entry.Kind()]++
	}
	return counts
}

// Paused reports whether the pause source currently asks to skip ticks.
func (r *Registry) Paused() bool {
	return r.pauseSource != nil && r.pauseSource()
}

// Update runs one shared tick.
//
// 流程：
//  1. 暂停时直接返回（不累计时间，不修改任何注册项）
//  2. 累计 elapsed 并推进帧计数
//  3. 遍历所有注册项，按类型分派到对应的更新函数
//
// 遍历顺序不确定，各特效之间互不依赖。
func (r *Registry) Update(delta float64) {
	if r.Paused() {
		return
	}

	r.elapsed += delta
	r.frame++

	r.dispatch.elapsed = r.elapsed
	r.dispatch.rng = r.rng

	for _, s := range r.entries {
		s.pending += delta
		if s.every > 1 && r.frame%uint64(s.every) != 0 {
			continue
		}
		r.dispatch.delta = s.pending
		s.pending = 0
		s.entry.accept(&r.dispatch)
	}
}

// tickDispatch 单帧分派上下文，复用以避免每帧分配
type tickDispatch struct {
	delta   float64
	elapsed float64
	rng     RandomSource
}

func (d *tickDispatch) visitSmoke(e *SmokeParticles) {
	AnimateSmokeParticles(e, d.delta, d.rng)
}

func (d *tickDispatch) visitLighting(e *EmergencyLighting) {
	AnimateEmergencyLighting(e, d.elapsed)
}

func (d *tickDispatch) visitRain(e *RainParticles) {
	AnimateRainParticles(e, d.delta, d.rng)
}
