// Command milltwin is a lightweight preview of the mill digital twin: workers
// are drawn as stick figures driven by the gait system, and the scene effects
// (smoke stacks, rain, emergency lights) share one animation registry.
//
// Usage:
//
//	go run . [--config data/milltwin.yaml] [--workers N]
//
// Controls:
//
//	1-4      - Set all workers to idle / walking / running / sitting
//	F / G    - Increase / decrease fatigue
//	Q        - Cycle quality tier (saved to settings)
//	E        - Toggle emergency lights
//	V        - Toggle scene effects (saved to settings)
//	H        - Toggle pause-when-hidden (saved to settings)
//	Escape   - Quit
package main

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log"
	"math/rand"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/gonewx/milltwin/pkg/components"
	"github.com/gonewx/milltwin/pkg/config"
	"github.com/gonewx/milltwin/pkg/ecs"
	"github.com/gonewx/milltwin/pkg/effects"
	"github.com/gonewx/milltwin/pkg/game"
	"github.com/gonewx/milltwin/pkg/gait"
	"github.com/gonewx/milltwin/pkg/systems"
	"github.com/gonewx/milltwin/pkg/utils"
)

const (
	screenWidth  = 960
	screenHeight = 540
)

var (
	configFlag  = flag.String("config", "data/milltwin.yaml", "Scene config file")
	workersFlag = flag.Int("workers", -1, "Override worker count from config")
)

// fatigueStep 每次按键调整的疲劳度
const fatigueStep = 0.1

// Game implements ebiten.Game for the twin viewer.
type Game struct {
	entityManager *ecs.EntityManager
	gaitSystem    *systems.GaitSystem
	registry      *effects.Registry
	settings      *game.SettingsManager

	workers []ecs.EntityID

	smokeStacks []*effects.SmokeStack
	lights      []*effects.EmergencyLight
	lightLevels []*effects.Light
	rain        *effects.RainField

	state      gait.MovementState
	fatigue    float64
	lightsOn   bool
	sceneWidth float64
}

// NewGame builds the scene from the config and the persisted settings.
func NewGame(cfg *config.SimConfig, settings *game.SettingsManager) (*Game, error) {
	presets, err := cfg.Gait.PresetTable()
	if err != nil {
		return nil, fmt.Errorf("failed to build preset table: %w", err)
	}

	// 用户从未保存过设置时以场景配置的档位为准
	if !settings.HasStored() {
		if err := settings.SetQualityTier(cfg.Gait.Tier); err != nil {
			log.Printf("[Viewer] Warning: %v (keeping %s)", err, settings.QualityTier())
		}
	}

	em := ecs.NewEntityManager()
	g := &Game{
		entityManager: em,
		gaitSystem:    systems.NewGaitSystem(em, presets, cfg.Gait.Smoothing, cfg.Gait.ParamBlendTime),
		registry:      effects.NewRegistry(),
		settings:      settings,
		state:         gait.StateWalking,
		sceneWidth:    screenWidth / pixelsPerMeter,
	}

	g.registry.SetRandom(rand.New(rand.NewSource(time.Now().UnixNano())))
	g.registry.SetPauseSource(func() bool {
		return g.settings.GetSettings().PauseWhenHidden && !ebiten.IsFocused()
	})
	g.registry.SetThrottle(effects.KindSmokeParticles, cfg.Effects.Throttle.Particles)
	g.registry.SetThrottle(effects.KindRainParticles, cfg.Effects.Throttle.Particles)
	g.registry.SetThrottle(effects.KindEmergencyLighting, cfg.Effects.Throttle.Lights)

	tier := settings.QualityTier()
	for i := 0; i < cfg.Workers; i++ {
		x := -g.sceneWidth/2 + (float64(i)+0.5)*g.sceneWidth/float64(cfg.Workers)
		id := systems.SpawnWorker(em, presets, g.state, tier, x, float64(i%3))
		// 错开相位，避免所有人同步迈步
		if gc, ok := ecs.GetComponent[*components.GaitComponent](em, id); ok {
			gc.CyclePhase = utils.Wrap01(float64(i) * 0.37)
		}
		g.workers = append(g.workers, id)
	}

	for i, s := range cfg.Effects.SmokeStacks {
		stack := effects.NewSmokeStack(g.registry, fmt.Sprintf("smoke-%d", i),
			effects.Point{X: s.X, Y: s.Y, Z: s.Z}, s.Particles, nil)
		g.smokeStacks = append(g.smokeStacks, stack)
	}

	for i := 0; i < cfg.Effects.EmergencyLights; i++ {
		light := &effects.Light{Intensity: 0.3}
		g.lightLevels = append(g.lightLevels, light)
		g.lights = append(g.lights, effects.NewEmergencyLight(g.registry, "", light))
	}

	if cfg.Effects.Rain.Particles > 0 {
		g.rain = effects.NewRainField(g.registry, "rain", effects.Point{},
			cfg.Effects.Rain.Particles, cfg.Effects.Rain.Area, cfg.Effects.Rain.Ceiling, nil)
	}

	log.Printf("[Viewer] Scene ready: %d workers, effects %v", len(g.workers), g.registry.Counts())
	return g, nil
}

// Update advances the simulation by one tick.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	g.handleInput()

	dt := 1.0 / float64(ebiten.TPS())

	g.gaitSystem.Update(dt)
	g.wrapWorkers()

	if g.settings.GetSettings().EffectsEnabled {
		g.registry.Update(dt)
	}
	return nil
}

func (g *Game) handleInput() {
	stateKeys := []struct {
		key   ebiten.Key
		state gait.MovementState
	}{
		{ebiten.Key1, gait.StateIdle},
		{ebiten.Key2, gait.StateWalking},
		{ebiten.Key3, gait.StateRunning},
		{ebiten.Key4, gait.StateSitting},
	}
	for _, sk := range stateKeys {
		if inpututil.IsKeyJustPressed(sk.key) {
			g.state = sk.state
		}
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyF) {
		g.fatigue = utils.Clamp01(g.fatigue + fatigueStep)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyG) {
		g.fatigue = utils.Clamp01(g.fatigue - fatigueStep)
	}

	for _, id := range g.workers {
		if m, ok := ecs.GetComponent[*components.MovementComponent](g.entityManager, id); ok {
			m.State = g.state
			m.Fatigue = g.fatigue
		}
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		tier := g.settings.CycleQualityTier()
		for _, id := range g.workers {
			if gc, ok := ecs.GetComponent[*components.GaitComponent](g.entityManager, id); ok {
				gc.Tier = tier
			}
		}
		g.saveSettings()
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyE) {
		g.lightsOn = !g.lightsOn
		for _, l := range g.lights {
			l.SetActive(g.lightsOn)
		}
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyV) {
		s := g.settings.GetSettings()
		g.settings.SetEffectsEnabled(!s.EffectsEnabled)
		g.saveSettings()
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyH) {
		s := g.settings.GetSettings()
		g.settings.SetPauseWhenHidden(!s.PauseWhenHidden)
		g.saveSettings()
	}
}

// wrapWorkers 走出场景右侧的工人从左侧回来
func (g *Game) wrapWorkers() {
	half := g.sceneWidth / 2
	for _, id := range g.workers {
		pos, ok := ecs.GetComponent[*components.PositionComponent](g.entityManager, id)
		if !ok {
			continue
		}
		if pos.X > half {
			pos.X -= g.sceneWidth
		}
	}
}

func (g *Game) saveSettings() {
	if err := g.settings.Save(); err != nil {
		log.Printf("[Viewer] Warning: %v", err)
	}
}

// Layout returns the logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return screenWidth, screenHeight
}

// loadConfig 读取场景配置，文件不存在时使用默认配置
func loadConfig(path string) (*config.SimConfig, error) {
	cfg, err := config.LoadSimConfig(path)
	if errors.Is(err, fs.ErrNotExist) {
		log.Printf("[Viewer] %s not found, using built-in defaults", path)
		return config.DefaultSimConfig(), nil
	}
	return cfg, err
}

func main() {
	flag.Parse()

	cfg, err := loadConfig(*configFlag)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if *workersFlag >= 0 {
		cfg.Workers = *workersFlag
	}

	storage, err := game.OpenStorage()
	if err != nil {
		log.Printf("[Viewer] Warning: %v (settings will not persist)", err)
	}
	settings := game.NewSettingsManager(storage)

	g, err := NewGame(cfg, settings)
	if err != nil {
		log.Fatalf("Failed to build scene: %v", err)
	}

	ebiten.SetWindowSize(screenWidth, screenHeight)
	ebiten.SetWindowTitle("milltwin - 工人与场景特效预览")
	// 失焦时仍然运行 Update，由 PauseWhenHidden 决定特效是否暂停
	ebiten.SetRunnableOnUnfocused(true)

	if err := ebiten.RunGame(g); err != nil {
		log.Fatal(err)
	}
}
