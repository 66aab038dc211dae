package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/gonewx/milltwin/pkg/gait"
)

// SimConfig 数字孪生场景配置
//
// 包含步态平滑参数、预设覆盖、特效节流与场景特效布局。
//
// 配置文件位置: data/milltwin.yaml
type SimConfig struct {
	// Gait 步态配置
	Gait GaitConfig `yaml:"gait"`

	// Effects 场景特效配置
	Effects EffectsConfig `yaml:"effects"`

	// Workers 预览场景中的工人数量
	Workers int `yaml:"workers"`
}

// GaitConfig 步态配置
type GaitConfig struct {
	// Smoothing 姿态阻尼时间常数（秒）
	Smoothing float64 `yaml:"smoothing"`

	// ParamBlendTime 预设切换时间常数（秒）
	ParamBlendTime float64 `yaml:"paramBlendTime"`

	// Tier 默认质量档位: high / medium / low
	Tier string `yaml:"tier"`

	// Presets 按预设名（idle/walk/run/sneak/tired）的部分覆盖
	Presets map[string]ParamsOverride `yaml:"presets"`
}

// ParamsOverride 预设字段覆盖，nil 表示沿用默认值
type ParamsOverride struct {
	HipSwing                *float64 `yaml:"hipSwing"`
	KneeFlexion             *float64 `yaml:"kneeFlexion"`
	AnkleRoll               *float64 `yaml:"ankleRoll"`
	ShoulderSwing           *float64 `yaml:"shoulderSwing"`
	ElbowBend               *float64 `yaml:"elbowBend"`
	HipRotation             *float64 `yaml:"hipRotation"`
	HipDrop                 *float64 `yaml:"hipDrop"`
	TorsoLean               *float64 `yaml:"torsoLean"`
	TorsoSway               *float64 `yaml:"torsoSway"`
	ShoulderCounterRotation *float64 `yaml:"shoulderCounterRotation"`
	VerticalBob             *float64 `yaml:"verticalBob"`
	HeadBob                 *float64 `yaml:"headBob"`
	CycleSpeed              *float64 `yaml:"cycleSpeed"`
}

// EffectsConfig 场景特效配置
type EffectsConfig struct {
	// Throttle 各类特效的更新间隔（帧）
	Throttle ThrottleConfig `yaml:"throttle"`

	// SmokeStacks 烟囱位置与粒子数
	SmokeStacks []SmokeStackConfig `yaml:"smokeStacks"`

	// EmergencyLights 应急灯数量
	EmergencyLights int `yaml:"emergencyLights"`

	// Rain 雨场配置，Particles 为 0 表示不下雨
	Rain RainConfig `yaml:"rain"`
}

// ThrottleConfig 特效节流
type ThrottleConfig struct {
	Particles int `yaml:"particles"`
	Lights    int `yaml:"lights"`
}

// SmokeStackConfig 单个烟囱
type SmokeStackConfig struct {
	X         float64 `yaml:"x"`
	Y         float64 `yaml:"y"`
	Z         float64 `yaml:"z"`
	Particles int     `yaml:"particles"`
}

// RainConfig 雨场
type RainConfig struct {
	Particles int     `yaml:"particles"`
	Area      float64 `yaml:"area"`
	Ceiling   float64 `yaml:"ceiling"`
}

// DefaultSimConfig 返回内置默认配置
//
// 配置文件缺失时使用；LoadSimConfig 也以它为基础，文件中未出现的字段保留默认值。
func DefaultSimConfig() *SimConfig {
	return &SimConfig{
		Gait: GaitConfig{
			Smoothing:      gait.DefaultSmoothing,
			ParamBlendTime: 0.35,
			Tier:           gait.TierHigh.String(),
		},
		Effects: EffectsConfig{
			Throttle: ThrottleConfig{Particles: 2, Lights: 4},
			SmokeStacks: []SmokeStackConfig{
				{X: 4, Y: 0, Z: -2, Particles: 64},
			},
			EmergencyLights: 3,
			Rain:            RainConfig{Particles: 400, Area: 60, Ceiling: 20},
		},
		Workers: 6,
	}
}

// ParseSimConfig 从 YAML 数据解析配置
//
// 返回:
//   - *SimConfig: 合并默认值后的配置
//   - error: 解析或验证失败时返回错误
func ParseSimConfig(data []byte) (*SimConfig, error) {
	config := DefaultSimConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse sim config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid sim config: %w", err)
	}

	return config, nil
}

// LoadSimConfig 加载场景配置
//
// 参数:
//   - path: 配置文件路径（如 "data/milltwin.yaml"）
func LoadSimConfig(path string) (*SimConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read sim config: %w", err)
	}
	return ParseSimConfig(data)
}

// Validate 验证配置有效性
//
// 检查：
//   - 时间常数为正
//   - 质量档位与预设名已知
//   - 节流间隔 >= 1
//   - 数量不为负
func (c *SimConfig) Validate() error {
	if c.Gait.Smoothing <= 0 {
		return fmt.Errorf("gait smoothing must be positive, got %.3f", c.Gait.Smoothing)
	}
	if c.Gait.ParamBlendTime <= 0 {
		return fmt.Errorf("gait paramBlendTime must be positive, got %.3f", c.Gait.ParamBlendTime)
	}
	if _, err := c.Gait.QualityTier(); err != nil {
		return err
	}
	if _, err := c.Gait.PresetTable(); err != nil {
		return err
	}

	if c.Effects.Throttle.Particles < 1 {
		return fmt.Errorf("particle throttle must be >= 1, got %d", c.Effects.Throttle.Particles)
	}
	if c.Effects.Throttle.Lights < 1 {
		return fmt.Errorf("light throttle must be >= 1, got %d", c.Effects.Throttle.Lights)
	}
	for i, s := range c.Effects.SmokeStacks {
		if s.Particles < 0 {
			return fmt.Errorf("smoke stack %d: negative particle count %d", i, s.Particles)
		}
	}
	if c.Effects.EmergencyLights < 0 {
		return fmt.Errorf("negative emergency light count %d", c.Effects.EmergencyLights)
	}
	if c.Effects.Rain.Particles < 0 {
		return fmt.Errorf("negative rain particle count %d", c.Effects.Rain.Particles)
	}
	if c.Effects.Rain.Particles > 0 && (c.Effects.Rain.Area <= 0 || c.Effects.Rain.Ceiling <= 0) {
		return fmt.Errorf("rain area and ceiling must be positive (area=%.1f, ceiling=%.1f)",
			c.Effects.Rain.Area, c.Effects.Rain.Ceiling)
	}
	if c.Workers < 0 {
		return fmt.Errorf("negative worker count %d", c.Workers)
	}

	return nil
}

// QualityTier 解析配置中的质量档位，空字符串视为 high
func (g *GaitConfig) QualityTier() (gait.QualityTier, error) {
	if g.Tier == "" {
		return gait.TierHigh, nil
	}
	return gait.ParseQualityTier(g.Tier)
}

// PresetTable 将覆盖项合并到默认预设上
//
// 返回:
//   - gait.PresetTable: 合并后的预设表（副本，不影响默认值）
//   - error: 出现未知预设名时返回错误
func (g *GaitConfig) PresetTable() (gait.PresetTable, error) {
	table := gait.DefaultPresets()
	for name, override := range g.Presets {
		var target *gait.Params
		switch name {
		case "idle":
			target = &table.Idle
		case "walk":
			target = &table.Walk
		case "run":
			target = &table.Run
		case "sneak":
			target = &table.Sneak
		case "tired":
			target = &table.Tired
		default:
			return table, fmt.Errorf("unknown gait preset %q", name)
		}
		override.applyTo(target)
	}
	return table, nil
}

func (o ParamsOverride) applyTo(p *gait.Params) {
	set := func(dst *float64, src *float64) {
		if src != nil {
			*dst = *src
		}
	}
	set(&p.HipSwing, o.HipSwing)
	set(&p.KneeFlexion, o.KneeFlexion)
	set(&p.AnkleRoll, o.AnkleRoll)
	set(&p.ShoulderSwing, o.ShoulderSwing)
	set(&p.ElbowBend, o.ElbowBend)
	set(&p.HipRotation, o.HipRotation)
	set(&p.HipDrop, o.HipDrop)
	set(&p.TorsoLean, o.TorsoLean)
	set(&p.TorsoSway, o.TorsoSway)
	set(&p.ShoulderCounterRotation, o.ShoulderCounterRotation)
	set(&p.VerticalBob, o.VerticalBob)
	set(&p.HeadBob, o.HeadBob)
	set(&p.CycleSpeed, o.CycleSpeed)
}
