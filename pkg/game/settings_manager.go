package game

import (
	"fmt"
	"log"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"

	"github.com/gonewx/milltwin/pkg/gait"
)

// AppName gdata 存储使用的应用名
const AppName = "milltwin"

// SimSettings 本机持久化的用户设置
// 与场景配置文件不同，这些设置随用户走，不随场景走
type SimSettings struct {
	QualityTier     string `yaml:"qualityTier"`     // 动画质量档位 high/medium/low
	PauseWhenHidden bool   `yaml:"pauseWhenHidden"` // 窗口失去焦点时暂停特效
	EffectsEnabled  bool   `yaml:"effectsEnabled"`  // 是否显示场景特效
}

// DefaultSettings 返回默认设置
func DefaultSettings() *SimSettings {
	return &SimSettings{
		QualityTier:     gait.TierHigh.String(),
		PauseWhenHidden: true,
		EffectsEnabled:  true,
	}
}

// SettingsManager 设置管理器
// 负责设置的加载、保存和内存管理
type SettingsManager struct {
	gdataManager *gdata.Manager // gdata 跨平台存储管理器，可为 nil（降级模式）
	settings     *SimSettings   // 当前设置
}

// 存储路径常量
const (
	settingsObject   = "settings"
	settingsProperty = "sim"
)

// OpenStorage 打开本机 gdata 存储
//
// 失败时返回 nil 和错误，调用方可以用 nil 进入降级模式。
func OpenStorage() (*gdata.Manager, error) {
	m, err := gdata.Open(gdata.Config{AppName: AppName})
	if err != nil {
		return nil, fmt.Errorf("failed to open gdata storage: %w", err)
	}
	return m, nil
}

// NewSettingsManager 创建新的设置管理器实例
//
// 参数：
//   - gdataManager: gdata 跨平台存储管理器，可为 nil（降级模式，仅内存设置）
//
// 加载失败不是致命错误，会记录警告并使用默认设置。
func NewSettingsManager(gdataManager *gdata.Manager) *SettingsManager {
	sm := &SettingsManager{
		gdataManager: gdataManager,
		settings:     DefaultSettings(),
	}

	if err := sm.Load(); err != nil {
		log.Printf("[SettingsManager] Warning: Failed to load settings: %v (using defaults)", err)
	}

	return sm
}

// Load 从 gdata 加载设置
//
// 如果 gdataManager 为 nil 或属性不存在，使用默认设置。
// 存储中的档位名无效时回退为默认档位并返回错误。
func (sm *SettingsManager) Load() error {
	if sm.gdataManager == nil {
		sm.settings = DefaultSettings()
		return nil
	}

	if !sm.gdataManager.ObjectPropExists(settingsObject, settingsProperty) {
		sm.settings = DefaultSettings()
		return nil
	}

	data, err := sm.gdataManager.LoadObjectProp(settingsObject, settingsProperty)
	if err != nil {
		sm.settings = DefaultSettings()
		return fmt.Errorf("failed to load settings: %w", err)
	}

	loaded := DefaultSettings()
	if err := yaml.Unmarshal(data, loaded); err != nil {
		sm.settings = DefaultSettings()
		return fmt.Errorf("failed to unmarshal settings: %w", err)
	}

	if _, err := gait.ParseQualityTier(loaded.QualityTier); err != nil {
		loaded.QualityTier = DefaultSettings().QualityTier
		sm.settings = loaded
		return fmt.Errorf("stored settings: %w", err)
	}

	sm.settings = loaded
	log.Printf("[SettingsManager] Settings loaded successfully")
	return nil
}

// Save 保存设置到 gdata
//
// 如果 gdataManager 为 nil，返回 nil（降级模式，不报错）
func (sm *SettingsManager) Save() error {
	if sm.gdataManager == nil {
		return nil
	}

	data, err := yaml.Marshal(sm.settings)
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}

	if err := sm.gdataManager.SaveObjectProp(settingsObject, settingsProperty, data); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}

	log.Printf("[SettingsManager] Settings saved successfully")
	return nil
}

// Persistent 是否能落盘
func (sm *SettingsManager) Persistent() bool {
	return sm.gdataManager != nil
}

// HasStored 存储中是否已有用户保存过的设置
//
// 没有时调用方可以用场景配置里的档位作为初始值。
func (sm *SettingsManager) HasStored() bool {
	return sm.gdataManager != nil && sm.gdataManager.ObjectPropExists(settingsObject, settingsProperty)
}

// GetSettings 获取当前设置
func (sm *SettingsManager) GetSettings() *SimSettings {
	return sm.settings
}

// QualityTier 当前质量档位
func (sm *SettingsManager) QualityTier() gait.QualityTier {
	tier, err := gait.ParseQualityTier(sm.settings.QualityTier)
	if err != nil {
		return gait.TierHigh
	}
	return tier
}

// SetQualityTier 按名称设置质量档位
//
// 注意：仅修改内存中的设置，需调用 Save() 方法持久化
//
// 返回：
//   - error: 档位名未知时返回错误，设置保持不变
func (sm *SettingsManager) SetQualityTier(name string) error {
	tier, err := gait.ParseQualityTier(name)
	if err != nil {
		return err
	}
	sm.settings.QualityTier = tier.String()
	return nil
}

// CycleQualityTier 切换到下一个档位（high → medium → low → high）
func (sm *SettingsManager) CycleQualityTier() gait.QualityTier {
	next := (sm.QualityTier() + 1) % 3
	sm.settings.QualityTier = next.String()
	return next
}

// SetPauseWhenHidden 设置失焦暂停
func (sm *SettingsManager) SetPauseWhenHidden(enabled bool) {
	sm.settings.PauseWhenHidden = enabled
}

// SetEffectsEnabled 设置特效开关
func (sm *SettingsManager) SetEffectsEnabled(enabled bool) {
	sm.settings.EffectsEnabled = enabled
}
