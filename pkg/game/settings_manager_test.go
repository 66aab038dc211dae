package game

import (
	"os"
	"testing"

	"github.com/quasilyte/gdata/v2"

	"github.com/gonewx/milltwin/pkg/gait"
)

// openTestGdata 在临时 HOME 下创建 gdata manager
func openTestGdata(t *testing.T, appName string) *gdata.Manager {
	t.Helper()
	tempDir := t.TempDir()
	originalHome := os.Getenv("HOME")
	os.Setenv("HOME", tempDir)
	t.Cleanup(func() { os.Setenv("HOME", originalHome) })

	m, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		t.Skipf("Cannot create gdata manager for testing: %v", err)
	}
	return m
}

// TestDefaultSettings 测试 DefaultSettings() 返回正确的默认值
func TestDefaultSettings(t *testing.T) {
	settings := DefaultSettings()

	if settings.QualityTier != "high" {
		t.Errorf("QualityTier: got %q, want high", settings.QualityTier)
	}
	if !settings.PauseWhenHidden {
		t.Error("PauseWhenHidden: got false, want true")
	}
	if !settings.EffectsEnabled {
		t.Error("EffectsEnabled: got false, want true")
	}
}

// TestNewSettingsManagerNilGdata 测试 gdataManager 为 nil 时的降级场景
func TestNewSettingsManagerNilGdata(t *testing.T) {
	sm := NewSettingsManager(nil)
	if sm == nil {
		t.Fatal("NewSettingsManager(nil) returned nil")
	}
	if sm.Persistent() {
		t.Error("degraded manager reports persistent storage")
	}

	if err := sm.SetQualityTier("low"); err != nil {
		t.Fatalf("SetQualityTier() error: %v", err)
	}
	if err := sm.Save(); err != nil {
		t.Errorf("Save() in degraded mode should not fail: %v", err)
	}
	if sm.QualityTier() != gait.TierLow {
		t.Errorf("QualityTier: got %v, want low", sm.QualityTier())
	}
}

// TestSetQualityTier 测试档位名称验证
func TestSetQualityTier(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{"lowercase", "medium", "medium", false},
		{"mixed case", "LoW", "low", false},
		{"unknown", "ultra", "high", true},
		{"empty", "", "high", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sm := NewSettingsManager(nil)
			err := sm.SetQualityTier(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("SetQualityTier(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got := sm.GetSettings().QualityTier; got != tt.want {
				t.Errorf("QualityTier: got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCycleQualityTier(t *testing.T) {
	sm := NewSettingsManager(nil)
	want := []gait.QualityTier{gait.TierMedium, gait.TierLow, gait.TierHigh}
	for i, w := range want {
		if got := sm.CycleQualityTier(); got != w {
			t.Errorf("cycle %d: got %v, want %v", i, got, w)
		}
	}
}

// TestSettingsLoadSave 测试 Load() 和 Save() 功能
func TestSettingsLoadSave(t *testing.T) {
	m := openTestGdata(t, "milltwin_test_settings")

	sm1 := NewSettingsManager(m)
	if !sm1.Persistent() {
		t.Fatal("expected persistent storage")
	}
	if sm1.HasStored() {
		t.Error("fresh storage should have no stored settings")
	}
	if err := sm1.SetQualityTier("medium"); err != nil {
		t.Fatalf("SetQualityTier() error: %v", err)
	}
	sm1.SetPauseWhenHidden(false)
	sm1.SetEffectsEnabled(false)

	if err := sm1.Save(); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	sm2 := NewSettingsManager(m)
	if !sm2.HasStored() {
		t.Error("expected stored settings after Save()")
	}
	settings := sm2.GetSettings()
	if settings.QualityTier != "medium" {
		t.Errorf("Loaded QualityTier: got %q, want medium", settings.QualityTier)
	}
	if settings.PauseWhenHidden {
		t.Error("Loaded PauseWhenHidden: got true, want false")
	}
	if settings.EffectsEnabled {
		t.Error("Loaded EffectsEnabled: got true, want false")
	}
}

// TestSettingsLoadInvalidTier 存储中的无效档位回退为默认档位
func TestSettingsLoadInvalidTier(t *testing.T) {
	m := openTestGdata(t, "milltwin_test_invalid_tier")

	data := []byte("qualityTier: ultra\npauseWhenHidden: false\neffectsEnabled: true\n")
	if err := m.SaveObjectProp(settingsObject, settingsProperty, data); err != nil {
		t.Fatalf("SaveObjectProp() error: %v", err)
	}

	sm := NewSettingsManager(m)
	settings := sm.GetSettings()
	if settings.QualityTier != "high" {
		t.Errorf("QualityTier: got %q, want fallback high", settings.QualityTier)
	}
	if settings.PauseWhenHidden {
		t.Error("valid fields should survive an invalid tier")
	}
}

// TestSettingsLoadCorrupted 损坏的数据回退为默认设置
func TestSettingsLoadCorrupted(t *testing.T) {
	m := openTestGdata(t, "milltwin_test_corrupted")

	if err := m.SaveObjectProp(settingsObject, settingsProperty, []byte("{not yaml")); err != nil {
		t.Fatalf("SaveObjectProp() error: %v", err)
	}

	sm := &SettingsManager{gdataManager: m, settings: DefaultSettings()}
	if err := sm.Load(); err == nil {
		t.Error("expected unmarshal error for corrupted data")
	}
	if *sm.GetSettings() != *DefaultSettings() {
		t.Errorf("expected defaults after corrupted load, got %+v", sm.GetSettings())
	}
}
