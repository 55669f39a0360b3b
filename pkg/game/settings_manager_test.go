package game

import (
	"testing"
)

// TestDefaultSettings 测试 DefaultSettings() 返回正确的默认值
func TestDefaultSettings(t *testing.T) {
	settings := DefaultSettings()

	if settings.SoundVolume != 0.8 {
		t.Errorf("SoundVolume: got %v, want 0.8", settings.SoundVolume)
	}
	if !settings.SoundEnabled {
		t.Error("SoundEnabled: got false, want true")
	}
	if settings.Fullscreen {
		t.Error("Fullscreen: got true, want false")
	}
}

// TestNewSettingsManagerNilStore 测试存储为 nil 时的降级场景
func TestNewSettingsManagerNilStore(t *testing.T) {
	sm, err := NewSettingsManager(nil)
	if err != nil {
		t.Fatalf("NewSettingsManager(nil) error: %v", err)
	}
	if sm.GetSettings().SoundVolume != 0.8 {
		t.Errorf("Degraded mode SoundVolume: got %v, want 0.8", sm.GetSettings().SoundVolume)
	}

	// 降级模式下保存不报错
	sm.SetFullscreen(true)
	if err := sm.Save(); err != nil {
		t.Errorf("Save() in degraded mode: %v", err)
	}
}

// TestSettingsLoadSave 测试保存后重新加载
func TestSettingsLoadSave(t *testing.T) {
	store := &memStore{}

	sm1, err := NewSettingsManager(store)
	if err != nil {
		t.Fatalf("NewSettingsManager() error: %v", err)
	}
	if store.loads != 0 {
		t.Error("missing settings should not be read")
	}

	sm1.SetSoundVolume(0.5)
	sm1.SetSoundEnabled(false)
	sm1.SetFullscreen(true)
	if err := sm1.Save(); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	sm2, err := NewSettingsManager(store)
	if err != nil {
		t.Fatalf("NewSettingsManager() error on reload: %v", err)
	}
	settings := sm2.GetSettings()
	if settings.SoundVolume != 0.5 {
		t.Errorf("SoundVolume: got %v, want 0.5", settings.SoundVolume)
	}
	if settings.SoundEnabled {
		t.Error("SoundEnabled: got true, want false")
	}
	if !settings.Fullscreen {
		t.Error("Fullscreen: got false, want true")
	}
}

// TestSettingsLoadPartialAndInvalid 测试缺失字段和损坏内容
func TestSettingsLoadPartialAndInvalid(t *testing.T) {
	tests := []struct {
		name        string
		content     string
		wantErr     bool
		wantVolume  float64
		wantEnabled bool
	}{
		{"只有音量", "soundVolume: 0.3\n", false, 0.3, true},
		{"音量越界被限制", "soundVolume: 7\n", false, 1.0, true},
		{"关闭音效", "soundEnabled: false\n", false, 0.8, false},
		{"损坏的 YAML 使用默认值", "soundVolume: [oops\n", true, 0.8, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sm, err := NewSettingsManager(newMemStore(tt.content))
			if (err != nil) != tt.wantErr {
				t.Fatalf("NewSettingsManager() error = %v, wantErr %v", err, tt.wantErr)
			}
			settings := sm.GetSettings()
			if settings.SoundVolume != tt.wantVolume {
				t.Errorf("SoundVolume: got %v, want %v", settings.SoundVolume, tt.wantVolume)
			}
			if settings.SoundEnabled != tt.wantEnabled {
				t.Errorf("SoundEnabled: got %v, want %v", settings.SoundEnabled, tt.wantEnabled)
			}
		})
	}
}

// TestSetSoundVolumeClamp 测试音量边界
func TestSetSoundVolumeClamp(t *testing.T) {
	sm, _ := NewSettingsManager(nil)

	tests := []struct {
		in, want float64
	}{
		{-0.5, 0},
		{0, 0},
		{0.25, 0.25},
		{1, 1},
		{1.5, 1},
	}
	for _, tt := range tests {
		sm.SetSoundVolume(tt.in)
		if got := sm.GetSettings().SoundVolume; got != tt.want {
			t.Errorf("SetSoundVolume(%v): got %v, want %v", tt.in, got, tt.want)
		}
	}
}

// TestSettingsGdataStore 测试通过 gdata 持久化设置
func TestSettingsGdataStore(t *testing.T) {
	manager := createTestGdataManager(t)
	if manager == nil {
		t.Skip("Cannot create gdata manager for testing")
	}

	sm1, err := NewSettingsManager(NewGdataSettingsStore(manager))
	if err != nil {
		t.Fatalf("NewSettingsManager() error: %v", err)
	}
	sm1.SetSoundVolume(0.4)
	if err := sm1.Save(); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	sm2, _ := NewSettingsManager(NewGdataSettingsStore(manager))
	if got := sm2.GetSettings().SoundVolume; got != 0.4 {
		t.Errorf("SoundVolume after reload: got %v, want 0.4", got)
	}

	// 设置与存档使用不同的键
	if NewGdataSaveStore(manager, "").Exists() {
		t.Error("settings must not be stored under the save slot")
	}
}
