package game

import (
	"fmt"
	"log"

	"gopkg.in/yaml.v3"
)

// GameSettings 玩家偏好设置，与存档和排行榜分开保存
type GameSettings struct {
	SoundVolume  float64 `yaml:"soundVolume"`  // 音效音量 0.0 ~ 1.0
	SoundEnabled bool    `yaml:"soundEnabled"` // 音效开关

	// Fullscreen 窗口前端启动时是否全屏
	Fullscreen bool `yaml:"fullscreen"`
}

// DefaultSettings 返回默认设置
func DefaultSettings() *GameSettings {
	return &GameSettings{
		SoundVolume:  0.8,
		SoundEnabled: true,
		Fullscreen:   false,
	}
}

// SettingsManager 设置管理器
// 负责设置的加载、保存和内存管理
type SettingsManager struct {
	store    Store // 可为 nil（降级模式，仅内存设置）
	settings *GameSettings
}

// NewSettingsManager 创建设置管理器并尝试加载已保存的设置
//
// 参数：
//   - store: 设置存储（gdata 的 settings/global 或本地 YAML 文件），可为 nil
//
// 返回：
//   - *SettingsManager: 设置管理器实例
//   - error: 加载失败的原因（不影响创建，此时使用默认设置）
func NewSettingsManager(store Store) (*SettingsManager, error) {
	sm := &SettingsManager{
		store:    store,
		settings: DefaultSettings(),
	}

	if err := sm.Load(); err != nil {
		log.Printf("[SettingsManager] Warning: Failed to load settings: %v (using defaults)", err)
		return sm, err
	}
	return sm, nil
}

// Load 从存储加载设置
//
// 存储为 nil 或不存在时使用默认设置。
func (sm *SettingsManager) Load() error {
	sm.settings = DefaultSettings()
	if sm.store == nil || !sm.store.Exists() {
		return nil
	}

	data, err := sm.store.Load()
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}

	// 缺失的字段保留默认值
	loaded := DefaultSettings()
	if err := yaml.Unmarshal(data, loaded); err != nil {
		return fmt.Errorf("failed to unmarshal settings: %w", err)
	}
	loaded.SoundVolume = clampVolume(loaded.SoundVolume)

	sm.settings = loaded
	log.Printf("[SettingsManager] Settings loaded from %s", sm.store.Location())
	return nil
}

// Save 保存设置
//
// 存储为 nil 时返回 nil（降级模式，不报错）。
func (sm *SettingsManager) Save() error {
	if sm.store == nil {
		return nil
	}

	data, err := yaml.Marshal(sm.settings)
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}
	if err := sm.store.Save(data); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}

	log.Printf("[SettingsManager] Settings saved to %s", sm.store.Location())
	return nil
}

// GetSettings 获取当前设置
func (sm *SettingsManager) GetSettings() *GameSettings {
	return sm.settings
}

// SetSoundVolume 设置音效音量，限制在 0.0 ~ 1.0
// 仅修改内存中的设置，需调用 Save() 持久化
func (sm *SettingsManager) SetSoundVolume(volume float64) {
	sm.settings.SoundVolume = clampVolume(volume)
}

// SetSoundEnabled 设置音效开关
func (sm *SettingsManager) SetSoundEnabled(enabled bool) {
	sm.settings.SoundEnabled = enabled
}

// SetFullscreen 设置全屏模式
func (sm *SettingsManager) SetFullscreen(enabled bool) {
	sm.settings.Fullscreen = enabled
}

func clampVolume(volume float64) float64 {
	if volume < 0.0 {
		return 0.0
	}
	if volume > 1.0 {
		return 1.0
	}
	return volume
}
