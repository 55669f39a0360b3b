package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// 敌人开火模式
const (
	// FireModeSingle 每帧按概率随机挑选一个敌人开火
	FireModeSingle = "single"
	// FireModePerEnemy 每个敌人每帧独立掷骰
	FireModePerEnemy = "per_enemy"
)

// 波次模式
const (
	// WaveModeSingle 清空一波即胜利，会话结束
	WaveModeSingle = "single"
	// WaveModeEndless 清空后立即生成新的一波
	WaveModeEndless = "endless"
)

// GameConfig 游戏调参配置
//
// 坐标系以屏幕中心为原点，Y 轴向上（与原版海龟绘图坐标一致）。
// 所有距离单位均为逻辑像素，速度单位为 像素/帧。
//
// 配置文件位置: data/game.yaml
type GameConfig struct {
	// Window 逻辑画面尺寸，边界由此推导
	Window WindowConfig `yaml:"window"`

	// Player 玩家炮台参数
	Player PlayerConfig `yaml:"player"`

	// Enemy 敌人阵列参数
	Enemy EnemyConfig `yaml:"enemy"`

	// CollisionRadius 碰撞半径（严格小于才算碰撞）
	CollisionRadius float64 `yaml:"collisionRadius"`

	// ContactRadius 玩家与敌人直接接触的判定半径，0 表示 2×CollisionRadius
	ContactRadius float64 `yaml:"contactRadius"`

	// KillScore 每击毁一个敌人的得分
	KillScore int `yaml:"killScore"`

	// TopN 排行榜保留条数
	TopN int `yaml:"topN"`

	// WaveMode 波次模式："single" 或 "endless"
	WaveMode string `yaml:"waveMode"`

	// TickMillis 两帧之间的间隔（毫秒）
	TickMillis int `yaml:"tickMillis"`
}

// WindowConfig 画面尺寸
type WindowConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
	// MarginX 左右边界相对画面边缘的内缩
	MarginX float64 `yaml:"marginX"`
	// MarginY 上下边界相对画面边缘的内缩
	MarginY float64 `yaml:"marginY"`
}

// PlayerConfig 玩家参数
type PlayerConfig struct {
	StartX      float64 `yaml:"startX"`
	StartY      float64 `yaml:"startY"`
	Speed       float64 `yaml:"speed"`
	BulletSpeed float64 `yaml:"bulletSpeed"`
	// BulletCap 同时存在的玩家子弹上限
	BulletCap int `yaml:"bulletCap"`
	// MuzzleOffset 子弹生成点相对玩家的 Y 偏移
	MuzzleOffset float64 `yaml:"muzzleOffset"`
}

// EnemyConfig 敌人参数
type EnemyConfig struct {
	Rows      int     `yaml:"rows"`
	Cols      int     `yaml:"cols"`
	SpacingX  float64 `yaml:"spacingX"`
	SpacingY  float64 `yaml:"spacingY"`
	Size      float64 `yaml:"size"`
	DriftStep float64 `yaml:"driftStep"`
	FallSpeed float64 `yaml:"fallSpeed"`
	// FireProb 每帧开火概率
	FireProb    float64 `yaml:"fireProb"`
	FireMode    string  `yaml:"fireMode"`
	BulletSpeed float64 `yaml:"bulletSpeed"`
	// MuzzleOffset 子弹生成点相对敌人的 Y 偏移（向下）
	MuzzleOffset float64 `yaml:"muzzleOffset"`
}

// DefaultGameConfig 返回与原版一致的默认配置
func DefaultGameConfig() *GameConfig {
	return &GameConfig{
		Window: WindowConfig{
			Width:   600,
			Height:  900,
			MarginX: 20,
			MarginY: 10,
		},
		Player: PlayerConfig{
			StartX:       0,
			StartY:       -350,
			Speed:        20,
			BulletSpeed:  16,
			BulletCap:    5,
			MuzzleOffset: 20,
		},
		Enemy: EnemyConfig{
			Rows:         3,
			Cols:         10,
			SpacingX:     60,
			SpacingY:     60,
			Size:         32,
			DriftStep:    2,
			FallSpeed:    0.5,
			FireProb:     0.006,
			FireMode:     FireModeSingle,
			BulletSpeed:  8,
			MuzzleOffset: 20,
		},
		CollisionRadius: 15,
		KillScore:       100,
		TopN:            10,
		WaveMode:        WaveModeSingle,
		TickMillis:      16,
	}
}

// ParseGameConfig 从 YAML 字节解析配置
//
// 未出现在 YAML 中的字段保留默认值。
//
// 参数:
//   - data: YAML 内容
//
// 返回:
//   - *GameConfig: 解析并验证后的配置
//   - error: 解析或验证失败时返回错误
func ParseGameConfig(data []byte) (*GameConfig, error) {
	cfg := DefaultGameConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse game config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid game config: %w", err)
	}

	return cfg, nil
}

// LoadGameConfig 从磁盘加载配置文件
//
// 参数:
//   - path: 配置文件路径（如 "data/game.yaml"）
//
// 返回:
//   - *GameConfig: 加载成功后的配置结构
//   - error: 加载失败时返回错误
func LoadGameConfig(path string) (*GameConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read game config: %w", err)
	}
	return ParseGameConfig(data)
}

// Validate 验证配置有效性
//
// 返回:
//   - error: 验证失败时返回错误，成功返回 nil
func (c *GameConfig) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("window size must be positive, got %dx%d", c.Window.Width, c.Window.Height)
	}
	if c.BorderX() <= 0 || c.BorderY() <= 0 {
		return fmt.Errorf("margins (%.1f, %.1f) leave no playfield", c.Window.MarginX, c.Window.MarginY)
	}

	if c.Enemy.Rows <= 0 || c.Enemy.Cols <= 0 {
		return fmt.Errorf("enemy grid must be at least 1x1, got %dx%d", c.Enemy.Rows, c.Enemy.Cols)
	}
	if c.Enemy.DriftStep <= 0 {
		return fmt.Errorf("enemy driftStep must be positive, got %.2f", c.Enemy.DriftStep)
	}
	if c.Enemy.FallSpeed < 0 {
		return fmt.Errorf("enemy fallSpeed must be >= 0, got %.2f", c.Enemy.FallSpeed)
	}
	if c.Enemy.FireProb < 0 || c.Enemy.FireProb > 1 {
		return fmt.Errorf("enemy fireProb must be within [0, 1], got %.4f", c.Enemy.FireProb)
	}
	switch c.Enemy.FireMode {
	case FireModeSingle, FireModePerEnemy:
	default:
		return fmt.Errorf("unknown enemy fireMode %q", c.Enemy.FireMode)
	}

	if c.Player.BulletCap <= 0 {
		return fmt.Errorf("player bulletCap must be positive, got %d", c.Player.BulletCap)
	}
	if c.Player.BulletSpeed <= 0 || c.Enemy.BulletSpeed <= 0 {
		return fmt.Errorf("bullet speeds must be positive")
	}

	if c.CollisionRadius <= 0 {
		return fmt.Errorf("collisionRadius must be positive, got %.2f", c.CollisionRadius)
	}
	if c.ContactRadius < 0 {
		return fmt.Errorf("contactRadius must be >= 0, got %.2f", c.ContactRadius)
	}
	if c.KillScore <= 0 {
		return fmt.Errorf("killScore must be positive, got %d", c.KillScore)
	}
	if c.TopN <= 0 {
		return fmt.Errorf("topN must be positive, got %d", c.TopN)
	}

	switch c.WaveMode {
	case WaveModeSingle, WaveModeEndless:
	default:
		return fmt.Errorf("unknown waveMode %q", c.WaveMode)
	}

	if c.TickMillis <= 0 {
		return fmt.Errorf("tickMillis must be positive, got %d", c.TickMillis)
	}

	return nil
}

// BorderX 左右边界（实体 X 坐标允许的最大绝对值）
func (c *GameConfig) BorderX() float64 {
	return float64(c.Window.Width/2) - c.Window.MarginX
}

// BorderY 上下边界（实体 Y 坐标允许的最大绝对值）
func (c *GameConfig) BorderY() float64 {
	return float64(c.Window.Height/2) - c.Window.MarginY
}

// EnemyStartY 第一行敌人的 Y 坐标（画面顶端可见处）
func (c *GameConfig) EnemyStartY() float64 {
	return c.BorderY() - c.Enemy.Size
}

// EffectiveContactRadius 玩家与敌人直接接触的判定半径
func (c *GameConfig) EffectiveContactRadius() float64 {
	if c.ContactRadius > 0 {
		return c.ContactRadius
	}
	return c.CollisionRadius * 2
}
