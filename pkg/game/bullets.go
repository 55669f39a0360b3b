package game

import (
	"math/rand"

	"github.com/decker502/invaders/pkg/config"
)

// FirePlayerBullet 玩家开火
//
// 活跃的玩家子弹数量达到上限时不生成新子弹。
//
// 返回:
//   - []Bullet: 追加新子弹后的列表
//   - bool: 是否成功开火
func FirePlayerBullet(bullets []Bullet, origin Vec2, limit int, ids *idAllocator) ([]Bullet, bool) {
	if len(bullets) >= limit {
		return bullets, false
	}
	return append(bullets, Bullet{ID: ids.Next(), Pos: origin}), true
}

// EnemyFireTick 敌人开火掷骰
//
// single 模式：以 FireProb 的概率随机挑选一个敌人开火；
// per_enemy 模式：每个敌人独立以 FireProb 的概率开火。
// 子弹生成在敌人正下方 MuzzleOffset 处。
//
// 返回:
//   - []Bullet: 追加新子弹后的敌人子弹列表
//   - int: 本帧新生成的子弹数
func EnemyFireTick(cfg *config.GameConfig, rng *rand.Rand, ids *idAllocator, enemies []Enemy, bullets []Bullet) ([]Bullet, int) {
	if len(enemies) == 0 {
		return bullets, 0
	}

	muzzle := Vec2{X: 0, Y: -cfg.Enemy.MuzzleOffset}
	fired := 0

	switch cfg.Enemy.FireMode {
	case config.FireModePerEnemy:
		for _, e := range enemies {
			if rng.Float64() < cfg.Enemy.FireProb {
				bullets = append(bullets, Bullet{ID: ids.Next(), Pos: e.Pos.Add(muzzle)})
				fired++
			}
		}
	default:
		if rng.Float64() < cfg.Enemy.FireProb {
			shooter := enemies[rng.Intn(len(enemies))]
			bullets = append(bullets, Bullet{ID: ids.Next(), Pos: shooter.Pos.Add(muzzle)})
			fired++
		}
	}

	return bullets, fired
}

// AdvanceBullets 沿 Y 轴移动所有子弹并裁剪越界子弹
//
// velocity > 0 表示向上飞行，y >= exitY 时裁剪；
// velocity < 0 表示向下飞行，y <= exitY 时裁剪。
// 恰好到达边界的子弹也会被裁剪。存活子弹保持原有顺序。
func AdvanceBullets(bullets []Bullet, velocity, exitY float64) []Bullet {
	kept := make([]Bullet, 0, len(bullets))
	for _, b := range bullets {
		b.Pos.Y += velocity
		if velocity > 0 && b.Pos.Y >= exitY {
			continue
		}
		if velocity < 0 && b.Pos.Y <= exitY {
			continue
		}
		kept = append(kept, b)
	}
	return kept
}
