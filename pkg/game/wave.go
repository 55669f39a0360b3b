package game

import (
	"math/rand"

	"github.com/decker502/invaders/pkg/config"
)

// SpawnWave 生成或恢复一波敌人
//
// 如果 existing 非空，按原样恢复这些敌人的位置和漂移向量（读档后使用），
// 并重新分配 ID。否则生成 Rows×Cols 的新阵列：
//   - 水平方向以 x=0 为中心，间距 SpacingX
//   - 第一行位于 EnemyStartY，之后每行下移 SpacingY
//   - 初始 Drift.X 从 {-DriftStep, +DriftStep} 中均匀抽取，Drift.Y = 0
//
// 参数:
//   - cfg: 游戏配置
//   - rng: 随机数源
//   - ids: ID 分配器
//   - existing: 读档得到的敌人（可为 nil）
//
// 返回:
//   - []Enemy: 新的敌人列表
func SpawnWave(cfg *config.GameConfig, rng *rand.Rand, ids *idAllocator, existing []Enemy) []Enemy {
	if len(existing) > 0 {
		enemies := make([]Enemy, 0, len(existing))
		for _, e := range existing {
			enemies = append(enemies, Enemy{
				ID:    ids.Next(),
				Pos:   e.Pos,
				Drift: e.Drift,
			})
		}
		return enemies
	}

	ec := cfg.Enemy
	startY := cfg.EnemyStartY()
	enemies := make([]Enemy, 0, ec.Rows*ec.Cols)

	for row := 0; row < ec.Rows; row++ {
		for col := 0; col < ec.Cols; col++ {
			x := (float64(col)-float64(ec.Cols)/2)*ec.SpacingX + ec.SpacingX/2
			y := startY - float64(row)*ec.SpacingY

			dx := ec.DriftStep
			if rng.Intn(2) == 0 {
				dx = -ec.DriftStep
			}

			enemies = append(enemies, Enemy{
				ID:    ids.Next(),
				Pos:   Vec2{X: x, Y: y},
				Drift: Vec2{X: dx, Y: 0},
			})
		}
	}

	return enemies
}
