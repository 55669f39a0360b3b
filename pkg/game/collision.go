package game

// PlayerBulletHits 玩家子弹与敌人碰撞的结算结果
type PlayerBulletHits struct {
	Bullets []Bullet // 未命中的子弹
	Enemies []Enemy  // 存活的敌人
	Kills   int      // 本次击毁的敌人数
}

// ResolvePlayerBullets 结算玩家子弹与敌人的碰撞
//
// 每颗子弹按顺序扫描敌人，命中第一个半径内的敌人后两者同时销毁，
// 不再继续扫描（一颗子弹每帧最多击毁一个敌人）。
// 已被先前子弹击毁的敌人不会被再次命中。
// 输入切片不会被修改，结果由存活列表重建。
func ResolvePlayerBullets(bullets []Bullet, enemies []Enemy, radius float64) PlayerBulletHits {
	dead := make([]bool, len(enemies))
	keptBullets := make([]Bullet, 0, len(bullets))
	kills := 0

	for _, b := range bullets {
		hit := false
		for i, e := range enemies {
			if dead[i] {
				continue
			}
			if WithinRadius(b.Pos, e.Pos, radius) {
				dead[i] = true
				hit = true
				kills++
				break
			}
		}
		if !hit {
			keptBullets = append(keptBullets, b)
		}
	}

	keptEnemies := make([]Enemy, 0, len(enemies)-kills)
	for i, e := range enemies {
		if !dead[i] {
			keptEnemies = append(keptEnemies, e)
		}
	}

	return PlayerBulletHits{
		Bullets: keptBullets,
		Enemies: keptEnemies,
		Kills:   kills,
	}
}

// EnemyBulletsHitPlayer 检查敌人子弹是否击中玩家
//
// 第一颗命中的子弹被移除，其余子弹原样保留（玩家只能死一次）。
//
// 返回:
//   - []Bullet: 剩余的敌人子弹
//   - bool: 玩家是否被击中
func EnemyBulletsHitPlayer(bullets []Bullet, player Vec2, radius float64) ([]Bullet, bool) {
	for i, b := range bullets {
		if WithinRadius(b.Pos, player, radius) {
			kept := make([]Bullet, 0, len(bullets)-1)
			kept = append(kept, bullets[:i]...)
			kept = append(kept, bullets[i+1:]...)
			return kept, true
		}
	}
	return bullets, false
}

// PlayerTouchesEnemy 检查是否有敌人与玩家直接接触
func PlayerTouchesEnemy(player Vec2, enemies []Enemy, contactRadius float64) bool {
	for _, e := range enemies {
		if WithinRadius(player, e.Pos, contactRadius) {
			return true
		}
	}
	return false
}

// EnemyReachedPlayerRow 检查是否有敌人下降到玩家所在行
//
// 判定条件为 enemy.y <= player.y，不对浮点数做相等比较。
func EnemyReachedPlayerRow(player Vec2, enemies []Enemy) bool {
	for _, e := range enemies {
		if e.Pos.Y <= player.Y {
			return true
		}
	}
	return false
}
