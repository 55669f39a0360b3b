package game

// UpdateEnemies 推进整个敌人阵列一帧
//
// 流程：
//  1. 所有敌人 x += Drift.X
//  2. 任一敌人越过左右边界时，将越界者夹回边界，
//     然后全体敌人 Drift.X 取反、Drift.Y 增加 fallSpeed（整群只反应一次）
//  3. Drift.Y > 0 的敌人 y -= Drift.Y（第一次撞边之前只有水平漂移）
//  4. y 低于 -borderY 的敌人被移除
//
// 参数:
//   - enemies: 当前敌人列表（不会被原地修改）
//   - borderX: 左右边界
//   - borderY: 上下边界
//   - fallSpeed: 每次撞边增加的下落速度
//
// 返回:
//   - []Enemy: 存活的敌人
//   - bool: 本帧是否发生撞边
func UpdateEnemies(enemies []Enemy, borderX, borderY, fallSpeed float64) ([]Enemy, bool) {
	moved := make([]Enemy, len(enemies))
	copy(moved, enemies)

	bounced := false
	for i := range moved {
		e := &moved[i]
		e.Pos.X += e.Drift.X

		if e.Pos.X > borderX {
			e.Pos.X = borderX
			bounced = true
		} else if e.Pos.X < -borderX {
			e.Pos.X = -borderX
			bounced = true
		}
	}

	if bounced {
		for i := range moved {
			moved[i].Drift.X = -moved[i].Drift.X
			moved[i].Drift.Y += fallSpeed
		}
	}

	survivors := make([]Enemy, 0, len(moved))
	for _, e := range moved {
		if e.Drift.Y > 0 {
			e.Pos.Y -= e.Drift.Y
		}
		if e.Pos.Y < -borderY {
			continue
		}
		survivors = append(survivors, e)
	}

	return survivors, bounced
}
