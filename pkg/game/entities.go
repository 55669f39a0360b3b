package game

import "fmt"

// EntityID 模拟实体的稳定标识符
//
// 由会话分配，表现层以此作为句柄的键。0 保留为无效 ID。
type EntityID uint64

// EntityKind 实体种类
type EntityKind int

const (
	KindPlayer EntityKind = iota
	KindEnemy
	KindPlayerBullet
	KindEnemyBullet
)

// String 返回实体种类的逻辑名（与资源清单中的名字一致）
func (k EntityKind) String() string {
	switch k {
	case KindPlayer:
		return "player"
	case KindEnemy:
		return "enemy"
	case KindPlayerBullet:
		return "player_bullet"
	case KindEnemyBullet:
		return "enemy_bullet"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Player 玩家炮台
type Player struct {
	ID    EntityID
	Pos   Vec2
	Alive bool
}

// Enemy 敌人
//
// 每个敌人自带漂移向量：Drift.X 为带符号的水平步长，
// Drift.Y 为非负的下落速度（初始为 0，每次撞边增加）。
type Enemy struct {
	ID    EntityID
	Pos   Vec2
	Drift Vec2
}

// Bullet 子弹，飞行方向由所属方隐含决定
type Bullet struct {
	ID  EntityID
	Pos Vec2
}

// idAllocator 单调递增的 ID 分配器
type idAllocator struct {
	next EntityID
}

func newIDAllocator() *idAllocator {
	return &idAllocator{next: 1}
}

func (a *idAllocator) Next() EntityID {
	id := a.next
	a.next++
	return id
}
