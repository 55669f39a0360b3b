package game

import "sort"

// Presenter 表现层需要实现的全部操作
//
// 模拟实体只是纯数据，表现层用 EntityID 作为句柄的键，
// 自行维护精灵、终端字符等表现对象。
type Presenter interface {
	CreateEntity(id EntityID, kind EntityKind, x, y float64)
	DestroyEntity(id EntityID)
	MoveEntity(id EntityID, x, y float64)
}

// PresentationSync 把会话状态同步到 Presenter
//
// 每帧对比上一帧已知的实体集合：新出现的创建、仍存在的移动、消失的销毁。
type PresentationSync struct {
	known map[EntityID]EntityKind
}

// NewPresentationSync 创建同步器
func NewPresentationSync() *PresentationSync {
	return &PresentationSync{known: make(map[EntityID]EntityKind)}
}

// Sync 执行一次同步
func (ps *PresentationSync) Sync(s *Session, p Presenter) {
	seen := make(map[EntityID]bool, len(ps.known))

	visit := func(id EntityID, kind EntityKind, pos Vec2) {
		seen[id] = true
		if _, ok := ps.known[id]; ok {
			p.MoveEntity(id, pos.X, pos.Y)
			return
		}
		ps.known[id] = kind
		p.CreateEntity(id, kind, pos.X, pos.Y)
	}

	if s.Player.Alive {
		visit(s.Player.ID, KindPlayer, s.Player.Pos)
	}
	for _, e := range s.Enemies {
		visit(e.ID, KindEnemy, e.Pos)
	}
	for _, b := range s.PlayerBullets {
		visit(b.ID, KindPlayerBullet, b.Pos)
	}
	for _, b := range s.EnemyBullets {
		visit(b.ID, KindEnemyBullet, b.Pos)
	}

	gone := make([]EntityID, 0)
	for id := range ps.known {
		if !seen[id] {
			gone = append(gone, id)
		}
	}
	sort.Slice(gone, func(i, j int) bool { return gone[i] < gone[j] })
	for _, id := range gone {
		delete(ps.known, id)
		p.DestroyEntity(id)
	}
}

// Clear 销毁所有已知实体（结束画面使用）
func (ps *PresentationSync) Clear(p Presenter) {
	ids := make([]EntityID, 0, len(ps.known))
	for id := range ps.known {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	for _, id := range ids {
		delete(ps.known, id)
		p.DestroyEntity(id)
	}
}
