package components

// EntityKindComponent 记录表现实体对应的模拟实体种类
//
// Kind 与资源清单中的逻辑名一致："player"、"enemy"、"player_bullet"、"enemy_bullet"。
type EntityKindComponent struct {
	Kind string
}
