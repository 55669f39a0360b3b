package game

// Vec2 二维向量，用于位置和漂移向量
//
// 坐标系以画面中心为原点，Y 轴向上。
type Vec2 struct {
	X, Y float64
}

// Add 返回两个向量之和
func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{X: v.X + o.X, Y: v.Y + o.Y}
}

// DistSq 返回两点之间距离的平方
//
// 碰撞检测只比较平方值，避免开方。
func DistSq(a, b Vec2) float64 {
	dx := a.X - b.X
	dy := a.Y - b.Y
	return dx*dx + dy*dy
}

// WithinRadius 判断两点距离是否严格小于 radius
//
// 距离恰好等于半径时不算碰撞。
func WithinRadius(a, b Vec2, radius float64) bool {
	return DistSq(a, b) < radius*radius
}
