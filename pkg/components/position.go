package components

// PositionComponent 实体的世界坐标
//
// 世界坐标以屏幕中心为原点，Y 轴向上，与模拟层一致；
// 转换到屏幕坐标由渲染系统负责。
type PositionComponent struct {
	X, Y float64
}
