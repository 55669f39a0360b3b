package systems

// WorldToScreen 世界坐标转换为屏幕坐标
//
// 世界坐标原点在屏幕中心、Y 轴向上；屏幕坐标原点在左上角、Y 轴向下。
func WorldToScreen(x, y float64, screenW, screenH int) (float64, float64) {
	return x + float64(screenW)/2, float64(screenH)/2 - y
}
