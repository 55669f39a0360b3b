package components

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
)

// SpriteComponent 存储实体的视觉表现
//
// Image 为 nil 时以 Width×Height 的纯色矩形代替（子弹、爆炸闪光）。
type SpriteComponent struct {
	Image  *ebiten.Image
	Width  float64
	Height float64
	Color  color.RGBA
	Layer  int // 绘制层级，数值大的后绘制
}
