package systems

import (
	"sort"

	"github.com/decker502/invaders/pkg/components"
	"github.com/decker502/invaders/pkg/ecs"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// RenderSystem 绘制所有拥有位置和精灵组件的实体
//
// 按 Layer 升序绘制，同层按实体 ID 升序；有图像的实体以中心对齐绘制图像，
// 否则绘制纯色矩形。
type RenderSystem struct {
	entityManager *ecs.EntityManager
}

// NewRenderSystem 创建一个新的渲染系统
func NewRenderSystem(em *ecs.EntityManager) *RenderSystem {
	return &RenderSystem{entityManager: em}
}

// drawOrder 返回按层级排序的待绘制实体
func (s *RenderSystem) drawOrder() []ecs.EntityID {
	entities := ecs.GetEntitiesWith2[
		*components.PositionComponent,
		*components.SpriteComponent,
	](s.entityManager)

	sort.SliceStable(entities, func(i, j int) bool {
		si, _ := ecs.GetComponent[*components.SpriteComponent](s.entityManager, entities[i])
		sj, _ := ecs.GetComponent[*components.SpriteComponent](s.entityManager, entities[j])
		return si.Layer < sj.Layer
	})
	return entities
}

// Draw 绘制游戏世界
func (s *RenderSystem) Draw(screen *ebiten.Image) {
	bounds := screen.Bounds()
	w, h := bounds.Dx(), bounds.Dy()

	for _, id := range s.drawOrder() {
		pos, _ := ecs.GetComponent[*components.PositionComponent](s.entityManager, id)
		sprite, _ := ecs.GetComponent[*components.SpriteComponent](s.entityManager, id)

		sx, sy := WorldToScreen(pos.X, pos.Y, w, h)

		if sprite.Image != nil {
			ib := sprite.Image.Bounds()
			op := &ebiten.DrawImageOptions{}
			op.GeoM.Translate(sx-float64(ib.Dx())/2, sy-float64(ib.Dy())/2)
			screen.DrawImage(sprite.Image, op)
			continue
		}

		vector.DrawFilledRect(screen,
			float32(sx-sprite.Width/2), float32(sy-sprite.Height/2),
			float32(sprite.Width), float32(sprite.Height),
			sprite.Color, false)
	}
}
