package systems

import (
	"image/color"
	"log"

	"github.com/decker502/invaders/pkg/components"
	"github.com/decker502/invaders/pkg/ecs"
	"github.com/decker502/invaders/pkg/entities"
	"github.com/decker502/invaders/pkg/game"
	"github.com/hajimehoshi/ebiten/v2"
)

// 绘制层级
const (
	layerEnemy = iota
	layerPlayer
	layerBullet
	layerEffect
)

// 爆炸闪光持续时间（秒）
const explosionLifetime = 0.15

var (
	playerBulletColor = color.RGBA{R: 255, G: 255, B: 0, A: 255}
	enemyBulletColor  = color.RGBA{R: 255, G: 80, B: 80, A: 255}
	explosionColor    = color.RGBA{R: 255, G: 160, B: 40, A: 255}
	fallbackColor     = color.RGBA{R: 200, G: 200, B: 200, A: 255}
)

// SpriteSet 玩家和敌人使用的图像
type SpriteSet struct {
	Player *ebiten.Image
	Enemy  *ebiten.Image
}

// SpritePresenter 以 ECS 实体实现 game.Presenter
//
// 每个模拟实体对应一个拥有 Position + Sprite + EntityKind 组件的表现实体；
// 两者之间只通过 game.EntityID -> ecs.EntityID 的映射关联。
type SpritePresenter struct {
	entityManager *ecs.EntityManager
	sprites       SpriteSet
	handles       map[game.EntityID]ecs.EntityID

	bulletWidth  float64
	bulletHeight float64
	enemySize    float64
}

// NewSpritePresenter 创建精灵表现层
//
// 参数:
//   - em: 实体管理器
//   - sprites: 玩家和敌人图像（为 nil 时绘制纯色方块）
//   - enemySize: 敌人边长，用于无图像时的方块和爆炸闪光
func NewSpritePresenter(em *ecs.EntityManager, sprites SpriteSet, enemySize float64) *SpritePresenter {
	return &SpritePresenter{
		entityManager: em,
		sprites:       sprites,
		handles:       make(map[game.EntityID]ecs.EntityID),
		bulletWidth:   3,
		bulletHeight:  10,
		enemySize:     enemySize,
	}
}

// CreateEntity 为新出现的模拟实体创建表现实体
func (p *SpritePresenter) CreateEntity(id game.EntityID, kind game.EntityKind, x, y float64) {
	if _, exists := p.handles[id]; exists {
		log.Printf("[SpritePresenter] Warning: entity %d already presented", id)
		p.MoveEntity(id, x, y)
		return
	}

	handle, err := entities.NewSpriteEntity(p.entityManager, kind.String(), x, y, p.spriteFor(kind))
	if err != nil {
		log.Printf("[SpritePresenter] Failed to present entity %d: %v", id, err)
		return
	}
	p.handles[id] = handle
}

func (p *SpritePresenter) spriteFor(kind game.EntityKind) *components.SpriteComponent {
	switch kind {
	case game.KindPlayer:
		return &components.SpriteComponent{Image: p.sprites.Player, Width: p.enemySize, Height: p.enemySize / 2, Color: fallbackColor, Layer: layerPlayer}
	case game.KindEnemy:
		return &components.SpriteComponent{Image: p.sprites.Enemy, Width: p.enemySize, Height: p.enemySize, Color: fallbackColor, Layer: layerEnemy}
	case game.KindPlayerBullet:
		return &components.SpriteComponent{Width: p.bulletWidth, Height: p.bulletHeight, Color: playerBulletColor, Layer: layerBullet}
	default:
		return &components.SpriteComponent{Width: p.bulletWidth, Height: p.bulletHeight, Color: enemyBulletColor, Layer: layerBullet}
	}
}

// DestroyEntity 删除表现实体；敌人消失处留下短暂的爆炸闪光
func (p *SpritePresenter) DestroyEntity(id game.EntityID) {
	handle, ok := p.handles[id]
	if !ok {
		return
	}
	delete(p.handles, id)

	if kind, ok := ecs.GetComponent[*components.EntityKindComponent](p.entityManager, handle); ok && kind.Kind == game.KindEnemy.String() {
		if pos, ok := ecs.GetComponent[*components.PositionComponent](p.entityManager, handle); ok {
			p.spawnExplosion(pos.X, pos.Y)
		}
	}

	p.entityManager.DestroyEntity(handle)
}

func (p *SpritePresenter) spawnExplosion(x, y float64) {
	size := p.enemySize * 0.75
	if _, err := entities.NewExplosionEffect(p.entityManager, x, y, size, explosionLifetime, explosionColor, layerEffect); err != nil {
		log.Printf("[SpritePresenter] Failed to spawn explosion: %v", err)
	}
}

// MoveEntity 更新表现实体的世界坐标
func (p *SpritePresenter) MoveEntity(id game.EntityID, x, y float64) {
	handle, ok := p.handles[id]
	if !ok {
		return
	}
	if pos, ok := ecs.GetComponent[*components.PositionComponent](p.entityManager, handle); ok {
		pos.X = x
		pos.Y = y
	}
}
