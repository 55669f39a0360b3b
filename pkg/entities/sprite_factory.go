// Package entities 提供表现实体的工厂函数
package entities

import (
	"fmt"
	"image/color"

	"github.com/decker502/invaders/pkg/components"
	"github.com/decker502/invaders/pkg/ecs"
)

// NewSpriteEntity 创建一个跟随模拟实体的精灵实体
//
// 参数:
//   - em: 实体管理器
//   - kind: 模拟实体类型名（如 "enemy"），用于销毁时区分
//   - x, y: 世界坐标
//   - sprite: 视觉表现
//
// 返回:
//   - ecs.EntityID: 创建的实体ID，失败返回 0
//   - error: 参数无效时返回错误
func NewSpriteEntity(em *ecs.EntityManager, kind string, x, y float64, sprite *components.SpriteComponent) (ecs.EntityID, error) {
	if em == nil {
		return 0, fmt.Errorf("entity manager cannot be nil")
	}
	if sprite == nil {
		return 0, fmt.Errorf("sprite cannot be nil")
	}

	entityID := em.CreateEntity()
	ecs.AddComponent(em, entityID, &components.PositionComponent{X: x, Y: y})
	ecs.AddComponent(em, entityID, sprite)
	ecs.AddComponent(em, entityID, &components.EntityKindComponent{Kind: kind})
	return entityID, nil
}

// NewExplosionEffect 创建敌人被击毁时的爆炸闪光
// 闪光是一个纯色方块，lifetime 秒后由 LifetimeSystem 清理
//
// 参数:
//   - em: 实体管理器
//   - x, y: 世界坐标（被击毁敌人的位置）
//   - size: 方块边长
//   - lifetime: 持续时间（秒），必须为正
//   - c: 颜色
//   - layer: 绘制层级
func NewExplosionEffect(em *ecs.EntityManager, x, y, size, lifetime float64, c color.RGBA, layer int) (ecs.EntityID, error) {
	if em == nil {
		return 0, fmt.Errorf("entity manager cannot be nil")
	}
	if lifetime <= 0 {
		return 0, fmt.Errorf("explosion lifetime must be positive, got %.3f", lifetime)
	}

	entityID := em.CreateEntity()
	ecs.AddComponent(em, entityID, &components.PositionComponent{X: x, Y: y})
	ecs.AddComponent(em, entityID, &components.SpriteComponent{
		Width:  size,
		Height: size,
		Color:  c,
		Layer:  layer,
	})
	ecs.AddComponent(em, entityID, &components.LifetimeComponent{MaxLifetime: lifetime})
	return entityID, nil
}
