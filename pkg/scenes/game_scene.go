package scenes

import (
	"image/color"
	"log"

	"github.com/decker502/invaders/pkg/ecs"
	"github.com/decker502/invaders/pkg/game"
	"github.com/decker502/invaders/pkg/sound"
	"github.com/decker502/invaders/pkg/systems"
	"github.com/hajimehoshi/ebiten/v2"
)

var backgroundColor = color.RGBA{R: 0, G: 0, B: 0, A: 255}

// GameScene 一局游戏的窗口场景
//
// 每个 ebiten tick：读取键盘命令并交给控制器，推进一帧模拟，
// 再把会话状态同步到 ECS 表现实体。会话结束后画面停留，
// 直到玩家按退出键。
type GameScene struct {
	controller *game.GameController
	keys       KeyState
	sounds     sound.Player

	entityManager  *ecs.EntityManager
	presenter      *systems.SpritePresenter
	sync           *game.PresentationSync
	renderSystem   *systems.RenderSystem
	hudSystem      *systems.HUDSystem
	lifetimeSystem *systems.LifetimeSystem

	finished bool
}

// NewGameScene 创建游戏场景
//
// 参数:
//   - controller: 会话控制器
//   - sprites: 玩家和敌人图像
//   - sounds: 提示音播放器，可为 nil
func NewGameScene(controller *game.GameController, sprites systems.SpriteSet, sounds sound.Player) *GameScene {
	em := ecs.NewEntityManager()
	cfg := controller.Session().Config()

	s := &GameScene{
		controller:     controller,
		keys:           ebitenKeys{},
		sounds:         sounds,
		entityManager:  em,
		presenter:      systems.NewSpritePresenter(em, sprites, cfg.Enemy.Size),
		sync:           game.NewPresentationSync(),
		renderSystem:   systems.NewRenderSystem(em),
		hudSystem:      systems.NewHUDSystem(),
		lifetimeSystem: systems.NewLifetimeSystem(em),
	}
	s.sync.Sync(controller.Session(), s.presenter)
	return s
}

// SetKeyState 替换键盘输入源
func (s *GameScene) SetKeyState(keys KeyState) {
	s.keys = keys
}

// Finished 玩家是否已经离开场景
func (s *GameScene) Finished() bool {
	return s.finished
}

// Update 处理输入并推进一帧
func (s *GameScene) Update(deltaTime float64) {
	session := s.controller.Session()

	for _, cmd := range PollCommands(s.keys) {
		if session.Over() {
			// 结束画面只响应退出
			if cmd == game.CommandQuit {
				s.finished = true
			}
			continue
		}

		res := s.controller.Handle(cmd)
		if res.Fired && s.sounds != nil {
			s.sounds.Play(sound.ToneFire)
		}
		if cmd == game.CommandQuit {
			log.Printf("[GameScene] Player quit")
			s.finished = true
		}
	}

	if !session.Over() {
		report := s.controller.Step()
		if s.sounds != nil {
			sound.PlayTick(s.sounds, report)
		}
	}

	s.sync.Sync(session, s.presenter)
	s.lifetimeSystem.Update(deltaTime)
	s.entityManager.RemoveMarkedEntities()
}

// Draw 绘制游戏世界和 HUD
func (s *GameScene) Draw(screen *ebiten.Image) {
	screen.Fill(backgroundColor)
	s.renderSystem.Draw(screen)
	s.hudSystem.Draw(screen, s.controller.Session())
}
