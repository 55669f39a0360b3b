// Package app 提供窗口前端的 ebiten.Game 包装器
//
// main 负责加载配置、资源和存档，再通过 NewApp 组装场景；
// App 只负责驱动场景并在场景结束时退出游戏循环。
package app

import (
	"errors"
	"image/color"
	"log"

	"github.com/decker502/invaders/pkg/game"
	"github.com/decker502/invaders/pkg/scenes"
	"github.com/decker502/invaders/pkg/sound"
	"github.com/decker502/invaders/pkg/systems"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Config 定义应用启动配置
type Config struct {
	// Controller 已经加载好会话的控制器
	Controller *game.GameController
	// Sprites 玩家和敌人图像，缺失时以色块代替
	Sprites systems.SpriteSet
	// Sounds 提示音播放器，可为 nil
	Sounds sound.Player
	// OnFullscreenChanged F11 切换全屏后调用，用于保存偏好，可为 nil
	OnFullscreenChanged func(fullscreen bool)
}

// App 实现 ebiten.Game 接口
type App struct {
	sceneManager             *scenes.SceneManager
	width                    int
	height                   int
	tickMillis               int
	deltaTime                float64
	pendingWindowSizeReset   bool // 延迟设置窗口大小标志
	windowSizeResetCountdown int  // 延迟帧数
	onFullscreenChanged      func(bool)
}

// NewApp 创建游戏应用并切换到游戏场景
func NewApp(cfg Config) (*App, error) {
	if cfg.Controller == nil {
		return nil, errors.New("app: controller is required")
	}
	gameCfg := cfg.Controller.Session().Config()

	sceneManager := scenes.NewSceneManager()
	sceneManager.SwitchTo(scenes.NewGameScene(cfg.Controller, cfg.Sprites, cfg.Sounds))

	tickMillis := gameCfg.TickMillis
	if tickMillis <= 0 {
		tickMillis = 16
	}

	return &App{
		sceneManager: sceneManager,
		width:        gameCfg.Window.Width,
		height:       gameCfg.Window.Height,
		tickMillis:   tickMillis,
		deltaTime:    float64(tickMillis) / 1000,

		onFullscreenChanged: cfg.OnFullscreenChanged,
	}, nil
}

// TPS 每秒 tick 数，对应配置的 tick 间隔
func (a *App) TPS() int {
	tps := 1000 / a.tickMillis
	if tps < 1 {
		tps = 1
	}
	return tps
}

// Update 更新游戏逻辑
//
// 场景结束后返回 ebiten.Termination，RunGame 随之正常返回。
func (a *App) Update() error {
	// 退出全屏后需要等待几帧才能正确设置窗口大小
	if a.pendingWindowSizeReset {
		a.windowSizeResetCountdown--
		if a.windowSizeResetCountdown <= 0 {
			ebiten.SetWindowSize(a.width, a.height)
			a.pendingWindowSizeReset = false
		}
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		fullscreen := !ebiten.IsFullscreen()
		ebiten.SetFullscreen(fullscreen)
		if !fullscreen {
			if ebiten.IsWindowMaximized() || ebiten.IsWindowMinimized() {
				ebiten.RestoreWindow()
			}
			a.pendingWindowSizeReset = true
			a.windowSizeResetCountdown = 3
			log.Printf("[App] Exit fullscreen, will reset window size in 3 frames")
		}
		if a.onFullscreenChanged != nil {
			a.onFullscreenChanged(fullscreen)
		}
	}

	a.sceneManager.Update(a.deltaTime)
	if a.sceneManager.Finished() {
		log.Printf("[App] Scene finished, leaving game loop")
		return ebiten.Termination
	}
	return nil
}

// Draw 绘制游戏画面
func (a *App) Draw(screen *ebiten.Image) {
	a.sceneManager.Draw(screen)
}

// DrawFinalScreen 全屏时以黑边填充并线性缩放
func (a *App) DrawFinalScreen(screen ebiten.FinalScreen, offscreen *ebiten.Image, geoM ebiten.GeoM) {
	screen.Fill(color.Black)
	op := &ebiten.DrawImageOptions{}
	op.GeoM = geoM
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(offscreen, op)
}

// Layout 返回逻辑屏幕尺寸，即配置的窗口大小
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return a.width, a.height
}
