// Package terminal 提供基于 tcell 的终端前端
//
// 模拟只在 Run 所在的 goroutine 中推进：一个后台 goroutine 阻塞在
// PollEvent 上，把事件送入通道；主循环在 select 中交替处理输入事件
// 和固定间隔的 tick。
package terminal

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/decker502/invaders/pkg/game"
	"github.com/decker502/invaders/pkg/sound"
	"github.com/gdamore/tcell/v2"
)

// Runner 终端游戏循环
type Runner struct {
	screen     tcell.Screen
	controller *game.GameController
	presenter  *CellPresenter
	sync       *game.PresentationSync
	sounds     sound.Player
	tick       time.Duration
	status     string
}

// NewRunner 创建终端游戏循环
//
// screen 必须已经 Init；sounds 可为 nil。
func NewRunner(screen tcell.Screen, controller *game.GameController, sounds sound.Player) *Runner {
	cfg := controller.Session().Config()
	tick := time.Duration(cfg.TickMillis) * time.Millisecond
	if tick <= 0 {
		tick = 16 * time.Millisecond
	}
	return &Runner{
		screen:     screen,
		controller: controller,
		presenter:  NewCellPresenter(cfg.BorderX(), cfg.BorderY()),
		sync:       game.NewPresentationSync(),
		sounds:     sounds,
		tick:       tick,
	}
}

// commandForKey 把按键映射为游戏命令
func commandForKey(ev *tcell.EventKey) (game.Command, bool) {
	switch ev.Key() {
	case tcell.KeyLeft:
		return game.CommandMoveLeft, true
	case tcell.KeyRight:
		return game.CommandMoveRight, true
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return game.CommandQuit, true
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'a', 'h':
			return game.CommandMoveLeft, true
		case 'd', 'l':
			return game.CommandMoveRight, true
		case ' ':
			return game.CommandFire, true
		case 's':
			return game.CommandSave, true
		case 'q':
			return game.CommandQuit, true
		}
	}
	return 0, false
}

// Run 运行游戏循环，直到会话结束、玩家退出或 ctx 被取消
func (r *Runner) Run(ctx context.Context) error {
	events := make(chan tcell.Event, 16)
	done := make(chan struct{})
	defer close(done)

	go func() {
		for {
			ev := r.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-done:
				return
			}
		}
	}()

	ticker := time.NewTicker(r.tick)
	defer ticker.Stop()

	r.draw()

	for {
		select {
		case <-ctx.Done():
			log.Printf("[Terminal] Context cancelled: %v", ctx.Err())
			r.controller.Handle(game.CommandQuit)
			return nil

		case ev := <-events:
			if r.handleEvent(ev) {
				r.draw()
				return nil
			}

		case <-ticker.C:
			report := r.controller.Step()
			if r.sounds != nil {
				sound.PlayTick(r.sounds, report)
			}
			r.draw()
			if report.Outcome != game.OutcomeRunning {
				log.Printf("[Terminal] Session ended: %s", report.Outcome)
				return nil
			}
		}
	}
}

// handleEvent 处理一个终端事件，返回是否应结束循环
func (r *Runner) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		r.screen.Sync()
	case *tcell.EventKey:
		cmd, ok := commandForKey(ev)
		if !ok {
			return false
		}
		res := r.controller.Handle(cmd)
		switch {
		case res.Fired && r.sounds != nil:
			r.sounds.Play(sound.ToneFire)
		case res.Saved:
			r.status = "saved"
		case cmd == game.CommandSave:
			r.status = "save failed"
		}
		return res.Quit
	}
	return false
}

// draw 重绘整个屏幕
func (r *Runner) draw() {
	s := r.controller.Session()
	r.sync.Sync(s, r.presenter)

	r.screen.Clear()
	r.presenter.Draw(r.screen)

	line := fmt.Sprintf("SCORE %d  WAVE %d  ENEMIES %d  [←/→ move, space fire, s save, q quit]",
		s.Score, s.Wave, len(s.Enemies))
	if r.status != "" {
		line += "  " + r.status
	}
	drawText(r.screen, 0, 0, line, tcell.StyleDefault.Foreground(tcell.ColorWhite).Reverse(true))

	if s.Over() {
		w, h := r.screen.Size()
		msg := fmt.Sprintf(" %s - final score %d ", s.Outcome(), s.Score)
		drawText(r.screen, (w-len(msg))/2, h/2, msg, tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true))
	}

	r.screen.Show()
}

// drawText 在 (x, y) 处写一行文字，超出屏幕宽度的部分被截断
func drawText(screen tcell.Screen, x, y int, s string, style tcell.Style) {
	w, _ := screen.Size()
	for _, ch := range s {
		if x >= w {
			return
		}
		if x >= 0 {
			screen.SetContent(x, y, ch, nil, style)
		}
		x++
	}
}
