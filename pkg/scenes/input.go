package scenes

import (
	"github.com/decker502/invaders/pkg/game"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// KeyState 报告按键已持续按下的 tick 数（未按下为 0）
type KeyState interface {
	PressDuration(key ebiten.Key) int
}

// ebitenKeys 读取 ebiten 的实时键盘状态
type ebitenKeys struct{}

func (ebitenKeys) PressDuration(key ebiten.Key) int {
	return inpututil.KeyPressDuration(key)
}

// 按住按键时的自动重复：首帧触发，之后等待 delay 个 tick，每 interval 个 tick 触发一次
type repeatRule struct {
	delay    int
	interval int
}

var (
	moveRepeat = repeatRule{delay: 8, interval: 3}
	fireRepeat = repeatRule{delay: 15, interval: 4}
)

func (r repeatRule) fires(d int) bool {
	if d == 1 {
		return true
	}
	return d > r.delay && (d-r.delay)%r.interval == 0
}

type keyBinding struct {
	keys []ebiten.Key
	cmd  game.Command
	rule *repeatRule // nil 表示只在按下的第一帧触发
}

var keyBindings = []keyBinding{
	{keys: []ebiten.Key{ebiten.KeyArrowLeft, ebiten.KeyA}, cmd: game.CommandMoveLeft, rule: &moveRepeat},
	{keys: []ebiten.Key{ebiten.KeyArrowRight, ebiten.KeyD}, cmd: game.CommandMoveRight, rule: &moveRepeat},
	{keys: []ebiten.Key{ebiten.KeySpace}, cmd: game.CommandFire, rule: &fireRepeat},
	{keys: []ebiten.Key{ebiten.KeyS}, cmd: game.CommandSave},
	{keys: []ebiten.Key{ebiten.KeyEscape, ebiten.KeyQ}, cmd: game.CommandQuit},
}

// PollCommands 把本 tick 的键盘状态转换为命令，顺序与 keyBindings 一致
//
// 同一命令的多个按键在同一 tick 只产生一条命令。
func PollCommands(keys KeyState) []game.Command {
	var cmds []game.Command
	for _, b := range keyBindings {
		for _, k := range b.keys {
			d := keys.PressDuration(k)
			if d == 0 {
				continue
			}
			if (b.rule == nil && d == 1) || (b.rule != nil && b.rule.fires(d)) {
				cmds = append(cmds, b.cmd)
				break
			}
		}
	}
	return cmds
}
