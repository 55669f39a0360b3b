package systems

import (
	"fmt"
	"image/color"

	"github.com/decker502/invaders/pkg/game"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/basicfont"
)

const (
	hudMargin     = 8
	hudLineHeight = 16
)

// HUDSystem 绘制分数、波次和结束提示
type HUDSystem struct {
	face      text.Face
	textColor color.Color
	overColor color.Color
}

// NewHUDSystem 创建 HUD 系统，使用内置的 7x13 位图字体
func NewHUDSystem() *HUDSystem {
	return &HUDSystem{
		face:      text.NewGoXFace(basicfont.Face7x13),
		textColor: color.White,
		overColor: color.RGBA{R: 255, G: 220, B: 0, A: 255},
	}
}

// StatusLine 左上角状态行
func StatusLine(s *game.Session) string {
	return fmt.Sprintf("SCORE %d   WAVE %d   ENEMIES %d", s.Score, s.Wave, len(s.Enemies))
}

// BannerLines 会话结束时居中显示的文字，进行中返回 nil
func BannerLines(s *game.Session) []string {
	if !s.Over() {
		return nil
	}

	var title string
	switch s.Outcome() {
	case game.OutcomeVictory:
		title = "YOU WIN"
	case game.OutcomeQuit:
		title = "QUIT"
	default:
		title = "GAME OVER - " + s.Outcome().String()
	}
	return []string{title, fmt.Sprintf("FINAL SCORE %d", s.Score), "PRESS ESC TO EXIT"}
}

// Draw 绘制 HUD
func (h *HUDSystem) Draw(screen *ebiten.Image, s *game.Session) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(hudMargin, hudMargin)
	op.ColorScale.ScaleWithColor(h.textColor)
	text.Draw(screen, StatusLine(s), h.face, op)

	lines := BannerLines(s)
	if len(lines) == 0 {
		return
	}

	bounds := screen.Bounds()
	top := float64(bounds.Dy())/2 - float64(len(lines)*hudLineHeight)/2
	for i, line := range lines {
		w, _ := text.Measure(line, h.face, 0)
		op := &text.DrawOptions{}
		op.GeoM.Translate(float64(bounds.Dx())/2-w/2, top+float64(i*hudLineHeight))
		op.ColorScale.ScaleWithColor(h.overColor)
		text.Draw(screen, line, h.face, op)
	}
}
