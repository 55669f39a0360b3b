package terminal

import (
	"sort"

	"github.com/decker502/invaders/pkg/game"
	"github.com/gdamore/tcell/v2"
)

// glyph 一个实体在终端中的外观
type glyph struct {
	r     rune
	style tcell.Style
}

var glyphs = map[game.EntityKind]glyph{
	game.KindPlayer:       {'A', tcell.StyleDefault.Foreground(tcell.ColorGreen).Bold(true)},
	game.KindEnemy:        {'W', tcell.StyleDefault.Foreground(tcell.ColorFuchsia)},
	game.KindPlayerBullet: {'|', tcell.StyleDefault.Foreground(tcell.ColorYellow)},
	game.KindEnemyBullet:  {'!', tcell.StyleDefault.Foreground(tcell.ColorRed)},
}

type cellEntity struct {
	kind game.EntityKind
	x, y float64
}

// CellPresenter 把模拟实体画成终端字符，实现 game.Presenter
//
// 世界坐标 [-borderX, borderX] × [-borderY, borderY] 线性映射到
// 屏幕第 1 行以下的区域，第 0 行留给状态栏。
type CellPresenter struct {
	entities map[game.EntityID]cellEntity
	borderX  float64
	borderY  float64
}

// NewCellPresenter 创建终端表现层
func NewCellPresenter(borderX, borderY float64) *CellPresenter {
	return &CellPresenter{
		entities: make(map[game.EntityID]cellEntity),
		borderX:  borderX,
		borderY:  borderY,
	}
}

func (p *CellPresenter) CreateEntity(id game.EntityID, kind game.EntityKind, x, y float64) {
	p.entities[id] = cellEntity{kind: kind, x: x, y: y}
}

func (p *CellPresenter) DestroyEntity(id game.EntityID) {
	delete(p.entities, id)
}

func (p *CellPresenter) MoveEntity(id game.EntityID, x, y float64) {
	if e, ok := p.entities[id]; ok {
		e.x, e.y = x, y
		p.entities[id] = e
	}
}

// Cell 把世界坐标映射到 w×h 屏幕上的字符格
func (p *CellPresenter) Cell(x, y float64, w, h int) (int, int) {
	if w < 1 || h < 2 {
		return 0, 0
	}
	fx := (x + p.borderX) / (2 * p.borderX)
	fy := (p.borderY - y) / (2 * p.borderY)
	col := int(fx*float64(w-1) + 0.5)
	row := 1 + int(fy*float64(h-2)+0.5)
	return clamp(col, 0, w-1), clamp(row, 1, h-1)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Draw 绘制所有实体；按 ID 升序绘制，后创建的实体覆盖先创建的
func (p *CellPresenter) Draw(screen tcell.Screen) {
	w, h := screen.Size()

	ids := make([]game.EntityID, 0, len(p.entities))
	for id := range p.entities {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	for _, id := range ids {
		e := p.entities[id]
		col, row := p.Cell(e.x, e.y, w, h)
		g := glyphs[e.kind]
		screen.SetContent(col, row, g.r, nil, g.style)
	}
}
