package game

import (
	"fmt"
	"log"
	"math/rand"

	"github.com/decker502/invaders/pkg/config"
)

// Command 输入层投递的离散命令
type Command int

const (
	CommandMoveLeft Command = iota
	CommandMoveRight
	CommandFire
	CommandSave
	CommandQuit
)

// String 返回命令名
func (c Command) String() string {
	switch c {
	case CommandMoveLeft:
		return "move_left"
	case CommandMoveRight:
		return "move_right"
	case CommandFire:
		return "fire"
	case CommandSave:
		return "save"
	case CommandQuit:
		return "quit"
	default:
		return fmt.Sprintf("command(%d)", int(c))
	}
}

// Outcome 会话状态
type Outcome int

const (
	// OutcomeRunning 会话进行中
	OutcomeRunning Outcome = iota
	// OutcomeVictory 所有敌人被消灭
	OutcomeVictory
	// OutcomeRammed 敌人与玩家直接接触
	OutcomeRammed
	// OutcomeShotDown 玩家被敌人子弹击中
	OutcomeShotDown
	// OutcomeInvaded 敌人下降到玩家所在行
	OutcomeInvaded
	// OutcomeQuit 玩家主动退出
	OutcomeQuit
)

// String 返回结局描述
func (o Outcome) String() string {
	switch o {
	case OutcomeRunning:
		return "running"
	case OutcomeVictory:
		return "victory"
	case OutcomeRammed:
		return "rammed"
	case OutcomeShotDown:
		return "shot down"
	case OutcomeInvaded:
		return "invaded"
	case OutcomeQuit:
		return "quit"
	default:
		return fmt.Sprintf("outcome(%d)", int(o))
	}
}

// IsLoss 是否为失败结局
func (o Outcome) IsLoss() bool {
	return o == OutcomeRammed || o == OutcomeShotDown || o == OutcomeInvaded
}

// TickReport 单帧结算报告，供表现层播放音效等使用
type TickReport struct {
	Frame       int
	Kills       int
	EnemyShots  int
	Bounced     bool
	WaveCleared bool
	Outcome     Outcome
}

// Session 一局游戏的完整模拟状态
//
// 只由一个线程持有和修改；输入命令在两帧之间通过 Apply 应用。
type Session struct {
	cfg *config.GameConfig
	rng *rand.Rand
	ids *idAllocator

	Score         int
	Frame         int
	Wave          int
	Player        Player
	Enemies       []Enemy
	PlayerBullets []Bullet
	EnemyBullets  []Bullet

	outcome Outcome
}

// NewSession 创建一局新游戏
//
// 玩家位于配置的出生点，生成第一波敌人。
func NewSession(cfg *config.GameConfig, rng *rand.Rand) *Session {
	s := &Session{
		cfg: cfg,
		rng: rng,
		ids: newIDAllocator(),
	}
	s.Player = Player{
		ID:    s.ids.Next(),
		Pos:   Vec2{X: cfg.Player.StartX, Y: cfg.Player.StartY},
		Alive: true,
	}
	s.Enemies = SpawnWave(cfg, rng, s.ids, nil)
	s.Wave = 1

	log.Printf("[Session] New game: %d enemies", len(s.Enemies))
	return s
}

// RestoreSession 从存档数据恢复一局游戏
//
// 存档中没有敌人时生成新的一波。
func RestoreSession(cfg *config.GameConfig, rng *rand.Rand, st *SaveState) *Session {
	s := &Session{
		cfg:   cfg,
		rng:   rng,
		ids:   newIDAllocator(),
		Score: st.Score,
		Frame: st.Frame,
		Wave:  1,
	}
	s.Player = Player{ID: s.ids.Next(), Pos: st.Player, Alive: true}

	existing := make([]Enemy, 0, len(st.Enemies))
	for _, rec := range st.Enemies {
		existing = append(existing, Enemy{Pos: rec.Pos, Drift: rec.Drift})
	}
	s.Enemies = SpawnWave(cfg, rng, s.ids, existing)

	s.PlayerBullets = s.restoreBullets(st.PlayerBullets)
	s.EnemyBullets = s.restoreBullets(st.EnemyBullets)

	log.Printf("[Session] Restored game: score=%d, frame=%d, enemies=%d, bullets=%d/%d",
		s.Score, s.Frame, len(s.Enemies), len(s.PlayerBullets), len(s.EnemyBullets))
	return s
}

func (s *Session) restoreBullets(positions []Vec2) []Bullet {
	bullets := make([]Bullet, 0, len(positions))
	for _, p := range positions {
		bullets = append(bullets, Bullet{ID: s.ids.Next(), Pos: p})
	}
	return bullets
}

// Config 返回会话使用的配置
func (s *Session) Config() *config.GameConfig {
	return s.cfg
}

// Outcome 返回当前会话状态
func (s *Session) Outcome() Outcome {
	return s.outcome
}

// Over 会话是否已结束
func (s *Session) Over() bool {
	return s.outcome != OutcomeRunning
}

// Apply 应用一条输入命令
//
// 移动和开火在玩家不存在或会话已结束时被忽略；
// 存档命令由 GameController 处理，这里不做任何事。
//
// 返回:
//   - bool: 命令是否改变了状态
func (s *Session) Apply(cmd Command) bool {
	if s.Over() {
		return false
	}

	switch cmd {
	case CommandMoveLeft:
		return s.movePlayer(-s.cfg.Player.Speed)
	case CommandMoveRight:
		return s.movePlayer(s.cfg.Player.Speed)
	case CommandFire:
		if !s.Player.Alive {
			return false
		}
		origin := s.Player.Pos.Add(Vec2{X: 0, Y: s.cfg.Player.MuzzleOffset})
		var fired bool
		s.PlayerBullets, fired = FirePlayerBullet(s.PlayerBullets, origin, s.cfg.Player.BulletCap, s.ids)
		return fired
	case CommandQuit:
		s.outcome = OutcomeQuit
		log.Printf("[Session] Quit at frame %d, score %d", s.Frame, s.Score)
		return true
	}
	return false
}

func (s *Session) movePlayer(dx float64) bool {
	if !s.Player.Alive {
		return false
	}
	border := s.cfg.BorderX()
	x := s.Player.Pos.X + dx
	if x < -border {
		x = -border
	}
	if x > border {
		x = border
	}
	s.Player.Pos.X = x
	return true
}

// Step 推进一帧
//
// 顺序固定：
//  1. 玩家子弹移动并裁剪
//  2. 敌人阵列移动/撞边
//  3. 敌人开火掷骰
//  4. 敌人子弹移动并裁剪
//  5. 碰撞结算：玩家子弹 → 直接接触 → 敌人子弹 → 到达玩家行
//  6. 终局判定，帧计数加一
//
// 任一失败条件触发后本帧不再检查后续条件。
func (s *Session) Step() TickReport {
	if s.Over() {
		return TickReport{Frame: s.Frame, Outcome: s.outcome}
	}

	cfg := s.cfg
	report := TickReport{}

	s.PlayerBullets = AdvanceBullets(s.PlayerBullets, cfg.Player.BulletSpeed, cfg.BorderY())

	s.Enemies, report.Bounced = UpdateEnemies(s.Enemies, cfg.BorderX(), cfg.BorderY(), cfg.Enemy.FallSpeed)

	s.EnemyBullets, report.EnemyShots = EnemyFireTick(cfg, s.rng, s.ids, s.Enemies, s.EnemyBullets)

	s.EnemyBullets = AdvanceBullets(s.EnemyBullets, -cfg.Enemy.BulletSpeed, -cfg.BorderY())

	report.WaveCleared = s.resolvePlayerBullets(&report)

	if s.Player.Alive {
		s.outcome = s.checkLoss()
	}

	if s.outcome == OutcomeRunning && report.WaveCleared {
		if cfg.WaveMode == config.WaveModeEndless {
			s.Enemies = SpawnWave(cfg, s.rng, s.ids, nil)
			s.Wave++
			log.Printf("[Session] Wave cleared, spawning wave %d", s.Wave)
		} else {
			s.outcome = OutcomeVictory
		}
	}

	if s.outcome != OutcomeRunning {
		log.Printf("[Session] Game over at frame %d: %s (score %d)", s.Frame, s.outcome, s.Score)
	}

	s.Frame++
	report.Frame = s.Frame
	report.Outcome = s.outcome
	return report
}

// resolvePlayerBullets 结算玩家子弹并计分，返回敌人是否已全部消灭
func (s *Session) resolvePlayerBullets(report *TickReport) bool {
	if len(s.PlayerBullets) > 0 {
		hits := ResolvePlayerBullets(s.PlayerBullets, s.Enemies, s.cfg.CollisionRadius)
		s.PlayerBullets = hits.Bullets
		s.Enemies = hits.Enemies
		s.Score += hits.Kills * s.cfg.KillScore
		report.Kills = hits.Kills
	}
	return len(s.Enemies) == 0
}

// checkLoss 按固定顺序检查失败条件
func (s *Session) checkLoss() Outcome {
	if PlayerTouchesEnemy(s.Player.Pos, s.Enemies, s.cfg.EffectiveContactRadius()) {
		s.Player.Alive = false
		return OutcomeRammed
	}

	var hit bool
	s.EnemyBullets, hit = EnemyBulletsHitPlayer(s.EnemyBullets, s.Player.Pos, s.cfg.CollisionRadius)
	if hit {
		s.Player.Alive = false
		return OutcomeShotDown
	}

	if EnemyReachedPlayerRow(s.Player.Pos, s.Enemies) {
		return OutcomeInvaded
	}

	return OutcomeRunning
}

// Snapshot 导出可序列化的存档数据
func (s *Session) Snapshot() *SaveState {
	st := &SaveState{
		Score:         s.Score,
		Frame:         s.Frame,
		Player:        s.Player.Pos,
		Enemies:       make([]EnemyRecord, 0, len(s.Enemies)),
		PlayerBullets: make([]Vec2, 0, len(s.PlayerBullets)),
		EnemyBullets:  make([]Vec2, 0, len(s.EnemyBullets)),
	}
	for _, e := range s.Enemies {
		st.Enemies = append(st.Enemies, EnemyRecord{Pos: e.Pos, Drift: e.Drift})
	}
	for _, b := range s.PlayerBullets {
		st.PlayerBullets = append(st.PlayerBullets, b.Pos)
	}
	for _, b := range s.EnemyBullets {
		st.EnemyBullets = append(st.EnemyBullets, b.Pos)
	}
	return st
}
