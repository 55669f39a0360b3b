package game

import (
	"testing"

	"github.com/decker502/invaders/pkg/config"
)

func TestNewSession(t *testing.T) {
	cfg := testConfig()
	s := NewSession(cfg, testRand())

	if s.Player.Pos != (Vec2{cfg.Player.StartX, cfg.Player.StartY}) {
		t.Errorf("player start: got %v", s.Player.Pos)
	}
	if !s.Player.Alive {
		t.Error("player should start alive")
	}
	if len(s.Enemies) != cfg.Enemy.Rows*cfg.Enemy.Cols {
		t.Errorf("enemy count: got %d", len(s.Enemies))
	}
	if s.Score != 0 || s.Frame != 0 || s.Wave != 1 {
		t.Errorf("unexpected counters score=%d frame=%d wave=%d", s.Score, s.Frame, s.Wave)
	}
	if s.Outcome() != OutcomeRunning || s.Over() {
		t.Errorf("new session should be running, got %s", s.Outcome())
	}
}

// TestStepOutcomes 测试每种结局的触发条件
func TestStepOutcomes(t *testing.T) {
	tests := []struct {
		name          string
		enemies       []Enemy
		playerBullets []Bullet
		enemyBullets  []Bullet
		wantOutcome   Outcome
		wantScore     int
		wantAlive     bool
	}{
		{
			name:          "last enemy destroyed",
			enemies:       []Enemy{{Pos: Vec2{0, 0}}},
			playerBullets: []Bullet{{Pos: Vec2{0, -16}}},
			wantOutcome:   OutcomeVictory,
			wantScore:     100,
			wantAlive:     true,
		},
		{
			name:         "shot down by enemy bullet",
			enemies:      []Enemy{{Pos: Vec2{200, 300}}},
			enemyBullets: []Bullet{{Pos: Vec2{0, -342}}},
			wantOutcome:  OutcomeShotDown,
			wantAlive:    false,
		},
		{
			name:        "enemy reaches player row",
			enemies:     []Enemy{{Pos: Vec2{200, -349}, Drift: Vec2{0, 1}}},
			wantOutcome: OutcomeInvaded,
			wantAlive:   true,
		},
		{
			name:        "enemy rams player",
			enemies:     []Enemy{{Pos: Vec2{0, -340}}},
			wantOutcome: OutcomeRammed,
			wantAlive:   false,
		},
		{
			name:        "nothing happens",
			enemies:     []Enemy{{Pos: Vec2{0, 200}, Drift: Vec2{2, 0}}},
			wantOutcome: OutcomeRunning,
			wantAlive:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestSession(testConfig(), tt.enemies...)
			s.PlayerBullets = tt.playerBullets
			s.EnemyBullets = tt.enemyBullets

			report := s.Step()

			if report.Outcome != tt.wantOutcome || s.Outcome() != tt.wantOutcome {
				t.Errorf("outcome: got %s, want %s", s.Outcome(), tt.wantOutcome)
			}
			if s.Score != tt.wantScore {
				t.Errorf("score: got %d, want %d", s.Score, tt.wantScore)
			}
			if s.Player.Alive != tt.wantAlive {
				t.Errorf("player alive: got %v, want %v", s.Player.Alive, tt.wantAlive)
			}
			if s.Frame != 1 || report.Frame != 1 {
				t.Errorf("frame: got %d, want 1", s.Frame)
			}
		})
	}
}

func TestStepVictoryReport(t *testing.T) {
	s := newTestSession(testConfig(), Enemy{Pos: Vec2{0, 0}})
	s.PlayerBullets = []Bullet{{ID: 99, Pos: Vec2{0, -16}}}

	report := s.Step()
	if report.Kills != 1 || !report.WaveCleared {
		t.Errorf("unexpected report %+v", report)
	}
	if report.Outcome != OutcomeVictory {
		t.Errorf("expected victory, got %s", report.Outcome)
	}

	// 结束后继续 Step 不再改变状态
	again := s.Step()
	if s.Frame != 1 || again.Outcome != OutcomeVictory {
		t.Errorf("finished session advanced: frame=%d outcome=%s", s.Frame, again.Outcome)
	}
}

// TestStepLossBeatsVictory 同一帧内失败优先于胜利
func TestStepLossBeatsVictory(t *testing.T) {
	s := newTestSession(testConfig(), Enemy{Pos: Vec2{200, 0}})
	s.PlayerBullets = []Bullet{{Pos: Vec2{200, -16}}}
	s.EnemyBullets = []Bullet{{Pos: Vec2{0, -342}}}

	s.Step()
	if s.Outcome() != OutcomeShotDown {
		t.Errorf("outcome: got %s, want %s", s.Outcome(), OutcomeShotDown)
	}
	if s.Score != 100 {
		t.Errorf("kill in the losing frame should still score, got %d", s.Score)
	}
}

func TestStepEndlessRespawn(t *testing.T) {
	cfg := testConfig()
	cfg.WaveMode = config.WaveModeEndless

	s := newTestSession(cfg, Enemy{Pos: Vec2{0, 0}})
	s.PlayerBullets = []Bullet{{Pos: Vec2{0, -16}}}

	report := s.Step()
	if !report.WaveCleared {
		t.Error("wave should be reported as cleared")
	}
	if s.Outcome() != OutcomeRunning {
		t.Fatalf("endless mode should keep running, got %s", s.Outcome())
	}
	if s.Wave != 2 {
		t.Errorf("wave: got %d, want 2", s.Wave)
	}
	if len(s.Enemies) != cfg.Enemy.Rows*cfg.Enemy.Cols {
		t.Errorf("respawned enemies: got %d", len(s.Enemies))
	}
}

func TestApplyMoveClamp(t *testing.T) {
	cfg := testConfig()
	s := newTestSession(cfg, Enemy{Pos: Vec2{0, 200}})

	for i := 0; i < 20; i++ {
		s.Apply(CommandMoveRight)
	}
	if s.Player.Pos.X != cfg.BorderX() {
		t.Errorf("right clamp: got %v, want %v", s.Player.Pos.X, cfg.BorderX())
	}

	for i := 0; i < 40; i++ {
		s.Apply(CommandMoveLeft)
	}
	if s.Player.Pos.X != -cfg.BorderX() {
		t.Errorf("left clamp: got %v, want %v", s.Player.Pos.X, -cfg.BorderX())
	}
	if s.Player.Pos.Y != cfg.Player.StartY {
		t.Errorf("moving should not change y, got %v", s.Player.Pos.Y)
	}
}

func TestApplyFire(t *testing.T) {
	cfg := testConfig()
	s := newTestSession(cfg, Enemy{Pos: Vec2{0, 200}})

	accepted := 0
	for i := 0; i < 8; i++ {
		if s.Apply(CommandFire) {
			accepted++
		}
	}
	if accepted != cfg.Player.BulletCap || len(s.PlayerBullets) != cfg.Player.BulletCap {
		t.Errorf("accepted %d shots (%d bullets), want %d", accepted, len(s.PlayerBullets), cfg.Player.BulletCap)
	}

	want := Vec2{cfg.Player.StartX, cfg.Player.StartY + cfg.Player.MuzzleOffset}
	if s.PlayerBullets[0].Pos != want {
		t.Errorf("bullet origin: got %v, want %v", s.PlayerBullets[0].Pos, want)
	}
}

func TestApplyQuit(t *testing.T) {
	s := newTestSession(testConfig(), Enemy{Pos: Vec2{0, 200}})

	if !s.Apply(CommandQuit) {
		t.Error("quit should change state")
	}
	if s.Outcome() != OutcomeQuit || !s.Over() {
		t.Errorf("outcome: got %s, want quit", s.Outcome())
	}
	if s.Outcome().IsLoss() {
		t.Error("quitting is not a loss")
	}

	// 结束后所有命令都被忽略
	if s.Apply(CommandFire) || s.Apply(CommandMoveLeft) {
		t.Error("commands should be ignored after the session is over")
	}
	s.Step()
	if s.Frame != 0 {
		t.Errorf("frame advanced after quit: %d", s.Frame)
	}
}

// TestScoreMonotonic 分数只增不减，且总是 KillScore 的整数倍
func TestScoreMonotonic(t *testing.T) {
	cfg := config.DefaultGameConfig()
	cfg.Enemy.FireProb = 0.05
	s := NewSession(cfg, testRand())

	last := 0
	for i := 0; i < 2000 && !s.Over(); i++ {
		if i%3 == 0 {
			s.Apply(CommandFire)
		}
		if i%50 < 25 {
			s.Apply(CommandMoveLeft)
		} else {
			s.Apply(CommandMoveRight)
		}
		s.Step()

		if s.Score < last {
			t.Fatalf("score decreased at frame %d: %d -> %d", s.Frame, last, s.Score)
		}
		if s.Score%cfg.KillScore != 0 {
			t.Fatalf("score %d is not a multiple of %d", s.Score, cfg.KillScore)
		}
		if len(s.PlayerBullets) > cfg.Player.BulletCap {
			t.Fatalf("player bullet cap exceeded: %d", len(s.PlayerBullets))
		}
		last = s.Score
	}
}

func TestSnapshotRestore(t *testing.T) {
	cfg := testConfig()
	s := newTestSession(cfg,
		Enemy{Pos: Vec2{10, 100}, Drift: Vec2{-2, 0.5}},
		Enemy{Pos: Vec2{70, 100}, Drift: Vec2{2, 0}},
	)
	s.Score = 300
	s.Frame = 42
	s.Player.Pos.X = -60
	s.PlayerBullets = []Bullet{{ID: 50, Pos: Vec2{-60, 0}}}
	s.EnemyBullets = []Bullet{{ID: 51, Pos: Vec2{10, 50}}, {ID: 52, Pos: Vec2{70, 20}}}

	restored := RestoreSession(cfg, testRand(), s.Snapshot())

	if restored.Score != 300 || restored.Frame != 42 {
		t.Errorf("counters: score=%d frame=%d", restored.Score, restored.Frame)
	}
	if restored.Player.Pos != s.Player.Pos || !restored.Player.Alive {
		t.Errorf("player: got %+v", restored.Player)
	}
	if len(restored.Enemies) != 2 || restored.Enemies[0].Drift != (Vec2{-2, 0.5}) {
		t.Errorf("enemies: got %+v", restored.Enemies)
	}
	if len(restored.PlayerBullets) != 1 || len(restored.EnemyBullets) != 2 {
		t.Errorf("bullets: got %d/%d", len(restored.PlayerBullets), len(restored.EnemyBullets))
	}

	// 所有恢复的实体拥有互不相同的 ID
	ids := map[EntityID]bool{restored.Player.ID: true}
	for _, e := range restored.Enemies {
		ids[e.ID] = true
	}
	for _, b := range append(restored.PlayerBullets, restored.EnemyBullets...) {
		ids[b.ID] = true
	}
	if len(ids) != 6 {
		t.Errorf("expected 6 distinct IDs, got %d", len(ids))
	}
}

func TestRestoreSessionWithoutEnemies(t *testing.T) {
	cfg := testConfig()
	st := &SaveState{Score: 100, Player: Vec2{0, -350}}

	s := RestoreSession(cfg, testRand(), st)
	if len(s.Enemies) != cfg.Enemy.Rows*cfg.Enemy.Cols {
		t.Errorf("expected a fresh wave, got %d enemies", len(s.Enemies))
	}
}
