package game

import (
	"testing"

	"github.com/decker502/invaders/pkg/config"
)

func TestFirePlayerBulletCap(t *testing.T) {
	ids := newIDAllocator()
	var bullets []Bullet

	for i := 0; i < 5; i++ {
		var fired bool
		bullets, fired = FirePlayerBullet(bullets, Vec2{0, -330}, 5, ids)
		if !fired {
			t.Fatalf("shot %d should be accepted", i+1)
		}
	}

	bullets, fired := FirePlayerBullet(bullets, Vec2{0, -330}, 5, ids)
	if fired {
		t.Error("shot beyond cap should be rejected")
	}
	if len(bullets) != 5 {
		t.Errorf("bullet count: got %d, want 5", len(bullets))
	}
}

func TestAdvanceBullets(t *testing.T) {
	t.Run("player bullets pruned at top boundary", func(t *testing.T) {
		bullets := []Bullet{
			{ID: 1, Pos: Vec2{0, 0}},
			{ID: 2, Pos: Vec2{0, 424}}, // 424+16 = 440，恰好到达边界
			{ID: 3, Pos: Vec2{0, 423}}, // 439，仍在界内
			{ID: 4, Pos: Vec2{0, 430}},
		}
		kept := AdvanceBullets(bullets, 16, 440)

		if len(kept) != 2 || kept[0].ID != 1 || kept[1].ID != 3 {
			t.Fatalf("unexpected survivors %+v", kept)
		}
		if kept[0].Pos.Y != 16 || kept[1].Pos.Y != 439 {
			t.Errorf("bullets not advanced: %+v", kept)
		}
	})

	t.Run("enemy bullets pruned at bottom boundary", func(t *testing.T) {
		bullets := []Bullet{
			{ID: 1, Pos: Vec2{0, -432}}, // -440，恰好到达边界
			{ID: 2, Pos: Vec2{0, 100}},
			{ID: 3, Pos: Vec2{0, -431}},
		}
		kept := AdvanceBullets(bullets, -8, -440)

		if len(kept) != 2 || kept[0].ID != 2 || kept[1].ID != 3 {
			t.Fatalf("unexpected survivors %+v", kept)
		}
		if kept[0].Pos.Y != 92 {
			t.Errorf("bullet not advanced: %+v", kept[0])
		}
	})

	t.Run("input slice untouched", func(t *testing.T) {
		bullets := []Bullet{{ID: 1, Pos: Vec2{0, 0}}}
		AdvanceBullets(bullets, 16, 440)
		if bullets[0].Pos.Y != 0 {
			t.Errorf("input bullet moved: %+v", bullets[0])
		}
	})
}

func TestEnemyFireTick(t *testing.T) {
	enemies := []Enemy{
		{ID: 1, Pos: Vec2{-60, 200}},
		{ID: 2, Pos: Vec2{0, 200}},
		{ID: 3, Pos: Vec2{60, 200}},
	}

	tests := []struct {
		name      string
		mode      string
		prob      float64
		wantShots int
	}{
		{"single never", config.FireModeSingle, 0, 0},
		{"single always", config.FireModeSingle, 1, 1},
		{"per enemy never", config.FireModePerEnemy, 0, 0},
		{"per enemy always", config.FireModePerEnemy, 1, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig()
			cfg.Enemy.FireMode = tt.mode
			cfg.Enemy.FireProb = tt.prob

			bullets, fired := EnemyFireTick(cfg, testRand(), newIDAllocator(), enemies, nil)
			if fired != tt.wantShots || len(bullets) != tt.wantShots {
				t.Fatalf("shots: got %d (%d bullets), want %d", fired, len(bullets), tt.wantShots)
			}
			for _, b := range bullets {
				// 子弹生成在敌人正下方
				if b.Pos.Y != 200-cfg.Enemy.MuzzleOffset {
					t.Errorf("bullet y: got %v, want %v", b.Pos.Y, 200-cfg.Enemy.MuzzleOffset)
				}
				if b.Pos.X != -60 && b.Pos.X != 0 && b.Pos.X != 60 {
					t.Errorf("bullet x %v does not match any enemy", b.Pos.X)
				}
			}
		})
	}

	t.Run("no enemies", func(t *testing.T) {
		cfg := testConfig()
		cfg.Enemy.FireProb = 1
		bullets, fired := EnemyFireTick(cfg, testRand(), newIDAllocator(), nil, nil)
		if fired != 0 || len(bullets) != 0 {
			t.Errorf("expected no shots without enemies, got %d", fired)
		}
	})
}
