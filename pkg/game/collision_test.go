package game

import "testing"

func TestWithinRadius(t *testing.T) {
	tests := []struct {
		name   string
		a, b   Vec2
		radius float64
		want   bool
	}{
		{"same point", Vec2{0, 0}, Vec2{0, 0}, 15, true},
		{"inside", Vec2{0, 0}, Vec2{9, 12}, 15.5, true},
		// 距离恰好等于半径不算碰撞
		{"exactly on radius", Vec2{0, 0}, Vec2{9, 12}, 15, false},
		{"exactly on radius vertical", Vec2{3, 4}, Vec2{3, 19}, 15, false},
		{"outside", Vec2{0, 0}, Vec2{20, 0}, 15, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := WithinRadius(tt.a, tt.b, tt.radius); got != tt.want {
				t.Errorf("WithinRadius(%v, %v, %v) = %v, want %v", tt.a, tt.b, tt.radius, got, tt.want)
			}
		})
	}
}

func TestResolvePlayerBullets(t *testing.T) {
	enemies := []Enemy{
		{ID: 1, Pos: Vec2{0, 0}},
		{ID: 2, Pos: Vec2{100, 0}},
	}

	t.Run("one bullet kills at most one enemy", func(t *testing.T) {
		// 两个敌人都在子弹半径内，只应击毁扫描到的第一个
		nearby := []Enemy{{ID: 1, Pos: Vec2{0, 0}}, {ID: 2, Pos: Vec2{2, 0}}}
		hits := ResolvePlayerBullets([]Bullet{{ID: 10, Pos: Vec2{1, 0}}}, nearby, 15)

		if hits.Kills != 1 {
			t.Fatalf("Kills: got %d, want 1", hits.Kills)
		}
		if len(hits.Enemies) != 1 || hits.Enemies[0].ID != 2 {
			t.Errorf("expected enemy 2 to survive, got %+v", hits.Enemies)
		}
		if len(hits.Bullets) != 0 {
			t.Errorf("expected bullet to be consumed, got %+v", hits.Bullets)
		}
	})

	t.Run("dead enemy is not hit twice", func(t *testing.T) {
		bullets := []Bullet{{ID: 10, Pos: Vec2{0, 1}}, {ID: 11, Pos: Vec2{0, -1}}}
		hits := ResolvePlayerBullets(bullets, enemies, 15)

		if hits.Kills != 1 {
			t.Fatalf("Kills: got %d, want 1", hits.Kills)
		}
		if len(hits.Bullets) != 1 || hits.Bullets[0].ID != 11 {
			t.Errorf("second bullet should survive, got %+v", hits.Bullets)
		}
	})

	t.Run("misses keep order", func(t *testing.T) {
		bullets := []Bullet{{ID: 10, Pos: Vec2{50, 0}}, {ID: 11, Pos: Vec2{100, 5}}, {ID: 12, Pos: Vec2{-50, 0}}}
		hits := ResolvePlayerBullets(bullets, enemies, 15)

		if hits.Kills != 1 {
			t.Fatalf("Kills: got %d, want 1", hits.Kills)
		}
		if len(hits.Bullets) != 2 || hits.Bullets[0].ID != 10 || hits.Bullets[1].ID != 12 {
			t.Errorf("unexpected surviving bullets %+v", hits.Bullets)
		}
		if len(hits.Enemies) != 1 || hits.Enemies[0].ID != 1 {
			t.Errorf("unexpected surviving enemies %+v", hits.Enemies)
		}
	})

	t.Run("inputs are not mutated", func(t *testing.T) {
		bullets := []Bullet{{ID: 10, Pos: Vec2{0, 0}}}
		ResolvePlayerBullets(bullets, enemies, 15)
		if len(enemies) != 2 || enemies[0].ID != 1 || enemies[1].ID != 2 {
			t.Errorf("enemies slice was mutated: %+v", enemies)
		}
	})
}

func TestEnemyBulletsHitPlayer(t *testing.T) {
	player := Vec2{0, -350}
	bullets := []Bullet{
		{ID: 1, Pos: Vec2{100, -350}},
		{ID: 2, Pos: Vec2{5, -352}},
		{ID: 3, Pos: Vec2{-3, -349}},
	}

	kept, hit := EnemyBulletsHitPlayer(bullets, player, 15)
	if !hit {
		t.Fatal("expected player to be hit")
	}
	// 只移除第一颗命中的子弹
	if len(kept) != 2 || kept[0].ID != 1 || kept[1].ID != 3 {
		t.Errorf("unexpected remaining bullets %+v", kept)
	}

	kept, hit = EnemyBulletsHitPlayer([]Bullet{{ID: 1, Pos: Vec2{0, -335}}}, player, 15)
	if hit {
		t.Error("bullet exactly on radius should not hit")
	}
	if len(kept) != 1 {
		t.Errorf("expected bullet to remain, got %d", len(kept))
	}
}

func TestPlayerTouchesEnemy(t *testing.T) {
	player := Vec2{0, -350}

	if !PlayerTouchesEnemy(player, []Enemy{{Pos: Vec2{29, -350}}}, 30) {
		t.Error("enemy within contact radius should touch")
	}
	if PlayerTouchesEnemy(player, []Enemy{{Pos: Vec2{30, -350}}}, 30) {
		t.Error("enemy exactly on contact radius should not touch")
	}
	if PlayerTouchesEnemy(player, nil, 30) {
		t.Error("no enemies should never touch")
	}
}

func TestEnemyReachedPlayerRow(t *testing.T) {
	player := Vec2{0, -350}

	tests := []struct {
		name string
		y    float64
		want bool
	}{
		{"above", -349.5, false},
		{"level", -350, true},
		{"below", -360, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			enemies := []Enemy{{Pos: Vec2{200, 100}}, {Pos: Vec2{-200, tt.y}}}
			if got := EnemyReachedPlayerRow(player, enemies); got != tt.want {
				t.Errorf("EnemyReachedPlayerRow(y=%v) = %v, want %v", tt.y, got, tt.want)
			}
		})
	}
}
