package systems

import (
	"math/rand"

	"github.com/decker502/invaders/pkg/config"
)

func testSessionConfig() *config.GameConfig {
	cfg := config.DefaultGameConfig()
	cfg.Enemy.FireProb = 0
	return cfg
}

func testRand() *rand.Rand {
	return rand.New(rand.NewSource(7))
}
