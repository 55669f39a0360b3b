package game

import (
	"errors"
	"math/rand"

	"github.com/decker502/invaders/pkg/config"
)

// memStore 内存存储，记录读写次数
type memStore struct {
	data   []byte
	exists bool
	loads  int
	saves  int
}

func newMemStore(content string) *memStore {
	return &memStore{data: []byte(content), exists: true}
}

func (m *memStore) Exists() bool { return m.exists }

func (m *memStore) Load() ([]byte, error) {
	m.loads++
	if !m.exists {
		return nil, errors.New("not found")
	}
	return append([]byte(nil), m.data...), nil
}

func (m *memStore) Save(data []byte) error {
	m.saves++
	m.data = append([]byte(nil), data...)
	m.exists = true
	return nil
}

func (m *memStore) Location() string { return "memory" }

// testConfig 默认配置，关闭敌人开火以保证确定性
func testConfig() *config.GameConfig {
	cfg := config.DefaultGameConfig()
	cfg.Enemy.FireProb = 0
	return cfg
}

func testRand() *rand.Rand {
	return rand.New(rand.NewSource(42))
}

// newTestSession 创建会话并用给定敌人替换初始阵列
func newTestSession(cfg *config.GameConfig, enemies ...Enemy) *Session {
	s := NewSession(cfg, testRand())
	s.Enemies = nil
	// ID 从玩家之后重新分配，便于断言
	s.ids = &idAllocator{next: s.Player.ID + 1}
	for _, e := range enemies {
		e.ID = s.ids.Next()
		s.Enemies = append(s.Enemies, e)
	}
	return s
}
