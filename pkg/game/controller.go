package game

import (
	"errors"
	"fmt"
	"log"
	"math/rand"

	"github.com/decker502/invaders/pkg/config"
)

// ErrSaveNotFound 要读取的存档不存在
var ErrSaveNotFound = errors.New("save not found")

// CommandResult 一条命令的处理结果
type CommandResult struct {
	Fired bool // 成功发射了子弹
	Saved bool // 存档写入成功
	Quit  bool // 会话已结束
}

// GameController 会话控制器
//
// 前端（ebiten 窗口或终端）持有一个控制器：把输入命令转交给会话，
// 处理存档命令，在结束时更新排行榜。
type GameController struct {
	session *Session
	saves   Store
	ledger  *HighscoreLedger
}

// NewGameController 创建会话控制器
//
// 参数：
//   - session: 会话
//   - saves: 存档命令写入的位置
//   - ledger: 排行榜
func NewGameController(session *Session, saves Store, ledger *HighscoreLedger) *GameController {
	return &GameController{
		session: session,
		saves:   saves,
		ledger:  ledger,
	}
}

// Session 返回当前会话
func (gc *GameController) Session() *Session {
	return gc.session
}

// Handle 处理一条输入命令
func (gc *GameController) Handle(cmd Command) CommandResult {
	switch cmd {
	case CommandSave:
		if err := gc.Save(); err != nil {
			log.Printf("[GameController] Save failed: %v", err)
			return CommandResult{}
		}
		return CommandResult{Saved: true}
	case CommandFire:
		return CommandResult{Fired: gc.session.Apply(cmd)}
	case CommandQuit:
		gc.session.Apply(cmd)
		return CommandResult{Quit: true}
	default:
		gc.session.Apply(cmd)
		return CommandResult{Quit: gc.session.Over()}
	}
}

// Step 推进一帧
func (gc *GameController) Step() TickReport {
	return gc.session.Step()
}

// Save 把当前会话写入存档
func (gc *GameController) Save() error {
	if gc.saves == nil {
		return fmt.Errorf("no save location configured")
	}
	if err := gc.saves.Save(EncodeSave(gc.session.Snapshot())); err != nil {
		return err
	}
	log.Printf("[GameController] Game saved to %s (score=%d, frame=%d)",
		gc.saves.Location(), gc.session.Score, gc.session.Frame)
	return nil
}

// Finish 会话结束后尽力更新排行榜
//
// 返回：
//   - []HighscoreEntry: 更新后的排行榜（读取失败时为 nil）
//   - bool: 是否写入了新纪录
func (gc *GameController) Finish(prompt NamePrompt) ([]HighscoreEntry, bool) {
	if gc.ledger == nil {
		return nil, false
	}

	recorded, err := gc.ledger.RecordIfQualifying(gc.session.Score, prompt)
	if err != nil {
		log.Printf("[GameController] Warning: failed to update highscores: %v", err)
	}

	entries, err := gc.ledger.Load()
	if err != nil {
		log.Printf("[GameController] Warning: failed to read highscores: %v", err)
		return nil, recorded
	}
	return entries, recorded
}

// LoadSession 从存档恢复会话，失败时开始新游戏
//
// store 为 nil 或不存在时直接开始新游戏。存档存在但无法使用时
// （读取失败、缺少必需字段）同样开始新游戏，并返回原因供调用方提示玩家；
// 这不是致命错误。
//
// 返回：
//   - *Session: 恢复或新建的会话
//   - bool: 是否从存档恢复
//   - error: 存档无法使用的原因（存档不存在时 errors.Is(err, ErrSaveNotFound)，
//     缺少必需字段时 errors.Is(err, ErrIncompleteSave)）
func LoadSession(cfg *config.GameConfig, rng *rand.Rand, store Store) (*Session, bool, error) {
	if store == nil {
		return NewSession(cfg, rng), false, nil
	}
	if !store.Exists() {
		log.Printf("[GameController] Save %s not found, starting new game", store.Location())
		return NewSession(cfg, rng), false, fmt.Errorf("%w: %s", ErrSaveNotFound, store.Location())
	}

	data, err := store.Load()
	if err != nil {
		log.Printf("[GameController] Failed to read save %s: %v, starting new game", store.Location(), err)
		return NewSession(cfg, rng), false, fmt.Errorf("failed to read save %s: %w", store.Location(), err)
	}

	st, err := DecodeSave(data)
	if err != nil {
		if errors.Is(err, ErrIncompleteSave) {
			log.Printf("[GameController] Save %s: %v, starting new game", store.Location(), err)
		}
		return NewSession(cfg, rng), false, fmt.Errorf("save %s: %w", store.Location(), err)
	}

	return RestoreSession(cfg, rng, st), true, nil
}
