package game

import (
	"bytes"
	"fmt"
	"log"
	"sort"
	"strconv"
	"strings"
)

// DefaultHighscoreName 玩家未输入名字时使用的占位名
const DefaultHighscoreName = "ANON"

// HighscoreEntry 排行榜条目
type HighscoreEntry struct {
	Score int
	Name  string
}

// NamePrompt 新纪录产生时向玩家询问名字
type NamePrompt func(score int) (string, error)

// HighscoreLedger 排行榜
//
// 存储格式为每行一条 "score,name"，每次更新整体重写。
type HighscoreLedger struct {
	store Store
	topN  int
}

// NewHighscoreLedger 创建排行榜
//
// 参数：
//   - store: 持久化存储
//   - topN: 保留的最大条数
func NewHighscoreLedger(store Store, topN int) *HighscoreLedger {
	return &HighscoreLedger{store: store, topN: topN}
}

// Load 读取排行榜，按分数降序，截断到 topN
//
// 存储不存在时返回空列表。
func (hl *HighscoreLedger) Load() ([]HighscoreEntry, error) {
	if !hl.store.Exists() {
		return []HighscoreEntry{}, nil
	}
	data, err := hl.store.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to read highscores: %w", err)
	}
	return ParseHighscores(data, hl.topN), nil
}

// ParseHighscores 解析排行榜文本
//
// 只接受恰好两个逗号分隔字段、且分数为（可带负号的）整数的行，
// 其余行静默跳过。行长度不受限制，超长的无效行不会影响其后的条目。
func ParseHighscores(data []byte, topN int) []HighscoreEntry {
	entries := []HighscoreEntry{}

	for _, raw := range bytes.Split(trimBOM(data), []byte("\n")) {
		line := strings.TrimSpace(string(raw))
		parts := strings.Split(line, ",")
		if len(parts) != 2 {
			continue
		}
		scoreStr := strings.TrimSpace(parts[0])
		if !isIntegerLiteral(scoreStr) {
			continue
		}
		score, err := strconv.Atoi(scoreStr)
		if err != nil {
			continue
		}
		entries = append(entries, HighscoreEntry{Score: score, Name: strings.TrimSpace(parts[1])})
	}

	sortHighscores(entries)
	if len(entries) > topN {
		entries = entries[:topN]
	}
	return entries
}

// FormatHighscores 将排行榜编码为 "score,name" 行
func FormatHighscores(entries []HighscoreEntry) []byte {
	var buf bytes.Buffer
	for _, e := range entries {
		fmt.Fprintf(&buf, "%d,%s\n", e.Score, e.Name)
	}
	return buf.Bytes()
}

// sortHighscores 按分数降序排列，同分保持原有先后
func sortHighscores(entries []HighscoreEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Score > entries[j].Score
	})
}

// Qualifies 判断分数能否进入排行榜
//
// 0 分永远不记录；列表未满时任何非零分都能进入；
// 列表已满时必须严格大于最后一名。
func (hl *HighscoreLedger) Qualifies(entries []HighscoreEntry, score int) bool {
	if score == 0 {
		return false
	}
	if len(entries) < hl.topN {
		return true
	}
	return score > entries[len(entries)-1].Score
}

// RecordIfQualifying 分数够格时记录到排行榜
//
// score 为 0 时不读取也不修改存储。够格时调用 prompt 询问名字，
// 名字为空则使用 DefaultHighscoreName，然后插入、排序、截断并整体重写存储。
//
// 返回：
//   - bool: 是否写入了新纪录
//   - error: 读取或写入失败时返回错误
func (hl *HighscoreLedger) RecordIfQualifying(score int, prompt NamePrompt) (bool, error) {
	if score == 0 {
		return false, nil
	}

	entries, err := hl.Load()
	if err != nil {
		return false, err
	}

	if !hl.Qualifies(entries, score) {
		return false, nil
	}

	name := ""
	if prompt != nil {
		name, err = prompt(score)
		if err != nil {
			log.Printf("[HighscoreLedger] Warning: name prompt failed: %v (using %s)", err, DefaultHighscoreName)
		}
	}
	name = sanitizeName(name)

	entries = append(entries, HighscoreEntry{Score: score, Name: name})
	sortHighscores(entries)
	if len(entries) > hl.topN {
		entries = entries[:hl.topN]
	}

	if err := hl.store.Save(FormatHighscores(entries)); err != nil {
		return false, fmt.Errorf("failed to write highscores: %w", err)
	}

	log.Printf("[HighscoreLedger] Recorded %d for %q at %s", score, name, hl.store.Location())
	return true, nil
}

// sanitizeName 名字不能包含逗号或换行，空名字替换为占位名
func sanitizeName(name string) string {
	name = strings.Map(func(r rune) rune {
		switch r {
		case ',', '\n', '\r':
			return ' '
		}
		return r
	}, name)
	name = strings.TrimSpace(name)
	if name == "" {
		return DefaultHighscoreName
	}
	return name
}
