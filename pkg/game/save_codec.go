package game

import (
	"bufio"
	"bytes"
	"errors"
	"strconv"
	"strings"
)

// ErrIncompleteSave 存档缺少必需字段（score 或 player）
var ErrIncompleteSave = errors.New("incomplete or corrupted save")

// 存档行前缀
const (
	saveKeyScore         = "score:"
	saveKeyFrame         = "frame:"
	saveKeyPlayer        = "player:"
	saveKeyEnemies       = "enemies:"
	saveKeyPlayerBullets = "player_bullets:"
	saveKeyEnemyBullets  = "enemy_bullets:"
)

// EnemyRecord 存档中的一个敌人：位置 + 漂移向量
type EnemyRecord struct {
	Pos   Vec2
	Drift Vec2
}

// SaveState 存档数据（纯数据，不含实体 ID）
type SaveState struct {
	Score         int
	Frame         int
	Player        Vec2
	Enemies       []EnemyRecord
	PlayerBullets []Vec2
	EnemyBullets  []Vec2
}

// EncodeSave 将存档数据编码为逐行文本格式
//
// 格式：
//
//	score:<integer>
//	frame:<integer>
//	player:<x>,<y>
//	enemies:<x>,<y>,<dx>,<dy>|...
//	player_bullets:<x>,<y>|...
//	enemy_bullets:<x>,<y>|...
func EncodeSave(st *SaveState) []byte {
	var buf bytes.Buffer

	buf.WriteString(saveKeyScore + strconv.Itoa(st.Score) + "\n")
	buf.WriteString(saveKeyFrame + strconv.Itoa(st.Frame) + "\n")
	buf.WriteString(saveKeyPlayer + formatFloat(st.Player.X) + "," + formatFloat(st.Player.Y) + "\n")

	buf.WriteString(saveKeyEnemies)
	for _, e := range st.Enemies {
		buf.WriteString(formatFloat(e.Pos.X) + "," + formatFloat(e.Pos.Y) + "," +
			formatFloat(e.Drift.X) + "," + formatFloat(e.Drift.Y) + "|")
	}
	buf.WriteString("\n")

	writePoints(&buf, saveKeyPlayerBullets, st.PlayerBullets)
	writePoints(&buf, saveKeyEnemyBullets, st.EnemyBullets)

	return buf.Bytes()
}

func writePoints(buf *bytes.Buffer, key string, points []Vec2) {
	buf.WriteString(key)
	for _, p := range points {
		buf.WriteString(formatFloat(p.X) + "," + formatFloat(p.Y) + "|")
	}
	buf.WriteString("\n")
}

// formatFloat 输出不带指数的十进制表示，保证能被 parseNumber 读回
func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// DecodeSave 解析逐行文本存档
//
// 单个字段或记录格式错误时只丢弃该字段/记录，继续解析；
// 未知行被忽略。score 和 player 为必需字段，缺失或无效时返回 ErrIncompleteSave。
//
// 参数:
//   - data: 存档文件内容
//
// 返回:
//   - *SaveState: 解析得到的存档数据
//   - error: 缺少必需字段时返回 ErrIncompleteSave
func DecodeSave(data []byte) (*SaveState, error) {
	st := &SaveState{}
	hasScore := false
	hasPlayer := false

	scanner := bufio.NewScanner(bytes.NewReader(trimBOM(data)))
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		switch {
		case strings.HasPrefix(line, saveKeyScore):
			if v, ok := parseInteger(line[len(saveKeyScore):]); ok && v >= 0 {
				st.Score = v
				hasScore = true
			}

		case strings.HasPrefix(line, saveKeyFrame):
			if v, ok := parseInteger(line[len(saveKeyFrame):]); ok && v >= 0 {
				st.Frame = v
			}

		case strings.HasPrefix(line, saveKeyPlayer):
			if fields, ok := parseFields(line[len(saveKeyPlayer):], 2); ok {
				st.Player = Vec2{X: fields[0], Y: fields[1]}
				hasPlayer = true
			}

		case strings.HasPrefix(line, saveKeyEnemies):
			st.Enemies = []EnemyRecord{}
			for _, rec := range splitRecords(line[len(saveKeyEnemies):]) {
				fields, ok := parseFields(rec, 4)
				// 下落速度只会增加，负值视为损坏的记录
				if !ok || fields[3] < 0 {
					continue
				}
				st.Enemies = append(st.Enemies, EnemyRecord{
					Pos:   Vec2{X: fields[0], Y: fields[1]},
					Drift: Vec2{X: fields[2], Y: fields[3]},
				})
			}

		case strings.HasPrefix(line, saveKeyPlayerBullets):
			st.PlayerBullets = parsePoints(line[len(saveKeyPlayerBullets):])

		case strings.HasPrefix(line, saveKeyEnemyBullets):
			st.EnemyBullets = parsePoints(line[len(saveKeyEnemyBullets):])
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	if !hasScore || !hasPlayer {
		return nil, ErrIncompleteSave
	}

	return st, nil
}

// utf8BOM 部分编辑器会在文本文件开头写入的字节序标记
var utf8BOM = []byte("\ufeff")

func trimBOM(data []byte) []byte {
	return bytes.TrimPrefix(data, utf8BOM)
}

// splitRecords 按 '|' 拆分子记录，跳过空记录（允许末尾的 '|'）
func splitRecords(s string) []string {
	parts := strings.Split(s, "|")
	records := make([]string, 0, len(parts))
	for _, p := range parts {
		if strings.TrimSpace(p) == "" {
			continue
		}
		records = append(records, p)
	}
	return records
}

// parsePoints 解析 "x,y|x,y|..." 形式的坐标列表，丢弃无效记录
func parsePoints(s string) []Vec2 {
	points := []Vec2{}
	for _, rec := range splitRecords(s) {
		fields, ok := parseFields(rec, 2)
		if !ok {
			continue
		}
		points = append(points, Vec2{X: fields[0], Y: fields[1]})
	}
	return points
}

// parseFields 解析恰好 n 个以逗号分隔的数字，任一字段无效则整条记录无效
func parseFields(rec string, n int) ([]float64, bool) {
	parts := strings.Split(rec, ",")
	if len(parts) != n {
		return nil, false
	}
	fields := make([]float64, n)
	for i, p := range parts {
		v, ok := parseNumber(p)
		if !ok {
			return nil, false
		}
		fields[i] = v
	}
	return fields, true
}

// parseNumber 按显式文法校验并解析数字
//
// 文法：可选的 '-'，数字，可选的单个 '.'，数字；至少包含一个数字。
// "5."、".5"、"-0.25" 合法；""、"."、"-"、"1e3"、"+1"、"1.2.3" 非法。
func parseNumber(tok string) (float64, bool) {
	s := strings.TrimSpace(tok)
	body := strings.TrimPrefix(s, "-")
	if body == "" {
		return 0, false
	}

	digits := 0
	dots := 0
	for _, r := range body {
		switch {
		case r >= '0' && r <= '9':
			digits++
		case r == '.':
			dots++
			if dots > 1 {
				return 0, false
			}
		default:
			return 0, false
		}
	}
	if digits == 0 {
		return 0, false
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// parseInteger 解析可选负号加数字的整数
func parseInteger(tok string) (int, bool) {
	s := strings.TrimSpace(tok)
	if !isIntegerLiteral(s) {
		return 0, false
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return v, true
}

// isIntegerLiteral 判断字符串是否为 -?[0-9]+
func isIntegerLiteral(s string) bool {
	body := strings.TrimPrefix(s, "-")
	if body == "" {
		return false
	}
	for _, r := range body {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
