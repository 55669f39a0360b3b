package game

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/quasilyte/gdata/v2"
)

// Store 一份可整体读写的持久化数据（存档或排行榜）
type Store interface {
	// Exists 数据是否存在
	Exists() bool
	// Load 读取全部内容
	Load() ([]byte, error)
	// Save 用 data 整体覆盖原内容
	Save(data []byte) error
	// Location 用于日志的位置描述
	Location() string
}

// FileStore 基于本地文件的存储
type FileStore struct {
	Path string
}

// NewFileStore 创建文件存储
func NewFileStore(path string) *FileStore {
	return &FileStore{Path: path}
}

func (fs *FileStore) Exists() bool {
	_, err := os.Stat(fs.Path)
	return err == nil
}

func (fs *FileStore) Load() ([]byte, error) {
	return os.ReadFile(fs.Path)
}

func (fs *FileStore) Save(data []byte) error {
	if dir := filepath.Dir(fs.Path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(fs.Path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", fs.Path, err)
	}
	return nil
}

func (fs *FileStore) Location() string {
	return fs.Path
}

// errNoGdata gdata 不可用时 Load 返回的错误
var errNoGdata = errors.New("gdata manager not available")

// GdataStore 基于 gdata 跨平台存储的一个对象属性
//
// gdataManager 为 nil 时进入降级模式：Exists 返回 false，
// Save 只记录警告、不报错（与设置管理器的降级行为一致）。
type GdataStore struct {
	gdataManager *gdata.Manager
	object       string
	property     string
}

// gdata 对象键
const (
	gdataObjectSaves      = "saves"
	gdataObjectHighscores = "highscores"
	gdataObjectSettings   = "settings"
	gdataPropertyDefault  = "default"
)

// NewGdataStore 创建 gdata 存储
//
// 参数：
//   - gdataManager: gdata 管理器，可为 nil（降级模式）
//   - object: 对象键（如 "saves"）
//   - property: 属性键（如 "default"）
func NewGdataStore(gdataManager *gdata.Manager, object, property string) *GdataStore {
	return &GdataStore{
		gdataManager: gdataManager,
		object:       object,
		property:     property,
	}
}

// NewGdataSaveStore 存档槽位
func NewGdataSaveStore(gdataManager *gdata.Manager, slot string) *GdataStore {
	if slot == "" {
		slot = gdataPropertyDefault
	}
	return NewGdataStore(gdataManager, gdataObjectSaves, slot)
}

// NewGdataHighscoreStore 排行榜
func NewGdataHighscoreStore(gdataManager *gdata.Manager) *GdataStore {
	return NewGdataStore(gdataManager, gdataObjectHighscores, gdataPropertyDefault)
}

// NewGdataSettingsStore 玩家偏好设置
func NewGdataSettingsStore(gdataManager *gdata.Manager) *GdataStore {
	return NewGdataStore(gdataManager, gdataObjectSettings, "global")
}

func (gs *GdataStore) Exists() bool {
	if gs.gdataManager == nil {
		return false
	}
	return gs.gdataManager.ObjectPropExists(gs.object, gs.property)
}

func (gs *GdataStore) Load() ([]byte, error) {
	if gs.gdataManager == nil {
		return nil, errNoGdata
	}
	data, err := gs.gdataManager.LoadObjectProp(gs.object, gs.property)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", gs.Location(), err)
	}
	return data, nil
}

func (gs *GdataStore) Save(data []byte) error {
	if gs.gdataManager == nil {
		log.Printf("[GdataStore] Warning: gdata not available, %s not persisted", gs.Location())
		return nil
	}
	if err := gs.gdataManager.SaveObjectProp(gs.object, gs.property, data); err != nil {
		return fmt.Errorf("failed to save %s: %w", gs.Location(), err)
	}
	return nil
}

func (gs *GdataStore) Location() string {
	return "gdata:" + gs.object + "/" + gs.property
}
