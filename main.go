package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"log"
	"math/rand"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/decker502/invaders/pkg/app"
	"github.com/decker502/invaders/pkg/config"
	"github.com/decker502/invaders/pkg/embedded"
	"github.com/decker502/invaders/pkg/game"
	"github.com/decker502/invaders/pkg/resources"
	"github.com/decker502/invaders/pkg/sound"
	"github.com/decker502/invaders/pkg/systems"
	"github.com/decker502/invaders/pkg/terminal"
	"github.com/gdamore/tcell/v2"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/quasilyte/gdata/v2"
)

const (
	frontendWindow   = "ebiten"
	frontendTerminal = "term"

	storageFile  = "file"
	storageGdata = "gdata"

	terminalLogPath  = "logs/invaders.log"
	settingsFilePath = "invaders_settings.yaml"
	defaultLoadPath  = "carregar_estado.txt"
)

var (
	verbose        = flag.Bool("verbose", false, "显示详细调试信息")
	frontend       = flag.String("frontend", frontendWindow, "前端: ebiten（窗口）或 term（终端）")
	configPath     = flag.String("config", "", "游戏配置文件，为空时使用内置 data/game.yaml")
	loadPath       = flag.String("load", defaultLoadPath, "启动时读取的存档，为空或不存在时开始新游戏")
	savePath       = flag.String("save", "guardar_estado.txt", "存档写入位置")
	storage        = flag.String("storage", storageFile, "存档和排行榜的存储方式: file 或 gdata")
	assetsRoot     = flag.String("assets", "", "包含 assets/ 的目录，为空时使用内置资源")
	highscoresPath = flag.String("highscores", "highscores.txt", "排行榜文件（file 存储）")
	seed           = flag.Int64("seed", 0, "随机种子，0 表示使用当前时间")
	muted          = flag.Bool("mute", false, "本次运行关闭音效（不保存）")
	volume         = flag.Float64("volume", -1, "设置并保存音效音量 0.0 ~ 1.0，负数表示沿用已保存的设置")
	soundSwitch    = flag.String("sound", "", "设置并保存音效开关: on 或 off，为空表示沿用已保存的设置")
)

func main() {
	flag.Parse()

	embedded.Init(assetsFS, dataFS)

	closeLog := setupLogging(*verbose, *frontend == frontendTerminal)
	defer closeLog()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "配置加载失败: %v\n", err)
		os.Exit(1)
	}

	rm := resources.NewResourceManager(resourceFS(*assetsRoot))
	if err := rm.LoadResourceConfig("assets/config/resources.yaml"); err != nil {
		fmt.Fprintf(os.Stderr, "资源配置加载失败: %v\n", err)
		os.Exit(1)
	}
	if err := rm.RequireAssets(resources.RequiredAssets...); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}

	st := openStores(*storage, *savePath, *loadPath, *highscoresPath)
	settings, _ := game.NewSettingsManager(st.settings)
	if err := applySoundFlags(settings, *volume, *soundSwitch); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}

	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(rngSeed))

	session, restored, err := game.LoadSession(cfg, rng, st.loads)
	switch {
	case errors.Is(err, game.ErrSaveNotFound):
		// 默认存档不存在是常态，只有显式指定时才提示
		if flagPassed("load") {
			fmt.Printf("Saved game %s not found, starting a new game.\n", *loadPath)
		}
	case errors.Is(err, game.ErrIncompleteSave):
		fmt.Println("Saved game is incomplete or corrupted, starting a new game.")
	case err != nil:
		fmt.Printf("Could not load saved game (%v), starting a new game.\n", err)
	case restored:
		fmt.Printf("Loaded saved game: score %d, frame %d.\n", session.Score, session.Frame)
	}

	controller := game.NewGameController(session, st.saves, game.NewHighscoreLedger(st.highscores, cfg.TopN))

	sounds := sound.NewSoundManager()
	sounds.SetVolume(settings.GetSettings().SoundVolume)
	if !*muted && settings.GetSettings().SoundEnabled {
		if err := sounds.Initialize(); err != nil {
			log.Printf("[Main] Audio initialization failed, running silent: %v", err)
		}
	}
	defer sounds.Cleanup()

	switch *frontend {
	case frontendTerminal:
		err = runTerminal(controller, sounds)
	case frontendWindow:
		err = runWindow(cfg, rm, controller, sounds, settings)
	default:
		err = fmt.Errorf("unknown frontend %q", *frontend)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}

	printSummary(controller)
}

// setupLogging 未启用 -verbose 时丢弃日志；终端前端把日志写入文件
func setupLogging(verbose, toFile bool) func() {
	if !verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
		return func() {}
	}
	if !toFile {
		return func() {}
	}

	if err := os.MkdirAll(filepath.Dir(terminalLogPath), 0755); err != nil {
		log.SetOutput(io.Discard)
		return func() {}
	}
	f, err := os.OpenFile(terminalLogPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		log.SetOutput(io.Discard)
		return func() {}
	}
	log.SetOutput(f)
	return func() { f.Close() }
}

func flagPassed(name string) bool {
	passed := false
	flag.Visit(func(f *flag.Flag) {
		if f.Name == name {
			passed = true
		}
	})
	return passed
}

// applySoundFlags 把 -volume 和 -sound 写入设置并保存
//
// 两个参数都未指定时不修改也不写入设置。
func applySoundFlags(settings *game.SettingsManager, volume float64, sw string) error {
	changed := false
	if volume >= 0 {
		settings.SetSoundVolume(volume)
		changed = true
	}
	switch sw {
	case "":
	case "on":
		settings.SetSoundEnabled(true)
		changed = true
	case "off":
		settings.SetSoundEnabled(false)
		changed = true
	default:
		return fmt.Errorf("invalid -sound value %q (want on or off)", sw)
	}

	if !changed {
		return nil
	}
	if err := settings.Save(); err != nil {
		log.Printf("[Main] Warning: %v", err)
	}
	return nil
}

func loadConfig(path string) (*config.GameConfig, error) {
	if path != "" {
		return config.LoadGameConfig(path)
	}
	data, err := embedded.ReadFile("data/game.yaml")
	if err != nil {
		return nil, fmt.Errorf("failed to read embedded game config: %w", err)
	}
	return config.ParseGameConfig(data)
}

func resourceFS(root string) fs.FS {
	if root == "" {
		return embedded.FS()
	}
	return os.DirFS(root)
}

type stores struct {
	saves      game.Store
	loads      game.Store
	highscores game.Store
	settings   game.Store
}

// openStores 按存储方式创建存档、排行榜和设置的存储
//
// gdata 不可用时回退到文件存储。-load 为空时 loads 为 nil（开始新游戏）。
func openStores(kind, save, load, highscores string) stores {
	if kind == storageGdata {
		manager, err := gdata.Open(gdata.Config{AppName: "invaders"})
		if err == nil {
			st := stores{
				saves:      game.NewGdataSaveStore(manager, ""),
				highscores: game.NewGdataHighscoreStore(manager),
				settings:   game.NewGdataSettingsStore(manager),
			}
			if load != "" {
				st.loads = st.saves
			}
			return st
		}
		log.Printf("[Main] Warning: gdata unavailable (%v), falling back to files", err)
	} else if kind != storageFile {
		log.Printf("[Main] Warning: unknown storage %q, using files", kind)
	}

	st := stores{
		saves:      game.NewFileStore(save),
		highscores: game.NewFileStore(highscores),
		settings:   game.NewFileStore(settingsFilePath),
	}
	if load != "" {
		st.loads = game.NewFileStore(load)
	}
	return st
}

func runWindow(cfg *config.GameConfig, rm *resources.ResourceManager, controller *game.GameController, sounds sound.Player, settings *game.SettingsManager) error {
	var sprites systems.SpriteSet
	var err error
	if sprites.Player, err = rm.LoadImageByID(resources.AssetPlayer); err != nil {
		return err
	}
	if sprites.Enemy, err = rm.LoadImageByID(resources.AssetEnemy); err != nil {
		return err
	}

	gameApp, err := app.NewApp(app.Config{
		Controller: controller,
		Sprites:    sprites,
		Sounds:     sounds,
		OnFullscreenChanged: func(fullscreen bool) {
			settings.SetFullscreen(fullscreen)
			if err := settings.Save(); err != nil {
				log.Printf("[Main] Warning: %v", err)
			}
		},
	})
	if err != nil {
		return fmt.Errorf("游戏初始化失败: %w", err)
	}

	ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	ebiten.SetWindowTitle("Invaders")
	ebiten.SetTPS(gameApp.TPS())
	ebiten.SetFullscreen(settings.GetSettings().Fullscreen)

	if err := ebiten.RunGame(gameApp); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	if !controller.Session().Over() {
		// 直接关闭窗口视为退出
		controller.Handle(game.CommandQuit)
	}
	return nil
}

func runTerminal(controller *game.GameController, sounds sound.Player) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	runErr := terminal.NewRunner(screen, controller, sounds).Run(ctx)
	if runErr == nil && controller.Session().Outcome() != game.OutcomeQuit {
		// 让玩家看清结局画面
		time.Sleep(1500 * time.Millisecond)
	}
	screen.Fini()
	return runErr
}

// printSummary 打印最终得分，必要时询问名字，然后打印排行榜
func printSummary(controller *game.GameController) {
	s := controller.Session()
	fmt.Printf("Game over (%s). Final score: %d\n", s.Outcome(), s.Score)

	in := bufio.NewReader(os.Stdin)
	prompt := func(score int) (string, error) {
		fmt.Printf("New highscore %d! Enter your name: ", score)
		line, err := in.ReadString('\n')
		if err != nil && line == "" {
			return "", err
		}
		return strings.TrimSpace(line), nil
	}

	entries, _ := controller.Finish(prompt)
	if len(entries) == 0 {
		return
	}
	fmt.Println("Highscores:")
	for i, e := range entries {
		fmt.Printf("%2d. %-16s %d\n", i+1, e.Name, e.Score)
	}
}
