package scenes

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2"
)

// Scene represents a game screen with its own update and rendering logic.
type Scene interface {
	// Update advances the scene; deltaTime is the elapsed time in seconds.
	Update(deltaTime float64)

	// Draw renders the scene to the provided screen.
	Draw(screen *ebiten.Image)
}

// Finisher 是一个可选接口，场景结束后 App 据此退出游戏循环
type Finisher interface {
	Finished() bool
}

// SceneManager controls which scene is active.
// Only the current scene's Update and Draw are called.
type SceneManager struct {
	currentScene Scene
}

// NewSceneManager creates a SceneManager with no active scene.
func NewSceneManager() *SceneManager {
	return &SceneManager{}
}

// SwitchTo changes the active scene.
func (sm *SceneManager) SwitchTo(scene Scene) {
	log.Printf("[SceneManager] Switching to %T", scene)
	sm.currentScene = scene
}

// GetCurrentScene 返回当前活动的场景，没有时返回 nil
func (sm *SceneManager) GetCurrentScene() Scene {
	return sm.currentScene
}

// Finished 当前场景是否已经结束（不实现 Finisher 的场景永不结束）
func (sm *SceneManager) Finished() bool {
	f, ok := sm.currentScene.(Finisher)
	return ok && f.Finished()
}

// Update updates the currently active scene.
func (sm *SceneManager) Update(deltaTime float64) {
	if sm.currentScene != nil {
		sm.currentScene.Update(deltaTime)
	}
}

// Draw renders the currently active scene.
func (sm *SceneManager) Draw(screen *ebiten.Image) {
	if sm.currentScene != nil {
		sm.currentScene.Draw(screen)
	}
}
