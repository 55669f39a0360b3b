// Package sound 播放射击和击毁敌人时的短促提示音
//
// 音色由 beep 的正弦发生器实时合成，不依赖音频文件。
// 音频设备不可用时 SoundManager 保持静音，游戏照常运行。
package sound

import (
	"log"
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
)

const sampleRate = beep.SampleRate(44100)

// Tone 一个提示音：频率和时长
type Tone struct {
	Freq     float64
	Duration time.Duration
}

// 游戏使用的提示音
var (
	ToneFire      = Tone{Freq: 880, Duration: 40 * time.Millisecond}
	ToneExplosion = Tone{Freq: 220, Duration: 90 * time.Millisecond}
	ToneGameOver  = Tone{Freq: 110, Duration: 400 * time.Millisecond}
)

// SoundManager 管理提示音播放
type SoundManager struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	initialized bool
	volume      float64
	played      int
}

// NewSoundManager 创建一个未初始化（静音）的 SoundManager，音量为 1
func NewSoundManager() *SoundManager {
	return &SoundManager{mixer: &beep.Mixer{}, volume: 1}
}

// SetVolume 设置音量，0 为静音，1 为原始响度
func (sm *SoundManager) SetVolume(v float64) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	sm.volume = math.Max(0, math.Min(1, v))
}

// volumeEffect 把线性音量换算为以 2 为底的增益
func volumeEffect(s beep.Streamer, v float64) *effects.Volume {
	if v <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(v)}
}

// Initialize 打开音频设备
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}

	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
		return err
	}

	speaker.Play(sm.mixer)
	sm.initialized = true
	log.Printf("[SoundManager] Audio initialized at %d Hz", sampleRate)
	return nil
}

// Enabled 音频设备是否可用
func (sm *SoundManager) Enabled() bool {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return sm.initialized
}

// Play 播放一个提示音，静音状态下什么都不做
func (sm *SoundManager) Play(t Tone) {
	streamer, err := toneStreamer(t)
	if err != nil {
		log.Printf("[SoundManager] Warning: cannot synthesize %v Hz tone: %v", t.Freq, err)
		return
	}

	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}

	speaker.Lock()
	sm.mixer.Add(volumeEffect(streamer, sm.volume))
	speaker.Unlock()
	sm.played++
}

// toneStreamer 合成固定时长的正弦音
func toneStreamer(t Tone) (beep.Streamer, error) {
	sine, err := generators.SineTone(sampleRate, t.Freq)
	if err != nil {
		return nil, err
	}
	return beep.Take(sampleRate.N(t.Duration), sine), nil
}

// Cleanup 停止所有声音并关闭音频设备
func (sm *SoundManager) Cleanup() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}

	speaker.Clear()
	speaker.Close()
	sm.initialized = false
}
