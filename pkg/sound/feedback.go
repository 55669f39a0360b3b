package sound

import "github.com/decker502/invaders/pkg/game"

// Player 能播放提示音的对象；SoundManager 实现此接口
type Player interface {
	Play(t Tone)
}

// TickTones 一帧结算后应播放的提示音
func TickTones(r game.TickReport) []Tone {
	var tones []Tone
	if r.Kills > 0 {
		tones = append(tones, ToneExplosion)
	}
	if r.Outcome.IsLoss() {
		tones = append(tones, ToneGameOver)
	}
	return tones
}

// PlayTick 播放一帧结算对应的提示音
func PlayTick(p Player, r game.TickReport) {
	for _, t := range TickTones(r) {
		p.Play(t)
	}
}
