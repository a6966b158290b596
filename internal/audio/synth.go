// Package audio 用程序化合成的短音效实现 game.SoundPlayer
//
// 不依赖任何音频资源文件: 每个音效ID对应一段振荡器 + 包络的参数。
package audio

import (
	"math"
	"math/rand"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"

	"github.com/gonewx/lawncore/pkg/game"
)

// Wave 振荡器波形
type Wave int

const (
	WaveSine Wave = iota
	WaveSquare
	WaveSaw
	WaveNoise
)

// Cue 一个音效的合成参数
type Cue struct {
	Wave     Wave
	Freq     float64 // 起始频率(Hz)
	EndFreq  float64 // 结束频率, 为 0 时不滑音
	Duration time.Duration
	Attack   time.Duration
	Release  time.Duration
	Gain     float64
}

// cues 音效ID到合成参数的映射
var cues = map[string]Cue{
	game.SoundButtonClick: {Wave: WaveSine, Freq: 1200, Duration: 40 * time.Millisecond, Attack: 2 * time.Millisecond, Release: 20 * time.Millisecond, Gain: 0.4},
	game.SoundPlant:       {Wave: WaveNoise, Duration: 120 * time.Millisecond, Attack: 5 * time.Millisecond, Release: 90 * time.Millisecond, Gain: 0.35},
	game.SoundShoot:       {Wave: WaveSine, Freq: 520, EndFreq: 320, Duration: 60 * time.Millisecond, Attack: 2 * time.Millisecond, Release: 40 * time.Millisecond, Gain: 0.3},
	game.SoundSunCollect:  {Wave: WaveSine, Freq: 880, EndFreq: 1320, Duration: 150 * time.Millisecond, Attack: 5 * time.Millisecond, Release: 80 * time.Millisecond, Gain: 0.5},
	game.SoundZombieHit:   {Wave: WaveNoise, Duration: 50 * time.Millisecond, Attack: 1 * time.Millisecond, Release: 40 * time.Millisecond, Gain: 0.25},
	game.SoundZombieDie:   {Wave: WaveSaw, Freq: 180, EndFreq: 60, Duration: 300 * time.Millisecond, Attack: 5 * time.Millisecond, Release: 200 * time.Millisecond, Gain: 0.35},
	game.SoundExplosion:   {Wave: WaveNoise, Duration: 600 * time.Millisecond, Attack: 2 * time.Millisecond, Release: 500 * time.Millisecond, Gain: 0.6},
	game.SoundLawnmower:   {Wave: WaveSaw, Freq: 90, EndFreq: 140, Duration: 700 * time.Millisecond, Attack: 30 * time.Millisecond, Release: 300 * time.Millisecond, Gain: 0.4},
	game.SoundBite:        {Wave: WaveSquare, Freq: 140, Duration: 70 * time.Millisecond, Attack: 2 * time.Millisecond, Release: 50 * time.Millisecond, Gain: 0.2},
	game.SoundWaveStart:   {Wave: WaveSaw, Freq: 220, EndFreq: 440, Duration: 800 * time.Millisecond, Attack: 50 * time.Millisecond, Release: 300 * time.Millisecond, Gain: 0.4},
	game.SoundHugeWave:    {Wave: WaveSquare, Freq: 110, EndFreq: 220, Duration: 1200 * time.Millisecond, Attack: 80 * time.Millisecond, Release: 400 * time.Millisecond, Gain: 0.4},
	game.SoundFinalWave:   {Wave: WaveSquare, Freq: 330, EndFreq: 165, Duration: 1200 * time.Millisecond, Attack: 80 * time.Millisecond, Release: 400 * time.Millisecond, Gain: 0.4},
	game.SoundGameOver:    {Wave: WaveSaw, Freq: 300, EndFreq: 80, Duration: 1500 * time.Millisecond, Attack: 20 * time.Millisecond, Release: 800 * time.Millisecond, Gain: 0.5},
	game.SoundVictory:     {Wave: WaveSine, Freq: 523, EndFreq: 1046, Duration: 1200 * time.Millisecond, Attack: 20 * time.Millisecond, Release: 500 * time.Millisecond, Gain: 0.5},
	game.SoundShovel:      {Wave: WaveNoise, Duration: 200 * time.Millisecond, Attack: 10 * time.Millisecond, Release: 150 * time.Millisecond, Gain: 0.3},
	game.SoundBuzzer:      {Wave: WaveSaw, Freq: 100, Duration: 150 * time.Millisecond, Attack: 5 * time.Millisecond, Release: 50 * time.Millisecond, Gain: 0.3},
	game.MusicBattle:      {Wave: WaveSine, Freq: 262, EndFreq: 392, Duration: 900 * time.Millisecond, Attack: 200 * time.Millisecond, Release: 400 * time.Millisecond, Gain: 0.2},
}

// Lookup 返回音效ID对应的合成参数
func Lookup(soundID string) (Cue, bool) {
	cue, ok := cues[soundID]
	return cue, ok
}

// oscillator 可滑音的振荡器
type oscillator struct {
	cue      Cue
	rate     beep.SampleRate
	phase    float64
	position int
	total    int
	rng      *rand.Rand
}

func newOscillator(cue Cue, rate beep.SampleRate) *oscillator {
	return &oscillator{
		cue:   cue,
		rate:  rate,
		total: rate.N(cue.Duration),
		rng:   rand.New(rand.NewSource(int64(cue.Freq*1000) + int64(cue.Duration))),
	}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.total {
			return i, i > 0
		}

		freq := o.cue.Freq
		if o.cue.EndFreq > 0 && o.total > 0 {
			progress := float64(o.position) / float64(o.total)
			freq = o.cue.Freq + (o.cue.EndFreq-o.cue.Freq)*progress
		}

		var val float64
		switch o.cue.Wave {
		case WaveSquare:
			if o.phase < 0.5 {
				val = 1
			} else {
				val = -1
			}
		case WaveSaw:
			val = 2 * (o.phase - 0.5)
		case WaveNoise:
			val = o.rng.Float64()*2 - 1
		default:
			val = math.Sin(2 * math.Pi * o.phase)
		}

		samples[i][0] = val
		samples[i][1] = val

		o.phase += freq / float64(o.rate)
		o.phase -= math.Floor(o.phase)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// envelope 线性起音/释音包络
type envelope struct {
	streamer beep.Streamer
	position int
	attack   int
	release  int
	total    int
}

func newEnvelope(s beep.Streamer, cue Cue, rate beep.SampleRate) *envelope {
	return &envelope{
		streamer: s,
		attack:   rate.N(cue.Attack),
		release:  rate.N(cue.Release),
		total:    rate.N(cue.Duration),
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)
	for i := 0; i < n; i++ {
		vol := 1.0
		if e.attack > 0 && e.position < e.attack {
			vol = float64(e.position) / float64(e.attack)
		}
		if releaseStart := e.total - e.release; e.release > 0 && e.position >= releaseStart {
			vol = math.Max(0, float64(e.total-e.position)/float64(e.release))
		}
		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// withVolume 按线性音量缩放
// 音量为 0 时 math.Log2 为 -Inf, 改用静音标记。
func withVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}

// Synthesize 生成一个音效的有限长度音频流
// 参数:
//
//	cue - 合成参数
//	rate - 采样率
//	volume - 线性音量 0.0 ~ 1.0
func Synthesize(cue Cue, rate beep.SampleRate, volume float64) beep.Streamer {
	var source beep.Streamer = newOscillator(cue, rate)
	if cue.Wave == WaveSine && cue.EndFreq == 0 {
		if tone, err := generators.SineTone(rate, cue.Freq); err == nil {
			source = beep.Take(rate.N(cue.Duration), tone)
		}
	}
	shaped := newEnvelope(source, cue, rate)
	return withVolume(shaped, cue.Gain*volume)
}
