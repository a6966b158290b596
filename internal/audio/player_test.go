package audio

import (
	"math"
	"testing"
	"time"

	"github.com/gopxl/beep"

	"github.com/gonewx/lawncore/pkg/game"
)

type fixedVolumes struct {
	sound float64
	music float64
}

func (f fixedVolumes) EffectiveSoundVolume() float64 { return f.sound }
func (f fixedVolumes) EffectiveMusicVolume() float64 { return f.music }

// drain 读完音频流, 返回样本数与峰值
func drain(s beep.Streamer) (int, float64) {
	buf := make([][2]float64, 512)
	total, peak := 0, 0.0
	for {
		n, ok := s.Stream(buf)
		for i := 0; i < n; i++ {
			peak = math.Max(peak, math.Abs(buf[i][0]))
		}
		total += n
		if !ok || n == 0 {
			return total, peak
		}
	}
}

// TestEveryCueIsDefined 测试所有音效ID都有合成参数
func TestEveryCueIsDefined(t *testing.T) {
	ids := []string{
		game.SoundButtonClick, game.SoundPlant, game.SoundShoot, game.SoundSunCollect,
		game.SoundZombieHit, game.SoundZombieDie, game.SoundExplosion, game.SoundLawnmower,
		game.SoundBite, game.SoundWaveStart, game.SoundHugeWave, game.SoundFinalWave,
		game.SoundGameOver, game.SoundVictory, game.SoundShovel, game.SoundBuzzer,
		game.MusicBattle,
	}
	for _, id := range ids {
		if _, ok := Lookup(id); !ok {
			t.Errorf("cue %s missing", id)
		}
	}
}

// TestSynthesizeLength 测试合成音频的长度与音量范围
func TestSynthesizeLength(t *testing.T) {
	tests := []struct {
		name string
		id   string
	}{
		{"plain sine", game.SoundButtonClick},
		{"sweep", game.SoundSunCollect},
		{"noise", game.SoundExplosion},
		{"square", game.SoundBite},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cue, _ := Lookup(tt.id)
			n, peak := drain(Synthesize(cue, SampleRate, 1))
			want := SampleRate.N(cue.Duration)
			if n != want {
				t.Errorf("samples = %d, want %d", n, want)
			}
			if peak <= 0 || peak > 1.0001 {
				t.Errorf("peak = %f, want (0, 1]", peak)
			}
		})
	}
}

// TestSynthesizeSilentAtZeroVolume 测试音量为 0 时输出静音
func TestSynthesizeSilentAtZeroVolume(t *testing.T) {
	cue, _ := Lookup(game.SoundShoot)
	_, peak := drain(Synthesize(cue, SampleRate, 0))
	if peak != 0 {
		t.Errorf("peak = %f, want 0", peak)
	}
}

// TestPlaySoundUninitialized 测试未打开扬声器时不播放
func TestPlaySoundUninitialized(t *testing.T) {
	p := NewPlayer(nil)
	if p.PlaySound(game.SoundPlant) {
		t.Error("uninitialized player should not play")
	}
}

// TestPrepareThrottleAndVolume 测试节流、未知ID与音量开关
func TestPrepareThrottleAndVolume(t *testing.T) {
	clock := time.Unix(0, 0)
	p := NewPlayer(fixedVolumes{sound: 0.5, music: 0})
	p.now = func() time.Time { return clock }

	if _, ok := p.prepare(game.SoundShoot); !ok {
		t.Fatal("first shot should play")
	}
	if _, ok := p.prepare(game.SoundShoot); ok {
		t.Error("repeat within interval should be throttled")
	}
	clock = clock.Add(minRepeatInterval)
	if _, ok := p.prepare(game.SoundShoot); !ok {
		t.Error("repeat after interval should play")
	}
	if _, ok := p.prepare("SOUND_NOPE"); ok {
		t.Error("unknown id should not play")
	}
	if _, ok := p.prepare(game.MusicBattle); ok {
		t.Error("music muted by volume source")
	}
}
