package audio

import (
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

// SampleRate 输出采样率
const SampleRate = beep.SampleRate(44100)

// minRepeatInterval 同一音效的最小重复间隔
// 一帧内多株射手同时开火时只播放一次。
const minRepeatInterval = 40 * time.Millisecond

// VolumeSource 提供当前的有效音量(已考虑开关)
// game.SettingsManager 满足该接口。
type VolumeSource interface {
	EffectiveSoundVolume() float64
	EffectiveMusicVolume() float64
}

// Player 程序化音效播放器, 实现 game.SoundPlayer
type Player struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	volumes     VolumeSource
	initialized bool
	lastPlayed  map[string]time.Time
	now         func() time.Time
}

// NewPlayer 创建播放器
// 参数:
//
//	volumes - 音量来源, 为 nil 时使用满音量
func NewPlayer(volumes VolumeSource) *Player {
	return &Player{
		mixer:      &beep.Mixer{},
		volumes:    volumes,
		lastPlayed: make(map[string]time.Time),
		now:        time.Now,
	}
}

// Initialize 打开扬声器
// 失败不是致命错误: 播放器保持未初始化状态, PlaySound 全部返回 false。
func (p *Player) Initialize() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized {
		return nil
	}
	if err := speaker.Init(SampleRate, SampleRate.N(100*time.Millisecond)); err != nil {
		return fmt.Errorf("failed to init speaker: %w", err)
	}
	speaker.Play(p.mixer)
	p.initialized = true
	log.Printf("[Audio] Speaker initialized at %d Hz", SampleRate)
	return nil
}

// Close 停止所有声音
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}
	speaker.Lock()
	p.mixer.Clear()
	speaker.Unlock()
	p.initialized = false
}

// PlaySound 实现 game.SoundPlayer
// 未初始化、未知ID、音量为 0 或重复过快时返回 false。
func (p *Player) PlaySound(soundID string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return false
	}
	streamer, ok := p.prepare(soundID)
	if !ok {
		return false
	}

	speaker.Lock()
	p.mixer.Add(streamer)
	speaker.Unlock()
	return true
}

// prepare 检查节流与音量, 并生成音频流
func (p *Player) prepare(soundID string) (beep.Streamer, bool) {
	cue, ok := Lookup(soundID)
	if !ok {
		log.Printf("[Audio] Unknown sound id %q", soundID)
		return nil, false
	}

	volume := p.volume(soundID)
	if volume <= 0 {
		return nil, false
	}

	now := p.now()
	if last, seen := p.lastPlayed[soundID]; seen && now.Sub(last) < minRepeatInterval {
		return nil, false
	}
	p.lastPlayed[soundID] = now

	return Synthesize(cue, SampleRate, volume), true
}

// volume 音乐与音效分别取各自的音量
func (p *Player) volume(soundID string) float64 {
	if p.volumes == nil {
		return 1
	}
	if isMusic(soundID) {
		return p.volumes.EffectiveMusicVolume()
	}
	return p.volumes.EffectiveSoundVolume()
}

func isMusic(soundID string) bool {
	return strings.HasPrefix(soundID, "MUSIC_")
}
