package systems

import (
	"fmt"
	"log"

	"github.com/gonewx/lawncore/pkg/config"
	"github.com/gonewx/lawncore/pkg/entities"
	"github.com/gonewx/lawncore/pkg/game"
	"github.com/gonewx/lawncore/pkg/types"
)

// 波次公告文本
const (
	hugeWaveText  = "A HUGE WAVE IS APPROACHING!"
	finalWaveText = "FINAL WAVE!"
)

// WaveSpawnSystem 波次导演
//
// 职责：
//   - 开局后延迟启动第一波
//   - 为每个出怪单位调度定时事件, 到期时由行分配器选行生成僵尸
//   - 本波出怪全部结算且场上无僵尸时完成本波, 调度下一波或胜利
//
// 状态流转: idle -> wave-active -> wave-clearing -> idle ... -> victory
type WaveSpawnSystem struct {
	lanes *LaneAllocator
}

// NewWaveSpawnSystem 创建波次导演
func NewWaveSpawnSystem() *WaveSpawnSystem {
	return &WaveSpawnSystem{lanes: NewLaneAllocator()}
}

// Begin 开局: 初始化行权重并调度第一波
func (s *WaveSpawnSystem) Begin(m *game.Match) {
	m.Director = game.DirectorIdle
	s.lanes.InitializeLanes(m, 1)
	m.After(game.ClockGame, m.Config.Rules.Timing.FirstWaveDelay, game.TimedEvent{
		Effect: game.EffectStartWave,
		Wave:   0,
	})
}

// spawnClock 出怪事件使用的计时域
// drop: 墙钟, 暂停期间到期的出怪直接作废
// defer: 游戏时间, 暂停期间顺延
func spawnClock(m *game.Match) game.Clock {
	if m.Config.Rules.SpawnPausePolicy == config.SpawnPolicyDefer {
		return game.ClockGame
	}
	return game.ClockWall
}

// StartWave 启动指定波次
// 参数:
//   - m: 对局上下文
//   - index: 波次索引(0 起); 超出范围时直接判定胜利
func (s *WaveSpawnSystem) StartWave(m *game.Match, index int) {
	if m.Phase != game.PhaseRunning {
		return
	}
	waves := m.Config.Level.Waves
	if index >= len(waves) {
		m.End(game.OutcomeVictory)
		return
	}

	wave := waves[index]
	m.WaveIndex = index
	m.WaveActive = true
	m.Director = game.DirectorWaveActive

	switch wave.Alert {
	case config.AlertHuge:
		m.Announce(hugeWaveText)
		m.PlaySound(game.SoundHugeWave)
	case config.AlertFinal:
		m.Announce(finalWaveText)
		m.PlaySound(game.SoundFinalWave)
	default:
		m.Announce(fmt.Sprintf("Wave %d", index+1))
	}
	m.PlaySound(game.SoundWaveStart)
	m.Emit(game.Event{Type: game.EventWaveStarted, Wave: index, Alert: wave.Alert})

	clock := spawnClock(m)
	base := m.Config.Rules.Timing.WaveSpawnBase
	for _, group := range wave.Groups {
		zt := types.ZombieTypeFromString(group.Type)
		if zt == types.ZombieUnknown {
			log.Printf("[WaveSpawnSystem] Skipping group with unknown zombie type %q", group.Type)
			continue
		}
		for i := 0; i < group.Count; i++ {
			m.PendingSpawns++
			m.After(clock, base+float64(i)*group.Delay, game.TimedEvent{
				Effect: game.EffectSpawn,
				Zombie: zt,
				Wave:   index,
				Lanes:  group.Lanes,
			})
		}
		base += float64(group.Count) * group.Delay
	}

	log.Printf("[WaveSpawnSystem] Wave %d/%d started (%d zombies pending)", index+1, len(waves), m.PendingSpawns)
}

// HandleStartWave 定时事件: 启动波次
func (s *WaveSpawnSystem) HandleStartWave(m *game.Match, ev game.TimedEvent) {
	s.StartWave(m, ev.Wave)
}

// HandleSpawn 定时事件: 生成一个僵尸
// 无论是否真正生成, 待出怪计数都会减一, 保证波次可以完成。
func (s *WaveSpawnSystem) HandleSpawn(m *game.Match, ev game.TimedEvent) {
	if m.PendingSpawns > 0 {
		m.PendingSpawns--
	}

	if m.Running() {
		lane := s.lanes.SelectLane(m, ev.Lanes)
		if _, err := entities.NewZombieEntity(m, ev.Zombie, lane); err != nil {
			log.Printf("[WaveSpawnSystem] Failed to spawn %s: %v", ev.Zombie, err)
		}
	} else if !m.Over() {
		log.Printf("[WaveSpawnSystem] Spawn of %s dropped while paused", ev.Zombie)
	}

	if m.PendingSpawns == 0 && m.WaveActive {
		m.Director = game.DirectorWaveClearing
	}
}

// HandleVictory 定时事件: 最后一波完成后的胜利
func (s *WaveSpawnSystem) HandleVictory(m *game.Match, _ game.TimedEvent) {
	if m.Phase == game.PhaseRunning {
		m.End(game.OutcomeVictory)
	}
}

// Update 检查本波是否完成
// 死亡结算中的僵尸仍计入场上数量。
func (s *WaveSpawnSystem) Update(m *game.Match) {
	if !m.WaveActive || m.PendingSpawns > 0 || ZombieCount(m) > 0 {
		return
	}

	m.WaveActive = false
	m.WavesCleared++
	m.Emit(game.Event{Type: game.EventWaveCompleted, Wave: m.WaveIndex})
	log.Printf("[WaveSpawnSystem] Wave %d cleared", m.WaveIndex+1)

	timing := m.Config.Rules.Timing
	if m.WaveIndex+1 < len(m.Config.Level.Waves) {
		m.Director = game.DirectorIdle
		m.After(game.ClockGame, timing.NextWaveDelay, game.TimedEvent{
			Effect: game.EffectStartWave,
			Wave:   m.WaveIndex + 1,
		})
		return
	}

	m.After(game.ClockGame, timing.VictoryDelay, game.TimedEvent{Effect: game.EffectVictory})
}
