package systems

import (
	"github.com/gonewx/lawncore/pkg/game"
	"github.com/gonewx/lawncore/pkg/types"
)

// CooldownSystem 卡片冷却
// 冷却按墙钟以固定步长递减, 暂停期间照常恢复。
type CooldownSystem struct{}

// NewCooldownSystem 创建冷却系统
func NewCooldownSystem() *CooldownSystem {
	return &CooldownSystem{}
}

// Start 种植后开始冷却
func (s *CooldownSystem) Start(m *game.Match, pt types.PlantType) {
	stats, ok := m.Config.Plant(pt)
	if !ok || stats.Cooldown <= 0 {
		return
	}
	m.Cooldowns[pt] = stats.Cooldown
	s.scheduleStep(m, pt, m.WallTime)
}

func (s *CooldownSystem) scheduleStep(m *game.Match, pt types.PlantType, from float64) {
	m.At(game.ClockWall, from+m.Config.Rules.Economy.CooldownStep, game.TimedEvent{
		Effect: game.EffectCooldownStep,
		Plant:  pt,
	})
}

// HandleStep 定时事件: 冷却递减一步
func (s *CooldownSystem) HandleStep(m *game.Match, ev game.TimedEvent) {
	remaining, ok := m.Cooldowns[ev.Plant]
	if !ok || remaining <= 0 {
		return
	}
	remaining -= m.Config.Rules.Economy.CooldownStep
	if remaining < 0 {
		remaining = 0
	}
	m.Cooldowns[ev.Plant] = remaining
	if remaining > 0 {
		s.scheduleStep(m, ev.Plant, ev.FireAt)
	}
}

// Ready 植物卡片是否已冷却完毕
func (s *CooldownSystem) Ready(m *game.Match, pt types.PlantType) bool {
	return m.Cooldowns[pt] <= 0
}

// Remaining 剩余冷却时间(毫秒)
func (s *CooldownSystem) Remaining(m *game.Match, pt types.PlantType) float64 {
	return m.Cooldowns[pt]
}
