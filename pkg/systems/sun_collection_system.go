package systems

import (
	"github.com/gonewx/lawncore/pkg/components"
	"github.com/gonewx/lawncore/pkg/ecs"
	"github.com/gonewx/lawncore/pkg/game"
	"github.com/gonewx/lawncore/pkg/types"
)

// SunCollectionSystem 阳光收集
//
// 点击后阳光立即从场上消失, 收益在飞向计数器的短暂延迟之后到账。
// 延迟按墙钟计时, 暂停中收集的阳光同样会到账。
type SunCollectionSystem struct{}

// NewSunCollectionSystem 创建阳光收集系统
func NewSunCollectionSystem() *SunCollectionSystem {
	return &SunCollectionSystem{}
}

// Collect 收集一颗阳光
// 参数:
//   - m: 对局上下文
//   - sunID: 阳光实体
//
// 返回:
//   - bool: 实体不存在、不是阳光或对局已结束时返回 false
func (s *SunCollectionSystem) Collect(m *game.Match, sunID ecs.EntityID) bool {
	if m.Phase != game.PhaseRunning {
		return false
	}
	em := m.EntityManager
	if !em.Exists(sunID) || !ecs.HasComponent[*components.SunComponent](em, sunID) {
		return false
	}

	em.DestroyEntity(sunID)
	m.PlaySound(game.SoundSunCollect)
	m.Emit(game.Event{Type: game.EventEntityDestroyed, Entity: sunID, Kind: game.KindSun, Cause: types.CauseCollected})

	economy := m.Config.Rules.Economy
	m.After(game.ClockWall, economy.CollectDelay, game.TimedEvent{
		Entity: sunID,
		Effect: game.EffectCollect,
		Amount: economy.SunValue,
	})
	return true
}

// HandleCollect 定时事件: 阳光到账
func (s *SunCollectionSystem) HandleCollect(m *game.Match, ev game.TimedEvent) {
	if m.Over() {
		return
	}
	m.AddSun(ev.Amount)
}
