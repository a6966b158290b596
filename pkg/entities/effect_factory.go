package entities

import (
	"github.com/gonewx/lawncore/pkg/components"
	"github.com/gonewx/lawncore/pkg/ecs"
	"github.com/gonewx/lawncore/pkg/game"
)

// NewExplosionEntity 创建爆炸特效实体
// 特效本身没有逻辑, 在 explosionLinger 之后由定时事件移除。
func NewExplosionEntity(m *game.Match, row, col, radius int) ecs.EntityID {
	em := m.EntityManager
	entityID := em.CreateEntity()
	ecs.AddComponent(em, entityID, &components.ExplosionComponent{
		Row:    row,
		Col:    col,
		Radius: radius,
	})
	m.Emit(game.Event{Type: game.EventEntityCreated, Entity: entityID, Kind: game.KindExplosion, Lane: row})
	m.After(game.ClockGame, m.Config.Rules.Timing.ExplosionLinger, game.TimedEvent{
		Entity: entityID,
		Effect: game.EffectRemoveDetonated,
	})
	return entityID
}
