package entities

import (
	"github.com/gonewx/lawncore/pkg/components"
	"github.com/gonewx/lawncore/pkg/ecs"
	"github.com/gonewx/lawncore/pkg/game"
)

// NewLawnmowerEntity 创建一行的除草车
func NewLawnmowerEntity(m *game.Match, lane int) ecs.EntityID {
	em := m.EntityManager
	entityID := em.CreateEntity()
	ecs.AddComponent(em, entityID, &components.LawnmowerComponent{
		Lane:      lane,
		Available: true,
	})
	m.Emit(game.Event{Type: game.EventEntityCreated, Entity: entityID, Kind: game.KindLawnmower, Lane: lane})
	return entityID
}

// NewLawnmowers 为每一行创建除草车
func NewLawnmowers(m *game.Match) []ecs.EntityID {
	ids := make([]ecs.EntityID, 0, m.Field.Rows)
	for lane := 0; lane < m.Field.Rows; lane++ {
		ids = append(ids, NewLawnmowerEntity(m, lane))
	}
	return ids
}
