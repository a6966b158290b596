package entities

import (
	"fmt"

	"github.com/gonewx/lawncore/pkg/components"
	"github.com/gonewx/lawncore/pkg/ecs"
	"github.com/gonewx/lawncore/pkg/game"
	"github.com/gonewx/lawncore/pkg/types"
)

// NewZombieEntity 创建僵尸实体
// 僵尸出生在场地右边界外, 所在行生成后不再改变。
// 第一次啃咬不需要等待攻击间隔。
func NewZombieEntity(m *game.Match, zombieType types.ZombieType, lane int) (ecs.EntityID, error) {
	stats, ok := m.Config.Zombie(zombieType)
	if !ok {
		return 0, fmt.Errorf("no stats for zombie type %s", zombieType)
	}
	if lane < 0 || lane >= m.Field.Rows {
		return 0, fmt.Errorf("lane %d out of range [0, %d)", lane, m.Field.Rows)
	}

	em := m.EntityManager
	entityID := em.CreateEntity()

	ecs.AddComponent(em, entityID, &components.ZombieComponent{
		Type:            zombieType,
		Class:           stats.Class,
		Lane:            lane,
		X:               m.Field.SpawnX(),
		SpeedMultiplier: stats.Speed,
		LastAttack:      m.GameTime - stats.AttackRate,
	})
	ecs.AddComponent(em, entityID, &components.HealthComponent{
		CurrentHealth: stats.Health,
		MaxHealth:     stats.Health,
	})

	m.Emit(game.Event{Type: game.EventEntityCreated, Entity: entityID, Kind: game.KindZombie, Lane: lane})
	return entityID, nil
}
