package entities

import (
	"github.com/gonewx/lawncore/pkg/components"
	"github.com/gonewx/lawncore/pkg/ecs"
	"github.com/gonewx/lawncore/pkg/game"
)

// NewProjectileEntity 创建子弹实体
// 子弹从发射者格子的右边缘出发。
//
// 参数:
//   - m: 对局上下文
//   - source: 发射者实体
//   - lane: 所在行
//   - startX: 起始水平坐标
//   - damage: 伤害
//   - slows: 是否附带减速
func NewProjectileEntity(m *game.Match, source ecs.EntityID, lane int, startX float64, damage int, slows bool) ecs.EntityID {
	em := m.EntityManager
	entityID := em.CreateEntity()

	ecs.AddComponent(em, entityID, &components.ProjectileComponent{
		Lane:   lane,
		X:      startX,
		Damage: damage,
		Slows:  slows,
		Source: source,
	})

	m.Emit(game.Event{Type: game.EventEntityCreated, Entity: entityID, Kind: game.KindProjectile, Lane: lane})
	return entityID
}
