package systems

import (
	"github.com/gonewx/lawncore/pkg/components"
	"github.com/gonewx/lawncore/pkg/ecs"
	"github.com/gonewx/lawncore/pkg/game"
	"github.com/gonewx/lawncore/pkg/types"
)

// LifetimeSystem 管理实体的生命周期
// 过期的阳光直接移除, 不给予任何收益。
type LifetimeSystem struct{}

// NewLifetimeSystem 创建一个新的生命周期系统
func NewLifetimeSystem() *LifetimeSystem {
	return &LifetimeSystem{}
}

// Update 更新所有拥有生命周期组件的实体
func (s *LifetimeSystem) Update(m *game.Match, dt float64) {
	em := m.EntityManager
	for _, id := range ecs.GetEntitiesWith1[*components.LifetimeComponent](em) {
		lifetime, ok := ecs.GetComponent[*components.LifetimeComponent](em, id)
		if !ok {
			continue
		}

		lifetime.CurrentLifetime += dt
		if lifetime.CurrentLifetime >= lifetime.MaxLifetime {
			lifetime.IsExpired = true
		}

		if lifetime.IsExpired {
			em.DestroyEntity(id)
			m.Emit(game.Event{Type: game.EventEntityDestroyed, Entity: id, Kind: game.KindSun, Cause: types.CauseExpired})
		}
	}
}
