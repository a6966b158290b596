package behavior

import (
	"github.com/gonewx/lawncore/pkg/components"
	"github.com/gonewx/lawncore/pkg/ecs"
	"github.com/gonewx/lawncore/pkg/game"
	"github.com/gonewx/lawncore/pkg/types"
)

// updateZombie 单个僵尸的逐帧行为
func (s *BehaviorSystem) updateZombie(m *game.Match, id ecs.EntityID, zombie *components.ZombieComponent, dt float64) {
	if zombie.Slowed && m.GameTime >= zombie.SlowedUntil {
		zombie.Slowed = false
	}

	stats, _ := m.Config.Zombie(zombie.Type)
	inGrace := m.GameTime < zombie.VaultGraceUntil

	if plantID, plant, blocked := s.plantInFront(m, zombie); blocked && !inGrace {
		// 撑杆跳: 每只僵尸只跳一次, 跳过后短时间内不被阻挡
		if zombie.Class == types.ZombieClassVaulter && !zombie.Vaulted {
			zombie.Vaulted = true
			zombie.X -= stats.VaultDistance * m.Field.CellWidth
			zombie.VaultGraceUntil = m.GameTime + m.Config.Rules.Timing.VaultGrace
			return
		}

		if plant.Class == types.ClassMine && plant.Armed {
			s.Detonate(m, plantID)
			return
		}

		zombie.Eating = true
		if m.GameTime-zombie.LastAttack >= stats.AttackRate {
			zombie.LastAttack = m.GameTime
			s.combat.DamagePlant(m, plantID, stats.Damage)
		}
		return
	}

	zombie.Eating = false
	speed := m.Config.Rules.Timing.ZombieBaseSpeed * zombie.SpeedMultiplier / 1000.0
	if zombie.Slowed {
		speed *= m.Config.Rules.Timing.SlowFactor
	}
	zombie.X -= speed * dt

	if zombie.X < m.Field.LawnLeft {
		s.mowers.HandleBreach(m, zombie.Lane)
	}
}

// plantInFront 僵尸当前所在格子里的植物
// 已引爆、等待移除的植物不再阻挡。
func (s *BehaviorSystem) plantInFront(m *game.Match, zombie *components.ZombieComponent) (ecs.EntityID, *components.PlantComponent, bool) {
	col := m.Field.ColumnAt(zombie.X)
	plantID, ok := s.grid.Occupant(m, zombie.Lane, col)
	if !ok {
		return 0, nil, false
	}
	plant, ok := ecs.GetComponent[*components.PlantComponent](m.EntityManager, plantID)
	if !ok || plant.Detonating {
		return 0, nil, false
	}
	return plantID, plant, true
}
