package behavior

import (
	"log"

	"github.com/gonewx/lawncore/pkg/components"
	"github.com/gonewx/lawncore/pkg/ecs"
	"github.com/gonewx/lawncore/pkg/entities"
	"github.com/gonewx/lawncore/pkg/game"
	"github.com/gonewx/lawncore/pkg/types"
)

// updatePlant 按植物分类分发逐帧行为
func (s *BehaviorSystem) updatePlant(m *game.Match, id ecs.EntityID, plant *components.PlantComponent) {
	if plant.Detonating {
		return
	}
	stats, ok := m.Config.Plant(plant.Type)
	if !ok {
		return
	}
	elapsed := m.GameTime - plant.LastAction

	switch plant.Class {
	case types.ClassShooter:
		if elapsed >= stats.FireRate && s.hasTarget(m, plant) {
			plant.LastAction = m.GameTime
			s.fire(m, id, plant)
			for shot := 1; shot < stats.Shots; shot++ {
				m.After(game.ClockGame, float64(shot)*stats.ShotStagger, game.TimedEvent{
					Entity: id,
					Effect: game.EffectExtraShot,
				})
			}
		}
	case types.ClassProducer:
		if elapsed >= stats.SunRate {
			plant.LastAction = m.GameTime
			x, y := m.Field.CellCenter(plant.Row, plant.Col)
			entities.NewPlantSunEntity(m, x, y)
		}
	case types.ClassEater:
		if !plant.Busy {
			s.tryConsume(m, id, plant, stats.ChewTime)
		}
	}
	// 坚果墙没有主动行为; 樱桃炸弹和土豆地雷由定时事件驱动
}

// hasTarget 同行内是否有位于本格右侧的存活僵尸
func (s *BehaviorSystem) hasTarget(m *game.Match, plant *components.PlantComponent) bool {
	em := m.EntityManager
	edge := m.Field.CellRightEdge(plant.Col)
	for _, zid := range ecs.GetEntitiesWith1[*components.ZombieComponent](em) {
		zombie, _ := ecs.GetComponent[*components.ZombieComponent](em, zid)
		if zombie.Lane == plant.Row && !zombie.Dying && zombie.X > edge {
			return true
		}
	}
	return false
}

// fire 从植物所在格子的右边缘发射一颗子弹
func (s *BehaviorSystem) fire(m *game.Match, id ecs.EntityID, plant *components.PlantComponent) {
	stats, _ := m.Config.Plant(plant.Type)
	x := m.Field.CellRightEdge(plant.Col)
	entities.NewProjectileEntity(m, id, plant.Row, x, stats.Damage, stats.Slows)
	m.PlaySound(game.SoundShoot)
}

// tryConsume 大嘴花吞噬正前方(本格或右侧一格)的第一个存活僵尸
func (s *BehaviorSystem) tryConsume(m *game.Match, id ecs.EntityID, plant *components.PlantComponent, chewTime float64) {
	em := m.EntityManager
	for _, zid := range ecs.GetEntitiesWith1[*components.ZombieComponent](em) {
		zombie, _ := ecs.GetComponent[*components.ZombieComponent](em, zid)
		if zombie.Lane != plant.Row || zombie.Dying {
			continue
		}
		col := m.Field.ColumnAt(zombie.X)
		if col < plant.Col || col > plant.Col+1 {
			continue
		}
		if !s.combat.KillZombie(m, zid, types.CauseConsumed) {
			continue
		}
		plant.Busy = true
		plant.LastAction = m.GameTime
		m.PlaySound(game.SoundBite)
		m.After(game.ClockGame, chewTime, game.TimedEvent{
			Entity: id,
			Effect: game.EffectChewDone,
		})
		log.Printf("[BehaviorSystem] Chomper %d consumed zombie %d", id, zid)
		return
	}
}

// OnPlantPlaced 为延迟生效的植物调度一次性定时事件
// 樱桃炸弹: 引信到期后爆炸; 土豆地雷: 武装时间到期后才能被触发。
func (s *BehaviorSystem) OnPlantPlaced(m *game.Match, id ecs.EntityID) {
	plant, ok := ecs.GetComponent[*components.PlantComponent](m.EntityManager, id)
	if !ok {
		return
	}
	stats, _ := m.Config.Plant(plant.Type)
	switch plant.Class {
	case types.ClassInstant:
		m.After(game.ClockGame, stats.Fuse, game.TimedEvent{Entity: id, Effect: game.EffectFuse})
	case types.ClassMine:
		m.After(game.ClockGame, stats.ArmTime, game.TimedEvent{Entity: id, Effect: game.EffectArm})
	}
}

// Detonate 引爆植物: 范围伤害, 生成爆炸特效, 延迟移除植物
// 返回:
//   - bool: 植物不存在或已引爆时返回 false
func (s *BehaviorSystem) Detonate(m *game.Match, id ecs.EntityID) bool {
	em := m.EntityManager
	if !em.Exists(id) {
		return false
	}
	plant, ok := ecs.GetComponent[*components.PlantComponent](em, id)
	if !ok || plant.Detonating {
		return false
	}
	stats, _ := m.Config.Plant(plant.Type)

	plant.Detonating = true
	hits := s.combat.AreaDamage(m, plant.Row, plant.Col, stats.Radius, stats.Radius, stats.ExplosionDamage)
	m.PlaySound(game.SoundExplosion)
	entities.NewExplosionEntity(m, plant.Row, plant.Col, stats.Radius)
	m.After(game.ClockGame, m.Config.Rules.Timing.ExplosionLinger, game.TimedEvent{
		Entity: id,
		Effect: game.EffectRemoveDetonated,
	})
	log.Printf("[BehaviorSystem] %s at (%d,%d) detonated, %d zombies hit", plant.Type, plant.Row, plant.Col, hits)
	return true
}

// HandleFuse 定时事件: 樱桃炸弹引信到期
func (s *BehaviorSystem) HandleFuse(m *game.Match, ev game.TimedEvent) {
	s.Detonate(m, ev.Entity)
}

// HandleArm 定时事件: 土豆地雷武装完成
func (s *BehaviorSystem) HandleArm(m *game.Match, ev game.TimedEvent) {
	if !m.EntityManager.Exists(ev.Entity) {
		return
	}
	if plant, ok := ecs.GetComponent[*components.PlantComponent](m.EntityManager, ev.Entity); ok {
		plant.Armed = true
	}
}

// HandleChewDone 定时事件: 大嘴花咀嚼结束
func (s *BehaviorSystem) HandleChewDone(m *game.Match, ev game.TimedEvent) {
	if !m.EntityManager.Exists(ev.Entity) {
		return
	}
	if plant, ok := ecs.GetComponent[*components.PlantComponent](m.EntityManager, ev.Entity); ok {
		plant.Busy = false
	}
}

// HandleExtraShot 定时事件: 连发射手的后续子弹
// 植物已被移除时忽略。
func (s *BehaviorSystem) HandleExtraShot(m *game.Match, ev game.TimedEvent) {
	em := m.EntityManager
	if !em.Exists(ev.Entity) {
		return
	}
	plant, ok := ecs.GetComponent[*components.PlantComponent](em, ev.Entity)
	if !ok || plant.Detonating {
		return
	}
	s.fire(m, ev.Entity, plant)
}
