package systems

import (
	"log"

	"github.com/gonewx/lawncore/pkg/components"
	"github.com/gonewx/lawncore/pkg/ecs"
	"github.com/gonewx/lawncore/pkg/game"
	"github.com/gonewx/lawncore/pkg/types"
)

// CombatSystem 伤害结算
//
// 所有对僵尸的伤害(子弹、爆炸)走同一条路径: 扣血、减速、狂暴检查、进入死亡。
// 进入死亡的僵尸立即不可碰撞、不阻挡, 死亡结算延迟之后才真正移除并计入击杀数,
// 这样"本波完成"只会在死亡动画结束后出现。
type CombatSystem struct {
	grid *LawnGridSystem
}

// NewCombatSystem 创建伤害结算系统
func NewCombatSystem(grid *LawnGridSystem) *CombatSystem {
	return &CombatSystem{grid: grid}
}

// DamageZombie 对僵尸造成伤害
// 参数:
//   - m: 对局上下文
//   - zombieID: 僵尸实体
//   - damage: 伤害值
//   - slows: 是否附带减速
//
// 返回:
//   - bool: 伤害是否生效(目标不存在或已在死亡中时返回 false)
func (s *CombatSystem) DamageZombie(m *game.Match, zombieID ecs.EntityID, damage int, slows bool) bool {
	em := m.EntityManager
	if !em.Exists(zombieID) {
		return false
	}
	zombie, ok := ecs.GetComponent[*components.ZombieComponent](em, zombieID)
	if !ok || zombie.Dying {
		return false
	}
	health, ok := ecs.GetComponent[*components.HealthComponent](em, zombieID)
	if !ok {
		return false
	}

	applied := health.Apply(damage)
	m.PlaySound(game.SoundZombieHit)
	m.Emit(game.Event{
		Type:      game.EventDamageApplied,
		Entity:    zombieID,
		Kind:      game.KindZombie,
		Amount:    applied,
		Remaining: health.CurrentHealth,
	})

	if slows {
		zombie.Slowed = true
		zombie.SlowedUntil = m.GameTime + m.Config.Rules.Timing.SlowDuration
	}

	if zombie.Class == types.ZombieClassEnrager && !zombie.Enraged {
		stats, _ := m.Config.Zombie(zombie.Type)
		if health.CurrentHealth <= stats.EnrageThreshold {
			zombie.Enraged = true
			zombie.SpeedMultiplier = stats.EnragedSpeed
			log.Printf("[CombatSystem] Zombie %d enraged (health %d)", zombieID, health.CurrentHealth)
		}
	}

	if health.Depleted() {
		s.beginDeath(m, zombieID, zombie, types.CauseKilled)
	}
	return true
}

// KillZombie 立即杀死僵尸(被吞食、被割草机碾压)
// 生命值直接归零并进入死亡流程。
func (s *CombatSystem) KillZombie(m *game.Match, zombieID ecs.EntityID, cause types.DestroyCause) bool {
	em := m.EntityManager
	if !em.Exists(zombieID) {
		return false
	}
	zombie, ok := ecs.GetComponent[*components.ZombieComponent](em, zombieID)
	if !ok || zombie.Dying {
		return false
	}
	if health, ok := ecs.GetComponent[*components.HealthComponent](em, zombieID); ok {
		health.CurrentHealth = 0
	}
	s.beginDeath(m, zombieID, zombie, cause)
	return true
}

// beginDeath 进入死亡流程
func (s *CombatSystem) beginDeath(m *game.Match, zombieID ecs.EntityID, zombie *components.ZombieComponent, cause types.DestroyCause) {
	zombie.Dying = true
	zombie.DeathCause = cause
	zombie.Eating = false
	m.PlaySound(game.SoundZombieDie)
	m.After(game.ClockGame, m.Config.Rules.Timing.DeathSettle, game.TimedEvent{
		Entity: zombieID,
		Effect: game.EffectSettle,
	})
}

// HandleSettle 死亡结算: 移除僵尸并计入击杀
func (s *CombatSystem) HandleSettle(m *game.Match, ev game.TimedEvent) {
	em := m.EntityManager
	if !em.Exists(ev.Entity) {
		return
	}
	zombie, ok := ecs.GetComponent[*components.ZombieComponent](em, ev.Entity)
	if !ok || !zombie.Dying {
		return
	}
	em.DestroyEntity(ev.Entity)
	m.ZombiesKilled++
	m.Emit(game.Event{
		Type:   game.EventEntityDestroyed,
		Entity: ev.Entity,
		Kind:   game.KindZombie,
		Cause:  zombie.DeathCause,
		Lane:   zombie.Lane,
	})
}

// AreaDamage 范围伤害
// 对所在行在 [row-rowRadius, row+rowRadius] 且所在列在 [col-colRadius, col+colRadius]
// 内的所有存活僵尸造成伤害。
//
// 返回:
//   - int: 受到伤害的僵尸数量
func (s *CombatSystem) AreaDamage(m *game.Match, row, col, rowRadius, colRadius, damage int) int {
	em := m.EntityManager
	hits := 0
	for _, id := range ecs.GetEntitiesWith1[*components.ZombieComponent](em) {
		zombie, _ := ecs.GetComponent[*components.ZombieComponent](em, id)
		if zombie.Dying {
			continue
		}
		if zombie.Lane < row-rowRadius || zombie.Lane > row+rowRadius {
			continue
		}
		zc := m.Field.ColumnAt(zombie.X)
		if zc < col-colRadius || zc > col+colRadius {
			continue
		}
		if s.DamageZombie(m, id, damage, false) {
			hits++
		}
	}
	return hits
}

// DamagePlant 僵尸啃咬植物
// 生命值归零时植物立即离开格子。
//
// 返回:
//   - bool: 植物是否因此被移除
func (s *CombatSystem) DamagePlant(m *game.Match, plantID ecs.EntityID, damage int) bool {
	em := m.EntityManager
	if !em.Exists(plantID) {
		return false
	}
	health, ok := ecs.GetComponent[*components.HealthComponent](em, plantID)
	if !ok {
		return false
	}

	applied := health.Apply(damage)
	m.PlaySound(game.SoundBite)
	m.Emit(game.Event{
		Type:      game.EventDamageApplied,
		Entity:    plantID,
		Kind:      game.KindPlant,
		Amount:    applied,
		Remaining: health.CurrentHealth,
	})

	if health.Depleted() {
		s.RemovePlant(m, plantID, types.CauseKilled)
		return true
	}
	return false
}

// RemovePlant 移除植物并释放格子
func (s *CombatSystem) RemovePlant(m *game.Match, plantID ecs.EntityID, cause types.DestroyCause) {
	em := m.EntityManager
	if !em.Exists(plantID) {
		return
	}
	plant, ok := ecs.GetComponent[*components.PlantComponent](em, plantID)
	if !ok {
		return
	}
	s.grid.ReleaseEntity(m, plant.Row, plant.Col, plantID)
	em.DestroyEntity(plantID)
	m.Emit(game.Event{
		Type:   game.EventEntityDestroyed,
		Entity: plantID,
		Kind:   game.KindPlant,
		Cause:  cause,
		Lane:   plant.Row,
	})
}

// HandleRemoveDetonated 移除引爆后的植物或爆炸特效
func (s *CombatSystem) HandleRemoveDetonated(m *game.Match, ev game.TimedEvent) {
	em := m.EntityManager
	if !em.Exists(ev.Entity) {
		return
	}
	if ecs.HasComponent[*components.PlantComponent](em, ev.Entity) {
		s.RemovePlant(m, ev.Entity, types.CauseDetonated)
		return
	}
	em.DestroyEntity(ev.Entity)
	m.Emit(game.Event{Type: game.EventEntityDestroyed, Entity: ev.Entity, Kind: game.KindExplosion, Cause: types.CauseDetonated})
}

// LiveZombiesInLane 返回行内存活(非死亡中)的僵尸, 按生成顺序
func LiveZombiesInLane(m *game.Match, lane int) []ecs.EntityID {
	em := m.EntityManager
	result := make([]ecs.EntityID, 0)
	for _, id := range ecs.GetEntitiesWith1[*components.ZombieComponent](em) {
		zombie, _ := ecs.GetComponent[*components.ZombieComponent](em, id)
		if zombie.Lane == lane && !zombie.Dying {
			result = append(result, id)
		}
	}
	return result
}

// ZombieCount 返回场上僵尸数量(包括死亡结算中的)
func ZombieCount(m *game.Match) int {
	return len(ecs.GetEntitiesWith1[*components.ZombieComponent](m.EntityManager))
}
