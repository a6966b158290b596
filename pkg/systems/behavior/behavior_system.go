// Package behavior 实现植物与僵尸的逐帧行为
package behavior

import (
	"github.com/gonewx/lawncore/pkg/components"
	"github.com/gonewx/lawncore/pkg/ecs"
	"github.com/gonewx/lawncore/pkg/game"
	"github.com/gonewx/lawncore/pkg/systems"
)

// BehaviorSystem 处理实体的行为逻辑
//
// 每帧先更新植物(射击、生产、吞噬), 再更新僵尸(移动、啃咬、撑杆跳、触发除草车)。
// 樱桃炸弹的引信、土豆地雷的武装、大嘴花的咀嚼由种植时调度的定时事件驱动,
// 不在逐帧循环内计时。
type BehaviorSystem struct {
	grid   *systems.LawnGridSystem
	combat *systems.CombatSystem
	mowers *systems.LawnmowerSystem
}

// NewBehaviorSystem 创建行为系统
// 参数:
//   - grid: 草坪网格系统(查找僵尸前方的植物)
//   - combat: 伤害结算
//   - mowers: 除草车系统(僵尸到达边界时调用)
func NewBehaviorSystem(grid *systems.LawnGridSystem, combat *systems.CombatSystem, mowers *systems.LawnmowerSystem) *BehaviorSystem {
	return &BehaviorSystem{
		grid:   grid,
		combat: combat,
		mowers: mowers,
	}
}

// Update 更新所有植物和僵尸
// 对局在本帧内结束(失败)时立即停止, 不再处理剩余实体。
func (s *BehaviorSystem) Update(m *game.Match, dt float64) {
	em := m.EntityManager

	for _, id := range ecs.GetEntitiesWith1[*components.PlantComponent](em) {
		if !em.Exists(id) {
			continue
		}
		plant, _ := ecs.GetComponent[*components.PlantComponent](em, id)
		s.updatePlant(m, id, plant)
	}

	for _, id := range ecs.GetEntitiesWith1[*components.ZombieComponent](em) {
		if m.Over() {
			return
		}
		if !em.Exists(id) {
			continue
		}
		zombie, _ := ecs.GetComponent[*components.ZombieComponent](em, id)
		if zombie.Dying {
			continue
		}
		s.updateZombie(m, id, zombie, dt)
	}
}
