package systems

import (
	"log"

	"github.com/gonewx/lawncore/pkg/components"
	"github.com/gonewx/lawncore/pkg/ecs"
	"github.com/gonewx/lawncore/pkg/game"
	"github.com/gonewx/lawncore/pkg/types"
)

// LawnmowerSystem 除草车系统
// 职责：
// - 僵尸越过内侧边界时触发本行除草车
// - 可用时消耗除草车并清除本行所有存活僵尸
// - 已用过时直接判负
type LawnmowerSystem struct {
	combat *CombatSystem
}

// NewLawnmowerSystem 创建除草车系统
func NewLawnmowerSystem(combat *CombatSystem) *LawnmowerSystem {
	return &LawnmowerSystem{combat: combat}
}

// Mower 返回指定行的除草车
func (s *LawnmowerSystem) Mower(m *game.Match, lane int) (ecs.EntityID, *components.LawnmowerComponent, bool) {
	em := m.EntityManager
	for _, id := range ecs.GetEntitiesWith1[*components.LawnmowerComponent](em) {
		mower, _ := ecs.GetComponent[*components.LawnmowerComponent](em, id)
		if mower.Lane == lane {
			return id, mower, true
		}
	}
	return 0, nil, false
}

// HandleBreach 处理僵尸到达内侧边界
// 参数:
//   - m: 对局上下文
//   - lane: 被突破的行
//
// 返回:
//   - bool: true 表示除草车已清场、对局继续; false 表示对局以失败结束
func (s *LawnmowerSystem) HandleBreach(m *game.Match, lane int) bool {
	id, mower, ok := s.Mower(m, lane)
	if !ok || !mower.Available {
		log.Printf("[LawnmowerSystem] Lane %d breached with no lawnmower, game over", lane)
		m.End(game.OutcomeDefeat)
		return false
	}

	mower.Available = false
	mower.TriggeredAt = m.GameTime
	m.PlaySound(game.SoundLawnmower)
	m.Emit(game.Event{Type: game.EventLawnmower, Entity: id, Kind: game.KindLawnmower, Lane: lane})

	killed := 0
	for _, zid := range LiveZombiesInLane(m, lane) {
		if s.combat.KillZombie(m, zid, types.CauseMowed) {
			killed++
		}
	}
	log.Printf("[LawnmowerSystem] Lawnmower in lane %d triggered, %d zombies cleared", lane, killed)
	return true
}

// Available 返回每行除草车是否可用
func (s *LawnmowerSystem) Available(m *game.Match) []bool {
	result := make([]bool, m.Field.Rows)
	for lane := range result {
		if _, mower, ok := s.Mower(m, lane); ok {
			result[lane] = mower.Available
		}
	}
	return result
}
