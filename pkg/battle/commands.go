package battle

import (
	"log"

	"github.com/gonewx/lawncore/pkg/components"
	"github.com/gonewx/lawncore/pkg/ecs"
	"github.com/gonewx/lawncore/pkg/entities"
	"github.com/gonewx/lawncore/pkg/game"
	"github.com/gonewx/lawncore/pkg/types"
)

// 玩家命令
//
// 所有命令在无效时都是无副作用的空操作, 返回 false; 不返回错误。

// StartMatch 以选定的卡组开局
// 上一局已结束(胜利、失败或放弃)时丢弃旧对局, 以新卡组开始新的一局。
// 参数:
//   - selected: 1 到 maxLoadout 个互不相同、已配置的植物类型
//
// 返回:
//   - bool: 对局进行中、卡组为空、超出上限、重复或未知类型时返回 false
func (b *Battle) StartMatch(selected []types.PlantType) bool {
	m := b.match
	if m.Phase != game.PhaseIdle && !m.Over() {
		return false
	}
	if !b.validLoadout(selected) {
		return false
	}
	if m.Over() {
		b.match = b.newMatch()
	}
	b.begin(selected)
	return true
}

func (b *Battle) validLoadout(selected []types.PlantType) bool {
	if len(selected) == 0 || len(selected) > b.cfg.Rules.Economy.MaxLoadout {
		return false
	}
	seen := make(map[types.PlantType]bool, len(selected))
	for _, pt := range selected {
		if seen[pt] {
			return false
		}
		if _, ok := b.cfg.Plant(pt); !ok {
			return false
		}
		seen[pt] = true
	}
	return true
}

// PlaceDefender 在指定格子种植植物
// 检查顺序: 对局运行中、类型在卡组内、格子合法且为空、冷却完毕、阳光充足。
// 任何检查失败都不修改状态。
func (b *Battle) PlaceDefender(pt types.PlantType, row, col int) bool {
	m := b.match
	if !m.Running() || !m.InLoadout(pt) {
		return false
	}
	stats, ok := b.cfg.Plant(pt)
	if !ok {
		return false
	}
	if b.grid.IsOccupied(m, row, col) {
		return false
	}
	if !b.cooldowns.Ready(m, pt) || m.Sun < stats.Cost {
		return false
	}

	id, err := entities.NewPlantEntity(m, pt, row, col)
	if err != nil {
		log.Printf("[Battle] Failed to create plant %s: %v", pt, err)
		return false
	}
	if err := b.grid.OccupyCell(m, row, col, id); err != nil {
		log.Printf("[Battle] Failed to occupy cell (%d,%d): %v", row, col, err)
		m.EntityManager.DestroyEntity(id)
		return false
	}

	m.SpendSun(stats.Cost)
	b.cooldowns.Start(m, pt)
	b.behavior.OnPlantPlaced(m, id)
	m.PlaySound(game.SoundPlant)
	log.Printf("[Battle] Planted %s at (%d,%d), sun left %d", pt, row, col, m.Sun)
	return true
}

// ClearCell 铲除格子中的植物(不返还阳光)
func (b *Battle) ClearCell(row, col int) bool {
	m := b.match
	if !m.Running() {
		return false
	}
	id, ok := b.grid.Occupant(m, row, col)
	if !ok {
		return false
	}
	b.combat.RemovePlant(m, id, types.CauseCleared)
	m.PlaySound(game.SoundShovel)
	return true
}

// CollectPellet 收集阳光, 暂停中同样有效
func (b *Battle) CollectPellet(id ecs.EntityID) bool {
	return b.sunCollect.Collect(b.match, id)
}

// Pause 暂停对局
func (b *Battle) Pause() bool {
	m := b.match
	if m.Phase != game.PhaseRunning || m.Paused {
		return false
	}
	m.Paused = true
	log.Printf("[Battle] Paused at %.0fms", m.GameTime)
	return true
}

// Resume 继续对局
func (b *Battle) Resume() bool {
	m := b.match
	if m.Phase != game.PhaseRunning || !m.Paused {
		return false
	}
	m.Paused = false
	log.Printf("[Battle] Resumed at %.0fms", m.GameTime)
	return true
}

// Restart 丢弃当前对局, 以同一卡组重新开局
// 尚未开过局时返回 false。
func (b *Battle) Restart() bool {
	loadout := b.match.Loadout
	if len(loadout) == 0 {
		return false
	}
	if !b.match.Over() {
		b.match.End(game.OutcomeQuit)
	}
	b.match = b.newMatch()
	b.begin(loadout)
	return true
}

// Quit 放弃对局
func (b *Battle) Quit() bool {
	m := b.match
	if m.Over() {
		return false
	}
	m.End(game.OutcomeQuit)
	return true
}

// SelectSeed 选中一张卡片, 下一次 ClickCell 将种植该植物
// 铲子激活、不在卡组、冷却中或阳光不足时拒绝; 再次选择同一张卡片取消选中。
func (b *Battle) SelectSeed(pt types.PlantType) bool {
	m := b.match
	if !m.Running() || m.ShovelActive || !m.InLoadout(pt) {
		return false
	}
	if m.SelectedPlant == pt {
		m.SelectedPlant = types.PlantUnknown
		return true
	}
	stats, _ := b.cfg.Plant(pt)
	if !b.cooldowns.Ready(m, pt) || m.Sun < stats.Cost {
		m.PlaySound(game.SoundBuzzer)
		return false
	}
	m.SelectedPlant = pt
	m.PlaySound(game.SoundButtonClick)
	return true
}

// ToggleShovel 切换铲子; 激活铲子会取消已选中的卡片
func (b *Battle) ToggleShovel() bool {
	m := b.match
	if !m.Running() {
		return false
	}
	m.ShovelActive = !m.ShovelActive
	if m.ShovelActive {
		m.SelectedPlant = types.PlantUnknown
	}
	return true
}

// ClickCell 点击格子: 铲子激活时铲除, 选中卡片时种植
// 操作成功后清除选择状态。
func (b *Battle) ClickCell(row, col int) bool {
	m := b.match
	switch {
	case m.ShovelActive:
		if b.ClearCell(row, col) {
			m.ShovelActive = false
			return true
		}
	case m.SelectedPlant != types.PlantUnknown:
		if b.PlaceDefender(m.SelectedPlant, row, col) {
			m.SelectedPlant = types.PlantUnknown
			return true
		}
	}
	return false
}

// SunAt 返回覆盖指定坐标的阳光实体(点击拾取)
// 参数 radius 为拾取半径(像素)。
func (b *Battle) SunAt(x, y, radius float64) (ecs.EntityID, bool) {
	em := b.match.EntityManager
	for _, id := range ecs.GetEntitiesWith1[*components.SunComponent](em) {
		sun, _ := ecs.GetComponent[*components.SunComponent](em, id)
		dx, dy := sun.X-x, sun.Y-y
		if dx*dx+dy*dy <= radius*radius {
			return id, true
		}
	}
	return 0, false
}
