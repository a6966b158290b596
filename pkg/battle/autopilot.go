package battle

import (
	"github.com/gonewx/lawncore/pkg/game"
	"github.com/gonewx/lawncore/pkg/types"
)

// Autopilot 简单的自动玩家, 用于无界面模拟和回归验证
//
// 策略: 收集全部阳光; 先在第 0 列种够向日葵; 有僵尸的行优先补射手;
// 僵尸逼近房子时用即时爆炸植物救急; 余下阳光在射手最少的行补射手。
type Autopilot struct {
	// Producers 目标向日葵数量
	Producers int
	// DangerColumn 僵尸进入该列及以左时视为危险
	DangerColumn int
}

// NewAutopilot 创建默认参数的自动玩家
func NewAutopilot() *Autopilot {
	return &Autopilot{Producers: 5, DangerColumn: 2}
}

// Step 执行一步决策
// 每步最多种植一株植物。
func (a *Autopilot) Step(b *Battle) {
	m := b.Match()
	if m.Phase != game.PhaseRunning {
		return
	}

	snap := b.Snapshot()
	for _, sun := range snap.Suns {
		b.CollectPellet(sun.ID)
	}
	if m.Paused {
		return
	}

	if a.emergency(b, snap) {
		return
	}
	if a.plantProducer(b, snap) {
		return
	}
	a.plantShooter(b, snap)
}

// pick 返回卡组中指定分类、当前可种植的第一种植物
func (a *Autopilot) pick(b *Battle, snap Snapshot, class types.PlantClass) (types.PlantType, bool) {
	for _, seed := range snap.Seeds {
		stats, _ := b.cfg.Plant(seed.Type)
		if stats.Class == class && seed.Ready {
			return seed.Type, true
		}
	}
	return types.PlantUnknown, false
}

func (a *Autopilot) emergency(b *Battle, snap Snapshot) bool {
	pt, ok := a.pick(b, snap, types.ClassInstant)
	if !ok {
		return false
	}
	field := b.Match().Field
	for _, z := range snap.Zombies {
		if z.Dying {
			continue
		}
		col := field.ColumnAt(z.X)
		if col < 0 || col > a.DangerColumn {
			continue
		}
		if b.PlaceDefender(pt, z.Lane, col) {
			return true
		}
	}
	return false
}

func (a *Autopilot) plantProducer(b *Battle, snap Snapshot) bool {
	count := 0
	for _, p := range snap.Plants {
		if p.Class == types.ClassProducer {
			count++
		}
	}
	if count >= a.Producers {
		return false
	}
	pt, ok := a.pick(b, snap, types.ClassProducer)
	if !ok {
		return false
	}
	for row := 0; row < snap.Rows; row++ {
		if b.PlaceDefender(pt, row, 0) {
			return true
		}
	}
	return false
}

func (a *Autopilot) plantShooter(b *Battle, snap Snapshot) bool {
	pt, ok := a.pick(b, snap, types.ClassShooter)
	if !ok {
		return false
	}

	shooters := make([]int, snap.Rows)
	threatened := make([]bool, snap.Rows)
	for _, p := range snap.Plants {
		if p.Class == types.ClassShooter {
			shooters[p.Row]++
		}
	}
	for _, z := range snap.Zombies {
		if !z.Dying {
			threatened[z.Lane] = true
		}
	}

	// 有僵尸且射手最少的行优先, 其次射手最少的行
	best := -1
	for row := 0; row < snap.Rows; row++ {
		if best < 0 {
			best = row
			continue
		}
		if threatened[row] != threatened[best] {
			if threatened[row] {
				best = row
			}
			continue
		}
		if shooters[row] < shooters[best] {
			best = row
		}
	}
	if best < 0 {
		return false
	}
	for col := 1; col < snap.Cols; col++ {
		if b.PlaceDefender(pt, best, col) {
			return true
		}
	}
	return false
}

// Play 以固定步长无界面运行整局, 直到结束或达到游戏时间上限
// 参数:
//   - b: 已开局且未暂停的战斗
//   - pilot: 自动玩家, 为 nil 时不操作
//   - dt: 步长(毫秒)
//   - limit: 游戏时间上限(毫秒)
//
// 返回:
//   - game.Outcome: 对局结果; 达到上限仍未结束时为 OutcomeNone
func Play(b *Battle, pilot *Autopilot, dt, limit float64) game.Outcome {
	for b.Match().Running() && b.Match().GameTime < limit {
		if pilot != nil {
			pilot.Step(b)
		}
		b.Tick(dt)
	}
	return b.Match().Outcome
}
