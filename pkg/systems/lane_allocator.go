package systems

import (
	"log"
	"sort"

	"github.com/gonewx/lawncore/pkg/components"
	"github.com/gonewx/lawncore/pkg/ecs"
	"github.com/gonewx/lawncore/pkg/game"
)

// LaneAllocator 出怪行分配器
//
// 平滑权重算法: 最近被选过的行概率降低, 很久没选的行概率升高,
// 使僵尸在各行之间分布自然且避免连续重复。
// 每行的权重与选取历史保存在对局实体管理器中的行实体上, 重开对局时随之清空。
type LaneAllocator struct{}

// NewLaneAllocator 创建行分配器
func NewLaneAllocator() *LaneAllocator {
	return &LaneAllocator{}
}

// InitializeLanes 为每一行创建行状态实体
//
// 参数:
//   - m: 对局上下文
//   - initialWeight: 初始权重
func (la *LaneAllocator) InitializeLanes(m *game.Match, initialWeight float64) {
	em := m.EntityManager
	for _, id := range ecs.GetEntitiesWith1[*components.LaneStateComponent](em) {
		em.DestroyEntity(id)
	}
	for i := 0; i < m.Field.Rows; i++ {
		entity := em.CreateEntity()
		ecs.AddComponent(em, entity, &components.LaneStateComponent{
			LaneIndex: i,
			Weight:    initialWeight,
		})
	}
	log.Printf("[LaneAllocator] Initialized %d lanes with initial weight %.2f", m.Field.Rows, initialWeight)
}

// laneStates 按行号排序的行状态, 未初始化时先初始化
func (la *LaneAllocator) laneStates(m *game.Match) []*components.LaneStateComponent {
	em := m.EntityManager
	ids := ecs.GetEntitiesWith1[*components.LaneStateComponent](em)
	if len(ids) == 0 {
		la.InitializeLanes(m, 1)
		ids = ecs.GetEntitiesWith1[*components.LaneStateComponent](em)
	}

	states := make([]*components.LaneStateComponent, 0, len(ids))
	for _, id := range ids {
		if state, ok := ecs.GetComponent[*components.LaneStateComponent](em, id); ok {
			states = append(states, state)
		}
	}
	sort.Slice(states, func(i, j int) bool { return states[i].LaneIndex < states[j].LaneIndex })
	return states
}

// SelectLane 为僵尸选择一行并更新选取历史
//
// 参数:
//   - m: 对局上下文(使用对局的随机源)
//   - restriction: 允许的行(0 起), 为空则不限制
//
// 返回:
//   - 选中的行号; 没有合法行时退回均匀随机
func (la *LaneAllocator) SelectLane(m *game.Match, restriction []int) int {
	states := la.laneStates(m)
	legal := FilterLegalLanes(states, m.Field.Rows, restriction)
	if len(legal) == 0 {
		log.Printf("[LaneAllocator] WARNING: No legal lanes for restriction %v, picking uniformly", restriction)
		return m.Rand.Intn(m.Field.Rows)
	}

	weights := make([]float64, len(legal))
	for i, state := range legal {
		weights[i] = state.Weight
	}
	weightP := CalculateWeightP(weights)

	smooth := make([]float64, len(legal))
	total := 0.0
	for i, state := range legal {
		pLast := CalculatePLast(state.LastPicked, weightP[i])
		pSecondLast := CalculatePSecondLast(state.SecondLastPicked, weightP[i])
		smooth[i] = CalculateSmoothWeight(weightP[i], pLast, pSecondLast)
		total += smooth[i]
	}

	selected := legal[len(legal)-1].LaneIndex
	if total > 0 {
		target := m.Rand.Float64() * total
		cumulative := 0.0
		for i, sw := range smooth {
			cumulative += sw
			if cumulative >= target {
				selected = legal[i].LaneIndex
				break
			}
		}
	}

	UpdateLaneCounters(states, selected)
	return selected
}

// UpdateLaneCounters 更新选取计数器
//
// 所有权重大于 0 的行计数器加一; 选中行的 LastPicked 转入 SecondLastPicked 后清零。
func UpdateLaneCounters(states []*components.LaneStateComponent, selected int) {
	for _, state := range states {
		if state.Weight > 0 {
			state.LastPicked++
			state.SecondLastPicked++
		}
	}
	for _, state := range states {
		if state.LaneIndex == selected {
			// 第一遍已加一, 减一得到选中前的值
			state.SecondLastPicked = state.LastPicked - 1
			state.LastPicked = 0
			return
		}
	}
}

// CalculateWeightP 计算权重占比
func CalculateWeightP(laneWeights []float64) []float64 {
	sum := 0.0
	for _, w := range laneWeights {
		sum += w
	}

	weightP := make([]float64, len(laneWeights))
	if sum <= 0 {
		return weightP
	}
	for i, w := range laneWeights {
		weightP[i] = w / sum
	}
	return weightP
}

// CalculatePLast 计算影响因子 PLast
//
// 公式: PLast = (6 × LastPicked × WeightP + 6 × WeightP - 3) / 4
func CalculatePLast(lastPicked int, weightP float64) float64 {
	return (6.0*float64(lastPicked)*weightP + 6.0*weightP - 3.0) / 4.0
}

// CalculatePSecondLast 计算影响因子 PSecondLast
//
// 公式: PSecondLast = (SecondLastPicked × WeightP + WeightP - 1) / 4
func CalculatePSecondLast(secondLastPicked int, weightP float64) float64 {
	return (float64(secondLastPicked)*weightP + weightP - 1.0) / 4.0
}

// CalculateSmoothWeight 计算平滑权重
//
// 公式: SmoothWeight = WeightP × clamp(PLast + PSecondLast, 0.01, 100)
func CalculateSmoothWeight(weightP float64, pLast float64, pSecondLast float64) float64 {
	if weightP < 1e-6 {
		return 0
	}

	sum := pLast + pSecondLast
	if sum < 0.01 {
		sum = 0.01
	} else if sum > 100.0 {
		sum = 100.0
	}
	return weightP * sum
}

// FilterLegalLanes 过滤合法行
//
// 参数:
//   - states: 所有行的状态
//   - rows: 场地行数
//   - restriction: 允许的行, 为空则不限制
//
// 返回:
//   - 合法行的状态列表
func FilterLegalLanes(states []*components.LaneStateComponent, rows int, restriction []int) []*components.LaneStateComponent {
	legal := make([]*components.LaneStateComponent, 0, len(states))
	for _, state := range states {
		if state.LaneIndex < 0 || state.LaneIndex >= rows || state.Weight <= 0 {
			continue
		}
		if len(restriction) > 0 && !containsLane(restriction, state.LaneIndex) {
			continue
		}
		legal = append(legal, state)
	}
	return legal
}

func containsLane(lanes []int, lane int) bool {
	for _, l := range lanes {
		if l == lane {
			return true
		}
	}
	return false
}
