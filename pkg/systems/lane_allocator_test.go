package systems

import (
	"math"
	"testing"

	"github.com/gonewx/lawncore/pkg/components"
	"github.com/gonewx/lawncore/pkg/ecs"
	"github.com/gonewx/lawncore/pkg/game"
)

// TestCalculateWeightP 测试权重占比计算
func TestCalculateWeightP(t *testing.T) {
	tests := []struct {
		name     string
		weights  []float64
		expected []float64
	}{
		{
			name:     "正常权重分配",
			weights:  []float64{1.0, 1.0, 1.0, 1.0, 1.0},
			expected: []float64{0.2, 0.2, 0.2, 0.2, 0.2},
		},
		{
			name:     "全零权重",
			weights:  []float64{0.0, 0.0, 0.0},
			expected: []float64{0.0, 0.0, 0.0},
		},
		{
			name:     "单个非零权重",
			weights:  []float64{0.0, 1.0, 0.0},
			expected: []float64{0.0, 1.0, 0.0},
		},
		{
			name:     "不均匀权重",
			weights:  []float64{1.0, 2.0, 3.0},
			expected: []float64{1.0 / 6.0, 2.0 / 6.0, 3.0 / 6.0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := CalculateWeightP(tt.weights)
			if len(result) != len(tt.expected) {
				t.Fatalf("Expected length %d, got %d", len(tt.expected), len(result))
			}
			for i := range result {
				if math.Abs(result[i]-tt.expected[i]) > 1e-9 {
					t.Errorf("Index %d: expected %.6f, got %.6f", i, tt.expected[i], result[i])
				}
			}
		})
	}
}

// TestCalculatePLast 测试影响因子 PLast 计算
func TestCalculatePLast(t *testing.T) {
	tests := []struct {
		name       string
		lastPicked int
		weightP    float64
		expected   float64
	}{
		{
			name:       "LastPicked=0, WeightP=0.2",
			lastPicked: 0,
			weightP:    0.2,
			expected:   (6.0*0.0*0.2 + 6.0*0.2 - 3.0) / 4.0,
		},
		{
			name:       "LastPicked=5, WeightP=0.2",
			lastPicked: 5,
			weightP:    0.2,
			expected:   (6.0*5.0*0.2 + 6.0*0.2 - 3.0) / 4.0,
		},
		{
			name:       "LastPicked=10, WeightP=0.5",
			lastPicked: 10,
			weightP:    0.5,
			expected:   (6.0*10.0*0.5 + 6.0*0.5 - 3.0) / 4.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := CalculatePLast(tt.lastPicked, tt.weightP)
			if math.Abs(result-tt.expected) > 1e-9 {
				t.Errorf("Expected %.6f, got %.6f", tt.expected, result)
			}
		})
	}
}

// TestCalculatePSecondLast 测试影响因子 PSecondLast 计算
func TestCalculatePSecondLast(t *testing.T) {
	tests := []struct {
		name             string
		secondLastPicked int
		weightP          float64
		expected         float64
	}{
		{
			name:             "SecondLastPicked=0, WeightP=0.2",
			secondLastPicked: 0,
			weightP:          0.2,
			expected:         (0.0*0.2 + 0.2 - 1.0) / 4.0,
		},
		{
			name:             "SecondLastPicked=3, WeightP=0.2",
			secondLastPicked: 3,
			weightP:          0.2,
			expected:         (3.0*0.2 + 0.2 - 1.0) / 4.0,
		},
		{
			name:             "SecondLastPicked=8, WeightP=0.5",
			secondLastPicked: 8,
			weightP:          0.5,
			expected:         (8.0*0.5 + 0.5 - 1.0) / 4.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := CalculatePSecondLast(tt.secondLastPicked, tt.weightP)
			if math.Abs(result-tt.expected) > 1e-9 {
				t.Errorf("Expected %.6f, got %.6f", tt.expected, result)
			}
		})
	}
}

// TestCalculateSmoothWeight 测试平滑权重计算
func TestCalculateSmoothWeight(t *testing.T) {
	tests := []struct {
		name        string
		weightP     float64
		pLast       float64
		pSecondLast float64
		expected    float64
	}{
		{
			name:        "WeightP < 1e-6 时返回 0",
			weightP:     1e-7,
			pLast:       1.0,
			pSecondLast: 1.0,
			expected:    0.0,
		},
		{
			name:        "clamp 下限 0.01",
			weightP:     0.5,
			pLast:       -1.0,
			pSecondLast: -1.0,
			expected:    0.5 * 0.01,
		},
		{
			name:        "clamp 上限 100",
			weightP:     0.5,
			pLast:       60.0,
			pSecondLast: 50.0,
			expected:    0.5 * 100.0,
		},
		{
			name:        "正常范围值",
			weightP:     0.2,
			pLast:       1.5,
			pSecondLast: 0.5,
			expected:    0.2 * 2.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := CalculateSmoothWeight(tt.weightP, tt.pLast, tt.pSecondLast)
			if math.Abs(result-tt.expected) > 1e-9 {
				t.Errorf("Expected %.6f, got %.6f", tt.expected, result)
			}
		})
	}
}

// laneState 读取指定行的状态
func laneState(t *testing.T, m *game.Match, lane int) *components.LaneStateComponent {
	t.Helper()
	for _, id := range ecs.GetEntitiesWith1[*components.LaneStateComponent](m.EntityManager) {
		state, _ := ecs.GetComponent[*components.LaneStateComponent](m.EntityManager, id)
		if state.LaneIndex == lane {
			return state
		}
	}
	t.Fatalf("lane %d: state not found", lane)
	return nil
}

// TestLaneAllocatorInitializeLanes 测试行初始化
func TestLaneAllocatorInitializeLanes(t *testing.T) {
	m, _ := newRunningMatch(t)
	allocator := NewLaneAllocator()

	allocator.InitializeLanes(m, 1.0)
	// 重复初始化不会叠加
	allocator.InitializeLanes(m, 1.0)

	ids := ecs.GetEntitiesWith1[*components.LaneStateComponent](m.EntityManager)
	if len(ids) != m.Field.Rows {
		t.Fatalf("Expected %d lane entities, got %d", m.Field.Rows, len(ids))
	}
	for lane := 0; lane < m.Field.Rows; lane++ {
		state := laneState(t, m, lane)
		if state.Weight != 1.0 || state.LastPicked != 0 || state.SecondLastPicked != 0 {
			t.Errorf("Lane %d: unexpected initial state %+v", lane, *state)
		}
	}
}

// TestUpdateLaneCounters 测试选取计数器更新
func TestUpdateLaneCounters(t *testing.T) {
	states := []*components.LaneStateComponent{
		{LaneIndex: 0, Weight: 1},
		{LaneIndex: 1, Weight: 1},
		{LaneIndex: 2, Weight: 0},
	}

	UpdateLaneCounters(states, 1)
	if states[0].LastPicked != 1 || states[0].SecondLastPicked != 1 {
		t.Errorf("Lane 0: expected counters 1/1, got %d/%d", states[0].LastPicked, states[0].SecondLastPicked)
	}
	if states[1].LastPicked != 0 || states[1].SecondLastPicked != 0 {
		t.Errorf("Lane 1: expected counters 0/0, got %d/%d", states[1].LastPicked, states[1].SecondLastPicked)
	}
	if states[2].LastPicked != 0 {
		t.Errorf("Lane 2 with zero weight should not count, got %d", states[2].LastPicked)
	}

	UpdateLaneCounters(states, 1)
	if states[1].SecondLastPicked != 0 {
		t.Errorf("Lane 1: expected SecondLastPicked=0 (from previous LastPicked), got %d", states[1].SecondLastPicked)
	}

	UpdateLaneCounters(states, 0)
	if states[1].LastPicked != 1 || states[0].SecondLastPicked != 2 {
		t.Errorf("unexpected counters after picking lane 0: %+v %+v", *states[0], *states[1])
	}
}

// TestLaneSelectionDistribution 测试行选择分布均匀且不长期重复
func TestLaneSelectionDistribution(t *testing.T) {
	m, _ := newRunningMatch(t)
	allocator := NewLaneAllocator()
	allocator.InitializeLanes(m, 1.0)

	iterations := 1000
	counts := make(map[int]int)
	maxRun, run, last := 0, 0, -1

	for i := 0; i < iterations; i++ {
		lane := allocator.SelectLane(m, nil)
		if lane < 0 || lane >= m.Field.Rows {
			t.Fatalf("lane %d out of range", lane)
		}
		counts[lane]++
		if lane == last {
			run++
		} else {
			run = 1
		}
		if run > maxRun {
			maxRun = run
		}
		last = lane
	}

	// 预期每行约 200 次
	for lane := 0; lane < m.Field.Rows; lane++ {
		if counts[lane] < 100 || counts[lane] > 300 {
			t.Errorf("Lane %d: count=%d, expected ~200", lane, counts[lane])
		}
	}
	if maxRun > 3 {
		t.Errorf("same lane picked %d times in a row", maxRun)
	}
}

// TestSelectLaneDeterministic 测试同一种子得到同样的行序列
func TestSelectLaneDeterministic(t *testing.T) {
	sequence := func() []int {
		m, _ := newRunningMatch(t)
		allocator := NewLaneAllocator()
		lanes := make([]int, 20)
		for i := range lanes {
			lanes[i] = allocator.SelectLane(m, nil)
		}
		return lanes
	}

	a, b := sequence(), sequence()
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("sequences differ at %d: %v vs %v", i, a, b)
		}
	}
}

// TestSelectLaneRestriction 测试行限制
func TestSelectLaneRestriction(t *testing.T) {
	m, _ := newRunningMatch(t)
	allocator := NewLaneAllocator()

	for i := 0; i < 50; i++ {
		if lane := allocator.SelectLane(m, []int{1, 3}); lane != 1 && lane != 3 {
			t.Fatalf("lane %d outside restriction", lane)
		}
	}
	if lane := allocator.SelectLane(m, []int{2}); lane != 2 {
		t.Errorf("single-lane restriction: expected 2, got %d", lane)
	}

	// 全部行权重为 0 时退回均匀随机
	for lane := 0; lane < m.Field.Rows; lane++ {
		laneState(t, m, lane).Weight = 0
	}
	if lane := allocator.SelectLane(m, nil); lane < 0 || lane >= m.Field.Rows {
		t.Errorf("fallback lane %d out of range", lane)
	}
}

// TestFilterLegalLanes 测试合法行过滤
func TestFilterLegalLanes(t *testing.T) {
	all := []*components.LaneStateComponent{
		{LaneIndex: 0, Weight: 1.0},
		{LaneIndex: 1, Weight: 1.0},
		{LaneIndex: 2, Weight: 0.0},
		{LaneIndex: 3, Weight: 1.0},
		{LaneIndex: 7, Weight: 1.0},
	}

	tests := []struct {
		name        string
		restriction []int
		expected    []int
	}{
		{"无行限制", nil, []int{0, 1, 3}},
		{"空行限制", []int{}, []int{0, 1, 3}},
		{"限制为单行", []int{1}, []int{1}},
		{"限制包含权重为零的行", []int{2, 3}, []int{3}},
		{"限制超出场地", []int{7}, []int{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := FilterLegalLanes(all, 5, tt.restriction)
			if len(result) != len(tt.expected) {
				t.Fatalf("Expected %d lanes, got %d", len(tt.expected), len(result))
			}
			for i := range result {
				if result[i].LaneIndex != tt.expected[i] {
					t.Errorf("Index %d: expected lane %d, got %d", i, tt.expected[i], result[i].LaneIndex)
				}
			}
		})
	}
}
