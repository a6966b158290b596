package components

// LaneStateComponent 行状态组件
//
// 用于平滑权重行分配算法，存储每行的权重和选取历史
type LaneStateComponent struct {
	LaneIndex        int     // 行号（0 起）
	Weight           float64 // 行权重, 0 表示不出怪
	LastPicked       int     // 距离上次被选取的计数器
	SecondLastPicked int     // 距离上上次被选取的计数器
}
