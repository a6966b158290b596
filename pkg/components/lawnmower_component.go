package components

// LawnmowerComponent 除草车组件
// 每行一台, 只能使用一次。
type LawnmowerComponent struct {
	Lane        int     // 所在行(0 起)
	Available   bool    // 是否仍可触发
	TriggeredAt float64 // 触发时的游戏时间
}
