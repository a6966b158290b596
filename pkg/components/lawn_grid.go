package components

import "github.com/gonewx/lawncore/pkg/ecs"

// LawnGridComponent 标识草坪网格管理器实体
// 用于跟踪哪些格子已被植物占用
//
// Occupancy 是一个二维切片，存储每个格子的占用状态
// [row][col] = EntityID，其中 0 表示空格子
type LawnGridComponent struct {
	Occupancy [][]ecs.EntityID
}

// NewLawnGridComponent 创建指定尺寸的空网格
func NewLawnGridComponent(rows, cols int) *LawnGridComponent {
	occ := make([][]ecs.EntityID, rows)
	for r := range occ {
		occ[r] = make([]ecs.EntityID, cols)
	}
	return &LawnGridComponent{Occupancy: occ}
}
