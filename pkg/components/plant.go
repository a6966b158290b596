package components

import "github.com/gonewx/lawncore/pkg/types"

// PlantComponent 标识实体为植物
// 包含植物类型和所在格子位置信息
//
// 此组件用于标记场景中已种植的植物实体，
// 并记录该植物在草坪网格中的位置
type PlantComponent struct {
	// Type 植物类型
	Type types.PlantType
	// Class 行为分类, 创建时由配置决定, 之后不变
	Class types.PlantClass
	// Row 所在草坪行 (0 起, 从上到下)
	Row int
	// Col 所在草坪列 (0 起, 从左到右)
	Col int

	// Armed 地雷是否已武装(非地雷类植物始终为 true)
	Armed bool
	// Busy 大嘴花正在咀嚼
	Busy bool
	// Detonating 已引爆, 等待移除
	Detonating bool
	// LastAction 上一次行动的游戏时间(毫秒)
	LastAction float64
}
