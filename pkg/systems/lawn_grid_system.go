package systems

import (
	"fmt"

	"github.com/gonewx/lawncore/pkg/ecs"
	"github.com/gonewx/lawncore/pkg/game"
)

// LawnGridSystem 管理草坪网格的占用状态
// 负责跟踪哪些格子已被植物占用，并提供查询和更新方法
//
// 每个格子最多一个植物; 越界坐标一律视为"已占用", 防止种植。
type LawnGridSystem struct{}

// NewLawnGridSystem 创建草坪网格系统
func NewLawnGridSystem() *LawnGridSystem {
	return &LawnGridSystem{}
}

// Occupant 返回格子中的植物
// 参数:
//   - m: 对局上下文
//   - row: 行索引
//   - col: 列索引
//
// 返回:
//   - ecs.EntityID: 占用该格子的植物实体
//   - bool: 格子为空或越界时返回 false
func (s *LawnGridSystem) Occupant(m *game.Match, row, col int) (ecs.EntityID, bool) {
	if !m.Field.InBounds(row, col) {
		return 0, false
	}
	grid := m.Grid()
	if grid == nil {
		return 0, false
	}
	id := grid.Occupancy[row][col]
	return id, id != 0
}

// IsOccupied 检查指定格子是否已被占用
func (s *LawnGridSystem) IsOccupied(m *game.Match, row, col int) bool {
	if !m.Field.InBounds(row, col) {
		return true // 无效位置视为"已占用"，防止种植
	}
	_, occupied := s.Occupant(m, row, col)
	return occupied
}

// OccupyCell 标记指定格子为被占用状态
// 返回:
//   - error: 如果位置无效或格子已被占用，返回错误
func (s *LawnGridSystem) OccupyCell(m *game.Match, row, col int, plantEntity ecs.EntityID) error {
	if !m.Field.InBounds(row, col) {
		return fmt.Errorf("invalid grid position: row=%d, col=%d (grid is %dx%d)", row, col, m.Field.Rows, m.Field.Cols)
	}

	grid := m.Grid()
	if grid == nil {
		return fmt.Errorf("failed to get LawnGridComponent from entity %d", m.GridEntity)
	}

	if grid.Occupancy[row][col] != 0 {
		return fmt.Errorf("grid cell (%d, %d) is already occupied by entity %d", row, col, grid.Occupancy[row][col])
	}

	grid.Occupancy[row][col] = plantEntity
	return nil
}

// ReleaseCell 清空指定格子的占用状态
// 返回:
//   - error: 如果位置无效，返回错误
func (s *LawnGridSystem) ReleaseCell(m *game.Match, row, col int) error {
	if !m.Field.InBounds(row, col) {
		return fmt.Errorf("invalid grid position: row=%d, col=%d (grid is %dx%d)", row, col, m.Field.Rows, m.Field.Cols)
	}

	grid := m.Grid()
	if grid == nil {
		return fmt.Errorf("failed to get LawnGridComponent from entity %d", m.GridEntity)
	}

	grid.Occupancy[row][col] = 0
	return nil
}

// ReleaseEntity 仅当格子仍由该实体占用时才清空
// 用于延迟移除, 避免误清后来种下的植物。
func (s *LawnGridSystem) ReleaseEntity(m *game.Match, row, col int, plantEntity ecs.EntityID) {
	if id, ok := s.Occupant(m, row, col); ok && id == plantEntity {
		_ = s.ReleaseCell(m, row, col)
	}
}
