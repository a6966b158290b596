package entities

import (
	"fmt"

	"github.com/gonewx/lawncore/pkg/components"
	"github.com/gonewx/lawncore/pkg/ecs"
	"github.com/gonewx/lawncore/pkg/game"
	"github.com/gonewx/lawncore/pkg/types"
)

// NewPlantEntity 创建植物实体
// 只负责组装组件, 不检查阳光、冷却或格子占用, 这些由调用方完成。
//
// 参数:
//   - m: 对局上下文
//   - plantType: 植物类型
//   - row: 网格行索引
//   - col: 网格列索引
//
// 返回:
//   - ecs.EntityID: 创建的植物实体ID，如果失败返回 0
//   - error: 植物类型没有配置时返回错误
func NewPlantEntity(m *game.Match, plantType types.PlantType, row, col int) (ecs.EntityID, error) {
	stats, ok := m.Config.Plant(plantType)
	if !ok {
		return 0, fmt.Errorf("no stats for plant type %s", plantType)
	}

	em := m.EntityManager
	entityID := em.CreateEntity()

	ecs.AddComponent(em, entityID, &components.PlantComponent{
		Type:       plantType,
		Class:      stats.Class,
		Row:        row,
		Col:        col,
		Armed:      stats.Class != types.ClassMine,
		LastAction: m.GameTime,
	})
	ecs.AddComponent(em, entityID, &components.HealthComponent{
		CurrentHealth: stats.Health,
		MaxHealth:     stats.Health,
	})

	m.Emit(game.Event{Type: game.EventEntityCreated, Entity: entityID, Kind: game.KindPlant})
	return entityID, nil
}
