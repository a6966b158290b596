package entities

import (
	"github.com/gonewx/lawncore/pkg/components"
	"github.com/gonewx/lawncore/pkg/ecs"
	"github.com/gonewx/lawncore/pkg/game"
)

// producerFallDuration 向日葵阳光的短距离下落耗时(毫秒)
const producerFallDuration = 400.0

// NewSkySunEntity 创建从天空掉落的阳光实体
// 阳光从 startY 匀速下落到 targetY, 耗时 ambientFallDuration。
//
// 参数:
//   - m: 对局上下文
//   - x: 水平坐标
//   - startY: 起始Y坐标(通常在屏幕上方)
//   - targetY: 落地Y坐标
func NewSkySunEntity(m *game.Match, x, startY, targetY float64) ecs.EntityID {
	duration := m.Config.Rules.Economy.AmbientFallDuration
	return newSunEntity(m, components.SunFromSky, x, startY, targetY, (targetY-startY)/duration)
}

// NewPlantSunEntity 创建向日葵产出的阳光实体
// 只在格子内短距离下落。
func NewPlantSunEntity(m *game.Match, x, y float64) ecs.EntityID {
	distance := m.Config.Rules.Economy.ProducerFallDistance
	return newSunEntity(m, components.SunFromPlant, x, y, y+distance, distance/producerFallDuration)
}

func newSunEntity(m *game.Match, source components.SunSource, x, startY, targetY, fallSpeed float64) ecs.EntityID {
	em := m.EntityManager
	entityID := em.CreateEntity()

	state := components.SunFalling
	if fallSpeed <= 0 || targetY <= startY {
		state = components.SunLanded
		targetY = startY
	}

	ecs.AddComponent(em, entityID, &components.SunComponent{
		State:     state,
		Source:    source,
		X:         x,
		Y:         startY,
		TargetY:   targetY,
		FallSpeed: fallSpeed,
	})
	ecs.AddComponent(em, entityID, &components.LifetimeComponent{
		MaxLifetime: m.Config.Rules.Economy.SunLifetime,
	})

	m.Emit(game.Event{Type: game.EventEntityCreated, Entity: entityID, Kind: game.KindSun})
	return entityID
}
