package systems

import (
	"github.com/gonewx/lawncore/pkg/components"
	"github.com/gonewx/lawncore/pkg/ecs"
	"github.com/gonewx/lawncore/pkg/game"
)

// SunMovementSystem 阳光下落
// 下落中的阳光匀速移动到目标高度后静止。
type SunMovementSystem struct{}

// NewSunMovementSystem 创建阳光移动系统
func NewSunMovementSystem() *SunMovementSystem {
	return &SunMovementSystem{}
}

// Update 推进所有下落中的阳光
func (s *SunMovementSystem) Update(m *game.Match, dt float64) {
	em := m.EntityManager
	for _, id := range ecs.GetEntitiesWith1[*components.SunComponent](em) {
		sun, _ := ecs.GetComponent[*components.SunComponent](em, id)
		if sun.State != components.SunFalling {
			continue
		}
		sun.Y += sun.FallSpeed * dt
		if sun.Y >= sun.TargetY {
			sun.Y = sun.TargetY
			sun.State = components.SunLanded
		}
	}
}
