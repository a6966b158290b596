package systems

import (
	"math"
	"testing"

	"github.com/gonewx/lawncore/pkg/components"
	"github.com/gonewx/lawncore/pkg/ecs"
	"github.com/gonewx/lawncore/pkg/entities"
	"github.com/gonewx/lawncore/pkg/game"
)

// TestSunFallsAndLands 测试阳光匀速下落并停在目标高度
func TestSunFallsAndLands(t *testing.T) {
	m, _ := newRunningMatch(t)
	movement := NewSunMovementSystem()

	duration := m.Config.Rules.Economy.AmbientFallDuration
	id := entities.NewSkySunEntity(m, 300, -60, 240)
	sun, _ := ecs.GetComponent[*components.SunComponent](m.EntityManager, id)

	movement.Update(m, duration/2)
	if sun.State != components.SunFalling || math.Abs(sun.Y-90) > 1e-9 {
		t.Errorf("expected falling at y=90, got %v at %v", sun.State, sun.Y)
	}
	movement.Update(m, duration)
	if sun.State != components.SunLanded || sun.Y != 240 {
		t.Errorf("expected landed at 240, got %v at %v", sun.State, sun.Y)
	}
}

// TestAmbientSunSchedule 测试天空阳光按间隔生成
func TestAmbientSunSchedule(t *testing.T) {
	m, _ := newRunningMatch(t)
	spawner := NewSunSpawnSystem()
	handlers := map[game.Effect]func(*game.Match, game.TimedEvent){
		game.EffectAmbientSun: spawner.HandleAmbient,
	}

	spawner.Begin(m)
	interval := m.Config.Rules.Economy.AmbientSunInterval

	m.GameTime = interval - 1
	drainAll(m, handlers)
	if n := len(ecs.GetEntitiesWith1[*components.SunComponent](m.EntityManager)); n != 0 {
		t.Fatalf("no sun expected before the interval, got %d", n)
	}

	m.GameTime = interval * 2
	drainAll(m, handlers)
	suns := ecs.GetEntitiesWith1[*components.SunComponent](m.EntityManager)
	if len(suns) != 2 {
		t.Fatalf("expected 2 suns after two intervals, got %d", len(suns))
	}
	for _, id := range suns {
		sun, _ := ecs.GetComponent[*components.SunComponent](m.EntityManager, id)
		if sun.X < 40 || sun.X > m.Field.Width()-40 {
			t.Errorf("sun x %v outside the field margins", sun.X)
		}
		if sun.TargetY < m.Field.Height()*0.25 || sun.TargetY > m.Field.Height()*0.75 {
			t.Errorf("sun target %v outside the middle band", sun.TargetY)
		}
	}
}

// TestCollectRequiresRunningMatch 测试对局结束后不能收集
func TestCollectRequiresRunningMatch(t *testing.T) {
	m, _ := newRunningMatch(t)
	collector := NewSunCollectionSystem()

	id := entities.NewPlantSunEntity(m, 100, 100)
	m.End(game.OutcomeQuit)
	if collector.Collect(m, id) {
		t.Error("collecting after the match ended should fail")
	}

	collector.HandleCollect(m, game.TimedEvent{Amount: 25})
	if m.Sun != m.Config.Rules.Economy.StartingSun {
		t.Error("pending collection must not pay out after the match ended")
	}
}
