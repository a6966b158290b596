package systems

import (
	"testing"

	"github.com/gonewx/lawncore/pkg/components"
	"github.com/gonewx/lawncore/pkg/config"
	"github.com/gonewx/lawncore/pkg/ecs"
	"github.com/gonewx/lawncore/pkg/entities"
	"github.com/gonewx/lawncore/pkg/game"
	"github.com/gonewx/lawncore/pkg/types"
)

// recorder 记录事件
type recorder struct {
	events []game.Event
}

func (r *recorder) OnEvent(ev game.Event) {
	r.events = append(r.events, ev)
}

func (r *recorder) destroyed(id ecs.EntityID) (types.DestroyCause, bool) {
	for _, ev := range r.events {
		if ev.Type == game.EventEntityDestroyed && ev.Entity == id {
			return ev.Cause, true
		}
	}
	return types.CauseNone, false
}

// newRunningMatch 创建处于运行阶段的测试对局
func newRunningMatch(t *testing.T) (*game.Match, *recorder) {
	t.Helper()
	cfg, err := config.LoadDefault()
	if err != nil {
		t.Fatalf("LoadDefault failed: %v", err)
	}
	rec := &recorder{}
	d := game.NewDispatcher()
	d.SubscribeAll(rec)
	m := game.NewMatch(cfg, 1, d, nil)
	m.Phase = game.PhaseRunning
	return m, rec
}

func addZombie(t *testing.T, m *game.Match, zt types.ZombieType, lane int, x float64) (ecs.EntityID, *components.ZombieComponent) {
	t.Helper()
	id, err := entities.NewZombieEntity(m, zt, lane)
	if err != nil {
		t.Fatalf("NewZombieEntity failed: %v", err)
	}
	zombie, _ := ecs.GetComponent[*components.ZombieComponent](m.EntityManager, id)
	zombie.X = x
	return id, zombie
}

func addPlant(t *testing.T, m *game.Match, grid *LawnGridSystem, pt types.PlantType, row, col int) ecs.EntityID {
	t.Helper()
	id, err := entities.NewPlantEntity(m, pt, row, col)
	if err != nil {
		t.Fatalf("NewPlantEntity failed: %v", err)
	}
	if err := grid.OccupyCell(m, row, col, id); err != nil {
		t.Fatalf("OccupyCell failed: %v", err)
	}
	return id
}

func healthOf(m *game.Match, id ecs.EntityID) int {
	health, _ := ecs.GetComponent[*components.HealthComponent](m.EntityManager, id)
	return health.CurrentHealth
}

// drainAll 处理所有已到期的定时事件
func drainAll(m *game.Match, handlers map[game.Effect]func(*game.Match, game.TimedEvent)) {
	for _, clock := range []game.Clock{game.ClockWall, game.ClockGame} {
		for {
			ev, ok := m.Timers.PopDue(clock, m.Now(clock))
			if !ok {
				break
			}
			if h, ok := handlers[ev.Effect]; ok {
				h(m, ev)
			}
		}
	}
}
