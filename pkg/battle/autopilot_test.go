package battle

import (
	"testing"

	"github.com/gonewx/lawncore/pkg/game"
	"github.com/gonewx/lawncore/pkg/types"
)

// TestAutopilotPlays 测试自动玩家会收集阳光、种植并守住第一波
func TestAutopilotPlays(t *testing.T) {
	b, log := newTestBattle(t, nil)
	b.StartMatch([]types.PlantType{types.PlantSunflower, types.PlantPeashooter, types.PlantCherryBomb})
	m := b.Match()
	pilot := NewAutopilot()

	for m.Running() && m.WavesCleared == 0 && m.GameTime < 90000 {
		pilot.Step(b)
		b.Tick(50)
	}

	if m.Phase != game.PhaseRunning {
		t.Fatalf("autopilot should survive the first wave, match ended with %s", m.Outcome)
	}
	if m.WavesCleared != 1 {
		t.Fatalf("expected the first wave cleared within 90s, cleared %d at %.0fms", m.WavesCleared, m.GameTime)
	}
	if m.ZombiesKilled < b.Config().Level.Waves[0].TotalZombies() {
		t.Errorf("expected every first-wave zombie killed, got %d", m.ZombiesKilled)
	}
	if m.SunCollected == 0 {
		t.Error("autopilot should collect ambient sun")
	}

	planted := 0
	for _, ev := range log.events {
		if ev.Type == game.EventEntityCreated && ev.Kind == game.KindPlant {
			planted++
		}
	}
	if planted < 2 {
		t.Errorf("autopilot should plant several defenders, planted %d", planted)
	}

	if outcome := Play(b, pilot, 50, m.GameTime+1000); outcome != game.OutcomeNone {
		t.Errorf("Play should stop at the time limit without an outcome, got %s", outcome)
	}
}

// TestPlayStopsWhenPaused 测试暂停时 Play 直接返回
func TestPlayStopsWhenPaused(t *testing.T) {
	b, _ := newTestBattle(t, nil)
	b.StartMatch([]types.PlantType{types.PlantSunflower})
	b.Pause()

	if outcome := Play(b, NewAutopilot(), 50, 1000); outcome != game.OutcomeNone {
		t.Errorf("expected no outcome, got %s", outcome)
	}
	if b.Match().WallTime != 0 {
		t.Error("Play must not tick a paused battle")
	}
}
