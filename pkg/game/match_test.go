package game

import (
	"testing"

	"github.com/gonewx/lawncore/pkg/config"
)

func newTestMatch(t *testing.T) (*Match, *[]Event) {
	t.Helper()
	cfg, err := config.LoadDefault()
	if err != nil {
		t.Fatalf("LoadDefault failed: %v", err)
	}
	var events []Event
	d := NewDispatcher()
	d.SubscribeAll(ListenerFunc(func(ev Event) { events = append(events, ev) }))
	return NewMatch(cfg, 1, d, nil), &events
}

// TestSpendSunNeverNegative 测试阳光不会变为负数
func TestSpendSunNeverNegative(t *testing.T) {
	m, _ := newTestMatch(t)

	if !m.SpendSun(100) || m.Sun != 50 {
		t.Fatalf("expected 50 sun after spending 100, got %d", m.Sun)
	}
	if m.SpendSun(75) {
		t.Error("spending more than available should fail")
	}
	if m.Sun != 50 {
		t.Errorf("failed spend should not change sun, got %d", m.Sun)
	}
	if m.SpendSun(-10) {
		t.Error("negative spend should be rejected")
	}
}

// TestAddSunTracksCollected 测试收集累计
func TestAddSunTracksCollected(t *testing.T) {
	m, events := newTestMatch(t)
	m.AddSun(25)
	m.AddSun(0)
	if m.Sun != 175 || m.SunCollected != 25 {
		t.Errorf("expected 175/25, got %d/%d", m.Sun, m.SunCollected)
	}
	if len(*events) != 1 || (*events)[0].Type != EventSunChanged {
		t.Errorf("expected one SunChanged event, got %v", *events)
	}
}

// TestAnnouncementSequence 测试旧公告的清除不影响新公告
func TestAnnouncementSequence(t *testing.T) {
	m, _ := newTestMatch(t)
	m.Announce("Wave 1")
	first := m.bannerSeq
	m.Announce("FINAL WAVE!")

	m.ClearBanner(first)
	if m.Announcement != "FINAL WAVE!" {
		t.Errorf("stale clear removed newer banner: %q", m.Announcement)
	}
	m.ClearBanner(m.bannerSeq)
	if m.Announcement != "" {
		t.Error("banner should be cleared")
	}
}

// TestEndIsIdempotent 测试结束只生效一次
func TestEndIsIdempotent(t *testing.T) {
	m, events := newTestMatch(t)
	m.Phase = PhaseRunning
	m.ZombiesKilled = 3

	m.End(OutcomeDefeat)
	m.End(OutcomeVictory)

	if m.Phase != PhaseDefeat {
		t.Errorf("expected defeat, got %s", m.Phase)
	}
	ended := 0
	for _, ev := range *events {
		if ev.Type == EventMatchEnded {
			ended++
			if ev.Summary == nil || ev.Summary.ZombiesKilled != 3 {
				t.Errorf("unexpected summary %+v", ev.Summary)
			}
		}
	}
	if ended != 1 {
		t.Errorf("expected one MatchEnded event, got %d", ended)
	}
}

// TestNewMatchGrid 测试网格尺寸来自配置
func TestNewMatchGrid(t *testing.T) {
	m, _ := newTestMatch(t)
	grid := m.Grid()
	if grid == nil || len(grid.Occupancy) != 5 || len(grid.Occupancy[0]) != 9 {
		t.Fatal("grid should be 5x9")
	}
	if m.WaveIndex != -1 || m.Director != DirectorIdle {
		t.Error("new match should be idle before the first wave")
	}
}
