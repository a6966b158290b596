package mcp

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/gonewx/lawncore/pkg/battle"
	"github.com/gonewx/lawncore/pkg/config"
	"github.com/gonewx/lawncore/pkg/entities"
	"github.com/gonewx/lawncore/pkg/game"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	cfg, err := config.LoadDefault()
	if err != nil {
		t.Fatalf("LoadDefault failed: %v", err)
	}
	return NewServer(battle.New(cfg, battle.Options{Seed: 5}), "test")
}

func call(name string, args map[string]interface{}) mcp.CallToolRequest {
	return mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name:      name,
			Arguments: args,
		},
	}
}

func textOf(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	if result == nil || len(result.Content) == 0 {
		t.Fatal("empty tool result")
	}
	content, ok := result.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatalf("content is %T, want TextContent", result.Content[0])
	}
	return content.Text
}

func decode(t *testing.T, result *mcp.CallToolResult, v interface{}) {
	t.Helper()
	if result.IsError {
		t.Fatalf("tool error: %s", textOf(t, result))
	}
	if err := json.Unmarshal([]byte(textOf(t, result)), v); err != nil {
		t.Fatalf("bad JSON: %v", err)
	}
}

func start(t *testing.T, s *Server, plants ...interface{}) {
	t.Helper()
	result, _ := s.handleStartMatch(context.Background(), call("start_match", map[string]interface{}{"plants": plants}))
	var st status
	decode(t, result, &st)
	if !st.Result.OK || st.Phase != game.PhaseRunning {
		t.Fatalf("start_match: %+v", st)
	}
}

func TestRules(t *testing.T) {
	s := newTestServer(t)

	result, err := s.handleRules(context.Background(), call("rules", nil))
	if err != nil {
		t.Fatalf("handleRules error: %v", err)
	}
	var rules struct {
		Plants []struct {
			Plant string `json:"plant"`
			Cost  int    `json:"cost"`
		} `json:"plants"`
		Rows int `json:"rows"`
		Cols int `json:"cols"`
	}
	decode(t, result, &rules)

	if rules.Rows != 5 || rules.Cols != 9 {
		t.Errorf("field = %dx%d, want 5x9", rules.Rows, rules.Cols)
	}
	costs := map[string]int{}
	for _, p := range rules.Plants {
		costs[p.Plant] = p.Cost
	}
	if costs["peashooter"] != 100 || costs["sunflower"] != 50 {
		t.Errorf("costs = %v", costs)
	}
}

func TestPlaceDefender(t *testing.T) {
	s := newTestServer(t)
	start(t, s, "peashooter", "sunflower")

	tests := []struct {
		name    string
		args    map[string]interface{}
		wantErr string
		wantSun int
	}{
		{"plant sunflower", map[string]interface{}{"plant": "sunflower", "row": float64(2), "col": float64(0)}, "", 100},
		{"occupied cell", map[string]interface{}{"plant": "peashooter", "row": float64(2), "col": float64(0)}, "rejected", 0},
		{"missing col", map[string]interface{}{"plant": "peashooter", "row": float64(1)}, "missing argument", 0},
		{"bad row type", map[string]interface{}{"plant": "peashooter", "row": "two", "col": float64(1)}, "integer", 0},
		{"unknown plant", map[string]interface{}{"plant": "cactus", "row": float64(1), "col": float64(1)}, "unknown plant", 0},
		{"plant peashooter", map[string]interface{}{"plant": "peashooter", "row": float64(1), "col": float64(1)}, "", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := s.handlePlace(context.Background(), call("place_defender", tt.args))
			if err != nil {
				t.Fatalf("handler error: %v", err)
			}
			if tt.wantErr != "" {
				if !result.IsError || !strings.Contains(textOf(t, result), tt.wantErr) {
					t.Errorf("result = %q, want error containing %q", textOf(t, result), tt.wantErr)
				}
				return
			}
			var st status
			decode(t, result, &st)
			if st.Sun != tt.wantSun {
				t.Errorf("sun = %d, want %d", st.Sun, tt.wantSun)
			}
		})
	}
}

func TestAdvance(t *testing.T) {
	s := newTestServer(t)

	result, _ := s.handleAdvance(context.Background(), call("advance", map[string]interface{}{"duration_ms": float64(1000)}))
	if !result.IsError {
		t.Fatal("advance before start should fail")
	}

	start(t, s, "peashooter")

	result, _ = s.handleAdvance(context.Background(), call("advance", map[string]interface{}{"duration_ms": float64(0)}))
	if !result.IsError {
		t.Error("zero duration should fail")
	}

	result, _ = s.handleAdvance(context.Background(), call("advance", map[string]interface{}{"duration_ms": float64(9000)}))
	var report advanceReport
	decode(t, result, &report)

	if report.Advanced != 9000 {
		t.Errorf("advanced = %v, want 9000", report.Advanced)
	}
	if report.Wave != 1 {
		t.Errorf("wave = %d, want 1", report.Wave)
	}
	if report.Zombies == 0 {
		t.Error("first wave should have spawned zombies")
	}
	var waveStarted bool
	for _, ev := range report.Events {
		if ev.Type == game.EventDamageApplied {
			t.Error("damage events should be filtered")
		}
		if ev.Type == game.EventWaveStarted {
			waveStarted = true
		}
	}
	if !waveStarted {
		t.Error("missing WaveStarted event")
	}
}

func TestCollectPellet(t *testing.T) {
	s := newTestServer(t)
	start(t, s, "sunflower")

	m := s.battle.Match()
	first := entities.NewPlantSunEntity(m, 200, 200)
	entities.NewPlantSunEntity(m, 300, 300)
	entities.NewPlantSunEntity(m, 400, 300)

	result, _ := s.handleCollect(context.Background(), call("collect_pellet", map[string]interface{}{"id": float64(first)}))
	var st status
	decode(t, result, &st)
	if !st.Result.OK {
		t.Errorf("collect result = %+v", st.Result)
	}

	result, _ = s.handleCollect(context.Background(), call("collect_pellet", map[string]interface{}{"id": float64(first)}))
	if !result.IsError {
		t.Error("collecting the same pellet twice should be rejected")
	}

	result, _ = s.handleCollect(context.Background(), call("collect_pellet", nil))
	var all map[string]int
	decode(t, result, &all)
	if all["collected"] != 2 {
		t.Errorf("collected = %d, want 2", all["collected"])
	}
	if len(s.battle.Snapshot().Suns) != 0 {
		t.Error("pellets left on the lawn")
	}
}

func TestSimpleCommands(t *testing.T) {
	s := newTestServer(t)
	start(t, s, "peashooter")

	tests := []struct {
		action    string
		wantPhase game.Phase
		paused    bool
	}{
		{"pause", game.PhaseRunning, true},
		{"resume", game.PhaseRunning, false},
		{"quit", game.PhaseQuit, false},
	}

	for _, tt := range tests {
		result, err := s.simpleCommand(tt.action)(context.Background(), call(tt.action, nil))
		if err != nil {
			t.Fatalf("%s: %v", tt.action, err)
		}
		var st status
		decode(t, result, &st)
		if st.Phase != tt.wantPhase || st.Paused != tt.paused {
			t.Errorf("%s: phase=%s paused=%v", tt.action, st.Phase, st.Paused)
		}
	}
}
