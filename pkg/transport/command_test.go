package transport

import (
	"testing"

	"github.com/gonewx/lawncore/pkg/battle"
	"github.com/gonewx/lawncore/pkg/config"
	"github.com/gonewx/lawncore/pkg/types"
)

func newBattle(t *testing.T) *battle.Battle {
	t.Helper()
	cfg, err := config.LoadDefault()
	if err != nil {
		t.Fatalf("LoadDefault failed: %v", err)
	}
	return battle.New(cfg, battle.Options{Seed: 5})
}

// TestExecuteSequence 测试一组命令的执行结果
func TestExecuteSequence(t *testing.T) {
	b := newBattle(t)

	tests := []struct {
		name    string
		cmd     Command
		ok      bool
		wantErr bool
	}{
		{"place before start", Command{Action: ActionPlace, Plant: "peashooter"}, false, false},
		{"start with unknown plant", Command{Action: ActionStart, Plants: []string{"cactus"}}, false, true},
		{"start", Command{Action: ActionStart, Plants: []string{"peashooter", "sunflower"}}, true, false},
		{"place", Command{Action: ActionPlace, Plant: "peashooter", Row: 2, Col: 0}, true, false},
		{"place occupied", Command{Action: ActionPlace, Plant: "sunflower", Row: 2, Col: 0}, false, false},
		{"place unknown", Command{Action: ActionPlace, Plant: "cactus", Row: 1, Col: 0}, false, true},
		{"pause", Command{Action: ActionPause}, true, false},
		{"pause twice", Command{Action: ActionPause}, false, false},
		{"resume", Command{Action: ActionResume}, true, false},
		{"clear", Command{Action: ActionClear, Row: 2, Col: 0}, true, false},
		{"clear empty", Command{Action: ActionClear, Row: 2, Col: 0}, false, false},
		{"collect missing", Command{Action: ActionCollect, ID: 9999}, false, false},
		{"shovel", Command{Action: ActionShovel}, true, false},
		{"snapshot", Command{Action: ActionSnapshot}, true, false},
		{"bogus", Command{Action: "dance"}, false, true},
		{"quit", Command{Action: ActionQuit}, true, false},
		{"restart", Command{Action: ActionRestart}, true, false},
	}
	for _, tt := range tests {
		res := Execute(b, tt.cmd)
		if res.OK != tt.ok {
			t.Errorf("%s: ok = %v, want %v", tt.name, res.OK, tt.ok)
		}
		if (res.Error != "") != tt.wantErr {
			t.Errorf("%s: error = %q, wantErr %v", tt.name, res.Error, tt.wantErr)
		}
		if res.Action != tt.cmd.Action {
			t.Errorf("%s: action = %q", tt.name, res.Action)
		}
	}
}

// TestParseLoadout 测试卡组解析
func TestParseLoadout(t *testing.T) {
	loadout, err := ParseLoadout([]string{"wallnut", "cherrybomb"})
	if err != nil {
		t.Fatalf("ParseLoadout failed: %v", err)
	}
	if len(loadout) != 2 || loadout[0] != types.PlantWallnut || loadout[1] != types.PlantCherryBomb {
		t.Errorf("loadout = %v", loadout)
	}
	if _, err := ParseLoadout([]string{"wallnut", ""}); err == nil {
		t.Error("empty name should fail")
	}
}
