package battle

import (
	"context"
	"testing"
	"time"

	"github.com/gonewx/lawncore/pkg/game"
	"github.com/gonewx/lawncore/pkg/types"
)

// TestRunnerSerialisesCommands 测试命令在 tick goroutine 上执行
func TestRunnerSerialisesCommands(t *testing.T) {
	b, _ := newTestBattle(t, nil)
	r := NewRunner(b, 200)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go r.Run(ctx)

	var started bool
	if !r.Do(func(b *Battle) { started = b.StartMatch([]types.PlantType{types.PlantSunflower}) }) {
		t.Fatal("Do should run while the runner is active")
	}
	if !started {
		t.Fatal("StartMatch via runner failed")
	}

	deadline := time.Now().Add(2 * time.Second)
	for {
		var now float64
		r.Do(func(b *Battle) { now = b.Match().WallTime })
		if now > 0 {
			break
		}
		if time.Now().After(deadline) {
			t.Fatal("runner did not tick")
		}
		time.Sleep(10 * time.Millisecond)
	}

	r.Stop()
	if r.Do(func(*Battle) {}) {
		t.Error("Do after Stop should return false")
	}
}

// TestRunnerStopsOnContextCancel 测试取消 context 退出循环
func TestRunnerStopsOnContextCancel(t *testing.T) {
	b, _ := newTestBattle(t, nil)
	r := NewRunner(b, 0)

	ctx, cancel := context.WithCancel(context.Background())
	go r.Run(ctx)
	cancel()

	select {
	case <-r.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("runner did not stop after cancel")
	}
	if b.Match().Phase != game.PhaseIdle {
		t.Errorf("battle should be untouched, got %s", b.Match().Phase)
	}
}
