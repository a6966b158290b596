package game

import "testing"

// TestTimerQueueOrder 测试按触发时间和调度顺序弹出
func TestTimerQueueOrder(t *testing.T) {
	q := NewTimerQueue()
	q.Schedule(TimedEvent{FireAt: 300, Clock: ClockGame, Effect: EffectSettle, Entity: 1})
	q.Schedule(TimedEvent{FireAt: 100, Clock: ClockGame, Effect: EffectFuse, Entity: 2})
	q.Schedule(TimedEvent{FireAt: 100, Clock: ClockGame, Effect: EffectArm, Entity: 3})
	q.Schedule(TimedEvent{FireAt: 50, Clock: ClockWall, Effect: EffectCollect})

	if q.Len() != 4 {
		t.Fatalf("expected 4 events, got %d", q.Len())
	}

	var got []Effect
	for {
		ev, ok := q.PopDue(ClockGame, 200)
		if !ok {
			break
		}
		got = append(got, ev.Effect)
	}
	if len(got) != 2 || got[0] != EffectFuse || got[1] != EffectArm {
		t.Errorf("expected [fuse arm], got %v", got)
	}

	// 墙钟与游戏时钟互不影响
	if _, ok := q.PopDue(ClockGame, 299); ok {
		t.Error("settle should not be due yet")
	}
	if ev, ok := q.PopDue(ClockWall, 50); !ok || ev.Effect != EffectCollect {
		t.Error("wall event should be due")
	}
}

// TestTimerQueueCancel 测试取消
func TestTimerQueueCancel(t *testing.T) {
	q := NewTimerQueue()
	for i := 0; i < 5; i++ {
		q.Schedule(TimedEvent{FireAt: float64(i * 10), Clock: ClockWall, Effect: EffectSpawn})
	}
	q.Schedule(TimedEvent{FireAt: 5, Clock: ClockGame, Effect: EffectVictory})

	if n := q.Count(func(ev TimedEvent) bool { return ev.Effect == EffectSpawn }); n != 5 {
		t.Errorf("expected 5 spawns, got %d", n)
	}
	if n := q.Cancel(func(ev TimedEvent) bool { return ev.Effect == EffectSpawn && ev.FireAt >= 20 }); n != 3 {
		t.Errorf("expected 3 cancelled, got %d", n)
	}

	ev, ok := q.PopDue(ClockWall, 100)
	if !ok || ev.FireAt != 0 {
		t.Errorf("heap order broken after cancel: %+v", ev)
	}
	ev, ok = q.PopDue(ClockWall, 100)
	if !ok || ev.FireAt != 10 {
		t.Errorf("heap order broken after cancel: %+v", ev)
	}
	if _, ok := q.PopDue(ClockWall, 100); ok {
		t.Error("no wall events should remain")
	}
}
