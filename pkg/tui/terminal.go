package tui

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/gonewx/lawncore/pkg/battle"
	"github.com/gonewx/lawncore/pkg/game"
	"github.com/gonewx/lawncore/pkg/types"
)

// Options 终端前端参数
type Options struct {
	// Loadout 开局卡组
	Loadout []types.PlantType
	// Autopilot 由自动驾驶代为操作
	Autopilot bool
	// TickRate 每秒帧数, 为 0 时 30
	TickRate int
}

// Terminal 终端前端
// 战斗只在 Run 所在的 goroutine 上推进; 输入事件经 channel 转交。
type Terminal struct {
	screen  tcell.Screen
	battle  *battle.Battle
	view    *View
	cursor  Cursor
	loadout []types.PlantType
	pilot   *battle.Autopilot
	rate    int
}

// New 创建终端前端
func New(screen tcell.Screen, b *battle.Battle, opts Options) *Terminal {
	rate := opts.TickRate
	if rate <= 0 {
		rate = 30
	}
	t := &Terminal{
		screen:  screen,
		battle:  b,
		view:    NewView(b.Config().Rules.Field),
		loadout: append([]types.PlantType(nil), opts.Loadout...),
		rate:    rate,
	}
	if opts.Autopilot {
		t.pilot = battle.NewAutopilot()
	}
	return t
}

// Cursor 当前光标
func (t *Terminal) Cursor() Cursor {
	return t.cursor
}

// Start 开局(选卡阶段时)
func (t *Terminal) Start() error {
	if t.battle.Match().Phase != game.PhaseIdle {
		return nil
	}
	if !t.battle.StartMatch(t.loadout) {
		return fmt.Errorf("invalid loadout %v", t.loadout)
	}
	return nil
}

// Run 初始化屏幕并运行主循环, 直到按下退出键或 ctx 取消
func (t *Terminal) Run(ctx context.Context) error {
	if err := t.screen.Init(); err != nil {
		return fmt.Errorf("failed to init terminal: %w", err)
	}
	defer t.screen.Fini()
	t.screen.EnableMouse()

	if err := t.Start(); err != nil {
		return err
	}

	events := make(chan tcell.Event, 64)
	go func() {
		for {
			ev := t.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-ctx.Done():
				return
			}
		}
	}()

	ticker := time.NewTicker(time.Second / time.Duration(t.rate))
	defer ticker.Stop()
	last := time.Now()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev := <-events:
			if !t.HandleEvent(ev) {
				return nil
			}
		case now := <-ticker.C:
			dt := float64(now.Sub(last)) / float64(time.Millisecond)
			last = now
			t.Step(dt)
		}
	}
}

// Step 推进一帧并重绘
func (t *Terminal) Step(dt float64) {
	if t.pilot != nil {
		t.pilot.Step(t.battle)
	}
	t.battle.Tick(dt)
	t.Render()
}

// Render 重绘
func (t *Terminal) Render() {
	t.view.Draw(t.screen, t.battle.Snapshot(), t.cursor)
}

// HandleEvent 处理一个终端事件
// 返回 false 表示应退出。
func (t *Terminal) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return t.handleKey(ev)
	case *tcell.EventMouse:
		if ev.Buttons()&tcell.Button1 != 0 {
			x, y := ev.Position()
			snap := t.battle.Snapshot()
			if row, col, ok := cellAt(x, y, snap.Rows, snap.Cols); ok {
				t.cursor = Cursor{Row: row, Col: col}
				t.activate()
			}
		}
	case *tcell.EventResize:
		t.screen.Sync()
	}
	t.Render()
	return true
}

func (t *Terminal) handleKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		t.battle.Quit()
		return false
	case tcell.KeyUp:
		t.move(-1, 0)
	case tcell.KeyDown:
		t.move(1, 0)
	case tcell.KeyLeft:
		t.move(0, -1)
	case tcell.KeyRight:
		t.move(0, 1)
	case tcell.KeyEnter:
		t.activate()
	case tcell.KeyRune:
		return t.handleRune(ev.Rune())
	}
	t.Render()
	return true
}

func (t *Terminal) handleRune(r rune) bool {
	switch {
	case r == 'q':
		t.battle.Quit()
		return false
	case r == 'k':
		t.move(-1, 0)
	case r == 'j':
		t.move(1, 0)
	case r == 'h':
		t.move(0, -1)
	case r == 'l':
		t.move(0, 1)
	case r == ' ':
		t.activate()
	case r == 's':
		t.battle.ToggleShovel()
	case r == 'c':
		t.collectAtCursor()
	case r == 'p':
		if t.battle.Match().Paused {
			t.battle.Resume()
		} else {
			t.battle.Pause()
		}
	case r == 'r':
		if t.battle.Match().Phase == game.PhaseIdle {
			if err := t.Start(); err != nil {
				log.Printf("[TUI] %v", err)
			}
		} else {
			t.battle.Restart()
		}
	case r >= '1' && r <= '9':
		loadout := t.battle.Match().Loadout
		if idx := int(r - '1'); idx < len(loadout) {
			t.battle.SelectSeed(loadout[idx])
		}
	}
	t.Render()
	return true
}

// move 移动光标并限制在草坪内
func (t *Terminal) move(dr, dc int) {
	field := t.battle.Config().Rules.Field
	t.cursor.Row = clamp(t.cursor.Row+dr, 0, field.Rows-1)
	t.cursor.Col = clamp(t.cursor.Col+dc, 0, field.Cols-1)
}

// activate 光标处先收集阳光, 没有阳光时按当前选择种植或铲除
func (t *Terminal) activate() {
	if t.collectAtCursor() {
		return
	}
	t.battle.ClickCell(t.cursor.Row, t.cursor.Col)
}

// collectAtCursor 收集光标格子里的一个阳光
func (t *Terminal) collectAtCursor() bool {
	field := t.battle.Config().Rules.Field
	x, y := field.CellCenter(t.cursor.Row, t.cursor.Col)
	id, ok := t.battle.SunAt(x, y, field.CellWidth/2)
	if !ok {
		return false
	}
	return t.battle.CollectPellet(id)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
