package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/urfave/cli/v3"

	"github.com/gonewx/lawncore/pkg/app"
	"github.com/gonewx/lawncore/pkg/battle"
	"github.com/gonewx/lawncore/pkg/game"
	"github.com/gonewx/lawncore/pkg/transport/mcp"
	"github.com/gonewx/lawncore/pkg/transport/websocket"
	"github.com/gonewx/lawncore/pkg/tui"
)

// runDesktop 窗口前端(ebiten)
func runDesktop(ctx context.Context, cmd *cli.Command) error {
	s, err := setup(cmd)
	if err != nil {
		return err
	}
	loadout, err := s.loadout(cmd)
	if err != nil {
		return err
	}
	b, cleanup := s.newBattle(cmd, true)
	defer cleanup()

	a, err := app.NewApp(b, app.Config{
		Loadout:    loadout,
		Autopilot:  cmd.Bool("autopilot"),
		Fullscreen: cmd.Bool("fullscreen") || s.settings.GetSettings().Fullscreen,
	})
	if err != nil {
		return err
	}
	s.remember(loadout)
	return app.Run(a)
}

// runTerminal 终端前端(tcell)
func runTerminal(ctx context.Context, cmd *cli.Command) error {
	s, err := setup(cmd)
	if err != nil {
		return err
	}
	loadout, err := s.loadout(cmd)
	if err != nil {
		return err
	}
	b, cleanup := s.newBattle(cmd, true)
	defer cleanup()

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("open terminal: %w", err)
	}
	term := tui.New(screen, b, tui.Options{Loadout: loadout, Autopilot: cmd.Bool("autopilot")})
	if err := term.Run(ctx); err != nil {
		return err
	}
	s.remember(loadout)

	if outcome := b.Match().Outcome; outcome != game.OutcomeNone {
		printSummary(b)
	}
	return nil
}

// runServe 实时运行一局并通过 WebSocket 提供观战与控制
// 指定 --plants 时立即开局, 否则等待客户端发送 start 命令。
func runServe(ctx context.Context, cmd *cli.Command) error {
	s, err := setup(cmd)
	if err != nil {
		return err
	}
	b, cleanup := s.newBattle(cmd, false)
	defer cleanup()

	if cmd.IsSet("plants") {
		loadout, err := s.loadout(cmd)
		if err != nil {
			return err
		}
		if !b.StartMatch(loadout) {
			return fmt.Errorf("invalid loadout %v", loadout)
		}
	}

	runner := battle.NewRunner(b, 60)
	server := websocket.NewServer(b, runner, websocket.Options{ReadOnly: cmd.Bool("read-only")})
	if cmd.Bool("autopilot") {
		pilot := battle.NewAutopilot()
		onTick := runner.OnTick
		runner.OnTick = func(b *battle.Battle) {
			pilot.Step(b)
			onTick(b)
		}
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	go server.Run(ctx)
	go runner.Run(ctx)

	httpServer := &http.Server{Addr: cmd.String("addr"), Handler: server.Handler()}
	go func() {
		<-ctx.Done()
		shutdownCtx, done := context.WithTimeout(context.Background(), 5*time.Second)
		defer done()
		httpServer.Shutdown(shutdownCtx)
	}()

	fmt.Printf("Listening on %s (ws://%s/ws)\n", cmd.String("addr"), cmd.String("addr"))
	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	<-runner.Done()
	return nil
}

// runMCP 通过标准输入输出提供 MCP 工具
func runMCP(ctx context.Context, cmd *cli.Command) error {
	s, err := setup(cmd)
	if err != nil {
		return err
	}
	b, cleanup := s.newBattle(cmd, false)
	defer cleanup()
	return mcp.NewServer(b, version).ServeStdio()
}

// runSimulate 无界面自动对局
func runSimulate(ctx context.Context, cmd *cli.Command) error {
	s, err := setup(cmd)
	if err != nil {
		return err
	}
	loadout, err := s.loadout(cmd)
	if err != nil {
		return err
	}
	b, cleanup := s.newBattle(cmd, false)
	defer cleanup()

	if !b.StartMatch(loadout) {
		return fmt.Errorf("invalid loadout %v", loadout)
	}
	limit := float64(cmd.Duration("limit").Milliseconds())
	outcome := battle.Play(b, battle.NewAutopilot(), 1000.0/60, limit)
	log.Printf("[main] Simulation finished: %q at %.0f ms", outcome, b.Match().GameTime)

	printSummary(b)
	if outcome == game.OutcomeNone {
		return fmt.Errorf("time limit %s reached", cmd.Duration("limit"))
	}
	return nil
}

// printSummary 打印结算统计
func printSummary(b *battle.Battle) {
	snap := b.Snapshot()
	outcome := snap.Outcome
	if outcome == game.OutcomeNone {
		outcome = "unfinished"
	}
	sum := snap.Summary
	fmt.Printf("outcome:   %s\n", outcome)
	fmt.Printf("game time: %s\n", time.Duration(sum.Duration)*time.Millisecond)
	fmt.Printf("waves:     %d/%d\n", sum.WavesCleared, snap.WaveCount)
	fmt.Printf("kills:     %d\n", sum.ZombiesKilled)
	fmt.Printf("sun:       %d (collected %d)\n", snap.Sun, sum.SunCollected)
}
