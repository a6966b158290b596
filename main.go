package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/gonewx/lawncore/internal/audio"
	"github.com/gonewx/lawncore/pkg/battle"
	"github.com/gonewx/lawncore/pkg/config"
	"github.com/gonewx/lawncore/pkg/embedded"
	"github.com/gonewx/lawncore/pkg/game"
	"github.com/gonewx/lawncore/pkg/transport"
	"github.com/gonewx/lawncore/pkg/types"
)

// appName 设置存储目录名
const appName = "lawncore"

// version 构建时可通过 -ldflags 覆盖
var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newCommand().Run(ctx, os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func newCommand() *cli.Command {
	return &cli.Command{
		Name:    appName,
		Usage:   "lawn defense battle simulation",
		Version: version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "config-dir",
				Usage: "load game data from `DIR` instead of the built-in files",
			},
			&cli.StringFlag{
				Name:  "level",
				Usage: "level file inside the data directory",
				Value: config.DefaultLevel,
			},
			&cli.StringFlag{
				Name:  "seed",
				Usage: "random seed (default: current time)",
			},
			&cli.StringSliceFlag{
				Name:    "plants",
				Aliases: []string{"p"},
				Usage:   "seed loadout, e.g. --plants peashooter,sunflower (default: last used)",
			},
			&cli.BoolFlag{
				Name:  "autopilot",
				Usage: "let the built-in player make the moves",
			},
			&cli.BoolFlag{
				Name:  "mute",
				Usage: "disable sound output",
			},
			&cli.BoolFlag{
				Name:  "verbose",
				Usage: "write diagnostic logs to stderr",
			},
		},
		Action: runDesktop,
		Commands: []*cli.Command{
			{
				Name:   "desktop",
				Usage:  "play in a window",
				Action: runDesktop,
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "fullscreen", Usage: "start in fullscreen"},
				},
			},
			{
				Name:   "terminal",
				Usage:  "play in the terminal",
				Action: runTerminal,
			},
			{
				Name:   "serve",
				Usage:  "run a battle in real time and expose it over WebSocket",
				Action: runServe,
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "addr", Value: ":8080", Usage: "listen address"},
					&cli.BoolFlag{Name: "read-only", Usage: "spectators only, reject commands"},
				},
			},
			{
				Name:   "mcp",
				Usage:  "serve the battle as MCP tools over stdio",
				Action: runMCP,
			},
			{
				Name:   "simulate",
				Usage:  "play a headless match with the autopilot and print the summary",
				Action: runSimulate,
				Flags: []cli.Flag{
					&cli.DurationFlag{Name: "limit", Value: 15 * time.Minute, Usage: "game time limit"},
				},
			},
		},
	}
}

// session 各前端共用的启动状态
type session struct {
	cfg      *config.GameConfig
	settings *game.SettingsManager
	seed     int64
}

// setup 处理全局参数并加载配置
func setup(cmd *cli.Command) (*session, error) {
	if !cmd.Bool("verbose") {
		log.SetOutput(io.Discard)
	}

	if dir := cmd.String("config-dir"); dir != "" {
		embedded.Init(os.DirFS(dir))
		log.Printf("[main] Using data directory %s", dir)
	}
	cfg, err := config.Load(embedded.FS(), cmd.String("level"))
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	seed := time.Now().UnixNano()
	if s := cmd.String("seed"); s != "" {
		seed, err = strconv.ParseInt(s, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid --seed %q: %w", s, err)
		}
	}
	log.Printf("[main] Seed %d", seed)

	return &session{cfg: cfg, settings: game.OpenSettings(appName), seed: seed}, nil
}

// loadout 读取 --plants, 未指定时沿用上次的卡组
func (s *session) loadout(cmd *cli.Command) ([]types.PlantType, error) {
	if cmd.IsSet("plants") {
		return transport.ParseLoadout(cmd.StringSlice("plants"))
	}
	return s.settings.LastLoadout(), nil
}

// remember 保存本次卡组
func (s *session) remember(loadout []types.PlantType) {
	s.settings.SetLastLoadout(loadout)
	if err := s.settings.Save(); err != nil {
		log.Printf("[main] Failed to save settings: %v", err)
	}
}

// newBattle 创建战斗, 按需接上音频输出
// 返回的 cleanup 在退出前调用。
func (s *session) newBattle(cmd *cli.Command, withSound bool) (*battle.Battle, func()) {
	opts := battle.Options{Seed: s.seed}
	cleanup := func() {}
	if withSound && !cmd.Bool("mute") {
		player := audio.NewPlayer(s.settings)
		if err := player.Initialize(); err != nil {
			log.Printf("[main] Audio disabled: %v", err)
		} else {
			opts.Sound = player
			cleanup = player.Close
		}
	}
	return battle.New(s.cfg, opts), cleanup
}
