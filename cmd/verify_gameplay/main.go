// verify_gameplay 无界面验证战斗规则
//
// 每行放一种僵尸, 对面种一株指定植物, 推进时间后逐行报告僵尸的结局。
//
// 用法:
//
//	go run ./cmd/verify_gameplay -plant peashooter -duration 60s
//	go run ./cmd/verify_gameplay -autopilot -runs 20
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"

	"github.com/gonewx/lawncore/pkg/battle"
	"github.com/gonewx/lawncore/pkg/config"
	"github.com/gonewx/lawncore/pkg/ecs"
	"github.com/gonewx/lawncore/pkg/entities"
	"github.com/gonewx/lawncore/pkg/game"
	"github.com/gonewx/lawncore/pkg/transport"
	"github.com/gonewx/lawncore/pkg/types"
)

const tickMs = 1000.0 / 60

var (
	verbose   = flag.Bool("verbose", false, "显示详细调试信息")
	plantName = flag.String("plant", "peashooter", "每行种植的植物")
	column    = flag.Int("col", 0, "植物所在列")
	duration  = flag.Duration("duration", 60*time.Second, "推进的游戏时间")
	zombies   = flag.String("zombies", "flag,basic,conehead,conehead,buckethead", "每行的僵尸类型, 逗号分隔")
	autopilot = flag.Bool("autopilot", false, "改为运行自动驾驶整局并统计胜负")
	runs      = flag.Int("runs", 10, "自动驾驶局数")
	seed      = flag.Int64("seed", 1, "起始随机种子")
)

// rowReport 单行结果
type rowReport struct {
	zombie  types.ZombieType
	id      ecs.EntityID
	fate    string
	at      float64
	mowerAt float64
}

func main() {
	flag.Parse()
	if !*verbose {
		log.SetOutput(io.Discard)
	}

	cfg, err := config.LoadDefault()
	if err != nil {
		fail(fmt.Errorf("failed to load config: %w", err))
	}

	if *autopilot {
		err = verifyAutopilot(cfg)
	} else {
		err = verifyLanes(cfg)
	}
	if err != nil {
		fail(err)
	}
}

func fail(err error) {
	fmt.Fprintln(os.Stderr, "verify_gameplay:", err)
	os.Exit(1)
}

// verifyLanes 逐行对战验证
func verifyLanes(cfg *config.GameConfig) error {
	plant, err := transport.ParsePlant(*plantName)
	if err != nil {
		return err
	}
	names := strings.Split(*zombies, ",")
	if len(names) != cfg.Rules.Field.Rows {
		return fmt.Errorf("-zombies needs %d entries, got %d", cfg.Rules.Field.Rows, len(names))
	}

	b := battle.New(cfg, battle.Options{Seed: *seed})
	if !b.StartMatch([]types.PlantType{plant}) {
		return fmt.Errorf("cannot start with %s", plant)
	}
	m := b.Match()

	reports := make([]*rowReport, len(names))
	byID := make(map[ecs.EntityID]*rowReport)
	for row, name := range names {
		zt := types.ZombieTypeFromString(strings.TrimSpace(name))
		if zt == types.ZombieUnknown {
			return fmt.Errorf("unknown zombie %q", name)
		}
		// 冷却不影响验证: 每行之间重置
		m.Sun = 10000
		m.Cooldowns[plant] = 0
		if !b.PlaceDefender(plant, row, *column) {
			return fmt.Errorf("cannot plant %s at row %d col %d", plant, row, *column)
		}
		id, err := entities.NewZombieEntity(m, zt, row)
		if err != nil {
			return err
		}
		reports[row] = &rowReport{zombie: zt, id: id, fate: "alive"}
		byID[id] = reports[row]
	}

	b.Events().SubscribeAll(game.ListenerFunc(func(ev game.Event) {
		switch ev.Type {
		case game.EventEntityDestroyed:
			if r, ok := byID[ev.Entity]; ok && r.fate == "alive" {
				r.fate = string(ev.Cause)
				r.at = ev.Time
			}
		case game.EventLawnmower:
			if ev.Lane >= 0 && ev.Lane < len(reports) && reports[ev.Lane].mowerAt == 0 {
				reports[ev.Lane].mowerAt = ev.Time
			}
		case game.EventDamageApplied:
			if *verbose {
				log.Printf("[verify] t=%.0f entity %d took %d (left %d)", ev.Time, ev.Entity, ev.Amount, ev.Remaining)
			}
		}
	}))

	limit := float64(duration.Milliseconds())
	for m.Running() && m.GameTime < limit && pending(reports) {
		b.Tick(tickMs)
	}

	fmt.Printf("%-4s %-12s %-12s %-10s %s\n", "row", "zombie", "fate", "at", "lawnmower")
	for row, r := range reports {
		at, mower := "-", "-"
		if r.fate != "alive" {
			at = fmt.Sprintf("%.1fs", r.at/1000)
		}
		if r.mowerAt > 0 {
			mower = fmt.Sprintf("%.1fs", r.mowerAt/1000)
		}
		fmt.Printf("%-4d %-12s %-12s %-10s %s\n", row, r.zombie, r.fate, at, mower)
	}
	fmt.Printf("phase=%s game time=%.1fs sun=%d\n", m.Phase, m.GameTime/1000, m.Sun)
	return nil
}

func pending(reports []*rowReport) bool {
	for _, r := range reports {
		if r.fate == "alive" {
			return true
		}
	}
	return false
}

// verifyAutopilot 连续运行多局自动驾驶并统计结果
func verifyAutopilot(cfg *config.GameConfig) error {
	loadout := []types.PlantType{types.PlantSunflower, types.PlantPeashooter, types.PlantWallnut, types.PlantCherryBomb, types.PlantSnowPea, types.PlantPotatoMine}
	tally := make(map[game.Outcome]int)
	limit := float64((30 * time.Minute).Milliseconds())

	for i := 0; i < *runs; i++ {
		s := *seed + int64(i)
		b := battle.New(cfg, battle.Options{Seed: s})
		if !b.StartMatch(loadout) {
			return fmt.Errorf("invalid loadout %v", loadout)
		}
		outcome := battle.Play(b, battle.NewAutopilot(), tickMs, limit)
		if outcome == game.OutcomeNone {
			outcome = "timeout"
		}
		tally[outcome]++

		sum := b.Match().Summary()
		fmt.Printf("seed %-6d %-8s waves %2d kills %3d time %6.1fs\n", s, outcome, sum.WavesCleared, sum.ZombiesKilled, sum.Duration/1000)
	}
	fmt.Printf("victory %d, defeat %d, timeout %d\n", tally[game.OutcomeVictory], tally[game.OutcomeDefeat], tally["timeout"])
	return nil
}
