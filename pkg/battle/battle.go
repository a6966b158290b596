// Package battle 驱动一局战斗: 持有对局上下文, 按固定顺序推进各系统, 并接受玩家命令。
package battle

import (
	"log"

	"github.com/gonewx/lawncore/pkg/config"
	"github.com/gonewx/lawncore/pkg/entities"
	"github.com/gonewx/lawncore/pkg/game"
	"github.com/gonewx/lawncore/pkg/systems"
	"github.com/gonewx/lawncore/pkg/systems/behavior"
	"github.com/gonewx/lawncore/pkg/types"
)

// Options 战斗创建参数
type Options struct {
	// Seed 随机种子; 同一种子和同一输入序列产生同样的对局
	Seed int64
	// Events 事件分发器, 为 nil 时内部创建
	Events *game.Dispatcher
	// Sound 音效输出, 为 nil 时静音
	Sound game.SoundPlayer
}

// handler 定时事件处理函数
type handler func(m *game.Match, ev game.TimedEvent)

// Battle 战斗模拟时钟
//
// 每次 Tick 依次执行:
//  1. 推进墙钟; 运行且未暂停时推进游戏时间
//  2. 按到期顺序处理墙钟事件, 再处理游戏时间事件
//  3. 植物与僵尸行为
//  4. 子弹
//  5. 阳光下落与寿命
//  6. 波次完成检查
//  7. 清理本帧标记删除的实体
//
// Battle 不是并发安全的; 异步前端通过 Runner 访问。
type Battle struct {
	cfg    *config.GameConfig
	seed   int64
	events *game.Dispatcher
	sound  game.SoundPlayer

	match *game.Match

	grid        *systems.LawnGridSystem
	combat      *systems.CombatSystem
	projectiles *systems.ProjectileSystem
	mowers      *systems.LawnmowerSystem
	waves       *systems.WaveSpawnSystem
	sunSpawn    *systems.SunSpawnSystem
	sunMovement *systems.SunMovementSystem
	sunCollect  *systems.SunCollectionSystem
	lifetime    *systems.LifetimeSystem
	cooldowns   *systems.CooldownSystem
	behavior    *behavior.BehaviorSystem

	handlers map[game.Effect]handler
}

// New 创建战斗, 初始处于选卡阶段(idle)
func New(cfg *config.GameConfig, opts Options) *Battle {
	events := opts.Events
	if events == nil {
		events = game.NewDispatcher()
	}
	sound := opts.Sound
	if sound == nil {
		sound = game.NopSoundPlayer{}
	}

	grid := systems.NewLawnGridSystem()
	combat := systems.NewCombatSystem(grid)
	mowers := systems.NewLawnmowerSystem(combat)

	b := &Battle{
		cfg:         cfg,
		seed:        opts.Seed,
		events:      events,
		sound:       sound,
		grid:        grid,
		combat:      combat,
		projectiles: systems.NewProjectileSystem(combat),
		mowers:      mowers,
		waves:       systems.NewWaveSpawnSystem(),
		sunSpawn:    systems.NewSunSpawnSystem(),
		sunMovement: systems.NewSunMovementSystem(),
		sunCollect:  systems.NewSunCollectionSystem(),
		lifetime:    systems.NewLifetimeSystem(),
		cooldowns:   systems.NewCooldownSystem(),
		behavior:    behavior.NewBehaviorSystem(grid, combat, mowers),
	}

	b.handlers = map[game.Effect]handler{
		game.EffectFuse:            b.behavior.HandleFuse,
		game.EffectArm:             b.behavior.HandleArm,
		game.EffectChewDone:        b.behavior.HandleChewDone,
		game.EffectExtraShot:       b.behavior.HandleExtraShot,
		game.EffectSettle:          b.combat.HandleSettle,
		game.EffectRemoveDetonated: b.combat.HandleRemoveDetonated,
		game.EffectSpawn:           b.waves.HandleSpawn,
		game.EffectStartWave:       b.waves.HandleStartWave,
		game.EffectVictory:         b.waves.HandleVictory,
		game.EffectCooldownStep:    b.cooldowns.HandleStep,
		game.EffectCollect:         b.sunCollect.HandleCollect,
		game.EffectClearBanner:     handleClearBanner,
		game.EffectAmbientSun:      b.sunSpawn.HandleAmbient,
	}

	b.match = b.newMatch()
	return b
}

func (b *Battle) newMatch() *game.Match {
	return game.NewMatch(b.cfg, b.seed, b.events, b.sound)
}

func handleClearBanner(m *game.Match, ev game.TimedEvent) {
	m.ClearBanner(ev.Amount)
}

// Match 返回当前对局上下文(只读使用)
func (b *Battle) Match() *game.Match {
	return b.match
}

// Config 返回配置
func (b *Battle) Config() *config.GameConfig {
	return b.cfg
}

// Events 返回事件分发器
func (b *Battle) Events() *game.Dispatcher {
	return b.events
}

// Tick 推进一帧
// 参数:
//   - dt: 距上一帧的时间(毫秒)
//
// 对局未在运行(选卡中或已结束)时不做任何事。
func (b *Battle) Tick(dt float64) {
	m := b.match
	if m.Phase != game.PhaseRunning {
		return
	}
	if dt < 0 {
		dt = 0
	}

	advancing := !m.Paused
	m.WallTime += dt
	if advancing {
		m.GameTime += dt
	}

	b.drain(m, game.ClockWall)
	if advancing {
		b.drain(m, game.ClockGame)
	}

	if m.Running() {
		b.behavior.Update(m, dt)
	}
	if m.Running() {
		b.projectiles.Update(m, dt)
		b.sunMovement.Update(m, dt)
		b.lifetime.Update(m, dt)
		b.waves.Update(m)
	}

	m.EntityManager.RemoveMarkedEntities()
}

// drain 处理指定计时域内所有已到期的定时事件
// 对局在处理过程中结束时, 剩余事件留在队列中不再处理。
func (b *Battle) drain(m *game.Match, clock game.Clock) {
	for m.Phase == game.PhaseRunning {
		ev, ok := m.Timers.PopDue(clock, m.Now(clock))
		if !ok {
			return
		}
		h, ok := b.handlers[ev.Effect]
		if !ok {
			log.Printf("[Battle] No handler for timed effect %q", ev.Effect)
			continue
		}
		h(m, ev)
	}
}

// begin 开局: 放置除草车, 调度第一波与天空阳光
func (b *Battle) begin(loadout []types.PlantType) {
	m := b.match
	m.Loadout = append([]types.PlantType(nil), loadout...)
	m.Phase = game.PhaseRunning
	entities.NewLawnmowers(m)
	b.waves.Begin(m)
	b.sunSpawn.Begin(m)
	m.PlaySound(game.MusicBattle)
	log.Printf("[Battle] Match started (seed=%d, loadout=%v)", b.seed, loadout)
}
