package game

import (
	"log"
	"math/rand"

	"github.com/gonewx/lawncore/pkg/components"
	"github.com/gonewx/lawncore/pkg/config"
	"github.com/gonewx/lawncore/pkg/ecs"
	"github.com/gonewx/lawncore/pkg/types"
)

// Phase 对局阶段
type Phase string

const (
	PhaseIdle    Phase = "idle"    // 选卡中, 尚未开始
	PhaseRunning Phase = "running" // 进行中(可能处于暂停)
	PhaseDefeat  Phase = "defeat"
	PhaseVictory Phase = "victory"
	PhaseQuit    Phase = "quit"
)

// DirectorState 波次导演状态
type DirectorState string

const (
	DirectorIdle         DirectorState = "idle"
	DirectorWaveActive   DirectorState = "wave-active"
	DirectorWaveClearing DirectorState = "wave-clearing"
	DirectorVictory      DirectorState = "victory"
)

// Match 一局战斗的全部可变状态
//
// Match 由 Battle 独占持有, 作为参数显式传给每个系统的 Update。
// 重开时整体丢弃并重建, 从不逐字段复位。
type Match struct {
	EntityManager *ecs.EntityManager
	Config        *config.GameConfig
	Field         config.FieldConfig
	Rand          *rand.Rand
	Events        *Dispatcher
	Sound         SoundPlayer
	Timers        *TimerQueue

	// 时钟(毫秒)
	GameTime float64
	WallTime float64

	Phase   Phase
	Paused  bool
	Outcome Outcome

	// 经济
	Sun           int
	SunCollected  int
	ZombiesKilled int
	Loadout       []types.PlantType
	Cooldowns     map[types.PlantType]float64

	// 选卡与铲子
	SelectedPlant types.PlantType
	ShovelActive  bool

	// 草坪网格实体
	GridEntity ecs.EntityID

	// 波次
	Director      DirectorState
	WaveIndex     int // 当前波次(0 起), 第一波开始前为 -1
	WaveActive    bool
	PendingSpawns int
	WavesCleared  int

	// 公告
	Announcement string
	bannerSeq    int
}

// NewMatch 创建新的对局上下文
// 参数:
//
//	cfg - 只读配置
//	seed - 随机种子(出怪行、阳光落点)
//	events - 事件分发器, 可为 nil
//	sound - 音效输出, 可为 nil
func NewMatch(cfg *config.GameConfig, seed int64, events *Dispatcher, sound SoundPlayer) *Match {
	if events == nil {
		events = NewDispatcher()
	}
	if sound == nil {
		sound = NopSoundPlayer{}
	}

	em := ecs.NewEntityManager()
	grid := em.CreateEntity()
	ecs.AddComponent(em, grid, components.NewLawnGridComponent(cfg.Rules.Field.Rows, cfg.Rules.Field.Cols))

	return &Match{
		EntityManager: em,
		Config:        cfg,
		Field:         cfg.Rules.Field,
		Rand:          rand.New(rand.NewSource(seed)),
		Events:        events,
		Sound:         sound,
		Timers:        NewTimerQueue(),
		Phase:         PhaseIdle,
		Sun:           cfg.Rules.Economy.StartingSun,
		Cooldowns:     make(map[types.PlantType]float64),
		GridEntity:    grid,
		Director:      DirectorIdle,
		WaveIndex:     -1,
	}
}

// Now 返回指定计时域的当前时间
func (m *Match) Now(clock Clock) float64 {
	if clock == ClockWall {
		return m.WallTime
	}
	return m.GameTime
}

// After 在 delay 毫秒后调度定时事件
func (m *Match) After(clock Clock, delay float64, ev TimedEvent) {
	ev.Clock = clock
	ev.FireAt = m.Now(clock) + delay
	m.Timers.Schedule(ev)
}

// At 在指定时刻调度定时事件
// 周期性事件以上一次的到期时刻为基准重新调度, 避免大步长 tick 造成漂移。
func (m *Match) At(clock Clock, fireAt float64, ev TimedEvent) {
	ev.Clock = clock
	ev.FireAt = fireAt
	m.Timers.Schedule(ev)
}

// Running 对局是否在推进(运行中且未暂停)
func (m *Match) Running() bool {
	return m.Phase == PhaseRunning && !m.Paused
}

// Over 对局是否已结束
func (m *Match) Over() bool {
	switch m.Phase {
	case PhaseDefeat, PhaseVictory, PhaseQuit:
		return true
	}
	return false
}

// Emit 发送事件(自动填充时间)
func (m *Match) Emit(ev Event) {
	ev.Time = m.GameTime
	m.Events.Dispatch(ev)
}

// PlaySound 播放音效
func (m *Match) PlaySound(soundID string) {
	m.Sound.PlaySound(soundID)
}

// SpendSun 扣除阳光, 不足时返回 false 且不修改
func (m *Match) SpendSun(amount int) bool {
	if amount < 0 || m.Sun < amount {
		return false
	}
	m.Sun -= amount
	m.Emit(Event{Type: EventSunChanged, Amount: -amount, Remaining: m.Sun})
	return true
}

// AddSun 增加阳光并累计收集量
func (m *Match) AddSun(amount int) {
	if amount <= 0 {
		return
	}
	m.Sun += amount
	m.SunCollected += amount
	m.Emit(Event{Type: EventSunChanged, Amount: amount, Remaining: m.Sun})
}

// Announce 显示公告, 到期后自动清除(墙钟)
func (m *Match) Announce(text string) {
	m.bannerSeq++
	m.Announcement = text
	m.Emit(Event{Type: EventAnnouncement, Text: text})
	m.After(ClockWall, m.Config.Rules.Timing.AnnouncementDuration, TimedEvent{
		Effect: EffectClearBanner,
		Amount: m.bannerSeq,
	})
}

// ClearBanner 清除公告; 只有序号匹配时才清除, 避免误清后来的公告
func (m *Match) ClearBanner(seq int) {
	if seq == m.bannerSeq {
		m.Announcement = ""
	}
}

// Summary 返回当前结算统计
func (m *Match) Summary() Summary {
	return Summary{
		ZombiesKilled: m.ZombiesKilled,
		SunCollected:  m.SunCollected,
		WavesCleared:  m.WavesCleared,
		Duration:      m.GameTime,
	}
}

// End 结束对局
// 重复调用无效。
func (m *Match) End(outcome Outcome) {
	if m.Over() {
		return
	}
	switch outcome {
	case OutcomeDefeat:
		m.Phase = PhaseDefeat
		m.PlaySound(SoundGameOver)
	case OutcomeVictory:
		m.Phase = PhaseVictory
		m.Director = DirectorVictory
		m.PlaySound(SoundVictory)
	default:
		m.Phase = PhaseQuit
	}
	m.Outcome = outcome
	summary := m.Summary()
	log.Printf("[Match] ended: %s (kills=%d, sun=%d, waves=%d)", outcome, summary.ZombiesKilled, summary.SunCollected, summary.WavesCleared)
	m.Emit(Event{Type: EventMatchEnded, Outcome: outcome, Summary: &summary})
}

// Grid 返回草坪网格组件
func (m *Match) Grid() *components.LawnGridComponent {
	grid, _ := ecs.GetComponent[*components.LawnGridComponent](m.EntityManager, m.GridEntity)
	return grid
}

// InLoadout 植物是否在本局卡组中
func (m *Match) InLoadout(pt types.PlantType) bool {
	for _, t := range m.Loadout {
		if t == pt {
			return true
		}
	}
	return false
}
