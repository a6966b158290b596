package game

import (
	"github.com/gonewx/lawncore/pkg/ecs"
	"github.com/gonewx/lawncore/pkg/types"
)

// EventType 事件类型
type EventType string

const (
	EventEntityCreated   EventType = "EntityCreated"
	EventEntityDestroyed EventType = "EntityDestroyed"
	EventDamageApplied   EventType = "DamageApplied"
	EventWaveStarted     EventType = "WaveStarted"
	EventWaveCompleted   EventType = "WaveCompleted"
	EventAnnouncement    EventType = "Announcement"
	EventMatchEnded      EventType = "MatchEnded"
	EventSunChanged      EventType = "SunChanged"
	EventLawnmower       EventType = "LawnmowerTriggered"
)

// EntityKind 实体种类, 供表现层区分事件对象
type EntityKind string

const (
	KindPlant      EntityKind = "plant"
	KindZombie     EntityKind = "zombie"
	KindProjectile EntityKind = "projectile"
	KindSun        EntityKind = "sun"
	KindLawnmower  EntityKind = "lawnmower"
	KindExplosion  EntityKind = "explosion"
)

// Outcome 对局结果
type Outcome string

const (
	OutcomeNone    Outcome = ""
	OutcomeDefeat  Outcome = "defeat"
	OutcomeVictory Outcome = "victory"
	OutcomeQuit    Outcome = "quit"
)

// Summary 对局结算统计
type Summary struct {
	ZombiesKilled int     `json:"zombiesKilled"`
	SunCollected  int     `json:"sunCollected"`
	WavesCleared  int     `json:"wavesCleared"`
	Duration      float64 `json:"duration"` // 游戏时间(毫秒)
}

// Event 战斗事件
// 只有与 Type 相关的字段有意义。
type Event struct {
	Type   EventType          `json:"type"`
	Time   float64            `json:"time"` // 游戏时间(毫秒)
	Entity ecs.EntityID       `json:"entity,omitempty"`
	Kind   EntityKind         `json:"kind,omitempty"`
	Cause  types.DestroyCause `json:"cause,omitempty"`

	// DamageApplied: 伤害量与剩余生命
	Amount    int `json:"amount,omitempty"`
	Remaining int `json:"remaining,omitempty"`

	// WaveStarted / WaveCompleted / LawnmowerTriggered
	Wave  int    `json:"wave,omitempty"`
	Lane  int    `json:"lane,omitempty"`
	Alert string `json:"alert,omitempty"`

	// Announcement
	Text string `json:"text,omitempty"`

	// MatchEnded
	Outcome Outcome  `json:"outcome,omitempty"`
	Summary *Summary `json:"summary,omitempty"`
}

// Listener 事件订阅者
type Listener interface {
	OnEvent(event Event)
}

// ListenerFunc 函数适配器
type ListenerFunc func(event Event)

// OnEvent 实现 Listener
func (f ListenerFunc) OnEvent(event Event) {
	f(event)
}

// Dispatcher 事件分发器
// 分发是同步的, 监听者在 tick 线程上被调用, 不应阻塞。
type Dispatcher struct {
	listeners map[EventType][]Listener
	all       []Listener
}

// NewDispatcher 创建事件分发器
func NewDispatcher() *Dispatcher {
	return &Dispatcher{
		listeners: make(map[EventType][]Listener),
	}
}

// Subscribe 订阅指定类型的事件
func (d *Dispatcher) Subscribe(eventType EventType, listener Listener) {
	d.listeners[eventType] = append(d.listeners[eventType], listener)
}

// SubscribeAll 订阅所有事件
func (d *Dispatcher) SubscribeAll(listener Listener) {
	d.all = append(d.all, listener)
}

// Dispatch 向订阅者发送事件
func (d *Dispatcher) Dispatch(event Event) {
	for _, listener := range d.listeners[event.Type] {
		listener.OnEvent(event)
	}
	for _, listener := range d.all {
		listener.OnEvent(event)
	}
}
