package battle

import (
	"github.com/gonewx/lawncore/pkg/components"
	"github.com/gonewx/lawncore/pkg/ecs"
	"github.com/gonewx/lawncore/pkg/game"
	"github.com/gonewx/lawncore/pkg/systems"
	"github.com/gonewx/lawncore/pkg/types"
)

// PlantView 植物快照
type PlantView struct {
	ID         ecs.EntityID     `json:"id"`
	Type       types.PlantType  `json:"type"`
	Class      types.PlantClass `json:"class"`
	Row        int              `json:"row"`
	Col        int              `json:"col"`
	Health     int              `json:"health"`
	MaxHealth  int              `json:"maxHealth"`
	Armed      bool             `json:"armed"`
	Busy       bool             `json:"busy"`
	Detonating bool             `json:"detonating"`
}

// ZombieView 僵尸快照
type ZombieView struct {
	ID        ecs.EntityID     `json:"id"`
	Type      types.ZombieType `json:"type"`
	Lane      int              `json:"lane"`
	X         float64          `json:"x"`
	Health    int              `json:"health"`
	MaxHealth int              `json:"maxHealth"`
	Slowed    bool             `json:"slowed"`
	Eating    bool             `json:"eating"`
	Enraged   bool             `json:"enraged"`
	Vaulted   bool             `json:"vaulted"`
	Dying     bool             `json:"dying"`
}

// ProjectileView 子弹快照
type ProjectileView struct {
	ID    ecs.EntityID `json:"id"`
	Lane  int          `json:"lane"`
	X     float64      `json:"x"`
	Slows bool         `json:"slows"`
}

// SunView 阳光快照
type SunView struct {
	ID      ecs.EntityID `json:"id"`
	X       float64      `json:"x"`
	Y       float64      `json:"y"`
	Landed  bool         `json:"landed"`
	FromSky bool         `json:"fromSky"`
	// TTL 剩余寿命(毫秒)
	TTL float64 `json:"ttl"`
}

// ExplosionView 爆炸特效快照
type ExplosionView struct {
	ID     ecs.EntityID `json:"id"`
	Row    int          `json:"row"`
	Col    int          `json:"col"`
	Radius int          `json:"radius"`
}

// SeedView 卡片快照
type SeedView struct {
	Type     types.PlantType `json:"type"`
	Cost     int             `json:"cost"`
	Cooldown float64         `json:"cooldown"` // 剩余冷却(毫秒)
	Ready    bool            `json:"ready"`
}

// Snapshot 一帧的只读状态, 供表现层绘制
type Snapshot struct {
	Phase    game.Phase         `json:"phase"`
	Paused   bool               `json:"paused"`
	Outcome  game.Outcome       `json:"outcome,omitempty"`
	GameTime float64            `json:"gameTime"`
	Sun      int                `json:"sun"`
	Director game.DirectorState `json:"director"`

	Wave         int    `json:"wave"` // 当前波次(1 起), 0 表示尚未开始
	WaveCount    int    `json:"waveCount"`
	WaveActive   bool   `json:"waveActive"`
	Announcement string `json:"announcement,omitempty"`

	Seeds        []SeedView      `json:"seeds"`
	Selected     types.PlantType `json:"selected,omitempty"`
	ShovelActive bool            `json:"shovelActive"`

	Rows int `json:"rows"`
	Cols int `json:"cols"`

	Plants      []PlantView      `json:"plants"`
	Zombies     []ZombieView     `json:"zombies"`
	Projectiles []ProjectileView `json:"projectiles"`
	Suns        []SunView        `json:"suns"`
	Explosions  []ExplosionView  `json:"explosions"`
	Lawnmowers  []bool           `json:"lawnmowers"`

	Summary game.Summary `json:"summary"`
}

// Snapshot 生成当前状态快照
func (b *Battle) Snapshot() Snapshot {
	m := b.match
	em := m.EntityManager

	snap := Snapshot{
		Phase:        m.Phase,
		Paused:       m.Paused,
		Outcome:      m.Outcome,
		GameTime:     m.GameTime,
		Sun:          m.Sun,
		Director:     m.Director,
		Wave:         m.WaveIndex + 1,
		WaveCount:    b.cfg.WaveCount(),
		WaveActive:   m.WaveActive,
		Announcement: m.Announcement,
		Selected:     m.SelectedPlant,
		ShovelActive: m.ShovelActive,
		Rows:         m.Field.Rows,
		Cols:         m.Field.Cols,
		Lawnmowers:   b.mowers.Available(m),
		Summary:      m.Summary(),
	}

	for _, pt := range m.Loadout {
		stats, _ := b.cfg.Plant(pt)
		snap.Seeds = append(snap.Seeds, SeedView{
			Type:     pt,
			Cost:     stats.Cost,
			Cooldown: b.cooldowns.Remaining(m, pt),
			Ready:    b.cooldowns.Ready(m, pt) && m.Sun >= stats.Cost,
		})
	}

	for _, id := range ecs.GetEntitiesWith2[*components.PlantComponent, *components.HealthComponent](em) {
		plant, _ := ecs.GetComponent[*components.PlantComponent](em, id)
		health, _ := ecs.GetComponent[*components.HealthComponent](em, id)
		snap.Plants = append(snap.Plants, PlantView{
			ID:         id,
			Type:       plant.Type,
			Class:      plant.Class,
			Row:        plant.Row,
			Col:        plant.Col,
			Health:     health.CurrentHealth,
			MaxHealth:  health.MaxHealth,
			Armed:      plant.Armed,
			Busy:       plant.Busy,
			Detonating: plant.Detonating,
		})
	}

	for _, id := range ecs.GetEntitiesWith2[*components.ZombieComponent, *components.HealthComponent](em) {
		zombie, _ := ecs.GetComponent[*components.ZombieComponent](em, id)
		health, _ := ecs.GetComponent[*components.HealthComponent](em, id)
		snap.Zombies = append(snap.Zombies, ZombieView{
			ID:        id,
			Type:      zombie.Type,
			Lane:      zombie.Lane,
			X:         zombie.X,
			Health:    health.CurrentHealth,
			MaxHealth: health.MaxHealth,
			Slowed:    zombie.Slowed,
			Eating:    zombie.Eating,
			Enraged:   zombie.Enraged,
			Vaulted:   zombie.Vaulted,
			Dying:     zombie.Dying,
		})
	}

	for _, id := range ecs.GetEntitiesWith1[*components.ProjectileComponent](em) {
		proj, _ := ecs.GetComponent[*components.ProjectileComponent](em, id)
		snap.Projectiles = append(snap.Projectiles, ProjectileView{ID: id, Lane: proj.Lane, X: proj.X, Slows: proj.Slows})
	}

	for _, id := range ecs.GetEntitiesWith2[*components.SunComponent, *components.LifetimeComponent](em) {
		sun, _ := ecs.GetComponent[*components.SunComponent](em, id)
		lifetime, _ := ecs.GetComponent[*components.LifetimeComponent](em, id)
		snap.Suns = append(snap.Suns, SunView{
			ID:      id,
			X:       sun.X,
			Y:       sun.Y,
			Landed:  sun.State == components.SunLanded,
			FromSky: sun.Source == components.SunFromSky,
			TTL:     lifetime.MaxLifetime - lifetime.CurrentLifetime,
		})
	}

	for _, id := range ecs.GetEntitiesWith1[*components.ExplosionComponent](em) {
		ex, _ := ecs.GetComponent[*components.ExplosionComponent](em, id)
		snap.Explosions = append(snap.Explosions, ExplosionView{ID: id, Row: ex.Row, Col: ex.Col, Radius: ex.Radius})
	}

	return snap
}

// LiveZombies 场上存活(非死亡中)的僵尸数量
func (b *Battle) LiveZombies() int {
	count := 0
	for lane := 0; lane < b.match.Field.Rows; lane++ {
		count += len(systems.LiveZombiesInLane(b.match, lane))
	}
	return count
}
