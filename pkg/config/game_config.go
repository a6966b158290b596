package config

import (
	"fmt"
	"math"
)

// 出怪暂停策略
const (
	// SpawnPolicyDrop 暂停期间到期的出怪被丢弃(不重排)
	SpawnPolicyDrop = "drop"
	// SpawnPolicyDefer 出怪挂在游戏时钟上, 暂停时一并冻结
	SpawnPolicyDefer = "defer"
)

// FieldConfig 草坪几何配置
//
// 所有坐标以草坪左上角为原点, 僵尸和子弹只使用水平坐标 X。
// 内侧边界(LawnLeft)左边是割草机区域, 网格从 LawnLeft 开始。
type FieldConfig struct {
	Rows                int     `yaml:"rows"`
	Cols                int     `yaml:"cols"`
	CellWidth           float64 `yaml:"cellWidth"`
	CellHeight          float64 `yaml:"cellHeight"`
	LawnLeft            float64 `yaml:"lawnLeft"`
	ZombieWidth         float64 `yaml:"zombieWidth"`
	ProjectileTolerance float64 `yaml:"projectileTolerance"`
	SpawnOffset         float64 `yaml:"spawnOffset"`
	DespawnMargin       float64 `yaml:"despawnMargin"`
}

// Width 场地总宽度(割草机区域 + 网格)
func (f FieldConfig) Width() float64 {
	return f.LawnLeft + float64(f.Cols)*f.CellWidth
}

// Height 场地总高度
func (f FieldConfig) Height() float64 {
	return float64(f.Rows) * f.CellHeight
}

// ColumnAt 将水平坐标转换为网格列
// 返回值可能越界(<0 表示已进入割草机区域, >=Cols 表示在网格右侧)。
func (f FieldConfig) ColumnAt(x float64) int {
	return int(math.Floor((x - f.LawnLeft) / f.CellWidth))
}

// CellLeft 返回列的左边缘 X
func (f FieldConfig) CellLeft(col int) float64 {
	return f.LawnLeft + float64(col)*f.CellWidth
}

// CellRightEdge 返回列的右边缘 X(射手的索敌起点与子弹出生点)
func (f FieldConfig) CellRightEdge(col int) float64 {
	return f.LawnLeft + float64(col+1)*f.CellWidth
}

// CellCenter 返回格子中心坐标
func (f FieldConfig) CellCenter(row, col int) (float64, float64) {
	return f.CellLeft(col) + f.CellWidth/2, f.LaneY(row)
}

// LaneY 返回行的中心 Y
func (f FieldConfig) LaneY(row int) float64 {
	return float64(row)*f.CellHeight + f.CellHeight/2
}

// SpawnX 僵尸出生的水平坐标
func (f FieldConfig) SpawnX() float64 {
	return f.Width() + f.SpawnOffset
}

// DespawnX 子弹移除的水平坐标
func (f FieldConfig) DespawnX() float64 {
	return f.Width() + f.DespawnMargin
}

// InBounds 判断格子坐标是否合法
func (f FieldConfig) InBounds(row, col int) bool {
	return row >= 0 && row < f.Rows && col >= 0 && col < f.Cols
}

// EconomyConfig 阳光经济配置(时间单位毫秒)
type EconomyConfig struct {
	StartingSun          int     `yaml:"startingSun"`
	SunValue             int     `yaml:"sunValue"`
	AmbientSunInterval   float64 `yaml:"ambientSunInterval"`
	SunLifetime          float64 `yaml:"sunLifetime"`
	CollectDelay         float64 `yaml:"collectDelay"`
	CooldownStep         float64 `yaml:"cooldownStep"`
	AmbientFallDuration  float64 `yaml:"ambientFallDuration"`
	ProducerFallDistance float64 `yaml:"producerFallDistance"`
	MaxLoadout           int     `yaml:"maxLoadout"`
}

// TimingConfig 战斗计时配置
// 时间单位毫秒, 速度单位像素/秒。
type TimingConfig struct {
	FirstWaveDelay       float64 `yaml:"firstWaveDelay"`
	WaveSpawnBase        float64 `yaml:"waveSpawnBase"`
	NextWaveDelay        float64 `yaml:"nextWaveDelay"`
	VictoryDelay         float64 `yaml:"victoryDelay"`
	DeathSettle          float64 `yaml:"deathSettle"`
	ExplosionLinger      float64 `yaml:"explosionLinger"`
	VaultGrace           float64 `yaml:"vaultGrace"`
	SlowDuration         float64 `yaml:"slowDuration"`
	SlowFactor           float64 `yaml:"slowFactor"`
	AnnouncementDuration float64 `yaml:"announcementDuration"`
	ZombieBaseSpeed      float64 `yaml:"zombieBaseSpeed"`
	ProjectileSpeed      float64 `yaml:"projectileSpeed"`
}

// RulesConfig game.yaml 的根结构
type RulesConfig struct {
	Field            FieldConfig   `yaml:"field"`
	Economy          EconomyConfig `yaml:"economy"`
	Timing           TimingConfig  `yaml:"timing"`
	SpawnPausePolicy string        `yaml:"spawnPausePolicy"`
}

// applyRulesDefaults 为缺失字段填入默认规则
func applyRulesDefaults(r *RulesConfig) {
	f := &r.Field
	setIntDefault(&f.Rows, 5)
	setIntDefault(&f.Cols, 9)
	setFloatDefault(&f.CellWidth, 80)
	setFloatDefault(&f.CellHeight, 100)
	setFloatDefault(&f.LawnLeft, 70)
	setFloatDefault(&f.ZombieWidth, 50)
	setFloatDefault(&f.ProjectileTolerance, 8)
	setFloatDefault(&f.SpawnOffset, 20)
	setFloatDefault(&f.DespawnMargin, 50)

	e := &r.Economy
	setIntDefault(&e.StartingSun, 150)
	setIntDefault(&e.SunValue, 25)
	setFloatDefault(&e.AmbientSunInterval, 8000)
	setFloatDefault(&e.SunLifetime, 12000)
	setFloatDefault(&e.CollectDelay, 350)
	setFloatDefault(&e.CooldownStep, 100)
	setFloatDefault(&e.AmbientFallDuration, 6000)
	setFloatDefault(&e.ProducerFallDistance, 40)
	setIntDefault(&e.MaxLoadout, 6)

	t := &r.Timing
	setFloatDefault(&t.FirstWaveDelay, 4000)
	setFloatDefault(&t.WaveSpawnBase, 3000)
	setFloatDefault(&t.NextWaveDelay, 5000)
	setFloatDefault(&t.VictoryDelay, 2000)
	setFloatDefault(&t.DeathSettle, 500)
	setFloatDefault(&t.ExplosionLinger, 400)
	setFloatDefault(&t.VaultGrace, 500)
	setFloatDefault(&t.SlowDuration, 4000)
	setFloatDefault(&t.SlowFactor, 0.5)
	setFloatDefault(&t.AnnouncementDuration, 2500)
	setFloatDefault(&t.ZombieBaseSpeed, 25)
	setFloatDefault(&t.ProjectileSpeed, 375)

	if r.SpawnPausePolicy == "" {
		r.SpawnPausePolicy = SpawnPolicyDrop
	}
}

func setIntDefault(v *int, def int) {
	if *v == 0 {
		*v = def
	}
}

func setFloatDefault(v *float64, def float64) {
	if *v == 0 {
		*v = def
	}
}

// validateRules 验证规则配置
func validateRules(r *RulesConfig) error {
	if r.Field.Rows < 1 || r.Field.Cols < 1 {
		return fmt.Errorf("field must have at least one row and column, got %dx%d", r.Field.Rows, r.Field.Cols)
	}
	if r.Field.CellWidth <= 0 || r.Field.CellHeight <= 0 {
		return fmt.Errorf("cell size must be positive, got %.1fx%.1f", r.Field.CellWidth, r.Field.CellHeight)
	}
	if r.Field.LawnLeft < 0 {
		return fmt.Errorf("lawnLeft cannot be negative, got %.1f", r.Field.LawnLeft)
	}
	if r.Economy.StartingSun < 0 {
		return fmt.Errorf("startingSun cannot be negative, got %d", r.Economy.StartingSun)
	}
	if r.Economy.SunValue < 1 {
		return fmt.Errorf("sunValue must be positive, got %d", r.Economy.SunValue)
	}
	if r.Economy.MaxLoadout < 1 {
		return fmt.Errorf("maxLoadout must be positive, got %d", r.Economy.MaxLoadout)
	}
	if r.Economy.CooldownStep <= 0 {
		return fmt.Errorf("cooldownStep must be positive, got %.1f", r.Economy.CooldownStep)
	}
	if r.Timing.SlowFactor <= 0 || r.Timing.SlowFactor > 1 {
		return fmt.Errorf("slowFactor must be in (0, 1], got %.2f", r.Timing.SlowFactor)
	}
	switch r.SpawnPausePolicy {
	case SpawnPolicyDrop, SpawnPolicyDefer:
	default:
		return fmt.Errorf("spawnPausePolicy must be one of: drop, defer, got %q", r.SpawnPausePolicy)
	}
	return nil
}
