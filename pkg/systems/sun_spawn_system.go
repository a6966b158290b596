package systems

import (
	"github.com/gonewx/lawncore/pkg/entities"
	"github.com/gonewx/lawncore/pkg/game"
)

// 天空阳光的落点参数
const (
	skySunMarginX = 40.0  // 左右边距
	skySunStartY  = -60.0 // 起始位置在屏幕上方
)

// SunSpawnSystem 天空阳光生成系统
// 开局后按固定间隔(游戏时间)从天空随机位置掉落阳光。
type SunSpawnSystem struct{}

// NewSunSpawnSystem 创建天空阳光生成系统
func NewSunSpawnSystem() *SunSpawnSystem {
	return &SunSpawnSystem{}
}

// Begin 调度第一颗天空阳光
func (s *SunSpawnSystem) Begin(m *game.Match) {
	s.scheduleNext(m, m.GameTime)
}

func (s *SunSpawnSystem) scheduleNext(m *game.Match, from float64) {
	m.At(game.ClockGame, from+m.Config.Rules.Economy.AmbientSunInterval, game.TimedEvent{
		Effect: game.EffectAmbientSun,
	})
}

// HandleAmbient 定时事件: 掉落一颗阳光并调度下一颗
func (s *SunSpawnSystem) HandleAmbient(m *game.Match, ev game.TimedEvent) {
	if m.Phase != game.PhaseRunning {
		return
	}
	width := m.Field.Width()
	height := m.Field.Height()

	x := skySunMarginX + m.Rand.Float64()*(width-2*skySunMarginX)
	targetY := height*0.25 + m.Rand.Float64()*height*0.5
	entities.NewSkySunEntity(m, x, skySunStartY, targetY)

	s.scheduleNext(m, ev.FireAt)
}
