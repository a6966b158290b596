package components

// SunState 表示阳光的状态
type SunState int

const (
	SunFalling SunState = iota // 正在下落
	SunLanded                  // 已落地,静止
)

// SunSource 阳光来源
type SunSource int

const (
	SunFromSky    SunSource = iota // 天空定时掉落
	SunFromPlant                   // 向日葵生产
)

// SunComponent 标记实体为阳光,并存储阳光特定的状态
type SunComponent struct {
	State   SunState // 当前状态
	Source  SunSource
	X, Y    float64
	TargetY float64 // 目标落地Y坐标
	// FallSpeed 下落速度(像素/毫秒)
	FallSpeed float64
}
