package app

import (
	"math"

	"github.com/gonewx/lawncore/pkg/config"
)

// 种子栏布局(像素)
const (
	SeedBarHeight = 80
	SunCounterW   = 80
	SeedCardW     = 64
	SeedCardH     = 68
	SeedCardGap   = 6
	SeedCardTop   = 6
	ShovelW       = 56
)

// TargetKind 点击目标种类
type TargetKind int

const (
	TargetNone TargetKind = iota
	TargetSeed
	TargetShovel
	TargetCell
)

// Target 一次点击落在的目标
type Target struct {
	Kind  TargetKind
	Index int // 卡片序号
	Row   int
	Col   int
}

// Layout 桌面端屏幕布局: 顶部种子栏, 其下为草坪
// 草坪坐标与场地坐标一致, 只在垂直方向偏移 SeedBarHeight。
type Layout struct {
	Field config.FieldConfig
	Seeds int
}

// Size 逻辑屏幕尺寸
func (l Layout) Size() (int, int) {
	w := int(math.Ceil(l.Field.Width()))
	if sx, _, sw, _ := l.ShovelRect(); int(math.Ceil(sx+sw)) > w {
		w = int(math.Ceil(sx + sw))
	}
	return w, SeedBarHeight + int(math.Ceil(l.Field.Height()))
}

// SeedRect 第 i 张卡片的矩形(x, y, w, h)
func (l Layout) SeedRect(i int) (float64, float64, float64, float64) {
	x := float64(SunCounterW + i*(SeedCardW+SeedCardGap))
	return x, SeedCardTop, SeedCardW, SeedCardH
}

// ShovelRect 铲子按钮矩形, 紧跟最后一张卡片
func (l Layout) ShovelRect() (float64, float64, float64, float64) {
	x, y, _, h := l.SeedRect(l.Seeds)
	return x, y, ShovelW, h
}

// ToScreen 场地坐标转屏幕坐标
func (l Layout) ToScreen(fx, fy float64) (float64, float64) {
	return fx, fy + SeedBarHeight
}

// ToField 屏幕坐标转场地坐标
func (l Layout) ToField(sx, sy float64) (float64, float64) {
	return sx, sy - SeedBarHeight
}

// Hit 判断屏幕坐标落在哪个目标上
func (l Layout) Hit(x, y float64) Target {
	if y < SeedBarHeight {
		for i := 0; i < l.Seeds; i++ {
			if rx, ry, rw, rh := l.SeedRect(i); inRect(x, y, rx, ry, rw, rh) {
				return Target{Kind: TargetSeed, Index: i}
			}
		}
		if rx, ry, rw, rh := l.ShovelRect(); inRect(x, y, rx, ry, rw, rh) {
			return Target{Kind: TargetShovel}
		}
		return Target{}
	}

	fx, fy := l.ToField(x, y)
	col := l.Field.ColumnAt(fx)
	row := int(math.Floor(fy / l.Field.CellHeight))
	if !l.Field.InBounds(row, col) {
		return Target{}
	}
	return Target{Kind: TargetCell, Row: row, Col: col}
}

func inRect(px, py, x, y, w, h float64) bool {
	return px >= x && px < x+w && py >= y && py < y+h
}
