package app

import (
	"testing"

	"github.com/gonewx/lawncore/pkg/battle"
	"github.com/gonewx/lawncore/pkg/config"
	"github.com/gonewx/lawncore/pkg/entities"
	"github.com/gonewx/lawncore/pkg/types"
)

func newTestApp(t *testing.T) *App {
	t.Helper()
	cfg, err := config.LoadDefault()
	if err != nil {
		t.Fatalf("LoadDefault failed: %v", err)
	}
	b := battle.New(cfg, battle.Options{Seed: 3})
	a, err := NewApp(b, Config{Loadout: []types.PlantType{types.PlantPeashooter, types.PlantSunflower}})
	if err != nil {
		t.Fatalf("NewApp failed: %v", err)
	}
	return a
}

// TestLayoutHit 测试点击坐标到目标的映射
func TestLayoutHit(t *testing.T) {
	cfg, err := config.LoadDefault()
	if err != nil {
		t.Fatalf("LoadDefault failed: %v", err)
	}
	l := Layout{Field: cfg.Rules.Field, Seeds: 2}
	field := cfg.Rules.Field

	seed1X, seed1Y, _, _ := l.SeedRect(1)
	shovelX, shovelY, _, _ := l.ShovelRect()

	tests := []struct {
		name string
		x, y float64
		want Target
	}{
		{"sun counter", 10, 10, Target{}},
		{"second seed", seed1X + 1, seed1Y + 1, Target{Kind: TargetSeed, Index: 1}},
		{"shovel", shovelX + 1, shovelY + 1, Target{Kind: TargetShovel}},
		{"first cell", field.LawnLeft + 1, SeedBarHeight + 1, Target{Kind: TargetCell}},
		{"row 2 col 3", field.CellLeft(3) + 5, SeedBarHeight + 2*field.CellHeight + 5, Target{Kind: TargetCell, Row: 2, Col: 3}},
		{"mower strip", field.LawnLeft - 1, SeedBarHeight + 10, Target{}},
		{"right of grid", field.Width() + 1, SeedBarHeight + 10, Target{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := l.Hit(tt.x, tt.y); got != tt.want {
				t.Errorf("Hit(%v, %v) = %+v, want %+v", tt.x, tt.y, got, tt.want)
			}
		})
	}
}

// TestLayoutSize 测试屏幕尺寸覆盖草坪与种子栏
func TestLayoutSize(t *testing.T) {
	cfg, _ := config.LoadDefault()
	l := Layout{Field: cfg.Rules.Field, Seeds: 6}
	w, h := l.Size()
	if float64(w) < cfg.Rules.Field.Width() {
		t.Errorf("width %d narrower than field", w)
	}
	sx, _, sw, _ := l.ShovelRect()
	if float64(w) < sx+sw {
		t.Errorf("width %d cuts off shovel at %v", w, sx+sw)
	}
	if h != SeedBarHeight+int(cfg.Rules.Field.Height()) {
		t.Errorf("height = %d", h)
	}
}

// TestNewAppRejectsBadLoadout 测试非法卡组
func TestNewAppRejectsBadLoadout(t *testing.T) {
	cfg, _ := config.LoadDefault()
	b := battle.New(cfg, battle.Options{})
	if _, err := NewApp(b, Config{}); err == nil {
		t.Error("empty loadout should fail")
	}
}

// TestClickSeedThenCell 测试点卡片再点格子种植
func TestClickSeedThenCell(t *testing.T) {
	a := newTestApp(t)
	field := a.layout.Field

	x, y, _, _ := a.layout.SeedRect(0)
	if !a.Click(x+2, y+2) {
		t.Fatal("seed click rejected")
	}
	cx, cy := a.layout.ToScreen(field.CellCenter(1, 1))
	if !a.Click(cx, cy) {
		t.Fatal("cell click rejected")
	}
	if a.Battle().Match().Sun != 50 {
		t.Errorf("sun = %d, want 50", a.Battle().Match().Sun)
	}
	if len(a.Battle().Snapshot().Plants) != 1 {
		t.Error("expected one plant")
	}
}

// TestClickCollectsSunFirst 测试阳光优先于格子
func TestClickCollectsSunFirst(t *testing.T) {
	a := newTestApp(t)
	m := a.Battle().Match()
	field := a.layout.Field

	fx, fy := field.CellCenter(2, 2)
	entities.NewPlantSunEntity(m, fx, fy)

	sx, sy := a.layout.ToScreen(fx, fy)
	if !a.Click(sx, sy) {
		t.Fatal("sun click rejected")
	}
	if len(a.Battle().Snapshot().Suns) != 0 {
		t.Error("sun should be collected")
	}
}

// TestClickShovel 测试点击铲子按钮
func TestClickShovel(t *testing.T) {
	a := newTestApp(t)
	x, y, _, _ := a.layout.ShovelRect()
	a.Click(x+1, y+1)
	if !a.Battle().Match().ShovelActive {
		t.Error("shovel should be active")
	}
}
