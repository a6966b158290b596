package app

import (
	"fmt"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/gonewx/lawncore/pkg/battle"
	"github.com/gonewx/lawncore/pkg/types"
)

var (
	colorSeedBar    = color.RGBA{R: 92, G: 60, B: 30, A: 255}
	colorLawnLight  = color.RGBA{R: 92, G: 160, B: 60, A: 255}
	colorLawnDark   = color.RGBA{R: 76, G: 140, B: 48, A: 255}
	colorMowerLane  = color.RGBA{R: 120, G: 100, B: 70, A: 255}
	colorMower      = color.RGBA{R: 200, G: 40, B: 40, A: 255}
	colorSun        = color.RGBA{R: 255, G: 220, B: 40, A: 255}
	colorPea        = color.RGBA{R: 90, G: 220, B: 60, A: 255}
	colorSnowPea    = color.RGBA{R: 140, G: 210, B: 255, A: 255}
	colorZombie     = color.RGBA{R: 130, G: 140, B: 150, A: 255}
	colorZombieSlow = color.RGBA{R: 120, G: 170, B: 230, A: 255}
	colorZombieDead = color.RGBA{R: 80, G: 80, B: 80, A: 160}
	colorExplosion  = color.RGBA{R: 255, G: 120, B: 20, A: 140}
	colorHealthBack = color.RGBA{R: 40, G: 0, B: 0, A: 200}
	colorHealth     = color.RGBA{R: 60, G: 220, B: 60, A: 255}
	colorCardReady  = color.RGBA{R: 230, G: 210, B: 160, A: 255}
	colorCardWait   = color.RGBA{R: 110, G: 100, B: 80, A: 255}
	colorSelected   = color.RGBA{R: 255, G: 255, B: 0, A: 255}
	colorShadow     = color.RGBA{A: 160}
)

// plantColors 每种植物的主色
var plantColors = map[types.PlantType]color.RGBA{
	types.PlantPeashooter: {R: 40, G: 180, B: 40, A: 255},
	types.PlantSunflower:  {R: 250, G: 200, B: 20, A: 255},
	types.PlantWallnut:    {R: 160, G: 110, B: 50, A: 255},
	types.PlantSnowPea:    {R: 90, G: 170, B: 230, A: 255},
	types.PlantCherryBomb: {R: 210, G: 20, B: 40, A: 255},
	types.PlantChomper:    {R: 140, G: 40, B: 170, A: 255},
	types.PlantRepeater:   {R: 20, G: 130, B: 20, A: 255},
	types.PlantPotatoMine: {R: 180, G: 140, B: 90, A: 255},
}

// renderer 一帧的绘制上下文
type renderer struct {
	screen *ebiten.Image
	layout Layout
	face   text.Face
}

func newRenderer(screen *ebiten.Image, layout Layout, face text.Face) *renderer {
	return &renderer{screen: screen, layout: layout, face: face}
}

func (r *renderer) draw(snap battle.Snapshot) {
	r.drawLawn(snap)
	r.drawPlants(snap)
	r.drawZombies(snap)
	r.drawProjectiles(snap)
	r.drawExplosions(snap)
	r.drawSeedBar(snap)
	r.drawSuns(snap)
	r.drawOverlay(snap)
}

func (r *renderer) rect(x, y, w, h float64, clr color.Color) {
	vector.DrawFilledRect(r.screen, float32(x), float32(y), float32(w), float32(h), clr, false)
}

func (r *renderer) circle(x, y, radius float64, clr color.Color) {
	vector.DrawFilledCircle(r.screen, float32(x), float32(y), float32(radius), clr, true)
}

func (r *renderer) text(s string, x, y float64, clr color.Color) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(clr)
	text.Draw(r.screen, s, r.face, op)
}

// textCentered 以 (cx, y) 为中心上沿绘制文字
func (r *renderer) textCentered(s string, cx, y float64, clr color.Color) {
	w, _ := text.Measure(s, r.face, 0)
	r.text(s, cx-w/2, y, clr)
}

func (r *renderer) drawLawn(snap battle.Snapshot) {
	field := r.layout.Field
	_, top := r.layout.ToScreen(0, 0)
	r.rect(0, top, field.LawnLeft, field.Height(), colorMowerLane)

	for row := 0; row < snap.Rows; row++ {
		for col := 0; col < snap.Cols; col++ {
			clr := colorLawnLight
			if (row+col)%2 == 1 {
				clr = colorLawnDark
			}
			x, y := r.layout.ToScreen(field.CellLeft(col), float64(row)*field.CellHeight)
			r.rect(x, y, field.CellWidth, field.CellHeight, clr)
		}
		if row < len(snap.Lawnmowers) && snap.Lawnmowers[row] {
			_, y := r.layout.ToScreen(0, field.LaneY(row))
			r.rect(field.LawnLeft/2-18, y-12, 36, 24, colorMower)
		}
	}
}

func (r *renderer) healthBar(cx, top, width float64, health, maxHealth int) {
	if maxHealth <= 0 || health >= maxHealth {
		return
	}
	frac := math.Max(0, float64(health)/float64(maxHealth))
	r.rect(cx-width/2, top, width, 4, colorHealthBack)
	r.rect(cx-width/2, top, width*frac, 4, colorHealth)
}

func (r *renderer) drawPlants(snap battle.Snapshot) {
	field := r.layout.Field
	for _, p := range snap.Plants {
		fx, fy := field.CellCenter(p.Row, p.Col)
		x, y := r.layout.ToScreen(fx, fy)
		clr, ok := plantColors[p.Type]
		if !ok {
			clr = color.RGBA{R: 255, G: 0, B: 255, A: 255}
		}

		radius := field.CellWidth * 0.32
		switch {
		case p.Detonating:
			radius *= 1.4
		case p.Class == types.ClassMine && !p.Armed:
			radius *= 0.6
		}
		r.circle(x, y, radius, clr)
		if p.Busy {
			r.textCentered("...", x, y-6, color.White)
		}
		r.healthBar(x, y-radius-8, field.CellWidth*0.6, p.Health, p.MaxHealth)
	}
}

func (r *renderer) drawZombies(snap battle.Snapshot) {
	field := r.layout.Field
	for _, z := range snap.Zombies {
		x, y := r.layout.ToScreen(z.X, field.LaneY(z.Lane))
		clr := colorZombie
		switch {
		case z.Dying:
			clr = colorZombieDead
		case z.Slowed:
			clr = colorZombieSlow
		}
		h := field.CellHeight * 0.8
		r.rect(x, y-h/2, field.ZombieWidth, h, clr)
		r.textCentered(z.Type.String(), x+field.ZombieWidth/2, y-6, color.Black)
		r.healthBar(x+field.ZombieWidth/2, y-h/2-6, field.ZombieWidth, z.Health, z.MaxHealth)
	}
}

func (r *renderer) drawProjectiles(snap battle.Snapshot) {
	field := r.layout.Field
	for _, p := range snap.Projectiles {
		x, y := r.layout.ToScreen(p.X, field.LaneY(p.Lane)-field.CellHeight*0.15)
		clr := colorPea
		if p.Slows {
			clr = colorSnowPea
		}
		r.circle(x, y, 7, clr)
	}
}

func (r *renderer) drawExplosions(snap battle.Snapshot) {
	field := r.layout.Field
	for _, e := range snap.Explosions {
		x, y := r.layout.ToScreen(field.CellLeft(e.Col-e.Radius), float64(e.Row-e.Radius)*field.CellHeight)
		span := float64(2*e.Radius + 1)
		r.rect(x, y, span*field.CellWidth, span*field.CellHeight, colorExplosion)
	}
}

func (r *renderer) drawSuns(snap battle.Snapshot) {
	for _, s := range snap.Suns {
		x, y := r.layout.ToScreen(s.X, s.Y)
		r.circle(x, y, 22, colorSun)
	}
}

func (r *renderer) drawSeedBar(snap battle.Snapshot) {
	w, _ := r.layout.Size()
	r.rect(0, 0, float64(w), SeedBarHeight, colorSeedBar)
	r.circle(SunCounterW/2, 30, 20, colorSun)
	r.textCentered(fmt.Sprintf("%d", snap.Sun), SunCounterW/2, 56, color.White)

	for i, seed := range snap.Seeds {
		x, y, cw, ch := r.layout.SeedRect(i)
		clr := colorCardWait
		if seed.Ready {
			clr = colorCardReady
		}
		if seed.Type == snap.Selected {
			r.rect(x-3, y-3, cw+6, ch+6, colorSelected)
		}
		r.rect(x, y, cw, ch, clr)
		if pc, ok := plantColors[seed.Type]; ok {
			r.circle(x+cw/2, y+24, 14, pc)
		}
		r.textCentered(fmt.Sprintf("%d", seed.Cost), x+cw/2, y+44, color.Black)
		if seed.Cooldown > 0 {
			r.rect(x, y, cw, 10, colorShadow)
			r.textCentered(fmt.Sprintf("%.0f", math.Ceil(seed.Cooldown/1000)), x+cw/2, y, color.White)
		}
	}

	x, y, sw, sh := r.layout.ShovelRect()
	clr := colorCardWait
	if snap.ShovelActive {
		clr = colorSelected
	}
	r.rect(x, y, sw, sh, clr)
	r.textCentered("dig", x+sw/2, y+sh/2-6, color.Black)
}

func (r *renderer) drawOverlay(snap battle.Snapshot) {
	w, h := r.layout.Size()
	cx := float64(w) / 2

	status := fmt.Sprintf("Wave %d/%d  Kills %d", snap.Wave, snap.WaveCount, snap.Summary.ZombiesKilled)
	r.text(status, float64(w)-150, SeedBarHeight-16, color.White)

	if snap.Announcement != "" {
		r.textCentered(snap.Announcement, cx, float64(h)/2-40, color.RGBA{R: 255, G: 60, B: 60, A: 255})
	}

	var banner string
	switch {
	case snap.Outcome != "":
		banner = fmt.Sprintf("%s  (R to restart)", snap.Outcome)
	case snap.Paused:
		banner = "PAUSED"
	}
	if banner != "" {
		r.rect(0, float64(h)/2-20, float64(w), 40, colorShadow)
		r.textCentered(banner, cx, float64(h)/2-6, color.White)
	}
}
