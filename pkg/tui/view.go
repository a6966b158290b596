// Package tui 终端前端: 用 tcell 绘制草坪并把按键翻译为战斗命令
package tui

import (
	"fmt"
	"math"

	"github.com/gdamore/tcell/v2"

	"github.com/gonewx/lawncore/pkg/battle"
	"github.com/gonewx/lawncore/pkg/config"
	"github.com/gonewx/lawncore/pkg/types"
)

// 终端布局(字符单位)
const (
	cellChars = 6 // 每个格子的宽度
	laneLines = 2 // 每行草坪的高度
	gridLeft  = 3 // 割草机列右侧
	gridTop   = 2 // HUD 之下
)

var (
	styleDefault    = tcell.StyleDefault
	styleLawnLight  = tcell.StyleDefault.Background(tcell.NewRGBColor(46, 110, 40))
	styleLawnDark   = tcell.StyleDefault.Background(tcell.NewRGBColor(38, 92, 34))
	styleCursor     = tcell.StyleDefault.Background(tcell.ColorYellow).Foreground(tcell.ColorBlack)
	styleHUD        = tcell.StyleDefault.Foreground(tcell.ColorWhite).Bold(true)
	styleSun        = tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
	styleZombie     = tcell.StyleDefault.Foreground(tcell.ColorLightGray)
	styleSlowed     = tcell.StyleDefault.Foreground(tcell.ColorLightBlue)
	styleProjectile = tcell.StyleDefault.Foreground(tcell.ColorLime)
	styleExplosion  = tcell.StyleDefault.Foreground(tcell.ColorOrangeRed).Bold(true)
	styleBanner     = tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)
	styleSeedReady  = tcell.StyleDefault.Foreground(tcell.ColorGreen)
	styleSeedWait   = tcell.StyleDefault.Foreground(tcell.ColorGray)
)

// plantGlyphs 植物在终端中的字符
var plantGlyphs = map[types.PlantType]rune{
	types.PlantPeashooter: 'P',
	types.PlantSunflower:  'S',
	types.PlantWallnut:    'W',
	types.PlantSnowPea:    'I',
	types.PlantCherryBomb: 'C',
	types.PlantChomper:    'M',
	types.PlantRepeater:   'R',
	types.PlantPotatoMine: 'o',
}

// zombieGlyphs 僵尸在终端中的字符
var zombieGlyphs = map[types.ZombieType]rune{
	types.ZombieBasic:       'z',
	types.ZombieConehead:    'c',
	types.ZombieBuckethead:  'b',
	types.ZombieFlag:        'f',
	types.ZombiePolevaulter: 'v',
	types.ZombieNewspaper:   'n',
}

// Cursor 终端光标所在格子
type Cursor struct {
	Row int
	Col int
}

// View 把快照绘制到 tcell 屏幕
type View struct {
	field config.FieldConfig
}

// NewView 创建视图
func NewView(field config.FieldConfig) *View {
	return &View{field: field}
}

// columnOf 把场地水平坐标换算为屏幕列
func (v *View) columnOf(x float64) int {
	return gridLeft + int(math.Floor((x-v.field.LawnLeft)/v.field.CellWidth*cellChars))
}

// rowOf 把场地垂直坐标换算为屏幕行
func (v *View) rowOf(y float64) int {
	return gridTop + int(math.Floor(y/v.field.CellHeight*laneLines))
}

// laneRow 行的屏幕行(取格子上半部)
func laneRow(lane int) int {
	return gridTop + lane*laneLines
}

// Draw 绘制一帧
func (v *View) Draw(screen tcell.Screen, snap battle.Snapshot, cursor Cursor) {
	screen.Clear()

	v.drawHUD(screen, snap)
	v.drawLawn(screen, snap, cursor)
	v.drawPlants(screen, snap)
	v.drawZombies(screen, snap)
	v.drawProjectiles(screen, snap)
	v.drawSuns(screen, snap)
	v.drawSeeds(screen, snap)
	v.drawBanner(screen, snap)

	screen.Show()
}

func (v *View) drawHUD(screen tcell.Screen, snap battle.Snapshot) {
	status := string(snap.Phase)
	if snap.Paused {
		status = "paused"
	}
	if snap.Outcome != "" {
		status = string(snap.Outcome)
	}
	hud := fmt.Sprintf("Sun %-5d Wave %d/%d  %s  kills %d", snap.Sun, snap.Wave, snap.WaveCount, status, snap.Summary.ZombiesKilled)
	if snap.ShovelActive {
		hud += "  [shovel]"
	}
	drawText(screen, 0, 0, styleHUD, hud)
}

func (v *View) drawLawn(screen tcell.Screen, snap battle.Snapshot, cursor Cursor) {
	for row := 0; row < snap.Rows; row++ {
		for line := 0; line < laneLines; line++ {
			y := laneRow(row) + line
			mower := ' '
			if line == 0 && row < len(snap.Lawnmowers) && snap.Lawnmowers[row] {
				mower = 'L'
			}
			screen.SetContent(1, y, mower, nil, styleHUD)

			for col := 0; col < snap.Cols; col++ {
				style := styleLawnLight
				if (row+col)%2 == 1 {
					style = styleLawnDark
				}
				if row == cursor.Row && col == cursor.Col {
					style = styleCursor
				}
				for i := 0; i < cellChars; i++ {
					screen.SetContent(gridLeft+col*cellChars+i, y, ' ', nil, style)
				}
			}
		}
	}
}

// setGlyph 只改字符, 保留格子背景
func setGlyph(screen tcell.Screen, x, y int, ch rune, fg tcell.Style) {
	_, _, bg, _ := screen.GetContent(x, y)
	_, bgColor, _ := bg.Decompose()
	fgColor, _, attrs := fg.Decompose()
	screen.SetContent(x, y, ch, nil, tcell.StyleDefault.Foreground(fgColor).Background(bgColor).Attributes(attrs))
}

func (v *View) drawPlants(screen tcell.Screen, snap battle.Snapshot) {
	for _, p := range snap.Plants {
		glyph, ok := plantGlyphs[p.Type]
		if !ok {
			glyph = '?'
		}
		if p.Class == types.ClassMine && p.Armed {
			glyph = 'O'
		}
		if p.Detonating {
			glyph = '*'
		}
		x := gridLeft + p.Col*cellChars + 1
		y := laneRow(p.Row)
		setGlyph(screen, x, y, glyph, styleHUD)
		if p.MaxHealth > 0 {
			bar := fmt.Sprintf("%d", p.Health*9/p.MaxHealth)
			drawTextKeepBG(screen, x+1, y+1, styleDefault, bar)
		}
	}
}

func (v *View) drawZombies(screen tcell.Screen, snap battle.Snapshot) {
	for _, z := range snap.Zombies {
		glyph, ok := zombieGlyphs[z.Type]
		if !ok {
			glyph = 'Z'
		}
		style := styleZombie
		if z.Slowed {
			style = styleSlowed
		}
		if z.Dying {
			glyph = 'x'
		}
		x := v.columnOf(z.X)
		if x < gridLeft {
			x = gridLeft
		}
		setGlyph(screen, x, laneRow(z.Lane), glyph, style)
	}
}

func (v *View) drawProjectiles(screen tcell.Screen, snap battle.Snapshot) {
	for _, p := range snap.Projectiles {
		glyph := '•'
		if p.Slows {
			glyph = '°'
		}
		setGlyph(screen, v.columnOf(p.X), laneRow(p.Lane), glyph, styleProjectile)
	}
	for _, e := range snap.Explosions {
		for row := e.Row - e.Radius; row <= e.Row+e.Radius; row++ {
			for col := e.Col - e.Radius; col <= e.Col+e.Radius; col++ {
				if row < 0 || row >= snap.Rows || col < 0 || col >= snap.Cols {
					continue
				}
				setGlyph(screen, gridLeft+col*cellChars+3, laneRow(row)+1, '#', styleExplosion)
			}
		}
	}
}

func (v *View) drawSuns(screen tcell.Screen, snap battle.Snapshot) {
	for _, s := range snap.Suns {
		y := v.rowOf(s.Y)
		if y < gridTop {
			continue
		}
		setGlyph(screen, v.columnOf(s.X), y, '@', styleSun)
	}
}

func (v *View) drawSeeds(screen tcell.Screen, snap battle.Snapshot) {
	y := gridTop + snap.Rows*laneLines + 1
	x := 0
	for i, seed := range snap.Seeds {
		style := styleSeedWait
		if seed.Ready {
			style = styleSeedReady
		}
		if seed.Type == snap.Selected {
			style = style.Reverse(true)
		}
		label := fmt.Sprintf("%d:%s(%d)", i+1, seed.Type, seed.Cost)
		if seed.Cooldown > 0 {
			label += fmt.Sprintf(" %.0fs", math.Ceil(seed.Cooldown/1000))
		}
		drawText(screen, x, y, style, label)
		x += len(label) + 2
	}
	drawText(screen, 0, y+1, styleDefault, "arrows move  1-6 seed  space plant  s shovel  c sun  p pause  r restart  q quit")
}

func (v *View) drawBanner(screen tcell.Screen, snap battle.Snapshot) {
	if snap.Announcement == "" {
		return
	}
	width := gridLeft + snap.Cols*cellChars
	x := (width - len(snap.Announcement)) / 2
	if x < 0 {
		x = 0
	}
	drawText(screen, x, 1, styleBanner, snap.Announcement)
}

func drawText(screen tcell.Screen, x, y int, style tcell.Style, text string) {
	for _, r := range text {
		screen.SetContent(x, y, r, nil, style)
		x++
	}
}

func drawTextKeepBG(screen tcell.Screen, x, y int, style tcell.Style, text string) {
	for _, r := range text {
		setGlyph(screen, x, y, r, style)
		x++
	}
}

// cellAt 判断屏幕坐标落在哪个格子
func cellAt(x, y, rows, cols int) (int, int, bool) {
	if x < gridLeft || y < gridTop {
		return 0, 0, false
	}
	col := (x - gridLeft) / cellChars
	row := (y - gridTop) / laneLines
	if row >= rows || col >= cols {
		return 0, 0, false
	}
	return row, col, true
}
