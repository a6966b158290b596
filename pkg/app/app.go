// Package app 提供桌面端的 ebiten 包装器
//
// 该包把战斗模拟接到 ebiten 的 Update/Draw 循环上: Update 推进一帧并处理鼠标键盘,
// Draw 只读取快照绘制。
package app

import (
	"fmt"
	"image/color"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/basicfont"

	"github.com/gonewx/lawncore/pkg/battle"
	"github.com/gonewx/lawncore/pkg/game"
	"github.com/gonewx/lawncore/pkg/types"
)

// sunPickRadius 点击拾取阳光的半径
const sunPickRadius = 30

// Config 定义应用启动配置
type Config struct {
	// Loadout 开局卡组
	Loadout []types.PlantType
	// Autopilot 由自动驾驶代为操作
	Autopilot bool
	// Fullscreen 启动时全屏
	Fullscreen bool
}

// App 是桌面端的核心包装器，实现 ebiten.Game 接口
type App struct {
	battle *battle.Battle
	layout Layout
	pilot  *battle.Autopilot
	face   text.Face

	fullscreen               bool
	pendingWindowSizeReset   bool // 延迟设置窗口大小标志
	windowSizeResetCountdown int  // 延迟帧数
}

// NewApp 创建应用并开局
func NewApp(b *battle.Battle, cfg Config) (*App, error) {
	if b.Match().Phase == game.PhaseIdle && !b.StartMatch(cfg.Loadout) {
		return nil, fmt.Errorf("invalid loadout %v", cfg.Loadout)
	}

	a := &App{
		battle:     b,
		layout:     Layout{Field: b.Config().Rules.Field, Seeds: len(b.Match().Loadout)},
		face:       text.NewGoXFace(basicfont.Face7x13),
		fullscreen: cfg.Fullscreen,
	}
	if cfg.Autopilot {
		a.pilot = battle.NewAutopilot()
	}
	log.Printf("[App] Match started with %d seeds", a.layout.Seeds)
	return a, nil
}

// Run 打开窗口并运行到窗口关闭
func Run(a *App) error {
	w, h := a.layout.Size()
	ebiten.SetWindowSize(w, h)
	ebiten.SetWindowTitle("Lawn Defense")
	ebiten.SetFullscreen(a.fullscreen)
	if err := ebiten.RunGame(a); err != nil && err != ebiten.Termination {
		return fmt.Errorf("game loop failed: %w", err)
	}
	return nil
}

// Update 更新游戏逻辑
// 每个 tick 调用一次（通常每秒 60 次）
func (a *App) Update() error {
	a.updateWindow()

	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		a.battle.Quit()
		return ebiten.Termination
	}
	a.handleKeys()
	a.handleMouse()

	if a.pilot != nil {
		a.pilot.Step(a.battle)
	}

	deltaTime := 1000.0 / float64(ebiten.TPS())
	a.battle.Tick(deltaTime)
	return nil
}

// updateWindow 处理 F11 全屏切换
func (a *App) updateWindow() {
	// 延迟设置窗口大小（退出全屏后需要等待几帧才能正确设置）
	if a.pendingWindowSizeReset {
		a.windowSizeResetCountdown--
		if a.windowSizeResetCountdown <= 0 {
			ebiten.SetWindowSize(a.layout.Size())
			a.pendingWindowSizeReset = false
		}
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		if ebiten.IsFullscreen() {
			ebiten.SetFullscreen(false)
			if ebiten.IsWindowMaximized() || ebiten.IsWindowMinimized() {
				ebiten.RestoreWindow()
			}
			a.pendingWindowSizeReset = true
			a.windowSizeResetCountdown = 3
			log.Printf("[App] Exit fullscreen, will reset window size in 3 frames")
		} else {
			ebiten.SetFullscreen(true)
		}
	}
}

func (a *App) handleKeys() {
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyP), inpututil.IsKeyJustPressed(ebiten.KeySpace):
		if a.battle.Match().Paused {
			a.battle.Resume()
		} else {
			a.battle.Pause()
		}
	case inpututil.IsKeyJustPressed(ebiten.KeyR):
		a.battle.Restart()
	case inpututil.IsKeyJustPressed(ebiten.KeyS):
		a.battle.ToggleShovel()
	}

	keys := []ebiten.Key{ebiten.Key1, ebiten.Key2, ebiten.Key3, ebiten.Key4, ebiten.Key5, ebiten.Key6}
	for i, key := range keys {
		if inpututil.IsKeyJustPressed(key) {
			a.selectSeed(i)
		}
	}
}

func (a *App) handleMouse() {
	if !inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		return
	}
	x, y := ebiten.CursorPosition()
	a.Click(float64(x), float64(y))
}

// Click 处理一次左键点击(屏幕坐标)
// 阳光优先于卡片和格子。
func (a *App) Click(x, y float64) bool {
	fx, fy := a.layout.ToField(x, y)
	if id, ok := a.battle.SunAt(fx, fy, sunPickRadius); ok {
		return a.battle.CollectPellet(id)
	}

	target := a.layout.Hit(x, y)
	switch target.Kind {
	case TargetSeed:
		return a.selectSeed(target.Index)
	case TargetShovel:
		return a.battle.ToggleShovel()
	case TargetCell:
		return a.battle.ClickCell(target.Row, target.Col)
	}
	return false
}

func (a *App) selectSeed(index int) bool {
	loadout := a.battle.Match().Loadout
	if index < 0 || index >= len(loadout) {
		return false
	}
	return a.battle.SelectSeed(loadout[index])
}

// Draw 绘制游戏画面
// 每帧调用一次
func (a *App) Draw(screen *ebiten.Image) {
	newRenderer(screen, a.layout, a.face).draw(a.battle.Snapshot())
}

// DrawFinalScreen 实现 FinalScreenDrawer 接口
// 用于控制全屏时的缩放和 letterbox 颜色
func (a *App) DrawFinalScreen(screen ebiten.FinalScreen, offscreen *ebiten.Image, geoM ebiten.GeoM) {
	screen.Fill(color.Black)
	op := &ebiten.DrawImageOptions{}
	op.GeoM = geoM
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(offscreen, op)
}

// Layout 返回游戏的逻辑屏幕尺寸
// 此尺寸独立于实际窗口大小，Ebitengine 会自动处理缩放
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return a.layout.Size()
}

// Battle 返回正在驱动的战斗
func (a *App) Battle() *battle.Battle {
	return a.battle
}
