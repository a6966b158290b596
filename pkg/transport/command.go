// Package transport 定义远程前端(WebSocket、MCP)共用的命令格式
//
// 远程命令以 JSON 描述, 由 Execute 翻译为 battle.Battle 的方法调用。
// Execute 必须在驱动战斗的 goroutine 上调用(通常经由 battle.Runner.Do)。
package transport

import (
	"fmt"

	"github.com/gonewx/lawncore/pkg/battle"
	"github.com/gonewx/lawncore/pkg/ecs"
	"github.com/gonewx/lawncore/pkg/types"
)

// 命令名称
const (
	ActionStart    = "start"
	ActionPlace    = "place"
	ActionClear    = "clear"
	ActionCollect  = "collect"
	ActionPause    = "pause"
	ActionResume   = "resume"
	ActionRestart  = "restart"
	ActionQuit     = "quit"
	ActionSelect   = "select"
	ActionShovel   = "shovel"
	ActionClick    = "click"
	ActionSnapshot = "snapshot"
)

// Command 一条远程命令
type Command struct {
	Action string   `json:"action"`
	Plant  string   `json:"plant,omitempty"`
	Plants []string `json:"plants,omitempty"`
	Row    int      `json:"row"`
	Col    int      `json:"col"`
	ID     uint64   `json:"id,omitempty"`
}

// Result 命令执行结果
// OK 为 false 且 Error 为空表示命令合法但被规则拒绝(无状态变化)。
type Result struct {
	Action string `json:"action"`
	OK     bool   `json:"ok"`
	Error  string `json:"error,omitempty"`
}

// ParsePlant 解析植物名称
func ParsePlant(name string) (types.PlantType, error) {
	pt := types.PlantTypeFromString(name)
	if pt == types.PlantUnknown {
		return pt, fmt.Errorf("unknown plant %q", name)
	}
	return pt, nil
}

// ParseLoadout 解析卡组
func ParseLoadout(names []string) ([]types.PlantType, error) {
	loadout := make([]types.PlantType, 0, len(names))
	for _, name := range names {
		pt, err := ParsePlant(name)
		if err != nil {
			return nil, err
		}
		loadout = append(loadout, pt)
	}
	return loadout, nil
}

// Execute 执行命令
func Execute(b *battle.Battle, cmd Command) Result {
	res := Result{Action: cmd.Action}
	fail := func(err error) Result {
		res.Error = err.Error()
		return res
	}

	switch cmd.Action {
	case ActionStart:
		loadout, err := ParseLoadout(cmd.Plants)
		if err != nil {
			return fail(err)
		}
		res.OK = b.StartMatch(loadout)
	case ActionPlace:
		pt, err := ParsePlant(cmd.Plant)
		if err != nil {
			return fail(err)
		}
		res.OK = b.PlaceDefender(pt, cmd.Row, cmd.Col)
	case ActionSelect:
		pt, err := ParsePlant(cmd.Plant)
		if err != nil {
			return fail(err)
		}
		res.OK = b.SelectSeed(pt)
	case ActionClear:
		res.OK = b.ClearCell(cmd.Row, cmd.Col)
	case ActionCollect:
		res.OK = b.CollectPellet(ecs.EntityID(cmd.ID))
	case ActionPause:
		res.OK = b.Pause()
	case ActionResume:
		res.OK = b.Resume()
	case ActionRestart:
		res.OK = b.Restart()
	case ActionQuit:
		res.OK = b.Quit()
	case ActionShovel:
		res.OK = b.ToggleShovel()
	case ActionClick:
		res.OK = b.ClickCell(cmd.Row, cmd.Col)
	case ActionSnapshot:
		res.OK = true
	default:
		return fail(fmt.Errorf("unknown action %q", cmd.Action))
	}
	return res
}
