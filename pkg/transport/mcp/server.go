// Package mcp 通过 MCP(Model Context Protocol) 工具暴露一局战斗
//
// 与实时前端不同, MCP 模式下时间只在调用 advance 工具时推进, 便于代理逐步决策。
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/gonewx/lawncore/pkg/battle"
	"github.com/gonewx/lawncore/pkg/game"
	"github.com/gonewx/lawncore/pkg/transport"
	"github.com/gonewx/lawncore/pkg/types"
)

// 推进时间的限制(毫秒)
const (
	defaultStep   = 50
	maxAdvance    = 60000
	maxEventsSent = 50
)

// Server MCP 工具服务
// 工具调用可能并发到达, 对 Battle 的访问由互斥锁串行化。
type Server struct {
	mu        sync.Mutex
	battle    *battle.Battle
	events    []game.Event
	mcpServer *server.MCPServer
}

// NewServer 创建服务并注册全部工具
func NewServer(b *battle.Battle, version string) *Server {
	s := &Server{battle: b}
	b.Events().SubscribeAll(game.ListenerFunc(func(ev game.Event) {
		s.events = append(s.events, ev)
	}))

	s.mcpServer = server.NewMCPServer(
		"Lawn Defense",
		version,
		server.WithToolCapabilities(true),
		server.WithInstructions(`Lawn Defense - MCP Interface

Defend the house: zombies walk right-to-left along 5 lanes of a 5x9 lawn.
Plant defenders with sun, collect sun pellets, and survive every wave.

Time only advances when you call "advance". A typical loop:
  1. rules            - plant catalog (cost, cooldown, class)
  2. start_match      - choose 1-6 plants
  3. snapshot         - read the lawn
  4. place_defender / collect_pellet / clear_cell
  5. advance          - let time pass (e.g. 1000 ms) and read the events

Rows are 0-4 top to bottom, columns 0-8 left (house) to right.`),
	)
	s.registerTools()
	return s
}

// MCPServer 返回底层 MCP 服务
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcpServer
}

// ServeStdio 通过标准输入输出提供服务, 阻塞直到输入结束
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

func emptySchema() mcp.ToolInputSchema {
	return mcp.ToolInputSchema{Type: "object", Properties: map[string]interface{}{}}
}

func cellSchema() mcp.ToolInputSchema {
	return mcp.ToolInputSchema{
		Type: "object",
		Properties: map[string]interface{}{
			"row": map[string]interface{}{"type": "integer", "description": "Lane 0-4"},
			"col": map[string]interface{}{"type": "integer", "description": "Column 0-8"},
		},
		Required: []string{"row", "col"},
	}
}

// registerTools 注册所有工具
func (s *Server) registerTools() {
	plantNames := make([]string, 0, len(types.AllPlantTypes))
	for _, pt := range types.AllPlantTypes {
		plantNames = append(plantNames, pt.String())
	}

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "rules",
		Description: "List the plant catalog with cost, cooldown and class, plus the wave count",
		InputSchema: emptySchema(),
	}, s.handleRules)

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "snapshot",
		Description: "Get the full battle state as JSON",
		InputSchema: emptySchema(),
	}, s.handleSnapshot)

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "start_match",
		Description: "Start a match with a loadout of 1-6 distinct plants; after a match ends this starts a new one",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"plants": map[string]interface{}{
					"type":        "array",
					"items":       map[string]interface{}{"type": "string", "enum": plantNames},
					"description": "Plants to bring",
				},
			},
			Required: []string{"plants"},
		},
	}, s.handleStartMatch)

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "place_defender",
		Description: "Plant a defender from the loadout on an empty cell",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"plant": map[string]interface{}{"type": "string", "enum": plantNames},
				"row":   map[string]interface{}{"type": "integer", "description": "Lane 0-4"},
				"col":   map[string]interface{}{"type": "integer", "description": "Column 0-8"},
			},
			Required: []string{"plant", "row", "col"},
		},
	}, s.handlePlace)

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "clear_cell",
		Description: "Dig up the plant on a cell",
		InputSchema: cellSchema(),
	}, s.handleClear)

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "collect_pellet",
		Description: "Collect a sun pellet by id; omit id to collect every pellet on the lawn",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"id": map[string]interface{}{"type": "integer", "description": "Pellet entity id from the snapshot"},
			},
		},
	}, s.handleCollect)

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "advance",
		Description: "Let time pass and return the events that happened",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"duration_ms": map[string]interface{}{"type": "integer", "description": "Milliseconds to simulate (max 60000)"},
			},
			Required: []string{"duration_ms"},
		},
	}, s.handleAdvance)

	for _, action := range []string{transport.ActionPause, transport.ActionResume, transport.ActionRestart, transport.ActionQuit} {
		s.mcpServer.AddTool(mcp.Tool{
			Name:        action,
			Description: strings.ToUpper(action[:1]) + action[1:] + " the match",
			InputSchema: emptySchema(),
		}, s.simpleCommand(action))
	}
}

func arguments(request mcp.CallToolRequest) map[string]interface{} {
	args, _ := request.Params.Arguments.(map[string]interface{})
	if args == nil {
		return map[string]interface{}{}
	}
	return args
}

// intArg 读取整数参数(JSON 数字解码为 float64)
func intArg(args map[string]interface{}, key string) (int, error) {
	switch v := args[key].(type) {
	case float64:
		return int(v), nil
	case int:
		return v, nil
	case nil:
		return 0, fmt.Errorf("missing argument %q", key)
	default:
		return 0, fmt.Errorf("argument %q must be an integer", key)
	}
}

// status 命令执行后的简要状态
type status struct {
	Result  transport.Result `json:"result"`
	Phase   game.Phase       `json:"phase"`
	Paused  bool             `json:"paused"`
	Sun     int              `json:"sun"`
	Time    float64          `json:"time"`
	Outcome game.Outcome     `json:"outcome,omitempty"`
}

// run 串行执行命令并返回 JSON 状态
func (s *Server) run(cmd transport.Command) *mcp.CallToolResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	res := transport.Execute(s.battle, cmd)
	if res.Error != "" {
		return mcp.NewToolResultError(res.Error)
	}
	m := s.battle.Match()
	if !res.OK {
		return mcp.NewToolResultError(fmt.Sprintf("%s rejected (phase=%s paused=%v sun=%d)", cmd.Action, m.Phase, m.Paused, m.Sun))
	}
	return jsonResult(status{
		Result:  res,
		Phase:   m.Phase,
		Paused:  m.Paused,
		Sun:     m.Sun,
		Time:    m.GameTime,
		Outcome: m.Outcome,
	})
}

func jsonResult(v interface{}) *mcp.CallToolResult {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(err.Error())
	}
	return mcp.NewToolResultText(string(data))
}

func (s *Server) simpleCommand(action string) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return s.run(transport.Command{Action: action}), nil
	}
}

func (s *Server) handleRules(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	type plantInfo struct {
		Plant    string  `json:"plant"`
		Class    string  `json:"class"`
		Cost     int     `json:"cost"`
		Cooldown float64 `json:"cooldownMs"`
	}
	cfg := s.battle.Config()
	plants := make([]plantInfo, 0, len(cfg.Plants))
	for pt, stats := range cfg.Plants {
		plants = append(plants, plantInfo{Plant: pt.String(), Class: stats.Class.String(), Cost: stats.Cost, Cooldown: stats.Cooldown})
	}
	sort.Slice(plants, func(i, j int) bool { return plants[i].Plant < plants[j].Plant })

	return jsonResult(map[string]interface{}{
		"plants":     plants,
		"waves":      cfg.WaveCount(),
		"rows":       cfg.Rules.Field.Rows,
		"cols":       cfg.Rules.Field.Cols,
		"startSun":   cfg.Rules.Economy.StartingSun,
		"maxLoadout": cfg.Rules.Economy.MaxLoadout,
	}), nil
}

func (s *Server) handleSnapshot(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	s.mu.Lock()
	snap := s.battle.Snapshot()
	s.mu.Unlock()
	return jsonResult(snap), nil
}

func (s *Server) handleStartMatch(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	raw, _ := arguments(request)["plants"].([]interface{})
	plants := make([]string, 0, len(raw))
	for _, p := range raw {
		if name, ok := p.(string); ok {
			plants = append(plants, name)
		}
	}
	return s.run(transport.Command{Action: transport.ActionStart, Plants: plants}), nil
}

func (s *Server) handlePlace(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	plant, _ := args["plant"].(string)
	row, err := intArg(args, "row")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	col, err := intArg(args, "col")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return s.run(transport.Command{Action: transport.ActionPlace, Plant: plant, Row: row, Col: col}), nil
}

func (s *Server) handleClear(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	row, err := intArg(args, "row")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	col, err := intArg(args, "col")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return s.run(transport.Command{Action: transport.ActionClear, Row: row, Col: col}), nil
}

func (s *Server) handleCollect(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	if _, given := args["id"]; given {
		id, err := intArg(args, "id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return s.run(transport.Command{Action: transport.ActionCollect, ID: uint64(id)}), nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	collected := 0
	for _, sun := range s.battle.Snapshot().Suns {
		if s.battle.CollectPellet(sun.ID) {
			collected++
		}
	}
	return jsonResult(map[string]int{"collected": collected}), nil
}

// advanceReport advance 工具的返回
type advanceReport struct {
	Advanced float64      `json:"advancedMs"`
	Phase    game.Phase   `json:"phase"`
	Outcome  game.Outcome `json:"outcome,omitempty"`
	Sun      int          `json:"sun"`
	Wave     int          `json:"wave"`
	Zombies  int          `json:"zombiesOnLawn"`
	Pellets  int          `json:"pelletsOnLawn"`
	Events   []game.Event `json:"events"`
	Dropped  int          `json:"eventsOmitted,omitempty"`
}

func (s *Server) handleAdvance(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	duration, err := intArg(arguments(request), "duration_ms")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if duration <= 0 || duration > maxAdvance {
		return mcp.NewToolResultError(fmt.Sprintf("duration_ms must be in 1..%d", maxAdvance)), nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	m := s.battle.Match()
	if m.Phase != game.PhaseRunning {
		return mcp.NewToolResultError(fmt.Sprintf("match is %s", m.Phase)), nil
	}

	elapsed := 0.0
	for elapsed < float64(duration) && s.battle.Match().Phase == game.PhaseRunning {
		if ctx.Err() != nil {
			break
		}
		step := float64(defaultStep)
		if rest := float64(duration) - elapsed; rest < step {
			step = rest
		}
		s.battle.Tick(step)
		elapsed += step
	}

	snap := s.battle.Snapshot()
	report := advanceReport{
		Advanced: elapsed,
		Phase:    snap.Phase,
		Outcome:  snap.Outcome,
		Sun:      snap.Sun,
		Wave:     snap.Wave,
		Zombies:  s.battle.LiveZombies(),
		Pellets:  len(snap.Suns),
		Events:   interesting(s.events),
	}
	s.events = s.events[:0]
	if len(report.Events) > maxEventsSent {
		report.Dropped = len(report.Events) - maxEventsSent
		report.Events = report.Events[len(report.Events)-maxEventsSent:]
	}
	return jsonResult(report), nil
}

// interesting 过滤掉高频低价值事件(伤害、子弹生灭)
func interesting(events []game.Event) []game.Event {
	out := make([]game.Event, 0, len(events))
	for _, ev := range events {
		if ev.Type == game.EventDamageApplied {
			continue
		}
		if ev.Kind == game.KindProjectile {
			continue
		}
		out = append(out, ev)
	}
	return out
}
