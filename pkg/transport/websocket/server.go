package websocket

import (
	"context"
	"encoding/json"
	"log"
	"net/http"

	"github.com/gonewx/lawncore/pkg/battle"
	"github.com/gonewx/lawncore/pkg/game"
	"github.com/gonewx/lawncore/pkg/transport"
)

// Options 服务参数
type Options struct {
	// SnapshotEvery 每隔多少帧广播一次快照, <= 0 时为 3
	SnapshotEvery int
	// ReadOnly 只允许观战, 拒绝客户端命令
	ReadOnly bool
}

// Server 把一个 battle.Runner 暴露为 WebSocket 服务
//
// 战斗事件在 tick goroutine 上缓存, 每帧结束时与快照一起广播。
type Server struct {
	hub    *Hub
	runner *battle.Runner
	every  int
	ticks  int
	queued []game.Event
}

// NewServer 创建服务并挂接到运行器
// 必须在 runner.Run 之前调用。
func NewServer(b *battle.Battle, runner *battle.Runner, opts Options) *Server {
	every := opts.SnapshotEvery
	if every <= 0 {
		every = 3
	}
	s := &Server{runner: runner, every: every}

	var exec Executor
	if !opts.ReadOnly {
		exec = s.execute
	}
	s.hub = NewHub(exec)

	b.Events().SubscribeAll(game.ListenerFunc(func(ev game.Event) {
		s.queued = append(s.queued, ev)
	}))
	runner.OnTick = s.onTick
	return s
}

// Hub 返回内部 Hub
func (s *Server) Hub() *Hub {
	return s.hub
}

// Run 运行 Hub, 直到 ctx 取消
func (s *Server) Run(ctx context.Context) {
	s.hub.Run(ctx)
}

// Handler 返回 HTTP 路由
//
//	GET /ws        WebSocket 连接
//	GET /snapshot  当前快照(JSON)
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.hub.ServeWS)
	mux.HandleFunc("/snapshot", s.serveSnapshot)
	return mux
}

func (s *Server) serveSnapshot(w http.ResponseWriter, r *http.Request) {
	var snap battle.Snapshot
	if !s.runner.Do(func(b *battle.Battle) { snap = b.Snapshot() }) {
		http.Error(w, "battle stopped", http.StatusServiceUnavailable)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(snap); err != nil {
		log.Printf("[WebSocket] Failed to write snapshot: %v", err)
	}
}

// execute 在 tick goroutine 上执行命令, 并附带执行后的快照
func (s *Server) execute(cmd transport.Command) (transport.Result, *battle.Snapshot) {
	var res transport.Result
	var snap battle.Snapshot
	if !s.runner.Do(func(b *battle.Battle) {
		res = transport.Execute(b, cmd)
		snap = b.Snapshot()
	}) {
		return transport.Result{Action: cmd.Action, Error: "battle stopped"}, nil
	}
	return res, &snap
}

// onTick 在 tick goroutine 上调用
func (s *Server) onTick(b *battle.Battle) {
	if len(s.queued) > 0 {
		s.hub.Publish(Message{Type: TypeEvents, Events: s.queued})
		s.queued = nil
	}
	s.ticks++
	if s.ticks%s.every != 0 {
		return
	}
	snap := b.Snapshot()
	s.hub.Publish(Message{Type: TypeSnapshot, Snapshot: &snap})
}
