package websocket

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/gonewx/lawncore/pkg/battle"
	"github.com/gonewx/lawncore/pkg/game"
	"github.com/gonewx/lawncore/pkg/transport"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer.
	maxMessageSize = 1024

	// 每个客户端的发送缓冲
	sendBuffer = 256
)

// 消息类型
const (
	TypeSnapshot = "snapshot"
	TypeEvents   = "events"
	TypeResult   = "result"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Message 服务端推送给客户端的消息
type Message struct {
	Type     string            `json:"type"`
	Snapshot *battle.Snapshot  `json:"snapshot,omitempty"`
	Events   []game.Event      `json:"events,omitempty"`
	Result   *transport.Result `json:"result,omitempty"`
}

// Executor 执行一条客户端命令
type Executor func(cmd transport.Command) (transport.Result, *battle.Snapshot)

// Client 一个 WebSocket 连接
type Client struct {
	hub  *Hub
	conn *websocket.Conn
	send chan []byte
}

// direct 发给单个客户端的消息
type direct struct {
	client *Client
	data   []byte
}

// Hub 维护所有连接并广播战斗状态
// 客户端集合只在 Run 所在的 goroutine 上修改。
type Hub struct {
	clients    map[*Client]bool
	broadcast  chan []byte
	direct     chan direct
	register   chan *Client
	unregister chan *Client
	done       chan struct{}
	execute    Executor
}

// NewHub 创建 Hub
// 参数:
//   - execute: 客户端命令的执行函数, 为 nil 时拒绝所有命令
func NewHub(execute Executor) *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		broadcast:  make(chan []byte, sendBuffer),
		direct:     make(chan direct, sendBuffer),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
		execute:    execute,
	}
}

// Run 运行事件循环, 直到 ctx 取消
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case <-ctx.Done():
			for client := range h.clients {
				h.unregisterClient(client)
			}
			return

		case client := <-h.register:
			h.registerClient(client)

		case client := <-h.unregister:
			h.unregisterClient(client)

		case data := <-h.broadcast:
			for client := range h.clients {
				h.deliver(client, data)
			}

		case msg := <-h.direct:
			if h.clients[msg.client] {
				h.deliver(msg.client, msg.data)
			}
		}
	}
}

// ServeWS 处理 WebSocket 升级请求
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[WebSocket] Upgrade failed: %v", err)
		return
	}

	client := &Client{
		hub:  h,
		conn: conn,
		send: make(chan []byte, sendBuffer),
	}
	select {
	case h.register <- client:
	case <-h.done:
		conn.Close()
		return
	}

	go client.writePump()
	go client.readPump()
}

// Publish 广播一条消息
// Hub 已停止或缓冲已满时丢弃, 不阻塞调用方(战斗 goroutine)。
func (h *Hub) Publish(msg Message) {
	data, err := json.Marshal(msg)
	if err != nil {
		log.Printf("[WebSocket] Failed to marshal %s message: %v", msg.Type, err)
		return
	}
	select {
	case h.broadcast <- data:
	case <-h.done:
	default:
		log.Printf("[WebSocket] Broadcast buffer full, dropping %s message", msg.Type)
	}
}

// reply 回复单个客户端
func (h *Hub) reply(client *Client, msg Message) {
	data, err := json.Marshal(msg)
	if err != nil {
		log.Printf("[WebSocket] Failed to marshal reply: %v", err)
		return
	}
	select {
	case h.direct <- direct{client: client, data: data}:
	case <-h.done:
	}
}

// deliver 投递到客户端发送缓冲, 满时断开该客户端
func (h *Hub) deliver(client *Client, data []byte) {
	select {
	case client.send <- data:
	default:
		h.unregisterClient(client)
	}
}

func (h *Hub) registerClient(client *Client) {
	h.clients[client] = true
	log.Printf("[WebSocket] Client registered (total clients: %d)", len(h.clients))
}

func (h *Hub) unregisterClient(client *Client) {
	if _, ok := h.clients[client]; ok {
		delete(h.clients, client)
		close(client.send)
		log.Printf("[WebSocket] Client unregistered (remaining clients: %d)", len(h.clients))
	}
}

// handle 解析并执行一条客户端命令
func (h *Hub) handle(client *Client, raw []byte) {
	var cmd transport.Command
	if err := json.Unmarshal(raw, &cmd); err != nil {
		h.reply(client, Message{Type: TypeResult, Result: &transport.Result{Error: "invalid command: " + err.Error()}})
		return
	}
	if h.execute == nil {
		h.reply(client, Message{Type: TypeResult, Result: &transport.Result{Action: cmd.Action, Error: "read-only server"}})
		return
	}
	res, snap := h.execute(cmd)
	h.reply(client, Message{Type: TypeResult, Result: &res, Snapshot: snap})
}

// readPump 读取客户端命令
func (c *Client) readPump() {
	defer func() {
		select {
		case c.hub.unregister <- c:
		case <-c.hub.done:
		}
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("[WebSocket] Read error: %v", err)
			}
			return
		}
		c.hub.handle(c, raw)
	}
}

// writePump 把发送缓冲写到连接, 并定时发送 ping
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
