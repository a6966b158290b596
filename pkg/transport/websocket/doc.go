// Package websocket 提供战斗的 WebSocket 观战与远程控制
//
// 采用 hub-and-spoke 结构: Hub 持有所有连接, 每个连接各有一个读 goroutine
// 和一个写 goroutine。战斗本身由 battle.Runner 驱动, Hub 从不直接访问 Battle。
//
// 消息协议(JSON):
//   - 客户端 -> 服务端: transport.Command, 例如 {"action":"place","plant":"peashooter","row":2,"col":0}
//   - 服务端 -> 客户端: Message, type 为 snapshot / events / result
//
// 命令的回复(result)只发给发出命令的客户端, 并附带执行后的快照;
// 快照与事件周期性广播给所有客户端。
//
// 用法:
//
//	runner := battle.NewRunner(b, 60)
//	server := websocket.NewServer(b, runner, websocket.Options{})
//	go server.Run(ctx)
//	go runner.Run(ctx)
//	http.ListenAndServe(addr, server.Handler())
package websocket
