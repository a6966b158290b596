package battle

import (
	"context"
	"sync"
	"time"
)

// Runner 在单独的 goroutine 上以固定帧率驱动 Battle
//
// Battle 只在该 goroutine 上被访问; 其他 goroutine 通过 Do 把操作排入同一队列,
// 所以命令与 tick 严格串行。
type Runner struct {
	battle   *Battle
	interval time.Duration
	ops      chan func(*Battle)
	done     chan struct{}
	stopOnce sync.Once
	stop     chan struct{}

	// OnTick 每帧结束后在 tick goroutine 上调用, 可为 nil
	OnTick func(b *Battle)
}

// NewRunner 创建运行器
// 参数:
//   - b: 要驱动的战斗
//   - tickRate: 每秒帧数, <= 0 时使用 60
func NewRunner(b *Battle, tickRate int) *Runner {
	if tickRate <= 0 {
		tickRate = 60
	}
	return &Runner{
		battle:   b,
		interval: time.Second / time.Duration(tickRate),
		ops:      make(chan func(*Battle)),
		done:     make(chan struct{}),
		stop:     make(chan struct{}),
	}
}

// Run 运行帧循环, 直到 ctx 取消或调用 Stop
func (r *Runner) Run(ctx context.Context) {
	defer close(r.done)

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			return
		case <-r.stop:
			return
		case op := <-r.ops:
			op(r.battle)
		case now := <-ticker.C:
			dt := now.Sub(last)
			last = now
			r.battle.Tick(float64(dt) / float64(time.Millisecond))
			if r.OnTick != nil {
				r.OnTick(r.battle)
			}
		}
	}
}

// Do 在 tick goroutine 上执行 fn 并等待完成
// 运行器已停止时返回 false, fn 不会被执行。
func (r *Runner) Do(fn func(b *Battle)) bool {
	finished := make(chan struct{})
	wrapped := func(b *Battle) {
		defer close(finished)
		fn(b)
	}
	select {
	case r.ops <- wrapped:
	case <-r.done:
		return false
	}
	<-finished
	return true
}

// Stop 停止帧循环并等待退出
func (r *Runner) Stop() {
	r.stopOnce.Do(func() { close(r.stop) })
	<-r.done
}

// Done 帧循环退出后关闭
func (r *Runner) Done() <-chan struct{} {
	return r.done
}
