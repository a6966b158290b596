package game

import (
	"container/heap"

	"github.com/gonewx/lawncore/pkg/ecs"
	"github.com/gonewx/lawncore/pkg/types"
)

// Clock 计时域
type Clock int

const (
	// ClockGame 游戏时钟: 只在对局运行且未暂停时前进
	ClockGame Clock = iota
	// ClockWall 墙钟: 每次 tick 都前进, 暂停也不停
	ClockWall
)

// Effect 定时事件的效果标签
type Effect string

const (
	EffectFuse            Effect = "fuse"             // 樱桃炸弹引信
	EffectArm             Effect = "arm"              // 土豆地雷武装
	EffectChewDone        Effect = "chew_done"        // 大嘴花咀嚼结束
	EffectSettle          Effect = "settle"           // 僵尸死亡结算
	EffectRemoveDetonated Effect = "remove_detonated" // 引爆后移除植物与特效
	EffectExtraShot       Effect = "extra_shot"       // 多发射手的后续子弹
	EffectSpawn           Effect = "spawn"            // 出怪
	EffectStartWave       Effect = "start_wave"       // 开始下一波
	EffectVictory         Effect = "victory"          // 胜利
	EffectCooldownStep    Effect = "cooldown_step"    // 冷却递减一步
	EffectCollect         Effect = "collect"          // 收集阳光入账
	EffectClearBanner     Effect = "clear_banner"     // 清除公告
	EffectAmbientSun      Effect = "ambient_sun"      // 天空掉落阳光
)

// TimedEvent 定时事件
// Entity 为 0 表示对局级事件。处理函数必须自行检查实体是否仍然存在。
type TimedEvent struct {
	Entity ecs.EntityID
	FireAt float64
	Clock  Clock
	Effect Effect

	// 可选参数
	Plant  types.PlantType
	Zombie types.ZombieType
	Wave   int
	Amount int
	Lanes  []int

	seq uint64
}

type eventHeap []TimedEvent

func (h eventHeap) Len() int { return len(h) }
func (h eventHeap) Less(i, j int) bool {
	if h[i].FireAt != h[j].FireAt {
		return h[i].FireAt < h[j].FireAt
	}
	return h[i].seq < h[j].seq
}
func (h eventHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }
func (h *eventHeap) Push(x interface{}) {
	*h = append(*h, x.(TimedEvent))
}
func (h *eventHeap) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

// TimerQueue 定时事件队列
// 每个计时域一个最小堆, 同一时刻的事件按调度顺序触发。
type TimerQueue struct {
	heaps [2]eventHeap
	seq   uint64
}

// NewTimerQueue 创建空队列
func NewTimerQueue() *TimerQueue {
	return &TimerQueue{}
}

// Schedule 加入一个定时事件
func (q *TimerQueue) Schedule(ev TimedEvent) {
	q.seq++
	ev.seq = q.seq
	heap.Push(&q.heaps[ev.Clock], ev)
}

// PopDue 弹出指定计时域中最早一个已到期(FireAt <= now)的事件
func (q *TimerQueue) PopDue(clock Clock, now float64) (TimedEvent, bool) {
	h := &q.heaps[clock]
	if h.Len() == 0 || (*h)[0].FireAt > now {
		return TimedEvent{}, false
	}
	return heap.Pop(h).(TimedEvent), true
}

// Len 返回待触发事件总数
func (q *TimerQueue) Len() int {
	return q.heaps[ClockGame].Len() + q.heaps[ClockWall].Len()
}

// Count 返回满足条件的待触发事件数
func (q *TimerQueue) Count(match func(TimedEvent) bool) int {
	n := 0
	for c := range q.heaps {
		for _, ev := range q.heaps[c] {
			if match(ev) {
				n++
			}
		}
	}
	return n
}

// Cancel 取消满足条件的事件, 返回取消数量
func (q *TimerQueue) Cancel(match func(TimedEvent) bool) int {
	removed := 0
	for c := range q.heaps {
		kept := q.heaps[c][:0]
		for _, ev := range q.heaps[c] {
			if match(ev) {
				removed++
				continue
			}
			kept = append(kept, ev)
		}
		q.heaps[c] = kept
		heap.Init(&q.heaps[c])
	}
	return removed
}
