package components

import "github.com/gonewx/lawncore/pkg/ecs"

// ProjectileComponent 子弹
// 子弹只沿所在行向右飞行, 命中第一个僵尸后即移除。
type ProjectileComponent struct {
	Lane   int
	X      float64
	Damage int
	Slows  bool         // 命中后使僵尸减速
	Source ecs.EntityID // 发射者(可能已被移除)
}
