package components

// ExplosionComponent 爆炸特效
// 仅用于展示, 在 explosionLinger 之后随引爆植物一起移除。
type ExplosionComponent struct {
	Row, Col int
	Radius   int
}
