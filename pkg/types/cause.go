package types

// DestroyCause 实体被移除的原因
type DestroyCause string

const (
	CauseNone      DestroyCause = ""
	CauseExpired   DestroyCause = "expired"   // 阳光超时
	CauseKilled    DestroyCause = "killed"    // 生命值归零
	CauseConsumed  DestroyCause = "consumed"  // 被大嘴花吞掉
	CauseCollected DestroyCause = "collected" // 阳光被收集
	CauseDetonated DestroyCause = "detonated" // 爆炸类植物引爆后移除
	CauseCleared   DestroyCause = "cleared"   // 被铲子铲除
	CauseMowed     DestroyCause = "mowed"     // 被割草机清除
	CauseOffField  DestroyCause = "offfield"  // 子弹飞出场地
	CauseHit       DestroyCause = "hit"       // 子弹命中后移除
)
