package components

import "github.com/gonewx/lawncore/pkg/types"

// ZombieComponent 僵尸状态
//
// Lane 在生成后不再改变; X 为身体左边缘的连续水平坐标。
// Dying 为 true 时僵尸不再参与碰撞和阻挡, 等待死亡结算后移除。
type ZombieComponent struct {
	Type  types.ZombieType
	Class types.ZombieClass
	Lane  int
	X     float64

	// SpeedMultiplier 相对基础速度的倍率(狂暴后提升)
	SpeedMultiplier float64

	Slowed      bool
	SlowedUntil float64 // 游戏时间(毫秒)

	// Vaulted 撑杆跳只能使用一次
	Vaulted bool
	// VaultGraceUntil 跳跃后的免阻挡窗口结束时间
	VaultGraceUntil float64

	Enraged bool
	Eating  bool
	// LastAttack 上一次啃咬的游戏时间, 负值表示尚未攻击
	LastAttack float64

	Dying      bool
	DeathCause types.DestroyCause
}

// Alive 僵尸是否仍参与战斗
func (z *ZombieComponent) Alive() bool {
	return !z.Dying
}
