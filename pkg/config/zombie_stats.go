package config

import (
	"fmt"

	"github.com/gonewx/lawncore/pkg/types"
)

// ZombieStats 单个僵尸类型的属性配置
type ZombieStats struct {
	Name       string            `yaml:"name"`
	Class      types.ZombieClass `yaml:"class"`
	Health     int               `yaml:"health"`
	Damage     int               `yaml:"damage"`
	Speed      float64           `yaml:"speed"`      // 相对基础速度的倍率
	AttackRate float64           `yaml:"attackRate"` // 两次啃咬的最小间隔(毫秒)

	// 撑杆跳: 越过障碍时后退的距离(格宽倍数)
	VaultDistance float64 `yaml:"vaultDistance"`

	// 狂暴: 生命降到阈值及以下后速度倍率变为 EnragedSpeed
	EnrageThreshold int     `yaml:"enrageThreshold"`
	EnragedSpeed    float64 `yaml:"enragedSpeed"`
}

// ZombieStatsConfig 僵尸属性配置文件结构
type ZombieStatsConfig struct {
	Zombies map[string]ZombieStats `yaml:"zombies"` // 僵尸类型到属性的映射
}

// validateZombieStats 验证僵尸属性配置的完整性和合法性
func validateZombieStats(config *ZombieStatsConfig) error {
	if len(config.Zombies) == 0 {
		return fmt.Errorf("at least one zombie type is required")
	}

	for zombieType, stats := range config.Zombies {
		if types.ZombieTypeFromString(zombieType) == types.ZombieUnknown {
			return fmt.Errorf("zombie %s: unknown zombie type", zombieType)
		}
		if stats.Class == types.ZombieClassUnknown {
			return fmt.Errorf("zombie %s: class is required", zombieType)
		}
		if stats.Health < 1 {
			return fmt.Errorf("zombie %s: health must be positive, got %d", zombieType, stats.Health)
		}
		if stats.Damage < 0 {
			return fmt.Errorf("zombie %s: damage cannot be negative, got %d", zombieType, stats.Damage)
		}
		if stats.Speed <= 0 {
			return fmt.Errorf("zombie %s: speed must be positive, got %.2f", zombieType, stats.Speed)
		}
		if stats.AttackRate <= 0 {
			return fmt.Errorf("zombie %s: attackRate must be positive, got %.0f", zombieType, stats.AttackRate)
		}

		switch stats.Class {
		case types.ZombieClassVaulter:
			if stats.VaultDistance <= 0 {
				return fmt.Errorf("zombie %s: vaulter requires vaultDistance", zombieType)
			}
		case types.ZombieClassEnrager:
			if stats.EnrageThreshold < 1 || stats.EnragedSpeed <= 0 {
				return fmt.Errorf("zombie %s: enrager requires enrageThreshold and enragedSpeed", zombieType)
			}
		}
	}

	return nil
}
