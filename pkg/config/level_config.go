package config

import (
	"fmt"

	"github.com/gonewx/lawncore/pkg/types"
)

// 波次提示类型
const (
	AlertNone  = ""
	AlertHuge  = "huge"  // 大波僵尸来袭
	AlertFinal = "final" // 最后一波
)

// LevelConfig 关卡配置数据结构
// 定义了关卡的基本信息和僵尸波次配置
type LevelConfig struct {
	ID    string       `yaml:"id"`    // 关卡ID
	Name  string       `yaml:"name"`  // 关卡名称
	Waves []WaveConfig `yaml:"waves"` // 僵尸波次配置列表(按顺序)
}

// WaveConfig 单个僵尸波次配置
// 组按顺序首尾相接, 组内单位按固定间隔出场。
type WaveConfig struct {
	Alert  string       `yaml:"alert"`  // 可选: "huge" 或 "final"
	Groups []SpawnGroup `yaml:"groups"` // 出怪组
}

// SpawnGroup 单个出怪组
type SpawnGroup struct {
	Type  string  `yaml:"type"`  // 僵尸类型: "basic", "conehead", ...
	Count int     `yaml:"count"` // 数量
	Delay float64 `yaml:"delay"` // 组内相邻单位间隔(毫秒)
	Lanes []int   `yaml:"lanes"` // 可选: 只在这些行出现(0 起)
}

// TotalZombies 返回本波次的僵尸总数
func (w WaveConfig) TotalZombies() int {
	total := 0
	for _, g := range w.Groups {
		total += g.Count
	}
	return total
}

// validateLevelConfig 验证关卡配置的完整性和合法性
func validateLevelConfig(config *LevelConfig) error {
	if config.ID == "" {
		return fmt.Errorf("level ID is required")
	}

	if len(config.Waves) == 0 {
		return fmt.Errorf("at least one wave is required")
	}

	for i, wave := range config.Waves {
		switch wave.Alert {
		case AlertNone, AlertHuge, AlertFinal:
		default:
			return fmt.Errorf("wave %d: alert must be one of: huge, final, got %q", i, wave.Alert)
		}

		if len(wave.Groups) == 0 {
			return fmt.Errorf("wave %d: at least one spawn group is required", i)
		}

		for j, group := range wave.Groups {
			if types.ZombieTypeFromString(group.Type) == types.ZombieUnknown {
				return fmt.Errorf("wave %d, group %d: unknown zombie type %q", i, j, group.Type)
			}
			if group.Count < 1 {
				return fmt.Errorf("wave %d, group %d: count must be at least 1, got %d", i, j, group.Count)
			}
			if group.Delay < 0 {
				return fmt.Errorf("wave %d, group %d: delay cannot be negative", i, j)
			}
			for _, lane := range group.Lanes {
				if lane < 0 {
					return fmt.Errorf("wave %d, group %d: lane cannot be negative, got %d", i, j, lane)
				}
			}
		}
	}

	return nil
}
