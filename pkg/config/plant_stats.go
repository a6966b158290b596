package config

import (
	"fmt"

	"github.com/gonewx/lawncore/pkg/types"
)

// PlantStats 单个植物类型的属性配置
// 时间字段单位毫秒。仅与该植物行为分类相关的字段需要填写。
type PlantStats struct {
	Name     string           `yaml:"name"`
	Class    types.PlantClass `yaml:"class"`
	Cost     int              `yaml:"cost"`
	Health   int              `yaml:"health"`
	Cooldown float64          `yaml:"cooldown"`

	// 射手
	Damage      int     `yaml:"damage"`
	FireRate    float64 `yaml:"fireRate"`
	Shots       int     `yaml:"shots"`
	ShotStagger float64 `yaml:"shotStagger"`
	Slows       bool    `yaml:"slows"`

	// 生产者
	SunRate float64 `yaml:"sunRate"`

	// 即时 / 地雷
	ExplosionDamage int     `yaml:"explosionDamage"`
	Fuse            float64 `yaml:"fuse"`
	ArmTime         float64 `yaml:"armTime"`
	Radius          int     `yaml:"radius"`

	// 吞噬
	ChewTime float64 `yaml:"chewTime"`
}

// PlantStatsConfig plants.yaml 的根结构
type PlantStatsConfig struct {
	Plants map[string]PlantStats `yaml:"plants"`
}

// applyPlantDefaults 射手默认单发
func applyPlantDefaults(config *PlantStatsConfig) {
	for id, stats := range config.Plants {
		if stats.Class == types.ClassShooter && stats.Shots == 0 {
			stats.Shots = 1
			config.Plants[id] = stats
		}
	}
}

// validatePlantStats 验证植物属性配置
func validatePlantStats(config *PlantStatsConfig) error {
	if len(config.Plants) == 0 {
		return fmt.Errorf("at least one plant type is required")
	}

	for id, stats := range config.Plants {
		if types.PlantTypeFromString(id) == types.PlantUnknown {
			return fmt.Errorf("plant %s: unknown plant type", id)
		}
		if stats.Class == types.ClassUnknown {
			return fmt.Errorf("plant %s: class is required", id)
		}
		if stats.Cost < 0 {
			return fmt.Errorf("plant %s: cost cannot be negative, got %d", id, stats.Cost)
		}
		if stats.Health < 1 {
			return fmt.Errorf("plant %s: health must be positive, got %d", id, stats.Health)
		}
		if stats.Cooldown < 0 {
			return fmt.Errorf("plant %s: cooldown cannot be negative, got %.0f", id, stats.Cooldown)
		}

		switch stats.Class {
		case types.ClassShooter:
			if stats.Damage < 1 || stats.FireRate <= 0 {
				return fmt.Errorf("plant %s: shooter requires damage and fireRate", id)
			}
			if stats.Shots > 1 && stats.ShotStagger <= 0 {
				return fmt.Errorf("plant %s: multi-shot requires shotStagger", id)
			}
		case types.ClassProducer:
			if stats.SunRate <= 0 {
				return fmt.Errorf("plant %s: producer requires sunRate", id)
			}
		case types.ClassInstant:
			if stats.ExplosionDamage < 1 || stats.Fuse <= 0 {
				return fmt.Errorf("plant %s: instant requires explosionDamage and fuse", id)
			}
		case types.ClassMine:
			if stats.ExplosionDamage < 1 || stats.ArmTime <= 0 {
				return fmt.Errorf("plant %s: mine requires explosionDamage and armTime", id)
			}
		case types.ClassEater:
			if stats.ChewTime <= 0 {
				return fmt.Errorf("plant %s: eater requires chewTime", id)
			}
		}

		if stats.Radius < 0 {
			return fmt.Errorf("plant %s: radius cannot be negative, got %d", id, stats.Radius)
		}
	}

	return nil
}
