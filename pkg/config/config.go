package config

import (
	"fmt"
	"io/fs"

	"github.com/gonewx/lawncore/pkg/embedded"
	"github.com/gonewx/lawncore/pkg/types"
	"gopkg.in/yaml.v3"
)

// 数据文件在数据目录内的相对路径
const (
	RulesFile   = "game.yaml"
	PlantsFile  = "plants.yaml"
	ZombiesFile = "zombies.yaml"
	// DefaultLevel 默认关卡文件
	DefaultLevel = "levels/level-1.yaml"
)

// GameConfig 一局战斗所需的全部只读配置
// 加载后不再修改, 多个对局可以共享同一份。
type GameConfig struct {
	Rules   RulesConfig
	Plants  map[types.PlantType]PlantStats
	Zombies map[types.ZombieType]ZombieStats
	Level   *LevelConfig
}

// Load 从文件系统加载配置
// 参数:
//
//	fsys - 数据目录(内置 embed.FS、os.DirFS 或测试用 fstest.MapFS)
//	levelPath - 关卡文件路径, 为空时使用 DefaultLevel
//
// 返回:
//
//	*GameConfig - 解析并验证后的配置
//	error - 文件缺失、YAML 错误或验证失败
func Load(fsys fs.FS, levelPath string) (*GameConfig, error) {
	if levelPath == "" {
		levelPath = DefaultLevel
	}

	var rules RulesConfig
	if err := decodeFile(fsys, RulesFile, &rules); err != nil {
		return nil, err
	}
	applyRulesDefaults(&rules)
	if err := validateRules(&rules); err != nil {
		return nil, fmt.Errorf("invalid rules in %s: %w", RulesFile, err)
	}

	var plants PlantStatsConfig
	if err := decodeFile(fsys, PlantsFile, &plants); err != nil {
		return nil, err
	}
	applyPlantDefaults(&plants)
	if err := validatePlantStats(&plants); err != nil {
		return nil, fmt.Errorf("invalid plant stats in %s: %w", PlantsFile, err)
	}

	var zombies ZombieStatsConfig
	if err := decodeFile(fsys, ZombiesFile, &zombies); err != nil {
		return nil, err
	}
	if err := validateZombieStats(&zombies); err != nil {
		return nil, fmt.Errorf("invalid zombie stats in %s: %w", ZombiesFile, err)
	}

	var level LevelConfig
	if err := decodeFile(fsys, levelPath, &level); err != nil {
		return nil, err
	}
	if err := validateLevelConfig(&level); err != nil {
		return nil, fmt.Errorf("invalid level config in %s: %w", levelPath, err)
	}

	cfg := &GameConfig{
		Rules:   rules,
		Plants:  make(map[types.PlantType]PlantStats, len(plants.Plants)),
		Zombies: make(map[types.ZombieType]ZombieStats, len(zombies.Zombies)),
		Level:   &level,
	}
	for id, stats := range plants.Plants {
		cfg.Plants[types.PlantTypeFromString(id)] = stats
	}
	for id, stats := range zombies.Zombies {
		cfg.Zombies[types.ZombieTypeFromString(id)] = stats
	}

	// 关卡引用的僵尸必须存在于图鉴, 行限制必须在场地内
	for i, wave := range level.Waves {
		for j, group := range wave.Groups {
			if _, ok := cfg.Zombies[types.ZombieTypeFromString(group.Type)]; !ok {
				return nil, fmt.Errorf("invalid level config in %s: wave %d, group %d: zombie %q has no stats", levelPath, i, j, group.Type)
			}
			for _, lane := range group.Lanes {
				if lane >= rules.Field.Rows {
					return nil, fmt.Errorf("invalid level config in %s: wave %d, group %d: lane %d outside %d rows", levelPath, i, j, lane, rules.Field.Rows)
				}
			}
		}
	}

	return cfg, nil
}

// LoadDefault 从当前数据目录(默认内置数据)加载配置
func LoadDefault() (*GameConfig, error) {
	return Load(embedded.FS(), "")
}

// decodeFile 读取并解析单个 YAML 文件
func decodeFile(fsys fs.FS, path string, out interface{}) error {
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to parse config YAML from %s: %w", path, err)
	}
	return nil
}

// Plant 返回植物属性
func (c *GameConfig) Plant(pt types.PlantType) (PlantStats, bool) {
	stats, ok := c.Plants[pt]
	return stats, ok
}

// Zombie 返回僵尸属性
func (c *GameConfig) Zombie(zt types.ZombieType) (ZombieStats, bool) {
	stats, ok := c.Zombies[zt]
	return stats, ok
}

// WaveCount 返回关卡波次数
func (c *GameConfig) WaveCount() int {
	if c.Level == nil {
		return 0
	}
	return len(c.Level.Waves)
}
