// Package types 定义共享的基础类型
package types

import "fmt"

// ZombieType 定义僵尸的类型
type ZombieType int

const (
	// ZombieUnknown 未知僵尸类型
	ZombieUnknown ZombieType = iota

	ZombieBasic       // 普通僵尸
	ZombieConehead    // 路障僵尸
	ZombieBuckethead  // 铁桶僵尸
	ZombieFlag        // 旗帜僵尸
	ZombiePolevaulter // 撑杆跳僵尸
	ZombieNewspaper   // 读报僵尸
)

// zombieTypeStringMap 僵尸类型到配置字符串的映射
var zombieTypeStringMap = map[ZombieType]string{
	ZombieBasic:       "basic",
	ZombieConehead:    "conehead",
	ZombieBuckethead:  "buckethead",
	ZombieFlag:        "flag",
	ZombiePolevaulter: "polevaulter",
	ZombieNewspaper:   "newspaper",
}

var stringToZombieTypeMap map[string]ZombieType

func init() {
	stringToZombieTypeMap = make(map[string]ZombieType)
	for zt, s := range zombieTypeStringMap {
		stringToZombieTypeMap[s] = zt
	}
	// 添加别名映射（处理历史命名不一致）
	stringToZombieTypeMap["newspaperzombie"] = ZombieNewspaper
	stringToZombieTypeMap["polevaulterzombie"] = ZombiePolevaulter
}

// String 返回僵尸类型的配置字符串表示（用于配置文件匹配）
func (z ZombieType) String() string {
	if s, ok := zombieTypeStringMap[z]; ok {
		return s
	}
	return "unknown"
}

// ZombieTypeFromString 将配置字符串转换为 ZombieType
// 支持标准名称和历史别名
func ZombieTypeFromString(s string) ZombieType {
	if zt, ok := stringToZombieTypeMap[s]; ok {
		return zt
	}
	return ZombieUnknown
}

// MarshalText 实现 encoding.TextMarshaler
func (z ZombieType) MarshalText() ([]byte, error) {
	return []byte(z.String()), nil
}

// UnmarshalText 实现 encoding.TextUnmarshaler
func (z *ZombieType) UnmarshalText(text []byte) error {
	zt := ZombieTypeFromString(string(text))
	if zt == ZombieUnknown {
		return fmt.Errorf("unknown zombie type %q", string(text))
	}
	*z = zt
	return nil
}

// ZombieClass 僵尸行为分类(封闭集合)
type ZombieClass int

const (
	ZombieClassUnknown ZombieClass = iota
	// ZombieClassWalker 普通行走、啃食
	ZombieClassWalker
	// ZombieClassVaulter 遇到第一株植物时跳过一次
	ZombieClassVaulter
	// ZombieClassEnrager 生命降到阈值后永久加速
	ZombieClassEnrager
)

var zombieClassStringMap = map[ZombieClass]string{
	ZombieClassWalker:  "walker",
	ZombieClassVaulter: "vaulter",
	ZombieClassEnrager: "enrager",
}

func (c ZombieClass) String() string {
	if s, ok := zombieClassStringMap[c]; ok {
		return s
	}
	return "unknown"
}

// MarshalText 实现 encoding.TextMarshaler
func (c ZombieClass) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText 实现 encoding.TextUnmarshaler
func (c *ZombieClass) UnmarshalText(text []byte) error {
	for class, s := range zombieClassStringMap {
		if s == string(text) {
			*c = class
			return nil
		}
	}
	return fmt.Errorf("unknown zombie class %q", string(text))
}
