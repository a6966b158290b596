// Package types 定义共享的基础类型
// 这个包不依赖任何其他业务包，用于解决循环引用问题
package types

import "fmt"

// PlantType 定义植物的类型
type PlantType int

const (
	// PlantUnknown 未知植物类型
	PlantUnknown PlantType = iota
	// PlantPeashooter 豌豆射手
	PlantPeashooter
	// PlantSunflower 向日葵
	PlantSunflower
	// PlantWallnut 坚果墙
	PlantWallnut
	// PlantSnowPea 寒冰射手
	PlantSnowPea
	// PlantCherryBomb 樱桃炸弹
	PlantCherryBomb
	// PlantChomper 大嘴花
	PlantChomper
	// PlantRepeater 双发射手
	PlantRepeater
	// PlantPotatoMine 土豆地雷
	PlantPotatoMine
)

// AllPlantTypes 按图鉴顺序列出所有可种植类型
var AllPlantTypes = []PlantType{
	PlantPeashooter,
	PlantSunflower,
	PlantWallnut,
	PlantSnowPea,
	PlantCherryBomb,
	PlantChomper,
	PlantRepeater,
	PlantPotatoMine,
}

var plantTypeStringMap = map[PlantType]string{
	PlantPeashooter: "peashooter",
	PlantSunflower:  "sunflower",
	PlantWallnut:    "wallnut",
	PlantSnowPea:    "snowpea",
	PlantCherryBomb: "cherrybomb",
	PlantChomper:    "chomper",
	PlantRepeater:   "repeater",
	PlantPotatoMine: "potatomine",
}

var stringToPlantTypeMap map[string]PlantType

func init() {
	stringToPlantTypeMap = make(map[string]PlantType, len(plantTypeStringMap))
	for pt, s := range plantTypeStringMap {
		stringToPlantTypeMap[s] = pt
	}
}

// String 返回植物类型的配置字符串表示
func (p PlantType) String() string {
	if s, ok := plantTypeStringMap[p]; ok {
		return s
	}
	return "unknown"
}

// PlantTypeFromString 将配置字符串转换为 PlantType
func PlantTypeFromString(s string) PlantType {
	if pt, ok := stringToPlantTypeMap[s]; ok {
		return pt
	}
	return PlantUnknown
}

// MarshalText 实现 encoding.TextMarshaler (YAML/JSON 使用字符串形式)
func (p PlantType) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText 实现 encoding.TextUnmarshaler
func (p *PlantType) UnmarshalText(text []byte) error {
	pt := PlantTypeFromString(string(text))
	if pt == PlantUnknown {
		return fmt.Errorf("unknown plant type %q", string(text))
	}
	*p = pt
	return nil
}

// PlantClass 植物行为分类(封闭集合)
type PlantClass int

const (
	ClassUnknown PlantClass = iota
	// ClassShooter 射手: 车道内有目标时按射速发射子弹
	ClassShooter
	// ClassProducer 生产者: 按间隔产出阳光
	ClassProducer
	// ClassDefense 防御: 无主动行为
	ClassDefense
	// ClassInstant 即时: 种下后引信到时爆炸
	ClassInstant
	// ClassEater 吞噬: 吞掉正前方僵尸后进入咀嚼
	ClassEater
	// ClassMine 地雷: 武装后接触爆炸
	ClassMine
)

var plantClassStringMap = map[PlantClass]string{
	ClassShooter:  "shooter",
	ClassProducer: "producer",
	ClassDefense:  "defense",
	ClassInstant:  "instant",
	ClassEater:    "eater",
	ClassMine:     "mine",
}

func (c PlantClass) String() string {
	if s, ok := plantClassStringMap[c]; ok {
		return s
	}
	return "unknown"
}

// MarshalText 实现 encoding.TextMarshaler
func (c PlantClass) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText 实现 encoding.TextUnmarshaler
func (c *PlantClass) UnmarshalText(text []byte) error {
	for class, s := range plantClassStringMap {
		if s == string(text) {
			*c = class
			return nil
		}
	}
	return fmt.Errorf("unknown plant class %q", string(text))
}
