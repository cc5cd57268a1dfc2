package types

// BranchKind 支路元件类型
type BranchKind uint

// 电路元件类型常量定义
const (
	KindUnknown  BranchKind = iota // 未知类型
	KindSource                     // 电压源
	KindResistor                   // 电阻
	KindBulb                       // 灯泡
	KindSwitch                     // 开关
)

// kindString 元件映射
var kindString = map[BranchKind]struct {
	Name   string
	Letter string
	Pins   int
}{
	KindUnknown:  {Name: "Unknown", Letter: "?", Pins: 0},
	KindSource:   {Name: "Voltage", Letter: "V", Pins: 2},
	KindResistor: {Name: "Resistor", Letter: "R", Pins: 2},
	KindBulb:     {Name: "Bulb", Letter: "B", Pins: 2},
	KindSwitch:   {Name: "Switch", Letter: "S", Pins: 2},
}

var letterKind = map[string]BranchKind{
	"V": KindSource,
	"R": KindResistor,
	"B": KindBulb,
	"S": KindSwitch,
}

// String 返回元件类型的字符串表示
func (k BranchKind) String() string {
	if ks, ok := kindString[k]; ok {
		return ks.Name
	}
	return "Unknown"
}

// Letter 网表文件类型前缀
func (k BranchKind) Letter() string {
	if ks, ok := kindString[k]; ok {
		return ks.Letter
	}
	return "?"
}

// GetPostCount 获取引脚数量
func (k BranchKind) GetPostCount() int {
	if ks, ok := kindString[k]; ok {
		return ks.Pins
	}
	return 0
}

// GetLetterKind 通过网表前缀获取类型
func GetLetterKind(letter string) BranchKind {
	if k, ok := letterKind[letter]; ok {
		return k
	}
	return KindUnknown
}
