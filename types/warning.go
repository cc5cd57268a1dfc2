package types

import "fmt"

// WarningKind 警告类型
type WarningKind uint

// 警告类型常量定义
const (
	WarnUnknown        WarningKind = iota // 未知警告
	WarnBadEndpoint                       // 引脚无法归属节点
	WarnSelfLoop                          // 支路两端同节点
	WarnSourceConflict                    // 电压源约束冲突
	WarnSourceLoop                        // 纯导通环路电流不可定
	WarnKCLResidual                       // 节点电流残差超限
	WarnEMFMismatch                       // 电压源端压偏离电动势
	WarnBadResistance                     // 电阻非正或非有限
	WarnNotConverged                      // 迭代未收敛
)

var warningString = map[WarningKind]string{
	WarnUnknown:        "未知警告",
	WarnBadEndpoint:    "引脚无法归属节点",
	WarnSelfLoop:       "支路两端为同一节点",
	WarnSourceConflict: "电压源约束冲突",
	WarnSourceLoop:     "纯导通环路电流不可定",
	WarnKCLResidual:    "节点电流残差超限",
	WarnEMFMismatch:    "电压源端压偏离电动势",
	WarnBadResistance:  "电阻非正或非有限",
	WarnNotConverged:   "迭代未收敛",
}

// String 返回警告类型的字符串表示
func (k WarningKind) String() string {
	if s, ok := warningString[k]; ok {
		return s
	}
	return warningString[WarnUnknown]
}

// Warning 校验与构建警告
type Warning struct {
	Kind    WarningKind // 警告类型
	Subject int         // 涉及的节点/支路/元件ID
	Detail  string      // 详细信息
}

// String 输出状态
func (w Warning) String() string {
	return fmt.Sprintf("%s (%d): %s", w.Kind, w.Subject, w.Detail)
}
