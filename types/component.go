package types

// Endpoint 元件引脚
// 引脚通过声明的接线点或空间位置归并到电气节点,
// Junction 为 NoJunctionID 时仅按位置归并。
type Endpoint struct {
	Pos      Point      // 空间位置
	Junction JunctionID // 接线点标记
}

// Component 元件记录信息
// 正极为引脚0, 负极为引脚1; Value 对电压源为电动势(伏),
// 对电阻/灯泡为电阻(欧), 对开关无意义(由 Closed 决定)。
type Component struct {
	ID     ComponentID // 元件ID
	Kind   BranchKind  // 元件类型
	Value  float64     // 元件标称值
	Closed bool        // 开关状态
	Ends   [2]Endpoint // 引脚列表
}
