package types

// NodeID 电气节点
type NodeID = int

// BranchID 支路
type BranchID = int

// ComponentID 元件
type ComponentID = int

// JunctionID 接线点
type JunctionID = int

// PinID 引脚
type PinID = int

// 默认连接常量定义
const (
	NoNodeID     NodeID     = -1 // 引脚未归属节点标记
	NoJunctionID JunctionID = -1 // 引脚未声明接线点标记
)
