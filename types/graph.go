package types

// Node 电气节点
type Node struct {
	ID       NodeID  // 节点ID
	Voltage  float64 // 求解电压(伏)
	Ground   bool    // 参考地标记
	Subgraph int     // 所属连通子图编号
}

// Branch 支路
// 求解输出写入 Current/VoltageDrop, 标称值与拓扑不被求解修改。
// 电流符号约定: 正值表示电流由正极流向负极。
type Branch struct {
	ID        BranchID    // 支路ID
	Component ComponentID // 来源元件ID
	Kind      BranchKind  // 元件类型
	Value     float64     // 标称值(电动势或电阻)
	Closed    bool        // 开关状态
	Pos       NodeID      // 正极节点
	Neg       NodeID      // 负极节点
	// 求解输出
	Current     float64 // 支路电流(安)
	VoltageDrop float64 // 支路压降(伏)
}

// Resistance 支路在给定求解参数下的等效电阻
// 电压源与闭合开关为理想导通返回0, 断开开关取大有限电阻。
func (b *Branch) Resistance(cfg *SolveConfig) float64 {
	switch b.Kind {
	case KindSource:
		return 0
	case KindSwitch:
		if b.Closed {
			return 0
		}
		return cfg.OpenSwitchResistance
	default:
		return b.Value
	}
}

// Shorting 支路是否理想导通(电压源或闭合开关)
// 此类支路归并进超节点整组求解, 电流由端点KCL平衡推算。
func (b *Branch) Shorting() bool {
	return b.Kind == KindSource || (b.Kind == KindSwitch && b.Closed)
}

// Other 支路另一端节点
func (b *Branch) Other(n NodeID) NodeID {
	if b.Pos == n {
		return b.Neg
	}
	return b.Pos
}

// CircuitGraph 电路图表
// 一次求解拥有的拓扑快照, 由拓扑构建产出。
type CircuitGraph struct {
	Nodes        []*Node      // 节点列表
	Branches     []*Branch    // 支路列表
	Incident     [][]BranchID // 节点关联支路
	Grounds      []NodeID     // 各子图接地节点
	NumSubgraphs int          // 连通子图数量
	Warnings     []Warning    // 构建警告
}

// Node 按ID取节点, 越界返回nil
func (g *CircuitGraph) Node(id NodeID) *Node {
	if id < 0 || id >= len(g.Nodes) {
		return nil
	}
	return g.Nodes[id]
}

// Branch 按ID取支路, 越界返回nil
func (g *CircuitGraph) Branch(id BranchID) *Branch {
	if id < 0 || id >= len(g.Branches) {
		return nil
	}
	return g.Branches[id]
}

// Degree 节点关联支路数量
func (g *CircuitGraph) Degree(id NodeID) int {
	if id < 0 || id >= len(g.Incident) {
		return 0
	}
	return len(g.Incident[id])
}
