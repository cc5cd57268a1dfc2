package nodal

import (
	"fmt"
	"math"

	"circuitlab/graph"
	"circuitlab/types"

	"gonum.org/v1/gonum/mat"
)

// Nodal 迭代节点求解
// 对单个拓扑快照做松弛求解, 结果写回快照支路,
// 独立求解之间不保留其他可变状态。
type Nodal struct {
	*graph.Graph                   // 图表信息
	Config       types.SolveConfig // 求解参数
	Debug        types.Debug       // 调试信息

	VecX     [2]*mat.VecDense // 当前/上一轮节点电压
	groups   []*superNode     // 超节点分组
	groupOf  []int            // 节点所属分组索引
	offset   []float64        // 节点相对分组代表的电压偏移
	warnings []types.Warning  // 预处理警告
	iter     int              // 当前迭代次数
	maxDelta float64          // 本轮最大电压变化
	solved   bool             // 求解完成标记
}

// NewNodal 创建求解
// 在求解前拒绝无效输入: 非正迭代上限/容差, 非正或非有限电阻,
// 支路引用超出节点集。
func NewNodal(g *graph.Graph, cfg types.SolveConfig) (*Nodal, error) {
	if g == nil {
		return nil, fmt.Errorf("电路图表为空")
	}
	if cfg.MaxIterations <= 0 {
		return nil, fmt.Errorf("无效的最大迭代次数: %d", cfg.MaxIterations)
	}
	if !(cfg.Tolerance > 0) || math.IsInf(cfg.Tolerance, 0) {
		return nil, fmt.Errorf("无效的收敛容差: %v", cfg.Tolerance)
	}
	if !(cfg.OpenSwitchResistance > 0) || math.IsInf(cfg.OpenSwitchResistance, 0) {
		return nil, fmt.Errorf("无效的开关断开等效电阻: %v", cfg.OpenSwitchResistance)
	}
	for _, b := range g.Branches {
		if g.Node(b.Pos) == nil || g.Node(b.Neg) == nil {
			return nil, fmt.Errorf("支路%d引用节点超出节点集: %d-%d", b.ID, b.Pos, b.Neg)
		}
		switch b.Kind {
		case types.KindSource:
			if math.IsNaN(b.Value) || math.IsInf(b.Value, 0) {
				return nil, fmt.Errorf("支路%d电动势非有限: %v", b.ID, b.Value)
			}
		case types.KindSwitch:
			// 闭合理想导通, 断开电阻由求解参数决定
		default:
			if !(b.Value > 0) || math.IsInf(b.Value, 0) {
				return nil, fmt.Errorf("支路%d电阻非正或非有限: %v", b.ID, b.Value)
			}
		}
	}
	nodal := &Nodal{Graph: g, Config: cfg}
	if m := len(g.Nodes); m > 0 {
		nodal.VecX[0] = mat.NewVecDense(m, nil)
		nodal.VecX[1] = mat.NewVecDense(m, nil)
	}
	nodal.buildSuperNodes()
	return nodal, nil
}

// GetGraph 获取底层图表
func (nodal *Nodal) GetGraph() *types.CircuitGraph { return &nodal.CircuitGraph }

// GetVoltage 返回节点电压
func (nodal *Nodal) GetVoltage(i types.NodeID) float64 {
	if nodal.VecX[0] == nil || i < 0 || i >= nodal.VecX[0].Len() {
		return 0
	}
	return nodal.VecX[0].AtVec(i)
}

// GetIteration 当前迭代次数
func (nodal *Nodal) GetIteration() int { return nodal.iter }

// GetMaxDelta 本轮最大电压变化
func (nodal *Nodal) GetMaxDelta() float64 { return nodal.maxDelta }
