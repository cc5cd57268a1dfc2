package nodal

import (
	"math"

	"circuitlab/types"
)

// Result 求解结果
type Result struct {
	Converged  bool            // 是否收敛
	Iterations int             // 实际迭代轮数
	MaxDelta   float64         // 末轮最大电压变化(伏)
	Warnings   []types.Warning // 求解警告
}

// Solve 迭代求解
// 高斯-赛德尔式松弛: 每轮把每个自由超节点电压更新为其邻居的
// 电导加权平均, 追踪全图最大电压变化, 低于容差即收敛。
// 达到迭代上限仍未收敛时返回当前最优估计并携带未收敛警告,
// 不作为失败处理。求解只写支路的电流/压降输出字段。
func (nodal *Nodal) Solve() Result {
	warnings := append([]types.Warning{}, nodal.warnings...)
	nodal.reset()
	if nodal.Debug != nil {
		nodal.Debug.Init(nodal)
	}

	converged := false
	for nodal.iter = 1; nodal.iter <= nodal.Config.MaxIterations; nodal.iter++ {
		if nodal.VecX[0] != nil {
			nodal.VecX[1].CopyVec(nodal.VecX[0])
		}
		for _, g := range nodal.groups {
			if g.clamped {
				continue
			}
			nodal.relax(g)
		}
		nodal.maxDelta = 0
		if nodal.VecX[0] != nil {
			for i := 0; i < nodal.VecX[0].Len(); i++ {
				if d := math.Abs(nodal.VecX[0].AtVec(i) - nodal.VecX[1].AtVec(i)); d > nodal.maxDelta {
					nodal.maxDelta = d
				}
			}
		}
		if nodal.Debug != nil {
			nodal.Debug.Update(nodal)
		}
		if nodal.maxDelta < nodal.Config.Tolerance {
			converged = true
			break
		}
	}
	if nodal.iter > nodal.Config.MaxIterations {
		nodal.iter = nodal.Config.MaxIterations
	}
	if !converged {
		warnings = append(warnings, types.Warning{
			Kind:    types.WarnNotConverged,
			Subject: types.NoNodeID,
			Detail:  "达到最大迭代次数, 返回当前最优估计",
		})
	}

	// 电压写回节点
	for _, n := range nodal.Nodes {
		n.Voltage = nodal.VecX[0].AtVec(n.ID)
	}
	nodal.computeCurrents(&warnings)
	nodal.solved = true
	return Result{
		Converged:  converged,
		Iterations: nodal.iter,
		MaxDelta:   nodal.maxDelta,
		Warnings:   warnings,
	}
}

// reset 初始化求解状态
// 非地节点电压清零, 钳位组按偏移赋值。
func (nodal *Nodal) reset() {
	nodal.solved = false
	if nodal.VecX[0] == nil {
		nodal.iter = 0
		nodal.maxDelta = 0
		return
	}
	nodal.VecX[0].Zero()
	nodal.VecX[1].Zero()
	for _, g := range nodal.groups {
		if !g.clamped {
			continue
		}
		for _, m := range g.members {
			nodal.VecX[0].SetVec(m, nodal.offset[m])
		}
	}
}

// relax 松弛单个自由超节点
// KCL合并整组: V_rep = Σ G·(V_邻居 - 偏移) / Σ G。
// 组内支路(含自环)净电流为零不参与; 无电导关联的组电压保持不变。
func (nodal *Nodal) relax(g *superNode) {
	var num, den float64
	for _, m := range g.members {
		for _, bid := range nodal.Incident[m] {
			b := nodal.Branches[bid]
			if b.Shorting() {
				continue
			}
			other := b.Other(m)
			if nodal.groupOf[other] == nodal.groupOf[m] {
				continue
			}
			r := b.Resistance(&nodal.Config)
			if !(r > 0) || math.IsInf(r, 0) {
				continue
			}
			vo := nodal.VecX[0].AtVec(other)
			if math.IsNaN(vo) || math.IsInf(vo, 0) {
				continue
			}
			cond := 1 / r
			num += cond * (vo - nodal.offset[m])
			den += cond
		}
	}
	if den <= 0 {
		return
	}
	v := num / den
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return
	}
	for _, m := range g.members {
		nodal.VecX[0].SetVec(m, v+nodal.offset[m])
	}
}
