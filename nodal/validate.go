package nodal

import (
	"fmt"
	"math"

	"circuitlab/types"
)

// Validate 只读校验
// 检查: (a) 各节点电流残差满足KCL; (b) 电压源端压与电动势一致;
// (c) 支路等效电阻为正且有限。违例以警告返回, 不修改求解状态,
// 校验失败不影响求解结果本身。
func (nodal *Nodal) Validate() []types.Warning {
	var warns []types.Warning
	for _, b := range nodal.Branches {
		// 理想导通支路不携带电阻
		if b.Shorting() {
			continue
		}
		r := b.Resistance(&nodal.Config)
		if !(r > 0) || math.IsInf(r, 0) || math.IsNaN(r) {
			warns = append(warns, types.Warning{
				Kind:    types.WarnBadResistance,
				Subject: b.ID,
				Detail:  fmt.Sprintf("等效电阻无效: %v", r),
			})
		}
	}
	if !nodal.solved {
		return warns
	}

	// KCL残差: 电阻性支路流出为 +I(正极)/-I(负极), 源支路相反
	residual := make([]float64, len(nodal.Nodes))
	for _, b := range nodal.Branches {
		if b.Pos == b.Neg {
			continue
		}
		if b.Kind == types.KindSource {
			residual[b.Pos] -= b.Current
			residual[b.Neg] += b.Current
		} else {
			residual[b.Pos] += b.Current
			residual[b.Neg] -= b.Current
		}
	}
	for _, n := range nodal.Nodes {
		if math.Abs(residual[n.ID]) > types.KCLTolerance {
			warns = append(warns, types.Warning{
				Kind:    types.WarnKCLResidual,
				Subject: n.ID,
				Detail:  fmt.Sprintf("节点电流残差: %.6g", residual[n.ID]),
			})
		}
	}

	// 电压源端压
	for _, b := range nodal.Branches {
		if b.Kind != types.KindSource || b.Pos == b.Neg {
			continue
		}
		diff := nodal.Nodes[b.Pos].Voltage - nodal.Nodes[b.Neg].Voltage
		if math.Abs(diff-b.Value) > types.EMFTolerance {
			warns = append(warns, types.Warning{
				Kind:    types.WarnEMFMismatch,
				Subject: b.ID,
				Detail:  fmt.Sprintf("端压%.6g偏离电动势%.6g", diff, b.Value),
			})
		}
	}
	return warns
}
