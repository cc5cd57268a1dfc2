package nodal

import (
	"fmt"
	"math"

	"circuitlab/types"
)

// computeCurrents 收敛后计算支路电流
// 电阻性支路按欧姆定律取 (V正-V负)/R; 电压源与闭合开关理想导通
// 无电阻, 其电流由端点KCL平衡推算: 多条导通支路共享端点时按
// 多轮代入消解, 纯导通环路无法定值时取零并记录警告。
// 数值异常收敛为零值哨兵, 不向结果传播 NaN/∞。
func (nodal *Nodal) computeCurrents(warnings *[]types.Warning) {
	cfg := &nodal.Config

	// 电阻性支路
	outRes := make([]float64, len(nodal.Nodes)) // 各节点电阻性流出电流
	for _, b := range nodal.Branches {
		if b.Shorting() {
			continue
		}
		if b.Pos == b.Neg {
			// 自环支路零净电流
			b.Current, b.VoltageDrop = 0, 0
			continue
		}
		vd := nodal.VecX[0].AtVec(b.Pos) - nodal.VecX[0].AtVec(b.Neg)
		r := b.Resistance(cfg)
		i := vd / r
		if math.IsNaN(vd) || math.IsInf(vd, 0) || math.IsNaN(i) || math.IsInf(i, 0) {
			b.Current, b.VoltageDrop = 0, 0
			continue
		}
		b.Current, b.VoltageDrop = i, vd
		outRes[b.Pos] += i
		outRes[b.Neg] -= i
	}

	// 导通支路
	var shorts []*types.Branch
	shortAt := make([][]*types.Branch, len(nodal.Nodes))
	for _, b := range nodal.Branches {
		if !b.Shorting() {
			continue
		}
		if b.Pos == b.Neg {
			b.Current, b.VoltageDrop = 0, 0
			continue
		}
		if b.Kind == types.KindSource {
			b.VoltageDrop = b.Value
		} else {
			b.VoltageDrop = 0
		}
		shorts = append(shorts, b)
		shortAt[b.Pos] = append(shortAt[b.Pos], b)
		shortAt[b.Neg] = append(shortAt[b.Neg], b)
	}
	resolved := make(map[*types.Branch]bool, len(shorts))
	for range shorts {
		progress := false
		for _, b := range shorts {
			if resolved[b] {
				continue
			}
			// 任一端其他支路全部定值时, 本支路电流由该端KCL平衡得出
			if sum, ok := nodal.outPin(b, b.Pos, outRes, shortAt, resolved); ok {
				b.Current = -sum * outSign(b)
			} else if sum, ok = nodal.outPin(b, b.Neg, outRes, shortAt, resolved); ok {
				b.Current = sum * outSign(b)
			} else {
				continue
			}
			if math.IsNaN(b.Current) || math.IsInf(b.Current, 0) {
				b.Current = 0
			}
			resolved[b] = true
			progress = true
		}
		if !progress || len(resolved) == len(shorts) {
			break
		}
	}
	for _, b := range shorts {
		if !resolved[b] {
			b.Current = 0
			*warnings = append(*warnings, types.Warning{
				Kind:    types.WarnSourceLoop,
				Subject: b.ID,
				Detail:  fmt.Sprintf("导通支路%d电流无法由KCL定值", b.ID),
			})
		}
	}
}

// outSign 导通支路在正极节点的流出电流符号
// 电压源从正极向外送电流, 流出为 -I; 闭合开关沿用电阻性约定,
// 流出为 +I。负极端取反。
func outSign(b *types.Branch) float64 {
	if b.Kind == types.KindSource {
		return -1
	}
	return 1
}

// outPin 汇总端点上除 b 以外支路的流出电流
// 该端存在未定值的其他导通支路时返回失败。
func (nodal *Nodal) outPin(b *types.Branch, n types.NodeID, outRes []float64,
	shortAt [][]*types.Branch, resolved map[*types.Branch]bool) (float64, bool) {
	sum := outRes[n]
	for _, s := range shortAt[n] {
		if s == b {
			continue
		}
		if !resolved[s] {
			return 0, false
		}
		if s.Pos == n {
			sum += outSign(s) * s.Current
		} else {
			sum -= outSign(s) * s.Current
		}
	}
	return sum, true
}
