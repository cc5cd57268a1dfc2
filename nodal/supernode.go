package nodal

import (
	"fmt"
	"math"

	"circuitlab/types"
)

// offsetEps 偏移一致性判定阈值
const offsetEps = 1e-9

// superNode 超节点
// 理想电压源固定的是两端电压差而非某一端电压, 松弛前把源耦合的
// 节点归并为一组: 组内电压差固定, KCL按整组合并计算。
// 闭合开关同样按零偏移导通归并, 避免近零电阻把松弛收缩率推向1。
// 含接地节点的组整组钳位, 其余组以代表节点电压浮动。
type superNode struct {
	rep     types.NodeID   // 代表节点
	members []types.NodeID // 组内节点(含代表)
	clamped bool           // 含接地节点, 电压整组钳位
}

// buildSuperNodes 超节点预处理
// 对源自环与不一致的源环记录警告并放弃该条约束, 求解继续。
func (nodal *Nodal) buildSuperNodes() {
	m := len(nodal.Nodes)
	uf := newGroupFind(m)
	shortAt := make([][]*types.Branch, m)
	for _, b := range nodal.Branches {
		if !b.Shorting() {
			continue
		}
		if b.Pos == b.Neg {
			if b.Kind == types.KindSource {
				nodal.warnings = append(nodal.warnings, types.Warning{
					Kind:    types.WarnSourceConflict,
					Subject: b.ID,
					Detail:  "电压源两端为同一节点",
				})
			}
			continue
		}
		uf.union(b.Pos, b.Neg)
		shortAt[b.Pos] = append(shortAt[b.Pos], b)
		shortAt[b.Neg] = append(shortAt[b.Neg], b)
	}

	// 按节点顺序收集分组
	nodal.groupOf = make([]int, m)
	nodal.offset = make([]float64, m)
	rootGroup := map[int]int{}
	for _, n := range nodal.Nodes {
		root := uf.find(n.ID)
		gi, ok := rootGroup[root]
		if !ok {
			gi = len(nodal.groups)
			rootGroup[root] = gi
			nodal.groups = append(nodal.groups, &superNode{rep: n.ID})
		}
		g := nodal.groups[gi]
		g.members = append(g.members, n.ID)
		if n.Ground {
			g.rep = n.ID
			g.clamped = true
		}
		nodal.groupOf[n.ID] = gi
	}

	// 从代表节点广度优先推算组内偏移: V(正极) - V(负极) = 电动势
	visited := make([]bool, m)
	for _, g := range nodal.groups {
		nodal.offset[g.rep] = 0
		visited[g.rep] = true
		queue := []types.NodeID{g.rep}
		for len(queue) > 0 {
			u := queue[0]
			queue = queue[1:]
			for _, b := range shortAt[u] {
				v, dv := b.Other(u), 0.0
				if b.Kind == types.KindSource {
					dv = b.Value
					if u == b.Pos {
						dv = -dv
					}
				}
				want := nodal.offset[u] + dv
				if !visited[v] {
					nodal.offset[v] = want
					visited[v] = true
					queue = append(queue, v)
					continue
				}
				if math.Abs(nodal.offset[v]-want) > offsetEps {
					nodal.warnings = append(nodal.warnings, types.Warning{
						Kind:    types.WarnSourceConflict,
						Subject: b.ID,
						Detail: fmt.Sprintf("源环电压约束不一致: %.6g != %.6g",
							nodal.offset[v], want),
					})
				}
			}
		}
	}
}

// newGroupFind 节点分组并查集
func newGroupFind(n int) *groupFind {
	gf := &groupFind{parent: make([]int, n)}
	for i := range gf.parent {
		gf.parent[i] = i
	}
	return gf
}

type groupFind struct{ parent []int }

func (gf *groupFind) find(x int) int {
	for gf.parent[x] != x {
		gf.parent[x] = gf.parent[gf.parent[x]]
		x = gf.parent[x]
	}
	return x
}

func (gf *groupFind) union(a, b int) {
	ra, rb := gf.find(a), gf.find(b)
	if ra != rb {
		gf.parent[rb] = ra
	}
}
