package graph

import (
	"fmt"
	"math"

	"circuitlab/types"
)

// Graph 连接处理
type Graph struct{ types.CircuitGraph }

// Build 构建电路拓扑
// 把元件引脚归并为最小电气节点集并产出支路列表。
// 归并规则: 声明了相同接线点的引脚为同一节点; 空间距离不超过
// mergeTolerance 的引脚为同一节点; 归并具有传递性。
// 引脚无法归属节点的元件跳过并记录警告, 不使整体构建失败。
func Build(components []*types.Component, mergeTolerance float64) (*Graph, error) {
	if math.IsNaN(mergeTolerance) || math.IsInf(mergeTolerance, 0) || mergeTolerance < 0 {
		return nil, fmt.Errorf("无效的引脚合并容差: %v", mergeTolerance)
	}
	graph := &Graph{}

	// 过滤可归属引脚的元件
	kept := make([]*types.Component, 0, len(components))
	for _, comp := range components {
		if comp == nil {
			continue
		}
		if comp.Kind.GetPostCount() != 2 {
			graph.Warnings = append(graph.Warnings, types.Warning{
				Kind:    types.WarnBadEndpoint,
				Subject: comp.ID,
				Detail:  fmt.Sprintf("未知元件类型: %s", comp.Kind),
			})
			continue
		}
		ok := true
		for pin, end := range comp.Ends {
			// 未放置且未声明接线点的引脚无法归属任何节点
			if end.Junction < types.NoJunctionID ||
				(end.Junction == types.NoJunctionID && !end.Pos.IsValid()) {
				graph.Warnings = append(graph.Warnings, types.Warning{
					Kind:    types.WarnBadEndpoint,
					Subject: comp.ID,
					Detail:  fmt.Sprintf("引脚%d无法归属节点", pin),
				})
				ok = false
				break
			}
		}
		if ok {
			kept = append(kept, comp)
		}
	}

	// 引脚并查集归并
	uf := newUnionFind(len(kept) * 2)
	junction := map[types.JunctionID]int{}
	for ci, comp := range kept {
		for pin, end := range comp.Ends {
			e := ci*2 + pin
			if end.Junction == types.NoJunctionID {
				continue
			}
			if first, ok := junction[end.Junction]; ok {
				uf.union(first, e)
			} else {
				junction[end.Junction] = e
			}
		}
	}
	for i := 0; i < len(kept)*2; i++ {
		pi := kept[i/2].Ends[i%2].Pos
		if !pi.IsValid() {
			continue
		}
		for j := i + 1; j < len(kept)*2; j++ {
			pj := kept[j/2].Ends[j%2].Pos
			if pj.IsValid() && pi.Distance(pj) <= mergeTolerance {
				uf.union(i, j)
			}
		}
	}

	// 按引脚顺序分配节点ID
	nodeOf := make([]types.NodeID, len(kept)*2)
	rootNode := map[int]types.NodeID{}
	for e := range nodeOf {
		root := uf.find(e)
		id, ok := rootNode[root]
		if !ok {
			id = len(graph.Nodes)
			rootNode[root] = id
			graph.Nodes = append(graph.Nodes, &types.Node{ID: id})
		}
		nodeOf[e] = id
	}

	// 构建支路
	graph.Incident = make([][]types.BranchID, len(graph.Nodes))
	for ci, comp := range kept {
		b := &types.Branch{
			ID:        len(graph.Branches),
			Component: comp.ID,
			Kind:      comp.Kind,
			Value:     comp.Value,
			Closed:    comp.Closed,
			Pos:       nodeOf[ci*2],
			Neg:       nodeOf[ci*2+1],
		}
		graph.Branches = append(graph.Branches, b)
		if b.Pos == b.Neg {
			// 自环支路保留, 求解视为零净电流
			graph.Warnings = append(graph.Warnings, types.Warning{
				Kind:    types.WarnSelfLoop,
				Subject: b.ID,
				Detail:  fmt.Sprintf("元件%d两引脚归并到节点%d", comp.ID, b.Pos),
			})
			graph.Incident[b.Pos] = append(graph.Incident[b.Pos], b.ID)
			continue
		}
		graph.Incident[b.Pos] = append(graph.Incident[b.Pos], b.ID)
		graph.Incident[b.Neg] = append(graph.Incident[b.Neg], b.ID)
	}

	graph.label()
	graph.nominateGrounds()
	return graph, nil
}

// label 标记连通子图
func (graph *Graph) label() {
	uf := newUnionFind(len(graph.Nodes))
	for _, b := range graph.Branches {
		uf.union(b.Pos, b.Neg)
	}
	sub := map[int]int{}
	for _, n := range graph.Nodes {
		root := uf.find(n.ID)
		id, ok := sub[root]
		if !ok {
			id = len(sub)
			sub[root] = id
		}
		n.Subgraph = id
	}
	graph.NumSubgraphs = len(sub)
}

// nominateGrounds 为每个子图指定接地节点
// 规则: 按输入顺序第一个电压源的负极节点, 无源子图取编号最小节点。
func (graph *Graph) nominateGrounds() {
	graph.Grounds = make([]types.NodeID, graph.NumSubgraphs)
	for i := range graph.Grounds {
		graph.Grounds[i] = types.NoNodeID
	}
	for _, b := range graph.Branches {
		if b.Kind != types.KindSource {
			continue
		}
		sub := graph.Nodes[b.Neg].Subgraph
		if graph.Grounds[sub] == types.NoNodeID {
			graph.Grounds[sub] = b.Neg
		}
	}
	for _, n := range graph.Nodes {
		if graph.Grounds[n.Subgraph] == types.NoNodeID {
			graph.Grounds[n.Subgraph] = n.ID
		}
	}
	for _, id := range graph.Grounds {
		if id != types.NoNodeID {
			graph.Nodes[id].Ground = true
		}
	}
}
