package graph

import (
	"testing"

	"circuitlab/types"
)

// wired 按接线点连接的元件
func wired(id types.ComponentID, kind types.BranchKind, value float64, j0, j1 types.JunctionID) *types.Component {
	return &types.Component{
		ID:    id,
		Kind:  kind,
		Value: value,
		Ends: [2]types.Endpoint{
			{Pos: types.Unplaced(), Junction: j0},
			{Pos: types.Unplaced(), Junction: j1},
		},
	}
}

// placed 按空间位置连接的元件
func placed(id types.ComponentID, kind types.BranchKind, value float64, p0, p1 types.Point) *types.Component {
	return &types.Component{
		ID:    id,
		Kind:  kind,
		Value: value,
		Ends: [2]types.Endpoint{
			{Pos: p0, Junction: types.NoJunctionID},
			{Pos: p1, Junction: types.NoJunctionID},
		},
	}
}

func TestBuildMergesByJunction(t *testing.T) {
	g, err := Build([]*types.Component{
		wired(0, types.KindSource, 12, 0, 1),
		wired(1, types.KindResistor, 10, 0, 1),
	}, types.DefaultMergeTolerance)
	if err != nil {
		t.Fatalf("拓扑构建失败: %s", err)
	}
	if len(g.Nodes) != 2 {
		t.Fatalf("节点数量不正确: 期望 2, 实际 %d", len(g.Nodes))
	}
	if len(g.Branches) != 2 {
		t.Fatalf("支路数量不正确: 期望 2, 实际 %d", len(g.Branches))
	}
	if g.Branches[0].Pos != g.Branches[1].Pos || g.Branches[0].Neg != g.Branches[1].Neg {
		t.Errorf("共接线点引脚未归并为同一节点")
	}
	for _, b := range g.Branches {
		if g.Node(b.Pos) == nil || g.Node(b.Neg) == nil {
			t.Errorf("支路%d引用节点超出节点集", b.ID)
		}
	}
}

func TestBuildMergesByDistanceTransitive(t *testing.T) {
	far := func(x float64) types.Point { return types.Point{X: x, Y: 10} }
	// 三个引脚两两链式落在容差内, 0号与2号间距超过容差,
	// 传递归并后仍应为同一节点。
	g, err := Build([]*types.Component{
		placed(0, types.KindResistor, 10, types.Point{X: 0}, far(0)),
		placed(1, types.KindResistor, 10, types.Point{X: 0.04}, far(1)),
		placed(2, types.KindResistor, 10, types.Point{X: 0.08}, far(2)),
	}, 0.05)
	if err != nil {
		t.Fatalf("拓扑构建失败: %s", err)
	}
	if len(g.Nodes) != 4 {
		t.Fatalf("节点数量不正确: 期望 4, 实际 %d", len(g.Nodes))
	}
	if g.Branches[0].Pos != g.Branches[1].Pos || g.Branches[1].Pos != g.Branches[2].Pos {
		t.Errorf("链式容差归并未传递: %d/%d/%d",
			g.Branches[0].Pos, g.Branches[1].Pos, g.Branches[2].Pos)
	}
}

func TestBuildSelfLoop(t *testing.T) {
	g, err := Build([]*types.Component{
		wired(0, types.KindResistor, 10, 0, 0),
	}, types.DefaultMergeTolerance)
	if err != nil {
		t.Fatalf("拓扑构建失败: %s", err)
	}
	if len(g.Branches) != 1 {
		t.Fatalf("自环支路应保留: 实际支路数 %d", len(g.Branches))
	}
	b := g.Branches[0]
	if b.Pos != b.Neg {
		t.Errorf("自环支路两端应为同一节点: %d-%d", b.Pos, b.Neg)
	}
	found := false
	for _, w := range g.Warnings {
		if w.Kind == types.WarnSelfLoop {
			found = true
		}
	}
	if !found {
		t.Errorf("缺少自环警告: %v", g.Warnings)
	}
}

func TestBuildSkipsBadEndpoint(t *testing.T) {
	bad := wired(1, types.KindResistor, 10, 0, types.NoJunctionID)
	// 既未放置也未声明接线点的引脚无法归属节点
	g, err := Build([]*types.Component{
		wired(0, types.KindResistor, 10, 0, 1),
		bad,
	}, types.DefaultMergeTolerance)
	if err != nil {
		t.Fatalf("拓扑构建失败: %s", err)
	}
	if len(g.Branches) != 1 {
		t.Fatalf("坏引脚元件应跳过: 实际支路数 %d", len(g.Branches))
	}
	found := false
	for _, w := range g.Warnings {
		if w.Kind == types.WarnBadEndpoint && w.Subject == bad.ID {
			found = true
		}
	}
	if !found {
		t.Errorf("缺少坏引脚警告: %v", g.Warnings)
	}
}

func TestGroundSelection(t *testing.T) {
	g, err := Build([]*types.Component{
		wired(0, types.KindResistor, 10, 0, 1),
		wired(1, types.KindSource, 6, 0, 1),
	}, types.DefaultMergeTolerance)
	if err != nil {
		t.Fatalf("拓扑构建失败: %s", err)
	}
	src := g.Branches[1]
	if !g.Node(src.Neg).Ground {
		t.Errorf("接地应取第一个电压源负极节点: %d", src.Neg)
	}
	count := 0
	for _, n := range g.Nodes {
		if n.Ground {
			count++
		}
	}
	if count != 1 {
		t.Errorf("接地节点数量不正确: 期望 1, 实际 %d", count)
	}
}

func TestDisconnectedSubgraphs(t *testing.T) {
	g, err := Build([]*types.Component{
		wired(0, types.KindSource, 6, 0, 1),
		wired(1, types.KindResistor, 10, 0, 1),
		wired(2, types.KindSource, 9, 2, 3),
		wired(3, types.KindResistor, 20, 2, 3),
	}, types.DefaultMergeTolerance)
	if err != nil {
		t.Fatalf("拓扑构建失败: %s", err)
	}
	if g.NumSubgraphs != 2 {
		t.Fatalf("连通子图数量不正确: 期望 2, 实际 %d", g.NumSubgraphs)
	}
	if len(g.Grounds) != 2 || g.Grounds[0] == g.Grounds[1] {
		t.Errorf("每个子图应有独立接地: %v", g.Grounds)
	}
	if g.Nodes[g.Branches[0].Pos].Subgraph == g.Nodes[g.Branches[2].Pos].Subgraph {
		t.Errorf("不相连的回路应属于不同子图")
	}
}

func TestBuildRejectsBadTolerance(t *testing.T) {
	if _, err := Build(nil, -1); err == nil {
		t.Errorf("负容差应拒绝")
	}
}
