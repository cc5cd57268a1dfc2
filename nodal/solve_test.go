package nodal

import (
	"math"
	"math/rand"
	"testing"

	"circuitlab/graph"
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

// build 构建拓扑并创建求解
func build(t *testing.T, comps []*types.Component, cfg types.SolveConfig) *Nodal {
	t.Helper()
	g, err := graph.Build(comps, types.DefaultMergeTolerance)
	if err != nil {
		t.Fatalf("拓扑构建失败: %s", err)
	}
	solver, err := NewNodal(g, cfg)
	if err != nil {
		t.Fatalf("创建求解失败: %s", err)
	}
	return solver
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}

func TestSeriesCircuit(t *testing.T) {
	// 电池(12V) A-C; 电阻(10Ω) A-B; 电阻(10Ω) B-C
	jA, jB, jC := 0, 1, 2
	solver := build(t, []*types.Component{
		wired(0, types.KindSource, 12, jA, jC),
		wired(1, types.KindResistor, 10, jA, jB),
		wired(2, types.KindResistor, 10, jB, jC),
	}, types.DefaultSolveConfig())
	result := solver.Solve()
	if !result.Converged {
		t.Fatalf("串联电路未收敛: %d轮 残差%v", result.Iterations, result.MaxDelta)
	}
	src, r1, r2 := solver.Branches[0], solver.Branches[1], solver.Branches[2]
	// 回路电流 12/(10+10) = 0.6A
	if abs(r1.Current-0.6) > 1e-3 || abs(r2.Current-0.6) > 1e-3 {
		t.Errorf("串联电流不正确: 期望 0.6, 实际 %v/%v", r1.Current, r2.Current)
	}
	if abs(src.Current-0.6) > 1e-3 {
		t.Errorf("电压源电流不正确: 期望 0.6, 实际 %v", src.Current)
	}
	// 每个电阻分压 6V
	if abs(r1.VoltageDrop-6) > 1e-3 || abs(r2.VoltageDrop-6) > 1e-3 {
		t.Errorf("串联分压不正确: 期望 6, 实际 %v/%v", r1.VoltageDrop, r2.VoltageDrop)
	}
	if !solver.Nodes[src.Neg].Ground || abs(solver.Nodes[src.Neg].Voltage) > 1e-9 {
		t.Errorf("接地节点电压应为0: %v", solver.Nodes[src.Neg].Voltage)
	}
}

func TestParallelCircuit(t *testing.T) {
	// 电池(6V) A-B; 电阻(3Ω) A-B; 电阻(6Ω) A-B
	jA, jB := 0, 1
	solver := build(t, []*types.Component{
		wired(0, types.KindSource, 6, jA, jB),
		wired(1, types.KindResistor, 3, jA, jB),
		wired(2, types.KindResistor, 6, jA, jB),
	}, types.DefaultSolveConfig())
	result := solver.Solve()
	if !result.Converged {
		t.Fatalf("并联电路未收敛: %d轮", result.Iterations)
	}
	src, r3, r6 := solver.Branches[0], solver.Branches[1], solver.Branches[2]
	if abs(r3.Current-2) > 1e-3 {
		t.Errorf("3Ω支路电流不正确: 期望 2, 实际 %v", r3.Current)
	}
	if abs(r6.Current-1) > 1e-3 {
		t.Errorf("6Ω支路电流不正确: 期望 1, 实际 %v", r6.Current)
	}
	if abs(src.Current-3) > 1e-3 {
		t.Errorf("电压源总电流不正确: 期望 3, 实际 %v", src.Current)
	}
}

func TestOpenSwitch(t *testing.T) {
	// 开关断开时支路电流近似为零而非未定义
	solver := build(t, []*types.Component{
		wired(0, types.KindSource, 12, 0, 2),
		{ID: 1, Kind: types.KindSwitch, Closed: false, Ends: [2]types.Endpoint{
			{Pos: types.Unplaced(), Junction: 0},
			{Pos: types.Unplaced(), Junction: 1},
		}},
		wired(2, types.KindResistor, 10, 1, 2),
	}, types.DefaultSolveConfig())
	result := solver.Solve()
	if !result.Converged {
		t.Fatalf("断开开关电路未收敛: %d轮", result.Iterations)
	}
	sw := solver.Branches[1]
	if math.IsNaN(sw.Current) || abs(sw.Current) > 1e-6 {
		t.Errorf("断开开关电流应近似为零: %v", sw.Current)
	}
}

func TestClosedSwitch(t *testing.T) {
	solver := build(t, []*types.Component{
		wired(0, types.KindSource, 12, 0, 2),
		{ID: 1, Kind: types.KindSwitch, Closed: true, Ends: [2]types.Endpoint{
			{Pos: types.Unplaced(), Junction: 0},
			{Pos: types.Unplaced(), Junction: 1},
		}},
		wired(2, types.KindResistor, 10, 1, 2),
	}, types.DefaultSolveConfig())
	result := solver.Solve()
	if !result.Converged {
		t.Fatalf("闭合开关电路未收敛: %d轮", result.Iterations)
	}
	r := solver.Branches[2]
	if abs(r.Current-1.2) > 1e-3 {
		t.Errorf("闭合开关回路电流不正确: 期望 ~1.2, 实际 %v", r.Current)
	}
}

func TestClosedSwitchBetweenFreeNodes(t *testing.T) {
	// 闭合开关两端均不与源相邻: 开关须按理想导通归并进超节点,
	// 否则近零电阻使松弛在默认迭代预算内停在远离不动点的估计上。
	// 电池(12V) A-G; 电阻(10Ω) A-B; 闭合开关 B-C; 电阻(10Ω) C-G
	jA, jB, jC, jG := 0, 1, 2, 3
	solver := build(t, []*types.Component{
		wired(0, types.KindSource, 12, jA, jG),
		wired(1, types.KindResistor, 10, jA, jB),
		{ID: 2, Kind: types.KindSwitch, Closed: true, Ends: [2]types.Endpoint{
			{Pos: types.Unplaced(), Junction: jB},
			{Pos: types.Unplaced(), Junction: jC},
		}},
		wired(3, types.KindResistor, 10, jC, jG),
	}, types.DefaultSolveConfig())
	result := solver.Solve()
	if !result.Converged {
		t.Fatalf("默认参数下未收敛: %d轮 残差%v", result.Iterations, result.MaxDelta)
	}
	r1, sw, r2 := solver.Branches[1], solver.Branches[2], solver.Branches[3]
	// 串联回路电流 12/20 = 0.6A
	for _, b := range []*types.Branch{r1, sw, r2} {
		if abs(b.Current-0.6) > 1e-3 {
			t.Errorf("支路%d电流不正确: 期望 0.6, 实际 %v", b.ID, b.Current)
		}
	}
	if sw.VoltageDrop != 0 {
		t.Errorf("闭合开关压降应为0: %v", sw.VoltageDrop)
	}
	nB, nC := r1.Neg, r2.Pos
	if abs(solver.Nodes[nB].Voltage-6) > 1e-3 || abs(solver.Nodes[nC].Voltage-6) > 1e-3 {
		t.Errorf("开关两端节点电压不正确: 期望 6/6, 实际 %v/%v",
			solver.Nodes[nB].Voltage, solver.Nodes[nC].Voltage)
	}
}

func TestFloatingSupernode(t *testing.T) {
	// 第二个电压源两端都不接地, 须按固定电压差整组浮动求解:
	// 电池(12V) A-G; 电阻(10Ω) A-B; 电池(4V) C-B; 电阻(10Ω) C-G
	jA, jB, jC, jG := 0, 1, 2, 3
	solver := build(t, []*types.Component{
		wired(0, types.KindSource, 12, jA, jG),
		wired(1, types.KindResistor, 10, jA, jB),
		wired(2, types.KindSource, 4, jC, jB),
		wired(3, types.KindResistor, 10, jC, jG),
	}, types.DefaultSolveConfig())
	result := solver.Solve()
	if !result.Converged {
		t.Fatalf("浮动超节点电路未收敛: %d轮", result.Iterations)
	}
	r1, src2, r3 := solver.Branches[1], solver.Branches[2], solver.Branches[3]
	nB, nC := r1.Neg, r3.Pos
	if abs(solver.Nodes[nB].Voltage-4) > 1e-3 || abs(solver.Nodes[nC].Voltage-8) > 1e-3 {
		t.Errorf("浮动节点电压不正确: 期望 4/8, 实际 %v/%v",
			solver.Nodes[nB].Voltage, solver.Nodes[nC].Voltage)
	}
	// 回路电流 (12+4)/20 = 0.8A
	for _, b := range []*types.Branch{r1, src2, r3} {
		if abs(b.Current-0.8) > 1e-3 {
			t.Errorf("支路%d电流不正确: 期望 0.8, 实际 %v", b.ID, b.Current)
		}
	}
}

func TestIdempotence(t *testing.T) {
	solver := build(t, []*types.Component{
		wired(0, types.KindSource, 12, 0, 2),
		wired(1, types.KindResistor, 10, 0, 1),
		wired(2, types.KindResistor, 10, 1, 2),
	}, types.DefaultSolveConfig())
	solver.Solve()
	before := make([]float64, len(solver.Nodes))
	for i, n := range solver.Nodes {
		before[i] = n.Voltage
	}
	result := solver.Solve()
	if !result.Converged {
		t.Fatalf("重复求解未收敛")
	}
	for i, n := range solver.Nodes {
		if abs(n.Voltage-before[i]) > solver.Config.Tolerance {
			t.Errorf("重复求解节点%d电压漂移: %v -> %v", i, before[i], n.Voltage)
		}
	}
}

func TestIsolatedNode(t *testing.T) {
	// 零度节点不参与计算, 电压为0且不产生NaN
	g := &graph.Graph{CircuitGraph: types.CircuitGraph{
		Nodes:        []*types.Node{{ID: 0, Ground: true}},
		Incident:     make([][]types.BranchID, 1),
		Grounds:      []types.NodeID{0},
		NumSubgraphs: 1,
	}}
	solver, err := NewNodal(g, types.DefaultSolveConfig())
	if err != nil {
		t.Fatalf("创建求解失败: %s", err)
	}
	result := solver.Solve()
	if !result.Converged {
		t.Fatalf("孤立节点求解未收敛")
	}
	if v := solver.Nodes[0].Voltage; v != 0 || math.IsNaN(v) {
		t.Errorf("孤立节点电压应为0: %v", v)
	}
}

func TestNonConvergenceFlag(t *testing.T) {
	// 迭代上限过低时返回当前最优估计并携带未收敛警告
	comps := []*types.Component{wired(0, types.KindSource, 10, 0, 10)}
	for i := 1; i <= 10; i++ {
		comps = append(comps, wired(i, types.KindResistor, 10, i-1, i))
	}
	cfg := types.DefaultSolveConfig()
	cfg.MaxIterations = 2
	solver := build(t, comps, cfg)
	result := solver.Solve()
	if result.Converged {
		t.Fatalf("2轮迭代不应收敛")
	}
	if result.Iterations != 2 {
		t.Errorf("迭代轮数不正确: 期望 2, 实际 %d", result.Iterations)
	}
	found := false
	for _, w := range result.Warnings {
		if w.Kind == types.WarnNotConverged {
			found = true
		}
	}
	if !found {
		t.Errorf("缺少未收敛警告: %v", result.Warnings)
	}
	for _, n := range solver.Nodes {
		if math.IsNaN(n.Voltage) || math.IsInf(n.Voltage, 0) {
			t.Errorf("未收敛结果不应包含非有限电压: 节点%d %v", n.ID, n.Voltage)
		}
	}
}

func TestRandomNetworkKCL(t *testing.T) {
	// 随机连通电阻网络 + 单电压源, 收敛后各节点电流残差在容差内
	rng := rand.New(rand.NewSource(7))
	const nodes = 8
	comps := []*types.Component{wired(0, types.KindSource, 10, 0, 1)}
	id := 1
	for i := 1; i < nodes; i++ {
		r := 5 + 45*rng.Float64()
		comps = append(comps, wired(id, types.KindResistor, r, rng.Intn(i), i))
		id++
	}
	for n := 0; n < 5; n++ {
		a, b := rng.Intn(nodes), rng.Intn(nodes)
		if a == b {
			continue
		}
		comps = append(comps, wired(id, types.KindResistor, 5+45*rng.Float64(), a, b))
		id++
	}
	cfg := types.DefaultSolveConfig()
	cfg.Tolerance = 1e-9
	cfg.MaxIterations = 50000
	solver := build(t, comps, cfg)
	result := solver.Solve()
	if !result.Converged {
		t.Fatalf("随机网络未收敛: %d轮 残差%v", result.Iterations, result.MaxDelta)
	}
	for _, w := range solver.Validate() {
		if w.Kind == types.WarnKCLResidual {
			t.Errorf("KCL残差超限: %s", w)
		}
	}
}

func TestSourceConflict(t *testing.T) {
	// 两个电动势不同的源并联: 记录冲突警告但求解继续
	solver := build(t, []*types.Component{
		wired(0, types.KindSource, 5, 0, 1),
		wired(1, types.KindSource, 3, 0, 1),
	}, types.DefaultSolveConfig())
	result := solver.Solve()
	found := false
	for _, w := range result.Warnings {
		if w.Kind == types.WarnSourceConflict {
			found = true
		}
	}
	if !found {
		t.Errorf("缺少源约束冲突警告: %v", result.Warnings)
	}
	for _, n := range solver.Nodes {
		if math.IsNaN(n.Voltage) || math.IsInf(n.Voltage, 0) {
			t.Errorf("冲突求解不应产生非有限电压: %v", n.Voltage)
		}
	}
}

func TestDanglingSource(t *testing.T) {
	// 悬空电压源无回路, 电流为零
	solver := build(t, []*types.Component{
		wired(0, types.KindSource, 5, 0, 1),
	}, types.DefaultSolveConfig())
	result := solver.Solve()
	if !result.Converged {
		t.Fatalf("悬空源电路未收敛")
	}
	if i := solver.Branches[0].Current; i != 0 {
		t.Errorf("悬空源电流应为0: %v", i)
	}
}

func TestInvalidInputRejected(t *testing.T) {
	bad := []*types.Component{wired(0, types.KindResistor, -5, 0, 1)}
	g, err := graph.Build(bad, types.DefaultMergeTolerance)
	if err != nil {
		t.Fatalf("拓扑构建失败: %s", err)
	}
	if _, err := NewNodal(g, types.DefaultSolveConfig()); err == nil {
		t.Errorf("负电阻应在求解前拒绝")
	}
	cfg := types.DefaultSolveConfig()
	cfg.MaxIterations = -1
	good, _ := graph.Build([]*types.Component{wired(0, types.KindResistor, 5, 0, 1)},
		types.DefaultMergeTolerance)
	if _, err := NewNodal(good, cfg); err == nil {
		t.Errorf("负迭代上限应在求解前拒绝")
	}
}
