package circuitlab

import (
	"slices"

	"circuitlab/graph"
	"circuitlab/nodal"
	"circuitlab/types"
)

// Circuit 电路模拟器
// 调用方持有的元件/接线点注册表, 每次求解从注册表构建
// 新的拓扑快照, 求解核心自身不保留可变状态。
type Circuit struct {
	Components     map[types.ComponentID]*types.Component // 记录元件信息
	Junctions      map[types.JunctionID]struct{}          // 记录接线点
	MergeTolerance float64                                // 引脚合并距离容差
	componentCount types.ComponentID                      // 自增数量
	junctionCount  types.JunctionID                       // 自增数量
}

// NewCircuit 初始化
func NewCircuit() *Circuit {
	return &Circuit{
		Components:     make(map[types.ComponentID]*types.Component),
		Junctions:      make(map[types.JunctionID]struct{}),
		MergeTolerance: types.DefaultMergeTolerance,
	}
}

// AddComponent 添加元件
func (cir *Circuit) AddComponent(kind types.BranchKind, value float64) types.ComponentID {
	id := cir.componentCount
	cir.componentCount++
	cir.Components[id] = &types.Component{
		ID:    id,
		Kind:  kind,
		Value: value,
		Ends: [2]types.Endpoint{
			{Pos: types.Unplaced(), Junction: types.NoJunctionID},
			{Pos: types.Unplaced(), Junction: types.NoJunctionID},
		},
	}
	return id
}

// AddBattery 添加电池
func (cir *Circuit) AddBattery(emf float64) types.ComponentID {
	return cir.AddComponent(types.KindSource, emf)
}

// AddResistor 添加电阻
func (cir *Circuit) AddResistor(resistance float64) types.ComponentID {
	return cir.AddComponent(types.KindResistor, resistance)
}

// AddBulb 添加灯泡
func (cir *Circuit) AddBulb(resistance float64) types.ComponentID {
	return cir.AddComponent(types.KindBulb, resistance)
}

// AddSwitch 添加开关
func (cir *Circuit) AddSwitch(closed bool) types.ComponentID {
	id := cir.AddComponent(types.KindSwitch, 0)
	cir.Components[id].Closed = closed
	return id
}

// SetSwitch 设置开关状态
func (cir *Circuit) SetSwitch(id types.ComponentID, closed bool) {
	if comp, ok := cir.Components[id]; ok && comp.Kind == types.KindSwitch {
		comp.Closed = closed
	}
}

// RemoveComponent 删除元件
func (cir *Circuit) RemoveComponent(id types.ComponentID) {
	delete(cir.Components, id)
}

// AddJunction 添加接线点
func (cir *Circuit) AddJunction() types.JunctionID {
	id := cir.junctionCount
	cir.junctionCount++
	cir.Junctions[id] = struct{}{}
	return id
}

// RemoveJunction 删除接线点并断开引用它的引脚
func (cir *Circuit) RemoveJunction(id types.JunctionID) {
	if _, ok := cir.Junctions[id]; !ok {
		return
	}
	for _, comp := range cir.Components {
		for pin := range comp.Ends {
			if comp.Ends[pin].Junction == id {
				comp.Ends[pin].Junction = types.NoJunctionID
			}
		}
	}
	delete(cir.Junctions, id)
}

// Connect 把元件引脚接到接线点
func (cir *Circuit) Connect(id types.ComponentID, pin types.PinID, jid types.JunctionID) {
	comp, ok := cir.Components[id]
	if !ok || pin < 0 || pin >= len(comp.Ends) {
		return
	}
	if _, ok := cir.Junctions[jid]; !ok {
		return
	}
	comp.Ends[pin].Junction = jid
}

// Disconnect 断开元件引脚
func (cir *Circuit) Disconnect(id types.ComponentID, pin types.PinID) {
	if comp, ok := cir.Components[id]; ok && pin >= 0 && pin < len(comp.Ends) {
		comp.Ends[pin].Junction = types.NoJunctionID
	}
}

// Place 设置元件引脚空间位置
func (cir *Circuit) Place(id types.ComponentID, pin types.PinID, pos types.Point) {
	if comp, ok := cir.Components[id]; ok && pin >= 0 && pin < len(comp.Ends) {
		comp.Ends[pin].Pos = pos
	}
}

// Build 构建电路拓扑快照
// 元件按ID顺序进入构建, 保证接地指定等顺序相关规则可复现。
func (cir *Circuit) Build() (*graph.Graph, error) {
	list := make([]*types.Component, 0, len(cir.Components))
	ids := make([]types.ComponentID, 0, len(cir.Components))
	for id := range cir.Components {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	for _, id := range ids {
		list = append(list, cir.Components[id])
	}
	return graph.Build(list, cir.MergeTolerance)
}

// Solve 构建并求解
func (cir *Circuit) Solve(cfg types.SolveConfig) (*nodal.Nodal, nodal.Result, error) {
	g, err := cir.Build()
	if err != nil {
		return nil, nodal.Result{}, err
	}
	solver, err := nodal.NewNodal(g, cfg)
	if err != nil {
		return nil, nodal.Result{}, err
	}
	return solver, solver.Solve(), nil
}
