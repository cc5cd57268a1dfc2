package debug

import (
	"encoding/json"
	"fmt"
	"io"
	"log"

	"circuitlab/types"
)

// Record 记录求解历史状态
type Record struct {
	Nodes    [][][2]int  // 节点连接: 每节点的[支路,引脚]列表
	Branches []string    // 支路列表
	Grounds  []int       // 各子图接地节点
	Voltage  [][]float64 // 每轮节点电压
	Delta    []float64   // 每轮最大电压变化
	Pass     []int       // 轮次列
}

// Init 初始化
func (list *Record) Init(s types.Solver) {
	graph := s.GetGraph()
	list.Branches = list.Branches[:0]
	for _, b := range graph.Branches {
		list.Branches = append(list.Branches, fmt.Sprintf("%s(%d)", b.Kind, b.ID))
	}
	list.Nodes = make([][][2]int, len(graph.Nodes))
	for _, b := range graph.Branches {
		list.Nodes[b.Pos] = append(list.Nodes[b.Pos], [2]int{b.ID, 0})
		if b.Neg != b.Pos {
			list.Nodes[b.Neg] = append(list.Nodes[b.Neg], [2]int{b.ID, 1})
		}
	}
	list.Grounds = append(list.Grounds[:0], graph.Grounds...)
	list.Voltage = list.Voltage[:0]
	list.Delta = list.Delta[:0]
	list.Pass = list.Pass[:0]
}

// Update 记录数据
func (list *Record) Update(s types.Solver) {
	graph := s.GetGraph()
	row := make([]float64, len(graph.Nodes))
	for i := range row {
		row[i] = s.GetVoltage(i)
	}
	list.Voltage = append(list.Voltage, row)
	list.Delta = append(list.Delta, s.GetMaxDelta())
	list.Pass = append(list.Pass, s.GetIteration())
}

// Render 格式和输出内容
func (list *Record) Render(w io.Writer) error { return json.NewEncoder(w).Encode(list) }

func (list *Record) Error(err error) { log.Println(err) }
