package nodal

import (
	"errors"
	"fmt"

	"circuitlab/types"
)

// ErrUnmeasurable 探针不可测
// 探针跨越不同连通子图或指向未求解/未知对象时返回,
// 避免把无定义的测量静默成零。
var ErrUnmeasurable = errors.New("探针不可测")

// MeasureVoltage 测量两节点电位差
// 返回 V(a) - V(b), 带符号。
func (nodal *Nodal) MeasureVoltage(a, b types.NodeID) (float64, error) {
	if !nodal.solved {
		return 0, fmt.Errorf("%w: 电路尚未求解", ErrUnmeasurable)
	}
	na, nb := nodal.Node(a), nodal.Node(b)
	if na == nil || nb == nil {
		return 0, fmt.Errorf("%w: 节点不在当前图表中: %d/%d", ErrUnmeasurable, a, b)
	}
	if na.Subgraph != nb.Subgraph {
		return 0, fmt.Errorf("%w: 节点位于不同连通子图: %d/%d", ErrUnmeasurable, a, b)
	}
	return na.Voltage - nb.Voltage, nil
}

// MeasureCurrent 读取支路求解电流
func (nodal *Nodal) MeasureCurrent(id types.BranchID) (float64, error) {
	if !nodal.solved {
		return 0, fmt.Errorf("%w: 电路尚未求解", ErrUnmeasurable)
	}
	b := nodal.Branch(id)
	if b == nil {
		return 0, fmt.Errorf("%w: 支路不在当前图表中: %d", ErrUnmeasurable, id)
	}
	return b.Current, nil
}
