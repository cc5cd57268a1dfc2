package types

import "io"

// Solver 求解状态读取接口
type Solver interface {
	GetGraph() *CircuitGraph     // 获取底层图表
	GetVoltage(i NodeID) float64 // 返回节点电压
	GetIteration() int           // 当前迭代次数
	GetMaxDelta() float64        // 本轮最大电压变化
}

// Debug 调试接口
type Debug interface {
	Init(s Solver)            // 求解开始
	Update(s Solver)          // 每轮迭代记录
	Render(w io.Writer) error // 格式化输出
	Error(err error)          // 错误处理
}
