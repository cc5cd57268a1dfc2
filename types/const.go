package types

// 默认参数常量定义
var (
	Tolerance             = 1e-3 // 收敛容差(伏)
	MaxIterations         = 500  // 最大迭代次数
	OpenSwitchResistance  = 1e9  // 开关断开电阻(欧)
	DefaultMergeTolerance = 0.05 // 引脚合并距离容差
	KCLTolerance          = 1e-3 // 节点电流残差容差(安)
	EMFTolerance          = 1e-3 // 电压源端压校验容差(伏)
)

// SolveConfig 求解参数
// 闭合开关按理想导体归并进超节点而非近零电阻:
// 大电导会把松弛收缩率推向1, 残差判据在远离不动点处提前停机。
type SolveConfig struct {
	MaxIterations        int     // 最大迭代次数
	Tolerance            float64 // 收敛容差(伏)
	OpenSwitchResistance float64 // 开关断开电阻(欧)
}

// DefaultSolveConfig 默认求解参数
func DefaultSolveConfig() SolveConfig {
	return SolveConfig{
		MaxIterations:        MaxIterations,
		Tolerance:            Tolerance,
		OpenSwitchResistance: OpenSwitchResistance,
	}
}
