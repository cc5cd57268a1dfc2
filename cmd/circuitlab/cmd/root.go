package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"circuitlab/types"
)

var (
	maxIter   int
	tolerance float64
)

var rootCmd = &cobra.Command{
	Use:   "circuitlab",
	Short: "circuitlab - 教学电路直流求解工具",
	Long: `circuitlab 对网表描述的直流电路做迭代节点求解:
  - 电池/电阻/灯泡/开关构成的任意拓扑
  - 每个连通子图独立求解并各自指定参考地
  - 闭合开关按理想导体归并, 断开开关以大有限电阻近似

示例:
  circuitlab solve circuit.net            # 求解并打印节点电压与支路电流
  circuitlab solve circuit.net --html debug.html
  circuitlab validate circuit.net         # 求解后做KCL/电压源校验
  circuitlab export circuit.net out.net   # 规范化导出网表`,
}

// Execute 运行根命令
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().IntVar(&maxIter, "max-iter", types.MaxIterations, "最大迭代次数")
	rootCmd.PersistentFlags().Float64Var(&tolerance, "tol", types.Tolerance, "收敛容差(伏)")
}

// solveConfig 由命令行参数生成求解参数
func solveConfig() types.SolveConfig {
	cfg := types.DefaultSolveConfig()
	cfg.MaxIterations = maxIter
	cfg.Tolerance = tolerance
	return cfg
}
