package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"circuitlab"
	"circuitlab/nodal"
	"circuitlab/nodal/debug"
)

var (
	htmlOut string
	pngOut  string
)

var solveCmd = &cobra.Command{
	Use:   "solve <netlist>",
	Short: "求解网表电路并打印结果",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		cir := circuitlab.NewCircuit()
		if err := cir.Load(args[0]); err != nil {
			return err
		}
		g, err := cir.Build()
		if err != nil {
			return err
		}
		solver, err := nodal.NewNodal(g, solveConfig())
		if err != nil {
			return err
		}
		var charts *debug.Charts
		if htmlOut != "" || pngOut != "" {
			charts = &debug.Charts{}
			solver.Debug = charts
		}
		result := solver.Solve()

		if !result.Converged {
			fmt.Printf("警告: %d轮迭代后未收敛, 末轮最大电压变化 %.3g V\n",
				result.Iterations, result.MaxDelta)
		}
		for _, w := range append(g.Warnings, result.Warnings...) {
			fmt.Printf("警告: %s\n", w)
		}
		fmt.Printf("迭代轮数: %d\n", result.Iterations)
		fmt.Println("节点电压:")
		for _, n := range g.Nodes {
			mark := ""
			if n.Ground {
				mark = " (地)"
			}
			fmt.Printf("  Node(%d)%s 子图%d: %.4g V\n", n.ID, mark, n.Subgraph, n.Voltage)
		}
		fmt.Println("支路电流:")
		for _, b := range g.Branches {
			fmt.Printf("  %s(%d) %d-%d: %.4g A 压降 %.4g V\n",
				b.Kind, b.ID, b.Pos, b.Neg, b.Current, b.VoltageDrop)
		}

		if htmlOut != "" {
			file, err := os.Create(htmlOut)
			if err != nil {
				return err
			}
			defer file.Close()
			if err := charts.Render(file); err != nil {
				return fmt.Errorf("调试页面输出失败: %w", err)
			}
		}
		if pngOut != "" {
			if err := charts.SavePNG(pngOut); err != nil {
				return fmt.Errorf("收敛曲线输出失败: %w", err)
			}
		}
		return nil
	},
}

func init() {
	solveCmd.Flags().StringVar(&htmlOut, "html", "", "调试图表HTML输出路径")
	solveCmd.Flags().StringVar(&pngOut, "png", "", "收敛曲线PNG输出路径")
	rootCmd.AddCommand(solveCmd)
}
