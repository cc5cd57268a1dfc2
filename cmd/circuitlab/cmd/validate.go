package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"circuitlab"
	"circuitlab/nodal"
)

var validateCmd = &cobra.Command{
	Use:   "validate <netlist>",
	Short: "求解后做KCL残差/电压源端压/电阻有效性校验",
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
		result := solver.Solve()
		warns := append(append(g.Warnings, result.Warnings...), solver.Validate()...)
		if len(warns) == 0 {
			fmt.Println("校验通过")
			return nil
		}
		for _, w := range warns {
			fmt.Printf("警告: %s\n", w)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
