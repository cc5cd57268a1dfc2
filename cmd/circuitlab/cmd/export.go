package cmd

import (
	"github.com/spf13/cobra"

	"circuitlab"
)

var exportCmd = &cobra.Command{
	Use:   "export <netlist> <output>",
	Short: "加载网表后按规范格式重新导出",
	Args:  cobra.ExactArgs(2),
	RunE: func(_ *cobra.Command, args []string) error {
		cir := circuitlab.NewCircuit()
		if err := cir.Load(args[0]); err != nil {
			return err
		}
		return cir.Export(args[1])
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)
}
