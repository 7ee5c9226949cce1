package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Rorical/RoriSend/ui/components"
)

var unitsCmd = &cobra.Command{
	Use:   "units",
	Short: "Print the denomination table",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), components.UnitLegend())
	},
}

func init() {
	rootCmd.AddCommand(unitsCmd)
}
