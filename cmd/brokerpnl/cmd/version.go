package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

const version = "1.0.0"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Long:  `Display the current version of the brokerpnl CLI.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("brokerpnl version %s\n", version)
		fmt.Println("Broker transaction normalization and day-trade P&L analysis")
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
