package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var summaryCmd = &cobra.Command{
	Use:   "summary <input.csv>",
	Short: "Print branch and parent-broker volume summaries",
	Args:  cobra.ExactArgs(1),
	RunE:  runSummary,
}

var summaryParentOnly bool

func init() {
	rootCmd.AddCommand(summaryCmd)
	summaryCmd.Flags().BoolVarP(&summaryParentOnly, "parent", "p", false, "only the parent-broker rollup")
}

func runSummary(cmd *cobra.Command, args []string) error {
	tables, tbl, err := analyzeFile(args[0], 0)
	if err != nil {
		return err
	}
	fmt.Printf("Source: %s (%s, %d records)\n\n", args[0], tbl.Encoding, len(tbl.Records))

	if !summaryParentOnly {
		fmt.Println("By branch:")
		printSummaryRows(tables.Branch)
		fmt.Println()
	}
	fmt.Println("By parent broker:")
	printSummaryRows(tables.ParentSum)
	return nil
}
