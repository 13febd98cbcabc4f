package main

import (
	"os"

	"brokerpnl/cmd/brokerpnl/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
