package main

import (
	"fmt"
	"os"

	"satimge/satimge-charts/cmd/charts"
	"satimge/satimge-charts/cmd/dataset"
	"satimge/satimge-charts/cmd/decode"
	"satimge/satimge-charts/cmd/lookups"
	"satimge/satimge-charts/cmd/root"
	"satimge/satimge-charts/internal/config"
)

func init() {
	// 1. Load environment variables silently first (no logging yet)
	config.LoadEnv(nil)

	// 2. Initialize root command flags
	root.Init()

	// 3. Add all subcommands
	root.Cmd.AddCommand(dataset.Cmd)
	root.Cmd.AddCommand(decode.Cmd)
	root.Cmd.AddCommand(charts.Cmd)
	root.Cmd.AddCommand(lookups.Cmd)
}

func main() {
	if err := root.Cmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
