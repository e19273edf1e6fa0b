package main

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCommand = &cobra.Command{
	Use:   "backend",
	Short: "community backend",
	Long:  "Servers, channels, members and profiles behind a GraphQL API.",
}

func main() {
	if err := rootCommand.Execute(); err != nil {
		os.Exit(1)
	}
}
