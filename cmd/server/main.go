// Package main is the entry point for the encounter server and its tools
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/rpg-encounters/cmd/server/client"
)

var rootCmd = &cobra.Command{
	Use:   "rpg-encounters",
	Short: "RPG encounter gRPC server",
	Long: `rpg-encounters rates tabletop fights and composes random encounters that
exactly fill a difficulty budget, backed by a Redis bestiary.`,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(serverCmd)
	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(client.ClientCmd)
}
