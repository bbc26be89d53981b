// Package main is the entry point for the cosmo-api server and tools
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/cosmo-api/cmd/server/client"
)

var rootCmd = &cobra.Command{
	Use:   "cosmo-api",
	Short: "Team sharing and synergy API",
	Long:  `cosmo-api shares team compositions through short codes or inline links and reports the bonds and combine skills a team activates.`,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(serverCmd)
	rootCmd.AddCommand(rosterCmd)
	rootCmd.AddCommand(tokenCmd)
	rootCmd.AddCommand(sharesCmd)
	rootCmd.AddCommand(client.ClientCmd)
}
