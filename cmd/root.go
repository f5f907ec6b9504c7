package cmd

import (
	"fmt"
	"os"

	"github.com/TemaXo00/musium-web-application/server"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "musium",
	Short: "Musium is a music catalog and publishing service.",
	Run: func(cmd *cobra.Command, args []string) {
		server.Start()
	},
}

// Execute executes the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
