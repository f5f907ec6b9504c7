package cmd

import (
	"github.com/TemaXo00/musium-web-application/server"

	"github.com/spf13/cobra"
)

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Start the Musium HTTP server",
	Long:  `Start the Musium HTTP server serving the catalog, author and admin APIs.`,
	Run: func(cmd *cobra.Command, args []string) {
		server.Start()
	},
}

func init() {
	rootCmd.AddCommand(serverCmd)
}
