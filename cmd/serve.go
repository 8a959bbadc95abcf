package cmd

import (
	"github.com/mtslabs/mts/internal/server"
	"github.com/spf13/cobra"
)

func serveCmd() *cobra.Command {
	var port string

	command := &cobra.Command{
		Use:     "serve",
		Short:   "start the mts server",
		Example: "mts serve --port 8000",
		Run: func(cmd *cobra.Command, args []string) {
			server.NewServer(port).Start()
		},
	}

	command.Flags().StringVarP(&port, "port", "p", "", "http port, overrides HTTP_PORT")

	return command
}
