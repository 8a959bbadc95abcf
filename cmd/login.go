package cmd

import (
	"github.com/fatih/color"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func loginCmd() *cobra.Command {
	var name string
	var pass string

	var required = []string{"name", "pass"}

	command := &cobra.Command{
		Use:     "login",
		Short:   "login and save the token to the current context",
		Example: "mts login -n admin -p <password>",
		Run: func(cmd *cobra.Command, args []string) {
			if checkMissingFlags(cmd, required) {
				return
			}

			client := apiClient()
			res, err := client.Login(name, pass)
			if err != nil {
				logrus.Error(err)
				return
			}

			ctx := readContext()
			ctx.Token = res.Token
			writeContext(ctx)

			color.Green("logged in as %s", name)
		},
	}

	command.Flags().StringVarP(&name, "name", "n", "", "user name (required)")
	command.Flags().StringVarP(&pass, "pass", "p", "", "password (required)")
	command.Flags().SortFlags = false

	return command
}
