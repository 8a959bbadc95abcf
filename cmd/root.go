package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "mts",
	Short: "versioned text snapshot server and client",
	Example: `mts serve
mts login -n admin -p <pass>
mts project list
mts unit create -p <project-id> -t <title> -f <file>
mts commit create -u <unit-id>
mts commit records -c <commit-id>`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(dbCmd)
	rootCmd.AddCommand(loginCmd())

	rootCmd.AddCommand(projectCmd)
	projectCmd.SetHelpCommand(&cobra.Command{Use: "no-help", Hidden: true})
	projectCmd.AddCommand(listProjectsCmd())
	projectCmd.AddCommand(createProjectCmd())

	rootCmd.AddCommand(unitCmd)
	unitCmd.SetHelpCommand(&cobra.Command{Use: "no-help", Hidden: true})
	unitCmd.AddCommand(listUnitsCmd())
	unitCmd.AddCommand(createUnitCmd())
	unitCmd.AddCommand(listSourcesCmd())

	rootCmd.AddCommand(commitCmd)
	commitCmd.SetHelpCommand(&cobra.Command{Use: "no-help", Hidden: true})
	commitCmd.AddCommand(listCommitsCmd())
	commitCmd.AddCommand(createCommitCmd())
	commitCmd.AddCommand(listRecordsCmd())
	commitCmd.AddCommand(latestCommitCmd())

	rootCmd.AddCommand(contextCommand)
	contextCommand.SetHelpCommand(&cobra.Command{Use: "no-help", Hidden: true})

	rootCmd.SetHelpCommand(&cobra.Command{Use: "no-help", Hidden: true})

	rootCmd.CompletionOptions.HiddenDefaultCmd = true
	cobra.EnableCommandSorting = false
}
