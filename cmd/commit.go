package cmd

import (
	"os"
	"strconv"

	"github.com/google/uuid"
	"github.com/olekukonko/tablewriter"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var commitCmd = &cobra.Command{
	Use:   "commit",
	Short: "manage commits",
	Example: `  mts commit create -u <unit-id>
  mts commit list -u <unit-id>
  mts commit records -c <commit-id>
  mts commit latest -u <unit-id>`,
}

func createCommitCmd() *cobra.Command {
	var unitID string

	var required = []string{"unit-id"}

	command := &cobra.Command{
		Use:     "create",
		Short:   "snapshot the working sources of a unit into a commit",
		Example: "mts commit create -u <unit-id>",
		Run: func(cmd *cobra.Command, args []string) {
			if checkMissingFlags(cmd, required) {
				return
			}

			uid, err := uuid.Parse(unitID)
			if err != nil {
				logrus.Error("invalid unit id, expected a valid uuid")
				return
			}

			client := apiClient()
			commit, err := client.CreateCommit(uid, nil)
			if err != nil {
				logrus.Error(err)
				return
			}

			logrus.Infof("commit created with id: %s", commit.ID)
		},
	}

	command.Flags().StringVarP(&unitID, "unit-id", "u", "", "unit id (required)")
	command.Flags().SortFlags = false

	return command
}

func listCommitsCmd() *cobra.Command {
	var unitID string

	var required = []string{"unit-id"}

	command := &cobra.Command{
		Use:   "list",
		Short: "list the commits of a unit, oldest first",
		Run: func(cmd *cobra.Command, args []string) {
			if checkMissingFlags(cmd, required) {
				return
			}

			uid, err := uuid.Parse(unitID)
			if err != nil {
				logrus.Error("invalid unit id, expected a valid uuid")
				return
			}

			client := apiClient()
			commits, err := client.ListCommits(uid)
			if err != nil {
				logrus.Error(err)
				return
			}

			table := tablewriter.NewWriter(os.Stdout)
			table.SetHeader([]string{"ID", "Created At"})
			for _, commit := range commits {
				table.Append([]string{commit.ID.String(), commit.CreatedAt.Format("2006-01-02 15:04:05")})
			}

			table.Render()
		},
	}

	command.Flags().StringVarP(&unitID, "unit-id", "u", "", "unit id (required)")
	command.Flags().SortFlags = false

	return command
}

func listRecordsCmd() *cobra.Command {
	var commitID string

	var required = []string{"commit-id"}

	command := &cobra.Command{
		Use:     "records",
		Short:   "list the records of a commit",
		Example: "mts commit records -c <commit-id>",
		Run: func(cmd *cobra.Command, args []string) {
			if checkMissingFlags(cmd, required) {
				return
			}

			cid, err := uuid.Parse(commitID)
			if err != nil {
				logrus.Error("invalid commit id, expected a valid uuid")
				return
			}

			client := apiClient()
			records, err := client.GetRecords(cid)
			if err != nil {
				logrus.Error(err)
				return
			}

			table := tablewriter.NewWriter(os.Stdout)
			table.SetHeader([]string{"Sq", "Content"})
			for _, record := range records {
				table.Append([]string{strconv.Itoa(int(record.Sq)), record.Content})
			}

			table.Render()
		},
	}

	command.Flags().StringVarP(&commitID, "commit-id", "c", "", "commit id (required)")
	command.Flags().SortFlags = false

	return command
}

func latestCommitCmd() *cobra.Command {
	var unitID string

	var required = []string{"unit-id"}

	command := &cobra.Command{
		Use:     "latest",
		Short:   "show the latest commit of a unit",
		Example: "mts commit latest -u <unit-id>",
		Run: func(cmd *cobra.Command, args []string) {
			if checkMissingFlags(cmd, required) {
				return
			}

			uid, err := uuid.Parse(unitID)
			if err != nil {
				logrus.Error("invalid unit id, expected a valid uuid")
				return
			}

			client := apiClient()
			commit, err := client.LatestCommit(uid)
			if err != nil {
				logrus.Error(err)
				return
			}

			table := tablewriter.NewWriter(os.Stdout)
			table.SetHeader([]string{"ID", "Created At"})
			table.Append([]string{commit.ID.String(), commit.CreatedAt.Format("2006-01-02 15:04:05")})
			table.Render()
		},
	}

	command.Flags().StringVarP(&unitID, "unit-id", "u", "", "unit id (required)")
	command.Flags().SortFlags = false

	return command
}
