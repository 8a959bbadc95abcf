package cmd

import (
	"os"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/mtslabs/mts/internal/service"
	"github.com/olekukonko/tablewriter"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var unitCmd = &cobra.Command{
	Use:   "unit",
	Short: "manage units",
	Example: `  mts unit create -p <project-id> -t <title> -f <file>
  mts unit list -p <project-id>
  mts unit sources -u <unit-id>`,
}

func createUnitCmd() *cobra.Command {
	var projectID string
	var title string
	var file string

	var required = []string{"project-id"}

	command := &cobra.Command{
		Use:     "create",
		Short:   "create a unit",
		Long:    `create a unit under a project, optionally loading its sources from a file (one row per line)`,
		Example: "mts unit create -p <project-id> -t <title> -f <file>",
		Run: func(cmd *cobra.Command, args []string) {
			if checkMissingFlags(cmd, required) {
				return
			}

			pid, err := uuid.Parse(projectID)
			if err != nil {
				logrus.Error("invalid project id, expected a valid uuid")
				return
			}

			var sources []service.SourceInput
			if file != "" {
				sources, err = readSourceFile(file)
				if err != nil {
					logrus.Error(err)
					return
				}
			}

			client := apiClient()
			unit, err := client.CreateUnit(pid, title, sources)
			if err != nil {
				logrus.Error(err)
				return
			}

			logrus.Infof("unit created with id: %s", unit.ID)
		},
	}

	command.Flags().StringVarP(&projectID, "project-id", "p", "", "project id (required)")
	command.Flags().StringVarP(&title, "title", "t", "", "title of the unit")
	command.Flags().StringVarP(&file, "file", "f", "", "file with one source row per line")
	command.Flags().SortFlags = false

	return command
}

func listUnitsCmd() *cobra.Command {
	var projectID string

	var required = []string{"project-id"}

	command := &cobra.Command{
		Use:   "list",
		Short: "list units",
		Run: func(cmd *cobra.Command, args []string) {
			if checkMissingFlags(cmd, required) {
				return
			}

			pid, err := uuid.Parse(projectID)
			if err != nil {
				logrus.Error("invalid project id, expected a valid uuid")
				return
			}

			client := apiClient()
			units, err := client.ListUnits(pid)
			if err != nil {
				logrus.Error(err)
				return
			}

			table := tablewriter.NewWriter(os.Stdout)
			table.SetHeader([]string{"ID", "Title", "Latest Commit", "Updated At"})
			for _, unit := range units {
				latest := ""
				if unit.CommitID != nil {
					latest = unit.CommitID.String()
				}
				updated := ""
				if unit.UpdatedAt != nil {
					updated = unit.UpdatedAt.Format("2006-01-02 15:04:05")
				}
				table.Append([]string{unit.ID.String(), unit.Title, latest, updated})
			}

			table.Render()
		},
	}

	command.Flags().StringVarP(&projectID, "project-id", "p", "", "project id (required)")
	command.Flags().SortFlags = false

	return command
}

func listSourcesCmd() *cobra.Command {
	var unitID string

	var required = []string{"unit-id"}

	command := &cobra.Command{
		Use:     "sources",
		Short:   "list the working sources of a unit",
		Example: "mts unit sources -u <unit-id>",
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
			sources, err := client.GetSources(uid)
			if err != nil {
				logrus.Error(err)
				return
			}

			table := tablewriter.NewWriter(os.Stdout)
			table.SetHeader([]string{"Sq", "Content", "Meta"})
			for _, source := range sources {
				table.Append([]string{strconv.Itoa(int(source.Sq)), source.Content, source.Meta})
			}

			table.Render()
		},
	}

	command.Flags().StringVarP(&unitID, "unit-id", "u", "", "unit id (required)")
	command.Flags().SortFlags = false

	return command
}

// readSourceFile maps each line of the file to a source row, sq assigned in file order.
func readSourceFile(path string) ([]service.SourceInput, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	trimmed := strings.TrimRight(string(data), "\n")
	if trimmed == "" {
		return nil, nil
	}

	lines := strings.Split(trimmed, "\n")
	sources := make([]service.SourceInput, 0, len(lines))
	for i, line := range lines {
		sources = append(sources, service.SourceInput{
			Sq:      int32(i),
			Content: line,
		})
	}

	return sources, nil
}
