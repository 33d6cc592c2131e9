/*
 * Copyright (c) Atlas Projects Manager authors.
 */

package project

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/atlas-pm/cli/cmd/util"
	atlasAuthClient "github.com/atlas-pm/cli/internal/client"
	"github.com/atlas-pm/cli/internal/formatter"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// deleteProjectCmd represents the project command
var deleteProjectCmd = &cobra.Command{
	Use:     "delete",
	Aliases: []string{"remove", "rm"},
	Short:   "Delete an Atlas project",
	Long:    "Delete a project in Atlas",
	Example: `apm project delete --name <name>`,
	PreRun: func(cmd *cobra.Command, args []string) {
		viper.BindPFlag("force", cmd.Flags().Lookup("force"))
		name, err := cmd.Flags().GetString("name")
		if err != nil {
			logrus.Fatalf(formatter.Colorize(err.Error()+"\n", formatter.RedColor))
		}
		id, err := cmd.Flags().GetString("id")
		if err != nil {
			logrus.Fatalf(formatter.Colorize(err.Error()+"\n", formatter.RedColor))
		}
		if util.IsEmptyString(name) && util.IsEmptyString(id) {
			cmd.Help()
			logrus.Fatalln(
				formatter.Colorize("No project name or ID found to delete\n", formatter.RedColor))
		}
		target := name
		if util.IsEmptyString(target) {
			target = id
		}
		err = util.ConfirmCommand(
			fmt.Sprintf("Are you sure you want to delete %s: %s", "project", target),
			viper.GetBool("force"))
		if err != nil {
			logrus.Fatal(formatter.Colorize(err.Error(), formatter.RedColor))
		}
	},
	Run: func(cmd *cobra.Command, args []string) {
		authAPI := atlasAuthClient.NewAtlasAPIClientFromConfig()

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		name, err := cmd.Flags().GetString("name")
		if err != nil {
			logrus.Fatalf(formatter.Colorize(err.Error()+"\n", formatter.RedColor))
		}
		projectID, err := cmd.Flags().GetString("id")
		if err != nil {
			logrus.Fatalf(formatter.Colorize(err.Error()+"\n", formatter.RedColor))
		}

		projectName := name
		if util.IsEmptyString(projectID) {
			r, err := authAPI.ListProjects(ctx)
			if err != nil {
				logrus.Fatalf(formatter.Colorize(err.Error()+"\n", formatter.RedColor))
			}

			for _, p := range r {
				if strings.EqualFold(p.Name, name) {
					projectID = p.ID
					break
				}
			}
			if util.IsEmptyString(projectID) {
				logrus.Fatalf(
					formatter.Colorize(
						fmt.Sprintf("No projects with name: %s found\n", name),
						formatter.RedColor,
					))
			}
		}

		err = authAPI.DeleteProject(ctx, projectID)
		if err != nil {
			logrus.Fatalf(formatter.Colorize(err.Error()+"\n", formatter.RedColor))
		}

		if util.IsEmptyString(projectName) {
			projectName = projectID
		}
		msg := fmt.Sprintf("The project %s (%s) has been deleted",
			formatter.Colorize(projectName, formatter.GreenColor), projectID)

		logrus.Infoln(msg + "\n")
	},
}

func init() {
	deleteProjectCmd.Flags().SortFlags = false
	deleteProjectCmd.Flags().StringP("name", "n", "",
		"[Optional] The name of the project to be deleted.")
	deleteProjectCmd.Flags().StringP("id", "i", "",
		"[Optional] The ID of the project to be deleted. "+
			"Takes precedence over name.")
	deleteProjectCmd.Flags().BoolP("force", "f", false,
		"[Optional] Bypass the prompt for non-interactive usage.")
}
