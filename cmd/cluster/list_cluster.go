/*
 * Copyright (c) Atlas Projects Manager authors.
 */

package cluster

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/atlas-pm/cli/cmd/util"
	atlasAuthClient "github.com/atlas-pm/cli/internal/client"
	"github.com/atlas-pm/cli/internal/formatter"
	"github.com/atlas-pm/cli/internal/formatter/cluster"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var listClusterCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List the clusters of an Atlas project",
	Long:    "List the clusters of an Atlas project, by project ID or name",
	Example: `apm cluster list --project <project-name>`,
	PreRun: func(cmd *cobra.Command, args []string) {
		projectFlag, err := cmd.Flags().GetString("project")
		if err != nil {
			logrus.Fatalf(formatter.Colorize(err.Error()+"\n", formatter.RedColor))
		}
		if util.IsEmptyString(projectFlag) {
			cmd.Help()
			logrus.Fatalln(
				formatter.Colorize("No project found to list clusters of\n", formatter.RedColor))
		}
	},
	Run: func(cmd *cobra.Command, args []string) {
		authAPI := atlasAuthClient.NewAtlasAPIClientFromConfig()

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		projectFlag, err := cmd.Flags().GetString("project")
		if err != nil {
			logrus.Fatalf(formatter.Colorize(err.Error()+"\n", formatter.RedColor))
		}

		// The flag value may be a project ID or a project name
		projects, err := authAPI.ListProjects(ctx)
		if err != nil {
			logrus.Fatalf(formatter.Colorize(err.Error()+"\n", formatter.RedColor))
		}
		var projectID string
		for _, p := range projects {
			if p.ID == projectFlag || strings.EqualFold(p.Name, projectFlag) {
				projectID = p.ID
				break
			}
		}
		if util.IsEmptyString(projectID) {
			logrus.Fatalf(
				formatter.Colorize(
					fmt.Sprintf("No projects with name or ID: %s found\n", projectFlag),
					formatter.RedColor,
				))
		}

		r, err := authAPI.ListClusters(ctx, projectID)
		if err != nil {
			logrus.Fatalf(formatter.Colorize(err.Error()+"\n", formatter.RedColor))
		}

		clusterCtx := formatter.Context{
			Command: "list",
			Output:  os.Stdout,
			Format:  cluster.NewClusterFormat(viper.GetString("output")),
		}
		if len(r) < 1 {
			if util.IsOutputType(formatter.TableFormatKey) {
				logrus.Info("No clusters found\n")
			} else {
				logrus.Info("[]\n")
			}
			return
		}
		cluster.Write(clusterCtx, r)
	},
}

func init() {
	listClusterCmd.Flags().SortFlags = false

	listClusterCmd.Flags().StringP("project", "g", "",
		"[Required] ID or name of the project whose clusters are listed.")
	listClusterCmd.MarkFlagRequired("project")
}
