/*
 * Copyright (c) Atlas Projects Manager authors.
 */

package project

import (
	"context"
	"os"
	"os/signal"
	"strings"

	"github.com/atlas-pm/cli/cmd/util"
	atlasAuthClient "github.com/atlas-pm/cli/internal/client"
	"github.com/atlas-pm/cli/internal/formatter"
	"github.com/atlas-pm/cli/internal/formatter/project"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var listProjectCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List Atlas projects",
	Long:    "List the Atlas projects visible to the configured API key pair",
	Example: `apm project list`,
	Run: func(cmd *cobra.Command, args []string) {
		authAPI := atlasAuthClient.NewAtlasAPIClientFromConfig()

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		rProjects, err := authAPI.ListProjects(ctx)
		if err != nil {
			logrus.Fatalf(formatter.Colorize(err.Error()+"\n", formatter.RedColor))
		}

		name, err := cmd.Flags().GetString("name")
		if err != nil {
			logrus.Fatalf(formatter.Colorize(err.Error()+"\n", formatter.RedColor))
		}

		r := make([]atlasAuthClient.Project, 0)
		if !util.IsEmptyString(name) {
			for _, p := range rProjects {
				if strings.EqualFold(p.Name, name) {
					r = append(r, p)
				}
			}
		} else {
			r = rProjects
		}

		projectCtx := formatter.Context{
			Command: "list",
			Output:  os.Stdout,
			Format:  project.NewProjectFormat(viper.GetString("output")),
		}
		if len(r) < 1 {
			if util.IsOutputType(formatter.TableFormatKey) {
				logrus.Info("No projects found\n")
			} else {
				logrus.Info("[]\n")
			}
			return
		}
		project.Write(projectCtx, r)
	},
}

func init() {
	listProjectCmd.Flags().SortFlags = false

	listProjectCmd.Flags().StringP("name", "n", "", "[Optional] Name of the project.")
}
