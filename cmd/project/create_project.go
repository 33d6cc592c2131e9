/*
 * Copyright (c) Atlas Projects Manager authors.
 */

package project

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/atlas-pm/cli/cmd/util"
	atlasAuthClient "github.com/atlas-pm/cli/internal/client"
	"github.com/atlas-pm/cli/internal/formatter"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v2"
)

var createProjectCmd = &cobra.Command{
	Use:     "create",
	Aliases: []string{"add"},
	Short:   "Create an Atlas project",
	Long:    "Create a project under an Atlas organization",
	Example: `apm project create --name <name> --org-id <org-id>
apm project create --file project.yaml`,
	PreRun: func(cmd *cobra.Command, args []string) {
		file, err := cmd.Flags().GetString("file")
		if err != nil {
			logrus.Fatalf(formatter.Colorize(err.Error()+"\n", formatter.RedColor))
		}
		if !util.IsEmptyString(file) {
			return
		}
		name, err := cmd.Flags().GetString("name")
		if err != nil {
			logrus.Fatalf(formatter.Colorize(err.Error()+"\n", formatter.RedColor))
		}
		if util.IsEmptyString(name) {
			cmd.Help()
			logrus.Fatalln(
				formatter.Colorize("No project name found to create\n", formatter.RedColor))
		}
	},
	Run: func(cmd *cobra.Command, args []string) {
		authAPI := atlasAuthClient.NewAtlasAPIClientFromConfig()

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		spec := atlasAuthClient.ProjectSpec{}

		file, err := cmd.Flags().GetString("file")
		if err != nil {
			logrus.Fatalf(formatter.Colorize(err.Error()+"\n", formatter.RedColor))
		}
		if !util.IsEmptyString(file) {
			content, err := os.ReadFile(file)
			if err != nil {
				logrus.Fatalf(
					formatter.Colorize("Error reading project file: "+err.Error()+"\n",
						formatter.RedColor))
			}
			if err := yaml.Unmarshal(content, &spec); err != nil {
				logrus.Fatalf(
					formatter.Colorize("Error parsing project file: "+err.Error()+"\n",
						formatter.RedColor))
			}
		} else {
			spec.Name, err = cmd.Flags().GetString("name")
			if err != nil {
				logrus.Fatalf(formatter.Colorize(err.Error()+"\n", formatter.RedColor))
			}
			spec.OrgID, err = cmd.Flags().GetString("org-id")
			if err != nil {
				logrus.Fatalf(formatter.Colorize(err.Error()+"\n", formatter.RedColor))
			}
		}

		if util.IsEmptyString(spec.OrgID) {
			// ATLAS_ORG_ID or the configured default organization
			spec.OrgID = viper.GetString("org-id")
		}
		if util.IsEmptyString(spec.OrgID) {
			logrus.Fatalln(
				formatter.Colorize(
					"No organization ID found. Set --org-id or ATLAS_ORG_ID.\n",
					formatter.RedColor))
		}

		p, err := authAPI.CreateProject(ctx, spec)
		if err != nil {
			logrus.Fatalf(formatter.Colorize(err.Error()+"\n", formatter.RedColor))
		}

		msg := fmt.Sprintf("The project %s (%s) has been created",
			formatter.Colorize(p.Name, formatter.GreenColor), p.ID)
		logrus.Infoln(msg + "\n")
	},
}

func init() {
	createProjectCmd.Flags().SortFlags = false
	createProjectCmd.Flags().StringP("name", "n", "",
		"[Required] The name of the project to be created.")
	createProjectCmd.Flags().String("org-id", "",
		"[Optional] The organization the project is created under. "+
			"Defaults to ATLAS_ORG_ID.")
	createProjectCmd.Flags().String("file", "",
		"[Optional] Path to a YAML file describing the project. "+
			"Takes precedence over name and org-id.")
}
