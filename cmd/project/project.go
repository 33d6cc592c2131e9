/*
 * Copyright (c) Atlas Projects Manager authors.
 */

package project

import (
	"github.com/spf13/cobra"
)

// ProjectCmd set of commands are used to manage Atlas projects
var ProjectCmd = &cobra.Command{
	Use:   "project",
	Short: "Manage Atlas projects",
	Long:  "Manage Atlas projects (groups)",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

func init() {
	ProjectCmd.AddCommand(listProjectCmd)
	ProjectCmd.AddCommand(createProjectCmd)
	ProjectCmd.AddCommand(deleteProjectCmd)
}
