/*
 * Copyright (c) Atlas Projects Manager authors.
 */

package cluster

import (
	"github.com/spf13/cobra"
)

// ClusterCmd set of commands are used to inspect Atlas clusters
var ClusterCmd = &cobra.Command{
	Use:   "cluster",
	Short: "Inspect Atlas clusters",
	Long:  "Inspect the clusters of an Atlas project",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

func init() {
	ClusterCmd.AddCommand(listClusterCmd)
}
