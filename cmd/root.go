/*
 * Copyright (c) Atlas Projects Manager authors.
 */

package cmd

import (
	"os"
	"strings"
	"time"

	"github.com/atlas-pm/cli/cmd/cluster"
	"github.com/atlas-pm/cli/cmd/project"
	"github.com/atlas-pm/cli/internal/client"
	"github.com/atlas-pm/cli/internal/formatter"
	"github.com/atlas-pm/cli/internal/log"

	"github.com/common-nighthawk/go-figure"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "apm",
	Short: "apm - Command line tool to manage your MongoDB Atlas projects.",
	Long: `
	MongoDB Atlas is a multi-cloud Database-as-a-Service. apm lists and
	manages the Atlas projects and clusters visible to a programmatic API
	key pair, from the command line or through an interactive viewer.`,

	Run: func(cmd *cobra.Command, args []string) {
		myFigure := figure.NewFigure("apm", "", true)
		myFigure.Print()
		logrus.Printf("\n")
		cmd.Help()
	},
}

// called on module init
func init() {
	cobra.OnInitialize(initConfig)
	cobra.EnableCaseInsensitive = true

	setDefaults()
	rootCmd.PersistentFlags().SortFlags = false
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "",
		"Full path to a specific configuration file for apm. "+
			"Defaults to '$HOME/.apm/.apm.yaml'.")
	rootCmd.PersistentFlags().StringP("host", "H", client.DefaultHost,
		"MongoDB Atlas endpoint")
	rootCmd.PersistentFlags().StringP("public-key", "u", "",
		"Atlas programmatic API public key.")
	rootCmd.PersistentFlags().StringP("private-key", "p", "",
		"Atlas programmatic API private key.")
	rootCmd.PersistentFlags().StringP("output", "o", formatter.TableFormatKey,
		"Select the desired output format. Allowed values: table, json, pretty.")
	rootCmd.PersistentFlags().StringP("logLevel", "l", "info",
		"Select the desired log level format. Allowed values: debug, info, warn, error, fatal.")
	rootCmd.PersistentFlags().Bool("debug", false, "Use debug mode, same as --logLevel debug.")
	rootCmd.PersistentFlags().
		Bool("disable-color", false, "Disable colors in output. (default false)")
	rootCmd.PersistentFlags().Duration("timeout", 30*time.Second,
		"Network call timeout, example: 15s, 1m.")

	// Bind persistent flags to viper
	viper.BindPFlag("host", rootCmd.PersistentFlags().Lookup("host"))
	viper.BindPFlag("public-key", rootCmd.PersistentFlags().Lookup("public-key"))
	viper.BindPFlag("private-key", rootCmd.PersistentFlags().Lookup("private-key"))
	viper.BindPFlag("output", rootCmd.PersistentFlags().Lookup("output"))
	viper.BindPFlag("logLevel", rootCmd.PersistentFlags().Lookup("logLevel"))
	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("disable-color", rootCmd.PersistentFlags().Lookup("disable-color"))
	viper.BindPFlag("timeout", rootCmd.PersistentFlags().Lookup("timeout"))

	rootCmd.AddCommand(authCmd)
	rootCmd.AddCommand(viewCmd)
	rootCmd.AddCommand(project.ProjectCmd)
	rootCmd.AddCommand(cluster.ClusterCmd)
}

// Execute commands
func Execute(version string) {
	rootCmd.Version = version
	rootCmd.SetVersionTemplate("Atlas Projects Manager CLI (apm) version: {{.Version}}\n")
	if err := rootCmd.Execute(); err != nil {
		// Set log level and formatter for this error
		log.SetLogLevel(viper.GetString("logLevel"), viper.GetBool("debug"))
		logrus.Fatal(formatter.Colorize(err.Error()+"\n", formatter.RedColor))
	}
}

func setDefaults() {
	viper.SetDefault("host", client.DefaultHost)
	viper.SetDefault("output", formatter.TableFormatKey)
	viper.SetDefault("logLevel", "info")
	viper.SetDefault("debug", false)
	viper.SetDefault("disable-color", false)
	viper.SetDefault("timeout", 30*time.Second)
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)
		homeDir, err := os.Stat(home)
		if err != nil {
			cobra.CheckErr(err)
		}
		homePerms := homeDir.Mode().Perm()
		os.Mkdir(home+"/.apm", homePerms)
		// Search config in home directory with name ".apm" (without extension).
		viper.AddConfigPath(home + "/.apm")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".apm")
		viper.SetConfigFile(home + "/.apm/.apm.yaml")
	}

	// Will check every environment variable starting with ATLAS_
	viper.SetEnvPrefix("atlas")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	// Read all environment variables that match ATLAS_ENVNAME
	viper.AutomaticEnv()
	// Set log level and formatter
	log.SetLogLevel(viper.GetString("logLevel"), viper.GetBool("debug"))
	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		logrus.Debugf("Using config file: %s\n", viper.ConfigFileUsed())
	}
}
