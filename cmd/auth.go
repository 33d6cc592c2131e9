/*
 * Copyright (c) Atlas Projects Manager authors.
 */

package cmd

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
	"golang.org/x/term"
)

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Authenticate apm",
	Long: "Authenticate apm through this command by providing the " +
		"Atlas programmatic API key pair.",
	Run: func(cmd *cobra.Command, args []string) {
		var publicKey string
		var data []byte
		var err error

		// Prompt for the public key
		fmt.Print("Enter Public Key: ")
		_, err = fmt.Scanln(&publicKey)
		if err != nil {
			logrus.Fatalln(
				formatter.Colorize("Could not read public key: "+err.Error(), formatter.RedColor))
		}
		if util.IsEmptyString(publicKey) {
			logrus.Fatalln(formatter.Colorize("Public key cannot be empty.", formatter.RedColor))
		}
		viper.GetViper().Set("public-key", &publicKey)

		// Prompt for the private key, without echo
		fmt.Print("Enter Private Key: ")
		data, err = term.ReadPassword(int(os.Stdin.Fd()))
		fmt.Println()
		if err != nil {
			logrus.Fatalln(
				formatter.Colorize("Could not read private key: "+err.Error(), formatter.RedColor))
		}
		privateKey := strings.TrimSpace(string(data))
		if util.IsEmptyString(privateKey) {
			logrus.Fatalln(formatter.Colorize("Private key cannot be empty.", formatter.RedColor))
		}
		viper.GetViper().Set("private-key", &privateKey)

		// Before writing the config, validate the key pair with one live call
		authAPI, err := atlasAuthClient.NewAtlasAPIClient(atlasAuthClient.Credentials{
			PublicKey:  publicKey,
			PrivateKey: privateKey,
		})
		if err != nil {
			logrus.Fatalf(formatter.Colorize(err.Error()+"\n", formatter.RedColor))
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		projects, err := authAPI.ListProjects(ctx)
		if err != nil {
			logrus.Fatalf(formatter.Colorize(err.Error()+"\n", formatter.RedColor))
		}
		logrus.Debugf("Key pair can see %s\n", util.Pluralize(len(projects), "project"))

		err = viper.WriteConfig()
		if err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); ok {
				fmt.Fprintln(os.Stdout, "No config was found a new one will be created.")
				// Try to create the file
				err = viper.SafeWriteConfig()
				if err != nil {
					logrus.Fatalf(
						formatter.Colorize(
							"Error when writing new config file: "+err.Error()+"\n",
							formatter.RedColor))
				}
			} else {
				logrus.Fatalf(
					formatter.Colorize(
						"Error when writing config file: "+err.Error()+"\n", formatter.RedColor))
			}
		}
		configFileUsed := viper.GetViper().ConfigFileUsed()
		if len(configFileUsed) == 0 {
			configFileUsed = "$HOME/.apm/.apm.yaml"
		}
		logrus.Infof("Configuration file '%v' successfully updated.\n", configFileUsed)
	},
}
