/*
 * Copyright (c) Atlas Projects Manager authors.
 */

package cmd

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"time"

	atlasAuthClient "github.com/atlas-pm/cli/internal/client"
	"github.com/atlas-pm/cli/internal/formatter"
	clusterformatter "github.com/atlas-pm/cli/internal/formatter/cluster"
	projectformatter "github.com/atlas-pm/cli/internal/formatter/project"
	"github.com/atlas-pm/cli/internal/shell"
	"github.com/briandowns/spinner"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var viewCmd = &cobra.Command{
	Use:   "view",
	Short: "Interactive Atlas projects viewer",
	Long: `Interactive viewer for Atlas projects. Projects are fetched in the
	background while the prompt stays responsive. Commands:
	l                  load or refresh the project table
	c <name|id>        show the clusters of a project
	d <name|id>        delete a project (asks for confirmation)
	q                  quit`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		sh := shell.New(func(ctx context.Context) ([]atlasAuthClient.Project, error) {
			authAPI, err := atlasAuthClient.NewAtlasAPIClient(
				atlasAuthClient.CredentialsFromViper())
			if err != nil {
				return nil, err
			}
			return authAPI.ListProjects(ctx)
		})

		runView(ctx, sh, os.Stdin)
	},
}

// runView drives the viewer event loop. Stdin lines and fetch results are
// multiplexed on one select so the prompt never blocks on the network.
func runView(ctx context.Context, sh *shell.Shell, in io.Reader) {
	input := make(chan string)
	go func() {
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			input <- strings.TrimSpace(scanner.Text())
		}
		close(input)
	}()

	logrus.Info("Commands: [l] load projects, [c <name|id>] view clusters, " +
		"[d <name|id>] delete project, [q] quit\n")

	var loading *spinner.Spinner
	var pendingDelete *atlasAuthClient.Project

	for {
		select {
		case <-ctx.Done():
			return

		case res := <-sh.Results():
			if loading != nil {
				loading.Stop()
				loading = nil
			}
			sh.Apply(res)
			if sh.State() == shell.StateLoaded {
				renderProjects(sh.Projects())
			}
			printStatus(sh)

		case line, ok := <-input:
			if !ok {
				return
			}
			fields := strings.Fields(line)
			if len(fields) == 0 {
				continue
			}
			verb := strings.ToLower(fields[0])

			if verb == "q" || verb == "quit" {
				// in-flight fetch is abandoned, not awaited
				return
			}

			if pendingDelete != nil {
				target := *pendingDelete
				pendingDelete = nil
				if verb == "y" || verb == "yes" {
					deleteFromView(ctx, sh, target)
				} else {
					logrus.Info("Delete aborted\n")
				}
				continue
			}

			if sh.State() == shell.StateLoading {
				logrus.Info("A fetch is already in progress\n")
				continue
			}

			switch verb {
			case "l", "load", "r", "refresh":
				if sh.TriggerFetch(ctx) {
					loading = newLoadingSpinner(sh.Status())
				}
			case "c", "clusters":
				p, ok := selectProject(sh, fields)
				if !ok {
					continue
				}
				showClusters(ctx, p)
			case "d", "delete":
				p, ok := selectProject(sh, fields)
				if !ok {
					continue
				}
				pendingDelete = &p
				logrus.Infof("Delete project %s (%s)? [y/N]\n",
					formatter.Colorize(p.Name, formatter.YellowColor), p.ID)
			default:
				logrus.Infof("Unknown command: %s\n", verb)
			}
		}
	}
}

func newLoadingSpinner(message string) *spinner.Spinner {
	s := spinner.New(spinner.CharSets[36], 300*time.Millisecond)
	s.Color(formatter.GreenColor)
	s.Suffix = " " + message
	s.FinalMSG = ""
	s.Start()
	return s
}

// selectProject resolves the second word of a command against the loaded
// table, by ID first, then case-insensitive name
func selectProject(sh *shell.Shell, fields []string) (atlasAuthClient.Project, bool) {
	if len(fields) < 2 {
		logrus.Info("Please name a project, e.g. \"c P1\"\n")
		return atlasAuthClient.Project{}, false
	}
	key := fields[1]
	for _, p := range sh.Projects() {
		if p.ID == key {
			return p, true
		}
	}
	for _, p := range sh.Projects() {
		if strings.EqualFold(p.Name, key) {
			return p, true
		}
	}
	logrus.Infof("Could not find project %s in the loaded table\n", key)
	return atlasAuthClient.Project{}, false
}

func renderProjects(projects []atlasAuthClient.Project) {
	projectCtx := formatter.Context{
		Command: "list",
		Output:  os.Stdout,
		Format:  projectformatter.NewProjectFormat(viper.GetString("output")),
	}
	projectformatter.Write(projectCtx, projects)
}

func printStatus(sh *shell.Shell) {
	status := sh.Status()
	switch sh.State() {
	case shell.StateLoaded:
		status = formatter.Colorize(status, formatter.GreenColor)
	case shell.StateFailed:
		status = formatter.Colorize(status, formatter.RedColor)
	}
	logrus.Info(status + "\n")
}

func showClusters(ctx context.Context, p atlasAuthClient.Project) {
	authAPI, err := atlasAuthClient.NewAtlasAPIClient(atlasAuthClient.CredentialsFromViper())
	if err != nil {
		logrus.Error(formatter.Colorize(err.Error()+"\n", formatter.RedColor))
		return
	}

	s := newLoadingSpinner("Loading clusters...")
	clusters, err := authAPI.ListClusters(ctx, p.ID)
	s.Stop()
	if err != nil {
		logrus.Error(formatter.Colorize(
			fmt.Sprintf("Error loading clusters: %s\n", err.Error()), formatter.RedColor))
		return
	}

	logrus.Infof("Clusters in project: %s (%s)\n", p.Name, p.ID)
	if len(clusters) < 1 {
		logrus.Info("No clusters found\n")
		return
	}
	clusterCtx := formatter.Context{
		Command: "list",
		Output:  os.Stdout,
		Format:  clusterformatter.NewClusterFormat(viper.GetString("output")),
	}
	clusterformatter.Write(clusterCtx, clusters)
	logrus.Infof("Successfully loaded %d cluster(s)\n", len(clusters))
}

func deleteFromView(ctx context.Context, sh *shell.Shell, p atlasAuthClient.Project) {
	authAPI, err := atlasAuthClient.NewAtlasAPIClient(atlasAuthClient.CredentialsFromViper())
	if err != nil {
		logrus.Error(formatter.Colorize(err.Error()+"\n", formatter.RedColor))
		return
	}

	s := newLoadingSpinner("Deleting project...")
	err = authAPI.DeleteProject(ctx, p.ID)
	s.Stop()
	if err != nil {
		logrus.Error(formatter.Colorize(err.Error()+"\n", formatter.RedColor))
		return
	}
	logrus.Infof("Project deleted: %s (%s)\n",
		formatter.Colorize(p.Name, formatter.GreenColor), p.ID)

	// repopulate the table
	if sh.TriggerFetch(ctx) {
		logrus.Info("Refreshing projects...\n")
	}
}
