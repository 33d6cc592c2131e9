/*
 * Copyright (c) Atlas Projects Manager authors.
 */

package cluster

import (
	"encoding/json"

	"github.com/atlas-pm/cli/internal/client"
	"github.com/atlas-pm/cli/internal/formatter"
	"github.com/sirupsen/logrus"
)

const (
	defaultClusterListing = "table {{.Name}}\t{{.State}}\t{{.Provider}}\t" +
		"{{.Region}}\t{{.InstanceSize}}\t{{.Version}}"

	providerHeader     = "Provider"
	regionHeader       = "Region"
	instanceSizeHeader = "Instance Size"
	versionHeader      = "MongoDB Version"

	unknownCell = "Unknown"

	// maxNameLength bounds the Name table cell
	maxNameLength = 40
)

// Context for cluster outputs
type Context struct {
	formatter.HeaderContext
	formatter.Context
	c client.Cluster
}

// NewClusterFormat for formatting output
func NewClusterFormat(source string) formatter.Format {
	switch source {
	case formatter.TableFormatKey, "":
		format := defaultClusterListing
		return formatter.Format(format)
	default: // custom format or json or pretty
		return formatter.Format(source)
	}
}

// Write renders the context for a list of Clusters
func Write(ctx formatter.Context, clusters []client.Cluster) error {
	if (ctx.Format.IsJSON() || ctx.Format.IsPrettyJSON()) && ctx.Command.IsListCommand() {
		var output []byte
		var err error

		if ctx.Format.IsPrettyJSON() {
			output, err = json.MarshalIndent(clusters, "", "  ")
		} else {
			output, err = json.Marshal(clusters)
		}

		if err != nil {
			logrus.Errorf("Error marshaling clusters to json: %v\n", err)
			return err
		}

		_, err = ctx.Output.Write(output)
		return err
	}

	render := func(format func(subContext formatter.SubContext) error) error {
		for _, cluster := range clusters {
			err := format(&Context{c: cluster})
			if err != nil {
				logrus.Debugf("Error rendering cluster: %v\n", err)
				return err
			}
		}
		return nil
	}
	return ctx.Write(NewClusterContext(), render)
}

// NewClusterContext creates a new context for rendering cluster
func NewClusterContext() *Context {
	clusterCtx := Context{}
	clusterCtx.Header = formatter.SubHeaderContext{
		"Name":         formatter.NameHeader,
		"State":        formatter.StateHeader,
		"Provider":     providerHeader,
		"Region":       regionHeader,
		"InstanceSize": instanceSizeHeader,
		"Version":      versionHeader,
	}
	return &clusterCtx
}

// Name fetches Cluster Name, bounded for table cells
func (c *Context) Name() string {
	if len(c.c.Name) == 0 {
		return "Unnamed Cluster"
	}
	return formatter.Truncate(c.c.Name, maxNameLength)
}

// State fetches Cluster State
func (c *Context) State() string {
	if len(c.c.StateName) == 0 {
		return unknownCell
	}
	return c.c.StateName
}

// Provider fetches the cloud provider of the cluster
func (c *Context) Provider() string {
	if len(c.c.ProviderSettings.ProviderName) == 0 {
		return unknownCell
	}
	return c.c.ProviderSettings.ProviderName
}

// Region fetches the cloud region of the cluster
func (c *Context) Region() string {
	if len(c.c.ProviderSettings.RegionName) == 0 {
		return unknownCell
	}
	return c.c.ProviderSettings.RegionName
}

// InstanceSize fetches the instance size of the cluster
func (c *Context) InstanceSize() string {
	if len(c.c.ProviderSettings.InstanceSizeName) == 0 {
		return unknownCell
	}
	return c.c.ProviderSettings.InstanceSizeName
}

// Version fetches the MongoDB version of the cluster
func (c *Context) Version() string {
	if len(c.c.MongoDBVersion) == 0 {
		return unknownCell
	}
	return c.c.MongoDBVersion
}

// MarshalJSON function
func (c *Context) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.c)
}
