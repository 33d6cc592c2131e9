/*
 * Copyright (c) Atlas Projects Manager authors.
 */

package project

import (
	"encoding/json"

	"github.com/atlas-pm/cli/cmd/util"
	"github.com/atlas-pm/cli/internal/client"
	"github.com/atlas-pm/cli/internal/formatter"
	"github.com/sirupsen/logrus"
)

const (
	defaultProjectListing = "table {{.Name}}\t{{.ID}}\t{{.OrgID}}\t{{.Created}}"

	orgIDHeader   = "Org ID"
	createdHeader = "Created"

	// maxNameLength bounds the Name table cell; Atlas allows 64-char names
	maxNameLength = 40
)

// Context for project outputs
type Context struct {
	formatter.HeaderContext
	formatter.Context
	p client.Project
}

// NewProjectFormat for formatting output
func NewProjectFormat(source string) formatter.Format {
	switch source {
	case formatter.TableFormatKey, "":
		format := defaultProjectListing
		return formatter.Format(format)
	default: // custom format or json or pretty
		return formatter.Format(source)
	}
}

// Write renders the context for a list of Projects
func Write(ctx formatter.Context, projects []client.Project) error {
	// Check if the format is JSON or Pretty JSON
	if (ctx.Format.IsJSON() || ctx.Format.IsPrettyJSON()) && ctx.Command.IsListCommand() {
		// Marshal the slice of projects into JSON
		var output []byte
		var err error

		if ctx.Format.IsPrettyJSON() {
			output, err = json.MarshalIndent(projects, "", "  ")
		} else {
			output, err = json.Marshal(projects)
		}

		if err != nil {
			logrus.Errorf("Error marshaling projects to json: %v\n", err)
			return err
		}

		// Write the JSON output to the context
		_, err = ctx.Output.Write(output)
		return err
	}

	// Existing logic for table and other formats
	render := func(format func(subContext formatter.SubContext) error) error {
		for _, project := range projects {
			err := format(&Context{p: project})
			if err != nil {
				logrus.Debugf("Error rendering project: %v\n", err)
				return err
			}
		}
		return nil
	}
	return ctx.Write(NewProjectContext(), render)
}

// NewProjectContext creates a new context for rendering project
func NewProjectContext() *Context {
	projectCtx := Context{}
	projectCtx.Header = formatter.SubHeaderContext{
		"Name":    formatter.NameHeader,
		"ID":      formatter.IDHeader,
		"OrgID":   orgIDHeader,
		"Created": createdHeader,
	}
	return &projectCtx
}

// Name fetches Project Name, bounded for table cells
func (c *Context) Name() string {
	if len(c.p.Name) == 0 {
		return "Unnamed Project"
	}
	return formatter.Truncate(c.p.Name, maxNameLength)
}

// ID fetches Project ID
func (c *Context) ID() string {
	return c.p.ID
}

// OrgID fetches Project Organization ID
func (c *Context) OrgID() string {
	return c.p.OrgID
}

// Created fetches Project Creation Date
func (c *Context) Created() string {
	return util.FormatTimestamp(c.p.Created)
}

// MarshalJSON function
func (c *Context) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.p)
}
