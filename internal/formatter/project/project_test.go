/*
 * Copyright (c) Atlas Projects Manager authors.
 */

package project

import (
	"bytes"
	"strings"
	"testing"

	"github.com/atlas-pm/cli/internal/client"
	"github.com/atlas-pm/cli/internal/formatter"
	"gotest.tools/v3/assert"
	is "gotest.tools/v3/assert/cmp"
)

var sampleProjects = []client.Project{
	{ID: "1", Name: "P1", OrgID: "O1", Created: "2024-01-01"},
	{ID: "2", Name: "P2", OrgID: "O2", Created: "2024-02-15T08:00:00Z"},
	{ID: "3", Name: "P3", OrgID: "O1", Created: "2024-03-01T12:30:00Z"},
}

func tableContext(out *bytes.Buffer) formatter.Context {
	return formatter.Context{
		Command: "list",
		Output:  out,
		Format:  NewProjectFormat(formatter.TableFormatKey),
	}
}

func TestWriteOneRowPerProjectInInputOrder(t *testing.T) {
	out := bytes.Buffer{}
	assert.NilError(t, Write(tableContext(&out), sampleProjects))

	lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
	// one header line plus one row per project
	assert.Check(t, is.Len(lines, 4))
	assert.Check(t, strings.Contains(lines[0], "Name"))
	assert.Check(t, strings.Contains(lines[0], "Org ID"))
	assert.Check(t, strings.Contains(lines[0], "Created"))
	assert.Check(t, strings.Contains(lines[1], "P1"))
	assert.Check(t, strings.Contains(lines[2], "P2"))
	assert.Check(t, strings.Contains(lines[3], "P3"))
}

func TestWriteIsDeterministic(t *testing.T) {
	first := bytes.Buffer{}
	second := bytes.Buffer{}
	assert.NilError(t, Write(tableContext(&first), sampleProjects))
	assert.NilError(t, Write(tableContext(&second), sampleProjects))
	assert.Check(t, is.Equal(first.String(), second.String()))
}

func TestWriteEmptyList(t *testing.T) {
	out := bytes.Buffer{}
	assert.NilError(t, Write(tableContext(&out), []client.Project{}))

	lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
	// header only, no rows
	assert.Check(t, is.Len(lines, 1))
	assert.Check(t, strings.Contains(lines[0], "Name"))
}

func TestWriteFormatsCreatedDate(t *testing.T) {
	out := bytes.Buffer{}
	assert.NilError(t, Write(tableContext(&out), sampleProjects[1:2]))
	assert.Check(t, strings.Contains(out.String(), "15-Feb-2024 08:00"))
}

func TestWriteFallsBackForUnnamedProject(t *testing.T) {
	out := bytes.Buffer{}
	projects := []client.Project{{ID: "9", OrgID: "O1", Created: "2024-01-01"}}
	assert.NilError(t, Write(tableContext(&out), projects))
	assert.Check(t, strings.Contains(out.String(), "Unnamed Project"))
}

func TestWriteTruncatesLongName(t *testing.T) {
	out := bytes.Buffer{}
	longName := strings.Repeat("production-analytics-", 3) // 63 chars
	projects := []client.Project{{ID: "9", Name: longName, OrgID: "O1"}}
	assert.NilError(t, Write(tableContext(&out), projects))
	assert.Check(t, !strings.Contains(out.String(), longName))
	assert.Check(t, strings.Contains(out.String(), longName[:40]+"..."))
}

func TestWriteJSONListIsRawSlice(t *testing.T) {
	out := bytes.Buffer{}
	ctx := formatter.Context{
		Command: "list",
		Output:  &out,
		Format:  NewProjectFormat(formatter.JSONFormatKey),
	}
	assert.NilError(t, Write(ctx, sampleProjects[:1]))
	assert.Check(t, is.Equal(
		`[{"id":"1","name":"P1","orgId":"O1","created":"2024-01-01"}]`,
		out.String()))
}
