/*
 * Copyright (c) Atlas Projects Manager authors.
 */

// Package shell holds the state machine behind the interactive viewer:
// Idle -> Loading -> {Loaded, Failed}, re-entering Loading on each fetch
// trigger. At most one fetch is in flight; triggers while Loading are
// ignored. All methods must be called from the owning event loop
// goroutine; the fetch goroutine only ever writes to the result channel.
package shell

import (
	"context"
	"fmt"

	"github.com/atlas-pm/cli/cmd/util"
	"github.com/atlas-pm/cli/internal/client"
)

// State of the viewer
type State int

const (
	// StateIdle before the first fetch, no data shown
	StateIdle State = iota
	// StateLoading while a fetch is in flight
	StateLoading
	// StateLoaded after a successful fetch
	StateLoaded
	// StateFailed after a failed fetch; the last successful table is kept
	StateFailed
)

// String returns the state name
func (s State) String() string {
	switch s {
	case StateIdle:
		return "Idle"
	case StateLoading:
		return "Loading"
	case StateLoaded:
		return "Loaded"
	case StateFailed:
		return "Failed"
	default:
		return "Unknown"
	}
}

// FetchResult is the outcome of one fetch attempt
type FetchResult struct {
	Projects []client.Project
	Err      error
}

// FetchFunc performs one project fetch
type FetchFunc func(ctx context.Context) ([]client.Project, error)

// Shell owns the viewer state, the current project list and the status line
type Shell struct {
	fetch FetchFunc

	state    State
	projects []client.Project
	status   string

	// buffered to one slot: single-flight means at most one outstanding result
	results chan FetchResult
}

// New returns a Shell in the Idle state
func New(fetch FetchFunc) *Shell {
	return &Shell{
		fetch:   fetch,
		state:   StateIdle,
		status:  "Ready",
		results: make(chan FetchResult, 1),
	}
}

// State returns the current state
func (s *Shell) State() State {
	return s.state
}

// Projects returns the most recently loaded project list
func (s *Shell) Projects() []client.Project {
	return s.projects
}

// Status returns the current status line
func (s *Shell) Status() string {
	return s.status
}

// Results delivers the outcome of the in-flight fetch to the event loop
func (s *Shell) Results() <-chan FetchResult {
	return s.results
}

// TriggerFetch starts one fetch on its own goroutine and moves to Loading.
// Returns false when a fetch is already in flight; the trigger is ignored.
func (s *Shell) TriggerFetch(ctx context.Context) bool {
	if s.state == StateLoading {
		return false
	}
	s.state = StateLoading
	s.status = "Loading projects..."
	go func() {
		projects, err := s.fetch(ctx)
		s.results <- FetchResult{Projects: projects, Err: err}
	}()
	return true
}

// Apply consumes one FetchResult and moves to Loaded or Failed
func (s *Shell) Apply(res FetchResult) {
	if res.Err != nil {
		s.state = StateFailed
		// keep the last successful table, only the status line changes
		s.status = fmt.Sprintf("Error: %s", res.Err.Error())
		return
	}
	s.state = StateLoaded
	s.projects = res.Projects
	s.status = fmt.Sprintf("Successfully loaded %s",
		util.Pluralize(len(res.Projects), "project"))
}
