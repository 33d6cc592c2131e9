/*
 * Copyright (c) Atlas Projects Manager authors.
 */

package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
)

// Project is one Atlas project (group) as returned by the server.
// Unknown fields of the wire document are ignored.
type Project struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	OrgID   string `json:"orgId"`
	Created string `json:"created"`

	ClusterCount int `json:"clusterCount,omitempty"`
}

// ProjectSpec describes a project to be created
type ProjectSpec struct {
	Name  string `json:"name" yaml:"name"`
	OrgID string `json:"orgId" yaml:"orgId"`
}

// projectListResponse is the paged collection document of GET /groups.
// Results is a pointer so a body without the field is distinguishable
// from an empty collection.
type projectListResponse struct {
	Results    *[]Project `json:"results"`
	TotalCount int        `json:"totalCount"`
}

// ListProjects fetches all projects visible to the key pair, in server
// order. A 2xx body missing the results collection, or a result element
// missing its identity fields, makes the whole response malformed.
func (a *AtlasAPIClient) ListProjects(ctx context.Context) ([]Project, error) {
	r := projectListResponse{}
	if err := a.do(ctx, http.MethodGet, "/groups", nil, &r); err != nil {
		return nil, err
	}
	if r.Results == nil {
		return nil, newError(KindMalformedResponse,
			"response is missing the results collection", nil)
	}
	for i, p := range *r.Results {
		if len(p.ID) == 0 || len(p.Name) == 0 {
			return nil, newError(KindMalformedResponse,
				fmt.Sprintf("project at index %d is missing id or name", i), nil)
		}
	}
	return *r.Results, nil
}

// CreateProject creates a project under the given organization
func (a *AtlasAPIClient) CreateProject(
	ctx context.Context,
	spec ProjectSpec,
) (*Project, error) {
	p := Project{}
	if err := a.do(ctx, http.MethodPost, "/groups", spec, &p); err != nil {
		return nil, err
	}
	if len(p.ID) == 0 {
		return nil, newError(KindMalformedResponse,
			"created project document is missing id", nil)
	}
	return &p, nil
}

// DeleteProject removes the project with the given ID
func (a *AtlasAPIClient) DeleteProject(ctx context.Context, projectID string) error {
	path := "/groups/" + url.PathEscape(projectID)
	return a.do(ctx, http.MethodDelete, path, nil, nil)
}
