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

// ProviderSettings is the cloud placement block of a cluster document
type ProviderSettings struct {
	ProviderName     string `json:"providerName"`
	RegionName       string `json:"regionName"`
	InstanceSizeName string `json:"instanceSizeName"`
}

// Cluster is one Atlas cluster as returned by the server
type Cluster struct {
	ID               string           `json:"id"`
	Name             string           `json:"name"`
	ClusterType      string           `json:"clusterType"`
	MongoDBVersion   string           `json:"mongoDBVersion"`
	StateName        string           `json:"stateName"`
	CreateDate       string           `json:"createDate"`
	BackupEnabled    bool             `json:"backupEnabled"`
	ProviderSettings ProviderSettings `json:"providerSettings"`
}

type clusterListResponse struct {
	Results    *[]Cluster `json:"results"`
	TotalCount int        `json:"totalCount"`
}

// ListClusters fetches all clusters of one project, in server order
func (a *AtlasAPIClient) ListClusters(
	ctx context.Context,
	projectID string,
) ([]Cluster, error) {
	path := "/groups/" + url.PathEscape(projectID) + "/clusters"
	r := clusterListResponse{}
	if err := a.do(ctx, http.MethodGet, path, nil, &r); err != nil {
		return nil, err
	}
	if r.Results == nil {
		return nil, newError(KindMalformedResponse,
			"response is missing the results collection", nil)
	}
	for i, c := range *r.Results {
		if len(c.Name) == 0 {
			return nil, newError(KindMalformedResponse,
				fmt.Sprintf("cluster at index %d is missing name", i), nil)
		}
	}
	return *r.Results, nil
}
