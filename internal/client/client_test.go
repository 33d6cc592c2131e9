/*
 * Copyright (c) Atlas Projects Manager authors.
 */

package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/spf13/viper"
	"gotest.tools/v3/assert"
	is "gotest.tools/v3/assert/cmp"
)

const testChallenge = `Digest realm="MMS Public API", domain="", ` +
	`nonce="cbc1f2b285e0dbb1a7e9f8e3f2d9c3a1", algorithm=MD5, qop="auth", stale=false`

// digestServer issues the 401 challenge on requests without an
// Authorization header and forwards authorized requests to next. calls
// counts every request that reaches the server, challenges included.
func digestServer(calls *int64, next http.HandlerFunc) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(calls, 1)
		if r.Header.Get("Authorization") == "" {
			w.Header().Set("WWW-Authenticate", testChallenge)
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		next(w, r)
	}))
}

func newTestClient(t *testing.T, host string) *AtlasAPIClient {
	t.Helper()
	authAPI, err := NewAtlasAPIClientInitialize(host, Credentials{
		PublicKey:  "jpdmmfrl",
		PrivateKey: "a54af845-1234-4f0d-a5c2-8f3a0d2f6d6a",
	})
	assert.NilError(t, err)
	return authAPI
}

func TestListProjects(t *testing.T) {
	var calls int64
	server := digestServer(&calls, func(w http.ResponseWriter, r *http.Request) {
		assert.Check(t, is.Equal(http.MethodGet, r.Method))
		assert.Check(t, is.Equal("/api/atlas/v2/groups", r.URL.Path))
		assert.Check(t, is.Equal("application/vnd.atlas.2023-01-01+json", r.Header.Get("Accept")))
		assert.Check(t, strings.Contains(r.Header.Get("Authorization"), `username="jpdmmfrl"`))
		w.Write([]byte(`{"results":[` +
			`{"id":"1","name":"P1","orgId":"O1","created":"2024-01-01"}],"totalCount":1}`))
	})
	defer server.Close()

	authAPI := newTestClient(t, server.URL)
	projects, err := authAPI.ListProjects(context.Background())
	assert.NilError(t, err)
	assert.Check(t, is.Len(projects, 1))
	assert.Check(t, is.Equal("1", projects[0].ID))
	assert.Check(t, is.Equal("P1", projects[0].Name))
	assert.Check(t, is.Equal("O1", projects[0].OrgID))
	assert.Check(t, is.Equal("2024-01-01", projects[0].Created))
	// one challenge round trip plus one authorized request
	assert.Check(t, is.Equal(int64(2), atomic.LoadInt64(&calls)))
}

func TestListProjectsPreservesServerOrder(t *testing.T) {
	var calls int64
	server := digestServer(&calls, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"results":[` +
			`{"id":"3","name":"zeta","orgId":"O1","created":"2024-03-01"},` +
			`{"id":"1","name":"alpha","orgId":"O1","created":"2024-01-01"},` +
			`{"id":"2","name":"mid","orgId":"O2","created":"2024-02-01"}],"totalCount":3}`))
	})
	defer server.Close()

	projects, err := newTestClient(t, server.URL).ListProjects(context.Background())
	assert.NilError(t, err)
	assert.Check(t, is.Len(projects, 3))
	assert.Check(t, is.Equal("zeta", projects[0].Name))
	assert.Check(t, is.Equal("alpha", projects[1].Name))
	assert.Check(t, is.Equal("mid", projects[2].Name))
}

func TestMissingCredentialsSendsNothing(t *testing.T) {
	var calls int64
	server := digestServer(&calls, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"results":[]}`))
	})
	defer server.Close()

	_, err := NewAtlasAPIClientInitialize(server.URL, Credentials{
		PublicKey:  "jpdmmfrl",
		PrivateKey: "",
	})
	assert.Check(t, err != nil)
	assert.Check(t, is.Equal(KindMissingCredentials, KindOf(err)))
	assert.Check(t, is.Equal(int64(0), atomic.LoadInt64(&calls)))
}

func TestRepeatedUnauthorizedIsAuthError(t *testing.T) {
	var calls int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&calls, 1)
		// challenge again even for authorized requests: bad key pair
		w.Header().Set("WWW-Authenticate", testChallenge)
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	_, err := newTestClient(t, server.URL).ListProjects(context.Background())
	assert.Check(t, err != nil)
	assert.Check(t, is.Equal(KindAuthError, KindOf(err)))
	assert.Check(t, atomic.LoadInt64(&calls) >= 2)
}

func TestForbiddenIsAuthError(t *testing.T) {
	var calls int64
	server := digestServer(&calls, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"error":403,"errorCode":"USER_UNAUTHORIZED","detail":"no access"}`))
	})
	defer server.Close()

	_, err := newTestClient(t, server.URL).ListProjects(context.Background())
	assert.Check(t, is.Equal(KindAuthError, KindOf(err)))
	assert.Check(t, strings.Contains(err.Error(), "Authentication error"))
	assert.Check(t, strings.Contains(err.Error(), "USER_UNAUTHORIZED"))
	assert.Check(t, strings.Contains(err.Error(), "no access"))
}

func TestServerErrorKeepsNeutralMessage(t *testing.T) {
	var calls int64
	server := digestServer(&calls, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error":500,"errorCode":"UNEXPECTED_ERROR","detail":"try again later"}`))
	})
	defer server.Close()

	_, err := newTestClient(t, server.URL).ListProjects(context.Background())
	assert.Check(t, is.Equal(KindAuthError, KindOf(err)))
	assert.Check(t, strings.Contains(err.Error(), "Atlas API error"))
	assert.Check(t, strings.Contains(err.Error(), "UNEXPECTED_ERROR"))
	assert.Check(t, strings.Contains(err.Error(), "try again later"))
	assert.Check(t, !strings.Contains(err.Error(), "Authentication error"))
}

func TestNotJSONIsMalformed(t *testing.T) {
	var calls int64
	server := digestServer(&calls, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`not json`))
	})
	defer server.Close()

	_, err := newTestClient(t, server.URL).ListProjects(context.Background())
	assert.Check(t, is.Equal(KindMalformedResponse, KindOf(err)))
}

func TestMissingResultsIsMalformed(t *testing.T) {
	var calls int64
	server := digestServer(&calls, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"totalCount":0}`))
	})
	defer server.Close()

	_, err := newTestClient(t, server.URL).ListProjects(context.Background())
	assert.Check(t, is.Equal(KindMalformedResponse, KindOf(err)))
}

func TestResultMissingIdentityIsMalformed(t *testing.T) {
	var calls int64
	server := digestServer(&calls, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"results":[{"orgId":"O1","created":"2024-01-01"}]}`))
	})
	defer server.Close()

	_, err := newTestClient(t, server.URL).ListProjects(context.Background())
	assert.Check(t, is.Equal(KindMalformedResponse, KindOf(err)))
}

func TestConfiguredTimeoutIsNetworkError(t *testing.T) {
	var calls int64
	server := digestServer(&calls, func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(2 * time.Second)
		w.Write([]byte(`{"results":[],"totalCount":0}`))
	})
	defer server.Close()

	viper.Set("timeout", 50*time.Millisecond)
	t.Cleanup(func() { viper.Set("timeout", 0) })

	_, err := newTestClient(t, server.URL).ListProjects(context.Background())
	assert.Check(t, err != nil)
	assert.Check(t, is.Equal(KindNetworkError, KindOf(err)))
}

func TestUnreachableHostIsNetworkError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	host := server.URL
	server.Close()

	_, err := newTestClient(t, host).ListProjects(context.Background())
	assert.Check(t, is.Equal(KindNetworkError, KindOf(err)))
}

func TestEmptyListIsNotAnError(t *testing.T) {
	var calls int64
	server := digestServer(&calls, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"results":[],"totalCount":0}`))
	})
	defer server.Close()

	projects, err := newTestClient(t, server.URL).ListProjects(context.Background())
	assert.NilError(t, err)
	assert.Check(t, is.Len(projects, 0))
}

func TestDeleteProject(t *testing.T) {
	var calls int64
	server := digestServer(&calls, func(w http.ResponseWriter, r *http.Request) {
		assert.Check(t, is.Equal(http.MethodDelete, r.Method))
		assert.Check(t, is.Equal("/api/atlas/v2/groups/5f2a9ec1c4b9a83f7d41c2a7", r.URL.Path))
		w.WriteHeader(http.StatusNoContent)
	})
	defer server.Close()

	err := newTestClient(t, server.URL).
		DeleteProject(context.Background(), "5f2a9ec1c4b9a83f7d41c2a7")
	assert.NilError(t, err)
}

func TestCreateProject(t *testing.T) {
	var calls int64
	server := digestServer(&calls, func(w http.ResponseWriter, r *http.Request) {
		assert.Check(t, is.Equal(http.MethodPost, r.Method))
		assert.Check(t, is.Equal("application/json", r.Header.Get("Content-Type")))
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"id":"9","name":"fresh","orgId":"O1","created":"2024-05-01"}`))
	})
	defer server.Close()

	p, err := newTestClient(t, server.URL).CreateProject(context.Background(),
		ProjectSpec{Name: "fresh", OrgID: "O1"})
	assert.NilError(t, err)
	assert.Check(t, is.Equal("9", p.ID))
	assert.Check(t, is.Equal("fresh", p.Name))
}

func TestListClusters(t *testing.T) {
	var calls int64
	server := digestServer(&calls, func(w http.ResponseWriter, r *http.Request) {
		assert.Check(t, is.Equal("/api/atlas/v2/groups/g1/clusters", r.URL.Path))
		w.Write([]byte(`{"results":[{"id":"c1","name":"Cluster0","stateName":"IDLE",` +
			`"mongoDBVersion":"7.0.5","clusterType":"REPLICASET",` +
			`"providerSettings":{"providerName":"AWS","regionName":"US_EAST_1",` +
			`"instanceSizeName":"M10"}}],"totalCount":1}`))
	})
	defer server.Close()

	clusters, err := newTestClient(t, server.URL).ListClusters(context.Background(), "g1")
	assert.NilError(t, err)
	assert.Check(t, is.Len(clusters, 1))
	assert.Check(t, is.Equal("Cluster0", clusters[0].Name))
	assert.Check(t, is.Equal("AWS", clusters[0].ProviderSettings.ProviderName))
	assert.Check(t, is.Equal("M10", clusters[0].ProviderSettings.InstanceSizeName))
}

func TestParseURL(t *testing.T) {
	endpoint, err := ParseURL("cloud.mongodb.com")
	assert.NilError(t, err)
	assert.Check(t, is.Equal("https", endpoint.Scheme))

	endpoint, err = ParseURL("http://localhost:8080")
	assert.NilError(t, err)
	assert.Check(t, is.Equal("http", endpoint.Scheme))

	_, err = ParseURL("https://%%invalid")
	assert.Check(t, err != nil)
}

func TestKindOfForeignError(t *testing.T) {
	assert.Check(t, is.Equal(KindUnknown, KindOf(context.Canceled)))
}
