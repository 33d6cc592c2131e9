/*
 * Copyright (c) Atlas Projects Manager authors.
 */

package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/atlas-pm/cli/internal/formatter"
	"github.com/mongodb-forks/digest"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

const (
	// DefaultHost is the Atlas cloud endpoint
	DefaultHost = "https://cloud.mongodb.com"

	apiBasePath  = "/api/atlas/v2"
	acceptHeader = "application/vnd.atlas.2023-01-01+json"

	defaultTimeout = 30 * time.Second
)

// requestTimeout resolves the configured network call timeout
func requestTimeout() time.Duration {
	if t := viper.GetDuration("timeout"); t > 0 {
		return t
	}
	return defaultTimeout
}

var cliVersion = "0.1.0"

// SetVersion assigns the version of the CLI
func SetVersion(version string) {
	cliVersion = strings.TrimSpace(version)
}

// GetVersion fetches the version of the CLI
func GetVersion() string {
	return cliVersion
}

// Credentials are the Atlas programmatic API key pair. The public key is
// the digest username, the private key the digest password.
type Credentials struct {
	PublicKey  string
	PrivateKey string
}

// CredentialsFromViper reads the key pair from config, flags or the
// ATLAS_PUBLIC_KEY / ATLAS_PRIVATE_KEY environment variables.
func CredentialsFromViper() Credentials {
	return Credentials{
		PublicKey:  viper.GetString("public-key"),
		PrivateKey: viper.GetString("private-key"),
	}
}

// AtlasAPIClient performs authenticated calls against the
// Atlas Administration API
type AtlasAPIClient struct {
	httpClient *http.Client
	baseURL    string
}

// NewAtlasAPIClient returns a client for the configured host. Credentials
// are validated before any request is sent: an empty key yields a
// MissingCredentials error and no network I/O happens.
func NewAtlasAPIClient(creds Credentials) (*AtlasAPIClient, error) {
	host := viper.GetString("host")
	if len(host) == 0 {
		host = DefaultHost
	}
	return NewAtlasAPIClientInitialize(host, creds)
}

// NewAtlasAPIClientFromConfig builds a client from the configured
// credentials before every command, exiting with a hint when they are
// missing.
func NewAtlasAPIClientFromConfig() *AtlasAPIClient {
	authAPI, err := NewAtlasAPIClient(CredentialsFromViper())
	if err != nil {
		logrus.Fatalf(formatter.Colorize(err.Error()+"\n", formatter.RedColor))
	}
	return authAPI
}

// NewAtlasAPIClientInitialize returns a client for the given host
func NewAtlasAPIClientInitialize(host string, creds Credentials) (*AtlasAPIClient, error) {
	if len(strings.TrimSpace(creds.PublicKey)) == 0 ||
		len(strings.TrimSpace(creds.PrivateKey)) == 0 {
		return nil, newError(KindMissingCredentials,
			"set ATLAS_PUBLIC_KEY and ATLAS_PRIVATE_KEY or run \"apm auth\"", nil)
	}

	endpoint, err := ParseURL(host)
	if err != nil {
		return nil, newError(KindNetworkError, "invalid Atlas host", err)
	}

	// The digest transport replays each request once the 401 challenge
	// arrives; nonces are not reused across calls.
	transport := digest.NewTransport(creds.PublicKey, creds.PrivateKey)

	return &AtlasAPIClient{
		httpClient: &http.Client{
			Transport: transport,
			Timeout:   requestTimeout(),
		},
		baseURL: strings.TrimSuffix(endpoint.String(), "/") + apiBasePath,
	}, nil
}

// ParseURL returns a URL if string is valid, or returns error
func ParseURL(host string) (*url.URL, error) {
	if !strings.HasPrefix(strings.ToLower(host), "http://") &&
		!strings.HasPrefix(strings.ToLower(host), "https://") {
		host = "https://" + host
	}
	if strings.HasPrefix(strings.ToLower(host), "http://") {
		logrus.Debugf("You are using insecure api endpoint %s\n", host)
	}

	endpoint, err := url.ParseRequestURI(host)
	if err != nil {
		return nil, fmt.Errorf("could not parse Atlas url (%s): %w", host, err)
	}
	return endpoint, err
}

// do performs one authenticated request and decodes the 2xx body into out
// when out is non-nil. Errors always carry an ErrorKind.
func (a *AtlasAPIClient) do(
	ctx context.Context,
	method, path string,
	payload, out interface{},
) error {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return newError(KindNetworkError, "could not encode request body", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, a.baseURL+path, body)
	if err != nil {
		return newError(KindNetworkError, "could not build request", err)
	}
	req.Header.Set("Accept", acceptHeader)
	req.Header.Set("User-Agent", "apm/"+cliVersion)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return newError(KindNetworkError, "Atlas is unreachable", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return newError(KindNetworkError, "could not read response", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		logrus.Debugf("Atlas API returned %s for %s %s\n", resp.Status, method, path)
		apiErr := newError(KindAuthError,
			messageFromResponseBody(resp.Status, data), nil)
		if resp.StatusCode != http.StatusUnauthorized &&
			resp.StatusCode != http.StatusForbidden {
			// not a credential failure; keep the kind, neutralize the message
			apiErr.label = "Atlas API error"
		}
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return newError(KindMalformedResponse, "response body is not valid JSON", err)
	}
	return nil
}
