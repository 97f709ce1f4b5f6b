// Package azure provides a client for the Azure DevOps (TFS) Build REST API.
package azure

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"buildwatch/src/provider"
)

const (
	// apiVersion is the Build API version requested on every call.
	apiVersion = "6.0"
)

// Client is an Azure DevOps Build API client for one project collection.
type Client struct {
	collectionURL string
	accessToken   string
	httpClient    *http.Client
}

// Definition is a build definition as returned by the definitions endpoint.
type Definition struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Build is a raw build as returned by the builds endpoint.
type Build struct {
	ID            int        `json:"id"`
	BuildNumber   string     `json:"buildNumber"`
	Status        string     `json:"status"`
	Result        string     `json:"result"`
	StartTime     *time.Time `json:"startTime"`
	FinishTime    *time.Time `json:"finishTime"`
	SourceVersion string     `json:"sourceVersion"`
	Links         Links      `json:"_links"`
}

// Links holds the hyperlinks attached to a build.
type Links struct {
	Web Link `json:"web"`
}

// Link is a single hyperlink.
type Link struct {
	Href string `json:"href"`
}

// listResponse is the envelope every list endpoint uses.
type listResponse[T any] struct {
	Count int `json:"count"`
	Value []T `json:"value"`
}

// NewClient creates a new Build API client. collectionURL is the project
// collection endpoint (e.g. "https://dev.azure.com/org/project"); accessToken
// is a personal access token with Build (read) scope.
func NewClient(collectionURL, accessToken string) *Client {
	return &Client{
		collectionURL: strings.TrimRight(collectionURL, "/"),
		accessToken:   accessToken,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// ListDefinitions fetches the build definitions whose names match namePattern
// ("*" matches all).
func (c *Client) ListDefinitions(ctx context.Context, namePattern string) ([]Definition, error) {
	query := url.Values{}
	query.Set("api-version", apiVersion)
	if namePattern != "" && namePattern != "*" {
		query.Set("name", namePattern)
	}

	endpoint := fmt.Sprintf("%s/_apis/build/definitions?%s", c.collectionURL, query.Encode())

	var resp listResponse[Definition]
	if err := c.getJSON(ctx, endpoint, &resp); err != nil {
		return nil, err
	}
	return resp.Value, nil
}

// ListBuilds fetches builds for the given comma-separated definition IDs.
// minTime, when non-nil, bounds the query to builds after that instant.
// statusFilter narrows by raw status ("inProgress", "completed"); empty means
// no status filtering.
func (c *Client) ListBuilds(ctx context.Context, definitionIDs string, minTime *time.Time, statusFilter string) ([]Build, error) {
	query := url.Values{}
	query.Set("api-version", apiVersion)
	query.Set("definitions", definitionIDs)
	query.Set("queryOrder", "startTimeDescending")
	if minTime != nil {
		query.Set("minTime", minTime.UTC().Format(time.RFC3339))
	}
	if statusFilter != "" {
		query.Set("statusFilter", statusFilter)
	}

	endpoint := fmt.Sprintf("%s/_apis/build/builds?%s", c.collectionURL, query.Encode())

	var resp listResponse[Build]
	if err := c.getJSON(ctx, endpoint, &resp); err != nil {
		return nil, err
	}
	return resp.Value, nil
}

// getJSON performs an authenticated GET and decodes the JSON response.
func (c *Client) getJSON(ctx context.Context, endpoint string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, "GET", endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Basic "+basicAuth(c.accessToken))
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusUnauthorized, http.StatusNonAuthoritativeInfo:
		// A TFS server behind forms auth answers a bad token with a 203
		// sign-in page instead of a 401.
		return fmt.Errorf("%w: API request returned status %d", provider.ErrAuthFailed, resp.StatusCode)
	default:
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("API request failed with status %d: %s", resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// basicAuth encodes a personal access token the way the Azure DevOps API
// expects: basic auth with an empty user name.
func basicAuth(token string) string {
	return base64.StdEncoding.EncodeToString([]byte(":" + token))
}

// JoinDefinitionIDs renders definition IDs as the comma-separated form the
// builds endpoint takes.
func JoinDefinitionIDs(defs []Definition) string {
	ids := make([]string, 0, len(defs))
	for _, d := range defs {
		ids = append(ids, strconv.Itoa(d.ID))
	}
	return strings.Join(ids, ",")
}
