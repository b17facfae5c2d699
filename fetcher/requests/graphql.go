package requests

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"raidlog/pkg/config"
	"time"
)

// Client for the WCL GraphQL API.
// One client per process, injected into everything that makes requests.
type Client struct {
	httpClient *http.Client
	token      tokenCache
}

// Create a instance of the client.
func NewClient() *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 60 * time.Second},
	}
}

// Body of a GraphQL request.
type graphQLRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables"`
}

// Single error entry of a GraphQL response.
type graphQLError struct {
	Message string `json:"message"`
}

// Do a authenticated GraphQL request and decode the data payload into out.
func (c *Client) GraphQL(ctx context.Context, query string, variables map[string]any, out any) error {
	body, err := json.Marshal(graphQLRequest{Query: query, Variables: variables})
	if err != nil {
		return fmt.Errorf("couldn't encode the query: %w", err)
	}

	bearer, err := c.token.bearer(ctx, c.httpClient)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, "POST", config.Wcl.ApiURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("couldn't create the request: %w", err)
	}
	req.Header.Set("Authorization", bearer)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("API request failed: %w", err)
	}
	defer resp.Body.Close()

	// Check the status code.
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("API returned status code %d", resp.StatusCode)
	}

	// Parse the GraphQL envelope.
	var envelope struct {
		Data   json.RawMessage `json:"data"`
		Errors []graphQLError  `json:"errors"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return fmt.Errorf("failed to parse API response: %w", err)
	}

	if len(envelope.Errors) > 0 {
		return fmt.Errorf("GraphQL error: %s", envelope.Errors[0].Message)
	}

	if err := json.Unmarshal(envelope.Data, out); err != nil {
		return fmt.Errorf("failed to parse the data payload: %w", err)
	}

	return nil
}
