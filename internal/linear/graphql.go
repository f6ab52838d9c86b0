package linear

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/oauth2"
)

// DefaultEndpoint is Linear's public GraphQL endpoint.
const DefaultEndpoint = "https://api.linear.app/graphql"

// APIError is returned for any failed call against the Linear API, carrying
// either the HTTP status or the GraphQL error list.
type APIError struct {
	StatusCode int
	Messages   []string
}

func (e *APIError) Error() string {
	if len(e.Messages) > 0 {
		return fmt.Sprintf("linear API error: %s", strings.Join(e.Messages, "; "))
	}
	return fmt.Sprintf("linear API error: unexpected status %d", e.StatusCode)
}

// graphqlRequest is the JSON envelope Linear expects.
type graphqlRequest struct {
	Query     string                 `json:"query"`
	Variables map[string]interface{} `json:"variables,omitempty"`
}

// graphqlResponse is the JSON envelope Linear returns.
type graphqlResponse struct {
	Data   json.RawMessage `json:"data"`
	Errors []graphqlError  `json:"errors,omitempty"`
}

type graphqlError struct {
	Message string `json:"message"`
}

// graphqlClient executes queries and mutations against a Linear-compatible
// GraphQL endpoint.
type graphqlClient struct {
	endpoint   string
	authHeader string
	httpClient *http.Client
}

// newGraphQLClient builds an executor for the given credential. Personal API
// keys ("lin_api_...") go verbatim in the Authorization header; anything else
// is treated as an OAuth access token and sent as a Bearer token through an
// oauth2 transport.
func newGraphQLClient(endpoint, apiKey string) *graphqlClient {
	c := &graphqlClient{
		endpoint:   endpoint,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
	if strings.HasPrefix(apiKey, "lin_api_") {
		c.authHeader = apiKey
		return c
	}
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: apiKey})
	c.httpClient = oauth2.NewClient(context.Background(), ts)
	c.httpClient.Timeout = 30 * time.Second
	return c
}

// execute runs one GraphQL operation and unmarshals the data field into result.
func (c *graphqlClient) execute(ctx context.Context, query string, variables map[string]interface{}, result interface{}) error {
	payload, err := json.Marshal(graphqlRequest{Query: query, Variables: variables})
	if err != nil {
		return fmt.Errorf("failed to marshal GraphQL request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewBuffer(payload))
	if err != nil {
		return fmt.Errorf("failed to create HTTP request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.authHeader != "" {
		req.Header.Set("Authorization", c.authHeader)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to execute HTTP request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return &APIError{StatusCode: resp.StatusCode, Messages: []string{strings.TrimSpace(string(body))}}
	}

	var envelope graphqlResponse
	if err := json.Unmarshal(body, &envelope); err != nil {
		return fmt.Errorf("failed to unmarshal GraphQL response: %w", err)
	}

	if len(envelope.Errors) > 0 {
		msgs := make([]string, 0, len(envelope.Errors))
		for _, e := range envelope.Errors {
			msgs = append(msgs, e.Message)
		}
		return &APIError{StatusCode: resp.StatusCode, Messages: msgs}
	}

	if result == nil {
		return nil
	}
	if err := json.Unmarshal(envelope.Data, result); err != nil {
		return fmt.Errorf("failed to unmarshal GraphQL data: %w", err)
	}
	return nil
}
