// Package media orchestrates the asynchronous media upload workflow:
// register an upload slot, transfer the bytes to the returned upload
// URL, then poll the processing status until a terminal state.
package media

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/open-cli-collective/pinterest-ads-cli/api"
)

// Client drives media uploads through the generic API client.
type Client struct {
	api   *api.Client
	creds api.Credentials
}

// New creates a media upload client. The credentials must carry an
// access token; media endpoints accept no other credential.
func New(apiClient *api.Client, creds api.Credentials) (*Client, error) {
	if apiClient == nil {
		return nil, api.ErrHTTPClientRequired
	}
	if creds.AccessToken == "" {
		return nil, fmt.Errorf("%w: access token required (PINTEREST_ACCESS_TOKEN)", api.ErrMissingCredential)
	}
	return &Client{api: apiClient, creds: creds}, nil
}

// Register creates an upload slot for the given media type.
func (c *Client) Register(ctx context.Context, mediaType string) (*Registration, error) {
	body, err := json.Marshal(map[string]string{"media_type": mediaType})
	if err != nil {
		return nil, err
	}

	resp, err := c.do(ctx, &api.Plan{
		Method:      http.MethodPost,
		URL:         c.api.BaseURL + "/media",
		Body:        body,
		ContentType: "application/json",
	})
	if err != nil {
		return nil, err
	}

	var reg Registration
	if err := json.Unmarshal(resp, &reg); err != nil {
		return nil, fmt.Errorf("failed to parse registration response: %w", err)
	}
	if reg.MediaID == "" {
		return nil, fmt.Errorf("registration response missing media_id")
	}
	if reg.UploadURL == "" {
		return nil, fmt.Errorf("registration response missing upload_url")
	}

	return &reg, nil
}

// GetStatus fetches the current processing status for a media id.
func (c *Client) GetStatus(ctx context.Context, mediaID string) (*Status, error) {
	resp, err := c.do(ctx, &api.Plan{
		Method: http.MethodGet,
		URL:    c.api.BaseURL + "/media/" + mediaID,
	})
	if err != nil {
		return nil, err
	}

	var status Status
	if err := json.Unmarshal(resp, &status); err != nil {
		return nil, fmt.Errorf("failed to parse status response: %w", err)
	}

	return &status, nil
}

func (c *Client) do(ctx context.Context, plan *api.Plan) (json.RawMessage, error) {
	plan.Auth = api.BearerAuth{Token: c.creds.AccessToken}
	return c.api.Do(ctx, plan)
}
