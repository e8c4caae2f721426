package cards

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/yugigrid/server/internal/engine"
)

// Client handles communication with the YGOPRODeck card database API
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a new card database client. An empty baseURL means
// the public API.
func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = "https://db.ygoprodeck.com/api/v7"
	}
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

// cardInfoResponse is the envelope of the cardinfo endpoint
type cardInfoResponse struct {
	Data  []engine.RawCard `json:"data"`
	Error string           `json:"error"`
}

// APISet is one entry of the set list endpoint
type APISet struct {
	SetName string `json:"set_name"`
	SetCode string `json:"set_code"`
	TCGDate string `json:"tcg_date"`
}

// FetchAllCards downloads the full card corpus
func (c *Client) FetchAllCards(ctx context.Context) ([]engine.RawCard, error) {
	body, err := c.get(ctx, "/cardinfo.php?misc=yes")
	if err != nil {
		return nil, err
	}

	var resp cardInfoResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to parse card response: %w", err)
	}
	if resp.Error != "" {
		return nil, fmt.Errorf("card API error: %s", resp.Error)
	}
	if len(resp.Data) == 0 {
		return nil, fmt.Errorf("card API returned no cards")
	}
	return resp.Data, nil
}

// FetchCardSets downloads the set list with release dates
func (c *Client) FetchCardSets(ctx context.Context) ([]APISet, error) {
	body, err := c.get(ctx, "/cardsets.php")
	if err != nil {
		return nil, err
	}

	var sets []APISet
	if err := json.Unmarshal(body, &sets); err != nil {
		return nil, fmt.Errorf("failed to parse set response: %w", err)
	}
	return sets, nil
}

func (c *Client) get(ctx context.Context, path string) ([]byte, error) {
	httpReq, err := http.NewRequestWithContext(ctx, "GET", c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("card API returned status %d", resp.StatusCode)
	}
	return body, nil
}
