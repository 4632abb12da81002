package listsync

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// HTTPFetcher fetches listing pages from the affiliates API over HTTP.
type HTTPFetcher struct {
	// BaseURL is the API root, e.g. "http://localhost:8080".
	BaseURL string
	// Client defaults to a client with a 10s timeout when nil.
	Client *http.Client
}

var defaultClient = &http.Client{Timeout: 10 * time.Second}

func (f *HTTPFetcher) FetchPage(ctx context.Context, page, limit int, filterByDNI string) (Result, error) {
	params := url.Values{}
	params.Set("page", strconv.Itoa(page))
	params.Set("limit", strconv.Itoa(limit))
	if s := strings.TrimSpace(filterByDNI); s != "" {
		params.Set("filterByDni", s)
	}

	endpoint := strings.TrimRight(f.BaseURL, "/") + "/affiliates?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return Result{}, err
	}

	client := f.Client
	if client == nil {
		client = defaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return Result{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Result{}, apiError(resp)
	}

	var body struct {
		Data Result `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return Result{}, fmt.Errorf("decode listing response: %w", err)
	}
	return body.Data, nil
}

// apiError extracts the server's error message when one is present, falling
// back to the bare status.
func apiError(resp *http.Response) error {
	var body struct {
		Message any `json:"message"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err == nil && body.Message != nil {
		switch m := body.Message.(type) {
		case string:
			return fmt.Errorf("request failed with status %d: %s", resp.StatusCode, m)
		case []any:
			parts := make([]string, 0, len(m))
			for _, p := range m {
				if s, ok := p.(string); ok {
					parts = append(parts, s)
				}
			}
			if len(parts) > 0 {
				return fmt.Errorf("request failed with status %d: %s", resp.StatusCode, strings.Join(parts, "; "))
			}
		}
	}
	return fmt.Errorf("request failed with status %d", resp.StatusCode)
}
