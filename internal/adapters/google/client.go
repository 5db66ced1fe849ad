// Package google fetches place reviews from the Places details API.
package google

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"

	"flex_reviews/internal/adapters/observability"
	"flex_reviews/internal/domain"
)

type Client struct {
	base string
	key  string
	hc   *http.Client
	rl   *rate.Limiter
}

// New builds a Places client. An empty key is a valid configuration: the
// provider is simply disabled.
func New(base, key string, rps int) *Client {
	if rps <= 0 {
		rps = 5
	}
	return &Client{
		base: base,
		key:  key,
		hc:   &http.Client{Timeout: 20 * time.Second},
		rl:   rate.NewLimiter(rate.Limit(rps), rps),
	}
}

type detailsResponse struct {
	Status       string `json:"status"`
	ErrorMessage string `json:"error_message"`
	Result       struct {
		Name    string                  `json:"name"`
		Reviews []domain.PlaceRawReview `json:"reviews"`
	} `json:"result"`
}

// PlaceDetails fetches one place's name and newest reviews. Without an API
// key it reports domain.ErrProviderDisabled; transport failures and non-OK
// upstream statuses surface as *domain.UpstreamError — this path never
// substitutes canned data.
func (c *Client) PlaceDetails(ctx context.Context, placeID string) (domain.PlaceDetails, error) {
	if c.key == "" {
		return domain.PlaceDetails{}, domain.ErrProviderDisabled
	}
	if err := c.rl.Wait(ctx); err != nil {
		return domain.PlaceDetails{}, err
	}

	q := url.Values{}
	q.Set("place_id", placeID)
	q.Set("fields", "name,rating,user_ratings_total,reviews")
	q.Set("reviews_sort", "newest")
	q.Set("key", c.key)
	u := c.base + "/maps/api/place/details/json?" + q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return domain.PlaceDetails{}, err
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.hc.Do(req)
	if err != nil {
		observability.ObserveExternal("google", "/place/details", 0, time.Since(start))
		return domain.PlaceDetails{}, &domain.UpstreamError{Status: "FETCH_ERROR", Message: err.Error()}
	}
	defer resp.Body.Close()
	observability.ObserveExternal("google", "/place/details", resp.StatusCode, time.Since(start))

	var dr detailsResponse
	if err := json.NewDecoder(resp.Body).Decode(&dr); err != nil {
		return domain.PlaceDetails{}, &domain.UpstreamError{Status: "DECODE_ERROR", Message: err.Error()}
	}
	if dr.Status != "OK" {
		return domain.PlaceDetails{}, &domain.UpstreamError{Status: dr.Status, Message: dr.ErrorMessage}
	}
	return domain.PlaceDetails{Name: dr.Result.Name, Reviews: dr.Result.Reviews}, nil
}
