// Package restoapi is the HTTP client for the legacy restaurant backend.
// Everything rides on GET requests against a single dispatcher script
// with a numeric function id, the way the mobile app has always called
// it.
package restoapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/redis/go-redis/v9"

	"servery/internal/models"
)

// Backend function ids used by this service.
const funcRestaurantDetails = 81

// ErrNotFound is returned when the backend has no restaurant for the id.
var ErrNotFound = errors.New("restaurant not found")

// Details is the slice of a restaurant-details response this service
// consumes: display name, the weekly schedule, and the order policy
// defaults.
type Details struct {
	RestaurantID int64                 `json:"restaurant_id"`
	Name         string                `json:"name"`
	Week         models.WeeklySchedule `json:"week"`
	Policies     []models.PolicyEntry  `json:"policies"`
}

// Client calls the restaurant backend, with optional Redis caching of
// parsed details.
type Client struct {
	baseURL    string
	httpClient *http.Client

	redis    *redis.Client
	cacheTTL time.Duration
}

// NewClient constructs a client for the given backend base URL.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// UseRedisCache configures optional Redis caching of parsed responses.
func (c *Client) UseRedisCache(redisClient *redis.Client, ttl time.Duration) {
	c.redis = redisClient
	c.cacheTTL = ttl
}

// detailsResponse mirrors the backend payload: the restaurant comes
// wrapped in a single-element "app" array.
type detailsResponse struct {
	App []struct {
		RestaurantName string `json:"restaurant_name"`
		Schedule       struct {
			Schedule []models.RawDaySchedule `json:"schedule"`
		} `json:"restuarent_schedule"` // sic, backend spelling
		OrderPolicy struct {
			Policy []models.RawPolicyEntry `json:"policy"`
		} `json:"order_policy"`
	} `json:"app"`
}

// Details fetches and parses a restaurant's details. A backend response
// with an empty "app" list is treated as an unknown restaurant.
func (c *Client) Details(ctx context.Context, restID int64) (*Details, error) {
	endpoint := fmt.Sprintf("%s/Tigger.php?funId=%d&rest_id=%s",
		c.baseURL, funcRestaurantDetails, url.QueryEscape(fmt.Sprint(restID)))
	cacheKey := fmt.Sprintf("restaurant:%d:details", restID)

	var cached Details
	if c.readCache(ctx, cacheKey, &cached) {
		return &cached, nil
	}

	var resp detailsResponse
	if err := c.doGet(ctx, endpoint, &resp); err != nil {
		return nil, fmt.Errorf("fetch restaurant %d: %w", restID, err)
	}
	if len(resp.App) == 0 {
		return nil, ErrNotFound
	}

	raw := resp.App[0]
	details := Details{
		RestaurantID: restID,
		Name:         raw.RestaurantName,
		Week:         models.ParseSchedule(raw.Schedule.Schedule),
		Policies:     models.ParsePolicies(raw.OrderPolicy.Policy),
	}

	c.writeCache(ctx, cacheKey, details)
	return &details, nil
}

func (c *Client) readCache(ctx context.Context, key string, out any) bool {
	if c.redis == nil || c.cacheTTL <= 0 {
		return false
	}
	val, err := c.redis.Get(ctx, key).Result()
	if err != nil {
		return false
	}
	if err := json.Unmarshal([]byte(val), out); err != nil {
		return false
	}
	return true
}

func (c *Client) writeCache(ctx context.Context, key string, val any) {
	if c.redis == nil || c.cacheTTL <= 0 {
		return
	}
	data, err := json.Marshal(val)
	if err != nil {
		return
	}
	_ = c.redis.Set(ctx, key, data, c.cacheTTL).Err()
}

func (c *Client) doGet(ctx context.Context, endpoint string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, http.NoBody)
	if err != nil {
		return err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("http %d", resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
