package restoapi

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const detailsPayload = `{
	"app": [
		{
			"restaurant_name": "Spice Garden",
			"restuarent_schedule": {
				"schedule": [
					{
						"weekday_id": 1,
						"list": [
							{
								"type": "3",
								"timing_for": "Collection/Delivery",
								"opening_time": "9:00 AM",
								"closing_time": "10:00 PM",
								"Collection": "40",
								"last_time_for_collection_submit": "30"
							}
						]
					}
				]
			},
			"order_policy": {
				"policy": [
					{"policy_name": "Collection", "policy_time": "40"},
					{"policy_name": "Delivery", "policy_time": 55}
				]
			}
		}
	]
}`

func newBackend(t *testing.T, hits *int32) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(hits, 1)

		q := r.URL.Query()
		assert.Equal(t, "81", q.Get("funId"))

		w.Header().Set("Content-Type", "application/json")
		switch q.Get("rest_id") {
		case "12":
			_, _ = w.Write([]byte(detailsPayload))
		case "99":
			_, _ = w.Write([]byte(`{"app": []}`))
		default:
			w.WriteHeader(http.StatusInternalServerError)
		}
	}))
}

func TestDetails(t *testing.T) {
	var hits int32
	backend := newBackend(t, &hits)
	defer backend.Close()

	client := NewClient(backend.URL)
	details, err := client.Details(context.Background(), 12)
	require.NoError(t, err)

	assert.Equal(t, int64(12), details.RestaurantID)
	assert.Equal(t, "Spice Garden", details.Name)
	require.Len(t, details.Week, 1)

	monday := details.Week.Day(1)
	require.NotNil(t, monday)
	require.Len(t, monday.Shifts, 1)
	assert.Equal(t, 540, monday.Shifts[0].Open)
	assert.Equal(t, 40, monday.Shifts[0].CollectionLead)

	require.Len(t, details.Policies, 2)
	assert.Equal(t, 55, details.Policies[1].LeadMinutes)
}

func TestDetailsNotFound(t *testing.T) {
	var hits int32
	backend := newBackend(t, &hits)
	defer backend.Close()

	client := NewClient(backend.URL)
	_, err := client.Details(context.Background(), 99)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDetailsBackendError(t *testing.T) {
	var hits int32
	backend := newBackend(t, &hits)
	defer backend.Close()

	client := NewClient(backend.URL)
	_, err := client.Details(context.Background(), 1)
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrNotFound))
}

func TestDetailsRedisCache(t *testing.T) {
	var hits int32
	backend := newBackend(t, &hits)
	defer backend.Close()

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	client := NewClient(backend.URL)
	client.UseRedisCache(rdb, time.Minute)

	first, err := client.Details(context.Background(), 12)
	require.NoError(t, err)
	require.EqualValues(t, 1, atomic.LoadInt32(&hits))

	second, err := client.Details(context.Background(), 12)
	require.NoError(t, err)
	assert.EqualValues(t, 1, atomic.LoadInt32(&hits), "second call must come from cache")
	assert.Equal(t, first, second)

	// Expired cache falls through to the backend again.
	mr.FastForward(2 * time.Minute)
	_, err = client.Details(context.Background(), 12)
	require.NoError(t, err)
	assert.EqualValues(t, 2, atomic.LoadInt32(&hits))
}
