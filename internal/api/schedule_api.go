package api

import (
	"errors"
	"net/http"
	"strconv"

	"servery/internal/events"
	"servery/internal/metrics"
	"servery/internal/models"
	"servery/internal/restoapi"
	"servery/internal/schedule"
)

// StatusResponse is the response for GET /api/v1/restaurants/{id}/status.
type StatusResponse struct {
	RestaurantID int64  `json:"restaurant_id"`
	Name         string `json:"name,omitempty"`
	Status       string `json:"status"`
}

// SlotsResponse is the response for both slot endpoints.
type SlotsResponse struct {
	RestaurantID int64    `json:"restaurant_id"`
	Mode         string   `json:"mode,omitempty"`
	Date         string   `json:"date,omitempty"`
	Slots        []string `json:"slots"`
}

func (s *HTTPServer) handleStatus(w http.ResponseWriter, r *http.Request) {
	metrics.IncHTTP("status")

	details, ok := s.fetchDetails(w, r)
	if !ok {
		return
	}

	status := schedule.Evaluate(details.Week, s.src.Now())
	metrics.IncStatus(string(status))

	writeJSON(w, http.StatusOK, StatusResponse{
		RestaurantID: details.RestaurantID,
		Name:         details.Name,
		Status:       string(status),
	})
}

func (s *HTTPServer) handleOrderSlots(w http.ResponseWriter, r *http.Request) {
	metrics.IncHTTP("order_slots")

	mode, ok := parseMode(r.URL.Query().Get("mode"))
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid mode; expected collection or delivery")
		return
	}

	lead := 0
	if raw := r.URL.Query().Get("lead"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			writeError(w, http.StatusBadRequest, "invalid lead; expected non-negative minutes")
			return
		}
		lead = n
	}

	details, ok := s.fetchDetails(w, r)
	if !ok {
		return
	}

	slots := s.gen.OrderingSlots(details.Week, schedule.OrderPolicy{
		Mode:               mode,
		DefaultLeadMinutes: s.resolveLead(lead, details, mode),
	})
	metrics.IncSlots("ordering")
	s.publishSlots(details.RestaurantID, string(mode), len(slots))

	writeJSON(w, http.StatusOK, SlotsResponse{
		RestaurantID: details.RestaurantID,
		Mode:         string(mode),
		Slots:        slots,
	})
}

func (s *HTTPServer) handleReservationSlots(w http.ResponseWriter, r *http.Request) {
	metrics.IncHTTP("reservation_slots")

	raw := r.URL.Query().Get("date")
	if raw == "" {
		writeError(w, http.StatusBadRequest, "date is required; expected DD-MM-YYYY")
		return
	}
	target := schedule.ParseDate(raw)
	if target.IsZero() {
		writeError(w, http.StatusBadRequest, "invalid date; expected DD-MM-YYYY")
		return
	}

	details, ok := s.fetchDetails(w, r)
	if !ok {
		return
	}

	slots := s.gen.ReservationSlots(details.Week, target)
	metrics.IncSlots("reservation")
	s.publishSlots(details.RestaurantID, "reservation", len(slots))

	writeJSON(w, http.StatusOK, SlotsResponse{
		RestaurantID: details.RestaurantID,
		Date:         raw,
		Slots:        slots,
	})
}

// fetchDetails resolves the path id and loads the restaurant, writing
// the error response itself when something is wrong.
func (s *HTTPServer) fetchDetails(w http.ResponseWriter, r *http.Request) (*restoapi.Details, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		writeError(w, http.StatusBadRequest, "invalid restaurant id")
		return nil, false
	}

	details, err := s.fetcher.Details(r.Context(), id)
	if err != nil {
		if errors.Is(err, restoapi.ErrNotFound) {
			metrics.IncUpstream("not_found")
			writeError(w, http.StatusNotFound, "restaurant not found")
			return nil, false
		}
		metrics.IncUpstream("error")
		if s.logger != nil {
			s.logger.Error().Err(err).Int64("restaurant_id", id).Msg("upstream fetch failed")
		}
		writeError(w, http.StatusBadGateway, "restaurant backend unavailable")
		return nil, false
	}

	metrics.IncUpstream("ok")
	if s.bus != nil {
		s.bus.Publish(events.Event{Type: events.TypeScheduleFetched, RestaurantID: id})
	}
	return details, true
}

// resolveLead picks the default lead for a request: an explicit query
// override wins, then the restaurant's own order policy, then the
// service-wide default.
func (s *HTTPServer) resolveLead(queryLead int, details *restoapi.Details, mode models.OrderMode) int {
	if queryLead > 0 {
		return queryLead
	}
	if lead := models.PolicyLead(details.Policies, mode); lead > 0 {
		return lead
	}
	return s.opts.DefaultLeadMinutes
}

// parseMode normalizes the mode parameter. An empty mode means
// collection, matching what the checkout screen sends by default.
func parseMode(raw string) (models.OrderMode, bool) {
	switch raw {
	case "", "collection", "Collection":
		return models.ModeCollection, true
	case "delivery", "Delivery":
		return models.ModeDelivery, true
	default:
		return "", false
	}
}

func (s *HTTPServer) publishSlots(restID int64, kind string, count int) {
	if s.bus == nil {
		return
	}
	s.bus.Publish(events.Event{
		Type:         events.TypeSlotsGenerated,
		RestaurantID: restID,
		Detail:       kind,
		Count:        count,
	})
}
