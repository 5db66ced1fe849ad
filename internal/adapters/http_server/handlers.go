// internal/adapters/http_server/handlers.go
package httpserver

import (
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/rs/zerolog/log"

	"flex_reviews/internal/app"
	"flex_reviews/internal/domain"
)

type Handlers struct {
	Q *app.QueryService
	P *app.PlaceService
	C *app.CurationService
}

type problem struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail,omitempty"`
}

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })
	s.mux.Get("/api/reviews/hostaway", h.listReviews)
	s.mux.Get("/api/reviews/google", h.placeReviews)
	s.mux.Post("/api/reviews/approve", h.approveReview)
}

func writeProblem(w http.ResponseWriter, status int, title, detail string) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(problem{Type: "about:blank", Title: title, Status: status, Detail: detail}); err != nil {
		log.Error().Err(err).Msg("write JSON problem response failed")
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("write JSON response failed")
	}
}

// calcETagAndBody marshals once and hashes once, returning both ETag and body.
func calcETagAndBody(v any) (string, []byte) {
	body, err := json.Marshal(v)
	if err != nil {
		// Log but don't fail the whole response; return empty ETag and best-effort body.
		log.Error().Err(err).Msg("failed to marshal object for ETag/body")
		return "", nil
	}
	sum := sha1.Sum(body)
	etag := `W/"` + hex.EncodeToString(sum[:]) + `"`
	return etag, body
}

// listReviews serves the filtered, normalized payload. Metrics inside a
// filtered response still describe the pre-filter aggregate.
func (h *Handlers) listReviews(w http.ResponseWriter, r *http.Request) {
	crit := app.ParseCriteria(r.URL.Query())
	out, err := h.Q.Reviews(r.Context(), crit)
	if err != nil {
		writeProblem(w, http.StatusBadGateway, "Upstream Failure", "could not fetch reviews")
		return
	}

	etag, body := calcETagAndBody(out)
	if inm := r.Header.Get("If-None-Match"); inm != "" && inm == etag {
		w.Header().Set("ETag", etag)
		w.WriteHeader(http.StatusNotModified)
		return
	}

	w.Header().Set("ETag", etag)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		log.Error().Err(err).Msg("failed to write listReviews body")
	}
}

func (h *Handlers) placeReviews(w http.ResponseWriter, r *http.Request) {
	placeID := r.URL.Query().Get("placeId")
	if placeID == "" {
		writeProblem(w, http.StatusBadRequest, "Missing placeId", "placeId query param is required")
		return
	}

	out, err := h.P.PlaceReviews(r.Context(), placeID)
	if err != nil {
		if errors.Is(err, domain.ErrProviderDisabled) {
			writeJSON(w, http.StatusOK, map[string]any{
				"status": "disabled",
				"reason": "GOOGLE_PLACES_API_KEY not set",
			})
			return
		}
		var ue *domain.UpstreamError
		if errors.As(err, &ue) {
			writeJSON(w, http.StatusBadGateway, map[string]any{
				"status":   "error",
				"upstream": ue.Status,
				"message":  ue.Message,
			})
			return
		}
		writeProblem(w, http.StatusBadGateway, "Upstream Failure", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, out)
}

// approveReview validates {id:number, approved:boolean} strictly: a missing
// field or a wrong type is a 400 with no partial effect.
func (h *Handlers) approveReview(w http.ResponseWriter, r *http.Request) {
	var body struct {
		ID       *float64 `json:"id"`
		Approved *bool    `json:"approved"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.ID == nil || body.Approved == nil {
		writeProblem(w, http.StatusBadRequest, "Invalid Body", "expected { id:number, approved:boolean }")
		return
	}

	id := strconv.FormatFloat(*body.ID, 'f', -1, 64)
	if err := h.C.Approve(r.Context(), id, *body.Approved); err != nil {
		writeProblem(w, http.StatusInternalServerError, "Storage Failure", "could not persist approval")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"status":   "ok",
		"id":       *body.ID,
		"approved": *body.Approved,
	})
}
