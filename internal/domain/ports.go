package domain

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// ReviewSource fetches raw reviews from the primary provider. It must resolve
// to a result — implementations fall back to a bundled dataset on transport
// errors, non-success responses, or empty result sets.
type ReviewSource interface {
	FetchRaw(ctx context.Context) ([]RawReview, error)
}

// PlaceReviewSource fetches reviews for one map listing. Returns
// ErrProviderDisabled when no credentials are configured and *UpstreamError
// when the upstream call does not report success.
type PlaceReviewSource interface {
	PlaceDetails(ctx context.Context, placeID string) (PlaceDetails, error)
}

// ApprovalStore is the curation overlay: a durable review-id → approved map.
// Read masks a missing or corrupt backing store as an empty overlay where it
// can; Upsert sets a single entry with no partial write observable by a
// subsequent Read. Concurrent upserts are last-writer-wins.
type ApprovalStore interface {
	Read(ctx context.Context) (map[string]bool, error)
	Upsert(ctx context.Context, id string, approved bool) error
}

var ErrProviderDisabled = errors.New("provider disabled: credentials not configured")

// UpstreamError carries the provider-reported status and message for the
// optional provider path, where failures are surfaced rather than masked.
type UpstreamError struct {
	Status  string
	Message string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("upstream %s: %s", e.Status, e.Message)
}

// Criteria are the optional, independently composable review filters.
// A nil/zero field means "no effect" — including values that failed to parse
// at the HTTP boundary.
type Criteria struct {
	Listing   string
	Channel   string
	MinRating *float64
	Approved  *bool
	From      *time.Time
	To        *time.Time
}
