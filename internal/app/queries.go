package app

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"flex_reviews/internal/domain"
)

// QueryService runs the full normalize→aggregate→filter pipeline for every
// call. There is deliberately no shared payload cache: each request re-reads
// the approval overlay and re-fetches (or falls back on) raw provider data,
// so curation changes are visible immediately.
type QueryService struct {
	source    domain.ReviewSource
	approvals domain.ApprovalStore
}

func NewQueryService(src domain.ReviewSource, store domain.ApprovalStore) *QueryService {
	return &QueryService{source: src, approvals: store}
}

func (s *QueryService) Reviews(ctx context.Context, c domain.Criteria) (domain.Payload, error) {
	var (
		raw     []domain.RawReview
		overlay map[string]bool
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		raw, err = s.source.FetchRaw(gctx)
		return err
	})
	g.Go(func() error {
		m, err := s.approvals.Read(gctx)
		if err != nil {
			// A broken overlay never breaks the read path; serve unapproved.
			log.Warn().Err(err).Msg("approval store read failed, using empty overlay")
			m = map[string]bool{}
		}
		overlay = m
		return nil
	})
	if err := g.Wait(); err != nil {
		return domain.Payload{}, err
	}

	return Filter(Normalize(raw, overlay, time.Now().UTC()), c), nil
}

// PlaceService serves the optional map-listing provider. Disabled and
// upstream-error signals from the source pass through untouched so the HTTP
// layer can map them to their documented responses.
type PlaceService struct {
	source domain.PlaceReviewSource
}

func NewPlaceService(src domain.PlaceReviewSource) *PlaceService {
	return &PlaceService{source: src}
}

func (s *PlaceService) PlaceReviews(ctx context.Context, placeID string) (domain.PlacePayload, error) {
	d, err := s.source.PlaceDetails(ctx, placeID)
	if err != nil {
		return domain.PlacePayload{}, err
	}
	reviews := NormalizePlace(d)
	return domain.PlacePayload{
		Status:      "ok",
		Source:      sourceGoogle,
		FetchedAt:   time.Now().UTC().Format(time.RFC3339),
		Totals:      domain.PlaceTotals{ReviewsCount: len(reviews)},
		ListingName: d.Name,
		Reviews:     reviews,
	}, nil
}
