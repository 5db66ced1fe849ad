package app

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"flex_reviews/internal/domain"
)

// CurationService owns writes to the approval overlay. The overlay is the
// single source of truth for curation state; the normalizer only reads it.
type CurationService struct {
	approvals domain.ApprovalStore
}

func NewCurationService(store domain.ApprovalStore) *CurationService {
	return &CurationService{approvals: store}
}

// Approve upserts one overlay entry. Concurrent curation actions are not
// serialized against each other: last writer wins.
func (s *CurationService) Approve(ctx context.Context, id string, approved bool) error {
	if err := s.approvals.Upsert(ctx, id, approved); err != nil {
		return fmt.Errorf("persist approval for %s: %w", id, err)
	}
	log.Info().Str("id", id).Bool("approved", approved).Msg("review curation updated")
	return nil
}
