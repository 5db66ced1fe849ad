package app

import (
	"net/url"
	"strconv"
	"strings"
	"time"

	"flex_reviews/internal/domain"
)

// Filter applies the caller's criteria to an already aggregated payload
// without mutating it. Steps run in a fixed order — listing, channel,
// minRating, approved, date range — each narrows the working set, and any
// listing left with zero reviews after a step is dropped entirely. Metrics
// are NOT recomputed; they keep describing the pre-filter aggregate.
func Filter(p domain.Payload, c domain.Criteria) domain.Payload {
	listings := append([]domain.ListingBundle(nil), p.Listings...)

	if c.Listing != "" {
		q := strings.ToLower(c.Listing)
		kept := make([]domain.ListingBundle, 0, len(listings))
		for _, l := range listings {
			if l.Slug == q || strings.Contains(strings.ToLower(l.ListingName), q) {
				kept = append(kept, l)
			}
		}
		listings = kept
	}

	if c.Channel != "" {
		listings = filterReviews(listings, func(r domain.NormalizedReview) bool {
			return r.Channel == c.Channel
		})
	}

	if c.MinRating != nil {
		min := *c.MinRating
		listings = filterReviews(listings, func(r domain.NormalizedReview) bool {
			return avgOrZero(r.Rating10) >= min
		})
	}

	if c.Approved != nil {
		want := *c.Approved
		listings = filterReviews(listings, func(r domain.NormalizedReview) bool {
			return r.Approved == want
		})
	}

	if c.From != nil || c.To != nil {
		listings = filterReviews(listings, func(r domain.NormalizedReview) bool {
			t, err := time.Parse(time.RFC3339, r.SubmittedAt)
			if err != nil {
				// Unparsable instants are never excluded by date bounds.
				return true
			}
			if c.From != nil && t.Before(*c.From) {
				return false
			}
			if c.To != nil && t.After(*c.To) {
				return false
			}
			return true
		})
	}

	out := p
	out.Listings = listings
	return out
}

// filterReviews rebuilds each listing's review list against keep, dropping
// listings that end up empty. Bundles are copied; the input is untouched.
func filterReviews(listings []domain.ListingBundle, keep func(domain.NormalizedReview) bool) []domain.ListingBundle {
	out := make([]domain.ListingBundle, 0, len(listings))
	for _, l := range listings {
		kept := make([]domain.NormalizedReview, 0, len(l.Reviews))
		for _, r := range l.Reviews {
			if keep(r) {
				kept = append(kept, r)
			}
		}
		if len(kept) == 0 {
			continue
		}
		l.Reviews = kept
		out = append(out, l)
	}
	return out
}

// ParseCriteria reads filter values from URL query parameters. Unparsable
// numbers, booleans, and dates leave the corresponding criterion unset, so a
// bad value degrades to "no effect" rather than excluding everything.
func ParseCriteria(q url.Values) domain.Criteria {
	c := domain.Criteria{
		Listing: q.Get("listing"),
		Channel: q.Get("channel"),
	}
	if s := q.Get("minRating"); s != "" {
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			c.MinRating = &f
		}
	}
	if s := q.Get("approved"); s != "" {
		if b, err := strconv.ParseBool(s); err == nil {
			c.Approved = &b
		}
	}
	if t, ok := parseBound(q.Get("from")); ok {
		c.From = &t
	}
	if t, ok := parseBound(q.Get("to")); ok {
		c.To = &t
	}
	return c
}

// parseBound accepts a bare calendar date or a full RFC-3339 instant. Bare
// dates resolve to midnight UTC; both bounds are inclusive in Filter.
func parseBound(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, true
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, true
	}
	return time.Time{}, false
}
