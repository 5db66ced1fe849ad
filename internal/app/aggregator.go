package app

import (
	"sort"
	"time"

	"flex_reviews/internal/domain"
)

const recentWindow = 30 * 24 * time.Hour

// Aggregate groups canonical reviews by listing slug, in first-encountered
// order, and computes per-listing metrics plus the top-level totals. Bundles
// come back sorted descending by average rating, nil averages sorting as 0;
// ties keep the grouping order.
func Aggregate(reviews []domain.NormalizedReview, now time.Time) domain.Payload {
	index := make(map[string]int, 8) // slug -> position in bundles
	bundles := make([]domain.ListingBundle, 0, 8)
	channels := make(map[string]int, 4)

	for _, n := range reviews {
		channels[n.Channel]++

		i, ok := index[n.Listing.Slug]
		if !ok {
			i = len(bundles)
			index[n.Listing.Slug] = i
			bundles = append(bundles, domain.ListingBundle{
				ListingID:   n.Listing.ID,
				ListingName: n.Listing.Name,
				Slug:        n.Listing.Slug,
				Metrics:     domain.ListingMetrics{CategoriesAvg: map[string]float64{}},
			})
		}
		b := &bundles[i]
		b.Reviews = append(b.Reviews, n)
		b.Metrics.ReviewsCount++
		if t, err := time.Parse(time.RFC3339, n.SubmittedAt); err == nil && now.Sub(t) <= recentWindow {
			b.Metrics.Last30Count++
		}
	}

	// Second pass: averages over what each group actually supplied.
	for i := range bundles {
		b := &bundles[i]

		var sum float64
		var rated int
		for _, r := range b.Reviews {
			if r.Rating10 != nil {
				sum += *r.Rating10
				rated++
			}
		}
		if rated > 0 {
			avg10 := round1(sum / float64(rated))
			avg5 := round1(avg10 / 2)
			b.Metrics.RatingAvg10 = &avg10
			b.Metrics.RatingAvg5 = &avg5
		}

		catSum := map[string]float64{}
		catCnt := map[string]int{}
		for _, r := range b.Reviews {
			for k, v := range r.Categories {
				catSum[k] += v
				catCnt[k]++
			}
		}
		for k := range catSum {
			b.Metrics.CategoriesAvg[k] = round1(catSum[k] / float64(catCnt[k]))
		}
	}

	sort.SliceStable(bundles, func(i, j int) bool {
		return avgOrZero(bundles[i].Metrics.RatingAvg10) > avgOrZero(bundles[j].Metrics.RatingAvg10)
	})

	return domain.Payload{
		Status:    "ok",
		Source:    sourceHostaway,
		FetchedAt: now.UTC().Format(time.RFC3339),
		Totals: domain.Totals{
			ReviewsCount:  len(reviews),
			ListingsCount: len(bundles),
			Channels:      channels,
		},
		Listings: bundles,
	}
}

func avgOrZero(p *float64) float64 {
	if p == nil {
		return 0
	}
	return *p
}
