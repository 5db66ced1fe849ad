package app

import (
	"encoding/json"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"flex_reviews/internal/domain"
)

const (
	sourceHostaway = "hostaway"
	sourceGoogle   = "google"
	unknownListing = "Unknown Listing"
)

var slugRe = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify lower-cases the name, collapses every run of non-alphanumerics into
// a single hyphen, and trims leading/trailing hyphens.
func Slugify(name string) string {
	return strings.Trim(slugRe.ReplaceAllString(strings.ToLower(name), "-"), "-")
}

// toISO converts 'YYYY-MM-DD HH:mm:ss' (implicitly UTC) to an ISO-8601 instant.
func toISO(s string) string {
	return strings.Replace(s, " ", "T", 1) + "Z"
}

// numeric reports v as a float when it is a JSON number. Strings and
// everything else count as non-numeric; callers drop those entries.
func numeric(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		if !math.IsNaN(n) {
			return n, true
		}
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case json.Number:
		if f, err := n.Float64(); err == nil {
			return f, true
		}
	}
	return 0, false
}

func round1(x float64) float64 { return math.Round(x*10) / 10 }

func first10(s string) string {
	if len(s) > 10 {
		return s[:10]
	}
	return s
}

// ratingFromCategories derives the overall 0–10 rating as the rounded mean of
// the category ratings; nil when no category survived the numeric check.
func ratingFromCategories(cats map[string]float64) *float64 {
	if len(cats) == 0 {
		return nil
	}
	var sum float64
	for _, v := range cats {
		sum += v
	}
	avg := round1(sum / float64(len(cats)))
	return &avg
}

// NormalizeReviews converts raw Hostaway records into canonical reviews,
// folding in the approval overlay. Input order is preserved.
func NormalizeReviews(raw []domain.RawReview, overlay map[string]bool) []domain.NormalizedReview {
	out := make([]domain.NormalizedReview, 0, len(raw))
	for _, r := range raw {
		cats := make(map[string]float64, len(r.ReviewCategory))
		for _, c := range r.ReviewCategory {
			if f, ok := numeric(c.Rating); ok {
				cats[c.Category] = f
			}
		}

		rating10 := ratingFromCategories(cats)
		if f, ok := numeric(r.Rating); ok {
			rating10 = &f
		}
		var rating5 *float64
		if rating10 != nil {
			v := round1(*rating10 / 2)
			rating5 = &v
		}

		name := r.ListingName
		if name == "" {
			name = unknownListing
		}
		iso := toISO(r.SubmittedAt)

		var guest *string
		if r.GuestName != "" {
			g := r.GuestName
			guest = &g
		}
		channel := r.Channel
		if channel == "" {
			channel = sourceHostaway
		}

		out = append(out, domain.NormalizedReview{
			ID:            r.ID,
			Type:          r.Type,
			Status:        r.Status,
			Channel:       channel,
			Rating10:      rating10,
			Rating5:       rating5,
			Text:          r.PublicReview,
			Categories:    cats,
			SubmittedAt:   iso,
			SubmittedDate: first10(iso),
			Guest:         domain.Guest{Name: guest},
			Listing:       domain.ListingRef{ID: r.ListingID, Name: name, Slug: Slugify(name)},
			Approved:      overlay[strconv.FormatInt(r.ID, 10)],
			Source:        sourceHostaway,
		})
	}
	return out
}

// Normalize runs one provider fetch through the full pipeline: raw →
// canonical → aggregated payload. now is the aggregation wall clock.
func Normalize(raw []domain.RawReview, overlay map[string]bool, now time.Time) domain.Payload {
	return Aggregate(NormalizeReviews(raw, overlay), now)
}

// NormalizePlace is the simplified normalizer variant for the map provider.
// Place reviews carry no categories, are force-approved, and keep the primary
// provider's provenance tag so downstream consumers see a single schema; the
// channel is what tells them apart.
func NormalizePlace(d domain.PlaceDetails) []domain.NormalizedReview {
	name := d.Name
	slug := Slugify(name)
	out := make([]domain.NormalizedReview, 0, len(d.Reviews))
	for i, rv := range d.Reviews {
		id := rv.Time
		if id == 0 {
			id = int64(i)
		}
		var rating10, rating5 *float64
		if f, ok := numeric(rv.Rating); ok {
			r10 := round1(f * 2)
			r5 := f
			rating10, rating5 = &r10, &r5
		}
		var guest *string
		if rv.AuthorName != "" {
			g := rv.AuthorName
			guest = &g
		}
		iso := time.Unix(rv.Time, 0).UTC().Format(time.RFC3339)
		out = append(out, domain.NormalizedReview{
			ID:            id,
			Type:          "guest-to-host",
			Status:        "published",
			Channel:       sourceGoogle,
			Rating10:      rating10,
			Rating5:       rating5,
			Text:          rv.Text,
			Categories:    map[string]float64{},
			SubmittedAt:   iso,
			SubmittedDate: first10(iso),
			Guest:         domain.Guest{Name: guest},
			Listing:       domain.ListingRef{ID: nil, Name: name, Slug: slug},
			Approved:      true,
			Source:        sourceHostaway,
		})
	}
	return out
}
