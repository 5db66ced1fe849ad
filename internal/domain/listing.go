package domain

// ListingMetrics is the per-listing rollup. Averages are nil when no review
// in the bundle carries a rating; category averages only count the reviews
// that supplied that category.
type ListingMetrics struct {
	ReviewsCount  int                `json:"reviewsCount"`
	RatingAvg10   *float64           `json:"ratingAvg10"`
	RatingAvg5    *float64           `json:"ratingAvg5"`
	CategoriesAvg map[string]float64 `json:"categoriesAvg"`
	Last30Count   int                `json:"last30Count"`
}

// ListingBundle groups one property's canonical reviews with its metrics.
// Grouping key is the slug, so two raw records with the same display name
// merge even when their listing identifiers differ.
type ListingBundle struct {
	ListingID   *int64             `json:"listingId"`
	ListingName string             `json:"listingName"`
	Slug        string             `json:"slug"`
	Metrics     ListingMetrics     `json:"metrics"`
	Reviews     []NormalizedReview `json:"reviews"`
}

type Totals struct {
	ReviewsCount  int            `json:"reviewsCount"`
	ListingsCount int            `json:"listingsCount"`
	Channels      map[string]int `json:"channels"`
}

// Payload is the top-level response of the normalize→aggregate pipeline.
// Listings are sorted descending by RatingAvg10, nil sorting as 0.
type Payload struct {
	Status   string          `json:"status"`
	Source   string          `json:"source"`
	FetchedAt string         `json:"fetchedAt"`
	Totals   Totals          `json:"totals"`
	Listings []ListingBundle `json:"listings"`
}

// PlaceDetails is the raw result of a Google Places details lookup.
type PlaceDetails struct {
	Name    string
	Reviews []PlaceRawReview
}

type PlaceRawReview struct {
	AuthorName string `json:"author_name"`
	Rating     any    `json:"rating"` // 0..5 stars
	Text       string `json:"text"`
	Time       int64  `json:"time"` // epoch seconds
}

// PlacePayload is the response shape of the map-provider endpoint.
type PlacePayload struct {
	Status      string             `json:"status"`
	Source      string             `json:"source"`
	FetchedAt   string             `json:"fetchedAt"`
	Totals      PlaceTotals        `json:"totals"`
	ListingName string             `json:"listingName"`
	Reviews     []NormalizedReview `json:"reviews"`
}

type PlaceTotals struct {
	ReviewsCount int `json:"reviewsCount"`
}
