package app_test

import (
	"testing"
	"time"

	"flex_reviews/internal/app"
	"flex_reviews/internal/domain"
)

func nr(id int64, listing, channel string, rating *float64, submittedAt string) domain.NormalizedReview {
	return domain.NormalizedReview{
		ID:            id,
		Channel:       channel,
		Rating10:      rating,
		Categories:    map[string]float64{},
		SubmittedAt:   submittedAt,
		SubmittedDate: submittedAt[:10],
		Listing:       domain.ListingRef{Name: listing, Slug: app.Slugify(listing)},
		Source:        "hostaway",
	}
}

var aggNow = time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

func TestAggregate_Averages(t *testing.T) {
	reviews := []domain.NormalizedReview{
		nr(1, "Camden Loft", "airbnb", ptr(6.0), "2024-01-01T00:00:00Z"),
		nr(2, "Camden Loft", "airbnb", ptr(8.0), "2024-01-02T00:00:00Z"),
		nr(3, "Camden Loft", "airbnb", ptr(10.0), "2024-01-03T00:00:00Z"),
	}

	p := app.Aggregate(reviews, aggNow)
	if len(p.Listings) != 1 {
		t.Fatalf("listings: %d", len(p.Listings))
	}
	m := p.Listings[0].Metrics
	if m.RatingAvg10 == nil || *m.RatingAvg10 != 8.0 {
		t.Fatalf("avg10: %+v", m.RatingAvg10)
	}
	if m.RatingAvg5 == nil || *m.RatingAvg5 != 4.0 {
		t.Fatalf("avg5: %+v", m.RatingAvg5)
	}
	if m.ReviewsCount != 3 {
		t.Fatalf("reviewsCount: %d", m.ReviewsCount)
	}
}

func TestAggregate_GroupsBySlug(t *testing.T) {
	r1 := nr(1, "Camden Loft", "airbnb", ptr(9.0), "2024-01-01T00:00:00Z")
	r1.Listing.ID = ptr(int64(100))
	r2 := nr(2, "Camden Loft", "booking", ptr(7.0), "2024-01-02T00:00:00Z")
	r2.Listing.ID = ptr(int64(999)) // different provider id, same slug

	p := app.Aggregate([]domain.NormalizedReview{r1, r2}, aggNow)
	if len(p.Listings) != 1 {
		t.Fatalf("expected one bundle, got %d", len(p.Listings))
	}
	if p.Totals.ListingsCount != 1 || p.Totals.ReviewsCount != 2 {
		t.Fatalf("totals: %+v", p.Totals)
	}
	if got := p.Listings[0].ListingID; got == nil || *got != 100 {
		t.Fatalf("bundle keeps first-seen listing id, got %+v", got)
	}
}

func TestAggregate_ChannelTotals(t *testing.T) {
	reviews := []domain.NormalizedReview{
		nr(1, "A", "airbnb", ptr(8.0), "2024-01-01T00:00:00Z"),
		nr(2, "A", "airbnb", ptr(8.0), "2024-01-02T00:00:00Z"),
		nr(3, "B", "booking", ptr(8.0), "2024-01-03T00:00:00Z"),
		nr(4, "C", "hostaway", nil, "2024-01-04T00:00:00Z"),
	}

	p := app.Aggregate(reviews, aggNow)
	want := map[string]int{"airbnb": 2, "booking": 1, "hostaway": 1}
	for ch, n := range want {
		if p.Totals.Channels[ch] != n {
			t.Fatalf("channel %s: got %d, want %d", ch, p.Totals.Channels[ch], n)
		}
	}
}

func TestAggregate_Last30Window(t *testing.T) {
	inside := aggNow.Add(-10 * 24 * time.Hour).Format(time.RFC3339)
	boundary := aggNow.Add(-30 * 24 * time.Hour).Format(time.RFC3339)
	outside := aggNow.Add(-31 * 24 * time.Hour).Format(time.RFC3339)

	reviews := []domain.NormalizedReview{
		nr(1, "A", "airbnb", ptr(8.0), inside),
		nr(2, "A", "airbnb", ptr(8.0), boundary),
		nr(3, "A", "airbnb", ptr(8.0), outside),
	}

	p := app.Aggregate(reviews, aggNow)
	if got := p.Listings[0].Metrics.Last30Count; got != 2 {
		t.Fatalf("last30Count: got %d, want 2", got)
	}
}

func TestAggregate_Last30SkipsUnparsableInstant(t *testing.T) {
	bad := nr(1, "A", "airbnb", ptr(8.0), "not-a-timestamp")
	bad.SubmittedDate = "not-a-tim"

	p := app.Aggregate([]domain.NormalizedReview{bad}, aggNow)
	if got := p.Listings[0].Metrics.Last30Count; got != 0 {
		t.Fatalf("last30Count: got %d, want 0", got)
	}
	if p.Listings[0].Metrics.ReviewsCount != 1 {
		t.Fatal("review still counted overall")
	}
}

func TestAggregate_SortsByAvgDescNilAsZero(t *testing.T) {
	reviews := []domain.NormalizedReview{
		nr(1, "Mid", "airbnb", ptr(5.0), "2024-01-01T00:00:00Z"),
		nr(2, "Unrated", "airbnb", nil, "2024-01-02T00:00:00Z"),
		nr(3, "Top", "airbnb", ptr(9.0), "2024-01-03T00:00:00Z"),
	}

	p := app.Aggregate(reviews, aggNow)
	got := []string{p.Listings[0].Slug, p.Listings[1].Slug, p.Listings[2].Slug}
	want := []string{"top", "mid", "unrated"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order: got %v, want %v", got, want)
		}
	}
	if p.Listings[2].Metrics.RatingAvg10 != nil {
		t.Fatal("unrated bundle must keep a nil average")
	}
}

func TestAggregate_CategoryAveragesOverSuppliersOnly(t *testing.T) {
	r1 := nr(1, "A", "airbnb", ptr(8.0), "2024-01-01T00:00:00Z")
	r1.Categories = map[string]float64{"cleanliness": 8, "value": 7}
	r2 := nr(2, "A", "airbnb", ptr(9.0), "2024-01-02T00:00:00Z")
	r2.Categories = map[string]float64{"cleanliness": 9}
	r3 := nr(3, "A", "airbnb", ptr(10.0), "2024-01-03T00:00:00Z")

	p := app.Aggregate([]domain.NormalizedReview{r1, r2, r3}, aggNow)
	cats := p.Listings[0].Metrics.CategoriesAvg
	if cats["cleanliness"] != 8.5 {
		t.Fatalf("cleanliness: %v", cats["cleanliness"])
	}
	if cats["value"] != 7.0 {
		t.Fatalf("value: %v", cats["value"])
	}
}

func TestAggregate_Envelope(t *testing.T) {
	p := app.Aggregate(nil, aggNow)
	if p.Status != "ok" || p.Source != "hostaway" {
		t.Fatalf("envelope: %+v", p)
	}
	if p.FetchedAt != aggNow.Format(time.RFC3339) {
		t.Fatalf("fetchedAt: %s", p.FetchedAt)
	}
	if p.Totals.ReviewsCount != 0 || p.Totals.ListingsCount != 0 {
		t.Fatalf("totals: %+v", p.Totals)
	}
	if p.Listings == nil {
		t.Fatal("listings slice must not be nil")
	}
}
