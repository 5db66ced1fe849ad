package domain

// RawReview is the Hostaway wire shape, pre-normalization. Rating fields are
// deliberately loose (`any`): the sandbox occasionally sends non-numeric
// values and those count as absent rather than failing the whole decode.
type RawReview struct {
	ID             int64         `json:"id"`
	Type           string        `json:"type"`   // host-to-guest | guest-to-host | ...
	Status         string        `json:"status"` // published | pending | hidden | ...
	Rating         any           `json:"rating"` // overall 0..10, may be null
	PublicReview   string        `json:"publicReview"`
	ReviewCategory []RawCategory `json:"reviewCategory,omitempty"`
	SubmittedAt    string        `json:"submittedAt"` // 'YYYY-MM-DD HH:mm:ss', UTC
	GuestName      string        `json:"guestName,omitempty"`
	ListingID      *int64        `json:"listingId,omitempty"`
	ListingName    string        `json:"listingName,omitempty"`
	Channel        string        `json:"channel,omitempty"`
}

type RawCategory struct {
	Category string `json:"category"`
	Rating   any    `json:"rating"`
}

// NormalizedReview is the canonical review record served everywhere.
// Rating5 is present iff Rating10 is present and equals round(Rating10/2, 1).
type NormalizedReview struct {
	ID            int64              `json:"id"`
	Type          string             `json:"type"`
	Status        string             `json:"status"`
	Channel       string             `json:"channel"`
	Rating10      *float64           `json:"rating10"`
	Rating5       *float64           `json:"rating5"`
	Text          string             `json:"text"`
	Categories    map[string]float64 `json:"categories"`
	SubmittedAt   string             `json:"submittedAt"`   // ISO-8601
	SubmittedDate string             `json:"submittedDate"` // YYYY-MM-DD
	Guest         Guest              `json:"guest"`
	Listing       ListingRef         `json:"listing"`
	Approved      bool               `json:"approved"`
	Source        string             `json:"source"` // provenance tag, not the channel
}

type Guest struct {
	Name *string `json:"name"`
}

type ListingRef struct {
	ID   *int64 `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}
