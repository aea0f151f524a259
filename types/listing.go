package types

import "time"

// ListingEntry is one file shown on the listing page.
type ListingEntry struct {
	Name        string    `json:"name"`
	Category    string    `json:"category"`
	Size        int64     `json:"size"`
	Description string    `json:"description,omitempty"`
	UploadedAt  time.Time `json:"uploadedAt"`
	ExpiresAt   time.Time `json:"expiresAt"`
}

// ListingSection groups the visible entries of one category.
type ListingSection struct {
	Category  string         `json:"category"`
	Entries   []ListingEntry `json:"entries"`
	Collapsed bool           `json:"collapsed"`
}

// ListingView is the result of filtering a listing by a query.
type ListingView struct {
	Query    string           `json:"query"`
	Sections []ListingSection `json:"sections"`
	Matches  int              `json:"matches"`
	// Empty is set only when a non-empty query matched nothing.
	Empty bool `json:"empty"`
}
