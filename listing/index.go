package listing

import (
	"cmp"
	"slices"
	"strconv"
	"strings"
	"time"

	ttlworker "github.com/FloatTech/ttl"

	"github.com/moyoez/filestation-go/tool"
	"github.com/moyoez/filestation-go/types"
)

const (
	// DefaultExpirationHours is what the server applies when expiration is missing or zero.
	DefaultExpirationHours = 24
	// MaxRetention caps how long an entry stays in the index.
	MaxRetention = 30 * 24 * time.Hour
)

// Index remembers files uploaded by this process so the listing can be searched locally.
// Entries disappear at their own expiration time.
type Index struct {
	entries *ttlworker.Cache[string, types.ListingEntry]
	now     func() time.Time
}

// NewIndex keeps entries for at most ttl, even when their expiration is later.
func NewIndex(ttl time.Duration) *Index {
	return &Index{
		entries: ttlworker.NewCache[string, types.ListingEntry](ttl),
		now:     time.Now,
	}
}

// Add stores or replaces an entry keyed by name.
func (x *Index) Add(entry types.ListingEntry) {
	if entry.Category == "" {
		entry.Category = CategoryOf(entry.Name)
	}
	x.entries.Set(entry.Name, entry)
}

// Record adds every successful transfer of a finished batch. Unfinished batches are ignored.
func (x *Index) Record(summary types.BatchSummary) int {
	if !summary.Finished() {
		return 0
	}
	uploadedAt := summary.FinishedAt
	if uploadedAt.IsZero() {
		uploadedAt = x.now()
	}
	expiresAt := uploadedAt.Add(time.Duration(ExpirationHours(summary.Metadata.Expiration)) * time.Hour)
	n := 0
	for _, t := range summary.Transfers {
		if t.Status != types.StatusSuccess {
			continue
		}
		x.Add(types.ListingEntry{
			Name:        t.Name,
			Size:        t.Size,
			Description: summary.Metadata.Description,
			UploadedAt:  uploadedAt,
			ExpiresAt:   expiresAt,
		})
		n++
	}
	tool.DefaultLogger.Debugf("Recorded %d uploaded file(s) of batch %s in listing", n, summary.ID)
	return n
}

// List returns the entries that have not expired, newest first.
func (x *Index) List() []types.ListingEntry {
	now := x.now()
	var out []types.ListingEntry
	var expired []string
	_ = x.entries.Range(func(name string, e types.ListingEntry) error {
		if !e.ExpiresAt.IsZero() && !e.ExpiresAt.After(now) {
			expired = append(expired, name)
			return nil
		}
		out = append(out, e)
		return nil
	})
	for _, name := range expired {
		x.entries.Delete(name)
	}
	slices.SortFunc(out, func(a, b types.ListingEntry) int {
		if c := b.UploadedAt.Compare(a.UploadedAt); c != 0 {
			return c
		}
		return cmp.Compare(a.Name, b.Name)
	})
	return out
}

// Search runs Search over the current entries.
func (x *Index) Search(query string) types.ListingView {
	return Search(query, x.List())
}

// ExpirationHours parses the expiration field like the server does: anything that is not
// a positive integer means the default.
func ExpirationHours(expiration string) int {
	h, err := strconv.Atoi(strings.TrimSpace(expiration))
	if err != nil || h <= 0 {
		return DefaultExpirationHours
	}
	return h
}
