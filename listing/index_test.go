package listing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moyoez/filestation-go/types"
)

func TestIndexRecordsSuccessfulTransfers(t *testing.T) {
	x := NewIndex(time.Hour)
	finished := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	x.now = func() time.Time { return finished.Add(time.Minute) }

	n := x.Record(types.BatchSummary{
		ID:         "batch-1",
		Total:      3,
		Completed:  3,
		FinishedAt: finished,
		Metadata:   types.SubmissionMetadata{Description: "trip", Expiration: "2"},
		Transfers: []types.TransferState{
			{Name: "a.png", Size: 10, Status: types.StatusSuccess},
			{Name: "b.pdf", Size: 20, Status: types.StatusError},
			{Name: "c.txt", Size: 30, Status: types.StatusSuccess},
		},
	})
	assert.Equal(t, 2, n)

	entries := x.List()
	require.Len(t, entries, 2)
	assert.Equal(t, "a.png", entries[0].Name)
	assert.Equal(t, "file-image", entries[0].Category)
	assert.Equal(t, "trip", entries[0].Description)
	assert.Equal(t, finished.Add(2*time.Hour), entries[0].ExpiresAt)
	assert.Equal(t, "c.txt", entries[1].Name)
}

func TestIndexIgnoresUnfinishedBatch(t *testing.T) {
	x := NewIndex(time.Hour)
	n := x.Record(types.BatchSummary{
		Total:     2,
		Completed: 1,
		Transfers: []types.TransferState{{Name: "a.png", Status: types.StatusSuccess}, {Name: "b.png"}},
	})
	assert.Zero(t, n)
	assert.Empty(t, x.List())
}

func TestIndexDropsExpiredEntries(t *testing.T) {
	x := NewIndex(time.Hour)
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	x.now = func() time.Time { return now }

	x.Add(types.ListingEntry{Name: "old.txt", UploadedAt: now.Add(-2 * time.Hour), ExpiresAt: now.Add(-time.Hour)})
	x.Add(types.ListingEntry{Name: "new.txt", UploadedAt: now, ExpiresAt: now.Add(time.Hour)})

	entries := x.List()
	require.Len(t, entries, 1)
	assert.Equal(t, "new.txt", entries[0].Name)

	view := x.Search("old")
	assert.True(t, view.Empty)
}

func TestIndexNewestFirst(t *testing.T) {
	x := NewIndex(time.Hour)
	now := time.Now()
	x.Add(types.ListingEntry{Name: "first.txt", UploadedAt: now.Add(-time.Minute)})
	x.Add(types.ListingEntry{Name: "second.txt", UploadedAt: now})

	entries := x.List()
	require.Len(t, entries, 2)
	assert.Equal(t, "second.txt", entries[0].Name)
}

func TestExpirationHours(t *testing.T) {
	assert.Equal(t, 48, ExpirationHours("48"))
	assert.Equal(t, 6, ExpirationHours(" 6 "))
	assert.Equal(t, DefaultExpirationHours, ExpirationHours(""))
	assert.Equal(t, DefaultExpirationHours, ExpirationHours("0"))
	assert.Equal(t, DefaultExpirationHours, ExpirationHours("soon"))
}
