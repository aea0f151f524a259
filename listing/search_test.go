package listing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moyoez/filestation-go/types"
)

func sampleEntries() []types.ListingEntry {
	return []types.ListingEntry{
		{Name: "Holiday.JPG"},
		{Name: "report.pdf"},
		{Name: "beach.png"},
		{Name: "notes.txt"},
		{Name: "Makefile"},
	}
}

func TestSearchEmptyQueryShowsEverything(t *testing.T) {
	view := Search("   ", sampleEntries())
	assert.False(t, view.Empty)
	assert.Equal(t, 5, view.Matches)

	categories := make([]string, 0, len(view.Sections))
	for _, s := range view.Sections {
		categories = append(categories, s.Category)
		assert.False(t, s.Collapsed)
	}
	assert.Equal(t, []string{"file-image", "file-pdf", "file-lines", DefaultCategory}, categories)
	assert.Len(t, view.Sections[0].Entries, 2)
}

func TestSearchIsCaseInsensitive(t *testing.T) {
	view := Search("HOLI", sampleEntries())
	require.Len(t, view.Sections, 1)
	assert.Equal(t, "file-image", view.Sections[0].Category)
	assert.Equal(t, "Holiday.JPG", view.Sections[0].Entries[0].Name)
	assert.Equal(t, 1, view.Matches)
	assert.False(t, view.Empty)
}

func TestSearchRegroupsMatches(t *testing.T) {
	view := Search(".p", sampleEntries())
	require.Len(t, view.Sections, 2)
	assert.Equal(t, "file-pdf", view.Sections[0].Category)
	assert.Equal(t, "file-image", view.Sections[1].Category)
	assert.Equal(t, "beach.png", view.Sections[1].Entries[0].Name)
}

func TestSearchNoMatch(t *testing.T) {
	view := Search("zzz", sampleEntries())
	assert.True(t, view.Empty)
	assert.Zero(t, view.Matches)
	assert.NotNil(t, view.Sections)
	assert.Empty(t, view.Sections)
}

func TestSearchEmptyListingIsNotEmptyState(t *testing.T) {
	view := Search("", nil)
	assert.False(t, view.Empty)
	assert.Empty(t, view.Sections)
}

func TestCategoryOf(t *testing.T) {
	for name, want := range map[string]string{
		"archive.tar":   "box",
		"Song.FLAC":     "file-audio",
		"main.go":       "file-code",
		"deploy.sh":     "terminal",
		"data.sqlite":   "database",
		"README":        DefaultCategory,
		"weird.unknown": DefaultCategory,
	} {
		assert.Equal(t, want, CategoryOf(name), name)
	}
}
