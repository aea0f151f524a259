package listing

import (
	"strings"

	"github.com/samber/lo"

	"github.com/moyoez/filestation-go/types"
)

// Search filters entries by a case-insensitive substring of the name and regroups the
// visible ones by category, keeping the order in which categories first appear.
// An empty query shows everything; a non-empty query with no match yields an empty view.
func Search(query string, entries []types.ListingEntry) types.ListingView {
	needle := strings.ToLower(strings.TrimSpace(query))
	visible := lo.Filter(entries, func(e types.ListingEntry, _ int) bool {
		return needle == "" || strings.Contains(strings.ToLower(e.Name), needle)
	})

	view := types.ListingView{
		Query:    query,
		Matches:  len(visible),
		Sections: []types.ListingSection{},
	}
	if len(visible) == 0 {
		view.Empty = needle != ""
		return view
	}

	grouped := lo.GroupBy(visible, func(e types.ListingEntry) string {
		return categoryFor(e)
	})
	order := lo.Uniq(lo.Map(visible, func(e types.ListingEntry, _ int) string {
		return categoryFor(e)
	}))
	for _, category := range order {
		view.Sections = append(view.Sections, types.ListingSection{
			Category: category,
			Entries:  grouped[category],
			// a matching section is always expanded
			Collapsed: false,
		})
	}
	return view
}

func categoryFor(e types.ListingEntry) string {
	if e.Category != "" {
		return e.Category
	}
	return CategoryOf(e.Name)
}
