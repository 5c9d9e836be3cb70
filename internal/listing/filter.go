package listing

import (
	"cmp"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/MrSnakeDoc/banho/internal/content"
)

// AllCategories is the sentinel category id that disables filtering.
const AllCategories = "all"

// FilterByCategory keeps items whose category, or one of whose categories,
// matches categoryID. Ids are compared by slug so "Forró" matches "forro".
// An empty id or "all" returns items unchanged.
func FilterByCategory(items []content.Entity, categoryID string) []content.Entity {
	if categoryID == "" || categoryID == AllCategories {
		return items
	}
	want := content.Slug(categoryID)
	out := make([]content.Entity, 0, len(items))
	for _, it := range items {
		if matchesCategory(it, want) {
			out = append(out, it)
		}
	}
	return out
}

func matchesCategory(e content.Entity, slug string) bool {
	if e.Category != "" && content.Slug(e.Category) == slug {
		return true
	}
	return slices.ContainsFunc(e.Categories, func(c string) bool {
		return content.Slug(c) == slug
	})
}

var dayLayouts = []string{
	time.DateOnly,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"02/01/2006",
}

// ParseDay reads the calendar day of a date string as written, ignoring any
// zone conversion: "2024-06-23T23:30:00-03:00" is June 23rd.
func ParseDay(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range dayLayouts {
		t, err := time.Parse(layout, s)
		if err != nil {
			continue
		}
		y, m, d := t.Date()
		return time.Date(y, m, d, 0, 0, 0, 0, time.UTC), true
	}
	return time.Time{}, false
}

// FilterByDate keeps events falling on the same calendar day as day, then
// removes duplicates sharing id and title. Events with unparseable dates are
// dropped.
func FilterByDate(events []content.Entity, day time.Time) []content.Entity {
	y, m, d := day.Date()
	out := make([]content.Entity, 0, len(events))
	for _, ev := range events {
		t, ok := ParseDay(ev.Date)
		if !ok {
			continue
		}
		ey, em, ed := t.Date()
		if ey == y && em == m && ed == d {
			out = append(out, ev)
		}
	}
	return DedupeEvents(out)
}

// SortBy orders a copy of items by field ("id", "date", "title" or any
// attribute). Values that both parse as numbers compare numerically.
// order "desc" reverses the result. The sort is stable.
func SortBy(items []content.Entity, field, order string) []content.Entity {
	out := slices.Clone(items)
	if field == "" {
		return out
	}
	desc := strings.EqualFold(order, "desc")
	slices.SortStableFunc(out, func(a, b content.Entity) int {
		c := compareValues(sortValue(a, field), sortValue(b, field))
		if desc {
			return -c
		}
		return c
	})
	return out
}

func sortValue(e content.Entity, field string) string {
	switch field {
	case "id":
		return e.ID
	case "date":
		return e.Date
	case "category":
		return e.Category
	}
	if v := e.Fields[field]; v != "" {
		return v
	}
	if v := content.ResolveField(&e, content.DefaultLang, field); v != "" {
		return v
	}
	return e.Attr(field)
}

func compareValues(a, b string) int {
	fa, errA := strconv.ParseFloat(a, 64)
	fb, errB := strconv.ParseFloat(b, 64)
	if errA == nil && errB == nil {
		return cmp.Compare(fa, fb)
	}
	return strings.Compare(a, b)
}
