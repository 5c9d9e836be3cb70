// Package static holds the content dataset bundled with the site: the last
// line of fallback when neither the upstream API nor the local store has data.
package static

import (
	"slices"
	"strconv"

	"github.com/MrSnakeDoc/banho/internal/content"
)

// Dataset is one load of every static domain list.
type Dataset struct {
	Lists map[content.Domain][]content.Entity

	// Overrides lists the seed files that replaced embedded domains.
	Overrides []string
}

// Count returns the number of entities across all domains.
func (ds *Dataset) Count() int {
	n := 0
	for _, items := range ds.Lists {
		n += len(items)
	}
	return n
}

// GaleriaYears returns the distinct years of the gallery images, ascending.
func (ds *Dataset) GaleriaYears() []int {
	seen := map[int]struct{}{}
	years := []int{}
	for _, img := range ds.Lists[content.DomainGaleriaImages] {
		y, ok := ImageYear(img)
		if !ok {
			continue
		}
		if _, dup := seen[y]; dup {
			continue
		}
		seen[y] = struct{}{}
		years = append(years, y)
	}
	slices.Sort(years)
	return years
}

// ImageYear reads the "year" attribute of a gallery image, falling back to
// the year of its date.
func ImageYear(img content.Entity) (int, bool) {
	if y, err := strconv.Atoi(img.Attr("year")); err == nil {
		return y, true
	}
	if len(img.Date) >= 4 {
		if y, err := strconv.Atoi(img.Date[:4]); err == nil {
			return y, true
		}
	}
	return 0, false
}
