package index

import (
	"sync"
	"time"

	"github.com/MrSnakeDoc/banho/internal/content"
	"github.com/MrSnakeDoc/banho/internal/static"
)

// MemoryIndex serves the static dataset to the gateway. It is swapped as a
// whole on every reload, so readers never see a half-loaded dataset.
type MemoryIndex struct {
	mu           sync.RWMutex
	lists        map[content.Domain][]content.Entity
	byID         map[content.Domain]map[string]int // domain -> id -> position in lists
	galeriaYears []int
	overrides    []string
	lastReload   time.Time
}

// NewMemoryIndex creates an empty index.
func NewMemoryIndex() *MemoryIndex {
	return &MemoryIndex{
		lists: make(map[content.Domain][]content.Entity),
		byID:  make(map[content.Domain]map[string]int),
	}
}

// Replace swaps the indexed dataset.
func (idx *MemoryIndex) Replace(ds *static.Dataset) {
	lists := make(map[content.Domain][]content.Entity, len(ds.Lists))
	byID := make(map[content.Domain]map[string]int, len(ds.Lists))
	for d, items := range ds.Lists {
		lists[d] = items
		ids := make(map[string]int, len(items))
		for i, it := range items {
			if _, dup := ids[it.ID]; !dup {
				ids[it.ID] = i
			}
		}
		byID[d] = ids
	}
	years := ds.GaleriaYears()

	idx.mu.Lock()
	defer idx.mu.Unlock()

	idx.lists = lists
	idx.byID = byID
	idx.galeriaYears = years
	idx.overrides = append([]string(nil), ds.Overrides...)
	idx.lastReload = time.Now()
}

// List returns a copy of a domain's static entities.
func (idx *MemoryIndex) List(d content.Domain) []content.Entity {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	return append([]content.Entity{}, idx.lists[d]...)
}

// Get retrieves a static entity by id.
func (idx *MemoryIndex) Get(d content.Domain, id string) (content.Entity, bool) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	i, ok := idx.byID[d][id]
	if !ok {
		return content.Entity{}, false
	}
	return idx.lists[d][i], true
}

// Contains reports whether id belongs to a domain's static set.
func (idx *MemoryIndex) Contains(d content.Domain, id string) bool {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	_, ok := idx.byID[d][id]
	return ok
}

// GaleriaYears returns the years covered by the static gallery.
func (idx *MemoryIndex) GaleriaYears() []int {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	return append([]int{}, idx.galeriaYears...)
}

// GaleriaImages returns the static gallery images of one year.
func (idx *MemoryIndex) GaleriaImages(year int) []content.Entity {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	out := []content.Entity{}
	for _, img := range idx.lists[content.DomainGaleriaImages] {
		if y, ok := static.ImageYear(img); ok && y == year {
			out = append(out, img)
		}
	}
	return out
}

// Count returns the number of indexed entities.
func (idx *MemoryIndex) Count() int {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	n := 0
	for _, items := range idx.lists {
		n += len(items)
	}
	return n
}

// Overrides returns the seed files in effect since the last reload.
func (idx *MemoryIndex) Overrides() []string {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	return append([]string(nil), idx.overrides...)
}

// LastReload returns when the dataset was last swapped.
func (idx *MemoryIndex) LastReload() time.Time {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return idx.lastReload
}
