package listing

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrSnakeDoc/banho/internal/content"
)

func makeItems(n int) []content.Entity {
	items := make([]content.Entity, n)
	for i := range items {
		items[i] = content.Entity{ID: strconv.Itoa(i + 1)}
	}
	return items
}

func ids(items []content.Entity) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.ID
	}
	return out
}

func TestPaginate_EmptyList(t *testing.T) {
	got := Paginate(nil, 1, 6)
	require.NotNil(t, got.Items)
	assert.Empty(t, got.Items)
	assert.Equal(t, Pagination{Total: 0, Page: 1, Limit: 6, TotalPages: 0}, got.Pagination)
}

func TestPaginate(t *testing.T) {
	items := makeItems(14)

	tests := []struct {
		name      string
		page      int
		limit     int
		wantIDs   []string
		wantPages int
	}{
		{"first page", 1, 6, []string{"1", "2", "3", "4", "5", "6"}, 3},
		{"last partial page", 3, 6, []string{"13", "14"}, 3},
		{"past the end", 4, 6, []string{}, 3},
		{"page below one is clamped", 0, 6, []string{"1", "2", "3", "4", "5", "6"}, 3},
		{"limit below one is clamped", 2, 0, []string{"2"}, 14},
		{"single page", 1, 20, ids(items), 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Paginate(items, tt.page, tt.limit)
			assert.Equal(t, tt.wantIDs, ids(got.Items))
			assert.Equal(t, 14, got.Pagination.Total)
			assert.Equal(t, tt.wantPages, got.Pagination.TotalPages)
			assert.LessOrEqual(t, len(got.Items), got.Pagination.Limit)
		})
	}
}

func TestPaginate_PagesCoverEveryItemOnce(t *testing.T) {
	for _, n := range []int{0, 1, 5, 6, 7, 18, 19} {
		for _, limit := range []int{1, 6, 15} {
			items := makeItems(n)
			first := Paginate(items, 1, limit)
			var seen []string
			for p := 1; p <= first.Pagination.TotalPages; p++ {
				seen = append(seen, ids(Paginate(items, p, limit).Items)...)
			}
			if n == 0 {
				assert.Empty(t, seen)
				continue
			}
			assert.Equal(t, ids(items), seen, "n=%d limit=%d", n, limit)
		}
	}
}

func TestPaginate_DoesNotAliasInput(t *testing.T) {
	items := makeItems(3)
	got := Paginate(items, 1, 2)
	got.Items[0].ID = "changed"
	assert.Equal(t, "1", items[0].ID)
}

func TestPagination_Navigation(t *testing.T) {
	p := NewPagination(10, 2, 3)
	assert.True(t, p.HasPrev())
	assert.True(t, p.HasNext())
	assert.Equal(t, 3, p.Offset())

	empty := NewPagination(0, 1, 6)
	assert.False(t, empty.HasNext())
	assert.False(t, empty.HasPrev())
}
