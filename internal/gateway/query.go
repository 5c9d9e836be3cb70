package gateway

import (
	"net/url"
	"time"

	"github.com/MrSnakeDoc/banho/internal/content"
)

// Default page sizes per listing.
const (
	DefaultStoriesLimit      = 6
	DefaultTestimonialsLimit = 15
	DefaultPostcardsLimit    = 18
	DefaultBibliotecaLimit   = 20
	DefaultCommunitiesLimit  = 6
)

// Query selects one page of a listing.
type Query struct {
	Lang     content.Lang
	Page     int
	Limit    int
	Category string
	Sort     string
	Order    string
}

// withDefaults fills the zero fields. Negative values are treated as unset.
func (q Query) withDefaults(limit int) Query {
	if q.Lang == "" {
		q.Lang = content.DefaultLang
	}
	if q.Page < 1 {
		q.Page = 1
	}
	if q.Limit < 1 {
		q.Limit = limit
	}
	return q
}

// EventQuery filters the festival schedule.
type EventQuery struct {
	Lang     content.Lang
	Date     *time.Time
	Category string
}

// Events is the schedule response.
type Events struct {
	Events []content.Entity `json:"events"`
}

func langValues(lang content.Lang) url.Values {
	if lang == "" {
		lang = content.DefaultLang
	}
	return url.Values{"lang": {string(lang)}}
}
