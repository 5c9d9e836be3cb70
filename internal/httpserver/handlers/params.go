package handlers

import (
	"net/http"
	"strconv"

	"github.com/MrSnakeDoc/banho/internal/content"
	"github.com/MrSnakeDoc/banho/internal/gateway"
	"github.com/MrSnakeDoc/banho/internal/listing"
)

// langOf reads ?lang=, falling back to Accept-Language, then pt.
func langOf(r *http.Request) content.Lang {
	if v := r.URL.Query().Get("lang"); v != "" {
		return content.NormalizeLang(v)
	}
	if v := r.Header.Get("Accept-Language"); v != "" {
		if l := content.NormalizeLang(firstTag(v)); content.IsSupported(l) {
			return l
		}
	}
	return content.DefaultLang
}

func firstTag(acceptLanguage string) string {
	for i, c := range acceptLanguage {
		if c == ',' || c == ';' {
			return acceptLanguage[:i]
		}
	}
	return acceptLanguage
}

// intParam returns the query value as an int, or 0 when absent or invalid.
// Both page/limit and _page/_limit spellings are accepted.
func intParam(r *http.Request, names ...string) int {
	q := r.URL.Query()
	for _, name := range names {
		if n, err := strconv.Atoi(q.Get(name)); err == nil {
			return n
		}
	}
	return 0
}

func firstParam(r *http.Request, names ...string) string {
	q := r.URL.Query()
	for _, name := range names {
		if v := q.Get(name); v != "" {
			return v
		}
	}
	return ""
}

func listQuery(r *http.Request) gateway.Query {
	return gateway.Query{
		Lang:     langOf(r),
		Page:     intParam(r, "page", "_page"),
		Limit:    intParam(r, "limit", "_limit"),
		Category: firstParam(r, "category", "categoria"),
		Sort:     firstParam(r, "_sort", "sort"),
		Order:    firstParam(r, "_order", "order"),
	}
}

// eventQuery reads ?date= and ?category=. ok is false for an unreadable date.
func eventQuery(r *http.Request) (gateway.EventQuery, bool) {
	eq := gateway.EventQuery{
		Lang:     langOf(r),
		Category: firstParam(r, "category", "categoria"),
	}
	if v := firstParam(r, "date", "data"); v != "" {
		day, ok := listing.ParseDay(v)
		if !ok {
			return eq, false
		}
		eq.Date = &day
	}
	return eq, true
}

func yearParam(r *http.Request) (int, bool) {
	y := intParam(r, "year", "ano")
	return y, y > 0
}
