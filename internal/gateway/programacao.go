package gateway

import (
	"context"
	"net/url"

	"github.com/MrSnakeDoc/banho/internal/content"
	"github.com/MrSnakeDoc/banho/internal/listing"
)

// GetProgramacaoEvents returns the festival schedule: API (or saved) events
// followed by the bundled ones, without duplicates. A date keeps only that
// day's events.
func (g *Gateway) GetProgramacaoEvents(ctx context.Context, eq EventQuery) Events {
	d := content.DomainProgramacaoEvents
	dynamic, origin := g.fetchList(ctx, d, "/programacao/eventos", langValues(eq.Lang), "events", "eventos")
	return g.schedule(d, dynamic, origin, eq)
}

func (g *Gateway) FetchProgramacaoCategories(ctx context.Context, lang content.Lang) []content.Entity {
	return g.resolvedList(ctx, content.DomainProgramacaoCategories, "/programacao/categorias", lang, "categories", "categorias")
}

// FetchProgramacaoByCategory returns one category's events.
func (g *Gateway) FetchProgramacaoByCategory(ctx context.Context, categoryID string, lang content.Lang) Events {
	d := content.DomainProgramacaoEvents
	eq := EventQuery{Lang: lang, Category: categoryID}
	if g.useRemote(ctx) {
		path := "/programacao/categoria/" + url.PathEscape(categoryID)
		if items, ok := g.remoteList(ctx, d, path, langValues(lang), "events", "eventos"); ok {
			// upstream already filtered its own events; only the bundled ones
			// still need the category filter
			static := listing.FilterByCategory(g.static.List(d), categoryID)
			events := listing.DedupeEvents(append(items, static...))
			g.recordRead(d, originOf(events, OriginRemote))
			return Events{Events: content.ResolveAll(events, normLang(lang))}
		}
	}
	return g.schedule(d, g.localList(ctx, d.StorageKey()), OriginLocal, eq)
}

func (g *Gateway) schedule(d content.Domain, dynamic []content.Entity, origin Origin, eq EventQuery) Events {
	static := g.static.List(d)
	if len(dynamic) == 0 && origin == OriginLocal {
		origin = OriginStatic
	}
	events := make([]content.Entity, 0, len(dynamic)+len(static))
	events = append(events, dynamic...)
	events = append(events, static...)

	events = listing.FilterByCategory(events, eq.Category)
	if eq.Date != nil {
		events = listing.FilterByDate(events, *eq.Date)
	} else {
		events = listing.DedupeEvents(events)
	}
	g.recordRead(d, originOf(events, origin))
	return Events{Events: content.ResolveAll(events, normLang(eq.Lang))}
}
