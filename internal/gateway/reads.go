package gateway

import (
	"context"
	"net/url"
	"slices"

	"github.com/MrSnakeDoc/banho/internal/content"
	"github.com/MrSnakeDoc/banho/internal/listing"
	"github.com/MrSnakeDoc/banho/internal/upstream"
)

// mergedPage is the read sequence shared by stories, testimonials, postcards
// and communities: fetch the dynamic list, put the static entries in front,
// then filter, sort, paginate and resolve. A sort reorders the static and
// dynamic parts separately, so static entries stay on the first page.
func (g *Gateway) mergedPage(ctx context.Context, d content.Domain, path string, rq url.Values, q Query, keys ...string) listing.Page {
	dynamic, origin := g.fetchList(ctx, d, path, rq, keys...)
	static := g.static.List(d)
	if len(dynamic) == 0 && len(static) > 0 && origin == OriginLocal {
		origin = OriginStatic
	}

	items := listing.MergeStaticFirst(static, dynamic)
	if len(items) == 0 {
		origin = OriginEmpty
	}
	// the static entries lead the merged list; sorting stays within each part
	n := len(listing.MergeStaticFirst(static, nil))
	head := listing.FilterByCategory(items[:n], q.Category)
	tail := listing.FilterByCategory(items[n:], q.Category)
	if q.Sort != "" {
		head = listing.SortBy(head, q.Sort, q.Order)
		tail = listing.SortBy(tail, q.Sort, q.Order)
	}
	items = slices.Concat(head, tail)

	page := listing.Paginate(items, q.Page, q.Limit)
	page.Items = content.ResolveAll(page.Items, q.Lang)
	g.recordRead(d, origin)
	return page
}

// resolvedList reads a non-merged collection: remote, then local, then static.
func (g *Gateway) resolvedList(ctx context.Context, d content.Domain, path string, lang content.Lang, keys ...string) []content.Entity {
	items, origin := g.fetchList(ctx, d, path, langValues(lang), keys...)
	items, origin = g.withStaticFallback(d, items, origin)
	g.recordRead(d, origin)
	return content.ResolveAll(items, normLang(lang))
}

func normLang(lang content.Lang) content.Lang {
	if lang == "" {
		return content.DefaultLang
	}
	return lang
}

// FetchStories returns one page of stories, static ones first.
func (g *Gateway) FetchStories(ctx context.Context, q Query) listing.Page {
	q = q.withDefaults(DefaultStoriesLimit)
	return g.mergedPage(ctx, content.DomainStories, "/stories", langValues(q.Lang), q, "stories")
}

// GetStory looks a story up by id. Bundled stories are answered without a
// network call.
func (g *Gateway) GetStory(ctx context.Context, id string, lang content.Lang) (content.Entity, bool) {
	lang = normLang(lang)
	d := content.DomainStories
	if id == "" {
		return content.Entity{}, false
	}
	if e, ok := g.static.Get(d, id); ok {
		g.recordRead(d, OriginStatic)
		return content.ResolveEntity(e, lang), true
	}

	if g.useRemote(ctx) {
		path := "/stories/" + url.PathEscape(id)
		body, err := g.remote.Get(ctx, path, langValues(lang))
		if err == nil {
			var e content.Entity
			if e, err = upstream.DecodeEntity(body, "story", "item", "data"); err == nil && e.ID != "" {
				if e.Source == "" {
					e.Source = content.SourceAPI
				}
				g.recordRead(d, OriginRemote)
				return content.ResolveEntity(e, lang), true
			}
		}
		if err != nil {
			g.remoteFailed(d, path, err)
		}
	}

	for _, e := range g.localList(ctx, d.StorageKey()) {
		if e.ID == id {
			g.recordRead(d, OriginLocal)
			return content.ResolveEntity(e, lang), true
		}
	}
	g.recordRead(d, OriginEmpty)
	return content.Entity{}, false
}

// FetchTestimonials returns one page of testimonials, static ones first.
func (g *Gateway) FetchTestimonials(ctx context.Context, q Query) listing.Page {
	q = q.withDefaults(DefaultTestimonialsLimit)
	return g.mergedPage(ctx, content.DomainTestimonials, "/testimonials", nil, q, "testimonials")
}

func (g *Gateway) FetchTestimonialCategories(ctx context.Context, lang content.Lang) []content.Entity {
	return g.resolvedList(ctx, content.DomainTestimonialCategories, "/testimonials/categories", lang, "categories")
}

// FetchPostcards returns one page of postcards. Sort and Order are forwarded
// upstream and also applied locally, since the merged list is paged here.
func (g *Gateway) FetchPostcards(ctx context.Context, q Query) listing.Page {
	q = q.withDefaults(DefaultPostcardsLimit)
	rq := langValues(q.Lang)
	if q.Sort != "" {
		rq.Set("_sort", q.Sort)
		if q.Order != "" {
			rq.Set("_order", q.Order)
		}
	}
	return g.mergedPage(ctx, content.DomainPostcards, "/postcards", rq, q, "postcards")
}

func (g *Gateway) FetchPostcardCategories(ctx context.Context, lang content.Lang) []content.Entity {
	return g.resolvedList(ctx, content.DomainPostcardCategories, "/postcards/categories", lang, "categories")
}

// FetchBasePostcards returns the blank templates a visitor can write on.
func (g *Gateway) FetchBasePostcards(ctx context.Context, lang content.Lang) []content.Entity {
	return g.resolvedList(ctx, content.DomainPostcardsBase, "/postcards/base", lang, "postcards", "base")
}

// FetchBibliotecaItems returns one page of the library.
func (g *Gateway) FetchBibliotecaItems(ctx context.Context, q Query) listing.Page {
	q = q.withDefaults(DefaultBibliotecaLimit)
	d := content.DomainBibliotecaItems
	items, origin := g.fetchList(ctx, d, "/biblioteca", langValues(q.Lang), "items", "biblioteca")
	items, origin = g.withStaticFallback(d, items, origin)
	return g.pageOf(d, items, origin, q)
}

func (g *Gateway) FetchBibliotecaCategories(ctx context.Context, lang content.Lang) []content.Entity {
	return g.resolvedList(ctx, content.DomainBibliotecaCategories, "/biblioteca/categorias", lang, "categorias", "categories")
}

// FetchBibliotecaByCategory asks upstream for one category. Offline, the
// saved (or bundled) library is filtered instead.
func (g *Gateway) FetchBibliotecaByCategory(ctx context.Context, categoryID string, q Query) listing.Page {
	q = q.withDefaults(DefaultBibliotecaLimit)
	d := content.DomainBibliotecaItems
	if g.useRemote(ctx) {
		path := "/biblioteca/categoria/" + url.PathEscape(categoryID)
		if items, ok := g.remoteList(ctx, d, path, langValues(q.Lang), "items", "biblioteca"); ok {
			q.Category = ""
			return g.pageOf(d, items, OriginRemote, q)
		}
	}
	items, origin := g.withStaticFallback(d, g.localList(ctx, d.StorageKey()), OriginLocal)
	q.Category = categoryID
	return g.pageOf(d, items, origin, q)
}

func (g *Gateway) pageOf(d content.Domain, items []content.Entity, origin Origin, q Query) listing.Page {
	if len(items) == 0 {
		origin = OriginEmpty
	}
	items = listing.FilterByCategory(items, q.Category)
	page := listing.Paginate(items, q.Page, q.Limit)
	page.Items = content.ResolveAll(page.Items, q.Lang)
	g.recordRead(d, origin)
	return page
}

// FetchCommunities returns one page of communities, static ones first.
func (g *Gateway) FetchCommunities(ctx context.Context, q Query) listing.Page {
	q = q.withDefaults(DefaultCommunitiesLimit)
	return g.mergedPage(ctx, content.DomainCommunities, "/communities", langValues(q.Lang), q, "communities")
}
