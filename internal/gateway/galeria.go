package gateway

import (
	"context"
	"strconv"

	"github.com/MrSnakeDoc/banho/internal/content"
	"github.com/MrSnakeDoc/banho/internal/localstore"
	"github.com/MrSnakeDoc/banho/internal/upstream"
)

const galeriaYearsDomain content.Domain = "galeria_years"

// FetchGaleriaYears lists the years that have photos.
func (g *Gateway) FetchGaleriaYears(ctx context.Context) []int {
	d := galeriaYearsDomain
	if g.useRemote(ctx) {
		const path = "/galeria/years"
		body, err := g.remote.Get(ctx, path, nil)
		if err == nil {
			var years []int
			if years, err = upstream.DecodeInts(body, "years"); err == nil {
				g.recordRead(d, OriginRemote)
				return years
			}
		}
		g.remoteFailed(d, path, err)
	}

	var years []int
	found, err := localstore.ReadJSON(ctx, g.store, localstore.GaleriaYearsKey, &years)
	if err != nil {
		g.logLocalError(localstore.GaleriaYearsKey, err)
	}
	if found && err == nil && len(years) > 0 {
		g.recordRead(d, OriginLocal)
		return years
	}

	years = g.static.GaleriaYears()
	if len(years) == 0 {
		g.recordRead(d, OriginEmpty)
		return []int{}
	}
	g.recordRead(d, OriginStatic)
	return years
}

// FetchGaleriaImages lists one year's photos.
func (g *Gateway) FetchGaleriaImages(ctx context.Context, year int, lang content.Lang) []content.Entity {
	d := content.DomainGaleriaImages
	lang = normLang(lang)
	if g.useRemote(ctx) {
		q := langValues(lang)
		q.Set("year", strconv.Itoa(year))
		if items, ok := g.remoteList(ctx, d, "/galeria/images", q, "images"); ok {
			g.recordRead(d, originOf(items, OriginRemote))
			return content.ResolveAll(items, lang)
		}
	}

	items := g.localList(ctx, localstore.GaleriaImagesKey(year))
	origin := OriginLocal
	if len(items) == 0 {
		items = g.static.GaleriaImages(year)
		origin = OriginStatic
	}
	g.recordRead(d, originOf(items, origin))
	return content.ResolveAll(items, lang)
}

func originOf(items []content.Entity, origin Origin) Origin {
	if len(items) == 0 {
		return OriginEmpty
	}
	return origin
}
