package handlers

import (
	"net/http"
	"slices"

	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/banho/internal/httpserver/deps"
)

func BibliotecaItems(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page := d.Gateway.FetchBibliotecaItems(r.Context(), listQuery(r))
		success(w, http.StatusOK, pageBody("items", page))
	}
}

func BibliotecaCategories(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cats := d.Gateway.FetchBibliotecaCategories(r.Context(), langOf(r))
		success(w, http.StatusOK, envelope{"categories": cats})
	}
}

func BibliotecaByCategory(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page := d.Gateway.FetchBibliotecaByCategory(r.Context(), chi.URLParam(r, "id"), listQuery(r))
		success(w, http.StatusOK, pageBody("items", page))
	}
}

func GaleriaYears(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		success(w, http.StatusOK, envelope{"years": d.Gateway.FetchGaleriaYears(r.Context())})
	}
}

// GaleriaImages lists one year's photos; without ?year= the latest year is used.
func GaleriaImages(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		year, ok := yearParam(r)
		if !ok {
			years := d.Gateway.FetchGaleriaYears(r.Context())
			if len(years) == 0 {
				success(w, http.StatusOK, envelope{"year": nil, "images": []any{}})
				return
			}
			year = slices.Max(years)
		}
		images := d.Gateway.FetchGaleriaImages(r.Context(), year, langOf(r))
		success(w, http.StatusOK, envelope{"year": year, "images": images})
	}
}

func ProgramacaoEvents(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		eq, ok := eventQuery(r)
		if !ok {
			fail(w, http.StatusBadRequest, "invalid date, expected YYYY-MM-DD", nil)
			return
		}
		events := d.Gateway.GetProgramacaoEvents(r.Context(), eq)
		success(w, http.StatusOK, envelope{"events": events.Events})
	}
}

func ProgramacaoCategories(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cats := d.Gateway.FetchProgramacaoCategories(r.Context(), langOf(r))
		success(w, http.StatusOK, envelope{"categories": cats})
	}
}

func ProgramacaoByCategory(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		events := d.Gateway.FetchProgramacaoByCategory(r.Context(), chi.URLParam(r, "id"), langOf(r))
		success(w, http.StatusOK, envelope{"events": events.Events})
	}
}
