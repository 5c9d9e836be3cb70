package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/banho/internal/content"
	"github.com/MrSnakeDoc/banho/internal/forms"
	"github.com/MrSnakeDoc/banho/internal/httpserver/deps"
	"github.com/MrSnakeDoc/banho/internal/logger"
	"github.com/MrSnakeDoc/banho/internal/render"
)

func Stories(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page := d.Gateway.FetchStories(r.Context(), listQuery(r))
		success(w, http.StatusOK, pageBody("items", page))
	}
}

// Story returns one story. With ?format=html the body is also rendered
// from markdown for the book viewer.
func Story(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		story, ok := d.Gateway.GetStory(r.Context(), chi.URLParam(r, "id"), langOf(r))
		if !ok {
			fail(w, http.StatusNotFound, "story not found", nil)
			return
		}
		body := envelope{"story": story}
		if r.URL.Query().Get("format") == "html" {
			html, err := render.MarkdownHTML(story.Fields["content"])
			if err != nil {
				d.Logger.Warn("story render failed",
					logger.String("id", story.ID),
					logger.Error(err))
			} else {
				body["html"] = html
			}
		}
		success(w, http.StatusOK, body)
	}
}

func CreateStory(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var s forms.Story
		if !decodeBody(w, r, &s) {
			return
		}
		if s.Lang == "" {
			s.Lang = string(langOf(r))
		}
		submit(w, d, &s, "story", http.StatusCreated, func(v *forms.Story) (content.Entity, error) {
			return d.Gateway.CreateStory(r.Context(), v)
		})
	}
}

func UpdateStory(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var s forms.Story
		if !decodeBody(w, r, &s) {
			return
		}
		if s.Lang == "" {
			s.Lang = string(langOf(r))
		}
		id := chi.URLParam(r, "id")
		submit(w, d, &s, "story", http.StatusOK, func(v *forms.Story) (content.Entity, error) {
			return d.Gateway.UpdateStory(r.Context(), id, v)
		})
	}
}

func DeleteStory(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := d.Gateway.DeleteStory(r.Context(), chi.URLParam(r, "id")); err != nil {
			writeError(w, d.Logger, err)
			return
		}
		success(w, http.StatusOK, envelope{"message": "story deleted"})
	}
}

func Testimonials(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page := d.Gateway.FetchTestimonials(r.Context(), listQuery(r))
		success(w, http.StatusOK, pageBody("items", page))
	}
}

func TestimonialCategories(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cats := d.Gateway.FetchTestimonialCategories(r.Context(), langOf(r))
		success(w, http.StatusOK, envelope{"categories": cats})
	}
}

func CreateTestimonial(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var t forms.Testimonial
		if !decodeBody(w, r, &t) {
			return
		}
		if t.Lang == "" {
			t.Lang = string(langOf(r))
		}
		submit(w, d, &t, "testimonial", http.StatusCreated, func(v *forms.Testimonial) (content.Entity, error) {
			return d.Gateway.CreateTestimonial(r.Context(), v)
		})
	}
}

func Postcards(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page := d.Gateway.FetchPostcards(r.Context(), listQuery(r))
		success(w, http.StatusOK, pageBody("postcards", page))
	}
}

func PostcardCategories(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cats := d.Gateway.FetchPostcardCategories(r.Context(), langOf(r))
		success(w, http.StatusOK, envelope{"categories": cats})
	}
}

func BasePostcards(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		bases := d.Gateway.FetchBasePostcards(r.Context(), langOf(r))
		success(w, http.StatusOK, envelope{"postcards": bases})
	}
}

func CreatePostcard(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var p forms.Postcard
		if !decodeBody(w, r, &p) {
			return
		}
		if p.Lang == "" {
			p.Lang = string(langOf(r))
		}
		submit(w, d, &p, "postcard", http.StatusCreated, func(v *forms.Postcard) (content.Entity, error) {
			return d.Gateway.CreatePostcard(r.Context(), v)
		})
	}
}

func Communities(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page := d.Gateway.FetchCommunities(r.Context(), listQuery(r))
		success(w, http.StatusOK, pageBody("items", page))
	}
}

func CreateCommunity(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var c forms.Community
		if !decodeBody(w, r, &c) {
			return
		}
		if c.Lang == "" {
			c.Lang = string(langOf(r))
		}
		submit(w, d, &c, "community", http.StatusCreated, func(v *forms.Community) (content.Entity, error) {
			return d.Gateway.CreateCommunity(r.Context(), v)
		})
	}
}

func UpdateCommunity(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var c forms.Community
		if !decodeBody(w, r, &c) {
			return
		}
		if c.Lang == "" {
			c.Lang = string(langOf(r))
		}
		id := chi.URLParam(r, "id")
		submit(w, d, &c, "community", http.StatusOK, func(v *forms.Community) (content.Entity, error) {
			return d.Gateway.UpdateCommunity(r.Context(), id, v)
		})
	}
}

func DeleteCommunity(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := d.Gateway.DeleteCommunity(r.Context(), chi.URLParam(r, "id")); err != nil {
			writeError(w, d.Logger, err)
			return
		}
		success(w, http.StatusOK, envelope{"message": "community deleted"})
	}
}

// submit runs one visitor form through a draft and writes the outcome.
// Field errors come back under "errors" with a 422.
func submit[T forms.Submission](w http.ResponseWriter, d deps.Deps, v T, key string, status int, save func(T) (content.Entity, error)) {
	draft := forms.NewDraft(v)
	if err := draft.Submit(save); err != nil {
		d.Logger.Debug("submission rejected",
			logger.String("form", key),
			logger.String("status", string(draft.Status)),
			logger.Int("field_errors", len(draft.Errors)))
		writeError(w, d.Logger, err)
		return
	}
	success(w, status, envelope{key: draft.Saved})
}
