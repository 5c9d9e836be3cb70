package gateway

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"net/http"
	"net/url"

	"github.com/MrSnakeDoc/banho/internal/content"
	"github.com/MrSnakeDoc/banho/internal/forms"
	"github.com/MrSnakeDoc/banho/internal/localstore"
	"github.com/MrSnakeDoc/banho/internal/logger"
	"github.com/MrSnakeDoc/banho/internal/upstream"
)

type op string

const (
	opCreate op = "create"
	opUpdate op = "update"
	opDelete op = "delete"
)

const (
	modeRemote = "remote"
	modeLocal  = "local"
)

// mutation is one write against a domain collection.
type mutation struct {
	domain content.Domain
	op     op
	path   string // collection path, e.g. /stories
	id     string
	entity content.Entity
}

func (m mutation) method() string {
	switch m.op {
	case opUpdate:
		return http.MethodPut
	case opDelete:
		return http.MethodDelete
	default:
		return http.MethodPost
	}
}

func (m mutation) target() string {
	if m.id == "" {
		return m.path
	}
	return m.path + "/" + url.PathEscape(m.id)
}

// CreateStory validates and saves a new story.
func (g *Gateway) CreateStory(ctx context.Context, s *forms.Story) (content.Entity, error) {
	return g.create(ctx, content.DomainStories, "/stories", s)
}

// UpdateStory applies a partial update. Bundled stories are read-only.
func (g *Gateway) UpdateStory(ctx context.Context, id string, s *forms.Story) (content.Entity, error) {
	return g.update(ctx, content.DomainStories, "/stories", id, s)
}

func (g *Gateway) DeleteStory(ctx context.Context, id string) error {
	return g.delete(ctx, content.DomainStories, "/stories", id)
}

func (g *Gateway) CreateCommunity(ctx context.Context, c *forms.Community) (content.Entity, error) {
	return g.create(ctx, content.DomainCommunities, "/communities", c)
}

func (g *Gateway) UpdateCommunity(ctx context.Context, id string, c *forms.Community) (content.Entity, error) {
	return g.update(ctx, content.DomainCommunities, "/communities", id, c)
}

func (g *Gateway) DeleteCommunity(ctx context.Context, id string) error {
	return g.delete(ctx, content.DomainCommunities, "/communities", id)
}

func (g *Gateway) CreateTestimonial(ctx context.Context, t *forms.Testimonial) (content.Entity, error) {
	return g.create(ctx, content.DomainTestimonials, "/testimonials", t)
}

func (g *Gateway) CreatePostcard(ctx context.Context, p *forms.Postcard) (content.Entity, error) {
	return g.create(ctx, content.DomainPostcards, "/postcards", p)
}

func (g *Gateway) create(ctx context.Context, d content.Domain, path string, sub forms.Submission) (content.Entity, error) {
	e, err := sub.Prepare(false)
	if err != nil {
		g.recorder.Mutation(string(d), string(opCreate), "none", "invalid")
		return content.Entity{}, err
	}
	return g.mutate(ctx, mutation{domain: d, op: opCreate, path: path, entity: e})
}

func (g *Gateway) update(ctx context.Context, d content.Domain, path, id string, sub forms.Submission) (content.Entity, error) {
	e, err := sub.Prepare(true)
	if err != nil {
		g.recorder.Mutation(string(d), string(opUpdate), "none", "invalid")
		return content.Entity{}, err
	}
	if err := g.guardMutable(d, opUpdate, id); err != nil {
		return content.Entity{}, err
	}
	return g.mutate(ctx, mutation{domain: d, op: opUpdate, path: path, id: id, entity: e})
}

func (g *Gateway) delete(ctx context.Context, d content.Domain, path, id string) error {
	if err := g.guardMutable(d, opDelete, id); err != nil {
		return err
	}
	_, err := g.mutate(ctx, mutation{domain: d, op: opDelete, path: path, id: id})
	return err
}

// guardMutable rejects writes aimed at bundled content before anything
// leaves the process.
func (g *Gateway) guardMutable(d content.Domain, o op, id string) error {
	if id == "" {
		g.recorder.Mutation(string(d), string(o), "none", "not_found")
		return content.ErrNotFound
	}
	if g.static.Contains(d, id) {
		g.recorder.Mutation(string(d), string(o), "none", "immutable")
		return content.ErrImmutableContent
	}
	return nil
}

// localMode reports whether writes are simulated in the local store.
func (g *Gateway) localMode(ctx context.Context) bool {
	if g.remote == nil {
		return true
	}
	return g.dev() && g.prober != nil && !g.prober.Available(ctx)
}

func (g *Gateway) mutate(ctx context.Context, m mutation) (content.Entity, error) {
	if g.localMode(ctx) {
		return g.finish(m, modeLocal)(g.mutateLocal(ctx, m))
	}

	out, err := g.mutateRemote(ctx, m)
	if err == nil {
		return g.finish(m, modeRemote)(out, nil)
	}
	g.remoteFailed(m.domain, m.target(), err)
	if g.dev() {
		g.log.Info("simulating write locally",
			logger.String("domain", string(m.domain)),
			logger.String("op", string(m.op)))
		return g.finish(m, modeLocal)(g.mutateLocal(ctx, m))
	}
	return g.finish(m, modeRemote)(content.Entity{}, fmt.Errorf("%w: %w", content.ErrSaveFailed, err))
}

// finish records the outcome of a mutation.
func (g *Gateway) finish(m mutation, mode string) func(content.Entity, error) (content.Entity, error) {
	return func(e content.Entity, err error) (content.Entity, error) {
		result := "success"
		switch {
		case err == nil:
		case errors.Is(err, content.ErrNotFound):
			result = "not_found"
		case errors.Is(err, content.ErrImmutableContent):
			result = "immutable"
		default:
			result = "failure"
		}
		g.recorder.Mutation(string(m.domain), string(m.op), mode, result)
		return e, err
	}
}

func (g *Gateway) mutateRemote(ctx context.Context, m mutation) (content.Entity, error) {
	var payload any
	if m.op != opDelete {
		payload = m.entity
	}
	body, err := g.remote.Send(ctx, m.method(), m.target(), payload)
	if err != nil {
		return content.Entity{}, err
	}
	if m.op == opDelete {
		return content.Entity{}, nil
	}

	out := m.entity
	if len(body) > 0 {
		if decoded, err := upstream.DecodeEntity(body, m.domain.IDPrefix(), "item", "data"); err == nil && decoded.ID != "" {
			out = decoded
		}
	}
	if out.ID == "" {
		out.ID = m.id
	}
	out.Source = content.SourceAPI
	return out, nil
}

// mutateLocal applies m to the domain's saved list. The read-modify-write
// is not atomic: concurrent writers race and the last one wins.
func (g *Gateway) mutateLocal(ctx context.Context, m mutation) (content.Entity, error) {
	if g.store == nil {
		return content.Entity{}, content.ErrSaveFailed
	}
	key := m.domain.StorageKey()
	items, err := localstore.ReadList(ctx, g.store, key)
	if err != nil {
		g.logLocalError(key, err)
		// a corrupt list is replaced, an unreachable store is not
		var malformed *content.MalformedLocalDataError
		if !errors.As(err, &malformed) {
			return content.Entity{}, fmt.Errorf("%w: %w", content.ErrSaveFailed, err)
		}
	}

	var out content.Entity
	switch m.op {
	case opCreate:
		out = m.entity.Clone()
		out.ID = content.NewID(m.domain.IDPrefix())
		out.Source = content.SourceLocal
		items = append(items, out)
	case opUpdate, opDelete:
		i := indexOf(items, m.id)
		if i < 0 {
			return content.Entity{}, content.ErrNotFound
		}
		if items[i].Source == content.SourceStatic {
			return content.Entity{}, content.ErrImmutableContent
		}
		if m.op == opDelete {
			items = append(items[:i], items[i+1:]...)
			break
		}
		out = mergeEntity(items[i], m.entity)
		out.Source = content.SourceLocal
		items[i] = out
	}

	if err := localstore.WriteList(ctx, g.store, key, items); err != nil {
		g.log.Error("local store write failed", logger.String("key", key), logger.Error(err))
		return content.Entity{}, fmt.Errorf("%w: %w", content.ErrSaveFailed, err)
	}
	return out, nil
}

func indexOf(items []content.Entity, id string) int {
	for i := range items {
		if items[i].ID == id {
			return i
		}
	}
	return -1
}

// mergeEntity overlays the non-empty parts of patch on base.
func mergeEntity(base, patch content.Entity) content.Entity {
	out := base.Clone()
	if out.Translations == nil {
		out.Translations = map[content.Lang]content.Translation{}
	}
	for lang, tr := range patch.Translations {
		if out.Translations[lang] == nil {
			out.Translations[lang] = content.Translation{}
		}
		maps.Copy(out.Translations[lang], tr)
	}
	if len(patch.Fields) > 0 {
		if out.Fields == nil {
			out.Fields = content.Translation{}
		}
		maps.Copy(out.Fields, patch.Fields)
	}
	if len(patch.Attrs) > 0 {
		if out.Attrs == nil {
			out.Attrs = map[string]any{}
		}
		maps.Copy(out.Attrs, patch.Attrs)
	}
	if patch.Category != "" {
		out.Category = patch.Category
	}
	if len(patch.Categories) > 0 {
		out.Categories = append([]string(nil), patch.Categories...)
	}
	if patch.Date != "" {
		out.Date = patch.Date
	}
	return out
}
