// Package gateway is the single entry point for content reads and writes.
// Every call decides, on its own, whether to hit the upstream API or fall
// back to the local store and the static dataset. Reads never fail: the
// worst outcome is an empty, well-formed result.
package gateway

import (
	"context"
	"errors"
	"net/url"

	"github.com/MrSnakeDoc/banho/internal/content"
	"github.com/MrSnakeDoc/banho/internal/localstore"
	"github.com/MrSnakeDoc/banho/internal/logger"
	"github.com/MrSnakeDoc/banho/internal/upstream"
)

// Mode selects how strictly the availability probe is honored.
type Mode string

const (
	// ModeDevelopment trusts an "unavailable" probe and goes straight to
	// local data, and simulates writes locally.
	ModeDevelopment Mode = "development"
	// ModeProduction always attempts the upstream API.
	ModeProduction Mode = "production"
)

// Origin tells where a read was served from.
type Origin string

const (
	OriginRemote Origin = "remote"
	OriginLocal  Origin = "local"
	OriginStatic Origin = "static"
	OriginEmpty  Origin = "empty"
)

// Prober reports upstream availability.
type Prober interface {
	Available(ctx context.Context) bool
}

// Remote is the upstream content API.
type Remote interface {
	Get(ctx context.Context, path string, query url.Values) ([]byte, error)
	Send(ctx context.Context, method, path string, payload any) ([]byte, error)
}

// StaticSource serves the bundled dataset.
type StaticSource interface {
	List(d content.Domain) []content.Entity
	Get(d content.Domain, id string) (content.Entity, bool)
	Contains(d content.Domain, id string) bool
	GaleriaYears() []int
	GaleriaImages(year int) []content.Entity
}

// Recorder receives gateway events, typically for metrics.
type Recorder interface {
	Read(domain, origin string)
	Mutation(domain, op, mode, result string)
	UpstreamFailure(domain string)
}

type nopRecorder struct{}

func (nopRecorder) Read(string, string)                     {}
func (nopRecorder) Mutation(string, string, string, string) {}
func (nopRecorder) UpstreamFailure(string)                  {}

// Options carries the gateway's collaborators. Remote, Store and Static may
// be nil: a nil Remote means the site runs without an upstream API.
type Options struct {
	Mode     Mode
	Prober   Prober
	Remote   Remote
	Store    localstore.Store
	Static   StaticSource
	Logger   logger.Logger
	Recorder Recorder
}

type Gateway struct {
	mode     Mode
	prober   Prober
	remote   Remote
	store    localstore.Store
	static   StaticSource
	log      logger.Logger
	recorder Recorder
}

func New(opts Options) *Gateway {
	g := &Gateway{
		mode:     opts.Mode,
		prober:   opts.Prober,
		remote:   opts.Remote,
		store:    opts.Store,
		static:   opts.Static,
		log:      opts.Logger,
		recorder: opts.Recorder,
	}
	if g.mode == "" {
		g.mode = ModeProduction
	}
	if g.static == nil {
		g.static = emptyStatic{}
	}
	if g.log == nil {
		g.log = logger.Nop()
	}
	if g.recorder == nil {
		g.recorder = nopRecorder{}
	}
	return g
}

// Mode returns the configured mode.
func (g *Gateway) Mode() Mode { return g.mode }

func (g *Gateway) dev() bool { return g.mode == ModeDevelopment }

// useRemote decides whether this call should try the upstream API.
// Only development mode trusts an "unavailable" probe.
func (g *Gateway) useRemote(ctx context.Context) bool {
	if g.remote == nil {
		return false
	}
	if g.dev() && g.prober != nil && !g.prober.Available(ctx) {
		return false
	}
	return true
}

// remoteList fetches and decodes a list. ok is false on any failure, which
// is logged and counted but never returned.
func (g *Gateway) remoteList(ctx context.Context, d content.Domain, path string, q url.Values, keys ...string) ([]content.Entity, bool) {
	body, err := g.remote.Get(ctx, path, q)
	if err == nil {
		var items []content.Entity
		items, err = upstream.DecodeList(body, keys...)
		if err == nil {
			return items, true
		}
	}
	g.remoteFailed(d, path, err)
	return nil, false
}

func (g *Gateway) remoteFailed(d content.Domain, path string, err error) {
	g.recorder.UpstreamFailure(string(d))
	g.log.Warn("upstream request failed, using local fallback",
		logger.String("domain", string(d)),
		logger.String("path", path),
		logger.Error(err))
}

// fetchList runs the availability / remote / local sequence for one domain.
// It never consults the static dataset; callers decide how to combine it.
func (g *Gateway) fetchList(ctx context.Context, d content.Domain, path string, q url.Values, keys ...string) ([]content.Entity, Origin) {
	if g.useRemote(ctx) {
		if items, ok := g.remoteList(ctx, d, path, q, keys...); ok {
			return items, OriginRemote
		}
	}
	return g.localList(ctx, d.StorageKey()), OriginLocal
}

// localList reads a saved list. Missing or corrupt data reads as empty.
func (g *Gateway) localList(ctx context.Context, key string) []content.Entity {
	items, err := localstore.ReadList(ctx, g.store, key)
	if err != nil {
		g.logLocalError(key, err)
	}
	return items
}

func (g *Gateway) logLocalError(key string, err error) {
	var malformed *content.MalformedLocalDataError
	if errors.As(err, &malformed) {
		g.log.Warn("discarding malformed local data",
			logger.String("key", key),
			logger.Error(err))
		return
	}
	g.log.Error("local store read failed",
		logger.String("key", key),
		logger.Error(err))
}

// withStaticFallback returns the static list when a local read came back empty.
func (g *Gateway) withStaticFallback(d content.Domain, items []content.Entity, origin Origin) ([]content.Entity, Origin) {
	if origin == OriginLocal && len(items) == 0 {
		items = g.static.List(d)
		origin = OriginStatic
	}
	if len(items) == 0 {
		origin = OriginEmpty
	}
	return items, origin
}

func (g *Gateway) recordRead(d content.Domain, origin Origin) {
	g.recorder.Read(string(d), string(origin))
}

type emptyStatic struct{}

func (emptyStatic) List(content.Domain) []content.Entity              { return []content.Entity{} }
func (emptyStatic) Get(content.Domain, string) (content.Entity, bool) { return content.Entity{}, false }
func (emptyStatic) Contains(content.Domain, string) bool              { return false }
func (emptyStatic) GaleriaYears() []int                               { return []int{} }
func (emptyStatic) GaleriaImages(int) []content.Entity                { return []content.Entity{} }
