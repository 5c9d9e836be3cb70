// Package probe answers "is the upstream content API reachable right now?".
// One Probe is shared by every gateway call: results are cached for a TTL
// and concurrent checks collapse into a single upstream request.
package probe

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/MrSnakeDoc/banho/internal/logger"
	"github.com/MrSnakeDoc/banho/internal/utils"
	"github.com/MrSnakeDoc/banho/internal/version"
)

const (
	DefaultPath    = "/health"
	DefaultTTL     = 30 * time.Second
	DefaultTimeout = 2 * time.Second
)

// Options tunes a Probe. Zero values take the defaults above.
type Options struct {
	Path    string
	TTL     time.Duration
	Timeout time.Duration
	Client  *http.Client

	// OnResult is called after every real check.
	OnResult func(available bool, latency time.Duration)
}

// Status is a snapshot of the last check.
type Status struct {
	Configured bool          `json:"configured"`
	Available  bool          `json:"available"`
	CheckedAt  time.Time     `json:"checked_at"`
	Latency    time.Duration `json:"latency_ns"`
	LastError  string        `json:"last_error,omitempty"`
}

type Probe struct {
	url      string
	client   *http.Client
	ttl      time.Duration
	timeout  time.Duration
	onResult func(bool, time.Duration)
	log      logger.Logger
	now      func() time.Time

	group singleflight.Group

	mu     sync.RWMutex
	status Status
}

// New creates a probe for the API at baseURL. An empty baseURL yields a
// probe that always reports unavailable without doing any I/O.
func New(baseURL string, opts Options, log logger.Logger) *Probe {
	if opts.Path == "" {
		opts.Path = DefaultPath
	}
	if opts.TTL <= 0 {
		opts.TTL = DefaultTTL
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	client := opts.Client
	if client == nil {
		client = &http.Client{
			Timeout: opts.Timeout,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				// Don't follow redirects
				return http.ErrUseLastResponse
			},
		}
	}

	p := &Probe{
		client:   client,
		ttl:      opts.TTL,
		timeout:  opts.Timeout,
		onResult: opts.OnResult,
		log:      log,
		now:      time.Now,
	}
	if baseURL != "" {
		p.url = strings.TrimRight(baseURL, "/") + "/" + strings.TrimLeft(opts.Path, "/")
		p.status.Configured = true
	}
	return p
}

// Available returns the cached answer while it is fresh, otherwise checks.
func (p *Probe) Available(ctx context.Context) bool {
	if p.url == "" {
		return false
	}
	p.mu.RLock()
	st := p.status
	p.mu.RUnlock()

	if !st.CheckedAt.IsZero() && p.now().Sub(st.CheckedAt) < p.ttl {
		return st.Available
	}
	return p.check(ctx)
}

// Refresh checks now, ignoring the cache.
func (p *Probe) Refresh(ctx context.Context) bool {
	if p.url == "" {
		return false
	}
	return p.check(ctx)
}

// Status returns the last recorded check.
func (p *Probe) Status() Status {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.status
}

func (p *Probe) check(ctx context.Context) bool {
	v, _, _ := p.group.Do("probe", func() (any, error) {
		// the shared check must not die with the first caller's request
		checkCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), p.timeout)
		defer cancel()

		start := p.now()
		err := p.ping(checkCtx)
		latency := p.now().Sub(start)
		p.record(err, latency)
		return err == nil, nil
	})
	return v.(bool)
}

func (p *Probe) ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.url, http.NoBody)
	if err != nil {
		return fmt.Errorf("failed to create probe request: %w", err)
	}
	req.Header.Set("User-Agent", version.UserAgent())

	resp, err := p.client.Do(req)
	if err != nil {
		return err
	}
	defer utils.DrainAndClose(resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return nil
}

func (p *Probe) record(err error, latency time.Duration) {
	available := err == nil

	p.mu.Lock()
	was := p.status
	p.status.Available = available
	p.status.CheckedAt = p.now()
	p.status.Latency = latency
	p.status.LastError = ""
	if err != nil {
		p.status.LastError = err.Error()
	}
	p.mu.Unlock()

	switch {
	case !available && (was.Available || was.CheckedAt.IsZero()):
		p.log.Warn("upstream API unavailable",
			logger.String("url", p.url),
			logger.Error(err))
	case available && !was.Available:
		p.log.Info("upstream API available",
			logger.String("url", p.url),
			logger.Duration("latency", latency))
	}

	if p.onResult != nil {
		p.onResult(available, latency)
	}
}
