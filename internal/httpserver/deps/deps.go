package deps

import (
	"time"

	"github.com/MrSnakeDoc/banho/internal/admin"
	"github.com/MrSnakeDoc/banho/internal/gateway"
	"github.com/MrSnakeDoc/banho/internal/index"
	"github.com/MrSnakeDoc/banho/internal/localstore"
	"github.com/MrSnakeDoc/banho/internal/logger"
	"github.com/MrSnakeDoc/banho/internal/probe"
)

// ProbeStatus exposes the last availability check.
type ProbeStatus interface {
	Status() probe.Status
}

type Deps struct {
	Logger       logger.Logger
	StartTime    time.Time
	Version      string
	Commit       string
	BuildDate    string
	GoVersion    string
	TimeNow      func() time.Time // for testing, defaults to time.Now
	AllowedHosts []string         // Host headers allowed on protected routes
	AdminCIDRs   []string         // IPs allowed on /admin, /reload and /infra
	TrustProxy   bool             // true if running behind a trusted reverse proxy
	LockAdmin    bool             // deny admin routes when AdminCIDRs is empty
	CORSOrigins  []string         // SPA origins allowed to call /api
	SubmitRPS    float64          // per-IP submissions per second
	SubmitBurst  int

	Gateway       *gateway.Gateway
	Probe         ProbeStatus
	Store         localstore.Store
	StoreBackend  string
	MemoryIndex   *index.MemoryIndex
	Users         *admin.Service
	ReloadTrigger chan struct{} // manual dataset reload
}

// Now returns the current time through TimeNow when set.
func (d Deps) Now() time.Time {
	if d.TimeNow != nil {
		return d.TimeNow()
	}
	return time.Now()
}
