package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/MrSnakeDoc/banho/internal/httpserver/deps"
)

type componentStatus struct {
	OK             bool   `json:"ok"`
	EntitiesLoaded *int   `json:"entities_loaded,omitempty"`
	Overrides      int    `json:"overrides,omitempty"`
	LastReload     string `json:"last_reload,omitempty"`
	LastCheck      string `json:"last_check,omitempty"`
	Mode           string `json:"mode,omitempty"`
	Impact         string `json:"impact,omitempty"`
	Error          string `json:"error,omitempty"`
}

type infraResponse struct {
	ServingMode string                     `json:"serving_mode"`
	GatewayMode string                     `json:"gateway_mode"`
	Components  map[string]componentStatus `json:"components"`
}

// Serving modes, from best to worst.
const (
	modeOnline     = "online"      // upstream API reachable
	modeDegraded   = "degraded"    // upstream down, local store and dataset serving
	modeStaticOnly = "static-only" // only the bundled dataset is left
)

func Infra(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		components := map[string]componentStatus{
			"dataset":  datasetStatus(d),
			"store":    checkStore(r.Context(), d),
			"upstream": upstreamStatus(d),
		}

		gwMode := "unknown"
		if d.Gateway != nil {
			gwMode = string(d.Gateway.Mode())
		}
		writeJSON(w, http.StatusOK, infraResponse{
			ServingMode: determineServingMode(components),
			GatewayMode: gwMode,
			Components:  components,
		})
	}
}

func determineServingMode(components map[string]componentStatus) string {
	if components["upstream"].OK {
		return modeOnline
	}
	if components["store"].OK {
		return modeDegraded
	}
	return modeStaticOnly
}

func datasetStatus(d deps.Deps) componentStatus {
	if d.MemoryIndex == nil {
		return componentStatus{OK: false, Error: "dataset not initialized"}
	}
	count := d.MemoryIndex.Count()
	lastReload := d.MemoryIndex.LastReload()
	lastReloadStr := "never"
	if !lastReload.IsZero() {
		lastReloadStr = lastReload.Format(time.RFC3339)
	}
	return componentStatus{
		OK:             count > 0,
		EntitiesLoaded: &count,
		Overrides:      len(d.MemoryIndex.Overrides()),
		LastReload:     lastReloadStr,
	}
}

func upstreamStatus(d deps.Deps) componentStatus {
	if d.Probe == nil {
		return componentStatus{OK: false, Mode: "disabled", Impact: "serving local and static content"}
	}
	st := d.Probe.Status()
	if !st.Configured {
		return componentStatus{OK: false, Mode: "disabled", Impact: "serving local and static content"}
	}
	cs := componentStatus{OK: st.Available, Mode: "available"}
	if !st.CheckedAt.IsZero() {
		cs.LastCheck = st.CheckedAt.Format(time.RFC3339)
	}
	if !st.Available {
		cs.Mode = "unavailable"
		cs.Impact = "serving local and static content"
		cs.Error = st.LastError
	}
	return cs
}

func checkStore(parent context.Context, d deps.Deps) componentStatus {
	if d.Store == nil {
		return componentStatus{OK: false, Error: "store not initialized"}
	}

	ctx, cancel := context.WithTimeout(parent, 2*time.Second)
	defer cancel()

	if err := d.Store.Ping(ctx); err != nil {
		return componentStatus{
			OK:     false,
			Mode:   d.StoreBackend,
			Impact: "local saves disabled",
			Error:  "timeout",
		}
	}
	return componentStatus{OK: true, Mode: d.StoreBackend}
}
