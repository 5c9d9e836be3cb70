package handlers

import (
	"net/http"

	"github.com/MrSnakeDoc/banho/internal/httpserver/deps"
	"github.com/MrSnakeDoc/banho/internal/logger"
	"github.com/MrSnakeDoc/banho/internal/utils"
)

// Reload triggers a manual reload of the static dataset.
func Reload(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ip := utils.ClientIP(r, d.TrustProxy)
		select {
		case d.ReloadTrigger <- struct{}{}:
			d.Logger.Info("manual dataset reload triggered via endpoint",
				logger.String("remote_ip", ip))
			writeJSON(w, http.StatusAccepted, envelope{"status": "success", "message": "reload triggered"})
		default:
			d.Logger.Warn("dataset reload already in progress",
				logger.String("remote_ip", ip))
			writeJSON(w, http.StatusTooManyRequests, envelope{"status": "error", "message": "reload already in progress, please wait"})
		}
	}
}
