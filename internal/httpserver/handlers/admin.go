package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/banho/internal/admin"
	"github.com/MrSnakeDoc/banho/internal/content"
	"github.com/MrSnakeDoc/banho/internal/httpserver/deps"
	"github.com/MrSnakeDoc/banho/internal/logger"
)

// AdminUserData feeds the user detail modal of the admin panel.
func AdminUserData(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, err := d.Users.Get(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			adminError(w, d.Logger, err)
			return
		}
		success(w, http.StatusOK, envelope{
			"user":        user,
			"permissions": admin.Permissions(user.Role),
		})
	}
}

// AdminUserAction handles activate, deactivate and delete. The panel
// reloads the page on success and shows message either way.
func AdminUserAction(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		id := chi.URLParam(r, "id")
		action := chi.URLParam(r, "action")

		var err error
		var message string
		switch action {
		case "activate":
			_, err = d.Users.Activate(ctx, id)
			message = "user activated"
		case "deactivate":
			_, err = d.Users.Deactivate(ctx, id)
			message = "user deactivated"
		case "delete":
			err = d.Users.Delete(ctx, id)
			message = "user deleted"
		default:
			writeJSON(w, http.StatusNotFound, envelope{"message": "unknown action"})
			return
		}
		if err != nil {
			adminError(w, d.Logger, err)
			return
		}

		d.Logger.Info("admin user action",
			logger.String("action", action),
			logger.String("user_id", id))
		writeJSON(w, http.StatusOK, envelope{"message": message})
	}
}

func adminError(w http.ResponseWriter, log logger.Logger, err error) {
	if errors.Is(err, content.ErrNotFound) {
		writeJSON(w, http.StatusNotFound, envelope{"status": "error", "message": "user not found"})
		return
	}
	log.Error("admin users unavailable", logger.Error(err))
	writeJSON(w, http.StatusInternalServerError, envelope{"status": "error", "message": "unexpected error"})
}
