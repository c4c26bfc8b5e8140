package handlers

import (
	"net/http"

	"geoportal-backend/internal/models"
	"geoportal-backend/internal/repository"

	"github.com/rs/zerolog"
)

type UserHandler struct {
	users *repository.UserRepo
	log   zerolog.Logger
}

func NewUserHandler(users *repository.UserRepo, log zerolog.Logger) *UserHandler {
	return &UserHandler{users: users, log: log}
}

// --- GET /api/users ---

func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.users.All(r.Context())
	if err != nil {
		writeErr(w, h.log, err)
		return
	}

	sanitized := make([]models.User, 0, len(users))
	for _, u := range users {
		sanitized = append(sanitized, u.Sanitized())
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true, "users": sanitized})
}
