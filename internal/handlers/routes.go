package handlers

import (
	"net/http"

	"geoportal-backend/internal/ws"

	chi "github.com/go-chi/chi/v5"
)

// Mount attaches the full API surface to r. Kept out of main so tests can
// stand up the exact production routing.
func Mount(
	r chi.Router,
	auth *AuthHandler,
	users *UserHandler,
	feedback *FeedbackHandler,
	responses *ResponseHandler,
	notifications *ws.Handler,
) {
	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"ok": true})
	})

	r.Route("/api", func(r chi.Router) {
		r.Post("/auth/register", auth.Register)
		r.Post("/auth/login", auth.Login)
		r.Get("/users", users.List)

		r.Get("/feedback", feedback.List)
		r.Post("/submit_feedback", feedback.Submit)
		r.Post("/feedback/{feedbackId}/respond", responses.Respond)

		r.Get("/responses", responses.ListAll)
		r.Get("/responses/user/{userId}", responses.ListForUser)
		r.Get("/responses/user/{userId}/unread", responses.Unread)
		r.Post("/responses/{responseId}/read", responses.MarkRead)

		r.Get("/ws/notifications", notifications.Subscribe)
	})
}
