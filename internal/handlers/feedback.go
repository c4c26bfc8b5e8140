package handlers

import (
	"net/http"
	"strings"
	"time"

	"geoportal-backend/internal/apperr"
	"geoportal-backend/internal/metrics"
	"geoportal-backend/internal/models"
	"geoportal-backend/internal/repository"

	"github.com/rs/zerolog"
)

type FeedbackHandler struct {
	feedbacks *repository.FeedbackRepo
	log       zerolog.Logger
}

func NewFeedbackHandler(feedbacks *repository.FeedbackRepo, log zerolog.Logger) *FeedbackHandler {
	return &FeedbackHandler{feedbacks: feedbacks, log: log}
}

type SubmitFeedbackRequest struct {
	UserID  *string `json:"userId"`
	Title   string  `json:"title"`
	Content string  `json:"content"`
}

// --- POST /api/submit_feedback ---

func (h *FeedbackHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req SubmitFeedbackRequest
	decodeBody(r, &req)

	// Only an absent or null userId falls back to anonymous; an explicit
	// empty string is stored as-is.
	userID := "anonymous"
	if req.UserID != nil {
		userID = *req.UserID
	}
	title := strings.TrimSpace(req.Title)
	content := strings.TrimSpace(req.Content)
	if title == "" || content == "" {
		writeErr(w, h.log, apperr.Validation("title/content is required"))
		return
	}

	feedback := models.Feedback{
		ID:        models.NewID("FB"),
		UserID:    userID,
		Title:     title,
		Content:   content,
		Status:    models.FeedbackPending,
		CreatedAt: time.Now().UTC(),
	}
	if err := h.feedbacks.Create(r.Context(), feedback); err != nil {
		writeErr(w, h.log, err)
		return
	}

	metrics.FeedbackSubmitted.Inc()
	h.log.Info().Str("feedback_id", feedback.ID).Str("user_id", userID).Msg("feedback submitted")
	writeJSON(w, http.StatusOK, map[string]any{"ok": true, "feedback": feedback})
}

// --- GET /api/feedback ---

func (h *FeedbackHandler) List(w http.ResponseWriter, r *http.Request) {
	feedbacks, err := h.feedbacks.All(r.Context())
	if err != nil {
		writeErr(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true, "feedbacks": feedbacks})
}
