package handlers

import (
	"context"
	"net/http"
	"strings"
	"sync"
	"time"

	"geoportal-backend/internal/apperr"
	"geoportal-backend/internal/metrics"
	"geoportal-backend/internal/models"
	"geoportal-backend/internal/notify"
	"geoportal-backend/internal/repository"
	"geoportal-backend/internal/ws"

	chi "github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

type ResponseHandler struct {
	feedbacks *repository.FeedbackRepo
	responses *repository.ResponseRepo
	users     *repository.UserRepo
	notifier  notify.Notifier
	hub       *ws.Hub
	log       zerolog.Logger

	// workflowMu serializes the whole respond step (feedback lookup plus the
	// two collection writes) so concurrent responds cannot interleave it.
	workflowMu sync.Mutex
}

func NewResponseHandler(
	feedbacks *repository.FeedbackRepo,
	responses *repository.ResponseRepo,
	users *repository.UserRepo,
	notifier notify.Notifier,
	hub *ws.Hub,
	log zerolog.Logger,
) *ResponseHandler {
	return &ResponseHandler{
		feedbacks: feedbacks,
		responses: responses,
		users:     users,
		notifier:  notifier,
		hub:       hub,
		log:       log,
	}
}

type RespondRequest struct {
	AdminID string `json:"adminId"`
	Content string `json:"content"`
}

// --- POST /api/feedback/{feedbackId}/respond ---

// Respond creates the response first, then flips the feedback status. The two
// writes hit different collections and are not atomic: a crash in between
// leaves a response against a still-pending feedback, never the reverse.
func (h *ResponseHandler) Respond(w http.ResponseWriter, r *http.Request) {
	feedbackID := chi.URLParam(r, "feedbackId")

	var req RespondRequest
	decodeBody(r, &req)

	content := strings.TrimSpace(req.Content)
	if content == "" {
		writeErr(w, h.log, apperr.Validation("content is required"))
		return
	}

	h.workflowMu.Lock()
	defer h.workflowMu.Unlock()

	feedback, err := h.feedbacks.FindByID(r.Context(), feedbackID)
	if err != nil {
		writeErr(w, h.log, err)
		return
	}
	if feedback == nil {
		writeErr(w, h.log, apperr.NotFound("feedback_not_found"))
		return
	}

	adminID := req.AdminID
	if adminID == "" {
		adminID = "admin"
	}
	response := models.Response{
		ID:         models.NewID("RES"),
		FeedbackID: feedbackID,
		UserID:     feedback.UserID,
		AdminID:    adminID,
		Content:    content,
		IsRead:     false,
		CreatedAt:  time.Now().UTC(),
	}
	if err := h.responses.Create(r.Context(), response); err != nil {
		writeErr(w, h.log, err)
		return
	}
	if err := h.feedbacks.SetStatus(r.Context(), feedbackID, models.FeedbackResponded); err != nil {
		writeErr(w, h.log, err)
		return
	}

	metrics.ResponsesCreated.Inc()
	h.log.Info().
		Str("response_id", response.ID).
		Str("feedback_id", feedbackID).
		Str("admin_id", adminID).
		Msg("response attached")

	// Notification fan-out is best-effort and must not delay the reply.
	go h.notifyAuthor(response, feedback.Title)
	go h.pushUnread(response.UserID)

	writeJSON(w, http.StatusOK, map[string]any{"ok": true, "response": response})
}

// --- POST /api/responses/{responseId}/read ---

func (h *ResponseHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	responseID := chi.URLParam(r, "responseId")

	response, err := h.responses.MarkRead(r.Context(), responseID)
	if err != nil {
		writeErr(w, h.log, err)
		return
	}

	metrics.ResponsesMarkedRead.Inc()
	go h.pushUnread(response.UserID)

	writeJSON(w, http.StatusOK, map[string]any{"ok": true, "response": response})
}

// --- GET /api/responses ---

func (h *ResponseHandler) ListAll(w http.ResponseWriter, r *http.Request) {
	responses, err := h.responses.All(r.Context())
	if err != nil {
		writeErr(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true, "responses": responses})
}

// --- GET /api/responses/user/{userId} ---

func (h *ResponseHandler) ListForUser(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userId")

	responses, err := h.responses.ForUser(r.Context(), userID)
	if err != nil {
		writeErr(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true, "responses": responses})
}

// --- GET /api/responses/user/{userId}/unread ---

func (h *ResponseHandler) Unread(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userId")

	count, err := h.responses.UnreadCount(r.Context(), userID)
	if err != nil {
		writeErr(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true, "count": count})
}

// notifyAuthor emails the feedback author, if they are a registered user with
// an address. Anonymous feedback gets no email.
func (h *ResponseHandler) notifyAuthor(response models.Response, feedbackTitle string) {
	ctx := context.Background()
	author, err := h.users.FindByID(ctx, response.UserID)
	if err != nil {
		h.log.Error().Err(err).Msg("look up feedback author")
		return
	}
	if author == nil || author.Email == "" {
		h.log.Debug().Str("user_id", response.UserID).Msg("no author to notify")
		return
	}
	err = h.notifier.Publish(ctx, notify.ResponseNotice{
		Email:         author.Email,
		FullName:      author.FullName,
		FeedbackTitle: feedbackTitle,
		Content:       response.Content,
	})
	if err != nil {
		h.log.Error().Err(err).Msg("publish response notice")
	}
}

func (h *ResponseHandler) pushUnread(userID string) {
	count, err := h.responses.UnreadCount(context.Background(), userID)
	if err != nil {
		h.log.Error().Err(err).Msg("compute unread count")
		return
	}
	h.hub.PushUnread(userID, count)
}
