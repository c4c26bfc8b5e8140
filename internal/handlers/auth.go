package handlers

import (
	"net/http"
	"strings"
	"time"

	"geoportal-backend/internal/apperr"
	"geoportal-backend/internal/models"
	"geoportal-backend/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
)

type AuthHandler struct {
	users     *repository.UserRepo
	jwtSecret string
	log       zerolog.Logger
}

func NewAuthHandler(users *repository.UserRepo, jwtSecret string, log zerolog.Logger) *AuthHandler {
	return &AuthHandler{
		users:     users,
		jwtSecret: jwtSecret,
		log:       log,
	}
}

// --- Request types ---

type RegisterRequest struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// --- POST /api/auth/register ---

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	decodeBody(r, &req)

	name := strings.TrimSpace(req.FullName)
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if name == "" || email == "" || req.Password == "" {
		writeErr(w, h.log, apperr.Validation("fullName/email/password is required"))
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		writeErr(w, h.log, err)
		return
	}

	user := models.User{
		ID:           models.NewID("U"),
		FullName:     name,
		Email:        email,
		PasswordHash: string(hash),
		Role:         models.RoleMember,
		CreatedAt:    time.Now().UTC(),
	}
	if err := h.users.Create(r.Context(), user); err != nil {
		writeErr(w, h.log, err)
		return
	}

	token, err := h.issueToken(user)
	if err != nil {
		writeErr(w, h.log, err)
		return
	}

	h.log.Info().Str("user_id", user.ID).Msg("user registered")
	writeJSON(w, http.StatusOK, map[string]any{
		"ok":    true,
		"user":  user.Sanitized(),
		"token": token,
	})
}

// --- POST /api/auth/login ---

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	decodeBody(r, &req)

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || req.Password == "" {
		writeErr(w, h.log, apperr.Validation("email/password is required"))
		return
	}

	user, err := h.users.FindByEmail(r.Context(), email)
	if err != nil {
		writeErr(w, h.log, err)
		return
	}
	if user == nil || bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		writeErr(w, h.log, apperr.Auth("invalid_credentials"))
		return
	}

	token, err := h.issueToken(*user)
	if err != nil {
		writeErr(w, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"ok":    true,
		"user":  user.Sanitized(),
		"token": token,
	})
}

// issueToken signs the identity the client keeps in its local identity cache.
// No route enforces it; role gating stays a frontend concern.
func (h *AuthHandler) issueToken(user models.User) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   user.ID,
		"email": user.Email,
		"role":  user.Role,
		"jti":   uuid.New().String(),
		"iat":   now.Unix(),
		"exp":   now.Add(30 * 24 * time.Hour).Unix(),
	})
	return token.SignedString([]byte(h.jwtSecret))
}
