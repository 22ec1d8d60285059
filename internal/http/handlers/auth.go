package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/forma/server/internal/auth"
	"github.com/forma/server/internal/middleware"
	"github.com/forma/server/internal/model"
	"github.com/forma/server/internal/observability"
)

// AuthHandler handles authentication endpoints.
type AuthHandler struct {
	authService *auth.Service
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(authService *auth.Service) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// signupRequest is the request body for POST /api/auth/signup
type signupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// loginRequest is the request body for POST /api/auth/login
type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// authResponse is the JSON response for signup and login
type authResponse struct {
	User   model.User       `json:"user"`
	Tokens model.AuthTokens `json:"tokens"`
}

// HandleSignup handles POST /api/auth/signup
func (h *AuthHandler) HandleSignup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid_request", "invalid request body")
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)
	if req.Name == "" || req.Email == "" || req.Password == "" {
		respondWithError(w, http.StatusBadRequest, "invalid_request", "name, email and password are required")
		return
	}

	user, tokens, err := h.authService.Signup(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrEmailTaken) {
			respondWithError(w, http.StatusConflict, "email_taken", "email already registered")
			return
		}
		log.Printf("Signup failed for %s: %v", maskEmail(req.Email), err)
		respondWithError(w, http.StatusInternalServerError, "internal", "failed to create account")
		return
	}

	observability.RecordSignup()
	respondWithJSON(w, http.StatusCreated, authResponse{User: user, Tokens: tokens})
}

// HandleLogin handles POST /api/auth/login
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid_request", "invalid request body")
		return
	}

	req.Email = strings.TrimSpace(req.Email)
	if req.Email == "" || req.Password == "" {
		respondWithError(w, http.StatusBadRequest, "invalid_request", "email and password are required")
		return
	}

	user, tokens, err := h.authService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			respondWithError(w, http.StatusUnauthorized, "invalid_credentials", "invalid credentials")
			return
		}
		log.Printf("Login failed for %s: %v", maskEmail(req.Email), err)
		respondWithError(w, http.StatusInternalServerError, "internal", "failed to log in")
		return
	}

	observability.RecordLogin()
	respondWithJSON(w, http.StatusOK, authResponse{User: user, Tokens: tokens})
}

// HandleMe handles GET /api/me (protected). Returns the authenticated user.
func (h *AuthHandler) HandleMe(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok || user == nil {
		respondWithError(w, http.StatusUnauthorized, "unauthorized", "unauthorized")
		return
	}
	respondWithJSON(w, http.StatusOK, user)
}

// maskEmail masks an email address for logging (e.g. an****@x.com).
func maskEmail(email string) string {
	at := strings.Index(email, "@")
	if at <= 2 {
		return "****"
	}
	return email[:2] + strings.Repeat("*", at-2) + email[at:]
}
