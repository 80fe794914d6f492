package auth

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/komaljain0311/cogent-voice--assistant/internal/model/user"
	"github.com/komaljain0311/cogent-voice--assistant/internal/storage/sqlite"
	"github.com/komaljain0311/cogent-voice--assistant/pkg/utils"
)

// Accounts is the account store surface the handler needs.
type Accounts interface {
	CreateUser(ctx context.Context, username, email, password string) (user.User, error)
	Authenticate(ctx context.Context, identifier, password string) (user.User, error)
}

// Handler serves signup and login.
type Handler struct {
	accounts Accounts
}

// New creates the auth handler.
func New(accounts Accounts) *Handler {
	return &Handler{accounts: accounts}
}

// RegisterRoutes mounts the account endpoints.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/signup", h.handleSignup)
	r.Post("/login", h.handleLogin)
}

func (h *Handler) handleSignup(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Username string `json:"username"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if payload.Username == "" || payload.Email == "" || payload.Password == "" {
		utils.RespondError(w, http.StatusBadRequest, "username, email and password are required")
		return
	}

	_, err := h.accounts.CreateUser(r.Context(), payload.Username, payload.Email, payload.Password)
	if errors.Is(err, sqlite.ErrDuplicateUser) {
		utils.RespondError(w, http.StatusBadRequest, "Username or email already exists.")
		return
	}
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "registration failed")
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]string{"message": "User registered successfully."})
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		LoginID  string `json:"login_id"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	account, err := h.accounts.Authenticate(r.Context(), payload.LoginID, payload.Password)
	if errors.Is(err, sqlite.ErrInvalidCredentials) {
		utils.RespondError(w, http.StatusUnauthorized, "Invalid username/email or password.")
		return
	}
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "login failed")
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]string{
		"message":  "Login successful",
		"username": account.Username,
	})
}
