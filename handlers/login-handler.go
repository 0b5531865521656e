package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/Durgeshmauryaji/project-management-app/models"
	"github.com/Durgeshmauryaji/project-management-app/response"
)

// AuthService is the credential store and token issuer behind the public
// register/login routes.
type AuthService interface {
	Register(ctx context.Context, name, email, password string) error
	Login(ctx context.Context, email, password string) (*models.PublicUser, string, error)
}

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Message string            `json:"message"`
	Token   string            `json:"token"`
	User    models.PublicUser `json:"user"`
}

type LoginHandler struct {
	UserService AuthService
}

func NewLoginHandler(userService AuthService) *LoginHandler {
	return &LoginHandler{UserService: userService}
}

func (h *LoginHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.WriteError(w, response.NewValidationError("Invalid request payload"))
		return
	}

	if err := h.UserService.Register(r.Context(), req.Name, req.Email, req.Password); err != nil {
		response.WriteError(w, err)
		return
	}

	response.WriteMessage(w, http.StatusCreated, "User registered successfully")
}

func (h *LoginHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.WriteError(w, response.NewValidationError("Invalid request payload"))
		return
	}

	user, token, err := h.UserService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		response.WriteError(w, err)
		return
	}

	response.WriteJSON(w, http.StatusOK, LoginResponse{
		Message: "Login successful",
		Token:   token,
		User:    *user,
	})
}
