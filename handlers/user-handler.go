package handlers

import (
	"context"
	"net/http"

	"github.com/Durgeshmauryaji/project-management-app/middleware"
	"github.com/Durgeshmauryaji/project-management-app/models"
	"github.com/Durgeshmauryaji/project-management-app/response"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type UserLister interface {
	ListUsers(ctx context.Context, requesterID primitive.ObjectID) ([]models.PublicUser, error)
}

type UserHandler struct {
	UserService UserLister
}

func NewUserHandler(userService UserLister) *UserHandler {
	return &UserHandler{UserService: userService}
}

// GetUsers lists every registered user except the requester.
func (h *UserHandler) GetUsers(w http.ResponseWriter, r *http.Request) {
	requesterID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.WriteError(w, response.NewAuthError("No token"))
		return
	}

	users, err := h.UserService.ListUsers(r.Context(), requesterID)
	if err != nil {
		response.WriteError(w, err)
		return
	}

	response.WriteJSON(w, http.StatusOK, users)
}
