package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/Durgeshmauryaji/project-management-app/middleware"
	"github.com/Durgeshmauryaji/project-management-app/models"
	"github.com/Durgeshmauryaji/project-management-app/response"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ProjectService covers the project store operations the routes need.
type ProjectService interface {
	CreateProject(ctx context.Context, ownerID primitive.ObjectID, name, description string) (*models.Project, error)
	ListOwnedBy(ctx context.Context, userID primitive.ObjectID) ([]models.Project, error)
	GetByID(ctx context.Context, projectID string, requesterID primitive.ObjectID) (*models.ProjectView, error)
	AddMember(ctx context.Context, projectID string, requesterID, memberID primitive.ObjectID) (*models.ProjectView, error)
}

type CreateProjectRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type AddMemberRequest struct {
	UserID string `json:"userId"`
}

type ProjectHandler struct {
	Service ProjectService
}

func NewProjectHandler(service ProjectService) *ProjectHandler {
	return &ProjectHandler{Service: service}
}

func (h *ProjectHandler) CreateProject(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.WriteError(w, response.NewAuthError("No token"))
		return
	}

	var req CreateProjectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.WriteError(w, response.NewValidationError("Invalid request payload"))
		return
	}

	project, err := h.Service.CreateProject(r.Context(), ownerID, req.Name, req.Description)
	if err != nil {
		response.WriteError(w, err)
		return
	}

	response.WriteJSON(w, http.StatusCreated, project)
}

// ListProjects returns the projects the requester owns. Membership alone
// does not surface a project here.
func (h *ProjectHandler) ListProjects(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.WriteError(w, response.NewAuthError("No token"))
		return
	}

	projects, err := h.Service.ListOwnedBy(r.Context(), userID)
	if err != nil {
		response.WriteError(w, err)
		return
	}

	response.WriteJSON(w, http.StatusOK, projects)
}

func (h *ProjectHandler) GetProjectByID(w http.ResponseWriter, r *http.Request) {
	requesterID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.WriteError(w, response.NewAuthError("No token"))
		return
	}

	projectID := mux.Vars(r)["id"]

	project, err := h.Service.GetByID(r.Context(), projectID, requesterID)
	if err != nil {
		response.WriteError(w, err)
		return
	}

	response.WriteJSON(w, http.StatusOK, project)
}

func (h *ProjectHandler) AddMember(w http.ResponseWriter, r *http.Request) {
	requesterID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.WriteError(w, response.NewAuthError("No token"))
		return
	}

	projectID := mux.Vars(r)["id"]

	var req AddMemberRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.WriteError(w, response.NewValidationError("Invalid request payload"))
		return
	}

	memberID, err := primitive.ObjectIDFromHex(req.UserID)
	if err != nil {
		response.WriteError(w, response.NewValidationError("Invalid user ID format"))
		return
	}

	project, err := h.Service.AddMember(r.Context(), projectID, requesterID, memberID)
	if err != nil {
		response.WriteError(w, err)
		return
	}

	response.WriteJSON(w, http.StatusOK, project)
}
