package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/Durgeshmauryaji/project-management-app/models"
	"github.com/Durgeshmauryaji/project-management-app/response"

	"github.com/gorilla/mux"
)

// TaskService covers the task store operations the routes need. Task
// routes do not consult project membership; access is gated on
// authentication only.
type TaskService interface {
	CreateTask(ctx context.Context, title, projectID string, status models.TaskStatus, assignedTo string, deadline *time.Time) (*models.Task, error)
	ListByProject(ctx context.Context, projectID string) ([]models.Task, error)
	UpdateStatus(ctx context.Context, taskID string, status models.TaskStatus) (*models.Task, error)
	DeleteTask(ctx context.Context, taskID string) error
}

type CreateTaskRequest struct {
	Title      string            `json:"title"`
	ProjectID  string            `json:"projectId"`
	Status     models.TaskStatus `json:"status"`
	AssignedTo string            `json:"assignedTo"`
	Deadline   *time.Time        `json:"deadline"`
}

type UpdateTaskStatusRequest struct {
	Status models.TaskStatus `json:"status"`
}

type TaskHandler struct {
	Service TaskService
}

func NewTaskHandler(service TaskService) *TaskHandler {
	return &TaskHandler{Service: service}
}

func (h *TaskHandler) CreateTask(w http.ResponseWriter, r *http.Request) {
	var req CreateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.WriteError(w, response.NewValidationError("Invalid request payload"))
		return
	}

	task, err := h.Service.CreateTask(r.Context(), req.Title, req.ProjectID, req.Status, req.AssignedTo, req.Deadline)
	if err != nil {
		response.WriteError(w, err)
		return
	}

	response.WriteJSON(w, http.StatusCreated, task)
}

func (h *TaskHandler) GetTasksByProject(w http.ResponseWriter, r *http.Request) {
	projectID := mux.Vars(r)["projectId"]

	tasks, err := h.Service.ListByProject(r.Context(), projectID)
	if err != nil {
		response.WriteError(w, err)
		return
	}

	response.WriteJSON(w, http.StatusOK, tasks)
}

func (h *TaskHandler) UpdateTaskStatus(w http.ResponseWriter, r *http.Request) {
	taskID := mux.Vars(r)["taskId"]

	var req UpdateTaskStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.WriteError(w, response.NewValidationError("Invalid request payload"))
		return
	}

	task, err := h.Service.UpdateStatus(r.Context(), taskID, req.Status)
	if err != nil {
		response.WriteError(w, err)
		return
	}

	response.WriteJSON(w, http.StatusOK, task)
}

// DeleteTask acknowledges the delete whether or not the task existed.
func (h *TaskHandler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	taskID := mux.Vars(r)["taskId"]

	if err := h.Service.DeleteTask(r.Context(), taskID); err != nil {
		response.WriteError(w, err)
		return
	}

	response.WriteMessage(w, http.StatusOK, "Task deleted")
}
