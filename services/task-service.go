package services

import (
	"context"
	"time"

	"github.com/Durgeshmauryaji/project-management-app/logging"
	"github.com/Durgeshmauryaji/project-management-app/models"
	"github.com/Durgeshmauryaji/project-management-app/response"

	"github.com/sony/gobreaker"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type TaskService struct {
	TasksCollection *mongo.Collection
	Breaker         *gobreaker.CircuitBreaker
}

func NewTaskService(tasksCollection *mongo.Collection, breaker *gobreaker.CircuitBreaker) *TaskService {
	return &TaskService{
		TasksCollection: tasksCollection,
		Breaker:         breaker,
	}
}

// CreateTask persists a task under a project. Status defaults to Todo.
// The requester's access to the project is not checked here; any
// authenticated user may create a task against any project id.
func (s *TaskService) CreateTask(ctx context.Context, title, projectID string, status models.TaskStatus, assignedTo string, deadline *time.Time) (*models.Task, error) {
	if title == "" || projectID == "" {
		return nil, response.NewValidationError("Title & Project ID required")
	}

	projectObjectID, err := primitive.ObjectIDFromHex(projectID)
	if err != nil {
		return nil, response.NewValidationError("Invalid project ID format")
	}

	if status == "" {
		status = models.StatusTodo
	}

	now := time.Now()
	task := models.Task{
		ID:         primitive.NewObjectID(),
		Title:      title,
		Status:     status,
		ProjectID:  projectObjectID,
		AssignedTo: assignedTo,
		Deadline:   deadline,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	_, err = s.Breaker.Execute(func() (interface{}, error) {
		return s.TasksCollection.InsertOne(ctx, task)
	})
	if err != nil {
		logging.Logger.Errorf("Event ID: TASK_CREATE_FAILED, Description: Failed to create task %s: %v", title, err)
		return nil, response.NewServerError("Server error")
	}

	logging.Logger.Infof("Event ID: TASK_CREATED, Description: Task created: %s in project %s", title, projectID)
	return &task, nil
}

// ListByProject returns every task under the project id, unfiltered by
// requester identity.
func (s *TaskService) ListByProject(ctx context.Context, projectID string) ([]models.Task, error) {
	projectObjectID, err := primitive.ObjectIDFromHex(projectID)
	if err != nil {
		return nil, response.NewValidationError("Invalid project ID format")
	}

	result, err := s.Breaker.Execute(func() (interface{}, error) {
		cursor, err := s.TasksCollection.Find(ctx, bson.M{"projectId": projectObjectID})
		if err != nil {
			return nil, err
		}
		defer cursor.Close(ctx)

		tasks := []models.Task{}
		if err := cursor.All(ctx, &tasks); err != nil {
			return nil, err
		}
		return tasks, nil
	})
	if err != nil {
		logging.Logger.Errorf("Event ID: TASK_LIST_FAILED, Description: Failed to fetch tasks for project %s: %v", projectID, err)
		return nil, response.NewServerError("Server error")
	}

	return result.([]models.Task), nil
}

// UpdateStatus sets the task's status and returns the updated task. The
// status value is carried through as-is; the UI constrains it.
func (s *TaskService) UpdateStatus(ctx context.Context, taskID string, status models.TaskStatus) (*models.Task, error) {
	taskObjectID, err := primitive.ObjectIDFromHex(taskID)
	if err != nil {
		return nil, response.NewValidationError("Invalid task ID format")
	}

	result, err := s.Breaker.Execute(func() (interface{}, error) {
		var task models.Task
		opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
		err := s.TasksCollection.FindOneAndUpdate(ctx,
			bson.M{"_id": taskObjectID},
			bson.M{"$set": bson.M{"status": status, "updatedAt": time.Now()}},
			opts).Decode(&task)
		return task, err
	})
	if err == mongo.ErrNoDocuments {
		return nil, response.NewNotFoundError("Task not found")
	}
	if err != nil {
		logging.Logger.Errorf("Event ID: TASK_UPDATE_FAILED, Description: Failed to update status of task %s: %v", taskID, err)
		return nil, response.NewServerError("Failed to update task")
	}

	task := result.(models.Task)
	return &task, nil
}

// DeleteTask removes the task if it exists. Deleting a task that is
// already gone still succeeds; callers get the same success message
// either way.
func (s *TaskService) DeleteTask(ctx context.Context, taskID string) error {
	taskObjectID, err := primitive.ObjectIDFromHex(taskID)
	if err != nil {
		return response.NewValidationError("Invalid task ID format")
	}

	_, err = s.Breaker.Execute(func() (interface{}, error) {
		return s.TasksCollection.DeleteOne(ctx, bson.M{"_id": taskObjectID})
	})
	if err != nil {
		logging.Logger.Errorf("Event ID: TASK_DELETE_FAILED, Description: Failed to delete task %s: %v", taskID, err)
		return response.NewServerError("Failed to delete task")
	}

	logging.Logger.Infof("Event ID: TASK_DELETED, Description: Task delete request handled for %s", taskID)
	return nil
}
