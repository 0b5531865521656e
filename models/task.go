package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type TaskStatus string

const (
	StatusTodo       TaskStatus = "Todo"
	StatusInProgress TaskStatus = "In Progress"
	StatusCompleted  TaskStatus = "Completed"
)

type Task struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title      string             `bson:"title" json:"title"`
	Status     TaskStatus         `bson:"status" json:"status"`
	ProjectID  primitive.ObjectID `bson:"projectId" json:"projectId"`
	AssignedTo string             `bson:"assignedTo,omitempty" json:"assignedTo,omitempty"`
	Deadline   *time.Time         `bson:"deadline,omitempty" json:"deadline,omitempty"`
	CreatedAt  time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt  time.Time          `bson:"updatedAt" json:"updatedAt"`
}
