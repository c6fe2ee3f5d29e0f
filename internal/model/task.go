package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// CreatedLayout is how created_at is written: day/month/year hour:minute.
const CreatedLayout = "02/01/2006 15:04"

// Task is the domain model for a todo entry.
type Task struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Done      bool   `json:"done"`
	CreatedAt string `json:"created_at"`
}

// NewTask builds a pending task with a fresh id.
// ok is false when title is empty after trimming.
func NewTask(title string, now time.Time) (Task, bool) {
	return NewTaskWithID(uuid.NewString(), title, now)
}

// NewTaskWithID is NewTask with a caller-supplied id.
func NewTaskWithID(id, title string, now time.Time) (Task, bool) {
	title = strings.TrimSpace(title)
	if title == "" {
		return Task{}, false
	}
	return Task{
		ID:        id,
		Title:     title,
		CreatedAt: now.Format(CreatedLayout),
	}, true
}
