// Package models defines the data records persisted by the FocusFlow client.
package models

import "time"

// Priority ranks a task. Stored as its string form.
type Priority string

const (
	PriorityLow    Priority = "LOW"
	PriorityMedium Priority = "MEDIUM"
	PriorityHigh   Priority = "HIGH"
)

// Valid reports whether p is one of the known priority levels.
func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// SubTask is a checklist item nested inside a Task.
type SubTask struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Completed bool   `json:"completed"`
}

// Location is a geofenced reminder attached to a task.
// Radius is in meters.
type Location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Name      string  `json:"name"`
	Radius    float64 `json:"radius"`
}

// Task is the primary record of the tasks collection, keyed by ID.
// Insertion order is not meaningful; display order is computed by consumers.
type Task struct {
	// ID is a globally unique identifier for the task.
	ID string `json:"id"`

	Title       string `json:"title"`
	Description string `json:"description,omitempty"`

	// DueDate is optional; nil means no due date.
	DueDate *time.Time `json:"dueDate,omitempty"`

	Priority  Priority `json:"priority"`
	ProjectID string   `json:"projectId"`
	Tags      []string `json:"tags"`
	Completed bool     `json:"completed"`

	SubTasks []SubTask `json:"subTasks"`

	LocationReminders []Location `json:"locationReminders,omitempty"`

	// CreatedAt is the creation time in UTC.
	CreatedAt time.Time `json:"createdAt"`
}
