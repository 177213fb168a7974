package models

import "time"

// Status possíveis de uma tarefa
const (
	StatusPending    = "pending"
	StatusInProgress = "in_progress"
	StatusCompleted  = "completed"
)

type Task struct {
	ID          string     `json:"id"`
	Description string     `json:"description"`
	Deadline    *time.Time `json:"deadline,omitempty"` // ponteiro permite nulo
	Status      string     `json:"status"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// IsValidStatus verifica se o status é um dos três valores reconhecidos
func IsValidStatus(status string) bool {
	validStatuses := map[string]bool{
		StatusPending:    true,
		StatusInProgress: true,
		StatusCompleted:  true,
	}
	return validStatuses[status]
}
