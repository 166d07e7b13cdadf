package domain

import "time"

// ProcessStatus represents the lifecycle state of a confidential process.
type ProcessStatus string

const (
	StatusActive    ProcessStatus = "active"
	StatusArchived  ProcessStatus = "archived"
	StatusCompleted ProcessStatus = "completed"
	StatusDeleted   ProcessStatus = "deleted"
)

// validTransitions defines the allowed state machine transitions (SPEC_FULL.md §4.11).
var validTransitions = map[ProcessStatus][]ProcessStatus{
	StatusActive:   {StatusArchived, StatusCompleted, StatusDeleted},
	StatusArchived: {StatusActive, StatusCompleted, StatusDeleted},
}

// CanTransitionTo reports whether a transition from the current status to
// next is valid. Completed and Deleted are terminal: no operation in the
// core currently writes a further transition out of them.
func (s ProcessStatus) CanTransitionTo(next ProcessStatus) bool {
	for _, allowed := range validTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Process is a confidential artifact owned by exactly one client user.
// The sealed_body and content_key never leave the process together on any
// outbound interface (invariant I2) — only ProcessService.AccessProcess returns a
// decrypted body, and only to an authorized partner.
type Process struct {
	ID          string        `json:"id" bson:"_id,omitempty"`
	OwnerID     string        `json:"owner_id" bson:"owner_id"`
	Title       string        `json:"title" bson:"title"`
	Description string        `json:"description" bson:"description"`
	SealedBody  string        `json:"-" bson:"sealed_body"`
	ContentKey  string        `json:"-" bson:"content_key"`
	Status      ProcessStatus `json:"status" bson:"status"`
	CreatedAt   time.Time     `json:"created_at" bson:"created_at"`
}

// ProcessProjection is the outbound-safe view of a process: sealed_body and
// content_key are never serialized to any external boundary (invariant I2).
type ProcessProjection struct {
	ID          string        `json:"id"`
	OwnerID     string        `json:"owner_id"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Status      ProcessStatus `json:"status"`
	CreatedAt   time.Time     `json:"created_at"`
}

// Project builds the outbound-safe projection of a process.
func (p *Process) Project() ProcessProjection {
	return ProcessProjection{
		ID:          p.ID,
		OwnerID:     p.OwnerID,
		Title:       p.Title,
		Description: p.Description,
		Status:      p.Status,
		CreatedAt:   p.CreatedAt,
	}
}
