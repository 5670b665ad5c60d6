package events

import (
	"time"

	"github.com/google/uuid"
)

// EventType represents different types of form events
type EventType string

const (
	EventFormSubmitted EventType = "form.submitted"
	EventFormDeleted   EventType = "form.deleted"
)

const (
	eventSource  = "form-builder-service"
	eventVersion = "1.0"
)

// FormEvent is the envelope for all form events
type FormEvent struct {
	ID        string                 `json:"id"`
	Type      EventType              `json:"type"`
	Timestamp time.Time              `json:"timestamp"`
	Source    string                 `json:"source"`
	Version   string                 `json:"version"`
	Data      interface{}            `json:"data"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
}

type FormSubmittedEvent struct {
	FormID        string    `json:"form_id"`
	FormName      string    `json:"form_name"`
	QuestionCount int       `json:"question_count"`
	HasBanner     bool      `json:"has_banner"`
	SubmittedBy   string    `json:"submitted_by,omitempty"`
	SubmittedAt   time.Time `json:"submitted_at"`
}

type FormDeletedEvent struct {
	FormID    string    `json:"form_id"`
	DeletedAt time.Time `json:"deleted_at"`
}

// NewFormEvent wraps data in an envelope with a fresh id and timestamp
func NewFormEvent(eventType EventType, data interface{}) *FormEvent {
	return &FormEvent{
		ID:        uuid.NewString(),
		Type:      eventType,
		Timestamp: time.Now().UTC(),
		Source:    eventSource,
		Version:   eventVersion,
		Data:      data,
	}
}
