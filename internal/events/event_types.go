package events

import (
	"time"

	"github.com/zentharo/request-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventRequestCreated       EventType = "request_created"
	EventRequestStatusChanged EventType = "request_status_changed"
	EventRequestDeleted       EventType = "request_deleted"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	RequestID string      `json:"request_id"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// RequestCreatedPayload payload.
type RequestCreatedPayload struct {
	CustomerName     string   `json:"customer_name"`
	CustomerEmail    string   `json:"customer_email"`
	SelectedServices []string `json:"selected_services"`
}

// RequestStatusChangedPayload payload.
type RequestStatusChangedPayload struct {
	OldStatus domain.RequestStatus `json:"old_status"`
	NewStatus domain.RequestStatus `json:"new_status"`
}

// RequestDeletedPayload payload.
type RequestDeletedPayload struct {
	LastStatus domain.RequestStatus `json:"last_status"`
}
