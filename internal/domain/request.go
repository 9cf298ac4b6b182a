package domain

import (
	"fmt"
	"time"
)

// RequestStatus enumerates lifecycle states for service requests.
type RequestStatus string

const (
	RequestStatusPending   RequestStatus = "Pending"
	RequestStatusApproved  RequestStatus = "Approved"
	RequestStatusCompleted RequestStatus = "Completed"
)

// ParseRequestStatus validates a wire value against the status enum.
func ParseRequestStatus(value string) (RequestStatus, error) {
	switch RequestStatus(value) {
	case RequestStatusPending, RequestStatusApproved, RequestStatusCompleted:
		return RequestStatus(value), nil
	default:
		return "", fmt.Errorf("unknown request status %q", value)
	}
}

// CustomerDetails is captured verbatim at submission and never mutated.
type CustomerDetails struct {
	Name  string
	Email string
	Phone string
}

// Request is the aggregate for customer service requests.
type Request struct {
	ID                 string
	CustomerDetails    CustomerDetails
	SelectedServices   []string
	Status             RequestStatus
	SubmittedTimestamp int64
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// SubmittedAt converts the millisecond timestamp back to a time.Time.
// SubmittedTimestamp is the sole sort key; formatted date strings are
// derived from it at read time and never compared.
func (r *Request) SubmittedAt() time.Time {
	return time.UnixMilli(r.SubmittedTimestamp)
}

// NewerThan reports whether r was submitted after other.
func (r *Request) NewerThan(other *Request) bool {
	return r.SubmittedTimestamp > other.SubmittedTimestamp
}
