package dto

import (
	"time"

	"github.com/zentharo/request-service/internal/domain"
	"github.com/zentharo/request-service/internal/workflow"
)

// CustomerDetails mirrors the submitted contact block.
type CustomerDetails struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// CreateRequestRequest payload for new service requests.
type CreateRequestRequest struct {
	CustomerDetails  CustomerDetails `json:"customerDetails"`
	SelectedServices []string        `json:"selectedServices"`
}

// UpdateRequestStatusRequest payload for status transitions.
type UpdateRequestStatusRequest struct {
	Status string `json:"status"`
}

// RequestResponse is the outbound shape of a request. The formatted date
// strings are derived from SubmittedTimestamp for display only.
type RequestResponse struct {
	ID                 string          `json:"id"`
	CustomerDetails    CustomerDetails `json:"customerDetails"`
	SelectedServices   []string        `json:"selectedServices"`
	Status             string          `json:"status"`
	ProgressPercent    int             `json:"progressPercent"`
	SubmittedTimestamp int64           `json:"submittedTimestamp"`
	SubmittedDate      string          `json:"submittedDate"`
	SubmittedDateTime  string          `json:"submittedDateTime"`
}

// FromRequest converts a domain request to its wire representation.
func FromRequest(request *domain.Request) RequestResponse {
	submitted := time.UnixMilli(request.SubmittedTimestamp)
	services := request.SelectedServices
	if services == nil {
		services = []string{}
	}
	return RequestResponse{
		ID: request.ID,
		CustomerDetails: CustomerDetails{
			Name:  request.CustomerDetails.Name,
			Email: request.CustomerDetails.Email,
			Phone: request.CustomerDetails.Phone,
		},
		SelectedServices:   services,
		Status:             string(request.Status),
		ProgressPercent:    workflow.ProgressPercent(request.Status),
		SubmittedTimestamp: request.SubmittedTimestamp,
		SubmittedDate:      submitted.Format("1/2/2006"),
		SubmittedDateTime:  submitted.Format("1/2/2006, 3:04:05 PM"),
	}
}

// FromRequests converts a slice of domain requests.
func FromRequests(requests []domain.Request) []RequestResponse {
	items := make([]RequestResponse, 0, len(requests))
	for i := range requests {
		items = append(items, FromRequest(&requests[i]))
	}
	return items
}
