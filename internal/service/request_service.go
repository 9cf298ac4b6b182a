package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/zentharo/request-service/internal/domain"
	"github.com/zentharo/request-service/internal/events"
	"github.com/zentharo/request-service/internal/repository"
	"github.com/zentharo/request-service/internal/workflow"
	"github.com/zentharo/request-service/pkg/apperrors"
)

// RequestService coordinates the request lifecycle.
type RequestService struct {
	requests   repository.RequestRepository
	dispatcher events.Dispatcher
}

// RequestDependencies bundles requirements for the request service.
type RequestDependencies struct {
	RequestRepo repository.RequestRepository
	Dispatcher  events.Dispatcher
}

// RequestCreateInput describes request creation payload.
type RequestCreateInput struct {
	CustomerDetails  domain.CustomerDetails
	SelectedServices []string
}

// NewRequestService constructs the service.
func NewRequestService(deps RequestDependencies) *RequestService {
	return &RequestService{
		requests:   deps.RequestRepo,
		dispatcher: deps.Dispatcher,
	}
}

// CreateRequest persists a new request with status Pending and the
// submission timestamp in epoch milliseconds.
func (s *RequestService) CreateRequest(ctx context.Context, input RequestCreateInput) (*domain.Request, error) {
	if strings.TrimSpace(input.CustomerDetails.Name) == "" {
		return nil, apperrors.NewValidationError("customer name required", nil)
	}
	if strings.TrimSpace(input.CustomerDetails.Email) == "" {
		return nil, apperrors.NewValidationError("customer email required", nil)
	}
	if len(input.SelectedServices) == 0 {
		return nil, apperrors.NewValidationError("at least one service required", nil)
	}

	request := &domain.Request{
		CustomerDetails: domain.CustomerDetails{
			Name:  strings.TrimSpace(input.CustomerDetails.Name),
			Email: strings.TrimSpace(input.CustomerDetails.Email),
			Phone: strings.TrimSpace(input.CustomerDetails.Phone),
		},
		SelectedServices:   input.SelectedServices,
		Status:             domain.RequestStatusPending,
		SubmittedTimestamp: time.Now().UnixMilli(),
	}

	if err := s.requests.Create(ctx, request); err != nil {
		return nil, err
	}
	s.publishEvent(ctx, events.Event{
		Type:      events.EventRequestCreated,
		RequestID: request.ID,
		Payload: events.RequestCreatedPayload{
			CustomerName:     request.CustomerDetails.Name,
			CustomerEmail:    request.CustomerDetails.Email,
			SelectedServices: request.SelectedServices,
		},
	})
	return request, nil
}

// ListRequests returns all requests ordered newest-first. An empty slice is
// a valid, non-error result.
func (s *RequestService) ListRequests(ctx context.Context) ([]domain.Request, error) {
	requests, err := s.requests.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	if requests == nil {
		requests = []domain.Request{}
	}
	return requests, nil
}

// GetRequest fetches a single request by id.
func (s *RequestService) GetRequest(ctx context.Context, id string) (*domain.Request, error) {
	return s.requests.GetByID(ctx, id)
}

// UpdateStatus advances a request through the lifecycle. Same-status calls
// are no-op successes; anything but the immediate successor is rejected.
// Concurrent updates to the same record are last-write-wins.
func (s *RequestService) UpdateStatus(ctx context.Context, id string, target domain.RequestStatus) (*domain.Request, error) {
	request, err := s.requests.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	oldStatus := request.Status
	changed, err := workflow.ApplyTransition(request, target)
	if err != nil {
		return nil, err
	}
	if !changed {
		return request, nil
	}

	updated, err := s.requests.UpdateStatus(ctx, id, target)
	if err != nil {
		return nil, err
	}
	s.publishEvent(ctx, events.Event{
		Type:      events.EventRequestStatusChanged,
		RequestID: updated.ID,
		Payload: events.RequestStatusChangedPayload{
			OldStatus: oldStatus,
			NewStatus: updated.Status,
		},
	})
	return updated, nil
}

// DeleteRequest removes a request permanently.
func (s *RequestService) DeleteRequest(ctx context.Context, id string) error {
	request, err := s.requests.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.requests.Delete(ctx, id); err != nil {
		return err
	}
	s.publishEvent(ctx, events.Event{
		Type:      events.EventRequestDeleted,
		RequestID: id,
		Payload: events.RequestDeletedPayload{
			LastStatus: request.Status,
		},
	})
	return nil
}

// Statistics recomputes per-status counts from the current request set.
func (s *RequestService) Statistics(ctx context.Context) (workflow.Statistics, error) {
	requests, err := s.requests.ListAll(ctx)
	if err != nil {
		return workflow.Statistics{}, err
	}
	return workflow.ComputeStatistics(requests), nil
}

func (s *RequestService) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	_ = s.dispatcher.Publish(ctx, event)
}
