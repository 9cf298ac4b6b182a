package projection

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/zentharo/request-service/internal/api/dto"
	"github.com/zentharo/request-service/internal/domain"
	"github.com/zentharo/request-service/pkg/apperrors"
)

// Lister fetches the authoritative request list.
type Lister interface {
	ListRequests(ctx context.Context) ([]domain.Request, error)
}

// HTTPSource lists requests from the lifecycle API over HTTP. The list call
// is idempotent, so network failures are retried a bounded number of times
// with exponential backoff before surfacing a transport error.
type HTTPSource struct {
	baseURL     string
	client      *http.Client
	maxAttempts int
	backoff     time.Duration
}

// NewHTTPSource builds a source with a bounded per-call timeout.
func NewHTTPSource(baseURL string, timeout time.Duration) *HTTPSource {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &HTTPSource{
		baseURL:     baseURL,
		client:      &http.Client{Timeout: timeout},
		maxAttempts: 3,
		backoff:     200 * time.Millisecond,
	}
}

// ListRequests fetches GET /api/requests and decodes it into domain records.
func (s *HTTPSource) ListRequests(ctx context.Context) ([]domain.Request, error) {
	var lastErr error
	backoff := s.backoff
	for attempt := 1; attempt <= s.maxAttempts; attempt++ {
		if attempt > 1 {
			select {
			case <-ctx.Done():
				return nil, apperrors.NewTransport(ctx.Err())
			case <-time.After(backoff):
			}
			backoff *= 2
		}
		requests, err := s.listOnce(ctx)
		if err == nil {
			return requests, nil
		}
		if !apperrors.IsTransport(err) {
			return nil, err
		}
		lastErr = err
	}
	return nil, lastErr
}

func (s *HTTPSource) listOnce(ctx context.Context) ([]domain.Request, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"/api/requests", nil)
	if err != nil {
		return nil, err
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, apperrors.NewTransport(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, apperrors.NewInternalError(fmt.Errorf("list requests: status %d", resp.StatusCode))
	}

	var payload []dto.RequestResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, apperrors.NewInternalError(fmt.Errorf("decode request list: %w", err))
	}

	requests := make([]domain.Request, 0, len(payload))
	for _, item := range payload {
		status, err := domain.ParseRequestStatus(item.Status)
		if err != nil {
			status = domain.RequestStatusPending
		}
		requests = append(requests, domain.Request{
			ID: item.ID,
			CustomerDetails: domain.CustomerDetails{
				Name:  item.CustomerDetails.Name,
				Email: item.CustomerDetails.Email,
				Phone: item.CustomerDetails.Phone,
			},
			SelectedServices:   item.SelectedServices,
			Status:             status,
			SubmittedTimestamp: item.SubmittedTimestamp,
		})
	}
	return requests, nil
}
