package workflow

import (
	"github.com/zentharo/request-service/internal/domain"
	"github.com/zentharo/request-service/pkg/apperrors"
)

// Progress percentages shown for each lifecycle stage. Derived from status
// at read time; never persisted independently.
const (
	ProgressPending   = 25
	ProgressApproved  = 75
	ProgressCompleted = 100
)

var successor = map[domain.RequestStatus]domain.RequestStatus{
	domain.RequestStatusPending:  domain.RequestStatusApproved,
	domain.RequestStatusApproved: domain.RequestStatusCompleted,
}

// ValidateTransition checks that target is reachable from current.
// Re-applying the current status is treated as a no-op success; everything
// other than the immediate successor is rejected. Completed is terminal.
func ValidateTransition(current, target domain.RequestStatus) error {
	if current == target {
		return nil
	}
	if successor[current] == target {
		return nil
	}
	return apperrors.NewInvalidTransition(string(current), string(target))
}

// IsNoop reports whether applying target would leave the request unchanged.
func IsNoop(current, target domain.RequestStatus) bool {
	return current == target
}

// ApplyTransition validates and applies target to the request in memory.
// It returns true when the status actually changed.
func ApplyTransition(request *domain.Request, target domain.RequestStatus) (bool, error) {
	if err := ValidateTransition(request.Status, target); err != nil {
		return false, err
	}
	if request.Status == target {
		return false, nil
	}
	request.Status = target
	return true, nil
}

// ProgressPercent maps a status to its display progress value.
func ProgressPercent(status domain.RequestStatus) int {
	switch status {
	case domain.RequestStatusApproved:
		return ProgressApproved
	case domain.RequestStatusCompleted:
		return ProgressCompleted
	default:
		return ProgressPending
	}
}

// Statistics holds per-status request counts.
type Statistics struct {
	Total     int
	Pending   int
	Approved  int
	Completed int
}

// ComputeStatistics recounts requests per status.
func ComputeStatistics(requests []domain.Request) Statistics {
	stats := Statistics{Total: len(requests)}
	for i := range requests {
		switch requests[i].Status {
		case domain.RequestStatusApproved:
			stats.Approved++
		case domain.RequestStatusCompleted:
			stats.Completed++
		default:
			stats.Pending++
		}
	}
	return stats
}
