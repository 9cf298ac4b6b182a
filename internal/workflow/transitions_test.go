package workflow

import (
	"errors"
	"testing"

	"github.com/zentharo/request-service/internal/domain"
	"github.com/zentharo/request-service/pkg/apperrors"
)

func TestValidateTransition(t *testing.T) {
	cases := []struct {
		name    string
		current domain.RequestStatus
		target  domain.RequestStatus
		wantErr bool
	}{
		{"pending to approved", domain.RequestStatusPending, domain.RequestStatusApproved, false},
		{"approved to completed", domain.RequestStatusApproved, domain.RequestStatusCompleted, false},
		{"pending same status", domain.RequestStatusPending, domain.RequestStatusPending, false},
		{"approved same status", domain.RequestStatusApproved, domain.RequestStatusApproved, false},
		{"completed same status", domain.RequestStatusCompleted, domain.RequestStatusCompleted, false},
		{"pending skips to completed", domain.RequestStatusPending, domain.RequestStatusCompleted, true},
		{"approved back to pending", domain.RequestStatusApproved, domain.RequestStatusPending, true},
		{"completed back to approved", domain.RequestStatusCompleted, domain.RequestStatusApproved, true},
		{"completed back to pending", domain.RequestStatusCompleted, domain.RequestStatusPending, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateTransition(tc.current, tc.target)
			if tc.wantErr && err == nil {
				t.Fatalf("expected error for %s -> %s", tc.current, tc.target)
			}
			if !tc.wantErr && err != nil {
				t.Fatalf("unexpected error for %s -> %s: %v", tc.current, tc.target, err)
			}
			if tc.wantErr {
				var domainErr *apperrors.DomainError
				if !errors.As(err, &domainErr) || domainErr.Code != "INVALID_TRANSITION" {
					t.Errorf("expected INVALID_TRANSITION error, got %v", err)
				}
			}
		})
	}
}

func TestApplyTransitionIdempotent(t *testing.T) {
	request := &domain.Request{Status: domain.RequestStatusApproved}

	changed, err := ApplyTransition(request, domain.RequestStatusApproved)
	if err != nil {
		t.Fatalf("same-status apply should succeed: %v", err)
	}
	if changed {
		t.Error("same-status apply should not report a change")
	}
	if request.Status != domain.RequestStatusApproved {
		t.Errorf("status mutated on no-op: %s", request.Status)
	}
}

func TestApplyTransitionAdvances(t *testing.T) {
	request := &domain.Request{Status: domain.RequestStatusPending}

	changed, err := ApplyTransition(request, domain.RequestStatusApproved)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !changed {
		t.Error("expected a status change")
	}
	if request.Status != domain.RequestStatusApproved {
		t.Errorf("expected Approved, got %s", request.Status)
	}

	if _, err := ApplyTransition(request, domain.RequestStatusPending); err == nil {
		t.Error("backward transition should be rejected")
	}
}

func TestProgressPercent(t *testing.T) {
	cases := map[domain.RequestStatus]int{
		domain.RequestStatusPending:   25,
		domain.RequestStatusApproved:  75,
		domain.RequestStatusCompleted: 100,
	}
	for status, want := range cases {
		if got := ProgressPercent(status); got != want {
			t.Errorf("ProgressPercent(%s) = %d, want %d", status, got, want)
		}
	}
}

func TestComputeStatistics(t *testing.T) {
	requests := []domain.Request{
		{Status: domain.RequestStatusPending},
		{Status: domain.RequestStatusPending},
		{Status: domain.RequestStatusApproved},
		{Status: domain.RequestStatusCompleted},
	}
	stats := ComputeStatistics(requests)
	if stats.Total != 4 || stats.Pending != 2 || stats.Approved != 1 || stats.Completed != 1 {
		t.Errorf("unexpected statistics: %+v", stats)
	}
}
