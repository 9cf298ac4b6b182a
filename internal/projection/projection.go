// Package projection maintains the client-held bucketing of requests by
// status. Buckets are re-derivable from the authoritative list at any time
// and are never an independent source of truth.
package projection

import (
	"errors"
	"sort"

	"github.com/zentharo/request-service/internal/domain"
	"github.com/zentharo/request-service/internal/workflow"
)

// ErrNotProjected is returned when a local transition targets a request
// that is not present in any bucket.
var ErrNotProjected = errors.New("request not present in projection")

// Buckets groups requests by lifecycle stage, each ordered newest-first.
type Buckets struct {
	Pending   []domain.Request
	Approved  []domain.Request
	Completed []domain.Request
}

// Project partitions requests into status buckets. Ordering inside each
// bucket is newest-first by SubmittedTimestamp; the integer timestamp is
// the only comparison key.
func Project(requests []domain.Request) Buckets {
	sorted := make([]domain.Request, len(requests))
	copy(sorted, requests)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].NewerThan(&sorted[j])
	})

	var buckets Buckets
	for _, request := range sorted {
		switch request.Status {
		case domain.RequestStatusApproved:
			buckets.Approved = append(buckets.Approved, request)
		case domain.RequestStatusCompleted:
			buckets.Completed = append(buckets.Completed, request)
		default:
			buckets.Pending = append(buckets.Pending, request)
		}
	}
	return buckets
}

// ApplyLocalTransition moves a request between buckets after a status
// change, revalidating against the lifecycle rules. No refetch is needed:
// the request is removed from its current bucket and inserted into the
// target bucket at its sort position.
func (b Buckets) ApplyLocalTransition(requestID string, target domain.RequestStatus) (Buckets, error) {
	request, found := b.find(requestID)
	if !found {
		return b, ErrNotProjected
	}
	if err := workflow.ValidateTransition(request.Status, target); err != nil {
		return b, err
	}
	if workflow.IsNoop(request.Status, target) {
		return b, nil
	}

	updated := Buckets{
		Pending:   removeByID(b.Pending, requestID),
		Approved:  removeByID(b.Approved, requestID),
		Completed: removeByID(b.Completed, requestID),
	}
	request.Status = target
	return updated.InsertRequest(request), nil
}

// InsertRequest places a request into the bucket for its status, keeping
// newest-first order. Used for asynchronously arriving submissions.
func (b Buckets) InsertRequest(request domain.Request) Buckets {
	switch request.Status {
	case domain.RequestStatusApproved:
		b.Approved = insertSorted(b.Approved, request)
	case domain.RequestStatusCompleted:
		b.Completed = insertSorted(b.Completed, request)
	default:
		b.Pending = insertSorted(b.Pending, request)
	}
	return b
}

// All flattens the buckets back into a single newest-first list.
func (b Buckets) All() []domain.Request {
	merged := make([]domain.Request, 0, len(b.Pending)+len(b.Approved)+len(b.Completed))
	merged = append(merged, b.Pending...)
	merged = append(merged, b.Approved...)
	merged = append(merged, b.Completed...)
	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].NewerThan(&merged[j])
	})
	return merged
}

// Statistics recounts the projected requests per status.
func (b Buckets) Statistics() workflow.Statistics {
	return workflow.Statistics{
		Total:     len(b.Pending) + len(b.Approved) + len(b.Completed),
		Pending:   len(b.Pending),
		Approved:  len(b.Approved),
		Completed: len(b.Completed),
	}
}

func (b Buckets) find(requestID string) (domain.Request, bool) {
	for _, bucket := range [][]domain.Request{b.Pending, b.Approved, b.Completed} {
		for i := range bucket {
			if bucket[i].ID == requestID {
				return bucket[i], true
			}
		}
	}
	return domain.Request{}, false
}

func removeByID(bucket []domain.Request, requestID string) []domain.Request {
	result := make([]domain.Request, 0, len(bucket))
	for i := range bucket {
		if bucket[i].ID != requestID {
			result = append(result, bucket[i])
		}
	}
	return result
}

// insertSorted copies the bucket so callers holding older snapshots never
// observe a mutated backing array.
func insertSorted(bucket []domain.Request, request domain.Request) []domain.Request {
	pos := sort.Search(len(bucket), func(i int) bool {
		return bucket[i].SubmittedTimestamp <= request.SubmittedTimestamp
	})
	result := make([]domain.Request, 0, len(bucket)+1)
	result = append(result, bucket[:pos]...)
	result = append(result, request)
	result = append(result, bucket[pos:]...)
	return result
}
