package handlers_test

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/zentharo/request-service/internal/domain"
)

// In-memory stand-ins for the Postgres repositories. They mirror the store
// contract, including pgx.ErrNoRows for absent records.

type memRequestRepo struct {
	mu    sync.Mutex
	items map[string]domain.Request
}

func newMemRequestRepo() *memRequestRepo {
	return &memRequestRepo{items: make(map[string]domain.Request)}
}

func (r *memRequestRepo) seed(request domain.Request) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if request.ID == "" {
		request.ID = uuid.NewString()
	}
	r.items[request.ID] = request
}

func (r *memRequestRepo) Create(_ context.Context, request *domain.Request) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	request.ID = uuid.NewString()
	request.CreatedAt = time.Now()
	request.UpdatedAt = request.CreatedAt
	r.items[request.ID] = *request
	return nil
}

func (r *memRequestRepo) GetByID(_ context.Context, id string) (*domain.Request, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	item, ok := r.items[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &item, nil
}

func (r *memRequestRepo) ListAll(_ context.Context) ([]domain.Request, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	result := make([]domain.Request, 0, len(r.items))
	for _, item := range r.items {
		result = append(result, item)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].SubmittedTimestamp > result[j].SubmittedTimestamp
	})
	return result, nil
}

func (r *memRequestRepo) UpdateStatus(_ context.Context, id string, status domain.RequestStatus) (*domain.Request, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	item, ok := r.items[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	item.Status = status
	item.UpdatedAt = time.Now()
	r.items[id] = item
	return &item, nil
}

func (r *memRequestRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.items, id)
	return nil
}

type memUserRepo struct {
	mu    sync.Mutex
	items map[string]domain.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{items: make(map[string]domain.User)}
}

func (r *memUserRepo) Create(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	user.ID = uuid.NewString()
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	r.items[user.ID] = *user
	return nil
}

func (r *memUserRepo) Update(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[user.ID]; !ok {
		return pgx.ErrNoRows
	}
	user.UpdatedAt = time.Now()
	r.items[user.ID] = *user
	return nil
}

func (r *memUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	item, ok := r.items[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &item, nil
}

func (r *memUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, item := range r.items {
		if item.Email == email {
			user := item
			return &user, nil
		}
	}
	return nil, pgx.ErrNoRows
}
