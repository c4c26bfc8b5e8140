package repository

import (
	"context"
	"sync"

	"geoportal-backend/internal/apperr"
	"geoportal-backend/internal/models"
	"geoportal-backend/internal/store"
)

type ResponseRepo struct {
	store store.Store
	mu    sync.Mutex
}

func NewResponseRepo(s store.Store) *ResponseRepo {
	return &ResponseRepo{store: s}
}

func (r *ResponseRepo) All(ctx context.Context) ([]models.Response, error) {
	responses := []models.Response{}
	if err := r.store.Read(ctx, store.Responses, &responses); err != nil {
		return nil, err
	}
	return responses, nil
}

// ForUser filters responses by the snapshotted feedback author id.
func (r *ResponseRepo) ForUser(ctx context.Context, userID string) ([]models.Response, error) {
	responses, err := r.All(ctx)
	if err != nil {
		return nil, err
	}
	matched := []models.Response{}
	for _, resp := range responses {
		if resp.UserID == userID {
			matched = append(matched, resp)
		}
	}
	return matched, nil
}

// UnreadCount is derived on every call, never stored.
func (r *ResponseRepo) UnreadCount(ctx context.Context, userID string) (int, error) {
	responses, err := r.ForUser(ctx, userID)
	if err != nil {
		return 0, err
	}
	count := 0
	for _, resp := range responses {
		if !resp.IsRead {
			count++
		}
	}
	return count, nil
}

func (r *ResponseRepo) Create(ctx context.Context, response models.Response) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	responses, err := r.All(ctx)
	if err != nil {
		return err
	}
	return r.store.Write(ctx, store.Responses, append(responses, response))
}

// MarkRead flips isRead to true and returns the updated response. Marking an
// already-read response succeeds without change.
func (r *ResponseRepo) MarkRead(ctx context.Context, id string) (*models.Response, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	responses, err := r.All(ctx)
	if err != nil {
		return nil, err
	}
	for i := range responses {
		if responses[i].ID == id {
			responses[i].IsRead = true
			if err := r.store.Write(ctx, store.Responses, responses); err != nil {
				return nil, err
			}
			return &responses[i], nil
		}
	}
	return nil, apperr.NotFound("response_not_found")
}
