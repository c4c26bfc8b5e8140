package repository

import (
	"context"
	"sync"

	"geoportal-backend/internal/apperr"
	"geoportal-backend/internal/models"
	"geoportal-backend/internal/store"
)

type FeedbackRepo struct {
	store store.Store
	mu    sync.Mutex
}

func NewFeedbackRepo(s store.Store) *FeedbackRepo {
	return &FeedbackRepo{store: s}
}

// All returns every feedback item in insertion order.
func (r *FeedbackRepo) All(ctx context.Context) ([]models.Feedback, error) {
	feedbacks := []models.Feedback{}
	if err := r.store.Read(ctx, store.Feedbacks, &feedbacks); err != nil {
		return nil, err
	}
	return feedbacks, nil
}

func (r *FeedbackRepo) FindByID(ctx context.Context, id string) (*models.Feedback, error) {
	feedbacks, err := r.All(ctx)
	if err != nil {
		return nil, err
	}
	for i := range feedbacks {
		if feedbacks[i].ID == id {
			return &feedbacks[i], nil
		}
	}
	return nil, nil
}

func (r *FeedbackRepo) Create(ctx context.Context, feedback models.Feedback) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	feedbacks, err := r.All(ctx)
	if err != nil {
		return err
	}
	return r.store.Write(ctx, store.Feedbacks, append(feedbacks, feedback))
}

// SetStatus updates one feedback's status in place.
func (r *FeedbackRepo) SetStatus(ctx context.Context, id, status string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	feedbacks, err := r.All(ctx)
	if err != nil {
		return err
	}
	for i := range feedbacks {
		if feedbacks[i].ID == id {
			feedbacks[i].Status = status
			return r.store.Write(ctx, store.Feedbacks, feedbacks)
		}
	}
	return apperr.NotFound("feedback_not_found")
}
