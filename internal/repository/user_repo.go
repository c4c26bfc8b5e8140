package repository

import (
	"context"
	"strings"
	"sync"

	"geoportal-backend/internal/apperr"
	"geoportal-backend/internal/models"
	"geoportal-backend/internal/store"
)

type UserRepo struct {
	store store.Store

	// Serializes read-modify-write cycles so two concurrent registrations
	// cannot both pass the uniqueness check and clobber each other's write.
	mu sync.Mutex
}

func NewUserRepo(s store.Store) *UserRepo {
	return &UserRepo{store: s}
}

func (r *UserRepo) All(ctx context.Context) ([]models.User, error) {
	users := []models.User{}
	if err := r.store.Read(ctx, store.Users, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// FindByEmail matches case-insensitively. Returns nil, nil when absent.
func (r *UserRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	users, err := r.All(ctx)
	if err != nil {
		return nil, err
	}
	for i := range users {
		if strings.EqualFold(users[i].Email, email) {
			return &users[i], nil
		}
	}
	return nil, nil
}

func (r *UserRepo) FindByID(ctx context.Context, id string) (*models.User, error) {
	users, err := r.All(ctx)
	if err != nil {
		return nil, err
	}
	for i := range users {
		if users[i].ID == id {
			return &users[i], nil
		}
	}
	return nil, nil
}

// Create appends the user, enforcing email uniqueness inside the lock.
func (r *UserRepo) Create(ctx context.Context, user models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	users, err := r.All(ctx)
	if err != nil {
		return err
	}
	for i := range users {
		if strings.EqualFold(users[i].Email, user.Email) {
			return apperr.Conflict("email_already_exists")
		}
	}
	return r.store.Write(ctx, store.Users, append(users, user))
}
