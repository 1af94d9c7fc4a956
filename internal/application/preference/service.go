package preference

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-identity-api/internal/domain"
)

type Service interface {
	Update(ctx context.Context, req domain.UpdatePreferencesRequest) error
}

type userStore interface {
	GetByPhone(ctx context.Context, phone string) (*domain.User, error)
	Update(ctx context.Context, userID string, updates map[string]interface{}) error
}

type service struct {
	users userStore
}

func NewService(users userStore) Service {
	return &service{users: users}
}

// Update sets the user's language and notification preferences.
func (s *service) Update(ctx context.Context, req domain.UpdatePreferencesRequest) error {
	u, err := s.users.GetByPhone(ctx, req.Phone)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("user not found: %w", domain.ErrNotFound)
		}
		return fmt.Errorf("lookup user: %w", err)
	}
	return s.users.Update(ctx, u.UserID, map[string]interface{}{
		"language":              req.Language,
		"notifications_enabled": req.NotificationsEnabled,
	})
}
