package support

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-identity-api/internal/domain"
	"github.com/go-identity-api/internal/pkg/id"
)

type Service interface {
	Submit(ctx context.Context, req domain.SupportMessageRequest) error
}

type userStore interface {
	GetByPhone(ctx context.Context, phone string) (*domain.User, error)
}

type messageStore interface {
	Put(ctx context.Context, m *domain.SupportMessage) error
}

type service struct {
	users    userStore
	messages messageStore
}

func NewService(users userStore, messages messageStore) Service {
	return &service{users: users, messages: messages}
}

// Submit records a support message from a registered user.
func (s *service) Submit(ctx context.Context, req domain.SupportMessageRequest) error {
	u, err := s.users.GetByPhone(ctx, req.Phone)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("user not found: %w", domain.ErrNotFound)
		}
		return fmt.Errorf("lookup user: %w", err)
	}
	m := &domain.SupportMessage{
		MessageID: id.New(),
		UserID:    u.UserID,
		Phone:     req.Phone,
		Message:   req.Message,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.messages.Put(ctx, m); err != nil {
		return fmt.Errorf("persist support message: %w", err)
	}
	slog.Info("support message received", "user_id", u.UserID, "message_id", m.MessageID)
	return nil
}
