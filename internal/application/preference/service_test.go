package preference

import (
	"context"
	"errors"
	"testing"

	"github.com/go-identity-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockUserStore struct{ mock.Mock }

func (m *mockUserStore) GetByPhone(ctx context.Context, phone string) (*domain.User, error) {
	args := m.Called(ctx, phone)
	if u, _ := args.Get(0).(*domain.User); u != nil {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockUserStore) Update(ctx context.Context, userID string, updates map[string]interface{}) error {
	return m.Called(ctx, userID, updates).Error(0)
}

func TestUpdate_UnknownPhone_ReturnsNotFound(t *testing.T) {
	us := &mockUserStore{}
	us.On("GetByPhone", mock.Anything, "+998901234567").Return(nil, domain.ErrNotFound)

	svc := NewService(us)
	err := svc.Update(context.Background(), domain.UpdatePreferencesRequest{
		Phone:    "+998901234567",
		Language: "uzbek",
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
	us.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdate_LookupFailure_NotReportedAsNotFound(t *testing.T) {
	us := &mockUserStore{}
	us.On("GetByPhone", mock.Anything, "+998901234567").Return(nil, errors.New("dynamo down"))

	svc := NewService(us)
	err := svc.Update(context.Background(), domain.UpdatePreferencesRequest{
		Phone:    "+998901234567",
		Language: "uzbek",
	})
	require.Error(t, err)
	assert.False(t, errors.Is(err, domain.ErrNotFound))
	assert.ErrorContains(t, err, "lookup user")
	us.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdate_HappyPath(t *testing.T) {
	us := &mockUserStore{}
	us.On("GetByPhone", mock.Anything, "+998901234567").Return(&domain.User{UserID: "u1"}, nil)
	us.On("Update", mock.Anything, "u1", map[string]interface{}{
		"language":              "uzbek",
		"notifications_enabled": false,
	}).Return(nil)

	svc := NewService(us)
	err := svc.Update(context.Background(), domain.UpdatePreferencesRequest{
		Phone:                "+998901234567",
		Language:             "uzbek",
		NotificationsEnabled: false,
	})
	require.NoError(t, err)
	us.AssertExpectations(t)
}
