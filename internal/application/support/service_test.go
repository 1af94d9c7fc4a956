package support

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

type mockMessageStore struct{ mock.Mock }

func (m *mockMessageStore) Put(ctx context.Context, msg *domain.SupportMessage) error {
	return m.Called(ctx, msg).Error(0)
}

func TestSubmit_UnknownPhone_ReturnsNotFound(t *testing.T) {
	us := &mockUserStore{}
	ms := &mockMessageStore{}
	us.On("GetByPhone", mock.Anything, "+998901234567").Return(nil, domain.ErrNotFound)

	svc := NewService(us, ms)
	err := svc.Submit(context.Background(), domain.SupportMessageRequest{
		Phone:   "+998901234567",
		Message: "help",
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
	ms.AssertNotCalled(t, "Put", mock.Anything, mock.Anything)
}

func TestSubmit_LookupFailure_NotReportedAsNotFound(t *testing.T) {
	us := &mockUserStore{}
	ms := &mockMessageStore{}
	us.On("GetByPhone", mock.Anything, "+998901234567").Return(nil, errors.New("dynamo down"))

	svc := NewService(us, ms)
	err := svc.Submit(context.Background(), domain.SupportMessageRequest{
		Phone:   "+998901234567",
		Message: "help",
	})
	require.Error(t, err)
	assert.False(t, errors.Is(err, domain.ErrNotFound))
	assert.ErrorContains(t, err, "lookup user")
	ms.AssertNotCalled(t, "Put", mock.Anything, mock.Anything)
}

func TestSubmit_HappyPath(t *testing.T) {
	us := &mockUserStore{}
	ms := &mockMessageStore{}
	us.On("GetByPhone", mock.Anything, "+998901234567").Return(&domain.User{UserID: "u1"}, nil)
	ms.On("Put", mock.Anything, mock.AnythingOfType("*domain.SupportMessage")).Return(nil)

	svc := NewService(us, ms)
	err := svc.Submit(context.Background(), domain.SupportMessageRequest{
		Phone:   "+998901234567",
		Message: "app crashes on login",
	})
	require.NoError(t, err)

	stored := ms.Calls[0].Arguments.Get(1).(*domain.SupportMessage)
	assert.Equal(t, "u1", stored.UserID)
	assert.Equal(t, "app crashes on login", stored.Message)
	assert.NotEmpty(t, stored.MessageID)
}

func TestSubmit_PersistFailureSurfaces(t *testing.T) {
	us := &mockUserStore{}
	ms := &mockMessageStore{}
	us.On("GetByPhone", mock.Anything, "+998901234567").Return(&domain.User{UserID: "u1"}, nil)
	ms.On("Put", mock.Anything, mock.Anything).Return(errors.New("dynamo down"))

	svc := NewService(us, ms)
	err := svc.Submit(context.Background(), domain.SupportMessageRequest{
		Phone:   "+998901234567",
		Message: "help",
	})
	require.Error(t, err)
	assert.ErrorContains(t, err, "persist support message")
}
