package handler

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-identity-api/internal/application/auth"
	"github.com/go-identity-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type mockAuthService struct{ mock.Mock }

func (m *mockAuthService) SendCode(ctx context.Context, req auth.SendCodeRequest) error {
	return m.Called(ctx, req).Error(0)
}
func (m *mockAuthService) VerifyCode(ctx context.Context, req auth.VerifyCodeRequest) error {
	return m.Called(ctx, req).Error(0)
}
func (m *mockAuthService) Signup(ctx context.Context, req auth.SignupRequest) (string, error) {
	args := m.Called(ctx, req)
	return args.String(0), args.Error(1)
}
func (m *mockAuthService) Login(ctx context.Context, req auth.LoginRequest) (string, error) {
	args := m.Called(ctx, req)
	return args.String(0), args.Error(1)
}
func (m *mockAuthService) RequestPasswordReset(ctx context.Context, req auth.ResetPasswordRequest) error {
	return m.Called(ctx, req).Error(0)
}
func (m *mockAuthService) ChangePassword(ctx context.Context, req auth.ChangePasswordRequest) error {
	return m.Called(ctx, req).Error(0)
}

func post(h http.HandlerFunc, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	rr := httptest.NewRecorder()
	h(rr, req)
	return rr
}

func TestSendCode_InvalidBody(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{})
	rr := post(h.SendCode, "{not json")
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestSendCode_MalformedPhoneRejectedBeforeService(t *testing.T) {
	svc := &mockAuthService{}
	h := NewAuthHandler(svc)
	rr := post(h.SendCode, `{"phone":"12345"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
	svc.AssertNotCalled(t, "SendCode", mock.Anything, mock.Anything)
}

func TestSendCode_OK(t *testing.T) {
	svc := &mockAuthService{}
	svc.On("SendCode", mock.Anything, mock.Anything).Return(nil)
	h := NewAuthHandler(svc)
	rr := post(h.SendCode, `{"phone":"+998901234567"}`)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "verification code sent")
}

func TestVerifyCode_Mismatch_Unauthorized(t *testing.T) {
	svc := &mockAuthService{}
	svc.On("VerifyCode", mock.Anything, mock.Anything).
		Return(fmt.Errorf("invalid verification code: %w", domain.ErrUnauthorized))
	h := NewAuthHandler(svc)
	rr := post(h.VerifyCode, `{"email":"a@x.com","code":111111}`)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestSignup_Conflict(t *testing.T) {
	svc := &mockAuthService{}
	svc.On("Signup", mock.Anything, mock.Anything).
		Return("", fmt.Errorf("account already exists for this contact: %w", domain.ErrConflict))
	h := NewAuthHandler(svc)
	rr := post(h.Signup, `{"email":"a@x.com","first_name":"A","last_name":"B","password":"password1"}`)
	assert.Equal(t, http.StatusConflict, rr.Code)
}

func TestSignup_Created_ReturnsBearerToken(t *testing.T) {
	svc := &mockAuthService{}
	svc.On("Signup", mock.Anything, mock.Anything).Return("signed-token", nil)
	h := NewAuthHandler(svc)
	rr := post(h.Signup, `{"email":"a@x.com","first_name":"A","last_name":"B","password":"password1"}`)
	assert.Equal(t, http.StatusCreated, rr.Code)
	assert.Contains(t, rr.Body.String(), `"access_token":"signed-token"`)
	assert.Contains(t, rr.Body.String(), `"token_type":"Bearer"`)
}

func TestLogin_GenericUnauthorized(t *testing.T) {
	svc := &mockAuthService{}
	svc.On("Login", mock.Anything, mock.Anything).
		Return("", fmt.Errorf("incorrect phone, email or password: %w", domain.ErrUnauthorized))
	h := NewAuthHandler(svc)
	rr := post(h.Login, `{"phone":"+998901234567","password":"wrong"}`)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestResetPassword_NotFound(t *testing.T) {
	svc := &mockAuthService{}
	svc.On("RequestPasswordReset", mock.Anything, mock.Anything).
		Return(fmt.Errorf("user not found: %w", domain.ErrNotFound))
	h := NewAuthHandler(svc)
	rr := post(h.ResetPassword, `{"phone":"+998901234567"}`)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestChangePassword_DeliveredErrorHiddenAs500(t *testing.T) {
	svc := &mockAuthService{}
	svc.On("ChangePassword", mock.Anything, mock.Anything).
		Return(fmt.Errorf("persist password change: connection reset"))
	h := NewAuthHandler(svc)
	rr := post(h.ChangePassword, `{"phone":"+998901234567","code":482193,"new_password":"newpassword1"}`)
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.NotContains(t, rr.Body.String(), "connection reset")
}
