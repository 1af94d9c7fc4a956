package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-identity-api/internal/domain"
	"github.com/go-identity-api/internal/pkg/id"
	"github.com/go-identity-api/internal/pkg/password"
)

type SendCodeRequest struct {
	Phone *string `json:"phone" validate:"omitempty,uzphone"`
	Email *string `json:"email" validate:"omitempty,email"`
}

type VerifyCodeRequest struct {
	Phone *string `json:"phone" validate:"omitempty,uzphone"`
	Email *string `json:"email" validate:"omitempty,email"`
	Code  int     `json:"code" validate:"required,min=100000,max=999999"`
}

type SignupRequest struct {
	Phone     *string `json:"phone" validate:"omitempty,uzphone"`
	Email     *string `json:"email" validate:"omitempty,email"`
	FirstName string  `json:"first_name" validate:"required"`
	LastName  string  `json:"last_name" validate:"required"`
	Password  string  `json:"password" validate:"required,min=8,max=72"`
}

type LoginRequest struct {
	Phone    *string `json:"phone" validate:"omitempty,uzphone"`
	Email    *string `json:"email" validate:"omitempty,email"`
	Password string  `json:"password" validate:"required"`
}

type ResetPasswordRequest struct {
	Phone *string `json:"phone" validate:"omitempty,uzphone"`
	Email *string `json:"email" validate:"omitempty,email"`
}

type ChangePasswordRequest struct {
	Phone       *string `json:"phone" validate:"omitempty,uzphone"`
	Email       *string `json:"email" validate:"omitempty,email"`
	Code        int     `json:"code" validate:"required,min=100000,max=999999"`
	NewPassword string  `json:"new_password" validate:"required,min=8,max=72"`
}

type Service interface {
	SendCode(ctx context.Context, req SendCodeRequest) error
	VerifyCode(ctx context.Context, req VerifyCodeRequest) error
	Signup(ctx context.Context, req SignupRequest) (bearer string, err error)
	Login(ctx context.Context, req LoginRequest) (bearer string, err error)
	RequestPasswordReset(ctx context.Context, req ResetPasswordRequest) error
	ChangePassword(ctx context.Context, req ChangePasswordRequest) error
}

type userStore interface {
	GetByPhone(ctx context.Context, phone string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Put(ctx context.Context, u *domain.User) error
	Update(ctx context.Context, userID string, updates map[string]interface{}) error
}

type codeStore interface {
	Issue(identifier string) (int, error)
	VerifyAndConsume(identifier string, code int) bool
}

type mailer interface {
	SendEmail(to, subject, body string) error
}

type smsSender interface {
	SendSMS(ctx context.Context, to, message string) error
}

type tokenSigner interface {
	Sign(subject string) (string, error)
}

type service struct {
	users  userStore
	codes  codeStore
	mailer mailer
	sms    smsSender
	signer tokenSigner
}

type ServiceDeps struct {
	UserRepo  userStore
	CodeStore codeStore
	Mailer    mailer
	SMSSender smsSender
	Signer    tokenSigner
}

func NewService(deps ServiceDeps) Service {
	return &service{
		users:  deps.UserRepo,
		codes:  deps.CodeStore,
		mailer: deps.Mailer,
		sms:    deps.SMSSender,
		signer: deps.Signer,
	}
}

// SendCode issues a verification code for the supplied contact and delivers it
// out of band. Phone takes precedence when both are supplied. Reissuing
// replaces any code already outstanding for the same contact.
func (s *service) SendCode(ctx context.Context, req SendCodeRequest) error {
	switch {
	case req.Phone != nil:
		return s.deliverCode(ctx, *req.Phone, true, "Your verification code: %d")
	case req.Email != nil:
		return s.deliverCode(ctx, *req.Email, false, "Your verification code: %d")
	default:
		return fmt.Errorf("phone or email required: %w", domain.ErrBadRequest)
	}
}

// VerifyCode consumes the outstanding code for the contact. Phone is checked
// first, then email. A miss is reported generically; callers cannot tell an
// expired or never-issued code from wrong digits.
func (s *service) VerifyCode(ctx context.Context, req VerifyCodeRequest) error {
	if req.Phone == nil && req.Email == nil {
		return fmt.Errorf("phone or email required: %w", domain.ErrBadRequest)
	}
	if req.Phone != nil && s.codes.VerifyAndConsume(*req.Phone, req.Code) {
		return nil
	}
	if req.Email != nil && s.codes.VerifyAndConsume(*req.Email, req.Code) {
		return nil
	}
	return fmt.Errorf("invalid verification code: %w", domain.ErrUnauthorized)
}

// Signup completes registration after the contact was verified. The account
// must not already exist for the contact; on success a session token is issued
// with the contact as its subject.
func (s *service) Signup(ctx context.Context, req SignupRequest) (string, error) {
	identifier, err := resolveIdentifier(req.Phone, req.Email)
	if err != nil {
		return "", err
	}
	switch _, err := s.findByContact(ctx, req.Phone, req.Email); {
	case err == nil:
		return "", fmt.Errorf("account already exists for this contact: %w", domain.ErrConflict)
	case !errors.Is(err, domain.ErrNotFound):
		// A lookup failure is not proof of absence; creating the account
		// here could duplicate an existing contact.
		return "", fmt.Errorf("lookup user: %w", err)
	}

	hash, err := password.Hash(req.Password)
	if err != nil {
		return "", err
	}
	now := time.Now().UTC()
	u := &domain.User{
		UserID:               id.New(),
		FirstName:            req.FirstName,
		LastName:             req.LastName,
		Phone:                req.Phone,
		Email:                req.Email,
		PasswordHash:         hash,
		Language:             domain.DefaultLanguage,
		NotificationsEnabled: true,
		CreatedAt:            now,
		UpdatedAt:            now,
	}
	if err := s.users.Put(ctx, u); err != nil {
		return "", fmt.Errorf("persist user: %w", err)
	}
	slog.Info("user registered", "user_id", u.UserID)
	return s.signer.Sign(identifier)
}

// Login authenticates by contact and password. Unknown contacts and wrong
// passwords produce one indistinguishable error so registered identifiers
// cannot be enumerated.
func (s *service) Login(ctx context.Context, req LoginRequest) (string, error) {
	identifier, err := resolveIdentifier(req.Phone, req.Email)
	if err != nil {
		return "", err
	}
	u, err := s.findByContact(ctx, req.Phone, req.Email)
	if err != nil || !password.Verify(req.Password, u.PasswordHash) {
		return "", fmt.Errorf("incorrect phone, email or password: %w", domain.ErrUnauthorized)
	}
	return s.signer.Sign(identifier)
}

// RequestPasswordReset issues a reset code for a registered contact. The
// account lookup happens before any code is issued, so unregistered contacts
// never receive one.
func (s *service) RequestPasswordReset(ctx context.Context, req ResetPasswordRequest) error {
	if req.Phone == nil && req.Email == nil {
		return fmt.Errorf("phone or email required: %w", domain.ErrBadRequest)
	}
	if _, err := s.findByContact(ctx, req.Phone, req.Email); err != nil {
		return lookupErr(err)
	}
	if req.Phone != nil {
		return s.deliverCode(ctx, *req.Phone, true, "Your password reset code: %d")
	}
	return s.deliverCode(ctx, *req.Email, false, "Your password reset code: %d")
}

// ChangePassword consumes the reset code and overwrites the stored password
// hash in one call. Phone is checked first, then email.
func (s *service) ChangePassword(ctx context.Context, req ChangePasswordRequest) error {
	if req.Phone == nil && req.Email == nil {
		return fmt.Errorf("phone or email required: %w", domain.ErrBadRequest)
	}
	if req.Phone != nil && s.codes.VerifyAndConsume(*req.Phone, req.Code) {
		u, err := s.users.GetByPhone(ctx, *req.Phone)
		if err != nil {
			return lookupErr(err)
		}
		return s.updatePassword(ctx, u, req.NewPassword)
	}
	if req.Email != nil && s.codes.VerifyAndConsume(*req.Email, req.Code) {
		u, err := s.users.GetByEmail(ctx, *req.Email)
		if err != nil {
			return lookupErr(err)
		}
		return s.updatePassword(ctx, u, req.NewPassword)
	}
	return fmt.Errorf("invalid verification code: %w", domain.ErrUnauthorized)
}

func (s *service) updatePassword(ctx context.Context, u *domain.User, newPassword string) error {
	hash, err := password.Hash(newPassword)
	if err != nil {
		return err
	}
	if err := s.users.Update(ctx, u.UserID, map[string]interface{}{"password_hash": hash}); err != nil {
		return fmt.Errorf("persist password change: %w", err)
	}
	slog.Info("password changed", "user_id", u.UserID)
	return nil
}

// deliverCode issues a code for the identifier and sends it over SMS or email.
// Delivery failures surface to the caller; the code stays outstanding so the
// user can retry the request.
func (s *service) deliverCode(ctx context.Context, identifier string, byPhone bool, format string) error {
	code, err := s.codes.Issue(identifier)
	if err != nil {
		return err
	}
	msg := fmt.Sprintf(format, code)
	if byPhone {
		if err := s.sms.SendSMS(ctx, identifier, msg); err != nil {
			return fmt.Errorf("send SMS: %w", err)
		}
	} else {
		if err := s.mailer.SendEmail(identifier, "Your verification code", msg); err != nil {
			return fmt.Errorf("send email: %w", err)
		}
	}
	slog.Info("verification code sent", "by_phone", byPhone)
	return nil
}

// resolveIdentifier picks the token subject: phone first, then email.
func resolveIdentifier(phone, email *string) (string, error) {
	switch {
	case phone != nil:
		return *phone, nil
	case email != nil:
		return *email, nil
	default:
		return "", fmt.Errorf("phone or email required: %w", domain.ErrBadRequest)
	}
}

// lookupErr keeps a missing account distinct from a store that failed to
// answer, so handlers do not report infrastructure trouble as a 404.
func lookupErr(err error) error {
	if errors.Is(err, domain.ErrNotFound) {
		return fmt.Errorf("user not found: %w", domain.ErrNotFound)
	}
	return fmt.Errorf("lookup user: %w", err)
}

// findByContact looks the account up by phone when supplied, by email otherwise.
func (s *service) findByContact(ctx context.Context, phone, email *string) (*domain.User, error) {
	if phone != nil {
		return s.users.GetByPhone(ctx, *phone)
	}
	return s.users.GetByEmail(ctx, *email)
}
