package http

import (
	"github.com/go-identity-api/internal/infrastructure/dynamo"
	jwtinfra "github.com/go-identity-api/internal/infrastructure/jwt"
	"github.com/go-identity-api/internal/infrastructure/memory"
	"github.com/go-identity-api/internal/infrastructure/smtp"
	"github.com/go-identity-api/internal/infrastructure/sns"
)

// Deps holds all infrastructure dependencies for the router.
type Deps struct {
	UserRepo    *dynamo.UserRepo
	SupportRepo *dynamo.SupportMessageRepo
	CodeStore   *memory.CodeStore
	Mailer      *smtp.Mailer
	SMSSender   *sns.Sender
	JWTProvider *jwtinfra.Provider
}
