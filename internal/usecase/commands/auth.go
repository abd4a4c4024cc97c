package commands

import (
	"context"
	"crypto/subtle"
	"log/slog"
	"time"

	"venue-booking/internal/domain/auth"
	"venue-booking/internal/pkg/errs"
	"venue-booking/internal/pkg/jwt"
	"venue-booking/internal/pkg/password"
)

var (
	ErrInvalidCredentials   = errs.New("invalid credentials")
	ErrAuthenticationFailed = errs.New("authentication failed")
	ErrTokenGeneration      = errs.New("token generation failed")
)

type LoginResult struct {
	Username    string
	AccessToken string
	ExpiresAt   time.Time
	ExpiresIn   time.Duration
}

type AdminAccount struct {
	Username     string
	PasswordHash string
}

type AuthCommands interface {
	Login(ctx context.Context, username, password string) (*LoginResult, error)
}

type authCommandsImpl struct {
	account    AdminAccount
	jwtService *jwt.Service
	logger     *slog.Logger
}

func NewAuthCommands(account AdminAccount, jwtService *jwt.Service, logger *slog.Logger) AuthCommands {
	return &authCommandsImpl{
		account:    account,
		jwtService: jwtService,
		logger:     logger,
	}
}

func (a *authCommandsImpl) Login(ctx context.Context, username, pw string) (*LoginResult, error) {
	credentials, err := auth.NewCredentials(username, pw)
	if err != nil {
		return nil, errs.Mark(err, ErrAuthenticationFailed)
	}

	if err := a.validate(credentials); err != nil {
		a.logger.WarnContext(ctx, "admin login rejected", slog.String("username", credentials.Username()))
		return nil, err
	}

	token, expiresAt, err := a.jwtService.GenerateToken(credentials.Username(), jwt.RoleAdmin)
	if err != nil {
		return nil, errs.Mark(err, ErrTokenGeneration)
	}

	return &LoginResult{
		Username:    credentials.Username(),
		AccessToken: token,
		ExpiresAt:   expiresAt,
		ExpiresIn:   a.jwtService.TokenDuration(),
	}, nil
}

// validate answers the same error for unknown user and wrong password.
func (a *authCommandsImpl) validate(c auth.Credentials) error {
	userOK := subtle.ConstantTimeCompare([]byte(c.Username()), []byte(a.account.Username)) == 1
	pwErr := password.ComparePassword(a.account.PasswordHash, c.Password())
	if !userOK || pwErr != nil {
		return ErrInvalidCredentials
	}
	return nil
}
