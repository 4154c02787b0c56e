package auth

import (
	"context"
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"barbearia/internal/domain"
	"barbearia/internal/metrics"
)

// dummyHash is compared against when the user does not exist so that
// unknown usernames take as long as wrong passwords.
var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("barbearia-dummy"), bcrypt.DefaultCost)

type Service struct {
	barbers BarberRepository
	tokens  TokenIssuer
	limiter *loginLimiter
}

type LoginResult struct {
	Barber *domain.Barber
	Token  string
}

// NewService builds the login service. attemptsPerMinute limits attempts per
// client; zero disables the limit.
func NewService(barbers BarberRepository, tokens TokenIssuer, attemptsPerMinute int) *Service {
	return &Service{
		barbers: barbers,
		tokens:  tokens,
		limiter: newLoginLimiter(attemptsPerMinute),
	}
}

// Login verifies the credentials and issues a signed token. clientKey
// identifies the caller for rate limiting, usually the remote IP.
func (s *Service) Login(ctx context.Context, req LoginRequest, clientKey string) (*LoginResult, error) {
	if !s.limiter.Allow(clientKey) {
		metrics.IncLoginFailure("rate_limited")
		return nil, ErrTooManyAttempts
	}

	b, err := s.barbers.GetByUsername(ctx, strings.TrimSpace(req.Usuario))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(req.Senha))
			metrics.IncLoginFailure("unknown_user")
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(b.PasswordHash), []byte(req.Senha)); err != nil {
		metrics.IncLoginFailure("bad_password")
		return nil, ErrInvalidCredentials
	}

	token, err := s.tokens.GenerateToken(b.ID, b.Username, string(b.Role))
	if err != nil {
		return nil, err
	}
	return &LoginResult{Barber: b, Token: token}, nil
}

// HashPassword returns the bcrypt hash stored for a barber.
func HashPassword(plain string) (string, error) {
	if plain == "" {
		return "", errors.New("password must not be empty")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
