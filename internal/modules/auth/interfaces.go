package auth

import (
	"context"

	"barbearia/internal/domain"
)

// BarberRepository is the subset of barber storage used by login.
type BarberRepository interface {
	GetByUsername(ctx context.Context, username string) (*domain.Barber, error)
}

type TokenIssuer interface {
	GenerateToken(barberID int64, username, role string) (string, error)
}
