package earnings

import (
	"context"

	"barbearia/internal/domain"
)

type AppointmentLister interface {
	List(ctx context.Context, f domain.AppointmentFilter) ([]domain.Appointment, error)
}
