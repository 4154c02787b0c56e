package appointment

import (
	"context"

	"barbearia/internal/domain"
)

// AppointmentRepository is the storage the service needs.
type AppointmentRepository interface {
	Create(ctx context.Context, a *domain.Appointment) error
	GetByID(ctx context.Context, id int64) (*domain.Appointment, error)
	List(ctx context.Context, f domain.AppointmentFilter) ([]domain.Appointment, error)
	Reschedule(ctx context.Context, id int64, r domain.Reschedule) (*domain.Appointment, error)
	Delete(ctx context.Context, id int64) error
}
