package appointment

import (
	"context"
	"errors"

	"barbearia/internal/domain"
	"barbearia/internal/metrics"
)

type Service struct {
	appointments AppointmentRepository
}

func NewService(appointments AppointmentRepository) *Service {
	return &Service{appointments: appointments}
}

// Create books a slot. Double-booking is rejected by the storage unique index,
// never by a separate read.
func (s *Service) Create(ctx context.Context, req domain.NewAppointment) (*domain.Appointment, error) {
	if err := req.Validate(); err != nil {
		return nil, missingFieldsError(err)
	}

	a := &domain.Appointment{
		ClientName:    req.ClientName,
		Service:       req.Service,
		Barber:        req.Barber,
		Date:          req.Date,
		Time:          req.Time,
		PaymentMethod: req.PaymentMethod,
	}
	if err := s.appointments.Create(ctx, a); err != nil {
		if errors.Is(err, ErrConflict) {
			metrics.IncAppointmentConflict()
		}
		return nil, err
	}

	metrics.IncAppointmentCreated()
	return a, nil
}

func (s *Service) List(ctx context.Context, f domain.AppointmentFilter) ([]domain.Appointment, error) {
	return s.appointments.List(ctx, f)
}

func (s *Service) Get(ctx context.Context, id int64) (*domain.Appointment, error) {
	return s.appointments.GetByID(ctx, id)
}

// Actor is the authenticated barber editing an appointment.
type Actor struct {
	Username string
	Manager  bool
}

// Update moves an appointment to a new barber/date/time. A barbeiro may only
// move its own appointments and may not hand them to another barber.
func (s *Service) Update(ctx context.Context, actor Actor, id int64, req domain.Reschedule) (*domain.Appointment, error) {
	if err := req.Validate(); err != nil {
		return nil, missingFieldsError(err)
	}
	if !actor.Manager && req.Barber != actor.Username {
		return nil, ErrForbidden
	}
	if err := s.authorize(ctx, actor, id); err != nil {
		return nil, err
	}

	a, err := s.appointments.Reschedule(ctx, id, req)
	if err != nil {
		if errors.Is(err, ErrConflict) {
			metrics.IncAppointmentConflict()
		}
		return nil, err
	}
	return a, nil
}

func (s *Service) Delete(ctx context.Context, actor Actor, id int64) error {
	if err := s.authorize(ctx, actor, id); err != nil {
		return err
	}
	return s.appointments.Delete(ctx, id)
}

// authorize lets a gerente edit any row and a barbeiro only its own.
func (s *Service) authorize(ctx context.Context, actor Actor, id int64) error {
	if actor.Manager {
		return nil
	}
	if actor.Username == "" {
		return ErrForbidden
	}
	a, err := s.appointments.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if a.Barber != actor.Username {
		return ErrForbidden
	}
	return nil
}
