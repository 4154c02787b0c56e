package earnings

import (
	"context"

	"barbearia/internal/domain"
)

// Service recomputes earnings from the stored appointments on every call.
type Service struct {
	appointments AppointmentLister
	policy       domain.PricingPolicy
}

func NewService(appointments AppointmentLister, policy domain.PricingPolicy) *Service {
	return &Service{appointments: appointments, policy: policy.Normalize()}
}

func (s *Service) Earnings(ctx context.Context, f domain.AppointmentFilter) (map[string]float64, error) {
	appts, err := s.appointments.List(ctx, f)
	if err != nil {
		return nil, err
	}
	return Earnings(appts, s.policy), nil
}

func (s *Service) Report(ctx context.Context, f domain.AppointmentFilter) (Report, error) {
	appts, err := s.appointments.List(ctx, f)
	if err != nil {
		return Report{}, err
	}
	return BuildReport(appts, s.policy), nil
}
