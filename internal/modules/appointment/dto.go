package appointment

import (
	"strings"

	"barbearia/internal/domain"
	"barbearia/internal/pkg/validator"
)

type CreateAppointmentRequest struct {
	Nome           string  `json:"nome" validate:"required"`
	Servico        string  `json:"servico" validate:"required"`
	Barbeiro       string  `json:"barbeiro" validate:"required"`
	Dia            string  `json:"dia" validate:"required"`
	Horario        string  `json:"horario" validate:"required"`
	FormaPagamento *string `json:"forma_pagamento,omitempty"`
}

// Validate trims the request and converts it into a domain value. Only a
// request that passes here reaches the service.
func (r CreateAppointmentRequest) Validate() (domain.NewAppointment, error) {
	r.Nome = strings.TrimSpace(r.Nome)
	r.Servico = strings.TrimSpace(r.Servico)
	r.Barbeiro = strings.TrimSpace(r.Barbeiro)
	r.Dia = strings.TrimSpace(r.Dia)
	r.Horario = strings.TrimSpace(r.Horario)

	if errs := validator.Validate(r); errs != nil {
		return domain.NewAppointment{}, &ValidationError{Fields: errs}
	}

	return domain.NewAppointment{
		ClientName:    r.Nome,
		Service:       r.Servico,
		Barber:        r.Barbeiro,
		Date:          r.Dia,
		Time:          r.Horario,
		PaymentMethod: trimmed(r.FormaPagamento),
	}, nil
}

// UpdateAppointmentRequest accepts the payment label as either "pagamento"
// or "forma_pagamento"; "pagamento" wins when both are sent.
type UpdateAppointmentRequest struct {
	Dia            string  `json:"dia" validate:"required"`
	Horario        string  `json:"horario" validate:"required"`
	Barbeiro       string  `json:"barbeiro" validate:"required"`
	Pagamento      *string `json:"pagamento,omitempty"`
	FormaPagamento *string `json:"forma_pagamento,omitempty"`
}

func (r UpdateAppointmentRequest) Validate() (domain.Reschedule, error) {
	r.Dia = strings.TrimSpace(r.Dia)
	r.Horario = strings.TrimSpace(r.Horario)
	r.Barbeiro = strings.TrimSpace(r.Barbeiro)

	if errs := validator.Validate(r); errs != nil {
		return domain.Reschedule{}, &ValidationError{Fields: errs}
	}

	payment := r.Pagamento
	if payment == nil {
		payment = r.FormaPagamento
	}
	if payment != nil {
		v := strings.TrimSpace(*payment)
		payment = &v
	}

	return domain.Reschedule{
		Barber:        r.Barbeiro,
		Date:          r.Dia,
		Time:          r.Horario,
		PaymentMethod: payment,
	}, nil
}

type ListQuery struct {
	Barbeiro string `form:"barbeiro"`
	Dia      string `form:"dia"`
}

func (q ListQuery) Filter() domain.AppointmentFilter {
	return domain.AppointmentFilter{
		Barber: strings.TrimSpace(q.Barbeiro),
		Date:   strings.TrimSpace(q.Dia),
	}
}

func trimmed(s *string) string {
	if s == nil {
		return ""
	}
	return strings.TrimSpace(*s)
}
