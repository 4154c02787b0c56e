package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrNotFound = errors.New("not found")
	ErrConflict = errors.New("slot already taken")
)

// Appointment is one booked slot. The (Barber, Date, Time) triple is unique.
type Appointment struct {
	ID            int64     `json:"id"`
	ClientName    string    `json:"nome"`
	Service       string    `json:"servico"`
	Barber        string    `json:"barbeiro"`
	Date          string    `json:"dia"`
	Time          string    `json:"horario"`
	PaymentMethod string    `json:"forma_pagamento,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// NewAppointment carries the fields of a booking request that passed validation.
type NewAppointment struct {
	ClientName    string
	Service       string
	Barber        string
	Date          string
	Time          string
	PaymentMethod string
}

func (n NewAppointment) Validate() error {
	return requireFields(map[string]string{
		"nome":     n.ClientName,
		"servico":  n.Service,
		"barbeiro": n.Barber,
		"dia":      n.Date,
		"horario":  n.Time,
	})
}

// Reschedule moves an existing appointment. A nil PaymentMethod keeps the stored value.
type Reschedule struct {
	Barber        string
	Date          string
	Time          string
	PaymentMethod *string
}

func (r Reschedule) Validate() error {
	return requireFields(map[string]string{
		"barbeiro": r.Barber,
		"dia":      r.Date,
		"horario":  r.Time,
	})
}

// AppointmentFilter narrows a listing. Empty fields are ignored; From and To
// bound Date inclusively.
type AppointmentFilter struct {
	Barber string
	Date   string
	From   string
	To     string
}

// MissingFieldsError lists required fields that were empty.
type MissingFieldsError struct {
	Fields []string
}

func (e *MissingFieldsError) Error() string {
	return fmt.Sprintf("missing required fields: %s", strings.Join(e.Fields, ", "))
}

func requireFields(fields map[string]string) error {
	var missing []string
	for _, name := range []string{"nome", "servico", "barbeiro", "dia", "horario"} {
		v, ok := fields[name]
		if ok && strings.TrimSpace(v) == "" {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return &MissingFieldsError{Fields: missing}
	}
	return nil
}
