package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"barbearia/internal/domain"
)

const pgUniqueViolation = "23505"

type AppointmentRepository struct {
	db *gorm.DB
}

func NewAppointmentRepository(db *gorm.DB) *AppointmentRepository {
	return &AppointmentRepository{db: db}
}

type appointmentModel struct {
	ID             int64     `gorm:"column:id;primaryKey"`
	Nome           string    `gorm:"column:nome"`
	Servico        string    `gorm:"column:servico"`
	Barbeiro       string    `gorm:"column:barbeiro"`
	Dia            string    `gorm:"column:dia"`
	Horario        string    `gorm:"column:horario"`
	FormaPagamento *string   `gorm:"column:forma_pagamento"`
	CreatedAt      time.Time `gorm:"column:created_at"`
	UpdatedAt      time.Time `gorm:"column:updated_at"`
}

func (appointmentModel) TableName() string { return "agendamentos" }

func toDomainAppointment(m appointmentModel) domain.Appointment {
	var payment string
	if m.FormaPagamento != nil {
		payment = *m.FormaPagamento
	}

	return domain.Appointment{
		ID:            m.ID,
		ClientName:    m.Nome,
		Service:       m.Servico,
		Barber:        m.Barbeiro,
		Date:          m.Dia,
		Time:          m.Horario,
		PaymentMethod: payment,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

func toAppointmentModel(a *domain.Appointment) appointmentModel {
	return appointmentModel{
		ID:             a.ID,
		Nome:           a.ClientName,
		Servico:        a.Service,
		Barbeiro:       a.Barber,
		Dia:            a.Date,
		Horario:        a.Time,
		FormaPagamento: optionalString(a.PaymentMethod),
		CreatedAt:      a.CreatedAt,
		UpdatedAt:      a.UpdatedAt,
	}
}

// Create inserts the appointment. The unique index on (barbeiro, dia, horario)
// is the only double-booking guard; a violation surfaces as domain.ErrConflict.
func (r *AppointmentRepository) Create(ctx context.Context, a *domain.Appointment) error {
	m := toAppointmentModel(a)
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return translateError(err)
	}
	*a = toDomainAppointment(m)
	return nil
}

func (r *AppointmentRepository) GetByID(ctx context.Context, id int64) (*domain.Appointment, error) {
	var m appointmentModel
	if err := r.db.WithContext(ctx).First(&m, id).Error; err != nil {
		return nil, translateError(err)
	}
	a := toDomainAppointment(m)
	return &a, nil
}

// List returns appointments ordered by dia, horario ascending.
func (r *AppointmentRepository) List(ctx context.Context, f domain.AppointmentFilter) ([]domain.Appointment, error) {
	q := r.db.WithContext(ctx).Model(&appointmentModel{})
	if f.Barber != "" {
		q = q.Where("barbeiro = ?", f.Barber)
	}
	if f.Date != "" {
		q = q.Where("dia = ?", f.Date)
	}
	if f.From != "" {
		q = q.Where("dia >= ?", f.From)
	}
	if f.To != "" {
		q = q.Where("dia <= ?", f.To)
	}

	var rows []appointmentModel
	if err := q.Order("dia ASC").Order("horario ASC").Order("id ASC").Find(&rows).Error; err != nil {
		return nil, err
	}

	out := make([]domain.Appointment, 0, len(rows))
	for _, m := range rows {
		out = append(out, toDomainAppointment(m))
	}
	return out, nil
}

// Reschedule moves the appointment in a single UPDATE. Keeping the row's own
// slot never conflicts with itself because the index only rejects other rows.
func (r *AppointmentRepository) Reschedule(ctx context.Context, id int64, rs domain.Reschedule) (*domain.Appointment, error) {
	updates := map[string]any{
		"barbeiro":   rs.Barber,
		"dia":        rs.Date,
		"horario":    rs.Time,
		"updated_at": time.Now().UTC(),
	}
	if rs.PaymentMethod != nil {
		updates["forma_pagamento"] = optionalString(*rs.PaymentMethod)
	}

	tx := r.db.WithContext(ctx).
		Model(&appointmentModel{}).
		Where("id = ?", id).
		Updates(updates)
	if tx.Error != nil {
		return nil, translateError(tx.Error)
	}
	if tx.RowsAffected == 0 {
		return nil, domain.ErrNotFound
	}
	return r.GetByID(ctx, id)
}

func (r *AppointmentRepository) Delete(ctx context.Context, id int64) error {
	tx := r.db.WithContext(ctx).Delete(&appointmentModel{}, id)
	if tx.Error != nil {
		return translateError(tx.Error)
	}
	if tx.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func translateError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return domain.ErrNotFound
	case isUniqueViolation(err):
		return domain.ErrConflict
	default:
		return err
	}
}

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgUniqueViolation
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

func optionalString(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
