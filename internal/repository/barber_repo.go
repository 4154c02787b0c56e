package repository

import (
	"context"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"barbearia/internal/domain"
)

type BarberRepository struct {
	db *gorm.DB
}

func NewBarberRepository(db *gorm.DB) *BarberRepository {
	return &BarberRepository{db: db}
}

type barberModel struct {
	ID        int64     `gorm:"column:id;primaryKey"`
	Usuario   string    `gorm:"column:usuario"`
	SenhaHash string    `gorm:"column:senha_hash"`
	Tipo      string    `gorm:"column:tipo"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

func (barberModel) TableName() string { return "barbeiros" }

func toDomainBarber(m barberModel) *domain.Barber {
	return &domain.Barber{
		ID:           m.ID,
		Username:     m.Usuario,
		PasswordHash: m.SenhaHash,
		Role:         domain.BarberRole(m.Tipo),
		CreatedAt:    m.CreatedAt,
	}
}

func (r *BarberRepository) GetByUsername(ctx context.Context, username string) (*domain.Barber, error) {
	var m barberModel
	err := r.db.WithContext(ctx).
		Where("usuario = ?", strings.TrimSpace(username)).
		First(&m).Error
	if err != nil {
		return nil, translateError(err)
	}
	return toDomainBarber(m), nil
}

// Upsert creates the account or replaces the password hash and role of an
// existing one with the same username.
func (r *BarberRepository) Upsert(ctx context.Context, b *domain.Barber) error {
	m := barberModel{
		Usuario:   strings.TrimSpace(b.Username),
		SenhaHash: b.PasswordHash,
		Tipo:      string(b.Role),
	}
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "usuario"}},
			DoUpdates: clause.AssignmentColumns([]string{"senha_hash", "tipo"}),
		}).
		Create(&m).Error
	if err != nil {
		return translateError(err)
	}

	stored, err := r.GetByUsername(ctx, m.Usuario)
	if err != nil {
		return err
	}
	*b = *stored
	return nil
}

func (r *BarberRepository) List(ctx context.Context) ([]domain.Barber, error) {
	var rows []barberModel
	if err := r.db.WithContext(ctx).Order("usuario").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]domain.Barber, 0, len(rows))
	for _, m := range rows {
		out = append(out, *toDomainBarber(m))
	}
	return out, nil
}
