package database

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

// Migration is one forward-only schema step. Versions are applied in
// ascending order, each inside its own transaction.
type Migration struct {
	Version int
	Name    string
	Up      func(tx *gorm.DB) error
}

type schemaMigration struct {
	Version   int       `gorm:"column:version;primaryKey;autoIncrement:false"`
	Name      string    `gorm:"column:name;type:varchar(120);not null"`
	AppliedAt time.Time `gorm:"column:applied_at;not null"`
}

func (schemaMigration) TableName() string { return "schema_migrations" }

// Table snapshots used by the migrations below. They describe the schema at
// the version that introduced them and must not change afterwards.

type appointmentsV1 struct {
	ID        int64     `gorm:"column:id;primaryKey;autoIncrement"`
	Nome      string    `gorm:"column:nome;type:varchar(120);not null"`
	Servico   string    `gorm:"column:servico;type:varchar(120);not null"`
	Barbeiro  string    `gorm:"column:barbeiro;type:varchar(80);not null;uniqueIndex:uniq_agendamentos_barbeiro_dia_horario,priority:1"`
	Dia       string    `gorm:"column:dia;type:varchar(20);not null;uniqueIndex:uniq_agendamentos_barbeiro_dia_horario,priority:2"`
	Horario   string    `gorm:"column:horario;type:varchar(10);not null;uniqueIndex:uniq_agendamentos_barbeiro_dia_horario,priority:3"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (appointmentsV1) TableName() string { return "agendamentos" }

type barbersV2 struct {
	ID        int64     `gorm:"column:id;primaryKey;autoIncrement"`
	Usuario   string    `gorm:"column:usuario;type:varchar(80);not null;uniqueIndex:uniq_barbeiros_usuario"`
	SenhaHash string    `gorm:"column:senha_hash;type:varchar(100);not null"`
	Tipo      string    `gorm:"column:tipo;type:varchar(20);not null;default:'barbeiro'"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

func (barbersV2) TableName() string { return "barbeiros" }

type appointmentsV3 struct {
	ID             int64   `gorm:"column:id;primaryKey;autoIncrement"`
	Dia            string  `gorm:"column:dia;index:idx_agendamentos_dia_horario,priority:1"`
	Horario        string  `gorm:"column:horario;index:idx_agendamentos_dia_horario,priority:2"`
	FormaPagamento *string `gorm:"column:forma_pagamento;type:varchar(40)"`
}

func (appointmentsV3) TableName() string { return "agendamentos" }

// Migrations is the ordered schema history.
var Migrations = []Migration{
	{
		Version: 1,
		Name:    "create_agendamentos",
		Up: func(tx *gorm.DB) error {
			return tx.Migrator().CreateTable(&appointmentsV1{})
		},
	},
	{
		Version: 2,
		Name:    "create_barbeiros",
		Up: func(tx *gorm.DB) error {
			return tx.Migrator().CreateTable(&barbersV2{})
		},
	},
	{
		Version: 3,
		Name:    "agendamentos_forma_pagamento",
		Up: func(tx *gorm.DB) error {
			m := tx.Migrator()
			if !m.HasColumn(&appointmentsV3{}, "FormaPagamento") {
				if err := m.AddColumn(&appointmentsV3{}, "FormaPagamento"); err != nil {
					return err
				}
			}
			if !m.HasIndex(&appointmentsV3{}, "idx_agendamentos_dia_horario") {
				return m.CreateIndex(&appointmentsV3{}, "idx_agendamentos_dia_horario")
			}
			return nil
		},
	},
}

// Migrate applies every migration that is not yet recorded in schema_migrations.
func Migrate(ctx context.Context, db *gorm.DB, log *zerolog.Logger) error {
	return Apply(ctx, db, log, Migrations)
}

func Apply(ctx context.Context, db *gorm.DB, log *zerolog.Logger, migrations []Migration) error {
	db = db.WithContext(ctx)
	if err := db.AutoMigrate(&schemaMigration{}); err != nil {
		return fmt.Errorf("create schema_migrations: %w", err)
	}

	applied, err := AppliedVersions(ctx, db)
	if err != nil {
		return err
	}
	done := make(map[int]bool, len(applied))
	for _, v := range applied {
		done[v] = true
	}

	ordered := make([]Migration, len(migrations))
	copy(ordered, migrations)
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].Version < ordered[j].Version })

	for i, m := range ordered {
		if i > 0 && ordered[i-1].Version == m.Version {
			return fmt.Errorf("duplicate migration version %d", m.Version)
		}
		if done[m.Version] {
			continue
		}

		start := time.Now()
		err := db.Transaction(func(tx *gorm.DB) error {
			if err := m.Up(tx); err != nil {
				return err
			}
			return tx.Create(&schemaMigration{
				Version:   m.Version,
				Name:      m.Name,
				AppliedAt: time.Now().UTC(),
			}).Error
		})
		if err != nil {
			return fmt.Errorf("migration %d (%s): %w", m.Version, m.Name, err)
		}

		log.Info().
			Int("version", m.Version).
			Str("name", m.Name).
			Dur("took", time.Since(start)).
			Msg("migration applied")
	}
	return nil
}

// AppliedVersions lists recorded migration versions in ascending order.
func AppliedVersions(ctx context.Context, db *gorm.DB) ([]int, error) {
	var versions []int
	err := db.WithContext(ctx).
		Model(&schemaMigration{}).
		Order("version").
		Pluck("version", &versions).Error
	if err != nil {
		return nil, fmt.Errorf("read schema_migrations: %w", err)
	}
	return versions, nil
}
