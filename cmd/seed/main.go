package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/rs/zerolog"

	"barbearia/internal/config"
	"barbearia/internal/database"
	"barbearia/internal/domain"
	"barbearia/internal/logging"
	"barbearia/internal/modules/auth"
	"barbearia/internal/repository"
)

func main() {
	username := flag.String("usuario", "", "barber username to create or update")
	password := flag.String("senha", "", "plaintext password, stored as a bcrypt hash")
	role := flag.String("tipo", string(domain.RoleBarber), "barbeiro or gerente")
	demo := flag.Bool("demo", false, "insert demo appointments for the next days")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}
	logger := logging.New(cfg.Logging, cfg.AppEnv)

	if *username == "" && !*demo {
		logger.Fatal().Msg("nothing to do: pass -usuario/-senha and/or -demo")
	}

	db, err := database.Connect(cfg.Database, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("DB connection failed")
	}
	defer func() { _ = database.Close(db) }()

	ctx := context.Background()
	if err := database.Migrate(ctx, db, logger); err != nil {
		logger.Fatal().Err(err).Msg("migrate failed")
	}

	if *username != "" {
		barbers := repository.NewBarberRepository(db)
		if err := seedBarber(ctx, barbers, *username, *password, domain.BarberRole(*role)); err != nil {
			logger.Fatal().Err(err).Msg("seed barber failed")
		}
		logger.Info().Str("usuario", *username).Str("tipo", *role).Msg("barber saved")

		all, err := barbers.List(ctx)
		if err != nil {
			logger.Fatal().Err(err).Msg("list barbers failed")
		}
		for _, b := range all {
			logger.Info().Int64("id", b.ID).Str("usuario", b.Username).Str("tipo", string(b.Role)).Msg("barber")
		}
	}

	if *demo {
		seedAppointments(ctx, repository.NewAppointmentRepository(db), logger)
	}
}

func seedBarber(ctx context.Context, repo *repository.BarberRepository, username, password string, role domain.BarberRole) error {
	if !role.Valid() {
		return fmt.Errorf("invalid tipo %q", role)
	}
	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}
	return repo.Upsert(ctx, &domain.Barber{
		Username:     username,
		PasswordHash: hash,
		Role:         role,
	})
}

func seedAppointments(ctx context.Context, repo *repository.AppointmentRepository, logger *zerolog.Logger) {
	barbers := []string{"ana", "bia", "caio"}
	services := []string{"corte", "barba", "corte e barba", "sobrancelha", "pezinho"}
	clients := []string{"João", "Maria", "Pedro", "Lucas", "Rafael", "Gabriel", "Marcos", "Tiago"}
	payments := []string{"dinheiro", "pix", "cartão", ""}

	created, skipped := 0, 0
	for i := 0; i < 20; i++ {
		day := time.Now().AddDate(0, 0, rand.Intn(7)).Format("2006-01-02")
		hour := fmt.Sprintf("%02d:%02d", 9+rand.Intn(10), 30*rand.Intn(2))

		a := &domain.Appointment{
			ClientName:    clients[rand.Intn(len(clients))],
			Service:       services[rand.Intn(len(services))],
			Barber:        barbers[rand.Intn(len(barbers))],
			Date:          day,
			Time:          hour,
			PaymentMethod: payments[rand.Intn(len(payments))],
		}
		if err := repo.Create(ctx, a); err != nil {
			if errors.Is(err, domain.ErrConflict) {
				skipped++
				continue
			}
			logger.Fatal().Err(err).Msg("create demo appointment failed")
		}
		created++
	}
	logger.Info().Int("created", created).Int("skipped_taken_slots", skipped).Msg("demo appointments inserted")
}
