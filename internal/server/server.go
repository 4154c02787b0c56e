package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"barbearia/internal/config"
	"barbearia/internal/database"
	"barbearia/internal/domain"
	"barbearia/internal/metrics"
	"barbearia/internal/middleware"
	"barbearia/internal/modules/appointment"
	"barbearia/internal/modules/auth"
	"barbearia/internal/modules/earnings"
	"barbearia/internal/modules/frontend"
	jwtsvc "barbearia/internal/pkg/jwt"
	"barbearia/internal/repository"
)

const healthTimeout = 2 * time.Second

type Deps struct {
	Config *config.Config
	DB     *gorm.DB
	Log    *zerolog.Logger
}

// NewRouter builds repositories, services and handlers on top of db and
// mounts them under /api.
func NewRouter(d Deps) *gin.Engine {
	metrics.Register()

	appointmentRepo := repository.NewAppointmentRepository(d.DB)
	barberRepo := repository.NewBarberRepository(d.DB)

	j := jwtsvc.New(d.Config.JWTSecret, d.Config.JWTTTL)

	authService := auth.NewService(barberRepo, j, d.Config.LoginRatePerMinute)
	authHandler := auth.NewHandler(authService, d.Log)

	appointmentService := appointment.NewService(appointmentRepo)
	appointmentHandler := appointment.NewHandler(appointmentService, d.Log)

	earningsService := earnings.NewService(appointmentRepo, d.Config.Pricing)
	earningsHandler := earnings.NewHandler(earningsService, d.Log)

	frontendHandler := frontend.NewHandler(d.Config.StaticDir)

	r := gin.New()
	// ClientIP keys the login limiter, so forwarded headers are honoured
	// only from the configured proxies.
	if err := r.SetTrustedProxies(d.Config.TrustedProxies); err != nil {
		d.Log.Warn().Err(err).Msg("invalid TRUSTED_PROXIES, trusting none")
		_ = r.SetTrustedProxies(nil)
	}
	r.Use(middleware.ErrorLogger(d.Log))
	r.Use(middleware.RequestLogger(d.Log))
	r.Use(middleware.Metrics())
	r.Use(middleware.CORS(d.Config.CORSAllowedOrigins))

	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	api := r.Group("/api")
	{
		api.GET("", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"ok": true})
		})
		api.GET("/health", health(d.DB))

		authHandler.RegisterRoutes(api)

		protected := api.Group("")
		protected.Use(middleware.JWTAuth(j), middleware.RequireRole(domain.RoleBarber, domain.RoleManager))

		appointmentHandler.RegisterRoutes(api, protected)
		earningsHandler.RegisterRoutes(protected)
	}

	r.NoRoute(frontendHandler.NoRoute)
	return r
}

func health(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), healthTimeout)
		defer cancel()

		if err := database.Ping(ctx, db); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"ok": false, "db": "down"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"ok": true, "db": "up"})
	}
}
