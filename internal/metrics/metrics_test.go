package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMetrics(t *testing.T) {
	// Register should be safe to call multiple times
	Register()
	Register()

	assert.NotPanics(t, func() {
		ObserveHTTP(http.MethodGet, "/api/agendamentos", http.StatusOK, 15*time.Millisecond)
		IncAppointmentCreated()
		IncAppointmentConflict()
		IncLoginFailure("invalid_credentials")
	})
}

func TestHandlerExposesMetrics(t *testing.T) {
	Register()
	IncAppointmentCreated()
	IncLoginFailure("rate_limited")
	ObserveHTTP(http.MethodPost, "/api/login", http.StatusUnauthorized, time.Millisecond)

	w := httptest.NewRecorder()
	Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	body := w.Body.String()
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, body, "barbearia_appointments_created_total")
	assert.Contains(t, body, `barbearia_login_failures_total{reason="rate_limited"}`)
	assert.Contains(t, body, `barbearia_http_requests_total{method="POST",route="/api/login",status="401"}`)
}
