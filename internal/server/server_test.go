package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"barbearia/internal/config"
	"barbearia/internal/database"
	"barbearia/internal/domain"
	"barbearia/internal/repository"
)

type testServer struct {
	router *gin.Engine
	db     *gorm.DB
}

func setupServer(t *testing.T, opts ...func(*config.Config)) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)
	log := zerolog.Nop()
	dir := t.TempDir()

	db, err := database.Connect(config.DatabaseConfig{URL: filepath.Join(dir, "e2e.db")}, &log)
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close(db) })
	require.NoError(t, database.Migrate(context.Background(), db, &log))

	static := filepath.Join(dir, "public")
	require.NoError(t, os.MkdirAll(static, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(static, "index.html"), []byte("<title>Barbearia</title>"), 0o644))

	barbers := repository.NewBarberRepository(db)
	for _, b := range []struct {
		user string
		role domain.BarberRole
	}{{"ana", domain.RoleBarber}, {"bia", domain.RoleBarber}, {"chefe", domain.RoleManager}} {
		hash, err := bcrypt.GenerateFromPassword([]byte("senha-"+b.user), bcrypt.MinCost)
		require.NoError(t, err)
		require.NoError(t, barbers.Upsert(context.Background(), &domain.Barber{
			Username: b.user, PasswordHash: string(hash), Role: b.role,
		}))
	}

	cfg := &config.Config{
		AppEnv:             "test",
		JWTSecret:          "e2e-secret",
		JWTTTL:             time.Hour,
		Pricing:            domain.DefaultPricingPolicy().Normalize(),
		StaticDir:          static,
		CORSAllowedOrigins: []string{"*"},
	}
	for _, opt := range opts {
		opt(cfg)
	}

	return &testServer{router: NewRouter(Deps{Config: cfg, DB: db, Log: &log}), db: db}
}

func (s *testServer) do(t *testing.T, method, path string, body any, token string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *testServer) login(t *testing.T, user string) string {
	t.Helper()
	w := s.do(t, http.MethodPost, "/api/login", gin.H{"usuario": user, "senha": "senha-" + user}, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		OK    bool   `json:"ok"`
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.True(t, resp.OK)
	return resp.Token
}

func booking(nome, servico, barbeiro, dia, horario string) gin.H {
	return gin.H{"nome": nome, "servico": servico, "barbeiro": barbeiro, "dia": dia, "horario": horario}
}

func TestE2E_Health(t *testing.T) {
	s := setupServer(t)

	w := s.do(t, http.MethodGet, "/api", nil, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"ok":true}`, w.Body.String())

	w = s.do(t, http.MethodGet, "/api/health", nil, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"ok":true,"db":"up"}`, w.Body.String())
}

func TestE2E_BookingLifecycle(t *testing.T) {
	s := setupServer(t)

	w := s.do(t, http.MethodPost, "/api/agendamentos", booking("João", "corte e barba", "ana", "2024-03-01", "10:00"), "")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var created domain.Appointment
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.NotZero(t, created.ID)

	// same slot, different client
	w = s.do(t, http.MethodPost, "/api/agendamentos", booking("Maria", "corte", "ana", "2024-03-01", "10:00"), "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "CONFLICT")

	// same slot, another barber
	w = s.do(t, http.MethodPost, "/api/agendamentos", booking("Maria", "corte", "bia", "2024-03-01", "10:00"), "")
	require.Equal(t, http.StatusCreated, w.Code)

	w = s.do(t, http.MethodGet, "/api/agendamentos?barbeiro=ana", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	var list []domain.Appointment
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	assert.Len(t, list, 1)

	path := "/api/agendamentos/" + jsonID(created.ID)

	// edits need a token
	w = s.do(t, http.MethodPut, path, gin.H{"dia": "2024-03-02", "horario": "09:00", "barbeiro": "ana"}, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	token := s.login(t, "ana")
	w = s.do(t, http.MethodPut, path, gin.H{"dia": "2024-03-02", "horario": "09:00", "barbeiro": "ana", "pagamento": "pix"}, token)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var updated domain.Appointment
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &updated))
	assert.Equal(t, "2024-03-02", updated.Date)
	assert.Equal(t, "pix", updated.PaymentMethod)

	// moving onto bia's booked slot conflicts
	w = s.do(t, http.MethodPut, path, gin.H{"dia": "2024-03-01", "horario": "10:00", "barbeiro": "bia"}, s.login(t, "chefe"))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "CONFLICT")

	w = s.do(t, http.MethodDelete, path, nil, token)
	require.Equal(t, http.StatusOK, w.Code)

	w = s.do(t, http.MethodGet, path, nil, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	w = s.do(t, http.MethodDelete, path, nil, token)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestE2E_ConcurrentBookingsSameSlot(t *testing.T) {
	s := setupServer(t)

	const n = 6
	codes := make([]int, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			w := s.do(t, http.MethodPost, "/api/agendamentos", booking("Cliente", "corte", "ana", "2024-03-05", "15:00"), "")
			codes[i] = w.Code
		}(i)
	}
	wg.Wait()

	created := 0
	for _, c := range codes {
		if c == http.StatusCreated {
			created++
		} else {
			assert.Equal(t, http.StatusBadRequest, c)
		}
	}
	assert.Equal(t, 1, created)
}

func TestE2E_EarningsAndReport(t *testing.T) {
	s := setupServer(t)

	for _, b := range []gin.H{
		booking("A", "corte e barba", "ana", "2024-03-01", "09:00"),
		booking("B", "corte e barba", "ana", "2024-03-01", "10:00"),
		booking("C", "corte", "bia", "2024-03-01", "09:00"),
	} {
		require.Equal(t, http.StatusCreated, s.do(t, http.MethodPost, "/api/agendamentos", b, "").Code)
	}

	assert.Equal(t, http.StatusUnauthorized, s.do(t, http.MethodGet, "/api/ganhos", nil, "").Code)

	manager := s.login(t, "chefe")
	w := s.do(t, http.MethodGet, "/api/ganhos", nil, manager)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"ana":20,"bia":7}`, w.Body.String())

	barber := s.login(t, "bia")
	w = s.do(t, http.MethodGet, "/api/ganhos", nil, barber)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"bia":7}`, w.Body.String())

	w = s.do(t, http.MethodGet, "/api/relatorio?dia=2024-03-01", nil, manager)
	require.Equal(t, http.StatusOK, w.Code)
	var rep struct {
		Barbeiros []struct {
			Barbeiro string `json:"barbeiro"`
			Itens    []any  `json:"itens"`
		} `json:"barbeiros"`
		Totais struct {
			Atendimentos int     `json:"atendimentos"`
			Comissao     float64 `json:"comissao"`
		} `json:"totais"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &rep))
	require.Len(t, rep.Barbeiros, 2)
	assert.Equal(t, "ana", rep.Barbeiros[0].Barbeiro)
	assert.Len(t, rep.Barbeiros[0].Itens, 2)
	assert.Equal(t, 3, rep.Totais.Atendimentos)
	assert.Equal(t, 27.0, rep.Totais.Comissao)

	w = s.do(t, http.MethodGet, "/api/relatorio/export", nil, manager)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), ".xlsx")
}

func TestE2E_LoginFailures(t *testing.T) {
	s := setupServer(t)

	w := s.do(t, http.MethodPost, "/api/login", gin.H{"usuario": "ana", "senha": "errada"}, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = s.do(t, http.MethodPost, "/api/login", gin.H{"usuario": "ana"}, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestE2E_BarberEditsOnlyOwnAppointments(t *testing.T) {
	s := setupServer(t)

	w := s.do(t, http.MethodPost, "/api/agendamentos", booking("Pedro", "corte", "bia", "2024-04-01", "15:00"), "")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var biaRow domain.Appointment
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &biaRow))
	path := "/api/agendamentos/" + jsonID(biaRow.ID)

	ana := s.login(t, "ana")
	w = s.do(t, http.MethodPut, path, gin.H{"dia": "2024-04-02", "horario": "15:00", "barbeiro": "bia"}, ana)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "FORBIDDEN")

	w = s.do(t, http.MethodPut, path, gin.H{"dia": "2024-04-02", "horario": "15:00", "barbeiro": "ana"}, ana)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = s.do(t, http.MethodDelete, path, nil, ana)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = s.do(t, http.MethodGet, path, nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	var unchanged domain.Appointment
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &unchanged))
	assert.Equal(t, "bia", unchanged.Barber)
	assert.Equal(t, "2024-04-01", unchanged.Date)

	w = s.do(t, http.MethodPut, path, gin.H{"dia": "2024-04-02", "horario": "15:00", "barbeiro": "bia"}, s.login(t, "bia"))
	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = s.do(t, http.MethodDelete, path, nil, s.login(t, "chefe"))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestE2E_LoginRateLimitIgnoresForwardedFor(t *testing.T) {
	s := setupServer(t, func(c *config.Config) { c.LoginRatePerMinute = 5 })

	limited := 0
	for i := 0; i < 30; i++ {
		var buf bytes.Buffer
		require.NoError(t, json.NewEncoder(&buf).Encode(gin.H{"usuario": "ana", "senha": "errada"}))
		req := httptest.NewRequest(http.MethodPost, "/api/login", &buf)
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("X-Forwarded-For", fmt.Sprintf("10.0.0.%d", i))
		req.Header.Set("X-Real-IP", fmt.Sprintf("10.0.1.%d", i))
		w := httptest.NewRecorder()
		s.router.ServeHTTP(w, req)
		if w.Code == http.StatusTooManyRequests {
			limited++
		}
	}
	assert.GreaterOrEqual(t, limited, 25)
}

func TestE2E_StaticFallbackAndMetrics(t *testing.T) {
	s := setupServer(t)

	w := s.do(t, http.MethodGet, "/agenda", nil, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Barbearia")

	w = s.do(t, http.MethodGet, "/api/desconhecido", nil, "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = s.do(t, http.MethodGet, "/metrics", nil, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "barbearia_http_requests_total")
}

func jsonID(id int64) string {
	b, _ := json.Marshal(id)
	return string(b)
}
