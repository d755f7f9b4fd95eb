package handlers

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"dlccontrol/internal/models"
	"dlccontrol/internal/service"

	"github.com/gin-gonic/gin"
)

// ---- Service Mocks ----

type mockAuth struct {
	signUpID      int
	signUpErr     error
	genTokenToken string
	genTokenErr   error
	parseID       int
	parseErr      error

	lastSignUpUsername string
	lastGenUsername    string
	lastParseToken     string
}

func (m *mockAuth) SignUp(_ context.Context, username, _ string) (int, error) {
	m.lastSignUpUsername = username
	return m.signUpID, m.signUpErr
}

func (m *mockAuth) GenerateToken(_ context.Context, username, _ string) (string, error) {
	m.lastGenUsername = username
	return m.genTokenToken, m.genTokenErr
}

func (m *mockAuth) ParseToken(token string) (int, error) {
	m.lastParseToken = token
	return m.parseID, m.parseErr
}

type mockLaser struct {
	mu sync.Mutex

	params    models.Parameters
	paramsErr error
	limits    models.Limits
	emission  models.EmissionStatus
	setErr    error
	scan      models.ScanParameters
	remote    models.RemoteParameters
	level     models.UserLevel

	lastCurrent     *bool
	lastWavelength  *float64
	lastTemperature *float64
	lastScan        service.ScanParams
	lastRemoteUnit  models.RemoteUnit
	lastRemote      service.RemoteParams
	lastLevel       models.UserLevel
	lastPassword    string
	paramCalls      int
}

func (m *mockLaser) Parameters(context.Context) (models.Parameters, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.paramCalls++
	return m.params, m.paramsErr
}

func (m *mockLaser) Limits() models.Limits { return m.limits }

func (m *mockLaser) EmissionStatus(context.Context) (models.EmissionStatus, error) {
	return m.emission, nil
}

func (m *mockLaser) SetCurrentEnabled(_ context.Context, enabled bool) error {
	m.lastCurrent = &enabled
	return m.setErr
}

func (m *mockLaser) SetWavelength(_ context.Context, nm float64) error {
	m.lastWavelength = &nm
	return m.setErr
}

func (m *mockLaser) SetTemperature(_ context.Context, celsius float64) error {
	m.lastTemperature = &celsius
	return m.setErr
}

func (m *mockLaser) SetScan(_ context.Context, p service.ScanParams) (models.ScanParameters, error) {
	m.lastScan = p
	return m.scan, m.setErr
}

func (m *mockLaser) SetRemote(_ context.Context, unit models.RemoteUnit, p service.RemoteParams) (models.RemoteParameters, error) {
	m.lastRemoteUnit, m.lastRemote = unit, p
	return m.remote, m.setErr
}

func (m *mockLaser) SetUserLevel(_ context.Context, level models.UserLevel, password string) (models.UserLevel, error) {
	m.lastLevel, m.lastPassword = level, password
	return m.level, m.setErr
}

func (m *mockLaser) Close() error { return nil }

func (m *mockLaser) calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.paramCalls
}

type mockSnapshots struct {
	snap    models.Snapshot
	takeErr error
	list    []models.Snapshot
	listErr error

	lastSource string
	lastFilter service.SnapshotFilter
}

func (m *mockSnapshots) Take(_ context.Context, source string) (models.Snapshot, error) {
	m.lastSource = source
	return m.snap, m.takeErr
}

func (m *mockSnapshots) List(_ context.Context, f service.SnapshotFilter) ([]models.Snapshot, error) {
	m.lastFilter = f
	return m.list, m.listErr
}

type mockEventLog struct {
	resp     []models.SettingEvent
	err      error
	lastFrom time.Time
	lastTo   time.Time
	lastType string
}

func (m *mockEventLog) List(_ context.Context, f service.LogFilter) ([]models.SettingEvent, error) {
	m.lastFrom, m.lastTo, m.lastType = f.From, f.To, f.Type
	return m.resp, m.err
}

// ---- Shared Test Helpers ----

func newTestRouter(s *service.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	return NewHandler(s, nil).InitRoutes()
}

// do sends an authenticated request; the mock auth accepts any token.
func do(t *testing.T, r http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, rd)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Authorization", "Bearer valid")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}
