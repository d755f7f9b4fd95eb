package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"dlccontrol/internal/decop"
	"dlccontrol/internal/dlc"
	"dlccontrol/internal/models"
	"dlccontrol/internal/service"
)

var errDB = errors.New("database is locked")

func laserRouter(l *mockLaser) http.Handler {
	return newTestRouter(&service.Service{Authorization: &mockAuth{parseID: 1}, Laser: l})
}

func TestHealth(t *testing.T) {
	r := newTestRouter(&service.Service{})
	if w := do(t, r, http.MethodGet, "/health", ""); w.Code != http.StatusOK {
		t.Fatalf("health status=%d", w.Code)
	}
}

func TestLaserRequiresAuth(t *testing.T) {
	r := laserRouter(&mockLaser{})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/laser/parameters", nil))
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status=%d; want 401", w.Code)
	}
}

func TestGetParameters(t *testing.T) {
	wl := 1550.5
	l := &mockLaser{params: models.Parameters{
		Scan:       models.ScanParameters{OutputChannel: models.OutputPC, Frequency: 20},
		Wavelength: models.WavelengthParameters{Setpoint: &wl},
	}}
	w := do(t, laserRouter(l), http.MethodGet, "/api/v1/laser/parameters", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	var out struct {
		Scan        map[string]any `json:"scan"`
		Wavelength  map[string]any `json:"wavelength"`
		Temperature map[string]any `json:"temperature"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if out.Scan["output channel"] != float64(50) || out.Wavelength["wl setpoint"] != wl {
		t.Fatalf("unexpected body %s", w.Body.String())
	}
	if out.Temperature["temp setpoint"] != nil {
		t.Fatalf("absent temperature should be null: %s", w.Body.String())
	}
}

func TestSetWavelength_ErrorMapping(t *testing.T) {
	oor := &dlc.OutOfRangeError{Parameter: "wavelength", Value: 1700, Range: dlc.Range{Min: 1510, Max: 1630}}
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"ok", nil, http.StatusOK},
		{"out of range", oor, http.StatusBadRequest},
		{"unsupported", dlc.ErrWavelengthUnsupported, http.StatusConflict},
		{"device error", fmt.Errorf("set x: %w", &decop.DeviceError{Code: -11, Message: "access denied"}), http.StatusUnprocessableEntity},
		{"link down", fmt.Errorf("%w: reset by peer", decop.ErrConnection), http.StatusServiceUnavailable},
		{"other", errDB, http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			l := &mockLaser{setErr: tc.err}
			w := do(t, laserRouter(l), http.MethodPut, "/api/v1/laser/wavelength", `{"wavelength":1700}`)
			if w.Code != tc.want {
				t.Fatalf("status=%d; want %d (body=%s)", w.Code, tc.want, w.Body.String())
			}
			if l.lastWavelength == nil || *l.lastWavelength != 1700 {
				t.Fatalf("wavelength not forwarded: %v", l.lastWavelength)
			}
		})
	}
}

func TestOutOfRangeBody(t *testing.T) {
	l := &mockLaser{setErr: &dlc.OutOfRangeError{Parameter: "diode temperature", Value: 50, Range: dlc.Range{Min: 15, Max: 40}}}
	w := do(t, laserRouter(l), http.MethodPut, "/api/v1/laser/temperature", `{"temperature":50}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status=%d", w.Code)
	}
	var out struct {
		Parameter string     `json:"parameter"`
		Value     float64    `json:"value"`
		Range     [2]float64 `json:"range"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("unmarshal: %v (%s)", err, w.Body.String())
	}
	if out.Parameter != "diode temperature" || out.Value != 50 || out.Range != [2]float64{15, 40} {
		t.Fatalf("unexpected body %+v", out)
	}
}

func TestBadBodies(t *testing.T) {
	cases := []struct {
		method, target, body string
	}{
		{http.MethodPut, "/api/v1/laser/wavelength", `{}`},
		{http.MethodPut, "/api/v1/laser/current", `{"enabled":"yes"}`},
		{http.MethodPut, "/api/v1/laser/scan", `{"output_channel":"piezo"}`},
		{http.MethodPut, "/api/v1/laser/remote/xx", `{}`},
		{http.MethodPut, "/api/v1/laser/remote/cc", `{"signal":"NotSelected"}`},
		{http.MethodPost, "/api/v1/laser/user-level", `{"level":"admin"}`},
	}
	for _, tc := range cases {
		t.Run(tc.target+" "+tc.body, func(t *testing.T) {
			l := &mockLaser{}
			if w := do(t, laserRouter(l), tc.method, tc.target, tc.body); w.Code != http.StatusBadRequest {
				t.Fatalf("status=%d; want 400 (body=%s)", w.Code, w.Body.String())
			}
		})
	}
}

func TestSetScan_ParsesChannel(t *testing.T) {
	l := &mockLaser{scan: models.ScanParameters{OutputChannel: models.OutputCC, Offset: 100}}
	w := do(t, laserRouter(l), http.MethodPut, "/api/v1/laser/scan", `{"output_channel":"cc","offset":100}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	if l.lastScan.OutputChannel == nil || *l.lastScan.OutputChannel != models.OutputCC {
		t.Fatalf("channel not parsed: %+v", l.lastScan)
	}
	if l.lastScan.Offset == nil || *l.lastScan.Offset != 100 || l.lastScan.Amplitude != nil {
		t.Fatalf("unexpected scan params %+v", l.lastScan)
	}
}

func TestSetRemote(t *testing.T) {
	l := &mockLaser{remote: models.RemoteParameters{Enabled: true, Factor: 2, Signal: models.InputFast3}}
	w := do(t, laserRouter(l), http.MethodPut, "/api/v1/laser/remote/PC", `{"enabled":true,"factor":2,"signal":"fast3"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	if l.lastRemoteUnit != models.RemotePC || l.lastRemote.Signal == nil || *l.lastRemote.Signal != models.InputFast3 {
		t.Fatalf("unexpected remote call %q %+v", l.lastRemoteUnit, l.lastRemote)
	}
}

func TestSetUserLevel(t *testing.T) {
	cases := []struct {
		name    string
		granted models.UserLevel
		want    bool
	}{
		{"granted", models.UserLevelMaintenance, true},
		{"refused", models.UserLevelNormal, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			l := &mockLaser{level: tc.granted}
			w := do(t, laserRouter(l), http.MethodPost, "/api/v1/laser/user-level", `{"level":"maintenance"}`)
			if w.Code != http.StatusOK {
				t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
			}
			var out struct {
				Level   string `json:"level"`
				Granted bool   `json:"granted"`
			}
			_ = json.Unmarshal(w.Body.Bytes(), &out)
			if out.Granted != tc.want || out.Level != tc.granted.String() {
				t.Fatalf("unexpected body %s", w.Body.String())
			}
			if l.lastLevel != models.UserLevelMaintenance || l.lastPassword != "" {
				t.Fatalf("forwarded level=%v password=%q", l.lastLevel, l.lastPassword)
			}
		})
	}
}

func TestSetCurrentAndEmission(t *testing.T) {
	l := &mockLaser{emission: models.EmissionStatus{ButtonEnabled: true, CurrentEnabled: true, Emission: true}}
	r := laserRouter(l)

	if w := do(t, r, http.MethodPut, "/api/v1/laser/current", `{"enabled":false}`); w.Code != http.StatusOK {
		t.Fatalf("current status=%d", w.Code)
	}
	if l.lastCurrent == nil || *l.lastCurrent {
		t.Fatalf("enabled=false not forwarded: %v", l.lastCurrent)
	}

	w := do(t, r, http.MethodGet, "/api/v1/laser/emission", "")
	var out struct {
		Summary string `json:"summary"`
	}
	_ = json.Unmarshal(w.Body.Bytes(), &out)
	if out.Summary != l.emission.String() {
		t.Fatalf("summary=%q", out.Summary)
	}
}
