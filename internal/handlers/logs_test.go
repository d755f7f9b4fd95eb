package handlers

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"dlccontrol/internal/models"
	"dlccontrol/internal/service"
)

func TestLogsHandler_ListAndValidation(t *testing.T) {
	now := time.Now().UTC().Truncate(time.Second)
	logs := &mockEventLog{resp: []models.SettingEvent{
		{EventID: "e1", OccurredAt: now, Type: "SET", Path: "laser1:scan:offset", Description: "laser1:scan:offset = 70.0"},
		{EventID: "e2", OccurredAt: now.Add(time.Second), Type: "EXEC", Path: "change-ul"},
	}}
	r := newTestRouter(&service.Service{Authorization: &mockAuth{parseID: 99}, EventLog: logs})

	if w := do(t, r, http.MethodGet, "/api/v1/logs?from=notatime", ""); w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 invalid 'from', got %d", w.Code)
	}
	if w := do(t, r, http.MethodGet, "/api/v1/logs?from=2025-02-02&to=2025-02-01", ""); w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for inverted range, got %d", w.Code)
	}

	w := do(t, r, http.MethodGet, "/api/v1/logs?from="+now.Format(time.RFC3339)+"&to=2099-01-01&type=set", "")
	if w.Code != http.StatusOK {
		t.Fatalf("logs status=%d, body=%s", w.Code, w.Body.String())
	}
	var out struct {
		Count  int                   `json:"count"`
		Events []models.SettingEvent `json:"events"`
	}
	_ = json.Unmarshal(w.Body.Bytes(), &out)
	if out.Count != 2 || out.Events[0].Path != "laser1:scan:offset" {
		t.Fatalf("unexpected response: %+v", out)
	}
	if logs.lastType != "set" {
		t.Fatalf("type forwarded as %q", logs.lastType)
	}
	if !logs.lastFrom.Equal(now) {
		t.Fatalf("from=%v; want %v", logs.lastFrom, now)
	}
	wantTo := time.Date(2099, 1, 1, 23, 59, 59, int(time.Second-time.Nanosecond), time.UTC)
	if !logs.lastTo.Equal(wantTo) {
		t.Fatalf("date-only 'to' = %v; want end of day %v", logs.lastTo, wantTo)
	}
}

func TestLogsHandler_ServiceErrors(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"unknown type", service.ErrUnknownEventType, http.StatusBadRequest},
		{"db failure", errDB, http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := newTestRouter(&service.Service{Authorization: &mockAuth{}, EventLog: &mockEventLog{err: tc.err}})
			if w := do(t, r, http.MethodGet, "/api/v1/logs?type=bogus", ""); w.Code != tc.want {
				t.Fatalf("status=%d; want %d", w.Code, tc.want)
			}
		})
	}
}
