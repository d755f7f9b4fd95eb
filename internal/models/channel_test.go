package models

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestParseChannels(t *testing.T) {
	if c, err := ParseOutputChannel(" cc "); err != nil || c != OutputCC {
		t.Fatalf("ParseOutputChannel(cc) = %v, %v", c, err)
	}
	if _, err := ParseOutputChannel("piezo"); err == nil {
		t.Fatal("expected error for unknown output channel")
	}
	if c, err := ParseInputChannel("FAST4"); err != nil || c != InputFast4 {
		t.Fatalf("ParseInputChannel(FAST4) = %v, %v", c, err)
	}
	if _, err := ParseInputChannel("NotSelected"); err == nil {
		t.Fatal("NotSelected must not be requestable")
	}
	if u, err := ParseRemoteUnit("PC"); err != nil || u != RemotePC {
		t.Fatalf("ParseRemoteUnit(PC) = %v, %v", u, err)
	}
}

func TestParseUserLevel(t *testing.T) {
	cases := []struct {
		in      string
		want    UserLevel
		wantErr bool
	}{
		{"maintenance", UserLevelMaintenance, false},
		{"Service", UserLevelService, false},
		{"3", UserLevelNormal, false},
		{"0", UserLevelInternal, false},
		{"5", 0, true},
		{"admin", 0, true},
	}
	for _, tc := range cases {
		got, err := ParseUserLevel(tc.in)
		if (err != nil) != tc.wantErr || got != tc.want {
			t.Errorf("ParseUserLevel(%q) = %v, %v", tc.in, got, err)
		}
	}
}

func TestParametersJSONKeys(t *testing.T) {
	b, err := json.Marshal(Parameters{Remote: map[RemoteUnit]RemoteParameters{RemoteCC: {Signal: InputNotSelected}}})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	for _, key := range []string{`"output channel":0`, `"analogue remote":{"cc"`, `"signal":-3`, `"wl setpoint":null`, `"temp actual":null`} {
		if !strings.Contains(string(b), key) {
			t.Errorf("missing %s in %s", key, b)
		}
	}
}

func TestEmissionStatusString(t *testing.T) {
	got := EmissionStatus{ButtonEnabled: true, CurrentEnabled: false}.String()
	want := "Emission button is ENABLED\nLaser current is DISABLED\nTherefore, emission is OFF"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}
