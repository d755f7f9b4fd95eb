package models

import (
	"encoding/json"
	"fmt"
	"time"
)

// Limits bounds the numeric settings that are validated locally before a
// write. Nil bounds are unknown until read from the device.
type Limits struct {
	VoltageMin    float64  `json:"vmin"`
	VoltageMax    float64  `json:"vmax"`
	CurrentMin    float64  `json:"cmin"`
	CurrentMax    float64  `json:"cmax"`
	FrequencyMin  float64  `json:"fmin"`
	FrequencyMax  float64  `json:"fmax"`
	TempMin       *float64 `json:"tmin"`
	TempMax       *float64 `json:"tmax"`
	WavelengthMin *float64 `json:"wlmin"`
	WavelengthMax *float64 `json:"wlmax"`
}

// ScanParameters mirrors the internal scan settings.
type ScanParameters struct {
	Enabled       bool          `json:"enabled"`
	OutputChannel OutputChannel `json:"output channel"`
	Frequency     float64       `json:"frequency"`
	Amplitude     float64       `json:"amplitude"`
	Offset        float64       `json:"offset"`
	Start         float64       `json:"start"`
	End           float64       `json:"end"`
}

// RemoteParameters mirrors one analogue remote control unit.
type RemoteParameters struct {
	Enabled bool         `json:"enabled"`
	Factor  float64      `json:"factor"`
	Signal  InputChannel `json:"signal"`
}

// WavelengthParameters is nil-valued when the laser has no wavelength setpoint.
type WavelengthParameters struct {
	Setpoint *float64 `json:"wl setpoint"`
	Actual   *float64 `json:"wl actual"`
}

// TemperatureParameters is nil-valued when the laser has no temperature setpoint.
type TemperatureParameters struct {
	Setpoint *float64 `json:"temp setpoint"`
	Actual   *float64 `json:"temp actual"`
}

// Parameters is a point-in-time snapshot of every setting the wrapper
// controls. Values are read in sequence, not atomically.
type Parameters struct {
	Timestamp   time.Time                       `json:"timestamp"`
	Scan        ScanParameters                  `json:"scan"`
	Remote      map[RemoteUnit]RemoteParameters `json:"analogue remote"`
	Wavelength  WavelengthParameters            `json:"wavelength"`
	Temperature TemperatureParameters           `json:"temperature"`
}

// timestampLayouts are accepted when decoding a snapshot. Files written by
// the Python tool carry str(datetime.now()), a local time without zone.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05Z07:00",
	"2006-01-02 15:04:05",
}

// UnmarshalJSON accepts RFC 3339 timestamps as well as the space-separated
// layout of older snapshot files.
func (p *Parameters) UnmarshalJSON(b []byte) error {
	type plain Parameters
	aux := struct {
		*plain
		Timestamp *string `json:"timestamp"`
	}{plain: (*plain)(p)}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	p.Timestamp = time.Time{}
	if aux.Timestamp == nil || *aux.Timestamp == "" {
		return nil
	}
	ts, err := parseTimestamp(*aux.Timestamp)
	if err != nil {
		return err
	}
	p.Timestamp = ts
	return nil
}

func parseTimestamp(s string) (time.Time, error) {
	for _, layout := range timestampLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("timestamp %q: unrecognised layout", s)
}

// EmissionStatus is the three-way emission readout of the controller.
type EmissionStatus struct {
	ButtonEnabled  bool `json:"emission_button_enabled"`
	CurrentEnabled bool `json:"current_enabled"`
	Emission       bool `json:"emission"`
}

func enabledDisabled(v bool) string {
	if v {
		return "ENABLED"
	}
	return "DISABLED"
}

func (s EmissionStatus) String() string {
	on := "OFF"
	if s.Emission {
		on = "ON"
	}
	return "Emission button is " + enabledDisabled(s.ButtonEnabled) + "\n" +
		"Laser current is " + enabledDisabled(s.CurrentEnabled) + "\n" +
		"Therefore, emission is " + on
}
