package service

import (
	"time"

	"dlccontrol/internal/models"
)

// ScanParams is a partial scan update; nil fields are left unchanged.
type ScanParams struct {
	Enabled       *bool
	OutputChannel *models.OutputChannel
	Frequency     *float64
	Offset        *float64
	Amplitude     *float64
	Start         *float64
	End           *float64
}

// RemoteParams is a partial update of one remote control unit.
type RemoteParams struct {
	Enabled *bool
	Factor  *float64
	Signal  *models.InputChannel
}

// LogFilter selects audit events by time range and type.
type LogFilter struct {
	From time.Time // inclusive; zero means no lower bound
	To   time.Time // inclusive; zero means no upper bound
	Type string    // "", "SET", "EXEC", "SNAPSHOT", "ERROR"
}

// SnapshotFilter selects stored snapshots, newest first.
type SnapshotFilter struct {
	From  time.Time
	To    time.Time
	Limit int
}
