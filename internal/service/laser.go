package service

import (
	"context"
	"fmt"
	"sync"

	"dlccontrol/internal/dlc"
	"dlccontrol/internal/models"
)

// LaserService guards a single Controller with a mutex; the facade itself
// is not safe for concurrent use.
type LaserService struct {
	mu   sync.Mutex
	ctrl *dlc.Controller
}

func NewLaserService(ctrl *dlc.Controller) *LaserService {
	return &LaserService{ctrl: ctrl}
}

// Close closes the controller once no call is in flight.
func (s *LaserService) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ctrl.Close()
}

func (s *LaserService) Parameters(ctx context.Context) (models.Parameters, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ctrl.Parameters(ctx)
}

func (s *LaserService) Limits() models.Limits {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ctrl.Limits()
}

func (s *LaserService) EmissionStatus(ctx context.Context) (models.EmissionStatus, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ctrl.EmissionStatus(ctx)
}

func (s *LaserService) SetCurrentEnabled(ctx context.Context, enabled bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ctrl.SetCurrentEnabled(ctx, enabled)
}

func (s *LaserService) SetWavelength(ctx context.Context, nm float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ctrl.SetWavelengthSetpoint(ctx, nm)
}

func (s *LaserService) SetTemperature(ctx context.Context, celsius float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ctrl.SetTemperatureSetpoint(ctx, celsius)
}

// SetScan applies the given fields in dependency order: output channel
// (which selects the range), frequency, offset/amplitude, start/end, and
// finally the enabled flag. It stops at the first error.
func (s *LaserService) SetScan(ctx context.Context, p ScanParams) (models.ScanParameters, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := s.ctrl
	if p.OutputChannel != nil {
		if err := c.SetScanOutputChannel(ctx, *p.OutputChannel); err != nil {
			return models.ScanParameters{}, err
		}
	}
	if p.Frequency != nil {
		if err := c.SetScanFrequency(ctx, *p.Frequency); err != nil {
			return models.ScanParameters{}, err
		}
	}
	switch {
	case p.Offset != nil && p.Amplitude != nil:
		if err := c.SetScanWindow(ctx, *p.Offset, *p.Amplitude); err != nil {
			return models.ScanParameters{}, err
		}
	case p.Offset != nil:
		if err := c.SetScanOffset(ctx, *p.Offset); err != nil {
			return models.ScanParameters{}, err
		}
	case p.Amplitude != nil:
		if err := c.SetScanAmplitude(ctx, *p.Amplitude); err != nil {
			return models.ScanParameters{}, err
		}
	}
	if p.Start != nil {
		if err := c.SetScanStart(ctx, *p.Start); err != nil {
			return models.ScanParameters{}, err
		}
	}
	if p.End != nil {
		if err := c.SetScanEnd(ctx, *p.End); err != nil {
			return models.ScanParameters{}, err
		}
	}
	if p.Enabled != nil {
		if err := c.SetScanEnabled(ctx, *p.Enabled); err != nil {
			return models.ScanParameters{}, err
		}
	}
	return c.ScanParameters(ctx)
}

// SetRemote updates one remote control unit and returns its new state.
func (s *LaserService) SetRemote(ctx context.Context, unit models.RemoteUnit, p RemoteParams) (models.RemoteParameters, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := s.ctrl
	if p.Signal != nil {
		if err := c.SetRemoteSignal(ctx, unit, *p.Signal); err != nil {
			return models.RemoteParameters{}, err
		}
	}
	if p.Factor != nil {
		if err := c.SetRemoteFactor(ctx, unit, *p.Factor); err != nil {
			return models.RemoteParameters{}, err
		}
	}
	if p.Enabled != nil {
		if err := c.SetRemoteEnabled(ctx, unit, *p.Enabled); err != nil {
			return models.RemoteParameters{}, err
		}
	}
	all, err := c.RemoteParameters(ctx)
	if err != nil {
		return models.RemoteParameters{}, err
	}
	rp, ok := all[unit]
	if !ok {
		return models.RemoteParameters{}, fmt.Errorf("%w: %q", dlc.ErrInvalidRemoteUnit, string(unit))
	}
	return rp, nil
}

func (s *LaserService) SetUserLevel(ctx context.Context, level models.UserLevel, password string) (models.UserLevel, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ctrl.SetUserLevel(ctx, level, password)
}
