package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"dlccontrol/internal/dlc"
	"dlccontrol/internal/models"
	"dlccontrol/internal/simulator"
)

func newLaser(t *testing.T, opts simulator.Options) (*LaserService, *simulator.Device) {
	t.Helper()
	dev := simulator.New(opts)
	ctrl, err := dlc.New(context.Background(), dev, dlc.Options{ServicePassword: simulator.ServicePassword})
	if err != nil {
		t.Fatalf("dlc.New: %v", err)
	}
	t.Cleanup(func() { _ = ctrl.Close() })
	return NewLaserService(ctrl), dev
}

func ptr[T any](v T) *T { return &v }

func TestLaserService_SetScan(t *testing.T) {
	svc, dev := newLaser(t, simulator.Options{})
	ctx := context.Background()

	got, err := svc.SetScan(ctx, ScanParams{
		Frequency: ptr(40.0),
		Offset:    ptr(100.0),
		Amplitude: ptr(20.0),
		Enabled:   ptr(false),
	})
	if err != nil {
		t.Fatalf("SetScan: %v", err)
	}
	if got.Frequency != 40 || got.Offset != 100 || got.Amplitude != 20 || got.Enabled {
		t.Fatalf("unexpected scan state %+v", got)
	}
	if got.OutputChannel != models.OutputPC {
		t.Fatalf("output channel changed: %v", got.OutputChannel)
	}
	if n := len(dev.Writes()); n != 4 {
		t.Fatalf("writes=%d; want 4: %+v", n, dev.Writes())
	}
}

func TestLaserService_SetScanOutOfRange(t *testing.T) {
	svc, dev := newLaser(t, simulator.Options{})

	_, err := svc.SetScan(context.Background(), ScanParams{
		Frequency: ptr(30.0),
		Offset:    ptr(139.0),
	})
	var oor *dlc.OutOfRangeError
	if !errors.As(err, &oor) {
		t.Fatalf("expected OutOfRangeError; got %v", err)
	}
	// Frequency precedes the window and was applied before the failure.
	w := dev.Writes()
	if len(w) != 1 || w[0].Path != "laser1:scan:frequency" {
		t.Fatalf("unexpected writes %+v", w)
	}
}

func TestLaserService_SetRemote(t *testing.T) {
	svc, _ := newLaser(t, simulator.Options{})
	ctx := context.Background()

	got, err := svc.SetRemote(ctx, models.RemoteCC, RemoteParams{
		Signal:  ptr(models.InputFine2),
		Factor:  ptr(5.0),
		Enabled: ptr(true),
	})
	if err != nil {
		t.Fatalf("SetRemote: %v", err)
	}
	want := models.RemoteParameters{Enabled: true, Factor: 5, Signal: models.InputFine2}
	if got != want {
		t.Fatalf("got %+v; want %+v", got, want)
	}

	if _, err := svc.SetRemote(ctx, models.RemoteUnit("xx"), RemoteParams{}); !errors.Is(err, dlc.ErrInvalidRemoteUnit) {
		t.Fatalf("expected ErrInvalidRemoteUnit; got %v", err)
	}
}

func TestLaserService_Capabilities(t *testing.T) {
	svc, _ := newLaser(t, simulator.Options{Temperature: true})
	ctx := context.Background()

	if err := svc.SetWavelength(ctx, 1550); !errors.Is(err, dlc.ErrWavelengthUnsupported) {
		t.Fatalf("expected ErrWavelengthUnsupported; got %v", err)
	}
	if err := svc.SetTemperature(ctx, 30); err != nil {
		t.Fatalf("SetTemperature: %v", err)
	}
	p, err := svc.Parameters(ctx)
	if err != nil {
		t.Fatalf("Parameters: %v", err)
	}
	if p.Temperature.Setpoint == nil || *p.Temperature.Setpoint != 30 {
		t.Fatalf("temperature setpoint = %v", p.Temperature.Setpoint)
	}
	if p.Wavelength.Setpoint != nil {
		t.Fatalf("wavelength setpoint should be absent")
	}
}

func TestLaserService_Concurrent(t *testing.T) {
	svc, _ := newLaser(t, simulator.Options{})
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if i%2 == 0 {
				_, _ = svc.Parameters(ctx)
				return
			}
			_ = svc.SetCurrentEnabled(ctx, i%4 == 1)
		}(i)
	}
	wg.Wait()

	if _, err := svc.EmissionStatus(ctx); err != nil {
		t.Fatalf("EmissionStatus: %v", err)
	}
}
