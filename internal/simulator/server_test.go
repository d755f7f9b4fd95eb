package simulator

import (
	"context"
	"net"
	"testing"
	"time"

	"dlccontrol/internal/decop"
)

func TestServe_RoundTripThroughDecopClient(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	dev := New(Options{Wavelength: true})
	served := make(chan error, 1)
	go func() { served <- dev.Serve(ctx, ln) }()

	port := ln.Addr().(*net.TCPAddr).Port
	c, err := decop.Dial(ctx, decop.Config{Address: "127.0.0.1", Port: port, Timeout: time.Second})
	if err != nil {
		t.Fatalf("dial: %v", err)
	}

	if err := c.Set(ctx, "laser1:ctl:wavelength-set", 1560.5); err != nil {
		t.Fatalf("set: %v", err)
	}
	v, err := c.Get(ctx, "laser1:ctl:wavelength-set")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if f, _ := v.Float(); f != 1560.5 {
		t.Fatalf("got %v, want 1560.5", f)
	}
	if _, err := c.Get(ctx, "laser1:dl:tc:temp-set"); !decop.IsDeviceError(err) {
		t.Fatalf("expected device error over the wire, got %v", err)
	}
	ul, err := c.Exec(ctx, "change-ul", 2, MaintenancePassword)
	if err != nil {
		t.Fatalf("exec: %v", err)
	}
	if n, _ := ul.Int(); n != 2 {
		t.Fatalf("ul=%v, want 2", ul)
	}

	_ = c.Close()
	cancel()
	select {
	case err := <-served:
		if err != nil {
			t.Fatalf("Serve returned %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("Serve did not stop after cancel")
	}
}
