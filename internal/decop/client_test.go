package decop

import (
	"bufio"
	"context"
	"errors"
	"io"
	"net"
	"strings"
	"testing"
	"time"
)

// scriptedDevice answers each command line with the reply mapped to it.
type scriptedDevice struct {
	replies  map[string]string
	received []string
}

func (d *scriptedDevice) serve(t *testing.T, conn net.Conn) {
	t.Helper()
	defer conn.Close()
	if _, err := io.WriteString(conn, "DeCoF Command Line\n> "); err != nil {
		return
	}
	r := bufio.NewReader(conn)
	for {
		line, err := r.ReadString('\n')
		if err != nil {
			return
		}
		cmd := strings.TrimSpace(line)
		d.received = append(d.received, cmd)
		reply, ok := d.replies[cmd]
		if !ok {
			reply = "Error: -10 unknown command"
		}
		if _, err := io.WriteString(conn, reply+"\n> "); err != nil {
			return
		}
	}
}

func newScriptedConn(t *testing.T, replies map[string]string) (*Conn, *scriptedDevice) {
	t.Helper()
	client, server := net.Pipe()
	dev := &scriptedDevice{replies: replies}
	go dev.serve(t, server)

	c, err := NewConn(context.Background(), client, time.Second)
	if err != nil {
		t.Fatalf("NewConn: %v", err)
	}
	t.Cleanup(func() { _ = c.Close() })
	return c, dev
}

func TestConn_Get(t *testing.T) {
	c, _ := newScriptedConn(t, map[string]string{
		"(param-ref 'laser1:scan:frequency)": "20.5",
		"(param-ref 'emission)":              "#t",
	})
	ctx := context.Background()

	v, err := c.Get(ctx, "laser1:scan:frequency")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if f, _ := v.Float(); f != 20.5 {
		t.Fatalf("got %v, want 20.5", f)
	}
	v, err = c.Get(ctx, "emission")
	if err != nil {
		t.Fatalf("Get emission: %v", err)
	}
	if b, _ := v.Bool(); !b {
		t.Fatalf("expected emission=#t, got %q", v)
	}
}

func TestConn_Get_DeviceErrorPassesThrough(t *testing.T) {
	c, _ := newScriptedConn(t, map[string]string{
		"(param-ref 'laser1:ctl:wavelength-set)": "Error: -21 parameter not found",
	})
	_, err := c.Get(context.Background(), "laser1:ctl:wavelength-set")
	var de *DeviceError
	if !errors.As(err, &de) {
		t.Fatalf("expected DeviceError, got %v", err)
	}
	if de.Code != -21 || de.Message != "parameter not found" {
		t.Fatalf("unexpected device error: %+v", de)
	}
	if errors.Is(err, ErrConnection) {
		t.Fatalf("device error must not be reported as a connection error")
	}
}

func TestConn_Set(t *testing.T) {
	c, dev := newScriptedConn(t, map[string]string{
		"(param-set! 'laser1:scan:frequency 20.0)": "0",
		"(param-set! 'laser1:scan:enabled #f)":     "-7",
	})
	ctx := context.Background()

	if err := c.Set(ctx, "laser1:scan:frequency", 20.0); err != nil {
		t.Fatalf("Set: %v", err)
	}
	err := c.Set(ctx, "laser1:scan:enabled", false)
	var de *DeviceError
	if !errors.As(err, &de) || de.Code != -7 {
		t.Fatalf("expected device error -7, got %v", err)
	}
	if len(dev.received) != 2 {
		t.Fatalf("expected 2 commands, got %v", dev.received)
	}
}

func TestConn_Set_UnsupportedValueNeverSent(t *testing.T) {
	c, dev := newScriptedConn(t, nil)
	err := c.Set(context.Background(), "laser1:scan:frequency", struct{}{})
	if !errors.Is(err, ErrUnsupportedValue) {
		t.Fatalf("expected ErrUnsupportedValue, got %v", err)
	}
	if len(dev.received) != 0 {
		t.Fatalf("nothing should be sent, got %v", dev.received)
	}
}

func TestConn_Exec(t *testing.T) {
	c, _ := newScriptedConn(t, map[string]string{
		`(exec 'change-ul 2 "CAUTION")`: "2",
	})
	v, err := c.Exec(context.Background(), "change-ul", 2, "CAUTION")
	if err != nil {
		t.Fatalf("Exec: %v", err)
	}
	if n, _ := v.Int(); n != 2 {
		t.Fatalf("got %q, want 2", v)
	}
}

func TestConn_CloseIsIdempotentAndBlocksCalls(t *testing.T) {
	c, _ := newScriptedConn(t, nil)
	if err := c.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if err := c.Close(); err != nil {
		t.Fatalf("second Close: %v", err)
	}
	if _, err := c.Get(context.Background(), "ul"); !errors.Is(err, ErrClosed) {
		t.Fatalf("expected ErrClosed, got %v", err)
	}
}

func TestConn_ContextCancelled(t *testing.T) {
	c, _ := newScriptedConn(t, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := c.Get(ctx, "ul"); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestConn_Timeout(t *testing.T) {
	client, server := net.Pipe()
	defer server.Close()
	go func() {
		_, _ = io.WriteString(server, "> ")
		// Swallow the command without replying.
		_, _ = bufio.NewReader(server).ReadString('\n')
	}()

	c, err := NewConn(context.Background(), client, 50*time.Millisecond)
	if err != nil {
		t.Fatalf("NewConn: %v", err)
	}
	defer c.Close()

	_, err = c.Get(context.Background(), "ul")
	if !errors.Is(err, ErrConnection) {
		t.Fatalf("expected ErrConnection on timeout, got %v", err)
	}
}

func TestNewConn_GreetingEOF(t *testing.T) {
	client, server := net.Pipe()
	go func() { _ = server.Close() }()
	if _, err := NewConn(context.Background(), client, time.Second); !errors.Is(err, ErrConnection) {
		t.Fatalf("expected ErrConnection, got %v", err)
	}
}

func TestDial_UnknownTransport(t *testing.T) {
	_, err := Dial(context.Background(), Config{Transport: "carrier-pigeon"})
	if !errors.Is(err, ErrConnection) {
		t.Fatalf("expected ErrConnection, got %v", err)
	}
}

func TestDial_TCP(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	defer ln.Close()
	dev := &scriptedDevice{replies: map[string]string{"(param-ref 'ul)": "3"}}
	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		dev.serve(t, conn)
	}()

	addr := ln.Addr().(*net.TCPAddr)
	c, err := Dial(context.Background(), Config{Address: "127.0.0.1", Port: addr.Port})
	if err != nil {
		t.Fatalf("Dial: %v", err)
	}
	defer c.Close()
	v, err := c.Get(context.Background(), "ul")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if n, _ := v.Int(); n != 3 {
		t.Fatalf("got %q, want 3", v)
	}
}
