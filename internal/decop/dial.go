package decop

import (
	"context"
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"

	"go.bug.st/serial"
)

// Transports supported by Dial.
const (
	TransportTCP    = "tcp"
	TransportSerial = "serial"
)

// Defaults for the controller's command line.
const (
	DefaultAddress  = "192.168.100.100"
	DefaultPort     = 1998
	DefaultBaudRate = 115200

	defaultConnectTimeout = 10 * time.Second
	defaultTimeout        = 5 * time.Second
)

// Config holds connection configuration.
type Config struct {
	// Transport is "tcp" (default) or "serial".
	Transport string

	// Address is the controller IP or host name for TCP.
	Address string

	// Port is the TCP command-line port. Default: 1998.
	Port int

	// SerialPath is the USB serial device, e.g. "/dev/ttyACM0".
	SerialPath string

	// BaudRate for serial links. Default: 115200.
	BaudRate int

	// ConnectTimeout bounds dialling. Default: 10 seconds.
	ConnectTimeout time.Duration

	// Timeout bounds every exchange. Default: 5 seconds.
	Timeout time.Duration
}

func (cfg Config) withDefaults() Config {
	if cfg.Transport == "" {
		cfg.Transport = TransportTCP
	}
	if cfg.Address == "" {
		cfg.Address = DefaultAddress
	}
	if cfg.Port == 0 {
		cfg.Port = DefaultPort
	}
	if cfg.BaudRate == 0 {
		cfg.BaudRate = DefaultBaudRate
	}
	if cfg.ConnectTimeout == 0 {
		cfg.ConnectTimeout = defaultConnectTimeout
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = defaultTimeout
	}
	return cfg
}

// Dial opens the command line of a controller.
func Dial(ctx context.Context, cfg Config) (*Conn, error) {
	cfg = cfg.withDefaults()

	dialCtx, cancel := context.WithTimeout(ctx, cfg.ConnectTimeout)
	defer cancel()

	switch strings.ToLower(cfg.Transport) {
	case TransportTCP:
		addr := net.JoinHostPort(cfg.Address, strconv.Itoa(cfg.Port))
		var d net.Dialer
		nc, err := d.DialContext(dialCtx, "tcp", addr)
		if err != nil {
			return nil, fmt.Errorf("%w: dial %s: %w", ErrConnection, addr, err)
		}
		return NewConn(dialCtx, nc, cfg.Timeout)
	case TransportSerial:
		if cfg.SerialPath == "" {
			return nil, fmt.Errorf("%w: serial path not set", ErrConnection)
		}
		port, err := serial.Open(cfg.SerialPath, &serial.Mode{
			BaudRate: cfg.BaudRate,
			DataBits: 8,
			Parity:   serial.NoParity,
			StopBits: serial.OneStopBit,
		})
		if err != nil {
			return nil, fmt.Errorf("%w: open %s: %w", ErrConnection, cfg.SerialPath, err)
		}
		return NewConn(dialCtx, &serialStream{Port: port}, cfg.Timeout)
	default:
		return nil, fmt.Errorf("%w: unknown transport %q", ErrConnection, cfg.Transport)
	}
}

// serialStream maps deadlines onto the port's read timeout.
type serialStream struct {
	serial.Port
}

func (s *serialStream) SetDeadline(t time.Time) error {
	if t.IsZero() {
		return s.SetReadTimeout(serial.NoTimeout)
	}
	d := time.Until(t)
	if d <= 0 {
		d = time.Millisecond
	}
	return s.SetReadTimeout(d)
}
