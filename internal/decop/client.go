package decop

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"time"
)

// Client is the generic key/value interface of the controller. Paths are
// colon-delimited parameter names understood by the firmware, e.g.
// "laser1:scan:frequency".
type Client interface {
	Get(ctx context.Context, path string) (Value, error)
	Set(ctx context.Context, path string, value any) error
	Exec(ctx context.Context, name string, args ...any) (Value, error)
	Close() error
}

// Ensure Conn implements Client.
var _ Client = (*Conn)(nil)

const prompt = "> "

var errorReply = regexp.MustCompile(`^Error:\s*(-?\d+)\s*(.*)$`)

// deadliner is implemented by net.Conn and by the serial adapter.
type deadliner interface {
	SetDeadline(t time.Time) error
}

// Conn speaks the controller's text command line over any byte stream.
//
// Thread Safety:
//   - Exchanges are serialised; Conn is safe for concurrent use.
type Conn struct {
	rwc     io.ReadWriteCloser
	r       *bufio.Reader
	timeout time.Duration

	mu     sync.Mutex
	closed bool
}

// NewConn wraps an established stream and consumes the greeting up to the
// first prompt. timeout bounds every exchange that has no earlier context
// deadline; zero disables it.
func NewConn(ctx context.Context, rwc io.ReadWriteCloser, timeout time.Duration) (*Conn, error) {
	c := &Conn{rwc: rwc, r: bufio.NewReader(rwc), timeout: timeout}
	c.mu.Lock()
	defer c.mu.Unlock()
	stop := c.arm(ctx)
	_, err := c.readReply()
	stop()
	if err != nil {
		_ = rwc.Close()
		return nil, fmt.Errorf("%w: read greeting: %w", ErrConnection, err)
	}
	return c, nil
}

// Get reads a parameter.
func (c *Conn) Get(ctx context.Context, path string) (Value, error) {
	reply, err := c.exchange(ctx, fmt.Sprintf("(param-ref '%s)", path))
	if err != nil {
		return "", fmt.Errorf("get %s: %w", path, err)
	}
	return Value(reply), nil
}

// Set writes a parameter. The firmware answers with a status integer; any
// non-zero status is reported as a DeviceError.
func (c *Conn) Set(ctx context.Context, path string, value any) error {
	lit, err := Encode(value)
	if err != nil {
		return fmt.Errorf("set %s: %w", path, err)
	}
	reply, err := c.exchange(ctx, fmt.Sprintf("(param-set! '%s %s)", path, lit))
	if err != nil {
		return fmt.Errorf("set %s: %w", path, err)
	}
	status, err := Value(reply).Int()
	if err != nil {
		return fmt.Errorf("set %s: %w", path, err)
	}
	if status != 0 {
		return fmt.Errorf("set %s: %w", path, &DeviceError{Code: status})
	}
	return nil
}

// Exec runs a command with positional arguments and returns its reply.
func (c *Conn) Exec(ctx context.Context, name string, args ...any) (Value, error) {
	parts := []string{"exec", "'" + name}
	for _, a := range args {
		lit, err := Encode(a)
		if err != nil {
			return "", fmt.Errorf("exec %s: %w", name, err)
		}
		parts = append(parts, lit)
	}
	reply, err := c.exchange(ctx, "("+strings.Join(parts, " ")+")")
	if err != nil {
		return "", fmt.Errorf("exec %s: %w", name, err)
	}
	return Value(reply), nil
}

// Close closes the underlying stream. Subsequent calls are no-ops.
func (c *Conn) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil
	}
	c.closed = true
	return c.rwc.Close()
}

func (c *Conn) exchange(ctx context.Context, cmd string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return "", ErrClosed
	}

	stop := c.arm(ctx)
	defer stop()

	if _, err := io.WriteString(c.rwc, cmd+"\n"); err != nil {
		return "", c.transportErr(ctx, err)
	}
	reply, err := c.readReply()
	if err != nil {
		return "", c.transportErr(ctx, err)
	}
	if m := errorReply.FindStringSubmatch(reply); m != nil {
		code, _ := strconv.Atoi(m[1])
		return "", &DeviceError{Code: code, Message: strings.TrimSpace(m[2])}
	}
	return reply, nil
}

// arm applies the effective deadline to the stream and interrupts a blocked
// read when ctx is cancelled. The returned func disarms both.
func (c *Conn) arm(ctx context.Context) func() {
	d, ok := c.rwc.(deadliner)
	if !ok {
		return func() {}
	}
	deadline, has := ctx.Deadline()
	if c.timeout > 0 {
		if t := time.Now().Add(c.timeout); !has || t.Before(deadline) {
			deadline, has = t, true
		}
	}
	if has {
		_ = d.SetDeadline(deadline)
	}
	done := make(chan struct{})
	exited := make(chan struct{})
	go func() {
		defer close(exited)
		select {
		case <-ctx.Done():
			_ = d.SetDeadline(time.Now())
		case <-done:
		}
	}()
	return func() {
		close(done)
		<-exited
		_ = d.SetDeadline(time.Time{})
	}
}

func (c *Conn) transportErr(ctx context.Context, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}
	return fmt.Errorf("%w: %w", ErrConnection, err)
}

// readReply reads until the prompt and returns the text before it with
// surrounding whitespace removed.
func (c *Conn) readReply() (string, error) {
	var sb strings.Builder
	for {
		b, err := c.r.ReadByte()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return "", io.ErrUnexpectedEOF
			}
			return "", err
		}
		sb.WriteByte(b)
		s := sb.String()
		if s == prompt || strings.HasSuffix(s, "\n"+prompt) {
			return strings.TrimSpace(strings.TrimSuffix(s, prompt)), nil
		}
	}
}
