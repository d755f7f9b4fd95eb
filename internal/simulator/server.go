package simulator

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"regexp"
	"strings"
	"sync"

	"dlccontrol/internal/decop"
)

const greeting = "DeCoF Command Line (simulated DLC pro)\n"

var (
	paramRefCmd = regexp.MustCompile(`^\(param-ref\s+'([\w:-]+)\)$`)
	paramSetCmd = regexp.MustCompile(`^\(param-set!\s+'([\w:-]+)\s+(.+)\)$`)
	execCmd     = regexp.MustCompile(`^\(exec\s+'([\w:-]+)\s*(.*)\)$`)
)

// Serve accepts command-line sessions on ln until ctx is canceled or the
// listener fails. Each session is handled in its own goroutine; parameter
// access is serialised by the device.
func (d *Device) Serve(ctx context.Context, ln net.Listener) error {
	var wg sync.WaitGroup
	defer wg.Wait()

	go func() {
		<-ctx.Done()
		_ = ln.Close()
	}()

	for {
		conn, err := ln.Accept()
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, net.ErrClosed) {
				return nil
			}
			return fmt.Errorf("accept: %w", err)
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			d.session(ctx, conn)
		}()
	}
}

func (d *Device) session(ctx context.Context, conn net.Conn) {
	defer func() { _ = conn.Close() }()

	stop := context.AfterFunc(ctx, func() { _ = conn.Close() })
	defer stop()

	if _, err := io.WriteString(conn, greeting+"> "); err != nil {
		return
	}
	r := bufio.NewReader(conn)
	for {
		line, err := r.ReadString('\n')
		if err != nil {
			return
		}
		cmd := strings.TrimSpace(line)
		if cmd == "" {
			if _, err := io.WriteString(conn, "> "); err != nil {
				return
			}
			continue
		}
		if _, err := io.WriteString(conn, d.Handle(cmd)+"\n> "); err != nil {
			return
		}
	}
}

// Handle evaluates a single command line and returns the reply text.
func (d *Device) Handle(cmd string) string {
	d.mu.Lock()
	defer d.mu.Unlock()

	if m := paramRefCmd.FindStringSubmatch(cmd); m != nil {
		v, err := d.get(m[1])
		if err != nil {
			return errorReply(err)
		}
		return string(v)
	}
	if m := paramSetCmd.FindStringSubmatch(cmd); m != nil {
		if err := d.set(m[1], decop.Value(strings.TrimSpace(m[2]))); err != nil {
			var de *decop.DeviceError
			if errors.As(err, &de) {
				return fmt.Sprint(de.Code)
			}
			return errorReply(err)
		}
		return "0"
	}
	if m := execCmd.FindStringSubmatch(cmd); m != nil {
		args, err := splitArgs(m[2])
		if err != nil {
			return errorReply(&decop.DeviceError{Code: CodeBadArguments, Message: err.Error()})
		}
		v, err := d.exec(m[1], args)
		if err != nil {
			return errorReply(err)
		}
		return string(v)
	}
	return errorReply(&decop.DeviceError{Code: CodeUnknownCommand, Message: "unknown command"})
}

func errorReply(err error) string {
	var de *decop.DeviceError
	if errors.As(err, &de) {
		return fmt.Sprintf("Error: %d %s", de.Code, de.Message)
	}
	return fmt.Sprintf("Error: %d %s", CodeBadArguments, err.Error())
}

// splitArgs tokenises exec arguments, keeping double-quoted strings intact.
func splitArgs(s string) ([]decop.Value, error) {
	var (
		out     []decop.Value
		cur     strings.Builder
		quoted  bool
		escaped bool
	)
	flush := func() {
		if cur.Len() > 0 {
			out = append(out, decop.Value(cur.String()))
			cur.Reset()
		}
	}
	for _, r := range s {
		switch {
		case escaped:
			cur.WriteRune(r)
			escaped = false
		case quoted && r == '\\':
			cur.WriteRune(r)
			escaped = true
		case r == '"':
			cur.WriteRune(r)
			quoted = !quoted
		case !quoted && (r == ' ' || r == '\t'):
			flush()
		default:
			cur.WriteRune(r)
		}
	}
	if quoted {
		return nil, errors.New("unterminated string")
	}
	flush()
	return out, nil
}
