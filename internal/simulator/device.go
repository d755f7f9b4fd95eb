package simulator

import (
	"context"
	"fmt"
	"math"
	"sort"
	"sync"
	"time"

	"dlccontrol/internal/decop"
)

// ----------- Simulation constants -----------
const (
	RampNmPerSec = 0.5 // wavelength slew toward setpoint
	RampKPerSec  = 0.2 // diode temperature slew toward setpoint

	MaintenancePassword = "CAUTION"
	ServicePassword     = "service"
)

// Device error codes returned by the simulated firmware.
const (
	CodeUnknownParameter = -21
	CodeReadOnly         = -4
	CodeUnknownCommand   = -10
	CodeAccessDenied     = -11
	CodeBadArguments     = -12
)

// Options selects which optional capabilities the simulated laser has.
type Options struct {
	Wavelength  bool
	Temperature bool
}

type param struct {
	value    decop.Value
	readOnly bool
}

// Device is an in-memory DLCpro parameter tree. It implements decop.Client
// and can be exposed over the command line with Serve.
type Device struct {
	mu      sync.Mutex
	params  map[string]*param
	history []Write
	closes  int
	updated time.Time
}

// Write records an accepted parameter write.
type Write struct {
	Path  string
	Value decop.Value
}

// Ensure Device implements decop.Client.
var _ decop.Client = (*Device)(nil)

// New returns a simulator populated with factory defaults.
func New(opts Options) *Device {
	d := &Device{params: map[string]*param{}, updated: time.Now()}
	rw := func(path string, v decop.Value) { d.params[path] = &param{value: v} }
	ro := func(path string, v decop.Value) { d.params[path] = &param{value: v, readOnly: true} }

	rw("ul", "3")
	ro("emission-button-enabled", "#t")
	rw("laser1:dl:cc:enabled", "#f")
	ro("laser1:dl:cc:current-clip", "250.0")
	ro("laser1:dl:pc:voltage-min", "-1.0")
	ro("laser1:dl:pc:voltage-max", "140.0")

	for _, unit := range []string{"cc", "pc"} {
		prefix := "laser1:dl:" + unit + ":external-input:"
		rw(prefix+"enabled", "#f")
		rw(prefix+"signal", "0")
		rw(prefix+"factor", "10.0")
	}

	rw("laser1:scan:enabled", "#t")
	rw("laser1:scan:output-channel", "50")
	rw("laser1:scan:frequency", "20.0")
	rw("laser1:scan:amplitude", "10.0")
	rw("laser1:scan:offset", "70.0")
	rw("laser1:scan:start", "65.0")
	rw("laser1:scan:end", "75.0")

	if opts.Wavelength {
		rw("laser1:ctl:wavelength-set", "1550.0")
		ro("laser1:ctl:wavelength-act", "1550.0")
		ro("laser1:ctl:wavelength-min", "1510.0")
		ro("laser1:ctl:wavelength-max", "1630.0")
	}
	if opts.Temperature {
		rw("laser1:dl:tc:temp-set", "25.0")
		ro("laser1:dl:tc:temp-act", "25.0")
		ro("laser1:dl:tc:temp-set-min", "15.0")
		ro("laser1:dl:tc:temp-set-max", "40.0")
	}
	return d
}

// Get reads a parameter. "emission" is derived from the button and the
// current-enable flag.
func (d *Device) Get(ctx context.Context, path string) (decop.Value, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.get(path)
}

func (d *Device) get(path string) (decop.Value, error) {
	if path == "emission" {
		button, _ := d.params["emission-button-enabled"].value.Bool()
		current, _ := d.params["laser1:dl:cc:enabled"].value.Bool()
		if button && current {
			return "#t", nil
		}
		return "#f", nil
	}
	p, ok := d.params[path]
	if !ok {
		return "", &decop.DeviceError{Code: CodeUnknownParameter, Message: "unknown parameter " + path}
	}
	return p.value, nil
}

// Set writes a parameter. Offset/amplitude and start/end are kept coupled
// the way the firmware does.
func (d *Device) Set(ctx context.Context, path string, value any) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	lit, err := decop.Encode(value)
	if err != nil {
		return err
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.set(path, decop.Value(lit))
}

func (d *Device) set(path string, v decop.Value) error {
	p, ok := d.params[path]
	if !ok {
		return &decop.DeviceError{Code: CodeUnknownParameter, Message: "unknown parameter " + path}
	}
	if p.readOnly {
		return &decop.DeviceError{Code: CodeReadOnly, Message: "parameter is read-only"}
	}
	p.value = v
	d.history = append(d.history, Write{Path: path, Value: v})

	switch path {
	case "laser1:scan:offset", "laser1:scan:amplitude":
		off := d.float("laser1:scan:offset")
		amp := d.float("laser1:scan:amplitude")
		d.params["laser1:scan:start"].value = realValue(off - amp/2)
		d.params["laser1:scan:end"].value = realValue(off + amp/2)
	case "laser1:scan:start", "laser1:scan:end":
		start := d.float("laser1:scan:start")
		end := d.float("laser1:scan:end")
		d.params["laser1:scan:offset"].value = realValue((start + end) / 2)
		d.params["laser1:scan:amplitude"].value = realValue(math.Abs(end - start))
	}
	return nil
}

// Exec runs a firmware command. Only change-ul is implemented.
func (d *Device) Exec(ctx context.Context, name string, args ...any) (decop.Value, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	lits := make([]decop.Value, 0, len(args))
	for _, a := range args {
		lit, err := decop.Encode(a)
		if err != nil {
			return "", err
		}
		lits = append(lits, decop.Value(lit))
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.exec(name, lits)
}

func (d *Device) exec(name string, args []decop.Value) (decop.Value, error) {
	if name != "change-ul" {
		return "", &decop.DeviceError{Code: CodeUnknownCommand, Message: "unknown command " + name}
	}
	if len(args) != 2 {
		return "", &decop.DeviceError{Code: CodeBadArguments, Message: "change-ul expects level and password"}
	}
	level, err := args[0].Int()
	if err != nil {
		return "", &decop.DeviceError{Code: CodeBadArguments, Message: err.Error()}
	}
	password, err := args[1].Text()
	if err != nil {
		return "", &decop.DeviceError{Code: CodeBadArguments, Message: err.Error()}
	}

	granted := false
	switch level {
	case 1:
		granted = password == ServicePassword
	case 2:
		granted = password == MaintenancePassword
	case 3, 4:
		granted = true
	}
	if !granted {
		// Firmware keeps the current level and reports it back.
		return d.params["ul"].value, nil
	}
	v := decop.Value(fmt.Sprint(level))
	d.params["ul"].value = v
	return v, nil
}

// Close counts calls so tests can assert the connection was released.
func (d *Device) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.closes++
	return nil
}

// Closes returns how often Close was called.
func (d *Device) Closes() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.closes
}

// Writes returns the accepted writes in order.
func (d *Device) Writes() []Write {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]Write, len(d.history))
	copy(out, d.history)
	return out
}

// Paths lists every parameter path, sorted.
func (d *Device) Paths() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]string, 0, len(d.params))
	for p := range d.params {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}

// Run ticks at the given interval until ctx is canceled, slewing the actual
// wavelength and temperature toward their setpoints.
func (d *Device) Run(ctx context.Context, tick time.Duration) {
	t := time.NewTicker(tick)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-t.C:
			d.Step(now)
		}
	}
}

// Step advances the simulation to now.
func (d *Device) Step(now time.Time) {
	d.mu.Lock()
	defer d.mu.Unlock()
	elapsed := now.Sub(d.updated).Seconds()
	if elapsed <= 0 {
		return
	}
	d.updated = now
	d.slew("laser1:ctl:wavelength-act", "laser1:ctl:wavelength-set", RampNmPerSec*elapsed)
	d.slew("laser1:dl:tc:temp-act", "laser1:dl:tc:temp-set", RampKPerSec*elapsed)
}

// slew moves actual toward set by at most step. Missing paths are skipped.
func (d *Device) slew(actPath, setPath string, step float64) {
	act, ok := d.params[actPath]
	if !ok {
		return
	}
	cur := d.float(actPath)
	target := d.float(setPath)
	switch {
	case cur < target:
		cur = math.Min(cur+step, target)
	case cur > target:
		cur = math.Max(cur-step, target)
	default:
		return
	}
	act.value = realValue(cur)
}

func (d *Device) float(path string) float64 {
	f, _ := d.params[path].value.Float()
	return f
}

func realValue(f float64) decop.Value {
	lit, _ := decop.Encode(f)
	return decop.Value(lit)
}
