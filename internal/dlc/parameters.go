package dlc

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"dlccontrol/internal/models"
)

const jsonExt = ".json"

// Parameters reads every setting the wrapper controls. Values are read in
// sequence, not atomically.
func (c *Controller) Parameters(ctx context.Context) (models.Parameters, error) {
	p := models.Parameters{Timestamp: c.now()}

	if c.wlPresent {
		sp, err := c.WavelengthSetpoint(ctx)
		if err != nil {
			return p, err
		}
		act, err := c.WavelengthActual(ctx)
		if err != nil {
			return p, err
		}
		p.Wavelength = models.WavelengthParameters{Setpoint: &sp, Actual: &act}
	}
	if c.tempPresent {
		sp, err := c.TemperatureSetpoint(ctx)
		if err != nil {
			return p, err
		}
		act, err := c.TemperatureActual(ctx)
		if err != nil {
			return p, err
		}
		p.Temperature = models.TemperatureParameters{Setpoint: &sp, Actual: &act}
	}

	var err error
	if p.Scan, err = c.ScanParameters(ctx); err != nil {
		return p, err
	}
	if p.Remote, err = c.RemoteParameters(ctx); err != nil {
		return p, err
	}
	return p, nil
}

// SaveParameters takes a fresh snapshot and writes it to fname as indented
// JSON. ".json" is appended if missing; an existing file is never
// overwritten. It returns the path written.
func (c *Controller) SaveParameters(ctx context.Context, fname string) (string, error) {
	fname = withJSONExt(fname)
	if _, err := os.Stat(fname); err == nil {
		return "", fmt.Errorf("%w: %s", ErrFileExists, fname)
	}
	p, err := c.Parameters(ctx)
	if err != nil {
		return "", err
	}

	f, err := os.OpenFile(fname, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return "", fmt.Errorf("%w: %s", ErrFileExists, fname)
		}
		return "", fmt.Errorf("create %s: %w", fname, err)
	}
	if err := WriteParameters(f, p); err != nil {
		_ = f.Close()
		return "", fmt.Errorf("write %s: %w", fname, err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close %s: %w", fname, err)
	}
	c.log.Infow("dlc_parameters_saved", "file", fname)
	return fname, nil
}

// WriteParameters encodes p as JSON indented with two spaces.
func WriteParameters(w io.Writer, p models.Parameters) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(p)
}

// ReadParameters reads (but does not apply) a saved snapshot.
func ReadParameters(fname string) (models.Parameters, error) {
	fname = withJSONExt(fname)
	var p models.Parameters
	b, err := os.ReadFile(fname)
	if err != nil {
		return p, fmt.Errorf("read %s: %w", fname, err)
	}
	if err := json.Unmarshal(b, &p); err != nil {
		return p, fmt.Errorf("decode %s: %w", fname, err)
	}
	return p, nil
}

func withJSONExt(fname string) string {
	if strings.HasSuffix(fname, jsonExt) {
		return fname
	}
	return fname + jsonExt
}

// ApplyParameters writes a snapshot back to the device. Every value is
// validated before the first write; the timestamp and actual values are
// ignored.
func (c *Controller) ApplyParameters(ctx context.Context, p models.Parameters) error {
	plan, err := c.validateParameters(p)
	if err != nil {
		return err
	}

	s := p.Scan
	if err := c.writeWindow(ctx, plan.before); err != nil {
		return err
	}
	if err := c.SetScanOutputChannel(ctx, s.OutputChannel); err != nil {
		return err
	}
	if err := c.SetScanFrequency(ctx, s.Frequency); err != nil {
		return err
	}
	if err := c.writeWindow(ctx, plan.after); err != nil {
		return err
	}
	if err := c.SetScanEnabled(ctx, s.Enabled); err != nil {
		return err
	}

	for _, unit := range models.RemoteUnits {
		r, ok := p.Remote[unit]
		if !ok {
			continue
		}
		if r.Signal != models.InputNotSelected {
			if err := c.SetRemoteSignal(ctx, unit, r.Signal); err != nil {
				return err
			}
		}
		if err := c.SetRemoteFactor(ctx, unit, r.Factor); err != nil {
			return err
		}
		if err := c.SetRemoteEnabled(ctx, unit, r.Enabled); err != nil {
			return err
		}
	}

	if sp := p.Wavelength.Setpoint; sp != nil && c.wlPresent {
		if err := c.SetWavelengthSetpoint(ctx, *sp); err != nil {
			return err
		}
	}
	if sp := p.Temperature.Setpoint; sp != nil && c.tempPresent {
		if err := c.SetTemperatureSetpoint(ctx, *sp); err != nil {
			return err
		}
	}
	return nil
}

// scanPlan holds the window writes of ApplyParameters: before runs under
// the current output channel, after under the target one.
type scanPlan struct {
	before []windowStep
	after  []windowStep
}

// validateParameters checks p against the cached state and plans the scan
// window writes, so that nothing is written unless every write will pass.
func (c *Controller) validateParameters(p models.Parameters) (scanPlan, error) {
	plan, err := c.planScan(p.Scan)
	if err != nil {
		return scanPlan{}, err
	}
	for unit, r := range p.Remote {
		if err := checkUnit(unit); err != nil {
			return scanPlan{}, err
		}
		if !r.Signal.Valid() {
			return scanPlan{}, fmt.Errorf("%w: input channel %d", ErrInvalidChannel, int(r.Signal))
		}
	}
	if sp := p.Wavelength.Setpoint; sp != nil && c.wlPresent && c.limits.WavelengthMin != nil && c.limits.WavelengthMax != nil {
		if err := checkValue(*sp, "wavelength setpoint", Range{Min: *c.limits.WavelengthMin, Max: *c.limits.WavelengthMax}); err != nil {
			return scanPlan{}, err
		}
	}
	if sp := p.Temperature.Setpoint; sp != nil && c.tempPresent && c.limits.TempMin != nil && c.limits.TempMax != nil {
		if err := checkValue(*sp, "temperature setpoint", Range{Min: *c.limits.TempMin, Max: *c.limits.TempMax}); err != nil {
			return scanPlan{}, err
		}
	}
	return plan, nil
}

// planScan finds a write order for the scan window across an output channel
// switch. The window is moved under the new range if possible; otherwise it
// is collapsed, or moved to the target offset, before the switch.
func (c *Controller) planScan(s models.ScanParameters) (scanPlan, error) {
	if !s.OutputChannel.Valid() {
		return scanPlan{}, fmt.Errorf("%w: output channel %d", ErrInvalidChannel, int(s.OutputChannel))
	}
	if err := checkValue(s.Frequency, "scan frequency", c.frequencyRange()); err != nil {
		return scanPlan{}, err
	}
	from, to := c.scanRange, c.rangeFor(s.OutputChannel)
	if err := checkWindow(s.Offset, s.Amplitude, to); err != nil {
		return scanPlan{}, err
	}
	off, amp := c.scan.Offset, c.scan.Amplitude

	after, err := planWindow(off, amp, s.Offset, s.Amplitude, to)
	if err == nil {
		return scanPlan{after: after}, nil
	}
	if checkWindow(off, 0, from) == nil {
		if after, aerr := planWindow(off, 0, s.Offset, s.Amplitude, to); aerr == nil {
			return scanPlan{before: []windowStep{{amplitude: true}}, after: after}, nil
		}
	}
	if before, berr := planWindow(off, amp, s.Offset, 0, from); berr == nil {
		return scanPlan{before: before, after: []windowStep{{amplitude: true, value: s.Amplitude}}}, nil
	}
	return scanPlan{}, err
}
