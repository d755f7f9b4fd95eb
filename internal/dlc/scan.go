package dlc

import (
	"context"
	"fmt"

	"dlccontrol/internal/models"
)

// ScanEnabled is the internal scan on/off state.
func (c *Controller) ScanEnabled(ctx context.Context) (bool, error) {
	return c.getBool(ctx, pathScanEnabled)
}

func (c *Controller) SetScanEnabled(ctx context.Context, v bool) error {
	if err := c.set(ctx, pathScanEnabled, v); err != nil {
		return err
	}
	c.scan.Enabled = v
	return nil
}

// ScanOutputChannel is where the internal scan is directed: the piezo, the
// laser current, or one of the output BNCs.
func (c *Controller) ScanOutputChannel(ctx context.Context) (models.OutputChannel, error) {
	n, err := c.getInt(ctx, pathScanOutputChannel)
	if err != nil {
		return 0, err
	}
	return models.OutputChannel(n), nil
}

// SetScanOutputChannel redirects the scan and switches the active scan range.
func (c *Controller) SetScanOutputChannel(ctx context.Context, ch models.OutputChannel) error {
	if !ch.Valid() {
		return fmt.Errorf("%w: channel must be CC, PC, OutA or OutB (tried with %d)", ErrInvalidChannel, int(ch))
	}
	if err := c.set(ctx, pathScanOutputChannel, int(ch)); err != nil {
		return err
	}
	c.scan.OutputChannel = ch
	c.updateScanRange(ch)
	return c.refreshScanWindow(ctx)
}

// ScanFrequency is the internal scan frequency in Hz.
func (c *Controller) ScanFrequency(ctx context.Context) (float64, error) {
	return c.getFloat(ctx, pathScanFrequency)
}

func (c *Controller) SetScanFrequency(ctx context.Context, v float64) error {
	if err := checkValue(v, "scan frequency", c.frequencyRange()); err != nil {
		return err
	}
	if err := c.set(ctx, pathScanFrequency, v); err != nil {
		return err
	}
	c.scan.Frequency = v
	return nil
}

// ScanAmplitude is the peak-to-peak scan amplitude.
func (c *Controller) ScanAmplitude(ctx context.Context) (float64, error) {
	return c.getFloat(ctx, pathScanAmplitude)
}

// SetScanAmplitude checks that the window around the current offset stays
// within the scan range.
func (c *Controller) SetScanAmplitude(ctx context.Context, v float64) error {
	if err := checkWindow(c.scan.Offset, v, c.scanRange); err != nil {
		return err
	}
	if err := c.set(ctx, pathScanAmplitude, v); err != nil {
		return err
	}
	c.scan.Amplitude = v
	return c.refreshScanWindow(ctx)
}

// ScanOffset is the centre of the scan.
func (c *Controller) ScanOffset(ctx context.Context) (float64, error) {
	return c.getFloat(ctx, pathScanOffset)
}

// SetScanOffset checks that the window around v with the current amplitude
// stays within the scan range.
func (c *Controller) SetScanOffset(ctx context.Context, v float64) error {
	if err := checkWindow(v, c.scan.Amplitude, c.scanRange); err != nil {
		return err
	}
	if err := c.set(ctx, pathScanOffset, v); err != nil {
		return err
	}
	c.scan.Offset = v
	return c.refreshScanWindow(ctx)
}

// SetScanWindow sets offset and amplitude together. The final window is
// validated first and the writes are ordered so that every intermediate
// window stays within the scan range.
func (c *Controller) SetScanWindow(ctx context.Context, offset, amplitude float64) error {
	steps, err := planWindow(c.scan.Offset, c.scan.Amplitude, offset, amplitude, c.scanRange)
	if err != nil {
		return err
	}
	return c.writeWindow(ctx, steps)
}

// windowStep is a single offset or amplitude write.
type windowStep struct {
	amplitude bool
	value     float64
}

// planWindow orders the writes that move the window at (offset, amplitude)
// to (toOffset, toAmplitude) without leaving r. When neither order works the
// amplitude is collapsed first.
func planWindow(offset, amplitude, toOffset, toAmplitude float64, r Range) ([]windowStep, error) {
	if err := checkWindow(toOffset, toAmplitude, r); err != nil {
		return nil, err
	}
	setAmp := windowStep{amplitude: true, value: toAmplitude}
	setOff := windowStep{value: toOffset}
	switch {
	case checkWindow(offset, toAmplitude, r) == nil:
		return []windowStep{setAmp, setOff}, nil
	case checkWindow(toOffset, amplitude, r) == nil:
		return []windowStep{setOff, setAmp}, nil
	}
	if err := checkWindow(offset, 0, r); err != nil {
		return nil, err
	}
	return []windowStep{{amplitude: true}, setOff, setAmp}, nil
}

func (c *Controller) writeWindow(ctx context.Context, steps []windowStep) error {
	for _, st := range steps {
		var err error
		if st.amplitude {
			err = c.SetScanAmplitude(ctx, st.value)
		} else {
			err = c.SetScanOffset(ctx, st.value)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// ScanStart is the start value of the scan.
func (c *Controller) ScanStart(ctx context.Context) (float64, error) {
	return c.getFloat(ctx, pathScanStart)
}

func (c *Controller) SetScanStart(ctx context.Context, v float64) error {
	if err := checkValue(v, "scan start", c.scanRange); err != nil {
		return err
	}
	if err := c.set(ctx, pathScanStart, v); err != nil {
		return err
	}
	c.scan.Start = v
	return c.refreshScanWindow(ctx)
}

// ScanEnd is the end value of the scan.
func (c *Controller) ScanEnd(ctx context.Context) (float64, error) {
	return c.getFloat(ctx, pathScanEnd)
}

func (c *Controller) SetScanEnd(ctx context.Context, v float64) error {
	if err := checkValue(v, "scan end", c.scanRange); err != nil {
		return err
	}
	if err := c.set(ctx, pathScanEnd, v); err != nil {
		return err
	}
	c.scan.End = v
	return c.refreshScanWindow(ctx)
}

// refreshScanWindow re-reads offset, amplitude, start and end, which the
// firmware keeps coupled.
func (c *Controller) refreshScanWindow(ctx context.Context) error {
	var err error
	if c.scan.Offset, err = c.ScanOffset(ctx); err != nil {
		return err
	}
	if c.scan.Amplitude, err = c.ScanAmplitude(ctx); err != nil {
		return err
	}
	if c.scan.Start, err = c.ScanStart(ctx); err != nil {
		return err
	}
	if c.scan.End, err = c.ScanEnd(ctx); err != nil {
		return err
	}
	return nil
}

// ScanParameters reads every scan setting from the device.
func (c *Controller) ScanParameters(ctx context.Context) (models.ScanParameters, error) {
	var (
		p   models.ScanParameters
		err error
	)
	if p.Enabled, err = c.ScanEnabled(ctx); err != nil {
		return p, err
	}
	if p.OutputChannel, err = c.ScanOutputChannel(ctx); err != nil {
		return p, err
	}
	if p.Frequency, err = c.ScanFrequency(ctx); err != nil {
		return p, err
	}
	if p.Amplitude, err = c.ScanAmplitude(ctx); err != nil {
		return p, err
	}
	if p.Offset, err = c.ScanOffset(ctx); err != nil {
		return p, err
	}
	if p.Start, err = c.ScanStart(ctx); err != nil {
		return p, err
	}
	if p.End, err = c.ScanEnd(ctx); err != nil {
		return p, err
	}
	changed := p.OutputChannel != c.scan.OutputChannel
	c.scan = p
	if changed && c.limitsLoaded {
		c.updateScanRange(p.OutputChannel)
	}
	return p, nil
}
