package dlc

import (
	"context"
	"encoding/json"
	"fmt"
	"math"

	"dlccontrol/internal/models"
)

// Fixed instrument limits that the controller does not report.
const (
	ScanFrequencyMin = 0.02
	ScanFrequencyMax = 400.0
	CurrentMin       = 0.0
)

// DefaultLimits are used until the device limits have been read.
var DefaultLimits = models.Limits{
	CurrentMin:   CurrentMin,
	FrequencyMin: ScanFrequencyMin,
	FrequencyMax: ScanFrequencyMax,
}

// Range is an inclusive [Min, Max] interval.
type Range struct {
	Min float64
	Max float64
}

// Unbounded accepts every finite value.
var Unbounded = Range{Min: math.Inf(-1), Max: math.Inf(1)}

// Contains reports whether v lies in the closed interval.
func (r Range) Contains(v float64) bool {
	return r.Min <= v && v <= r.Max
}

func (r Range) String() string {
	return fmt.Sprintf("[%g, %g]", r.Min, r.Max)
}

// MarshalJSON encodes the range as a two-element array; infinite bounds
// become null.
func (r Range) MarshalJSON() ([]byte, error) {
	bound := func(f float64) any {
		if math.IsInf(f, 0) || math.IsNaN(f) {
			return nil
		}
		return f
	}
	return json.Marshal([2]any{bound(r.Min), bound(r.Max)})
}

func checkValue(v float64, parameter string, r Range) error {
	if !r.Contains(v) {
		return &OutOfRangeError{Parameter: parameter, Value: v, Range: r}
	}
	return nil
}

// checkWindow validates [offset-amplitude/2, offset+amplitude/2] against r.
func checkWindow(offset, amplitude float64, r Range) error {
	lo, hi := offset-amplitude/2, offset+amplitude/2
	if lo > hi {
		lo, hi = hi, lo
	}
	if math.IsNaN(lo) || math.IsNaN(hi) || lo < r.Min || hi > r.Max {
		return &OutOfRangeError{Parameter: "scan", Value: offset, Window: &Range{Min: lo, Max: hi}, Range: r}
	}
	return nil
}

// Limits returns the limits currently used for validation.
func (c *Controller) Limits() models.Limits {
	return c.limits
}

// RefreshLimits queries the piezo voltage, current, wavelength and
// temperature limits from the device.
func (c *Controller) RefreshLimits(ctx context.Context) (models.Limits, error) {
	lims := DefaultLimits
	var err error
	if lims.VoltageMin, err = c.getFloat(ctx, pathVoltageMin); err != nil {
		return c.limits, err
	}
	if lims.VoltageMax, err = c.getFloat(ctx, pathVoltageMax); err != nil {
		return c.limits, err
	}
	if lims.CurrentMax, err = c.getFloat(ctx, pathCurrentClip); err != nil {
		return c.limits, err
	}
	if c.wlPresent {
		lo, err := c.getFloat(ctx, pathWavelengthMin)
		if err != nil {
			return c.limits, err
		}
		hi, err := c.getFloat(ctx, pathWavelengthMax)
		if err != nil {
			return c.limits, err
		}
		lims.WavelengthMin, lims.WavelengthMax = &lo, &hi
	}
	if c.tempPresent {
		lo, err := c.getFloat(ctx, pathTempSetMin)
		if err != nil {
			return c.limits, err
		}
		hi, err := c.getFloat(ctx, pathTempSetMax)
		if err != nil {
			return c.limits, err
		}
		lims.TempMin, lims.TempMax = &lo, &hi
	}
	c.limits = lims
	c.limitsLoaded = true
	c.updateScanRange(c.scan.OutputChannel)
	return lims, nil
}

func (c *Controller) voltageRange() Range {
	return Range{Min: c.limits.VoltageMin, Max: c.limits.VoltageMax}
}

func (c *Controller) currentRange() Range {
	return Range{Min: c.limits.CurrentMin, Max: c.limits.CurrentMax}
}

func (c *Controller) frequencyRange() Range {
	return Range{Min: c.limits.FrequencyMin, Max: c.limits.FrequencyMax}
}

// ScanRange is the interval the scan start/end/window must stay within for
// the active output channel.
func (c *Controller) ScanRange() Range {
	return c.scanRange
}

func (c *Controller) rangeFor(ch models.OutputChannel) Range {
	switch ch {
	case models.OutputCC:
		return c.currentRange()
	case models.OutputPC:
		return c.voltageRange()
	default:
		return Unbounded
	}
}

func (c *Controller) updateScanRange(ch models.OutputChannel) {
	c.scanRange = c.rangeFor(ch)
	if ch != models.OutputCC && ch != models.OutputPC {
		c.log.Warnw("scan range for output channel is not limited", "channel", ch.String())
	}
}
