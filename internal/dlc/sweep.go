package dlc

import (
	"context"
	"errors"
	"fmt"
	"time"

	"dlccontrol/internal/models"
)

// FreqPerSec is the optical frequency sweep rate in MHz/s of a triangular
// scan.
//
//	scanFreq    [Hz]
//	peakToPeak  [V or mA]
//	scaling     [mA/V or V/V]
//	calibration [MHz/mA or MHz/V]
func FreqPerSec(scanFreq, peakToPeak, scaling, calibration float64) float64 {
	// A triangle sweeps its full span twice per period.
	scanPeriod := 1 / (2 * scanFreq)
	return peakToPeak * scaling * calibration / scanPeriod
}

// FreqPerSecFromParams computes FreqPerSec from a snapshot.
func FreqPerSecFromParams(p models.Parameters, calibration float64) float64 {
	return FreqPerSec(p.Scan.Frequency, p.Scan.Amplitude, 1, calibration)
}

// FreqPerSecInternalScan computes the sweep rate of the current internal
// scan. A non-zero calibration replaces the stored one.
func (c *Controller) FreqPerSecInternalScan(ctx context.Context, calibration float64) (float64, error) {
	if calibration != 0 {
		c.calibration = calibration
	}
	if c.calibration == 0 {
		return 0, ErrNoCalibration
	}
	p, err := c.ScanParameters(ctx)
	if err != nil {
		return 0, err
	}
	return FreqPerSec(p.Frequency, p.Amplitude, 1, c.calibration), nil
}

// Calibration returns the stored scan calibration.
func (c *Controller) Calibration() float64 { return c.calibration }

// StepReport is called before each step with its index and target offset.
type StepReport func(step int, offset float64)

// StepThroughScanRange collapses the scan and steps the offset from the
// scan end down across the initial amplitude in steps, dwelling at each.
// A step outside the scan range ends the run early without an error. The
// initial offset and amplitude are restored on every exit path; they are
// written back as read, without range checks.
func (c *Controller) StepThroughScanRange(ctx context.Context, steps int, dwell time.Duration, report StepReport) (err error) {
	if steps < 1 {
		return fmt.Errorf("steps must be positive, got %d", steps)
	}
	initialEnd, err := c.ScanEnd(ctx)
	if err != nil {
		return err
	}
	initialOffset, err := c.ScanOffset(ctx)
	if err != nil {
		return err
	}
	initialAmplitude, err := c.ScanAmplitude(ctx)
	if err != nil {
		return err
	}
	// Keep the cache in line with what was just read.
	c.scan.Offset, c.scan.Amplitude, c.scan.End = initialOffset, initialAmplitude, initialEnd

	defer func() {
		restoreCtx := context.WithoutCancel(ctx)
		c.log.Infow("dlc_step_restore", "offset", initialOffset, "amplitude", initialAmplitude)
		rerr := errors.Join(
			c.set(restoreCtx, pathScanOffset, initialOffset),
			c.set(restoreCtx, pathScanAmplitude, initialAmplitude),
		)
		if rerr == nil {
			rerr = c.refreshScanWindow(restoreCtx)
		}
		if rerr != nil {
			err = errors.Join(err, fmt.Errorf("restore scan: %w", rerr))
		}
	}()

	if err := c.SetScanAmplitude(ctx, 0); err != nil {
		return err
	}
	for i, change := range linspace(0, -initialAmplitude, steps) {
		target := initialEnd + change
		if report != nil {
			report(i, target)
		}
		if err := c.SetScanOffset(ctx, target); err != nil {
			if IsOutOfRange(err) {
				c.log.Warnw("dlc_step_out_of_range", "step", i, "err", err)
				return nil
			}
			return err
		}
		if err := sleep(ctx, dwell); err != nil {
			return err
		}
	}
	return nil
}

func linspace(start, stop float64, n int) []float64 {
	if n == 1 {
		return []float64{start}
	}
	out := make([]float64, n)
	step := (stop - start) / float64(n-1)
	for i := range out {
		out[i] = start + float64(i)*step
	}
	out[n-1] = stop
	return out
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
