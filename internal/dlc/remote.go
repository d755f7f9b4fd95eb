package dlc

import (
	"context"
	"fmt"

	"dlccontrol/internal/models"
)

// Analogue remote control for the current (cc) and the piezo voltage (pc)
// can be used simultaneously; every accessor names the unit it addresses.

func checkUnit(unit models.RemoteUnit) error {
	if unit != models.RemoteCC && unit != models.RemotePC {
		return fmt.Errorf("%w: %q", ErrInvalidRemoteUnit, string(unit))
	}
	return nil
}

// RemoteEnabled is the state of the remote control of unit.
func (c *Controller) RemoteEnabled(ctx context.Context, unit models.RemoteUnit) (bool, error) {
	if err := checkUnit(unit); err != nil {
		return false, err
	}
	return c.getBool(ctx, remotePath(unit, "enabled"))
}

func (c *Controller) SetRemoteEnabled(ctx context.Context, unit models.RemoteUnit, v bool) error {
	if err := checkUnit(unit); err != nil {
		return err
	}
	if err := c.set(ctx, remotePath(unit, "enabled"), v); err != nil {
		return err
	}
	p := c.remote[unit]
	p.Enabled = v
	c.remote[unit] = p
	return nil
}

// RemoteSignal is the input port used by the remote control of unit.
func (c *Controller) RemoteSignal(ctx context.Context, unit models.RemoteUnit) (models.InputChannel, error) {
	if err := checkUnit(unit); err != nil {
		return 0, err
	}
	n, err := c.getInt(ctx, remotePath(unit, "signal"))
	if err != nil {
		return 0, err
	}
	return models.InputChannel(n), nil
}

func (c *Controller) SetRemoteSignal(ctx context.Context, unit models.RemoteUnit, ch models.InputChannel) error {
	if err := checkUnit(unit); err != nil {
		return err
	}
	if !ch.Valid() || ch == models.InputNotSelected {
		return fmt.Errorf("%w: input channel must be one of Fine1, Fine2, Fast3, Fast4 (tried with %d)", ErrInvalidChannel, int(ch))
	}
	if err := c.set(ctx, remotePath(unit, "signal"), int(ch)); err != nil {
		return err
	}
	p := c.remote[unit]
	p.Signal = ch
	c.remote[unit] = p
	return nil
}

// RemoteFactor is the factor the remote signal is multiplied with before
// it drives the current or piezo.
func (c *Controller) RemoteFactor(ctx context.Context, unit models.RemoteUnit) (float64, error) {
	if err := checkUnit(unit); err != nil {
		return 0, err
	}
	return c.getFloat(ctx, remotePath(unit, "factor"))
}

func (c *Controller) SetRemoteFactor(ctx context.Context, unit models.RemoteUnit, v float64) error {
	if err := checkUnit(unit); err != nil {
		return err
	}
	if err := c.set(ctx, remotePath(unit, "factor"), v); err != nil {
		return err
	}
	p := c.remote[unit]
	p.Factor = v
	c.remote[unit] = p
	return nil
}

// RemoteParameters reads both remote units from the device.
func (c *Controller) RemoteParameters(ctx context.Context) (map[models.RemoteUnit]models.RemoteParameters, error) {
	out := make(map[models.RemoteUnit]models.RemoteParameters, len(models.RemoteUnits))
	for _, unit := range models.RemoteUnits {
		var (
			p   models.RemoteParameters
			err error
		)
		if p.Enabled, err = c.RemoteEnabled(ctx, unit); err != nil {
			return nil, err
		}
		if p.Factor, err = c.RemoteFactor(ctx, unit); err != nil {
			return nil, err
		}
		if p.Signal, err = c.RemoteSignal(ctx, unit); err != nil {
			return nil, err
		}
		out[unit] = p
	}
	c.remote = out
	return copyRemote(out), nil
}

func copyRemote(in map[models.RemoteUnit]models.RemoteParameters) map[models.RemoteUnit]models.RemoteParameters {
	out := make(map[models.RemoteUnit]models.RemoteParameters, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
