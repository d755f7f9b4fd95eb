package dlc

import (
	"context"

	"dlccontrol/internal/models"
)

// Emission is the emission status of the controller (read only).
func (c *Controller) Emission(ctx context.Context) (bool, error) {
	return c.getBool(ctx, pathEmission)
}

// EmissionButton is the state of the emission button (read only).
func (c *Controller) EmissionButton(ctx context.Context) (bool, error) {
	return c.getBool(ctx, pathEmissionButton)
}

// CurrentEnabled is the state of the laser current.
func (c *Controller) CurrentEnabled(ctx context.Context) (bool, error) {
	return c.getBool(ctx, pathCurrentEnabled)
}

// SetCurrentEnabled switches the laser current, which controls emission as
// long as the emission button is enabled.
func (c *Controller) SetCurrentEnabled(ctx context.Context, v bool) error {
	if v {
		button, err := c.EmissionButton(ctx)
		if err != nil {
			return err
		}
		if !button {
			c.log.Warnw("emission button on DLC not enabled, so cannot enable emission")
		}
	}
	return c.set(ctx, pathCurrentEnabled, v)
}

// EmissionStatus reads button, current and emission in sequence.
func (c *Controller) EmissionStatus(ctx context.Context) (models.EmissionStatus, error) {
	var (
		st  models.EmissionStatus
		err error
	)
	if st.ButtonEnabled, err = c.EmissionButton(ctx); err != nil {
		return st, err
	}
	if st.CurrentEnabled, err = c.CurrentEnabled(ctx); err != nil {
		return st, err
	}
	if st.Emission, err = c.Emission(ctx); err != nil {
		return st, err
	}
	return st, nil
}

// WavelengthActual is the actual wavelength of the laser (read only).
func (c *Controller) WavelengthActual(ctx context.Context) (float64, error) {
	if !c.wlPresent {
		return 0, ErrWavelengthUnsupported
	}
	return c.getFloat(ctx, pathWavelengthAct)
}

// WavelengthSetpoint is the wavelength setpoint.
func (c *Controller) WavelengthSetpoint(ctx context.Context) (float64, error) {
	if !c.wlPresent {
		return 0, ErrWavelengthUnsupported
	}
	return c.getFloat(ctx, pathWavelengthSet)
}

// SetWavelengthSetpoint validates v against the wavelength limits and
// forwards it unchanged.
func (c *Controller) SetWavelengthSetpoint(ctx context.Context, v float64) error {
	if !c.wlPresent {
		return ErrWavelengthUnsupported
	}
	if c.limits.WavelengthMin == nil || c.limits.WavelengthMax == nil {
		if _, err := c.RefreshLimits(ctx); err != nil {
			return err
		}
	}
	r := Range{Min: *c.limits.WavelengthMin, Max: *c.limits.WavelengthMax}
	if err := checkValue(v, "wavelength setpoint", r); err != nil {
		return err
	}
	return c.set(ctx, pathWavelengthSet, v)
}

// TemperatureActual is the actual diode temperature (read only).
func (c *Controller) TemperatureActual(ctx context.Context) (float64, error) {
	if !c.tempPresent {
		return 0, ErrTemperatureUnsupported
	}
	return c.getFloat(ctx, pathTempAct)
}

// TemperatureSetpoint is the diode temperature setpoint.
func (c *Controller) TemperatureSetpoint(ctx context.Context) (float64, error) {
	if !c.tempPresent {
		return 0, ErrTemperatureUnsupported
	}
	return c.getFloat(ctx, pathTempSet)
}

// SetTemperatureSetpoint validates v against the temperature limits and
// forwards it unchanged.
func (c *Controller) SetTemperatureSetpoint(ctx context.Context, v float64) error {
	if !c.tempPresent {
		return ErrTemperatureUnsupported
	}
	if c.limits.TempMin == nil || c.limits.TempMax == nil {
		if _, err := c.RefreshLimits(ctx); err != nil {
			return err
		}
	}
	r := Range{Min: *c.limits.TempMin, Max: *c.limits.TempMax}
	if err := checkValue(v, "temperature setpoint", r); err != nil {
		return err
	}
	return c.set(ctx, pathTempSet, v)
}
