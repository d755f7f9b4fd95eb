// Package dlc is a typed settings facade over a DLC pro laser controller.
// Every accessor forwards to the generic get/set/exec primitives of a
// decop.Client; numeric setters are validated against the instrument limits
// before anything is written.
//
// A Controller is not safe for concurrent use.
package dlc

import (
	"context"
	"fmt"
	"sync"
	"time"

	"dlccontrol/internal/decop"
	"dlccontrol/internal/logger"
	"dlccontrol/internal/models"

	"github.com/google/uuid"
)

// MaintenancePassword is the factory default password of the maintenance
// user level.
const MaintenancePassword = "CAUTION"

// Recorder receives an audit event for every accepted write.
type Recorder interface {
	Append(ctx context.Context, e models.SettingEvent) error
}

// Options configures a Controller.
type Options struct {
	// WavelengthSetting and TemperatureSetting skip capability discovery
	// when set.
	WavelengthSetting  *bool
	TemperatureSetting *bool

	// ServicePassword is the unit-specific password of the service user
	// level, used when SetUserLevel is called without a password.
	ServicePassword string

	// Calibration in MHz/mA or MHz/V for FreqPerSecInternalScan.
	Calibration float64

	Logger   *logger.Logger
	Recorder Recorder

	// Now defaults to time.Now.
	Now func() time.Time
}

// Controller owns a device connection for its lifetime.
type Controller struct {
	client decop.Client
	log    *logger.Logger
	rec    Recorder
	now    func() time.Time

	servicePassword string
	calibration     float64

	wlPresent   bool
	tempPresent bool

	limits       models.Limits
	limitsLoaded bool
	scanRange    Range
	scan         models.ScanParameters
	remote       map[models.RemoteUnit]models.RemoteParameters

	closeOnce sync.Once
	closeErr  error
	closed    bool
}

// Open dials the controller and initialises a Controller on the connection.
func Open(ctx context.Context, cfg decop.Config, opts Options) (*Controller, error) {
	client, err := decop.Dial(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return New(ctx, client, opts)
}

// New takes ownership of client: it discovers the laser's capabilities and
// reads limits, scan and remote settings. The client is closed if any of
// that fails.
func New(ctx context.Context, client decop.Client, opts Options) (*Controller, error) {
	c := &Controller{
		client:          client,
		log:             opts.Logger,
		rec:             opts.Recorder,
		now:             opts.Now,
		servicePassword: opts.ServicePassword,
		calibration:     opts.Calibration,
		limits:          DefaultLimits,
		scanRange:       Unbounded,
		remote:          map[models.RemoteUnit]models.RemoteParameters{},
	}
	if c.log == nil {
		c.log = logger.Nop()
	}
	if c.now == nil {
		c.now = time.Now
	}

	if err := c.init(ctx, opts); err != nil {
		_ = c.Close()
		return nil, err
	}
	c.log.Debugw("dlc_opened",
		"wl_setting_present", c.wlPresent,
		"temp_setting_present", c.tempPresent,
		"scan_channel", c.scan.OutputChannel.String(),
	)
	return c, nil
}

func (c *Controller) init(ctx context.Context, opts Options) error {
	var err error
	if opts.WavelengthSetting != nil {
		c.wlPresent = *opts.WavelengthSetting
	} else if c.wlPresent, err = c.probe(ctx, pathWavelengthSet); err != nil {
		return fmt.Errorf("discover wavelength setting: %w", err)
	}
	if opts.TemperatureSetting != nil {
		c.tempPresent = *opts.TemperatureSetting
	} else if c.tempPresent, err = c.probe(ctx, pathTempSet); err != nil {
		return fmt.Errorf("discover temperature setting: %w", err)
	}

	if _, err := c.ScanParameters(ctx); err != nil {
		return fmt.Errorf("read scan parameters: %w", err)
	}
	if _, err := c.RefreshLimits(ctx); err != nil {
		return fmt.Errorf("read limits: %w", err)
	}
	if _, err := c.RemoteParameters(ctx); err != nil {
		return fmt.Errorf("read remote parameters: %w", err)
	}
	return nil
}

// probe reports whether a parameter exists. A device-side error means the
// path is absent; transport errors are returned.
func (c *Controller) probe(ctx context.Context, path string) (bool, error) {
	_, err := c.client.Get(ctx, path)
	switch {
	case err == nil:
		return true, nil
	case decop.IsDeviceError(err):
		return false, nil
	default:
		return false, err
	}
}

// With opens a controller, runs fn and closes the connection on every exit
// path, including a panic in fn.
func With(ctx context.Context, cfg decop.Config, opts Options, fn func(*Controller) error) error {
	client, err := decop.Dial(ctx, cfg)
	if err != nil {
		return err
	}
	return WithClient(ctx, client, opts, fn)
}

// WithClient is With on an established client.
func WithClient(ctx context.Context, client decop.Client, opts Options, fn func(*Controller) error) (err error) {
	c, err := New(ctx, client, opts)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := c.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()
	return fn(c)
}

// Close releases the connection. It is safe to call more than once; the
// client is closed exactly once.
func (c *Controller) Close() error {
	c.closeOnce.Do(func() {
		c.closed = true
		c.closeErr = c.client.Close()
	})
	return c.closeErr
}

// WavelengthSettingPresent reports whether the laser is controlled with a
// wavelength setpoint.
func (c *Controller) WavelengthSettingPresent() bool { return c.wlPresent }

// TemperatureSettingPresent reports whether the laser is controlled with a
// diode temperature setpoint.
func (c *Controller) TemperatureSettingPresent() bool { return c.tempPresent }

func (c *Controller) get(ctx context.Context, path string) (decop.Value, error) {
	if c.closed {
		return "", ErrClosed
	}
	return c.client.Get(ctx, path)
}

func (c *Controller) getFloat(ctx context.Context, path string) (float64, error) {
	v, err := c.get(ctx, path)
	if err != nil {
		return 0, err
	}
	f, err := v.Float()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", path, err)
	}
	return f, nil
}

func (c *Controller) getBool(ctx context.Context, path string) (bool, error) {
	v, err := c.get(ctx, path)
	if err != nil {
		return false, err
	}
	b, err := v.Bool()
	if err != nil {
		return false, fmt.Errorf("%s: %w", path, err)
	}
	return b, nil
}

func (c *Controller) getInt(ctx context.Context, path string) (int, error) {
	v, err := c.get(ctx, path)
	if err != nil {
		return 0, err
	}
	n, err := v.Int()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", path, err)
	}
	return n, nil
}

// set forwards a write and records it. Device errors are returned as-is.
func (c *Controller) set(ctx context.Context, path string, value any) error {
	if c.closed {
		return ErrClosed
	}
	if err := c.client.Set(ctx, path, value); err != nil {
		c.log.Debugw("dlc_set_failed", "path", path, "value", value, "err", err)
		return err
	}
	c.record(ctx, models.SettingEvent{
		Type:        "SET",
		Path:        path,
		Description: fmt.Sprintf("%s set to %v", path, value),
		Metadata:    map[string]any{"value": value},
	})
	return nil
}

func (c *Controller) record(ctx context.Context, e models.SettingEvent) {
	if c.rec == nil {
		return
	}
	e.EventID = uuid.NewString()
	e.OccurredAt = c.now().UTC()
	if err := c.rec.Append(context.WithoutCancel(ctx), e); err != nil {
		c.log.Warnw("dlc_record_event_failed", "path", e.Path, "err", err)
	}
}
