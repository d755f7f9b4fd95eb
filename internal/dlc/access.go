package dlc

import (
	"context"
	"fmt"

	"dlccontrol/internal/models"
)

// UserLevel is the privilege level of this client connection. It does not
// reflect the level shown on the controller's console.
func (c *Controller) UserLevel(ctx context.Context) (models.UserLevel, error) {
	n, err := c.getInt(ctx, pathUserLevel)
	if err != nil {
		return 0, err
	}
	return models.UserLevel(n), nil
}

// SetUserLevel changes the privilege level of the connection and returns
// the level the device reports afterwards. An empty password selects the
// factory maintenance password or the configured service password.
func (c *Controller) SetUserLevel(ctx context.Context, level models.UserLevel, password string) (models.UserLevel, error) {
	if c.closed {
		return 0, ErrClosed
	}
	if password == "" {
		switch level {
		case models.UserLevelService:
			password = c.servicePassword
		case models.UserLevelMaintenance:
			password = MaintenancePassword
		}
	}
	v, err := c.client.Exec(ctx, pathChangeUL, int(level), password)
	if err != nil {
		return 0, err
	}
	n, err := v.Int()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", pathChangeUL, err)
	}
	got := models.UserLevel(n)
	c.record(ctx, models.SettingEvent{
		Type:        "EXEC",
		Path:        pathChangeUL,
		Description: "user level change to " + level.String() + " answered with " + got.String(),
		Metadata:    map[string]any{"requested": int(level), "granted": n},
	})
	c.log.Infow("dlc_user_level", "requested", level.String(), "granted", got.String())
	return got, nil
}
