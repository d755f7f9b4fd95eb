package main

import (
	"bufio"
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"dlccontrol/internal/dlc"
	"dlccontrol/internal/models"

	"github.com/spf13/cobra"
)

const defaultDwell = time.Second

func (a *app) statusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Print the emission status",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			return a.withController(ctx, func(c *dlc.Controller) error {
				return a.printEmission(ctx, c)
			})
		},
	}
}

func (a *app) printEmission(ctx context.Context, c *dlc.Controller) error {
	st, err := c.EmissionStatus(ctx)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(a.out, st.String())
	return err
}

func (a *app) paramsCmd() *cobra.Command {
	var limits bool
	cmd := &cobra.Command{
		Use:   "params",
		Short: "Print all laser parameters",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			return a.withController(ctx, func(c *dlc.Controller) error {
				if err := a.printParameters(ctx, c); err != nil {
					return err
				}
				if limits {
					return dlc.PrintLimits(a.out, c.Limits(), "Limits")
				}
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&limits, "limits", false, "also print the validation limits")
	return cmd
}

func (a *app) printParameters(ctx context.Context, c *dlc.Controller) error {
	p, err := c.Parameters(ctx)
	if err != nil {
		return err
	}
	return dlc.PrintParameters(a.out, p, "Laser parameters")
}

func (a *app) saveCmd() *cobra.Command {
	var folder string
	cmd := &cobra.Command{
		Use:   "save NAME",
		Short: "Save all laser parameters to NAME.json",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			return a.withController(ctx, func(c *dlc.Controller) error {
				return a.save(ctx, c, filepath.Join(folder, args[0]))
			})
		},
	}
	cmd.Flags().StringVarP(&folder, "folder", "f", ".", "folder for the saved file")
	return cmd
}

func (a *app) save(ctx context.Context, c *dlc.Controller, fname string) error {
	written, err := c.SaveParameters(ctx, fname)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(a.out, "Saved laser parameters to %s\n", written)
	return err
}

func (a *app) showCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show FILE",
		Short: "Print a saved parameter file without connecting",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			p, err := dlc.ReadParameters(args[0])
			if err != nil {
				return err
			}
			return dlc.PrintParameters(a.out, p, args[0])
		},
	}
}

func (a *app) applyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "apply FILE",
		Short: "Write a saved parameter file back to the laser",
		Long: `apply validates every value in FILE against the laser's limits before the
first write, then sets scan, analogue remote and setpoints in turn.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := dlc.ReadParameters(args[0])
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			return a.withController(ctx, func(c *dlc.Controller) error {
				if err := c.ApplyParameters(ctx, p); err != nil {
					return err
				}
				_, err := fmt.Fprintf(a.out, "Applied %s\n", args[0])
				return err
			})
		},
	}
}

func (a *app) stepCmd() *cobra.Command {
	var (
		steps int
		dwell time.Duration
	)
	cmd := &cobra.Command{
		Use:   "step",
		Short: "Step discretely through the current scan range",
		Long: `step collapses the scan amplitude and moves the offset from the scan end
down across the initial amplitude. Ctrl-C stops early; the initial offset and
amplitude are always restored.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			return a.withController(ctx, func(c *dlc.Controller) error {
				return a.step(ctx, c, steps, dwell)
			})
		},
	}
	cmd.Flags().IntVarP(&steps, "steps", "n", 20, "number of steps")
	cmd.Flags().DurationVar(&dwell, "dwell", defaultDwell, "time spent at each step")
	return cmd
}

func (a *app) step(ctx context.Context, c *dlc.Controller, steps int, dwell time.Duration) error {
	err := c.StepThroughScanRange(ctx, steps, dwell, func(i int, offset float64) {
		fmt.Fprintf(a.out, "%d: change to %.3f\n", i, offset)
	})
	fmt.Fprintln(a.out, "Restored initial state")
	if interrupted(err) {
		fmt.Fprintln(a.out, "Stopping scan")
		return nil
	}
	return err
}

func (a *app) sweepRateCmd() *cobra.Command {
	var calibration float64
	cmd := &cobra.Command{
		Use:   "sweep-rate",
		Short: "Print the frequency sweep rate of the internal scan in MHz/s",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			return a.withController(ctx, func(c *dlc.Controller) error {
				rate, err := c.FreqPerSecInternalScan(ctx, calibration)
				if err != nil {
					return err
				}
				_, err = fmt.Fprintf(a.out, "%g MHz/s (calibration %g)\n", rate, c.Calibration())
				return err
			})
		},
	}
	cmd.Flags().Float64Var(&calibration, "calibration", 0, "MHz/mA or MHz/V; overrides dlc.calibration")
	return cmd
}

func (a *app) userLevelCmd() *cobra.Command {
	var (
		password string
		yes      bool
	)
	cmd := &cobra.Command{
		Use:   "user-level [LEVEL]",
		Short: "Print or change the user level of the connection",
		Long: `Without LEVEL the current level is printed. LEVEL is a name (normal,
maintenance, service, ...) or a number 0-4. Only the client connection is
affected, not the level on the controller's own display.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if len(args) == 0 {
				return a.withController(ctx, func(c *dlc.Controller) error {
					ul, err := c.UserLevel(ctx)
					if err != nil {
						return err
					}
					_, err = fmt.Fprintf(a.out, "User level: %s\n", ul)
					return err
				})
			}
			level, err := models.ParseUserLevel(args[0])
			if err != nil {
				return err
			}
			if level == models.UserLevelService && password == "" && !yes && !a.confirmService() {
				_, err := fmt.Fprintln(a.out, "Aborting user level change")
				return err
			}
			return a.withController(ctx, func(c *dlc.Controller) error {
				got, err := c.SetUserLevel(ctx, level, password)
				if err != nil {
					return err
				}
				_, err = fmt.Fprintf(a.out, "New user level: %s\n", got)
				return err
			})
		},
	}
	cmd.Flags().StringVar(&password, "password", "", "password; defaults to the maintenance or configured service password")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "do not ask before switching to SERVICE level")
	return cmd
}

func (a *app) confirmService() bool {
	fmt.Fprintln(a.out, "CAUTION: This is SERVICE level user, protected by a custom password for each unit.")
	fmt.Fprint(a.out, "Do you really really want to proceed? [y/N] ")
	line, _ := bufio.NewReader(a.in).ReadString('\n')
	return strings.EqualFold(strings.TrimSpace(line), "y")
}
