package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"dlccontrol/internal/dlc"
	"dlccontrol/internal/logger"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// app carries what every command needs once flags and config are resolved.
type app struct {
	v   *viper.Viper
	cfg appConfig
	log *logger.Logger

	in  io.Reader
	out io.Writer

	configFile string
}

// oneShot mirrors the flags of the original single-command tool so that
// "dlccontrol -e -p -s name" keeps working.
type oneShot struct {
	emission bool
	params   bool
	saveName string
	folder   string
	steps    int
}

func (o oneShot) any() bool {
	return o.emission || o.params || o.saveName != "" || o.steps > 0
}

func newRootCmd(in io.Reader, out io.Writer) *cobra.Command {
	a := &app{v: viper.New(), in: in, out: out}
	var once oneShot

	root := &cobra.Command{
		Use:   "dlccontrol",
		Short: "Read and change the settings of a DLC pro laser controller",
		Long: `dlccontrol talks to a Toptica DLC pro over its command line (TCP port 1998
or USB serial). Without a subcommand the -e, -p, -s and -n flags run in that
order over a single connection.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !once.any() {
				return cmd.Help()
			}
			return a.runOneShot(cmd.Context(), once)
		},
	}
	root.SetIn(in)
	root.SetOut(out)

	pf := root.PersistentFlags()
	pf.StringVar(&a.configFile, "config", "", "config file (default configs/config.yml)")
	pf.StringP("ip", "i", "", "IP address of the laser (default 192.168.100.100)")
	pf.Int("port", 0, "command-line port of the laser (default 1998)")
	pf.String("transport", "", "tcp or serial")
	pf.String("serial", "", "serial device for the serial transport, e.g. /dev/ttyACM0")
	pf.String("log-level", "", "debug, info, warn or error")
	pf.Bool("wl", false, "the laser has a wavelength setpoint (skips probing)")
	pf.Bool("temp", false, "the laser has a temperature setpoint (skips probing)")
	mustBind(a.v, map[string]*pflag.Flag{
		"dlc.address":              pf.Lookup("ip"),
		"dlc.port":                 pf.Lookup("port"),
		"dlc.transport":            pf.Lookup("transport"),
		"dlc.serial.path":          pf.Lookup("serial"),
		"log.level":                pf.Lookup("log-level"),
		"dlc.wl_setting_present":   pf.Lookup("wl"),
		"dlc.temp_setting_present": pf.Lookup("temp"),
	})

	f := root.Flags()
	f.BoolVarP(&once.emission, "emission-status", "e", false, "print the emission status")
	f.BoolVarP(&once.params, "parameters", "p", false, "print the laser parameters")
	f.StringVarP(&once.saveName, "save-filename", "s", "", "save all laser parameters to a JSON file")
	f.StringVarP(&once.folder, "folder", "f", ".", "folder for saved files")
	f.IntVarP(&once.steps, "steps", "n", 0, "step discretely through the scan range in STEPS")

	root.AddCommand(
		a.statusCmd(),
		a.paramsCmd(),
		a.saveCmd(),
		a.showCmd(),
		a.applyCmd(),
		a.stepCmd(),
		a.sweepRateCmd(),
		a.userLevelCmd(),
		a.serveCmd(),
		a.simulateCmd(),
	)
	return root
}

// mustBind binds config keys to flags. Binding only fails for a nil flag,
// which is a programming error.
func mustBind(v *viper.Viper, bindings map[string]*pflag.Flag) {
	for key, flag := range bindings {
		if err := v.BindPFlag(key, flag); err != nil {
			panic(fmt.Sprintf("bind %s: %v", key, err))
		}
	}
}

func (a *app) setup(cmd *cobra.Command, _ []string) error {
	if err := loadConfig(a.v, a.configFile); err != nil {
		return err
	}
	cfg, err := readConfig(a.v)
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.log = logger.Get(cfg.LogLevel)
	a.log.Debugw("config_loaded", "file", a.v.ConfigFileUsed(), "transport", cfg.DLC.Transport, "address", cfg.DLC.Address)
	return nil
}

func (a *app) controllerOptions() dlc.Options {
	return dlc.Options{
		WavelengthSetting:  a.cfg.WavelengthSetting,
		TemperatureSetting: a.cfg.TemperatureSetting,
		ServicePassword:    a.cfg.ServicePassword,
		Calibration:        a.cfg.Calibration,
		Logger:             a.log,
	}
}

// withController connects, runs fn and always closes the connection.
func (a *app) withController(ctx context.Context, fn func(*dlc.Controller) error) error {
	return dlc.With(ctx, a.cfg.DLC, a.controllerOptions(), fn)
}

func (a *app) runOneShot(ctx context.Context, o oneShot) error {
	return a.withController(ctx, func(c *dlc.Controller) error {
		if o.emission {
			if err := a.printEmission(ctx, c); err != nil {
				return err
			}
		}
		if o.params {
			if err := a.printParameters(ctx, c); err != nil {
				return err
			}
		}
		if o.saveName != "" {
			if err := a.save(ctx, c, filepath.Join(o.folder, o.saveName)); err != nil {
				return err
			}
		}
		if o.steps > 0 {
			return a.step(ctx, c, o.steps, defaultDwell)
		}
		return nil
	})
}

// interrupted reports whether err only says the user stopped the command.
func interrupted(err error) bool {
	return errors.Is(err, context.Canceled)
}
