package main

import (
	"context"
	"fmt"
	"net"
	"time"

	"dlccontrol/internal/decop"
	"dlccontrol/internal/simulator"

	"github.com/spf13/cobra"
)

func (a *app) simulateCmd() *cobra.Command {
	var (
		listen string
		tick   time.Duration
	)
	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Run a simulated DLC pro command line",
		Long: `simulate serves an in-memory laser over the same text protocol as the real
controller. --wl and --temp select which setpoints the simulated laser has.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ln, err := net.Listen("tcp", listen)
			if err != nil {
				return err
			}
			return a.simulate(cmd.Context(), ln, tick)
		},
	}
	cmd.Flags().StringVar(&listen, "listen", fmt.Sprintf(":%d", decop.DefaultPort), "address to listen on")
	cmd.Flags().DurationVar(&tick, "tick", 100*time.Millisecond, "update period of the actual values")
	return cmd
}

func (a *app) simulate(ctx context.Context, ln net.Listener, tick time.Duration) error {
	dev := simulator.New(simulator.Options{
		Wavelength:  a.v.GetBool("dlc.wl_setting_present"),
		Temperature: a.v.GetBool("dlc.temp_setting_present"),
	})
	go dev.Run(ctx, tick)
	a.log.Infow("simulator_listening", "addr", ln.Addr().String())
	fmt.Fprintf(a.out, "Simulated DLC pro listening on %s\n", ln.Addr())
	return dev.Serve(ctx, ln)
}
