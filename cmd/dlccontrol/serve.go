package main

import (
	"context"
	"errors"
	"fmt"

	_ "dlccontrol/docs"
	"dlccontrol/internal/decop"
	"dlccontrol/internal/dlc"
	"dlccontrol/internal/handlers"
	"dlccontrol/internal/logger"
	"dlccontrol/internal/metrics"
	"dlccontrol/internal/repository"
	"dlccontrol/internal/repository/db"
	"dlccontrol/internal/server"
	"dlccontrol/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// @title                       dlccontrol API
// @version                     1.0
// @description                 Settings facade for a DLC pro laser controller.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
func (a *app) serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the HTTP API, parameter stream and metrics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.serve(cmd.Context())
		},
	}
	cmd.Flags().String("http-port", "", "HTTP port (default 8080)")
	cmd.Flags().String("db", "", "SQLite file for snapshots, audit log and users")
	mustBind(a.v, map[string]*pflag.Flag{
		"port":    cmd.Flags().Lookup("http-port"),
		"db.path": cmd.Flags().Lookup("db"),
	})
	return cmd
}

func (a *app) serve(ctx context.Context) error {
	if a.cfg.SigningKey == "" {
		return errors.New("auth.signing_key must be set to serve the API")
	}
	if a.cfg.LogLevel != logger.DebugLevel {
		gin.SetMode(gin.ReleaseMode)
	}

	conn, err := db.InitDB(a.cfg.DBPath)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := conn.Close(); cerr != nil {
			a.log.Errorw("db_close_failed", "err", cerr)
		}
	}()
	repos := repository.NewRepository(conn)

	client, err := decop.Dial(ctx, a.cfg.DLC)
	if err != nil {
		return err
	}
	opts := a.controllerOptions()
	opts.Recorder = repos.EventRepo
	ctrl, err := dlc.New(ctx, metrics.NewInstrumentedClient(client), opts)
	if err != nil {
		return fmt.Errorf("open laser: %w", err)
	}

	services := service.NewService(repos, ctrl, service.Config{
		SigningKey: a.cfg.SigningKey,
		TokenTTL:   a.cfg.TokenTTL,
		Logger:     a.log,
	})
	defer func() {
		if cerr := services.Laser.Close(); cerr != nil {
			a.log.Errorw("laser_close_failed", "err", cerr)
		}
	}()

	srv := server.New(a.cfg.Port, handlers.NewHandler(services, a.log).InitRoutes())
	a.log.Infow("http_listening", "addr", srv.Addr(), "laser", a.cfg.DLC.Address, "monitor_interval", a.cfg.MonitorInterval)
	monitor := func(ctx context.Context) { services.Monitor.Run(ctx, a.cfg.MonitorInterval) }
	if err := runWithMonitor(ctx, monitor, srv.Run); err != nil {
		return err
	}
	a.log.Infow("http_stopped")
	return nil
}

// runWithMonitor runs monitor in the background for as long as run blocks
// and returns only after the monitor has stopped.
func runWithMonitor(ctx context.Context, monitor func(context.Context), run func(context.Context) error) error {
	ctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	go func() {
		defer close(done)
		monitor(ctx)
	}()
	err := run(ctx)
	cancel()
	<-done
	return err
}
