package cmd

import (
	"context"
	"net"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/jsphweid/chordtrainer/engine"
	"github.com/jsphweid/chordtrainer/logging"
	"github.com/jsphweid/chordtrainer/server"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var (
	listenAddr  string
	useDevice   bool
	watchConfig bool
)

func init() {
	serveCmd.Flags().StringVar(&listenAddr, "addr", "", "listen address (overrides server.addr)")
	serveCmd.Flags().BoolVar(&useDevice, "device", true, "read a local MIDI keyboard; when off, input comes in over HTTP")
	serveCmd.Flags().BoolVar(&watchConfig, "watch", true, "apply config file edits while running")
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serves the trainer over HTTP",
	Long:  `Serves the trainer's state and operations as JSON, with a server-sent event stream at /events.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()
		return serve(ctx)
	},
}

func serve(ctx context.Context) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger, err := logging.New(cfg.Logging.Level, debug)
	if err != nil {
		return err
	}
	defer logger.Sync()

	e, err := engine.New(cfg.Settings, engine.WithLogger(logger))
	if err != nil {
		return err
	}
	defer e.Close()

	addr := cfg.Server.Addr
	if listenAddr != "" {
		addr = listenAddr
	}
	g, ctx := errgroup.WithContext(ctx)
	srv := &http.Server{
		Addr:    addr,
		Handler: server.NewRouter(e, logger, cfg.Server.AllowedOrigins),
		// ends open event streams on shutdown
		BaseContext: func(net.Listener) context.Context { return ctx },
	}
	g.Go(func() error {
		logger.Info("http: listening", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return errors.Wrap(err, "http server failed")
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	if useDevice {
		g.Go(func() error {
			return watchDevice(ctx, e, cfg, logger)
		})
	}
	if watchConfig {
		g.Go(func() error {
			return watchSettings(ctx, e, logger)
		})
	}
	return g.Wait()
}
