package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/psidex/learnpath/internal/config"
	"github.com/psidex/learnpath/internal/events"
	"github.com/psidex/learnpath/internal/generator"
	"github.com/psidex/learnpath/internal/lib"
	"github.com/psidex/learnpath/internal/metrics"
	"github.com/psidex/learnpath/internal/webserver"
)

func main() {
	configPath := flag.String("c", "", "the TOML config file to load")
	address := flag.String("b", "", "the ip:port to bind the webserver to, overrides the config")

	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal(err)
	}
	if *address != "" {
		cfg.Server.Address = *address
	}

	logger, err := lib.NewLogger(os.Stderr, cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		log.Fatal(err)
	}

	gen, closeGen, err := generator.FromConfig(cfg.Generator, cfg.Server.GenerateTimeout.Duration)
	if err != nil {
		log.Fatal(err)
	}

	var publisher events.Publisher = events.NoopPublisher{}
	if cfg.Events.NATSURL != "" {
		publisher, err = events.NewNATSPublisher(cfg.Events.NATSURL)
		if err != nil {
			log.Fatal(err)
		}
	}

	var collector *metrics.Collector
	if cfg.Server.Metrics {
		collector = metrics.NewCollector("learnpath")
	}

	srv := webserver.NewServer(webserver.Deps{
		Engine:          cfg.Engine(),
		Generator:       gen,
		Publisher:       publisher,
		Subject:         cfg.Events.Subject,
		TickInterval:    cfg.Server.TickInterval.Duration,
		GenerateTimeout: cfg.Server.GenerateTimeout.Duration,
		Logger:          logger,
	}, collector)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("listening", "address", cfg.Server.Address, "generator", cfg.Generator.Kind)
	httpSrv := &http.Server{Addr: cfg.Server.Address, Handler: srv.Router()}
	if err := serve(ctx, httpSrv, closeGen, publisher.Close); err != nil {
		log.Fatal(err)
	}
	logger.Info("shut down")
}

// serve runs srv until ctx is done, then shuts it down and calls closers in order.
// Closers also run when the listener fails.
func serve(ctx context.Context, srv *http.Server, closers ...func() error) error {
	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()

	var err error
	select {
	case err = <-errc:
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		err = srv.Shutdown(shutdownCtx)
		cancel()
	}
	if errors.Is(err, http.ErrServerClosed) {
		err = nil
	}
	for _, c := range closers {
		err = errors.Join(err, c())
	}
	return err
}
