package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"
	"time"

	"github.com/common-nighthawk/go-figure"
	"github.com/jrsteele09/go-tribe-client/internal/config"
	errs "github.com/jrsteele09/go-tribe-client/internal/errors"
	"github.com/jrsteele09/go-tribe-client/server"
	"github.com/jrsteele09/go-tribe-client/session"
	"github.com/jrsteele09/go-tribe-client/tribe"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	if err := run(); err != nil {
		log.Fatal().Err(err).Msg("Error running server")
	}
	log.Info().Msg("Server stopped")
}

func run() (returnError error) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().Msgf("Recovered from panic: %v", r)
			debug.PrintStack()
			returnError = errors.New("panic recovered")
		}
	}()

	c, err := config.Load()
	if err != nil {
		return err
	}
	configureLogging(c)
	displayAppname(c.Env.GetAppName())

	if c.Tribe.AccessCodeURL == "" {
		c.Tribe.AccessCodeURL = c.Env.BaseURL + server.RouteCallback
	}

	store, closeStore, err := newSessionStore(c)
	if err != nil {
		return err
	}
	defer closeStore()

	remote := tribe.New(c.Tribe, tribe.WithRegisterer(prometheus.DefaultRegisterer))
	sessions := session.NewManager(store, remote, c.Session.MaxAge)

	handler, err := server.New(c, remote, sessions, server.WithGatherer(prometheus.DefaultGatherer))
	if err != nil {
		return err
	}

	httpServer := &http.Server{Addr: c.Env.GetPort(), Handler: handler}
	errCh := make(chan error, 1)
	go func() {
		errCh <- listenAndServe(httpServer)
	}()

	select {
	case err := <-errCh:
		return err
	case <-waitForStopSignal():
	}
	return shutdown(httpServer)
}

func configureLogging(c config.Config) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	if c.Env.IsDev() {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
		return
	}
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
}

// newSessionStore builds the store named by SESSION_STORE and its cleanup.
func newSessionStore(c config.Config) (session.Store, func(), error) {
	switch c.Session.Store {
	case config.SessionStoreRedis:
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		store, err := session.NewRedisStore(ctx, session.RedisConfig{
			Addr:      c.Session.Redis.Addr,
			Password:  c.Session.Redis.Password,
			DB:        c.Session.Redis.DB,
			KeyPrefix: c.Session.Redis.KeyPrefix,
		})
		if err != nil {
			return nil, nil, errs.Wrapf(err, "[main newSessionStore]")
		}
		log.Info().Str("addr", c.Session.Redis.Addr).Msg("Using redis session store")
		return store, func() { _ = store.Close() }, nil
	case config.SessionStoreMemory, "":
		log.Info().Msg("Using in-memory session store")
		return session.NewMemoryStore(), func() {}, nil
	default:
		return nil, nil, fmt.Errorf("[main newSessionStore] unknown session store %q", c.Session.Store)
	}
}

func listenAndServe(server *http.Server) error {
	log.Info().Msgf("Server listening on %s", server.Addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server.ListenAndServe %w", err)
	}
	return nil
}

func waitForStopSignal() <-chan os.Signal {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	return stop
}

func shutdown(server *http.Server) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server.Shutdown: %w", err)
	}
	return nil
}

func displayAppname(appname string) {
	myFigure := figure.NewFigure(appname, "cybermedium", true)
	myFigure.Print()
	fmt.Println()
}
