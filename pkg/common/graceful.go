package common

import (
	"context"
	"errors"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"
)

// ShutdownHook releases one dependency once the server stops accepting
// requests. Failing hooks are logged and do not stop the others.
type ShutdownHook struct {
	Name string
	Run  func(ctx context.Context) error
}

// Timeouts for the http server and for draining it. Yaml values use Go
// duration strings ("15s").
type Timeouts struct {
	ReadHeader time.Duration `yaml:"readHeader"`
	Read       time.Duration `yaml:"read"`
	Write      time.Duration `yaml:"write"`
	Idle       time.Duration `yaml:"idle"`
	Shutdown   time.Duration `yaml:"shutdown"`
	Hook       time.Duration `yaml:"hook"`
}

func DefaultTimeouts() Timeouts {
	return Timeouts{
		ReadHeader: 5 * time.Second,
		Read:       15 * time.Second,
		Write:      30 * time.Second,
		Idle:       60 * time.Second,
		Shutdown:   15 * time.Second,
		Hook:       5 * time.Second,
	}
}

// parseTimeout accepts a duration string or a plain number of seconds.
func parseTimeout(value string) (time.Duration, bool) {
	if d, err := time.ParseDuration(value); err == nil && d > 0 {
		return d, true
	}
	if n, err := strconv.Atoi(value); err == nil && n > 0 {
		return time.Duration(n) * time.Second, true
	}
	return 0, false
}

func (t *Timeouts) applyEnv() {
	for env, curr := range map[string]*time.Duration{
		"READ_HEADER_TIMEOUT": &t.ReadHeader,
		"READ_TIMEOUT":        &t.Read,
		"WRITE_TIMEOUT":       &t.Write,
		"IDLE_TIMEOUT":        &t.Idle,
		"SHUTDOWN_TIMEOUT":    &t.Shutdown,
		"HOOK_TIMEOUT":        &t.Hook,
	} {
		if d, ok := parseTimeout(os.Getenv(env)); ok {
			*curr = d
		}
	}
}

// NewServer builds an http server for handler with the configured timeouts.
func (t Timeouts) NewServer(addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: t.ReadHeader,
		ReadTimeout:       t.Read,
		WriteTimeout:      t.Write,
		IdleTimeout:       t.Idle,
	}
}

// Serve listens until ctx is cancelled, then stops accepting requests,
// drains in-flight ones and runs hooks in order. A listen failure is
// returned right away without running hooks.
func Serve(ctx context.Context, server *http.Server, t Timeouts, hooks ...ShutdownHook) error {
	listenErr := make(chan error, 1)
	go func() {
		log.Info().Str("addr", server.Addr).Msg("listening")
		listenErr <- server.ListenAndServe()
	}()

	select {
	case err := <-listenErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}
	log.Info().Msg("shutting down")
	return shutdown(server, t, hooks...)
}

func shutdown(server *http.Server, t Timeouts, hooks ...ShutdownHook) error {
	ctx, cancel := context.WithTimeout(context.Background(), t.Shutdown)
	defer cancel()

	err := server.Shutdown(ctx)
	if err != nil {
		log.Error().Err(err).Msg("http server did not drain in time")
	}

	hookTimeout := t.Hook
	if hookTimeout <= 0 {
		hookTimeout = 5 * time.Second
	}
	for _, h := range hooks {
		if h.Run == nil {
			continue
		}
		hCtx, hCancel := context.WithTimeout(ctx, hookTimeout)
		if hErr := h.Run(hCtx); hErr != nil {
			log.Error().Err(hErr).Str("hook", h.Name).Msg("shutdown hook failed")
		} else if errors.Is(hCtx.Err(), context.DeadlineExceeded) {
			log.Warn().Str("hook", h.Name).Msg("shutdown hook ran out of time")
		}
		hCancel()
	}
	if err == nil {
		log.Info().Msg("shutdown complete")
	}
	return err
}
