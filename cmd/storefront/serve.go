package main

import (
	"context"
	"net/http/pprof"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/matst80/slask-storefront/pkg/common"
	"github.com/matst80/slask-storefront/pkg/facet"
	"github.com/matst80/slask-storefront/pkg/messaging"
	"github.com/matst80/slask-storefront/pkg/server"
	"github.com/matst80/slask-storefront/pkg/storefront"
	"github.com/matst80/slask-storefront/pkg/tracking"
	"github.com/matst80/slask-storefront/pkg/types"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the storefront http api",
	RunE:  runServe,
}

func (a *app) caches(client *redis.Client) storefront.CacheFactory {
	size := a.config.CacheSize
	if client == nil {
		return func(types.Category) facet.ResultCache {
			return facet.NewMemoryCache(size)
		}
	}
	namespace := a.catalog.Fingerprint()
	return func(category types.Category) facet.ResultCache {
		return server.NewRedisCache(client, namespace, category, size)
	}
}

func runServe(cmd *cobra.Command, args []string) error {
	a, err := loadApp()
	if err != nil {
		return err
	}

	var redisClient *redis.Client
	if a.config.RedisUrl != "" {
		redisClient = server.NewRedisClient(a.config.RedisUrl, a.config.RedisPassword, a.config.RedisDB)
		log.Info().Str("redis", a.config.RedisUrl).Msg("shared result cache enabled")
	}
	sf := storefront.New(a.catalog, a.settings, a.caches(redisClient))

	var trk tracking.Tracking = tracking.NoopTracking{}
	if a.config.RabbitUrl != "" {
		rabbit, err := tracking.NewRabbitTracking(a.config.RabbitUrl, a.config.Prefix)
		if err != nil {
			log.Error().Err(err).Msg("failed to connect to rabbitmq, tracking disabled")
		} else {
			trk = rabbit
			err = messaging.ListenForSettings(rabbit.Connection(), a.config.Prefix, a.settings, func() {
				sf.Reload()
			})
			if err != nil {
				log.Error().Err(err).Msg("could not listen for settings changes")
			}
		}
	}

	ws := server.NewWebServer(sf, trk)
	mux := ws.Handle()
	if a.config.Profiling {
		mux.HandleFunc("/debug/pprof/", pprof.Index)
		mux.HandleFunc("/debug/pprof/cmdline", pprof.Cmdline)
		mux.HandleFunc("/debug/pprof/profile", pprof.Profile)
		mux.HandleFunc("/debug/pprof/symbol", pprof.Symbol)
		mux.HandleFunc("/debug/pprof/trace", pprof.Trace)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go ws.Sessions.RunEviction(ctx, time.Minute)

	srv := a.config.Timeouts.NewServer(a.config.ListenAddress, mux)
	return common.Serve(ctx, srv, a.config.Timeouts,
		common.ShutdownHook{Name: "tracking", Run: func(ctx context.Context) error {
			return trk.Close()
		}},
		common.ShutdownHook{Name: "redis", Run: func(ctx context.Context) error {
			if redisClient == nil {
				return nil
			}
			return redisClient.Close()
		}},
	)
}
