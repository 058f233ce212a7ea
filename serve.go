// serve.go
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/cors"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"fest-registration/config"
	"fest-registration/database"
	"fest-registration/logger"
	"fest-registration/metrics"
	"fest-registration/notify"
	"fest-registration/sessionstore"
	"fest-registration/web"
	"fest-registration/websocket"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

const shutdownTimeout = 10 * time.Second

func runServe(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	cfg := configFrom(ctx)
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	a, closers, err := buildApp(ctx, cfg)
	defer func() {
		for i := len(closers) - 1; i >= 0; i-- {
			if cerr := closers[i].Close(); cerr != nil {
				logger.Warn.Printf("close: %v", cerr)
			}
		}
	}()
	if err != nil {
		return err
	}

	server := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           withCORS(cfg, newRouter(a)),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		MaxHeaderBytes:    http.DefaultMaxHeaderBytes,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info.Printf("Server running at %s (env=%s)", cfg.AppURL, cfg.Env)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen on %s: %w", server.Addr, err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info.Println("Shutting down HTTP server")
		sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		// live feed connections are hijacked and ignored by Shutdown
		_ = a.hub.Close()
		return server.Shutdown(sctx)
	})
	return g.Wait()
}

// buildApp opens every backend. The returned closers are valid even when
// err is non-nil.
func buildApp(ctx context.Context, cfg *config.Config) (*app, []io.Closer, error) {
	var closers []io.Closer

	db, err := database.Open(cfg.Database)
	if err != nil {
		return nil, closers, err
	}
	closers = append(closers, db)

	// an unreachable database is logged, not fatal; requests fail until it recovers
	if err := db.Probe(ctx, cfg.Database.PingTimeout); err != nil {
		logger.Error.Printf("Database connection failed: %v", err)
	} else {
		logger.Info.Println("Connected to database")
		if cfg.Database.AutoMigrate {
			if err := db.Migrate(ctx); err != nil {
				logger.Error.Printf("Auto-migration failed: %v", err)
			}
		}
	}

	store, err := sessionstore.New(cfg)
	if err != nil {
		return nil, closers, err
	}
	if c, ok := store.(io.Closer); ok {
		closers = append(closers, c)
	}

	hub := websocket.NewHub(nil)
	publishers := notify.Multi{hub}
	if len(cfg.Kafka.Brokers) > 0 {
		k := notify.NewKafka(notify.NewKafkaWriter(cfg.Kafka.Brokers, cfg.Kafka.Topic))
		publishers = append(publishers, k)
		closers = append(closers, k)
		logger.Info.Printf("Publishing events to Kafka topic %s", cfg.Kafka.Topic)
	}

	a := &app{
		cfg:      cfg,
		db:       db,
		store:    store,
		hub:      hub,
		notifier: publishers,
		pages:    web.Pages(cfg.StaticDir),
	}

	var recorders metrics.Multi
	if cfg.Metrics.Enabled {
		a.prometheus = metrics.NewPrometheus()
		recorders = append(recorders, a.prometheus)
	}
	if cfg.Metrics.CloudWatch {
		client, err := metrics.NewCloudWatchClient(cfg.Metrics.Region)
		if err != nil {
			return nil, closers, fmt.Errorf("cloudwatch: %w", err)
		}
		cw := metrics.NewCloudWatch(client, cfg.Metrics.Namespace)
		recorders = append(recorders, cw)
		closers = append(closers, cw)
	}
	a.recorder = recorders
	return a, closers, nil
}

// withCORS allows the configured origins to call the API with cookies.
func withCORS(cfg *config.Config, h http.Handler) http.Handler {
	if len(cfg.CORSOrigins) == 0 {
		return h
	}
	return cors.New(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: true,
	}).Handler(h)
}
