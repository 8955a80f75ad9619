package main

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"os/signal"
	"syscall"
	"time"

	"tripmap/internal/config"
	"tripmap/internal/db"
	"tripmap/internal/engine"
	"tripmap/internal/metrics"
	"tripmap/internal/publisher"
	"tripmap/internal/trip"
)

func main() {
	// Load configuration from .env and environment
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	// Root context with cancellation on SIGINT/SIGTERM
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// Metrics setup
	var mcol *metrics.Collector
	if cfg.MetricsAddr != "" {
		mcol = metrics.NewCollector(cfg.Animation.Duration, cfg.FrameInterval)
		srv := mcol.Serve(cfg.MetricsAddr)
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
			defer cancel()
			_ = srv.Shutdown(shutdownCtx)
		}()
	}

	// Load the trip from a file, or from the trips table
	var sqlDB *sql.DB
	var t *trip.Trip
	var version time.Time
	if cfg.TripFile != "" {
		t, err = trip.LoadFile(cfg.TripFile)
		if err != nil {
			log.Fatalf("load trip: %v", err)
		}
	} else {
		sqlDB, err = openTripDB(ctx, cfg)
		if err != nil {
			log.Fatalf("db error: %v", err)
		}
		defer sqlDB.Close()
		t, version, err = db.FetchTrip(ctx, sqlDB, cfg.TripID)
		if err != nil {
			log.Fatalf("fetch trip: %v", err)
		}
	}
	log.Printf("loaded trip %s: %d days, %d waypoints, %d route segments", t.ID, len(t.Days), len(t.Waypoints()), len(t.Segments()))

	// Initialize NATS publisher
	pub, err := publisher.NewNATSPublisher(cfg.NATSURL, cfg.LogNATSSubjects, wrapPublisherMetrics(mcol))
	if err != nil {
		log.Fatalf("nats error: %v", err)
	}
	defer pub.Close()

	// The loop is not running yet, so building the view here is race free.
	loop := engine.NewLoop(cfg.FrameInterval)
	view := engine.NewView(loop, publisher.NewSurface(pub, t.ID), t, engine.ViewOptions{
		BottomPadding: cfg.BottomPadding,
		Animation:     cfg.Animation,
		Metrics:       engineMetrics(mcol),
	})

	sub, err := pub.SubscribeEvents(t.ID, loop, view)
	if err != nil {
		log.Fatalf("nats error: %v", err)
	}
	defer sub.Unsubscribe()

	// Watch the trip row for edits and swap the data in
	if sqlDB != nil {
		go refreshTrip(ctx, sqlDB, cfg, loop, view, version)
	}

	if err := loop.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.Printf("loop error: %v", err)
	}
	view.Close()
	log.Println("shutdown complete")
}

func openTripDB(ctx context.Context, cfg *config.Config) (*sql.DB, error) {
	dsn := cfg.DatabaseURL
	if cfg.TripDatabase != "" {
		var err error
		if dsn, err = db.WithDBName(dsn, cfg.TripDatabase); err != nil {
			return nil, err
		}
		log.Printf("using database %q for trips", cfg.TripDatabase)
	}
	sqlDB, err := db.Open(dsn)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(ctx, sqlDB); err != nil {
		sqlDB.Close()
		return nil, err
	}
	return sqlDB, nil
}

func refreshTrip(ctx context.Context, sqlDB *sql.DB, cfg *config.Config, loop *engine.Loop, view *engine.View, version time.Time) {
	ticker := time.NewTicker(cfg.TripRefresh)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
		updated, err := db.TripUpdatedAt(ctx, sqlDB, cfg.TripID)
		if err != nil {
			log.Printf("trip refresh error: %v", err)
			continue
		}
		if !updated.After(version) {
			continue
		}
		t, updated, err := db.FetchTrip(ctx, sqlDB, cfg.TripID)
		if err != nil {
			log.Printf("trip refresh error: %v", err)
			continue
		}
		version = updated
		log.Printf("trip %s changed, redrawing", t.ID)
		if !loop.Post(func() { view.SetTrip(t) }) {
			return
		}
	}
}

func engineMetrics(c *metrics.Collector) engine.Metrics {
	if c == nil {
		return nil
	}
	return c
}

// wrapPublisherMetrics adapts our Collector to the PublisherMetrics interface.
func wrapPublisherMetrics(c *metrics.Collector) publisher.PublisherMetrics {
	if c == nil {
		return nil
	}
	return &pubMetrics{c: c}
}

type pubMetrics struct{ c *metrics.Collector }

func (p *pubMetrics) NATSPublishedInc()              { p.c.NATSPublished.Inc() }
func (p *pubMetrics) NATSPublishErrInc()             { p.c.NATSPublishErrs.Inc() }
func (p *pubMetrics) PublishObserve(d time.Duration) { p.c.PublishDuration.Observe(d.Seconds()) }
func (p *pubMetrics) EventReceived(kind string)      { p.c.EventReceived(kind) }
func (p *pubMetrics) NATSSetConnected(b bool) {
	if b {
		p.c.NATSConnected.Set(1)
	} else {
		p.c.NATSConnected.Set(0)
	}
}
