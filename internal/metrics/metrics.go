package metrics

import (
	"log"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Collector struct {
	reg *prometheus.Registry

	AnimationsActive    prometheus.Gauge
	AnimationsStarted   prometheus.Counter
	AnimationsCompleted prometheus.Counter
	AnimationsCanceled  prometheus.Counter
	AnimationsSkipped   *prometheus.CounterVec // reason label: not_connected|degenerate
	SegmentsDropped     *prometheus.CounterVec // reason label: decode|missing_coordinate|unknown_endpoint

	FrameDuration prometheus.Histogram

	UIEvents *prometheus.CounterVec // type label: hover|click|toggle|unknown

	NATSPublished   prometheus.Counter
	NATSPublishErrs prometheus.Counter
	NATSConnected   prometheus.Gauge
	PublishDuration prometheus.Histogram

	AnimationDuration prometheus.Gauge // seconds
	FrameInterval     prometheus.Gauge // seconds
}

func NewCollector(animationDuration, frameInterval time.Duration) *Collector {
	reg := prometheus.NewRegistry()

	c := &Collector{
		reg: reg,
		AnimationsActive: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "tripmap_animations_active",
			Help: "1 while a route animation owns the camera, 0 otherwise.",
		}),
		AnimationsStarted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "tripmap_animations_started_total",
			Help: "Total route animations started.",
		}),
		AnimationsCompleted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "tripmap_animations_completed_total",
			Help: "Total route animations that ran to completion.",
		}),
		AnimationsCanceled: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "tripmap_animations_canceled_total",
			Help: "Total route animations torn down before completion.",
		}),
		AnimationsSkipped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "tripmap_animations_skipped_total",
			Help: "Click pairs that did not produce an animation.",
		}, []string{"reason"}),
		SegmentsDropped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "tripmap_segments_dropped_total",
			Help: "Route segments excluded from the index.",
		}, []string{"reason"}),
		FrameDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "tripmap_frame_duration_seconds",
			Help:    "Duration of one animation frame computation.",
			Buckets: prometheus.ExponentialBuckets(0.00001, 2, 15),
		}),
		UIEvents: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "tripmap_ui_events_total",
			Help: "UI events received from NATS.",
		}, []string{"type"}),
		NATSPublished: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "tripmap_nats_published_total",
			Help: "Total NATS messages published.",
		}),
		NATSPublishErrs: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "tripmap_nats_publish_errors_total",
			Help: "Total NATS publish errors.",
		}),
		NATSConnected: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "tripmap_nats_connected",
			Help: "1 if NATS connection is established, 0 otherwise.",
		}),
		PublishDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "tripmap_publish_duration_seconds",
			Help:    "Duration to marshal and publish a NATS message.",
			Buckets: prometheus.ExponentialBuckets(0.0005, 2, 15),
		}),
		AnimationDuration: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "tripmap_animation_duration_seconds",
			Help: "Configured marker travel time in seconds.",
		}),
		FrameInterval: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "tripmap_frame_interval_seconds",
			Help: "Frame interval in seconds.",
		}),
	}

	reg.MustRegister(
		c.AnimationsActive, c.AnimationsStarted, c.AnimationsCompleted,
		c.AnimationsCanceled, c.AnimationsSkipped, c.SegmentsDropped,
		c.FrameDuration, c.UIEvents,
		c.NATSPublished, c.NATSPublishErrs, c.NATSConnected, c.PublishDuration,
		c.AnimationDuration, c.FrameInterval,
	)

	c.AnimationDuration.Set(animationDuration.Seconds())
	c.FrameInterval.Set(frameInterval.Seconds())

	return c
}

func (c *Collector) AnimationStarted() {
	c.AnimationsStarted.Inc()
	c.AnimationsActive.Set(1)
}

func (c *Collector) AnimationCompleted() {
	c.AnimationsCompleted.Inc()
	c.AnimationsActive.Set(0)
}

func (c *Collector) AnimationCanceled() {
	c.AnimationsCanceled.Inc()
	c.AnimationsActive.Set(0)
}

func (c *Collector) AnimationSkipped(reason string) {
	c.AnimationsSkipped.WithLabelValues(reason).Inc()
}
func (c *Collector) SegmentDropped(reason string) { c.SegmentsDropped.WithLabelValues(reason).Inc() }
func (c *Collector) FrameObserve(d time.Duration) { c.FrameDuration.Observe(d.Seconds()) }
func (c *Collector) EventReceived(kind string)    { c.UIEvents.WithLabelValues(kind).Inc() }

func (c *Collector) Handler() http.Handler { return promhttp.HandlerFor(c.reg, promhttp.HandlerOpts{}) }

// Serve starts an HTTP server exposing /metrics on the given address.
func (c *Collector) Serve(addr string) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", c.Handler())
	srv := &http.Server{Addr: addr, Handler: mux}
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("metrics server error: %v", err)
		}
	}()
	log.Printf("metrics listening on %s", addr)
	return srv
}
