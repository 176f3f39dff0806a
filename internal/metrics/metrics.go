// Package metrics holds the process-wide Prometheus collectors.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// VersionLookups counts installed-version reads by outcome:
	// no_store, missing_table, empty, no_state, stale, current, error.
	VersionLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "forum",
		Subsystem: "installer",
		Name:      "version_lookups_total",
		Help:      "Installed version lookups by outcome.",
	}, []string{"result"})

	// AvatarResolutions counts avatar URL resolutions by backend and source
	// (profile or fallback).
	AvatarResolutions = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "forum",
		Subsystem: "avatar",
		Name:      "resolutions_total",
		Help:      "Avatar URL resolutions by backend and source.",
	}, []string{"backend", "source"})

	AvatarPrefetches = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "forum",
		Subsystem: "avatar",
		Name:      "prefetches_total",
		Help:      "Avatar profile batch prefetches by backend and result.",
	}, []string{"backend", "result"})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "forum",
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "HTTP request latency.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route", "status"})
)
