// Copyright 2025 l3montree UG (haftungsbeschraenkt).
// SPDX-License-Identifier: 	AGPL-3.0-or-later

package monitoring

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var VersionBuildDuration = promauto.NewHistogram(prometheus.HistogramOpts{
	Name:    "zest_version_build_duration_seconds",
	Help:    "Duration of version builds (pack, store, metadata transaction)",
	Buckets: prometheus.DefBuckets,
})

var VersionBuildsTotal = promauto.NewCounter(prometheus.CounterOpts{
	Name: "zest_version_builds_total",
	Help: "Number of versions built",
})

var BootFailuresTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "zest_boot_failures_total",
	Help: "Number of failed boot calls against the execution tier",
}, []string{"reason"})

var RunDuration = promauto.NewHistogram(prometheus.HistogramOpts{
	Name:    "zest_run_duration_seconds",
	Help:    "Duration of run calls against the execution tier",
	Buckets: prometheus.DefBuckets,
})

var RunsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "zest_runs_total",
	Help: "Number of applet runs",
}, []string{"success"})

var ScheduleDispatchesTotal = promauto.NewCounter(prometheus.CounterOpts{
	Name: "zest_schedule_dispatches_total",
	Help: "Number of schedule jobs dispatched to the queue",
})
