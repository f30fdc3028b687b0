// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type prometheusMetrics struct {
	liveBattlegrounds     prometheus.GaugeVec
	lifecycleElapsedTime  prometheus.HistogramVec
	queueUpdateDispatches prometheus.CounterVec
	templatesDropped      prometheus.CounterVec
}

func setupPrometheusMetrics(registry *prometheus.Registry) prometheusMetrics {
	factory := promauto.With(registry)

	liveBattlegrounds := factory.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "ab_bg_live_battlegrounds",
			Help: "A gauge of live battleground instances per type and bracket",
		}, []string{"bg_type", "bracket"})

	//nolint:promlinter
	lifecycleElapsedTime := factory.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "ab_bg_lifecycle_elapsed_time_ms",
			Help:    "A histogram of battleground lifecycle functions elapsed time in milliseconds",
			Buckets: prometheus.ExponentialBuckets(1, 2, 10),
		}, []string{"function"})

	queueUpdateDispatches := factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ab_bg_queue_update_dispatches",
			Help: "A counter of queue re-evaluation dispatches per queue type and source",
		}, []string{"queue_type", "source"})

	templatesDropped := factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ab_bg_templates_dropped",
			Help: "A counter of battleground template rows dropped during load per reason",
		}, []string{"bg_type", "reason"})

	return prometheusMetrics{
		liveBattlegrounds:     *liveBattlegrounds,
		lifecycleElapsedTime:  *lifecycleElapsedTime,
		queueUpdateDispatches: *queueUpdateDispatches,
		templatesDropped:      *templatesDropped,
	}
}

func (metrics prometheusMetrics) LiveBattlegrounds(typeID string, bracket string, count int) {
	metrics.liveBattlegrounds.With(prometheus.Labels{"bg_type": typeID, "bracket": bracket}).Set(float64(count))
}

func (metrics prometheusMetrics) AddLifecycleElapsedTimeMs(function string, elapsedTime time.Duration) {
	metrics.lifecycleElapsedTime.With(prometheus.Labels{"function": function}).Observe(float64(elapsedTime.Milliseconds()))
}

func (metrics prometheusMetrics) AddQueueUpdateDispatch(queueType string, source string) {
	metrics.queueUpdateDispatches.With(prometheus.Labels{"queue_type": queueType, "source": source}).Add(float64(1))
}

func (metrics prometheusMetrics) AddTemplateDropped(typeID string, reason string) {
	metrics.templatesDropped.With(prometheus.Labels{"bg_type": typeID, "reason": reason}).Add(float64(1))
}
