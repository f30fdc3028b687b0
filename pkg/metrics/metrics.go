// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

type BattlegroundMetrics interface {
	LiveBattlegrounds(typeID string, bracket string, count int)
	AddLifecycleElapsedTimeMs(function string, elapsedTime time.Duration)
	AddQueueUpdateDispatch(queueType string, source string)
	AddTemplateDropped(typeID string, reason string)
}

func NewMetrics(registry *prometheus.Registry) BattlegroundMetrics {
	return setupPrometheusMetrics(registry)
}
