package testsetup

import (
	"time"

	"github.com/AccelByte/extend-core-battleground/pkg/metrics"
)

type stubMetricsCollection struct{}

func (s stubMetricsCollection) LiveBattlegrounds(typeID string, bracket string, count int) {
}

func (s stubMetricsCollection) AddLifecycleElapsedTimeMs(function string, elapsedTime time.Duration) {
}

func (s stubMetricsCollection) AddQueueUpdateDispatch(queueType string, source string) {
}

func (s stubMetricsCollection) AddTemplateDropped(typeID string, reason string) {
}

func NewMetrics() metrics.BattlegroundMetrics {
	return stubMetricsCollection{}
}
