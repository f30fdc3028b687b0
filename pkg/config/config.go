// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package config

import (
	"github.com/caarlos0/env"
)

type Config struct {
	RatedUpdateTimerMs      int    `env:"RATED_UPDATE_TIMER_MS"       envDefault:"0"     envDocs:"interval of the forced rated-queue refresh in milliseconds (0 disables forced refresh)"`
	MaxRatingDifference     int    `env:"MAX_RATING_DIFFERENCE"       envDefault:"0"     envDocs:"max matchmaking rating difference counted by rated queues (0 disables forced refresh, coerced to default when read back)"`
	RatingDiscardTimerMs    int    `env:"RATING_DISCARD_TIMER_MS"     envDefault:"600000" envDocs:"time after which the rating difference of a queued group is discarded"`
	PrematureFinishTimerMs  int    `env:"PREMATURE_FINISH_TIMER_MS"   envDefault:"300000" envDocs:"battleground shutdown timer when a side drops below the minimum player count"`
	TemplateFile            string `env:"TEMPLATE_FILE"               envDefault:""      envDocs:"path of the JSON battleground template file watched for wholesale reloads (empty disables the watcher)"`
	SelectorSeed            int64  `env:"SELECTOR_SEED"               envDefault:"0"     envDocs:"seed of the weighted variant selector (0 means seed from wall clock)"`
}

// FromEnv reads the configuration from environment variables.
func FromEnv() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
