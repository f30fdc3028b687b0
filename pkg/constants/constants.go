// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package constants

import "time"

const (
	// ObjectiveUpdateInterval is the fixed cadence of the battleground sweep.
	// Elapsed world-tick time accumulates and every live instance is advanced
	// in one batch when the accumulator crosses this interval.
	ObjectiveUpdateInterval = time.Second

	// DefaultMaxRatingDifference replaces a max rating difference configured
	// as 0 by operators who still enabled rated queue updates.
	DefaultMaxRatingDifference = 5000
)

const (
	UpdateFunction     = "update"
	SweepFunction      = "sweep"
	QueueFlushFunction = "queueFlush"
	CreateFunction     = "createBattleground"
	LoadFunction       = "loadTemplates"

	// Queue-update dispatch source constants.
	DispatchSourceScheduled   = "scheduled"
	DispatchSourceRatedForced = "rated_forced"
	DispatchSourceUnknown     = "drop_unknown_queue_type"

	// Template drop reason constants.
	DropReasonDisabled            = "drop_type_disabled"
	DropReasonNoBattlemasterEntry = "drop_no_battlemaster_entry"
	DropReasonBadStartLocation    = "drop_unresolvable_start_location"
	DropReasonUnknownVariant      = "drop_unknown_variant"
)
