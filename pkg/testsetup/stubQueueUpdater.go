// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package testsetup

import (
	"time"

	"github.com/AccelByte/extend-core-battleground/pkg/envelope"
	"github.com/AccelByte/extend-core-battleground/pkg/models"
)

// RecordedQueueUpdate is one dispatch observed by the stub.
type RecordedQueueUpdate struct {
	Elapsed   time.Duration
	TypeID    models.TypeID
	Bracket   models.BracketID
	ArenaType models.ArenaType
	IsRated   bool
	Rating    uint32
}

// StubQueueUpdater records every dispatch it receives.
type StubQueueUpdater struct {
	Updates []RecordedQueueUpdate
}

func (s *StubQueueUpdater) OnQueueUpdateDue(scope *envelope.Scope, elapsed time.Duration, typeID models.TypeID, bracket models.BracketID, arenaType models.ArenaType, isRated bool, rating uint32) {
	s.Updates = append(s.Updates, RecordedQueueUpdate{
		Elapsed:   elapsed,
		TypeID:    typeID,
		Bracket:   bracket,
		ArenaType: arenaType,
		IsRated:   isRated,
		Rating:    rating,
	})
}

func (s *StubQueueUpdater) Count() int {
	return len(s.Updates)
}

func (s *StubQueueUpdater) Reset() {
	s.Updates = nil
}
