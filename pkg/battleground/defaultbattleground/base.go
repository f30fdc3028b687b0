// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

// Package defaultbattleground provides the default Battleground
// implementation and the factory over the closed set of gameplay variants.
// Variants embed BaseBattleground and add their own scoring on top; the
// lifecycle core only ever sees the generic contract.
package defaultbattleground

import (
	"time"

	"github.com/mitchellh/copystructure"
	"github.com/sirupsen/logrus"

	"github.com/AccelByte/extend-core-battleground/pkg/battleground"
	"github.com/AccelByte/extend-core-battleground/pkg/models"
)

// BaseBattleground carries the lifecycle state every variant shares: timers,
// status, flags and the per-instance copy of the team start positions.
type BaseBattleground struct {
	tmpl            *models.Template
	typeID          models.TypeID
	requestedTypeID models.TypeID
	instanceID      uint32
	clientID        uint32
	bracket         models.BracketID
	arenaType       models.ArenaType
	rated           bool
	random          bool
	holiday         bool
	status          models.Status
	elapsed         time.Duration
	remaining       time.Duration
	timeLimited     bool
	finished        bool
	startLocations  [models.TeamCount]*models.StartLocation
}

// New seeds a battleground from its template. The result carries instance id
// 0 until the manager assigns one.
func New(tmpl *models.Template) *BaseBattleground {
	return &BaseBattleground{
		tmpl:            tmpl,
		typeID:          tmpl.ID,
		requestedTypeID: tmpl.ID,
		startLocations:  tmpl.StartLocations,
	}
}

func (b *BaseBattleground) TypeID() models.TypeID { return b.typeID }

func (b *BaseBattleground) RequestedTypeID() models.TypeID { return b.requestedTypeID }

func (b *BaseBattleground) SetRequestedTypeID(typeID models.TypeID) { b.requestedTypeID = typeID }

func (b *BaseBattleground) InstanceID() uint32 { return b.instanceID }

func (b *BaseBattleground) SetInstanceID(id uint32) { b.instanceID = id }

func (b *BaseBattleground) ClientInstanceID() uint32 { return b.clientID }

func (b *BaseBattleground) SetClientInstanceID(id uint32) { b.clientID = id }

func (b *BaseBattleground) Bracket() models.BracketID { return b.bracket }

func (b *BaseBattleground) SetBracket(bracket models.BracketID) { b.bracket = bracket }

func (b *BaseBattleground) ArenaType() models.ArenaType { return b.arenaType }

func (b *BaseBattleground) SetArenaType(arenaType models.ArenaType) { b.arenaType = arenaType }

func (b *BaseBattleground) IsArena() bool { return b.tmpl.IsArena() }

func (b *BaseBattleground) IsRated() bool { return b.rated }

func (b *BaseBattleground) SetRated(rated bool) { b.rated = rated }

func (b *BaseBattleground) IsRandom() bool { return b.random }

func (b *BaseBattleground) SetRandom(random bool) { b.random = random }

func (b *BaseBattleground) IsHoliday() bool { return b.holiday }

func (b *BaseBattleground) SetHoliday(holiday bool) { b.holiday = holiday }

func (b *BaseBattleground) Status() models.Status { return b.status }

func (b *BaseBattleground) SetStatus(status models.Status) { b.status = status }

func (b *BaseBattleground) Template() *models.Template { return b.tmpl }

// TeamStartPosition returns this instance's copy of a side's start location.
func (b *BaseBattleground) TeamStartPosition(team models.TeamIndex) *models.StartLocation {
	return b.startLocations[team]
}

// SetTimeLimit arms the match time limit; reaching it finishes the instance.
func (b *BaseBattleground) SetTimeLimit(limit time.Duration) {
	b.remaining = limit
	b.timeLimited = limit > 0
}

// SetFinished marks the instance for the next sweep. Premature cancellation
// uses this directly.
func (b *BaseBattleground) SetFinished(finished bool) { b.finished = finished }

// Reset returns the instance to the wait-queue state before a match starts.
func (b *BaseBattleground) Reset() {
	b.status = models.StatusWaitQueue
	b.elapsed = 0
	b.finished = false
}

// Advance moves the shared timers forward. Variants embedding the base call
// this before their own gameplay step.
func (b *BaseBattleground) Advance(elapsed time.Duration) {
	b.elapsed += elapsed
	if !b.timeLimited {
		return
	}

	b.remaining -= elapsed
	if b.remaining <= 0 {
		b.remaining = 0
		b.status = models.StatusWaitLeave
		b.finished = true
	}
}

func (b *BaseBattleground) IsFinished() bool { return b.finished }

func (b *BaseBattleground) ElapsedTime() time.Duration { return b.elapsed }

func (b *BaseBattleground) RemainingTime() time.Duration { return b.remaining }

// Clone produces a fresh copy for a real match: shared value state is copied
// as-is, the start positions are deep-copied so gameplay can move them
// per instance. Variants holding their own mutable state must override this.
func (b *BaseBattleground) Clone() (battleground.Battleground, error) {
	cp := *b

	copied, err := copystructure.Copy(b.startLocations)
	if err != nil {
		logrus.Warn("failed to copy battleground start locations:", err)
		return nil, err
	}
	cp.startLocations = copied.([models.TeamCount]*models.StartLocation)

	return &cp, nil
}
