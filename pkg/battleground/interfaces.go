// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

// Package battleground provides the lifecycle core for ephemeral
// competitive-match instances: the template registry, the per-type instance
// registry with client-visible numbering, the tick sweep that advances and
// reaps instances, and the deferred queue-update scheduler that batches
// matchmaking re-evaluation requests.
package battleground

import (
	"time"

	"github.com/AccelByte/extend-core-battleground/pkg/envelope"
	"github.com/AccelByte/extend-core-battleground/pkg/models"
)

/*
Battleground is the generic contract every gameplay variant implements. The
manager never interprets gameplay; it only advances instances by elapsed time
and observes the finished signal. A variant cancels itself by reporting
finished early, which the sweep treats like a normal finish.

The prototype instance of each type (instance id 0, seeded straight from the
template) is held in the same registry as live instances but is never
advanced and never reaped.
*/
type Battleground interface {
	// TypeID returns the effective battleground type of this instance.
	TypeID() models.TypeID

	// RequestedTypeID returns the type the creation request named. Differs
	// from TypeID when the weighted variant selection picked a sibling; the
	// client-visible number stays scoped to the requested type.
	RequestedTypeID() models.TypeID
	SetRequestedTypeID(models.TypeID)

	// InstanceID is the globally unique instance id. The template prototype
	// always carries instance id 0.
	InstanceID() uint32
	SetInstanceID(uint32)

	// ClientInstanceID is the small display number unique per (type, bracket).
	// Always 0 for arenas.
	ClientInstanceID() uint32
	SetClientInstanceID(uint32)

	Bracket() models.BracketID
	SetBracket(models.BracketID)

	ArenaType() models.ArenaType
	SetArenaType(models.ArenaType)

	IsArena() bool
	IsRated() bool
	SetRated(bool)
	IsRandom() bool
	SetRandom(bool)
	SetHoliday(bool)

	Status() models.Status
	SetStatus(models.Status)

	// Template returns the immutable template this instance was seeded from.
	Template() *models.Template

	// Reset returns the instance to the wait-queue state before a match starts.
	Reset()

	// Advance moves gameplay forward by the elapsed time since the last sweep.
	Advance(elapsed time.Duration)

	// IsFinished reports that the instance can be reaped by the next sweep.
	IsFinished() bool

	ElapsedTime() time.Duration
	RemainingTime() time.Duration

	// Clone produces a fresh copy of this instance to seed a real match.
	// Only called on template prototypes.
	Clone() (Battleground, error)
}

// Factory creates battleground variants for a template, keyed on its type id.
type Factory interface {
	New(tmpl *models.Template) (Battleground, error)
}

// QueueUpdater is the re-evaluation entry point of one matchmaking queue.
// Implemented by the matchmaking-queue component, which owns all player
// grouping and rating logic.
type QueueUpdater interface {
	OnQueueUpdateDue(scope *envelope.Scope, elapsed time.Duration, typeID models.TypeID, bracket models.BracketID, arenaType models.ArenaType, isRated bool, rating uint32)
}

// InstanceIDGenerator allocates globally unique battleground instance ids.
type InstanceIDGenerator interface {
	NextInstanceID() uint32
}

// SequentialInstanceIDGenerator hands out instance ids starting at 1, so id 0
// stays reserved for template prototypes.
type SequentialInstanceIDGenerator struct {
	last uint32
}

func NewSequentialInstanceIDGenerator() *SequentialInstanceIDGenerator {
	return &SequentialInstanceIDGenerator{}
}

func (g *SequentialInstanceIDGenerator) NextInstanceID() uint32 {
	g.last++
	return g.last
}
