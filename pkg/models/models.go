// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package models

import (
	"fmt"

	"github.com/elliotchance/pie/v2"
)

// TypeID identifies one battleground type (one logical activity). A type may
// fan out to several sibling types through the weighted variant selection.
type TypeID uint32

// TypeNone is the wildcard type used by lookups to search every type.
const TypeNone TypeID = 0

// QueueTypeID identifies one matchmaking queue.
type QueueTypeID uint8

const (
	QueueTypeNone QueueTypeID = 0

	// Rated arena queues form a contiguous range so the forced refresh can
	// sweep them without knowing the concrete queue set.
	QueueTypeArena2v2 QueueTypeID = 1
	QueueTypeArena3v3 QueueTypeID = 2
	QueueTypeArena5v5 QueueTypeID = 3

	QueueTypeArenaFirst = QueueTypeArena2v2
	QueueTypeArenaLast  = QueueTypeArena5v5
)

// ArenaType is the arena team-size class (2v2, 3v3, 5v5). Zero for
// non-arena battlegrounds.
type ArenaType uint8

const (
	ArenaTypeNone ArenaType = 0
	ArenaType2v2  ArenaType = 2
	ArenaType3v3  ArenaType = 3
	ArenaType5v5  ArenaType = 5
)

// BracketID is a level-range partition. Client-visible instance numbering is
// scoped per (type, bracket).
type BracketID uint8

// BracketCount bounds the bracket space for forced full-queue sweeps.
const BracketCount BracketID = 12

// TeamIndex addresses the per-side start location of a template.
type TeamIndex int

const (
	TeamAlliance TeamIndex = 0
	TeamHorde    TeamIndex = 1
	TeamCount              = 2
)

// Status is the lifecycle state of one battleground instance.
type Status uint8

const (
	StatusNone       Status = 0
	StatusWaitQueue  Status = 1
	StatusWaitJoin   Status = 2
	StatusInProgress Status = 3
	StatusWaitLeave  Status = 4
)

func (s Status) String() string {
	switch s {
	case StatusNone:
		return "none"
	case StatusWaitQueue:
		return "waitQueue"
	case StatusWaitJoin:
		return "waitJoin"
	case StatusInProgress:
		return "inProgress"
	case StatusWaitLeave:
		return "waitLeave"
	default:
		return fmt.Sprintf("status(%d)", uint8(s))
	}
}

// StartLocation is a resolved world-safe start position reference of one side.
type StartLocation struct {
	ID uint32
	X  float64
	Y  float64
	Z  float64
	O  float64
}

// BattlemasterEntry is the static battlemaster-list data a template row is
// validated against. Resolved by a loader dependency, never owned here.
type BattlemasterEntry struct {
	TypeID            TypeID
	Arena             bool
	MinPlayersPerTeam uint16
	MaxPlayersPerTeam uint16
	MinLevel          uint8
	MaxLevel          uint8
	MapIDs            []int32
}

// Template is the immutable static configuration of one battleground type.
// Built once by the loader, referenced by type id, never mutated.
type Template struct {
	ID              TypeID
	MaxStartDistSq  float64
	Weight          float64
	ScriptName      string
	Entry           *BattlemasterEntry
	StartLocations  [TeamCount]*StartLocation
	RandomContainer bool
}

func (t *Template) IsArena() bool {
	return t.Entry.Arena
}

func (t *Template) MinPlayersPerTeam() uint16 {
	return t.Entry.MinPlayersPerTeam
}

func (t *Template) MaxPlayersPerTeam() uint16 {
	return t.Entry.MaxPlayersPerTeam
}

func (t *Template) MinLevel() uint8 {
	return t.Entry.MinLevel
}

func (t *Template) MaxLevel() uint8 {
	return t.Entry.MaxLevel
}

// SingleMapID returns the map bound to this template when it has exactly one,
// which is what makes it addressable through the reverse map index.
func (t *Template) SingleMapID() (int32, bool) {
	if len(t.Entry.MapIDs) != 1 {
		return 0, false
	}
	return t.Entry.MapIDs[0], true
}

// TemplateRow is one row of external template configuration, prior to
// validation against the static battlemaster data.
type TemplateRow struct {
	ID               TypeID  `json:"id"`
	AllianceStartLoc uint32  `json:"alliance_start_loc"`
	HordeStartLoc    uint32  `json:"horde_start_loc"`
	MaxStartDist     float64 `json:"max_start_dist"`
	Weight           float64 `json:"weight"`
	ScriptName       string  `json:"script_name"`
}

// QueueUpdateKey identifies one deferred queue re-evaluation request. Keys
// compare structurally; an identical key scheduled twice within one tick is
// dispatched once.
type QueueUpdateKey struct {
	Rating    uint32
	ArenaType ArenaType
	QueueType QueueTypeID
	TypeID    TypeID
	Bracket   BracketID
}

// Pack renders the key in the legacy 64-bit layout (rating in the high 32
// bits, then arena type, queue type, battleground type, bracket). Used for
// log correlation only; dedup identity is the struct itself.
func (k QueueUpdateKey) Pack() uint64 {
	return uint64(k.Rating)<<32 |
		uint64(k.ArenaType)<<24 |
		uint64(k.QueueType)<<16 |
		uint64(uint8(k.TypeID))<<8 |
		uint64(k.Bracket)
}

// UnpackQueueUpdateKey is the inverse of Pack.
func UnpackQueueUpdateKey(packed uint64) QueueUpdateKey {
	return QueueUpdateKey{
		Rating:    uint32(packed >> 32),
		ArenaType: ArenaType(packed >> 24 & 0xFF),
		QueueType: QueueTypeID(packed >> 16 & 0xFF),
		TypeID:    TypeID(packed >> 8 & 0xFF),
		Bracket:   BracketID(packed & 0xFF),
	}
}

// IsRated reports whether the request carries a matchmaking rating.
func (k QueueUpdateKey) IsRated() bool {
	return k.Rating > 0
}

// TypeArenaAll is the placeholder type covering every arena variant. Forced
// rated refreshes dispatch with it because the concrete arena is only chosen
// at instance creation.
const TypeArenaAll TypeID = 6

// ArenaQueueType maps an arena size class to its rated queue.
func ArenaQueueType(arenaType ArenaType) QueueTypeID {
	switch arenaType {
	case ArenaType2v2:
		return QueueTypeArena2v2
	case ArenaType3v3:
		return QueueTypeArena3v3
	case ArenaType5v5:
		return QueueTypeArena5v5
	default:
		return QueueTypeNone
	}
}

// ArenaTypeForQueue is the inverse of ArenaQueueType.
func ArenaTypeForQueue(queueType QueueTypeID) ArenaType {
	switch queueType {
	case QueueTypeArena2v2:
		return ArenaType2v2
	case QueueTypeArena3v3:
		return ArenaType3v3
	case QueueTypeArena5v5:
		return ArenaType5v5
	default:
		return ArenaTypeNone
	}
}

// QueueTypeFor maps a battleground type to its matchmaking queue. Arena
// requests resolve through the size class; every other type owns a single
// queue in the range above the rated arena queues. Type ids must fit the
// 8-bit queue space alongside the arena range.
func QueueTypeFor(typeID TypeID, arenaType ArenaType) QueueTypeID {
	if arenaType != ArenaTypeNone {
		return ArenaQueueType(arenaType)
	}
	if typeID == TypeNone {
		return QueueTypeNone
	}
	return QueueTypeArenaLast + QueueTypeID(typeID)
}

// TemplateTypeID is the inverse of QueueTypeFor. Arena queues all resolve to
// TypeArenaAll because the concrete arena is only chosen at creation.
func TemplateTypeID(queueType QueueTypeID) TypeID {
	switch {
	case queueType == QueueTypeNone:
		return TypeNone
	case queueType >= QueueTypeArenaFirst && queueType <= QueueTypeArenaLast:
		return TypeArenaAll
	default:
		return TypeID(queueType - QueueTypeArenaLast)
	}
}

// RatedQueueTypes lists the rating-sensitive queue types swept by the forced
// rated refresh.
func RatedQueueTypes() []QueueTypeID {
	ids := make([]QueueTypeID, 0, int(QueueTypeArenaLast-QueueTypeArenaFirst)+1)
	for q := QueueTypeArenaFirst; q <= QueueTypeArenaLast; q++ {
		ids = append(ids, q)
	}
	return ids
}

// MapIDsOf flattens the candidate map ids of a template set, used when
// diagnosing variant selection.
func MapIDsOf(templates []*Template) []int32 {
	return pie.Flat(pie.Map(templates, func(t *Template) []int32 {
		return t.Entry.MapIDs
	}))
}
