// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package battleground

import (
	"time"

	"github.com/AccelByte/extend-core-battleground/pkg/models"
)

// fakeBattleground is the in-package test double. The production
// implementation lives in defaultbattleground, which this package cannot
// import from its own tests.
type fakeBattleground struct {
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
	finished        bool
}

func newFakeBattleground(tmpl *models.Template) *fakeBattleground {
	return &fakeBattleground{tmpl: tmpl, typeID: tmpl.ID, requestedTypeID: tmpl.ID}
}

func (f *fakeBattleground) TypeID() models.TypeID { return f.typeID }
func (f *fakeBattleground) RequestedTypeID() models.TypeID { return f.requestedTypeID }
func (f *fakeBattleground) SetRequestedTypeID(typeID models.TypeID) { f.requestedTypeID = typeID }
func (f *fakeBattleground) InstanceID() uint32 { return f.instanceID }
func (f *fakeBattleground) SetInstanceID(id uint32) { f.instanceID = id }
func (f *fakeBattleground) ClientInstanceID() uint32 { return f.clientID }
func (f *fakeBattleground) SetClientInstanceID(id uint32) { f.clientID = id }
func (f *fakeBattleground) Bracket() models.BracketID { return f.bracket }
func (f *fakeBattleground) SetBracket(bracket models.BracketID) { f.bracket = bracket }
func (f *fakeBattleground) ArenaType() models.ArenaType { return f.arenaType }
func (f *fakeBattleground) SetArenaType(arenaType models.ArenaType) { f.arenaType = arenaType }
func (f *fakeBattleground) IsArena() bool { return f.tmpl.IsArena() }
func (f *fakeBattleground) IsRated() bool { return f.rated }
func (f *fakeBattleground) SetRated(rated bool) { f.rated = rated }
func (f *fakeBattleground) IsRandom() bool { return f.random }
func (f *fakeBattleground) SetRandom(random bool) { f.random = random }
func (f *fakeBattleground) SetHoliday(holiday bool) { f.holiday = holiday }
func (f *fakeBattleground) Status() models.Status { return f.status }
func (f *fakeBattleground) SetStatus(status models.Status) { f.status = status }
func (f *fakeBattleground) Template() *models.Template { return f.tmpl }
func (f *fakeBattleground) Reset() { f.elapsed = 0; f.finished = false }
func (f *fakeBattleground) Advance(elapsed time.Duration) { f.elapsed += elapsed }
func (f *fakeBattleground) IsFinished() bool { return f.finished }
func (f *fakeBattleground) ElapsedTime() time.Duration { return f.elapsed }
func (f *fakeBattleground) RemainingTime() time.Duration { return 0 }

func (f *fakeBattleground) Clone() (Battleground, error) {
	cp := *f
	return &cp, nil
}

type fakeFactory struct{}

func (fakeFactory) New(tmpl *models.Template) (Battleground, error) {
	return newFakeBattleground(tmpl), nil
}
