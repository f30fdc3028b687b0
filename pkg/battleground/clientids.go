// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package battleground

import (
	"math"

	"github.com/elliotchance/pie/v2"

	"github.com/AccelByte/extend-core-battleground/pkg/models"
)

// createClientVisibleInstanceID allocates the small display number of a new
// instance, scoped to (requestedTypeID, bracket). The number only exists so
// players see "Match #1" instead of a global instance id: allocation walks
// the contiguous run from 1 and takes the first gap, so released numbers are
// reused before a new maximum is minted. Arenas always get 0.
func (m *Manager) createClientVisibleInstanceID(effectiveTypeID, requestedTypeID models.TypeID, bracket models.BracketID) (uint32, error) {
	if tmpl := m.Templates().Template(effectiveTypeID); tmpl != nil && tmpl.IsArena() {
		return 0, nil
	}

	data := m.data(requestedTypeID)
	clients := data.clientIDs[bracket]
	if clients == nil {
		clients = make(map[uint32]struct{})
		data.clientIDs[bracket] = clients
	}

	lastID := uint32(0)
	for _, id := range pie.Sort(pie.Keys(clients)) {
		if lastID+1 != id {
			break
		}
		lastID = id
	}

	// Cannot happen under correct accounting; fail loudly rather than reuse
	// a live number.
	if lastID == math.MaxUint32 {
		return 0, models.ErrClientIDExhausted
	}

	lastID++
	clients[lastID] = struct{}{}
	return lastID, nil
}

// releaseClientVisibleInstanceID returns the display number of a destroyed
// instance to its (requestedTypeID, bracket) set.
func (m *Manager) releaseClientVisibleInstanceID(bg Battleground) {
	if bg.ClientInstanceID() == 0 {
		return
	}
	data, ok := m.bgData[bg.RequestedTypeID()]
	if !ok {
		return
	}
	if clients := data.clientIDs[bg.Bracket()]; clients != nil {
		delete(clients, bg.ClientInstanceID())
	}
}
