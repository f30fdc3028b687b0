// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package battleground

import (
	"github.com/elliotchance/pie/v2"

	"github.com/AccelByte/extend-core-battleground/pkg/models"
)

// AddToFreeSlotQueue marks an instance as still accepting joiners. The list
// keeps the most recently added instance first so new joiners land in the
// freshest match.
func (m *Manager) AddToFreeSlotQueue(typeID models.TypeID, bg Battleground) {
	data := m.data(typeID)
	data.freeSlots = append([]Battleground{bg}, data.freeSlots...)
}

// RemoveFromFreeSlotQueue drops an instance from the free-slot list, e.g.
// because it filled up. The instance itself stays registered.
func (m *Manager) RemoveFromFreeSlotQueue(typeID models.TypeID, instanceID uint32) {
	data, ok := m.bgData[typeID]
	if !ok {
		return
	}
	m.removeFreeSlot(data, instanceID)
}

// FreeSlotQueue returns the instances of a type still accepting joiners,
// most recently added first.
func (m *Manager) FreeSlotQueue(typeID models.TypeID) []Battleground {
	data, ok := m.bgData[typeID]
	if !ok {
		return nil
	}
	return data.freeSlots
}

func (m *Manager) removeFreeSlot(data *battlegroundData, instanceID uint32) {
	data.freeSlots = pie.FilterNot(data.freeSlots, func(bg Battleground) bool {
		return bg.InstanceID() == instanceID
	})
}
