// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package defaultbattleground

import (
	"github.com/AccelByte/extend-core-battleground/pkg/battleground"
	"github.com/AccelByte/extend-core-battleground/pkg/models"
)

// Constructor builds one gameplay variant from its template.
type Constructor func(tmpl *models.Template) battleground.Battleground

// Factory selects the variant implementation by type identifier. Types with
// no registered constructor get the base implementation, which is what the
// container types (random battleground, all-arenas) use.
type Factory struct {
	constructors map[models.TypeID]Constructor
}

// NewFactory returns a Factory of the battleground.Factory interface.
func NewFactory() *Factory {
	return &Factory{
		constructors: make(map[models.TypeID]Constructor),
	}
}

// Register binds a variant constructor to its type id. Registering again
// replaces the previous constructor.
func (f *Factory) Register(typeID models.TypeID, ctor Constructor) {
	f.constructors[typeID] = ctor
}

// New seeds a battleground for the template, picking the registered variant
// when one exists.
func (f *Factory) New(tmpl *models.Template) (battleground.Battleground, error) {
	if ctor, ok := f.constructors[tmpl.ID]; ok {
		return ctor(tmpl), nil
	}
	return New(tmpl), nil
}
