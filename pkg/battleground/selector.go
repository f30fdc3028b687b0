// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package battleground

import (
	"time"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/sampleuv"

	"github.com/AccelByte/extend-core-battleground/pkg/envelope"
	"github.com/AccelByte/extend-core-battleground/pkg/models"
)

// variantSelector picks the effective battleground type for a requested type
// by weighted random choice among the sibling templates reachable through the
// requested template's candidate maps. Selection happens once per instance
// creation.
type variantSelector struct {
	src rand.Source
}

// newVariantSelector seeds the selector. Seed 0 means seed from the wall
// clock; any other value makes the selection reproducible.
func newVariantSelector(seed int64) *variantSelector {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &variantSelector{src: rand.NewSource(uint64(seed))}
}

// randomTypeID resolves the effective type. A template with no candidate
// siblings degenerates to the requested type unchanged. All candidate weights
// being zero makes the variant unresolvable.
func (s *variantSelector) randomTypeID(scope *envelope.Scope, repo *TemplateRepository, typeID models.TypeID) (models.TypeID, error) {
	tmpl := repo.Template(typeID)
	if tmpl == nil {
		return typeID, nil
	}

	siblings := make([]*models.Template, 0, len(tmpl.Entry.MapIDs))
	weights := make([]float64, 0, len(tmpl.Entry.MapIDs))
	totalWeight := 0.0
	for _, mapID := range tmpl.Entry.MapIDs {
		sibling := repo.TemplateByMapID(mapID)
		if sibling == nil {
			continue
		}
		siblings = append(siblings, sibling)
		weights = append(weights, sibling.Weight)
		totalWeight += sibling.Weight
	}

	if len(siblings) == 0 {
		return typeID, nil
	}
	if totalWeight <= 0 {
		scope.Log.WithField("bgType", typeID).WithField("maps", models.MapIDsOf(siblings)).Error("all weighted variants of battleground type have zero weight")
		return models.TypeNone, models.ErrVariantUnresolvable
	}

	idx, ok := sampleuv.NewWeighted(weights, s.src).Take()
	if !ok {
		return models.TypeNone, models.ErrVariantUnresolvable
	}

	return siblings[idx].ID, nil
}
