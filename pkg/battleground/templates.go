// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package battleground

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/AccelByte/extend-core-battleground/pkg/common"
	"github.com/AccelByte/extend-core-battleground/pkg/constants"
	"github.com/AccelByte/extend-core-battleground/pkg/envelope"
	"github.com/AccelByte/extend-core-battleground/pkg/metrics"
	"github.com/AccelByte/extend-core-battleground/pkg/models"
)

// TemplateRepository is the immutable result of one template load: a
// type-keyed index plus a map-keyed reverse index for templates bound to
// exactly one map. A reload builds a fresh repository and swaps it wholesale.
type TemplateRepository struct {
	byType map[models.TypeID]*models.Template
	byMap  map[int32]*models.Template
}

func newTemplateRepository() *TemplateRepository {
	return &TemplateRepository{
		byType: make(map[models.TypeID]*models.Template),
		byMap:  make(map[int32]*models.Template),
	}
}

// Template returns the template of a type, or nil when the type is unknown.
func (r *TemplateRepository) Template(typeID models.TypeID) *models.Template {
	return r.byType[typeID]
}

// TemplateByMapID reverse-looks-up the template bound to a map. Only
// templates with exactly one associated map are indexed here.
func (r *TemplateRepository) TemplateByMapID(mapID int32) *models.Template {
	return r.byMap[mapID]
}

// Len returns the number of loaded templates.
func (r *TemplateRepository) Len() int {
	return len(r.byType)
}

// TypeIDs returns the loaded type ids in unspecified order.
func (r *TemplateRepository) TypeIDs() []models.TypeID {
	ids := make([]models.TypeID, 0, len(r.byType))
	for id := range r.byType {
		ids = append(ids, id)
	}
	return ids
}

// LoadDeps are the external lookups the template loader validates rows
// against. They are collaborators of the load step, not owned by it.
type LoadDeps struct {
	// BattlemasterEntry resolves the static battlemaster-list data of a type.
	// A row whose type has no entry is dropped.
	BattlemasterEntry func(models.TypeID) *models.BattlemasterEntry

	// StartLocation resolves a world-safe start-location reference.
	StartLocation func(id uint32) *models.StartLocation

	// IsTypeDisabled skips a row without treating it as an error.
	IsTypeDisabled func(models.TypeID) bool

	// Previous is the repository being replaced on reload. A reload row with
	// a dangling start-location reference keeps the previously resolved
	// location instead of being dropped.
	Previous *TemplateRepository
}

// LoadTemplates parses and validates one template per row. Offending rows are
// logged and dropped; the load continues for the remaining rows.
func LoadTemplates(rootScope *envelope.Scope, rows []models.TemplateRow, deps LoadDeps, metricsClient metrics.BattlegroundMetrics) *TemplateRepository {
	scope := rootScope.NewChildScope("battleground.LoadTemplates")
	defer scope.Finish()

	startTime := time.Now()
	repo := newTemplateRepository()

	for _, row := range rows {
		if deps.IsTypeDisabled != nil && deps.IsTypeDisabled(row.ID) {
			scope.Log.WithField("bgType", row.ID).Debug("battleground type disabled, skipping template row")
			metricsClient.AddTemplateDropped(fmt.Sprint(row.ID), constants.DropReasonDisabled)
			continue
		}

		entry := deps.BattlemasterEntry(row.ID)
		if entry == nil {
			scope.Log.WithField("bgType", row.ID).Errorf("%v, template not created: %s", models.ErrNoBattlemasterEntry, common.LogJSONFormatter(row))
			metricsClient.AddTemplateDropped(fmt.Sprint(row.ID), constants.DropReasonNoBattlemasterEntry)
			continue
		}

		tmpl := &models.Template{
			ID:              row.ID,
			MaxStartDistSq:  row.MaxStartDist * row.MaxStartDist,
			Weight:          row.Weight,
			ScriptName:      row.ScriptName,
			Entry:           entry,
			RandomContainer: len(entry.MapIDs) > 1,
		}

		// Container and arena types never spawn players themselves, so only
		// single-map battlegrounds need resolvable start locations.
		if !tmpl.IsArena() && !tmpl.RandomContainer {
			if !resolveStartLocations(scope, tmpl, row, deps, metricsClient) {
				continue
			}
		}

		repo.byType[tmpl.ID] = tmpl
		if mapID, ok := tmpl.SingleMapID(); ok {
			repo.byMap[mapID] = tmpl
		}
	}

	scope.Log.WithField("count", repo.Len()).Infof("loaded %d battleground templates in %dms", repo.Len(), time.Since(startTime).Milliseconds())
	metricsClient.AddLifecycleElapsedTimeMs(constants.LoadFunction, time.Since(startTime))

	return repo
}

func resolveStartLocations(scope *envelope.Scope, tmpl *models.Template, row models.TemplateRow, deps LoadDeps, metricsClient metrics.BattlegroundMetrics) bool {
	refs := [models.TeamCount]uint32{row.AllianceStartLoc, row.HordeStartLoc}

	for team := models.TeamIndex(0); team < models.TeamCount; team++ {
		if loc := deps.StartLocation(refs[team]); loc != nil {
			tmpl.StartLocations[team] = loc
			continue
		}

		// Reload case: keep the location resolved by the previous load and
		// only log the dangling reference.
		if deps.Previous != nil {
			if prev := deps.Previous.Template(tmpl.ID); prev != nil && prev.StartLocations[team] != nil {
				scope.Log.WithField("bgType", tmpl.ID).Errorf("template row for type %d references non-existing start location %d, ignoring", tmpl.ID, refs[team])
				tmpl.StartLocations[team] = prev.StartLocations[team]
				continue
			}
		}

		scope.Log.WithField("bgType", tmpl.ID).Errorf("%v: type %d references start location %d, template not created", models.ErrStartLocationNotFound, tmpl.ID, refs[team])
		metricsClient.AddTemplateDropped(fmt.Sprint(tmpl.ID), constants.DropReasonBadStartLocation)
		return false
	}

	return true
}

// LoadTemplateFile reads template rows from a JSON file, the format watched
// by the reload watcher.
func LoadTemplateFile(path string) ([]models.TemplateRow, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("error opening template file: %w", err)
	}
	defer f.Close()

	var rows []models.TemplateRow
	if err = json.NewDecoder(f).Decode(&rows); err != nil {
		return nil, fmt.Errorf("error decoding template json: %w", err)
	}

	return rows, nil
}
