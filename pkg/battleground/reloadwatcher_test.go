// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package battleground

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	. "github.com/onsi/gomega"

	"github.com/AccelByte/extend-core-battleground/pkg/config"
	"github.com/AccelByte/extend-core-battleground/pkg/models"
	"github.com/AccelByte/extend-core-battleground/pkg/testsetup"
)

func watcherManager() *Manager {
	factory := fakeFactory{}
	return NewManager(&config.Config{SelectorSeed: 7}, testsetup.NewMetrics(), factory, NewSequentialInstanceIDGenerator(), loaderDeps())
}

func TestManager_StagedReloadAppliedOnNextUpdate(t *testing.T) {
	scope := testsetup.NewTestScope()
	defer scope.Finish()
	m := watcherManager()

	m.stageReload([]models.TemplateRow{
		{ID: 1, AllianceStartLoc: 100, HordeStartLoc: 101},
		{ID: 3, Weight: 1},
	})
	assert.Zero(t, m.Templates().Len())

	m.Update(scope, 50*time.Millisecond)
	assert.Equal(t, 2, m.Templates().Len())
}

func TestManager_LatestStagedReloadWins(t *testing.T) {
	scope := testsetup.NewTestScope()
	defer scope.Finish()
	m := watcherManager()

	m.stageReload([]models.TemplateRow{{ID: 1, AllianceStartLoc: 100, HordeStartLoc: 101}})
	m.stageReload([]models.TemplateRow{{ID: 3, Weight: 1}})

	m.Update(scope, 50*time.Millisecond)

	assert.Equal(t, 1, m.Templates().Len())
	assert.NotNil(t, m.Templates().Template(3))
	assert.Nil(t, m.Templates().Template(1))
}

func TestReloadWatcher_StagesRowsOnFileWrite(t *testing.T) {
	g := NewGomegaWithT(t)
	scope := testsetup.NewTestScope()
	defer scope.Finish()

	path := filepath.Join(t.TempDir(), "templates.json")
	require.NoError(t, os.WriteFile(path, []byte(`[]`), 0o600))

	m := watcherManager()
	watcher, err := m.WatchTemplateFile(scope, path)
	require.NoError(t, err)
	defer watcher.Close()

	content := `[{"id": 1, "alliance_start_loc": 100, "horde_start_loc": 101}]`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	g.Eventually(func() int {
		m.Update(scope, 10*time.Millisecond)
		return m.Templates().Len()
	}, 3*time.Second, 20*time.Millisecond).Should(Equal(1))
}

func TestReloadWatcher_WatchMissingFileFails(t *testing.T) {
	scope := testsetup.NewTestScope()
	defer scope.Finish()
	m := watcherManager()

	watcher, err := m.WatchTemplateFile(scope, filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
	assert.Nil(t, watcher)
}
