// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package battleground_test

import (
	"testing"
	"time"

	. "github.com/onsi/gomega"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AccelByte/extend-core-battleground/pkg/battleground"
	"github.com/AccelByte/extend-core-battleground/pkg/battleground/defaultbattleground"
	"github.com/AccelByte/extend-core-battleground/pkg/config"
	"github.com/AccelByte/extend-core-battleground/pkg/models"
	"github.com/AccelByte/extend-core-battleground/pkg/testsetup"
)

const (
	typeWarsong   models.TypeID = 1
	typeArathi    models.TypeID = 2
	typeRandomBG  models.TypeID = 3
	typeArena     models.TypeID = 4
	typeNoMapData models.TypeID = 9
)

func testEntries() map[models.TypeID]*models.BattlemasterEntry {
	return map[models.TypeID]*models.BattlemasterEntry{
		typeWarsong: {
			TypeID:            typeWarsong,
			MinPlayersPerTeam: 5,
			MaxPlayersPerTeam: 10,
			MinLevel:          10,
			MaxLevel:          80,
			MapIDs:            []int32{10},
		},
		typeArathi: {
			TypeID:            typeArathi,
			MinPlayersPerTeam: 5,
			MaxPlayersPerTeam: 15,
			MinLevel:          20,
			MaxLevel:          80,
			MapIDs:            []int32{11},
		},
		typeRandomBG: {
			TypeID:            typeRandomBG,
			MinPlayersPerTeam: 5,
			MaxPlayersPerTeam: 15,
			MinLevel:          10,
			MaxLevel:          80,
			MapIDs:            []int32{10, 11},
		},
		typeArena: {
			TypeID:            typeArena,
			Arena:             true,
			MinPlayersPerTeam: 2,
			MaxPlayersPerTeam: 5,
			MinLevel:          70,
			MaxLevel:          80,
			MapIDs:            []int32{20},
		},
	}
}

func testDeps() battleground.LoadDeps {
	entries := testEntries()
	return battleground.LoadDeps{
		BattlemasterEntry: func(typeID models.TypeID) *models.BattlemasterEntry {
			return entries[typeID]
		},
		StartLocation: func(id uint32) *models.StartLocation {
			if id == 0 || id >= 900 {
				return nil
			}
			return &models.StartLocation{ID: id, X: float64(id)}
		},
	}
}

func testRows() []models.TemplateRow {
	return []models.TemplateRow{
		{ID: typeWarsong, AllianceStartLoc: 100, HordeStartLoc: 101, MaxStartDist: 75, Weight: 1},
		{ID: typeArathi, AllianceStartLoc: 102, HordeStartLoc: 103, MaxStartDist: 75, Weight: 3},
		{ID: typeRandomBG, Weight: 1},
		{ID: typeArena, Weight: 1},
	}
}

func newTestManager(t *testing.T, cfg *config.Config) (*battleground.Manager, *defaultbattleground.Factory) {
	t.Helper()
	if cfg == nil {
		cfg = &config.Config{SelectorSeed: 7}
	}
	factory := defaultbattleground.NewFactory()
	m := battleground.NewManager(cfg, testsetup.NewMetrics(), factory, battleground.NewSequentialInstanceIDGenerator(), testDeps())
	return m, factory
}

func loadTestTemplates(t *testing.T, m *battleground.Manager) {
	t.Helper()
	scope := testsetup.NewTestScope()
	defer scope.Finish()
	m.LoadTemplates(scope, testRows())
	require.Equal(t, 4, m.Templates().Len())
}

func TestCreateBattleground_AssignsUniqueClientInstanceIDs(t *testing.T) {
	g := testsetup.ParallelWithGomega(t)
	m, _ := newTestManager(t, nil)
	loadTestTemplates(t, m)

	seen := map[uint32]bool{}
	for i := 0; i < 3; i++ {
		bg, err := m.CreateBattleground(g.TestScope, typeWarsong, 0, models.ArenaTypeNone, false)
		g.Expect(err).ToNot(HaveOccurred())
		m.AddBattleground(bg)

		g.Expect(bg.Status()).To(Equal(models.StatusWaitJoin))
		g.Expect(seen[bg.ClientInstanceID()]).To(BeFalse())
		seen[bg.ClientInstanceID()] = true
	}

	g.Expect(seen).To(HaveLen(3))
}

func TestCreateBattleground_ReusesSmallestReleasedClientID(t *testing.T) {
	scope := testsetup.NewTestScope()
	defer scope.Finish()
	m, _ := newTestManager(t, nil)
	loadTestTemplates(t, m)

	var second battleground.Battleground
	for i := 0; i < 3; i++ {
		bg, err := m.CreateBattleground(scope, typeWarsong, 0, models.ArenaTypeNone, false)
		require.NoError(t, err)
		m.AddBattleground(bg)
		if bg.ClientInstanceID() == 2 {
			second = bg
		}
	}
	require.NotNil(t, second)

	m.RemoveBattleground(typeWarsong, second.InstanceID())

	bg, err := m.CreateBattleground(scope, typeWarsong, 0, models.ArenaTypeNone, false)
	require.NoError(t, err)
	assert.Equal(t, uint32(2), bg.ClientInstanceID())
}

func TestCreateBattleground_ArenaHasNoClientInstanceID(t *testing.T) {
	scope := testsetup.NewTestScope()
	defer scope.Finish()
	m, _ := newTestManager(t, nil)
	loadTestTemplates(t, m)

	bg, err := m.CreateBattleground(scope, typeArena, 3, models.ArenaType2v2, true)
	require.NoError(t, err)
	assert.Zero(t, bg.ClientInstanceID())
	assert.True(t, bg.IsArena())
	assert.True(t, bg.IsRated())
}

func TestCreateBattleground_TemplateNotFound(t *testing.T) {
	scope := testsetup.NewTestScope()
	defer scope.Finish()
	m, _ := newTestManager(t, nil)
	loadTestTemplates(t, m)

	bg, err := m.CreateBattleground(scope, typeNoMapData, 0, models.ArenaTypeNone, false)
	assert.Nil(t, bg)
	assert.ErrorIs(t, err, models.ErrTemplateNotFound)
}

func TestCreateBattleground_RandomContainerSelectsWeightedVariant(t *testing.T) {
	scope := testsetup.NewTestScope()
	defer scope.Finish()
	m, _ := newTestManager(t, &config.Config{SelectorSeed: 1})
	loadTestTemplates(t, m)

	const trials = 4000
	counts := map[models.TypeID]int{}
	for i := 0; i < trials; i++ {
		bg, err := m.CreateBattleground(scope, typeRandomBG, 0, models.ArenaTypeNone, false)
		require.NoError(t, err)

		assert.True(t, bg.IsRandom())
		assert.Equal(t, typeRandomBG, bg.RequestedTypeID())
		counts[bg.TypeID()]++
	}

	// Warsong weight 1 vs Arathi weight 3.
	ratio := float64(counts[typeArathi]) / trials
	assert.InDelta(t, 0.75, ratio, 0.05)
	assert.Zero(t, counts[typeRandomBG])
}

func TestBattleground_WildcardLookupSearchesAllTypes(t *testing.T) {
	scope := testsetup.NewTestScope()
	defer scope.Finish()
	m, _ := newTestManager(t, nil)
	loadTestTemplates(t, m)

	bg, err := m.CreateBattleground(scope, typeArathi, 0, models.ArenaTypeNone, false)
	require.NoError(t, err)
	m.AddBattleground(bg)

	assert.Equal(t, bg, m.Battleground(bg.InstanceID(), models.TypeNone))
	assert.Equal(t, bg, m.Battleground(bg.InstanceID(), typeArathi))
	assert.Nil(t, m.Battleground(bg.InstanceID(), typeWarsong))
	assert.Nil(t, m.Battleground(0, models.TypeNone))
}

func TestUpdate_SweepReapsFinishedInstances(t *testing.T) {
	scope := testsetup.NewTestScope()
	defer scope.Finish()
	m, _ := newTestManager(t, nil)
	loadTestTemplates(t, m)

	bg, err := m.CreateBattleground(scope, typeWarsong, 0, models.ArenaTypeNone, false)
	require.NoError(t, err)
	m.AddBattleground(bg)
	m.AddToFreeSlotQueue(typeWarsong, bg)

	bg.(*defaultbattleground.BaseBattleground).SetTimeLimit(500 * time.Millisecond)

	m.Update(scope, 1001*time.Millisecond)

	assert.Nil(t, m.Battleground(bg.InstanceID(), typeWarsong))
	assert.Empty(t, m.FreeSlotQueue(typeWarsong))

	// The released display number is handed out again.
	next, err := m.CreateBattleground(scope, typeWarsong, 0, models.ArenaTypeNone, false)
	require.NoError(t, err)
	assert.Equal(t, bg.ClientInstanceID(), next.ClientInstanceID())
}

func TestUpdate_PrototypeIsNeverAdvanced(t *testing.T) {
	scope := testsetup.NewTestScope()
	defer scope.Finish()

	advances := 0
	m, factory := newTestManager(t, nil)
	factory.Register(typeWarsong, func(tmpl *models.Template) battleground.Battleground {
		return &countingBattleground{defaultbattleground.New(tmpl), &advances}
	})
	loadTestTemplates(t, m)

	for i := 0; i < 5; i++ {
		m.Update(scope, 1500*time.Millisecond)
	}
	assert.Zero(t, advances)
	require.NotNil(t, m.BattlegroundTemplate(typeWarsong))

	bg, err := m.CreateBattleground(scope, typeWarsong, 0, models.ArenaTypeNone, false)
	require.NoError(t, err)
	m.AddBattleground(bg)

	m.Update(scope, 1500*time.Millisecond)
	assert.Equal(t, 1, advances)
	require.NotNil(t, m.BattlegroundTemplate(typeWarsong))
	assert.Zero(t, m.BattlegroundTemplate(typeWarsong).InstanceID())
}

func TestUpdate_PanicsWhenPrototypeReportsFinished(t *testing.T) {
	scope := testsetup.NewTestScope()
	defer scope.Finish()
	m, _ := newTestManager(t, nil)
	loadTestTemplates(t, m)

	proto := m.BattlegroundTemplate(typeWarsong)
	require.NotNil(t, proto)
	proto.(*defaultbattleground.BaseBattleground).SetFinished(true)

	assert.Panics(t, func() {
		m.Update(scope, 1500*time.Millisecond)
	})
}

func TestUpdate_SweepRunsOnFixedCadence(t *testing.T) {
	scope := testsetup.NewTestScope()
	defer scope.Finish()

	advances := 0
	m, factory := newTestManager(t, nil)
	factory.Register(typeWarsong, func(tmpl *models.Template) battleground.Battleground {
		return &countingBattleground{defaultbattleground.New(tmpl), &advances}
	})
	loadTestTemplates(t, m)

	bg, err := m.CreateBattleground(scope, typeWarsong, 0, models.ArenaTypeNone, false)
	require.NoError(t, err)
	m.AddBattleground(bg)

	// Three 400ms ticks accumulate 1200ms and trigger exactly one sweep.
	for i := 0; i < 3; i++ {
		m.Update(scope, 400*time.Millisecond)
	}
	assert.Equal(t, 1, advances)

	// The accumulator restarted from zero, so another two ticks stay below
	// the interval.
	for i := 0; i < 2; i++ {
		m.Update(scope, 400*time.Millisecond)
	}
	assert.Equal(t, 1, advances)
}

func TestScheduleQueueUpdate_DeduplicatesWithinTick(t *testing.T) {
	scope := testsetup.NewTestScope()
	defer scope.Finish()
	m, _ := newTestManager(t, nil)
	loadTestTemplates(t, m)

	stub := &testsetup.StubQueueUpdater{}
	m.RegisterQueue(models.QueueTypeArena2v2, stub)

	m.ScheduleQueueUpdate(1500, models.ArenaType2v2, models.QueueTypeArena2v2, typeArena, 3)
	m.ScheduleQueueUpdate(1500, models.ArenaType2v2, models.QueueTypeArena2v2, typeArena, 3)
	m.ScheduleQueueUpdate(1500, models.ArenaType2v2, models.QueueTypeArena2v2, typeArena, 4)

	m.Update(scope, 50*time.Millisecond)

	require.Equal(t, 2, stub.Count())
	assert.True(t, stub.Updates[0].IsRated)
	assert.Equal(t, uint32(1500), stub.Updates[0].Rating)

	// Nothing pending: the next flush dispatches zero events.
	stub.Reset()
	m.Update(scope, 50*time.Millisecond)
	assert.Zero(t, stub.Count())
}

func TestScheduleQueueUpdate_UnknownQueueTypeIsDropped(t *testing.T) {
	scope := testsetup.NewTestScope()
	defer scope.Finish()
	m, _ := newTestManager(t, nil)
	loadTestTemplates(t, m)

	m.ScheduleQueueUpdate(0, models.ArenaTypeNone, models.QueueTypeID(77), typeWarsong, 0)

	assert.NotPanics(t, func() {
		m.Update(scope, 50*time.Millisecond)
	})
}

func TestUpdate_ForcedRatedRefreshFiresAndResets(t *testing.T) {
	scope := testsetup.NewTestScope()
	defer scope.Finish()
	m, _ := newTestManager(t, &config.Config{
		RatedUpdateTimerMs:  60000,
		MaxRatingDifference: 150,
		SelectorSeed:        7,
	})
	loadTestTemplates(t, m)

	stub := &testsetup.StubQueueUpdater{}
	m.RegisterQueue(models.QueueTypeArena2v2, stub)

	m.Update(scope, 20000*time.Millisecond)
	m.Update(scope, 20000*time.Millisecond)
	assert.Zero(t, stub.Count())

	// Third tick exhausts the countdown: one forced dispatch per bracket.
	m.Update(scope, 20000*time.Millisecond)
	require.Equal(t, int(models.BracketCount), stub.Count())
	for _, update := range stub.Updates {
		assert.True(t, update.IsRated)
		assert.Zero(t, update.Rating)
		assert.Equal(t, models.TypeArenaAll, update.TypeID)
		assert.Equal(t, models.ArenaType2v2, update.ArenaType)
	}

	// Countdown reset to the full interval, no overshoot carry.
	stub.Reset()
	m.Update(scope, 20000*time.Millisecond)
	m.Update(scope, 20000*time.Millisecond)
	assert.Zero(t, stub.Count())
	m.Update(scope, 20000*time.Millisecond)
	assert.Equal(t, int(models.BracketCount), stub.Count())
}

func TestUpdate_RatedRefreshDisabledByZeroConfig(t *testing.T) {
	scope := testsetup.NewTestScope()
	defer scope.Finish()

	for name, cfg := range map[string]*config.Config{
		"zero interval":  {MaxRatingDifference: 150, SelectorSeed: 7},
		"zero threshold": {RatedUpdateTimerMs: 1, SelectorSeed: 7},
	} {
		m, _ := newTestManager(t, cfg)
		loadTestTemplates(t, m)

		stub := &testsetup.StubQueueUpdater{}
		m.RegisterQueue(models.QueueTypeArena2v2, stub)

		for i := 0; i < 10; i++ {
			m.Update(scope, time.Hour)
		}
		assert.Zero(t, stub.Count(), name)
	}
}

func TestRemoveBattleground_IsAtomicAcrossRegistryState(t *testing.T) {
	scope := testsetup.NewTestScope()
	defer scope.Finish()
	m, _ := newTestManager(t, nil)
	loadTestTemplates(t, m)

	bg, err := m.CreateBattleground(scope, typeWarsong, 2, models.ArenaTypeNone, false)
	require.NoError(t, err)
	m.AddBattleground(bg)
	m.AddToFreeSlotQueue(typeWarsong, bg)

	m.RemoveBattleground(typeWarsong, bg.InstanceID())

	assert.Nil(t, m.Battleground(bg.InstanceID(), typeWarsong))
	assert.Empty(t, m.FreeSlotQueue(typeWarsong))

	next, err := m.CreateBattleground(scope, typeWarsong, 2, models.ArenaTypeNone, false)
	require.NoError(t, err)
	assert.Equal(t, bg.ClientInstanceID(), next.ClientInstanceID())
}

func TestRemoveBattleground_NeverRemovesPrototype(t *testing.T) {
	scope := testsetup.NewTestScope()
	defer scope.Finish()
	m, _ := newTestManager(t, nil)
	loadTestTemplates(t, m)

	m.RemoveBattleground(typeWarsong, 0)
	assert.NotNil(t, m.BattlegroundTemplate(typeWarsong))
}

func TestFreeSlotQueue_MostRecentlyAddedFirst(t *testing.T) {
	scope := testsetup.NewTestScope()
	defer scope.Finish()
	m, _ := newTestManager(t, nil)
	loadTestTemplates(t, m)

	first, err := m.CreateBattleground(scope, typeWarsong, 0, models.ArenaTypeNone, false)
	require.NoError(t, err)
	second, err := m.CreateBattleground(scope, typeWarsong, 0, models.ArenaTypeNone, false)
	require.NoError(t, err)
	m.AddBattleground(first)
	m.AddBattleground(second)
	m.AddToFreeSlotQueue(typeWarsong, first)
	m.AddToFreeSlotQueue(typeWarsong, second)

	queue := m.FreeSlotQueue(typeWarsong)
	require.Len(t, queue, 2)
	assert.Equal(t, second.InstanceID(), queue[0].InstanceID())

	// Removal from the free-slot list leaves the instance registered.
	m.RemoveFromFreeSlotQueue(typeWarsong, second.InstanceID())
	assert.Len(t, m.FreeSlotQueue(typeWarsong), 1)
	assert.NotNil(t, m.Battleground(second.InstanceID(), typeWarsong))
}

func TestSetHolidayWeekends(t *testing.T) {
	m, _ := newTestManager(t, nil)
	loadTestTemplates(t, m)

	m.SetHolidayWeekends(1 << typeWarsong)

	warsong := m.BattlegroundTemplate(typeWarsong).(*defaultbattleground.BaseBattleground)
	arathi := m.BattlegroundTemplate(typeArathi).(*defaultbattleground.BaseBattleground)
	assert.True(t, warsong.IsHoliday())
	assert.False(t, arathi.IsHoliday())
}

func TestToggleTestingFlags(t *testing.T) {
	scope := testsetup.NewTestScope()
	defer scope.Finish()
	m, _ := newTestManager(t, nil)

	assert.True(t, m.ToggleTesting(scope))
	assert.True(t, m.IsTesting())
	assert.False(t, m.ToggleTesting(scope))

	assert.True(t, m.ToggleArenaTesting(scope))
	assert.False(t, m.ToggleArenaTesting(scope))
	assert.False(t, m.IsArenaTesting())
}

func TestMaxRatingDifference_ZeroCoercedToDefault(t *testing.T) {
	m, _ := newTestManager(t, &config.Config{SelectorSeed: 7})
	assert.Equal(t, 5000, m.MaxRatingDifference())

	m, _ = newTestManager(t, &config.Config{MaxRatingDifference: 150, SelectorSeed: 7})
	assert.Equal(t, 150, m.MaxRatingDifference())
}

func TestShutdown_DrainsAllInstances(t *testing.T) {
	scope := testsetup.NewTestScope()
	defer scope.Finish()
	m, _ := newTestManager(t, nil)
	loadTestTemplates(t, m)

	bg, err := m.CreateBattleground(scope, typeWarsong, 0, models.ArenaTypeNone, false)
	require.NoError(t, err)
	m.AddBattleground(bg)

	m.Shutdown(scope)

	assert.Nil(t, m.Battleground(bg.InstanceID(), models.TypeNone))
	assert.Nil(t, m.BattlegroundTemplate(typeWarsong))
}

// countingBattleground counts Advance calls so tests can observe the sweep.
type countingBattleground struct {
	*defaultbattleground.BaseBattleground
	advances *int
}

func (c *countingBattleground) Advance(elapsed time.Duration) {
	*c.advances++
	c.BaseBattleground.Advance(elapsed)
}

func (c *countingBattleground) Clone() (battleground.Battleground, error) {
	base, err := c.BaseBattleground.Clone()
	if err != nil {
		return nil, err
	}
	return &countingBattleground{base.(*defaultbattleground.BaseBattleground), c.advances}, nil
}
