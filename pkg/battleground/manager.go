// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package battleground

import (
	"fmt"
	"sync"
	"time"

	"github.com/AccelByte/extend-core-battleground/pkg/config"
	"github.com/AccelByte/extend-core-battleground/pkg/constants"
	"github.com/AccelByte/extend-core-battleground/pkg/envelope"
	"github.com/AccelByte/extend-core-battleground/pkg/mathutil"
	"github.com/AccelByte/extend-core-battleground/pkg/metrics"
	"github.com/AccelByte/extend-core-battleground/pkg/models"
)

// battlegroundData is the per-type slice of the registry: live instances
// keyed by instance id (id 0 is the template prototype), the free-slot list
// of instances still accepting joiners, and the per-bracket sets of
// client-visible instance numbers in use.
type battlegroundData struct {
	battlegrounds map[uint32]Battleground
	freeSlots     []Battleground
	clientIDs     map[models.BracketID]map[uint32]struct{}
}

func newBattlegroundData() *battlegroundData {
	return &battlegroundData{
		battlegrounds: make(map[uint32]Battleground),
		clientIDs:     make(map[models.BracketID]map[uint32]struct{}),
	}
}

// Manager owns every battleground instance and drives their lifecycle from
// the world tick. One Manager is constructed at startup and torn down with
// Shutdown; all operations are methods on this handle.
//
// All registry mutation happens on the single tick goroutine and needs no
// locking. The two exceptions are documented where they occur: the deferred
// scheduler accepts producers from other goroutines, and the template
// repository pointer is swapped by the reload watcher.
type Manager struct {
	cfg     *config.Config
	metrics metrics.BattlegroundMetrics
	factory Factory
	idGen   InstanceIDGenerator
	deps    LoadDeps

	selector  *variantSelector
	scheduler *queueUpdateScheduler

	templatesMu sync.RWMutex
	templates   *TemplateRepository

	bgData map[models.TypeID]*battlegroundData
	queues map[models.QueueTypeID]QueueUpdater

	reloadMu      sync.Mutex
	pendingRows   []models.TemplateRow
	pendingReload bool

	updateAccumulator time.Duration
	nextRatedUpdate   time.Duration

	testing      bool
	arenaTesting bool
}

// NewManager returns a Manager ready to load templates and accept queue
// registrations.
func NewManager(cfg *config.Config, metricsClient metrics.BattlegroundMetrics, factory Factory, idGen InstanceIDGenerator, deps LoadDeps) *Manager {
	return &Manager{
		cfg:             cfg,
		metrics:         metricsClient,
		factory:         factory,
		idGen:           idGen,
		deps:            deps,
		selector:        newVariantSelector(cfg.SelectorSeed),
		scheduler:       newQueueUpdateScheduler(),
		templates:       newTemplateRepository(),
		bgData:          make(map[models.TypeID]*battlegroundData),
		queues:          make(map[models.QueueTypeID]QueueUpdater),
		nextRatedUpdate: time.Duration(cfg.RatedUpdateTimerMs) * time.Millisecond,
	}
}

// Templates returns the current template repository.
func (m *Manager) Templates() *TemplateRepository {
	m.templatesMu.RLock()
	defer m.templatesMu.RUnlock()
	return m.templates
}

// LoadTemplates runs the load step over the given rows and swaps the
// repository wholesale. Template prototypes are registered for every type the
// load produced that has none yet.
func (m *Manager) LoadTemplates(rootScope *envelope.Scope, rows []models.TemplateRow) {
	scope := rootScope.NewChildScope("Manager.LoadTemplates")
	defer scope.Finish()

	deps := m.deps
	deps.Previous = m.Templates()
	repo := LoadTemplates(scope, rows, deps, m.metrics)

	for _, typeID := range repo.TypeIDs() {
		if m.BattlegroundTemplate(typeID) != nil {
			continue
		}
		proto, err := m.factory.New(repo.Template(typeID))
		if err != nil {
			scope.Log.WithField("bgType", typeID).Errorf("could not create battleground template prototype: %v", err)
			m.metrics.AddTemplateDropped(fmt.Sprint(typeID), constants.DropReasonUnknownVariant)
			delete(repo.byType, typeID)
			continue
		}
		proto.SetInstanceID(0)
		proto.SetRequestedTypeID(typeID)
		m.AddBattleground(proto)
	}

	m.templatesMu.Lock()
	m.templates = repo
	m.templatesMu.Unlock()
}

// stageReload hands freshly parsed template rows to the tick goroutine. The
// next Update applies them; a second stage before that overwrites the first.
func (m *Manager) stageReload(rows []models.TemplateRow) {
	m.reloadMu.Lock()
	m.pendingRows = rows
	m.pendingReload = true
	m.reloadMu.Unlock()
}

func (m *Manager) applyStagedReload(scope *envelope.Scope) {
	m.reloadMu.Lock()
	rows, pending := m.pendingRows, m.pendingReload
	m.pendingRows, m.pendingReload = nil, false
	m.reloadMu.Unlock()

	if !pending {
		return
	}
	m.LoadTemplates(scope, rows)
}

// RegisterQueue binds the re-evaluation entry point of one matchmaking queue.
// Scheduled keys naming an unregistered queue type are dropped at flush.
func (m *Manager) RegisterQueue(queueType models.QueueTypeID, updater QueueUpdater) {
	m.queues[queueType] = updater
}

// ScheduleQueueUpdate records a deferred re-evaluation request for a queue,
// bracket and rating bucket. Requests arriving faster than the tick rate
// collapse into a single dispatch on the next Update.
func (m *Manager) ScheduleQueueUpdate(rating uint32, arenaType models.ArenaType, queueType models.QueueTypeID, typeID models.TypeID, bracket models.BracketID) {
	m.scheduler.schedule(models.QueueUpdateKey{
		Rating:    rating,
		ArenaType: arenaType,
		QueueType: queueType,
		TypeID:    typeID,
		Bracket:   bracket,
	})
}

// Update advances the whole core by one world tick: sweep live instances on
// the fixed cadence, flush this tick's deferred queue updates, and run the
// forced rated-refresh countdown.
func (m *Manager) Update(rootScope *envelope.Scope, elapsed time.Duration) {
	scope := rootScope.NewChildScope("Manager.Update")
	defer scope.Finish()

	startTime := time.Now()
	defer func() {
		m.metrics.AddLifecycleElapsedTimeMs(constants.UpdateFunction, time.Since(startTime))
	}()

	m.applyStagedReload(scope)

	m.updateAccumulator += elapsed
	if m.updateAccumulator > constants.ObjectiveUpdateInterval {
		m.sweep(scope)
		// Fixed cadence: the accumulator restarts from zero no matter how far
		// past the interval this tick landed.
		m.updateAccumulator = 0
	}

	m.flushQueueUpdates(scope, elapsed)
	m.updateRatedTimer(scope, elapsed)
}

// sweep advances every non-prototype instance by the accumulated time and
// reaps the ones that report finished.
func (m *Manager) sweep(scope *envelope.Scope) {
	startTime := time.Now()

	for typeID, data := range m.bgData {
		for instanceID, bg := range data.battlegrounds {
			if instanceID == 0 {
				if bg.IsFinished() {
					// The prototype is never advanced, so a finished
					// prototype means the gameplay layer broke the contract.
					scope.Log.WithField("bgType", typeID).Panic("battleground template prototype reported finished")
				}
				continue
			}

			bg.Advance(m.updateAccumulator)
			if bg.IsFinished() {
				m.removeFromData(bg)
				scope.Log.WithField("bgType", typeID).Debugf("battleground instance %d finished and removed", instanceID)
			}
		}
	}

	m.metrics.AddLifecycleElapsedTimeMs(constants.SweepFunction, time.Since(startTime))
}

// flushQueueUpdates dispatches this tick's deduplicated batch, each distinct
// key exactly once. Dispatch order within the batch is unspecified.
func (m *Manager) flushQueueUpdates(scope *envelope.Scope, elapsed time.Duration) {
	startTime := time.Now()
	batch := m.scheduler.swap()
	defer func() {
		m.scheduler.release(batch)
		if len(batch) > 0 {
			m.metrics.AddLifecycleElapsedTimeMs(constants.QueueFlushFunction, time.Since(startTime))
		}
	}()

	for _, key := range batch {
		updater, ok := m.queues[key.QueueType]
		if !ok {
			scope.Log.WithField("queueType", key.QueueType).Warnf("%v %d, dropping scheduled update %#x", models.ErrUnknownQueueType, key.QueueType, key.Pack())
			m.metrics.AddQueueUpdateDispatch(fmt.Sprint(key.QueueType), constants.DispatchSourceUnknown)
			continue
		}

		updater.OnQueueUpdateDue(scope, elapsed, key.TypeID, key.Bracket, key.ArenaType, key.IsRated(), key.Rating)
		m.metrics.AddQueueUpdateDispatch(fmt.Sprint(key.QueueType), constants.DispatchSourceScheduled)
	}
}

// updateRatedTimer counts down the forced rated refresh and, on expiry,
// unconditionally re-evaluates every rating-sensitive queue across every
// bracket. Disabled when either the rating threshold or the interval is 0.
func (m *Manager) updateRatedTimer(scope *envelope.Scope, elapsed time.Duration) {
	interval := time.Duration(m.cfg.RatedUpdateTimerMs) * time.Millisecond
	if m.cfg.MaxRatingDifference == 0 || interval == 0 {
		return
	}

	m.nextRatedUpdate = mathutil.Max(m.nextRatedUpdate-elapsed, 0)
	if m.nextRatedUpdate > 0 {
		return
	}

	scope.Log.Trace("forcing rated queue updates")
	for _, queueType := range models.RatedQueueTypes() {
		updater, ok := m.queues[queueType]
		if !ok {
			continue
		}
		arenaType := models.ArenaTypeForQueue(queueType)
		for bracket := models.BracketID(0); bracket < models.BracketCount; bracket++ {
			updater.OnQueueUpdateDue(scope, elapsed, models.TypeArenaAll, bracket, arenaType, true, 0)
			m.metrics.AddQueueUpdateDispatch(fmt.Sprint(queueType), constants.DispatchSourceRatedForced)
		}
	}

	// Reset to the full interval, no overshoot carry.
	m.nextRatedUpdate = interval
}

// CreateBattleground creates an instance that will really be used to play:
// the weighted variant selection picks the effective type, the prototype of
// that type is cloned, and the clone gets a fresh instance id plus a
// client-visible number scoped to the requested type and bracket.
//
// Registering the instance is the caller's responsibility (AddBattleground),
// mirroring the join flow that first announces the match to its players.
func (m *Manager) CreateBattleground(rootScope *envelope.Scope, requestedTypeID models.TypeID, bracket models.BracketID, arenaType models.ArenaType, rated bool) (Battleground, error) {
	scope := rootScope.NewChildScope("Manager.CreateBattleground")
	defer scope.Finish()
	scope.SetAttributes(envelope.BattlegroundTypeTag, int(requestedTypeID))
	scope.SetAttributes(envelope.BracketTag, int(bracket))

	startTime := time.Now()
	defer func() {
		m.metrics.AddLifecycleElapsedTimeMs(constants.CreateFunction, time.Since(startTime))
	}()

	typeID, err := m.selector.randomTypeID(scope, m.Templates(), requestedTypeID)
	if err != nil {
		return nil, err
	}

	proto := m.BattlegroundTemplate(typeID)
	if proto == nil {
		scope.Log.WithField("bgType", typeID).Errorf("battleground template not found for type %d", typeID)
		return nil, models.ErrTemplateNotFound
	}

	bg, err := proto.Clone()
	if err != nil {
		return nil, err
	}

	clientID, err := m.createClientVisibleInstanceID(typeID, requestedTypeID, bracket)
	if err != nil {
		return nil, err
	}

	isRandom := typeID != requestedTypeID && !bg.IsArena()

	bg.SetBracket(bracket)
	bg.SetInstanceID(m.idGen.NextInstanceID())
	bg.SetClientInstanceID(clientID)
	bg.Reset()
	bg.SetStatus(models.StatusWaitJoin)
	bg.SetArenaType(arenaType)
	bg.SetRequestedTypeID(requestedTypeID)
	bg.SetRated(rated)
	bg.SetRandom(isRandom)

	return bg, nil
}

// AddBattleground registers an instance under its effective type.
func (m *Manager) AddBattleground(bg Battleground) {
	if bg == nil {
		return
	}
	data := m.data(bg.TypeID())
	data.battlegrounds[bg.InstanceID()] = bg
	if bg.InstanceID() != 0 {
		m.updateLiveGauge(bg.TypeID(), bg.Bracket())
	}
}

// Battleground finds a live instance by instance id. TypeNone searches every
// type. Lookup misses return nil; they are expected, not errors.
func (m *Manager) Battleground(instanceID uint32, typeID models.TypeID) Battleground {
	if instanceID == 0 {
		return nil
	}

	if typeID != models.TypeNone {
		if data, ok := m.bgData[typeID]; ok {
			return data.battlegrounds[instanceID]
		}
		return nil
	}

	for _, data := range m.bgData {
		if bg, ok := data.battlegrounds[instanceID]; ok {
			return bg
		}
	}
	return nil
}

// BattlegroundTemplate returns the template prototype of a type, or nil.
func (m *Manager) BattlegroundTemplate(typeID models.TypeID) Battleground {
	data, ok := m.bgData[typeID]
	if !ok {
		return nil
	}
	return data.battlegrounds[0]
}

// RemoveBattleground erases an instance and its derived registry state as one
// operation: the instance map entry, the client-visible number and the
// free-slot entry all go together so no reserved number can leak.
func (m *Manager) RemoveBattleground(typeID models.TypeID, instanceID uint32) {
	data, ok := m.bgData[typeID]
	if !ok {
		return
	}
	bg, ok := data.battlegrounds[instanceID]
	if !ok || instanceID == 0 {
		return
	}
	m.removeFromData(bg)
}

func (m *Manager) removeFromData(bg Battleground) {
	data := m.data(bg.TypeID())
	delete(data.battlegrounds, bg.InstanceID())
	m.releaseClientVisibleInstanceID(bg)
	m.removeFreeSlot(data, bg.InstanceID())
	m.updateLiveGauge(bg.TypeID(), bg.Bracket())
}

// Shutdown drains and frees every live instance, prototypes included.
func (m *Manager) Shutdown(rootScope *envelope.Scope) {
	scope := rootScope.NewChildScope("Manager.Shutdown")
	defer scope.Finish()

	drained := 0
	for typeID, data := range m.bgData {
		drained += len(data.battlegrounds)
		delete(m.bgData, typeID)
	}

	scope.Log.Infof("battleground manager shut down, drained %d instances", drained)
}

// ToggleTesting flips the battleground debug mode that waives minimum player
// counts.
func (m *Manager) ToggleTesting(scope *envelope.Scope) bool {
	m.testing = !m.testing
	scope.Log.Infof("battleground testing set to %t", m.testing)
	return m.testing
}

// ToggleArenaTesting flips the arena debug mode.
func (m *Manager) ToggleArenaTesting(scope *envelope.Scope) bool {
	m.arenaTesting = !m.arenaTesting
	scope.Log.Infof("arena testing set to %t", m.arenaTesting)
	return m.arenaTesting
}

func (m *Manager) IsTesting() bool {
	return m.testing
}

func (m *Manager) IsArenaTesting() bool {
	return m.arenaTesting
}

// SetHolidayWeekends marks the prototypes whose type bit is set in mask as
// running their call-to-arms weekend.
func (m *Manager) SetHolidayWeekends(mask uint32) {
	for typeID := models.TypeID(1); typeID < 32; typeID++ {
		if proto := m.BattlegroundTemplate(typeID); proto != nil {
			proto.SetHoliday(mask&(1<<typeID) != 0)
		}
	}
}

// MaxRatingDifference reads the configured rating threshold, substituting the
// default for a zero value.
func (m *Manager) MaxRatingDifference() int {
	if m.cfg.MaxRatingDifference == 0 {
		return constants.DefaultMaxRatingDifference
	}
	return m.cfg.MaxRatingDifference
}

func (m *Manager) RatingDiscardTimer() time.Duration {
	return time.Duration(m.cfg.RatingDiscardTimerMs) * time.Millisecond
}

func (m *Manager) PrematureFinishTime() time.Duration {
	return time.Duration(m.cfg.PrematureFinishTimerMs) * time.Millisecond
}

func (m *Manager) data(typeID models.TypeID) *battlegroundData {
	data, ok := m.bgData[typeID]
	if !ok {
		data = newBattlegroundData()
		m.bgData[typeID] = data
	}
	return data
}

func (m *Manager) updateLiveGauge(typeID models.TypeID, bracket models.BracketID) {
	data, ok := m.bgData[typeID]
	if !ok {
		return
	}
	count := 0
	for instanceID, bg := range data.battlegrounds {
		if instanceID != 0 && bg.Bracket() == bracket {
			count++
		}
	}
	m.metrics.LiveBattlegrounds(fmt.Sprint(typeID), fmt.Sprint(bracket), count)
}
