// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package battleground

import (
	"sync"

	"github.com/AccelByte/extend-core-battleground/pkg/models"
	"github.com/AccelByte/extend-core-battleground/pkg/utils"
)

// queueUpdateScheduler collects deferred queue re-evaluation requests between
// ticks and deduplicates them by structural key identity. The pending list is
// bounded by the number of distinct queue/bracket/rating combinations, not by
// request volume, so membership is a linear scan.
//
// Append and swap are guarded by a mutex so producers outside the tick
// goroutine are safe.
type queueUpdateScheduler struct {
	mu      sync.Mutex
	pending []models.QueueUpdateKey
	pool    *models.Pool
}

func newQueueUpdateScheduler() *queueUpdateScheduler {
	pool := models.NewPool()
	return &queueUpdateScheduler{
		pending: pool.QueueUpdateBatches.Get()[:0],
		pool:    pool,
	}
}

// schedule appends the key unless an identical key is already pending.
func (s *queueUpdateScheduler) schedule(key models.QueueUpdateKey) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if utils.Contains(s.pending, key) {
		return
	}
	s.pending = append(s.pending, key)
}

// swap atomically takes the pending batch, leaving an empty list behind.
// The caller must hand the batch back through release once dispatched.
func (s *queueUpdateScheduler) swap() []models.QueueUpdateKey {
	s.mu.Lock()
	defer s.mu.Unlock()

	batch := s.pending
	s.pending = s.pool.QueueUpdateBatches.Get()[:0]
	return batch
}

func (s *queueUpdateScheduler) release(batch []models.QueueUpdateKey) {
	s.pool.QueueUpdateBatches.Put(batch[:0])
}
