// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package models

import (
	"gopkg.in/typ.v4/sync2"
)

// Pool reusable objects to reduce garbage collector
type Pool struct {
	QueueUpdateBatches *sync2.Pool[[]QueueUpdateKey]
}

func NewPool() *Pool {
	return &Pool{
		QueueUpdateBatches: &sync2.Pool[[]QueueUpdateKey]{
			New: func() []QueueUpdateKey {
				return make([]QueueUpdateKey, 0, 16)
			},
		},
	}
}
