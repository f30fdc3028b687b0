// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package models

import (
	"errors"
)

var (
	ErrTemplateNotFound      = errors.New("battleground template not found for type")
	ErrVariantUnresolvable   = errors.New("no weighted variant resolvable for type")
	ErrUnknownQueueType      = errors.New("no queue updater registered for queue type")
	ErrClientIDExhausted     = errors.New("client-visible instance id space exhausted")
	ErrStartLocationNotFound = errors.New("template references a non-existing start location")
	ErrNoBattlemasterEntry   = errors.New("template has no battlemaster entry")
)

var validationErrorCodeMap = map[error]int{
	ErrTemplateNotFound:      520101,
	ErrVariantUnresolvable:   520102,
	ErrUnknownQueueType:      520103,
	ErrClientIDExhausted:     520104,
	ErrStartLocationNotFound: 520105,
	ErrNoBattlemasterEntry:   520106,
}

// ValidationErrorCode returns a code for the error.
// It returns the generic validation error code 20002 if the error is not
// registered in the map.
func ValidationErrorCode(err error) int {
	code, ok := validationErrorCodeMap[err]
	if !ok {
		return 20002
	}
	return code
}
