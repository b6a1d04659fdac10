// SPDX-License-Identifier: MIT
package session

import "errors"

// Sentinel errors for the session façade.
var (
	ErrUnknownHandle = errors.New("session: unknown handle")
	ErrNotGrouped    = errors.New("session: handle has no group index; call GroupDataset or LoadGroups first")
)
