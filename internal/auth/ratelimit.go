// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 BoardKeep Contributors

package auth

import "time"

// Lockout configuration.
const (
	// LockoutThreshold is the number of consecutive failures that triggers
	// a temporary lockout.
	LockoutThreshold = 7

	// LockoutDuration is how long an account stays locked after the
	// threshold is reached.
	LockoutDuration = 15 * time.Minute
)

// ComputeLockoutTime returns the lockout expiry for the given failure count,
// or nil if the account should not be locked.
func ComputeLockoutTime(failures int) *time.Time {
	if failures < LockoutThreshold {
		return nil
	}
	t := time.Now().Add(LockoutDuration)
	return &t
}

// IsLockedOut returns true if lockedUntil is set and still in the future.
func IsLockedOut(lockedUntil *time.Time) bool {
	return lockedUntil != nil && time.Now().Before(*lockedUntil)
}
