// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 BoardKeep Contributors

// Package board provides the ownership-scoped project and todo model.
// Every operation takes the acting user's identity and filters or stamps
// persisted entities with it; no entity is ever visible across users.
package board
