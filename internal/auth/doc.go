// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 BoardKeep Contributors

// Package auth provides account registration, login, password hashing,
// and bearer-token issuance for BoardKeep.
package auth
