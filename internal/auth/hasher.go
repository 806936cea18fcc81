// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 BoardKeep Contributors

package auth

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/samber/oops"
	"golang.org/x/crypto/argon2"
)

// argon2id parameters (OWASP-recommended defaults).
const (
	argon2Time    = 1
	argon2Memory  = 64 * 1024 // KiB
	argon2Threads = 4
	argon2SaltLen = 16
	argon2KeyLen  = 32
)

// ErrEmptyPassword is returned when attempting to hash an empty password.
var ErrEmptyPassword = oops.Code("AUTH_EMPTY_PASSWORD").Wrapf(ErrValidation, "password cannot be empty")

// PasswordHasher provides one-way password hashing and verification.
type PasswordHasher interface {
	// Hash produces a salted hash of the password.
	Hash(password string) (string, error)

	// Verify checks the password against the hash.
	// Returns (true, nil) on match, (false, nil) on mismatch, or an error
	// if the hash itself is unparseable.
	Verify(password, hash string) (bool, error)

	// NeedsUpgrade reports whether the hash uses an outdated scheme and
	// should be re-hashed on next successful login.
	NeedsUpgrade(hash string) bool
}

// Argon2idHasher implements PasswordHasher using argon2id in PHC string
// format ($argon2id$v=19$m=...,t=...,p=...$salt$hash).
type Argon2idHasher struct{}

// NewArgon2idHasher creates a new Argon2idHasher.
func NewArgon2idHasher() *Argon2idHasher {
	return &Argon2idHasher{}
}

// Hash produces an argon2id hash of the password.
func (h *Argon2idHasher) Hash(password string) (string, error) {
	if password == "" {
		return "", ErrEmptyPassword
	}

	salt := make([]byte, argon2SaltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", oops.Code("AUTH_SALT_FAILED").Wrap(err)
	}

	key := argon2.IDKey([]byte(password), salt, argon2Time, argon2Memory, argon2Threads, argon2KeyLen)

	encoded := fmt.Sprintf(
		"$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version,
		argon2Memory,
		argon2Time,
		argon2Threads,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key),
	)
	return encoded, nil
}

// Verify checks the password against an encoded argon2id hash using a
// constant-time comparison.
func (h *Argon2idHasher) Verify(password, encodedHash string) (bool, error) {
	memory, time, threads, salt, expected, err := parseArgon2id(encodedHash)
	if err != nil {
		return false, err
	}

	keyLen := len(expected)
	if keyLen <= 0 || keyLen > 1<<30 {
		return false, oops.Code("AUTH_INVALID_HASH").Errorf("invalid hash key length: %d", keyLen)
	}

	computed := argon2.IDKey([]byte(password), salt, time, memory, threads, uint32(keyLen))

	return subtle.ConstantTimeCompare(computed, expected) == 1, nil
}

// NeedsUpgrade returns true if the hash is not argon2id.
func (h *Argon2idHasher) NeedsUpgrade(hash string) bool {
	return !strings.HasPrefix(hash, "$argon2id$")
}

// parseArgon2id decodes a PHC-formatted argon2id hash into its parameters.
func parseArgon2id(encodedHash string) (memory, time uint32, threads uint8, salt, key []byte, err error) {
	parts := strings.Split(encodedHash, "$")
	if len(parts) != 6 {
		return 0, 0, 0, nil, nil, oops.Code("AUTH_INVALID_HASH").Errorf("invalid hash format")
	}
	if parts[1] != "argon2id" {
		return 0, 0, 0, nil, nil, oops.Code("AUTH_INVALID_HASH").Errorf("unsupported hash algorithm: %s", parts[1])
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil {
		return 0, 0, 0, nil, nil, oops.Code("AUTH_INVALID_HASH").Wrap(err)
	}

	var rawThreads uint32
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &memory, &time, &rawThreads); err != nil {
		return 0, 0, 0, nil, nil, oops.Code("AUTH_INVALID_HASH").Wrap(err)
	}
	if rawThreads == 0 || rawThreads > 255 {
		return 0, 0, 0, nil, nil, oops.Code("AUTH_INVALID_HASH").Errorf("threads value %d out of range", rawThreads)
	}

	salt, err = base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return 0, 0, 0, nil, nil, oops.Code("AUTH_INVALID_HASH").Wrap(err)
	}
	key, err = base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil {
		return 0, 0, 0, nil, nil, oops.Code("AUTH_INVALID_HASH").Wrap(err)
	}

	return memory, time, uint8(rawThreads), salt, key, nil
}
