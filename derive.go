// derive.go: Password-to-secrets derivation using Argon2id.
//
// Copyright (c) 2025 Occultis
// SPDX-License-Identifier: MPL-2.0

package crypto

import (
	"encoding/binary"
	"fmt"

	goerrors "github.com/agilira/go-errors"
	"golang.org/x/crypto/argon2"
)

// Derivation parameters. These are protocol constants: changing any of them
// makes every existing frame and permutation underivable, so they are fixed
// rather than configurable.
const (
	// derivationSalt is the program-embedded salt, zero-padded or truncated
	// to saltSize. The password is the only secret input; the salt only
	// domain-separates this derivation from other Argon2id users.
	derivationSalt = "occultis.steg.v1"

	// saltSize is the Argon2id salt length in bytes.
	saltSize = 16

	// opsLimit is the Argon2id pass count.
	opsLimit = 3

	// memLimitKiB is the Argon2id working-set size in KiB (4 000 000 bytes).
	memLimitKiB = 4000

	// derivationLanes is the Argon2id parallelism. One lane keeps the output
	// independent of the host's core count.
	derivationLanes = 1

	// seedSize is the generator seed length in bytes: four 64-bit words.
	seedSize = 32

	seedWords = 4
)

// Seed is the generator seed: exactly four 64-bit words, derived once from
// the password hash and consumed once at generator initialization. It is
// never regenerated internally; a fresh stream requires a fresh NewContext.
type Seed [seedWords]uint64

// derivationSaltBytes returns the fixed salt padded to saltSize. Copy both
// truncates an oversized constant and leaves the zero padding in place.
func derivationSaltBytes() []byte {
	salt := make([]byte, saltSize)
	copy(salt, derivationSalt)
	return salt
}

// deriveSecrets runs one memory-hard hash over the password and splits the
// output: the first KeySize bytes become the cipher key, the next seedSize
// bytes, read as little-endian words regardless of host byte order, become
// the generator seed. The raw hash output is wiped before returning on every
// path. An empty password is a valid (if inadvisable) input.
func deriveSecrets(password []byte) (key *SecureBuffer, seed Seed, err error) {
	// argon2 allocates its whole working set up front; a panic out of that
	// allocation is the one failure mode the fixed parameters can hit.
	defer func() {
		if r := recover(); r != nil {
			if key != nil {
				key.Destroy()
			}
			richErr := goerrors.New(ErrCodeResourceExhausted, fmt.Sprintf("argon2id could not allocate its working set: %v", r))
			key, seed, err = nil, Seed{}, fmt.Errorf("%w: %w", ErrResourceExhausted, richErr)
		}
	}()

	raw := argon2.IDKey(password, derivationSaltBytes(), opsLimit, memLimitKiB, derivationLanes, KeySize+seedSize)
	defer Zeroize(raw)

	key, err = NewSecureBuffer(KeySize)
	if err != nil {
		return nil, Seed{}, err
	}
	copy(key.Bytes(), raw[:KeySize])

	for i := range seed {
		seed[i] = binary.LittleEndian.Uint64(raw[KeySize+8*i:])
	}
	return key, seed, nil
}
