// context.go: Context lifecycle — creation from a password, destruction with
// guaranteed wipe of secret-bearing state.
//
// Copyright (c) 2025 Occultis
// SPDX-License-Identifier: MPL-2.0

package crypto

import (
	"crypto/cipher"
	"fmt"

	goerrors "github.com/agilira/go-errors"
	"golang.org/x/crypto/chacha20"
	"golang.org/x/crypto/chacha20poly1305"
)

// KeySize is the cipher key size in bytes (XChaCha20-Poly1305).
const KeySize = chacha20poly1305.KeySize

// Context holds the secrets derived from one password: the cipher key, the
// deterministic generator's keystream state, and the generator's output
// buffer with its cursor.
//
// A Context is exclusively owned by its creator. It performs no internal
// locking; the caller must serialize access so that at most one operation
// (Fill, Shuffle, Encrypt, Decrypt, ...) is in flight at any time. Call
// Destroy exactly when done — it wipes all secret-bearing memory. No
// operation may be used after Destroy.
type Context struct {
	key    *SecureBuffer
	aead   cipher.AEAD
	stream *chacha20.Cipher

	// Pre-generated stream bytes. Bytes below pos are consumed; refill
	// always regenerates the whole buffer and resets pos to zero.
	buf []byte
	pos int

	destroyed bool
}

// NewContext derives a Context from a password. It runs the memory-hard
// derivation, initializes the generator from the seed, and performs one full
// buffer fill before returning, so the first Fill never pays refill jitter.
//
// Creation is all-or-nothing: on any failure no Context is produced and every
// intermediate secret has already been wiped. The returned error is
// ErrResourceExhausted when the hashing primitive cannot allocate its working
// memory.
//
// The caller retains ownership of password and should wipe it after use.
func NewContext(password []byte) (*Context, error) {
	key, seed, err := deriveSecrets(password)
	if err != nil {
		return nil, err
	}

	stream, err := newKeystream(seed)
	seed = Seed{}
	if err != nil {
		key.Destroy()
		richErr := goerrors.Wrap(err, ErrCodeCipherInit, "failed to initialize generator keystream")
		return nil, fmt.Errorf("%w: %w", ErrResourceExhausted, richErr)
	}

	aead, err := chacha20poly1305.NewX(key.Bytes())
	if err != nil {
		key.Destroy()
		richErr := goerrors.Wrap(err, ErrCodeCipherInit, "failed to initialize AEAD")
		return nil, fmt.Errorf("%w: %w", ErrResourceExhausted, richErr)
	}

	c := &Context{
		key:    key,
		aead:   aead,
		stream: stream,
		buf:    make([]byte, generatorBufferSize),
	}
	c.refill()
	return c, nil
}

// Destroy releases the Context, overwriting the key and the generator's
// buffered output before the memory returns to the allocator. That memory may
// be the sole remaining copy of the secrets, so the wipe is a correctness
// requirement, not a nicety. Destroy is idempotent; no other operation is
// valid afterwards.
//
// The keystream's internal cipher state is owned by x/crypto and cannot be
// reached for wiping; dropping the reference makes it collectable, and it
// never contains the key or seed verbatim past initialization.
func (c *Context) Destroy() {
	if c == nil || c.destroyed {
		return
	}
	c.key.Destroy()
	Zeroize(c.buf)
	c.buf = nil
	c.pos = 0
	c.stream = nil
	c.aead = nil
	c.destroyed = true
}
