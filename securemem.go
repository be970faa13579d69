// securemem.go: Locked, wipe-on-release buffers for secret material.
//
// Copyright (c) 2025 Occultis
// SPDX-License-Identifier: MPL-2.0

package crypto

import (
	"runtime"

	goerrors "github.com/agilira/go-errors"
)

// SecureBuffer is a fixed-size buffer for secret material. At allocation it
// is locked against swap-out where the platform supports it (best effort;
// sandboxes routinely cap lockable memory), and Destroy guarantees every byte
// is overwritten before the memory is returned to the allocator.
//
// A SecureBuffer is exclusively owned by its creator and is not safe for
// concurrent use.
type SecureBuffer struct {
	data   []byte
	locked bool
}

// NewSecureBuffer allocates a locked buffer of the given size.
func NewSecureBuffer(size int) (*SecureBuffer, error) {
	if size <= 0 {
		return nil, goerrors.New("INVALID_BUFFER_SIZE", "secure buffer size must be positive")
	}
	b := &SecureBuffer{data: make([]byte, size)}
	if err := lockMemory(b.data); err == nil {
		b.locked = true
	}
	return b, nil
}

// Bytes returns the underlying storage. The slice aliases the buffer's
// memory: it is wiped by Wipe and invalid after Destroy.
func (b *SecureBuffer) Bytes() []byte {
	return b.data
}

// Len returns the buffer's size in bytes.
func (b *SecureBuffer) Len() int {
	return len(b.data)
}

// Wipe overwrites the buffer with zeros. The buffer remains usable.
func (b *SecureBuffer) Wipe() {
	Zeroize(b.data)
}

// Destroy wipes the buffer, unlocks it, and releases the storage. The
// overwrite happens before the memory can reach any reuse pool, because it
// may hold the sole remaining copy of a secret. Safe to call multiple times.
func (b *SecureBuffer) Destroy() {
	if b == nil || b.data == nil {
		return
	}
	Zeroize(b.data)
	if b.locked {
		_ = unlockMemory(b.data)
		b.locked = false
	}
	b.data = nil
}

// Zeroize securely wipes a byte slice from memory.
//
// All bytes are overwritten with zeros so sensitive data does not linger
// after use. The slice is modified in place; runtime.KeepAlive prevents the
// store from being optimized away when the slice is otherwise dead.
func Zeroize(b []byte) {
	clearBuffer(b)
	runtime.KeepAlive(b)
}

// clearBuffer zeroes a slice with an unrolled loop sized to the cache line.
func clearBuffer(buf []byte) {
	if len(buf) <= 64 {
		for i := range buf {
			buf[i] = 0
		}
		return
	}

	i := 0
	for i < len(buf)-7 {
		buf[i] = 0
		buf[i+1] = 0
		buf[i+2] = 0
		buf[i+3] = 0
		buf[i+4] = 0
		buf[i+5] = 0
		buf[i+6] = 0
		buf[i+7] = 0
		i += 8
	}
	for i < len(buf) {
		buf[i] = 0
		i++
	}
}
