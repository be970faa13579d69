// generator.go: Buffered deterministic byte-stream generator.
//
// Copyright (c) 2025 Occultis
// SPDX-License-Identifier: MPL-2.0

package crypto

import (
	"encoding/binary"

	"golang.org/x/crypto/chacha20"
)

// generatorBufferSize is the fixed capacity of the pre-generated output
// buffer. Refills regenerate the whole buffer in one keystream call.
const generatorBufferSize = 16 * 1024

// newKeystream builds the generator's block source from the seed. The four
// seed words are laid out little-endian as the ChaCha20 key with an all-zero
// nonce, so the stream is a pure function of the seed on every platform.
//
// The stream is effectively infinite for this use: the cipher yields 256 GiB
// before exhausting its counter, orders of magnitude beyond any carrier.
func newKeystream(seed Seed) (*chacha20.Cipher, error) {
	var key [chacha20.KeySize]byte
	for i, w := range seed {
		binary.LittleEndian.PutUint64(key[8*i:], w)
	}
	defer Zeroize(key[:])

	var nonce [chacha20.NonceSize]byte
	return chacha20.NewUnauthenticatedCipher(key[:], nonce[:])
}

// refill regenerates the full buffer from the already-initialized keystream
// (never re-seeded) and resets the cursor.
func (c *Context) refill() {
	clearBuffer(c.buf)
	c.stream.XORKeyStream(c.buf, c.buf)
	c.pos = 0
}

// Fill writes exactly len(out) sequential stream bytes into out, advancing
// the internal cursor. Requests larger than the remaining buffered bytes
// trigger as many transparent refills as needed: chunking never changes the
// byte sequence, so many small reads and one large read yield the same
// stream. Not safe for concurrent use on the same Context.
func (c *Context) Fill(out []byte) {
	for len(out) > 0 {
		if c.pos == len(c.buf) {
			c.refill()
		}
		n := copy(out, c.buf[c.pos:])
		c.pos += n
		out = out[n:]
	}
}

// Read implements io.Reader over the deterministic stream. It never fails
// and never returns short.
func (c *Context) Read(p []byte) (int, error) {
	c.Fill(p)
	return len(p), nil
}

// NextUint64 draws eight stream bytes and interprets them as a little-endian
// unsigned 64-bit integer. The endianness is canonical, not the host's, since
// the permutation built on these draws must be bit-exact across platforms.
func (c *Context) NextUint64() uint64 {
	var scratch [8]byte
	c.Fill(scratch[:])
	return binary.LittleEndian.Uint64(scratch[:])
}
