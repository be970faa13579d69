// Package crypto is the cryptographic core of a steganographic embedding
// tool. It turns a single user password into a reproducible set of secrets
// and exposes the three operations an embedding layer needs:
//
//   - a deterministic pseudorandom byte stream that scatters payload bytes
//     across a carrier by shuffling its embeddable positions,
//   - authenticated single-message encryption of the payload with a compact
//     versioned frame, and
//   - a context lifecycle that wipes every secret-bearing buffer on destroy.
//
// # Quick Start
//
//	ctx, err := crypto.NewContext([]byte("correct horse battery staple"))
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer ctx.Destroy()
//
//	// Encrypt the payload into a self-describing frame.
//	frame, err := ctx.Encrypt(payload)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	// Shuffle the carrier's embeddable positions, password-deterministically.
//	ctx.Shuffle(len(positions), func(i, j int) {
//		positions[i], positions[j] = positions[j], positions[i]
//	})
//
// Extraction runs the same derivation with the same password, replays the
// identical shuffle, and decrypts the reassembled frame:
//
//	plaintext, err := ctx.DecryptFrame(frame)
//
// # Determinism
//
// The same password always yields the same cipher key, the same generator
// seed, and therefore the same byte stream and the same permutation, on every
// platform regardless of native byte order. All multi-byte values on the wire
// and in the seed are little-endian. The generator stream is consumed only by
// Fill, Read, NextUint64 and the shuffle operations; AEAD header material
// comes from the operating system's entropy source and never touches the
// deterministic stream, so the two stay uncorrelated.
//
// # Derivation
//
// NewContext stretches the password with Argon2id under fixed, protocol-level
// cost parameters and a fixed salt. The first 32 output bytes become the
// XChaCha20-Poly1305 key; the next 32 bytes, read as four little-endian
// 64-bit words, seed the generator. Derivation is intentionally slow and
// dominates latency; callers needing responsiveness must run it on their own
// goroutine. The package itself is fully synchronous.
//
// # Concurrency
//
// A Context is mutable shared state. It performs no internal locking and is
// not safe for concurrent use: at most one operation may be in flight per
// Context at any time.
//
// # Secret Hygiene
//
// Secret-bearing buffers are allocated through SecureBuffer, which locks them
// against swap-out where the platform allows and guarantees they are
// overwritten before release. Intermediate derivation buffers are wiped on
// every path, success or failure. Callers own the wiping of the password
// bytes they pass in.
//
// Copyright (c) 2025 Occultis
// SPDX-License-Identifier: MPL-2.0
package crypto
