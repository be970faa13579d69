// errors.go: Error taxonomy for derivation, framing, and lifecycle failures.
//
// Copyright (c) 2025 Occultis
// SPDX-License-Identifier: MPL-2.0

package crypto

import "errors"

// Public standard errors for drop-in compatibility.
// These errors can be used with errors.Is() for error checking.
var (
	// ErrResourceExhausted is returned when the password hashing primitive
	// cannot allocate its working memory. Fatal to context creation; the cost
	// parameters are fixed, so there is no point retrying.
	ErrResourceExhausted = errors.New("crypto: resource exhausted")

	// ErrAuthenticationFailed is returned when decryption's integrity check
	// fails: wrong key, or corrupted/tampered ciphertext. Any output is wiped
	// and unusable.
	ErrAuthenticationFailed = errors.New("crypto: authentication failed")

	// ErrProtocolViolation is returned when an authenticated message carries
	// a tag other than "final". Encryption always tags messages as final, so
	// this branch is normally unreachable; it is handled like an
	// authentication failure, including the wipe.
	ErrProtocolViolation = errors.New("crypto: protocol violation")

	// ErrContextDestroyed is returned when a cipher operation is attempted on
	// a Context after Destroy.
	ErrContextDestroyed = errors.New("crypto: context destroyed")

	// ErrFrameTooShort is returned when a frame or ciphertext is shorter than
	// the fixed framing overhead.
	ErrFrameTooShort = errors.New("crypto: frame too short")

	// ErrUnknownMagic is returned when a frame does not start with FrameMagic.
	ErrUnknownMagic = errors.New("crypto: unknown magic")

	// ErrUnsupportedVersion is returned when a frame's format version is not
	// FrameVersion.
	ErrUnsupportedVersion = errors.New("crypto: unsupported frame version")

	// ErrFrameLength is returned when a frame's trailing-length field does not
	// match the actual byte count that follows it.
	ErrFrameLength = errors.New("crypto: frame length mismatch")
)

// Error codes for rich error handling
const (
	ErrCodeResourceExhausted  = "CRYPTO_RESOURCE_EXHAUSTED"
	ErrCodeAuthFailed         = "CRYPTO_AUTH_FAILED"
	ErrCodeProtocolViolation  = "CRYPTO_PROTOCOL_VIOLATION"
	ErrCodeContextDestroyed   = "CRYPTO_CONTEXT_DESTROYED"
	ErrCodeFrameTooShort      = "CRYPTO_FRAME_TOO_SHORT"
	ErrCodeUnknownMagic       = "CRYPTO_UNKNOWN_MAGIC"
	ErrCodeUnsupportedVersion = "CRYPTO_UNSUPPORTED_VERSION"
	ErrCodeFrameLength        = "CRYPTO_FRAME_LENGTH"
	ErrCodeCipherInit         = "CRYPTO_CIPHER_INIT"
	ErrCodeHeaderGen          = "CRYPTO_HEADER_GEN"
)
