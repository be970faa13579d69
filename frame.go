// frame.go: Authenticated single-message encryption and the versioned frame
// that carries it.
//
// Copyright (c) 2025 Occultis
// SPDX-License-Identifier: MPL-2.0

package crypto

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"
	"io"

	goerrors "github.com/agilira/go-errors"
	"golang.org/x/crypto/chacha20poly1305"
)

// Frame byte layout (all multi-byte integers little-endian):
//
//	offset 0, size 4:   magic constant "imcl"
//	offset 4, size 4:   format version
//	offset 8, size 4:   byte length of everything following this field
//	offset 12, size 24: AEAD stream header
//	offset 36:          ciphertext || authentication tag
const (
	// FrameMagic is the ASCII identifier opening every frame.
	FrameMagic = "imcl"

	// FrameVersion is the current frame format version.
	FrameVersion = 1

	// frameHeaderSize is the application header: magic, version, length.
	frameHeaderSize = 12

	// streamHeaderSize is the AEAD stream header emitted by encryption: the
	// fresh XChaCha20-Poly1305 nonce.
	streamHeaderSize = chacha20poly1305.NonceSizeX

	// cipherOverhead is the fixed growth of ciphertext over plaintext: one
	// encrypted tag byte plus the 16-byte Poly1305 authenticator.
	cipherOverhead = 1 + chacha20poly1305.Overhead

	// FrameOverhead is the total fixed growth of a frame over its plaintext.
	// Encrypt output length is always input length + FrameOverhead.
	FrameOverhead = frameHeaderSize + streamHeaderSize + cipherOverhead
)

// Message tags, encrypted alongside the payload. Encryption always emits
// tagFinal: every frame is a complete, non-continued unit.
const (
	tagMessage = 0x00
	tagFinal   = 0x03
)

// Encrypt authenticates and encrypts the payload as one final unit and
// returns the assembled frame. The AEAD stream header is generated fresh
// from the operating system's entropy source — never from the deterministic
// generator, whose stream is reserved for the permutation engine and must
// stay uncorrelated with cipher randomness. Empty payloads are valid.
func (c *Context) Encrypt(plaintext []byte) ([]byte, error) {
	if c.destroyed {
		richErr := goerrors.New(ErrCodeContextDestroyed, "encrypt on destroyed context")
		return nil, fmt.Errorf("%w: %w", ErrContextDestroyed, richErr)
	}

	frame := make([]byte, frameHeaderSize+streamHeaderSize, len(plaintext)+FrameOverhead)
	copy(frame[0:4], FrameMagic)
	binary.LittleEndian.PutUint32(frame[4:8], FrameVersion)

	header := frame[frameHeaderSize : frameHeaderSize+streamHeaderSize]
	if _, err := io.ReadFull(rand.Reader, header); err != nil {
		return nil, goerrors.Wrap(err, ErrCodeHeaderGen, "failed to generate AEAD stream header")
	}

	// The tag byte travels encrypted, prefixed to the payload.
	msg := make([]byte, 1+len(plaintext))
	msg[0] = tagFinal
	copy(msg[1:], plaintext)

	frame = c.aead.Seal(frame, header, msg, nil)
	Zeroize(msg)

	binary.LittleEndian.PutUint32(frame[8:12], uint32(len(frame)-frameHeaderSize)) // #nosec G115 -- frame fits the LE32 length field by construction

	return frame, nil
}

// Decrypt authenticates and decrypts one ciphertext||tag unit under the given
// AEAD stream header and returns the recovered payload.
//
// It fails with ErrAuthenticationFailed when the integrity check fails (wrong
// key, corruption, or tampering) and with ErrProtocolViolation when the
// recovered tag is not final — a defensive branch that is normally
// unreachable, handled identically to an authentication failure except that
// the already-recovered buffer is wiped before the error returns, since it
// may hold leaked plaintext.
//
// Callers own magic/version validation of the surrounding frame; see
// ParseFrame and DecryptFrame.
func (c *Context) Decrypt(header, ciphertext []byte) ([]byte, error) {
	if c.destroyed {
		richErr := goerrors.New(ErrCodeContextDestroyed, "decrypt on destroyed context")
		return nil, fmt.Errorf("%w: %w", ErrContextDestroyed, richErr)
	}
	if len(header) != streamHeaderSize {
		richErr := goerrors.New(ErrCodeFrameTooShort, fmt.Sprintf("AEAD stream header must be %d bytes, got %d", streamHeaderSize, len(header)))
		return nil, fmt.Errorf("%w: %w", ErrFrameTooShort, richErr)
	}
	if len(ciphertext) < cipherOverhead {
		richErr := goerrors.New(ErrCodeFrameTooShort, fmt.Sprintf("ciphertext must be at least %d bytes, got %d", cipherOverhead, len(ciphertext)))
		return nil, fmt.Errorf("%w: %w", ErrFrameTooShort, richErr)
	}

	msg, err := c.aead.Open(nil, header, ciphertext, nil)
	if err != nil {
		richErr := goerrors.Wrap(err, ErrCodeAuthFailed, "integrity check failed: wrong key or corrupted/tampered ciphertext")
		return nil, fmt.Errorf("%w: %w", ErrAuthenticationFailed, richErr)
	}

	if msg[0] != tagFinal {
		Zeroize(msg)
		richErr := goerrors.New(ErrCodeProtocolViolation, "recovered message is not tagged final")
		return nil, fmt.Errorf("%w: %w", ErrProtocolViolation, richErr)
	}
	return msg[1:], nil
}

// ParseFrame validates the application header of an assembled frame and
// splits it into the AEAD stream header and the ciphertext||tag that follow.
// The returned slices alias frame.
func ParseFrame(frame []byte) (header, ciphertext []byte, err error) {
	if len(frame) < FrameOverhead {
		richErr := goerrors.New(ErrCodeFrameTooShort, fmt.Sprintf("frame must be at least %d bytes, got %d", FrameOverhead, len(frame)))
		return nil, nil, fmt.Errorf("%w: %w", ErrFrameTooShort, richErr)
	}
	if string(frame[0:4]) != FrameMagic {
		richErr := goerrors.New(ErrCodeUnknownMagic, "frame does not start with the expected magic constant")
		return nil, nil, fmt.Errorf("%w: %w", ErrUnknownMagic, richErr)
	}
	if v := binary.LittleEndian.Uint32(frame[4:8]); v != FrameVersion {
		richErr := goerrors.New(ErrCodeUnsupportedVersion, fmt.Sprintf("frame version %d, supported %d", v, FrameVersion))
		return nil, nil, fmt.Errorf("%w: %w", ErrUnsupportedVersion, richErr)
	}
	if length := binary.LittleEndian.Uint32(frame[8:12]); uint64(length) != uint64(len(frame)-frameHeaderSize) {
		richErr := goerrors.New(ErrCodeFrameLength, fmt.Sprintf("length field says %d bytes follow, frame has %d", length, len(frame)-frameHeaderSize))
		return nil, nil, fmt.Errorf("%w: %w", ErrFrameLength, richErr)
	}
	return frame[frameHeaderSize : frameHeaderSize+streamHeaderSize], frame[frameHeaderSize+streamHeaderSize:], nil
}

// DecryptFrame parses an assembled frame and decrypts its payload. It is the
// inverse of Encrypt for callers that hold the frame whole rather than as
// header and ciphertext halves.
func (c *Context) DecryptFrame(frame []byte) ([]byte, error) {
	header, ciphertext, err := ParseFrame(frame)
	if err != nil {
		return nil, err
	}
	return c.Decrypt(header, ciphertext)
}
