// securemem_fallback.go: no-op memory locking where mlock is unavailable.
//
// Copyright (c) 2025 Occultis
// SPDX-License-Identifier: MPL-2.0

//go:build !unix

package crypto

import "errors"

var errLockUnsupported = errors.New("crypto: memory locking not supported on this platform")

func lockMemory([]byte) error { return errLockUnsupported }

func unlockMemory([]byte) error { return nil }
