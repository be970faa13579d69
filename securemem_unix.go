// securemem_unix.go: mlock/munlock backing for SecureBuffer on Unix.
//
// Copyright (c) 2025 Occultis
// SPDX-License-Identifier: MPL-2.0

//go:build unix

package crypto

import "golang.org/x/sys/unix"

func lockMemory(b []byte) error {
	if len(b) == 0 {
		return nil
	}
	return unix.Mlock(b)
}

func unlockMemory(b []byte) error {
	if len(b) == 0 {
		return nil
	}
	return unix.Munlock(b)
}
