// shuffle.go: Password-deterministic Fisher-Yates permutation engine.
//
// Copyright (c) 2025 Occultis
// SPDX-License-Identifier: MPL-2.0

package crypto

// progressInterval is how many shuffle steps pass between observer calls.
// Power of two so the modulo compiles to a mask.
const progressInterval = 4096

// Shuffle applies a deterministic pseudorandom permutation to n opaque
// handles in place, through the swap callback (the math/rand.Shuffle shape).
// The permutation is a pure function of the Context's seed and n.
//
// Algorithm: Fisher-Yates, walking i from n-1 down to 1 and swapping element
// i with element j = NextUint64() mod i. Note the modulus is the current loop
// index i, not the textbook i+1: element i is excluded as its own swap target
// at each step. This slightly biases where element i can come to rest, but
// the draw sequence is a wire-compatibility constant — carriers embedded with
// earlier builds replay it bit-for-bit — so it is preserved exactly.
//
// Cost: exactly n-1 draws and n-1 swaps. n <= 1 is a no-op.
func (c *Context) Shuffle(n int, swap func(i, j int)) {
	c.ShuffleWithProgress(n, swap, nil)
}

// ShuffleWithProgress is Shuffle with an injected observer, called every
// progressInterval steps and once at completion. The observer is
// presentation-only: it is invoked after the step's draw and swap, so
// reporting cadence never perturbs determinism or draw sequencing. A nil
// observer is valid.
func (c *Context) ShuffleWithProgress(n int, swap func(i, j int), obs ProgressFunc) {
	if n <= 1 {
		return
	}
	for i := n - 1; i > 0; i-- {
		j := int(c.NextUint64() % uint64(i))
		swap(i, j)
		if obs != nil && i%progressInterval == 0 {
			obs(n-i, n)
		}
	}
	if obs != nil {
		obs(n, n)
	}
}

// Perm returns a shuffled copy of the index sequence [0, n). It is a
// convenience for embedding layers that address carrier positions by index
// rather than holding opaque handles.
func (c *Context) Perm(n int) []int {
	p := make([]int, n)
	for i := range p {
		p[i] = i
	}
	c.Shuffle(n, func(i, j int) {
		p[i], p[j] = p[j], p[i]
	})
	return p
}
