package field

import "math/rand/v2"

// NewSource returns the reproducible stream for seed: PCG with state
// (uint64(seed), 0).
func NewSource(seed int64) rand.Source {
	return rand.NewPCG(uint64(seed), 0)
}

// NewEntropySource returns a PCG stream keyed from the runtime's random
// state. Output built from it cannot be reproduced.
func NewEntropySource() rand.Source {
	return rand.NewPCG(rand.Uint64(), rand.Uint64())
}
