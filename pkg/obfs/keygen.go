package obfs

const (
	// DefaultSeed is the key schedule seed used when none is configured.
	DefaultSeed uint64 = 3421
	// DefaultRounds is the number of generator rounds used to derive a key.
	DefaultRounds = 10

	lcgIncrement  uint64 = 1013904223
	lcgMultiplier uint64 = 1664525
	lcgModulus    uint64 = 0xFFFFFFFF
)

// Sequence runs the linear congruential generator for the given number of rounds and returns the final state.
// The recurrence is state = (1013904223 + 1664525 * state) mod 0xFFFFFFFF, starting from seed.
// It's a pure function: the same seed and rounds always produce the same output, which is what keeps generated ciphertext reproducible across builds.
func Sequence(seed uint64, rounds int) uint64 {
	state := seed
	for i := 0; i < rounds; i++ {
		state = (lcgIncrement + lcgMultiplier*state) % lcgModulus
	}
	return state
}

// InRange maps the generator output for (seed, rounds) onto [min, max] inclusive.
// The bounds may be given in either order, and a range spanning the whole uint64 domain returns the generator output unchanged.
func InRange(seed uint64, rounds int, min, max uint64) uint64 {
	if max < min {
		min, max = max, min
	}
	size := max - min + 1
	if size == 0 {
		// max-min+1 wrapped to zero, the range covers every uint64
		return Sequence(seed, rounds)
	}
	return min + Sequence(seed, rounds)%size
}

// DeriveKey produces the single key byte for a seed using DefaultRounds.
// Every obfuscated string in a build shares the key derived from that build's seed.
func DeriveKey(seed uint64) byte {
	return byte(InRange(seed, DefaultRounds, 0, 255))
}
