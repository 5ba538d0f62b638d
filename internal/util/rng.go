package util

import "math/rand/v2"

func New(seed int64) *rand.Rand {
	if seed == 0 {
		seed = 1
	}
	return rand.New(rand.NewPCG(uint64(seed), 0))
}

// Stream returns the random stream for one (step, id) slot of a run.
// Streams depend only on their key, never on which worker draws from them.
func Stream(seed int64, step, id int) *rand.Rand {
	if seed == 0 {
		seed = 1
	}
	hi := splitmix64(uint64(seed) ^ splitmix64(uint64(step)+0x9e3779b97f4a7c15))
	lo := splitmix64(uint64(id) ^ 0xd1b54a32d192ed03)
	return rand.New(rand.NewPCG(hi, lo))
}

func splitmix64(x uint64) uint64 {
	x += 0x9e3779b97f4a7c15
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	return x ^ (x >> 31)
}

// Uniform draws from [lo, hi).
func Uniform(r *rand.Rand, lo, hi float64) float64 {
	return lo + r.Float64()*(hi-lo)
}

func Bernoulli(r *rand.Rand, p float64) bool {
	return r.Float64() < p
}
