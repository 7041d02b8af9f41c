package lattice

// LCG constants (Numerical Recipes).
const (
	lcgMultiplier = 1664525
	lcgIncrement  = 1013904223
	lcgModulus    = 1 << 32
)

// Rand is a reproducible linear congruential generator. The sequence for a
// given seed is fixed across platforms so generated graphs can be compared
// byte for byte.
//
// A Rand is not safe for concurrent use; each generation owns its own.
type Rand struct {
	state uint32
}

// NewRand returns a generator seeded with the low 32 bits of seed.
func NewRand(seed int64) *Rand {
	return &Rand{state: uint32(seed)}
}

// Float64 advances the generator and returns a value in [0,1).
func (r *Rand) Float64() float64 {
	r.state = r.state*lcgMultiplier + lcgIncrement
	return float64(r.state) / lcgModulus
}

// Intn returns a value in [0,n) as floor(Float64()*n).
func (r *Rand) Intn(n int) int {
	return int(float64(r.Float64() * float64(n)))
}
