package rng

const (
	mtN         = 624
	mtM         = 397
	mtMatrixA   = 0x9908b0df
	mtUpperMask = 0x80000000
	mtLowerMask = 0x7fffffff
	mtInitMul   = 1812433253
)

// MersenneTwister is MT19937, bit-exact with the reference mt19937ar
// init_genrand/genrand_int32 pair.
type MersenneTwister struct {
	seed  uint32
	mt    [mtN]uint32
	index int
}

var _ Generator = (*MersenneTwister)(nil)

// NewMersenneTwister seeds a generator. A zero seed is replaced with
// DefaultSeed.
func NewMersenneTwister(seed uint32) *MersenneTwister {
	m := &MersenneTwister{seed: effectiveSeed(seed)}
	m.init()
	return m
}

func (m *MersenneTwister) init() {
	m.mt[0] = m.seed
	for i := 1; i < mtN; i++ {
		prev := m.mt[i-1]
		m.mt[i] = mtInitMul*(prev^(prev>>30)) + uint32(i)
	}
	m.index = mtN
}

// twist regenerates the whole state block. Indices wrap modulo N, so the
// tail reads words that were already regenerated, same as the reference.
func (m *MersenneTwister) twist() {
	for i := 0; i < mtN; i++ {
		y := (m.mt[i] & mtUpperMask) | (m.mt[(i+1)%mtN] & mtLowerMask)
		next := y >> 1
		if y&1 != 0 {
			next ^= mtMatrixA
		}
		m.mt[i] = m.mt[(i+mtM)%mtN] ^ next
	}
	m.index = 0
}

func (m *MersenneTwister) Uint32() uint32 {
	if m.index >= mtN {
		m.twist()
	}
	y := m.mt[m.index]
	m.index++

	// tempering
	y ^= y >> 11
	y ^= (y << 7) & 0x9d2c5680
	y ^= (y << 15) & 0xefc60000
	y ^= y >> 18
	return y
}

func (m *MersenneTwister) Shift(n int) {
	for i := 0; i < n; i++ {
		m.Uint32()
	}
}

// Reset re-runs seeding from the stored seed.
func (m *MersenneTwister) Reset() { m.init() }

func (m *MersenneTwister) Seed() uint32 { return m.seed }
