package rng

// XorShift is Marsaglia's 32-bit xorshift (13, 17, 5).
type XorShift struct {
	seed  uint32
	state uint32
}

var _ Generator = (*XorShift)(nil)

// NewXorShift seeds a generator. A zero seed is replaced with DefaultSeed.
func NewXorShift(seed uint32) *XorShift {
	s := effectiveSeed(seed)
	return &XorShift{seed: s, state: s}
}

func (x *XorShift) Uint32() uint32 {
	v := x.state
	v ^= v << 13
	v ^= v >> 17
	v ^= v << 5
	x.state = v
	return v
}

func (x *XorShift) Shift(n int) {
	for i := 0; i < n; i++ {
		x.Uint32()
	}
}

func (x *XorShift) Reset() { x.state = x.seed }

func (x *XorShift) Seed() uint32 { return x.seed }
