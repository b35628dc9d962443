package rng

// Shuffle permutes s in place with Fisher-Yates, walking i from len(s)-1
// down to 1 and swapping s[i] with s[g.Uint32() % (i+1)]. Exactly len(s)-1
// outputs are consumed (none for lengths 0 and 1).
//
// The modulo reduction is slightly biased toward small indices. For the
// slice lengths used here (tens of elements against a 2^32 output range) the
// skew is below 1e-8 per index and is accepted as approximate uniformity.
func Shuffle[T any](g Generator, s []T) {
	for i := len(s) - 1; i >= 1; i-- {
		j := int(g.Uint32() % uint32(i+1))
		s[i], s[j] = s[j], s[i]
	}
}

// ShuffleDraws reports how many generator outputs Shuffle consumes for a
// slice of length n.
func ShuffleDraws(n int) int {
	if n < 2 {
		return 0
	}
	return n - 1
}
