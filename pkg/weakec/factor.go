package weakec

// Factorize returns the prime factorization of n as a prime -> exponent
// multiset, by trial division. Orders handled here are far below 2^32, so
// this stays cheap.
func Factorize(n uint64) map[uint64]int {
	factors := make(map[uint64]int)
	d := uint64(2)
	for d*d <= n {
		for n%d == 0 {
			factors[d]++
			n /= d
		}
		if d == 2 {
			d++
		} else {
			d += 2
		}
	}
	if n > 1 {
		factors[n]++
	}
	return factors
}
