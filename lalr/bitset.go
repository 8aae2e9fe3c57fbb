package lalr

import "math/bits"

type bitset []uint64

func newBitset(n int) bitset {
	return make(bitset, (n+63)/64)
}

func (b bitset) set(i int) {
	b[i/64] |= 1 << (uint(i) % 64)
}

func (b bitset) has(i int) bool {
	return b[i/64]&(1<<(uint(i)%64)) != 0
}

func (b bitset) clear(i int) {
	b[i/64] &^= 1 << (uint(i) % 64)
}

// union adds o to b and reports whether b changed.
func (b bitset) union(o bitset) bool {
	changed := false
	for i, w := range o {
		if n := b[i] | w; n != b[i] {
			b[i] = n
			changed = true
		}
	}
	return changed
}

func (b bitset) clone() bitset {
	ret := make(bitset, len(b))
	copy(ret, b)
	return ret
}

func (b bitset) empty() bool {
	for _, w := range b {
		if w != 0 {
			return false
		}
	}
	return true
}

func (b bitset) each(fn func(int)) {
	for i, w := range b {
		for w != 0 {
			t := bits.TrailingZeros64(w)
			fn(i*64 + t)
			w &= w - 1
		}
	}
}
