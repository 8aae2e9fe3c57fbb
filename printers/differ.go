package printers

type DiffType uint8

const (
	DiffKeep DiffType = iota
	DiffRemove
	DiffAdd
	DiffReplace
)

func (t DiffType) String() string {
	switch t {
	case DiffKeep:
		return "keep"
	case DiffRemove:
		return "remove"
	case DiffAdd:
		return "add"
	case DiffReplace:
		return "replace"
	}
	return "unknown"
}

// DiffElem is one step of an edit script. Old is unset for additions, New
// for removals.
type DiffElem[T any] struct {
	Type DiffType
	Old  T
	New  T
}

// Differ computes shortest edit scripts with the Myers algorithm.
type Differ[T any] struct {
	Equal func(old, new T) bool
}

func NewDiffer[T any](equal func(old, new T) bool) *Differ[T] {
	return &Differ[T]{
		Equal: equal,
	}
}

func (d *Differ[T]) Diff(old, new []T) []DiffElem[T] {
	trace, x, y := d.trace(old, new)
	return d.extract(trace, x, y, old, new)
}

// DiffWithReplacements turns each run of removals directly followed by the
// same number of additions into replacements.
func (d *Differ[T]) DiffWithReplacements(old, new []T) []DiffElem[T] {
	return coalesceReplacements(d.Diff(old, new))
}

// furthest reaching x per diagonal k, stored at k+offset
type frontier struct {
	v      []int
	offset int
}

func (f frontier) get(k int) int {
	return f.v[k+f.offset]
}

func (d *Differ[T]) trace(old, new []T) ([]frontier, int, int) {
	n, m := len(old), len(new)
	max := n + m
	offset := max + 1
	v := frontier{
		v:      make([]int, 2*max+3),
		offset: offset,
	}
	var trace []frontier
	for depth := 0; depth <= max; depth++ {
		snapshot := frontier{
			v:      append([]int(nil), v.v...),
			offset: offset,
		}
		trace = append(trace, snapshot)
		for k := -depth; k <= depth; k += 2 {
			var x int
			if k == -depth || (k != depth && v.get(k-1) < v.get(k+1)) {
				x = v.get(k + 1)
			} else {
				x = v.get(k-1) + 1
			}
			y := x - k
			for x < n && y < m && d.Equal(old[x], new[y]) {
				x++
				y++
			}
			v.v[k+offset] = x
			if x >= n && y >= m {
				return trace, x, y
			}
		}
	}
	panic("unreachable")
}

func (d *Differ[T]) extract(trace []frontier, x, y int, old, new []T) []DiffElem[T] {
	var ret []DiffElem[T]
	var zero T
	for depth := len(trace) - 1; depth >= 0; depth-- {
		v := trace[depth]
		k := x - y

		var prevK int
		if k == -depth || (k != depth && v.get(k-1) < v.get(k+1)) {
			prevK = k + 1
		} else {
			prevK = k - 1
		}
		prevX := v.get(prevK)
		prevY := prevX - prevK

		for x > prevX && y > prevY {
			ret = append(ret, DiffElem[T]{DiffKeep, old[x-1], new[y-1]})
			x--
			y--
		}
		if depth == 0 {
			break
		}
		for x > prevX {
			ret = append(ret, DiffElem[T]{DiffRemove, old[x-1], zero})
			x--
		}
		for y > prevY {
			ret = append(ret, DiffElem[T]{DiffAdd, zero, new[y-1]})
			y--
		}
	}
	for i, j := 0, len(ret)-1; i < j; i, j = i+1, j-1 {
		ret[i], ret[j] = ret[j], ret[i]
	}
	return ret
}

func coalesceReplacements[T any](diff []DiffElem[T]) []DiffElem[T] {
	ret := make([]DiffElem[T], 0, len(diff))
	for i := 0; i < len(diff); i++ {
		if diff[i].Type != DiffRemove {
			ret = append(ret, diff[i])
			continue
		}
		j := i
		for j < len(diff) && diff[j].Type == DiffRemove {
			j++
		}
		k := j
		for k < len(diff) && diff[k].Type == DiffAdd {
			k++
		}
		if j-i == k-j {
			for n := 0; n < j-i; n++ {
				ret = append(ret, DiffElem[T]{DiffReplace, diff[i+n].Old, diff[j+n].New})
			}
		} else {
			ret = append(ret, diff[i:k]...)
		}
		i = k - 1
	}
	return ret
}
