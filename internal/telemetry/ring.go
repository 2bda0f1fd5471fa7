package telemetry

// Ring is a fixed-capacity FIFO. Pushing past capacity evicts the oldest
// entry. It is not safe for concurrent use.
type Ring[T any] struct {
	items []T
	next  int
	count int
}

// NewRing returns a ring holding at most capacity entries. Capacity below
// one is treated as one.
func NewRing[T any](capacity int) *Ring[T] {
	if capacity < 1 {
		capacity = 1
	}
	return &Ring[T]{items: make([]T, capacity)}
}

// Push appends v, evicting the oldest entry when full.
func (r *Ring[T]) Push(v T) {
	r.items[r.next] = v
	r.next = (r.next + 1) % len(r.items)
	if r.count < len(r.items) {
		r.count++
	}
}

// Len returns the number of stored entries.
func (r *Ring[T]) Len() int { return r.count }

// Cap returns the fixed capacity.
func (r *Ring[T]) Cap() int { return len(r.items) }

// Last returns the newest entry.
func (r *Ring[T]) Last() (T, bool) {
	var zero T
	if r.count == 0 {
		return zero, false
	}
	idx := (r.next - 1 + len(r.items)) % len(r.items)
	return r.items[idx], true
}

// Items returns a copy of the entries, oldest first.
func (r *Ring[T]) Items() []T {
	if r.count == 0 {
		return nil
	}
	out := make([]T, r.count)
	if r.count == len(r.items) {
		for i := 0; i < r.count; i++ {
			out[i] = r.items[(r.next+i)%len(r.items)]
		}
	} else {
		copy(out, r.items[:r.count])
	}
	return out
}

// Reset drops every entry.
func (r *Ring[T]) Reset() {
	clear(r.items)
	r.next = 0
	r.count = 0
}
