package telemetry

import (
	"reflect"
	"testing"
	"time"
)

func TestRing_PartialFillKeepsOrder(t *testing.T) {
	r := NewRing[int](4)
	r.Push(1)
	r.Push(2)

	if got := r.Items(); !reflect.DeepEqual(got, []int{1, 2}) {
		t.Fatalf("Items = %v, want [1 2]", got)
	}
	if last, ok := r.Last(); !ok || last != 2 {
		t.Fatalf("Last = %v, %v; want 2, true", last, ok)
	}
}

func TestRing_WrapsAndEvictsOldest(t *testing.T) {
	r := NewRing[int](3)
	for i := 1; i <= 5; i++ {
		r.Push(i)
	}
	if got := r.Items(); !reflect.DeepEqual(got, []int{3, 4, 5}) {
		t.Fatalf("Items = %v, want [3 4 5]", got)
	}
	if r.Len() != 3 || r.Cap() != 3 {
		t.Fatalf("Len/Cap = %d/%d, want 3/3", r.Len(), r.Cap())
	}
}

func TestRing_EmptyAndReset(t *testing.T) {
	r := NewRing[string](0)
	if r.Cap() != 1 {
		t.Fatalf("Cap = %d, want 1 for non-positive capacity", r.Cap())
	}
	if r.Items() != nil {
		t.Fatalf("Items on empty ring should be nil")
	}
	if _, ok := r.Last(); ok {
		t.Fatalf("Last on empty ring should report false")
	}
	r.Push("a")
	r.Reset()
	if r.Len() != 0 {
		t.Fatalf("Len after Reset = %d, want 0", r.Len())
	}
}

func TestFormatBytes(t *testing.T) {
	cases := []struct {
		in   uint64
		want string
	}{
		{0, "0 B"},
		{512, "512 B"},
		{1024, "1 KB"},
		{1536, "1.5 KB"},
		{5 * 1024 * 1024, "5 MB"},
		{16 << 30, "16 GB"},
		{3 << 40, "3 TB"},
		{1 << 50, "1024 TB"},
	}
	for _, tc := range cases {
		if got := FormatBytes(tc.in); got != tc.want {
			t.Fatalf("FormatBytes(%d) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestAverage(t *testing.T) {
	if got := Average(nil); got != 0 {
		t.Fatalf("Average(nil) = %v, want 0", got)
	}
	got := Average([]time.Duration{10 * time.Millisecond, 20 * time.Millisecond, 40 * time.Millisecond})
	if got != 23*time.Millisecond {
		t.Fatalf("Average = %v, want 23ms", got)
	}
}
