package dirty

import (
	"slices"
	"sync"
	"testing"
)

// marked returns the set bits in ascending order.
func marked(s *Set) []int {
	var ids []int
	s.ForEach(func(id int) { ids = append(ids, id) })
	return ids
}

func TestNew(t *testing.T) {
	tests := []struct {
		name   string
		n      int
		wantOK bool
	}{
		{"zero", 0, true},
		{"one", 1, true},
		{"word boundary", 64, true},
		{"partial word", 65, true},
		{"large", 4096, true},
		{"negative", -1, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New(tt.n)
			if (s != nil) != tt.wantOK {
				t.Fatalf("New(%d) = %v, want nil=%v", tt.n, s, !tt.wantOK)
			}
			if s == nil {
				return
			}
			if got := marked(s); len(got) != 0 {
				t.Errorf("new Set has bits %v, want none", got)
			}
		})
	}
}

func TestSet_MarkClearHas(t *testing.T) {
	s := New(130)

	for _, id := range []int{0, 63, 64, 129} {
		s.Mark(id)
		if !s.Has(id) {
			t.Errorf("Has(%d) = false after Mark", id)
		}
	}

	s.Clear(64)
	if s.Has(64) {
		t.Error("Has(64) = true after Clear")
	}
	if !s.Has(63) {
		t.Error("Clear(64) cleared a neighbouring bit")
	}

	// Out of range is ignored.
	s.Mark(-1)
	s.Mark(130)
	s.Clear(-1)
	if s.Has(-1) || s.Has(130) {
		t.Error("out-of-range ids should never be set")
	}
	if got, want := marked(s), []int{0, 63, 129}; !slices.Equal(got, want) {
		t.Errorf("set bits = %v, want %v", got, want)
	}
}

func TestSet_MarkAll(t *testing.T) {
	for _, n := range []int{0, 1, 63, 64, 65, 200} {
		s := New(n)
		s.MarkAll()
		got := marked(s)
		if len(got) != n {
			t.Errorf("n=%d: %d bits set after MarkAll", n, len(got))
		}
		if n > 0 && got[n-1] != n-1 {
			t.Errorf("n=%d: highest bit = %d, want %d", n, got[n-1], n-1)
		}
	}
}

func TestSet_ForEachAscending(t *testing.T) {
	s := New(300)
	want := []int{2, 64, 65, 128, 299}
	for _, id := range slices.Backward(want) {
		s.Mark(id)
	}

	if got := marked(s); !slices.Equal(got, want) {
		t.Errorf("ForEach visited %v, want %v", got, want)
	}
	for _, id := range want {
		if !s.Has(id) {
			t.Errorf("ForEach cleared bit %d", id)
		}
	}

	s.ForEach(nil) // no-op
}

func TestSet_Concurrent(t *testing.T) {
	const n = 1024
	s := New(n)
	s.MarkAll()

	var wg sync.WaitGroup
	for w := range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for id := w; id < n; id += 8 {
				s.Clear(id)
			}
		}()
	}
	wg.Wait()

	if got := marked(s); len(got) != 0 {
		t.Errorf("%d bits left after concurrent clears, want 0", len(got))
	}
}
