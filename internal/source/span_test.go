package source

import "testing"

func TestSpanOverlaps(t *testing.T) {
	tests := []struct {
		name string
		a, b Span
		want bool
	}{
		{"disjoint", Span{Start: 0, End: 5}, Span{Start: 5, End: 10}, false},
		{"adjacent is not overlap", Span{Start: 0, End: 5}, Span{Start: 5, End: 5}, false},
		{"overlapping", Span{Start: 0, End: 5}, Span{Start: 4, End: 10}, true},
		{"insertion inside range conflicts", Span{Start: 0, End: 5}, Span{Start: 3, End: 3}, true},
		{"insertion at same point conflicts", Span{Start: 3, End: 3}, Span{Start: 3, End: 3}, true},
		{"insertion at boundary does not conflict", Span{Start: 0, End: 5}, Span{Start: 5, End: 5}, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.a.Overlaps(tc.b); got != tc.want {
				t.Errorf("%v.Overlaps(%v) = %v, want %v", tc.a, tc.b, got, tc.want)
			}
			if got := tc.b.Overlaps(tc.a); got != tc.want {
				t.Errorf("Overlaps should be symmetric: %v.Overlaps(%v) = %v, want %v", tc.b, tc.a, got, tc.want)
			}
		})
	}
}

func TestSpanCover(t *testing.T) {
	a := Span{File: 1, Start: 10, End: 20}
	b := Span{File: 1, Start: 5, End: 15}
	got := a.Cover(b)
	want := Span{File: 1, Start: 5, End: 20}
	if got != want {
		t.Errorf("Cover = %v, want %v", got, want)
	}
}

func TestSpanEmpty(t *testing.T) {
	if !(Span{Start: 3, End: 3}).Empty() {
		t.Error("zero-width span should be Empty")
	}
	if (Span{Start: 3, End: 4}).Empty() {
		t.Error("non-zero span should not be Empty")
	}
}
