package odds

import (
	"math"
	"testing"
)

func ptr(v float64) *float64 { return &v }

func TestImpliedProbability(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		in   *float64
		want *float64
	}{
		{name: "underdog", in: ptr(150), want: ptr(0.4)},
		{name: "favorite", in: ptr(-200), want: ptr(200.0 / 300.0)},
		{name: "even money", in: ptr(100), want: ptr(0.5)},
		{name: "zero", in: ptr(0), want: nil},
		{name: "nil", in: nil, want: nil},
		{name: "nan", in: ptr(math.NaN()), want: nil},
		{name: "inf", in: ptr(math.Inf(-1)), want: nil},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got := ImpliedProbability(tc.in)
			if tc.want == nil {
				if got != nil {
					t.Fatalf("expected nil probability, got %v", *got)
				}
				return
			}
			if got == nil {
				t.Fatalf("expected probability %v, got nil", *tc.want)
			}
			if math.Abs(*got-*tc.want) > 1e-9 {
				t.Fatalf("probability mismatch: got=%v want=%v", *got, *tc.want)
			}
		})
	}
}

func TestNewPair_DropsNonFiniteValues(t *testing.T) {
	t.Parallel()

	pair := NewPair(ptr(math.NaN()), ptr(-110))
	if pair.Home != nil {
		t.Fatalf("expected NaN home price to become nil, got %v", *pair.Home)
	}
	if pair.Away == nil || *pair.Away != -110 {
		t.Fatalf("unexpected away price: %v", pair.Away)
	}
	if pair.IsEmpty() {
		t.Fatalf("expected pair with one side to be non-empty")
	}
	if !NewPair(nil, ptr(math.Inf(1))).IsEmpty() {
		t.Fatalf("expected pair of unusable prices to be empty")
	}
}
