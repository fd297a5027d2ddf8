package position

import (
	"math"
	"testing"
)

func TestGroupKey(t *testing.T) {
	tests := []struct {
		name string
		pos  float64
		want int
	}{
		{name: "integer position", pos: 3.0, want: 3},
		{name: "fractional position", pos: 3.7, want: 3},
		{name: "zero", pos: 0, want: 0},
		{name: "below one", pos: 0.4, want: 0},
		{name: "negative clamps to zero", pos: -2.5, want: 0},
		{name: "NaN clamps to zero", pos: math.NaN(), want: 0},
		{name: "infinity clamps to zero", pos: math.Inf(1), want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GroupKey(tt.pos); got != tt.want {
				t.Errorf("GroupKey(%v) = %d, want %d", tt.pos, got, tt.want)
			}
		})
	}
}

func TestStackRank(t *testing.T) {
	tests := []struct {
		name string
		pos  float64
		want float64
	}{
		{name: "integer position has rank zero", pos: 5.0, want: 0},
		{name: "tenths", pos: 2.1, want: 0.1},
		{name: "hundredths", pos: 2.13, want: 0.13},
		{name: "negative ranks zero", pos: -1.5, want: 0},
		{name: "NaN ranks zero", pos: math.NaN(), want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StackRank(tt.pos); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("StackRank(%v) = %v, want %v", tt.pos, got, tt.want)
			}
		})
	}
}

func TestAssignMissing(t *testing.T) {
	tests := []struct {
		name string
		in   []float64
		want []float64
	}{
		{
			name: "all unset get sequential columns",
			in:   []float64{0, 0, 0},
			want: []float64{1, 2, 3},
		},
		{
			name: "set positions preserved",
			in:   []float64{2.1, 0, 5},
			want: []float64{2.1, 1, 5},
		},
		{
			name: "skips columns already in use",
			in:   []float64{1, 0, 2, 0},
			want: []float64{1, 3, 2, 4},
		},
		{
			name: "NaN treated as unset",
			in:   []float64{math.NaN(), 1.5},
			want: []float64{2, 1.5},
		},
		{
			name: "empty input",
			in:   nil,
			want: []float64{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AssignMissing(tt.in)
			if len(got) != len(tt.want) {
				t.Fatalf("AssignMissing() returned %d entries, want %d", len(got), len(tt.want))
			}
			for i := range got {
				if math.Abs(got[i]-tt.want[i]) > 1e-9 {
					t.Errorf("AssignMissing()[%d] = %v, want %v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestAssignMissingDoesNotMutateInput(t *testing.T) {
	in := []float64{0, 2}
	AssignMissing(in)
	if in[0] != 0 {
		t.Errorf("input slice was mutated: %v", in)
	}
}
