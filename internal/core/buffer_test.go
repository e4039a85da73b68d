package core

import "testing"

func TestZero(t *testing.T) {
	buf := []float64{1, 2, 3}
	Zero(buf)

	for i, v := range buf {
		if v != 0 {
			t.Fatalf("buf[%d] = %v, want 0", i, v)
		}
	}
}

func TestClone(t *testing.T) {
	src := []float64{1, 2}
	out := Clone(src)
	out[0] = 5

	if src[0] != 1 {
		t.Fatal("clone shares memory with its source")
	}
}

func TestMaxAbsIndex(t *testing.T) {
	tests := []struct {
		name string
		x    []float64
		want int
	}{
		{name: "empty", x: nil, want: -1},
		{name: "negative wins", x: []float64{1, -3, 2}, want: 1},
		{name: "first on ties", x: []float64{0, 2, -2}, want: 1},
		{name: "all zero", x: []float64{0, 0}, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MaxAbsIndex(tt.x); got != tt.want {
				t.Fatalf("MaxAbsIndex() = %d, want %d", got, tt.want)
			}
		})
	}
}
