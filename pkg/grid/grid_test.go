package grid

import "testing"

func TestGetGridCoords(t *testing.T) {
	tests := []struct {
		index int
		cols  int
		wantX int
		wantY int
	}{
		// 64 cols (display width)
		{0, 64, 0, 0},
		{1, 64, 1, 0},
		{63, 64, 63, 0},
		{64, 64, 0, 1},
		{65, 64, 1, 1},
		{127, 64, 63, 1},
		{128, 64, 0, 2},
		{2047, 64, 63, 31},

		// 8 cols (one sprite row)
		{0, 8, 0, 0},
		{7, 8, 7, 0},
		{8, 8, 0, 1},
		{39, 8, 7, 4},
	}

	for _, tc := range tests {
		gotX, gotY := GetGridCoords(tc.index, tc.cols)
		if gotX != tc.wantX || gotY != tc.wantY {
			t.Errorf("GetGridCoords(%d, %d) = (%d, %d); want (%d, %d)", tc.index, tc.cols, gotX, gotY, tc.wantX, tc.wantY)
		}
	}
}

func TestIndexRoundTrip(t *testing.T) {
	for i := 0; i < 64*32; i++ {
		x, y := GetGridCoords(i, 64)
		if got := Index(x, y, 64); got != i {
			t.Fatalf("Index(%d, %d, 64) = %d; want %d", x, y, got, i)
		}
	}
}
