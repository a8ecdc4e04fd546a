package core

import "testing"

func TestIsAdjacent(t *testing.T) {
	tests := []struct {
		a, b Coord
		want bool
	}{
		{C(3, 3), C(3, 3), false},
		{C(3, 3), C(4, 3), true},
		{C(3, 3), C(2, 3), true},
		{C(3, 3), C(3, 4), true},
		{C(3, 3), C(3, 2), true},
		{C(3, 3), C(4, 4), false},
		{C(3, 3), C(5, 3), false},
		{C(0, 0), C(0, 2), false},
	}

	for _, tt := range tests {
		if got := IsAdjacent(tt.a, tt.b); got != tt.want {
			t.Errorf("IsAdjacent(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
		if got := IsAdjacent(tt.b, tt.a); got != tt.want {
			t.Errorf("IsAdjacent(%v, %v) = %v, want %v", tt.b, tt.a, got, tt.want)
		}
	}
}

func TestBoardToLocal(t *testing.T) {
	tests := []struct {
		x, y int
		size float64
		want Vec2
	}{
		{0, 0, 1, Vec2{0.5, -0.5}},
		{2, 3, 1, Vec2{2.5, -3.5}},
		{1, 1, 64, Vec2{96, -96}},
		{4, -1, 2, Vec2{9, 1}},
	}

	for _, tt := range tests {
		if got := BoardToLocal(tt.x, tt.y, tt.size); got != tt.want {
			t.Errorf("BoardToLocal(%d, %d, %g) = %v, want %v", tt.x, tt.y, tt.size, got, tt.want)
		}
	}
}
