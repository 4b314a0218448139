package termcore

import (
	"testing"
)

func TestRect_Edges(t *testing.T) {
	r := NewRect(2, 3, 10, 5)
	if r.Right() != 12 {
		t.Errorf("Right() = %d, want 12", r.Right())
	}
	if r.Bottom() != 8 {
		t.Errorf("Bottom() = %d, want 8", r.Bottom())
	}
}

func TestRect_IsEmpty(t *testing.T) {
	if NewRect(0, 0, 5, 5).IsEmpty() {
		t.Error("5x5 rect should not be empty")
	}
	if !NewRect(0, 0, 0, 5).IsEmpty() {
		t.Error("zero width rect should be empty")
	}
	if !NewRect(0, 0, 5, -1).IsEmpty() {
		t.Error("negative height rect should be empty")
	}
	if !(Rect{}).IsEmpty() {
		t.Error("zero value rect should be empty")
	}
}

func TestRect_Contains(t *testing.T) {
	r := NewRect(1, 1, 3, 3)

	type tc struct {
		x, y int
		want bool
	}

	tests := map[string]tc{
		"top left corner inside":   {x: 1, y: 1, want: true},
		"interior point":           {x: 2, y: 2, want: true},
		"right edge exclusive":     {x: 4, y: 2, want: false},
		"bottom edge exclusive":    {x: 2, y: 4, want: false},
		"last inside column":       {x: 3, y: 3, want: true},
		"outside left":             {x: 0, y: 2, want: false},
		"outside above":            {x: 2, y: 0, want: false},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			if got := r.Contains(tt.x, tt.y); got != tt.want {
				t.Errorf("Contains(%d, %d) = %v, want %v", tt.x, tt.y, got, tt.want)
			}
		})
	}
}

func TestRect_Intersect(t *testing.T) {
	type tc struct {
		a, b Rect
		want Rect
	}

	tests := map[string]tc{
		"overlapping": {
			a:    NewRect(0, 0, 10, 10),
			b:    NewRect(5, 5, 10, 10),
			want: NewRect(5, 5, 5, 5),
		},
		"contained": {
			a:    NewRect(0, 0, 10, 10),
			b:    NewRect(2, 2, 3, 3),
			want: NewRect(2, 2, 3, 3),
		},
		"identical": {
			a:    NewRect(1, 1, 4, 4),
			b:    NewRect(1, 1, 4, 4),
			want: NewRect(1, 1, 4, 4),
		},
		"disjoint": {
			a:    NewRect(0, 0, 3, 3),
			b:    NewRect(5, 5, 3, 3),
			want: Rect{},
		},
		"touching edges": {
			a:    NewRect(0, 0, 3, 3),
			b:    NewRect(3, 0, 3, 3),
			want: Rect{},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			got := tt.a.Intersect(tt.b)
			if got != tt.want {
				t.Errorf("Intersect() = %+v, want %+v", got, tt.want)
			}
		})
	}
}
