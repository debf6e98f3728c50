package hoverfx

import "testing"

func TestRectContains(t *testing.T) {
	r := Rect{X: 10, Y: 20, Width: 100, Height: 50}

	tests := []struct {
		name string
		x, y float64
		want bool
	}{
		{"inside", 50, 40, true},
		{"top-left corner", 10, 20, true},
		{"bottom-right corner", 110, 70, true},
		{"outside left", 5, 40, false},
		{"outside right", 115, 40, false},
		{"outside top", 50, 15, false},
		{"outside bottom", 50, 75, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := r.Contains(tt.x, tt.y); got != tt.want {
				t.Errorf("Rect.Contains(%v, %v) = %v, want %v", tt.x, tt.y, got, tt.want)
			}
		})
	}
}

func TestRectEmpty(t *testing.T) {
	if !(Rect{Width: 0, Height: 10}).Empty() {
		t.Error("zero width should be empty")
	}
	if (Rect{Width: 1, Height: 1}).Empty() {
		t.Error("1x1 should not be empty")
	}
}

func TestRegionBounds(t *testing.T) {
	r := NewRegion(1, 2, 3, 4)
	if got := r.Bounds(); got != (Rect{1, 2, 3, 4}) {
		t.Errorf("Bounds = %+v", got)
	}
	r.SetSize(30, 40)
	r.MoveTo(10, 20)
	if got := r.Bounds(); got != (Rect{10, 20, 30, 40}) {
		t.Errorf("Bounds after SetSize/MoveTo = %+v", got)
	}
	r.SetBounds(Rect{0, 0, 5, 5})
	if got := r.Bounds(); got != (Rect{0, 0, 5, 5}) {
		t.Errorf("Bounds after SetBounds = %+v", got)
	}
}

func TestRegionAttachDetach(t *testing.T) {
	r := NewRegion(0, 0, 10, 10)
	a, b := &recordingSurface{}, &recordingSurface{}
	r.AttachSurface(a)
	r.AttachSurface(a)
	r.AttachSurface(b)
	if len(r.Surfaces()) != 2 {
		t.Fatalf("Surfaces len = %d, want 2", len(r.Surfaces()))
	}
	r.DetachSurface(a)
	if len(r.Surfaces()) != 1 || r.Surfaces()[0] != b {
		t.Errorf("Surfaces = %v, want [b]", r.Surfaces())
	}
	r.DetachSurface(a)
	if len(r.Surfaces()) != 1 {
		t.Error("detaching an absent surface should be a no-op")
	}
}
