package core

import "testing"

func TestBoxIntersects(t *testing.T) {
	tests := []struct {
		name     string
		a, b     Box
		expected bool
	}{
		{
			name:     "overlapping boxes",
			a:        NewBox(0, 0, 10, 10),
			b:        NewBox(5, 5, 10, 10),
			expected: true,
		},
		{
			name:     "separated on x only",
			a:        NewBox(-260, -55, 40, 60),
			b:        NewBox(0, -62.5, 20, 45),
			expected: false,
		},
		{
			name:     "separated on y only",
			a:        NewBox(0, 100, 40, 60),
			b:        NewBox(0, -62.5, 20, 45),
			expected: false,
		},
		{
			name:     "touching horizontally (no overlap)",
			a:        NewBox(0, 0, 10, 10),
			b:        NewBox(10, 0, 10, 10),
			expected: false,
		},
		{
			name:     "touching vertically (no overlap)",
			a:        NewBox(0, 0, 10, 10),
			b:        NewBox(0, 10, 10, 10),
			expected: false,
		},
		{
			name:     "contained box",
			a:        NewBox(0, 0, 20, 20),
			b:        NewBox(1, 1, 5, 5),
			expected: true,
		},
		{
			name:     "sliver overlap",
			a:        NewBox(0, 0, 10, 10),
			b:        NewBox(9.5, 9.5, 10, 10),
			expected: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result := tc.a.Intersects(tc.b)
			if result != tc.expected {
				t.Errorf("Intersects() = %v, expected %v", result, tc.expected)
			}
			resultReverse := tc.b.Intersects(tc.a)
			if resultReverse != tc.expected {
				t.Errorf("Intersects() (reversed) = %v, expected %v", resultReverse, tc.expected)
			}
		})
	}
}

func TestBoxEdges(t *testing.T) {
	b := NewBox(-260, -55, 40, 60)

	if b.Left() != -280 {
		t.Errorf("Left() = %v, expected -280", b.Left())
	}
	if b.Right() != -240 {
		t.Errorf("Right() = %v, expected -240", b.Right())
	}
	if b.Bottom() != -85 {
		t.Errorf("Bottom() = %v, expected -85", b.Bottom())
	}
	if b.Top() != -25 {
		t.Errorf("Top() = %v, expected -25", b.Top())
	}
}

func TestRectEdges(t *testing.T) {
	r := NewRect(5, 10, 20, 15)

	if r.Right() != 25 {
		t.Errorf("Right() = %d, expected 25", r.Right())
	}
	if r.Bottom() != 25 {
		t.Errorf("Bottom() = %d, expected 25", r.Bottom())
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		val, min, max, expected int
	}{
		{5, 0, 10, 5},   // within range
		{-5, 0, 10, 0},  // below min
		{15, 0, 10, 10}, // above max
		{0, 0, 10, 0},   // at min
		{10, 0, 10, 10}, // at max
	}

	for _, tc := range tests {
		result := Clamp(tc.val, tc.min, tc.max)
		if result != tc.expected {
			t.Errorf("Clamp(%d, %d, %d) = %d, expected %d", tc.val, tc.min, tc.max, result, tc.expected)
		}
	}
}

func TestInputFrame(t *testing.T) {
	f := NewInputFrame(ActionJump)
	if !f.Has(ActionJump) {
		t.Error("Has(Jump) should be true")
	}
	if f.Has(ActionDuck) {
		t.Error("Has(Duck) should be false")
	}
	if f.String() != "jump" {
		t.Errorf("String() = %q, expected %q", f.String(), "jump")
	}

	clone := f.Clone()
	f.Set(ActionDuck)
	if clone.Has(ActionDuck) {
		t.Error("Clone should not observe later Set calls")
	}
	if f.String() != "jump+duck" {
		t.Errorf("String() = %q, expected %q", f.String(), "jump+duck")
	}

	f.Clear()
	if f.Has(ActionJump) || f.String() != "-" {
		t.Error("Clear should release every action")
	}

	var zero InputFrame
	if zero.Has(ActionJump) {
		t.Error("zero InputFrame should hold nothing")
	}
}
