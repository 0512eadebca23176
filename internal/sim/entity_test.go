package sim

import "testing"

func TestEntityPoolGenerations(t *testing.T) {
	p := newEntityPool()

	a := p.create()
	if a == NoEntity {
		t.Fatal("create() returned NoEntity")
	}
	if a.Index() != 0 || a.Generation() != 1 {
		t.Errorf("first entity = %v, expected index 0 generation 1", a)
	}

	if !p.destroy(a) {
		t.Fatal("destroy() = false for a live entity")
	}
	if p.alive(a) {
		t.Error("alive() = true after destroy")
	}
	if p.destroy(a) {
		t.Error("destroy() = true for a stale handle")
	}

	b := p.create()
	if b.Index() != a.Index() {
		t.Errorf("reused index = %d, expected %d", b.Index(), a.Index())
	}
	if b.Generation() != 2 {
		t.Errorf("reused generation = %d, expected 2", b.Generation())
	}
	if b == a {
		t.Error("reused slot produced an equal handle")
	}
	if p.alive(a) {
		t.Error("stale handle resolved after slot reuse")
	}
	if p.live != 1 {
		t.Errorf("live = %d, expected 1", p.live)
	}
}

func TestNoEntityNeverAlive(t *testing.T) {
	p := newEntityPool()
	p.create()
	if p.alive(NoEntity) {
		t.Error("alive(NoEntity) = true")
	}
	if p.alive(newEntity(5, 1)) {
		t.Error("alive() = true for an index never allocated")
	}
}

func TestEntityString(t *testing.T) {
	tests := []struct {
		e        Entity
		expected string
	}{
		{NoEntity, "none"},
		{newEntity(0, 1), "0v1"},
		{newEntity(7, 3), "7v3"},
	}
	for _, tt := range tests {
		if got := tt.e.String(); got != tt.expected {
			t.Errorf("String() = %q, expected %q", got, tt.expected)
		}
	}
}

func TestWorldDestroyStripsComponents(t *testing.T) {
	w := NewWorld()
	e := w.spawnObstacle(ObstacleSpawn{X: 10, Y: 20, W: 4, H: 6, Speed: -1})
	keep := w.spawnObstacle(ObstacleSpawn{X: 30, Y: 20, W: 4, H: 6, Speed: -1})

	if !w.Destroy(e) {
		t.Fatal("Destroy() = false for a live entity")
	}
	if w.Positions.Has(e) || w.Extents.Has(e) || w.Obstacles.Has(e) || w.HorizontalVelocities.Has(e) {
		t.Error("destroyed entity still carries components")
	}
	if _, ok := w.Box(e); ok {
		t.Error("Box() resolved a destroyed entity")
	}
	if w.Destroy(e) {
		t.Error("Destroy() = true twice for the same handle")
	}

	box, ok := w.Box(keep)
	if !ok {
		t.Fatal("Box() lost the surviving entity")
	}
	if box.Center.X != 30 {
		t.Errorf("surviving center x = %v, expected 30", box.Center.X)
	}
	if w.Len() != 1 {
		t.Errorf("Len() = %d, expected 1", w.Len())
	}
}
