package grid

import (
	"testing"

	"github.com/uascommand/mission-system/pkg/geo"
)

func TestBoundsContains(t *testing.T) {
	b := Bounds{XMin: -5, XMax: 5, YMin: -5, YMax: 5}
	if !b.Contains(Cell{0, 0}) {
		t.Fatalf("expected origin inside bounds")
	}
	if b.Contains(Cell{6, 0}) {
		t.Fatalf("expected cell outside XMax to be excluded")
	}
}

func TestBoundsArea(t *testing.T) {
	b := Bounds{XMin: 0, XMax: 9, YMin: 0, YMax: 9}
	if a := b.Area(); a != 100 {
		t.Fatalf("expected 100 cells, got %d", a)
	}
}

func TestRasterizeNoSafetyMargin(t *testing.T) {
	obstacles := []Obstacle{{CenterI: 0, CenterJ: 0, Radius: 3}}
	bounds := Bounds{XMin: -10, XMax: 10, YMin: -10, YMax: 10}
	blocked := Rasterize(obstacles, bounds)

	if !blocked.Blocked(Cell{3, 0}) {
		t.Fatalf("expected cell exactly at radius to be blocked")
	}
	if blocked.Blocked(Cell{4, 0}) {
		t.Fatalf("expected cell just beyond radius to be free")
	}
}

func TestRasterizeClipsToBounds(t *testing.T) {
	obstacles := []Obstacle{{CenterI: 0, CenterJ: 0, Radius: 100}}
	bounds := Bounds{XMin: -2, XMax: 2, YMin: -2, YMax: 2}
	blocked := Rasterize(obstacles, bounds)

	for c := range blocked {
		if !bounds.Contains(c) {
			t.Fatalf("rasterize produced a cell outside bounds: %+v", c)
		}
	}
}

func TestInflateJammer(t *testing.T) {
	o := InflateJammer(geo.Point2{X: 10, Y: 20}, 50, 0.0001, 2)
	if o.CenterI != 20 || o.CenterJ != 40 {
		t.Fatalf("expected scaled center (20,40), got (%f,%f)", o.CenterI, o.CenterJ)
	}
	wantRadius := 50 * 0.0001 * 2
	if o.Radius != wantRadius {
		t.Fatalf("expected radius %f, got %f", wantRadius, o.Radius)
	}
}

func TestRoundCell(t *testing.T) {
	c := RoundCell(3.6, -3.6)
	if c.I != 4 || c.J != -4 {
		t.Fatalf("expected (4,-4), got %+v", c)
	}
}

func TestNearestFreeCellReturnsStartWhenFree(t *testing.T) {
	blocked := BlockedSet{}
	bounds := Bounds{XMin: -10, XMax: 10, YMin: -10, YMax: 10}
	c := NearestFreeCell(Cell{0, 0}, blocked, bounds, 5)
	if c != (Cell{0, 0}) {
		t.Fatalf("expected unchanged free cell, got %+v", c)
	}
}

func TestNearestFreeCellSpiralsOutward(t *testing.T) {
	blocked := BlockedSet{
		{0, 0}: {},
		{1, 0}: {}, {-1, 0}: {}, {0, 1}: {}, {0, -1}: {},
		{1, 1}: {}, {1, -1}: {}, {-1, 1}: {}, {-1, -1}: {},
	}
	bounds := Bounds{XMin: -10, XMax: 10, YMin: -10, YMax: 10}
	c := NearestFreeCell(Cell{0, 0}, blocked, bounds, 5)
	if blocked.Blocked(c) {
		t.Fatalf("expected a free cell, got blocked cell %+v", c)
	}
	// ring 1 is fully blocked, so the repaired cell must lie at Chebyshev distance 2.
	if abs(c.I) > 2 || abs(c.J) > 2 || (abs(c.I) < 2 && abs(c.J) < 2) {
		t.Fatalf("expected repaired cell on the radius-2 ring, got %+v", c)
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func TestNearestFreeCellGivesUpPastMaxRadius(t *testing.T) {
	bounds := Bounds{XMin: -1, XMax: 1, YMin: -1, YMax: 1}
	blocked := BlockedSet{}
	for i := -1; i <= 1; i++ {
		for j := -1; j <= 1; j++ {
			blocked[Cell{i, j}] = struct{}{}
		}
	}
	c := NearestFreeCell(Cell{0, 0}, blocked, bounds, 1)
	if c != (Cell{0, 0}) {
		t.Fatalf("expected original cell returned when repair radius is exhausted, got %+v", c)
	}
}
