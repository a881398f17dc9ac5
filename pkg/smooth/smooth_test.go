package smooth

import (
	"testing"

	"github.com/uascommand/mission-system/pkg/grid"
)

func TestBresenhamCellsIncludesEndpoints(t *testing.T) {
	cells := BresenhamCells(grid.Cell{0, 0}, grid.Cell{5, 0})
	if cells[0] != (grid.Cell{0, 0}) || cells[len(cells)-1] != (grid.Cell{5, 0}) {
		t.Fatalf("expected endpoints included, got %+v", cells)
	}
	if len(cells) != 6 {
		t.Fatalf("expected 6 cells along a horizontal run of 5, got %d", len(cells))
	}
}

func TestBresenhamCellsDiagonal(t *testing.T) {
	cells := BresenhamCells(grid.Cell{0, 0}, grid.Cell{3, 3})
	if len(cells) != 4 {
		t.Fatalf("expected 4 cells on a perfect diagonal, got %d: %+v", len(cells), cells)
	}
}

func TestLineOfSightBlockedByObstacle(t *testing.T) {
	blocked := grid.BlockedSet{{2, 0}: {}}
	if LineOfSight(grid.Cell{0, 0}, grid.Cell{4, 0}, blocked) {
		t.Fatalf("expected line of sight to be blocked")
	}
}

func TestLineOfSightClear(t *testing.T) {
	blocked := grid.BlockedSet{{2, 5}: {}}
	if !LineOfSight(grid.Cell{0, 0}, grid.Cell{4, 0}, blocked) {
		t.Fatalf("expected clear line of sight")
	}
}

func TestPathCollapsesStraightLine(t *testing.T) {
	path := []grid.Cell{{0, 0}, {1, 0}, {2, 0}, {3, 0}, {4, 0}}
	smoothed := Path(path, grid.BlockedSet{})
	if len(smoothed) != 2 {
		t.Fatalf("expected a straight unobstructed path to collapse to 2 waypoints, got %+v", smoothed)
	}
	if smoothed[0] != path[0] || smoothed[1] != path[len(path)-1] {
		t.Fatalf("expected endpoints preserved, got %+v", smoothed)
	}
}

func TestPathKeepsDetourAroundObstacle(t *testing.T) {
	path := []grid.Cell{{0, 0}, {1, 1}, {2, 0}, {3, 0}}
	blocked := grid.BlockedSet{{1, 0}: {}}
	smoothed := Path(path, blocked)
	if len(smoothed) < 3 {
		t.Fatalf("expected the detour vertex to survive smoothing, got %+v", smoothed)
	}
}

func TestPathEmpty(t *testing.T) {
	if got := Path(nil, grid.BlockedSet{}); len(got) != 0 {
		t.Fatalf("expected empty path to remain empty, got %+v", got)
	}
}
