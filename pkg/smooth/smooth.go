// Package smooth implements Bresenham line-of-sight string-pulling path
// smoothing.
package smooth

import "github.com/uascommand/mission-system/pkg/grid"

// BresenhamCells enumerates the integer grid cells along the line from a to b,
// inclusive of both endpoints, using the standard integer Bresenham algorithm.
func BresenhamCells(a, b grid.Cell) []grid.Cell {
	x0, y0 := a.I, a.J
	x1, y1 := b.I, b.J

	dx := abs(x1 - x0)
	sx := 1
	if x0 >= x1 {
		sx = -1
	}
	dy := -abs(y1 - y0)
	sy := 1
	if y0 >= y1 {
		sy = -1
	}
	err := dx + dy

	var cells []grid.Cell
	for {
		cells = append(cells, grid.Cell{I: x0, J: y0})
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
	return cells
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// LineOfSight reports whether every cell on the Bresenham segment from a to b is
// free of obstacles.
func LineOfSight(a, b grid.Cell, blocked grid.BlockedSet) bool {
	for _, c := range BresenhamCells(a, b) {
		if blocked.Blocked(c) {
			return false
		}
	}
	return true
}

// Path applies a string-pulling rule to an A* path, removing
// interior waypoints whenever a later waypoint is directly visible:
//
//	i ← 0; out ← [p0]
//	while i < n:
//	    j ← n
//	    while j > i+1 and segment(pi, pj) is not clear: j ← j - 1
//	    append pj to out; i ← j
func Path(path []grid.Cell, blocked grid.BlockedSet) []grid.Cell {
	if len(path) == 0 {
		return path
	}

	out := []grid.Cell{path[0]}
	n := len(path) - 1
	i := 0

	for i < n {
		j := n
		for j > i+1 && !LineOfSight(path[i], path[j], blocked) {
			j--
		}
		out = append(out, path[j])
		i = j
	}

	return out
}
