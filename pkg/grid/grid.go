// Package grid rasterizes jammer exclusion zones into blocked grid cells and
// repairs endpoints that land on a blocked cell.
package grid

import (
	"math"

	"github.com/uascommand/mission-system/pkg/geo"
)

// Cell is an integer grid coordinate obtained by rounding a scaled Point2.
type Cell struct {
	I, J int
}

// Bounds is an inclusive rectangle of grid cells.
type Bounds struct {
	XMin, XMax, YMin, YMax int
}

// Contains reports whether c lies within b, inclusive.
func (b Bounds) Contains(c Cell) bool {
	return c.I >= b.XMin && c.I <= b.XMax && c.J >= b.YMin && c.J <= b.YMax
}

// Area returns the number of cells enclosed by b.
func (b Bounds) Area() int {
	w := b.XMax - b.XMin + 1
	h := b.YMax - b.YMin + 1
	if w <= 0 || h <= 0 {
		return 0
	}
	return w * h
}

// Obstacle is a circular exclusion zone in scaled grid units, ready for
// rasterization.
type Obstacle struct {
	CenterI, CenterJ float64 // scaled grid-unit center
	Radius           float64 // scaled grid-unit radius
}

// BlockedSet is the set of grid cells that lie inside at least one obstacle.
type BlockedSet map[Cell]struct{}

// Blocked reports whether c is in the set.
func (s BlockedSet) Blocked(c Cell) bool {
	_, ok := s[c]
	return ok
}

// Rasterize builds the BlockedSet for a collection of scaled obstacles, clipped
// to bounds. A cell is blocked iff its Euclidean distance to the obstacle's
// scaled center is <= the obstacle's scaled radius; no safety margin is added
// beyond the raw radius.
func Rasterize(obstacles []Obstacle, bounds Bounds) BlockedSet {
	blocked := make(BlockedSet)

	for _, o := range obstacles {
		xmin := int(math.Floor(o.CenterI - o.Radius))
		xmax := int(math.Ceil(o.CenterI + o.Radius))
		ymin := int(math.Floor(o.CenterJ - o.Radius))
		ymax := int(math.Ceil(o.CenterJ + o.Radius))

		if xmin < bounds.XMin {
			xmin = bounds.XMin
		}
		if xmax > bounds.XMax {
			xmax = bounds.XMax
		}
		if ymin < bounds.YMin {
			ymin = bounds.YMin
		}
		if ymax > bounds.YMax {
			ymax = bounds.YMax
		}

		for x := xmin; x <= xmax; x++ {
			for y := ymin; y <= ymax; y++ {
				dx := float64(x) - o.CenterI
				dy := float64(y) - o.CenterJ
				if math.Sqrt(dx*dx+dy*dy) <= o.Radius {
					blocked[Cell{x, y}] = struct{}{}
				}
			}
		}
	}

	return blocked
}

// InflateJammer converts a jammer's metre radius and planar center into a
// scaled grid Obstacle: the radius in metres is converted to coordinate
// units via scaleFactor, then both center and radius are multiplied by
// gridScale.
func InflateJammer(center geo.Point2, radiusMeters, scaleFactor float64, gridScale int) Obstacle {
	radiusCoords := radiusMeters * scaleFactor
	return Obstacle{
		CenterI: center.X * float64(gridScale),
		CenterJ: center.Y * float64(gridScale),
		Radius:  radiusCoords * float64(gridScale),
	}
}

// RoundCell rounds a scaled Point2 to its nearest integer grid cell.
func RoundCell(x, y float64) Cell {
	return Cell{I: int(math.Round(x)), J: int(math.Round(y))}
}

// NearestFreeCell performs a concentric-ring spiral search: if start is
// already free it is returned unchanged; otherwise rings of increasing
// Chebyshev radius (up to maxRadius) are scanned in a fixed order — top and bottom
// rows first, then left and right columns excluding already-visited corners — and
// the first in-bounds free cell is returned. If nothing is found within maxRadius,
// the original (blocked) cell is returned.
func NearestFreeCell(start Cell, blocked BlockedSet, bounds Bounds, maxRadius int) Cell {
	if !blocked.Blocked(start) {
		return start
	}

	for r := 1; r <= maxRadius; r++ {
		for dx := -r; dx <= r; dx++ {
			for _, dy := range [2]int{-r, r} {
				c := Cell{start.I + dx, start.J + dy}
				if bounds.Contains(c) && !blocked.Blocked(c) {
					return c
				}
			}
		}
		for dy := -r + 1; dy <= r-1; dy++ {
			for _, dx := range [2]int{-r, r} {
				c := Cell{start.I + dx, start.J + dy}
				if bounds.Contains(c) && !blocked.Blocked(c) {
					return c
				}
			}
		}
	}

	return start
}
