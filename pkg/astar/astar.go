// Package astar implements 8-connected grid A* search.
package astar

import (
	"container/heap"
	"math"

	"github.com/uascommand/mission-system/pkg/grid"
)

// sqrt2 is the diagonal edge cost.
const sqrt2 = math.Sqrt2

// neighborOffsets lists the 8 grid neighbors in a fixed order so that, combined
// with the heap's insertion-order tie-break, the search is fully deterministic:
// identical inputs always expand nodes in the same order.
var neighborOffsets = [8][2]int{
	{0, 1}, {0, -1}, {1, 0}, {-1, 0},
	{1, 1}, {1, -1}, {-1, 1}, {-1, -1},
}

type node struct {
	f, g    float64
	seq     int
	cell    grid.Cell
	heapIdx int
}

type openHeap []*node

func (h openHeap) Len() int { return len(h) }
func (h openHeap) Less(i, j int) bool {
	if h[i].f != h[j].f {
		return h[i].f < h[j].f
	}
	if h[i].g != h[j].g {
		return h[i].g < h[j].g
	}
	return h[i].seq < h[j].seq
}
func (h openHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].heapIdx = i
	h[j].heapIdx = j
}
func (h *openHeap) Push(x interface{}) {
	n := x.(*node)
	n.heapIdx = len(*h)
	*h = append(*h, n)
}
func (h *openHeap) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*h = old[:n-1]
	return item
}

func heuristic(a, b grid.Cell) float64 {
	dx := float64(a.I - b.I)
	dy := float64(a.J - b.J)
	return math.Sqrt(dx*dx + dy*dy)
}

// Search runs A* from start to goal over the free cells of bounds (cells in
// blocked are excluded from the graph). It returns the path including both
// endpoints, or (nil, false) if the open set drains without reaching goal.
//
// Tie-breaking on equal f uses g, then strict FIFO insertion order, so that
// repeated runs on identical inputs produce byte-identical paths.
func Search(start, goal grid.Cell, blocked grid.BlockedSet, bounds grid.Bounds) ([]grid.Cell, bool) {
	if start == goal {
		return []grid.Cell{start}, true
	}

	open := &openHeap{}
	heap.Init(open)

	gScore := map[grid.Cell]float64{start: 0}
	cameFrom := map[grid.Cell]grid.Cell{}
	closed := map[grid.Cell]bool{}

	seq := 0
	push := func(cell grid.Cell, g float64) {
		heap.Push(open, &node{
			f:    g + heuristic(cell, goal),
			g:    g,
			seq:  seq,
			cell: cell,
		})
		seq++
	}
	push(start, 0)

	for open.Len() > 0 {
		current := heap.Pop(open).(*node)

		if closed[current.cell] {
			continue
		}

		if current.cell == goal {
			return reconstruct(cameFrom, start, goal), true
		}

		closed[current.cell] = true

		for _, off := range neighborOffsets {
			neighbor := grid.Cell{I: current.cell.I + off[0], J: current.cell.J + off[1]}

			if !bounds.Contains(neighbor) || closed[neighbor] || blocked.Blocked(neighbor) {
				continue
			}

			edgeCost := 1.0
			if off[0] != 0 && off[1] != 0 {
				edgeCost = sqrt2
			}

			tentativeG := current.g + edgeCost

			if existing, ok := gScore[neighbor]; !ok || tentativeG < existing {
				gScore[neighbor] = tentativeG
				cameFrom[neighbor] = current.cell
				push(neighbor, tentativeG)
			}
		}
	}

	return nil, false
}

func reconstruct(cameFrom map[grid.Cell]grid.Cell, start, goal grid.Cell) []grid.Cell {
	path := []grid.Cell{goal}
	current := goal
	for current != start {
		prev, ok := cameFrom[current]
		if !ok {
			break
		}
		path = append(path, prev)
		current = prev
	}

	// reverse in place
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}
