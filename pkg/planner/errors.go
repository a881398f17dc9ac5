package planner

import "errors"

// ErrNoOrigins and ErrNoTargets are request-level validation failures: the
// whole request is rejected, no partial work is done.
var (
	ErrNoOrigins = errors.New("no origins provided")
	ErrNoTargets = errors.New("no targets provided")
)

// MissingPoint2Error reports that an endpoint in a pair that would otherwise
// be planned lacks planar coordinates. It is a request-level validation
// failure, grouped with ErrNoOrigins/ErrNoTargets.
type MissingPoint2Error struct {
	EndpointID string
	Role       string // "origin" or "target"
}

func (e *MissingPoint2Error) Error() string {
	return e.Role + " " + e.EndpointID + " is missing planar (x,y) coordinates"
}

// GridTooLargeError reports that a pair's scaled grid bounds exceed the
// configured cell budget.
type GridTooLargeError struct {
	Cells, Limit int
}

func (e *GridTooLargeError) Error() string {
	return "grid bounds too large for planning"
}

// infeasibleError marks a pair that the planner could not route: the pair is
// skipped with a warning, the rest of the request proceeds.
type infeasibleError struct {
	reason string
}

func (e *infeasibleError) Error() string { return e.reason }
