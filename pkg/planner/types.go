// Package planner orchestrates the grid A* path planner end to end: scale
// recovery, obstacle rasterization, endpoint repair, search, smoothing, and
// reprojection back to lat/lng.
package planner

import "github.com/uascommand/mission-system/pkg/geo"

// Endpoint is an origin or target.
type Endpoint struct {
	ID  string
	Geo *geo.GeoPoint
	XY  *geo.Point2
}

// Jammer is a circular RF exclusion zone. Radius is in meters.
type Jammer struct {
	ID     string
	Center geo.Point2
	Radius float64
	Geo    *geo.GeoPoint
}

// Waypoint is a single point along a trajectory.
type Waypoint struct {
	X, Y   float64
	Alt    float64
	Geo    *geo.GeoPoint
	HasGeo bool
}

// Stats summarizes a trajectory.
type Stats struct {
	TotalWaypoints int
	PathLength     float64
	StepsInJammer  int
}

// Trajectory is a planned path from one origin to one target.
type Trajectory struct {
	OriginID  string
	TargetID  string
	Waypoints []Waypoint
	Stats     Stats
}

// Mission is a planning request: paired origins/targets and shared jammers.
type Mission struct {
	Origins []Endpoint
	Targets []Endpoint
	Jammers []Jammer
}

// Result is the outcome of planning a Mission.
type Result struct {
	Trajectories     []Trajectory
	NumTrajectories  int
	JammersConsidered int
	ScaleFactor      float64 // coordinate units per meter, pinned to the last pair in request order
	MetersPerCoord   float64
}
