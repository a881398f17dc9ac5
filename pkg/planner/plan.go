package planner

import (
	"errors"

	"github.com/sourcegraph/conc/pool"

	"github.com/uascommand/mission-system/pkg/astar"
	"github.com/uascommand/mission-system/pkg/geo"
	"github.com/uascommand/mission-system/pkg/grid"
	"github.com/uascommand/mission-system/pkg/logger"
	"github.com/uascommand/mission-system/pkg/smooth"
)

// Limits bounds the grid the planner is willing to build, so that a
// pathological mission can't force an unbounded rasterization pass.
type Limits struct {
	GridScale            int
	MaxGridCells         int
	EndpointRepairRadius int
}

// DefaultLimits carries the reference grid scale and repair cap (GRID_SCALE=2,
// repair cap=500) plus a conservative grid-size ceiling.
var DefaultLimits = Limits{
	GridScale:            2,
	MaxGridCells:         4_000_000,
	EndpointRepairRadius: 500,
}

// pairOutcome is the per-pair result threaded back to the orchestrator.
type pairOutcome struct {
	trajectory  *Trajectory
	scaleFactor float64
	skipped     bool
}

// Plan runs the full planner pipeline over a Mission: pairing, scale
// recovery, rasterization, endpoint repair, A*, smoothing, and reprojection.
// Pairs are planned concurrently via a bounded worker pool since each pair is
// entirely request-local; infeasible pairs are skipped with a logged
// warning, while a pair whose grid would exceed Limits.MaxGridCells aborts
// the whole request.
func Plan(mission Mission, limits Limits) (*Result, error) {
	if len(mission.Origins) == 0 {
		return nil, ErrNoOrigins
	}
	if len(mission.Targets) == 0 {
		return nil, ErrNoTargets
	}

	n := len(mission.Origins)
	if len(mission.Targets) < n {
		n = len(mission.Targets)
	}

	for i := 0; i < n; i++ {
		if mission.Origins[i].XY == nil {
			return nil, &MissingPoint2Error{EndpointID: mission.Origins[i].ID, Role: "origin"}
		}
		if mission.Targets[i].XY == nil {
			return nil, &MissingPoint2Error{EndpointID: mission.Targets[i].ID, Role: "target"}
		}
	}

	outcomes := make([]pairOutcome, n)

	p := pool.New().WithErrors().WithMaxGoroutines(maxGoroutines(n))
	for i := 0; i < n; i++ {
		i := i
		p.Go(func() error {
			origin := mission.Origins[i]
			target := mission.Targets[i]

			traj, scaleFactor, err := planPair(origin, target, mission.Jammers, limits)
			var tooLarge *GridTooLargeError
			if errors.As(err, &tooLarge) {
				return err
			}
			if err != nil {
				logger.Warnf("planner: dropping pair %s->%s: %v", origin.ID, target.ID, err)
				outcomes[i] = pairOutcome{scaleFactor: scaleFactor, skipped: true}
				return nil
			}

			outcomes[i] = pairOutcome{trajectory: traj, scaleFactor: scaleFactor}
			return nil
		})
	}

	if err := p.Wait(); err != nil {
		return nil, err
	}

	result := &Result{JammersConsidered: len(mission.Jammers)}
	for i, o := range outcomes {
		if i == n-1 {
			// Scale is recovered per-pair; the aggregate response reports the
			// last pair's value, pinned to request order rather than
			// goroutine completion order so the result stays deterministic.
			result.ScaleFactor = o.scaleFactor
		}
		if !o.skipped && o.trajectory != nil {
			result.Trajectories = append(result.Trajectories, *o.trajectory)
		}
	}
	result.NumTrajectories = len(result.Trajectories)
	if result.ScaleFactor != 0 {
		result.MetersPerCoord = 1.0 / result.ScaleFactor
	}

	return result, nil
}

func maxGoroutines(n int) int {
	if n < 1 {
		return 1
	}
	if n > 16 {
		return 16
	}
	return n
}

// planPair runs scale recovery through reprojection for a single
// origin/target pair.
func planPair(origin, target Endpoint, jammers []Jammer, limits Limits) (*Trajectory, float64, error) {
	originXY := *origin.XY
	targetXY := *target.XY

	scaleFactor := geo.ScaleFactor(originXY, targetXY, origin.Geo, target.Geo)

	type inflated struct {
		jammer       Jammer
		radiusCoords float64
	}
	inflatedObstacles := make([]inflated, 0, len(jammers))
	for _, j := range jammers {
		inflatedObstacles = append(inflatedObstacles, inflated{
			jammer:       j,
			radiusCoords: j.Radius * scaleFactor,
		})
	}

	allX := []float64{originXY.X, targetXY.X}
	allY := []float64{originXY.Y, targetXY.Y}
	for _, io := range inflatedObstacles {
		allX = append(allX, io.jammer.Center.X-io.radiusCoords, io.jammer.Center.X+io.radiusCoords)
		allY = append(allY, io.jammer.Center.Y-io.radiusCoords, io.jammer.Center.Y+io.radiusCoords)
	}

	unscaled := grid.Bounds{
		XMin: floorInt(minOf(allX)) - 50,
		XMax: ceilInt(maxOf(allX)) + 50,
		YMin: floorInt(minOf(allY)) - 50,
		YMax: ceilInt(maxOf(allY)) + 50,
	}
	scaledBounds := grid.Bounds{
		XMin: unscaled.XMin * limits.GridScale,
		XMax: unscaled.XMax * limits.GridScale,
		YMin: unscaled.YMin * limits.GridScale,
		YMax: unscaled.YMax * limits.GridScale,
	}

	if cells := scaledBounds.Area(); cells > limits.MaxGridCells {
		return nil, scaleFactor, &GridTooLargeError{Cells: cells, Limit: limits.MaxGridCells}
	}

	obstacles := make([]grid.Obstacle, 0, len(jammers))
	for _, j := range jammers {
		obstacles = append(obstacles, grid.InflateJammer(j.Center, j.Radius, scaleFactor, limits.GridScale))
	}
	blocked := grid.Rasterize(obstacles, scaledBounds)

	originGrid := grid.RoundCell(originXY.X*float64(limits.GridScale), originXY.Y*float64(limits.GridScale))
	targetGrid := grid.RoundCell(targetXY.X*float64(limits.GridScale), targetXY.Y*float64(limits.GridScale))

	repairedStart := grid.NearestFreeCell(originGrid, blocked, scaledBounds, limits.EndpointRepairRadius)
	repairedGoal := grid.NearestFreeCell(targetGrid, blocked, scaledBounds, limits.EndpointRepairRadius)

	path, ok := astar.Search(repairedStart, repairedGoal, blocked, scaledBounds)
	if !ok {
		return nil, scaleFactor, &infeasibleError{reason: "no path found"}
	}

	path = smooth.Path(path, blocked)

	waypoints := make([]Waypoint, len(path))
	for i, cell := range path {
		x := float64(cell.I) / float64(limits.GridScale)
		y := float64(cell.J) / float64(limits.GridScale)

		wp := Waypoint{X: x, Y: y, Alt: 50.0}
		if origin.Geo != nil {
			g := geo.Reproject(originXY, *origin.Geo, geo.Point2{X: x, Y: y}, scaleFactor)
			wp.Geo = &g
			wp.HasGeo = true
		}
		waypoints[i] = wp
	}

	// Snapping: restore exact endpoint coordinates when the unrepaired cell
	// was free to begin with.
	if len(waypoints) > 0 {
		if !blocked.Blocked(originGrid) {
			waypoints[0].X = originXY.X
			waypoints[0].Y = originXY.Y
			if origin.Geo != nil {
				g := *origin.Geo
				waypoints[0].Geo = &g
				waypoints[0].HasGeo = true
			}
		}
		last := len(waypoints) - 1
		if !blocked.Blocked(targetGrid) {
			waypoints[last].X = targetXY.X
			waypoints[last].Y = targetXY.Y
			if target.Geo != nil {
				g := *target.Geo
				waypoints[last].Geo = &g
				waypoints[last].HasGeo = true
			}
		}
	}

	stats := computeStats(waypoints, origin, target, jammers)

	return &Trajectory{
		OriginID:  origin.ID,
		TargetID:  target.ID,
		Waypoints: waypoints,
		Stats:     stats,
	}, scaleFactor, nil
}

func computeStats(waypoints []Waypoint, origin, target Endpoint, jammers []Jammer) Stats {
	hasGeoPair := origin.Geo != nil && target.Geo != nil

	var pathLength float64
	for i := 0; i < len(waypoints)-1; i++ {
		a, b := waypoints[i], waypoints[i+1]
		if hasGeoPair && a.HasGeo && b.HasGeo {
			pathLength += geo.Haversine(*a.Geo, *b.Geo)
		} else if !hasGeoPair {
			pathLength += geo.Euclidean(geo.Point2{X: a.X, Y: a.Y}, geo.Point2{X: b.X, Y: b.Y})
		}
	}

	stepsInJammer := 0
	for _, wp := range waypoints {
		if !wp.HasGeo {
			continue
		}
		for _, j := range jammers {
			if j.Geo == nil {
				continue
			}
			if geo.Haversine(*wp.Geo, *j.Geo) <= j.Radius {
				stepsInJammer++
				break
			}
		}
	}

	return Stats{
		TotalWaypoints: len(waypoints),
		PathLength:     pathLength,
		StepsInJammer:  stepsInJammer,
	}
}
