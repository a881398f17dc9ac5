package planner

import (
	"errors"
	"testing"

	"github.com/uascommand/mission-system/pkg/geo"
	"github.com/uascommand/mission-system/pkg/grid"
)

func xy(x, y float64) *geo.Point2 {
	p := geo.Point2{X: x, Y: y}
	return &p
}

func TestPlanRejectsEmptyOrigins(t *testing.T) {
	_, err := Plan(Mission{Targets: []Endpoint{{ID: "t1", XY: xy(0, 0)}}}, DefaultLimits)
	if !errors.Is(err, ErrNoOrigins) {
		t.Fatalf("expected ErrNoOrigins, got %v", err)
	}
}

func TestPlanRejectsEmptyTargets(t *testing.T) {
	_, err := Plan(Mission{Origins: []Endpoint{{ID: "o1", XY: xy(0, 0)}}}, DefaultLimits)
	if !errors.Is(err, ErrNoTargets) {
		t.Fatalf("expected ErrNoTargets, got %v", err)
	}
}

func TestPlanRejectsMissingPoint2(t *testing.T) {
	mission := Mission{
		Origins: []Endpoint{{ID: "o1"}},
		Targets: []Endpoint{{ID: "t1", XY: xy(10, 10)}},
	}
	_, err := Plan(mission, DefaultLimits)
	var missing *MissingPoint2Error
	if !errors.As(err, &missing) {
		t.Fatalf("expected MissingPoint2Error, got %v", err)
	}
	if missing.EndpointID != "o1" || missing.Role != "origin" {
		t.Fatalf("unexpected error detail: %+v", missing)
	}
}

func TestPlanStraightLineNoObstacles(t *testing.T) {
	mission := Mission{
		Origins: []Endpoint{{ID: "o1", XY: xy(0, 0)}},
		Targets: []Endpoint{{ID: "t1", XY: xy(10, 0)}},
	}
	result, err := Plan(mission, DefaultLimits)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.NumTrajectories != 1 {
		t.Fatalf("expected 1 trajectory, got %d", result.NumTrajectories)
	}
	traj := result.Trajectories[0]
	if traj.OriginID != "o1" || traj.TargetID != "t1" {
		t.Fatalf("unexpected pairing: %+v", traj)
	}
	first, last := traj.Waypoints[0], traj.Waypoints[len(traj.Waypoints)-1]
	if first.X != 0 || first.Y != 0 {
		t.Fatalf("expected path to start exactly at origin, got (%f,%f)", first.X, first.Y)
	}
	if last.X != 10 || last.Y != 0 {
		t.Fatalf("expected path to end exactly at target, got (%f,%f)", last.X, last.Y)
	}
	// a clear straight line should smooth to just the two endpoints
	if len(traj.Waypoints) != 2 {
		t.Fatalf("expected smoothing to collapse to 2 waypoints, got %d", len(traj.Waypoints))
	}
}

func TestPlanRoutesAroundJammer(t *testing.T) {
	// Absent a geo pair, ScaleFactor falls back to a fixed 0.0001 coordinate
	// units per meter, so a jammer's meter radius must be scaled up
	// accordingly to occupy a meaningful footprint on the coordinate grid;
	// here 50000m * 0.0001 = 5 coordinate units.
	mission := Mission{
		Origins: []Endpoint{{ID: "o1", XY: xy(0, 0)}},
		Targets: []Endpoint{{ID: "t1", XY: xy(20, 0)}},
		Jammers: []Jammer{{ID: "j1", Center: geo.Point2{X: 10, Y: 0}, Radius: 50000}},
	}
	result, err := Plan(mission, DefaultLimits)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.NumTrajectories != 1 {
		t.Fatalf("expected 1 trajectory, got %d", result.NumTrajectories)
	}
	traj := result.Trajectories[0]
	if traj.Stats.StepsInJammer != 0 {
		t.Fatalf("expected 0 waypoints inside the jammer zone (no geo pair tracked), got %d", traj.Stats.StepsInJammer)
	}
	if len(traj.Waypoints) < 3 {
		t.Fatalf("expected a detour around the jammer, got %d waypoints: %+v", len(traj.Waypoints), traj.Waypoints)
	}
	radiusCoords := 50000 * result.ScaleFactor
	for _, wp := range traj.Waypoints {
		d := geo.Euclidean(geo.Point2{X: 10, Y: 0}, geo.Point2{X: wp.X, Y: wp.Y})
		if d < radiusCoords {
			t.Fatalf("waypoint (%f,%f) lies inside the jammer radius", wp.X, wp.Y)
		}
	}
}

func TestPlanPairsShorterOfOriginsAndTargets(t *testing.T) {
	mission := Mission{
		Origins: []Endpoint{{ID: "o1", XY: xy(0, 0)}, {ID: "o2", XY: xy(100, 100)}},
		Targets: []Endpoint{{ID: "t1", XY: xy(5, 5)}},
	}
	result, err := Plan(mission, DefaultLimits)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.NumTrajectories != 1 {
		t.Fatalf("expected 1 trajectory (min of origins/targets), got %d", result.NumTrajectories)
	}
	if result.Trajectories[0].OriginID != "o1" {
		t.Fatalf("expected first origin to be paired, got %s", result.Trajectories[0].OriginID)
	}
}

func TestPlanIsDeterministicAcrossRuns(t *testing.T) {
	mission := Mission{
		Origins: []Endpoint{{ID: "o1", XY: xy(0, 0)}, {ID: "o2", XY: xy(0, 10)}},
		Targets: []Endpoint{{ID: "t1", XY: xy(20, 0)}, {ID: "t2", XY: xy(20, 10)}},
		Jammers: []Jammer{{ID: "j1", Center: geo.Point2{X: 10, Y: 5}, Radius: 8}},
	}

	first, err := Plan(mission, DefaultLimits)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := Plan(mission, DefaultLimits)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if first.NumTrajectories != second.NumTrajectories {
		t.Fatalf("trajectory counts differ across runs: %d vs %d", first.NumTrajectories, second.NumTrajectories)
	}
	for i := range first.Trajectories {
		a, b := first.Trajectories[i], second.Trajectories[i]
		if a.OriginID != b.OriginID || a.TargetID != b.TargetID {
			t.Fatalf("pairing order differs across runs at index %d", i)
		}
		if len(a.Waypoints) != len(b.Waypoints) {
			t.Fatalf("waypoint count differs across runs for pair %d: %d vs %d", i, len(a.Waypoints), len(b.Waypoints))
		}
		for j := range a.Waypoints {
			if a.Waypoints[j] != b.Waypoints[j] {
				t.Fatalf("waypoint %d of pair %d differs across runs: %+v vs %+v", j, i, a.Waypoints[j], b.Waypoints[j])
			}
		}
	}
}

func TestPlanSkipsInfeasiblePairButKeepsOthers(t *testing.T) {
	// o1->t1 sits exactly on the jammer's center. The jammer's radius is 360
	// coordinate units (720 grid cells at GridScale=2), while the farthest cell
	// of the last repair ring (radius 500) is a corner about 708 grid cells
	// away, so every repair candidate is blocked and the pair is infeasible.
	// o2->t2 sits far enough away (distance 600 > radius 360) to stay clear.
	mission := Mission{
		Origins: []Endpoint{{ID: "o1", XY: xy(0, 0)}, {ID: "o2", XY: xy(0, 600)}},
		Targets: []Endpoint{{ID: "t1", XY: xy(1, 0)}, {ID: "t2", XY: xy(1, 600)}},
		Jammers: []Jammer{{ID: "j1", Center: geo.Point2{X: 0, Y: 0}, Radius: 3_600_000}},
	}
	result, err := Plan(mission, DefaultLimits)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.NumTrajectories != 1 {
		t.Fatalf("expected only the clear pair to survive, got %d trajectories", result.NumTrajectories)
	}
	if result.Trajectories[0].OriginID != "o2" {
		t.Fatalf("expected surviving pair to be o2->t2, got %s", result.Trajectories[0].OriginID)
	}
}

func TestPlanRejectsGridTooLarge(t *testing.T) {
	mission := Mission{
		Origins: []Endpoint{{ID: "o1", XY: xy(0, 0)}},
		Targets: []Endpoint{{ID: "t1", XY: xy(1_000_000, 1_000_000)}},
	}
	limits := Limits{GridScale: 2, MaxGridCells: 100, EndpointRepairRadius: 500}
	_, err := Plan(mission, limits)
	var tooLarge *GridTooLargeError
	if !errors.As(err, &tooLarge) {
		t.Fatalf("expected GridTooLargeError, got %v", err)
	}
}

func TestPlanRecoversScaleFactorFromGeoPair(t *testing.T) {
	// Two points 1 coordinate unit apart along X, and roughly 111km apart in
	// latitude (1 degree), so the recovered scale factor should reflect a very
	// small number of coordinate units per meter.
	originGeo := geo.GeoPoint{Lat: 0, Lng: 0}
	targetGeo := geo.GeoPoint{Lat: 1, Lng: 0}
	mission := Mission{
		Origins: []Endpoint{{ID: "o1", XY: xy(0, 0), Geo: &originGeo}},
		Targets: []Endpoint{{ID: "t1", XY: xy(1, 0), Geo: &targetGeo}},
	}
	result, err := Plan(mission, DefaultLimits)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.ScaleFactor <= 0 {
		t.Fatalf("expected a positive recovered scale factor, got %f", result.ScaleFactor)
	}
	// roughly 1 coordinate unit over ~111km means scale factor should be tiny
	if result.ScaleFactor > 0.01 {
		t.Fatalf("expected a small scale factor for widely separated geo pair, got %f", result.ScaleFactor)
	}
	if result.MetersPerCoord != 1.0/result.ScaleFactor {
		t.Fatalf("MetersPerCoord inconsistent with ScaleFactor: %f vs %f", result.MetersPerCoord, 1.0/result.ScaleFactor)
	}
}

func TestPlanEndpointsSnapToOriginalWhenFree(t *testing.T) {
	// Endpoints that don't land on a blocked cell should reappear in the
	// trajectory at their exact original (unrounded) coordinates.
	mission := Mission{
		Origins: []Endpoint{{ID: "o1", XY: xy(0.37, 0.12)}},
		Targets: []Endpoint{{ID: "t1", XY: xy(9.6, 0.44)}},
	}
	result, err := Plan(mission, DefaultLimits)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	traj := result.Trajectories[0]
	first := traj.Waypoints[0]
	if first.X != 0.37 || first.Y != 0.12 {
		t.Fatalf("expected origin snapped to exact coordinates, got (%f,%f)", first.X, first.Y)
	}
	last := traj.Waypoints[len(traj.Waypoints)-1]
	if last.X != 9.6 || last.Y != 0.44 {
		t.Fatalf("expected target snapped to exact coordinates, got (%f,%f)", last.X, last.Y)
	}
}

func TestPlanJammersConsideredReflectsAllJammers(t *testing.T) {
	// Both jammers sit close to the origin/target bounding box (well inside the
	// default ±50 coordinate-unit padding) so their presence doesn't push the
	// scaled grid past Limits.MaxGridCells.
	mission := Mission{
		Origins: []Endpoint{{ID: "o1", XY: xy(0, 0)}},
		Targets: []Endpoint{{ID: "t1", XY: xy(20, 0)}},
		Jammers: []Jammer{
			{ID: "j1", Center: geo.Point2{X: 5, Y: 5}, Radius: 0.001},
			{ID: "j2", Center: geo.Point2{X: 15, Y: -5}, Radius: 0.001},
		},
	}
	result, err := Plan(mission, DefaultLimits)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.JammersConsidered != 2 {
		t.Fatalf("expected JammersConsidered to count every jammer in the mission, got %d", result.JammersConsidered)
	}
}

func TestMaxGoroutinesCapsAtSixteen(t *testing.T) {
	if got := maxGoroutines(100); got != 16 {
		t.Fatalf("expected cap of 16, got %d", got)
	}
	if got := maxGoroutines(0); got != 1 {
		t.Fatalf("expected minimum of 1, got %d", got)
	}
	if got := maxGoroutines(5); got != 5 {
		t.Fatalf("expected passthrough for small n, got %d", got)
	}
}

func TestGridTooLargeErrorMessage(t *testing.T) {
	err := &GridTooLargeError{Cells: 500, Limit: 100}
	if err.Error() == "" {
		t.Fatalf("expected non-empty error message")
	}
}

// sanity check that grid.Obstacle/grid.Bounds wiring used by planPair behaves
// as planPair assumes: since a cell is blocked when its distance to the center
// is <= the radius, a zero-radius jammer centered on a cell blocks that one cell.
func TestZeroRadiusJammerBlocksOnlyCenterCell(t *testing.T) {
	bounds := grid.Bounds{XMin: -10, XMax: 10, YMin: -10, YMax: 10}
	obstacle := grid.InflateJammer(geo.Point2{X: 0, Y: 0}, 0, 1.0, 2)
	blocked := grid.Rasterize([]grid.Obstacle{obstacle}, bounds)
	if !blocked.Blocked(grid.Cell{I: 0, J: 0}) || len(blocked) != 1 {
		t.Fatalf("expected zero-radius jammer to block only its center cell, got %+v", blocked)
	}
}
