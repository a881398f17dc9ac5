package planner

import (
	"encoding/json"
	"io"

	"github.com/uascommand/mission-system/pkg/geo"
)

// The wire shapes below define the /plan request and response bodies, so
// both the HTTP API and the CLI's file-based planning mode share one JSON
// schema.

type endpointWire struct {
	ID  string   `json:"id"`
	Lat *float64 `json:"lat"`
	Lng *float64 `json:"lng"`
	X   *float64 `json:"x"`
	Y   *float64 `json:"y"`
}

type jammerWire struct {
	ID     string   `json:"id"`
	X      float64  `json:"x"`
	Y      float64  `json:"y"`
	Radius float64  `json:"radius"`
	Lat    *float64 `json:"lat"`
	Lng    *float64 `json:"lng"`
}

type missionWire struct {
	Origins []endpointWire `json:"origins"`
	Targets []endpointWire `json:"targets"`
	Jammers []jammerWire   `json:"jammers"`
}

// WaypointWire is a single reprojected trajectory point in /plan's response.
type WaypointWire struct {
	X   float64  `json:"x"`
	Y   float64  `json:"y"`
	Alt float64  `json:"alt"`
	Lat *float64 `json:"lat,omitempty"`
	Lng *float64 `json:"lng,omitempty"`
}

// StatsWire mirrors Stats in /plan's response.
type StatsWire struct {
	TotalWaypoints int     `json:"total_waypoints"`
	PathLength     float64 `json:"path_length"`
	StepsInJammer  int     `json:"steps_in_jammer"`
}

// TrajectoryWire mirrors Trajectory in /plan's response.
type TrajectoryWire struct {
	OriginID  string         `json:"origin_id"`
	TargetID  string         `json:"target_id"`
	Waypoints []WaypointWire `json:"waypoints"`
	Stats     StatsWire      `json:"stats"`
}

// ResultWire is the full /plan response body.
type ResultWire struct {
	Trajectories      []TrajectoryWire `json:"trajectories"`
	NumTrajectories   int              `json:"num_trajectories"`
	JammersConsidered int              `json:"jammers_considered"`
	Algorithm         string           `json:"algorithm"`
	ScaleFactor       float64          `json:"scale_factor"`
	MetersPerCoord    float64          `json:"meters_per_coord"`
}

// DecodeMission reads a /plan request body into a Mission.
func DecodeMission(r io.Reader) (Mission, error) {
	var wire missionWire
	if err := json.NewDecoder(r).Decode(&wire); err != nil {
		return Mission{}, err
	}

	return Mission{
		Origins: decodeEndpoints(wire.Origins),
		Targets: decodeEndpoints(wire.Targets),
		Jammers: decodeJammers(wire.Jammers),
	}, nil
}

func decodeEndpoints(wire []endpointWire) []Endpoint {
	out := make([]Endpoint, 0, len(wire))
	for _, e := range wire {
		ep := Endpoint{ID: e.ID}
		if e.X != nil && e.Y != nil {
			xy := geo.Point2{X: *e.X, Y: *e.Y}
			ep.XY = &xy
		}
		if e.Lat != nil && e.Lng != nil {
			g := geo.GeoPoint{Lat: *e.Lat, Lng: *e.Lng}
			ep.Geo = &g
		}
		out = append(out, ep)
	}
	return out
}

func decodeJammers(wire []jammerWire) []Jammer {
	out := make([]Jammer, 0, len(wire))
	for _, j := range wire {
		jammer := Jammer{
			ID:     j.ID,
			Center: geo.Point2{X: j.X, Y: j.Y},
			Radius: j.Radius,
		}
		if j.Lat != nil && j.Lng != nil {
			g := geo.GeoPoint{Lat: *j.Lat, Lng: *j.Lng}
			jammer.Geo = &g
		}
		out = append(out, jammer)
	}
	return out
}

// EncodeResult converts a planner Result into its wire representation.
func EncodeResult(result *Result) ResultWire {
	trajectories := make([]TrajectoryWire, 0, len(result.Trajectories))
	for _, t := range result.Trajectories {
		waypoints := make([]WaypointWire, 0, len(t.Waypoints))
		for _, wp := range t.Waypoints {
			w := WaypointWire{X: wp.X, Y: wp.Y, Alt: wp.Alt}
			if wp.HasGeo {
				lat, lng := wp.Geo.Lat, wp.Geo.Lng
				w.Lat, w.Lng = &lat, &lng
			}
			waypoints = append(waypoints, w)
		}
		trajectories = append(trajectories, TrajectoryWire{
			OriginID:  t.OriginID,
			TargetID:  t.TargetID,
			Waypoints: waypoints,
			Stats: StatsWire{
				TotalWaypoints: t.Stats.TotalWaypoints,
				PathLength:     t.Stats.PathLength,
				StepsInJammer:  t.Stats.StepsInJammer,
			},
		})
	}

	return ResultWire{
		Trajectories:      trajectories,
		NumTrajectories:   result.NumTrajectories,
		JammersConsidered: result.JammersConsidered,
		Algorithm:         "A* pathfinding",
		ScaleFactor:       result.ScaleFactor,
		MetersPerCoord:    result.MetersPerCoord,
	}
}
