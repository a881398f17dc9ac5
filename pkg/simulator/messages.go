package simulator

import "github.com/uascommand/mission-system/pkg/uav"

// CommandMessage is the inbound wire shape for a UAV command.
type CommandMessage struct {
	Type    string             `json:"type"`
	Command uav.CommandName    `json:"command"`
	Params  map[string]float64 `json:"params"`
}

// CommandResponseMessage is the outbound wire shape for a command's outcome.
type CommandResponseMessage struct {
	Type    string          `json:"type"`
	Command uav.CommandName `json:"command"`
	Success bool            `json:"success"`
	Message string          `json:"message"`
}

// vector3Wire mirrors uav.Vector3 with explicit JSON field names.
type vector3Wire struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// orientationWire mirrors uav.Orientation with explicit JSON field names.
type orientationWire struct {
	Pitch float64 `json:"pitch"`
	Roll  float64 `json:"roll"`
	Yaw   float64 `json:"yaw"`
}

// stateData is the body of a state_update message.
type stateData struct {
	Position    vector3Wire     `json:"position"`
	Velocity    vector3Wire     `json:"velocity"`
	Orientation orientationWire `json:"orientation"`
	Battery     float64         `json:"battery"`
	Status      uav.Status      `json:"status"`
	Armed       bool            `json:"armed"`
}

// StateUpdateMessage is the outbound wire shape of a UAV's state at one tick.
type StateUpdateMessage struct {
	Type      string    `json:"type"`
	Data      stateData `json:"data"`
	Timestamp string    `json:"timestamp"`
}

func newCommandResponseMessage(resp uav.CommandResponse) CommandResponseMessage {
	return CommandResponseMessage{
		Type:    "command_response",
		Command: resp.Command,
		Success: resp.Success,
		Message: resp.Message,
	}
}

func newStateUpdateMessage(s *uav.State, timestamp string) StateUpdateMessage {
	round2 := func(v float64) float64 {
		return float64(int(v*100+0.5)) / 100
	}
	return StateUpdateMessage{
		Type: "state_update",
		Data: stateData{
			Position:    vector3Wire{X: s.Position.X, Y: s.Position.Y, Z: s.Position.Z},
			Velocity:    vector3Wire{X: s.Velocity.X, Y: s.Velocity.Y, Z: s.Velocity.Z},
			Orientation: orientationWire{Pitch: s.Orientation.Pitch, Roll: s.Orientation.Roll, Yaw: s.Orientation.Yaw},
			Battery:     round2(s.Battery),
			Status:      s.Status,
			Armed:       s.Armed,
		},
		Timestamp: timestamp,
	}
}
