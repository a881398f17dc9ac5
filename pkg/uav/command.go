package uav

import "math"

// CommandName enumerates the recognized UAV commands.
type CommandName string

const (
	CommandArm     CommandName = "arm"
	CommandDisarm  CommandName = "disarm"
	CommandTakeoff CommandName = "takeoff"
	CommandLand    CommandName = "land"
	CommandMove    CommandName = "move"
	CommandRotate  CommandName = "rotate"
	CommandGoto    CommandName = "goto"
)

// Command is an inbound instruction with named parameters.
type Command struct {
	Name   CommandName
	Params map[string]float64
}

// CommandResponse reports whether a command took effect.
type CommandResponse struct {
	Command CommandName
	Success bool
	Message string
}

// groundThreshold is the altitude below which a UAV is considered on the
// ground for arm/disarm preconditions.
const groundThreshold = 0.1

// HandleCommand applies cmd to s per the UAV's command transition table.
// Unknown commands and precondition failures return success=false with no
// state change: command failures never abort the caller.
func (s *State) HandleCommand(cmd Command) CommandResponse {
	switch cmd.Name {
	case CommandArm:
		return s.handleArm()
	case CommandDisarm:
		return s.handleDisarm()
	case CommandTakeoff:
		return s.handleTakeoff(cmd.Params)
	case CommandLand:
		return s.handleLand()
	case CommandMove:
		return s.handleMove(cmd.Params)
	case CommandRotate:
		return s.handleRotate(cmd.Params)
	case CommandGoto:
		return s.handleGoto(cmd.Params)
	default:
		return CommandResponse{Command: cmd.Name, Success: false, Message: "unknown command: " + string(cmd.Name)}
	}
}

func (s *State) handleArm() CommandResponse {
	if !s.Armed && s.Position.Z < groundThreshold {
		s.Armed = true
		s.Status = StatusArmed
		return CommandResponse{Command: CommandArm, Success: true, Message: "UAV armed"}
	}
	return CommandResponse{Command: CommandArm, Success: false, Message: "cannot arm (already armed or not on ground)"}
}

func (s *State) handleDisarm() CommandResponse {
	if s.Armed && s.Position.Z < groundThreshold {
		s.Armed = false
		s.Status = StatusIdle
		return CommandResponse{Command: CommandDisarm, Success: true, Message: "UAV disarmed"}
	}
	return CommandResponse{Command: CommandDisarm, Success: false, Message: "cannot disarm (not on ground or not armed)"}
}

func (s *State) handleTakeoff(params map[string]float64) CommandResponse {
	if s.Armed && s.Status == StatusArmed {
		altitude := paramOr(params, "altitude", 10)
		s.Status = StatusFlying
		s.Target = &Vector3{X: s.Position.X, Y: s.Position.Y, Z: altitude}
		return CommandResponse{Command: CommandTakeoff, Success: true, Message: "taking off"}
	}
	return CommandResponse{Command: CommandTakeoff, Success: false, Message: "cannot takeoff (not armed or already flying)"}
}

func (s *State) handleLand() CommandResponse {
	if s.Status == StatusFlying {
		s.Status = StatusLanding
		s.Target = &Vector3{X: s.Position.X, Y: s.Position.Y, Z: 0}
		return CommandResponse{Command: CommandLand, Success: true, Message: "landing initiated"}
	}
	return CommandResponse{Command: CommandLand, Success: false, Message: "cannot land (not flying)"}
}

func (s *State) handleMove(params map[string]float64) CommandResponse {
	if s.Status == StatusFlying {
		dx := paramOr(params, "dx", 0)
		dy := paramOr(params, "dy", 0)
		dz := paramOr(params, "dz", 0)
		s.Target = &Vector3{
			X: s.Position.X + dx,
			Y: s.Position.Y + dy,
			Z: math.Max(0, s.Position.Z+dz),
		}
		return CommandResponse{Command: CommandMove, Success: true, Message: "moving"}
	}
	return CommandResponse{Command: CommandMove, Success: false, Message: "cannot move (not flying)"}
}

func (s *State) handleRotate(params map[string]float64) CommandResponse {
	if s.Status == StatusFlying {
		yawChange := paramOr(params, "yaw", 0)
		yaw := math.Mod(s.Orientation.Yaw+yawChange, 360)
		if yaw < 0 {
			yaw += 360
		}
		s.Orientation.Yaw = yaw
		return CommandResponse{Command: CommandRotate, Success: true, Message: "rotating"}
	}
	return CommandResponse{Command: CommandRotate, Success: false, Message: "cannot rotate (not flying)"}
}

func (s *State) handleGoto(params map[string]float64) CommandResponse {
	if s.Status == StatusFlying {
		x := paramOr(params, "x", s.Position.X)
		y := paramOr(params, "y", s.Position.Y)
		z := paramOr(params, "z", s.Position.Z)
		s.Target = &Vector3{X: x, Y: y, Z: math.Max(0, z)}
		return CommandResponse{Command: CommandGoto, Success: true, Message: "going to position"}
	}
	return CommandResponse{Command: CommandGoto, Success: false, Message: "cannot goto (not flying)"}
}

func paramOr(params map[string]float64, key string, fallback float64) float64 {
	if v, ok := params[key]; ok {
		return v
	}
	return fallback
}
