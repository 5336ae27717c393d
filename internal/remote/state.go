package remote

// State is the connection state of a Mirror.
type State int

const (
	// StateDisconnected is the initial state and the state after Stop.
	StateDisconnected State = iota
	// StateConnecting means the relay is being dialed and health checked.
	StateConnecting
	// StateConnected means the subscription is open and pushes are sent.
	StateConnected
	// StateError means the last Start or subscription failed. It behaves as
	// StateDisconnected; nothing is retried.
	StateError
)

func (s State) String() string {
	switch s {
	case StateDisconnected:
		return "disconnected"
	case StateConnecting:
		return "connecting"
	case StateConnected:
		return "connected"
	case StateError:
		return "error"
	default:
		return "unknown"
	}
}

// Status is the coarse connectivity shown to users.
type Status string

const (
	StatusLocal Status = "local"
	StatusCloud Status = "cloud"
)

// Status maps the state to what users see: cloud only while connected.
func (s State) Status() Status {
	if s == StateConnected {
		return StatusCloud
	}

	return StatusLocal
}
