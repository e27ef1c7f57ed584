package realtime

// Status is the lifecycle state of a Channel.
type Status int

const (
	StatusUninstantiated Status = iota
	StatusConnecting
	StatusOpen
	StatusClosing
	StatusClosed
)

// Severity tells a renderer how to colour a status.
type Severity string

const (
	SeverityDefault  Severity = "default"
	SeverityInfo     Severity = "info"
	SeverityPositive Severity = "positive"
	SeverityNegative Severity = "negative"
)

var transitions = map[Status][]Status{
	StatusUninstantiated: {StatusConnecting},
	StatusConnecting:     {StatusOpen, StatusClosed},
	StatusOpen:           {StatusClosing, StatusClosed},
	StatusClosing:        {StatusClosed},
	StatusClosed:         {StatusConnecting},
}

// CanTransition reports whether a channel may move from one status to
// another. Closed never leads to Open without passing through Connecting.
func CanTransition(from, to Status) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

func (s Status) String() string {
	switch s {
	case StatusUninstantiated:
		return "uninstantiated"
	case StatusConnecting:
		return "connecting"
	case StatusOpen:
		return "open"
	case StatusClosing:
		return "closing"
	case StatusClosed:
		return "closed"
	default:
		return "unknown"
	}
}

// Label is the user-facing text of the status.
func (s Status) Label() string {
	switch s {
	case StatusUninstantiated:
		return "Not started"
	case StatusConnecting:
		return "Connecting..."
	case StatusOpen:
		return "Connected"
	case StatusClosing:
		return "Closing..."
	case StatusClosed:
		return "Disconnected"
	default:
		return "Unknown"
	}
}

func (s Status) Severity() Severity {
	switch s {
	case StatusConnecting, StatusClosing:
		return SeverityInfo
	case StatusOpen:
		return SeverityPositive
	case StatusClosed:
		return SeverityNegative
	default:
		return SeverityDefault
	}
}
