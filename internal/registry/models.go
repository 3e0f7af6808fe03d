package registry

import "time"

// Status represents the lifecycle of a framework on this slave.
type Status string

const (
	StatusActive     Status = "active"
	StatusTerminated Status = "terminated"
)

// Framework is one job/application running (or finished) on the slave.
type Framework struct {
	ID           int64
	Name         string
	Executor     string
	Status       Status
	RegisteredAt time.Time
	UpdatedAt    time.Time
}

// Stats aggregates framework counts by status.
type Stats struct {
	Active     int
	Terminated int
}

// Total returns the number of frameworks the registry knows about.
func (s Stats) Total() int {
	return s.Active + s.Terminated
}
