// Package event provides the event types published on the application bus.
package event

import (
	"github.com/wagoodman/go-partybus"

	"github.com/licensegate/licensegate/internal"
)

const (
	typePrefix    = internal.ApplicationName
	cliTypePrefix = typePrefix + "-cli"

	// DependencyEvaluated is emitted once per dependency during a
	// validation run.
	DependencyEvaluated partybus.EventType = typePrefix + "-dependency-evaluated"

	// CLIReport is the final report content, ready for presentation.
	CLIReport partybus.EventType = cliTypePrefix + "-report"

	// CLINotification is an ephemeral message for the user.
	CLINotification partybus.EventType = cliTypePrefix + "-notification"
)

// DependencyProgress is the payload of a DependencyEvaluated event.
type DependencyProgress struct {
	ConflictID string
	Outcome    string
	Index      int
	Total      int
}
