package bus

import (
	"github.com/wagoodman/go-partybus"

	"github.com/licensegate/licensegate/event"
)

func Report(report string) {
	if len(report) == 0 {
		return
	}
	Publish(partybus.Event{
		Type:  event.CLIReport,
		Value: report,
	})
}

func Notify(message string) {
	Publish(partybus.Event{
		Type:  event.CLINotification,
		Value: message,
	})
}

// DependencyEvaluated announces the verdict for one dependency of an
// in-flight validation run.
func DependencyEvaluated(conflictID, outcome string, index, total int) {
	Publish(partybus.Event{
		Type:   event.DependencyEvaluated,
		Source: conflictID,
		Value: event.DependencyProgress{
			ConflictID: conflictID,
			Outcome:    outcome,
			Index:      index,
			Total:      total,
		},
	})
}
