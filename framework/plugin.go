package framework

// Plugin is anything registered with Runner.Register. A plugin takes part in a run by
// implementing one or more of the hook interfaces below; hooks are called in the order in
// which plugins were registered.
type Plugin interface{}

// ItemCollectedHook is called once for every item, as soon as it is collected. It may modify
// the item, for instance to replace its NodeID.
type ItemCollectedHook interface {
	ItemCollected(item *Item)
}

// CollectionFinishHook is called after all items have been collected and before any of them
// runs. Returning an error stops the run; return an *Exit to stop it without failure.
type CollectionFinishHook interface {
	CollectionFinish(r *Runner) error
}

// MakeReportHook is called after each phase of each item with the report for that phase.
type MakeReportHook interface {
	MakeReport(item *Item, report *PhaseReport)
}

// Exit is returned by a CollectionFinishHook to end the run early.
type Exit struct {
	Reason string
}

func (e *Exit) Error() string {
	return e.Reason
}
