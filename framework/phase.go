package framework

import (
	"time"
)

// Phase identifies one of the three stages of running an Item.
type Phase string

const (
	PhaseSetup    Phase = "setup"
	PhaseCall     Phase = "call"
	PhaseTeardown Phase = "teardown"
)

// Outcome is the result of a single phase.
type Outcome string

const (
	OutcomePassed  Outcome = "passed"
	OutcomeFailed  Outcome = "failed"
	OutcomeError   Outcome = "error"
	OutcomeSkipped Outcome = "skipped"
)

// PhaseReport describes how one phase of an Item ended.
//
// A failed assertion produces OutcomeFailed. An unexpected panic produces OutcomeError.
type PhaseReport struct {
	Phase      Phase
	Outcome    Outcome
	Errors     []error
	SkipReason string
	Duration   time.Duration
}

// Failed returns true if the phase did not complete successfully. It is safe to call on a
// nil report, which is the case for a phase that never ran.
func (r *PhaseReport) Failed() bool {
	return r != nil && (r.Outcome == OutcomeFailed || r.Outcome == OutcomeError)
}

// Passed returns true if the phase ran and completed successfully.
func (r *PhaseReport) Passed() bool {
	return r != nil && r.Outcome == OutcomePassed
}

// Skipped returns true if the phase was skipped, either explicitly or because an earlier
// phase did not pass.
func (r *PhaseReport) Skipped() bool {
	return r != nil && r.Outcome == OutcomeSkipped
}

// PhaseReports holds the most recent report for each phase of an Item. A field is nil
// until the corresponding phase has been reported.
type PhaseReports struct {
	Setup    *PhaseReport
	Call     *PhaseReport
	Teardown *PhaseReport
}

// Set stores a report under its phase.
func (p *PhaseReports) Set(r *PhaseReport) {
	switch r.Phase {
	case PhaseSetup:
		p.Setup = r
	case PhaseCall:
		p.Call = r
	case PhaseTeardown:
		p.Teardown = r
	}
}

// Get returns the report for a phase, or nil.
func (p PhaseReports) Get(phase Phase) *PhaseReport {
	switch phase {
	case PhaseSetup:
		return p.Setup
	case PhaseCall:
		return p.Call
	case PhaseTeardown:
		return p.Teardown
	}
	return nil
}

// Failed returns true if any reported phase failed.
func (p PhaseReports) Failed() bool {
	return p.Setup.Failed() || p.Call.Failed() || p.Teardown.Failed()
}
