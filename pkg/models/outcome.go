package models

// OutcomeStatus is the per-action verdict of one executed action.
type OutcomeStatus string

const (
	OutcomeSuccess OutcomeStatus = "success"
	OutcomeFailed  OutcomeStatus = "failed"
)

// ActionOutcome is the structured result of executing a single action.
// Failures are carried here rather than raised, so a failing action never
// aborts its siblings.
type ActionOutcome struct {
	Type   ActionType     `json:"type"`
	Status OutcomeStatus  `json:"status"`
	Result map[string]any `json:"result,omitempty"`
	Error  string         `json:"error,omitempty"`
}

// Succeeded reports whether the action completed without error.
func (o ActionOutcome) Succeeded() bool {
	return o.Status == OutcomeSuccess
}
