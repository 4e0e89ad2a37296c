// Package models defines the core domain models for deal automation workflows.
package models

import "time"

// MaxExecutionHistory is the number of execution entries retained per
// workflow. Older entries are evicted first.
const MaxExecutionHistory = 100

// TriggerType identifies the domain event that makes a workflow eligible
// for evaluation.
type TriggerType string

const (
	TriggerDealCreated       TriggerType = "deal_created"
	TriggerDealUpdated       TriggerType = "deal_updated"
	TriggerDealStageChanged  TriggerType = "deal_stage_changed"
	TriggerDealAmountChanged TriggerType = "deal_amount_changed"
	TriggerDealClosed        TriggerType = "deal_closed"
	TriggerDealDaysInStage   TriggerType = "deal_days_in_stage"
	TriggerContactCreated    TriggerType = "contact_created"
	TriggerContactUpdated    TriggerType = "contact_updated"
	TriggerCustomDate        TriggerType = "custom_date"
)

// TriggerTypes lists every known trigger type, in a stable order.
var TriggerTypes = []TriggerType{
	TriggerDealCreated,
	TriggerDealUpdated,
	TriggerDealStageChanged,
	TriggerDealAmountChanged,
	TriggerDealClosed,
	TriggerDealDaysInStage,
	TriggerContactCreated,
	TriggerContactUpdated,
	TriggerCustomDate,
}

func (t TriggerType) Valid() bool {
	for _, known := range TriggerTypes {
		if t == known {
			return true
		}
	}

	return false
}

// ConditionOp is the comparison operator of a single workflow condition.
type ConditionOp string

const (
	OpEquals      ConditionOp = "equals"
	OpNotEquals   ConditionOp = "not_equals"
	OpGreaterThan ConditionOp = "greater_than"
	OpLessThan    ConditionOp = "less_than"
	OpContains    ConditionOp = "contains"
	OpNotContains ConditionOp = "not_contains"
	OpIsEmpty     ConditionOp = "is_empty"
	OpIsNotEmpty  ConditionOp = "is_not_empty"
)

var ConditionOps = []ConditionOp{
	OpEquals,
	OpNotEquals,
	OpGreaterThan,
	OpLessThan,
	OpContains,
	OpNotContains,
	OpIsEmpty,
	OpIsNotEmpty,
}

func (o ConditionOp) Valid() bool {
	for _, known := range ConditionOps {
		if o == known {
			return true
		}
	}

	return false
}

// ActionType identifies one side-effecting operation a workflow can run.
type ActionType string

const (
	ActionSendEmail         ActionType = "send_email"
	ActionCreateTask        ActionType = "create_task"
	ActionUpdateField       ActionType = "update_field"
	ActionNotifyUser        ActionType = "notify_user"
	ActionChangeStage       ActionType = "change_stage"
	ActionAddTag            ActionType = "add_tag"
	ActionWebhook           ActionType = "webhook"
	ActionSlackNotification ActionType = "slack_notification"
)

var ActionTypes = []ActionType{
	ActionSendEmail,
	ActionCreateTask,
	ActionUpdateField,
	ActionNotifyUser,
	ActionChangeStage,
	ActionAddTag,
	ActionWebhook,
	ActionSlackNotification,
}

func (a ActionType) Valid() bool {
	for _, known := range ActionTypes {
		if a == known {
			return true
		}
	}

	return false
}

// WorkflowTrigger pairs a trigger type with its type-specific configuration.
type WorkflowTrigger struct {
	Type   TriggerType    `json:"type"             validate:"required"`
	Config map[string]any `json:"config,omitempty"`
}

// Condition is a single field/operator/value test. All conditions of a
// workflow must pass (AND semantics).
type Condition struct {
	Field    string      `json:"field"           validate:"required"`
	Operator ConditionOp `json:"operator"        validate:"required"`
	Value    any         `json:"value,omitempty"`
}

// ActionItem is one configured action in a workflow's action list.
type ActionItem struct {
	Type   ActionType     `json:"type"             validate:"required"`
	Config map[string]any `json:"config,omitempty"`
}

// ExecutionStatus is the run-level verdict recorded in execution history.
type ExecutionStatus string

const (
	ExecutionSuccess ExecutionStatus = "success"
	ExecutionFailed  ExecutionStatus = "failed"
	ExecutionSkipped ExecutionStatus = "skipped"
)

// ExecutionEntry is one record of the bounded execution history.
type ExecutionEntry struct {
	DealID          string          `json:"deal_id"`
	ExecutedAt      time.Time       `json:"executed_at"`
	Status          ExecutionStatus `json:"status"`
	ActionsExecuted int             `json:"actions_executed"`
	Error           string          `json:"error,omitempty"`
}

// WorkflowStats carries the running counters of a workflow. TotalExecutions
// counts runs; SuccessfulExecutions and FailedExecutions count per-action
// outcomes, so the three are not mutually reconcilable by design.
type WorkflowStats struct {
	TotalExecutions      int64      `json:"total_executions"`
	SuccessfulExecutions int64      `json:"successful_executions"`
	FailedExecutions     int64      `json:"failed_executions"`
	LastExecuted         *time.Time `json:"last_executed,omitempty"`
}

// Workflow is a user-defined automation rule scoped to a team.
type Workflow struct {
	ID          string           `json:"id"`
	TeamID      string           `json:"team_id"               validate:"required"`
	CreatedBy   string           `json:"created_by"`
	Name        string           `json:"name"                  validate:"required,min=1"`
	Description string           `json:"description,omitempty"`
	Enabled     bool             `json:"enabled"`
	Trigger     WorkflowTrigger  `json:"trigger"`
	Conditions  []Condition      `json:"conditions,omitempty"`
	Actions     []ActionItem     `json:"actions,omitempty"`
	History     []ExecutionEntry `json:"execution_history,omitempty"`
	Stats       WorkflowStats    `json:"stats"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
}

// ExecutionUpdate is the stats/history delta produced by one workflow run.
// Repositories apply it atomically where the store allows.
type ExecutionUpdate struct {
	Entry             ExecutionEntry
	SuccessfulActions int64
	FailedActions     int64
}

// ApplyExecution folds one run's outcome into the in-memory workflow:
// counters are incremented and the history entry appended, evicting from the
// front once MaxExecutionHistory is exceeded.
func (w *Workflow) ApplyExecution(update ExecutionUpdate) {
	w.Stats.TotalExecutions++
	w.Stats.SuccessfulExecutions += update.SuccessfulActions
	w.Stats.FailedExecutions += update.FailedActions

	executedAt := update.Entry.ExecutedAt
	w.Stats.LastExecuted = &executedAt

	w.History = append(w.History, update.Entry)
	if len(w.History) > MaxExecutionHistory {
		w.History = w.History[len(w.History)-MaxExecutionHistory:]
	}
}
