package reconcile

import "fmt"

// Strategy is the merge policy applied when an incoming record shares its
// unique name with an existing entity.
type Strategy string

const (
	// StrategyUpdate applies only the fields present in the incoming record
	// to the existing entity.
	StrategyUpdate Strategy = "update"
	// StrategyReplace deletes the existing entity (and everything it owns)
	// and creates a new one from the incoming record.
	StrategyReplace Strategy = "replace"
	// StrategySkip leaves existing entities untouched.
	StrategySkip Strategy = "skip"
)

// ParseStrategy validates a strategy name from config, CLI flags, or query
// parameters.
func ParseStrategy(s string) (Strategy, error) {
	switch Strategy(s) {
	case StrategyUpdate, StrategyReplace, StrategySkip:
		return Strategy(s), nil
	default:
		return "", fmt.Errorf("unsupported merge strategy: %s", s)
	}
}

// Action is the terminal state of a single record's reconciliation.
type Action string

const (
	ActionCreated  Action = "created"
	ActionUpdated  Action = "updated"
	ActionReplaced Action = "replaced"
	ActionSkipped  Action = "skipped"
	ActionFailed   Action = "failed"
)

// Outcome records what happened to one incoming record.
type Outcome struct {
	// Key is the record's unique name.
	Key string `json:"key"`

	// Action is the terminal state for this record.
	Action Action `json:"action"`

	// Reason explains skipped and failed outcomes.
	Reason string `json:"reason,omitempty"`
}

// Result aggregates the per-record outcomes of one batch.
type Result struct {
	// Kind is the entity kind this batch reconciled (e.g. "resource").
	Kind string `json:"kind"`

	// Outcomes holds one entry per incoming record, in batch order.
	Outcomes []Outcome `json:"outcomes"`

	// Counters by terminal action.
	Created  int `json:"created"`
	Updated  int `json:"updated"`
	Replaced int `json:"replaced"`
	Skipped  int `json:"skipped"`
	Failed   int `json:"failed"`
}

func (r *Result) add(o Outcome) {
	r.Outcomes = append(r.Outcomes, o)
	switch o.Action {
	case ActionCreated:
		r.Created++
	case ActionUpdated:
		r.Updated++
	case ActionReplaced:
		r.Replaced++
	case ActionSkipped:
		r.Skipped++
	case ActionFailed:
		r.Failed++
	}
}
