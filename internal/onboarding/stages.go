// Package onboarding holds the stage-progression rules: per-stage
// statuses, role-keyed workflow orders, and the accessibility check
// that gates a respondent's path through them.
package onboarding

type Status string

const (
	StatusNotStarted Status = "not_started"
	StatusInProgress Status = "in_progress"
	StatusInReview   Status = "in_review"
	StatusCompleted  Status = "completed"
)

func ValidStatus(s string) bool {
	switch Status(s) {
	case StatusNotStarted, StatusInProgress, StatusInReview, StatusCompleted:
		return true
	}
	return false
}

// Stage ids of the static catalog. The contract, payment, document and
// tool-preference stages each carry special entry/transition behavior.
const (
	StageKYC             = 1
	StageContract        = 2
	StagePayment         = 3
	StageDocuments       = 4
	StageToolPreferences = 5
)

// WorkflowOrders maps a role to its ordered stage-id sequence. The
// sequence drives both next-stage lookups and prerequisite
// accessibility; it is not a single global ordering.
type WorkflowOrders map[string][]int

// DefaultWorkflowOrders is the compiled-in sequencing, overridable by
// the stages.yaml seed file.
func DefaultWorkflowOrders() WorkflowOrders {
	return WorkflowOrders{
		"seller": {StageKYC, StageContract, StagePayment, StageDocuments, StageToolPreferences},
		"buyer":  {StageKYC, StageContract, StagePayment},
		"ally":   {StageKYC, StageToolPreferences, StageDocuments},
	}
}

// Order returns the role's stage sequence, or nil for an unknown role.
func (w WorkflowOrders) Order(role string) []int {
	return w[role]
}

// NextStage returns the stage following stageID in the role's order.
func (w WorkflowOrders) NextStage(role string, stageID int) (int, bool) {
	order := w[role]
	for i, id := range order {
		if id == stageID && i+1 < len(order) {
			return order[i+1], true
		}
	}
	return 0, false
}

// Predecessor returns the stage immediately before stageID in the
// role's order.
func (w WorkflowOrders) Predecessor(role string, stageID int) (int, bool) {
	order := w[role]
	for i, id := range order {
		if id == stageID && i > 0 {
			return order[i-1], true
		}
	}
	return 0, false
}

// Contains reports whether stageID appears in the role's order at all.
func (w WorkflowOrders) Contains(role string, stageID int) bool {
	for _, id := range w[role] {
		if id == stageID {
			return true
		}
	}
	return false
}

// Accessible implements the stage gate: the first stage of the role's
// order is always reachable; any later stage is reachable iff the
// respondent already has a progress row for it or its predecessor is
// completed. debugAccess lifts the gate entirely.
func Accessible(stageID int, role string, progress map[int]Status, orders WorkflowOrders, debugAccess bool) bool {
	if debugAccess {
		return true
	}
	order := orders.Order(role)
	if len(order) == 0 {
		return false
	}
	if stageID == order[0] {
		return true
	}
	if !orders.Contains(role, stageID) {
		return false
	}
	if _, started := progress[stageID]; started {
		return true
	}
	pred, ok := orders.Predecessor(role, stageID)
	if !ok {
		return false
	}
	return progress[pred] == StatusCompleted
}
