package order

// Phase tracks a status change through its optimistic lifecycle. The
// in-memory order is updated before the store confirms, so a transition is
// first Pending, then either Confirmed or RolledBack.
type Phase string

const (
	PhasePending    Phase = "pending"
	PhaseConfirmed  Phase = "confirmed"
	PhaseRolledBack Phase = "rolled_back"
)

// Transition is one status change of one order, with its phase made
// explicit so both halves of the optimistic update are observable.
type Transition struct {
	OrderID string
	From    Status
	To      Status
	Phase   Phase
	Err     error
}

// begin applies the optimistic local update and returns the pending record.
// The caller must already have checked legality.
func begin(o *Order, next Status) *Transition {
	tr := &Transition{OrderID: o.ID, From: o.Status, To: next, Phase: PhasePending}
	o.Status = next
	return tr
}

// confirm marks the persisted transition as final.
func (tr *Transition) confirm() {
	tr.Phase = PhaseConfirmed
}

// rollback restores the previous in-memory status after a failed persist.
// The next read from the store remains the source of truth either way.
func (tr *Transition) rollback(o *Order, err error) {
	o.Status = tr.From
	tr.Phase = PhaseRolledBack
	tr.Err = err
}
