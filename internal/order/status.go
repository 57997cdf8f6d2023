package order

// Status is the administrative lifecycle state of an order. Values are
// stored verbatim in the orders collection, so they stay in the shop's
// language.
type Status string

const (
	StatusReceived   Status = "primljeno"
	StatusProcessing Status = "u obradi"
	StatusShipped    Status = "poslato"
	StatusCompleted  Status = "završeno"
	StatusCancelled  Status = "otkazano"
)

// transitions lists the legal next states. Terminal states have no entry.
var transitions = map[Status][]Status{
	StatusReceived:   {StatusProcessing, StatusCancelled},
	StatusProcessing: {StatusShipped, StatusCompleted, StatusCancelled},
	StatusShipped:    {StatusCompleted, StatusCancelled},
}

// Valid reports whether s is a known status value.
func (s Status) Valid() bool {
	switch s {
	case StatusReceived, StatusProcessing, StatusShipped, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// Terminal reports whether no further transition is permitted from s.
func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// CanTransitionTo reports whether s -> next is a legal transition.
func (s Status) CanTransitionTo(next Status) bool {
	for _, allowed := range transitions[s] {
		if next == allowed {
			return true
		}
	}
	return false
}
