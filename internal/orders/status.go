package orders

type Status string

const (
	StatusPending   Status = "pending"
	StatusPaid      Status = "paid"
	StatusShipped   Status = "shipped"
	StatusCompleted Status = "completed"
)

// Checkout always writes StatusPending; later transitions belong to the
// fulfillment workflows, which only move forward.
var validNext = map[Status]map[Status]bool{
	StatusPending:   {StatusPaid: true},
	StatusPaid:      {StatusShipped: true},
	StatusShipped:   {StatusCompleted: true},
	StatusCompleted: {},
}

func CanTransition(from, to Status) bool {
	return validNext[from][to]
}
