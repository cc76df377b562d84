package cartactivity

import "time"

const (
	StatusActive    = "active"
	StatusAbandoned = "abandoned"
	StatusRemoved   = "removed"
)

// CartActivity is the per-cart lifecycle read model fed by the cart topic.
type CartActivity struct {
	CartUID     string
	Status      string
	LastEventAt time.Time
}
