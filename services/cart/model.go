package cart

import (
	"time"
)

// Cart is the aggregate: it owns its items, so deleting a cart deletes the
// items with it. TotalPrice is derived and must equal the sum of the item
// totals after every completed mutation.
type Cart struct {
	UID               string
	TotalPrice        int64
	CreatedAt         time.Time
	LastInteractionAt time.Time
	AbandonedAt       *time.Time
	Items             []CartItem
}

// CartItem pairs one product with a quantity. Quantity is always > 0 for a
// persisted item; an item driven to zero or below is removed instead.
// Name and UnitPrice are refreshed from the catalog on every recompute.
type CartItem struct {
	ProductUID string
	Name       string
	UnitPrice  int64
	Quantity   int
	TotalPrice int64
}

// SessionBinding associates an anonymous shopper session with its one cart.
type SessionBinding struct {
	SessionUID string
	CartUID    string
	CreatedAt  time.Time
}

func (crt Cart) IsEmpty() bool {
	return len(crt.Items) == 0
}

func (crt Cart) IsAbandoned() bool {
	return crt.AbandonedAt != nil
}

func (crt Cart) itemIndex(productUID string) int {
	for i := range crt.Items {
		if crt.Items[i].ProductUID == productUID {
			return i
		}
	}
	return -1
}

func (crt *Cart) removeItemAt(idx int) {
	crt.Items = append(crt.Items[:idx], crt.Items[idx+1:]...)
}
