package catalog

import "fmt"

// Product is the read-only catalog entry that cart operations price against.
// Price is in cents.
type Product struct {
	UID   string
	Name  string
	Price int64
}

func (p Product) PriceInUnits() float64 {
	return float64(p.Price) / 100.0
}

func (p Product) String() string {
	return fmt.Sprintf("%s (%s): %.2f", p.Name, p.UID, p.PriceInUnits())
}
