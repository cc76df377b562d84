package cart

type CartResponse struct {
	ID         *string            `json:"id"`
	Items      []CartItemResponse `json:"items"`
	TotalPrice float64            `json:"total_price"`
}

type CartItemResponse struct {
	ProductID string  `json:"product_id"`
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
	LineTotal float64 `json:"line_total"`
}

// toCartResponse projects a cart for the API; a nil cart projects to the
// empty-cart shape.
func toCartResponse(crt *Cart) CartResponse {
	if crt == nil {
		return CartResponse{
			ID:         nil,
			Items:      []CartItemResponse{},
			TotalPrice: 0.0,
		}
	}

	items := make([]CartItemResponse, 0, len(crt.Items))
	for _, item := range crt.Items {
		items = append(items, CartItemResponse{
			ProductID: item.ProductUID,
			Name:      item.Name,
			Quantity:  item.Quantity,
			UnitPrice: inUnits(item.UnitPrice),
			LineTotal: inUnits(item.TotalPrice),
		})
	}

	return CartResponse{
		ID:         &crt.UID,
		Items:      items,
		TotalPrice: inUnits(crt.TotalPrice),
	}
}

func inUnits(cents int64) float64 {
	return float64(cents) / 100.0
}
