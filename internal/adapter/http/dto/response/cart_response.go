package response

import "banksampah/internal/domain/entities"

type LineItemResponse struct {
	ID           string  `json:"id"`
	CategoryID   string  `json:"category_id"`
	CategoryName string  `json:"category_name"`
	WeightKg     float64 `json:"weight_kg"`
	PricePerKg   float64 `json:"price_per_kg"`
	Subtotal     float64 `json:"subtotal"`
}

func FromLineItem(item entities.LineItem) LineItemResponse {
	return LineItemResponse{
		ID:           item.ID,
		CategoryID:   item.CategoryID,
		CategoryName: item.CategoryName,
		WeightKg:     item.WeightKg,
		PricePerKg:   item.PricePerKg,
		Subtotal:     item.Subtotal(),
	}
}

type CartResponse struct {
	ID            string             `json:"id"`
	Customer      *CustomerResponse  `json:"customer,omitempty"`
	Items         []LineItemResponse `json:"items"`
	TotalWeightKg float64            `json:"total_weight_kg"`
	TotalAmount   float64            `json:"total_amount"`
}

func FromCart(cart entities.Cart) CartResponse {
	items := make([]LineItemResponse, 0, len(cart.Items))
	for _, item := range cart.Items {
		items = append(items, FromLineItem(item))
	}
	totalWeight, totalAmount := cart.Totals()

	resp := CartResponse{
		ID:            cart.ID,
		Items:         items,
		TotalWeightKg: totalWeight,
		TotalAmount:   totalAmount,
	}
	if cart.Customer != nil {
		customer := FromCustomer(*cart.Customer)
		resp.Customer = &customer
	}
	return resp
}
