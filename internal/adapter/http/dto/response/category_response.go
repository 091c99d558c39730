package response

import "banksampah/internal/domain/entities"

type WasteCategoryResponse struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	PricePerKg float64 `json:"price_per_kg"`
	ImageURL   string  `json:"image_url,omitempty"`
}

func FromWasteCategory(c entities.WasteCategory) WasteCategoryResponse {
	return WasteCategoryResponse{
		ID:         c.ID,
		Name:       c.Name,
		PricePerKg: c.PricePerKg,
		ImageURL:   c.ImageURL,
	}
}

func FromWasteCategories(categories []entities.WasteCategory) []WasteCategoryResponse {
	out := make([]WasteCategoryResponse, 0, len(categories))
	for _, c := range categories {
		out = append(out, FromWasteCategory(c))
	}
	return out
}
