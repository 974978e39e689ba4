package models

// Product is a catalog entry owned by the remote API.
type Product struct {
	ID          string  `json:"_id"`
	Name        string  `json:"name"`
	Amount      float64 `json:"amount"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	ProductType string  `json:"productType"`
	Image       string  `json:"image,omitempty"`
	Calories    int     `json:"calories,omitempty"`
}

// Plan is a meal subscription plan, e.g. "10 Meal Plan".
type Plan struct {
	ID          string  `json:"_id"`
	Name        string  `json:"name"`
	Amount      float64 `json:"amount"`
	Description string  `json:"description"`
	Image       string  `json:"image,omitempty"`
}

// Product types understood by the catalog API.
const (
	ProductTypeGeneral  = "general"
	ProductTypeMealPrep = "mealprep"
)
