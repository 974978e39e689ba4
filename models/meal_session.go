package models

// Meal plan flow steps.
const (
	MealStepSelectPlan  = 1
	MealStepChooseMeals = 2
	MealStepDelivery    = 3
	MealStepPayment     = 4
)

type DeliveryInfo struct {
	Prefix          string `json:"prefix" validate:"required"`
	Name            string `json:"name" validate:"required"`
	Email           string `json:"email" validate:"required,emailaddr"`
	PhoneNumber     string `json:"phoneNumber" validate:"required"`
	DeliveryAddress string `json:"deliveryAddress" validate:"required"`
	DeliveryDate    string `json:"deliveryDate" validate:"required,datetime=2006-01-02"`
}

// MealSession holds a customer's in-progress meal subscription order.
type MealSession struct {
	SessionID      string         `json:"sessionId"`
	CurrentStep    int            `json:"currentStep"`
	SelectedPlan   *Plan          `json:"selectedPlan,omitempty"`
	MealLimit      int            `json:"mealLimit"`
	MealQuantities map[string]int `json:"mealQuantities"`
	DeliveryFee    float64        `json:"deliveryFee"`
	Delivery       *DeliveryInfo  `json:"delivery,omitempty"`
	OrderReference string         `json:"orderReference,omitempty"`
	PaymentLink    string         `json:"paymentLink,omitempty"`
	Notices        []string       `json:"notices,omitempty"`
}
