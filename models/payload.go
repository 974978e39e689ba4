package models

type ItemRef struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

// BookingPayload is the body of POST /booking on the remote API.
type BookingPayload struct {
	Prefix         string    `json:"prefix"`
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	PhoneNumber    string    `json:"phoneNumber"`
	NumberOfGuests int       `json:"numberOfGuests"`
	EventDate      string    `json:"eventDate"`
	ServiceTime    int       `json:"serviceTime"`
	EventStyle     string    `json:"eventStyle"`
	EventVenue     string    `json:"eventVenue"`
	EventType      string    `json:"eventType"`
	PaymentOption  int       `json:"paymentOption"`
	ItemsNeeded    []ItemRef `json:"itemsNeeded"`
}

// MealOrderPayload is the body of POST /foodbox on the remote API.
type MealOrderPayload struct {
	Prefix          string    `json:"prefix"`
	Name            string    `json:"name"`
	PlanID          string    `json:"planId"`
	Email           string    `json:"email"`
	DeliveryDate    string    `json:"deliveryDate"`
	PhoneNumber     string    `json:"phoneNumber"`
	DeliveryAddress string    `json:"deliveryAddress"`
	ItemsSelected   []ItemRef `json:"itemsSelected"`
}
