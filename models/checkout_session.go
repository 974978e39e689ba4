package models

import "time"

// PaymentOption is the customer's choice between paying everything now or a deposit.
type PaymentOption string

const (
	PaymentFull    PaymentOption = "full"
	PaymentDeposit PaymentOption = "deposit"
)

// Catering flow steps.
const (
	StepPersonalInfo  = 1
	StepEventDetails  = 2
	StepItemSelection = 3
	StepReview        = 4
	StepConfirmation  = 5
)

// BookingTypeOnSite is the only booking type offered for catering.
const BookingTypeOnSite = "On-site"

type PersonalInfo struct {
	Title    string `json:"title" validate:"required"`
	FullName string `json:"fullName" validate:"required"`
	Phone    string `json:"phone" validate:"required"`
	Email    string `json:"email" validate:"required,emailaddr"`
}

type EventDetails struct {
	Guests       int    `json:"guests" validate:"min=1"`
	Date         string `json:"date" validate:"weekend"` // YYYY-MM-DD
	BookingType  string `json:"bookingType"`
	ServiceTime  int    `json:"serviceTime" validate:"min=1"` // hours
	EventType    string `json:"eventType" validate:"required"`
	EventStyle   string `json:"eventStyle" validate:"required"`
	EventAddress string `json:"eventAddress" validate:"required"`
	Note         string `json:"note,omitempty"`
}

// LineItem is a selected catalog product with the price captured at selection time.
type LineItem struct {
	ProductID string  `json:"productId"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unitPrice"`
	Name      string  `json:"name,omitempty"`
}

type QuoteStatus string

const (
	QuotePending QuoteStatus = "pending"
	QuoteReady   QuoteStatus = "ready"
	QuoteFailed  QuoteStatus = "failed"
)

// Quote is the latest price computed for a session, tagged with the revision it was computed from.
type Quote struct {
	Status    QuoteStatus     `json:"status"`
	Revision  int64           `json:"revision"`
	Breakdown *PriceBreakdown `json:"breakdown,omitempty"`
	Error     string          `json:"error,omitempty"`
}

// CheckoutSession holds everything a customer has entered during a catering booking.
type CheckoutSession struct {
	SessionID        string        `json:"sessionId"`
	CurrentStep      int           `json:"currentStep"`
	PersonalInfo     *PersonalInfo `json:"personalInfo,omitempty"`
	EventDetails     *EventDetails `json:"eventDetails,omitempty"`
	SelectedItems    []LineItem    `json:"selectedItems"`
	PaymentOption    PaymentOption `json:"paymentOption"`
	BookingReference string        `json:"bookingReference,omitempty"`
	PaymentLink      string        `json:"paymentLink,omitempty"`
	Notices          []string      `json:"notices,omitempty"`
	Revision         int64         `json:"revision"`
	Quote            Quote         `json:"quote"`
	CreatedAt        time.Time     `json:"createdAt"`
}
