package models

import "time"

const (
	ReceiptKindBooking   = "booking"
	ReceiptKindMealOrder = "foodbox"
)

// Where a receipt's payment link came from. Stripe links carry the order reference
// as client_reference_id so payments can be matched back to the business API order.
const (
	PaymentLinkBusinessAPI = "api"
	PaymentLinkStripe      = "stripe"
)

// OrderReceipt is the local record of an order accepted by the remote API.
type OrderReceipt struct {
	ID             string    `bson:"id" json:"id"`
	Kind           string    `bson:"kind" json:"kind"`
	Reference      string    `bson:"reference" json:"reference"`
	SessionID      string    `bson:"sessionId" json:"sessionId"`
	Email          string    `bson:"email" json:"email"`
	EventDate      string    `bson:"eventDate,omitempty" json:"eventDate,omitempty"`
	PaymentOption  string    `bson:"paymentOption,omitempty" json:"paymentOption,omitempty"`
	Total          float64   `bson:"total" json:"total"`
	AmountDue      float64   `bson:"amountDue" json:"amountDue"`
	HasPaymentLink bool      `bson:"hasPaymentLink" json:"hasPaymentLink"`
	LinkSource     string    `bson:"linkSource,omitempty" json:"linkSource,omitempty"`
	CreatedAt      time.Time `bson:"createdAt" json:"createdAt"`
}
