package handlers

import (
	"walegrills/utils"

	"github.com/gin-gonic/gin"
)

// HandlerBundle groups all endpoint handlers into one struct.
type HandlerBundle struct {
	Tokens *utils.SessionTokenIssuer

	// Catering booking endpoints
	InitiateBookingSession gin.HandlerFunc
	GetBookingSession      gin.HandlerFunc
	UpdatePersonalInfo     gin.HandlerFunc
	UpdateEventDetails     gin.HandlerFunc
	UpdateItems            gin.HandlerFunc
	SetPaymentOption       gin.HandlerFunc
	NavigateBooking        gin.HandlerFunc
	GetQuote               gin.HandlerFunc
	ConfirmBooking         gin.HandlerFunc
	CancelBookingSession   gin.HandlerFunc

	// Meal plan endpoints
	InitiateMealSession gin.HandlerFunc
	GetMealSession      gin.HandlerFunc
	SelectPlan          gin.HandlerFunc
	IncreaseMeal        gin.HandlerFunc
	DecreaseMeal        gin.HandlerFunc
	ProceedMeals        gin.HandlerFunc
	BackMeals           gin.HandlerFunc
	PlaceMealOrder      gin.HandlerFunc
	CancelMealSession   gin.HandlerFunc

	// Catalog endpoints
	GetProducts gin.HandlerFunc
	GetPlans    gin.HandlerFunc

	// Distance proxy
	GetDistance gin.HandlerFunc

	Health gin.HandlerFunc
}

// NewHandlerBundle wires handler methods into a bundle.
func NewHandlerBundle(tokens *utils.SessionTokenIssuer, b *BookingHandler, m *MealPlanHandler, cat *CatalogHandler, d *DistanceHandler) *HandlerBundle {
	return &HandlerBundle{
		Tokens: tokens,

		InitiateBookingSession: b.InitiateSession,
		GetBookingSession:      b.GetSession,
		UpdatePersonalInfo:     b.UpdatePersonalInfo,
		UpdateEventDetails:     b.UpdateEventDetails,
		UpdateItems:            b.UpdateItems,
		SetPaymentOption:       b.SetPaymentOption,
		NavigateBooking:        b.Navigate,
		GetQuote:               b.GetQuote,
		ConfirmBooking:         b.ConfirmBooking,
		CancelBookingSession:   b.CancelSession,

		InitiateMealSession: m.InitiateSession,
		GetMealSession:      m.GetSession,
		SelectPlan:          m.SelectPlan,
		IncreaseMeal:        m.IncreaseMeal,
		DecreaseMeal:        m.DecreaseMeal,
		ProceedMeals:        m.Proceed,
		BackMeals:           m.Back,
		PlaceMealOrder:      m.PlaceOrder,
		CancelMealSession:   m.CancelSession,

		GetProducts: cat.GetProducts,
		GetPlans:    cat.GetPlans,

		GetDistance: d.GetDistance,

		Health: Health,
	}
}
