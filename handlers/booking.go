package handlers

import (
	"net/http"
	"time"

	"walegrills/models"
	"walegrills/services/booking"
	"walegrills/services/checkout"
	"walegrills/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Flow names carried in session tokens.
const (
	FlowBooking = "booking"
	FlowMeals   = "meals"
)

// BookingHandler serves the catering checkout endpoints.
type BookingHandler struct {
	Service  booking.CheckoutService
	Tokens   *utils.SessionTokenIssuer
	TokenTTL time.Duration
	Logger   *zap.Logger
}

func NewBookingHandler(service booking.CheckoutService, tokens *utils.SessionTokenIssuer, ttl time.Duration, logger *zap.Logger) *BookingHandler {
	return &BookingHandler{Service: service, Tokens: tokens, TokenTTL: ttl, Logger: logger}
}

type bookingView struct {
	*models.CheckoutSession
	PaymentStatus string `json:"paymentStatus,omitempty"`
	DisplayTotal  string `json:"displayTotal,omitempty"`
	DisplayDue    string `json:"displayAmountDue,omitempty"`
}

func newBookingView(s *models.CheckoutSession) bookingView {
	v := bookingView{CheckoutSession: s, PaymentStatus: checkout.PaymentStatus(*s)}
	if b := s.Quote.Breakdown; b != nil && s.Quote.Status == models.QuoteReady {
		v.DisplayTotal = utils.FormatGBP(b.Total)
		v.DisplayDue = utils.FormatGBP(b.AmountDue)
	}
	return v
}

func (h *BookingHandler) reply(c *gin.Context, s *models.CheckoutSession, err error) {
	if err != nil {
		respondError(c, getLogger(c, h.Logger), err)
		return
	}
	c.JSON(http.StatusOK, newBookingView(s))
}

// InitiateSession starts a catering checkout and returns its session token.
func (h *BookingHandler) InitiateSession(c *gin.Context) {
	s, err := h.Service.CreateSession(c.Request.Context())
	if err != nil {
		respondError(c, getLogger(c, h.Logger), err)
		return
	}
	token, err := h.Tokens.GenerateToken(s.SessionID, FlowBooking, h.TokenTTL)
	if err != nil {
		respondError(c, getLogger(c, h.Logger), err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"sessionId": s.SessionID, "token": token, "step": s.CurrentStep})
}

func (h *BookingHandler) GetSession(c *gin.Context) {
	s, err := h.Service.GetSession(c.Request.Context(), c.Param("sessionID"))
	h.reply(c, s, err)
}

func (h *BookingHandler) UpdatePersonalInfo(c *gin.Context) {
	var input models.PersonalInfo
	if err := c.ShouldBindJSON(&input); err != nil {
		invalidInput(c, err)
		return
	}
	s, err := h.Service.UpdatePersonalInfo(c.Request.Context(), c.Param("sessionID"), input)
	h.reply(c, s, err)
}

func (h *BookingHandler) UpdateEventDetails(c *gin.Context) {
	var input models.EventDetails
	if err := c.ShouldBindJSON(&input); err != nil {
		invalidInput(c, err)
		return
	}
	s, err := h.Service.UpdateEventDetails(c.Request.Context(), c.Param("sessionID"), input)
	h.reply(c, s, err)
}

func (h *BookingHandler) UpdateItems(c *gin.Context) {
	var input struct {
		Items []models.ItemRef `json:"items"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		invalidInput(c, err)
		return
	}
	s, err := h.Service.UpdateItems(c.Request.Context(), c.Param("sessionID"), input.Items)
	h.reply(c, s, err)
}

func (h *BookingHandler) SetPaymentOption(c *gin.Context) {
	var input struct {
		PaymentOption models.PaymentOption `json:"paymentOption"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		invalidInput(c, err)
		return
	}
	s, err := h.Service.SetPaymentOption(c.Request.Context(), c.Param("sessionID"), input.PaymentOption)
	h.reply(c, s, err)
}

func (h *BookingHandler) Navigate(c *gin.Context) {
	var input struct {
		Action string `json:"action"`
		Step   int    `json:"step"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		invalidInput(c, err)
		return
	}
	s, err := h.Service.Navigate(c.Request.Context(), c.Param("sessionID"), input.Action, input.Step)
	h.reply(c, s, err)
}

// GetQuote returns the session with its price. A pending quote means the inputs
// changed while it was being computed and the client should ask again.
func (h *BookingHandler) GetQuote(c *gin.Context) {
	s, err := h.Service.Quote(c.Request.Context(), c.Param("sessionID"))
	h.reply(c, s, err)
}

func (h *BookingHandler) ConfirmBooking(c *gin.Context) {
	s, err := h.Service.Confirm(c.Request.Context(), c.Param("sessionID"))
	if err != nil {
		h.reply(c, nil, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"bookingReference": s.BookingReference,
		"paymentLink":      s.PaymentLink,
		"redirectUrl":      s.PaymentLink,
		"session":          newBookingView(s),
	})
}

func (h *BookingHandler) CancelSession(c *gin.Context) {
	if err := h.Service.CancelSession(c.Request.Context(), c.Param("sessionID")); err != nil {
		respondError(c, getLogger(c, h.Logger), err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "session cancelled"})
}
