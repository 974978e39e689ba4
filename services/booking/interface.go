package booking

import (
	"context"
	"errors"
	"time"

	kvRepo "walegrills/database/repository/kv"
	ordersRepo "walegrills/database/repository/orders"
	"walegrills/models"
	"walegrills/services/events"
	"walegrills/services/forms"
	"walegrills/services/ordering"
	"walegrills/services/payment"
	"walegrills/services/pricing"
	"walegrills/services/tasks"

	"go.uber.org/zap"
)

// MissingLinkNotice is shown when the order went through but no payment page came back.
const MissingLinkNotice = "Booking successful, but no payment link received."

var ErrSessionNotFound = errors.New("booking session not found or expired")

// CheckoutService drives a catering booking from personal info to confirmation.
type CheckoutService interface {
	CreateSession(ctx context.Context) (*models.CheckoutSession, error)
	GetSession(ctx context.Context, sessionID string) (*models.CheckoutSession, error)
	UpdatePersonalInfo(ctx context.Context, sessionID string, info models.PersonalInfo) (*models.CheckoutSession, error)
	UpdateEventDetails(ctx context.Context, sessionID string, details models.EventDetails) (*models.CheckoutSession, error)
	UpdateItems(ctx context.Context, sessionID string, items []models.ItemRef) (*models.CheckoutSession, error)
	SetPaymentOption(ctx context.Context, sessionID string, option models.PaymentOption) (*models.CheckoutSession, error)
	Navigate(ctx context.Context, sessionID, action string, step int) (*models.CheckoutSession, error)
	Quote(ctx context.Context, sessionID string) (*models.CheckoutSession, error)
	Confirm(ctx context.Context, sessionID string) (*models.CheckoutSession, error)
	CancelSession(ctx context.Context, sessionID string) error
}

// DefaultCheckoutService implements CheckoutService on top of a session store.
// LinkIssuer, Receipts and Reminders are optional.
type DefaultCheckoutService struct {
	Store      kvRepo.Store
	Forms      *forms.Collector
	Quoter     *pricing.Quoter
	Submitter  ordering.Submitter
	LinkIssuer payment.LinkIssuer
	Receipts   ordersRepo.ReceiptRepository
	Publisher  events.Publisher
	Reminders  tasks.ReminderScheduler
	Logger     *zap.Logger
	TTL        time.Duration
	Now        func() time.Time
}
