package checkout

import (
	"errors"
	"time"

	"walegrills/models"
	"walegrills/services/pricing"

	"github.com/google/uuid"
)

var (
	ErrStepIncomplete  = errors.New("complete the previous steps first")
	ErrAlreadyComplete = errors.New("booking already confirmed")
	ErrInvalidOption   = errors.New("payment option must be full or deposit")
	ErrInvalidAction   = errors.New("action must be next, prev or jump")
)

// NewSession starts a catering checkout at the first step.
func NewSession(now time.Time) models.CheckoutSession {
	return models.CheckoutSession{
		SessionID:     uuid.New().String(),
		CurrentStep:   models.StepPersonalInfo,
		SelectedItems: []models.LineItem{},
		PaymentOption: models.PaymentFull,
		Quote:         models.Quote{Status: models.QuotePending},
		CreatedAt:     now,
	}
}

func flowOf(s models.CheckoutSession) StepFlow {
	return NewStepFlow(s.CurrentStep, models.StepConfirmation)
}

// ApplyPersonalInfo stores the personal info and moves to the event step.
func ApplyPersonalInfo(s models.CheckoutSession, info models.PersonalInfo) (models.CheckoutSession, error) {
	if s.BookingReference != "" {
		return s, ErrAlreadyComplete
	}
	s.PersonalInfo = &info
	s.CurrentStep = flowOf(s).Jump(models.StepEventDetails).Current
	return s, nil
}

// ApplyEventDetails stores the event and invalidates any quote computed from older details.
func ApplyEventDetails(s models.CheckoutSession, details models.EventDetails) (models.CheckoutSession, error) {
	if s.BookingReference != "" {
		return s, ErrAlreadyComplete
	}
	if s.PersonalInfo == nil {
		return s, ErrStepIncomplete
	}
	details.BookingType = models.BookingTypeOnSite
	s.EventDetails = &details
	s = invalidateQuote(s)
	s.CurrentStep = flowOf(s).Jump(models.StepItemSelection).Current
	return s, nil
}

// ApplyItems replaces the selection and invalidates the quote.
func ApplyItems(s models.CheckoutSession, items []models.LineItem) (models.CheckoutSession, error) {
	if s.BookingReference != "" {
		return s, ErrAlreadyComplete
	}
	if s.EventDetails == nil {
		return s, ErrStepIncomplete
	}
	if items == nil {
		items = []models.LineItem{}
	}
	s.SelectedItems = items
	s = invalidateQuote(s)
	s.CurrentStep = flowOf(s).Jump(models.StepReview).Current
	return s, nil
}

// SetPaymentOption switches between full and deposit payment. The quote stays valid.
func SetPaymentOption(s models.CheckoutSession, option models.PaymentOption) (models.CheckoutSession, error) {
	if option != models.PaymentFull && option != models.PaymentDeposit {
		return s, ErrInvalidOption
	}
	if s.BookingReference != "" {
		return s, ErrAlreadyComplete
	}
	s.PaymentOption = option
	if s.Quote.Breakdown != nil {
		b := pricing.WithPaymentOption(*s.Quote.Breakdown, option)
		s.Quote.Breakdown = &b
	}
	return s, nil
}

// Navigate moves the step cursor. Moving forward requires the current step's data.
func Navigate(s models.CheckoutSession, action string, step int) (models.CheckoutSession, error) {
	flow := flowOf(s)
	var next StepFlow
	switch action {
	case "next":
		next = flow.Advance()
	case "prev":
		next = flow.Retreat()
	case "jump":
		next = flow.Jump(step)
	default:
		return s, ErrInvalidAction
	}
	if s.BookingReference != "" {
		return s, ErrAlreadyComplete
	}
	if next.Current > reachable(s) {
		return s, ErrStepIncomplete
	}
	s.CurrentStep = next.Current
	return s, nil
}

// reachable is the furthest step the collected data allows. Confirmation is only
// entered through a successful submission.
func reachable(s models.CheckoutSession) int {
	switch {
	case s.PersonalInfo == nil:
		return models.StepPersonalInfo
	case s.EventDetails == nil:
		return models.StepEventDetails
	default:
		return models.StepReview
	}
}

func invalidateQuote(s models.CheckoutSession) models.CheckoutSession {
	s.Revision++
	s.Quote = models.Quote{Status: models.QuotePending, Revision: s.Revision}
	return s
}

// ApplyQuote stores a quote computed from revision. It reports false and leaves the
// session unchanged when the inputs have changed since the quote was started.
func ApplyQuote(s models.CheckoutSession, revision int64, breakdown *models.PriceBreakdown, quoteErr error) (models.CheckoutSession, bool) {
	if s.Revision != revision {
		return s, false
	}
	if quoteErr != nil {
		s.Quote = models.Quote{Status: models.QuoteFailed, Revision: revision, Error: quoteErr.Error()}
		return s, true
	}
	b := pricing.WithPaymentOption(*breakdown, s.PaymentOption)
	s.Quote = models.Quote{Status: models.QuoteReady, Revision: revision, Breakdown: &b}
	return s, true
}

// Finalize records a successful submission and shows the confirmation step.
func Finalize(s models.CheckoutSession, reference, paymentLink string, notices ...string) models.CheckoutSession {
	s.BookingReference = reference
	s.PaymentLink = paymentLink
	s.Notices = append(s.Notices, notices...)
	s.CurrentStep = models.StepConfirmation
	return s
}

// PaymentStatus describes what the customer has paid once the booking is confirmed.
func PaymentStatus(s models.CheckoutSession) string {
	if s.BookingReference == "" {
		return ""
	}
	if s.PaymentOption == models.PaymentDeposit {
		return "Deposit paid, balance due"
	}
	return "Paid in full"
}

// PaymentPercent maps the payment option to the remote API's percentage value.
func PaymentPercent(option models.PaymentOption) int {
	if option == models.PaymentDeposit {
		return 40
	}
	return 100
}

// BuildBookingPayload assembles the remote API body. The session must have reached review.
func BuildBookingPayload(s models.CheckoutSession) (models.BookingPayload, error) {
	if s.PersonalInfo == nil || s.EventDetails == nil {
		return models.BookingPayload{}, ErrStepIncomplete
	}
	items := make([]models.ItemRef, 0, len(s.SelectedItems))
	for _, it := range s.SelectedItems {
		if it.Quantity > 0 {
			items = append(items, models.ItemRef{ProductID: it.ProductID, Quantity: it.Quantity})
		}
	}
	return models.BookingPayload{
		Prefix:         s.PersonalInfo.Title,
		Name:           s.PersonalInfo.FullName,
		Email:          s.PersonalInfo.Email,
		PhoneNumber:    s.PersonalInfo.Phone,
		NumberOfGuests: s.EventDetails.Guests,
		EventDate:      s.EventDetails.Date,
		ServiceTime:    s.EventDetails.ServiceTime,
		EventStyle:     s.EventDetails.EventStyle,
		EventVenue:     s.EventDetails.EventAddress,
		EventType:      s.EventDetails.EventType,
		PaymentOption:  PaymentPercent(s.PaymentOption),
		ItemsNeeded:    items,
	}, nil
}
