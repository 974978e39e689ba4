package booking

import (
	"context"
	"fmt"

	"walegrills/models"
	"walegrills/services/checkout"
	"walegrills/services/events"
	"walegrills/services/payment"
	"walegrills/utils"

	"go.uber.org/zap"
)

// quoteAttempts bounds how often Confirm re-prices a session whose inputs keep changing.
const quoteAttempts = 2

// Confirm submits the booking. The session is only changed when the business API
// accepts the order; a rejected submission leaves it at the review step.
func (s *DefaultCheckoutService) Confirm(ctx context.Context, sessionID string) (*models.CheckoutSession, error) {
	session, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if err := confirmable(session); err != nil {
		return nil, err
	}

	// The payload, receipt, event and fallback amount all come from this one snapshot.
	for attempt := 0; attempt < quoteAttempts; attempt++ {
		quoted, err := s.Quote(ctx, sessionID)
		if err != nil {
			return nil, err
		}
		session = *quoted
		if session.Quote.Revision == session.Revision && session.Quote.Status != models.QuotePending {
			break
		}
	}
	if err := confirmable(session); err != nil {
		return nil, err
	}
	payload, err := checkout.BuildBookingPayload(session)
	if err != nil {
		return nil, err
	}

	result, err := s.Submitter.SubmitBooking(ctx, payload)
	if err != nil {
		s.Logger.Warn("Booking submission failed", zap.String("sessionID", sessionID), zap.Error(err))
		return nil, err
	}

	link := result.PaymentLink
	var notices []string
	if link == "" {
		s.Logger.Warn("Booking accepted without payment link", zap.String("sessionID", sessionID), zap.String("booking", result.Reference))
		notices = append(notices, MissingLinkNotice)
		link = s.fallbackLink(ctx, session, result.Reference)
	}

	// The confirmed state is what was submitted, even if the customer edited the
	// session while the order was in flight.
	final := checkout.Finalize(session, result.Reference, link, notices...)
	if err := s.save(ctx, final); err != nil {
		// The order exists upstream; report success so the customer is not asked to pay twice.
		s.Logger.Error("Failed to store confirmed booking session", zap.String("booking", result.Reference), zap.Error(err))
	}
	s.Logger.Info("Booking confirmed", zap.String("sessionID", sessionID), zap.String("booking", result.Reference))

	s.afterConfirm(ctx, final, result.PaymentLink == "" && link != "")
	return &final, nil
}

func confirmable(session models.CheckoutSession) error {
	if session.BookingReference != "" {
		return checkout.ErrAlreadyComplete
	}
	if session.CurrentStep < models.StepReview {
		return checkout.ErrStepIncomplete
	}
	return nil
}

func amounts(session models.CheckoutSession) (total, due float64) {
	if b := session.Quote.Breakdown; b != nil {
		return b.Total, b.AmountDue
	}
	return 0, 0
}

func (s *DefaultCheckoutService) fallbackLink(ctx context.Context, session models.CheckoutSession, reference string) string {
	if s.LinkIssuer == nil {
		return ""
	}
	_, due := amounts(session)
	if due <= 0 {
		return ""
	}
	link, err := s.LinkIssuer.IssueLink(ctx, payment.LinkRequest{
		Reference:   reference,
		Description: fmt.Sprintf("Wale Grills catering %s", session.EventDetails.Date),
		Email:       session.PersonalInfo.Email,
		Amount:      due,
	})
	if err != nil {
		s.Logger.Warn("Fallback payment link failed", zap.String("booking", reference), zap.Error(err))
		return ""
	}
	return link
}

// afterConfirm records the booking locally. Failures are logged only. issuedLink
// marks a payment page created here rather than by the business API.
func (s *DefaultCheckoutService) afterConfirm(ctx context.Context, session models.CheckoutSession, issuedLink bool) {
	linkSource := ""
	switch {
	case issuedLink:
		linkSource = models.PaymentLinkStripe
	case session.PaymentLink != "":
		linkSource = models.PaymentLinkBusinessAPI
	}
	total, due := amounts(session)

	if s.Receipts != nil {
		_, err := s.Receipts.Create(ctx, models.OrderReceipt{
			Kind:           models.ReceiptKindBooking,
			Reference:      session.BookingReference,
			SessionID:      session.SessionID,
			Email:          session.PersonalInfo.Email,
			EventDate:      session.EventDetails.Date,
			PaymentOption:  string(session.PaymentOption),
			Total:          total,
			AmountDue:      due,
			HasPaymentLink: session.PaymentLink != "",
			LinkSource:     linkSource,
			CreatedAt:      s.now(),
		})
		if err != nil {
			s.Logger.Error("Failed to store booking receipt", zap.String("booking", session.BookingReference), zap.Error(err))
		}
	}

	if s.Publisher != nil {
		event := events.NewEvent(events.TypeBookingPlaced, session.BookingReference, map[string]interface{}{
			"eventDate":     session.EventDetails.Date,
			"guests":        session.EventDetails.Guests,
			"paymentOption": session.PaymentOption,
			"total":         total,
			"amountDue":     due,
			"linkSource":    linkSource,
		})
		if err := s.Publisher.Publish(ctx, event); err != nil {
			s.Logger.Error("Failed to publish booking event", zap.String("booking", session.BookingReference), zap.Error(err))
		}
	}

	if s.Reminders != nil && session.PaymentOption == models.PaymentDeposit && total > due {
		err := s.Reminders.ScheduleBalanceReminder(ctx, models.BalanceReminderPayload{
			BookingReference: session.BookingReference,
			Email:            session.PersonalInfo.Email,
			Name:             session.PersonalInfo.FullName,
			EventDate:        session.EventDetails.Date,
			Balance:          utils.RoundMoney(total - due),
		})
		if err != nil {
			s.Logger.Error("Failed to schedule balance reminder", zap.String("booking", session.BookingReference), zap.Error(err))
		}
	}
}
