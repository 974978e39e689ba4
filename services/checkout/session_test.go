package checkout

import (
	"errors"
	"testing"
	"time"

	"walegrills/models"
)

func TestStepFlowClamps(t *testing.T) {
	f := NewStepFlow(1, 5)
	if got := f.Retreat().Current; got != 1 {
		t.Errorf("retreat from 1: got %d", got)
	}
	f = NewStepFlow(5, 5)
	if got := f.Advance().Current; got != 5 {
		t.Errorf("advance from 5: got %d", got)
	}
	if got := f.Jump(0).Current; got != 1 {
		t.Errorf("jump to 0: got %d", got)
	}
	if got := f.Jump(9).Current; got != 5 {
		t.Errorf("jump to 9: got %d", got)
	}
	if got := NewStepFlow(2, 4).Advance().Advance().Advance().Current; got != 4 {
		t.Errorf("advance past max: got %d", got)
	}
}

func filledSession(t *testing.T) models.CheckoutSession {
	t.Helper()
	s := NewSession(time.Now())
	s, err := ApplyPersonalInfo(s, models.PersonalInfo{Title: "Ms", FullName: "Ada Obi", Phone: "07000000000", Email: "ada@example.com"})
	if err != nil {
		t.Fatalf("personal info: %v", err)
	}
	s, err = ApplyEventDetails(s, models.EventDetails{Guests: 150, Date: "2026-10-17", ServiceTime: 8, EventType: "Wedding", EventStyle: "Buffet", EventAddress: "1 High St"})
	if err != nil {
		t.Fatalf("event details: %v", err)
	}
	return s
}

func TestReducersAdvanceAndBumpRevision(t *testing.T) {
	s := filledSession(t)
	if s.CurrentStep != models.StepItemSelection {
		t.Errorf("expected item step, got %d", s.CurrentStep)
	}
	if s.EventDetails.BookingType != models.BookingTypeOnSite {
		t.Errorf("expected On-site booking type, got %q", s.EventDetails.BookingType)
	}
	before := s.Revision

	s, err := ApplyItems(s, []models.LineItem{{ProductID: "p1", Quantity: 2, UnitPrice: 10}})
	if err != nil {
		t.Fatalf("items: %v", err)
	}
	if s.Revision != before+1 || s.Quote.Status != models.QuotePending {
		t.Errorf("expected revision bump and pending quote, got %d %s", s.Revision, s.Quote.Status)
	}
	if s.CurrentStep != models.StepReview {
		t.Errorf("expected review step, got %d", s.CurrentStep)
	}
}

func TestEventDetailsRequirePersonalInfo(t *testing.T) {
	s := NewSession(time.Now())
	if _, err := ApplyEventDetails(s, models.EventDetails{Guests: 1}); !errors.Is(err, ErrStepIncomplete) {
		t.Fatalf("expected ErrStepIncomplete, got %v", err)
	}
}

func TestApplyQuoteDiscardsStaleResult(t *testing.T) {
	s := filledSession(t)
	started := s.Revision

	// Details change while the quote is in flight.
	s, _ = ApplyItems(s, nil)

	stale := &models.PriceBreakdown{Total: 100, Deposit: 40}
	s2, applied := ApplyQuote(s, started, stale, nil)
	if applied {
		t.Fatal("expected stale quote to be discarded")
	}
	if s2.Quote.Status != models.QuotePending || s2.Quote.Breakdown != nil {
		t.Errorf("session changed by stale quote: %+v", s2.Quote)
	}

	s3, applied := ApplyQuote(s, s.Revision, stale, nil)
	if !applied || s3.Quote.Status != models.QuoteReady || s3.Quote.Breakdown.AmountDue != 100 {
		t.Errorf("expected fresh quote to apply, got %+v", s3.Quote)
	}
}

func TestApplyQuoteFailure(t *testing.T) {
	s := filledSession(t)
	s, applied := ApplyQuote(s, s.Revision, nil, errors.New("NOT_FOUND"))
	if !applied || s.Quote.Status != models.QuoteFailed || s.Quote.Error != "NOT_FOUND" {
		t.Errorf("unexpected quote %+v", s.Quote)
	}
}

func TestSetPaymentOptionUpdatesAmountDue(t *testing.T) {
	s := filledSession(t)
	s, _ = ApplyQuote(s, s.Revision, &models.PriceBreakdown{Total: 875.5, Deposit: 350.2}, nil)

	s, err := SetPaymentOption(s, models.PaymentDeposit)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Quote.Breakdown.AmountDue != 350.2 {
		t.Errorf("expected deposit due, got %v", s.Quote.Breakdown.AmountDue)
	}
	if _, err := SetPaymentOption(s, "half"); err == nil {
		t.Error("expected error for unknown option")
	}
}

func TestNavigateRespectsCollectedData(t *testing.T) {
	s := NewSession(time.Now())
	if _, err := Navigate(s, "next", 0); !errors.Is(err, ErrStepIncomplete) {
		t.Fatalf("expected ErrStepIncomplete, got %v", err)
	}

	s = filledSession(t)
	s, err := Navigate(s, "jump", 1)
	if err != nil || s.CurrentStep != 1 {
		t.Fatalf("jump back: step=%d err=%v", s.CurrentStep, err)
	}
	s, err = Navigate(s, "jump", 5)
	if !errors.Is(err, ErrStepIncomplete) {
		t.Fatalf("expected confirmation to be unreachable, got %v", err)
	}
	s, err = Navigate(s, "next", 0)
	if err != nil || s.CurrentStep != 2 {
		t.Fatalf("next: step=%d err=%v", s.CurrentStep, err)
	}
}

func TestBuildBookingPayload(t *testing.T) {
	s := filledSession(t)
	s, _ = ApplyItems(s, []models.LineItem{{ProductID: "p1", Quantity: 2}, {ProductID: "p2", Quantity: 0}})
	s, _ = SetPaymentOption(s, models.PaymentDeposit)

	p, err := BuildBookingPayload(s)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.PaymentOption != 40 || p.Prefix != "Ms" || p.EventVenue != "1 High St" || p.NumberOfGuests != 150 {
		t.Errorf("unexpected payload %+v", p)
	}
	if len(p.ItemsNeeded) != 1 || p.ItemsNeeded[0].ProductID != "p1" {
		t.Errorf("unexpected items %+v", p.ItemsNeeded)
	}
}

func TestFinalizeAndPaymentStatus(t *testing.T) {
	s := filledSession(t)
	if PaymentStatus(s) != "" {
		t.Error("expected no status before confirmation")
	}
	s = Finalize(s, "bk_1", "", "Booking successful, but no payment link received.")
	if s.CurrentStep != models.StepConfirmation || s.BookingReference != "bk_1" || len(s.Notices) != 1 {
		t.Errorf("unexpected session %+v", s)
	}
	if PaymentStatus(s) != "Paid in full" {
		t.Errorf("got %q", PaymentStatus(s))
	}
	if _, err := ApplyItems(s, nil); !errors.Is(err, ErrAlreadyComplete) {
		t.Errorf("expected ErrAlreadyComplete, got %v", err)
	}
}
