package booking

import (
	"context"
	"errors"
	"testing"
	"time"

	kvRepo "walegrills/database/repository/kv"
	ordersRepo "walegrills/database/repository/orders"
	"walegrills/models"
	"walegrills/services/checkout"
	"walegrills/services/events"
	"walegrills/services/forms"
	"walegrills/services/ordering"
	"walegrills/services/payment"
	"walegrills/services/pricing"

	"go.uber.org/zap"
)

type okVerifier struct{}

func (okVerifier) VerifyAddress(ctx context.Context, address string) error { return nil }

type staticCatalog struct{}

func (staticCatalog) Products(ctx context.Context, productType string) ([]models.Product, error) {
	return []models.Product{{ID: "p1", Name: "Jollof Rice", Amount: 10}}, nil
}

type fakeResolver struct {
	trip     models.Trip
	calls    int
	onLookup func()
}

func (f *fakeResolver) Lookup(ctx context.Context, destination string) (*models.Trip, error) {
	f.calls++
	if f.onLookup != nil {
		hook := f.onLookup
		f.onLookup = nil
		hook()
	}
	trip := f.trip
	return &trip, nil
}

type fakeSubmitter struct {
	result   *ordering.Result
	err      error
	bookings []models.BookingPayload
}

func (f *fakeSubmitter) SubmitBooking(ctx context.Context, p models.BookingPayload) (*ordering.Result, error) {
	f.bookings = append(f.bookings, p)
	return f.result, f.err
}

func (f *fakeSubmitter) SubmitMealOrder(ctx context.Context, p models.MealOrderPayload) (*ordering.Result, error) {
	return f.result, f.err
}

type recordingPublisher struct{ events []events.Event }

func (r *recordingPublisher) Publish(ctx context.Context, e events.Event) error {
	r.events = append(r.events, e)
	return nil
}
func (r *recordingPublisher) Close() error { return nil }

type recordingReminders struct{ payloads []models.BalanceReminderPayload }

func (r *recordingReminders) ScheduleBalanceReminder(ctx context.Context, p models.BalanceReminderPayload) error {
	r.payloads = append(r.payloads, p)
	return nil
}

type stubLinks struct{ link string }

func (s stubLinks) IssueLink(ctx context.Context, req payment.LinkRequest) (string, error) {
	return s.link, nil
}

// interleavingStore runs beforeUpdate once, right before the next Update reaches the store.
type interleavingStore struct {
	kvRepo.Store
	beforeUpdate func()
}

func (s *interleavingStore) Update(ctx context.Context, key string, ttl time.Duration, fn kvRepo.UpdateFunc) error {
	if hook := s.beforeUpdate; hook != nil {
		s.beforeUpdate = nil
		hook()
	}
	return s.Store.Update(ctx, key, ttl, fn)
}

type harness struct {
	svc       *DefaultCheckoutService
	resolver  *fakeResolver
	submitter *fakeSubmitter
	receipts  *ordersRepo.MemoryReceiptRepo
	publisher *recordingPublisher
	reminders *recordingReminders
}

func newHarness() *harness {
	h := &harness{
		resolver:  &fakeResolver{trip: models.Trip{Miles: 15, Hours: 0.5}},
		submitter: &fakeSubmitter{},
		receipts:  ordersRepo.NewMemoryReceiptRepo(),
		publisher: &recordingPublisher{},
		reminders: &recordingReminders{},
	}
	h.svc = &DefaultCheckoutService{
		Store:     kvRepo.NewMemoryStore(),
		Forms:     forms.NewCollector(okVerifier{}, staticCatalog{}),
		Quoter:    pricing.NewQuoter(pricing.DefaultTariff(), h.resolver),
		Submitter: h.submitter,
		Receipts:  h.receipts,
		Publisher: h.publisher,
		Reminders: h.reminders,
		Logger:    zap.NewNop(),
		TTL:       time.Hour,
	}
	return h
}

func (h *harness) reviewSession(t *testing.T) string {
	t.Helper()
	ctx := context.Background()
	s, err := h.svc.CreateSession(ctx)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	id := s.SessionID
	if _, err := h.svc.UpdatePersonalInfo(ctx, id, models.PersonalInfo{Title: "Ms", FullName: "Ada Obi", Phone: "07000000000", Email: "ada@example.com"}); err != nil {
		t.Fatalf("personal: %v", err)
	}
	if _, err := h.svc.UpdateEventDetails(ctx, id, models.EventDetails{Guests: 150, Date: "2026-10-17", ServiceTime: 8, EventType: "Wedding", EventStyle: "Buffet", EventAddress: "1 High St"}); err != nil {
		t.Fatalf("event: %v", err)
	}
	s, err = h.svc.UpdateItems(ctx, id, nil)
	if err != nil {
		t.Fatalf("items: %v", err)
	}
	if s.CurrentStep != models.StepReview {
		t.Fatalf("expected review step, got %d", s.CurrentStep)
	}
	return id
}

func TestQuoteReferenceScenario(t *testing.T) {
	h := newHarness()
	id := h.reviewSession(t)

	s, err := h.svc.Quote(context.Background(), id)
	if err != nil {
		t.Fatalf("quote: %v", err)
	}
	if s.Quote.Status != models.QuoteReady || s.Quote.Breakdown.Total != 875.5 {
		t.Fatalf("unexpected quote %+v", s.Quote)
	}

	// A second read reuses the stored quote.
	if _, err := h.svc.Quote(context.Background(), id); err != nil {
		t.Fatalf("quote: %v", err)
	}
	if h.resolver.calls != 1 {
		t.Errorf("expected one lookup, got %d", h.resolver.calls)
	}
}

func TestQuoteDiscardedWhenItemsChangeMidLookup(t *testing.T) {
	h := newHarness()
	id := h.reviewSession(t)
	ctx := context.Background()

	h.resolver.onLookup = func() {
		if _, err := h.svc.UpdateItems(ctx, id, []models.ItemRef{{ProductID: "p1", Quantity: 3}}); err != nil {
			t.Errorf("items: %v", err)
		}
	}

	s, err := h.svc.Quote(ctx, id)
	if err != nil {
		t.Fatalf("quote: %v", err)
	}
	if s.Quote.Status != models.QuotePending || s.Quote.Breakdown != nil {
		t.Fatalf("expected stale quote to be dropped, got %+v", s.Quote)
	}

	s, err = h.svc.Quote(ctx, id)
	if err != nil {
		t.Fatalf("requote: %v", err)
	}
	if s.Quote.Breakdown.Total != 905.5 {
		t.Errorf("expected total with items 905.50, got %v", s.Quote.Breakdown.Total)
	}
}

func TestConfirmDepositBooking(t *testing.T) {
	h := newHarness()
	h.submitter.result = &ordering.Result{Reference: "bk_1", PaymentLink: "https://pay.example/bk_1"}
	id := h.reviewSession(t)
	ctx := context.Background()

	if _, err := h.svc.SetPaymentOption(ctx, id, models.PaymentDeposit); err != nil {
		t.Fatalf("payment option: %v", err)
	}
	s, err := h.svc.Confirm(ctx, id)
	if err != nil {
		t.Fatalf("confirm: %v", err)
	}
	if s.CurrentStep != models.StepConfirmation || s.BookingReference != "bk_1" || s.PaymentLink != "https://pay.example/bk_1" {
		t.Errorf("unexpected session %+v", s)
	}
	if len(s.Notices) != 0 {
		t.Errorf("unexpected notices %v", s.Notices)
	}
	if h.submitter.bookings[0].PaymentOption != 40 {
		t.Errorf("expected payment option 40, got %d", h.submitter.bookings[0].PaymentOption)
	}

	receipt, err := h.receipts.GetByReference(ctx, "bk_1")
	if err != nil || receipt.AmountDue != 350.2 || !receipt.HasPaymentLink || receipt.LinkSource != models.PaymentLinkBusinessAPI {
		t.Errorf("unexpected receipt %+v, %v", receipt, err)
	}
	if len(h.publisher.events) != 1 || h.publisher.events[0].Type != events.TypeBookingPlaced {
		t.Errorf("unexpected events %+v", h.publisher.events)
	}
	if len(h.reminders.payloads) != 1 || h.reminders.payloads[0].Balance != 525.3 {
		t.Errorf("unexpected reminders %+v", h.reminders.payloads)
	}

	if _, err := h.svc.Confirm(ctx, id); !errors.Is(err, checkout.ErrAlreadyComplete) {
		t.Errorf("expected ErrAlreadyComplete on resubmit, got %v", err)
	}
}

func TestConfirmWithoutPaymentLink(t *testing.T) {
	h := newHarness()
	h.submitter.result = &ordering.Result{Reference: "bk_2"}
	id := h.reviewSession(t)

	s, err := h.svc.Confirm(context.Background(), id)
	if err != nil {
		t.Fatalf("confirm: %v", err)
	}
	if s.CurrentStep != models.StepConfirmation || s.BookingReference != "bk_2" {
		t.Errorf("unexpected session %+v", s)
	}
	if len(s.Notices) != 1 || s.Notices[0] != MissingLinkNotice {
		t.Errorf("expected missing link notice, got %v", s.Notices)
	}
	if len(h.reminders.payloads) != 0 {
		t.Error("full payment must not schedule a reminder")
	}
}

func TestConfirmFallsBackToIssuedLink(t *testing.T) {
	h := newHarness()
	h.submitter.result = &ordering.Result{Reference: "bk_3"}
	h.svc.LinkIssuer = stubLinks{link: "https://checkout.stripe.test/c/3"}
	id := h.reviewSession(t)

	ctx := context.Background()

	s, err := h.svc.Confirm(ctx, id)
	if err != nil {
		t.Fatalf("confirm: %v", err)
	}
	if s.PaymentLink != "https://checkout.stripe.test/c/3" {
		t.Errorf("unexpected payment link %q", s.PaymentLink)
	}
	// The business API still has no payment page for this booking.
	if len(s.Notices) != 1 || s.Notices[0] != MissingLinkNotice {
		t.Errorf("expected missing link notice, got %v", s.Notices)
	}
	receipt, err := h.receipts.GetByReference(ctx, "bk_3")
	if err != nil || receipt.LinkSource != models.PaymentLinkStripe {
		t.Errorf("expected stripe link source, got %+v, %v", receipt, err)
	}
}

func TestConfirmRejectedLeavesSessionUntouched(t *testing.T) {
	h := newHarness()
	h.submitter.err = &ordering.SubmissionError{Status: 400, Message: "Invalid date"}
	id := h.reviewSession(t)
	ctx := context.Background()

	_, err := h.svc.Confirm(ctx, id)
	var subErr *ordering.SubmissionError
	if !errors.As(err, &subErr) || subErr.Message != "Invalid date" {
		t.Fatalf("expected Invalid date submission error, got %v", err)
	}

	s, err := h.svc.GetSession(ctx, id)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if s.CurrentStep != models.StepReview || s.BookingReference != "" || s.PaymentLink != "" {
		t.Errorf("session changed after failure: %+v", s)
	}
	if len(h.publisher.events) != 0 {
		t.Error("expected no events after failure")
	}
}

func TestConfirmBeforeReview(t *testing.T) {
	h := newHarness()
	s, _ := h.svc.CreateSession(context.Background())
	if _, err := h.svc.Confirm(context.Background(), s.SessionID); !errors.Is(err, checkout.ErrStepIncomplete) {
		t.Fatalf("expected ErrStepIncomplete, got %v", err)
	}
}

func TestMissingSessionAndCancel(t *testing.T) {
	h := newHarness()
	ctx := context.Background()
	if _, err := h.svc.GetSession(ctx, "nope"); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
	s, _ := h.svc.CreateSession(ctx)
	if err := h.svc.CancelSession(ctx, s.SessionID); err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if _, err := h.svc.GetSession(ctx, s.SessionID); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("expected session gone, got %v", err)
	}
}

func TestQuoteDoesNotOverwriteEditCommittedBeforeSave(t *testing.T) {
	h := newHarness()
	id := h.reviewSession(t)
	ctx := context.Background()

	store := &interleavingStore{Store: h.svc.Store}
	h.svc.Store = store
	store.beforeUpdate = func() {
		if _, err := h.svc.UpdateItems(ctx, id, []models.ItemRef{{ProductID: "p1", Quantity: 3}}); err != nil {
			t.Errorf("items: %v", err)
		}
	}

	s, err := h.svc.Quote(ctx, id)
	if err != nil {
		t.Fatalf("quote: %v", err)
	}
	if s.Quote.Status != models.QuotePending {
		t.Errorf("expected stale quote to be dropped, got %+v", s.Quote)
	}

	stored, err := h.svc.GetSession(ctx, id)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(stored.SelectedItems) != 1 || stored.SelectedItems[0].Quantity != 3 {
		t.Errorf("edit was lost: items %+v", stored.SelectedItems)
	}
	if stored.Quote.Status != models.QuotePending || stored.Quote.Revision != stored.Revision {
		t.Errorf("unexpected stored quote %+v at revision %d", stored.Quote, stored.Revision)
	}
}

func TestConfirmSubmitsRequotedSession(t *testing.T) {
	h := newHarness()
	h.submitter.result = &ordering.Result{Reference: "bk_4", PaymentLink: "https://pay.example/bk_4"}
	id := h.reviewSession(t)
	ctx := context.Background()

	// Items change while Confirm is pricing the session.
	h.resolver.onLookup = func() {
		if _, err := h.svc.UpdateItems(ctx, id, []models.ItemRef{{ProductID: "p1", Quantity: 3}}); err != nil {
			t.Errorf("items: %v", err)
		}
	}

	s, err := h.svc.Confirm(ctx, id)
	if err != nil {
		t.Fatalf("confirm: %v", err)
	}
	payload := h.submitter.bookings[0]
	if len(payload.ItemsNeeded) != 1 || payload.ItemsNeeded[0].Quantity != 3 {
		t.Errorf("payload missing the latest items: %+v", payload.ItemsNeeded)
	}
	if s.Quote.Breakdown == nil || s.Quote.Breakdown.Total != 905.5 {
		t.Errorf("expected confirmed total 905.50, got %+v", s.Quote)
	}
	receipt, err := h.receipts.GetByReference(ctx, "bk_4")
	if err != nil || receipt.Total != 905.5 {
		t.Errorf("receipt does not match the submitted order: %+v, %v", receipt, err)
	}
}
