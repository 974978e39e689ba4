package pricing

import (
	"context"
	"errors"
	"math"
	"testing"

	"walegrills/models"

	"github.com/spf13/viper"
)

func sumLines(b models.PriceBreakdown) float64 {
	var s float64
	for _, l := range b.Lines {
		s += l.Amount
	}
	return math.Round(s*100) / 100
}

func TestCalculateReferenceScenario(t *testing.T) {
	details := models.EventDetails{Guests: 150, ServiceTime: 8, EventAddress: "1 High St"}
	trip := &models.Trip{Miles: 15, Hours: 0.5}

	b := DefaultTariff().Calculate(details, trip, nil)

	if b.Chefs != 2 || b.Waiters != 4 {
		t.Fatalf("expected 2 chefs and 4 waiters, got %d and %d", b.Chefs, b.Waiters)
	}
	if b.StaffCost != 752 {
		t.Errorf("expected staff cost 752, got %v", b.StaffCost)
	}
	if b.EquipmentFee != 100 {
		t.Errorf("expected equipment 100, got %v", b.EquipmentFee)
	}
	if b.TransportCost != 23.5 {
		t.Errorf("expected transport 23.50, got %v", b.TransportCost)
	}
	if b.Total != 875.5 {
		t.Errorf("expected total 875.50, got %v", b.Total)
	}
	if b.Deposit != 350.2 {
		t.Errorf("expected deposit 350.20, got %v", b.Deposit)
	}
}

func TestGuestTierBoundaries(t *testing.T) {
	tariff := DefaultTariff()
	cases := []struct {
		guests, chefs, waiters int
		equipment              float64
	}{
		{0, 0, 0, 0},
		{1, 1, 2, 50},
		{100, 1, 2, 50},
		{101, 2, 4, 100},
		{200, 2, 4, 100},
		{201, 3, 6, 150},
		{400, 4, 8, 200},
		{401, 5, 10, 250},
		{500, 5, 10, 250},
		{501, 0, 0, 0},
	}
	for _, tc := range cases {
		b := tariff.Calculate(models.EventDetails{Guests: tc.guests, ServiceTime: 1}, nil, nil)
		if b.Chefs != tc.chefs || b.Waiters != tc.waiters || b.EquipmentFee != tc.equipment {
			t.Errorf("guests=%d: got chefs=%d waiters=%d equipment=%v", tc.guests, b.Chefs, b.Waiters, b.EquipmentFee)
		}
	}
}

func TestHourlyRateDiscontinuity(t *testing.T) {
	tariff := DefaultTariff()
	at5 := tariff.Calculate(models.EventDetails{Guests: 50, ServiceTime: 5}, nil, nil)
	at6 := tariff.Calculate(models.EventDetails{Guests: 50, ServiceTime: 6}, nil, nil)

	if at5.ChefRate != 22 || at5.WaiterRate != 15 {
		t.Errorf("5h rates: got %v/%v", at5.ChefRate, at5.WaiterRate)
	}
	if at6.ChefRate != 20 || at6.WaiterRate != 13.5 {
		t.Errorf("6h rates: got %v/%v", at6.ChefRate, at6.WaiterRate)
	}
	// 1*22*5 + 2*15*5 = 260; 1*20*6 + 2*13.5*6 = 282
	if at5.StaffCost != 260 || at6.StaffCost != 282 {
		t.Errorf("staff cost: got %v and %v", at5.StaffCost, at6.StaffCost)
	}

	beyond := tariff.Calculate(models.EventDetails{Guests: 50, ServiceTime: 16}, nil, nil)
	if beyond.ChefRate != 0 || beyond.StaffCost != 0 {
		t.Errorf("expected zero rates past the last hour tier, got %+v", beyond)
	}
}

func TestMileAndDriverTiers(t *testing.T) {
	tariff := DefaultTariff()
	cases := []struct {
		miles, hours, rate, driver float64
	}{
		{9.99, 0.99, 1.2, 10},
		{10, 1, 0.9, 20},
		{20, 2.5, 0.9, 30},
		{20.01, 3, 0.7, 40},
	}
	for _, tc := range cases {
		b := tariff.Calculate(models.EventDetails{Guests: 10, ServiceTime: 1}, &models.Trip{Miles: tc.miles, Hours: tc.hours}, nil)
		if b.PerMileRate != tc.rate || b.DriverFee != tc.driver {
			t.Errorf("miles=%v hours=%v: got rate=%v driver=%v", tc.miles, tc.hours, b.PerMileRate, b.DriverFee)
		}
	}
}

func TestTotalEqualsSumOfLines(t *testing.T) {
	tariff := DefaultTariff()
	items := []models.LineItem{
		{ProductID: "a", Name: "Jollof", Quantity: 3, UnitPrice: 12.333},
		{ProductID: "b", Name: "Suya", Quantity: 7, UnitPrice: 4.105},
		{ProductID: "c", Quantity: 0, UnitPrice: 99},
	}
	for guests := 1; guests <= 500; guests += 37 {
		for hours := 1; hours <= 15; hours += 2 {
			b := tariff.Calculate(models.EventDetails{Guests: guests, ServiceTime: hours}, &models.Trip{Miles: 13.37, Hours: 1.7}, items)
			if b.Total != sumLines(b) {
				t.Fatalf("guests=%d hours=%d: total %v != sum of lines %v", guests, hours, b.Total, sumLines(b))
			}
		}
	}
}

func TestZeroQuantityItemsAreNotLines(t *testing.T) {
	items := []models.LineItem{{ProductID: "c", Quantity: 0, UnitPrice: 99}}
	b := DefaultTariff().Calculate(models.EventDetails{Guests: 10, ServiceTime: 1}, nil, items)
	for _, l := range b.Lines {
		if l.Kind == models.LineProduct {
			t.Fatalf("unexpected product line %+v", l)
		}
	}
}

func TestCalculateIsIdempotent(t *testing.T) {
	details := models.EventDetails{Guests: 320, ServiceTime: 12}
	trip := &models.Trip{Miles: 27, Hours: 2.2}
	items := []models.LineItem{{ProductID: "a", Quantity: 2, UnitPrice: 30}}

	first := DefaultTariff().Calculate(details, trip, items)
	second := DefaultTariff().Calculate(details, trip, items)
	if first.Total != second.Total || len(first.Lines) != len(second.Lines) {
		t.Fatalf("expected identical results, got %+v and %+v", first, second)
	}
}

func TestWithPaymentOption(t *testing.T) {
	b := DefaultTariff().Calculate(models.EventDetails{Guests: 150, ServiceTime: 8}, &models.Trip{Miles: 15, Hours: 0.5}, nil)
	if got := WithPaymentOption(b, models.PaymentDeposit).AmountDue; got != 350.2 {
		t.Errorf("deposit amount due: got %v", got)
	}
	if got := WithPaymentOption(b, models.PaymentFull).AmountDue; got != 875.5 {
		t.Errorf("full amount due: got %v", got)
	}
}

type stubResolver struct {
	calls int
	trip  *models.Trip
	err   error
}

func (s *stubResolver) Lookup(ctx context.Context, destination string) (*models.Trip, error) {
	s.calls++
	return s.trip, s.err
}

func TestQuoterSkipsLookupForEmptyAddress(t *testing.T) {
	resolver := &stubResolver{trip: &models.Trip{Miles: 100, Hours: 5}}
	q := NewQuoter(DefaultTariff(), resolver)

	b, err := q.Quote(context.Background(), models.EventDetails{Guests: 150, ServiceTime: 8, EventAddress: "  "}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resolver.calls != 0 {
		t.Errorf("expected no lookup, got %d", resolver.calls)
	}
	if b.TransportCost != 0 || b.Total != 852 {
		t.Errorf("expected no transport and total 852, got %v / %v", b.TransportCost, b.Total)
	}
}

func TestQuoterPropagatesLookupError(t *testing.T) {
	lookupErr := errors.New("NOT_FOUND")
	q := NewQuoter(DefaultTariff(), &stubResolver{err: lookupErr})
	_, err := q.Quote(context.Background(), models.EventDetails{Guests: 10, ServiceTime: 1, EventAddress: "nowhere"}, nil)
	if !errors.Is(err, lookupErr) {
		t.Fatalf("expected wrapped lookup error, got %v", err)
	}
}

func TestLoadTariffOverride(t *testing.T) {
	v := viper.New()
	v.Set("pricing", map[string]interface{}{
		"deposit_percent": 25,
	})
	tariff, err := LoadTariff(v)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tariff.DepositPercent != 25 {
		t.Errorf("expected deposit 25, got %v", tariff.DepositPercent)
	}
	if len(tariff.Guests) != 5 {
		t.Errorf("expected default guest tiers to survive, got %d", len(tariff.Guests))
	}

	v.Set("pricing", map[string]interface{}{"deposit_percent": 140})
	if _, err := LoadTariff(v); err == nil {
		t.Error("expected error for deposit above 100")
	}
}
