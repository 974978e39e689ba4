package pricing

import (
	"context"
	"fmt"
	"strings"

	"walegrills/models"
)

// TripResolver resolves the travel distance and time to a destination.
type TripResolver interface {
	Lookup(ctx context.Context, destination string) (*models.Trip, error)
}

// Quoter combines the tariff with a distance lookup.
type Quoter struct {
	Tariff   Tariff
	Resolver TripResolver
}

func NewQuoter(tariff Tariff, resolver TripResolver) *Quoter {
	return &Quoter{Tariff: tariff, Resolver: resolver}
}

// Quote prices the event. An empty address skips the lookup and charges no transport.
func (q *Quoter) Quote(ctx context.Context, details models.EventDetails, items []models.LineItem) (models.PriceBreakdown, error) {
	var trip *models.Trip
	if addr := strings.TrimSpace(details.EventAddress); addr != "" && q.Resolver != nil {
		t, err := q.Resolver.Lookup(ctx, addr)
		if err != nil {
			return models.PriceBreakdown{}, fmt.Errorf("failed to resolve distance: %w", err)
		}
		trip = t
	}
	return q.Tariff.Calculate(details, trip, items), nil
}
