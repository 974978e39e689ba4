package booking

import (
	"context"

	"walegrills/models"
	"walegrills/services/checkout"

	"go.uber.org/zap"
)

// Quote returns the session with a price computed from its current inputs. A
// quote that finishes after the inputs changed is dropped and the session keeps
// its pending quote.
func (s *DefaultCheckoutService) Quote(ctx context.Context, sessionID string) (*models.CheckoutSession, error) {
	session, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.EventDetails == nil {
		return nil, checkout.ErrStepIncomplete
	}
	if session.Quote.Status == models.QuoteReady && session.Quote.Revision == session.Revision {
		return &session, nil
	}

	revision := session.Revision
	breakdown, quoteErr := s.Quoter.Quote(ctx, *session.EventDetails, session.SelectedItems)
	if quoteErr != nil {
		s.Logger.Warn("Quote failed", zap.String("sessionID", sessionID), zap.Error(quoteErr))
	}

	return s.update(ctx, sessionID, func(latest models.CheckoutSession) (*models.CheckoutSession, error) {
		updated, applied := checkout.ApplyQuote(latest, revision, &breakdown, quoteErr)
		if !applied {
			s.Logger.Debug("Discarding stale quote", zap.String("sessionID", sessionID), zap.Int64("revision", revision), zap.Int64("current", latest.Revision))
			return nil, nil
		}
		return &updated, nil
	})
}
