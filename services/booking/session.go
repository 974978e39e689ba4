package booking

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	kvRepo "walegrills/database/repository/kv"
	"walegrills/models"
	"walegrills/services/checkout"

	"go.uber.org/zap"
)

func (s *DefaultCheckoutService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *DefaultCheckoutService) load(ctx context.Context, sessionID string) (models.CheckoutSession, error) {
	var session models.CheckoutSession
	if err := s.Store.Load(ctx, sessionID, &session); err != nil {
		if errors.Is(err, kvRepo.ErrNotFound) {
			return session, ErrSessionNotFound
		}
		return session, fmt.Errorf("failed to load booking session: %w", err)
	}
	return session, nil
}

func (s *DefaultCheckoutService) save(ctx context.Context, session models.CheckoutSession) error {
	if err := s.Store.Save(ctx, session.SessionID, session, s.TTL); err != nil {
		return fmt.Errorf("failed to store booking session: %w", err)
	}
	return nil
}

func decodeSession(data []byte) (models.CheckoutSession, error) {
	var session models.CheckoutSession
	if err := json.Unmarshal(data, &session); err != nil {
		return session, fmt.Errorf("failed to parse booking session: %w", err)
	}
	return session, nil
}

// update applies fn to the stored session as one compare-and-set. fn may run more
// than once when another request writes the session at the same time. A nil result
// from fn keeps the stored session; the returned session is then the stored one.
func (s *DefaultCheckoutService) update(ctx context.Context, sessionID string, fn func(models.CheckoutSession) (*models.CheckoutSession, error)) (*models.CheckoutSession, error) {
	var result models.CheckoutSession
	err := s.Store.Update(ctx, sessionID, s.TTL, func(current []byte) (interface{}, error) {
		session, err := decodeSession(current)
		if err != nil {
			return nil, err
		}
		next, err := fn(session)
		if err != nil {
			return nil, err
		}
		if next == nil {
			result = session
			return nil, nil
		}
		result = *next
		return result, nil
	})
	if errors.Is(err, kvRepo.ErrNotFound) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// mutate runs a session reducer atomically against the stored session.
func (s *DefaultCheckoutService) mutate(ctx context.Context, sessionID string, fn func(models.CheckoutSession) (models.CheckoutSession, error)) (*models.CheckoutSession, error) {
	return s.update(ctx, sessionID, func(cs models.CheckoutSession) (*models.CheckoutSession, error) {
		next, err := fn(cs)
		if err != nil {
			return nil, err
		}
		return &next, nil
	})
}

func (s *DefaultCheckoutService) CreateSession(ctx context.Context) (*models.CheckoutSession, error) {
	session := checkout.NewSession(s.now())
	if err := s.save(ctx, session); err != nil {
		return nil, err
	}
	s.Logger.Info("Booking session created", zap.String("sessionID", session.SessionID))
	return &session, nil
}

func (s *DefaultCheckoutService) GetSession(ctx context.Context, sessionID string) (*models.CheckoutSession, error) {
	session, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return &session, nil
}

func (s *DefaultCheckoutService) UpdatePersonalInfo(ctx context.Context, sessionID string, info models.PersonalInfo) (*models.CheckoutSession, error) {
	valid, err := s.Forms.PersonalInfo(info)
	if err != nil {
		return nil, err
	}
	return s.mutate(ctx, sessionID, func(cs models.CheckoutSession) (models.CheckoutSession, error) {
		return checkout.ApplyPersonalInfo(cs, valid)
	})
}

func (s *DefaultCheckoutService) UpdateEventDetails(ctx context.Context, sessionID string, details models.EventDetails) (*models.CheckoutSession, error) {
	// Fail fast on a missing session before spending a distance lookup.
	if _, err := s.load(ctx, sessionID); err != nil {
		return nil, err
	}
	valid, err := s.Forms.EventDetails(ctx, details)
	if err != nil {
		return nil, err
	}
	return s.mutate(ctx, sessionID, func(cs models.CheckoutSession) (models.CheckoutSession, error) {
		return checkout.ApplyEventDetails(cs, valid)
	})
}

func (s *DefaultCheckoutService) UpdateItems(ctx context.Context, sessionID string, refs []models.ItemRef) (*models.CheckoutSession, error) {
	if _, err := s.load(ctx, sessionID); err != nil {
		return nil, err
	}
	items, err := s.Forms.Items(ctx, refs)
	if err != nil {
		return nil, err
	}
	return s.mutate(ctx, sessionID, func(cs models.CheckoutSession) (models.CheckoutSession, error) {
		return checkout.ApplyItems(cs, items)
	})
}

func (s *DefaultCheckoutService) SetPaymentOption(ctx context.Context, sessionID string, option models.PaymentOption) (*models.CheckoutSession, error) {
	return s.mutate(ctx, sessionID, func(cs models.CheckoutSession) (models.CheckoutSession, error) {
		return checkout.SetPaymentOption(cs, option)
	})
}

func (s *DefaultCheckoutService) Navigate(ctx context.Context, sessionID, action string, step int) (*models.CheckoutSession, error) {
	return s.mutate(ctx, sessionID, func(cs models.CheckoutSession) (models.CheckoutSession, error) {
		return checkout.Navigate(cs, action, step)
	})
}

func (s *DefaultCheckoutService) CancelSession(ctx context.Context, sessionID string) error {
	if _, err := s.load(ctx, sessionID); err != nil {
		return err
	}
	if err := s.Store.Delete(ctx, sessionID); err != nil {
		return fmt.Errorf("failed to delete booking session: %w", err)
	}
	s.Logger.Info("Booking session cancelled", zap.String("sessionID", sessionID))
	return nil
}
