package mealplan

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	kvRepo "walegrills/database/repository/kv"
	ordersRepo "walegrills/database/repository/orders"
	"walegrills/models"
	"walegrills/services/events"
	"walegrills/services/forms"
	"walegrills/services/ordering"

	"go.uber.org/zap"
)

// MissingLinkNotice is shown when the order went through but no payment page came back.
const MissingLinkNotice = "Order placed, but no payment link received."

// Catalog is the subset of the catalog client the meal flow needs.
type Catalog interface {
	Plans(ctx context.Context) ([]models.Plan, error)
	Plan(ctx context.Context, planID string) (*models.Plan, error)
	Products(ctx context.Context, productType string) ([]models.Product, error)
}

// MealPlanService drives a meal subscription order.
type MealPlanService interface {
	CreateSession(ctx context.Context) (*models.MealSession, error)
	GetSession(ctx context.Context, sessionID string) (*models.MealSession, error)
	SelectPlan(ctx context.Context, sessionID, planID string) (*models.MealSession, error)
	IncreaseMeal(ctx context.Context, sessionID, productID string) (*models.MealSession, error)
	DecreaseMeal(ctx context.Context, sessionID, productID string) (*models.MealSession, error)
	Proceed(ctx context.Context, sessionID string) (*models.MealSession, error)
	Back(ctx context.Context, sessionID string) (*models.MealSession, error)
	PlaceOrder(ctx context.Context, sessionID string, delivery models.DeliveryInfo) (*models.MealSession, error)
	CancelSession(ctx context.Context, sessionID string) error
}

type DefaultMealPlanService struct {
	Store       kvRepo.Store
	Catalog     Catalog
	Forms       *forms.Collector
	Submitter   ordering.Submitter
	Receipts    ordersRepo.ReceiptRepository
	Publisher   events.Publisher
	Logger      *zap.Logger
	DeliveryFee float64
	TTL         time.Duration
}

func (s *DefaultMealPlanService) load(ctx context.Context, sessionID string) (models.MealSession, error) {
	var session models.MealSession
	if err := s.Store.Load(ctx, sessionID, &session); err != nil {
		if errors.Is(err, kvRepo.ErrNotFound) {
			return session, ErrSessionNotFound
		}
		return session, fmt.Errorf("failed to load meal plan session: %w", err)
	}
	if session.MealQuantities == nil {
		session.MealQuantities = map[string]int{}
	}
	return session, nil
}

func (s *DefaultMealPlanService) save(ctx context.Context, session models.MealSession) error {
	if err := s.Store.Save(ctx, session.SessionID, session, s.TTL); err != nil {
		return fmt.Errorf("failed to store meal plan session: %w", err)
	}
	return nil
}

// mutate applies fn to the stored session as one compare-and-set, so concurrent
// edits to the same session cannot overwrite each other.
func (s *DefaultMealPlanService) mutate(ctx context.Context, sessionID string, fn func(models.MealSession) (models.MealSession, error)) (*models.MealSession, error) {
	var next models.MealSession
	err := s.Store.Update(ctx, sessionID, s.TTL, func(current []byte) (interface{}, error) {
		var session models.MealSession
		if err := json.Unmarshal(current, &session); err != nil {
			return nil, fmt.Errorf("failed to parse meal plan session: %w", err)
		}
		if session.MealQuantities == nil {
			session.MealQuantities = map[string]int{}
		}
		updated, err := fn(session)
		if err != nil {
			return nil, err
		}
		next = updated
		return next, nil
	})
	if errors.Is(err, kvRepo.ErrNotFound) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, err
	}
	return &next, nil
}

func (s *DefaultMealPlanService) CreateSession(ctx context.Context) (*models.MealSession, error) {
	plans, err := s.Catalog.Plans(ctx)
	if err != nil {
		return nil, err
	}
	session := newSession(plans, s.DeliveryFee)
	if err := s.save(ctx, session); err != nil {
		return nil, err
	}
	s.Logger.Info("Meal plan session created", zap.String("sessionID", session.SessionID))
	return &session, nil
}

func (s *DefaultMealPlanService) GetSession(ctx context.Context, sessionID string) (*models.MealSession, error) {
	session, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return &session, nil
}

func (s *DefaultMealPlanService) SelectPlan(ctx context.Context, sessionID, planID string) (*models.MealSession, error) {
	plan, err := s.Catalog.Plan(ctx, planID)
	if err != nil {
		return nil, err
	}
	if plan == nil {
		return nil, ErrUnknownPlan
	}
	return s.mutate(ctx, sessionID, func(ms models.MealSession) (models.MealSession, error) {
		return selectPlan(ms, *plan)
	})
}

func (s *DefaultMealPlanService) IncreaseMeal(ctx context.Context, sessionID, productID string) (*models.MealSession, error) {
	products, err := s.Catalog.Products(ctx, models.ProductTypeMealPrep)
	if err != nil {
		return nil, err
	}
	known := false
	for _, p := range products {
		if p.ID == productID {
			known = true
			break
		}
	}
	if !known {
		return nil, ErrUnknownMeal
	}
	return s.mutate(ctx, sessionID, func(ms models.MealSession) (models.MealSession, error) {
		return increase(ms, productID)
	})
}

func (s *DefaultMealPlanService) DecreaseMeal(ctx context.Context, sessionID, productID string) (*models.MealSession, error) {
	return s.mutate(ctx, sessionID, func(ms models.MealSession) (models.MealSession, error) {
		return decrease(ms, productID)
	})
}

func (s *DefaultMealPlanService) Proceed(ctx context.Context, sessionID string) (*models.MealSession, error) {
	return s.mutate(ctx, sessionID, proceed)
}

func (s *DefaultMealPlanService) Back(ctx context.Context, sessionID string) (*models.MealSession, error) {
	return s.mutate(ctx, sessionID, func(ms models.MealSession) (models.MealSession, error) {
		return back(ms), nil
	})
}

// PlaceOrder validates the delivery form and submits the food box. The session is
// only changed when the business API accepts the order.
func (s *DefaultMealPlanService) PlaceOrder(ctx context.Context, sessionID string, delivery models.DeliveryInfo) (*models.MealSession, error) {
	session, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.OrderReference != "" {
		return nil, ErrOrderPlaced
	}
	valid, err := s.Forms.Delivery(delivery)
	if err != nil {
		return nil, err
	}
	payload, err := orderPayload(session, valid)
	if err != nil {
		return nil, err
	}

	result, err := s.Submitter.SubmitMealOrder(ctx, payload)
	if err != nil {
		s.Logger.Warn("Meal order submission failed", zap.String("sessionID", sessionID), zap.Error(err))
		return nil, err
	}

	var notices []string
	if result.PaymentLink == "" {
		s.Logger.Warn("Meal order accepted without payment link", zap.String("sessionID", sessionID), zap.String("foodbox", result.Reference))
		notices = append(notices, MissingLinkNotice)
	}
	total := OrderTotal(session)
	final := placed(session, valid, result.Reference, result.PaymentLink, notices...)
	if err := s.save(ctx, final); err != nil {
		s.Logger.Error("Failed to store placed meal order session", zap.String("foodbox", result.Reference), zap.Error(err))
	}
	s.Logger.Info("Meal order placed", zap.String("sessionID", sessionID), zap.String("foodbox", result.Reference))

	s.afterOrder(ctx, final, total)
	return &final, nil
}

func (s *DefaultMealPlanService) afterOrder(ctx context.Context, session models.MealSession, total float64) {
	if s.Receipts != nil {
		_, err := s.Receipts.Create(ctx, models.OrderReceipt{
			Kind:           models.ReceiptKindMealOrder,
			Reference:      session.OrderReference,
			SessionID:      session.SessionID,
			Email:          session.Delivery.Email,
			EventDate:      session.Delivery.DeliveryDate,
			Total:          total,
			AmountDue:      total,
			HasPaymentLink: session.PaymentLink != "",
			CreatedAt:      time.Now(),
		})
		if err != nil {
			s.Logger.Error("Failed to store meal order receipt", zap.String("foodbox", session.OrderReference), zap.Error(err))
		}
	}
	if s.Publisher != nil {
		event := events.NewEvent(events.TypeMealOrderPlaced, session.OrderReference, map[string]interface{}{
			"planId":       session.SelectedPlan.ID,
			"deliveryDate": session.Delivery.DeliveryDate,
			"total":        total,
		})
		if err := s.Publisher.Publish(ctx, event); err != nil {
			s.Logger.Error("Failed to publish meal order event", zap.String("foodbox", session.OrderReference), zap.Error(err))
		}
	}
}

func (s *DefaultMealPlanService) CancelSession(ctx context.Context, sessionID string) error {
	if _, err := s.load(ctx, sessionID); err != nil {
		return err
	}
	if err := s.Store.Delete(ctx, sessionID); err != nil {
		return fmt.Errorf("failed to delete meal plan session: %w", err)
	}
	return nil
}
