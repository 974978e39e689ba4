package mealplan

import (
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"walegrills/models"
	"walegrills/services/checkout"
	"walegrills/utils"

	"github.com/google/uuid"
)

var (
	ErrSessionNotFound  = errors.New("meal plan session not found or expired")
	ErrNoPlan           = errors.New("select a meal plan first")
	ErrUnknownPlan      = errors.New("meal plan not found")
	ErrUnknownMeal      = errors.New("meal not found")
	ErrMealLimitReached = errors.New("meal limit reached for this plan")
	ErrNoMeals          = errors.New("select at least one meal")
	ErrOrderPlaced      = errors.New("order already placed")
	ErrNotAtDelivery    = errors.New("confirm your meals before entering delivery details")
)

// MealCountError is returned when the chosen meals do not fill the plan exactly.
type MealCountError struct {
	Selected int
	Limit    int
}

func (e *MealCountError) Error() string {
	return fmt.Sprintf("Please select exactly %d meals (currently %d)", e.Limit, e.Selected)
}

var mealLimitPattern = regexp.MustCompile(`(?i)(\d+)\s*Meal Plan`)

// MealLimit parses the number of meals from a plan name such as "10 Meal Plan".
// Names without a count have no limit and return 0.
func MealLimit(planName string) int {
	m := mealLimitPattern.FindStringSubmatch(planName)
	if m == nil {
		return 0
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0
	}
	return n
}

// DefaultPlan picks the first "10 Meal Plan", else the first plan.
func DefaultPlan(plans []models.Plan) *models.Plan {
	for i := range plans {
		if strings.Contains(plans[i].Name, "10 Meal Plan") {
			return &plans[i]
		}
	}
	if len(plans) > 0 {
		return &plans[0]
	}
	return nil
}

func newSession(plans []models.Plan, deliveryFee float64) models.MealSession {
	s := models.MealSession{
		SessionID:      uuid.New().String(),
		CurrentStep:    models.MealStepSelectPlan,
		MealQuantities: map[string]int{},
		DeliveryFee:    deliveryFee,
	}
	if p := DefaultPlan(plans); p != nil {
		plan := *p
		s.SelectedPlan = &plan
		s.MealLimit = MealLimit(plan.Name)
	}
	return s
}

func flowOf(s models.MealSession) checkout.StepFlow {
	return checkout.NewStepFlow(s.CurrentStep, models.MealStepPayment)
}

// TotalMeals counts the selected meals.
func TotalMeals(s models.MealSession) int {
	total := 0
	for _, q := range s.MealQuantities {
		total += q
	}
	return total
}

// OrderTotal is the plan price plus delivery.
func OrderTotal(s models.MealSession) float64 {
	if s.SelectedPlan == nil {
		return 0
	}
	return utils.RoundMoney(s.SelectedPlan.Amount + s.DeliveryFee)
}

func selectPlan(s models.MealSession, plan models.Plan) (models.MealSession, error) {
	if s.OrderReference != "" {
		return s, ErrOrderPlaced
	}
	s.SelectedPlan = &plan
	s.MealLimit = MealLimit(plan.Name)
	s.CurrentStep = flowOf(s).Jump(models.MealStepChooseMeals).Current
	return s, nil
}

func increase(s models.MealSession, productID string) (models.MealSession, error) {
	if s.OrderReference != "" {
		return s, ErrOrderPlaced
	}
	if s.SelectedPlan != nil && s.MealLimit > 0 && TotalMeals(s) >= s.MealLimit {
		return s, ErrMealLimitReached
	}
	q := copyQuantities(s.MealQuantities)
	q[productID]++
	s.MealQuantities = q
	return s, nil
}

func decrease(s models.MealSession, productID string) (models.MealSession, error) {
	if s.OrderReference != "" {
		return s, ErrOrderPlaced
	}
	q := copyQuantities(s.MealQuantities)
	if q[productID] <= 1 {
		delete(q, productID)
	} else {
		q[productID]--
	}
	s.MealQuantities = q
	return s, nil
}

func proceed(s models.MealSession) (models.MealSession, error) {
	if s.SelectedPlan == nil {
		return s, ErrNoPlan
	}
	if s.CurrentStep < models.MealStepChooseMeals {
		s.CurrentStep = models.MealStepChooseMeals
		return s, nil
	}
	if err := checkMealCount(s); err != nil {
		return s, err
	}
	s.CurrentStep = flowOf(s).Jump(models.MealStepDelivery).Current
	return s, nil
}

// checkMealCount requires exactly the plan's meal count, or at least one meal for
// plans without a count.
func checkMealCount(s models.MealSession) error {
	selected := TotalMeals(s)
	if s.MealLimit == 0 && selected == 0 {
		return ErrNoMeals
	}
	if s.MealLimit > 0 && selected != s.MealLimit {
		return &MealCountError{Selected: selected, Limit: s.MealLimit}
	}
	return nil
}

func back(s models.MealSession) models.MealSession {
	s.CurrentStep = flowOf(s).Retreat().Current
	return s
}

// orderPayload builds the food box request. The session must have passed proceed and
// still hold a valid meal count. Delivery dates are sent with a midnight time.
func orderPayload(s models.MealSession, delivery models.DeliveryInfo) (models.MealOrderPayload, error) {
	if s.SelectedPlan == nil {
		return models.MealOrderPayload{}, ErrNoPlan
	}
	if s.CurrentStep < models.MealStepDelivery {
		return models.MealOrderPayload{}, ErrNotAtDelivery
	}
	if err := checkMealCount(s); err != nil {
		return models.MealOrderPayload{}, err
	}
	items := make([]models.ItemRef, 0, len(s.MealQuantities))
	for id, q := range s.MealQuantities {
		if q > 0 {
			items = append(items, models.ItemRef{ProductID: id, Quantity: q})
		}
	}
	if len(items) == 0 {
		return models.MealOrderPayload{}, ErrNoMeals
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ProductID < items[j].ProductID })
	return models.MealOrderPayload{
		Prefix:          delivery.Prefix,
		Name:            delivery.Name,
		PlanID:          s.SelectedPlan.ID,
		Email:           delivery.Email,
		DeliveryDate:    delivery.DeliveryDate + " 00:00:00",
		PhoneNumber:     delivery.PhoneNumber,
		DeliveryAddress: delivery.DeliveryAddress,
		ItemsSelected:   items,
	}, nil
}

// placed records an accepted order and clears the meal selection.
func placed(s models.MealSession, delivery models.DeliveryInfo, reference, link string, notices ...string) models.MealSession {
	s.Delivery = &delivery
	s.OrderReference = reference
	s.PaymentLink = link
	s.Notices = append(s.Notices, notices...)
	s.MealQuantities = map[string]int{}
	s.CurrentStep = models.MealStepPayment
	return s
}

func copyQuantities(in map[string]int) map[string]int {
	out := make(map[string]int, len(in)+1)
	for k, v := range in {
		out[k] = v
	}
	return out
}
