package handlers

import (
	"net/http"
	"time"

	"walegrills/models"
	"walegrills/services/mealplan"
	"walegrills/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// MealPlanHandler serves the meal subscription endpoints.
type MealPlanHandler struct {
	Service  mealplan.MealPlanService
	Tokens   *utils.SessionTokenIssuer
	TokenTTL time.Duration
	Logger   *zap.Logger
}

func NewMealPlanHandler(service mealplan.MealPlanService, tokens *utils.SessionTokenIssuer, ttl time.Duration, logger *zap.Logger) *MealPlanHandler {
	return &MealPlanHandler{Service: service, Tokens: tokens, TokenTTL: ttl, Logger: logger}
}

type mealView struct {
	*models.MealSession
	SelectedMeals int     `json:"selectedMeals"`
	Total         float64 `json:"total"`
	DisplayTotal  string  `json:"displayTotal"`
}

func newMealView(s *models.MealSession) mealView {
	total := mealplan.OrderTotal(*s)
	return mealView{
		MealSession:   s,
		SelectedMeals: mealplan.TotalMeals(*s),
		Total:         total,
		DisplayTotal:  utils.FormatGBP(total),
	}
}

func (h *MealPlanHandler) reply(c *gin.Context, s *models.MealSession, err error) {
	if err != nil {
		respondError(c, getLogger(c, h.Logger), err)
		return
	}
	c.JSON(http.StatusOK, newMealView(s))
}

func (h *MealPlanHandler) InitiateSession(c *gin.Context) {
	s, err := h.Service.CreateSession(c.Request.Context())
	if err != nil {
		respondError(c, getLogger(c, h.Logger), err)
		return
	}
	token, err := h.Tokens.GenerateToken(s.SessionID, FlowMeals, h.TokenTTL)
	if err != nil {
		respondError(c, getLogger(c, h.Logger), err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"sessionId": s.SessionID, "token": token, "session": newMealView(s)})
}

func (h *MealPlanHandler) GetSession(c *gin.Context) {
	s, err := h.Service.GetSession(c.Request.Context(), c.Param("sessionID"))
	h.reply(c, s, err)
}

func (h *MealPlanHandler) SelectPlan(c *gin.Context) {
	var input struct {
		PlanID string `json:"planId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		invalidInput(c, err)
		return
	}
	s, err := h.Service.SelectPlan(c.Request.Context(), c.Param("sessionID"), input.PlanID)
	h.reply(c, s, err)
}

func (h *MealPlanHandler) IncreaseMeal(c *gin.Context) {
	s, err := h.Service.IncreaseMeal(c.Request.Context(), c.Param("sessionID"), c.Param("productID"))
	h.reply(c, s, err)
}

func (h *MealPlanHandler) DecreaseMeal(c *gin.Context) {
	s, err := h.Service.DecreaseMeal(c.Request.Context(), c.Param("sessionID"), c.Param("productID"))
	h.reply(c, s, err)
}

func (h *MealPlanHandler) Proceed(c *gin.Context) {
	s, err := h.Service.Proceed(c.Request.Context(), c.Param("sessionID"))
	h.reply(c, s, err)
}

func (h *MealPlanHandler) Back(c *gin.Context) {
	s, err := h.Service.Back(c.Request.Context(), c.Param("sessionID"))
	h.reply(c, s, err)
}

func (h *MealPlanHandler) PlaceOrder(c *gin.Context) {
	var input models.DeliveryInfo
	if err := c.ShouldBindJSON(&input); err != nil {
		invalidInput(c, err)
		return
	}
	s, err := h.Service.PlaceOrder(c.Request.Context(), c.Param("sessionID"), input)
	if err != nil {
		h.reply(c, nil, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"orderReference": s.OrderReference,
		"paymentLink":    s.PaymentLink,
		"redirectUrl":    s.PaymentLink,
		"session":        newMealView(s),
	})
}

func (h *MealPlanHandler) CancelSession(c *gin.Context) {
	if err := h.Service.CancelSession(c.Request.Context(), c.Param("sessionID")); err != nil {
		respondError(c, getLogger(c, h.Logger), err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "session cancelled"})
}
