package handlers

import (
	"errors"
	"net/http"

	"walegrills/services/booking"
	"walegrills/services/catalog"
	"walegrills/services/checkout"
	"walegrills/services/forms"
	"walegrills/services/mealplan"
	"walegrills/services/ordering"
	"walegrills/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// respondError maps service errors onto HTTP responses.
func respondError(c *gin.Context, logger *zap.Logger, err error) {
	if fields, ok := forms.AsFieldErrors(err); ok {
		utils.JSONFieldErrors(c, fields)
		return
	}

	var subErr *ordering.SubmissionError
	if errors.As(err, &subErr) {
		status := http.StatusBadGateway
		if subErr.Status >= 400 && subErr.Status < 500 {
			status = subErr.Status
		}
		c.JSON(status, utils.ErrorResponse{Message: subErr.Message})
		return
	}

	var countErr *mealplan.MealCountError
	if errors.As(err, &countErr) {
		c.JSON(http.StatusConflict, utils.ErrorResponse{Message: countErr.Error()})
		return
	}

	switch {
	case errors.Is(err, booking.ErrSessionNotFound), errors.Is(err, mealplan.ErrSessionNotFound):
		c.JSON(http.StatusNotFound, utils.ErrorResponse{Message: err.Error()})
	case errors.Is(err, mealplan.ErrUnknownPlan), errors.Is(err, mealplan.ErrUnknownMeal):
		c.JSON(http.StatusNotFound, utils.ErrorResponse{Message: err.Error()})
	case errors.Is(err, checkout.ErrInvalidOption), errors.Is(err, checkout.ErrInvalidAction):
		c.JSON(http.StatusBadRequest, utils.ErrorResponse{Message: err.Error()})
	case errors.Is(err, checkout.ErrStepIncomplete),
		errors.Is(err, checkout.ErrAlreadyComplete),
		errors.Is(err, mealplan.ErrNoPlan),
		errors.Is(err, mealplan.ErrNoMeals),
		errors.Is(err, mealplan.ErrMealLimitReached),
		errors.Is(err, mealplan.ErrOrderPlaced),
		errors.Is(err, mealplan.ErrNotAtDelivery):
		c.JSON(http.StatusConflict, utils.ErrorResponse{Message: err.Error()})
	case errors.Is(err, catalog.ErrUnavailable):
		utils.JSONError(c, http.StatusBadGateway, "Could not load the menu. Please try again.", err.Error())
	default:
		logger.Error("Unhandled error", zap.String("path", c.FullPath()), zap.Error(err))
		c.JSON(http.StatusInternalServerError, utils.ErrorResponse{
			Message: "Internal Server Error",
			Details: "An unexpected error occurred. Please try again later.",
		})
	}
}

func invalidInput(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, utils.ErrorResponse{Message: "invalid input", Details: err.Error()})
}
