package ordering

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"walegrills/models"

	"go.uber.org/zap"
)

// GenericFailure is used when the server does not explain a rejected order.
const GenericFailure = "Something went wrong. Please try again."

// SubmissionError is a rejected or failed order submission. Status is 0 when the
// request never got a response.
type SubmissionError struct {
	Status  int
	Message string
}

func (e *SubmissionError) Error() string {
	if e.Status == 0 {
		return "order submission failed: " + e.Message
	}
	return fmt.Sprintf("order submission failed (%d): %s", e.Status, e.Message)
}

// Result is what the business API returns for an accepted order.
type Result struct {
	Reference   string `json:"reference"`
	PaymentLink string `json:"paymentLink"`
}

type submitEnvelope struct {
	Data struct {
		PaymentLink string `json:"paymentLink"`
		Booking     *struct {
			ID string `json:"_id"`
		} `json:"booking"`
		Foodbox *struct {
			ID string `json:"_id"`
		} `json:"foodbox"`
	} `json:"data"`
}

// Submitter sends finished orders to the business API.
type Submitter interface {
	SubmitBooking(ctx context.Context, payload models.BookingPayload) (*Result, error)
	SubmitMealOrder(ctx context.Context, payload models.MealOrderPayload) (*Result, error)
}

// Client posts orders to the business API. It never retries.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
	Logger     *zap.Logger
}

func NewClient(baseURL string, logger *zap.Logger) *Client {
	return &Client{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		HTTPClient: &http.Client{Timeout: 30 * time.Second},
		Logger:     logger,
	}
}

func (c *Client) SubmitBooking(ctx context.Context, payload models.BookingPayload) (*Result, error) {
	return c.post(ctx, "/booking", payload)
}

func (c *Client) SubmitMealOrder(ctx context.Context, payload models.MealOrderPayload) (*Result, error) {
	return c.post(ctx, "/foodbox", payload)
}

func (c *Client) post(ctx context.Context, path string, payload interface{}) (*Result, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal order: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build order request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, &SubmissionError{Message: GenericFailure}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &SubmissionError{Status: resp.StatusCode, Message: GenericFailure}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var failure struct {
			Message string `json:"message"`
		}
		msg := GenericFailure
		if json.Unmarshal(raw, &failure) == nil && strings.TrimSpace(failure.Message) != "" {
			msg = failure.Message
		}
		if c.Logger != nil {
			c.Logger.Warn("Order rejected", zap.String("path", path), zap.Int("status", resp.StatusCode), zap.String("message", msg))
		}
		return nil, &SubmissionError{Status: resp.StatusCode, Message: msg}
	}

	var env submitEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, &SubmissionError{Status: resp.StatusCode, Message: GenericFailure}
	}
	result := &Result{PaymentLink: env.Data.PaymentLink}
	switch {
	case env.Data.Booking != nil:
		result.Reference = env.Data.Booking.ID
	case env.Data.Foodbox != nil:
		result.Reference = env.Data.Foodbox.ID
	}
	return result, nil
}
