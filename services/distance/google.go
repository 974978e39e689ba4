package distance

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	kvRepo "walegrills/database/repository/kv"
	"walegrills/models"
	"walegrills/utils"

	"go.uber.org/zap"
)

const (
	DefaultBaseURL = "https://maps.googleapis.com"
	metresPerMile  = 1609.34
)

// LookupError means Google answered but could not route to the destination.
type LookupError struct {
	Status string
}

func (e *LookupError) Error() string {
	return fmt.Sprintf("distance lookup failed: %s", e.Status)
}

type matrixResponse struct {
	Status       string `json:"status"`
	ErrorMessage string `json:"error_message"`
	Rows         []struct {
		Elements []struct {
			Status   string `json:"status"`
			Distance struct {
				Value float64 `json:"value"`
			} `json:"distance"`
			Duration struct {
				Value float64 `json:"value"`
			} `json:"duration"`
		} `json:"elements"`
	} `json:"rows"`
}

// Service resolves travel from the kitchen to an event address.
type Service struct {
	BaseURL    string
	APIKey     string
	Origin     string
	HTTPClient *http.Client
	Cache      kvRepo.Store
	Logger     *zap.Logger
}

func NewService(apiKey, origin string, cache kvRepo.Store, logger *zap.Logger) *Service {
	return &Service{
		BaseURL:    DefaultBaseURL,
		APIKey:     apiKey,
		Origin:     origin,
		HTTPClient: &http.Client{Timeout: 10 * time.Second},
		Cache:      cache,
		Logger:     logger,
	}
}

func cacheKey(destination string) string {
	return strings.ToLower(strings.Join(strings.Fields(destination), " "))
}

// Lookup returns the driving distance in miles and duration in hours.
func (s *Service) Lookup(ctx context.Context, destination string) (*models.Trip, error) {
	destination = strings.TrimSpace(destination)
	if destination == "" {
		return nil, &LookupError{Status: "INVALID_REQUEST"}
	}

	key := cacheKey(destination)
	if s.Cache != nil {
		var cached models.Trip
		if err := s.Cache.Load(ctx, key, &cached); err == nil {
			return &cached, nil
		}
	}

	q := url.Values{}
	q.Set("origins", s.Origin)
	q.Set("destinations", destination)
	q.Set("units", "imperial")
	q.Set("key", s.APIKey)
	endpoint := strings.TrimRight(s.BaseURL, "/") + "/maps/api/distancematrix/json?" + q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build distance request: %w", err)
	}
	resp, err := s.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("distance request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("distance request failed: status %d", resp.StatusCode)
	}

	var matrix matrixResponse
	if err := json.NewDecoder(resp.Body).Decode(&matrix); err != nil {
		return nil, fmt.Errorf("failed to decode distance response: %w", err)
	}
	if matrix.Status != "OK" {
		if s.Logger != nil {
			s.Logger.Warn("Distance matrix rejected request", zap.String("status", matrix.Status), zap.String("message", matrix.ErrorMessage))
		}
		return nil, &LookupError{Status: matrix.Status}
	}
	if len(matrix.Rows) == 0 || len(matrix.Rows[0].Elements) == 0 {
		return nil, &LookupError{Status: "ZERO_RESULTS"}
	}
	el := matrix.Rows[0].Elements[0]
	if el.Status != "OK" {
		return nil, &LookupError{Status: el.Status}
	}

	trip := &models.Trip{
		Miles: el.Distance.Value / metresPerMile,
		Hours: el.Duration.Value / 3600,
	}
	if s.Cache != nil {
		if err := s.Cache.Save(ctx, key, trip, utils.DistanceCacheTTL); err != nil && s.Logger != nil {
			s.Logger.Warn("Failed to cache distance", zap.String("destination", destination), zap.Error(err))
		}
	}
	return trip, nil
}

// VerifyAddress succeeds when the address can be routed to.
func (s *Service) VerifyAddress(ctx context.Context, address string) error {
	_, err := s.Lookup(ctx, address)
	return err
}
