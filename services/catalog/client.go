package catalog

import (
	"context"
	"encoding/json"
	"errors"
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

// ErrUnavailable means the catalog could not be loaded after retrying.
var ErrUnavailable = errors.New("catalog is temporarily unavailable")

type productsEnvelope struct {
	Data struct {
		Data       []models.Product `json:"data"`
		TotalCount int              `json:"totalCount"`
	} `json:"data"`
}

type plansEnvelope struct {
	Data []models.Plan `json:"data"`
}

// Client reads products and plans from the business API.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
	Cache      kvRepo.Store
	Logger     *zap.Logger
	Retries    int
	RetryDelay time.Duration
}

func NewClient(baseURL string, cache kvRepo.Store, logger *zap.Logger) *Client {
	return &Client{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		HTTPClient: &http.Client{Timeout: 10 * time.Second},
		Cache:      cache,
		Logger:     logger,
		Retries:    1,
		RetryDelay: 500 * time.Millisecond,
	}
}

// Products lists the products of one type ("general" or "mealprep").
func (c *Client) Products(ctx context.Context, productType string) ([]models.Product, error) {
	key := "products:" + productType
	var cached []models.Product
	if c.load(ctx, key, &cached) {
		return cached, nil
	}

	var env productsEnvelope
	endpoint := c.BaseURL + "/product?" + url.Values{"productType": {productType}}.Encode()
	if err := c.getWithRetry(ctx, endpoint, &env); err != nil {
		return nil, err
	}
	products := env.Data.Data
	if products == nil {
		products = []models.Product{}
	}
	c.store(ctx, key, products)
	return products, nil
}

// Plans lists the meal subscription plans.
func (c *Client) Plans(ctx context.Context) ([]models.Plan, error) {
	var cached []models.Plan
	if c.load(ctx, "plans", &cached) {
		return cached, nil
	}

	var env plansEnvelope
	if err := c.getWithRetry(ctx, c.BaseURL+"/plan", &env); err != nil {
		return nil, err
	}
	plans := env.Data
	if plans == nil {
		plans = []models.Plan{}
	}
	c.store(ctx, "plans", plans)
	return plans, nil
}

// Plan returns one plan by ID.
func (c *Client) Plan(ctx context.Context, planID string) (*models.Plan, error) {
	plans, err := c.Plans(ctx)
	if err != nil {
		return nil, err
	}
	for i := range plans {
		if plans[i].ID == planID {
			return &plans[i], nil
		}
	}
	return nil, nil
}

func (c *Client) load(ctx context.Context, key string, dest interface{}) bool {
	if c.Cache == nil {
		return false
	}
	return c.Cache.Load(ctx, key, dest) == nil
}

func (c *Client) store(ctx context.Context, key string, value interface{}) {
	if c.Cache == nil {
		return
	}
	if err := c.Cache.Save(ctx, key, value, utils.CatalogCacheTTL); err != nil && c.Logger != nil {
		c.Logger.Warn("Failed to cache catalog", zap.String("key", key), zap.Error(err))
	}
}

func (c *Client) getWithRetry(ctx context.Context, endpoint string, dest interface{}) error {
	var lastErr error
	for attempt := 0; attempt <= c.Retries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(c.RetryDelay):
			}
		}
		if lastErr = c.get(ctx, endpoint, dest); lastErr == nil {
			return nil
		}
		if c.Logger != nil {
			c.Logger.Warn("Catalog request failed", zap.String("url", endpoint), zap.Int("attempt", attempt+1), zap.Error(lastErr))
		}
	}
	return fmt.Errorf("%w: %v", ErrUnavailable, lastErr)
}

func (c *Client) get(ctx context.Context, endpoint string, dest interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(dest)
}
