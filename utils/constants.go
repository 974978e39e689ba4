// File: utils/constants.go
package utils

import "time"

// Redis key prefixes.
const (
	CheckoutSessionPrefix = "checkout:"
	MealSessionPrefix     = "meals:"
	CatalogCachePrefix    = "catalog:"
	DistanceCachePrefix   = "distance:"
)

// CatalogCacheTTL matches how long the storefront treats catalog data as fresh.
const CatalogCacheTTL = 5 * time.Minute

// DistanceCacheTTL is how long a resolved destination is reused.
const DistanceCacheTTL = 24 * time.Hour

// DefaultSessionTTL applies when SESSION_TTL_MINUTES is unset or invalid.
const DefaultSessionTTL = 60 * time.Minute
