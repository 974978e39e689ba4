package handlers

import (
	"context"
	"net/http"

	"walegrills/models"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// CatalogReader lists products and plans.
type CatalogReader interface {
	Products(ctx context.Context, productType string) ([]models.Product, error)
	Plans(ctx context.Context) ([]models.Plan, error)
}

type CatalogHandler struct {
	Catalog CatalogReader
	Logger  *zap.Logger
}

func NewCatalogHandler(catalog CatalogReader, logger *zap.Logger) *CatalogHandler {
	return &CatalogHandler{Catalog: catalog, Logger: logger}
}

func (h *CatalogHandler) GetProducts(c *gin.Context) {
	productType := c.DefaultQuery("productType", models.ProductTypeGeneral)
	if productType != models.ProductTypeGeneral && productType != models.ProductTypeMealPrep {
		c.JSON(http.StatusBadRequest, gin.H{"error": "productType must be general or mealprep"})
		return
	}
	products, err := h.Catalog.Products(c.Request.Context(), productType)
	if err != nil {
		respondError(c, getLogger(c, h.Logger), err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": products, "totalCount": len(products)})
}

func (h *CatalogHandler) GetPlans(c *gin.Context) {
	plans, err := h.Catalog.Plans(c.Request.Context())
	if err != nil {
		respondError(c, getLogger(c, h.Logger), err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": plans})
}
