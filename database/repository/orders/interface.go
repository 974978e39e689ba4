package ordersRepo

import (
	"context"

	"walegrills/models"

	"go.mongodb.org/mongo-driver/mongo"
)

type ReceiptRepository interface {
	Create(ctx context.Context, receipt models.OrderReceipt) (string, error)
	GetByReference(ctx context.Context, reference string) (*models.OrderReceipt, error)
	GetByEmail(ctx context.Context, email string) ([]models.OrderReceipt, error)
}

type mongoReceiptRepo struct {
	coll *mongo.Collection
}

// NewMongoReceiptRepo returns a ReceiptRepository backed by the given database.
func NewMongoReceiptRepo(db *mongo.Database) ReceiptRepository {
	return &mongoReceiptRepo{
		coll: db.Collection("order_receipts"),
	}
}
