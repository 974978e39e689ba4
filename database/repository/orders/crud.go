package ordersRepo

import (
	"context"
	"errors"
	"time"

	"walegrills/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var ErrReceiptNotFound = errors.New("receipt not found")

// Create inserts a new receipt and returns its ID.
func (r *mongoReceiptRepo) Create(ctx context.Context, receipt models.OrderReceipt) (string, error) {
	if receipt.ID == "" {
		receipt.ID = uuid.New().String()
	}
	if receipt.CreatedAt.IsZero() {
		receipt.CreatedAt = time.Now()
	}

	if _, err := r.coll.InsertOne(ctx, receipt); err != nil {
		return "", err
	}
	return receipt.ID, nil
}

// GetByReference returns the receipt for a remote booking or food box ID.
func (r *mongoReceiptRepo) GetByReference(ctx context.Context, reference string) (*models.OrderReceipt, error) {
	var receipt models.OrderReceipt
	err := r.coll.FindOne(ctx, bson.M{"reference": reference}).Decode(&receipt)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrReceiptNotFound
	}
	if err != nil {
		return nil, err
	}
	return &receipt, nil
}

// GetByEmail lists a customer's receipts, newest first.
func (r *mongoReceiptRepo) GetByEmail(ctx context.Context, email string) ([]models.OrderReceipt, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.coll.Find(ctx, bson.M{"email": email}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var receipts []models.OrderReceipt
	if err := cursor.All(ctx, &receipts); err != nil {
		return nil, err
	}
	return receipts, nil
}
