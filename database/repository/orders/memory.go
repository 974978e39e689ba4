package ordersRepo

import (
	"context"
	"sync"
	"time"

	"walegrills/models"

	"github.com/google/uuid"
)

// MemoryReceiptRepo keeps receipts in process; used when Mongo is not configured and in tests.
type MemoryReceiptRepo struct {
	mu       sync.Mutex
	receipts []models.OrderReceipt
}

func NewMemoryReceiptRepo() *MemoryReceiptRepo {
	return &MemoryReceiptRepo{}
}

func (r *MemoryReceiptRepo) Create(_ context.Context, receipt models.OrderReceipt) (string, error) {
	if receipt.ID == "" {
		receipt.ID = uuid.New().String()
	}
	if receipt.CreatedAt.IsZero() {
		receipt.CreatedAt = time.Now()
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.receipts = append(r.receipts, receipt)
	return receipt.ID, nil
}

func (r *MemoryReceiptRepo) GetByReference(_ context.Context, reference string) (*models.OrderReceipt, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.receipts {
		if r.receipts[i].Reference == reference {
			receipt := r.receipts[i]
			return &receipt, nil
		}
	}
	return nil, ErrReceiptNotFound
}

func (r *MemoryReceiptRepo) GetByEmail(_ context.Context, email string) ([]models.OrderReceipt, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.OrderReceipt
	for i := len(r.receipts) - 1; i >= 0; i-- {
		if r.receipts[i].Email == email {
			out = append(out, r.receipts[i])
		}
	}
	return out, nil
}
