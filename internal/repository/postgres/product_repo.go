package postgres

import (
	"context"

	"coachhub/coaching-app/internal/domain"
	"coachhub/coaching-app/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// productRepository implements repository.ProductRepository on postgres.
type productRepository struct {
	db *gorm.DB
}

// NewProductRepository creates a postgres-backed product repository.
func NewProductRepository(db *gorm.DB) repository.ProductRepository {
	return &productRepository{db: db}
}

func (r *productRepository) GetByBarcode(ctx context.Context, barcode string) (*domain.Product, error) {
	var product domain.Product
	err := r.db.WithContext(ctx).First(&product, "barcode = ?", barcode).Error
	if err != nil {
		return nil, translateError(err)
	}
	return &product, nil
}

func (r *productRepository) SaveHistory(ctx context.Context, entry *domain.CustomerHistoryProduct) error {
	return translateError(r.db.WithContext(ctx).Create(entry).Error)
}

func (r *productRepository) GetHistoryByCustomerID(ctx context.Context, customerID uuid.UUID, limit int) ([]domain.CustomerHistoryProduct, error) {
	if limit <= 0 {
		limit = 50
	}
	var history []domain.CustomerHistoryProduct
	err := r.db.WithContext(ctx).
		Where("customer_id = ?", customerID).
		Order("created_at DESC").
		Limit(limit).
		Find(&history).Error
	if err != nil {
		return nil, translateError(err)
	}
	return history, nil
}
