package repositories

import (
	"fmt"
	"time"

	"github.com/NixySoftware/ns-flex-insights/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// transactionRepository implements TransactionRepositoryInterface
type transactionRepository struct {
	db *gorm.DB
}

// NewTransactionRepository creates a new transaction repository
func NewTransactionRepository(db *gorm.DB) TransactionRepositoryInterface {
	return &transactionRepository{db: db}
}

// GetByImportID retrieves the transactions of an import in canonical order.
func (r *transactionRepository) GetByImportID(importID uuid.UUID) ([]models.Transaction, error) {
	var transactions []models.Transaction
	if err := r.db.Where("import_id = ?", importID).
		Order("start ASC, row_index ASC").
		Find(&transactions).Error; err != nil {
		return nil, fmt.Errorf("failed to get transactions: %w", err)
	}
	return transactions, nil
}

// GetByImportIDAndRange retrieves the transactions of an import whose start
// time falls within [from, to], in canonical order. A zero bound leaves that
// side of the window open.
func (r *transactionRepository) GetByImportIDAndRange(importID uuid.UUID, from, to time.Time) ([]models.Transaction, error) {
	query := r.db.Where("import_id = ?", importID)
	if !from.IsZero() {
		query = query.Where("start >= ?", from)
	}
	if !to.IsZero() {
		query = query.Where("start <= ?", to)
	}

	var transactions []models.Transaction
	if err := query.Order("start ASC, row_index ASC").
		Find(&transactions).Error; err != nil {
		return nil, fmt.Errorf("failed to get transactions by range: %w", err)
	}
	return transactions, nil
}
