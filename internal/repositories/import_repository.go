package repositories

import (
	"errors"
	"fmt"

	"github.com/NixySoftware/ns-flex-insights/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrImportNotFound = errors.New("import not found")

// importRepository implements ImportRepositoryInterface
type importRepository struct {
	db *gorm.DB
}

// NewImportRepository creates a new import repository
func NewImportRepository(db *gorm.DB) ImportRepositoryInterface {
	return &importRepository{db: db}
}

// Create stores the import and its transactions in one database transaction.
func (r *importRepository) Create(imp *models.Import, transactions []models.Transaction) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(imp).Error; err != nil {
			return fmt.Errorf("failed to create import: %w", err)
		}

		for i := range transactions {
			transactions[i].ImportID = imp.ID
		}

		if len(transactions) > 0 {
			if err := tx.CreateInBatches(transactions, 200).Error; err != nil {
				return fmt.Errorf("failed to create transactions: %w", err)
			}
		}

		return nil
	})
}

// GetByID retrieves an import by ID
func (r *importRepository) GetByID(id uuid.UUID) (*models.Import, error) {
	imp := &models.Import{}
	if err := r.db.First(imp, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrImportNotFound
		}
		return nil, fmt.Errorf("failed to get import: %w", err)
	}
	return imp, nil
}

// List retrieves all imports, newest first
func (r *importRepository) List() ([]models.Import, error) {
	var imports []models.Import
	if err := r.db.Order("created_at DESC").Find(&imports).Error; err != nil {
		return nil, fmt.Errorf("failed to list imports: %w", err)
	}
	return imports, nil
}
