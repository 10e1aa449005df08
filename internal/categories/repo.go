package categories

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/hadyba/hadyshop/internal/repo"
	"github.com/hadyba/hadyshop/pkg/db/models"
)

// CategoryRepository defines persistence operations for categories.
type CategoryRepository interface {
	WithTx(tx *gorm.DB) CategoryRepository
	Create(ctx context.Context, category *models.Category) (*models.Category, error)
	Update(ctx context.Context, category *models.Category) (*models.Category, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Category, error)
	FindDeletedByID(ctx context.Context, id uuid.UUID) (*models.Category, error)
	List(ctx context.Context) ([]models.Category, error)
	ListDeleted(ctx context.Context) ([]models.Category, error)
	SoftDelete(ctx context.Context, id uuid.UUID) error
	Restore(ctx context.Context, id uuid.UUID) error
	CountProducts(ctx context.Context, categoryID uuid.UUID) (int64, error)
}

// Repository is the GORM-backed category store.
type Repository struct {
	repo.Base
}

// NewRepository constructs a category repository bound to the provided DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{Base: repo.NewBase(db)}
}

// WithTx binds the repository to a transaction.
func (r *Repository) WithTx(tx *gorm.DB) CategoryRepository {
	return &Repository{Base: r.Rebind(tx)}
}

// Create inserts a new category row.
func (r *Repository) Create(ctx context.Context, category *models.Category) (*models.Category, error) {
	if err := r.DB(ctx).Create(category).Error; err != nil {
		return nil, err
	}
	return category, nil
}

// Update saves the provided category.
func (r *Repository) Update(ctx context.Context, category *models.Category) (*models.Category, error) {
	if err := r.DB(ctx).Save(category).Error; err != nil {
		return nil, err
	}
	return category, nil
}

// FindByID loads a live category.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Category, error) {
	var category models.Category
	if err := r.DB(ctx).First(&category, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

// FindDeletedByID loads a soft-deleted category.
func (r *Repository) FindDeletedByID(ctx context.Context, id uuid.UUID) (*models.Category, error) {
	var category models.Category
	err := r.DB(ctx).
		Unscoped().
		Where("id = ? AND deleted_at IS NOT NULL", id).
		First(&category).Error
	if err != nil {
		return nil, err
	}
	return &category, nil
}

// List returns live categories, newest first.
func (r *Repository) List(ctx context.Context) ([]models.Category, error) {
	var rows []models.Category
	err := r.DB(ctx).
		Order("created_at DESC").
		Find(&rows).Error
	return rows, err
}

// ListDeleted returns soft-deleted categories only.
func (r *Repository) ListDeleted(ctx context.Context) ([]models.Category, error) {
	var rows []models.Category
	err := r.DB(ctx).
		Unscoped().
		Where("deleted_at IS NOT NULL").
		Order("deleted_at DESC").
		Find(&rows).Error
	return rows, err
}

// SoftDelete marks the category deleted.
func (r *Repository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	return r.DB(ctx).
		Where("id = ?", id).
		Delete(&models.Category{}).Error
}

// Restore clears deleted_at for a soft-deleted category.
func (r *Repository) Restore(ctx context.Context, id uuid.UUID) error {
	return r.DB(ctx).
		Unscoped().
		Model(&models.Category{}).
		Where("id = ?", id).
		Update("deleted_at", nil).Error
}

// CountProducts returns the number of live products referencing the category.
func (r *Repository) CountProducts(ctx context.Context, categoryID uuid.UUID) (int64, error) {
	var count int64
	err := r.DB(ctx).
		Model(&models.Product{}).
		Where("category_id = ?", categoryID).
		Count(&count).Error
	return count, err
}
