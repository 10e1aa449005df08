package products

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/hadyba/hadyshop/internal/repo"
	"github.com/hadyba/hadyshop/pkg/db/models"
)

// ProductRepository defines persistence operations for the product catalog.
type ProductRepository interface {
	WithTx(tx *gorm.DB) ProductRepository
	Create(ctx context.Context, product *models.Product) (*models.Product, error)
	Update(ctx context.Context, product *models.Product) (*models.Product, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
	FindDeletedByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
	List(ctx context.Context, filter ListFilter) ([]models.Product, error)
	ListDeleted(ctx context.Context) ([]models.Product, error)
	SoftDelete(ctx context.Context, id uuid.UUID) error
	Restore(ctx context.Context, id uuid.UUID) error
	ReplaceVariants(ctx context.Context, productID uuid.UUID, variants []models.ProductVariant) error
	FindVariant(ctx context.Context, productID uuid.UUID, size, color string) (*models.ProductVariant, error)
	AdjustVariantStock(ctx context.Context, variantID uuid.UUID, delta int) error
}

// ListFilter narrows the public product listing.
type ListFilter struct {
	CategoryID *uuid.UUID
	Query      string
}

// Repository is the GORM-backed product store.
type Repository struct {
	repo.Base
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{Base: repo.NewBase(db)}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) ProductRepository {
	return &Repository{Base: r.Rebind(tx)}
}

// Create inserts a new product row with its variants.
func (r *Repository) Create(ctx context.Context, product *models.Product) (*models.Product, error) {
	if err := r.DB(ctx).Create(product).Error; err != nil {
		return nil, err
	}
	return product, nil
}

// Update saves the product row. Variants are replaced separately.
func (r *Repository) Update(ctx context.Context, product *models.Product) (*models.Product, error) {
	if err := r.DB(ctx).Omit("Variants").Save(product).Error; err != nil {
		return nil, err
	}
	return product, nil
}

// FindByID loads a live product with category and variants.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	var product models.Product
	err := r.DB(ctx).
		Preload("Category").
		Preload("Variants", func(db *gorm.DB) *gorm.DB {
			return db.Order("size ASC, color ASC")
		}).
		First(&product, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// FindDeletedByID loads a soft-deleted product.
func (r *Repository) FindDeletedByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	var product models.Product
	err := r.DB(ctx).
		Unscoped().
		Where("id = ? AND deleted_at IS NOT NULL", id).
		First(&product).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// List returns live products, newest first.
func (r *Repository) List(ctx context.Context, filter ListFilter) ([]models.Product, error) {
	qb := r.DB(ctx).
		Preload("Category").
		Preload("Variants")

	if filter.CategoryID != nil {
		qb = qb.Where("category_id = ?", *filter.CategoryID)
	}
	if filter.Query != "" {
		qb = qb.Where("LOWER(name) LIKE ?", "%"+filter.Query+"%")
	}

	var rows []models.Product
	err := qb.Order("created_at DESC").Find(&rows).Error
	return rows, err
}

// ListDeleted returns soft-deleted products only.
func (r *Repository) ListDeleted(ctx context.Context) ([]models.Product, error) {
	var rows []models.Product
	err := r.DB(ctx).
		Unscoped().
		Preload("Category").
		Where("products.deleted_at IS NOT NULL").
		Order("deleted_at DESC").
		Find(&rows).Error
	return rows, err
}

// SoftDelete marks the product deleted.
func (r *Repository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	return r.DB(ctx).
		Where("id = ?", id).
		Delete(&models.Product{}).Error
}

// Restore clears deleted_at for a soft-deleted product.
func (r *Repository) Restore(ctx context.Context, id uuid.UUID) error {
	return r.DB(ctx).
		Unscoped().
		Model(&models.Product{}).
		Where("id = ?", id).
		Update("deleted_at", nil).Error
}

// ReplaceVariants atomically replaces the variant rows for the product.
func (r *Repository) ReplaceVariants(ctx context.Context, productID uuid.UUID, variants []models.ProductVariant) error {
	tx := r.DB(ctx)
	if err := tx.Where("product_id = ?", productID).Delete(&models.ProductVariant{}).Error; err != nil {
		return err
	}
	if len(variants) == 0 {
		return nil
	}
	for i := range variants {
		variants[i].ProductID = productID
	}
	return tx.Create(&variants).Error
}

// FindVariant returns the stock row for one size/color combination.
func (r *Repository) FindVariant(ctx context.Context, productID uuid.UUID, size, color string) (*models.ProductVariant, error) {
	var variant models.ProductVariant
	err := r.DB(ctx).
		Where("product_id = ? AND size = ? AND color = ?", productID, size, color).
		First(&variant).Error
	if err != nil {
		return nil, err
	}
	return &variant, nil
}

// AdjustVariantStock applies a stock delta to the variant and mirrors it on
// the product aggregate.
func (r *Repository) AdjustVariantStock(ctx context.Context, variantID uuid.UUID, delta int) error {
	tx := r.DB(ctx)

	var variant models.ProductVariant
	if err := tx.First(&variant, "id = ?", variantID).Error; err != nil {
		return err
	}

	if err := tx.Model(&models.ProductVariant{}).
		Where("id = ?", variantID).
		Update("stock", gorm.Expr("stock + ?", delta)).Error; err != nil {
		return err
	}

	return tx.Model(&models.Product{}).
		Where("id = ?", variant.ProductID).
		Update("stock", gorm.Expr("stock + ?", delta)).Error
}
