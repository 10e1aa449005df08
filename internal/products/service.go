package products

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/hadyba/hadyshop/pkg/db/models"
	pkgerrors "github.com/hadyba/hadyshop/pkg/errors"
	"github.com/hadyba/hadyshop/pkg/types"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type categoryLoader interface {
	Get(ctx context.Context, id uuid.UUID) (*models.Category, error)
}

// Service exposes product catalog operations.
type Service interface {
	List(ctx context.Context, filter ListFilter) ([]models.Product, error)
	ListDeleted(ctx context.Context) ([]models.Product, error)
	Get(ctx context.Context, id uuid.UUID) (*models.Product, error)
	Create(ctx context.Context, input UpsertProductInput) (*models.Product, error)
	Update(ctx context.Context, id uuid.UUID, input UpsertProductInput) (*models.Product, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Restore(ctx context.Context, id uuid.UUID) (*models.Product, error)
}

// UpsertProductInput captures the admin payload for create/update.
type UpsertProductInput struct {
	Name        string
	Description *string
	Price       int64
	CategoryID  uuid.UUID
	Images      types.Images
	Variants    []VariantInput
}

// VariantInput is one size/color stock row.
type VariantInput struct {
	Size  string
	Color string
	Stock int
}

type service struct {
	repo       ProductRepository
	tx         txRunner
	categories categoryLoader
}

// NewService builds a product service backed by the provided stack.
func NewService(repo ProductRepository, tx txRunner, categories categoryLoader) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("product repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if categories == nil {
		return nil, fmt.Errorf("category loader required")
	}
	return &service{repo: repo, tx: tx, categories: categories}, nil
}

// List returns live products for the storefront.
func (s *service) List(ctx context.Context, filter ListFilter) ([]models.Product, error) {
	filter.Query = strings.ToLower(strings.TrimSpace(filter.Query))
	return s.repo.List(ctx, filter)
}

// ListDeleted returns soft-deleted products for the admin recycle bin.
func (s *service) ListDeleted(ctx context.Context) ([]models.Product, error) {
	return s.repo.ListDeleted(ctx)
}

// Get loads one live product with category and variants.
func (s *service) Get(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}
	return product, nil
}

// Create validates and inserts a new product with its variants.
func (s *service) Create(ctx context.Context, input UpsertProductInput) (*models.Product, error) {
	if err := s.validateInput(ctx, input); err != nil {
		return nil, err
	}

	product := buildProduct(input)

	var saved *models.Product
	if err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		created, err := s.repo.WithTx(tx).Create(ctx, product)
		if err != nil {
			return err
		}
		saved = created
		return nil
	}); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create product")
	}
	return saved, nil
}

// Update applies the payload to an existing product and replaces its variants.
func (s *service) Update(ctx context.Context, id uuid.UUID, input UpsertProductInput) (*models.Product, error) {
	if err := s.validateInput(ctx, input); err != nil {
		return nil, err
	}

	existing, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	next := buildProduct(input)
	existing.Name = next.Name
	existing.Description = next.Description
	existing.Price = next.Price
	existing.CategoryID = next.CategoryID
	existing.Images = next.Images
	existing.Sizes = next.Sizes
	existing.Colors = next.Colors
	existing.Stock = next.Stock

	if err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)
		if _, err := txRepo.Update(ctx, existing); err != nil {
			return err
		}
		return txRepo.ReplaceVariants(ctx, existing.ID, next.Variants)
	}); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update product")
	}

	return s.Get(ctx, id)
}

// Delete soft-deletes the product. Carts referencing it keep their snapshot.
func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	if err := s.repo.SoftDelete(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete product")
	}
	return nil
}

// Restore brings a soft-deleted product back into listings.
func (s *service) Restore(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	if _, err := s.repo.FindDeletedByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "deleted product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load deleted product")
	}

	if err := s.repo.Restore(ctx, id); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "restore product")
	}
	return s.Get(ctx, id)
}

func (s *service) validateInput(ctx context.Context, input UpsertProductInput) error {
	if strings.TrimSpace(input.Name) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "product name is required")
	}
	if input.Price <= 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "product price must be positive")
	}
	if input.CategoryID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "category id is required")
	}
	if len(input.Variants) == 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "at least one variant is required")
	}

	seen := map[string]struct{}{}
	for _, v := range input.Variants {
		if strings.TrimSpace(v.Size) == "" || strings.TrimSpace(v.Color) == "" {
			return pkgerrors.New(pkgerrors.CodeValidation, "variant size and color are required")
		}
		if v.Stock < 0 {
			return pkgerrors.New(pkgerrors.CodeValidation, "variant stock cannot be negative")
		}
		key := v.Size + "\x00" + v.Color
		if _, dup := seen[key]; dup {
			return pkgerrors.New(pkgerrors.CodeValidation, "duplicate variant size/color combination")
		}
		seen[key] = struct{}{}
	}

	if _, err := s.categories.Get(ctx, input.CategoryID); err != nil {
		return err
	}
	return nil
}

// buildProduct derives the denormalized size/color sets and the aggregate
// stock from the variant rows.
func buildProduct(input UpsertProductInput) *models.Product {
	variants := make([]models.ProductVariant, 0, len(input.Variants))
	sizes := make([]string, 0, len(input.Variants))
	colors := make([]string, 0, len(input.Variants))
	seenSizes := map[string]struct{}{}
	seenColors := map[string]struct{}{}
	total := 0

	for _, v := range input.Variants {
		size := strings.TrimSpace(v.Size)
		color := strings.TrimSpace(v.Color)
		variants = append(variants, models.ProductVariant{
			Size:  size,
			Color: color,
			Stock: v.Stock,
		})
		if _, ok := seenSizes[size]; !ok {
			seenSizes[size] = struct{}{}
			sizes = append(sizes, size)
		}
		if _, ok := seenColors[color]; !ok {
			seenColors[color] = struct{}{}
			colors = append(colors, color)
		}
		total += v.Stock
	}

	return &models.Product{
		Name:        strings.TrimSpace(input.Name),
		Description: input.Description,
		Price:       input.Price,
		CategoryID:  input.CategoryID,
		Images:      input.Images,
		Sizes:       pq.StringArray(sizes),
		Colors:      pq.StringArray(colors),
		Stock:       total,
		Variants:    variants,
	}
}
