package categories

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/hadyba/hadyshop/pkg/db"
	"github.com/hadyba/hadyshop/pkg/db/models"
	pkgerrors "github.com/hadyba/hadyshop/pkg/errors"
	"github.com/hadyba/hadyshop/pkg/types"
)

// Service exposes category catalog operations.
type Service interface {
	List(ctx context.Context) ([]models.Category, error)
	ListDeleted(ctx context.Context) ([]models.Category, error)
	Get(ctx context.Context, id uuid.UUID) (*models.Category, error)
	Create(ctx context.Context, input UpsertCategoryInput) (*models.Category, error)
	Update(ctx context.Context, id uuid.UUID, input UpsertCategoryInput) (*models.Category, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Restore(ctx context.Context, id uuid.UUID) (*models.Category, error)
}

// UpsertCategoryInput captures the admin payload for create/update.
type UpsertCategoryInput struct {
	Name        string
	Description *string
	Image       *types.Image
}

type service struct {
	repo CategoryRepository
}

// NewService builds a category service backed by the provided repository.
func NewService(repo CategoryRepository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("category repository required")
	}
	return &service{repo: repo}, nil
}

// List returns live categories for the storefront.
func (s *service) List(ctx context.Context) ([]models.Category, error) {
	return s.repo.List(ctx)
}

// ListDeleted returns soft-deleted categories for the admin recycle bin.
func (s *service) ListDeleted(ctx context.Context) ([]models.Category, error) {
	return s.repo.ListDeleted(ctx)
}

// Get loads one live category.
func (s *service) Get(ctx context.Context, id uuid.UUID) (*models.Category, error) {
	category, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "category not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load category")
	}
	return category, nil
}

// Create validates and inserts a new category.
func (s *service) Create(ctx context.Context, input UpsertCategoryInput) (*models.Category, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "category name is required")
	}

	category := &models.Category{
		Name:        name,
		Description: input.Description,
		Image:       input.Image,
	}
	created, err := s.repo.Create(ctx, category)
	if err != nil {
		if db.IsUniqueViolation(err, "") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "category name already exists")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create category")
	}
	return created, nil
}

// Update applies the provided payload to an existing category.
func (s *service) Update(ctx context.Context, id uuid.UUID, input UpsertCategoryInput) (*models.Category, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "category name is required")
	}

	category, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	category.Name = name
	category.Description = input.Description
	category.Image = input.Image

	updated, err := s.repo.Update(ctx, category)
	if err != nil {
		if db.IsUniqueViolation(err, "") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "category name already exists")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update category")
	}
	return updated, nil
}

// Delete soft-deletes the category. Categories still referenced by live
// products cannot be removed.
func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}

	count, err := s.repo.CountProducts(ctx, id)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count category products")
	}
	if count > 0 {
		return pkgerrors.New(pkgerrors.CodeConflict, "category still has products")
	}

	if err := s.repo.SoftDelete(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete category")
	}
	return nil
}

// Restore brings a soft-deleted category back into listings.
func (s *service) Restore(ctx context.Context, id uuid.UUID) (*models.Category, error) {
	if _, err := s.repo.FindDeletedByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "deleted category not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load deleted category")
	}

	if err := s.repo.Restore(ctx, id); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "restore category")
	}
	return s.Get(ctx, id)
}
