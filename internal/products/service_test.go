package products

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/hadyba/hadyshop/pkg/db/models"
	pkgerrors "github.com/hadyba/hadyshop/pkg/errors"
)

func TestBuildProductDerivesAggregates(t *testing.T) {
	t.Parallel()

	input := UpsertProductInput{
		Name:       "Sandales cuir",
		Price:      15000,
		CategoryID: uuid.New(),
		Variants: []VariantInput{
			{Size: "40", Color: "noir", Stock: 3},
			{Size: "41", Color: "noir", Stock: 2},
			{Size: "40", Color: "marron", Stock: 5},
		},
	}

	product := buildProduct(input)

	if product.Stock != 10 {
		t.Fatalf("expected aggregate stock 10, got %d", product.Stock)
	}
	if len(product.Sizes) != 2 || product.Sizes[0] != "40" || product.Sizes[1] != "41" {
		t.Fatalf("unexpected sizes: %v", product.Sizes)
	}
	if len(product.Colors) != 2 || product.Colors[0] != "noir" || product.Colors[1] != "marron" {
		t.Fatalf("unexpected colors: %v", product.Colors)
	}
	if len(product.Variants) != 3 {
		t.Fatalf("expected 3 variants, got %d", len(product.Variants))
	}
}

func TestServiceCreateValidatesPayload(t *testing.T) {
	t.Parallel()

	categoryID := uuid.New()
	base := UpsertProductInput{
		Name:       "Sac bandoulière",
		Price:      25000,
		CategoryID: categoryID,
		Variants:   []VariantInput{{Size: "unique", Color: "beige", Stock: 4}},
	}

	cases := []struct {
		name   string
		mutate func(*UpsertProductInput)
	}{
		{"empty name", func(in *UpsertProductInput) { in.Name = " " }},
		{"zero price", func(in *UpsertProductInput) { in.Price = 0 }},
		{"missing category", func(in *UpsertProductInput) { in.CategoryID = uuid.Nil }},
		{"no variants", func(in *UpsertProductInput) { in.Variants = nil }},
		{"negative stock", func(in *UpsertProductInput) {
			in.Variants = []VariantInput{{Size: "unique", Color: "beige", Stock: -1}}
		}},
		{"blank variant color", func(in *UpsertProductInput) {
			in.Variants = []VariantInput{{Size: "unique", Color: " ", Stock: 1}}
		}},
		{"duplicate variant", func(in *UpsertProductInput) {
			in.Variants = []VariantInput{
				{Size: "unique", Color: "beige", Stock: 1},
				{Size: "unique", Color: "beige", Stock: 2},
			}
		}},
	}

	svc := newTestService(&stubProductRepo{}, categoryID)

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			input := base
			tc.mutate(&input)
			_, err := svc.Create(context.Background(), input)
			if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
				t.Fatalf("expected validation error, got %v", err)
			}
		})
	}
}

func TestServiceCreateRejectsUnknownCategory(t *testing.T) {
	t.Parallel()

	svc := newTestService(&stubProductRepo{}, uuid.New())
	_, err := svc.Create(context.Background(), UpsertProductInput{
		Name:       "Sac",
		Price:      1000,
		CategoryID: uuid.New(),
		Variants:   []VariantInput{{Size: "unique", Color: "beige", Stock: 1}},
	})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found error, got %v", err)
	}
}

func TestServiceGetNotFound(t *testing.T) {
	t.Parallel()

	repo := &stubProductRepo{findErr: gorm.ErrRecordNotFound}
	svc := newTestService(repo, uuid.New())

	_, err := svc.Get(context.Background(), uuid.New())
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found error, got %v", err)
	}
}

func TestServiceRestoreRequiresDeletedProduct(t *testing.T) {
	t.Parallel()

	repo := &stubProductRepo{findDeletedErr: gorm.ErrRecordNotFound}
	svc := newTestService(repo, uuid.New())

	_, err := svc.Restore(context.Background(), uuid.New())
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found error, got %v", err)
	}
}

func newTestService(repo ProductRepository, knownCategory uuid.UUID) Service {
	svc, err := NewService(repo, stubTxRunner{}, categoryLoaderFunc(func(ctx context.Context, id uuid.UUID) (*models.Category, error) {
		if id != knownCategory {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "category not found")
		}
		return &models.Category{ID: id, Name: "Sacs"}, nil
	}))
	if err != nil {
		panic(err)
	}
	return svc
}

type stubTxRunner struct{}

func (stubTxRunner) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return fn(nil)
}

type categoryLoaderFunc func(ctx context.Context, id uuid.UUID) (*models.Category, error)

func (fn categoryLoaderFunc) Get(ctx context.Context, id uuid.UUID) (*models.Category, error) {
	return fn(ctx, id)
}

type stubProductRepo struct {
	product        *models.Product
	findErr        error
	findDeletedErr error
}

func (s *stubProductRepo) WithTx(tx *gorm.DB) ProductRepository { return s }
func (s *stubProductRepo) Create(ctx context.Context, product *models.Product) (*models.Product, error) {
	return product, nil
}
func (s *stubProductRepo) Update(ctx context.Context, product *models.Product) (*models.Product, error) {
	return product, nil
}
func (s *stubProductRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	if s.findErr != nil {
		return nil, s.findErr
	}
	if s.product == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return s.product, nil
}
func (s *stubProductRepo) FindDeletedByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	if s.findDeletedErr != nil {
		return nil, s.findDeletedErr
	}
	if s.product == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return s.product, nil
}
func (s *stubProductRepo) List(ctx context.Context, filter ListFilter) ([]models.Product, error) {
	return nil, nil
}
func (s *stubProductRepo) ListDeleted(ctx context.Context) ([]models.Product, error) {
	return nil, nil
}
func (s *stubProductRepo) SoftDelete(ctx context.Context, id uuid.UUID) error { return nil }
func (s *stubProductRepo) Restore(ctx context.Context, id uuid.UUID) error    { return nil }
func (s *stubProductRepo) ReplaceVariants(ctx context.Context, productID uuid.UUID, variants []models.ProductVariant) error {
	return nil
}
func (s *stubProductRepo) FindVariant(ctx context.Context, productID uuid.UUID, size, color string) (*models.ProductVariant, error) {
	return nil, gorm.ErrRecordNotFound
}
func (s *stubProductRepo) AdjustVariantStock(ctx context.Context, variantID uuid.UUID, delta int) error {
	return nil
}
