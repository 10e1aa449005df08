package products

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/hadyba/hadyshop/pkg/db/models"
)

func TestRepositoryProductFlow(t *testing.T) {
	conn := openTestDB(t)
	tx := conn.Begin()
	if tx.Error != nil {
		t.Fatalf("begin tx: %v", tx.Error)
	}
	t.Cleanup(func() {
		_ = tx.Rollback()
	})

	repo := NewRepository(tx)
	ctx := context.Background()

	category := mustCreateCategory(t, tx, "Chaussures")
	product := buildProduct(UpsertProductInput{
		Name:       "Sandales cuir",
		Price:      15000,
		CategoryID: category.ID,
		Variants: []VariantInput{
			{Size: "40", Color: "noir", Stock: 3},
			{Size: "41", Color: "noir", Stock: 2},
		},
	})

	created, err := repo.Create(ctx, product)
	if err != nil {
		t.Fatalf("create product: %v", err)
	}
	if created.ID == uuid.Nil {
		t.Fatal("expected product id to be generated")
	}

	detail, err := repo.FindByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("find product: %v", err)
	}
	if len(detail.Variants) != 2 {
		t.Fatalf("expected 2 variants, got %d", len(detail.Variants))
	}
	if detail.Category == nil || detail.Category.Name != "Chaussures" {
		t.Fatalf("expected category preloaded, got %+v", detail.Category)
	}

	variant, err := repo.FindVariant(ctx, created.ID, "40", "noir")
	if err != nil {
		t.Fatalf("find variant: %v", err)
	}
	if variant.Stock != 3 {
		t.Fatalf("expected stock 3, got %d", variant.Stock)
	}

	if err := repo.AdjustVariantStock(ctx, variant.ID, -2); err != nil {
		t.Fatalf("adjust stock: %v", err)
	}
	adjusted, err := repo.FindVariant(ctx, created.ID, "40", "noir")
	if err != nil {
		t.Fatalf("find variant after adjust: %v", err)
	}
	if adjusted.Stock != 1 {
		t.Fatalf("expected stock 1 after adjust, got %d", adjusted.Stock)
	}
}

func TestRepositorySoftDeleteAndRestore(t *testing.T) {
	conn := openTestDB(t)
	tx := conn.Begin()
	if tx.Error != nil {
		t.Fatalf("begin tx: %v", tx.Error)
	}
	t.Cleanup(func() {
		_ = tx.Rollback()
	})

	repo := NewRepository(tx)
	ctx := context.Background()

	category := mustCreateCategory(t, tx, "Sacs")
	created, err := repo.Create(ctx, buildProduct(UpsertProductInput{
		Name:       "Sac bandoulière",
		Price:      25000,
		CategoryID: category.ID,
		Variants:   []VariantInput{{Size: "unique", Color: "beige", Stock: 4}},
	}))
	if err != nil {
		t.Fatalf("create product: %v", err)
	}

	if err := repo.SoftDelete(ctx, created.ID); err != nil {
		t.Fatalf("soft delete: %v", err)
	}

	if _, err := repo.FindByID(ctx, created.ID); err == nil {
		t.Fatal("expected deleted product to be hidden")
	}

	deleted, err := repo.ListDeleted(ctx)
	if err != nil {
		t.Fatalf("list deleted: %v", err)
	}
	if len(deleted) != 1 {
		t.Fatalf("expected 1 deleted product, got %d", len(deleted))
	}

	if err := repo.Restore(ctx, created.ID); err != nil {
		t.Fatalf("restore: %v", err)
	}
	if _, err := repo.FindByID(ctx, created.ID); err != nil {
		t.Fatalf("expected restored product to be visible: %v", err)
	}
}

func mustCreateCategory(t *testing.T, tx *gorm.DB, name string) *models.Category {
	t.Helper()
	category := &models.Category{Name: name}
	if err := tx.Create(category).Error; err != nil {
		t.Fatalf("create category: %v", err)
	}
	return category
}
