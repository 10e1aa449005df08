package cart

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/hadyba/hadyshop/pkg/db/models"
	pkgerrors "github.com/hadyba/hadyshop/pkg/errors"
	"github.com/hadyba/hadyshop/pkg/types"
)

// StockMessage is the storefront-facing text for an insufficient stock refusal.
const StockMessage = "Stock insuffisant. Seulement %d disponible(s)."

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type productLoader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
	FindVariant(ctx context.Context, productID uuid.UUID, size, color string) (*models.ProductVariant, error)
}

type countCache interface {
	Get(ctx context.Context, userID uuid.UUID) (int64, bool)
	Set(ctx context.Context, userID uuid.UUID, count int64) error
	Invalidate(ctx context.Context, userID uuid.UUID) error
}

// Service exposes cart operations for the storefront.
type Service interface {
	GetCart(ctx context.Context, userID uuid.UUID) (*models.Cart, error)
	Count(ctx context.Context, userID uuid.UUID) (int64, error)
	AddItem(ctx context.Context, userID uuid.UUID, input AddItemInput) (*models.Cart, error)
	UpdateQuantity(ctx context.Context, userID uuid.UUID, itemID uuid.UUID, quantity int) (*models.Cart, error)
	RemoveItem(ctx context.Context, userID uuid.UUID, itemID uuid.UUID) (*models.Cart, error)
}

// AddItemInput is the payload for adding one product variant to the cart.
type AddItemInput struct {
	ProductID uuid.UUID
	Size      string
	Color     string
	Quantity  int
}

type service struct {
	repo     CartRepository
	tx       txRunner
	products productLoader
	cache    countCache
}

// NewService builds a cart service backed by the provided stack.
func NewService(repo CartRepository, tx txRunner, products productLoader, cache countCache) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("cart repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if products == nil {
		return nil, fmt.Errorf("product loader required")
	}
	if cache == nil {
		return nil, fmt.Errorf("count cache required")
	}
	return &service{repo: repo, tx: tx, products: products, cache: cache}, nil
}

// GetCart returns the user's cart, or an empty unsaved cart when none exists.
func (s *service) GetCart(ctx context.Context, userID uuid.UUID) (*models.Cart, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}

	cart, err := s.repo.FindByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &models.Cart{UserID: userID, Items: []models.CartItem{}}, nil
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart")
	}
	return cart, nil
}

// Count returns the badge count, read through the Redis cache.
func (s *service) Count(ctx context.Context, userID uuid.UUID) (int64, error) {
	if userID == uuid.Nil {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}

	if count, ok := s.cache.Get(ctx, userID); ok {
		return count, nil
	}

	count, err := s.repo.CountItems(ctx, userID)
	if err != nil {
		return 0, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count cart items")
	}
	_ = s.cache.Set(ctx, userID, count)
	return count, nil
}

// AddItem puts a product variant in the cart, merging with an existing line
// for the same variant. Quantity is checked against variant stock.
func (s *service) AddItem(ctx context.Context, userID uuid.UUID, input AddItemInput) (*models.Cart, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}
	if input.ProductID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}
	size := strings.TrimSpace(input.Size)
	color := strings.TrimSpace(input.Color)
	if size == "" || color == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "size and color are required")
	}
	if input.Quantity < 1 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be at least 1")
	}

	product, err := s.products.FindByID(ctx, input.ProductID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}

	variant, err := s.products.FindVariant(ctx, product.ID, size, color)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "selected variant is not available")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load variant")
	}

	if err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)

		cart, err := txRepo.FindByUser(ctx, userID)
		if err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}
			cart, err = txRepo.Create(ctx, &models.Cart{UserID: userID})
			if err != nil {
				return err
			}
		}

		item, err := txRepo.FindItemByVariant(ctx, cart.ID, product.ID, size, color)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		newQty := input.Quantity
		if item != nil {
			newQty += item.Quantity
		}
		if variant.Stock < newQty {
			return stockError(variant.Stock)
		}

		if item == nil {
			item = &models.CartItem{
				CartID:    cart.ID,
				ProductID: product.ID,
				Name:      product.Name,
				Image:     firstImage(product),
				Size:      size,
				Color:     color,
				UnitPrice: product.Price,
			}
		}
		item.Quantity = newQty
		item.Price = item.UnitPrice * int64(newQty)
		if _, err := txRepo.SaveItem(ctx, item); err != nil {
			return err
		}

		return recomputeTotal(ctx, txRepo, cart.ID)
	}); err != nil {
		if typed := pkgerrors.As(err); typed != nil {
			return nil, typed
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "add cart item")
	}

	_ = s.cache.Invalidate(ctx, userID)
	return s.GetCart(ctx, userID)
}

// UpdateQuantity settles a quantity change. Anything below one removes the
// line instead.
func (s *service) UpdateQuantity(ctx context.Context, userID uuid.UUID, itemID uuid.UUID, quantity int) (*models.Cart, error) {
	if quantity < 1 {
		return s.RemoveItem(ctx, userID, itemID)
	}
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}

	cart, err := s.repo.FindByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "cart not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart")
	}

	item, err := s.repo.FindItem(ctx, cart.ID, itemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "cart item not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart item")
	}

	available := 0
	variant, err := s.products.FindVariant(ctx, item.ProductID, item.Size, item.Color)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load variant")
	}
	if variant != nil {
		available = variant.Stock
	}
	if available < quantity {
		return nil, stockError(available)
	}

	if err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)
		item.Quantity = quantity
		item.Price = item.UnitPrice * int64(quantity)
		if _, err := txRepo.SaveItem(ctx, item); err != nil {
			return err
		}
		return recomputeTotal(ctx, txRepo, cart.ID)
	}); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update cart item")
	}

	_ = s.cache.Invalidate(ctx, userID)
	return s.GetCart(ctx, userID)
}

// RemoveItem drops one line and settles the total.
func (s *service) RemoveItem(ctx context.Context, userID uuid.UUID, itemID uuid.UUID) (*models.Cart, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}

	cart, err := s.repo.FindByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "cart not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart")
	}

	if _, err := s.repo.FindItem(ctx, cart.ID, itemID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "cart item not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart item")
	}

	if err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)
		if err := txRepo.DeleteItem(ctx, itemID); err != nil {
			return err
		}
		return recomputeTotal(ctx, txRepo, cart.ID)
	}); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "remove cart item")
	}

	_ = s.cache.Invalidate(ctx, userID)
	return s.GetCart(ctx, userID)
}

func stockError(available int) *pkgerrors.Error {
	return pkgerrors.New(pkgerrors.CodeStock, fmt.Sprintf(StockMessage, available)).
		WithDetails(map[string]any{"availableStock": available})
}

func recomputeTotal(ctx context.Context, repo CartRepository, cartID uuid.UUID) error {
	items, err := repo.ListItems(ctx, cartID)
	if err != nil {
		return err
	}
	var total int64
	for _, item := range items {
		total += item.Price
	}
	return repo.UpdateTotal(ctx, cartID, total)
}

func firstImage(product *models.Product) *types.Image {
	if len(product.Images) == 0 {
		return nil
	}
	img := product.Images[0]
	return &img
}
