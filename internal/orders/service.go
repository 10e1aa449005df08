package orders

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/hadyba/hadyshop/internal/cancelwindow"
	"github.com/hadyba/hadyshop/internal/cart"
	"github.com/hadyba/hadyshop/pkg/db/models"
	"github.com/hadyba/hadyshop/pkg/enums"
	pkgerrors "github.com/hadyba/hadyshop/pkg/errors"
)

// CancelExpiredMessage is the storefront-facing refusal once the window closed.
const CancelExpiredMessage = "L'annulation n'est plus possible après 24h"

// Senegalese mobile numbers: 9 digits starting with 7.
var phoneRe = regexp.MustCompile(`^7[0-9]{8}$`)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type variantAdjuster interface {
	FindVariant(ctx context.Context, productID uuid.UUID, size, color string) (*models.ProductVariant, error)
	AdjustVariantStock(ctx context.Context, variantID uuid.UUID, delta int) error
}

type countInvalidator interface {
	Invalidate(ctx context.Context, userID uuid.UUID) error
}

// Service exposes order lifecycle operations.
type Service interface {
	Submit(ctx context.Context, userID uuid.UUID, input SubmitOrderInput) (*models.Order, error)
	Cancel(ctx context.Context, userID, orderID uuid.UUID) (*models.Order, error)
	ListForUser(ctx context.Context, userID uuid.UUID) ([]models.Order, error)
	List(ctx context.Context) ([]models.Order, error)
	Get(ctx context.Context, id uuid.UUID) (*models.Order, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status enums.OrderStatus) (*models.Order, error)
}

// SubmitOrderInput is the checkout payload.
type SubmitOrderInput struct {
	Adresse        string
	AdditionalInfo *string
	PaymentMethod  enums.PaymentMethod
	PhoneNumber    string
}

type service struct {
	repo     OrderRepository
	carts    cart.CartRepository
	products variantAdjuster
	tx       txRunner
	cache    countInvalidator
	now      func() time.Time
}

// NewService builds an order service backed by the provided stack.
func NewService(repo OrderRepository, carts cart.CartRepository, products variantAdjuster, tx txRunner, cache countInvalidator) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("order repository required")
	}
	if carts == nil {
		return nil, fmt.Errorf("cart repository required")
	}
	if products == nil {
		return nil, fmt.Errorf("variant adjuster required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if cache == nil {
		return nil, fmt.Errorf("count invalidator required")
	}
	return &service{
		repo:     repo,
		carts:    carts,
		products: products,
		tx:       tx,
		cache:    cache,
		now:      time.Now,
	}, nil
}

// Submit turns the active cart into an order and clears the cart atomically.
func (s *service) Submit(ctx context.Context, userID uuid.UUID, input SubmitOrderInput) (*models.Order, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}
	if err := validateSubmitInput(input); err != nil {
		return nil, err
	}

	activeCart, err := s.carts.FindByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart is empty")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart")
	}
	if len(activeCart.Items) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart is empty")
	}

	var created *models.Order
	if err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		txOrders := s.repo.WithTx(tx)
		txCarts := s.carts.WithTx(tx)

		for _, line := range activeCart.Items {
			variant, err := s.products.FindVariant(ctx, line.ProductID, line.Size, line.Color)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					continue
				}
				return err
			}
			if variant.Stock < line.Quantity {
				return pkgerrors.New(pkgerrors.CodeStock,
					fmt.Sprintf(cart.StockMessage, variant.Stock)).
					WithDetails(map[string]any{"availableStock": variant.Stock})
			}
			if err := s.products.AdjustVariantStock(ctx, variant.ID, -line.Quantity); err != nil {
				return err
			}
		}

		order := buildOrder(userID, activeCart, input)
		saved, err := txOrders.Create(ctx, order)
		if err != nil {
			return err
		}
		created = saved

		if err := txCarts.Clear(ctx, activeCart.ID); err != nil {
			return err
		}
		return txCarts.UpdateTotal(ctx, activeCart.ID, 0)
	}); err != nil {
		if typed := pkgerrors.As(err); typed != nil {
			return nil, typed
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "submit order")
	}

	_ = s.cache.Invalidate(ctx, userID)
	return created, nil
}

// Cancel moves an owned, pending, in-window order to its terminal cancelled
// state and puts the reserved stock back.
func (s *service) Cancel(ctx context.Context, userID, orderID uuid.UUID) (*models.Order, error) {
	order, err := s.repo.FindByIDForUser(ctx, orderID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
	}

	if order.Status != enums.OrderStatusPending {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "order can no longer be cancelled")
	}

	now := s.now()
	if !cancelwindow.Allows(order.CreatedAt, now) {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, CancelExpiredMessage)
	}

	if err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		txOrders := s.repo.WithTx(tx)

		for _, line := range order.Items {
			if line.ProductID == nil {
				continue
			}
			variant, err := s.products.FindVariant(ctx, *line.ProductID, line.Size, line.Color)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					continue
				}
				return err
			}
			if err := s.products.AdjustVariantStock(ctx, variant.ID, line.Quantity); err != nil {
				return err
			}
		}

		order.Status = enums.OrderStatusCancelled
		order.CancelledAt = &now
		_, err := txOrders.Save(ctx, order)
		return err
	}); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "cancel order")
	}

	return order, nil
}

// ListForUser returns the caller's order history.
func (s *service) ListForUser(ctx context.Context, userID uuid.UUID) ([]models.Order, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}
	return s.repo.ListByUser(ctx, userID)
}

// List returns every order for the admin table.
func (s *service) List(ctx context.Context) ([]models.Order, error) {
	return s.repo.List(ctx)
}

// Get loads one order for the admin detail view.
func (s *service) Get(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	order, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
	}
	return order, nil
}

// UpdateStatus applies an admin status transition. Terminal states are final.
func (s *service) UpdateStatus(ctx context.Context, id uuid.UUID, status enums.OrderStatus) (*models.Order, error) {
	if !status.Valid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown order status")
	}

	order, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if order.Status == status {
		return order, nil
	}
	if order.Status.Terminal() {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "order status is terminal")
	}

	order.Status = status
	if status == enums.OrderStatusCancelled {
		now := s.now()
		order.CancelledAt = &now
	}
	if _, err := s.repo.Save(ctx, order); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update order status")
	}
	return order, nil
}

func validateSubmitInput(input SubmitOrderInput) error {
	if strings.TrimSpace(input.Adresse) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "adresse is required")
	}
	if !input.PaymentMethod.Valid() {
		return pkgerrors.New(pkgerrors.CodeValidation, "payment method must be OM or WAVE")
	}
	if !phoneRe.MatchString(strings.TrimSpace(input.PhoneNumber)) {
		return pkgerrors.New(pkgerrors.CodeValidation, "phone number must match 7XXXXXXXX")
	}
	return nil
}

func buildOrder(userID uuid.UUID, activeCart *models.Cart, input SubmitOrderInput) *models.Order {
	items := make([]models.OrderItem, 0, len(activeCart.Items))
	for _, line := range activeCart.Items {
		productID := line.ProductID
		items = append(items, models.OrderItem{
			ProductID: &productID,
			Name:      line.Name,
			Image:     line.Image,
			Size:      line.Size,
			Color:     line.Color,
			UnitPrice: line.UnitPrice,
			Quantity:  line.Quantity,
			Price:     line.Price,
		})
	}

	return &models.Order{
		UserID:         userID,
		Items:          items,
		Adresse:        strings.TrimSpace(input.Adresse),
		AdditionalInfo: input.AdditionalInfo,
		PaymentMethod:  input.PaymentMethod,
		PhoneNumber:    strings.TrimSpace(input.PhoneNumber),
		PaymentStatus:  enums.PaymentStatusPending,
		Status:         enums.OrderStatusPending,
		Total:          activeCart.Total,
	}
}
