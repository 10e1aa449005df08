package controllers

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/hadyba/hadyshop/api/middleware"
	"github.com/hadyba/hadyshop/api/responses"
	"github.com/hadyba/hadyshop/api/validators"
	cartsvc "github.com/hadyba/hadyshop/internal/cart"
	"github.com/hadyba/hadyshop/pkg/db/models"
	pkgerrors "github.com/hadyba/hadyshop/pkg/errors"
	"github.com/hadyba/hadyshop/pkg/logger"
	"github.com/hadyba/hadyshop/pkg/types"
)

// CartGet returns the caller's active cart, empty if none has been created.
func CartGet(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := callerID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		record, err := svc.GetCart(r.Context(), userID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, newCartResponse(record))
	}
}

// CartCount returns the total quantity across the caller's cart lines.
func CartCount(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := callerID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		count, err := svc.Count(r.Context(), userID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]int64{"count": count})
	}
}

// CartAddItem adds one product variant to the caller's cart, merging into an
// existing line for the same variant.
func CartAddItem(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := callerID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload addCartItemRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		record, err := svc.AddItem(r.Context(), userID, cartsvc.AddItemInput{
			ProductID: payload.ProductID,
			Size:      payload.VariantInfo.Size,
			Color:     payload.VariantInfo.Color,
			Quantity:  payload.Quantity,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, newCartResponse(record))
	}
}

// CartUpdateQuantity replaces one line's quantity; a quantity below one
// removes the line.
func CartUpdateQuantity(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := callerID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload updateCartItemRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		record, err := svc.UpdateQuantity(r.Context(), userID, payload.ItemID, payload.Quantity)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, newCartResponse(record))
	}
}

// CartRemoveItem deletes one line from the caller's cart.
func CartRemoveItem(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := callerID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		itemID, err := validators.ParseUUIDParam(r, "itemId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		record, err := svc.RemoveItem(r.Context(), userID, itemID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, newCartResponse(record))
	}
}

type cartVariantInfo struct {
	Size  string `json:"size" validate:"required"`
	Color string `json:"color" validate:"required"`
}

type addCartItemRequest struct {
	ProductID   uuid.UUID       `json:"productId" validate:"required"`
	VariantInfo cartVariantInfo `json:"variantInfo" validate:"required"`
	Quantity    int             `json:"quantity" validate:"required,min=1"`
}

type updateCartItemRequest struct {
	ItemID   uuid.UUID `json:"itemId" validate:"required"`
	Quantity int       `json:"quantity"`
}

type cartResponse struct {
	ID        uuid.UUID          `json:"id"`
	Items     []cartItemResponse `json:"items"`
	Total     int64              `json:"total"`
	Count     int                `json:"count"`
	UpdatedAt time.Time          `json:"updated_at"`
}

type cartItemResponse struct {
	ID        uuid.UUID    `json:"id"`
	ProductID uuid.UUID    `json:"productId"`
	Name      string       `json:"name"`
	Image     *types.Image `json:"image,omitempty"`
	Size      string       `json:"size"`
	Color     string       `json:"color"`
	UnitPrice int64        `json:"unitPrice"`
	Quantity  int          `json:"quantity"`
	Price     int64        `json:"price"`
}

func newCartResponse(record *models.Cart) cartResponse {
	items := make([]cartItemResponse, len(record.Items))
	count := 0
	for i, item := range record.Items {
		count += item.Quantity
		items[i] = cartItemResponse{
			ID:        item.ID,
			ProductID: item.ProductID,
			Name:      item.Name,
			Image:     item.Image,
			Size:      item.Size,
			Color:     item.Color,
			UnitPrice: item.UnitPrice,
			Quantity:  item.Quantity,
			Price:     item.Price,
		}
	}
	return cartResponse{
		ID:        record.ID,
		Items:     items,
		Total:     record.Total,
		Count:     count,
		UpdatedAt: record.UpdatedAt,
	}
}

func callerID(r *http.Request) (uuid.UUID, error) {
	raw := middleware.UserIDFromContext(r.Context())
	if raw == "" {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user context missing")
	}
	userID, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "invalid user id")
	}
	return userID, nil
}
