package controllers

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/hadyba/hadyshop/api/responses"
	"github.com/hadyba/hadyshop/api/validators"
	ordersvc "github.com/hadyba/hadyshop/internal/orders"
	"github.com/hadyba/hadyshop/pkg/db/models"
	"github.com/hadyba/hadyshop/pkg/enums"
	"github.com/hadyba/hadyshop/pkg/logger"
	"github.com/hadyba/hadyshop/pkg/types"
)

// OrderSubmit turns the caller's cart into an order and clears the cart.
func OrderSubmit(svc ordersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := callerID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload submitOrderRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		record, err := svc.Submit(r.Context(), userID, ordersvc.SubmitOrderInput{
			Adresse:        payload.Adresse,
			AdditionalInfo: payload.AdditionalInfo,
			PaymentMethod:  enums.PaymentMethod(payload.PaymentMethod),
			PhoneNumber:    payload.PhoneNumber,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, submitOrderResponse{
			OrderID: record.ID,
			Message: "Commande enregistrée avec succès",
		})
	}
}

// OrderCancel cancels one of the caller's pending orders inside the 24h window.
func OrderCancel(svc ordersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := callerID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		orderID, err := validators.ParseUUIDParam(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		record, err := svc.Cancel(r.Context(), userID, orderID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, newOrderResponse(record))
	}
}

// OrderListMine returns the caller's orders, newest first.
func OrderListMine(svc ordersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := callerID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		records, err := svc.ListForUser(r.Context(), userID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, newOrderListResponse(records))
	}
}

// AdminOrderList returns every order for the back office.
func AdminOrderList(svc ordersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		records, err := svc.List(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, newOrderListResponse(records))
	}
}

// AdminOrderGet returns one order by id.
func AdminOrderGet(svc ordersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		orderID, err := validators.ParseUUIDParam(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		record, err := svc.Get(r.Context(), orderID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, newOrderResponse(record))
	}
}

// AdminOrderUpdateStatus moves an order through the lifecycle.
func AdminOrderUpdateStatus(svc ordersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		orderID, err := validators.ParseUUIDParam(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload updateOrderStatusRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		record, err := svc.UpdateStatus(r.Context(), orderID, enums.OrderStatus(payload.Status))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, newOrderResponse(record))
	}
}

type submitOrderRequest struct {
	Adresse        string  `json:"adresse" validate:"required"`
	AdditionalInfo *string `json:"additionalInfo"`
	PaymentMethod  string  `json:"paymentMethod" validate:"required"`
	PhoneNumber    string  `json:"phoneNumber" validate:"required"`
}

type submitOrderResponse struct {
	OrderID uuid.UUID `json:"orderId"`
	Message string    `json:"message"`
}

type updateOrderStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

type orderResponse struct {
	ID             uuid.UUID           `json:"id"`
	UserID         uuid.UUID           `json:"userId"`
	Adresse        string              `json:"adresse"`
	AdditionalInfo *string             `json:"additionalInfo,omitempty"`
	PaymentMethod  string              `json:"paymentMethod"`
	PhoneNumber    string              `json:"phoneNumber"`
	PaymentStatus  string              `json:"paymentStatus"`
	Status         string              `json:"status"`
	Total          int64               `json:"total"`
	Items          []orderItemResponse `json:"items"`
	CancelledAt    *time.Time          `json:"cancelledAt,omitempty"`
	CreatedAt      time.Time           `json:"createdAt"`
}

type orderItemResponse struct {
	ID        uuid.UUID    `json:"id"`
	ProductID *uuid.UUID   `json:"productId,omitempty"`
	Name      string       `json:"name"`
	Image     *types.Image `json:"image,omitempty"`
	Size      string       `json:"size"`
	Color     string       `json:"color"`
	UnitPrice int64        `json:"unitPrice"`
	Quantity  int          `json:"quantity"`
	Price     int64        `json:"price"`
}

func newOrderResponse(record *models.Order) orderResponse {
	items := make([]orderItemResponse, len(record.Items))
	for i, item := range record.Items {
		items[i] = orderItemResponse{
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
	return orderResponse{
		ID:             record.ID,
		UserID:         record.UserID,
		Adresse:        record.Adresse,
		AdditionalInfo: record.AdditionalInfo,
		PaymentMethod:  string(record.PaymentMethod),
		PhoneNumber:    record.PhoneNumber,
		PaymentStatus:  string(record.PaymentStatus),
		Status:         string(record.Status),
		Total:          record.Total,
		Items:          items,
		CancelledAt:    record.CancelledAt,
		CreatedAt:      record.CreatedAt,
	}
}

func newOrderListResponse(records []models.Order) []orderResponse {
	out := make([]orderResponse, len(records))
	for i := range records {
		out[i] = newOrderResponse(&records[i])
	}
	return out
}
