package controllers

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/hadyba/hadyshop/api/responses"
	"github.com/hadyba/hadyshop/api/validators"
	productsvc "github.com/hadyba/hadyshop/internal/products"
	"github.com/hadyba/hadyshop/pkg/db/models"
	"github.com/hadyba/hadyshop/pkg/logger"
	"github.com/hadyba/hadyshop/pkg/types"
)

// ProductList serves the storefront catalog with optional category and text
// filters.
func ProductList(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		categoryID, err := validators.ParseOptionalUUIDQuery(r, "category")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		records, err := svc.List(r.Context(), productsvc.ListFilter{
			CategoryID: categoryID,
			Query:      r.URL.Query().Get("q"),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, newProductListResponse(records))
	}
}

// ProductGet returns one live product with its variants.
func ProductGet(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParseUUIDParam(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		record, err := svc.Get(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, newProductResponse(record))
	}
}

// AdminProductListDeleted returns the soft-deleted products.
func AdminProductListDeleted(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		records, err := svc.ListDeleted(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, newProductListResponse(records))
	}
}

// AdminProductCreate registers a new catalog product.
func AdminProductCreate(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload upsertProductRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		record, err := svc.Create(r.Context(), payload.toInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, newProductResponse(record))
	}
}

// AdminProductUpdate replaces a product's fields and variants.
func AdminProductUpdate(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParseUUIDParam(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload upsertProductRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		record, err := svc.Update(r.Context(), id, payload.toInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, newProductResponse(record))
	}
}

// AdminProductDelete soft-deletes a product.
func AdminProductDelete(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParseUUIDParam(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.Delete(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]bool{"deleted": true})
	}
}

// AdminProductRestore brings a soft-deleted product back.
func AdminProductRestore(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParseUUIDParam(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		record, err := svc.Restore(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, newProductResponse(record))
	}
}

type upsertProductRequest struct {
	Name        string                  `json:"name" validate:"required"`
	Description *string                 `json:"description"`
	Price       int64                   `json:"price" validate:"required,gt=0"`
	CategoryID  uuid.UUID               `json:"categoryId" validate:"required"`
	Images      types.Images            `json:"images"`
	Variants    []productVariantPayload `json:"variants" validate:"required,min=1,dive"`
}

type productVariantPayload struct {
	Size  string `json:"size" validate:"required"`
	Color string `json:"color" validate:"required"`
	Stock int    `json:"stock" validate:"min=0"`
}

func (r upsertProductRequest) toInput() productsvc.UpsertProductInput {
	variants := make([]productsvc.VariantInput, len(r.Variants))
	for i, v := range r.Variants {
		variants[i] = productsvc.VariantInput{Size: v.Size, Color: v.Color, Stock: v.Stock}
	}
	return productsvc.UpsertProductInput{
		Name:        r.Name,
		Description: r.Description,
		Price:       r.Price,
		CategoryID:  r.CategoryID,
		Images:      r.Images,
		Variants:    variants,
	}
}

type productResponse struct {
	ID          uuid.UUID                `json:"id"`
	Name        string                   `json:"name"`
	Description *string                  `json:"description,omitempty"`
	Price       int64                    `json:"price"`
	CategoryID  uuid.UUID                `json:"categoryId"`
	Category    *categoryResponse        `json:"category,omitempty"`
	Images      types.Images             `json:"images"`
	Sizes       []string                 `json:"sizes"`
	Colors      []string                 `json:"colors"`
	Stock       int                      `json:"stock"`
	Variants    []productVariantResponse `json:"variants"`
	CreatedAt   time.Time                `json:"createdAt"`
	UpdatedAt   time.Time                `json:"updatedAt"`
}

type productVariantResponse struct {
	ID    uuid.UUID `json:"id"`
	Size  string    `json:"size"`
	Color string    `json:"color"`
	Stock int       `json:"stock"`
}

func newProductResponse(record *models.Product) productResponse {
	variants := make([]productVariantResponse, len(record.Variants))
	for i, v := range record.Variants {
		variants[i] = productVariantResponse{ID: v.ID, Size: v.Size, Color: v.Color, Stock: v.Stock}
	}

	var category *categoryResponse
	if record.Category != nil {
		mapped := newCategoryResponse(record.Category)
		category = &mapped
	}

	return productResponse{
		ID:          record.ID,
		Name:        record.Name,
		Description: record.Description,
		Price:       record.Price,
		CategoryID:  record.CategoryID,
		Category:    category,
		Images:      record.Images,
		Sizes:       record.Sizes,
		Colors:      record.Colors,
		Stock:       record.Stock,
		Variants:    variants,
		CreatedAt:   record.CreatedAt,
		UpdatedAt:   record.UpdatedAt,
	}
}

func newProductListResponse(records []models.Product) []productResponse {
	out := make([]productResponse, len(records))
	for i := range records {
		out[i] = newProductResponse(&records[i])
	}
	return out
}
