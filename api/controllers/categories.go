package controllers

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/hadyba/hadyshop/api/responses"
	"github.com/hadyba/hadyshop/api/validators"
	categorysvc "github.com/hadyba/hadyshop/internal/categories"
	"github.com/hadyba/hadyshop/pkg/db/models"
	"github.com/hadyba/hadyshop/pkg/logger"
	"github.com/hadyba/hadyshop/pkg/types"
)

// CategoryList serves the storefront category index.
func CategoryList(svc categorysvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		records, err := svc.List(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, newCategoryListResponse(records))
	}
}

// CategoryGet returns one live category.
func CategoryGet(svc categorysvc.Service, logg *logger.Logger) http.HandlerFunc {
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

		responses.WriteSuccess(w, newCategoryResponse(record))
	}
}

// AdminCategoryListDeleted returns the soft-deleted categories.
func AdminCategoryListDeleted(svc categorysvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		records, err := svc.ListDeleted(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, newCategoryListResponse(records))
	}
}

// AdminCategoryCreate registers a new category.
func AdminCategoryCreate(svc categorysvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload upsertCategoryRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		record, err := svc.Create(r.Context(), payload.toInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, newCategoryResponse(record))
	}
}

// AdminCategoryUpdate replaces a category's fields.
func AdminCategoryUpdate(svc categorysvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParseUUIDParam(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload upsertCategoryRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		record, err := svc.Update(r.Context(), id, payload.toInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, newCategoryResponse(record))
	}
}

// AdminCategoryDelete soft-deletes a category with no live products.
func AdminCategoryDelete(svc categorysvc.Service, logg *logger.Logger) http.HandlerFunc {
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

// AdminCategoryRestore brings a soft-deleted category back.
func AdminCategoryRestore(svc categorysvc.Service, logg *logger.Logger) http.HandlerFunc {
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

		responses.WriteSuccess(w, newCategoryResponse(record))
	}
}

type upsertCategoryRequest struct {
	Name        string       `json:"name" validate:"required"`
	Description *string      `json:"description"`
	Image       *types.Image `json:"image"`
}

func (r upsertCategoryRequest) toInput() categorysvc.UpsertCategoryInput {
	return categorysvc.UpsertCategoryInput{
		Name:        r.Name,
		Description: r.Description,
		Image:       r.Image,
	}
}

type categoryResponse struct {
	ID          uuid.UUID    `json:"id"`
	Name        string       `json:"name"`
	Description *string      `json:"description,omitempty"`
	Image       *types.Image `json:"image,omitempty"`
	CreatedAt   time.Time    `json:"createdAt"`
	UpdatedAt   time.Time    `json:"updatedAt"`
}

func newCategoryResponse(record *models.Category) categoryResponse {
	return categoryResponse{
		ID:          record.ID,
		Name:        record.Name,
		Description: record.Description,
		Image:       record.Image,
		CreatedAt:   record.CreatedAt,
		UpdatedAt:   record.UpdatedAt,
	}
}

func newCategoryListResponse(records []models.Category) []categoryResponse {
	out := make([]categoryResponse, len(records))
	for i := range records {
		out[i] = newCategoryResponse(&records[i])
	}
	return out
}
