package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"

	productsvc "github.com/hadyba/hadyshop/internal/products"
	"github.com/hadyba/hadyshop/pkg/db/models"
	pkgerrors "github.com/hadyba/hadyshop/pkg/errors"
)

type stubProductService struct {
	record  *models.Product
	records []models.Product
	err     error

	filter      productsvc.ListFilter
	upsertInput productsvc.UpsertProductInput
}

func (s *stubProductService) List(ctx context.Context, filter productsvc.ListFilter) ([]models.Product, error) {
	s.filter = filter
	return s.records, s.err
}

func (s *stubProductService) ListDeleted(ctx context.Context) ([]models.Product, error) {
	return s.records, s.err
}

func (s *stubProductService) Get(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	return s.record, s.err
}

func (s *stubProductService) Create(ctx context.Context, input productsvc.UpsertProductInput) (*models.Product, error) {
	s.upsertInput = input
	return s.record, s.err
}

func (s *stubProductService) Update(ctx context.Context, id uuid.UUID, input productsvc.UpsertProductInput) (*models.Product, error) {
	s.upsertInput = input
	return s.record, s.err
}

func (s *stubProductService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.err
}

func (s *stubProductService) Restore(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	return s.record, s.err
}

func TestProductListAppliesFilters(t *testing.T) {
	categoryID := uuid.New()
	svc := &stubProductService{records: []models.Product{{ID: uuid.New(), Name: "T-shirt"}}}
	handler := ProductList(svc, nil)

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/products?category="+categoryID.String()+"&q=shirt", nil))

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if svc.filter.CategoryID == nil || *svc.filter.CategoryID != categoryID {
		t.Fatalf("expected category filter %s", categoryID)
	}
	if svc.filter.Query != "shirt" {
		t.Fatalf("unexpected query filter: %s", svc.filter.Query)
	}
}

func TestProductListRejectsBadCategory(t *testing.T) {
	handler := ProductList(&stubProductService{}, nil)

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/products?category=nope", nil))

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestProductGetNotFound(t *testing.T) {
	handler := ProductGet(&stubProductService{err: pkgerrors.New(pkgerrors.CodeNotFound, "product not found")}, nil)

	id := uuid.New()
	req := withURLParam(httptest.NewRequest(http.MethodGet, "/products/"+id.String(), nil), "id", id.String())
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", resp.Code)
	}
}

func TestAdminProductCreateMapsPayload(t *testing.T) {
	categoryID := uuid.New()
	record := &models.Product{ID: uuid.New(), Name: "T-shirt", Price: 5000, CategoryID: categoryID}
	svc := &stubProductService{record: record}
	handler := AdminProductCreate(svc, nil)

	body := `{"name":"T-shirt","price":5000,"categoryId":"` + categoryID.String() + `","variants":[{"size":"M","color":"noir","stock":5}]}`
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, authedRequest(http.MethodPost, "/api/products", body))

	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d: %s", resp.Code, resp.Body.String())
	}
	if svc.upsertInput.Name != "T-shirt" {
		t.Fatalf("unexpected name: %s", svc.upsertInput.Name)
	}
	if len(svc.upsertInput.Variants) != 1 || svc.upsertInput.Variants[0].Stock != 5 {
		t.Fatalf("unexpected variants: %+v", svc.upsertInput.Variants)
	}
}

func TestAdminProductCreateRejectsEmptyVariants(t *testing.T) {
	handler := AdminProductCreate(&stubProductService{}, nil)

	body := `{"name":"T-shirt","price":5000,"categoryId":"` + uuid.NewString() + `","variants":[]}`
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, authedRequest(http.MethodPost, "/api/products", body))

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestAdminProductRestoreReturnsRecord(t *testing.T) {
	record := &models.Product{ID: uuid.New(), Name: "T-shirt"}
	handler := AdminProductRestore(&stubProductService{record: record}, nil)

	req := withURLParam(authedRequest(http.MethodPost, "/api/products/"+record.ID.String()+"/restore", ""), "id", record.ID.String())
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}

	var envelope struct {
		Data productResponse `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.ID != record.ID {
		t.Fatalf("unexpected product id: %s", envelope.Data.ID)
	}
}
