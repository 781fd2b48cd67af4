package rest

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mlevkov/prodsync/internal/catalog"
	"github.com/mlevkov/prodsync/internal/product"
)

// mockProductService is a mock implementation of the ProductService interface
type mockProductService struct {
	prod     product.Product
	products []product.Product
	error    error
}

func (m *mockProductService) FindAll(_ context.Context) ([]product.Product, error) {
	return m.products, m.error
}

func (m *mockProductService) Create(_ context.Context, _ product.Product) (*product.Product, error) {
	return &m.prod, m.error
}

func (m *mockProductService) Update(_ context.Context, _ product.Product) (*product.Product, error) {
	return &m.prod, m.error
}

func (m *mockProductService) DeleteBySKU(_ context.Context, _ string) error {
	return m.error
}

// newTestRouter wires the handler into a fresh router.
func newTestRouter(service catalog.ProductService) *chi.Mux {
	mux := chi.NewRouter()
	h := NewHandler(service, slog.New(slog.NewTextHandler(io.Discard, nil)))
	h.RegisterRoutes(mux)
	return mux
}

func Test_Handler_FindAll(t *testing.T) {
	testCases := []struct {
		name         string
		mockService  *mockProductService
		expectedCode int
		expectedBody string
	}{
		{
			name: "Success - products found",
			mockService: &mockProductService{
				products: []product.Product{{SKU: "A1", Name: "Widget", Price: 10, Quantity: 2, Total: 20}},
			},
			expectedCode: http.StatusOK,
			expectedBody: `[{"sku":"A1","name":"Widget","price":10,"quantity":2,"total":20}]`,
		},
		{
			name:         "Error - service error",
			mockService:  &mockProductService{error: errors.New("service unavailable")},
			expectedCode: http.StatusInternalServerError,
			expectedBody: `{"error":"Failed to fetch products"}`,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			mux := newTestRouter(tc.mockService)
			req := httptest.NewRequest(http.MethodGet, "/api/v1/products", nil)
			rr := httptest.NewRecorder()

			// when
			mux.ServeHTTP(rr, req)

			// then
			assert.Equal(t, tc.expectedCode, rr.Code)
			assert.JSONEq(t, tc.expectedBody, rr.Body.String())
		})
	}
}

func Test_Handler_Create(t *testing.T) {
	stored := product.Product{SKU: "A1", Name: "Widget", Price: 10, Quantity: 2, Total: 20}
	testCases := []struct {
		name         string
		mockService  *mockProductService
		body         string
		expectedCode int
		expectedBody string
	}{
		{
			name:         "Success - product created",
			mockService:  &mockProductService{prod: stored},
			body:         `{"sku":"A1","name":"Widget","price":10,"quantity":2,"total":20}`,
			expectedCode: http.StatusCreated,
			expectedBody: `{"sku":"A1","name":"Widget","price":10,"quantity":2,"total":20}`,
		},
		{
			name:         "Error - invalid JSON",
			mockService:  &mockProductService{},
			body:         `{not json`,
			expectedCode: http.StatusBadRequest,
			expectedBody: `{"error":"Invalid request body"}`,
		},
		{
			name:         "Error - missing required fields",
			mockService:  &mockProductService{},
			body:         `{"price":10}`,
			expectedCode: http.StatusBadRequest,
			expectedBody: `{"validation_errors":{"SKU":"failed on rule: required","Name":"failed on rule: required"}}`,
		},
		{
			name:         "Error - duplicate sku",
			mockService:  &mockProductService{error: catalog.ErrSKUExists},
			body:         `{"sku":"A1","name":"Widget","price":10,"quantity":2,"total":20}`,
			expectedCode: http.StatusConflict,
			expectedBody: `{"error":"Product with SKU A1 already exists"}`,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			mux := newTestRouter(tc.mockService)
			req := httptest.NewRequest(http.MethodPost, "/api/v1/products", strings.NewReader(tc.body))
			req.Header.Set("Content-Type", "application/json")
			rr := httptest.NewRecorder()

			// when
			mux.ServeHTTP(rr, req)

			// then
			assert.Equal(t, tc.expectedCode, rr.Code)
			assert.JSONEq(t, tc.expectedBody, rr.Body.String())
		})
	}
}

func Test_Handler_Update(t *testing.T) {
	updated := product.Product{SKU: "B2", Name: "Gadget XL", Price: 6, Quantity: 4, Total: 24}
	testCases := []struct {
		name         string
		mockService  *mockProductService
		sku          string
		body         string
		expectedCode int
		expectedBody string
	}{
		{
			name:         "Success - product updated",
			mockService:  &mockProductService{prod: updated},
			sku:          "B2",
			body:         `{"name":"Gadget XL","price":6,"quantity":4,"total":24}`,
			expectedCode: http.StatusOK,
			expectedBody: `{"sku":"B2","name":"Gadget XL","price":6,"quantity":4,"total":24}`,
		},
		{
			name:         "Error - product not found",
			mockService:  &mockProductService{error: catalog.ErrProductNotFound},
			sku:          "Z9",
			body:         `{"name":"Ghost","price":1,"quantity":1,"total":1}`,
			expectedCode: http.StatusNotFound,
			expectedBody: `{"error":"Product with SKU Z9 not found"}`,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			mux := newTestRouter(tc.mockService)
			req := httptest.NewRequest(http.MethodPut, "/api/v1/products/"+tc.sku, strings.NewReader(tc.body))
			req.Header.Set("Content-Type", "application/json")
			rr := httptest.NewRecorder()

			// when
			mux.ServeHTTP(rr, req)

			// then
			assert.Equal(t, tc.expectedCode, rr.Code)
			assert.JSONEq(t, tc.expectedBody, rr.Body.String())
		})
	}
}

func Test_Handler_DeleteBySKU(t *testing.T) {
	testCases := []struct {
		name         string
		mockService  *mockProductService
		sku          string
		expectedCode int
		expectedBody string
	}{
		{
			name:         "Success - product deleted",
			mockService:  &mockProductService{},
			sku:          "B2",
			expectedCode: http.StatusNoContent,
		},
		{
			name:         "Error - product not found",
			mockService:  &mockProductService{error: catalog.ErrProductNotFound},
			sku:          "Z9",
			expectedCode: http.StatusNotFound,
			expectedBody: `{"error":"Product with SKU Z9 not found"}`,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			mux := newTestRouter(tc.mockService)
			req := httptest.NewRequest(http.MethodDelete, "/api/v1/products/"+tc.sku, nil)
			rr := httptest.NewRecorder()

			// when
			mux.ServeHTTP(rr, req)

			// then
			assert.Equal(t, tc.expectedCode, rr.Code)
			if tc.expectedBody != "" {
				assert.JSONEq(t, tc.expectedBody, rr.Body.String())
			} else {
				assert.Empty(t, rr.Body.String())
			}
		})
	}
}

func Test_Handler_HealthCheck(t *testing.T) {
	mux := newTestRouter(&mockProductService{})
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rr := httptest.NewRecorder()

	mux.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
}
