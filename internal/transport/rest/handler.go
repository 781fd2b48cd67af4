// Package rest provides HTTP handlers for the product catalog.
package rest

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/mlevkov/prodsync/internal/catalog"
	"github.com/mlevkov/prodsync/internal/product"
	"github.com/mlevkov/prodsync/internal/web"
)

type Handler struct {
	service  catalog.ProductService
	validate *validator.Validate
	logger   *slog.Logger
}

// NewHandler creates a new Handler with the provided service.
func NewHandler(service catalog.ProductService, logger *slog.Logger) *Handler {
	return &Handler{
		service:  service,
		validate: validator.New(),
		logger:   logger.With("component", "rest"),
	}
}

// RegisterRoutes registers the HTTP routes for the catalog service.
func (h *Handler) RegisterRoutes(r *chi.Mux) {
	r.Route("/api/v1/products", func(r chi.Router) {
		r.Get("/", h.FindAll)
		r.Post("/", h.Create)

		r.Route("/{sku}", func(r chi.Router) {
			r.Put("/", h.Update)
			r.Delete("/", h.DeleteBySKU)
		})
	})

	r.Get("/healthz", h.HealthCheck)
}

// FindAll retrieves the full product collection in insertion order.
func (h *Handler) FindAll(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	mLogger.DebugContext(r.Context(), "Received request to find all products")
	list, err := h.service.FindAll(r.Context())
	if err != nil {
		mLogger.ErrorContext(r.Context(), "Error retrieving product list", "error", err)
		web.RespondError(w, mLogger, http.StatusInternalServerError, "Failed to fetch products")
		return
	}
	mLogger.DebugContext(r.Context(), "Successfully retrieved product list", "count", len(list))
	web.RespondJSON(w, mLogger, http.StatusOK, list)
}

// Create handles the creation of a new product.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	var candidate product.Product
	if err := json.NewDecoder(r.Body).Decode(&candidate); err != nil {
		mLogger.ErrorContext(r.Context(), "Error decoding request body", "error", err)
		web.RespondError(w, mLogger, http.StatusBadRequest, "Invalid request body")
		return
	}
	mLogger.DebugContext(r.Context(), "Received request to create product", "sku", candidate.SKU)
	if !h.validateBody(w, r, mLogger, candidate) {
		return
	}

	created, err := h.service.Create(r.Context(), candidate)
	if err != nil {
		if errors.Is(err, catalog.ErrSKUExists) {
			mLogger.WarnContext(r.Context(), "SKU already exists", "sku", candidate.SKU)
			web.RespondError(w, mLogger, http.StatusConflict, fmt.Sprintf("Product with SKU %s already exists", candidate.SKU))
			return
		}
		mLogger.ErrorContext(r.Context(), "Error creating product", "error", err)
		web.RespondError(w, mLogger, http.StatusInternalServerError, "Failed to create product")
		return
	}
	mLogger.InfoContext(r.Context(), "Product created successfully", "sku", created.SKU, "name", created.Name)
	web.RespondJSON(w, mLogger, http.StatusCreated, created)
}

// Update replaces an existing product identified by the sku path parameter.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	sku := chi.URLParam(r, "sku")
	mLogger.DebugContext(r.Context(), "Received request to update product", "sku", sku)
	var record product.Product
	if err := json.NewDecoder(r.Body).Decode(&record); err != nil {
		mLogger.ErrorContext(r.Context(), "Error decoding request body", "error", err)
		web.RespondError(w, mLogger, http.StatusBadRequest, "Invalid request body")
		return
	}
	record.SKU = sku
	if !h.validateBody(w, r, mLogger, record) {
		return
	}

	updated, err := h.service.Update(r.Context(), record)
	if err != nil {
		if errors.Is(err, catalog.ErrProductNotFound) {
			mLogger.WarnContext(r.Context(), "Product not found for update", "sku", sku)
			web.RespondError(w, mLogger, http.StatusNotFound, fmt.Sprintf("Product with SKU %s not found", sku))
			return
		}
		mLogger.ErrorContext(r.Context(), "Error updating product", "sku", sku, "error", err)
		web.RespondError(w, mLogger, http.StatusInternalServerError, fmt.Sprintf("Failed to update product with SKU %s", sku))
		return
	}
	mLogger.InfoContext(r.Context(), "Product updated successfully", "sku", updated.SKU, "name", updated.Name)
	web.RespondJSON(w, mLogger, http.StatusOK, updated)
}

// DeleteBySKU deletes a product by its SKU.
func (h *Handler) DeleteBySKU(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	sku := chi.URLParam(r, "sku")
	mLogger.DebugContext(r.Context(), "Received request to delete product", "sku", sku)
	if err := h.service.DeleteBySKU(r.Context(), sku); err != nil {
		if errors.Is(err, catalog.ErrProductNotFound) {
			mLogger.WarnContext(r.Context(), "Product not found for deletion", "sku", sku)
			web.RespondError(w, mLogger, http.StatusNotFound, fmt.Sprintf("Product with SKU %s not found", sku))
			return
		}
		mLogger.ErrorContext(r.Context(), "Error deleting product", "sku", sku, "error", err)
		web.RespondError(w, mLogger, http.StatusInternalServerError, fmt.Sprintf("Failed to delete product with SKU %s", sku))
		return
	}
	mLogger.InfoContext(r.Context(), "Product deleted successfully", "sku", sku)
	w.WriteHeader(http.StatusNoContent)
}

// HealthCheck is a simple health check endpoint.
func (h *Handler) HealthCheck(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
}

// validateBody runs struct validation and writes the field-level error
// response on failure. Returns true when the body is valid.
func (h *Handler) validateBody(w http.ResponseWriter, r *http.Request, mLogger *slog.Logger, body any) bool {
	if err := h.validate.Struct(body); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			errorResponse := make(map[string]string)
			for _, fieldErr := range validationErrors {
				errorResponse[fieldErr.Field()] = "failed on rule: " + fieldErr.Tag()
			}
			mLogger.WarnContext(r.Context(), "Validation errors occurred", "errors", errorResponse)
			web.RespondJSON(w, mLogger, http.StatusBadRequest, map[string]any{"validation_errors": errorResponse})
			return false
		}
		mLogger.ErrorContext(r.Context(), "Error validating request body", "error", err)
		web.RespondError(w, mLogger, http.StatusBadRequest, "Invalid request body")
		return false
	}
	return true
}

// loggerWithReqID creates a logger with the request ID from the context.
func (h *Handler) loggerWithReqID(r *http.Request) *slog.Logger {
	reqID := middleware.GetReqID(r.Context())
	return h.logger.With("request_id", reqID)
}
