// Package rest provides HTTP handlers for product-related operations.
package rest

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	producterrors "github.com/abgdnv/product-api/internal/errors"
	"github.com/abgdnv/product-api/internal/service"
	"github.com/abgdnv/product-api/pkg/web"
	"github.com/go-chi/chi/v5"
)

const resourceName = "product"

// Handler serves the product REST endpoints.
type Handler struct {
	service   service.ProductService
	validator *Validator
	logger    *slog.Logger
}

// NewHandler creates a new instance of Handler with the provided service.
func NewHandler(service service.ProductService, logger *slog.Logger) *Handler {
	return &Handler{
		service:   service,
		validator: NewValidator(),
		logger:    logger.With("component", "rest"),
	}
}

// RegisterRoutes registers the HTTP routes for the product service.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/products", func(r chi.Router) {
		r.Get("/", h.FindAll)
		r.Post("/", h.Create)

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", h.FindByID)
			r.Put("/", h.Update)
			r.Delete("/", h.DeleteByID)
		})
	})
}

// FindByID retrieves a product by its ID.
func (h *Handler) FindByID(w http.ResponseWriter, r *http.Request) {
	id, ok := web.ParseID(w, r, h.logger, resourceName)
	if !ok {
		return
	}

	h.logger.DebugContext(r.Context(), "Received request to find product by ID", "ID", id)
	found, err := h.service.FindByID(r.Context(), id)
	if err != nil {
		h.respondServiceError(w, r, err, "Failed to retrieve product")
		return
	}
	h.logger.DebugContext(r.Context(), "Successfully retrieved product", "ID", found.ID, "Name", found.Name)
	web.RespondJSON(w, h.logger, http.StatusOK, toResponse(found))
}

// FindAll retrieves a list of all products.
func (h *Handler) FindAll(w http.ResponseWriter, r *http.Request) {
	h.logger.DebugContext(r.Context(), "Received request to find all products")
	list, err := h.service.FindAll(r.Context())
	if err != nil {
		h.respondServiceError(w, r, err, "Failed to fetch products")
		return
	}
	h.logger.DebugContext(r.Context(), "Successfully retrieved product list", "count", len(list))
	web.RespondJSON(w, h.logger, http.StatusOK, toResponseList(list))
}

// Create handles the creation of a new product.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decodeAndValidate(w, r)
	if !ok {
		return
	}

	created, err := h.service.Create(r.Context(), toEntity(req))
	if err != nil {
		h.respondServiceError(w, r, err, "Failed to create product")
		return
	}
	h.logger.InfoContext(r.Context(), "Product created successfully", "ID", created.ID, "Name", created.Name)
	web.RespondJSON(w, h.logger, http.StatusCreated, toResponse(created))
}

// Update overwrites every mutable field of an existing product.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := web.ParseID(w, r, h.logger, resourceName)
	if !ok {
		return
	}
	h.logger.DebugContext(r.Context(), "Received request to update product", "ID", id)
	req, ok := h.decodeAndValidate(w, r)
	if !ok {
		return
	}

	updated, err := h.service.Update(r.Context(), id, toEntity(req))
	if err != nil {
		h.respondServiceError(w, r, err, "Failed to update product")
		return
	}
	h.logger.InfoContext(r.Context(), "Product updated successfully", "ID", updated.ID, "Name", updated.Name)
	web.RespondJSON(w, h.logger, http.StatusOK, toResponse(updated))
}

// DeleteByID deletes a product by its ID.
func (h *Handler) DeleteByID(w http.ResponseWriter, r *http.Request) {
	id, ok := web.ParseID(w, r, h.logger, resourceName)
	if !ok {
		return
	}
	h.logger.DebugContext(r.Context(), "Received request to delete product", "ID", id)
	if err := h.service.DeleteByID(r.Context(), id); err != nil {
		h.respondServiceError(w, r, err, "Failed to delete product")
		return
	}
	h.logger.InfoContext(r.Context(), "Product deleted successfully", "ID", id)
	w.WriteHeader(http.StatusNoContent)
}

// decodeAndValidate reads a ProductRequest from the body. On failure the 400 response has already been written.
func (h *Handler) decodeAndValidate(w http.ResponseWriter, r *http.Request) (ProductRequest, bool) {
	var req ProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.WarnContext(r.Context(), "Error decoding request body", "error", err)
		web.RespondError(w, h.logger, http.StatusBadRequest, "Invalid request body")
		return req, false
	}

	if err := h.validator.Validate(req); err != nil {
		var validationErr *producterrors.ValidationError
		if errors.As(err, &validationErr) {
			h.logger.WarnContext(r.Context(), "Validation errors occurred", "errors", validationErr.Violations)
			web.RespondJSON(w, h.logger, http.StatusBadRequest, validationErr.Violations)
			return req, false
		}
		h.logger.ErrorContext(r.Context(), "Error validating request body", "error", err)
		web.RespondError(w, h.logger, http.StatusBadRequest, "Invalid request body")
		return req, false
	}
	return req, true
}

// respondServiceError maps a service error to 404 or a generic 500.
func (h *Handler) respondServiceError(w http.ResponseWriter, r *http.Request, err error, failure string) {
	var notFound *producterrors.NotFoundError
	if errors.As(err, &notFound) {
		h.logger.WarnContext(r.Context(), "Product not found", "ID", notFound.ID)
		web.RespondError(w, h.logger, http.StatusNotFound, notFound.Error())
		return
	}
	h.logger.ErrorContext(r.Context(), failure, "error", err)
	web.RespondError(w, h.logger, http.StatusInternalServerError, failure)
}
