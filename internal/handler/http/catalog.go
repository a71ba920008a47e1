package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/paylane-hq/payroll-backend-go/internal/domain/catalog"
	"github.com/paylane-hq/payroll-backend-go/internal/handler/http/response"
)

type CatalogHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
	Canonicalize(w http.ResponseWriter, r *http.Request)
	SeedDefaults(w http.ResponseWriter, r *http.Request)
}

type CatalogHandlerImpl struct {
	componentService catalog.ComponentService
}

func NewCatalogHandler(componentService catalog.ComponentService) CatalogHandler {
	return &CatalogHandlerImpl{componentService: componentService}
}

// Create implements CatalogHandler.
func (h *CatalogHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	orgID := chi.URLParam(r, "orgID")

	var req catalog.CreateComponentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Create component decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	component, err := h.componentService.CreateComponent(r.Context(), orgID, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Pay component created successfully", component)
}

// Get implements CatalogHandler.
func (h *CatalogHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	orgID := chi.URLParam(r, "orgID")
	code := chi.URLParam(r, "code")

	component, err := h.componentService.GetComponent(r.Context(), orgID, code)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, component)
}

// List implements CatalogHandler.
func (h *CatalogHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	orgID := chi.URLParam(r, "orgID")
	activeOnly := r.URL.Query().Get("active") == "true"

	components, err := h.componentService.ListComponents(r.Context(), orgID, activeOnly)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, components)
}

// Update implements CatalogHandler.
func (h *CatalogHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	orgID := chi.URLParam(r, "orgID")

	var req catalog.UpdateComponentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Update component decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.Code = chi.URLParam(r, "code")

	if err := h.componentService.UpdateComponent(r.Context(), orgID, req); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Pay component updated successfully", nil)
}

// Delete implements CatalogHandler.
func (h *CatalogHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	orgID := chi.URLParam(r, "orgID")
	code := chi.URLParam(r, "code")

	if err := h.componentService.DeleteComponent(r.Context(), orgID, code); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Pay component deleted successfully", nil)
}

// SeedDefaults implements CatalogHandler.
func (h *CatalogHandlerImpl) SeedDefaults(w http.ResponseWriter, r *http.Request) {
	orgID := chi.URLParam(r, "orgID")

	seeded, err := h.componentService.SeedDefaults(r.Context(), orgID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Default pay components seeded successfully", seeded)
}

// Canonicalize implements CatalogHandler.
func (h *CatalogHandlerImpl) Canonicalize(w http.ResponseWriter, r *http.Request) {
	orgID := chi.URLParam(r, "orgID")

	var req catalog.CanonicalizeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Canonicalize decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.componentService.Canonicalize(r.Context(), orgID, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
