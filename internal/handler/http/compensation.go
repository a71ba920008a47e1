package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/paylane-hq/payroll-backend-go/internal/domain/compensation"
	"github.com/paylane-hq/payroll-backend-go/internal/handler/http/response"
)

type CompensationHandler interface {
	Upsert(w http.ResponseWriter, r *http.Request)
	IntakeDraft(w http.ResponseWriter, r *http.Request)
	ListByEmployee(w http.ResponseWriter, r *http.Request)
}

type CompensationHandlerImpl struct {
	compensationService compensation.CompensationService
}

func NewCompensationHandler(compensationService compensation.CompensationService) CompensationHandler {
	return &CompensationHandlerImpl{compensationService: compensationService}
}

// Upsert implements CompensationHandler.
func (h *CompensationHandlerImpl) Upsert(w http.ResponseWriter, r *http.Request) {
	orgID := chi.URLParam(r, "orgID")

	var req compensation.UpsertCompensationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Upsert compensation decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.EmployeeID = chi.URLParam(r, "employeeID")

	record, err := h.compensationService.Upsert(r.Context(), orgID, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Compensation record saved successfully", record)
}

// IntakeDraft implements CompensationHandler.
func (h *CompensationHandlerImpl) IntakeDraft(w http.ResponseWriter, r *http.Request) {
	orgID := chi.URLParam(r, "orgID")

	var req compensation.IntakeDraftRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Intake draft decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.EmployeeID = chi.URLParam(r, "employeeID")

	result, err := h.compensationService.IntakeDraft(r.Context(), orgID, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ListByEmployee implements CompensationHandler.
func (h *CompensationHandlerImpl) ListByEmployee(w http.ResponseWriter, r *http.Request) {
	orgID := chi.URLParam(r, "orgID")
	employeeID := chi.URLParam(r, "employeeID")

	records, err := h.compensationService.ListByEmployee(r.Context(), orgID, employeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, records)
}
