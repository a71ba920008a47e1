package http

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/paylane-hq/payroll-backend-go/internal/domain/payroll"
	"github.com/paylane-hq/payroll-backend-go/internal/handler/http/response"
)

type PayrollHandler interface {
	EnsurePeriod(w http.ResponseWriter, r *http.Request)
	ListPeriods(w http.ResponseWriter, r *http.Request)
	GetPeriodSummary(w http.ResponseWriter, r *http.Request)
	LockPeriod(w http.ResponseWriter, r *http.Request)
	ReopenPeriod(w http.ResponseWriter, r *http.Request)
	PostPeriod(w http.ResponseWriter, r *http.Request)
	MarkChallanGenerated(w http.ResponseWriter, r *http.Request)

	ComputeRun(w http.ResponseWriter, r *http.Request)
	GetRun(w http.ResponseWriter, r *http.Request)
	ListRuns(w http.ResponseWriter, r *http.Request)
	FinalizeRun(w http.ResponseWriter, r *http.Request)
	UnfinalizeRun(w http.ResponseWriter, r *http.Request)

	RecalcAll(w http.ResponseWriter, r *http.Request)
	FinalizeAll(w http.ResponseWriter, r *http.Request)
	UnfinalizeAll(w http.ResponseWriter, r *http.Request)

	GenerateFiling(w http.ResponseWriter, r *http.Request)
	ListFilings(w http.ResponseWriter, r *http.Request)
	MarkFilingFiled(w http.ResponseWriter, r *http.Request)
	DownloadFiling(w http.ResponseWriter, r *http.Request)
}

type PayrollHandlerImpl struct {
	payrollService payroll.PayrollService
}

func NewPayrollHandler(payrollService payroll.PayrollService) PayrollHandler {
	return &PayrollHandlerImpl{payrollService: payrollService}
}

// EnsurePeriod implements PayrollHandler.
func (h *PayrollHandlerImpl) EnsurePeriod(w http.ResponseWriter, r *http.Request) {
	orgID := chi.URLParam(r, "orgID")

	var req payroll.EnsurePeriodRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Ensure period decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	period, err := h.payrollService.EnsurePeriod(r.Context(), orgID, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, period)
}

// ListPeriods implements PayrollHandler.
func (h *PayrollHandlerImpl) ListPeriods(w http.ResponseWriter, r *http.Request) {
	orgID := chi.URLParam(r, "orgID")

	periods, err := h.payrollService.ListPeriods(r.Context(), orgID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, periods)
}

// GetPeriodSummary implements PayrollHandler.
func (h *PayrollHandlerImpl) GetPeriodSummary(w http.ResponseWriter, r *http.Request) {
	orgID := chi.URLParam(r, "orgID")
	periodID := chi.URLParam(r, "periodID")

	summary, err := h.payrollService.GetPeriodSummary(r.Context(), orgID, periodID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, summary)
}

// LockPeriod implements PayrollHandler.
func (h *PayrollHandlerImpl) LockPeriod(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.payrollService.LockPeriod, "Payroll period locked successfully")
}

// ReopenPeriod implements PayrollHandler.
func (h *PayrollHandlerImpl) ReopenPeriod(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.payrollService.ReopenPeriod, "Payroll period reopened successfully")
}

// PostPeriod implements PayrollHandler.
func (h *PayrollHandlerImpl) PostPeriod(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.payrollService.PostPeriod, "Payroll period posted successfully")
}

// MarkChallanGenerated implements PayrollHandler.
func (h *PayrollHandlerImpl) MarkChallanGenerated(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.payrollService.MarkChallanGenerated, "Challan marked generated successfully")
}

// ComputeRun implements PayrollHandler.
func (h *PayrollHandlerImpl) ComputeRun(w http.ResponseWriter, r *http.Request) {
	orgID := chi.URLParam(r, "orgID")
	periodID := chi.URLParam(r, "periodID")
	employeeID := chi.URLParam(r, "employeeID")

	run, err := h.payrollService.ComputeRun(r.Context(), orgID, periodID, employeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, run)
}

// GetRun implements PayrollHandler.
func (h *PayrollHandlerImpl) GetRun(w http.ResponseWriter, r *http.Request) {
	orgID := chi.URLParam(r, "orgID")
	periodID := chi.URLParam(r, "periodID")
	employeeID := chi.URLParam(r, "employeeID")

	run, err := h.payrollService.GetRun(r.Context(), orgID, periodID, employeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, run)
}

// ListRuns implements PayrollHandler.
func (h *PayrollHandlerImpl) ListRuns(w http.ResponseWriter, r *http.Request) {
	orgID := chi.URLParam(r, "orgID")
	periodID := chi.URLParam(r, "periodID")

	runs, err := h.payrollService.ListRuns(r.Context(), orgID, periodID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, runs)
}

// FinalizeRun implements PayrollHandler.
func (h *PayrollHandlerImpl) FinalizeRun(w http.ResponseWriter, r *http.Request) {
	orgID := chi.URLParam(r, "orgID")
	periodID := chi.URLParam(r, "periodID")
	employeeID := chi.URLParam(r, "employeeID")

	if err := h.payrollService.FinalizeRun(r.Context(), orgID, periodID, employeeID); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Payroll run finalized successfully", nil)
}

// UnfinalizeRun implements PayrollHandler.
func (h *PayrollHandlerImpl) UnfinalizeRun(w http.ResponseWriter, r *http.Request) {
	orgID := chi.URLParam(r, "orgID")
	periodID := chi.URLParam(r, "periodID")
	employeeID := chi.URLParam(r, "employeeID")

	if err := h.payrollService.UnfinalizeRun(r.Context(), orgID, periodID, employeeID); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Payroll run unfinalized successfully", nil)
}

// RecalcAll implements PayrollHandler.
func (h *PayrollHandlerImpl) RecalcAll(w http.ResponseWriter, r *http.Request) {
	h.batch(w, r, h.payrollService.RecalcAll)
}

// FinalizeAll implements PayrollHandler.
func (h *PayrollHandlerImpl) FinalizeAll(w http.ResponseWriter, r *http.Request) {
	h.batch(w, r, h.payrollService.FinalizeAll)
}

// UnfinalizeAll implements PayrollHandler.
func (h *PayrollHandlerImpl) UnfinalizeAll(w http.ResponseWriter, r *http.Request) {
	h.batch(w, r, h.payrollService.UnfinalizeAll)
}

// GenerateFiling implements PayrollHandler.
func (h *PayrollHandlerImpl) GenerateFiling(w http.ResponseWriter, r *http.Request) {
	orgID := chi.URLParam(r, "orgID")
	periodID := chi.URLParam(r, "periodID")

	var req payroll.GenerateFilingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Generate filing decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	filing, err := h.payrollService.GenerateFiling(r.Context(), orgID, periodID, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Statutory filing generated successfully", filing)
}

// ListFilings implements PayrollHandler.
func (h *PayrollHandlerImpl) ListFilings(w http.ResponseWriter, r *http.Request) {
	orgID := chi.URLParam(r, "orgID")
	periodID := chi.URLParam(r, "periodID")

	filings, err := h.payrollService.ListFilings(r.Context(), orgID, periodID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, filings)
}

// MarkFilingFiled implements PayrollHandler.
func (h *PayrollHandlerImpl) MarkFilingFiled(w http.ResponseWriter, r *http.Request) {
	orgID := chi.URLParam(r, "orgID")
	filingID := chi.URLParam(r, "filingID")

	if err := h.payrollService.MarkFilingFiled(r.Context(), orgID, filingID); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Statutory filing marked filed successfully", nil)
}

// DownloadFiling implements PayrollHandler.
func (h *PayrollHandlerImpl) DownloadFiling(w http.ResponseWriter, r *http.Request) {
	orgID := chi.URLParam(r, "orgID")
	filingID := chi.URLParam(r, "filingID")

	doc, err := h.payrollService.DownloadFiling(r.Context(), orgID, filingID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", `attachment; filename="filing-`+filingID+`.json"`)
	w.WriteHeader(http.StatusOK)
	w.Write(doc)
}

type transitionFunc func(ctx context.Context, orgID, periodID string) (payroll.PeriodResponse, error)

func (h *PayrollHandlerImpl) transition(w http.ResponseWriter, r *http.Request, fn transitionFunc, message string) {
	orgID := chi.URLParam(r, "orgID")
	periodID := chi.URLParam(r, "periodID")

	period, err := fn(r.Context(), orgID, periodID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, message, period)
}

type batchFunc func(ctx context.Context, orgID, periodID string, req payroll.BatchRequest) (payroll.BatchResult, error)

func (h *PayrollHandlerImpl) batch(w http.ResponseWriter, r *http.Request, fn batchFunc) {
	orgID := chi.URLParam(r, "orgID")
	periodID := chi.URLParam(r, "periodID")

	// An empty body means the whole active roster.
	var req payroll.BatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && err != io.EOF {
		slog.Error("Batch request decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := fn(r.Context(), orgID, periodID, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
