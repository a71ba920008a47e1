package payroll

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/paylane-hq/payroll-backend-go/internal/domain/payroll"
	"github.com/shopspring/decimal"
)

func (s *PayrollServiceImpl) GenerateFiling(ctx context.Context, orgID, periodID string, req payroll.GenerateFilingRequest) (payroll.FilingResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.FilingResponse{}, err
	}

	period, err := s.payrollRepo.GetPeriodByID(ctx, orgID, periodID)
	if err != nil {
		return payroll.FilingResponse{}, err
	}
	if period.Status != payroll.PeriodStatusLocked && period.Status != payroll.PeriodStatusPosted && period.Status != payroll.PeriodStatusChallanGenerated {
		return payroll.FilingResponse{}, payroll.ErrFilingPeriodNotReady
	}

	runs, err := s.payrollRepo.ListRunsByPeriod(ctx, orgID, periodID)
	if err != nil {
		return payroll.FilingResponse{}, err
	}

	// Only finalized runs feed the filing; processed runs may still change.
	payload := payroll.FilingPayload{
		PFWages:   decimal.Zero,
		ESICWages: decimal.Zero,
		PTAmount:  decimal.Zero,
		TDSAmount: decimal.Zero,
	}
	for _, run := range runs {
		if run.Status != payroll.RunStatusFinalized {
			continue
		}
		payload.RunCount++
		payload.PFWages = payload.PFWages.Add(run.PFWages)
		payload.ESICWages = payload.ESICWages.Add(run.ESICWages)
		payload.PTAmount = payload.PTAmount.Add(run.PTAmount)
		payload.TDSAmount = payload.TDSAmount.Add(run.TDSAmount)
	}

	now := time.Now().UTC()
	filing, err := s.payrollRepo.CreateFiling(ctx, payroll.StatutoryFiling{
		PayrollPeriodID: periodID,
		OrgID:           orgID,
		FilingType:      payroll.FilingType(req.FilingType),
		Status:          payroll.FilingStatusGenerated,
		Payload:         payload,
		GeneratedAt:     &now,
	})
	if err != nil {
		return payroll.FilingResponse{}, err
	}

	if _, err := s.writeFilingDocument(ctx, filing); err != nil {
		return payroll.FilingResponse{}, err
	}

	return payroll.MapFilingResponse(filing), nil
}

func filingDocumentPath(f payroll.StatutoryFiling) string {
	return fmt.Sprintf("filings/%s/%s/%s-%s.json", f.OrgID, f.PayrollPeriodID, f.FilingType, f.ID)
}

// writeFilingDocument materializes the filing as a JSON document in the
// document store. The document is derived entirely from the filing row, so a
// missing document can always be rewritten.
func (s *PayrollServiceImpl) writeFilingDocument(ctx context.Context, filing payroll.StatutoryFiling) (string, error) {
	doc, err := json.MarshalIndent(payroll.MapFilingResponse(filing), "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode filing document: %w", err)
	}
	return s.documents.Put(ctx, filingDocumentPath(filing), doc)
}

func (s *PayrollServiceImpl) DownloadFiling(ctx context.Context, orgID, filingID string) ([]byte, error) {
	filing, err := s.payrollRepo.GetFilingByID(ctx, orgID, filingID)
	if err != nil {
		return nil, err
	}

	path := filingDocumentPath(filing)
	exists, err := s.documents.Exists(ctx, path)
	if err != nil {
		return nil, err
	}
	if !exists {
		if _, err := s.writeFilingDocument(ctx, filing); err != nil {
			return nil, err
		}
	}

	return s.documents.Get(ctx, path)
}

func (s *PayrollServiceImpl) ListFilings(ctx context.Context, orgID, periodID string) ([]payroll.FilingResponse, error) {
	if _, err := s.payrollRepo.GetPeriodByID(ctx, orgID, periodID); err != nil {
		return nil, err
	}

	filings, err := s.payrollRepo.ListFilingsByPeriod(ctx, orgID, periodID)
	if err != nil {
		return nil, err
	}

	result := make([]payroll.FilingResponse, 0, len(filings))
	for _, f := range filings {
		result = append(result, payroll.MapFilingResponse(f))
	}
	return result, nil
}

func (s *PayrollServiceImpl) MarkFilingFiled(ctx context.Context, orgID, filingID string) error {
	filing, err := s.payrollRepo.GetFilingByID(ctx, orgID, filingID)
	if err != nil {
		return err
	}
	if filing.Status == payroll.FilingStatusFiled {
		return payroll.ErrFilingAlreadyFiled
	}

	return s.payrollRepo.UpdateFilingStatus(ctx, orgID, filingID, payroll.FilingStatusFiled)
}
