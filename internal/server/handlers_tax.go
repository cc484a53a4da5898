package server

import (
	"net/http"

	"github.com/arjunmehra/folio/internal/services/tax"
)

// handleTaxReport handles GET /api/portfolios/{id}/tax-report.
func (s *Server) handleTaxReport(w http.ResponseWriter, r *http.Request, portfolioID string) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	uc, ok := requireUser(w, r)
	if !ok {
		return
	}
	p, ok := s.getOwnedPortfolio(w, r, portfolioID, uc.UserID)
	if !ok {
		return
	}

	financialYear := r.URL.Query().Get("financial_year")
	if financialYear != "" {
		if _, _, err := tax.FYWindow(financialYear); err != nil {
			WriteError(w, http.StatusBadRequest, "financial_year must look like \"FY 2025-2026\"")
			return
		}
	}

	report, err := s.app.Tax.Report(r.Context(), p.ID, financialYear)
	if err != nil {
		s.logger.Error().Err(err).Str("portfolio_id", p.ID).Msg("Failed to build tax report")
		WriteError(w, http.StatusInternalServerError, "failed to build tax report")
		return
	}

	WriteJSON(w, http.StatusOK, report)
}

// handleTaxReportFYWise handles GET /api/portfolios/{id}/tax-report/fy-wise.
func (s *Server) handleTaxReportFYWise(w http.ResponseWriter, r *http.Request, portfolioID string) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	uc, ok := requireUser(w, r)
	if !ok {
		return
	}
	p, ok := s.getOwnedPortfolio(w, r, portfolioID, uc.UserID)
	if !ok {
		return
	}

	reports, err := s.app.Tax.FYWiseReports(r.Context(), p.ID)
	if err != nil {
		s.logger.Error().Err(err).Str("portfolio_id", p.ID).Msg("Failed to build FY-wise tax reports")
		WriteError(w, http.StatusInternalServerError, "failed to build tax reports")
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{"reports": reports})
}
