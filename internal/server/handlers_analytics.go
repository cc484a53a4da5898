package server

import (
	"net/http"
	"strconv"
)

// defaultComparisonDays is the benchmark window when the caller gives none.
const defaultComparisonDays = 90

// parseDays reads an optional ?days= query parameter.
func parseDays(r *http.Request) (int, string) {
	raw := r.URL.Query().Get("days")
	if raw == "" {
		return defaultComparisonDays, ""
	}
	days, err := strconv.Atoi(raw)
	if err != nil || days < 2 || days > 365 {
		return 0, "days must be an integer between 2 and 365"
	}
	return days, ""
}

// handleAnalytics handles GET /api/portfolios/{id}/analytics.
func (s *Server) handleAnalytics(w http.ResponseWriter, r *http.Request, portfolioID string) {
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

	benchmark := r.URL.Query().Get("benchmark")
	snapshot, err := s.app.Analytics.ComputeMetrics(r.Context(), p.ID, benchmark)
	if err != nil {
		s.logger.Error().Err(err).Str("portfolio_id", p.ID).Msg("Failed to compute metrics")
		WriteError(w, http.StatusInternalServerError, "failed to compute analytics")
		return
	}

	WriteJSON(w, http.StatusOK, snapshot)
}

// handleAnalyticsBenchmark handles GET /api/portfolios/{id}/analytics/benchmark.
func (s *Server) handleAnalyticsBenchmark(w http.ResponseWriter, r *http.Request, portfolioID string) {
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

	days, errMsg := parseDays(r)
	if errMsg != "" {
		WriteError(w, http.StatusBadRequest, errMsg)
		return
	}

	benchmark := r.URL.Query().Get("benchmark")
	comparison, err := s.app.Analytics.CompareBenchmark(r.Context(), p.ID, benchmark, days)
	if err != nil {
		s.logger.Error().Err(err).Str("portfolio_id", p.ID).Msg("Failed to compare benchmark")
		WriteError(w, http.StatusInternalServerError, "failed to compare against benchmark")
		return
	}

	WriteJSON(w, http.StatusOK, comparison)
}

// handleAnalyticsChart handles GET /api/portfolios/{id}/analytics/chart.
// Responds with a PNG image rather than JSON.
func (s *Server) handleAnalyticsChart(w http.ResponseWriter, r *http.Request, portfolioID string) {
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

	days, errMsg := parseDays(r)
	if errMsg != "" {
		WriteError(w, http.StatusBadRequest, errMsg)
		return
	}

	benchmark := r.URL.Query().Get("benchmark")
	png, err := s.app.Analytics.RenderComparisonChart(r.Context(), p.ID, benchmark, days)
	if err != nil {
		s.logger.Error().Err(err).Str("portfolio_id", p.ID).Msg("Failed to render chart")
		WriteError(w, http.StatusInternalServerError, "failed to render chart")
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(png); err != nil {
		s.logger.Error().Err(err).Msg("Failed to write chart response")
	}
}
