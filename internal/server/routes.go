package server

import (
	"net/http"
	"strings"
)

// registerRoutes sets up all REST API routes on the mux.
func (s *Server) registerRoutes(mux *http.ServeMux) {
	// System
	mux.HandleFunc("/api/health", s.handleHealth)
	mux.HandleFunc("/api/version", s.handleVersion)
	mux.HandleFunc("/api/config", s.handleConfig)

	// Auth
	mux.HandleFunc("/api/auth/register", s.handleAuthRegister)
	mux.HandleFunc("/api/auth/login", s.handleAuthLogin)
	mux.HandleFunc("/api/auth/profile", s.handleAuthProfile)

	// Portfolios and their nested resources
	mux.HandleFunc("/api/portfolios/", s.routePortfolios)
	mux.HandleFunc("/api/portfolios", s.handlePortfolios)

	// Alerts
	mux.HandleFunc("/api/alerts/evaluate", s.handleAlertsEvaluate)
	mux.HandleFunc("/api/alerts/", s.routeAlerts)
	mux.HandleFunc("/api/alerts", s.handleAlerts)
}

// routePortfolios dispatches /api/portfolios/{id}/* to the appropriate handler.
func (s *Server) routePortfolios(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/api/portfolios/")
	if path == "" {
		s.handlePortfolios(w, r)
		return
	}

	parts := strings.SplitN(path, "/", 2)
	portfolioID := parts[0]
	rest := ""
	if len(parts) == 2 {
		rest = parts[1]
	}

	switch {
	case rest == "":
		s.handlePortfolioByID(w, r, portfolioID)
	case rest == "holdings":
		s.handleHoldings(w, r, portfolioID)
	case rest == "holdings/refresh-prices":
		s.handleRefreshPrices(w, r, portfolioID)
	case strings.HasPrefix(rest, "holdings/"):
		s.handleHoldingByID(w, r, portfolioID, strings.TrimPrefix(rest, "holdings/"))
	case rest == "trades":
		s.handleTrades(w, r, portfolioID)
	case strings.HasPrefix(rest, "trades/"):
		s.handleTradeByID(w, r, portfolioID, strings.TrimPrefix(rest, "trades/"))
	case rest == "analytics":
		s.handleAnalytics(w, r, portfolioID)
	case rest == "analytics/benchmark":
		s.handleAnalyticsBenchmark(w, r, portfolioID)
	case rest == "analytics/chart":
		s.handleAnalyticsChart(w, r, portfolioID)
	case rest == "tax-report":
		s.handleTaxReport(w, r, portfolioID)
	case rest == "tax-report/fy-wise":
		s.handleTaxReportFYWise(w, r, portfolioID)
	default:
		WriteError(w, http.StatusNotFound, "Not found")
	}
}

// routeAlerts dispatches /api/alerts/{id} to the alert handler.
func (s *Server) routeAlerts(w http.ResponseWriter, r *http.Request) {
	alertID := strings.TrimPrefix(r.URL.Path, "/api/alerts/")
	if alertID == "" || strings.Contains(alertID, "/") {
		WriteError(w, http.StatusNotFound, "Not found")
		return
	}
	s.handleAlertByID(w, r, alertID)
}
