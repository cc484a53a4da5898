package server

import (
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/arjunmehra/folio/internal/models"
)

// getOwnedPortfolio loads a portfolio and checks it belongs to userID.
// Foreign and missing portfolios are indistinguishable to the caller.
func (s *Server) getOwnedPortfolio(w http.ResponseWriter, r *http.Request, portfolioID, userID string) (*models.Portfolio, bool) {
	p, err := s.app.Storage.Portfolios().Get(r.Context(), portfolioID)
	if err != nil {
		s.logger.Error().Err(err).Str("portfolio_id", portfolioID).Msg("Failed to load portfolio")
		WriteError(w, http.StatusInternalServerError, "failed to load portfolio")
		return nil, false
	}
	if p == nil || p.UserID != userID {
		WriteError(w, http.StatusNotFound, "Portfolio not found")
		return nil, false
	}
	return p, true
}

// handlePortfolios handles GET and POST /api/portfolios.
func (s *Server) handlePortfolios(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet, http.MethodPost) {
		return
	}

	uc, ok := requireUser(w, r)
	if !ok {
		return
	}
	ctx := r.Context()

	if r.Method == http.MethodGet {
		list, err := s.app.Storage.Portfolios().ListByUser(ctx, uc.UserID)
		if err != nil {
			s.logger.Error().Err(err).Msg("Failed to list portfolios")
			WriteError(w, http.StatusInternalServerError, "failed to list portfolios")
			return
		}
		WriteJSON(w, http.StatusOK, map[string]interface{}{"portfolios": list})
		return
	}

	var req struct {
		Name        string `json:"name"`
		Description string `json:"description"`
	}
	if !DecodeJSON(w, r, &req) {
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" || len(req.Name) > 100 {
		WriteError(w, http.StatusBadRequest, "name is required and must be at most 100 characters")
		return
	}

	now := time.Now()
	p := &models.Portfolio{
		ID:          "pf_" + uuid.New().String()[:8],
		UserID:      uc.UserID,
		Name:        req.Name,
		Description: req.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.app.Storage.Portfolios().Save(ctx, p); err != nil {
		s.logger.Error().Err(err).Msg("Failed to save portfolio")
		WriteError(w, http.StatusInternalServerError, "failed to create portfolio")
		return
	}

	WriteJSON(w, http.StatusCreated, p)
}

// handlePortfolioByID handles GET, PUT and DELETE /api/portfolios/{id}.
func (s *Server) handlePortfolioByID(w http.ResponseWriter, r *http.Request, portfolioID string) {
	if !RequireMethod(w, r, http.MethodGet, http.MethodPut, http.MethodDelete) {
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
	ctx := r.Context()

	switch r.Method {
	case http.MethodGet:
		holdings, err := s.app.Storage.Holdings().ListByPortfolio(ctx, p.ID)
		if err != nil {
			s.logger.Error().Err(err).Msg("Failed to list holdings")
			WriteError(w, http.StatusInternalServerError, "failed to load portfolio")
			return
		}
		WriteJSON(w, http.StatusOK, map[string]interface{}{
			"portfolio": p,
			"holdings":  holdings,
		})

	case http.MethodPut:
		var req struct {
			Name        *string `json:"name"`
			Description *string `json:"description"`
		}
		if !DecodeJSON(w, r, &req) {
			return
		}
		if req.Name != nil {
			name := strings.TrimSpace(*req.Name)
			if name == "" || len(name) > 100 {
				WriteError(w, http.StatusBadRequest, "name is required and must be at most 100 characters")
				return
			}
			p.Name = name
		}
		if req.Description != nil {
			p.Description = *req.Description
		}
		p.UpdatedAt = time.Now()

		if err := s.app.Storage.Portfolios().Save(ctx, p); err != nil {
			s.logger.Error().Err(err).Msg("Failed to save portfolio")
			WriteError(w, http.StatusInternalServerError, "failed to update portfolio")
			return
		}
		WriteJSON(w, http.StatusOK, p)

	case http.MethodDelete:
		// Cascade: holdings and trades go with the portfolio.
		holdingCount, err := s.app.Storage.Holdings().DeleteByPortfolio(ctx, p.ID)
		if err != nil {
			s.logger.Error().Err(err).Msg("Failed to delete holdings")
			WriteError(w, http.StatusInternalServerError, "failed to delete portfolio")
			return
		}
		tradeCount, err := s.app.Storage.Trades().DeleteByPortfolio(ctx, p.ID)
		if err != nil {
			s.logger.Error().Err(err).Msg("Failed to delete trades")
			WriteError(w, http.StatusInternalServerError, "failed to delete portfolio")
			return
		}
		if err := s.app.Storage.Portfolios().Delete(ctx, p.ID); err != nil {
			s.logger.Error().Err(err).Msg("Failed to delete portfolio")
			WriteError(w, http.StatusInternalServerError, "failed to delete portfolio")
			return
		}

		s.logger.Info().
			Str("portfolio_id", p.ID).
			Int("holdings_deleted", holdingCount).
			Int("trades_deleted", tradeCount).
			Msg("Portfolio deleted")

		WriteJSON(w, http.StatusOK, map[string]interface{}{
			"deleted":          p.ID,
			"holdings_deleted": holdingCount,
			"trades_deleted":   tradeCount,
		})
	}
}
