package server

import (
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/arjunmehra/folio/internal/models"
)

// handleTrades handles GET and POST /api/portfolios/{id}/trades.
func (s *Server) handleTrades(w http.ResponseWriter, r *http.Request, portfolioID string) {
	if !RequireMethod(w, r, http.MethodGet, http.MethodPost) {
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

	if r.Method == http.MethodGet {
		trades, err := s.app.Storage.Trades().ListByPortfolio(ctx, p.ID)
		if err != nil {
			s.logger.Error().Err(err).Msg("Failed to list trades")
			WriteError(w, http.StatusInternalServerError, "failed to list trades")
			return
		}
		WriteJSON(w, http.StatusOK, map[string]interface{}{"trades": trades})
		return
	}

	var req struct {
		Symbol    string    `json:"symbol"`
		TradeType string    `json:"trade_type"`
		Quantity  float64   `json:"quantity"`
		Price     float64   `json:"price"`
		Charges   float64   `json:"charges"`
		TradeDate time.Time `json:"trade_date"`
		Notes     string    `json:"notes"`
	}
	if !DecodeJSON(w, r, &req) {
		return
	}

	req.Symbol = strings.ToUpper(strings.TrimSpace(req.Symbol))
	if req.Symbol == "" {
		WriteError(w, http.StatusBadRequest, "symbol is required")
		return
	}
	if req.TradeType != models.TradeBuy && req.TradeType != models.TradeSell {
		WriteError(w, http.StatusBadRequest, "trade_type must be BUY or SELL")
		return
	}
	if req.Quantity <= 0 {
		WriteError(w, http.StatusBadRequest, "quantity must be positive")
		return
	}
	if req.Price <= 0 {
		WriteError(w, http.StatusBadRequest, "price must be positive")
		return
	}
	if req.Charges < 0 {
		WriteError(w, http.StatusBadRequest, "charges cannot be negative")
		return
	}

	now := time.Now()
	tradeDate := req.TradeDate
	if tradeDate.IsZero() {
		tradeDate = now
	}
	if tradeDate.After(now) {
		WriteError(w, http.StatusBadRequest, "trade_date cannot be in the future")
		return
	}

	t := &models.Trade{
		ID:          "trd_" + uuid.New().String()[:8],
		PortfolioID: p.ID,
		Symbol:      req.Symbol,
		TradeType:   req.TradeType,
		Quantity:    req.Quantity,
		Price:       req.Price,
		Charges:     req.Charges,
		TradeDate:   tradeDate,
		Notes:       req.Notes,
		CreatedAt:   now,
	}
	if err := s.app.Storage.Trades().Save(ctx, t); err != nil {
		s.logger.Error().Err(err).Msg("Failed to save trade")
		WriteError(w, http.StatusInternalServerError, "failed to record trade")
		return
	}

	WriteJSON(w, http.StatusCreated, t)
}

// handleTradeByID handles DELETE /api/portfolios/{id}/trades/{tid}.
// Trades are otherwise immutable; deletion exists to correct entry errors.
func (s *Server) handleTradeByID(w http.ResponseWriter, r *http.Request, portfolioID, tradeID string) {
	if !RequireMethod(w, r, http.MethodDelete) {
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

	t, err := s.app.Storage.Trades().Get(ctx, tradeID)
	if err != nil {
		s.logger.Error().Err(err).Str("trade_id", tradeID).Msg("Failed to load trade")
		WriteError(w, http.StatusInternalServerError, "failed to load trade")
		return
	}
	if t == nil || t.PortfolioID != p.ID {
		WriteError(w, http.StatusNotFound, "Trade not found")
		return
	}

	if err := s.app.Storage.Trades().Delete(ctx, t.ID); err != nil {
		s.logger.Error().Err(err).Msg("Failed to delete trade")
		WriteError(w, http.StatusInternalServerError, "failed to delete trade")
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{"deleted": t.ID})
}
