package server

import (
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/arjunmehra/folio/internal/models"
)

// handleHoldings handles GET and POST /api/portfolios/{id}/holdings.
func (s *Server) handleHoldings(w http.ResponseWriter, r *http.Request, portfolioID string) {
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
		holdings, err := s.app.Storage.Holdings().ListByPortfolio(ctx, p.ID)
		if err != nil {
			s.logger.Error().Err(err).Msg("Failed to list holdings")
			WriteError(w, http.StatusInternalServerError, "failed to list holdings")
			return
		}
		WriteJSON(w, http.StatusOK, map[string]interface{}{"holdings": holdings})
		return
	}

	var req struct {
		Symbol       string    `json:"symbol"`
		Name         string    `json:"name"`
		AssetType    string    `json:"asset_type"`
		Sector       string    `json:"sector"`
		Quantity     float64   `json:"quantity"`
		AvgBuyPrice  float64   `json:"avg_buy_price"`
		PurchaseDate time.Time `json:"purchase_date"`
	}
	if !DecodeJSON(w, r, &req) {
		return
	}

	req.Symbol = strings.ToUpper(strings.TrimSpace(req.Symbol))
	if req.Symbol == "" {
		WriteError(w, http.StatusBadRequest, "symbol is required")
		return
	}
	assetType := models.AssetType(req.AssetType)
	if !assetType.Valid() {
		WriteError(w, http.StatusBadRequest, "asset_type must be Equity, Mutual Fund, Crypto or US Stock")
		return
	}
	if req.Quantity <= 0 {
		WriteError(w, http.StatusBadRequest, "quantity must be positive")
		return
	}
	if req.AvgBuyPrice <= 0 {
		WriteError(w, http.StatusBadRequest, "avg_buy_price must be positive")
		return
	}

	now := time.Now()
	purchaseDate := req.PurchaseDate
	if purchaseDate.IsZero() {
		purchaseDate = now
	}

	h := &models.Holding{
		ID:           "hld_" + uuid.New().String()[:8],
		PortfolioID:  p.ID,
		Symbol:       req.Symbol,
		Name:         req.Name,
		AssetType:    assetType,
		Sector:       req.Sector,
		Quantity:     req.Quantity,
		AvgBuyPrice:  req.AvgBuyPrice,
		CurrentPrice: req.AvgBuyPrice,
		PurchaseDate: purchaseDate,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	// Seed the live price; keep the buy price if market data is down.
	if price, err := s.app.Market.GetCurrentPrice(ctx, h.Symbol); err == nil {
		h.CurrentPrice = price
		h.LastUpdated = now
	}

	if err := s.app.Storage.Holdings().Save(ctx, h); err != nil {
		s.logger.Error().Err(err).Msg("Failed to save holding")
		WriteError(w, http.StatusInternalServerError, "failed to create holding")
		return
	}

	WriteJSON(w, http.StatusCreated, h)
}

// handleHoldingByID handles PUT and DELETE /api/portfolios/{id}/holdings/{hid}.
func (s *Server) handleHoldingByID(w http.ResponseWriter, r *http.Request, portfolioID, holdingID string) {
	if !RequireMethod(w, r, http.MethodPut, http.MethodDelete) {
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

	h, err := s.app.Storage.Holdings().Get(ctx, holdingID)
	if err != nil {
		s.logger.Error().Err(err).Str("holding_id", holdingID).Msg("Failed to load holding")
		WriteError(w, http.StatusInternalServerError, "failed to load holding")
		return
	}
	if h == nil || h.PortfolioID != p.ID {
		WriteError(w, http.StatusNotFound, "Holding not found")
		return
	}

	if r.Method == http.MethodDelete {
		if err := s.app.Storage.Holdings().Delete(ctx, h.ID); err != nil {
			s.logger.Error().Err(err).Msg("Failed to delete holding")
			WriteError(w, http.StatusInternalServerError, "failed to delete holding")
			return
		}
		WriteJSON(w, http.StatusOK, map[string]interface{}{"deleted": h.ID})
		return
	}

	var req struct {
		Name        *string  `json:"name"`
		Sector      *string  `json:"sector"`
		Quantity    *float64 `json:"quantity"`
		AvgBuyPrice *float64 `json:"avg_buy_price"`
	}
	if !DecodeJSON(w, r, &req) {
		return
	}

	if req.Quantity != nil {
		if *req.Quantity <= 0 {
			WriteError(w, http.StatusBadRequest, "quantity must be positive")
			return
		}
		h.Quantity = *req.Quantity
	}
	if req.AvgBuyPrice != nil {
		if *req.AvgBuyPrice <= 0 {
			WriteError(w, http.StatusBadRequest, "avg_buy_price must be positive")
			return
		}
		h.AvgBuyPrice = *req.AvgBuyPrice
	}
	if req.Name != nil {
		h.Name = *req.Name
	}
	if req.Sector != nil {
		h.Sector = *req.Sector
	}
	h.UpdatedAt = time.Now()

	if err := s.app.Storage.Holdings().Save(ctx, h); err != nil {
		s.logger.Error().Err(err).Msg("Failed to save holding")
		WriteError(w, http.StatusInternalServerError, "failed to update holding")
		return
	}

	WriteJSON(w, http.StatusOK, h)
}

// handleRefreshPrices handles POST /api/portfolios/{id}/holdings/refresh-prices.
func (s *Server) handleRefreshPrices(w http.ResponseWriter, r *http.Request, portfolioID string) {
	if !RequireMethod(w, r, http.MethodPost) {
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

	count, err := s.app.Analytics.RefreshPrices(r.Context(), p.ID)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to refresh prices")
		WriteError(w, http.StatusInternalServerError, "failed to refresh prices")
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{"refreshed": count})
}
