// Package alerts evaluates user-defined market condition watches and
// dispatches notifications when they trigger.
package alerts

import (
	"context"
	"fmt"
	"time"

	"github.com/arjunmehra/folio/internal/common"
	"github.com/arjunmehra/folio/internal/interfaces"
	"github.com/arjunmehra/folio/internal/models"
)

// Service implements interfaces.AlertService.
type Service struct {
	storage  interfaces.StorageManager
	market   interfaces.MarketDataClient
	notifier interfaces.Notifier
	logger   *common.Logger
}

// NewService creates the alert service.
func NewService(storage interfaces.StorageManager, market interfaces.MarketDataClient, notifier interfaces.Notifier, logger *common.Logger) *Service {
	return &Service{
		storage:  storage,
		market:   market,
		notifier: notifier,
		logger:   logger,
	}
}

// EvaluateAll runs every active alert. One alert's failure never stops the
// batch; failures are logged and counted.
func (s *Service) EvaluateAll(ctx context.Context) (*interfaces.AlertEvaluation, error) {
	active, err := s.storage.Alerts().ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("list active alerts: %w", err)
	}

	result := &interfaces.AlertEvaluation{}
	for _, alert := range active {
		result.Evaluated++
		triggered, err := s.EvaluateAlert(ctx, alert)
		if err != nil {
			result.Failed++
			s.logger.Warn().Err(err).
				Str("alert_id", alert.ID).
				Str("symbol", alert.Symbol).
				Msg("Alert evaluation failed")
			continue
		}
		if triggered {
			result.Triggered++
		}
	}

	s.logger.Info().
		Int("evaluated", result.Evaluated).
		Int("triggered", result.Triggered).
		Int("failed", result.Failed).
		Msg("Alert batch complete")

	return result, nil
}

// EvaluateAlert checks one alert against current market data. A triggered
// alert transitions ACTIVE to TRIGGERED, records the trigger and fans out
// notifications. Disabled alerts are never evaluated.
func (s *Service) EvaluateAlert(ctx context.Context, alert *models.Alert) (bool, error) {
	if alert.Status == models.AlertDisabled {
		return false, nil
	}

	variant, err := alert.Conditions.Variant(alert.AlertType)
	if err != nil {
		return false, err
	}

	triggered, err := s.checkCondition(ctx, alert.Symbol, variant)
	if err != nil {
		return false, err
	}
	if !triggered {
		return false, nil
	}

	now := time.Now()
	alert.Status = models.AlertTriggered
	alert.LastTriggered = &now
	alert.TriggerCount++
	alert.UpdatedAt = now
	if err := s.storage.Alerts().Save(ctx, alert); err != nil {
		return false, fmt.Errorf("save triggered alert: %w", err)
	}

	s.notify(ctx, alert)
	return true, nil
}

func (s *Service) checkCondition(ctx context.Context, symbol string, variant interface{}) (bool, error) {
	switch cond := variant.(type) {
	case models.PriceBreakoutCondition:
		price, err := s.market.GetCurrentPrice(ctx, symbol)
		if err != nil {
			return false, fmt.Errorf("current price for %s: %w", symbol, err)
		}
		return evaluatePriceBreakout(price, cond), nil

	case models.VolumeSpikeCondition:
		quote, err := s.market.GetQuote(ctx, symbol)
		if err != nil {
			return false, fmt.Errorf("quote for %s: %w", symbol, err)
		}
		return evaluateVolumeSpike(quote, cond), nil

	case models.RSICondition:
		closes, err := s.fetchCloses(ctx, symbol, rsiWindowDays)
		if err != nil {
			return false, err
		}
		return evaluateRSI(closes, cond), nil

	case models.PercentMoveCondition:
		closes, err := s.fetchCloses(ctx, symbol, models.TimeframeDays(cond.Timeframe)+1)
		if err != nil {
			return false, err
		}
		return evaluatePercentMove(closes, cond), nil
	}

	return false, fmt.Errorf("unsupported condition %T", variant)
}

func (s *Service) fetchCloses(ctx context.Context, symbol string, days int) ([]float64, error) {
	points, err := s.market.GetHistoricalPrices(ctx, symbol, days)
	if err != nil {
		return nil, fmt.Errorf("historical prices for %s: %w", symbol, err)
	}
	closes := make([]float64, len(points))
	for i, p := range points {
		closes[i] = p.Close
	}
	return closes, nil
}

// notify fans a triggered alert out to the user's channels. Delivery
// failures are logged and never fail the trigger.
func (s *Service) notify(ctx context.Context, alert *models.Alert) {
	if alert.Notifications.InApp {
		s.logger.Info().
			Str("alert_id", alert.ID).
			Str("user_id", alert.UserID).
			Str("symbol", alert.Symbol).
			Str("alert_type", string(alert.AlertType)).
			Msg("Alert triggered")
	}

	if !alert.Notifications.Email {
		return
	}

	user, err := s.storage.Users().Get(ctx, alert.UserID)
	if err != nil {
		s.logger.Warn().Err(err).Str("alert_id", alert.ID).Msg("Could not resolve alert recipient")
		return
	}

	subject := fmt.Sprintf("Alert triggered: %s %s", alert.Symbol, alert.AlertType)
	body := fmt.Sprintf("Hi %s,\n\nYour %s alert on %s has triggered (trigger #%d).\n\nReview it in your dashboard and re-activate it if you want to keep watching.\n", user.Name, alert.AlertType, alert.Symbol, alert.TriggerCount)
	if err := s.notifier.Send(ctx, user.Email, subject, body); err != nil {
		s.logger.Warn().Err(err).Str("alert_id", alert.ID).Msg("Alert email delivery failed")
	}
}

// Compile-time check
var _ interfaces.AlertService = (*Service)(nil)
