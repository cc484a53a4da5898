package models

import (
	"fmt"
	"time"
)

// Alert types.
type AlertType string

const (
	AlertPriceBreakout AlertType = "PRICE_BREAKOUT"
	AlertVolumeSpike   AlertType = "VOLUME_SPIKE"
	AlertRSI           AlertType = "RSI"
	AlertPercentMove   AlertType = "PERCENT_MOVE"
)

// Alert statuses.
const (
	AlertActive    = "ACTIVE"
	AlertTriggered = "TRIGGERED"
	AlertDisabled  = "DISABLED"
)

// Price breakout directions.
const (
	DirectionAbove = "ABOVE"
	DirectionBelow = "BELOW"
)

// RSI signals.
const (
	RSIOverbought = "OVERBOUGHT"
	RSIOversold   = "OVERSOLD"
)

// Percent move timeframes.
const (
	Timeframe1D = "1D"
	Timeframe1W = "1W"
	Timeframe1M = "1M"
)

// TimeframeDays maps a percent-move timeframe to its day count,
// defaulting to one day for unknown values.
func TimeframeDays(tf string) int {
	switch tf {
	case Timeframe1W:
		return 7
	case Timeframe1M:
		return 30
	default:
		return 1
	}
}

// ValidationError reports a rejected field on alert creation or update.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Conditions is the storage form of an alert's trigger parameters. Only the
// fields relevant to the alert's type are populated; Variant converts to the
// typed form used for evaluation.
type Conditions struct {
	TargetPrice   float64 `json:"target_price,omitempty"`
	Direction     string  `json:"direction,omitempty"`
	Threshold     float64 `json:"threshold,omitempty"`
	Level         float64 `json:"level,omitempty"`
	Signal        string  `json:"signal,omitempty"`
	PercentChange float64 `json:"percent_change,omitempty"`
	Timeframe     string  `json:"timeframe,omitempty"`
}

// Condition variants, one per alert type.

type PriceBreakoutCondition struct {
	TargetPrice float64
	Direction   string
}

type VolumeSpikeCondition struct {
	Threshold float64 // current/average volume ratio that fires the alert
}

type RSICondition struct {
	Level  float64
	Signal string
}

type PercentMoveCondition struct {
	PercentChange float64
	Timeframe     string
}

// Variant returns the typed condition for the given alert type, validating
// the fields that type requires. The switch is exhaustive over alert types.
func (c *Conditions) Variant(alertType AlertType) (interface{}, error) {
	switch alertType {
	case AlertPriceBreakout:
		if c.TargetPrice <= 0 {
			return nil, &ValidationError{Field: "target_price", Message: "must be a positive price"}
		}
		if c.Direction != DirectionAbove && c.Direction != DirectionBelow {
			return nil, &ValidationError{Field: "direction", Message: "must be ABOVE or BELOW"}
		}
		return PriceBreakoutCondition{TargetPrice: c.TargetPrice, Direction: c.Direction}, nil

	case AlertVolumeSpike:
		if c.Threshold <= 0 {
			return nil, &ValidationError{Field: "threshold", Message: "must be a positive volume multiple"}
		}
		return VolumeSpikeCondition{Threshold: c.Threshold}, nil

	case AlertRSI:
		if c.Level < 0 || c.Level > 100 {
			return nil, &ValidationError{Field: "level", Message: "must be between 0 and 100"}
		}
		if c.Signal != RSIOverbought && c.Signal != RSIOversold {
			return nil, &ValidationError{Field: "signal", Message: "must be OVERBOUGHT or OVERSOLD"}
		}
		return RSICondition{Level: c.Level, Signal: c.Signal}, nil

	case AlertPercentMove:
		if c.PercentChange == 0 {
			return nil, &ValidationError{Field: "percent_change", Message: "must be non-zero"}
		}
		switch c.Timeframe {
		case Timeframe1D, Timeframe1W, Timeframe1M:
		default:
			return nil, &ValidationError{Field: "timeframe", Message: "must be 1D, 1W or 1M"}
		}
		return PercentMoveCondition{PercentChange: c.PercentChange, Timeframe: c.Timeframe}, nil
	}

	return nil, &ValidationError{Field: "alert_type", Message: fmt.Sprintf("unknown alert type %q", alertType)}
}

// NotificationPrefs selects delivery channels for a triggered alert.
type NotificationPrefs struct {
	Email bool `json:"email"`
	InApp bool `json:"in_app"`
}

// Alert is a user-defined market condition watch.
type Alert struct {
	ID            string            `json:"alert_id"`
	UserID        string            `json:"user_id"`
	Symbol        string            `json:"symbol"`
	AlertType     AlertType         `json:"alert_type"`
	Conditions    Conditions        `json:"conditions"`
	Status        string            `json:"status"`
	Notifications NotificationPrefs `json:"notifications"`
	LastTriggered *time.Time        `json:"last_triggered,omitempty"`
	TriggerCount  int               `json:"trigger_count"`
	CreatedAt     time.Time         `json:"created_at"`
	UpdatedAt     time.Time         `json:"updated_at"`
}

// Validate checks the alert's symbol and typed conditions.
func (a *Alert) Validate() error {
	if a.Symbol == "" {
		return &ValidationError{Field: "symbol", Message: "is required"}
	}
	_, err := a.Conditions.Variant(a.AlertType)
	return err
}
