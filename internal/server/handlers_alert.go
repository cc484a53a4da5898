package server

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/arjunmehra/folio/internal/models"
)

// writeAlertError maps validation failures to 400 and everything else to 500.
func (s *Server) writeAlertError(w http.ResponseWriter, err error) {
	var verr *models.ValidationError
	if errors.As(err, &verr) {
		WriteError(w, http.StatusBadRequest, verr.Error())
		return
	}
	s.logger.Error().Err(err).Msg("Alert operation failed")
	WriteError(w, http.StatusInternalServerError, "alert operation failed")
}

// handleAlerts handles GET and POST /api/alerts.
func (s *Server) handleAlerts(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet, http.MethodPost) {
		return
	}

	uc, ok := requireUser(w, r)
	if !ok {
		return
	}
	ctx := r.Context()
	store := s.app.Storage.Alerts()

	if r.Method == http.MethodGet {
		list, err := store.ListByUser(ctx, uc.UserID)
		if err != nil {
			s.logger.Error().Err(err).Msg("Failed to list alerts")
			WriteError(w, http.StatusInternalServerError, "failed to list alerts")
			return
		}
		WriteJSON(w, http.StatusOK, map[string]interface{}{"alerts": list})
		return
	}

	var req struct {
		Symbol        string                   `json:"symbol"`
		AlertType     models.AlertType         `json:"alert_type"`
		Conditions    models.Conditions        `json:"conditions"`
		Notifications models.NotificationPrefs `json:"notifications"`
	}
	if !DecodeJSON(w, r, &req) {
		return
	}

	now := time.Now()
	a := &models.Alert{
		ID:            "alt_" + uuid.New().String()[:8],
		UserID:        uc.UserID,
		Symbol:        strings.ToUpper(strings.TrimSpace(req.Symbol)),
		AlertType:     req.AlertType,
		Conditions:    req.Conditions,
		Status:        models.AlertActive,
		Notifications: req.Notifications,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := a.Validate(); err != nil {
		s.writeAlertError(w, err)
		return
	}

	if err := store.Save(ctx, a); err != nil {
		s.logger.Error().Err(err).Msg("Failed to save alert")
		WriteError(w, http.StatusInternalServerError, "failed to create alert")
		return
	}

	WriteJSON(w, http.StatusCreated, a)
}

// handleAlertByID handles GET, PUT and DELETE /api/alerts/{id}.
func (s *Server) handleAlertByID(w http.ResponseWriter, r *http.Request, alertID string) {
	if !RequireMethod(w, r, http.MethodGet, http.MethodPut, http.MethodDelete) {
		return
	}

	uc, ok := requireUser(w, r)
	if !ok {
		return
	}
	ctx := r.Context()
	store := s.app.Storage.Alerts()

	a, err := store.Get(ctx, alertID)
	if err != nil {
		s.logger.Error().Err(err).Str("alert_id", alertID).Msg("Failed to load alert")
		WriteError(w, http.StatusInternalServerError, "failed to load alert")
		return
	}
	if a == nil || a.UserID != uc.UserID {
		WriteError(w, http.StatusNotFound, "Alert not found")
		return
	}

	switch r.Method {
	case http.MethodGet:
		WriteJSON(w, http.StatusOK, a)

	case http.MethodPut:
		var req struct {
			Conditions    *models.Conditions        `json:"conditions"`
			Status        *string                   `json:"status"`
			Notifications *models.NotificationPrefs `json:"notifications"`
		}
		if !DecodeJSON(w, r, &req) {
			return
		}

		if req.Conditions != nil {
			a.Conditions = *req.Conditions
		}
		if req.Status != nil {
			switch *req.Status {
			case models.AlertActive, models.AlertTriggered, models.AlertDisabled:
				a.Status = *req.Status
			default:
				WriteError(w, http.StatusBadRequest, "status must be ACTIVE, TRIGGERED or DISABLED")
				return
			}
		}
		if req.Notifications != nil {
			a.Notifications = *req.Notifications
		}
		if err := a.Validate(); err != nil {
			s.writeAlertError(w, err)
			return
		}
		a.UpdatedAt = time.Now()

		if err := store.Save(ctx, a); err != nil {
			s.logger.Error().Err(err).Msg("Failed to save alert")
			WriteError(w, http.StatusInternalServerError, "failed to update alert")
			return
		}
		WriteJSON(w, http.StatusOK, a)

	case http.MethodDelete:
		if err := store.Delete(ctx, a.ID); err != nil {
			s.logger.Error().Err(err).Msg("Failed to delete alert")
			WriteError(w, http.StatusInternalServerError, "failed to delete alert")
			return
		}
		WriteJSON(w, http.StatusOK, map[string]interface{}{"deleted": a.ID})
	}
}

// handleAlertsEvaluate handles POST /api/alerts/evaluate. It runs the same
// batch the scheduler runs, on demand.
func (s *Server) handleAlertsEvaluate(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	if _, ok := requireUser(w, r); !ok {
		return
	}

	result, err := s.app.Alerts.EvaluateAll(r.Context())
	if err != nil {
		s.logger.Error().Err(err).Msg("Alert evaluation failed")
		WriteError(w, http.StatusInternalServerError, "alert evaluation failed")
		return
	}

	WriteJSON(w, http.StatusOK, result)
}
