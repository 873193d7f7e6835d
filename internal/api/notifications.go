package api

import (
	"errors"
	"net/http"

	"github.com/shaharia-lab/bankalerts/internal/notification"
	"github.com/shaharia-lab/bankalerts/internal/service"
)

// Response messages returned by the notification endpoints.
const (
	msgHighValueDispatched    = "High value transaction notification dispatched."
	msgHighValueSkipped       = "Transaction below configured threshold; notification skipped."
	msgStatusChangeDispatched = "Account status change notification dispatched."
	msgAccountEventDispatched = "Account event notification dispatched."
)

// NotificationResponse is the body returned by every notification endpoint
// that accepted the request.
type NotificationResponse struct {
	Message string `json:"message"`
}

// TestMessageRequest addresses a test email or SMS.
type TestMessageRequest struct {
	To string `json:"to"`
}

func (s *Server) handleHighValueTransaction(w http.ResponseWriter, r *http.Request) {
	var req notification.HighValueTransactionRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, errInvalidJSONBody)
		return
	}

	dispatched, err := s.notificationSvc.HandleHighValueTransaction(r.Context(), req)
	if err != nil {
		s.writeServiceError(w, err, "failed to process high value transaction")
		return
	}
	if !dispatched {
		writeJSON(w, http.StatusOK, NotificationResponse{Message: msgHighValueSkipped})
		return
	}
	writeJSON(w, http.StatusAccepted, NotificationResponse{Message: msgHighValueDispatched})
}

func (s *Server) handleAccountStatusChange(w http.ResponseWriter, r *http.Request) {
	var req notification.AccountStatusChangeRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, errInvalidJSONBody)
		return
	}

	if err := s.notificationSvc.HandleAccountStatusChange(r.Context(), req); err != nil {
		s.writeServiceError(w, err, "failed to process account status change")
		return
	}
	writeJSON(w, http.StatusAccepted, NotificationResponse{Message: msgStatusChangeDispatched})
}

// handleAccountEvent rejects unknown event types while decoding, so the
// service only ever sees members of the closed set.
func (s *Server) handleAccountEvent(w http.ResponseWriter, r *http.Request) {
	var req notification.AccountEventRequest
	if err := decodeJSON(r, &req); err != nil {
		if errors.Is(err, notification.ErrUnknownAccountEventType) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeError(w, http.StatusBadRequest, errInvalidJSONBody)
		return
	}

	if err := s.notificationSvc.HandleAccountEvent(r.Context(), req); err != nil {
		s.writeServiceError(w, err, "failed to process account event")
		return
	}
	writeJSON(w, http.StatusAccepted, NotificationResponse{Message: msgAccountEventDispatched})
}

func (s *Server) handleTestEmail(w http.ResponseWriter, r *http.Request) {
	var req TestMessageRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, errInvalidJSONBody)
		return
	}
	if err := s.notificationSvc.SendTestEmail(r.Context(), req.To); err != nil {
		s.writeServiceError(w, err, "failed to send test email")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleTestSMS(w http.ResponseWriter, r *http.Request) {
	var req TestMessageRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, errInvalidJSONBody)
		return
	}
	if err := s.notificationSvc.SendTestSMS(r.Context(), req.To); err != nil {
		s.writeServiceError(w, err, "failed to send test sms")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// writeServiceError maps service errors onto HTTP statuses. Unexpected errors
// are logged and reported with the generic fallback message.
func (s *Server) writeServiceError(w http.ResponseWriter, err error, fallback string) {
	var ve *service.ValidationError
	var de *notification.DeliveryError
	switch {
	case errors.As(err, &ve):
		writeError(w, http.StatusBadRequest, ve.Error())
	case errors.As(err, &de):
		writeError(w, http.StatusBadGateway, de.Error())
	default:
		s.logger.Error(fallback, "error", err)
		writeError(w, http.StatusInternalServerError, fallback)
	}
}
