package update_booking_status

import (
	"net/http"

	"github.com/m04kA/SMC-ProphetBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-ProphetBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-ProphetBookingService/internal/service/bookings/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingAccountID   = "отсутствует ID аккаунта"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/bookings/{bookingId}/status
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	accountID, ok := middleware.GetAccountID(r.Context())
	if !ok {
		h.logger.Warn("PATCH /bookings/{id}/status - Missing account ID")
		handlers.RespondUnauthorized(w, msgMissingAccountID)
		return
	}

	bookingID, ok := handlers.BookingIDFromPath(w, r)
	if !ok {
		return
	}

	var req models.UpdateStatusRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /bookings/{id}/status - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Сервис проверит владельца и допустимость перехода
	result, err := h.service.UpdateStatus(r.Context(), bookingID, accountID, &req)
	if err != nil {
		if handlers.RespondBookingError(w, err) {
			h.logger.Warn("PATCH /bookings/{id}/status - Rejected: booking_id=%s, account_id=%s, status=%s: %v",
				bookingID, accountID, req.Status, err)
		} else {
			h.logger.Error("PATCH /bookings/{id}/status - Failed: booking_id=%s, error=%v", bookingID, err)
		}
		return
	}

	h.logger.Info("PATCH /bookings/{id}/status - Booking updated: booking_id=%s, status=%s",
		bookingID, result.Booking.Status)
	handlers.RespondJSON(w, http.StatusOK, result)
}
