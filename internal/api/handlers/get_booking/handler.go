package get_booking

import (
	"net/http"

	"github.com/m04kA/SMC-ProphetBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-ProphetBookingService/internal/api/middleware"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Handle GET /api/v1/bookings/{bookingId}
// Бронирование и его платёжная транзакция; только для клиента бронирования.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	accountID, ok := middleware.GetAccountID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, "отсутствует ID аккаунта")
		return
	}

	bookingID, ok := handlers.BookingIDFromPath(w, r)
	if !ok {
		return
	}

	view, err := h.service.GetByID(r.Context(), bookingID, accountID)
	if err != nil {
		if handlers.RespondBookingError(w, err) {
			h.logger.Warn("GET /bookings/{id} - booking_id=%s, account_id=%s: %v", bookingID, accountID, err)
		} else {
			h.logger.Error("GET /bookings/{id} - booking_id=%s: %v", bookingID, err)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, view)
}
