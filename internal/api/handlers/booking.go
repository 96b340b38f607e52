package handlers

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ProphetBookingService/internal/service/bookings"
)

// maxBookingIDLength верхняя граница длины ID в пути запроса
const maxBookingIDLength = 32

const (
	msgInvalidBookingID  = "некорректный ID бронирования"
	msgBookingNotFound   = "бронирование не найдено"
	msgBookingForbidden  = "доступ запрещен"
	msgInvalidTransition = "статус бронирования уже не может быть изменён"
	msgInvalidStatus     = "недопустимый статус, ожидается COMPLETED или FAILED"
)

// BookingIDFromPath достаёт {bookingId} из пути. При некорректном ID
// пишет 400 и возвращает false.
func BookingIDFromPath(w http.ResponseWriter, r *http.Request) (string, bool) {
	bookingID := mux.Vars(r)["bookingId"]
	if bookingID == "" || len(bookingID) > maxBookingIDLength {
		RespondBadRequest(w, msgInvalidBookingID)
		return "", false
	}
	return bookingID, true
}

// RespondBookingError пишет ответ для ошибки сервиса бронирований.
// Возвращает true, если ошибка ожидаемая (4xx), false - для 500.
func RespondBookingError(w http.ResponseWriter, err error) bool {
	switch {
	case errors.Is(err, bookings.ErrInvalidStatus):
		RespondBadRequest(w, msgInvalidStatus)
	case errors.Is(err, bookings.ErrBookingNotFound):
		RespondNotFound(w, msgBookingNotFound)
	case errors.Is(err, bookings.ErrAccessDenied):
		RespondForbidden(w, msgBookingForbidden)
	case errors.Is(err, bookings.ErrInvalidTransition):
		RespondConflict(w, msgInvalidTransition)
	default:
		RespondInternalError(w)
		return false
	}
	return true
}
