package create_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ProphetBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-ProphetBookingService/internal/api/middleware"
	createBooking "github.com/m04kA/SMC-ProphetBookingService/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingAccountID   = "отсутствует ID аккаунта"
	msgCourseNotFound     = "курс не найден"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	accountID, ok := middleware.GetAccountID(r.Context())
	if !ok {
		h.logger.Warn("POST /bookings - Missing account ID")
		handlers.RespondUnauthorized(w, msgMissingAccountID)
		return
	}

	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if err := handlers.Validate(&req); err != nil {
		h.logger.Warn("POST /bookings - Validation failed: account_id=%s, %v", accountID, err)
		handlers.RespondBadRequest(w, err.Error())
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(accountID))
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrNotFound):
			h.logger.Warn("POST /bookings - Customer not found: account_id=%s", accountID)
			handlers.RespondNotFound(w, err.Error())

		case errors.Is(err, createBooking.ErrCourseNotFound):
			h.logger.Warn("POST /bookings - Course not found: course_id=%s", req.CourseID)
			handlers.RespondNotFound(w, msgCourseNotFound)

		case errors.Is(err, createBooking.ErrBadRequest):
			h.logger.Warn("POST /bookings - Rejected: account_id=%s, course_id=%s, %v", accountID, req.CourseID, err)
			handlers.RespondBadRequest(w, err.Error())

		case errors.Is(err, createBooking.ErrInternal):
			h.logger.Error("POST /bookings - Transaction failed: account_id=%s, course_id=%s", accountID, req.CourseID)
			handlers.RespondError(w, http.StatusInternalServerError, err.Error())

		default:
			h.logger.Error("POST /bookings - Failed to create booking: account_id=%s, course_id=%s, error=%v",
				accountID, req.CourseID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings - Booking created successfully: booking_id=%s, account_id=%s, course_id=%s",
		result.Booking.ID, accountID, req.CourseID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
