package handlers

import (
	"errors"
	"net/http"
	"time"

	"room_booking/internal/booking"
	"room_booking/internal/clockwork"
	"room_booking/internal/queue"
	"room_booking/internal/recurring"
	"room_booking/internal/response"

	"github.com/gin-gonic/gin"
)

// Сервисы, с которыми работают обработчики. Инициализируются из main.
var (
	Bookings  *booking.Service
	Queues    *queue.Manager
	Recurring *recurring.Service
	Clock     clockwork.Clock
)

func Init(b *booking.Service, q *queue.Manager, r *recurring.Service, clock clockwork.Clock) {
	Bookings = b
	Queues = q
	Recurring = r
	Clock = clock
}

const dateLayout = "2006-01-02"

func parseDate(s string) (time.Time, error) {
	return time.Parse(dateLayout, s)
}

// writeServiceError переводит ошибки сервисного уровня в HTTP-ответы с кодами.
func writeServiceError(c *gin.Context, err error) {
	var seriesConflict *recurring.ConflictError
	if errors.As(err, &seriesConflict) {
		c.JSON(http.StatusConflict, response.ErrorResponse{
			Code:    "SERIES_DATE_CONFLICT",
			Message: seriesConflict.Error(),
			Details: seriesConflict.Date.Format(dateLayout),
		})
		return
	}

	code := "DB_ERROR"
	status := http.StatusInternalServerError

	switch {
	case errors.Is(err, booking.ErrInvalidInterval):
		code, status = "INVALID_INTERVAL", http.StatusBadRequest
	case errors.Is(err, booking.ErrDurationTooLong):
		code, status = "DURATION_TOO_LONG", http.StatusBadRequest
	case errors.Is(err, booking.ErrOutOfBookingWindow):
		code, status = "OUT_OF_BOOKING_WINDOW", http.StatusBadRequest
	case errors.Is(err, booking.ErrPastDate):
		code, status = "PAST_DATE", http.StatusBadRequest
	case errors.Is(err, booking.ErrPastTime):
		code, status = "PAST_TIME", http.StatusBadRequest
	case errors.Is(err, booking.ErrUserConflict):
		code, status = "USER_DOUBLE_BOOKED", http.StatusBadRequest
	case errors.Is(err, booking.ErrQuotaExceeded):
		code, status = "QUOTA_EXCEEDED", http.StatusBadRequest
	case errors.Is(err, booking.ErrForbidden):
		code, status = "FORBIDDEN", http.StatusForbidden
	case errors.Is(err, booking.ErrAlreadyStarted):
		code, status = "ALREADY_STARTED", http.StatusBadRequest
	case errors.Is(err, booking.ErrNotFound):
		code, status = "NOT_FOUND", http.StatusNotFound
	case errors.Is(err, booking.ErrNotPending):
		code, status = "BOOKING_ALREADY_PROCESSED", http.StatusBadRequest
	case errors.Is(err, booking.ErrTryAgain):
		code, status = "TRY_AGAIN", http.StatusConflict
	case errors.Is(err, recurring.ErrInvalidDateRange):
		code, status = "INVALID_DATE_RANGE", http.StatusBadRequest
	case errors.Is(err, recurring.ErrInvalidDayOfWeek):
		code, status = "INVALID_DAY_OF_WEEK", http.StatusBadRequest
	case errors.Is(err, recurring.ErrInvalidCadence):
		code, status = "INVALID_RECURRENCE_TYPE", http.StatusBadRequest
	}

	c.JSON(status, response.ErrorResponse{
		Code:    code,
		Message: err.Error(),
	})
}
