package handlers

import (
	"net/http"
	"strconv"

	"room_booking/internal/booking"
	"room_booking/internal/models"
	"room_booking/internal/response"
	"room_booking/internal/ws"

	"github.com/gin-gonic/gin"
)

type CreateBookingRequest struct {
	ClassroomID uint   `json:"classroom_id" binding:"required"`
	Date        string `json:"date" binding:"required" example:"2026-09-15"`
	StartTime   string `json:"start_time" binding:"required" example:"09:00"`
	EndTime     string `json:"end_time" binding:"required" example:"10:00"`
	Purpose     string `json:"purpose" binding:"required"`
}

type BookingItem struct {
	ID          uint   `json:"id"`
	ClassroomID uint   `json:"classroom_id"`
	RoomNumber  string `json:"room_number,omitempty"`
	Date        string `json:"date"`
	StartTime   string `json:"start_time"`
	EndTime     string `json:"end_time"`
	Purpose     string `json:"purpose"`
	Status      string `json:"status"`
	RecurringID *uint  `json:"recurring_id,omitempty"`
}

func toBookingItem(b models.Booking) BookingItem {
	return BookingItem{
		ID:          b.ID,
		ClassroomID: b.ClassroomID,
		RoomNumber:  b.Classroom.RoomNumber,
		Date:        b.BookingDate.Format(dateLayout),
		StartTime:   booking.FormatClock(b.StartMin),
		EndTime:     booking.FormatClock(b.EndMin),
		Purpose:     b.Purpose,
		Status:      b.Status,
		RecurringID: b.RecurringID,
	}
}

// CreateBookingHandler обрабатывает запрос на бронирование аудитории.
// Если слот занят, пользователь встаёт в очередь ожидания.
// @Summary		Бронирование аудитории
// @Description	Создаёт бронирование; при занятом слоте ставит в очередь ожидания
// @Tags			bookings
// @Accept			json
// @Produce		json
// @Param			booking	body		CreateBookingRequest	true	"Параметры бронирования"
// @Security		BearerAuth
// @Success		201	{object}	BookingItem	"Бронирование создано"
// @Success		202	{object}	response.QueuedResponse	"Слот занят, запрос поставлен в очередь"
// @Failure		400	{object}	response.ErrorResponse	"Ошибка валидации (INVALID_INTERVAL, DURATION_TOO_LONG, OUT_OF_BOOKING_WINDOW, PAST_DATE, PAST_TIME, USER_DOUBLE_BOOKED, QUOTA_EXCEEDED)"
// @Failure		404	{object}	response.ErrorResponse	"Аудитория не найдена (NOT_FOUND)"
// @Failure		409	{object}	response.ErrorResponse	"Конфликт транзакций (TRY_AGAIN)"
// @Router			/api/bookings [post]
func CreateBookingHandler(c *gin.Context) {
	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{
			Code:    "VALIDATION_ERROR",
			Message: "Ошибка валидации данных",
			Details: err.Error(),
		})
		return
	}

	date, err := parseDate(req.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{
			Code:    "INVALID_DATE",
			Message: "Неверный формат даты, ожидается ГГГГ-ММ-ДД",
		})
		return
	}
	startMin, err := booking.ParseClock(req.StartTime)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{
			Code:    "INVALID_TIME",
			Message: "Неверный формат времени начала, ожидается ЧЧ:ММ",
		})
		return
	}
	endMin, err := booking.ParseClock(req.EndTime)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{
			Code:    "INVALID_TIME",
			Message: "Неверный формат времени окончания, ожидается ЧЧ:ММ",
		})
		return
	}

	userID := c.GetUint("userID")
	role := c.GetString("userRole")

	result, err := Bookings.RequestBooking(userID, role, req.ClassroomID, date, startMin, endMin, req.Purpose)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	classroomIDStr := strconv.Itoa(int(req.ClassroomID))

	if result.Queued != nil {
		ws.HubInstance.BroadcastWSMessage(ws.WSMessage{
			EventType:   ws.EventQueueJoined,
			ClassroomID: classroomIDStr,
			Data: map[string]interface{}{
				"user_id":  userID,
				"date":     req.Date,
				"position": result.Queued.Position,
			},
		})
		c.JSON(http.StatusAccepted, response.QueuedResponse{
			Message:  "Аудитория занята. Вы встали в очередь. Вас уведомят, когда слот освободится.",
			QueueID:  result.Queued.ID,
			Position: result.Queued.Position,
		})
		return
	}

	ws.HubInstance.BroadcastWSMessage(ws.WSMessage{
		EventType:   ws.EventBookingCreated,
		ClassroomID: classroomIDStr,
		Data: map[string]interface{}{
			"booking_id": result.Booking.ID,
			"date":       req.Date,
			"start_time": req.StartTime,
			"end_time":   req.EndTime,
			"status":     result.Booking.Status,
		},
	})
	c.JSON(http.StatusCreated, toBookingItem(*result.Booking))
}

// CancelBookingHandler отменяет бронирование и продвигает очередь слота.
// @Summary		Отмена бронирования
// @Description	Удаляет бронирование; первый в очереди ожидания получает уведомление
// @Tags			bookings
// @Produce		json
// @Param			id	path		string	true	"ID бронирования"
// @Security		BearerAuth
// @Success		200	{object}	response.SuccessResponse	"Бронирование отменено"
// @Failure		400	{object}	response.ErrorResponse	"Бронирование уже началось (ALREADY_STARTED)"
// @Failure		403	{object}	response.ErrorResponse	"Чужое бронирование (FORBIDDEN)"
// @Failure		404	{object}	response.ErrorResponse	"Бронирование не найдено (NOT_FOUND)"
// @Router			/api/bookings/{id} [delete]
func CancelBookingHandler(c *gin.Context) {
	bookingID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{
			Code:    "INVALID_BOOKING_ID",
			Message: "Неверный идентификатор бронирования",
		})
		return
	}

	userID := c.GetUint("userID")
	role := c.GetString("userRole")

	cancelled, promoted, err := Bookings.CancelBooking(uint(bookingID), userID, role)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	classroomIDStr := strconv.Itoa(int(cancelled.ClassroomID))
	ws.HubInstance.BroadcastWSMessage(ws.WSMessage{
		EventType:   ws.EventBookingCancelled,
		ClassroomID: classroomIDStr,
		Data: map[string]interface{}{
			"booking_id": cancelled.ID,
			"date":       cancelled.BookingDate.Format(dateLayout),
		},
	})
	if promoted != nil {
		ws.HubInstance.BroadcastWSMessage(ws.WSMessage{
			EventType:   ws.EventSlotAvailable,
			ClassroomID: classroomIDStr,
			Data: map[string]interface{}{
				"user_id":    promoted.UserID,
				"date":       promoted.BookingDate.Format(dateLayout),
				"start_time": booking.FormatClock(promoted.StartMin),
				"end_time":   booking.FormatClock(promoted.EndMin),
			},
		})
	}

	c.JSON(http.StatusOK, response.SuccessResponse{Message: "Бронирование успешно отменено"})
}

// GetUserBookingsHandler возвращает бронирования текущего пользователя.
// @Summary		Мои бронирования
// @Description	Список бронирований текущего пользователя, свежие первыми
// @Tags			profile
// @Produce		json
// @Security		BearerAuth
// @Success		200	{array}		BookingItem
// @Failure		500	{object}	response.ErrorResponse	"Ошибка сервера (DB_ERROR)"
// @Router			/api/profile/bookings [get]
func GetUserBookingsHandler(c *gin.Context) {
	userID := c.GetUint("userID")

	bookings, err := Bookings.ListForUser(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.ErrorResponse{
			Code:    "DB_ERROR",
			Message: "Ошибка загрузки бронирований",
			Details: err.Error(),
		})
		return
	}

	items := make([]BookingItem, 0, len(bookings))
	for _, b := range bookings {
		items = append(items, toBookingItem(b))
	}
	c.JSON(http.StatusOK, items)
}
