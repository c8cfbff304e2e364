package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"room_booking/internal/booking"
	"room_booking/internal/models"
	"room_booking/internal/response"

	"github.com/gin-gonic/gin"
)

type CreateRecurringRequest struct {
	ClassroomID    uint   `json:"classroom_id" binding:"required"`
	StartDate      string `json:"start_date" binding:"required" example:"2026-09-01"`
	EndDate        string `json:"end_date" binding:"required" example:"2026-12-20"`
	DayOfWeek      *int   `json:"day_of_week" binding:"required" example:"1"`
	StartTime      string `json:"start_time" binding:"required" example:"10:00"`
	EndTime        string `json:"end_time" binding:"required" example:"12:00"`
	RecurrenceType string `json:"recurrence_type" binding:"required" example:"weekly"`
	Purpose        string `json:"purpose" binding:"required"`
}

type RecurringItem struct {
	ID             uint   `json:"id"`
	ClassroomID    uint   `json:"classroom_id"`
	RoomNumber     string `json:"room_number,omitempty"`
	StartDate      string `json:"start_date"`
	EndDate        string `json:"end_date"`
	DayOfWeek      int    `json:"day_of_week"`
	StartTime      string `json:"start_time"`
	EndTime        string `json:"end_time"`
	RecurrenceType string `json:"recurrence_type"`
	Purpose        string `json:"purpose"`
	Status         string `json:"status"`
}

func toRecurringItem(r models.RecurringBooking) RecurringItem {
	return RecurringItem{
		ID:             r.ID,
		ClassroomID:    r.ClassroomID,
		RoomNumber:     r.Classroom.RoomNumber,
		StartDate:      r.StartDate.Format(dateLayout),
		EndDate:        r.EndDate.Format(dateLayout),
		DayOfWeek:      r.DayOfWeek,
		StartTime:      booking.FormatClock(r.StartMin),
		EndTime:        booking.FormatClock(r.EndMin),
		RecurrenceType: r.RecurrenceType,
		Purpose:        r.Purpose,
		Status:         r.Status,
	}
}

type CreateRecurringResponse struct {
	Message  string        `json:"message"`
	Series   RecurringItem `json:"series"`
	Bookings []BookingItem `json:"bookings"`
}

// CreateRecurringHandler создаёт регулярное бронирование.
// @Summary		Регулярное бронирование
// @Description	Создаёт правило и брони первого окна; конфликт любой даты отменяет всё
// @Tags			recurring
// @Accept			json
// @Produce		json
// @Param			series	body		CreateRecurringRequest	true	"Параметры серии"
// @Security		BearerAuth
// @Success		201	{object}	CreateRecurringResponse	"Серия создана"
// @Failure		400	{object}	response.ErrorResponse	"Ошибка валидации (INVALID_DATE_RANGE, INVALID_DAY_OF_WEEK, INVALID_RECURRENCE_TYPE, PAST_DATE)"
// @Failure		409	{object}	response.ErrorResponse	"Одна из дат занята (SERIES_DATE_CONFLICT)"
// @Router			/api/recurring [post]
func CreateRecurringHandler(c *gin.Context) {
	var req CreateRecurringRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{
			Code:    "VALIDATION_ERROR",
			Message: "Ошибка валидации данных",
			Details: err.Error(),
		})
		return
	}

	startDate, err := parseDate(req.StartDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{
			Code:    "INVALID_DATE",
			Message: "Неверный формат даты начала, ожидается ГГГГ-ММ-ДД",
		})
		return
	}
	endDate, err := parseDate(req.EndDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{
			Code:    "INVALID_DATE",
			Message: "Неверный формат даты окончания, ожидается ГГГГ-ММ-ДД",
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

	series, generated, err := Recurring.CreateSeries(userID, role, req.ClassroomID,
		startDate, endDate, *req.DayOfWeek, startMin, endMin, req.RecurrenceType, req.Purpose)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	items := make([]BookingItem, 0, len(generated))
	for _, b := range generated {
		items = append(items, toBookingItem(b))
	}

	c.JSON(http.StatusCreated, CreateRecurringResponse{
		Message:  fmt.Sprintf("Регулярное бронирование создано! Создано %d бронирований.", len(generated)),
		Series:   toRecurringItem(*series),
		Bookings: items,
	})
}

// CancelRecurringHandler отменяет серию и её будущие бронирования.
// @Summary		Отмена регулярного бронирования
// @Description	Отменяет правило и удаляет будущие активные брони серии; прошедшие остаются
// @Tags			recurring
// @Produce		json
// @Param			id	path		string	true	"ID серии"
// @Security		BearerAuth
// @Success		200	{object}	response.SuccessResponse	"Серия отменена"
// @Failure		403	{object}	response.ErrorResponse	"Чужая серия (FORBIDDEN)"
// @Failure		404	{object}	response.ErrorResponse	"Серия не найдена (NOT_FOUND)"
// @Router			/api/recurring/{id} [delete]
func CancelRecurringHandler(c *gin.Context) {
	seriesID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{
			Code:    "INVALID_SERIES_ID",
			Message: "Неверный идентификатор серии",
		})
		return
	}

	userID := c.GetUint("userID")
	role := c.GetString("userRole")

	deleted, err := Recurring.CancelSeries(uint(seriesID), userID, role)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.SuccessResponse{
		Message: fmt.Sprintf("Регулярное бронирование отменено. Удалено %d будущих бронирований.", deleted),
	})
}

// GetUserRecurringHandler возвращает серии текущего пользователя.
// @Summary		Мои регулярные бронирования
// @Tags			profile
// @Produce		json
// @Security		BearerAuth
// @Success		200	{array}		RecurringItem
// @Failure		500	{object}	response.ErrorResponse	"Ошибка сервера (DB_ERROR)"
// @Router			/api/profile/recurring [get]
func GetUserRecurringHandler(c *gin.Context) {
	userID := c.GetUint("userID")

	series, err := Recurring.ListForUser(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.ErrorResponse{
			Code:    "DB_ERROR",
			Message: "Ошибка загрузки регулярных бронирований",
			Details: err.Error(),
		})
		return
	}

	items := make([]RecurringItem, 0, len(series))
	for _, r := range series {
		items = append(items, toRecurringItem(r))
	}
	c.JSON(http.StatusOK, items)
}
