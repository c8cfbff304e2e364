package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"room_booking/internal/booking"
	"room_booking/internal/models"
	"room_booking/internal/response"
	"room_booking/internal/storage"

	"github.com/gin-gonic/gin"
)

var classroomCtx = context.Background()

type ClassroomItem struct {
	ID           uint   `json:"id"`
	RoomNumber   string `json:"room_number"`
	Capacity     int    `json:"capacity"`
	Floor        int    `json:"floor"`
	HasProjector bool   `json:"has_projector"`
	HasComputers bool   `json:"has_computers"`
	IsOccupied   bool   `json:"is_occupied_now"`
	OccupiedBy   string `json:"occupied_by,omitempty"`
	Until        string `json:"occupied_until,omitempty"`
}

// GetClassroomsHandler возвращает активные аудитории с фильтрами.
// @Summary		Список аудиторий
// @Description	Активные аудитории с фильтрами по этажу, оборудованию и занятости
// @Tags			classrooms
// @Produce		json
// @Param			floor		query	string	false	"Этаж"
// @Param			equipment	query	string	false	"projector или computers"
// @Param			status		query	string	false	"free или occupied"
// @Success		200	{array}		ClassroomItem
// @Failure		500	{object}	response.ErrorResponse	"Ошибка сервера (DB_ERROR)"
// @Router			/api/classrooms [get]
func GetClassroomsHandler(c *gin.Context) {
	query := storage.DB.Where("is_active = ?", true)

	switch c.Query("equipment") {
	case "projector":
		query = query.Where("has_projector = ?", true)
	case "computers":
		query = query.Where("has_computers = ?", true)
	}
	if floor := c.Query("floor"); floor != "" {
		if f, err := strconv.Atoi(floor); err == nil {
			query = query.Where("floor = ?", f)
		}
	}

	var classrooms []models.Classroom
	if err := query.Find(&classrooms).Error; err != nil {
		c.JSON(http.StatusInternalServerError, response.ErrorResponse{
			Code:    "DB_ERROR",
			Message: "Ошибка загрузки аудиторий",
			Details: err.Error(),
		})
		return
	}

	now := Clock.Now()
	today := booking.DateOnly(now)
	nowMin := now.Hour()*60 + now.Minute()

	items := make([]ClassroomItem, 0, len(classrooms))
	for _, room := range classrooms {
		item := ClassroomItem{
			ID:           room.ID,
			RoomNumber:   room.RoomNumber,
			Capacity:     room.Capacity,
			Floor:        room.Floor,
			HasProjector: room.HasProjector,
			HasComputers: room.HasComputers,
		}

		// Занята ли аудитория прямо сейчас подтверждённым бронированием.
		var active models.Booking
		err := storage.DB.Preload("User").
			Where("classroom_id = ? AND booking_date = ? AND status = ?", room.ID, today, models.BookingStatusApproved).
			Where("start_min <= ? AND end_min > ?", nowMin, nowMin).
			First(&active).Error
		if err == nil {
			item.IsOccupied = true
			item.OccupiedBy = active.User.Username
			item.Until = booking.FormatClock(active.EndMin)
		}

		items = append(items, item)
	}

	switch c.Query("status") {
	case "free":
		filtered := items[:0]
		for _, it := range items {
			if !it.IsOccupied {
				filtered = append(filtered, it)
			}
		}
		items = filtered
	case "occupied":
		filtered := items[:0]
		for _, it := range items {
			if it.IsOccupied {
				filtered = append(filtered, it)
			}
		}
		items = filtered
	}

	c.JSON(http.StatusOK, items)
}

type AvailabilityResponse struct {
	ClassroomID uint   `json:"classroom_id"`
	Date        string `json:"date"`
	StartTime   string `json:"start_time"`
	EndTime     string `json:"end_time"`
	IsAvailable bool   `json:"is_available"`
	Conflict    *struct {
		User    string `json:"user"`
		Purpose string `json:"purpose"`
		Time    string `json:"time"`
	} `json:"conflict,omitempty"`
}

// CheckAvailabilityHandler проверяет доступность аудитории на интервал.
// @Summary		Проверка доступности
// @Description	Свободен ли слот; если занят — кем и на какое время
// @Tags			classrooms
// @Produce		json
// @Param			id		path	string	true	"ID аудитории"
// @Param			date	query	string	true	"Дата ГГГГ-ММ-ДД"
// @Param			start	query	string	true	"Начало ЧЧ:ММ"
// @Param			end		query	string	true	"Конец ЧЧ:ММ"
// @Success		200	{object}	AvailabilityResponse
// @Failure		400	{object}	response.ErrorResponse	"Неверные параметры"
// @Router			/api/classrooms/{id}/availability [get]
func CheckAvailabilityHandler(c *gin.Context) {
	classroomID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{
			Code:    "INVALID_CLASSROOM_ID",
			Message: "Неверный идентификатор аудитории",
		})
		return
	}

	date, err := parseDate(c.Query("date"))
	if err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{
			Code:    "INVALID_DATE",
			Message: "Неверный формат даты, ожидается ГГГГ-ММ-ДД",
		})
		return
	}
	startMin, err := booking.ParseClock(c.Query("start"))
	if err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{
			Code:    "INVALID_TIME",
			Message: "Неверный формат времени, ожидается ЧЧ:ММ",
		})
		return
	}
	endMin, err := booking.ParseClock(c.Query("end"))
	if err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{
			Code:    "INVALID_TIME",
			Message: "Неверный формат времени, ожидается ЧЧ:ММ",
		})
		return
	}

	available, conflict, err := Bookings.CheckAvailability(uint(classroomID), date, startMin, endMin)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	resp := AvailabilityResponse{
		ClassroomID: uint(classroomID),
		Date:        c.Query("date"),
		StartTime:   c.Query("start"),
		EndTime:     c.Query("end"),
		IsAvailable: available,
	}
	if conflict != nil {
		resp.Conflict = &struct {
			User    string `json:"user"`
			Purpose string `json:"purpose"`
			Time    string `json:"time"`
		}{
			User:    conflict.User.Username,
			Purpose: conflict.Purpose,
			Time:    booking.FormatClock(conflict.StartMin) + " - " + booking.FormatClock(conflict.EndMin),
		}
	}

	c.JSON(http.StatusOK, resp)
}

type ScheduleSlot struct {
	Time     string `json:"time"`
	IsBooked bool   `json:"is_booked"`
	Booking  *struct {
		User    string `json:"user"`
		Purpose string `json:"purpose"`
		Status  string `json:"status"`
	} `json:"booking,omitempty"`
}

type ScheduleResponse struct {
	ClassroomID uint           `json:"classroom_id"`
	Date        string         `json:"date"`
	Schedule    []ScheduleSlot `json:"schedule"`
}

// Рабочие часы сетки расписания: с 08:00 до 21:00 включительно.
const (
	scheduleFirstHour = 8
	scheduleLastHour  = 22
)

// GetClassroomScheduleHandler возвращает почасовую сетку занятости аудитории
// на дату. Результат кэшируется в Redis и сбрасывается при изменении броней.
// @Summary		Расписание аудитории
// @Description	Почасовая сетка занятости аудитории на дату
// @Tags			classrooms
// @Produce		json
// @Param			id		path	string	true	"ID аудитории"
// @Param			date	query	string	false	"Дата ГГГГ-ММ-ДД (по умолчанию сегодня)"
// @Success		200	{object}	ScheduleResponse
// @Failure		400	{object}	response.ErrorResponse	"Неверные параметры"
// @Failure		500	{object}	response.ErrorResponse	"Ошибка сервера (DB_ERROR)"
// @Router			/api/classrooms/{id}/schedule [get]
func GetClassroomScheduleHandler(c *gin.Context) {
	classroomID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{
			Code:    "INVALID_CLASSROOM_ID",
			Message: "Неверный идентификатор аудитории",
		})
		return
	}

	dateStr := c.Query("date")
	if dateStr == "" {
		dateStr = Clock.Now().Format(dateLayout)
	}
	date, err := parseDate(dateStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{
			Code:    "INVALID_DATE",
			Message: "Неверный формат даты, ожидается ГГГГ-ММ-ДД",
		})
		return
	}

	cacheKey := "schedule:" + strconv.Itoa(classroomID) + ":" + dateStr
	if storage.RedisClient != nil {
		if cached, err := storage.RedisClient.Get(classroomCtx, cacheKey).Result(); err == nil && cached != "" {
			var resp ScheduleResponse
			if err := json.Unmarshal([]byte(cached), &resp); err == nil {
				c.JSON(http.StatusOK, resp)
				return
			}
		}
	}

	bookings, err := Bookings.RoomScheduleForDate(uint(classroomID), date)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.ErrorResponse{
			Code:    "DB_ERROR",
			Message: "Ошибка загрузки расписания",
			Details: err.Error(),
		})
		return
	}

	resp := ScheduleResponse{
		ClassroomID: uint(classroomID),
		Date:        dateStr,
		Schedule:    make([]ScheduleSlot, 0, scheduleLastHour-scheduleFirstHour),
	}
	for hour := scheduleFirstHour; hour < scheduleLastHour; hour++ {
		slotStart := hour * 60
		slot := ScheduleSlot{Time: booking.FormatClock(slotStart)}
		for _, b := range bookings {
			if booking.Overlaps(slotStart, slotStart+60, b.StartMin, b.EndMin) {
				slot.IsBooked = true
				slot.Booking = &struct {
					User    string `json:"user"`
					Purpose string `json:"purpose"`
					Status  string `json:"status"`
				}{
					User:    b.User.Username,
					Purpose: b.Purpose,
					Status:  b.Status,
				}
				break
			}
		}
		resp.Schedule = append(resp.Schedule, slot)
	}

	if storage.RedisClient != nil {
		if payload, err := json.Marshal(resp); err == nil {
			storage.RedisClient.Set(classroomCtx, cacheKey, payload, 5*time.Minute)
		}
	}

	c.JSON(http.StatusOK, resp)
}
