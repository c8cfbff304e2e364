package handlers

import (
	"net/http"
	"strconv"

	"room_booking/internal/models"
	"room_booking/internal/response"
	"room_booking/internal/storage"

	"github.com/gin-gonic/gin"
)

// GetPendingBookingsHandler возвращает бронирования, ожидающие подтверждения.
// @Summary		Ожидающие бронирования
// @Description	Список бронирований в статусе pending для подтверждения или отклонения
// @Tags			admin
// @Produce		json
// @Security		BearerAuth
// @Success		200	{array}		BookingItem
// @Failure		403	{object}	response.ErrorResponse	"Недостаточно прав (FORBIDDEN)"
// @Failure		500	{object}	response.ErrorResponse	"Ошибка сервера (DB_ERROR)"
// @Router			/api/admin/bookings [get]
func GetPendingBookingsHandler(c *gin.Context) {
	var pending []models.Booking
	err := storage.DB.
		Preload("Classroom").
		Where("status = ?", models.BookingStatusPending).
		Order("booking_date ASC, start_min ASC").
		Find(&pending).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.ErrorResponse{
			Code:    "DB_ERROR",
			Message: "Ошибка загрузки бронирований",
			Details: err.Error(),
		})
		return
	}

	items := make([]BookingItem, 0, len(pending))
	for _, b := range pending {
		items = append(items, toBookingItem(b))
	}
	c.JSON(http.StatusOK, items)
}

// ApproveBookingHandler подтверждает ожидающее бронирование.
// @Summary		Подтверждение бронирования
// @Tags			admin
// @Produce		json
// @Param			id	path		string	true	"ID бронирования"
// @Security		BearerAuth
// @Success		200	{object}	response.SuccessResponse	"Бронирование одобрено"
// @Failure		400	{object}	response.ErrorResponse	"Уже обработано (BOOKING_ALREADY_PROCESSED)"
// @Failure		403	{object}	response.ErrorResponse	"Недостаточно прав (FORBIDDEN)"
// @Failure		404	{object}	response.ErrorResponse	"Не найдено (NOT_FOUND)"
// @Router			/api/admin/bookings/{id}/approve [post]
func ApproveBookingHandler(c *gin.Context) {
	bookingID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{
			Code:    "INVALID_BOOKING_ID",
			Message: "Неверный идентификатор бронирования",
		})
		return
	}

	if _, err := Bookings.ApproveBooking(uint(bookingID), c.GetString("userRole")); err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.SuccessResponse{Message: "Бронирование одобрено"})
}

// RejectBookingHandler отклоняет ожидающее бронирование.
// @Summary		Отклонение бронирования
// @Tags			admin
// @Produce		json
// @Param			id	path		string	true	"ID бронирования"
// @Security		BearerAuth
// @Success		200	{object}	response.SuccessResponse	"Бронирование отклонено"
// @Failure		400	{object}	response.ErrorResponse	"Уже обработано (BOOKING_ALREADY_PROCESSED)"
// @Failure		403	{object}	response.ErrorResponse	"Недостаточно прав (FORBIDDEN)"
// @Failure		404	{object}	response.ErrorResponse	"Не найдено (NOT_FOUND)"
// @Router			/api/admin/bookings/{id}/reject [post]
func RejectBookingHandler(c *gin.Context) {
	bookingID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{
			Code:    "INVALID_BOOKING_ID",
			Message: "Неверный идентификатор бронирования",
		})
		return
	}

	if _, err := Bookings.RejectBooking(uint(bookingID), c.GetString("userRole")); err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.SuccessResponse{Message: "Бронирование отклонено"})
}

type ClassroomRequest struct {
	RoomNumber   string `json:"room_number" binding:"required"`
	Capacity     int    `json:"capacity" binding:"required,min=1"`
	Floor        int    `json:"floor" binding:"required"`
	HasProjector bool   `json:"has_projector"`
	HasComputers bool   `json:"has_computers"`
}

// CreateClassroomHandler добавляет новую аудиторию.
// @Summary		Создание аудитории
// @Tags			admin
// @Accept			json
// @Produce		json
// @Param			classroom	body		ClassroomRequest	true	"Параметры аудитории"
// @Security		BearerAuth
// @Success		201	{object}	response.SuccessResponse	"Аудитория создана"
// @Failure		400	{object}	response.ErrorResponse	"Номер занят (ROOM_NUMBER_EXISTS)"
// @Failure		403	{object}	response.ErrorResponse	"Недостаточно прав (FORBIDDEN)"
// @Router			/api/admin/classrooms [post]
func CreateClassroomHandler(c *gin.Context) {
	var req ClassroomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{
			Code:    "VALIDATION_ERROR",
			Message: "Ошибка валидации данных",
			Details: err.Error(),
		})
		return
	}

	var existing models.Classroom
	if err := storage.DB.Where("room_number = ?", req.RoomNumber).First(&existing).Error; err == nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{
			Code:    "ROOM_NUMBER_EXISTS",
			Message: "Аудитория с таким номером уже существует",
		})
		return
	}

	classroom := models.Classroom{
		RoomNumber:   req.RoomNumber,
		Capacity:     req.Capacity,
		Floor:        req.Floor,
		HasProjector: req.HasProjector,
		HasComputers: req.HasComputers,
		IsActive:     true,
	}
	if err := storage.DB.Create(&classroom).Error; err != nil {
		c.JSON(http.StatusInternalServerError, response.ErrorResponse{
			Code:    "DB_ERROR",
			Message: "Ошибка при создании аудитории",
			Details: err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, response.SuccessResponse{Message: "Аудитория успешно создана"})
}

// UpdateClassroomHandler изменяет параметры аудитории.
// @Summary		Изменение аудитории
// @Tags			admin
// @Accept			json
// @Produce		json
// @Param			id			path		string				true	"ID аудитории"
// @Param			classroom	body		ClassroomRequest	true	"Новые параметры"
// @Security		BearerAuth
// @Success		200	{object}	response.SuccessResponse	"Аудитория обновлена"
// @Failure		403	{object}	response.ErrorResponse	"Недостаточно прав (FORBIDDEN)"
// @Failure		404	{object}	response.ErrorResponse	"Не найдена (NOT_FOUND)"
// @Router			/api/admin/classrooms/{id} [put]
func UpdateClassroomHandler(c *gin.Context) {
	classroomID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{
			Code:    "INVALID_CLASSROOM_ID",
			Message: "Неверный идентификатор аудитории",
		})
		return
	}

	var req ClassroomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{
			Code:    "VALIDATION_ERROR",
			Message: "Ошибка валидации данных",
			Details: err.Error(),
		})
		return
	}

	var classroom models.Classroom
	if err := storage.DB.First(&classroom, classroomID).Error; err != nil {
		c.JSON(http.StatusNotFound, response.ErrorResponse{
			Code:    "NOT_FOUND",
			Message: "Аудитория не найдена",
		})
		return
	}

	classroom.RoomNumber = req.RoomNumber
	classroom.Capacity = req.Capacity
	classroom.Floor = req.Floor
	classroom.HasProjector = req.HasProjector
	classroom.HasComputers = req.HasComputers
	if err := storage.DB.Save(&classroom).Error; err != nil {
		c.JSON(http.StatusInternalServerError, response.ErrorResponse{
			Code:    "DB_ERROR",
			Message: "Ошибка при обновлении аудитории",
			Details: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, response.SuccessResponse{Message: "Аудитория обновлена"})
}

// DeactivateClassroomHandler мягко удаляет аудиторию: она перестаёт
// отображаться и бронироваться, существующие брони не трогаются.
// @Summary		Деактивация аудитории
// @Tags			admin
// @Produce		json
// @Param			id	path		string	true	"ID аудитории"
// @Security		BearerAuth
// @Success		200	{object}	response.SuccessResponse	"Аудитория деактивирована"
// @Failure		403	{object}	response.ErrorResponse	"Недостаточно прав (FORBIDDEN)"
// @Failure		404	{object}	response.ErrorResponse	"Не найдена (NOT_FOUND)"
// @Router			/api/admin/classrooms/{id} [delete]
func DeactivateClassroomHandler(c *gin.Context) {
	classroomID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{
			Code:    "INVALID_CLASSROOM_ID",
			Message: "Неверный идентификатор аудитории",
		})
		return
	}

	var classroom models.Classroom
	if err := storage.DB.First(&classroom, classroomID).Error; err != nil {
		c.JSON(http.StatusNotFound, response.ErrorResponse{
			Code:    "NOT_FOUND",
			Message: "Аудитория не найдена",
		})
		return
	}

	classroom.IsActive = false
	if err := storage.DB.Save(&classroom).Error; err != nil {
		c.JSON(http.StatusInternalServerError, response.ErrorResponse{
			Code:    "DB_ERROR",
			Message: "Ошибка при деактивации аудитории",
			Details: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, response.SuccessResponse{Message: "Аудитория деактивирована"})
}
