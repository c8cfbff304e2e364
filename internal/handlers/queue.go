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

type QueueItem struct {
	ID          uint   `json:"id"`
	ClassroomID uint   `json:"classroom_id"`
	Date        string `json:"date"`
	StartTime   string `json:"start_time"`
	EndTime     string `json:"end_time"`
	Position    int    `json:"position"`
	Status      string `json:"status"`
	Notified    bool   `json:"notified"`
}

func toQueueItem(e models.BookingQueue) QueueItem {
	return QueueItem{
		ID:          e.ID,
		ClassroomID: e.ClassroomID,
		Date:        e.BookingDate.Format(dateLayout),
		StartTime:   booking.FormatClock(e.StartMin),
		EndTime:     booking.FormatClock(e.EndMin),
		Position:    e.Position,
		Status:      e.Status,
		Notified:    e.Notified,
	}
}

// GetUserQueueHandler возвращает записи пользователя в очередях ожидания.
// @Summary		Мои очереди
// @Description	Записи текущего пользователя в очередях ожидания слотов
// @Tags			profile
// @Produce		json
// @Security		BearerAuth
// @Success		200	{array}		QueueItem
// @Failure		500	{object}	response.ErrorResponse	"Ошибка сервера (DB_ERROR)"
// @Router			/api/profile/queue [get]
func GetUserQueueHandler(c *gin.Context) {
	userID := c.GetUint("userID")

	entries, err := Queues.ListForUser(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.ErrorResponse{
			Code:    "DB_ERROR",
			Message: "Ошибка загрузки записей очереди",
			Details: err.Error(),
		})
		return
	}

	items := make([]QueueItem, 0, len(entries))
	for _, e := range entries {
		items = append(items, toQueueItem(e))
	}
	c.JSON(http.StatusOK, items)
}

// RemoveFromQueueHandler удаляет запись из очереди с переиндексацией позиций.
// @Summary		Выход из очереди
// @Description	Удаляет запись из очереди; оставшиеся позиции уплотняются до 1..N
// @Tags			queue
// @Produce		json
// @Param			id	path		string	true	"ID записи очереди"
// @Security		BearerAuth
// @Success		200	{object}	response.SuccessResponse	"Запись удалена"
// @Failure		403	{object}	response.ErrorResponse	"Чужая запись (FORBIDDEN)"
// @Failure		404	{object}	response.ErrorResponse	"Запись не найдена (NOT_FOUND)"
// @Router			/api/queue/{id} [delete]
func RemoveFromQueueHandler(c *gin.Context) {
	entryID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{
			Code:    "INVALID_QUEUE_ID",
			Message: "Неверный идентификатор записи очереди",
		})
		return
	}

	userID := c.GetUint("userID")
	role := c.GetString("userRole")

	removed, err := Queues.Remove(uint(entryID), userID, role)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	ws.HubInstance.BroadcastWSMessage(ws.WSMessage{
		EventType:   ws.EventQueueLeft,
		ClassroomID: strconv.Itoa(int(removed.ClassroomID)),
		Data: map[string]interface{}{
			"user_id":       removed.UserID,
			"date":          removed.BookingDate.Format(dateLayout),
			"left_position": removed.Position,
		},
	})

	c.JSON(http.StatusOK, response.SuccessResponse{Message: "Вы удалены из очереди"})
}
