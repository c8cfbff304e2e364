package tasks

import (
	"log"
	"strconv"

	"room_booking/internal/booking"
	"room_booking/internal/models"
	"room_booking/internal/notify"
	"room_booking/internal/queue"
	"room_booking/internal/recurring"
	"room_booking/internal/storage"
	"room_booking/internal/ws"

	"github.com/robfig/cron/v3"
)

var (
	bookings *booking.Service
	queues   *queue.Manager
	recurr   *recurring.Service
	mail     *notify.Dispatcher
)

// CompleteExpiredBookings помечает завершёнными брони, чьё время прошло.
// Идемпотентна, поэтому дублирование с вызовами перед чтениями безвредно.
func CompleteExpiredBookings() {
	n, err := bookings.AutoCompleteExpired()
	if err != nil {
		log.Println("Ошибка автозавершения бронирований:", err)
		return
	}
	if n > 0 {
		log.Printf("Автоматически завершено %d бронирований\n", n)
	}
}

// ExpireStaleNotifications снимает уведомлённых, не подтвердивших слот за час,
// и продвигает следующих в их очередях.
func ExpireStaleNotifications() {
	promoted, err := queues.ExpireNotified()
	if err != nil {
		log.Println("Ошибка обработки просроченных уведомлений:", err)
		return
	}
	for _, entry := range promoted {
		// Продвинутый узнаёт об освободившемся слоте письмом, как и при отмене.
		roomNumber := ""
		var room models.Classroom
		if err := storage.DB.First(&room, entry.ClassroomID).Error; err == nil {
			roomNumber = room.RoomNumber
		}
		mail.Submit(notify.Notification{
			To:         entry.User.Email,
			Username:   entry.User.Username,
			Kind:       notify.KindSlotAvailable,
			RoomNumber: roomNumber,
			Date:       entry.BookingDate.Format("02.01.2006"),
			StartTime:  booking.FormatClock(entry.StartMin),
			EndTime:    booking.FormatClock(entry.EndMin),
		})
		ws.HubInstance.BroadcastWSMessage(ws.WSMessage{
			EventType:   ws.EventSlotAvailable,
			ClassroomID: strconv.Itoa(int(entry.ClassroomID)),
			Data: map[string]interface{}{
				"user_id":    entry.UserID,
				"date":       entry.BookingDate.Format("2006-01-02"),
				"start_time": booking.FormatClock(entry.StartMin),
				"end_time":   booking.FormatClock(entry.EndMin),
			},
		})
	}
	if len(promoted) > 0 {
		log.Printf("Продвинуто %d записей очереди после истечения уведомлений\n", len(promoted))
	}
}

// ExtendRecurringSeries добирает брони активных серий до 28-дневного горизонта.
func ExtendRecurringSeries() {
	created, err := recurr.ExtendAll()
	if err != nil {
		log.Println("Ошибка продления регулярных бронирований:", err)
		return
	}
	if created > 0 {
		log.Printf("Регулярные серии продлены: создано %d бронирований\n", created)
	}
}

// InitScheduler инициализирует планировщик cron-задач.
func InitScheduler(b *booking.Service, q *queue.Manager, r *recurring.Service, m *notify.Dispatcher) *cron.Cron {
	bookings = b
	queues = q
	recurr = r
	mail = m

	c := cron.New(cron.WithSeconds())

	// Автозавершение прошедших бронирований каждые 10 минут.
	_, err := c.AddFunc("0 */10 * * * *", CompleteExpiredBookings)
	if err != nil {
		log.Println("Ошибка запуска cron-задачи CompleteExpiredBookings:", err)
	}

	// Просроченные уведомления очереди проверяются каждые 5 минут.
	_, err = c.AddFunc("0 */5 * * * *", ExpireStaleNotifications)
	if err != nil {
		log.Println("Ошибка запуска cron-задачи ExpireStaleNotifications:", err)
	}

	// Продление регулярных серий каждый день в 03:00.
	_, err = c.AddFunc("0 0 3 * * *", ExtendRecurringSeries)
	if err != nil {
		log.Println("Ошибка запуска cron-задачи ExtendRecurringSeries:", err)
	}

	c.Start()
	log.Println("Cron-планировщик запущен.")
	return c
}
