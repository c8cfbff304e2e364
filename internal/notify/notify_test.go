package notify

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderQueuePosition(t *testing.T) {
	subject, body := renderMessage(Notification{
		Username:   "Иван",
		Kind:       KindQueuePosition,
		RoomNumber: "101",
		Date:       "15.09.2026",
		StartTime:  "10:00",
		EndTime:    "12:00",
		Position:   2,
	})

	assert.Equal(t, "Вы в очереди бронирования - Позиция #2", subject)
	assert.Contains(t, body, "Иван")
	assert.Contains(t, body, "Аудитория 101")
	assert.Contains(t, body, "позиция в очереди: #2")
}

func TestRenderSlotAvailable(t *testing.T) {
	subject, body := renderMessage(Notification{
		Username:   "Пётр",
		Kind:       KindSlotAvailable,
		RoomNumber: "205",
		Date:       "15.09.2026",
		StartTime:  "10:00",
		EndTime:    "12:00",
	})

	assert.Equal(t, "Аудитория 205 освободилась!", subject)
	assert.Contains(t, body, "в течение 1 часа")
}

func TestRenderBookingCancelled(t *testing.T) {
	subject, body := renderMessage(Notification{
		Username:   "Мария",
		Kind:       KindBookingCancelled,
		RoomNumber: "310",
		Date:       "15.09.2026",
		StartTime:  "14:00",
		EndTime:    "15:00",
	})

	assert.Equal(t, "Ваше бронирование отменено", subject)
	assert.Contains(t, body, "аудитории 310")
}

// Dispatcher не должен блокировать отправителя и должен доставлять
// уведомления в порядке подачи.
func TestDispatcherDelivers(t *testing.T) {
	got := make(chan Notification, 3)
	d := NewDispatcher(notifierFunc(func(n Notification) error {
		got <- n
		return nil
	}))

	d.Submit(Notification{To: "a@example.com", Kind: KindQueuePosition, Position: 1})
	d.Submit(Notification{To: "b@example.com", Kind: KindSlotAvailable})
	d.Close()

	assert.Equal(t, "a@example.com", (<-got).To)
	assert.Equal(t, "b@example.com", (<-got).To)
}

type notifierFunc func(n Notification) error

func (f notifierFunc) Send(n Notification) error { return f(n) }
