package test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"room_booking/internal/booking"
	"room_booking/internal/clockwork"
	"room_booking/internal/handlers"
	"room_booking/internal/models"
	"room_booking/internal/notify"
	"room_booking/internal/queue"
	"room_booking/internal/recurring"
	"room_booking/internal/storage"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Занятость «прямо сейчас» в списке аудиторий считается по внедрённым часам:
// сдвиг часов за конец брони освобождает аудиторию без изменений в базе.
func TestClassroomsOccupiedNow(t *testing.T) {
	setupTestDB(t)

	fake := &clockwork.FakeClock{Current: time.Date(2026, 9, 10, 10, 30, 0, 0, time.UTC)}
	mail := notify.NewDispatcher(notify.ConsoleNotifier{})
	defer mail.Close()
	queues := queue.NewManager(storage.DB, fake)
	bookings := booking.NewService(storage.DB, fake, mail, queues)
	recurr := recurring.NewService(storage.DB, fake)
	handlers.Init(bookings, queues, recurr, fake)

	r := gin.Default()
	r.GET("/api/classrooms", handlers.GetClassroomsHandler)
	ts := httptest.NewServer(r)
	defer ts.Close()

	room := createTestClassroom(t, "412")
	user := createTestUser(t, "lecturing", models.RoleTeacher)

	b := models.Booking{
		UserID:      user.ID,
		ClassroomID: room.ID,
		BookingDate: time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC),
		StartMin:    10 * 60,
		EndMin:      11 * 60,
		Purpose:     "Лекция",
		Status:      models.BookingStatusApproved,
	}
	require.NoError(t, storage.DB.Create(&b).Error)

	fetch := func() []handlers.ClassroomItem {
		res, err := http.Get(ts.URL + "/api/classrooms")
		require.NoError(t, err)
		defer res.Body.Close()
		require.Equal(t, http.StatusOK, res.StatusCode)
		var items []handlers.ClassroomItem
		require.NoError(t, json.NewDecoder(res.Body).Decode(&items))
		return items
	}

	// 10:30 — лекция идёт.
	items := fetch()
	require.Len(t, items, 1)
	assert.True(t, items[0].IsOccupied)
	assert.Equal(t, user.Username, items[0].OccupiedBy)
	assert.Equal(t, "11:00", items[0].Until)

	// 11:10 — уже закончилась.
	fake.Advance(40 * time.Minute)
	items = fetch()
	require.Len(t, items, 1)
	assert.False(t, items[0].IsOccupied)
}
