package test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"testing"
	"time"

	"room_booking/internal/booking"
	"room_booking/internal/models"
	"room_booking/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Одновременные запросы на свободный слот: бронь достаётся ровно одному,
// остальные встают в очередь или получают предложение повторить. Строчная
// блокировка тут не спасает (на свободном слоте блокировать нечего), слот
// защищает уровень изоляции транзакции.
func TestConcurrentBookingSingleWinner(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.Close()

	room := createTestClassroom(t, "410")
	users := make([]models.User, 4)
	for i := range users {
		users[i] = createTestUser(t, fmt.Sprintf("racer%d", i+1), models.RoleStudent)
	}

	tomorrow := time.Now().AddDate(0, 0, 1).Format("2006-01-02")
	slot := bookingRequest(room.ID, tomorrow, "10:00", "12:00")

	payload, err := json.Marshal(slot)
	require.NoError(t, err)

	codes := make(chan int, len(users))
	var wg sync.WaitGroup
	for _, u := range users {
		wg.Add(1)
		go func(u models.User) {
			defer wg.Done()
			req, err := http.NewRequest("POST", ts.URL+"/api/bookings", bytes.NewReader(payload))
			if err != nil {
				codes <- 0
				return
			}
			req.Header.Set("Content-Type", "application/json")
			req.Header.Set("X-Test-UserID", fmt.Sprintf("%d", u.ID))
			req.Header.Set("X-Test-Role", u.Role)
			res, err := http.DefaultClient.Do(req)
			if err != nil {
				codes <- 0
				return
			}
			res.Body.Close()
			codes <- res.StatusCode
		}(u)
	}
	wg.Wait()
	close(codes)

	created, queued, retry := 0, 0, 0
	for code := range codes {
		switch code {
		case http.StatusCreated:
			created++
		case http.StatusAccepted:
			queued++
		case http.StatusConflict:
			retry++
		default:
			t.Fatalf("неожиданный статус ответа: %d", code)
		}
	}
	assert.Equal(t, 1, created, "слот должен достаться ровно одному")
	assert.Equal(t, len(users)-1, queued+retry)

	// В базе одна активная бронь, двойной вставки нет.
	var active int64
	require.NoError(t, storage.DB.Model(&models.Booking{}).
		Where("classroom_id = ? AND status IN ?", room.ID, booking.ActiveStatuses()).
		Count(&active).Error)
	assert.Equal(t, int64(1), active)
}
