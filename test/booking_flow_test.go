package test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"strconv"
	"sync"
	"testing"
	"time"

	"room_booking/internal/auth"
	"room_booking/internal/booking"
	"room_booking/internal/clockwork"
	"room_booking/internal/handlers"
	"room_booking/internal/models"
	"room_booking/internal/notify"
	"room_booking/internal/queue"
	"room_booking/internal/recurring"
	"room_booking/internal/storage"
	"room_booking/internal/ws"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// AuthMiddlewareTest подставляет пользователя из заголовков вместо проверки JWT.
func AuthMiddlewareTest() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := uint(1)
		if v := c.Request.Header.Get("X-Test-UserID"); v != "" {
			if id, err := strconv.Atoi(v); err == nil {
				userID = uint(id)
			}
		}
		role := c.Request.Header.Get("X-Test-Role")
		if role == "" {
			role = models.RoleStudent
		}
		c.Set("userID", userID)
		c.Set("userRole", role)
		c.Next()
	}
}

var hubOnce sync.Once

// setupTestDB подключается к тестовой базе и очищает её. Тесты пропускаются,
// если TEST_DB_HOST не задан.
func setupTestDB(t *testing.T) {
	t.Helper()

	godotenv.Load("../.env")
	if os.Getenv("TEST_DB_HOST") == "" {
		t.Skip("TEST_DB_HOST не задан, пропускаем интеграционные тесты")
	}

	gin.SetMode(gin.TestMode)
	storage.ConnectTestingDatabase()

	err := storage.DB.AutoMigrate(
		&models.User{},
		&models.Classroom{},
		&models.Booking{},
		&models.RecurringBooking{},
		&models.BookingQueue{},
	)
	require.NoError(t, err, "Ошибка при миграции")
	storage.DB.Exec("TRUNCATE TABLE users, classrooms, bookings, recurring_bookings, booking_queues RESTART IDENTITY CASCADE;")

	hubOnce.Do(func() { go ws.HubInstance.Run() })
}

func setupTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	setupTestDB(t)

	clock := clockwork.System()
	mail := notify.NewDispatcher(notify.ConsoleNotifier{})
	queues := queue.NewManager(storage.DB, clock)
	bookings := booking.NewService(storage.DB, clock, mail, queues)
	recurr := recurring.NewService(storage.DB, clock)
	handlers.Init(bookings, queues, recurr, clock)

	r := gin.Default()

	api := r.Group("/api", AuthMiddlewareTest())
	{
		api.POST("/bookings", handlers.CreateBookingHandler)
		api.DELETE("/bookings/:id", handlers.CancelBookingHandler)
		api.POST("/recurring", handlers.CreateRecurringHandler)
		api.DELETE("/recurring/:id", handlers.CancelRecurringHandler)
		api.DELETE("/queue/:id", handlers.RemoveFromQueueHandler)
		api.GET("/profile/bookings", handlers.GetUserBookingsHandler)
		api.GET("/profile/queue", handlers.GetUserQueueHandler)
		api.GET("/classrooms/:id/availability", handlers.CheckAvailabilityHandler)
	}

	admin := r.Group("/api/admin", AuthMiddlewareTest(), auth.RequirePrivileged())
	{
		admin.POST("/bookings/:id/approve", handlers.ApproveBookingHandler)
		admin.POST("/bookings/:id/reject", handlers.RejectBookingHandler)
	}

	return httptest.NewServer(r)
}

func createTestUser(t *testing.T, username, role string) models.User {
	t.Helper()
	u := models.User{
		Username:     username,
		Email:        fmt.Sprintf("%s_%d@example.com", username, time.Now().UnixNano()),
		PasswordHash: "hashed123",
		Role:         role,
	}
	require.NoError(t, storage.DB.Create(&u).Error, "Ошибка создания пользователя")
	return u
}

func createTestClassroom(t *testing.T, roomNumber string) models.Classroom {
	t.Helper()
	room := models.Classroom{RoomNumber: roomNumber, Capacity: 30, Floor: 4, IsActive: true}
	require.NoError(t, storage.DB.Create(&room).Error, "Ошибка создания аудитории")
	return room
}

func doJSON(t *testing.T, method, url string, user models.User, body interface{}) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, url, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Test-UserID", fmt.Sprintf("%d", user.ID))
	req.Header.Set("X-Test-Role", user.Role)
	res, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return res
}

func decodeBody(t *testing.T, res *http.Response) map[string]interface{} {
	t.Helper()
	defer res.Body.Close()
	var out map[string]interface{}
	require.NoError(t, json.NewDecoder(res.Body).Decode(&out))
	return out
}

func bookingRequest(classroomID uint, date, start, end string) map[string]interface{} {
	return map[string]interface{}{
		"classroom_id": classroomID,
		"date":         date,
		"start_time":   start,
		"end_time":     end,
		"purpose":      "Групповая консультация",
	}
}

// Занятый слот ставит последующие запросы в очередь в порядке прихода;
// отмена брони уведомляет первого и сдвигает остальных к началу очереди.
func TestBookingQueueFlow(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.Close()

	room := createTestClassroom(t, "401")
	user1 := createTestUser(t, "ivan", models.RoleStudent)
	user2 := createTestUser(t, "petr", models.RoleStudent)
	user3 := createTestUser(t, "maria", models.RoleStudent)

	tomorrow := time.Now().AddDate(0, 0, 1).Format("2006-01-02")
	slot := bookingRequest(room.ID, tomorrow, "10:00", "12:00")

	// Первый запрос занимает слот.
	res := doJSON(t, "POST", ts.URL+"/api/bookings", user1, slot)
	created := decodeBody(t, res)
	assert.Equal(t, http.StatusCreated, res.StatusCode)
	assert.Equal(t, models.BookingStatusPending, created["status"])
	bookingID := uint(created["id"].(float64))

	// Второй и третий встают в очередь с позициями 1 и 2.
	res = doJSON(t, "POST", ts.URL+"/api/bookings", user2, slot)
	queued2 := decodeBody(t, res)
	assert.Equal(t, http.StatusAccepted, res.StatusCode)
	assert.Equal(t, float64(1), queued2["position"])

	res = doJSON(t, "POST", ts.URL+"/api/bookings", user3, slot)
	queued3 := decodeBody(t, res)
	assert.Equal(t, http.StatusAccepted, res.StatusCode)
	assert.Equal(t, float64(2), queued3["position"])

	// Владелец отменяет бронь: первый в очереди уведомляется, второй
	// сдвигается на позицию 1.
	res = doJSON(t, "DELETE", ts.URL+"/api/bookings/"+strconv.Itoa(int(bookingID)), user1, nil)
	res.Body.Close()
	assert.Equal(t, http.StatusOK, res.StatusCode)

	var entry2 models.BookingQueue
	require.NoError(t, storage.DB.Where("user_id = ?", user2.ID).First(&entry2).Error)
	assert.Equal(t, models.QueueStatusNotified, entry2.Status)
	assert.True(t, entry2.Notified)
	require.NotNil(t, entry2.NotifiedAt)

	var entry3 models.BookingQueue
	require.NoError(t, storage.DB.Where("user_id = ?", user3.ID).First(&entry3).Error)
	assert.Equal(t, models.QueueStatusWaiting, entry3.Status)
	assert.Equal(t, 1, entry3.Position)

	// Слот свободен: уведомлённый подаёт новый запрос и получает бронь.
	res = doJSON(t, "POST", ts.URL+"/api/bookings", user2, slot)
	confirmed := decodeBody(t, res)
	assert.Equal(t, http.StatusCreated, res.StatusCode)
	assert.Equal(t, models.BookingStatusPending, confirmed["status"])

	// Его запись очереди при этом исчезает: иначе через час она протухла бы
	// и следующий получил бы письмо о занятом слоте.
	var leftovers int64
	require.NoError(t, storage.DB.Model(&models.BookingQueue{}).
		Where("user_id = ?", user2.ID).
		Count(&leftovers).Error)
	assert.Equal(t, int64(0), leftovers)
}

// Выход из середины очереди переиндексирует оставшихся без пропусков.
func TestQueueRemoveReindexes(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.Close()

	room := createTestClassroom(t, "402")
	owner := createTestUser(t, "owner", models.RoleStudent)
	waiters := []models.User{
		createTestUser(t, "w1", models.RoleStudent),
		createTestUser(t, "w2", models.RoleStudent),
		createTestUser(t, "w3", models.RoleStudent),
	}

	tomorrow := time.Now().AddDate(0, 0, 1).Format("2006-01-02")
	slot := bookingRequest(room.ID, tomorrow, "14:00", "16:00")

	res := doJSON(t, "POST", ts.URL+"/api/bookings", owner, slot)
	res.Body.Close()
	require.Equal(t, http.StatusCreated, res.StatusCode)

	for i, w := range waiters {
		res := doJSON(t, "POST", ts.URL+"/api/bookings", w, slot)
		queued := decodeBody(t, res)
		require.Equal(t, http.StatusAccepted, res.StatusCode)
		require.Equal(t, float64(i+1), queued["position"])
	}

	// Второй (из середины) уходит сам: первый остаётся на месте, третий
	// сдвигается с позиции 3 на 2.
	var middle models.BookingQueue
	require.NoError(t, storage.DB.Where("user_id = ?", waiters[1].ID).First(&middle).Error)
	require.Equal(t, 2, middle.Position)
	res = doJSON(t, "DELETE", ts.URL+"/api/queue/"+strconv.Itoa(int(middle.ID)), waiters[1], nil)
	res.Body.Close()
	assert.Equal(t, http.StatusOK, res.StatusCode)

	var remaining []models.BookingQueue
	require.NoError(t, storage.DB.
		Where("status = ?", models.QueueStatusWaiting).
		Order("position ASC").
		Find(&remaining).Error)
	require.Len(t, remaining, 2)
	assert.Equal(t, waiters[0].ID, remaining[0].UserID)
	assert.Equal(t, 1, remaining[0].Position)
	assert.Equal(t, waiters[2].ID, remaining[1].UserID)
	assert.Equal(t, 2, remaining[1].Position)

	// Чужую запись студент удалить не может.
	res = doJSON(t, "DELETE", ts.URL+"/api/queue/"+strconv.Itoa(int(remaining[0].ID)), waiters[2], nil)
	body := decodeBody(t, res)
	assert.Equal(t, http.StatusForbidden, res.StatusCode)
	assert.Equal(t, "FORBIDDEN", body["code"])
}

// Лимиты студента: не более двух активных броней на дату и запрет
// параллельной брони в другой аудитории.
func TestStudentLimits(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.Close()

	roomA := createTestClassroom(t, "403")
	roomB := createTestClassroom(t, "404")
	roomC := createTestClassroom(t, "405")
	student := createTestUser(t, "student", models.RoleStudent)

	tomorrow := time.Now().AddDate(0, 0, 1).Format("2006-01-02")

	res := doJSON(t, "POST", ts.URL+"/api/bookings", student, bookingRequest(roomA.ID, tomorrow, "09:00", "10:00"))
	res.Body.Close()
	require.Equal(t, http.StatusCreated, res.StatusCode)

	// Пересечение с собственной бронью в другой аудитории.
	res = doJSON(t, "POST", ts.URL+"/api/bookings", student, bookingRequest(roomB.ID, tomorrow, "09:30", "10:30"))
	body := decodeBody(t, res)
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	assert.Equal(t, "USER_DOUBLE_BOOKED", body["code"])

	res = doJSON(t, "POST", ts.URL+"/api/bookings", student, bookingRequest(roomB.ID, tomorrow, "11:00", "12:00"))
	res.Body.Close()
	require.Equal(t, http.StatusCreated, res.StatusCode)

	// Третья бронь на ту же дату превышает лимит.
	res = doJSON(t, "POST", ts.URL+"/api/bookings", student, bookingRequest(roomC.ID, tomorrow, "13:00", "14:00"))
	body = decodeBody(t, res)
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	assert.Equal(t, "QUOTA_EXCEEDED", body["code"])

	// Прошедшая дата отклоняется до всяких проверок конфликтов.
	yesterday := time.Now().AddDate(0, 0, -1).Format("2006-01-02")
	res = doJSON(t, "POST", ts.URL+"/api/bookings", student, bookingRequest(roomC.ID, yesterday, "13:00", "14:00"))
	body = decodeBody(t, res)
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	assert.Equal(t, "PAST_DATE", body["code"])
}

// Брони преподавателей подтверждаются сразу; заявки студентов проходят
// через подтверждение, и лимит на преподавателей не действует.
func TestPrivilegedApprovalFlow(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.Close()

	room := createTestClassroom(t, "406")
	teacher := createTestUser(t, "teacher", models.RoleTeacher)
	admin := createTestUser(t, "admin", models.RoleAdmin)
	student := createTestUser(t, "stud", models.RoleStudent)

	tomorrow := time.Now().AddDate(0, 0, 1).Format("2006-01-02")

	res := doJSON(t, "POST", ts.URL+"/api/bookings", teacher, bookingRequest(room.ID, tomorrow, "08:00", "09:00"))
	created := decodeBody(t, res)
	require.Equal(t, http.StatusCreated, res.StatusCode)
	assert.Equal(t, models.BookingStatusApproved, created["status"])

	res = doJSON(t, "POST", ts.URL+"/api/bookings", student, bookingRequest(room.ID, tomorrow, "10:00", "11:00"))
	pending := decodeBody(t, res)
	require.Equal(t, http.StatusCreated, res.StatusCode)
	assert.Equal(t, models.BookingStatusPending, pending["status"])
	pendingID := strconv.Itoa(int(pending["id"].(float64)))

	// Студенту админский маршрут недоступен.
	res = doJSON(t, "POST", ts.URL+"/api/admin/bookings/"+pendingID+"/approve", student, nil)
	res.Body.Close()
	assert.Equal(t, http.StatusForbidden, res.StatusCode)

	res = doJSON(t, "POST", ts.URL+"/api/admin/bookings/"+pendingID+"/approve", admin, nil)
	res.Body.Close()
	assert.Equal(t, http.StatusOK, res.StatusCode)

	var b models.Booking
	require.NoError(t, storage.DB.First(&b, pending["id"]).Error)
	assert.Equal(t, models.BookingStatusApproved, b.Status)

	// Повторная обработка уже подтверждённой заявки отклоняется.
	res = doJSON(t, "POST", ts.URL+"/api/admin/bookings/"+pendingID+"/reject", admin, nil)
	body := decodeBody(t, res)
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	assert.Equal(t, "BOOKING_ALREADY_PROCESSED", body["code"])
}

// Конфликт любой даты серии отменяет создание целиком: ни правило,
// ни частичные брони не сохраняются.
func TestRecurringConflictAbortsAll(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.Close()

	room := createTestClassroom(t, "407")
	teacher := createTestUser(t, "lecturer", models.RoleTeacher)
	student := createTestUser(t, "blocker", models.RoleStudent)

	start := time.Now().AddDate(0, 0, 1)
	startStr := start.Format("2006-01-02")
	endStr := start.AddDate(0, 0, 15).Format("2006-01-02")
	dayOfWeek := int(start.Weekday())

	// Студент занимает слот на первой же дате серии.
	res := doJSON(t, "POST", ts.URL+"/api/bookings", student, bookingRequest(room.ID, startStr, "10:00", "12:00"))
	res.Body.Close()
	require.Equal(t, http.StatusCreated, res.StatusCode)

	seriesReq := map[string]interface{}{
		"classroom_id":    room.ID,
		"start_date":      startStr,
		"end_date":        endStr,
		"day_of_week":     dayOfWeek,
		"start_time":      "10:00",
		"end_time":        "12:00",
		"recurrence_type": "weekly",
		"purpose":         "Лекция по базам данных",
	}
	res = doJSON(t, "POST", ts.URL+"/api/recurring", teacher, seriesReq)
	body := decodeBody(t, res)
	assert.Equal(t, http.StatusConflict, res.StatusCode)
	assert.Equal(t, "SERIES_DATE_CONFLICT", body["code"])
	assert.Equal(t, startStr, body["details"])

	var seriesCount int64
	storage.DB.Model(&models.RecurringBooking{}).Count(&seriesCount)
	assert.Equal(t, int64(0), seriesCount)

	var generated int64
	storage.DB.Model(&models.Booking{}).Where("recurring_id IS NOT NULL").Count(&generated)
	assert.Equal(t, int64(0), generated)

	// Серия в свободное время создаётся, все брони подтверждены сразу.
	seriesReq["start_time"] = "14:00"
	seriesReq["end_time"] = "16:00"
	res = doJSON(t, "POST", ts.URL+"/api/recurring", teacher, seriesReq)
	createdSeries := decodeBody(t, res)
	require.Equal(t, http.StatusCreated, res.StatusCode)

	bookings := createdSeries["bookings"].([]interface{})
	assert.Equal(t, 3, len(bookings))
	for _, raw := range bookings {
		b := raw.(map[string]interface{})
		assert.Equal(t, models.BookingStatusApproved, b["status"])
	}
}

// Закончившиеся брони автоматически помечаются завершёнными; повторный
// проход ничего не меняет.
func TestAutoCompleteExpired(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.Close()

	room := createTestClassroom(t, "408")
	user := createTestUser(t, "past", models.RoleStudent)

	// Вчерашняя бронь вставляется напрямую: через API её создать нельзя.
	old := models.Booking{
		UserID:      user.ID,
		ClassroomID: room.ID,
		BookingDate: time.Now().UTC().AddDate(0, 0, -1).Truncate(24 * time.Hour),
		StartMin:    10 * 60,
		EndMin:      12 * 60,
		Purpose:     "Прошедшая консультация",
		Status:      models.BookingStatusApproved,
	}
	require.NoError(t, storage.DB.Create(&old).Error)

	n, err := handlers.Bookings.AutoCompleteExpired()
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	var b models.Booking
	require.NoError(t, storage.DB.First(&b, old.ID).Error)
	assert.Equal(t, models.BookingStatusCompleted, b.Status)

	n, err = handlers.Bookings.AutoCompleteExpired()
	require.NoError(t, err)
	assert.Equal(t, int64(0), n)
}
