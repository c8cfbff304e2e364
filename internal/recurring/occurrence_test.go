package recurring

import (
	"testing"
	"time"

	"room_booking/internal/models"

	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestOccurrenceDatesWeekly(t *testing.T) {
	// 1 сентября 2026 — вторник; первый понедельник на/после — 7 сентября.
	// Окно 28 дней от начала ограничивает серию 29 сентября.
	got := OccurrenceDates(date(2026, 9, 1), date(2026, 12, 20), 1, models.RecurrenceWeekly, 28)

	want := []time.Time{
		date(2026, 9, 7),
		date(2026, 9, 14),
		date(2026, 9, 21),
		date(2026, 9, 28),
	}
	assert.Equal(t, want, got)
}

func TestOccurrenceDatesBiweekly(t *testing.T) {
	got := OccurrenceDates(date(2026, 9, 1), date(2026, 12, 20), 1, models.RecurrenceBiweekly, 28)

	want := []time.Time{
		date(2026, 9, 7),
		date(2026, 9, 21),
	}
	assert.Equal(t, want, got)
}

func TestOccurrenceDatesEndBeforeWindow(t *testing.T) {
	// Конец серии раньше горизонта — ограничивает именно он.
	got := OccurrenceDates(date(2026, 9, 1), date(2026, 9, 16), 1, models.RecurrenceWeekly, 28)

	want := []time.Time{
		date(2026, 9, 7),
		date(2026, 9, 14),
	}
	assert.Equal(t, want, got)
}

func TestOccurrenceDatesStartOnTargetDay(t *testing.T) {
	// Начало серии уже попадает на нужный день недели.
	got := OccurrenceDates(date(2026, 9, 7), date(2026, 9, 21), 1, models.RecurrenceWeekly, 28)

	want := []time.Time{
		date(2026, 9, 7),
		date(2026, 9, 14),
		date(2026, 9, 21),
	}
	assert.Equal(t, want, got)
}

func TestOccurrenceDatesNoWindow(t *testing.T) {
	// windowDays <= 0 отключает горизонт: серия разворачивается до конца.
	got := OccurrenceDates(date(2026, 9, 1), date(2026, 10, 31), 1, models.RecurrenceWeekly, 0)

	assert.Len(t, got, 8)
	assert.Equal(t, date(2026, 9, 7), got[0])
	assert.Equal(t, date(2026, 10, 26), got[len(got)-1])
}

func TestOccurrenceDatesEmptyRange(t *testing.T) {
	// Нужный день недели не встречается до конца серии.
	got := OccurrenceDates(date(2026, 9, 1), date(2026, 9, 3), 6, models.RecurrenceWeekly, 28)
	assert.Empty(t, got)
}
