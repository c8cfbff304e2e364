package booking

import (
	"testing"
	"time"

	"room_booking/internal/clockwork"

	"github.com/stretchr/testify/assert"
)

// Проверки условий выполняются до обращения к базе, поэтому сервису
// достаточно подменённых часов.
func TestRequestBookingValidation(t *testing.T) {
	clock := &clockwork.FakeClock{
		Current: time.Date(2026, 9, 10, 12, 0, 0, 0, time.UTC),
	}
	svc := NewService(nil, clock, nil, nil)

	today := time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC)
	tomorrow := today.AddDate(0, 0, 1)

	cases := []struct {
		name             string
		date             time.Time
		startMin, endMin int
		wantErr          error
	}{
		{"конец раньше начала", tomorrow, 11 * 60, 10 * 60, ErrInvalidInterval},
		{"нулевая длительность", tomorrow, 10 * 60, 10 * 60, ErrInvalidInterval},
		{"дольше четырёх часов", tomorrow, 10 * 60, 14*60 + 1, ErrDurationTooLong},
		{"прошедшая дата", today.AddDate(0, 0, -1), 10 * 60, 11 * 60, ErrPastDate},
		{"прошедшее время сегодня", today, 11 * 60, 11*60 + 30, ErrPastTime},
		{"дальше окна бронирования", today.AddDate(0, 0, 31), 10 * 60, 11 * 60, ErrOutOfBookingWindow},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.RequestBooking(1, "student", 1, tc.date, tc.startMin, tc.endMin, "Консультация")
			assert.ErrorIs(t, err, tc.wantErr)
		})
	}
}
