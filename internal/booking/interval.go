package booking

import (
	"fmt"
	"time"

	"room_booking/internal/models"

	"gorm.io/gorm"
)

// Overlaps проверяет пересечение двух полуоткрытых интервалов [aStart, aEnd)
// и [bStart, bEnd) в минутах от полуночи. Интервалы, соприкасающиеся границей
// (конец одного равен началу другого), не пересекаются.
func Overlaps(aStart, aEnd, bStart, bEnd int) bool {
	return aStart < bEnd && bStart < aEnd
}

// ParseClock разбирает время вида "09:30" в минуты от полуночи.
func ParseClock(s string) (int, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, err
	}
	return t.Hour()*60 + t.Minute(), nil
}

// FormatClock форматирует минуты от полуночи обратно в "ЧЧ:ММ".
func FormatClock(min int) string {
	return fmt.Sprintf("%02d:%02d", min/60, min%60)
}

// DateOnly отбрасывает время, оставляя дату в UTC. Все даты бронирований
// хранятся и сравниваются в этом виде.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// CombineDateTime собирает дату и минуты от полуночи в одну точку времени.
func CombineDateTime(date time.Time, min int) time.Time {
	return DateOnly(date).Add(time.Duration(min) * time.Minute)
}

// ActiveStatuses — статусы, при которых бронирование занимает слот.
func ActiveStatuses() []string {
	return []string{models.BookingStatusPending, models.BookingStatusApproved}
}

// FindConflict возвращает первое бронирование аудитории на дату с указанными
// статусами, пересекающееся с интервалом [startMin, endMin), либо nil.
func FindConflict(tx *gorm.DB, classroomID uint, date time.Time, startMin, endMin int, statuses []string) (*models.Booking, error) {
	var conflict models.Booking
	err := tx.
		Where("classroom_id = ? AND booking_date = ? AND status IN ?", classroomID, DateOnly(date), statuses).
		Where("start_min < ? AND end_min > ?", endMin, startMin).
		First(&conflict).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &conflict, nil
}

// FindUserConflict ищет бронирование того же пользователя на дату в любом
// интервале, пересекающемся с [startMin, endMin), независимо от аудитории.
// Блокирует двойное бронирование одним человеком.
func FindUserConflict(tx *gorm.DB, userID uint, date time.Time, startMin, endMin int) (*models.Booking, error) {
	var conflict models.Booking
	err := tx.
		Where("user_id = ? AND booking_date = ? AND status IN ?", userID, DateOnly(date), ActiveStatuses()).
		Where("start_min < ? AND end_min > ?", endMin, startMin).
		First(&conflict).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &conflict, nil
}
