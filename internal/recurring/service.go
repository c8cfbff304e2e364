package recurring

import (
	"errors"
	"fmt"
	"time"

	"room_booking/internal/booking"
	"room_booking/internal/clockwork"
	"room_booking/internal/models"
	"room_booking/internal/storage"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// LookaheadDays — горизонт, на который серия разворачивается в конкретные
// бронирования. Даты дальше горизонта добираются фоновой задачей ExtendAll.
const LookaheadDays = 28

var (
	ErrInvalidDateRange = errors.New("дата окончания должна быть позже даты начала")
	ErrInvalidDayOfWeek = errors.New("неверный день недели")
	ErrInvalidCadence   = errors.New("неверный тип повторения")
)

// ConflictError сообщает, какая именно дата серии оказалась занята.
type ConflictError struct {
	Date time.Time
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("аудитория занята %s в это время", e.Date.Format("02.01.2006"))
}

// Service разворачивает правила регулярного бронирования в серии броней.
type Service struct {
	db    *gorm.DB
	clock clockwork.Clock
}

func NewService(db *gorm.DB, clock clockwork.Clock) *Service {
	return &Service{db: db, clock: clock}
}

// OccurrenceDates перечисляет даты повторений: первое вхождение dayOfWeek
// на/после startDate, далее с шагом 7 (weekly) или 14 (biweekly) дней, не
// позже min(endDate, startDate+windowDays). Граница включительна;
// windowDays <= 0 отключает окно.
func OccurrenceDates(startDate, endDate time.Time, dayOfWeek int, recurrenceType string, windowDays int) []time.Time {
	step := 7
	if recurrenceType == models.RecurrenceBiweekly {
		step = 14
	}

	first := booking.DateOnly(startDate)
	for int(first.Weekday()) != dayOfWeek {
		first = first.AddDate(0, 0, 1)
	}

	limit := booking.DateOnly(endDate)
	if windowDays > 0 {
		if window := booking.DateOnly(startDate).AddDate(0, 0, windowDays); window.Before(limit) {
			limit = window
		}
	}

	var dates []time.Time
	for d := first; !d.After(limit); d = d.AddDate(0, 0, step) {
		dates = append(dates, d)
	}
	return dates
}

// CreateSeries проверяет все даты первого окна и, только если все свободны,
// сохраняет правило и порождает по брони на дату. Частично созданных серий
// не бывает: первый же конфликт откатывает всю транзакцию.
func (s *Service) CreateSeries(userID uint, role string, classroomID uint, startDate, endDate time.Time, dayOfWeek, startMin, endMin int, recurrenceType, purpose string) (*models.RecurringBooking, []models.Booking, error) {
	if startMin >= endMin {
		return nil, nil, booking.ErrInvalidInterval
	}
	if dayOfWeek < 0 || dayOfWeek > 6 {
		return nil, nil, ErrInvalidDayOfWeek
	}
	if recurrenceType != models.RecurrenceWeekly && recurrenceType != models.RecurrenceBiweekly {
		return nil, nil, ErrInvalidCadence
	}

	start := booking.DateOnly(startDate)
	end := booking.DateOnly(endDate)
	today := booking.DateOnly(s.clock.Now())

	if !end.After(start) {
		return nil, nil, ErrInvalidDateRange
	}
	if start.Before(today) {
		return nil, nil, booking.ErrPastDate
	}

	var classroom models.Classroom
	if err := s.db.Where("id = ? AND is_active = ?", classroomID, true).First(&classroom).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil, booking.ErrNotFound
		}
		return nil, nil, err
	}

	dates := OccurrenceDates(start, end, dayOfWeek, recurrenceType, LookaheadDays)

	status := models.BookingStatusPending
	if models.IsPrivileged(role) {
		status = models.BookingStatusApproved
	}

	var series models.RecurringBooking
	var generated []models.Booking

	err := storage.RunWithRetry(s.db, func(tx *gorm.DB) error {
		generated = nil

		locked := tx.Clauses(clause.Locking{Strength: "UPDATE"})
		for _, d := range dates {
			conflict, err := booking.FindConflict(locked, classroomID, d, startMin, endMin, booking.ActiveStatuses())
			if err != nil {
				return err
			}
			if conflict != nil {
				return &ConflictError{Date: d}
			}
		}

		series = models.RecurringBooking{
			UserID:         userID,
			ClassroomID:    classroomID,
			StartDate:      start,
			EndDate:        end,
			DayOfWeek:      dayOfWeek,
			StartMin:       startMin,
			EndMin:         endMin,
			RecurrenceType: recurrenceType,
			Purpose:        purpose,
			Status:         models.RecurringStatusActive,
		}
		if err := tx.Create(&series).Error; err != nil {
			return err
		}

		for _, d := range dates {
			b := models.Booking{
				UserID:      userID,
				ClassroomID: classroomID,
				BookingDate: d,
				StartMin:    startMin,
				EndMin:      endMin,
				Purpose:     purpose,
				Status:      status,
				RecurringID: &series.ID,
			}
			if err := tx.Create(&b).Error; err != nil {
				return err
			}
			generated = append(generated, b)
		}
		return nil
	})
	if err != nil {
		if storage.IsSerializationFailure(err) {
			return nil, nil, booking.ErrTryAgain
		}
		return nil, nil, err
	}

	for _, d := range dates {
		storage.InvalidateScheduleCache(classroomID, d.Format("2006-01-02"))
	}
	return &series, generated, nil
}

// CancelSeries отменяет правило и удаляет все будущие активные брони серии.
// Прошедшие брони остаются в истории. Возвращает число удалённых.
func (s *Service) CancelSeries(seriesID, actorID uint, actorRole string) (int64, error) {
	today := booking.DateOnly(s.clock.Now())

	var deleted int64
	var affected []models.Booking
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var series models.RecurringBooking
		if err := tx.First(&series, seriesID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return booking.ErrNotFound
			}
			return err
		}
		if series.UserID != actorID && !models.IsPrivileged(actorRole) {
			return booking.ErrForbidden
		}

		// Даты запоминаем до удаления — после коммита по ним сбрасывается кэш.
		err := tx.
			Where("recurring_id = ? AND booking_date >= ? AND status IN ?", seriesID, today, booking.ActiveStatuses()).
			Find(&affected).Error
		if err != nil {
			return err
		}

		res := tx.
			Where("recurring_id = ? AND booking_date >= ? AND status IN ?", seriesID, today, booking.ActiveStatuses()).
			Delete(&models.Booking{})
		if res.Error != nil {
			return res.Error
		}
		deleted = res.RowsAffected

		series.Status = models.RecurringStatusCancelled
		return tx.Save(&series).Error
	})
	if err != nil {
		return 0, err
	}

	for _, b := range affected {
		storage.InvalidateScheduleCache(b.ClassroomID, b.BookingDate.Format("2006-01-02"))
	}
	return deleted, nil
}

// ListForUser возвращает правила пользователя, свежие первыми.
func (s *Service) ListForUser(userID uint) ([]models.RecurringBooking, error) {
	var series []models.RecurringBooking
	err := s.db.
		Preload("Classroom").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&series).Error
	return series, err
}

// ExtendAll добирает брони активных серий до горизонта LookaheadDays от
// сегодняшнего дня. Занятые даты пропускаются (в отличие от создания серии —
// там конфликт отменяет всё), уже порождённые не дублируются.
// Запускается cron-задачей раз в сутки.
func (s *Service) ExtendAll() (int, error) {
	today := booking.DateOnly(s.clock.Now())
	horizon := today.AddDate(0, 0, LookaheadDays)

	var active []models.RecurringBooking
	if err := s.db.Where("status = ?", models.RecurringStatusActive).Find(&active).Error; err != nil {
		return 0, err
	}

	created := 0
	for _, series := range active {
		status := models.BookingStatusPending
		var owner models.User
		if err := s.db.First(&owner, series.UserID).Error; err == nil && models.IsPrivileged(owner.Role) {
			status = models.BookingStatusApproved
		}

		// Все даты серии от её начала до конца, затем фильтр по окну.
		all := OccurrenceDates(series.StartDate, series.EndDate, series.DayOfWeek, series.RecurrenceType, 0)
		for _, d := range all {
			if d.Before(today) || d.After(horizon) || d.After(booking.DateOnly(series.EndDate)) {
				continue
			}

			madeNew := false
			err := storage.RunWithRetry(s.db, func(tx *gorm.DB) error {
				madeNew = false

				var existing int64
				err := tx.Model(&models.Booking{}).
					Where("recurring_id = ? AND booking_date = ?", series.ID, d).
					Count(&existing).Error
				if err != nil {
					return err
				}
				if existing > 0 {
					return nil
				}

				locked := tx.Clauses(clause.Locking{Strength: "UPDATE"})
				conflict, err := booking.FindConflict(locked, series.ClassroomID, d, series.StartMin, series.EndMin, booking.ActiveStatuses())
				if err != nil {
					return err
				}
				if conflict != nil {
					return nil
				}

				b := models.Booking{
					UserID:      series.UserID,
					ClassroomID: series.ClassroomID,
					BookingDate: d,
					StartMin:    series.StartMin,
					EndMin:      series.EndMin,
					Purpose:     series.Purpose,
					Status:      status,
					RecurringID: &series.ID,
				}
				if err := tx.Create(&b).Error; err != nil {
					return err
				}
				madeNew = true
				return nil
			})
			if err != nil {
				return created, err
			}
			if madeNew {
				created++
				storage.InvalidateScheduleCache(series.ClassroomID, d.Format("2006-01-02"))
			}
		}
	}
	return created, nil
}
