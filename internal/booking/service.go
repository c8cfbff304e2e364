package booking

import (
	"time"

	"room_booking/internal/clockwork"
	"room_booking/internal/models"
	"room_booking/internal/notify"
	"room_booking/internal/storage"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Лимиты бронирования.
const (
	MaxDurationMin    = 4 * 60 // Не дольше 4 часов
	BookingWindowDays = 30     // Не дальше 30 дней вперёд
	StudentDailyQuota = 2      // Студент держит не более 2 активных броней на дату
)

// Waitlist — очередь ожидания слота. Реализуется пакетом queue; методы
// выполняются внутри транзакции вызывающего.
type Waitlist interface {
	EnqueueTx(tx *gorm.DB, userID, classroomID uint, date time.Time, startMin, endMin int) (*models.BookingQueue, error)
	PromoteNextTx(tx *gorm.DB, classroomID uint, date time.Time, startMin, endMin int) (*models.BookingQueue, error)
	ConfirmTx(tx *gorm.DB, userID, classroomID uint, date time.Time, startMin, endMin int) error
}

// Service управляет жизненным циклом бронирования: проверка условий,
// конфликтов, создание, отмена, подтверждение и автозавершение.
type Service struct {
	db       *gorm.DB
	clock    clockwork.Clock
	mail     *notify.Dispatcher
	waitlist Waitlist
}

func NewService(db *gorm.DB, clock clockwork.Clock, mail *notify.Dispatcher, waitlist Waitlist) *Service {
	return &Service{db: db, clock: clock, mail: mail, waitlist: waitlist}
}

// Result — исход запроса бронирования: либо создана бронь, либо запрос
// поставлен в очередь (слот занят).
type Result struct {
	Booking *models.Booking
	Queued  *models.BookingQueue
}

// RequestBooking обрабатывает запрос на бронирование аудитории.
// Проверка конфликта и вставка выполняются в одной транзакции с блокировкой
// строк-кандидатов, чтобы два одновременных запроса на один слот не прошли оба.
func (s *Service) RequestBooking(userID uint, role string, classroomID uint, date time.Time, startMin, endMin int, purpose string) (*Result, error) {
	if startMin >= endMin {
		return nil, ErrInvalidInterval
	}
	if endMin-startMin > MaxDurationMin {
		return nil, ErrDurationTooLong
	}

	now := s.clock.Now()
	today := DateOnly(now)
	day := DateOnly(date)

	if day.Before(today) {
		return nil, ErrPastDate
	}
	if day.After(today.AddDate(0, 0, BookingWindowDays)) {
		return nil, ErrOutOfBookingWindow
	}
	if day.Equal(today) && startMin < now.Hour()*60+now.Minute() {
		return nil, ErrPastTime
	}

	var classroom models.Classroom
	if err := s.db.Where("id = ? AND is_active = ?", classroomID, true).First(&classroom).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrNotFound
		}
		return nil, err
	}

	var result Result
	err := storage.RunWithRetry(s.db, func(tx *gorm.DB) error {
		result = Result{}

		// Блокируем пересекающиеся брони аудитории, чтобы конкурирующий
		// запрос на тот же слот дождался исхода этой транзакции.
		locked := tx.Clauses(clause.Locking{Strength: "UPDATE"})
		conflict, err := FindConflict(locked, classroomID, day, startMin, endMin, ActiveStatuses())
		if err != nil {
			return err
		}
		if conflict != nil {
			// Слот занят: вместо отказа ставим пользователя в очередь.
			entry, err := s.waitlist.EnqueueTx(tx, userID, classroomID, day, startMin, endMin)
			if err != nil {
				return err
			}
			result.Queued = entry
			return nil
		}

		userConflict, err := FindUserConflict(tx, userID, day, startMin, endMin)
		if err != nil {
			return err
		}
		if userConflict != nil {
			return ErrUserConflict
		}

		if !models.IsPrivileged(role) {
			var count int64
			err := tx.Model(&models.Booking{}).
				Where("user_id = ? AND booking_date = ? AND status IN ?", userID, day, ActiveStatuses()).
				Count(&count).Error
			if err != nil {
				return err
			}
			if count >= StudentDailyQuota {
				return ErrQuotaExceeded
			}
		}

		status := models.BookingStatusPending
		if models.IsPrivileged(role) {
			status = models.BookingStatusApproved
		}

		b := models.Booking{
			UserID:      userID,
			ClassroomID: classroomID,
			BookingDate: day,
			StartMin:    startMin,
			EndMin:      endMin,
			Purpose:     purpose,
			Status:      status,
		}
		if err := tx.Create(&b).Error; err != nil {
			return err
		}
		// Если пользователь стоял в очереди этого слота (например, пришёл по
		// уведомлению после отмены), его запись выполнила свою задачу.
		if err := s.waitlist.ConfirmTx(tx, userID, classroomID, day, startMin, endMin); err != nil {
			return err
		}
		result.Booking = &b
		return nil
	})
	if err != nil {
		if storage.IsSerializationFailure(err) {
			return nil, ErrTryAgain
		}
		return nil, err
	}

	if result.Queued != nil {
		// Письмо о позиции в очереди уходит после коммита.
		var user models.User
		if err := s.db.First(&user, userID).Error; err == nil {
			s.mail.Submit(notify.Notification{
				To:         user.Email,
				Username:   user.Username,
				Kind:       notify.KindQueuePosition,
				RoomNumber: classroom.RoomNumber,
				Date:       day.Format("02.01.2006"),
				StartTime:  FormatClock(startMin),
				EndTime:    FormatClock(endMin),
				Position:   result.Queued.Position,
			})
		}
	} else {
		storage.InvalidateScheduleCache(classroomID, day.Format("2006-01-02"))
	}

	return &result, nil
}

// CancelBooking удаляет бронирование и продвигает очередь освободившегося
// слота. Разрешено владельцу и привилегированным ролям; уже начавшиеся
// бронирования не отменяются. Возвращает отменённую бронь и продвинутую
// запись очереди (nil, если очередь пуста).
func (s *Service) CancelBooking(bookingID, actorID uint, actorRole string) (*models.Booking, *models.BookingQueue, error) {
	var cancelled models.Booking
	var promoted *models.BookingQueue

	err := storage.RunWithRetry(s.db, func(tx *gorm.DB) error {
		promoted = nil
		if err := tx.First(&cancelled, bookingID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return ErrNotFound
			}
			return err
		}
		if cancelled.UserID != actorID && !models.IsPrivileged(actorRole) {
			return ErrForbidden
		}

		now := s.clock.Now()
		start := CombineDateTime(cancelled.BookingDate, cancelled.StartMin)
		if start.Before(CombineDateTime(now, now.Hour()*60+now.Minute())) {
			return ErrAlreadyStarted
		}

		if err := tx.Delete(&cancelled).Error; err != nil {
			return err
		}

		// Слот освободился — сразу уведомляем первого в очереди, чтобы не было
		// окна, когда аудитория свободна, а очередь молчит.
		next, err := s.waitlist.PromoteNextTx(tx, cancelled.ClassroomID, cancelled.BookingDate, cancelled.StartMin, cancelled.EndMin)
		if err != nil {
			return err
		}
		promoted = next
		return nil
	})
	if err != nil {
		if storage.IsSerializationFailure(err) {
			return nil, nil, ErrTryAgain
		}
		return nil, nil, err
	}

	var room models.Classroom
	roomNumber := ""
	if err := s.db.First(&room, cancelled.ClassroomID).Error; err == nil {
		roomNumber = room.RoomNumber
	}

	// Владельцу сообщаем об отмене, только если отменил не он сам.
	if cancelled.UserID != actorID {
		var owner models.User
		if err := s.db.First(&owner, cancelled.UserID).Error; err == nil {
			s.mail.Submit(notify.Notification{
				To:         owner.Email,
				Username:   owner.Username,
				Kind:       notify.KindBookingCancelled,
				RoomNumber: roomNumber,
				Date:       cancelled.BookingDate.Format("02.01.2006"),
				StartTime:  FormatClock(cancelled.StartMin),
				EndTime:    FormatClock(cancelled.EndMin),
			})
		}
	}

	if promoted != nil {
		s.mail.Submit(notify.Notification{
			To:         promoted.User.Email,
			Username:   promoted.User.Username,
			Kind:       notify.KindSlotAvailable,
			RoomNumber: roomNumber,
			Date:       promoted.BookingDate.Format("02.01.2006"),
			StartTime:  FormatClock(promoted.StartMin),
			EndTime:    FormatClock(promoted.EndMin),
		})
	}

	storage.InvalidateScheduleCache(cancelled.ClassroomID, cancelled.BookingDate.Format("2006-01-02"))
	return &cancelled, promoted, nil
}

// ApproveBooking подтверждает ожидающее бронирование. Только для
// привилегированных ролей; очередь не трогается — слот и так был занят.
func (s *Service) ApproveBooking(bookingID uint, actorRole string) (*models.Booking, error) {
	return s.setStatus(bookingID, actorRole, models.BookingStatusApproved)
}

// RejectBooking отклоняет ожидающее бронирование.
func (s *Service) RejectBooking(bookingID uint, actorRole string) (*models.Booking, error) {
	return s.setStatus(bookingID, actorRole, models.BookingStatusRejected)
}

func (s *Service) setStatus(bookingID uint, actorRole, status string) (*models.Booking, error) {
	if !models.IsPrivileged(actorRole) {
		return nil, ErrForbidden
	}
	var b models.Booking
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&b, bookingID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return ErrNotFound
			}
			return err
		}
		// Из completed, rejected и отменённого состояния переходов нет.
		if b.Status != models.BookingStatusPending {
			return ErrNotPending
		}
		b.Status = status
		return tx.Save(&b).Error
	})
	if err != nil {
		return nil, err
	}
	storage.InvalidateScheduleCache(b.ClassroomID, b.BookingDate.Format("2006-01-02"))
	return &b, nil
}

// AutoCompleteExpired помечает завершёнными активные бронирования, чьё время
// уже прошло. Идемпотентна: повторный вызов ничего не меняет. Вызывается
// cron-задачей и перед чтениями, которым нужна актуальная картина.
func (s *Service) AutoCompleteExpired() (int64, error) {
	now := s.clock.Now()
	today := DateOnly(now)
	nowMin := now.Hour()*60 + now.Minute()

	res := s.db.Model(&models.Booking{}).
		Where("status IN ?", ActiveStatuses()).
		Where("booking_date < ? OR (booking_date = ? AND end_min < ?)", today, today, nowMin).
		Update("status", models.BookingStatusCompleted)
	return res.RowsAffected, res.Error
}

// ListForUser возвращает бронирования пользователя, свежие первыми.
func (s *Service) ListForUser(userID uint) ([]models.Booking, error) {
	if _, err := s.AutoCompleteExpired(); err != nil {
		return nil, err
	}
	var bookings []models.Booking
	err := s.db.
		Preload("Classroom").
		Where("user_id = ?", userID).
		Order("booking_date DESC, start_min DESC").
		Find(&bookings).Error
	return bookings, err
}

// RoomScheduleForDate возвращает активные бронирования аудитории на дату,
// упорядоченные по началу.
func (s *Service) RoomScheduleForDate(classroomID uint, date time.Time) ([]models.Booking, error) {
	if _, err := s.AutoCompleteExpired(); err != nil {
		return nil, err
	}
	var bookings []models.Booking
	err := s.db.
		Preload("User").
		Where("classroom_id = ? AND booking_date = ? AND status IN ?", classroomID, DateOnly(date), ActiveStatuses()).
		Order("start_min ASC").
		Find(&bookings).Error
	return bookings, err
}

// CheckAvailability сообщает, свободен ли слот, и чем он занят, если занят.
func (s *Service) CheckAvailability(classroomID uint, date time.Time, startMin, endMin int) (bool, *models.Booking, error) {
	if startMin >= endMin {
		return false, nil, ErrInvalidInterval
	}
	if _, err := s.AutoCompleteExpired(); err != nil {
		return false, nil, err
	}
	conflict, err := FindConflict(s.db, classroomID, date, startMin, endMin, ActiveStatuses())
	if err != nil {
		return false, nil, err
	}
	if conflict != nil {
		if err := s.db.First(&conflict.User, conflict.UserID).Error; err != nil {
			return false, conflict, nil
		}
	}
	return conflict == nil, conflict, nil
}
