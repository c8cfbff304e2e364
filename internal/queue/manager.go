package queue

import (
	"time"

	"room_booking/internal/booking"
	"room_booking/internal/clockwork"
	"room_booking/internal/models"
	"room_booking/internal/storage"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Manager обслуживает очереди ожидания. Ключ очереди — слот
// (аудитория, дата, начало, конец); внутри ключа записи упорядочены
// по времени создания, Position — плотный ранг 1..N среди waiting.
type Manager struct {
	db    *gorm.DB
	clock clockwork.Clock
}

func NewManager(db *gorm.DB, clock clockwork.Clock) *Manager {
	return &Manager{db: db, clock: clock}
}

// NotifyWindow — сколько времени у уведомлённого пользователя есть на
// повторную подачу запроса, прежде чем слот уйдёт следующему в очереди.
const NotifyWindow = time.Hour

func keyScope(tx *gorm.DB, classroomID uint, date time.Time, startMin, endMin int) *gorm.DB {
	return tx.Model(&models.BookingQueue{}).
		Where("classroom_id = ? AND booking_date = ? AND start_min = ? AND end_min = ?",
			classroomID, booking.DateOnly(date), startMin, endMin)
}

// EnqueueTx добавляет пользователя в хвост очереди слота. Выполняется внутри
// транзакции вызывающего: подсчёт позиции и вставка должны быть атомарны
// относительно других операций над этим ключом, поэтому существующие записи
// ключа блокируются.
func (m *Manager) EnqueueTx(tx *gorm.DB, userID, classroomID uint, date time.Time, startMin, endMin int) (*models.BookingQueue, error) {
	var waiting int64
	err := keyScope(tx, classroomID, date, startMin, endMin).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("status = ?", models.QueueStatusWaiting).
		Count(&waiting).Error
	if err != nil {
		return nil, err
	}

	entry := models.BookingQueue{
		UserID:      userID,
		ClassroomID: classroomID,
		BookingDate: booking.DateOnly(date),
		StartMin:    startMin,
		EndMin:      endMin,
		Position:    int(waiting) + 1,
		Status:      models.QueueStatusWaiting,
	}
	if err := tx.Create(&entry).Error; err != nil {
		return nil, err
	}
	return &entry, nil
}

// ConfirmTx убирает записи пользователя из очереди слота после успешного
// бронирования. Иначе уведомлённая запись осталась бы висеть, через
// NotifyWindow протухла и продвинула следующего на уже занятый слот.
func (m *Manager) ConfirmTx(tx *gorm.DB, userID, classroomID uint, date time.Time, startMin, endMin int) error {
	err := keyScope(tx, classroomID, date, startMin, endMin).
		Where("user_id = ? AND status IN ?", userID,
			[]string{models.QueueStatusWaiting, models.QueueStatusNotified}).
		Delete(&models.BookingQueue{}).Error
	if err != nil {
		return err
	}
	return m.reindexTx(tx, classroomID, date, startMin, endMin)
}

// PromoteNextTx помечает первую waiting-запись слота как notified и возвращает
// её (с загруженным пользователем — для письма). Возвращает nil, если очередь
// пуста. Бронирование при этом не создаётся: уведомлённый пользователь должен
// сам подать новый запрос в течение NotifyWindow.
func (m *Manager) PromoteNextTx(tx *gorm.DB, classroomID uint, date time.Time, startMin, endMin int) (*models.BookingQueue, error) {
	var entry models.BookingQueue
	err := keyScope(tx, classroomID, date, startMin, endMin).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("status = ?", models.QueueStatusWaiting).
		Order("position ASC").
		First(&entry).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}

	now := m.clock.Now()
	entry.Status = models.QueueStatusNotified
	entry.Notified = true
	entry.NotifiedAt = &now
	if err := tx.Save(&entry).Error; err != nil {
		return nil, err
	}

	// Уведомлённый покидает множество waiting — оставшиеся сдвигаются к началу.
	if err := m.reindexTx(tx, classroomID, date, startMin, endMin); err != nil {
		return nil, err
	}

	if err := tx.First(&entry.User, entry.UserID).Error; err != nil {
		return nil, err
	}
	return &entry, nil
}

// Remove удаляет запись из очереди. Разрешено владельцу записи и
// привилегированным ролям. Оставшиеся waiting-записи ключа переиндексируются
// позициями 1..N в порядке создания.
func (m *Manager) Remove(entryID, actorID uint, actorRole string) (*models.BookingQueue, error) {
	var removed models.BookingQueue
	err := storage.RunWithRetry(m.db, func(tx *gorm.DB) error {
		if err := tx.First(&removed, entryID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return booking.ErrNotFound
			}
			return err
		}
		if removed.UserID != actorID && !models.IsPrivileged(actorRole) {
			return booking.ErrForbidden
		}
		if err := tx.Delete(&removed).Error; err != nil {
			return err
		}
		return m.reindexTx(tx, removed.ClassroomID, removed.BookingDate, removed.StartMin, removed.EndMin)
	})
	if err != nil {
		if storage.IsSerializationFailure(err) {
			return nil, booking.ErrTryAgain
		}
		return nil, err
	}
	return &removed, nil
}

// reindexTx пересчитывает позиции waiting-записей ключа: 1..N в порядке
// создания, без пропусков.
func (m *Manager) reindexTx(tx *gorm.DB, classroomID uint, date time.Time, startMin, endMin int) error {
	var remaining []models.BookingQueue
	err := keyScope(tx, classroomID, date, startMin, endMin).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("status = ?", models.QueueStatusWaiting).
		Order("created_at ASC, id ASC").
		Find(&remaining).Error
	if err != nil {
		return err
	}
	for i := range remaining {
		if remaining[i].Position == i+1 {
			continue
		}
		remaining[i].Position = i + 1
		if err := tx.Save(&remaining[i]).Error; err != nil {
			return err
		}
	}
	return nil
}

// ListForUser возвращает записи пользователя в очередях, свежие первыми.
func (m *Manager) ListForUser(userID uint) ([]models.BookingQueue, error) {
	var entries []models.BookingQueue
	err := m.db.
		Where("user_id = ?", userID).
		Order("booking_date DESC, start_min DESC").
		Find(&entries).Error
	return entries, err
}

// ExpireNotified переводит в expired записи, уведомлённые дольше NotifyWindow
// назад и не подтверждённые, и продвигает следующего в каждой затронутой
// очереди. Возвращает продвинутые записи — вызывающий рассылает уведомления
// после коммита.
func (m *Manager) ExpireNotified() ([]models.BookingQueue, error) {
	deadline := m.clock.Now().Add(-NotifyWindow)

	var promoted []models.BookingQueue
	err := storage.RunWithRetry(m.db, func(tx *gorm.DB) error {
		promoted = promoted[:0]

		var stale []models.BookingQueue
		err := tx.Model(&models.BookingQueue{}).
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("status = ? AND notified_at < ?", models.QueueStatusNotified, deadline).
			Find(&stale).Error
		if err != nil {
			return err
		}

		for i := range stale {
			stale[i].Status = models.QueueStatusExpired
			if err := tx.Save(&stale[i]).Error; err != nil {
				return err
			}
			next, err := m.PromoteNextTx(tx, stale[i].ClassroomID, stale[i].BookingDate, stale[i].StartMin, stale[i].EndMin)
			if err != nil {
				return err
			}
			if next != nil {
				promoted = append(promoted, *next)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return promoted, nil
}
