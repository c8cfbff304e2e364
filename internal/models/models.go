package models

import (
	"time"

	"gorm.io/gorm"
)

// Роли пользователей. Преподаватель и администратор считаются привилегированными:
// их бронирования подтверждаются автоматически, лимиты на день не действуют.
const (
	RoleStudent = "student"
	RoleTeacher = "teacher"
	RoleAdmin   = "admin"
)

// IsPrivileged сообщает, освобождена ли роль от лимитов и ручного подтверждения.
func IsPrivileged(role string) bool {
	return role == RoleTeacher || role == RoleAdmin
}

// Статусы бронирования.
const (
	BookingStatusPending   = "pending"
	BookingStatusApproved  = "approved"
	BookingStatusRejected  = "rejected"
	BookingStatusCompleted = "completed"
)

// Статусы записи в очереди ожидания.
const (
	QueueStatusWaiting  = "waiting"
	QueueStatusNotified = "notified"
	QueueStatusExpired  = "expired"
)

// Статусы регулярного бронирования.
const (
	RecurringStatusActive    = "active"
	RecurringStatusCancelled = "cancelled"
)

// Типы повторения регулярного бронирования.
const (
	RecurrenceWeekly   = "weekly"
	RecurrenceBiweekly = "biweekly"
)

type User struct {
	gorm.Model
	Username     string `gorm:"uniqueIndex;not null"`
	Email        string `gorm:"uniqueIndex;not null"`
	PasswordHash string `gorm:"not null"`
	Role         string `gorm:"not null;default:student"`
}

type Classroom struct {
	gorm.Model
	RoomNumber   string `gorm:"uniqueIndex;not null"` // Номер аудитории, например "401"
	Capacity     int    `gorm:"not null"`
	Floor        int    `gorm:"not null"`
	HasProjector bool   `gorm:"default:false"`
	HasComputers bool   `gorm:"default:false"`
	IsActive     bool   `gorm:"default:true"` // Мягкое удаление: неактивные аудитории не бронируются
}

// Booking — бронирование аудитории на дату и полуоткрытый интервал [StartMin, EndMin).
// Время хранится в минутах от полуночи, чтобы проверка пересечения сводилась
// к сравнению целых чисел.
type Booking struct {
	gorm.Model
	UserID      uint      `gorm:"index;not null"`
	User        User      `gorm:"foreignKey:UserID"`
	ClassroomID uint      `gorm:"index;not null"`
	Classroom   Classroom `gorm:"foreignKey:ClassroomID"`
	BookingDate time.Time `gorm:"index;not null;type:date"`
	StartMin    int       `gorm:"not null"` // Минуты от полуночи, начало (включительно)
	EndMin      int       `gorm:"not null"` // Минуты от полуночи, конец (исключительно)
	Purpose     string    `gorm:"not null"`
	Status      string    `gorm:"index;not null;default:pending"`
	RecurringID *uint     `gorm:"index"` // Серия, породившая бронирование (nil для разовых)
}

// RecurringBooking — правило регулярного бронирования, порождающее серию Booking.
type RecurringBooking struct {
	gorm.Model
	UserID         uint      `gorm:"index;not null"`
	User           User      `gorm:"foreignKey:UserID"`
	ClassroomID    uint      `gorm:"index;not null"`
	Classroom      Classroom `gorm:"foreignKey:ClassroomID"`
	StartDate      time.Time `gorm:"not null;type:date"`
	EndDate        time.Time `gorm:"not null;type:date"`
	DayOfWeek      int       `gorm:"not null"` // 0 = воскресенье ... 6 = суббота
	StartMin       int       `gorm:"not null"`
	EndMin         int       `gorm:"not null"`
	RecurrenceType string    `gorm:"not null;default:weekly"`
	Purpose        string    `gorm:"not null"`
	Status         string    `gorm:"index;not null;default:active"`
}

// BookingQueue — запись в очереди ожидания на конкретный слот
// (аудитория, дата, интервал). Position — плотный ранг 1..N среди
// записей со статусом waiting этого слота.
type BookingQueue struct {
	gorm.Model
	UserID      uint       `gorm:"index;not null"`
	User        User       `gorm:"foreignKey:UserID"`
	ClassroomID uint       `gorm:"index;not null"`
	BookingDate time.Time  `gorm:"index;not null;type:date"`
	StartMin    int        `gorm:"not null"`
	EndMin      int        `gorm:"not null"`
	Position    int        `gorm:"not null"`
	Status      string     `gorm:"index;not null;default:waiting"`
	Notified    bool       `gorm:"default:false"`
	NotifiedAt  *time.Time // Когда отправлено уведомление о свободном слоте
}
