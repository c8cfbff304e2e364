package booking

import "errors"

// Ошибки сервисного уровня. Обработчики переводят их в коды API.
var (
	ErrInvalidInterval    = errors.New("время окончания должно быть позже времени начала")
	ErrDurationTooLong    = errors.New("максимальное время бронирования - 4 часа")
	ErrOutOfBookingWindow = errors.New("можно бронировать аудиторию не более чем на 30 дней вперед")
	ErrPastDate           = errors.New("нельзя бронировать аудиторию на прошедшую дату")
	ErrPastTime           = errors.New("нельзя бронировать аудиторию на прошедшее время")
	ErrUserConflict       = errors.New("у вас уже есть бронирование на это время в другой аудитории")
	ErrQuotaExceeded      = errors.New("вы не можете забронировать более 2 аудиторий в день")
	ErrForbidden          = errors.New("недостаточно прав для этого действия")
	ErrAlreadyStarted     = errors.New("нельзя отменить прошедшее бронирование")
	ErrNotFound           = errors.New("бронирование не найдено")
	ErrNotPending         = errors.New("бронирование уже обработано")
	ErrTryAgain           = errors.New("не удалось выполнить операцию, попробуйте ещё раз")
)
