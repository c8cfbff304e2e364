package storage

import (
	"database/sql"
	"strings"

	"gorm.io/gorm"
)

// IsSerializationFailure распознаёт конфликт сериализации или взаимную
// блокировку postgres, после которых транзакцию имеет смысл повторить.
func IsSerializationFailure(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "could not serialize access") ||
		strings.Contains(msg, "deadlock detected")
}

// RunWithRetry выполняет транзакцию на уровне SERIALIZABLE и один раз
// повторяет её при конфликте сериализации. Блокировка строк FOR UPDATE
// не защищает от фантомов (на свободном слоте блокировать нечего), поэтому
// две конкурирующие проверки «слот свободен» разводит именно изоляция:
// проигравшая транзакция получает ошибку сериализации и повторяется, уже
// видя результат победившей. Вторая неудача возвращается вызвавшему как есть.
func RunWithRetry(db *gorm.DB, fn func(tx *gorm.DB) error) error {
	opts := &sql.TxOptions{Isolation: sql.LevelSerializable}
	err := db.Transaction(fn, opts)
	if IsSerializationFailure(err) {
		err = db.Transaction(fn, opts)
	}
	return err
}
