package clockwork

import "time"

// Clock абстрагирует текущее время: все проверки «сегодня/сейчас» в сервисах
// ходят через него, что позволяет подменять время в тестах.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// System возвращает часы, основанные на time.Now.
func System() Clock { return systemClock{} }

// FakeClock — управляемые часы для тестов.
type FakeClock struct {
	Current time.Time
}

func (f *FakeClock) Now() time.Time { return f.Current }

// Advance сдвигает тестовое время вперёд.
func (f *FakeClock) Advance(d time.Duration) { f.Current = f.Current.Add(d) }
