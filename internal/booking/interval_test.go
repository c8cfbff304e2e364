package booking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestOverlaps(t *testing.T) {
	cases := []struct {
		name         string
		aStart, aEnd int
		bStart, bEnd int
		want         bool
	}{
		{"одинаковые интервалы", 600, 660, 600, 660, true},
		{"частичное пересечение", 600, 660, 630, 690, true},
		{"вложенный интервал", 600, 720, 630, 660, true},
		{"касание границей: конец равен началу", 600, 660, 660, 720, false},
		{"касание границей: начало равно концу", 660, 720, 600, 660, false},
		{"непересекающиеся", 600, 660, 720, 780, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Overlaps(tc.aStart, tc.aEnd, tc.bStart, tc.bEnd))
			// Пересечение симметрично относительно порядка аргументов.
			assert.Equal(t, tc.want, Overlaps(tc.bStart, tc.bEnd, tc.aStart, tc.aEnd))
		})
	}
}

func TestParseClock(t *testing.T) {
	min, err := ParseClock("09:30")
	assert.NoError(t, err)
	assert.Equal(t, 9*60+30, min)

	min, err = ParseClock("00:00")
	assert.NoError(t, err)
	assert.Equal(t, 0, min)

	min, err = ParseClock("23:59")
	assert.NoError(t, err)
	assert.Equal(t, 23*60+59, min)

	_, err = ParseClock("25:00")
	assert.Error(t, err)

	_, err = ParseClock("9.30")
	assert.Error(t, err)
}

func TestFormatClock(t *testing.T) {
	assert.Equal(t, "09:30", FormatClock(9*60+30))
	assert.Equal(t, "00:00", FormatClock(0))
	assert.Equal(t, "23:59", FormatClock(23*60+59))
}

func TestDateOnly(t *testing.T) {
	moscow := time.FixedZone("MSK", 3*60*60)
	in := time.Date(2026, 9, 15, 18, 45, 12, 0, moscow)
	got := DateOnly(in)
	assert.Equal(t, time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC), got)
}

func TestCombineDateTime(t *testing.T) {
	date := time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)
	got := CombineDateTime(date, 9*60+30)
	assert.Equal(t, time.Date(2026, 9, 15, 9, 30, 0, 0, time.UTC), got)
}
