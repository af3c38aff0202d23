package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

func newTestCatalog(t *testing.T) *Catalog {
	t.Helper()
	catalog, err := NewCatalog(domain.DefaultScheduleConfig())
	require.NoError(t, err)
	return catalog
}

func TestNewCatalog_InvalidTimezone(t *testing.T) {
	cfg := domain.DefaultScheduleConfig()
	cfg.Timezone = "Mars/Olympus_Mons"

	_, err := NewCatalog(cfg)
	assert.ErrorIs(t, err, ErrInvalidTimezone)
}

func TestNewCatalog_InvalidLabel(t *testing.T) {
	cfg := domain.DefaultScheduleConfig()
	cfg.DailyLabels = []types.TimeLabel{"13:00"}

	_, err := NewCatalog(cfg)
	assert.ErrorIs(t, err, types.ErrInvalidTimeLabel)
}

func TestCatalog_ToUTC(t *testing.T) {
	catalog := newTestCatalog(t)

	tests := []struct {
		name  string
		date  string
		label types.TimeLabel
		want  time.Time
	}{
		{
			// Asia/Dubai это UTC+4 круглый год
			name:  "morning slot",
			date:  "2025-06-02",
			label: "09:00 AM",
			want:  time.Date(2025, 6, 2, 5, 0, 0, 0, time.UTC),
		},
		{
			name:  "afternoon slot",
			date:  "2025-06-02",
			label: "05:00 PM",
			want:  time.Date(2025, 6, 2, 13, 0, 0, 0, time.UTC),
		},
		{
			name:  "noon",
			date:  "2025-06-02",
			label: "12:00 PM",
			want:  time.Date(2025, 6, 2, 8, 0, 0, 0, time.UTC),
		},
		{
			name:  "midnight crosses date boundary",
			date:  "2025-06-02",
			label: "12:00 AM",
			want:  time.Date(2025, 6, 1, 20, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := catalog.ToUTC(tt.date, tt.label)
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got), "want %v, got %v", tt.want, got)
		})
	}
}

func TestCatalog_ToUTC_InvalidInput(t *testing.T) {
	catalog := newTestCatalog(t)

	_, err := catalog.ToUTC("02-06-2025", "09:00 AM")
	assert.ErrorIs(t, err, ErrInvalidDate)

	_, err = catalog.ToUTC("2025-02-30", "09:00 AM")
	assert.ErrorIs(t, err, ErrInvalidDate)

	_, err = catalog.ToUTC("2025-06-02", "9am")
	assert.ErrorIs(t, err, types.ErrInvalidTimeLabel)
}

func TestCatalog_Slots(t *testing.T) {
	catalog := newTestCatalog(t)

	// Понедельник 2025-06-02 09:00 по Дубаю
	now := time.Date(2025, 6, 2, 5, 0, 0, 0, time.UTC)

	var dates []string
	slotsPerDate := make(map[string]int)
	for slot := range catalog.Slots(now) {
		if slotsPerDate[slot.Date] == 0 {
			dates = append(dates, slot.Date)
		}
		slotsPerDate[slot.Date]++
	}

	// 30 календарных дней с понедельника: 4 полных недели (20 рабочих дней)
	// плюс Пн-Вт хвостовой недели
	assert.Len(t, dates, 22)
	assert.Equal(t, "2025-06-02", dates[0])
	assert.Equal(t, "2025-06-03", dates[1])
	// Суббота и воскресенье пропущены
	assert.NotContains(t, dates, "2025-06-07")
	assert.NotContains(t, dates, "2025-06-08")
	assert.Contains(t, dates, "2025-06-09")

	for date, count := range slotsPerDate {
		assert.Equal(t, 5, count, "date %s must have all daily labels", date)
	}
}

func TestCatalog_Slots_Restartable(t *testing.T) {
	catalog := newTestCatalog(t)
	now := time.Date(2025, 6, 2, 5, 0, 0, 0, time.UTC)

	seq := catalog.Slots(now)

	var first, second []Slot
	for slot := range seq {
		first = append(first, slot)
	}
	for slot := range seq {
		second = append(second, slot)
	}

	assert.Equal(t, first, second)
}

func TestCatalog_Slots_EarlyBreak(t *testing.T) {
	catalog := newTestCatalog(t)
	now := time.Date(2025, 6, 2, 5, 0, 0, 0, time.UTC)

	count := 0
	for range catalog.Slots(now) {
		count++
		if count == 3 {
			break
		}
	}
	assert.Equal(t, 3, count)
}

func TestCatalog_Slots_LabelOrder(t *testing.T) {
	catalog := newTestCatalog(t)
	now := time.Date(2025, 6, 2, 5, 0, 0, 0, time.UTC)

	var firstDay []string
	for slot := range catalog.Slots(now) {
		if slot.Date != "2025-06-02" {
			break
		}
		firstDay = append(firstDay, slot.Label.String())
	}

	assert.Equal(t, []string{"09:00 AM", "11:00 AM", "01:00 PM", "03:00 PM", "05:00 PM"}, firstDay)
}

func TestCatalog_Contains(t *testing.T) {
	catalog := newTestCatalog(t)

	// Понедельник 2025-06-02
	now := time.Date(2025, 6, 2, 5, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		date  string
		label types.TimeLabel
		want  bool
	}{
		{name: "today is in window", date: "2025-06-02", label: "09:00 AM", want: true},
		{name: "last day of window", date: "2025-07-01", label: "05:00 PM", want: true},
		{name: "day after window", date: "2025-07-02", label: "09:00 AM", want: false},
		{name: "yesterday", date: "2025-06-01", label: "09:00 AM", want: false},
		{name: "saturday", date: "2025-06-07", label: "09:00 AM", want: false},
		{name: "sunday", date: "2025-06-08", label: "09:00 AM", want: false},
		{name: "unknown label", date: "2025-06-02", label: "10:00 AM", want: false},
		{name: "malformed date", date: "not-a-date", label: "09:00 AM", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, catalog.Contains(now, tt.date, tt.label))
		})
	}
}
