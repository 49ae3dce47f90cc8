package availability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"bookable/config"
	"bookable/models"
)

// Week of 16 February 2026: Monday the 16th through Sunday the 22nd.
var (
	monday  = time.Date(2026, 2, 16, 0, 0, 0, 0, time.UTC)
	tuesday = time.Date(2026, 2, 17, 0, 0, 0, 0, time.UTC)
	wednesd = time.Date(2026, 2, 18, 0, 0, 0, 0, time.UTC)
	saturd  = time.Date(2026, 2, 21, 0, 0, 0, 0, time.UTC)
)

func testConfig(t *testing.T, mutate func(*config.Config)) *config.Config {
	t.Helper()
	base := config.Config{
		Timezone:            "UTC",
		SlotDurationMinutes: 30,
		WorkingHoursStart:   10,
		WorkingHoursEnd:     19,
		WorkingDaysRaw:      "1,2,3,4,5",
		BufferBeforeMinutes: 0,
		BufferAfterMinutes:  15,
		MinNoticeHours:      2,
		MaxDaysAhead:        14,
	}
	if mutate != nil {
		mutate(&base)
	}
	cfg, err := config.New(base)
	require.NoError(t, err)
	return cfg
}

func starts(slots []models.AvailableSlot) []time.Time {
	out := make([]time.Time, len(slots))
	for i, s := range slots {
		out[i] = s.Start
	}
	return out
}

func TestComputeSlots_BusyIntervalWithAfterBuffer(t *testing.T) {
	cfg := testConfig(t, nil)
	busy := []models.Interval{
		{Start: tuesday.Add(14 * time.Hour), End: tuesday.Add(15 * time.Hour)},
	}
	// Far-enough "now" so the notice filter plays no part.
	now := monday.Add(8 * time.Hour)

	slots := ComputeSlots(cfg, busy, tuesday, wednesd, now)

	// 18 candidates on a 10:00-19:00 day with 30 min slots; the exclusion
	// interval [14:00, 15:15) removes the 14:00, 14:30 and 15:00 starts.
	require.Len(t, slots, 15)
	got := starts(slots)
	require.Contains(t, got, tuesday.Add(13*time.Hour+30*time.Minute))
	require.NotContains(t, got, tuesday.Add(14*time.Hour))
	require.NotContains(t, got, tuesday.Add(14*time.Hour+30*time.Minute))
	require.NotContains(t, got, tuesday.Add(15*time.Hour))
	require.Contains(t, got, tuesday.Add(15*time.Hour+30*time.Minute))
}

func TestComputeSlots_HalfOpenBoundaries(t *testing.T) {
	// Without buffers, a busy interval ending exactly at a candidate start
	// does not exclude it.
	cfg := testConfig(t, func(c *config.Config) { c.BufferAfterMinutes = 0 })
	busy := []models.Interval{
		{Start: tuesday.Add(14 * time.Hour), End: tuesday.Add(15 * time.Hour)},
	}
	now := monday.Add(8 * time.Hour)

	got := starts(ComputeSlots(cfg, busy, tuesday, wednesd, now))
	require.NotContains(t, got, tuesday.Add(14*time.Hour+30*time.Minute))
	require.Contains(t, got, tuesday.Add(15*time.Hour))

	// With a buffer, the same equality holds against the buffered end.
	cfg = testConfig(t, func(c *config.Config) { c.BufferAfterMinutes = 30 })
	got = starts(ComputeSlots(cfg, busy, tuesday, wednesd, now))
	require.NotContains(t, got, tuesday.Add(15*time.Hour))
	require.Contains(t, got, tuesday.Add(15*time.Hour+30*time.Minute))
}

func TestComputeSlots_BeforeBuffer(t *testing.T) {
	cfg := testConfig(t, func(c *config.Config) {
		c.BufferBeforeMinutes = 15
		c.BufferAfterMinutes = 0
	})
	busy := []models.Interval{
		{Start: tuesday.Add(14 * time.Hour), End: tuesday.Add(15 * time.Hour)},
	}
	now := monday.Add(8 * time.Hour)

	// Exclusion is [13:45, 15:00): the 13:30 slot ends at 14:00 > 13:45 and
	// is gone; 13:00 survives, and 15:00 survives on the half-open end.
	got := starts(ComputeSlots(cfg, busy, tuesday, wednesd, now))
	require.Contains(t, got, tuesday.Add(13*time.Hour))
	require.NotContains(t, got, tuesday.Add(13*time.Hour+30*time.Minute))
	require.NotContains(t, got, tuesday.Add(14*time.Hour+30*time.Minute))
	require.Contains(t, got, tuesday.Add(15*time.Hour))
}

func TestComputeSlots_NoticeWindow(t *testing.T) {
	cfg := testConfig(t, nil)
	// Monday 09:00 with two hours notice: 10:00 and 10:30 are too soon,
	// 11:00 is the first bookable start.
	now := monday.Add(9 * time.Hour)

	slots := ComputeSlots(cfg, nil, monday, tuesday, now)
	require.NotEmpty(t, slots)
	require.Equal(t, monday.Add(11*time.Hour), slots[0].Start)
	got := starts(slots)
	require.NotContains(t, got, monday.Add(10*time.Hour))
	require.NotContains(t, got, monday.Add(10*time.Hour+30*time.Minute))
}

func TestComputeSlots_SkipsNonWorkingDays(t *testing.T) {
	cfg := testConfig(t, nil)
	now := monday.Add(8 * time.Hour)

	// Saturday and Sunday are outside the 1..5 template.
	slots := ComputeSlots(cfg, nil, saturd, saturd.AddDate(0, 0, 2), now)
	require.Empty(t, slots)
}

func TestComputeSlots_FullDayBusyDoesNotBleedOver(t *testing.T) {
	cfg := testConfig(t, nil)
	busy := []models.Interval{
		{Start: tuesday.Add(10 * time.Hour), End: tuesday.Add(19 * time.Hour)},
	}
	now := monday.Add(8 * time.Hour)

	slots := ComputeSlots(cfg, busy, tuesday, wednesd.AddDate(0, 0, 1), now)
	for _, s := range slots {
		require.Equal(t, wednesd.Day(), s.Start.Day(), "tuesday should yield nothing")
	}
	// Wednesday is untouched: the full 18-slot set.
	require.Len(t, slots, 18)
}

func TestComputeSlots_MultiDayBusyInterval(t *testing.T) {
	cfg := testConfig(t, func(c *config.Config) { c.BufferAfterMinutes = 0 })
	// A commitment spanning Monday evening to Wednesday morning blocks all
	// of Tuesday regardless of day boundaries.
	busy := []models.Interval{
		{Start: monday.Add(18 * time.Hour), End: wednesd.Add(11 * time.Hour)},
	}
	now := monday.Add(8 * time.Hour)

	require.Empty(t, ComputeSlots(cfg, busy, tuesday, wednesd, now))

	got := starts(ComputeSlots(cfg, busy, wednesd, wednesd.AddDate(0, 0, 1), now))
	require.NotContains(t, got, wednesd.Add(10*time.Hour+30*time.Minute))
	require.Contains(t, got, wednesd.Add(11*time.Hour))
}

func TestComputeSlots_ZeroWorkingHours(t *testing.T) {
	cfg := testConfig(t, func(c *config.Config) {
		c.WorkingHoursStart = 19
		c.WorkingHoursEnd = 10
	})
	now := monday.Add(8 * time.Hour)
	require.Empty(t, ComputeSlots(cfg, nil, monday, tuesday, now))
}

func TestComputeSlots_WindowStartTruncatesToMidnight(t *testing.T) {
	cfg := testConfig(t, nil)
	now := monday.Add(8 * time.Hour)

	// A window opening mid-day still iterates from local midnight; morning
	// candidates are only removed by the notice filter, not the window.
	slots := ComputeSlots(cfg, nil, tuesday.Add(13*time.Hour), wednesd, now)
	require.NotEmpty(t, slots)
	require.Equal(t, tuesday.Add(10*time.Hour), slots[0].Start)
}

func TestComputeSlots_Idempotent(t *testing.T) {
	cfg := testConfig(t, nil)
	busy := []models.Interval{
		{Start: tuesday.Add(12 * time.Hour), End: tuesday.Add(13 * time.Hour)},
	}
	now := monday.Add(9 * time.Hour)

	first := ComputeSlots(cfg, busy, monday, saturd, now)
	second := ComputeSlots(cfg, busy, monday, saturd, now)
	require.Equal(t, first, second)
}

func TestComputeSlots_Properties(t *testing.T) {
	cfg := testConfig(t, nil)
	busy := []models.Interval{
		{Start: monday.Add(12 * time.Hour), End: monday.Add(14 * time.Hour)},
		{Start: tuesday.Add(9 * time.Hour), End: tuesday.Add(11 * time.Hour)},
		{Start: wednesd.Add(18 * time.Hour), End: wednesd.Add(20 * time.Hour)},
	}
	now := monday.Add(9*time.Hour + 17*time.Minute)

	slots := ComputeSlots(cfg, busy, monday, monday.AddDate(0, 0, 14), now)
	require.NotEmpty(t, slots)

	minStart := now.Add(cfg.MinNotice())
	for i, s := range slots {
		require.Equal(t, s.Start.Add(cfg.SlotDuration()), s.End)
		require.True(t, cfg.IsWorkingDay(Weekday(s.Start)), "slot on non-working day: %v", s.Start)
		require.GreaterOrEqual(t, s.Start.Hour(), cfg.WorkingHoursStart)
		require.Less(t, s.Start.Hour(), cfg.WorkingHoursEnd)
		require.False(t, s.Start.Before(minStart), "slot inside notice window: %v", s.Start)
		require.False(t, Conflicts(cfg, busy, s.Start, s.End), "slot conflicts with busy: %v", s.Start)
		if i > 0 {
			require.True(t, slots[i-1].Start.Before(s.Start), "slots out of order at %d", i)
		}
	}
}

func TestOnGrid(t *testing.T) {
	cfg := testConfig(t, nil)

	require.True(t, OnGrid(cfg, tuesday.Add(10*time.Hour)))
	require.True(t, OnGrid(cfg, tuesday.Add(18*time.Hour+30*time.Minute)))

	require.False(t, OnGrid(cfg, tuesday.Add(10*time.Hour+15*time.Minute)), "off the 30 min grid")
	require.False(t, OnGrid(cfg, tuesday.Add(9*time.Hour+30*time.Minute)), "before working hours")
	require.False(t, OnGrid(cfg, tuesday.Add(19*time.Hour)), "end hour bounds start times")
	require.False(t, OnGrid(cfg, saturd.Add(10*time.Hour)), "non-working day")
	require.False(t, OnGrid(cfg, tuesday.Add(10*time.Hour+30*time.Second)), "sub-minute offset")
}

func TestMeetsNotice(t *testing.T) {
	cfg := testConfig(t, nil)
	now := monday.Add(9 * time.Hour)

	require.False(t, MeetsNotice(cfg, monday.Add(10*time.Hour), now))
	require.True(t, MeetsNotice(cfg, monday.Add(11*time.Hour), now), "exactly now+notice is allowed")
	require.True(t, MeetsNotice(cfg, monday.Add(12*time.Hour), now))
}
