package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func baseConfig() Config {
	return Config{
		Timezone:            "Europe/Moscow",
		SlotDurationMinutes: 30,
		WorkingHoursStart:   10,
		WorkingHoursEnd:     19,
		WorkingDaysRaw:      "1,2,3,4,5",
		BufferAfterMinutes:  15,
		MinNoticeHours:      2,
		MaxDaysAhead:        14,
	}
}

func TestNew_Valid(t *testing.T) {
	cfg, err := New(baseConfig())
	require.NoError(t, err)

	require.Equal(t, []int{1, 2, 3, 4, 5}, cfg.WorkingDays())
	require.True(t, cfg.IsWorkingDay(1))
	require.True(t, cfg.IsWorkingDay(5))
	require.False(t, cfg.IsWorkingDay(6))
	require.False(t, cfg.IsWorkingDay(7))

	require.Equal(t, 30*time.Minute, cfg.SlotDuration())
	require.Equal(t, time.Duration(0), cfg.BufferBefore())
	require.Equal(t, 15*time.Minute, cfg.BufferAfter())
	require.Equal(t, 2*time.Hour, cfg.MinNotice())
	require.Equal(t, "Europe/Moscow", cfg.Location().String())
}

func TestNew_WorkingDaysParsing(t *testing.T) {
	c := baseConfig()
	c.WorkingDaysRaw = " 1 , 3 ,5"
	cfg, err := New(c)
	require.NoError(t, err)
	require.Equal(t, []int{1, 3, 5}, cfg.WorkingDays())
}

func TestNew_Invalid(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero slot duration", func(c *Config) { c.SlotDurationMinutes = 0 }},
		{"negative slot duration", func(c *Config) { c.SlotDurationMinutes = -30 }},
		{"day out of range", func(c *Config) { c.WorkingDaysRaw = "1,2,8" }},
		{"day not a number", func(c *Config) { c.WorkingDaysRaw = "mon,tue" }},
		{"no working days", func(c *Config) { c.WorkingDaysRaw = " , " }},
		{"bad timezone", func(c *Config) { c.Timezone = "Mars/Olympus" }},
		{"start hour out of range", func(c *Config) { c.WorkingHoursStart = 25 }},
		{"negative buffer", func(c *Config) { c.BufferAfterMinutes = -1 }},
		{"negative notice", func(c *Config) { c.MinNoticeHours = -1 }},
		{"zero days ahead", func(c *Config) { c.MaxDaysAhead = 0 }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := baseConfig()
			tc.mutate(&c)
			_, err := New(c)
			require.Error(t, err)
		})
	}
}

func TestNew_StartAfterEndIsValid(t *testing.T) {
	// A template with startHour >= endHour produces zero slots; that is a
	// valid schedule, not a configuration error.
	c := baseConfig()
	c.WorkingHoursStart = 19
	c.WorkingHoursEnd = 10
	_, err := New(c)
	require.NoError(t, err)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("SLOT_DURATION", "45")
	t.Setenv("WORKING_DAYS", "2,4")
	t.Setenv("TIMEZONE", "UTC")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, 45, cfg.SlotDurationMinutes)
	require.Equal(t, []int{2, 4}, cfg.WorkingDays())
	require.Equal(t, time.UTC, cfg.Location())
	// Untouched keys keep their defaults.
	require.Equal(t, 10, cfg.WorkingHoursStart)
	require.Equal(t, 14, cfg.MaxDaysAhead)
}

func TestLoad_RejectsBadEnv(t *testing.T) {
	t.Setenv("SLOT_DURATION", "0")
	_, err := Load()
	require.Error(t, err)
}
