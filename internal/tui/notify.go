package tui

import "time"

// Reminder modes, mirroring the persisted notify_mode setting.
const (
	notifyHourly     = 0 // every hour 17:00-21:00
	notifyTwiceDaily = 1 // 12:00 and 21:00
)

// reminderModel nags the user to fill the report while reminders are
// enabled. It fires at most once per due slot; state is rebuilt from
// ticks, no persistence.
type reminderModel struct {
	store settingsReader

	lastFired time.Time
}

type settingsReader interface {
	GetIntSetting(key string, fallback int) int
}

func newReminderModel(s settingsReader) reminderModel {
	return reminderModel{store: s}
}

// check returns a reminder text when a reminder slot is due and has not
// fired yet, otherwise "".
func (r *reminderModel) check(now time.Time) string {
	if r.store.GetIntSetting("notify_enabled", 0) != 1 {
		return ""
	}
	mode := r.store.GetIntSetting("notify_mode", 0)

	if !reminderDue(mode, now) {
		return ""
	}
	// One reminder per hour slot.
	if r.lastFired.Truncate(time.Hour).Equal(now.Truncate(time.Hour)) {
		return ""
	}
	r.lastFired = now
	return "Don't forget today's report"
}

// reminderDue reports whether the instant falls on a reminder slot:
// hourly mode fires on the hour from 17:00 through 21:00, twice-daily
// mode at 12:00 and 21:00.
func reminderDue(mode int, t time.Time) bool {
	if t.Minute() != 0 {
		return false
	}
	switch mode {
	case notifyTwiceDaily:
		return t.Hour() == 12 || t.Hour() == 21
	default:
		return t.Hour() >= 17 && t.Hour() <= 21
	}
}
