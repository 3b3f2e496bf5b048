package domain

import (
	"fmt"
	"time"
)

// ScheduleRule is the fixed local time of day a run fires at.
type ScheduleRule struct {
	Hour   int
	Minute int
	Second int
}

// DefaultScheduleRule fires one second before a 10:00 sale opens.
var DefaultScheduleRule = ScheduleRule{Hour: 9, Minute: 59, Second: 59}

// ScheduledInstant is the single deadline computed at startup.
type ScheduledInstant struct {
	At time.Time
}

func ParseScheduleRule(raw string) (ScheduleRule, error) {
	parsed, err := time.Parse(time.TimeOnly, raw)
	if err != nil {
		return ScheduleRule{}, fmt.Errorf("parse schedule time %q: want HH:MM:SS", raw)
	}

	return ScheduleRule{Hour: parsed.Hour(), Minute: parsed.Minute(), Second: parsed.Second()}, nil
}

func (r ScheduleRule) String() string {
	return fmt.Sprintf("%02d:%02d:%02d", r.Hour, r.Minute, r.Second)
}

// defaultRolloverHour is the hour from which the default rule targets tomorrow.
const defaultRolloverHour = 10

// ComputeTarget returns the next occurrence of the rule in now's location.
// The default rule keeps its fixed rollover at 10:00; any other rule targets
// today's occurrence only while it is still strictly in the future.
func ComputeTarget(now time.Time, rule ScheduleRule) ScheduledInstant {
	today := time.Date(now.Year(), now.Month(), now.Day(), rule.Hour, rule.Minute, rule.Second, 0, now.Location())

	if rule == DefaultScheduleRule {
		if now.Hour() >= defaultRolloverHour {
			today = today.AddDate(0, 0, 1)
		}
		return ScheduledInstant{At: today}
	}

	if !today.After(now) {
		today = today.AddDate(0, 0, 1)
	}
	return ScheduledInstant{At: today}
}

func (s ScheduledInstant) Reached(now time.Time) bool {
	return now.After(s.At)
}

func (s ScheduledInstant) Remaining(now time.Time) time.Duration {
	if s.Reached(now) {
		return 0
	}
	return s.At.Sub(now)
}
