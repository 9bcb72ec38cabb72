package pool

import "errors"

// Rejection reasons for proposed window settings. The validator is
// stricter than ResolveWindow: it refuses midnight-crossing windows that
// the resolver would happily run with. That gap is inherited behavior;
// the UI gate and the runtime resolver are intentionally not unified.
var (
	ErrOutOfRange     = errors.New("value out of day range")
	ErrEndBeforeStart = errors.New("end must be after start")
	ErrTooShort       = errors.New("minimum duration is one hour")
	ErrTooLong        = errors.New("duration must not exceed twelve hours")
)

const (
	minutesPerDay    = 1440
	minWindowMinutes = 60
	maxWindowMinutes = 720
)

// ValidateWindow checks a proposed start/end pair in minutes from
// midnight. Returns nil on acceptance or one of the sentinel rejection
// errors.
func ValidateWindow(startMinutes, endMinutes int) error {
	if startMinutes < 0 || startMinutes >= minutesPerDay ||
		endMinutes < 0 || endMinutes >= minutesPerDay {
		return ErrOutOfRange
	}
	if endMinutes <= startMinutes {
		return ErrEndBeforeStart
	}
	span := endMinutes - startMinutes
	if span < minWindowMinutes {
		return ErrTooShort
	}
	if span > maxWindowMinutes {
		return ErrTooLong
	}
	return nil
}
