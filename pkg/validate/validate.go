// Package validate holds the client-side checks the gateway runs before
// submitting anything upstream: password policy for signup, and the
// half-hour schedule rules for doctor availability.
package validate

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

const (
	passwordMinLen = 8
	passwordMaxLen = 16

	specialChars = `!@#$%^&*(),.?":{}|<>`
)

// Password reports whether p satisfies the signup password policy:
// length within [8,16] and at least one uppercase letter, one lowercase
// letter, one digit and one special character.
func Password(p string) error {
	if len(p) < passwordMinLen || len(p) > passwordMaxLen {
		return fmt.Errorf("password must be between %d and %d characters long", passwordMinLen, passwordMaxLen)
	}

	var hasUpper, hasLower, hasDigit, hasSpecial bool
	for _, r := range p {
		switch {
		case r >= 'A' && r <= 'Z':
			hasUpper = true
		case r >= 'a' && r <= 'z':
			hasLower = true
		case r >= '0' && r <= '9':
			hasDigit = true
		case strings.ContainsRune(specialChars, r):
			hasSpecial = true
		}
	}

	if !hasUpper || !hasLower || !hasDigit || !hasSpecial {
		return fmt.Errorf("password must contain at least one uppercase letter, one lowercase letter, one number, and one special character")
	}
	return nil
}

// HalfHourAligned reports whether an "HH:MM" label falls on a
// half-hour boundary. Empty labels are treated as aligned so optional
// fields validate cleanly.
func HalfHourAligned(label string) bool {
	if label == "" {
		return true
	}
	_, mm, ok := splitClock(label)
	if !ok {
		return false
	}
	return mm == 0 || mm == 30
}

// TimeRangeOrdered reports whether start precedes end. Both are
// "HH:MM" labels; lexicographic comparison matches clock order for
// zero-padded labels, mirroring how the booking forms compare them.
func TimeRangeOrdered(start, end string) bool {
	if start == "" || end == "" {
		return false
	}
	return start < end
}

// WeekdaySchedule is one working day's time range on the availability form.
type WeekdaySchedule struct {
	Working   bool   `json:"working"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

// WeeklySchedule checks every working day of an availability submission:
// both ends present, start before end, both half-hour aligned.
func WeeklySchedule(days map[string]WeekdaySchedule) error {
	for day, d := range days {
		if !d.Working {
			continue
		}
		if d.StartTime == "" || d.EndTime == "" {
			return fmt.Errorf("%s: fill both start and end time, or mark the day as not working", day)
		}
		if !TimeRangeOrdered(d.StartTime, d.EndTime) {
			return fmt.Errorf("%s: start time must be before end time", day)
		}
		if !HalfHourAligned(d.StartTime) || !HalfHourAligned(d.EndTime) {
			return fmt.Errorf("%s: times must be in 30-minute intervals", day)
		}
	}
	return nil
}

// NewRequestValidator returns a validator with the gateway's custom
// rules registered. Request structs tag password fields with
// `validate:"hms_password"`.
func NewRequestValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("hms_password", func(fl validator.FieldLevel) bool {
		return Password(fl.Field().String()) == nil
	})
	return v
}

func splitClock(label string) (hh, mm int, ok bool) {
	parts := strings.SplitN(label, ":", 2)
	if len(parts) != 2 {
		return 0, 0, false
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return 0, 0, false
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return 0, 0, false
	}
	return h, m, true
}
