package validators

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// DateTimeLayout is the textual form timestamps are persisted in ("Y-m-d H:i:s.u").
const DateTimeLayout = "2006-01-02 15:04:05.000000"

var dateTimePattern = regexp.MustCompile(`^(\d{4})-(\d{2})-(\d{2})(?: (\d{2}):(\d{2}):(\d{2})(?:\.(\d{1,6}))?)?$`)

// ValidateDateTime normalizes a timestamp to a UTC time.Time truncated to microseconds.
// Strings must look like "2006-01-02", "2006-01-02 15:04:05" or "2006-01-02 15:04:05.000000"; anything else is
// ErrInvalidArgument. A well-formed string naming a date or time of day that does not exist is ErrRange.
// Strings are read as UTC.
func ValidateDateTime(value interface{}) (time.Time, error) {
	switch v := value.(type) {
	case time.Time:
		return v.UTC().Truncate(time.Microsecond), nil
	case *time.Time:
		if v == nil {
			return time.Time{}, TypeMismatch("date is nil")
		}
		return v.UTC().Truncate(time.Microsecond), nil
	case string:
		return parseDateTime(strings.TrimSpace(v))
	default:
		return time.Time{}, TypeMismatch("%T is not a valid date", value)
	}
}

func parseDateTime(s string) (time.Time, error) {
	match := dateTimePattern.FindStringSubmatch(s)
	if match == nil {
		return time.Time{}, InvalidArgument("%q is not a valid date", s)
	}

	year, month, day := atoi(match[1]), atoi(match[2]), atoi(match[3])
	if !isCalendarDate(year, month, day) {
		return time.Time{}, OutOfRange("%q is not a Gregorian date", s)
	}

	if match[4] == "" {
		return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC), nil
	}

	hour, minute, second := atoi(match[4]), atoi(match[5]), atoi(match[6])
	if hour > 23 || minute > 59 || second > 59 {
		return time.Time{}, OutOfRange("%q is not a valid time", s)
	}

	microseconds := 0
	if fraction := match[7]; fraction != "" {
		microseconds = atoi(fraction + strings.Repeat("0", 6-len(fraction)))
	}

	return time.Date(year, time.Month(month), day, hour, minute, second, microseconds*1000, time.UTC), nil
}

func isCalendarDate(year, month, day int) bool {
	if month < 1 || month > 12 || day < 1 {
		return false
	}
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	return t.Day() == day && int(t.Month()) == month
}

// atoi is only called on digit runs matched by dateTimePattern.
func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}
