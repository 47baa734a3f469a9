package createdat

import (
	"strconv"
	"strings"
	"time"
)

const maxOffset = 24 * 60 * 60

// ParseOffset parses a UTC offset such as "+09:00", "-05:00" or "+09".
//
// Malformed and empty input both report ok == false; callers treat either
// as "no offset".
func ParseOffset(s string) (loc *time.Location, ok bool) {
	s = strings.Trim(strings.TrimSpace(s), "\x00")
	if s == "" {
		return nil, false
	}

	sign := 1
	switch s[0] {
	case '-':
		sign = -1
		s = s[1:]
	case '+':
		s = s[1:]
	}

	parts := strings.Split(s, ":")
	hours, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return nil, false
	}
	minutes := 0
	if len(parts) > 1 {
		minutes, err = strconv.Atoi(strings.TrimSpace(parts[1]))
		if err != nil {
			return nil, false
		}
	}

	offset := sign * (hours*60*60 + minutes*60)
	if offset <= -maxOffset || offset >= maxOffset {
		return nil, false
	}
	return time.FixedZone(formatOffset(offset), offset), true
}

func formatOffset(seconds int) string {
	sign := '+'
	if seconds < 0 {
		sign = '-'
		seconds = -seconds
	}
	return string(sign) + twoDigits(seconds/3600) + ":" + twoDigits(seconds%3600/60)
}

func twoDigits(n int) string {
	if n < 10 {
		return "0" + strconv.Itoa(n)
	}
	return strconv.Itoa(n)
}
