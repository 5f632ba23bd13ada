package timeutil

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// FormatTime formats seconds as H:MM:SS (e.g. 0:01:30, 1:11:22).
func FormatTime(seconds float64) string {
	if seconds < 0 {
		seconds = 0
	}
	totalSeconds := int(seconds)
	hours := totalSeconds / 3600
	mins := (totalSeconds % 3600) / 60
	secs := totalSeconds % 60
	return fmt.Sprintf("%d:%02d:%02d", hours, mins, secs)
}

// FormatCompact formats seconds as HHMMSS for use in file names.
func FormatCompact(seconds float64) string {
	if seconds < 0 {
		seconds = 0
	}
	total := int(math.Floor(seconds))
	return fmt.Sprintf("%02d%02d%02d", total/3600, (total%3600)/60, total%60)
}

// FormatSeconds prints a second count with at most millisecond precision and
// no trailing zeros: 10, 12.5, -30, 0.042. Negative values are kept.
func FormatSeconds(seconds float64) string {
	rounded := math.Round(seconds*1000) / 1000
	if rounded == 0 {
		rounded = 0 // drop negative zero
	}
	return strconv.FormatFloat(rounded, 'f', -1, 64)
}

// ParseTimeToSeconds parses a time string in HH:MM:SS, MM:SS, or raw seconds
// format. The seconds field may carry a fraction (1:30.25).
func ParseTimeToSeconds(timeStr string) (float64, error) {
	timeStr = strings.TrimSpace(timeStr)
	parts := strings.Split(timeStr, ":")
	if len(parts) > 3 || timeStr == "" {
		return 0, fmt.Errorf("expected HH:MM:SS, MM:SS, or seconds, got '%s'", timeStr)
	}

	secs, err := strconv.ParseFloat(parts[len(parts)-1], 64)
	if err != nil || secs < 0 || math.IsNaN(secs) || math.IsInf(secs, 0) {
		return 0, fmt.Errorf("expected HH:MM:SS, MM:SS, or seconds, got '%s'", timeStr)
	}
	if len(parts) > 1 && secs >= 60 {
		return 0, fmt.Errorf("seconds out of range in '%s'", timeStr)
	}

	total := secs
	multiplier := 60.0
	for i := len(parts) - 2; i >= 0; i-- {
		n, err := strconv.Atoi(parts[i])
		if err != nil || n < 0 {
			return 0, fmt.Errorf("expected HH:MM:SS, MM:SS, or seconds, got '%s'", timeStr)
		}
		if i == len(parts)-2 && len(parts) == 3 && n >= 60 {
			return 0, fmt.Errorf("minutes out of range in '%s'", timeStr)
		}
		total += float64(n) * multiplier
		multiplier *= 60
	}
	return total, nil
}
