package songscraper

import (
	"strconv"
	"strings"
)

const (
	secondsPerMinute = 60
	secondsPerHour   = 60 * secondsPerMinute

	// maxSegmentValue keeps maxSegmentValue*secondsPerHour inside a 32-bit int.
	maxSegmentValue = 99_999
)

// segmentWeights maps clock segments, least significant first, to seconds.
var segmentWeights = []int{1, secondsPerMinute, secondsPerHour}

// ParseDuration converts a clock label such as "3:45" or "1:02:03" to seconds.
// Missing leading segments count as zero, so "45" is 45 seconds. Segments that
// are not non-negative integers, or exceed maxSegmentValue, contribute nothing,
// and "" is 0.
func ParseDuration(text string) int {
	text = strings.TrimSpace(text)
	if text == "" {
		return 0
	}

	segments := strings.Split(text, ":")
	total := 0
	for i, weight := range segmentWeights {
		index := len(segments) - 1 - i
		if index < 0 {
			break
		}
		total += parseSegment(segments[index]) * weight
	}
	return total
}

func parseSegment(segment string) int {
	value, err := strconv.Atoi(strings.TrimSpace(segment))
	if err != nil || value < 0 || value > maxSegmentValue {
		return 0
	}
	return value
}
