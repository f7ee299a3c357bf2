package numbers

import (
	"strconv"
	"strings"
)

// ParseFloat converts a broker payload field to a float64.
// Blank and whitespace-only strings read as zero, not as an error.
func ParseFloat(str string) (float64, error) {
	str = strings.TrimSpace(str)
	if str == "" {
		return 0, nil
	}
	return strconv.ParseFloat(str, 64)
}

// ParseInt converts a broker payload field to an int.
// Blank and whitespace-only strings read as zero, not as an error.
func ParseInt(str string) (int, error) {
	str = strings.TrimSpace(str)
	if str == "" {
		return 0, nil
	}
	return strconv.Atoi(str)
}

// FloatOrZero is ParseFloat with malformed input degraded to zero.
func FloatOrZero(str string) float64 {
	f, err := ParseFloat(str)
	if err != nil {
		return 0
	}
	return f
}

// IntOrZero is ParseInt with malformed input degraded to zero.
func IntOrZero(str string) int {
	i, err := ParseInt(str)
	if err != nil {
		return 0
	}
	return i
}
