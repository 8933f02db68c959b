package state

import (
	"errors"
	"regexp"
	"strconv"
)

// ErrInvalidLabel is returned for a label edit that is not zero to two
// decimal digits. The stored label is left as it was.
var ErrInvalidLabel = errors.New("label must be 0-99")

var labelPattern = regexp.MustCompile(`^[0-9]{0,2}$`)

// ValidLabel reports whether raw is an acceptable label: empty, or one or
// two ASCII digits.
func ValidLabel(raw string) bool {
	return labelPattern.MatchString(raw)
}

// LabelValue returns the numeric value of a stored label. ok is false for
// an unset label.
func LabelValue(label string) (n int, ok bool) {
	if label == "" {
		return 0, false
	}
	n, err := strconv.Atoi(label)
	if err != nil {
		return 0, false
	}
	return n, true
}
