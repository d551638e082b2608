package utils

import (
	"errors"
	"fmt"
	"strconv"
	"time"
)

// ErrInvalidTimestamp is returned for stamps that are not plain Unix epoch
// seconds representable in 10 digits.
var ErrInvalidTimestamp = errors.New("invalid unix timestamp")

// maxStamp is the largest epoch second that fits the 10-digit stamp format
// (2286-11-20). Stamps are zero padded below 10^9.
const maxStamp = 9999999999

// ToStamp converts an instant to the 10-digit stamp used as cache-busting
// token in delivery URLs and as upload cursor in storage keys. Sub-second
// precision is truncated.
func ToStamp(t time.Time) (string, error) {
	seconds := t.Unix()
	if seconds < 0 || seconds > maxStamp {
		return "", fmt.Errorf("%w: %d out of range", ErrInvalidTimestamp, seconds)
	}
	return fmt.Sprintf("%010d", seconds), nil
}

// ToTime converts a stamp back to an instant. ToTime(ToStamp(t)) equals t
// truncated to the second, for every t in the supported range.
func ToTime(stamp string) (time.Time, error) {
	seconds, err := strconv.ParseInt(stamp, 10, 64)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidTimestamp, stamp)
	}
	if seconds < 0 || seconds > maxStamp {
		return time.Time{}, fmt.Errorf("%w: %d out of range", ErrInvalidTimestamp, seconds)
	}
	return time.Unix(seconds, 0).UTC(), nil
}
