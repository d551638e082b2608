package utils

import (
	"errors"
	"testing"
	"time"
)

func TestToStamp_PadsToTenDigits(t *testing.T) {
	stamp, err := ToStamp(time.Unix(533686400, 0))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stamp != "0533686400" {
		t.Fatalf("expected zero padded stamp, got %q", stamp)
	}
}

func TestToStamp_RejectsOutOfRange(t *testing.T) {
	if _, err := ToStamp(time.Unix(-1, 0)); !errors.Is(err, ErrInvalidTimestamp) {
		t.Fatalf("expected ErrInvalidTimestamp for negative epoch, got %v", err)
	}
	if _, err := ToStamp(time.Unix(10000000000, 0)); !errors.Is(err, ErrInvalidTimestamp) {
		t.Fatalf("expected ErrInvalidTimestamp for 11 digit epoch, got %v", err)
	}
}

func TestToTime_RoundTripTruncatesToSecond(t *testing.T) {
	instants := []time.Time{
		time.Unix(0, 0),
		time.Unix(1533686400, 123456789),
		time.Unix(9999999999, 0),
		time.Date(2023, 11, 14, 22, 13, 20, 500, time.UTC),
	}

	for _, instant := range instants {
		stamp, err := ToStamp(instant)
		if err != nil {
			t.Fatalf("ToStamp(%v): %v", instant, err)
		}
		back, err := ToTime(stamp)
		if err != nil {
			t.Fatalf("ToTime(%q): %v", stamp, err)
		}
		if !back.Equal(instant.Truncate(time.Second)) {
			t.Fatalf("round trip mismatch: %v != %v", back, instant.Truncate(time.Second))
		}
	}
}

func TestToTime_Rejections(t *testing.T) {
	for _, stamp := range []string{"", "not-a-number", "15336864oo", "-533686400", "99999999999"} {
		if _, err := ToTime(stamp); !errors.Is(err, ErrInvalidTimestamp) {
			t.Fatalf("ToTime(%q): expected ErrInvalidTimestamp, got %v", stamp, err)
		}
	}
}
