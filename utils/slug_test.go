package utils

import "testing"

func TestSlugify(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Math 101", "math-101"},
		{"My Report", "my-report"},
		{"  Leading and trailing  ", "leading-and-trailing"},
		{"Crash -- course", "crash-course"},
		{"Émission spéciale", "mission-spciale"},
		{"file_name keeps_underscores", "file_name-keeps_underscores"},
		{"Weird!@#$%Chars", "weirdchars"},
		{"", ""},
		{"---", ""},
	}

	for _, tc := range cases {
		if got := Slugify(tc.in); got != tc.want {
			t.Errorf("Slugify(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
