package date

import (
	"testing"
	"time"
)

func TestNewRange(t *testing.T) {
	testCases := []struct {
		name   string
		in     Date
		period Period
		want   Range
	}{
		{
			name:   "day",
			in:     New(2025, time.September, 8),
			period: Daily,
			want:   Range{From: New(2025, time.September, 8), To: New(2025, time.September, 8)},
		},
		{
			name:   "a wednesday",
			in:     New(2025, time.September, 10),
			period: Weekly,
			want:   Range{From: New(2025, time.September, 8), To: New(2025, time.September, 14)},
		},
		{
			name:   "a sunday closes the week",
			in:     New(2025, time.September, 14),
			period: Weekly,
			want:   Range{From: New(2025, time.September, 8), To: New(2025, time.September, 14)},
		},
		{
			name:   "a leap year",
			in:     New(2024, time.February, 15),
			period: Monthly,
			want:   Range{From: New(2024, time.February, 1), To: New(2024, time.February, 29)},
		},
		{
			name:   "year",
			in:     New(2025, time.June, 1),
			period: Yearly,
			want:   Range{From: New(2025, time.January, 1), To: New(2025, time.December, 31)},
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := NewRange(tc.in, tc.period); got != tc.want {
				t.Errorf("NewRange(%v, %v) = %v, want %v", tc.in, tc.period, got, tc.want)
			}
		})
	}
}

func TestRange_Contains(t *testing.T) {
	r := NewRange(New(2025, time.March, 10), Monthly)
	for _, d := range []Date{New(2025, time.March, 1), New(2025, time.March, 31)} {
		if !r.Contains(d) {
			t.Errorf("%v should contain %v", r, d)
		}
	}
	for _, d := range []Date{New(2025, time.February, 28), New(2025, time.April, 1)} {
		if r.Contains(d) {
			t.Errorf("%v should not contain %v", r, d)
		}
	}
}

func TestRange_Days(t *testing.T) {
	r := NewRange(New(2025, time.September, 10), Weekly)
	n := 0
	for d := range r.Days() {
		if !r.Contains(d) {
			t.Errorf("Days() yielded %v outside of %v", d, r)
		}
		n++
	}
	if n != 7 {
		t.Errorf("Days() yielded %d days, want 7", n)
	}
}

func TestParsePeriod(t *testing.T) {
	testCases := map[string]Period{
		"day": Daily, "weekly": Weekly, "Month": Monthly, "": Monthly, "year": Yearly,
	}
	for in, want := range testCases {
		got, err := ParsePeriod(in)
		if err != nil {
			t.Errorf("ParsePeriod(%q) unexpected error: %v", in, err)
			continue
		}
		if got != want {
			t.Errorf("ParsePeriod(%q) = %v, want %v", in, got, want)
		}
	}
	if _, err := ParsePeriod("fortnight"); err == nil {
		t.Error("ParsePeriod(fortnight) should fail")
	}
}
