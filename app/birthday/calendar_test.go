package birthday

import "testing"

func TestValidDate(t *testing.T) {
	tests := []struct {
		name  string
		month int
		day   int
		want  bool
	}{
		{"JanuaryFirst", 1, 1, true},
		{"JanuaryLast", 1, 31, true},
		{"FebruaryLast", 2, 28, true},
		{"FebruaryLeapDayRejected", 2, 29, false},
		{"AprilThirtyFirst", 4, 31, false},
		{"DecemberLast", 12, 31, true},
		{"DayZero", 6, 0, false},
		{"NegativeDay", 6, -3, false},
		{"MonthZero", 0, 10, false},
		{"MonthThirteen", 13, 10, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ValidDate(tt.month, tt.day); got != tt.want {
				t.Errorf("ValidDate(%d, %d) = %v, expected %v", tt.month, tt.day, got, tt.want)
			}
		})
	}
}

func TestMaxDay(t *testing.T) {
	if got := MaxDay(2); got != 28 {
		t.Errorf("expected February to cap at 28, got %d", got)
	}
	if got := MaxDay(0); got != 0 {
		t.Errorf("expected 0 for invalid month, got %d", got)
	}
}

func TestMonthName(t *testing.T) {
	if got := monthName(2); got != "February" {
		t.Errorf("expected February, got %q", got)
	}
}
