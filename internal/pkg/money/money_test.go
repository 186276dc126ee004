package money

import "testing"

func TestRound2(t *testing.T) {
	cases := []struct {
		in   float64
		want float64
	}{
		{10.004, 10.00},
		{10.005, 10.01},
		{10.999, 11.00},
		{0.1 + 0.2, 0.30},
	}
	for _, tc := range cases {
		if got := Round2(tc.in); got != tc.want {
			t.Errorf("Round2(%v) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestPercent(t *testing.T) {
	if got := Percent(200, 8.5); got != 17.00 {
		t.Errorf("Percent(200, 8.5) = %v, want 17", got)
	}
	if got := Percent(150, 5); got != 7.50 {
		t.Errorf("Percent(150, 5) = %v, want 7.5", got)
	}
	if got := Percent(99.99, 10); got != 10.00 {
		t.Errorf("Percent(99.99, 10) = %v, want 10", got)
	}
}

func TestLine(t *testing.T) {
	if got := Line(3.35, 3); got != 10.05 {
		t.Errorf("Line(3.35, 3) = %v, want 10.05", got)
	}
	if got := Line(0.1, 3); got != 0.30 {
		t.Errorf("Line(0.1, 3) = %v, want 0.30", got)
	}
}

func TestSumAvoidsFloatDrift(t *testing.T) {
	if got := Sum(0.1, 0.2, 0.3); got != 0.60 {
		t.Errorf("Sum = %v, want 0.60", got)
	}
}

func TestHourlyCost(t *testing.T) {
	cases := []struct {
		minutes int
		rate    float64
		want    float64
	}{
		{60, 200, 200},
		{90, 200, 300},
		{61, 200, 203.33},
		{30, 150, 75},
		{0, 200, 0},
	}
	for _, tc := range cases {
		if got := HourlyCost(tc.minutes, tc.rate); got != tc.want {
			t.Errorf("HourlyCost(%d, %v) = %v, want %v", tc.minutes, tc.rate, got, tc.want)
		}
	}
}

func TestFloor0(t *testing.T) {
	if got := Floor0(-12.5); got != 0 {
		t.Errorf("Floor0(-12.5) = %v, want 0", got)
	}
	if got := Floor0(12.5); got != 12.5 {
		t.Errorf("Floor0(12.5) = %v, want 12.5", got)
	}
}
