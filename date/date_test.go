package date

import (
	"encoding/json"
	"testing"
	"time"
)

func TestParse(t *testing.T) {
	tests := []struct {
		in   string
		want Date
	}{
		{"2024-01-05", New(2024, time.January, 5)},
		{"2024-1-5", New(2024, time.January, 5)},
		{"01/05/2024", New(2024, time.January, 5)},
		{"1/5/2024", New(2024, time.January, 5)},
		{"01/05/24", New(2024, time.January, 5)},
		{"09/15/2024 as of 09/13/2024", New(2024, time.September, 15)},
		{"  2024-01-05 ", New(2024, time.January, 5)},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := Parse(tt.in)
			if err != nil {
				t.Fatalf("Parse(%q) error = %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("Parse(%q) = %v want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestParse_invalid(t *testing.T) {
	for _, in := range []string{"", "not a date", "2024/01/05/06"} {
		if _, err := Parse(in); err == nil {
			t.Errorf("Parse(%q) want error, got none", in)
		}
	}
}

func TestNew_normalizes(t *testing.T) {
	// Out of range day values roll over like time.Date.
	got := New(2024, time.January, 32)
	want := New(2024, time.February, 1)
	if got != want {
		t.Errorf("New(2024, January, 32) = %v want %v", got, want)
	}
}

func TestCompare(t *testing.T) {
	d1 := New(2024, time.January, 5)
	d2 := New(2024, time.January, 6)
	if !d1.Before(d2) || d2.Before(d1) {
		t.Errorf("Before: %v < %v broken", d1, d2)
	}
	if !d2.After(d1) {
		t.Errorf("After: %v > %v broken", d2, d1)
	}
	if d1.Compare(d2) != -1 || d2.Compare(d1) != 1 || d1.Compare(d1) != 0 {
		t.Errorf("Compare(%v, %v) inconsistent", d1, d2)
	}
}

func TestAdd(t *testing.T) {
	d := New(2023, time.December, 31)
	if got, want := d.Add(1), New(2024, time.January, 1); got != want {
		t.Errorf("%v.Add(1) = %v want %v", d, got, want)
	}
}

func TestJSONRoundTrip(t *testing.T) {
	d := New(2024, time.June, 28)
	data, err := json.Marshal(d)
	if err != nil {
		t.Fatalf("Marshal(%v) error = %v", d, err)
	}
	if string(data) != `"2024-06-28"` {
		t.Errorf("Marshal(%v) = %s want %q", d, data, `"2024-06-28"`)
	}
	var back Date
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("Unmarshal(%s) error = %v", data, err)
	}
	if back != d {
		t.Errorf("round trip = %v want %v", back, d)
	}
}
