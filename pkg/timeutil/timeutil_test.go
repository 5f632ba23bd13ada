package timeutil

import "testing"

func TestFormatTime(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0:00:00"},
		{90, "0:01:30"},
		{4282.9, "1:11:22"},
		{-5, "0:00:00"},
	}
	for _, tt := range tests {
		if got := FormatTime(tt.in); got != tt.want {
			t.Errorf("FormatTime(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatSeconds(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{10, "10"},
		{12.5, "12.5"},
		{-30, "-30"},
		{0.0424, "0.042"},
		{-0.0001, "0"},
		{33.3333333, "33.333"},
	}
	for _, tt := range tests {
		if got := FormatSeconds(tt.in); got != tt.want {
			t.Errorf("FormatSeconds(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatCompact(t *testing.T) {
	if got := FormatCompact(3723.9); got != "010203" {
		t.Errorf("FormatCompact = %q, want 010203", got)
	}
}

func TestParseTimeToSeconds(t *testing.T) {
	tests := []struct {
		in      string
		want    float64
		wantErr bool
	}{
		{"90", 90, false},
		{"12.5", 12.5, false},
		{"1:30", 90, false},
		{"1:30.25", 90.25, false},
		{"1:02:03", 3723, false},
		{"", 0, true},
		{"abc", 0, true},
		{"1:75", 0, true},
		{"1:75:00", 0, true},
		{"1:2:3:4", 0, true},
		{"-3", 0, true},
		{"NaN", 0, true},
		{"Inf", 0, true},
		{"1:NaN", 0, true},
	}
	for _, tt := range tests {
		got, err := ParseTimeToSeconds(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseTimeToSeconds(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if !tt.wantErr && got != tt.want {
			t.Errorf("ParseTimeToSeconds(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
