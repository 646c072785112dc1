package timeslot

import (
	"testing"
	"time"
)

func TestGenerate_HourlySlots(t *testing.T) {
	slots, err := Generate("06:00", "23:00", 60)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(slots) != 17 {
		t.Fatalf("expected 17 slots, got %d", len(slots))
	}
	if slots[0] != "06:00" {
		t.Errorf("first slot = %s, want 06:00", slots[0])
	}
	if slots[len(slots)-1] != "22:00" {
		t.Errorf("last slot = %s, want 22:00", slots[len(slots)-1])
	}
}

func TestGenerate_NoTrailingPartialSlot(t *testing.T) {
	slots, err := Generate("06:00", "23:00", 90)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// 21:00 + 90min = 22:30 <= 23:00 fits; 22:30 + 90min would overrun.
	last := slots[len(slots)-1]
	if last != "21:00" {
		t.Errorf("last slot = %s, want 21:00", last)
	}
	for _, s := range slots {
		startMin, err := ParseHHMM(s)
		if err != nil {
			t.Fatalf("generated invalid slot %q: %v", s, err)
		}
		if startMin+90 > 23*60 {
			t.Errorf("slot %s overruns closing time", s)
		}
		if (startMin-6*60)%90 != 0 {
			t.Errorf("slot %s is off the duration grid", s)
		}
	}
}

func TestGenerate_WindowTooSmall(t *testing.T) {
	slots, err := Generate("10:00", "10:30", 60)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(slots) != 0 {
		t.Errorf("expected no slots when duration exceeds window, got %v", slots)
	}
}

func TestGenerate_ExactFit(t *testing.T) {
	slots, err := Generate("10:00", "12:00", 120)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(slots) != 1 || slots[0] != "10:00" {
		t.Errorf("expected single slot 10:00, got %v", slots)
	}
}

func TestGenerate_InvalidInputs(t *testing.T) {
	if _, err := Generate("6am", "23:00", 60); err == nil {
		t.Error("expected error for malformed start time")
	}
	if _, err := Generate("06:00", "23:00", 0); err == nil {
		t.Error("expected error for zero duration")
	}
}

func TestParseAndFormatHHMM(t *testing.T) {
	tests := []struct {
		in      string
		minutes int
	}{
		{"00:00", 0},
		{"06:30", 390},
		{"23:45", 1425},
	}
	for _, tt := range tests {
		got, err := ParseHHMM(tt.in)
		if err != nil {
			t.Fatalf("ParseHHMM(%q): %v", tt.in, err)
		}
		if got != tt.minutes {
			t.Errorf("ParseHHMM(%q) = %d, want %d", tt.in, got, tt.minutes)
		}
		if back := FormatHHMM(got); back != tt.in {
			t.Errorf("FormatHHMM(%d) = %s, want %s", got, back, tt.in)
		}
	}

	if _, err := ParseHHMM("24:00"); err == nil {
		t.Error("expected error for 24:00")
	}
}

func TestStorageWeekday(t *testing.T) {
	tests := []struct {
		native time.Weekday
		want   int
	}{
		{time.Monday, 0},
		{time.Tuesday, 1},
		{time.Saturday, 5},
		{time.Sunday, 6},
	}
	for _, tt := range tests {
		if got := StorageWeekday(tt.native); got != tt.want {
			t.Errorf("StorageWeekday(%s) = %d, want %d", tt.native, got, tt.want)
		}
	}
}

func TestWeekdayOf(t *testing.T) {
	// 2025-06-16 is a Monday.
	got, err := WeekdayOf("2025-06-16")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 0 {
		t.Errorf("WeekdayOf(2025-06-16) = %d, want 0 (Monday)", got)
	}

	if _, err := WeekdayOf("16-06-2025"); err == nil {
		t.Error("expected error for malformed date")
	}
}

func TestIsValidDate(t *testing.T) {
	if !IsValidDate("2025-02-28") {
		t.Error("2025-02-28 should be valid")
	}
	if IsValidDate("2025-02-30") {
		t.Error("2025-02-30 should be invalid")
	}
	if IsValidDate("2025/02/28") {
		t.Error("slash-separated date should be invalid")
	}
}
