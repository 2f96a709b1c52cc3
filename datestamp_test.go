package sprout

import (
	"testing"
	"time"
)

func TestFormatDateStamp(t *testing.T) {
	got := FormatDateStamp(time.Date(2025, time.March, 7, 15, 4, 0, 0, time.UTC))
	if got != "March 7, 2025" {
		t.Errorf("FormatDateStamp = %q, want %q", got, "March 7, 2025")
	}
}
