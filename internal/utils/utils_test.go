package utils

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestFormatRupiah(t *testing.T) {
	cases := map[string]string{
		"0":          "Rp0",
		"950":        "Rp950",
		"1250000":    "Rp1.250.000",
		"-200000":    "-Rp200.000",
		"1250000.5":  "Rp1.250.000,50",
		"1000000.00": "Rp1.000.000",
	}
	for in, want := range cases {
		if got := FormatRupiah(decimal.RequireFromString(in)); got != want {
			t.Errorf("FormatRupiah(%s) = %q, want %q", in, got, want)
		}
	}
}

func TestMonthToDate(t *testing.T) {
	old := Now
	t.Cleanup(func() { Now = old })
	Now = func() time.Time { return time.Date(2026, 3, 17, 15, 4, 5, 0, time.Local) }

	start, end := MonthToDate()
	if got := FormatDate(start); got != "2026-03-01" {
		t.Fatalf("start = %s", got)
	}
	if got := FormatDate(end); got != "2026-03-17" {
		t.Fatalf("end = %s", got)
	}
}

func TestSafeFilenamePart(t *testing.T) {
	if got := SafeFilenamePart(" SJ/2026:01 "); got != "SJ_2026_01" {
		t.Fatalf("got %q", got)
	}
	if got := SafeFilenamePart(""); got != "NA" {
		t.Fatalf("got %q", got)
	}
}

func TestNormalizeSpace(t *testing.T) {
	if got := NormalizeSpace("  B   1234\tCD "); got != "B 1234 CD" {
		t.Fatalf("got %q", got)
	}
	if !TooLong("ééé", 2) || TooLong("ééé", 3) {
		t.Fatal("TooLong should count runes")
	}
}
