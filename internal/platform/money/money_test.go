package money

import (
	"strings"
	"testing"

	"golang.org/x/text/language"
)

func TestFormatDividesMinorUnits(t *testing.T) {
	got := Format(1999, "usd", language.English)

	if !strings.Contains(got, "19.99") {
		t.Fatalf("formatted amount %q does not contain %q", got, "19.99")
	}
	if !strings.Contains(got, "$") {
		t.Fatalf("formatted amount %q does not carry the currency symbol", got)
	}
}

func TestFormatZeroAmount(t *testing.T) {
	got := Format(0, "EUR", language.English)

	if !strings.Contains(got, "0.00") {
		t.Fatalf("formatted amount %q does not contain %q", got, "0.00")
	}
}

func TestFormatUnknownCurrencyFallsBack(t *testing.T) {
	got := Format(1234, "zzz", language.English)

	if got != "12.34 ZZZ" {
		t.Fatalf("fallback = %q, want %q", got, "12.34 ZZZ")
	}
}

func TestFormatterNilReceiverStillFormats(t *testing.T) {
	var f *Formatter
	got := f.Format(500, "USD")

	if !strings.Contains(got, "5.00") {
		t.Fatalf("formatted amount %q does not contain %q", got, "5.00")
	}
}
