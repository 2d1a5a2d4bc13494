package common

import (
	"testing"
)

func TestCleanDecimal_SimpleNumber(t *testing.T) {
	result, err := CleanDecimal("123.45")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if result.String() != "123.45" {
		t.Errorf("Expected '123.45', got '%s'", result.String())
	}
}

func TestCleanDecimal_WithCommas(t *testing.T) {
	result, err := CleanDecimal("1,234.56")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if result.String() != "1234.56" {
		t.Errorf("Expected '1234.56', got '%s'", result.String())
	}
}

func TestCleanDecimal_WithCurrencySymbol(t *testing.T) {
	result, err := CleanDecimal("AED 1,234.56")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if result.String() != "1234.56" {
		t.Errorf("Expected '1234.56', got '%s'", result.String())
	}
}

func TestCleanDecimal_WithSuffix(t *testing.T) {
	result, err := CleanDecimal("100.00CR")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if result.String() != "100" {
		t.Errorf("Expected '100', got '%s'", result.String())
	}
}

func TestCleanDecimal_NoNumericContent(t *testing.T) {
	for _, input := range []string{"", "soon", "N/A"} {
		if _, err := CleanDecimal(input); err == nil {
			t.Errorf("CleanDecimal(%q): expected error", input)
		}
	}
}

func TestDigits(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"050 123 4567", "0501234567"},
		{"+971-50-123-4567", "971501234567"},
		{"15/03/1980", "15031980"},
		{"no digits here", ""},
		{"", ""},
	}

	for _, test := range tests {
		if got := Digits(test.input); got != test.expected {
			t.Errorf("Digits(%q): expected %q, got %q", test.input, test.expected, got)
		}
	}
}

func TestParseNaturalDate_DayFirst(t *testing.T) {
	parsed, ok := ParseNaturalDate("05/06/2024")
	if !ok {
		t.Fatal("Expected date to parse")
	}
	if parsed.Year() != 2024 || parsed.Month() != 6 || parsed.Day() != 5 {
		t.Errorf("Expected 2024-06-05, got %s", parsed.Format("2006-01-02"))
	}
}

func TestParseNaturalDate_MonthName(t *testing.T) {
	parsed, ok := ParseNaturalDate("15 June 2024")
	if !ok {
		t.Fatal("Expected date to parse")
	}
	if parsed.Year() != 2024 || parsed.Month() != 6 || parsed.Day() != 15 {
		t.Errorf("Expected 2024-06-15, got %s", parsed.Format("2006-01-02"))
	}
}

func TestParseNaturalDate_Garbage(t *testing.T) {
	if _, ok := ParseNaturalDate("not a date"); ok {
		t.Error("Expected parse to fail")
	}
}

func TestCleanText_DropsShortLines(t *testing.T) {
	input := "Statement of Account\n\n a \n12\nMinimum Payment: AED 250.00\n"
	expected := "Statement of Account\nMinimum Payment: AED 250.00"

	if got := CleanText(input); got != expected {
		t.Errorf("Expected %q, got %q", expected, got)
	}
}

func TestCleanText_Empty(t *testing.T) {
	if got := CleanText(""); got != "" {
		t.Errorf("Expected empty string, got %q", got)
	}
}
